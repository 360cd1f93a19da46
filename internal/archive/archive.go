// Package archive persists parsed spectra in a local SQLite database so
// that batch parse runs can be listed, re-rendered, and served later
// without re-reading the source files.
package archive

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"
	_ "modernc.org/sqlite"

	"github.com/Adina012/multifid-1d-nmr-plot/nmr"
)

// Archive wraps the spectra database.
type Archive struct {
	*sql.DB
}

// Entry is one archived spectrum's metadata row. Left/right bounds and
// the declared size are taken from the parsed axis, so a windowed
// spectrum archives its windowed extent.
type Entry struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	LeftPPM      float64   `json:"left_ppm"`
	RightPPM     float64   `json:"right_ppm"`
	DeclaredSize int       `json:"declared_size"`
	PointCount   int       `json:"point_count"`
	MaxIntensity float64   `json:"max_intensity"`
	RecordedAt   time.Time `json:"recorded_at"`
}

// Open opens (creating if needed) the archive at path and applies any
// pending migrations.
func Open(path string) (*Archive, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA busy_timeout = 5000;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}

	a := &Archive{db}
	if err := a.migrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return a, nil
}

// Record stores a spectrum and its points, returning the new entry's id.
// Only index positions carrying both a coordinate and a sample are
// stored, so a truncated file archives its short point set.
func (a *Archive) Record(name string, s *nmr.Spectrum) (string, error) {
	if s == nil {
		return "", fmt.Errorf("nil spectrum")
	}
	id := uuid.NewString()

	var left, right, maxY float64
	if len(s.X) > 0 {
		left, right = s.X[0], s.X[len(s.X)-1]
	}
	if len(s.Y) > 0 {
		maxY = floats.Max(s.Y)
	}

	tx, err := a.Begin()
	if err != nil {
		return "", fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT INTO spectra (id, name, left_ppm, right_ppm, declared_size, point_count, max_intensity)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, name, left, right, len(s.X), len(s.Y), maxY,
	); err != nil {
		return "", fmt.Errorf("insert spectrum %s: %w", name, err)
	}

	stmt, err := tx.Prepare(`INSERT INTO spectrum_points (spectrum_id, idx, ppm, intensity) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("prepare points insert: %w", err)
	}
	defer stmt.Close()

	n := len(s.Y)
	if len(s.X) < n {
		n = len(s.X)
	}
	for i := 0; i < n; i++ {
		if _, err := stmt.Exec(id, i, s.X[i], s.Y[i]); err != nil {
			return "", fmt.Errorf("insert point %d of %s: %w", i, name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

// List returns all archived spectra, newest first.
func (a *Archive) List() ([]Entry, error) {
	rows, err := a.Query(`
		SELECT id, name, left_ppm, right_ppm, declared_size, point_count, max_intensity, recorded_at
		FROM spectra ORDER BY recorded_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list spectra: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Name, &e.LeftPPM, &e.RightPPM, &e.DeclaredSize, &e.PointCount, &e.MaxIntensity, &e.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan spectrum row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Get returns the metadata row for one spectrum.
func (a *Archive) Get(id string) (*Entry, error) {
	var e Entry
	err := a.QueryRow(`
		SELECT id, name, left_ppm, right_ppm, declared_size, point_count, max_intensity, recorded_at
		FROM spectra WHERE id = ?`, id,
	).Scan(&e.ID, &e.Name, &e.LeftPPM, &e.RightPPM, &e.DeclaredSize, &e.PointCount, &e.MaxIntensity, &e.RecordedAt)
	if err != nil {
		return nil, fmt.Errorf("get spectrum %s: %w", id, err)
	}
	return &e, nil
}

// Points reassembles the stored point set of one spectrum in index order.
func (a *Archive) Points(id string) (*nmr.Spectrum, error) {
	rows, err := a.Query(`SELECT ppm, intensity FROM spectrum_points WHERE spectrum_id = ? ORDER BY idx`, id)
	if err != nil {
		return nil, fmt.Errorf("points for %s: %w", id, err)
	}
	defer rows.Close()

	s := &nmr.Spectrum{}
	for rows.Next() {
		var x, y float64
		if err := rows.Scan(&x, &y); err != nil {
			return nil, fmt.Errorf("scan point row: %w", err)
		}
		s.X = append(s.X, x)
		s.Y = append(s.Y, y)
	}
	return s, rows.Err()
}

// Delete removes a spectrum and its points.
func (a *Archive) Delete(id string) error {
	if _, err := a.Exec(`DELETE FROM spectrum_points WHERE spectrum_id = ?`, id); err != nil {
		return fmt.Errorf("delete points for %s: %w", id, err)
	}
	if _, err := a.Exec(`DELETE FROM spectra WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete spectrum %s: %w", id, err)
	}
	return nil
}
