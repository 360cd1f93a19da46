// Package server exposes the spectrum archive over HTTP: a JSON listing
// for tooling and interactive echarts pages for the browser.
package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/Adina012/multifid-1d-nmr-plot/internal/archive"
	"github.com/Adina012/multifid-1d-nmr-plot/internal/report"
)

// ANSI escape codes for request logging
const colorReset = "\033[0m"
const colorYellow = "\033[33m"
const colorBoldGreen = "\033[1;32m"
const colorBoldRed = "\033[1;31m"

// Server serves archived spectra.
type Server struct {
	archive *archive.Archive
}

// New returns a Server over the given archive.
func New(a *archive.Archive) *Server {
	return &Server{archive: a}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /api/spectra", s.handleListSpectra)
	mux.HandleFunc("GET /api/spectra/{id}", s.handleGetSpectrum)
	mux.HandleFunc("GET /spectra/{id}/chart", s.handleSpectrumChart)
	return logRequests(mux)
}

// ListenAndServe blocks serving the archive on addr.
func (s *Server) ListenAndServe(addr string) error {
	log.Printf("serving spectrum archive on %s", addr)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "ok")
}

func (s *Server) handleListSpectra(w http.ResponseWriter, r *http.Request) {
	entries, err := s.archive.List()
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if entries == nil {
		entries = []archive.Entry{}
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(entries); err != nil {
		log.Printf("encode spectra list: %v", err)
	}
}

func (s *Server) handleGetSpectrum(w http.ResponseWriter, r *http.Request) {
	entry, err := s.archive.Get(r.PathValue("id"))
	if err != nil {
		s.writeJSONError(w, http.StatusNotFound, "no such spectrum")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(entry); err != nil {
		log.Printf("encode spectrum: %v", err)
	}
}

func (s *Server) handleSpectrumChart(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	entry, err := s.archive.Get(id)
	if err != nil {
		s.writeJSONError(w, http.StatusNotFound, "no such spectrum")
		return
	}
	spectrum, err := s.archive.Points(id)
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	line := report.Chart(report.Item{Name: entry.Name, Spectrum: spectrum})
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := line.Render(w); err != nil {
		log.Printf("render chart for %s: %v", id, err)
	}
}

func (s *Server) writeJSONError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func statusCodeColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return colorBoldGreen + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 300 && statusCode < 400:
		return colorYellow + strconv.Itoa(statusCode) + colorReset
	default:
		return colorBoldRed + strconv.Itoa(statusCode) + colorReset
	}
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(lrw, r)
		log.Printf("%s %s %s %s", r.Method, r.URL.Path, statusCodeColor(lrw.statusCode), time.Since(start))
	})
}
