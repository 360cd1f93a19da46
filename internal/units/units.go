// Package units provides shared constants and validation for the
// chemical-shift axis units
package units

// Unit constants
const (
	PPM = "ppm"
	HZ  = "hz"
)

// ValidUnits contains all valid axis unit values
var ValidUnits = []string{PPM, HZ}

// IsValid checks if the given unit is in the list of valid units
func IsValid(unit string) bool {
	for _, validUnit := range ValidUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// GetValidUnitsString returns a comma-separated string of valid units for error messages
func GetValidUnitsString() string {
	return "ppm, hz"
}

// PPMToHz converts a chemical shift from ppm to Hz for a spectrometer
// operating at freqMHz. One ppm equals freqMHz hertz, so a 400 MHz
// instrument maps 1 ppm to 400 Hz.
func PPMToHz(shiftPPM, freqMHz float64) float64 {
	return shiftPPM * freqMHz
}

// HzToPPM converts an offset in Hz back to ppm for a spectrometer
// operating at freqMHz. Returns 0 when freqMHz is 0 to avoid dividing
// by zero on unconfigured instruments.
func HzToPPM(offsetHz, freqMHz float64) float64 {
	if freqMHz == 0 {
		return 0
	}
	return offsetHz / freqMHz
}

// ConvertShift converts a chemical shift stored in ppm to the target
// units. Unknown units fall back to ppm.
func ConvertShift(shiftPPM float64, targetUnits string, freqMHz float64) float64 {
	switch targetUnits {
	case HZ:
		return PPMToHz(shiftPPM, freqMHz)
	case PPM:
		return shiftPPM
	default:
		return shiftPPM
	}
}

// AxisLabel returns the x-axis label for the given unit.
func AxisLabel(unit string) string {
	if unit == HZ {
		return "Hz"
	}
	return "ppm"
}
