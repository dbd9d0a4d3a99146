package mfcc

import "math"

// windowCoefficients precomputes the tapering curve for a frame length.
func windowCoefficients(wt WindowType, n int) []float64 {
	coeffs := make([]float64, n)
	if n == 1 {
		coeffs[0] = 1.0
		return coeffs
	}

	denom := float64(n - 1)
	for i := range coeffs {
		phase := 2.0 * math.Pi * float64(i) / denom
		switch wt {
		case WindowHann:
			coeffs[i] = 0.5 - 0.5*math.Cos(phase)
		case WindowPovey:
			// Hann raised to 0.85, as used by speech toolkits
			coeffs[i] = math.Pow(0.5-0.5*math.Cos(phase), 0.85)
		case WindowBlackman:
			coeffs[i] = 0.42 - 0.5*math.Cos(phase) + 0.08*math.Cos(2.0*phase)
		case WindowRectangular:
			coeffs[i] = 1.0
		default: // Hamming
			coeffs[i] = 0.54 - 0.46*math.Cos(phase)
		}
	}
	return coeffs
}
