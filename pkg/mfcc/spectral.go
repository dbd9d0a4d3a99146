package mfcc

import (
	"github.com/mjibson/go-dsp/fft"
)

// SpectralAnalyzer computes per-frame power spectra through a
// real-input FFT. It holds no mutable state, so a single instance is
// safe to share across goroutines.
type SpectralAnalyzer struct {
	fftSize int
}

// NewSpectralAnalyzer creates an analyzer with the given transform
// length. fftSize must be a power of two at or above the frame length.
func NewSpectralAnalyzer(fftSize int) *SpectralAnalyzer {
	return &SpectralAnalyzer{fftSize: fftSize}
}

// NumBins returns the power spectrum length, fftSize/2+1.
func (sa *SpectralAnalyzer) NumBins() int {
	return sa.fftSize/2 + 1
}

// PowerSpectrum returns squared magnitudes of the positive-frequency
// bins of frame, zero-padded to the transform length.
func (sa *SpectralAnalyzer) PowerSpectrum(frame []float64) []float64 {
	padded := frame
	if len(frame) < sa.fftSize {
		padded = make([]float64, sa.fftSize)
		copy(padded, frame)
	} else if len(frame) > sa.fftSize {
		padded = frame[:sa.fftSize]
	}

	spectrum := fft.FFTReal(padded)

	power := make([]float64, sa.NumBins())
	for i := range power {
		re := real(spectrum[i])
		im := imag(spectrum[i])
		power[i] = re*re + im*im
	}
	return power
}
