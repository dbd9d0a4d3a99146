package mfcc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPowerSpectrumLength(t *testing.T) {
	tests := []struct {
		fftSize  int
		frameLen int
	}{
		{256, 200},
		{256, 256},
		{512, 400},
		{64, 10},
	}

	for _, tt := range tests {
		sa := NewSpectralAnalyzer(tt.fftSize)
		ps := sa.PowerSpectrum(make([]float64, tt.frameLen))
		assert.Len(t, ps, tt.fftSize/2+1)
		assert.Equal(t, tt.fftSize/2+1, sa.NumBins())
	}
}

func TestPowerSpectrumImpulse(t *testing.T) {
	sa := NewSpectralAnalyzer(64)
	frame := make([]float64, 64)
	frame[0] = 1.0

	ps := sa.PowerSpectrum(frame)
	require.Len(t, ps, 33)
	// The spectrum of a unit impulse is flat with unit power per bin
	for i, v := range ps {
		assert.InDeltaf(t, 1.0, v, 1e-9, "bin %d", i)
	}
}

func TestPowerSpectrumSinePeak(t *testing.T) {
	const n = 256
	sa := NewSpectralAnalyzer(n)

	// Pure cosine exactly at bin 32
	frame := make([]float64, n)
	for i := range frame {
		frame[i] = math.Cos(2 * math.Pi * 32 * float64(i) / n)
	}
	ps := sa.PowerSpectrum(frame)

	peak := 0
	for i, v := range ps {
		if v > ps[peak] {
			peak = i
		}
	}
	assert.Equal(t, 32, peak)
	// (N/2)^2 power at the peak bin for a unit cosine
	assert.InDelta(t, float64(n/2)*float64(n/2), ps[32], 1e-6)
}

func TestPowerSpectrumZeroPadding(t *testing.T) {
	sa := NewSpectralAnalyzer(256)

	short := make([]float64, 200)
	short[0] = 1.0
	ps := sa.PowerSpectrum(short)
	require.Len(t, ps, 129)
	for _, v := range ps {
		assert.GreaterOrEqual(t, v, 0.0)
	}
}

func TestPowerSpectrumAllZero(t *testing.T) {
	sa := NewSpectralAnalyzer(128)
	ps := sa.PowerSpectrum(make([]float64, 128))
	for _, v := range ps {
		assert.Zero(t, v)
	}
}
