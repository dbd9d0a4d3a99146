package mfcc

import (
	"math"
	"sync"
)

// logFloor keeps filter energies strictly positive before the log.
const logFloor = 1e-10

// HzToMel converts frequency in Hz to the mel scale.
func HzToMel(hz float64) float64 {
	return 2595.0 * math.Log10(1.0+hz/700.0)
}

// MelToHz converts a mel value back to Hz.
func MelToHz(mel float64) float64 {
	return 700.0 * (math.Pow(10.0, mel/2595.0) - 1.0)
}

// FilterBank is a fixed triangular mel-scale filter bank. It is a pure
// function of its construction parameters and read-only afterwards.
type FilterBank struct {
	filters [][]float64
}

type filterBankKey struct {
	numFilters int
	fftSize    int
	sampleRate int
	lowFreq    float64
	highFreq   float64
}

var (
	filterBankMu    sync.Mutex
	filterBankCache = map[filterBankKey]*FilterBank{}
)

// CachedFilterBank returns the filter bank for the given parameters,
// building it on first use. Banks are shared across extractors; they
// are never mutated after construction.
func CachedFilterBank(numFilters, fftSize, sampleRate int, lowFreq, highFreq float64) *FilterBank {
	key := filterBankKey{numFilters, fftSize, sampleRate, lowFreq, highFreq}

	filterBankMu.Lock()
	defer filterBankMu.Unlock()

	if fb, ok := filterBankCache[key]; ok {
		return fb
	}
	fb := NewFilterBank(numFilters, fftSize, sampleRate, lowFreq, highFreq)
	filterBankCache[key] = fb
	return fb
}

// NewFilterBank constructs numFilters triangular filters with centers
// equally spaced on the mel scale between lowFreq and highFreq.
func NewFilterBank(numFilters, fftSize, sampleRate int, lowFreq, highFreq float64) *FilterBank {
	nBins := fftSize/2 + 1
	lowMel := HzToMel(lowFreq)
	highMel := HzToMel(highFreq)

	// numFilters+2 equally spaced mel points: filter m spans points
	// m-1..m+1 with its peak at point m.
	melPoints := make([]float64, numFilters+2)
	step := (highMel - lowMel) / float64(numFilters+1)
	for i := range melPoints {
		melPoints[i] = lowMel + float64(i)*step
	}

	binPoints := make([]int, len(melPoints))
	for i, mel := range melPoints {
		hz := MelToHz(mel)
		bin := int(math.Floor(float64(fftSize)*hz/float64(sampleRate) + 0.5))
		if bin > fftSize/2 {
			bin = fftSize / 2
		}
		binPoints[i] = bin
	}

	filters := make([][]float64, numFilters)
	for m := range filters {
		filters[m] = make([]float64, nBins)
		left := binPoints[m]
		center := binPoints[m+1]
		right := binPoints[m+2]

		for k := left; k < center; k++ {
			filters[m][k] = float64(k-left) / float64(center-left)
		}
		for k := center; k < right; k++ {
			filters[m][k] = float64(right-k) / float64(right-center)
		}
		if center == left && center == right && center < nBins {
			// Degenerate filter collapsed onto a single bin
			filters[m][center] = 1.0
		}
	}

	return &FilterBank{filters: filters}
}

// NumFilters returns the filter count.
func (fb *FilterBank) NumFilters() int {
	return len(fb.filters)
}

// Apply computes the log energy of each filter over the power spectrum.
// Energies are floored before the log so an all-zero spectrum yields
// finite values.
func (fb *FilterBank) Apply(powerSpectrum []float64) []float64 {
	energies := make([]float64, len(fb.filters))
	for m, filter := range fb.filters {
		sum := 0.0
		n := min(len(filter), len(powerSpectrum))
		for k := 0; k < n; k++ {
			sum += filter[k] * powerSpectrum[k]
		}
		if sum < logFloor {
			sum = logFloor
		}
		energies[m] = math.Log(sum)
	}
	return energies
}
