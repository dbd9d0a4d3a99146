package mfcc

import "math"

// CepstralTransform maps log-mel energies to cepstral coefficients via
// an orthonormal type-II DCT, with optional sinusoidal liftering and
// optional replacement of c0 by the frame log-energy.
type CepstralTransform struct {
	numCeps   int
	useEnergy bool
	dct       [][]float64 // [numCeps][numFilters]
	lifter    []float64   // nil when liftering is disabled
}

// NewCepstralTransform precomputes the DCT matrix and lifter curve for
// the given filter count.
func NewCepstralTransform(numCeps, numFilters int, lifterCoeff float64, useEnergy bool) *CepstralTransform {
	ct := &CepstralTransform{
		numCeps:   numCeps,
		useEnergy: useEnergy,
		dct:       make([][]float64, numCeps),
	}

	norm0 := math.Sqrt(1.0 / float64(numFilters))
	norm := math.Sqrt(2.0 / float64(numFilters))
	for k := range ct.dct {
		row := make([]float64, numFilters)
		for n := range row {
			row[n] = math.Cos(math.Pi * float64(k) * (float64(n) + 0.5) / float64(numFilters))
			if k == 0 {
				row[n] *= norm0
			} else {
				row[n] *= norm
			}
		}
		ct.dct[k] = row
	}

	if lifterCoeff > 0 {
		ct.lifter = make([]float64, numCeps)
		for i := range ct.lifter {
			ct.lifter[i] = 1.0 + lifterCoeff/2.0*math.Sin(math.Pi*float64(i)/lifterCoeff)
		}
	}

	return ct
}

// NumCeps returns the output coefficient count.
func (ct *CepstralTransform) NumCeps() int {
	return ct.numCeps
}

// Apply writes the coefficients for one frame into dst, which must have
// length NumCeps. logEnergy is the frame log-energy used when c0
// replacement is enabled.
func (ct *CepstralTransform) Apply(logMelEnergies []float64, logEnergy float64, dst []float64) {
	for k, row := range ct.dct {
		sum := 0.0
		for n, c := range row {
			sum += logMelEnergies[n] * c
		}
		dst[k] = sum
	}

	if ct.lifter != nil {
		for i := range dst {
			dst[i] *= ct.lifter[i]
		}
	}

	if ct.useEnergy {
		dst[0] = logEnergy
	}
}
