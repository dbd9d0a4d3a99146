package mfcc

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/RyanBlaney/mfcc-extract/pkg/audio"
)

// Standardize rescales every column of m in place to zero mean and unit
// sample variance across frames. Columns with zero variance (including
// the single-frame case) are left unscaled. A matrix with zero rows
// cannot be normalized and yields a degenerate-input error.
func Standardize(m *FeatureMatrix) error {
	if m.Rows() == 0 {
		return audio.NewProcessingError("", audio.ErrCodeDegenerateInput,
			"cannot standardize a feature matrix with zero rows", nil)
	}

	column := make([]float64, m.Rows())
	for j := 0; j < m.Cols(); j++ {
		for i := range column {
			column[i] = m.At(i, j)
		}
		mean, std := stat.MeanStdDev(column, nil)
		if std == 0 || math.IsNaN(std) {
			continue
		}
		for i := 0; i < m.Rows(); i++ {
			row := m.Row(i)
			row[j] = (row[j] - mean) / std
		}
	}

	return nil
}
