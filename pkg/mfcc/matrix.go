package mfcc

import "gonum.org/v1/gonum/mat"

// FeatureMatrix is the per-utterance extraction result: one row of
// cepstral coefficients per analysis frame, in frame order, backed by
// a single row-major buffer.
type FeatureMatrix struct {
	data []float64
	rows int
	cols int
}

// NewFeatureMatrix allocates a zero matrix of the given shape.
func NewFeatureMatrix(rows, cols int) *FeatureMatrix {
	return &FeatureMatrix{
		data: make([]float64, rows*cols),
		rows: rows,
		cols: cols,
	}
}

// Rows returns the frame count.
func (m *FeatureMatrix) Rows() int { return m.rows }

// Cols returns the coefficient count per frame.
func (m *FeatureMatrix) Cols() int { return m.cols }

// Row returns row i as a slice into the backing buffer.
func (m *FeatureMatrix) Row(i int) []float64 {
	return m.data[i*m.cols : (i+1)*m.cols]
}

// At returns the value at row i, column j.
func (m *FeatureMatrix) At(i, j int) float64 {
	return m.data[i*m.cols+j]
}

// Data returns the row-major backing buffer.
func (m *FeatureMatrix) Data() []float64 {
	return m.data
}

// Dense wraps the backing buffer as a gonum matrix without copying.
// The view borrows the buffer; callers must treat it as read-only.
func (m *FeatureMatrix) Dense() *mat.Dense {
	if m.rows == 0 {
		return nil
	}
	return mat.NewDense(m.rows, m.cols, m.data)
}
