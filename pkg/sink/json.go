package sink

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/RyanBlaney/mfcc-extract/pkg/mfcc"
)

// jsonRecord mirrors archiveRecord with per-row nesting for readability.
type jsonRecord struct {
	Key      string      `json:"key"`
	Features [][]float64 `json:"features"`
}

// JSONSink writes one JSON object per line. Intended for debugging and
// interop, not bulk storage.
type JSONSink struct {
	enc    *json.Encoder
	buf    *bufio.Writer
	closer io.Closer
	closed bool
}

// NewJSONSink writes records to w. The caller retains ownership of w.
func NewJSONSink(w io.Writer) *JSONSink {
	buf := bufio.NewWriter(w)
	return &JSONSink{
		enc: json.NewEncoder(buf),
		buf: buf,
	}
}

// CreateJSONFile creates (or truncates) path and returns a sink that
// owns the file handle.
func CreateJSONFile(path string) (*JSONSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating JSON feature file: %w", err)
	}
	s := NewJSONSink(f)
	s.closer = f
	return s, nil
}

// Write appends one keyed feature matrix as a JSON line.
func (s *JSONSink) Write(key string, m *mfcc.FeatureMatrix) error {
	if s.closed {
		return fmt.Errorf("write to closed JSON sink")
	}
	rec := jsonRecord{
		Key:      key,
		Features: make([][]float64, m.Rows()),
	}
	for i := 0; i < m.Rows(); i++ {
		rec.Features[i] = m.Row(i)
	}
	if err := s.enc.Encode(&rec); err != nil {
		return fmt.Errorf("encoding features for %q: %w", key, err)
	}
	return nil
}

// Close flushes buffered records and releases the file handle if the
// sink owns one. Close is idempotent.
func (s *JSONSink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	flushErr := s.buf.Flush()
	if s.closer != nil {
		if err := s.closer.Close(); err != nil && flushErr == nil {
			flushErr = err
		}
	}
	return flushErr
}
