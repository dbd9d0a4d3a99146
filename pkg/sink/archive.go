package sink

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/RyanBlaney/mfcc-extract/pkg/mfcc"
)

// archiveRecord is the on-disk form of one utterance's features.
type archiveRecord struct {
	Key  string    `msgpack:"key"`
	Rows int       `msgpack:"rows"`
	Cols int       `msgpack:"cols"`
	Data []float64 `msgpack:"data"` // row-major
}

// ArchiveSink writes feature matrices as a stream of msgpack records.
type ArchiveSink struct {
	enc    *msgpack.Encoder
	buf    *bufio.Writer
	closer io.Closer
	closed bool
}

// NewArchiveSink writes records to w. The caller retains ownership of w.
func NewArchiveSink(w io.Writer) *ArchiveSink {
	buf := bufio.NewWriter(w)
	return &ArchiveSink{
		enc: msgpack.NewEncoder(buf),
		buf: buf,
	}
}

// CreateArchiveFile creates (or truncates) path and returns a sink that
// owns the file handle.
func CreateArchiveFile(path string) (*ArchiveSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating feature archive: %w", err)
	}
	s := NewArchiveSink(f)
	s.closer = f
	return s, nil
}

// Write appends one keyed feature matrix to the archive.
func (s *ArchiveSink) Write(key string, m *mfcc.FeatureMatrix) error {
	if s.closed {
		return fmt.Errorf("write to closed archive")
	}
	rec := archiveRecord{
		Key:  key,
		Rows: m.Rows(),
		Cols: m.Cols(),
		Data: m.Data(),
	}
	if err := s.enc.Encode(&rec); err != nil {
		return fmt.Errorf("encoding features for %q: %w", key, err)
	}
	return nil
}

// Close flushes buffered records and releases the file handle if the
// sink owns one. Close is idempotent.
func (s *ArchiveSink) Close() error {
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

// ArchiveReader iterates the records of a feature archive.
type ArchiveReader struct {
	dec *msgpack.Decoder
}

// NewArchiveReader reads records from r.
func NewArchiveReader(r io.Reader) *ArchiveReader {
	return &ArchiveReader{dec: msgpack.NewDecoder(r)}
}

// Next returns the next record, or io.EOF when the archive is
// exhausted.
func (r *ArchiveReader) Next() (string, *mfcc.FeatureMatrix, error) {
	var rec archiveRecord
	if err := r.dec.Decode(&rec); err != nil {
		if err == io.EOF {
			return "", nil, io.EOF
		}
		return "", nil, fmt.Errorf("decoding feature record: %w", err)
	}
	if len(rec.Data) != rec.Rows*rec.Cols {
		return "", nil, fmt.Errorf("corrupt feature record %q: %d values for %dx%d matrix",
			rec.Key, len(rec.Data), rec.Rows, rec.Cols)
	}

	m := mfcc.NewFeatureMatrix(rec.Rows, rec.Cols)
	copy(m.Data(), rec.Data)
	return rec.Key, m, nil
}
