package sink

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/mfcc-extract/pkg/mfcc"
)

func testMatrix(rows, cols int) *mfcc.FeatureMatrix {
	m := mfcc.NewFeatureMatrix(rows, cols)
	for i := 0; i < rows; i++ {
		row := m.Row(i)
		for j := range row {
			row[j] = float64(i*cols + j)
		}
	}
	return m
}

func TestArchiveRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	s := NewArchiveSink(&buf)

	first := testMatrix(5, 13)
	second := testMatrix(3, 13)
	require.NoError(t, s.Write("utt1", first))
	require.NoError(t, s.Write("utt2", second))
	require.NoError(t, s.Close())

	r := NewArchiveReader(&buf)

	key, m, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "utt1", key)
	assert.Equal(t, 5, m.Rows())
	assert.Equal(t, 13, m.Cols())
	assert.Equal(t, first.Data(), m.Data())

	key, m, err = r.Next()
	require.NoError(t, err)
	assert.Equal(t, "utt2", key)
	assert.Equal(t, second.Data(), m.Data())

	_, _, err = r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestArchivePreservesWriteOrder(t *testing.T) {
	var buf bytes.Buffer
	s := NewArchiveSink(&buf)

	keys := []string{"c", "a", "b"}
	for _, k := range keys {
		require.NoError(t, s.Write(k, testMatrix(1, 2)))
	}
	require.NoError(t, s.Close())

	r := NewArchiveReader(&buf)
	for _, want := range keys {
		key, _, err := r.Next()
		require.NoError(t, err)
		assert.Equal(t, want, key)
	}
}

func TestArchiveZeroRowMatrix(t *testing.T) {
	var buf bytes.Buffer
	s := NewArchiveSink(&buf)
	require.NoError(t, s.Write("empty", mfcc.NewFeatureMatrix(0, 13)))
	require.NoError(t, s.Close())

	r := NewArchiveReader(&buf)
	key, m, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "empty", key)
	assert.Equal(t, 0, m.Rows())
}

func TestArchiveCloseIdempotentAndGuardsWrites(t *testing.T) {
	var buf bytes.Buffer
	s := NewArchiveSink(&buf)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	assert.Error(t, s.Write("late", testMatrix(1, 1)))
}

func TestCreateArchiveFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "features.mpk")
	s, err := CreateArchiveFile(path)
	require.NoError(t, err)
	require.NoError(t, s.Write("utt", testMatrix(2, 3)))
	require.NoError(t, s.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	key, m, err := NewArchiveReader(f).Next()
	require.NoError(t, err)
	assert.Equal(t, "utt", key)
	assert.Equal(t, 2, m.Rows())
}

func TestJSONSinkFormat(t *testing.T) {
	var buf bytes.Buffer
	s := NewJSONSink(&buf)
	require.NoError(t, s.Write("utt1", testMatrix(2, 2)))
	require.NoError(t, s.Close())

	var rec struct {
		Key      string      `json:"key"`
		Features [][]float64 `json:"features"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "utt1", rec.Key)
	require.Len(t, rec.Features, 2)
	assert.Equal(t, []float64{0, 1}, rec.Features[0])
	assert.Equal(t, []float64{2, 3}, rec.Features[1])
}
