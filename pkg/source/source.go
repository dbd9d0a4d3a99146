// Package source provides the audio input boundary: sequential
// (key, buffer) pairs produced from some backing store, with io.EOF
// signalling exhaustion.
package source

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/RyanBlaney/mfcc-extract/pkg/audio"
	"github.com/RyanBlaney/mfcc-extract/pkg/audio/wavfile"
)

// Utterance is one keyed audio buffer read from a source.
type Utterance struct {
	Key    string
	Buffer *audio.Buffer
}

// Source yields utterances sequentially. Next returns io.EOF once the
// source is exhausted; any other error is a per-entry read failure the
// caller may skip or treat as fatal. Reading continues past failed
// entries.
type Source interface {
	Next() (*Utterance, error)
}

// FileSource reads WAV files from a fixed path list. Keys are the file
// base names without extension.
type FileSource struct {
	paths []string
	pos   int
}

// NewFileSource creates a source over the given WAV file paths.
func NewFileSource(paths []string) *FileSource {
	return &FileSource{paths: paths}
}

// Next decodes the next file in the list. Decode and open failures are
// returned as per-entry errors; the source advances past them.
func (s *FileSource) Next() (*Utterance, error) {
	if s.pos >= len(s.paths) {
		return nil, io.EOF
	}

	path := s.paths[s.pos]
	s.pos++

	buf, err := wavfile.DecodeFile(path)
	if err != nil {
		return nil, err
	}

	return &Utterance{Key: KeyForPath(path), Buffer: buf}, nil
}

// KeyForPath derives the utterance key from a file path: the base name
// without its extension.
func KeyForPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
