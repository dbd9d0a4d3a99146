package wavfile

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/mfcc-extract/pkg/audio"
)

// encodeWAV builds a minimal 16-bit PCM RIFF/WAVE stream with the given
// interleaved samples.
func encodeWAV(t *testing.T, sampleRate, numChannels int, interleaved []int16) *bytes.Reader {
	t.Helper()

	var body bytes.Buffer
	dataSize := len(interleaved) * 2
	blockAlign := numChannels * 2

	body.WriteString("RIFF")
	binary.Write(&body, binary.LittleEndian, uint32(36+dataSize))
	body.WriteString("WAVE")

	body.WriteString("fmt ")
	binary.Write(&body, binary.LittleEndian, uint32(16))
	binary.Write(&body, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&body, binary.LittleEndian, uint16(numChannels))
	binary.Write(&body, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&body, binary.LittleEndian, uint32(sampleRate*blockAlign))
	binary.Write(&body, binary.LittleEndian, uint16(blockAlign))
	binary.Write(&body, binary.LittleEndian, uint16(16))

	body.WriteString("data")
	binary.Write(&body, binary.LittleEndian, uint32(dataSize))
	binary.Write(&body, binary.LittleEndian, interleaved)

	return bytes.NewReader(body.Bytes())
}

func TestDecodeMono(t *testing.T) {
	samples := []int16{0, 16384, -16384, 32767, -32768}
	buf, err := Decode(encodeWAV(t, 16000, 1, samples))
	require.NoError(t, err)

	assert.Equal(t, 1, buf.NumChannels())
	assert.Equal(t, 16000, buf.SampleRate)
	require.Equal(t, len(samples), buf.NumSamples())

	assert.InDelta(t, 0.0, buf.Channels[0][0], 1e-9)
	assert.InDelta(t, 0.5, buf.Channels[0][1], 1e-9)
	assert.InDelta(t, -0.5, buf.Channels[0][2], 1e-9)
	assert.InDelta(t, 1.0, buf.Channels[0][3], 1e-4)
	assert.InDelta(t, -1.0, buf.Channels[0][4], 1e-9)
}

func TestDecodeStereoDeinterleaves(t *testing.T) {
	// L, R pairs
	interleaved := []int16{100, -100, 200, -200, 300, -300}
	buf, err := Decode(encodeWAV(t, 8000, 2, interleaved))
	require.NoError(t, err)

	require.Equal(t, 2, buf.NumChannels())
	require.Equal(t, 3, buf.NumSamples())
	for i := 0; i < 3; i++ {
		assert.InDelta(t, float64((i+1)*100)/32768.0, buf.Channels[0][i], 1e-9)
		assert.InDelta(t, -float64((i+1)*100)/32768.0, buf.Channels[1][i], 1e-9)
	}
}

func TestDecodeDuration(t *testing.T) {
	samples := make([]int16, 16000)
	buf, err := Decode(encodeWAV(t, 16000, 1, samples))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, buf.Duration().Seconds(), 1e-9)
}

func TestDecodeSineAmplitude(t *testing.T) {
	const rate = 8000
	samples := make([]int16, rate)
	for i := range samples {
		samples[i] = int16(0.5 * 32767 * math.Sin(2*math.Pi*440*float64(i)/rate))
	}
	buf, err := Decode(encodeWAV(t, rate, 1, samples))
	require.NoError(t, err)

	peak := 0.0
	for _, v := range buf.Channels[0] {
		peak = math.Max(peak, math.Abs(v))
	}
	assert.InDelta(t, 0.5, peak, 0.01)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("definitely not a wav file")))
	require.Error(t, err)

	var perr *audio.ProcessingError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, audio.ErrCodeDecode, perr.Code)
}

func TestDecodeRejectsEmptyStream(t *testing.T) {
	_, err := Decode(bytes.NewReader(nil))
	require.Error(t, err)

	var perr *audio.ProcessingError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, audio.ErrCodeDecode, perr.Code)
}

func TestDecodeFileTagsKeyOnDecodeError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.wav")
	require.NoError(t, os.WriteFile(path, []byte("junk"), 0o644))

	_, err := DecodeFile(path)
	require.Error(t, err)

	var perr *audio.ProcessingError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, audio.ErrCodeDecode, perr.Code)
	assert.Equal(t, path, perr.Key)
}

func TestDecodeFileMissing(t *testing.T) {
	_, err := DecodeFile("testdata/does-not-exist.wav")
	require.Error(t, err)

	var perr *audio.ProcessingError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, audio.ErrCodeSource, perr.Code)
}
