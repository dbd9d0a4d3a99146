package wavfile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/wav"

	"github.com/RyanBlaney/mfcc-extract/pkg/audio"
)

// wavFormatPCM is the RIFF audio format tag for uncompressed integer PCM.
const wavFormatPCM = 1

// Decode reads an uncompressed PCM RIFF/WAVE stream and returns its
// samples deinterleaved per channel and normalized to [-1, 1].
func Decode(r io.ReadSeeker) (*audio.Buffer, error) {
	d := wav.NewDecoder(r)
	if !d.IsValidFile() {
		return nil, audio.NewProcessingError("", audio.ErrCodeDecode,
			"not a valid RIFF/WAVE file", d.Err())
	}

	if d.WavAudioFormat != wavFormatPCM {
		return nil, audio.NewProcessingError("", audio.ErrCodeDecode,
			fmt.Sprintf("unsupported WAV audio format %d (only integer PCM is supported)", d.WavAudioFormat), nil)
	}

	bitDepth := int(d.BitDepth)
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, audio.NewProcessingError("", audio.ErrCodeDecode,
			fmt.Sprintf("unsupported bit depth %d", bitDepth), nil)
	}

	pcm, err := d.FullPCMBuffer()
	if err != nil {
		return nil, audio.NewProcessingError("", audio.ErrCodeDecode,
			"reading PCM data", err)
	}

	numChannels := pcm.Format.NumChannels
	if numChannels <= 0 {
		return nil, audio.NewProcessingError("", audio.ErrCodeDecode,
			"WAV header declares zero channels", nil)
	}

	// Deinterleave and normalize. 8-bit WAV is unsigned with a 128 bias;
	// everything wider is signed.
	scale := 1.0 / float64(int64(1)<<(bitDepth-1))
	numFrames := len(pcm.Data) / numChannels
	channels := make([][]float64, numChannels)
	for c := range channels {
		channels[c] = make([]float64, numFrames)
	}
	for i := 0; i < numFrames; i++ {
		for c := 0; c < numChannels; c++ {
			s := pcm.Data[i*numChannels+c]
			if bitDepth == 8 {
				s -= 128
			}
			channels[c][i] = float64(s) * scale
		}
	}

	return &audio.Buffer{
		Channels:   channels,
		SampleRate: int(d.SampleRate),
	}, nil
}

// DecodeFile opens and decodes a WAV file from disk.
func DecodeFile(path string) (*audio.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, audio.NewProcessingError(path, audio.ErrCodeSource,
			"opening WAV file", err)
	}
	defer f.Close()

	buf, err := Decode(f)
	if err != nil {
		var perr *audio.ProcessingError
		if errors.As(err, &perr) && perr.Key == "" {
			perr.Key = path
		}
		return nil, err
	}
	return buf, nil
}
