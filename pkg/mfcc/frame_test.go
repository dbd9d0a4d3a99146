package mfcc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/mfcc-extract/pkg/audio"
)

func frameTestConfig() Config {
	cfg := DefaultConfig()
	cfg.SampleRate = 8000
	cfg.Window = WindowRectangular
	cfg.PreEmphasis = 0
	return cfg
}

func TestFramesCount(t *testing.T) {
	cfg := frameTestConfig() // frame 200 samples, shift 80
	fe := NewFrameExtractor(cfg)

	tests := []struct {
		name    string
		samples int
		want    int
	}{
		{"empty", 0, 0},
		{"shorter than one frame", 199, 0},
		{"exactly one frame", 200, 1},
		{"one sample past a shift", 281, 2},
		{"two seconds", 16000, 198},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := audio.NewSignal(make([]float64, tt.samples), cfg.SampleRate)
			assert.Len(t, fe.Frames(sig), tt.want)
		})
	}
}

func TestFramesOffsetsAndContent(t *testing.T) {
	cfg := frameTestConfig()
	fe := NewFrameExtractor(cfg)

	samples := make([]float64, 400)
	for i := range samples {
		samples[i] = float64(i)
	}
	frames := fe.Frames(audio.NewSignal(samples, cfg.SampleRate))
	require.Len(t, frames, 3)

	for i, f := range frames {
		assert.Equal(t, i*80, f.Offset)
		assert.Len(t, f.Samples, 200)
		assert.Equal(t, float64(f.Offset), f.Samples[0])
	}
}

func TestFramesPadTail(t *testing.T) {
	cfg := frameTestConfig()
	cfg.PadTail = true
	fe := NewFrameExtractor(cfg)

	// 250 samples: one full frame plus 50 leftover past the next shift
	samples := make([]float64, 250)
	for i := range samples {
		samples[i] = 1.0
	}
	frames := fe.Frames(audio.NewSignal(samples, cfg.SampleRate))
	require.Len(t, frames, 2)

	tail := frames[1]
	assert.Equal(t, 80, tail.Offset)
	assert.Equal(t, 1.0, tail.Samples[0])
	// Zero padding past the signal end
	assert.Equal(t, 0.0, tail.Samples[199])
}

func TestFramesPadTailShortSignal(t *testing.T) {
	cfg := frameTestConfig()
	cfg.PadTail = true
	fe := NewFrameExtractor(cfg)

	sig := audio.NewSignal(make([]float64, 50), cfg.SampleRate)
	frames := fe.Frames(sig)
	require.Len(t, frames, 1)
	assert.Equal(t, 0, frames[0].Offset)
}

func TestFramesPreEmphasis(t *testing.T) {
	cfg := frameTestConfig()
	cfg.PreEmphasis = 0.97
	fe := NewFrameExtractor(cfg)

	samples := make([]float64, 200)
	for i := range samples {
		samples[i] = 1.0
	}
	frames := fe.Frames(audio.NewSignal(samples, cfg.SampleRate))
	require.Len(t, frames, 1)

	assert.InDelta(t, 1.0, frames[0].Samples[0], 1e-12)
	for i := 1; i < 200; i++ {
		assert.InDelta(t, 0.03, frames[0].Samples[i], 1e-12)
	}
}

func TestFramesWindowApplied(t *testing.T) {
	cfg := frameTestConfig()
	cfg.Window = WindowHamming
	fe := NewFrameExtractor(cfg)

	samples := make([]float64, 200)
	for i := range samples {
		samples[i] = 1.0
	}
	frames := fe.Frames(audio.NewSignal(samples, cfg.SampleRate))
	require.Len(t, frames, 1)

	// Hamming endpoints taper to 0.08, midpoint stays near 1
	assert.InDelta(t, 0.08, frames[0].Samples[0], 1e-9)
	assert.Greater(t, frames[0].Samples[100], 0.9)
}

func TestFramesDitherDeterministic(t *testing.T) {
	cfg := frameTestConfig()
	cfg.Dither = 1e-4
	fe := NewFrameExtractor(cfg)

	sig := audio.NewSignal(make([]float64, 400), cfg.SampleRate)
	a := fe.Frames(sig)
	b := fe.Frames(sig)
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].Samples, b[i].Samples)
	}
}

func TestWindowCoefficients(t *testing.T) {
	for _, wt := range []WindowType{WindowHamming, WindowHann, WindowPovey, WindowBlackman, WindowRectangular} {
		t.Run(string(wt), func(t *testing.T) {
			w := windowCoefficients(wt, 128)
			require.Len(t, w, 128)
			for i, v := range w {
				assert.GreaterOrEqualf(t, v, -1e-12, "coefficient %d negative", i)
				assert.LessOrEqualf(t, v, 1.0+1e-12, "coefficient %d above one", i)
			}
		})
	}

	// Povey is a compressed Hann: zero at the edges, one in the middle
	w := windowCoefficients(WindowPovey, 101)
	assert.InDelta(t, 0.0, w[0], 1e-12)
	assert.InDelta(t, 1.0, w[50], 1e-12)
}
