package mfcc

import (
	"math/rand"

	"github.com/RyanBlaney/mfcc-extract/pkg/audio"
)

// ditherSeed fixes the dither noise sequence so extraction stays
// deterministic for identical input and configuration.
const ditherSeed = 0x5eed

// Frame is one windowed analysis frame tagged with its start offset in
// the source signal.
type Frame struct {
	Samples []float64
	Offset  int
}

// FrameExtractor slices a mono signal into overlapping windowed frames.
type FrameExtractor struct {
	frameLen    int
	frameShift  int
	preEmphasis float64
	dither      float64
	padTail     bool
	window      []float64
}

// NewFrameExtractor builds an extractor for the configured frame geometry.
func NewFrameExtractor(cfg Config) *FrameExtractor {
	return &FrameExtractor{
		frameLen:    cfg.FrameLength(),
		frameShift:  cfg.FrameShift(),
		preEmphasis: cfg.PreEmphasis,
		dither:      cfg.Dither,
		padTail:     cfg.PadTail,
		window:      windowCoefficients(cfg.Window, cfg.FrameLength()),
	}
}

// Frames partitions sig into analysis frames starting at multiples of
// the frame shift. The trailing partial frame is dropped unless the
// extractor was configured to zero-pad it. A signal shorter than one
// frame produces no frames.
func (fe *FrameExtractor) Frames(sig *audio.Signal) []Frame {
	samples := sig.Samples()
	if len(samples) == 0 {
		return nil
	}

	if fe.dither > 0 {
		samples = fe.applyDither(samples)
	}
	if fe.preEmphasis > 0 {
		samples = preEmphasize(samples, fe.preEmphasis)
	}

	n := len(samples)
	numFrames := 0
	if n >= fe.frameLen {
		numFrames = 1 + (n-fe.frameLen)/fe.frameShift
	}
	// With tail padding enabled, one extra frame covers whatever samples
	// remain at the next shift offset.
	padded := 0
	if fe.padTail && numFrames*fe.frameShift < n {
		padded = 1
	}
	if numFrames+padded == 0 {
		return nil
	}

	frames := make([]Frame, 0, numFrames+padded)
	for i := 0; i < numFrames; i++ {
		start := i * fe.frameShift
		frame := make([]float64, fe.frameLen)
		copy(frame, samples[start:start+fe.frameLen])
		fe.applyWindow(frame)
		frames = append(frames, Frame{Samples: frame, Offset: start})
	}
	if padded == 1 {
		start := numFrames * fe.frameShift
		frame := make([]float64, fe.frameLen)
		copy(frame, samples[start:])
		fe.applyWindow(frame)
		frames = append(frames, Frame{Samples: frame, Offset: start})
	}

	return frames
}

func (fe *FrameExtractor) applyWindow(frame []float64) {
	for i := range frame {
		frame[i] *= fe.window[i]
	}
}

// applyDither adds low-level Gaussian noise from a fixed-seed source.
func (fe *FrameExtractor) applyDither(samples []float64) []float64 {
	rng := rand.New(rand.NewSource(ditherSeed))
	out := make([]float64, len(samples))
	for i, v := range samples {
		out[i] = v + fe.dither*rng.NormFloat64()
	}
	return out
}

// preEmphasize applies the first-order high-pass y[n] = x[n] - alpha*x[n-1].
func preEmphasize(samples []float64, alpha float64) []float64 {
	out := make([]float64, len(samples))
	out[0] = samples[0]
	for i := 1; i < len(samples); i++ {
		out[i] = samples[i] - alpha*samples[i-1]
	}
	return out
}
