package audio

import "time"

// Buffer holds decoded PCM audio as one float64 slice per channel.
// All channels have equal length; samples are normalized to [-1, 1].
// A Buffer is immutable once produced by a decoder.
type Buffer struct {
	Channels   [][]float64
	SampleRate int
}

// NumChannels returns the channel count.
func (b *Buffer) NumChannels() int {
	return len(b.Channels)
}

// NumSamples returns the per-channel sample count.
func (b *Buffer) NumSamples() int {
	if len(b.Channels) == 0 {
		return 0
	}
	return len(b.Channels[0])
}

// Duration returns the buffer duration derived from the sample rate.
func (b *Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(b.NumSamples()) / float64(b.SampleRate) * float64(time.Second))
}

// Signal is a mono PCM signal at a known sample rate. It is the input
// to feature extraction; downstream stages never mutate it.
type Signal struct {
	samples    []float64
	sampleRate int
}

// NewSignal wraps samples at the given rate. The Signal takes ownership
// of the slice.
func NewSignal(samples []float64, sampleRate int) *Signal {
	return &Signal{samples: samples, sampleRate: sampleRate}
}

// Samples returns a read-only view of the backing slice. Callers must
// not modify the returned data.
func (s *Signal) Samples() []float64 {
	return s.samples
}

// SampleRate returns the signal sample rate in Hz.
func (s *Signal) SampleRate() int {
	return s.sampleRate
}

// Len returns the sample count.
func (s *Signal) Len() int {
	return len(s.samples)
}

// Duration returns the signal duration.
func (s *Signal) Duration() time.Duration {
	if s.sampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(len(s.samples)) / float64(s.sampleRate) * float64(time.Second))
}
