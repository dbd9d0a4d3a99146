package audio

import "fmt"

// Decimate downsamples every channel of buf to targetRate by keeping
// each (sourceRate/targetRate)-th sample. Only integer decimation
// ratios are supported; there is no interpolation and no anti-aliasing
// filter. A ratio of 1 returns the channels unchanged.
func Decimate(buf *Buffer, targetRate int) (*Buffer, error) {
	if targetRate <= 0 {
		return nil, NewProcessingError("", ErrCodeUnsupportedRate,
			fmt.Sprintf("invalid target sample rate %d", targetRate), nil)
	}
	if buf.SampleRate < targetRate {
		return nil, NewProcessingError("", ErrCodeUnsupportedRate,
			fmt.Sprintf("cannot upsample %d Hz to %d Hz", buf.SampleRate, targetRate), nil)
	}
	if buf.SampleRate%targetRate != 0 {
		return nil, NewProcessingError("", ErrCodeUnsupportedRate,
			fmt.Sprintf("source rate %d Hz is not an integer multiple of target rate %d Hz",
				buf.SampleRate, targetRate), nil)
	}

	ratio := buf.SampleRate / targetRate
	if ratio == 1 {
		return &Buffer{Channels: buf.Channels, SampleRate: targetRate}, nil
	}

	out := make([][]float64, len(buf.Channels))
	for c, ch := range buf.Channels {
		decimated := make([]float64, len(ch)/ratio)
		for i := range decimated {
			decimated[i] = ch[i*ratio]
		}
		out[c] = decimated
	}

	return &Buffer{Channels: out, SampleRate: targetRate}, nil
}

// DownmixMono mixes all channels to mono by sample-wise arithmetic
// mean. A single-channel buffer passes its samples through unchanged.
func DownmixMono(buf *Buffer) *Signal {
	if len(buf.Channels) == 0 {
		return NewSignal(nil, buf.SampleRate)
	}
	if len(buf.Channels) == 1 {
		return NewSignal(buf.Channels[0], buf.SampleRate)
	}

	n := buf.NumSamples()
	mixed := make([]float64, n)
	scale := 1.0 / float64(len(buf.Channels))
	for _, ch := range buf.Channels {
		for i, v := range ch {
			mixed[i] += v
		}
	}
	for i := range mixed {
		mixed[i] *= scale
	}

	return NewSignal(mixed, buf.SampleRate)
}
