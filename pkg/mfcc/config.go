package mfcc

import "fmt"

// WindowType selects the tapering function applied to analysis frames.
type WindowType string

const (
	WindowHamming     WindowType = "hamming"
	WindowHann        WindowType = "hann"
	WindowPovey       WindowType = "povey"
	WindowBlackman    WindowType = "blackman"
	WindowRectangular WindowType = "rectangular"
)

// Config holds all MFCC extraction parameters. Frame geometry is given
// in milliseconds and resolved against SampleRate.
type Config struct {
	SampleRate     int        `mapstructure:"sample_rate" yaml:"sample_rate"`
	FrameLengthMs  float64    `mapstructure:"frame_length_ms" yaml:"frame_length_ms"`
	FrameShiftMs   float64    `mapstructure:"frame_shift_ms" yaml:"frame_shift_ms"`
	Window         WindowType `mapstructure:"window" yaml:"window"`
	PreEmphasis    float64    `mapstructure:"pre_emphasis" yaml:"pre_emphasis"`
	Dither         float64    `mapstructure:"dither" yaml:"dither"`
	NumMelFilters  int        `mapstructure:"num_mel_filters" yaml:"num_mel_filters"`
	LowFreq        float64    `mapstructure:"low_freq" yaml:"low_freq"`
	HighFreq       float64    `mapstructure:"high_freq" yaml:"high_freq"` // <= 0 means Nyquist
	NumCeps        int        `mapstructure:"num_ceps" yaml:"num_ceps"`
	CepstralLifter float64    `mapstructure:"cepstral_lifter" yaml:"cepstral_lifter"` // 0 disables liftering
	UseEnergy      bool       `mapstructure:"use_energy" yaml:"use_energy"`           // replace c0 with frame log-energy
	PadTail        bool       `mapstructure:"pad_tail" yaml:"pad_tail"`               // zero-pad the trailing partial frame instead of dropping it
}

// DefaultConfig returns the standard extraction configuration.
func DefaultConfig() Config {
	return Config{
		SampleRate:     16000,
		FrameLengthMs:  25.0,
		FrameShiftMs:   10.0,
		Window:         WindowPovey,
		PreEmphasis:    0.97,
		Dither:         0.0,
		NumMelFilters:  23,
		LowFreq:        20.0,
		HighFreq:       0.0,
		NumCeps:        13,
		CepstralLifter: 22.0,
		UseEnergy:      false,
		PadTail:        false,
	}
}

// FrameLength returns the frame length in samples.
func (c Config) FrameLength() int {
	return int(c.FrameLengthMs * float64(c.SampleRate) / 1000.0)
}

// FrameShift returns the frame shift in samples.
func (c Config) FrameShift() int {
	return int(c.FrameShiftMs * float64(c.SampleRate) / 1000.0)
}

// FFTSize returns the transform length: the next power of two at or
// above the frame length.
func (c Config) FFTSize() int {
	n := 1
	for n < c.FrameLength() {
		n <<= 1
	}
	return n
}

// Nyquist returns half the sample rate in Hz.
func (c Config) Nyquist() float64 {
	return float64(c.SampleRate) / 2.0
}

// EffectiveHighFreq resolves HighFreq, substituting Nyquist when unset.
func (c Config) EffectiveHighFreq() float64 {
	if c.HighFreq <= 0 {
		return c.Nyquist()
	}
	return c.HighFreq
}

// Validate checks parameter consistency.
func (c Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive, got %d", c.SampleRate)
	}
	if c.FrameLengthMs <= 0 || c.FrameShiftMs <= 0 {
		return fmt.Errorf("frame length and shift must be positive, got %.1fms/%.1fms",
			c.FrameLengthMs, c.FrameShiftMs)
	}
	if c.FrameShiftMs > c.FrameLengthMs {
		return fmt.Errorf("frame shift %.1fms exceeds frame length %.1fms", c.FrameShiftMs, c.FrameLengthMs)
	}
	if c.FrameLength() < 2 {
		return fmt.Errorf("frame length %.1fms is under two samples at %d Hz", c.FrameLengthMs, c.SampleRate)
	}
	if c.FrameShift() < 1 {
		return fmt.Errorf("frame shift %.2fms is under one sample at %d Hz", c.FrameShiftMs, c.SampleRate)
	}
	if c.NumMelFilters <= 0 {
		return fmt.Errorf("number of mel filters must be positive, got %d", c.NumMelFilters)
	}
	if c.NumCeps <= 0 || c.NumCeps > c.NumMelFilters {
		return fmt.Errorf("number of cepstral coefficients must be in [1, %d], got %d",
			c.NumMelFilters, c.NumCeps)
	}
	if c.LowFreq < 0 {
		return fmt.Errorf("low frequency cutoff cannot be negative, got %.1f", c.LowFreq)
	}
	if c.EffectiveHighFreq() <= c.LowFreq {
		return fmt.Errorf("high frequency cutoff %.1f must exceed low cutoff %.1f",
			c.EffectiveHighFreq(), c.LowFreq)
	}
	if c.EffectiveHighFreq() > c.Nyquist() {
		return fmt.Errorf("high frequency cutoff %.1f exceeds Nyquist %.1f",
			c.EffectiveHighFreq(), c.Nyquist())
	}
	if c.PreEmphasis < 0 || c.PreEmphasis >= 1 {
		return fmt.Errorf("pre-emphasis coefficient must be in [0, 1), got %.3f", c.PreEmphasis)
	}
	switch c.Window {
	case WindowHamming, WindowHann, WindowPovey, WindowBlackman, WindowRectangular:
	default:
		return fmt.Errorf("unknown window type %q", c.Window)
	}
	return nil
}
