package mfcc

import (
	"fmt"
	"math"

	"github.com/RyanBlaney/mfcc-extract/pkg/audio"
	"github.com/RyanBlaney/mfcc-extract/pkg/logging"
)

// Extractor runs the full MFCC pipeline over one mono signal at a time:
// framing, spectral analysis, mel filtering, cepstral transform. It is
// stateless across calls apart from the shared read-only filter bank,
// so one Extractor may be used from multiple goroutines.
type Extractor struct {
	cfg      Config
	frames   *FrameExtractor
	spectral *SpectralAnalyzer
	melBank  *FilterBank
	cepstral *CepstralTransform
	logger   logging.Logger
}

// NewExtractor validates cfg and assembles the pipeline stages. The mel
// filter bank is fetched from the shared cache.
func NewExtractor(cfg Config, logger logging.Logger) (*Extractor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid MFCC configuration: %w", err)
	}
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}

	return &Extractor{
		cfg:      cfg,
		frames:   NewFrameExtractor(cfg),
		spectral: NewSpectralAnalyzer(cfg.FFTSize()),
		melBank: CachedFilterBank(cfg.NumMelFilters, cfg.FFTSize(), cfg.SampleRate,
			cfg.LowFreq, cfg.EffectiveHighFreq()),
		cepstral: NewCepstralTransform(cfg.NumCeps, cfg.NumMelFilters, cfg.CepstralLifter, cfg.UseEnergy),
		logger: logger.WithFields(logging.Fields{
			"component":   "mfcc_extractor",
			"sample_rate": cfg.SampleRate,
		}),
	}, nil
}

// Config returns the extractor configuration.
func (e *Extractor) Config() Config {
	return e.cfg
}

// Extract computes the feature matrix for sig. A signal shorter than
// one frame yields a matrix with zero rows; the signal sample rate must
// match the configured rate.
func (e *Extractor) Extract(sig *audio.Signal) (*FeatureMatrix, error) {
	if sig.SampleRate() != e.cfg.SampleRate {
		return nil, audio.NewProcessingError("", audio.ErrCodeUnsupportedRate,
			fmt.Sprintf("signal rate %d Hz does not match configured rate %d Hz",
				sig.SampleRate(), e.cfg.SampleRate), nil)
	}

	frames := e.frames.Frames(sig)
	out := NewFeatureMatrix(len(frames), e.cfg.NumCeps)
	if len(frames) == 0 {
		e.logger.Debug("signal shorter than one frame, empty feature matrix", logging.Fields{
			"signal_samples": sig.Len(),
			"frame_length":   e.cfg.FrameLength(),
		})
		return out, nil
	}

	for i, frame := range frames {
		power := e.spectral.PowerSpectrum(frame.Samples)
		logMel := e.melBank.Apply(power)

		logEnergy := 0.0
		if e.cfg.UseEnergy {
			logEnergy = frameLogEnergy(frame.Samples)
		}
		e.cepstral.Apply(logMel, logEnergy, out.Row(i))
	}

	e.logger.Debug("extraction complete", logging.Fields{
		"frames":   out.Rows(),
		"num_ceps": out.Cols(),
	})

	return out, nil
}

// frameLogEnergy returns log of the frame's total energy, floored like
// the mel energies.
func frameLogEnergy(frame []float64) float64 {
	sum := 0.0
	for _, v := range frame {
		sum += v * v
	}
	if sum < logFloor {
		sum = logFloor
	}
	return math.Log(sum)
}
