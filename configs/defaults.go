package configs

import (
	"runtime"
	"time"

	"github.com/spf13/viper"

	"github.com/RyanBlaney/mfcc-extract/pkg/mfcc"
)

// SetDefaults sets default configuration values for all components
func SetDefaults(v *viper.Viper) {
	feature := mfcc.DefaultConfig()

	// Feature extraction defaults
	if !v.IsSet("feature.sample_rate") {
		v.Set("feature.sample_rate", feature.SampleRate)
	}
	if !v.IsSet("feature.frame_length_ms") {
		v.Set("feature.frame_length_ms", feature.FrameLengthMs)
	}
	if !v.IsSet("feature.frame_shift_ms") {
		v.Set("feature.frame_shift_ms", feature.FrameShiftMs)
	}
	if !v.IsSet("feature.window") {
		v.Set("feature.window", string(feature.Window))
	}
	if !v.IsSet("feature.pre_emphasis") {
		v.Set("feature.pre_emphasis", feature.PreEmphasis)
	}
	if !v.IsSet("feature.dither") {
		v.Set("feature.dither", feature.Dither)
	}
	if !v.IsSet("feature.num_mel_filters") {
		v.Set("feature.num_mel_filters", feature.NumMelFilters)
	}
	if !v.IsSet("feature.low_freq") {
		v.Set("feature.low_freq", feature.LowFreq)
	}
	if !v.IsSet("feature.high_freq") {
		v.Set("feature.high_freq", feature.HighFreq)
	}
	if !v.IsSet("feature.num_ceps") {
		v.Set("feature.num_ceps", feature.NumCeps)
	}
	if !v.IsSet("feature.cepstral_lifter") {
		v.Set("feature.cepstral_lifter", feature.CepstralLifter)
	}
	if !v.IsSet("feature.use_energy") {
		v.Set("feature.use_energy", feature.UseEnergy)
	}
	if !v.IsSet("feature.pad_tail") {
		v.Set("feature.pad_tail", feature.PadTail)
	}

	// Batch defaults
	if !v.IsSet("batch.min_duration") {
		v.Set("batch.min_duration", 0*time.Second)
	}
	if !v.IsSet("batch.permissive") {
		v.Set("batch.permissive", false)
	}
	if !v.IsSet("batch.workers") {
		v.Set("batch.workers", runtime.NumCPU())
	}
	if !v.IsSet("batch.standardize") {
		v.Set("batch.standardize", false)
	}

	// Output defaults
	if !v.IsSet("output.path") {
		v.Set("output.path", "features.mpk")
	}
	if !v.IsSet("output.format") {
		v.Set("output.format", "msgpack")
	}

	// Application defaults
	if !v.IsSet("verbose") {
		v.Set("verbose", false)
	}
	if !v.IsSet("log_level") {
		v.Set("log_level", "info")
	}
}
