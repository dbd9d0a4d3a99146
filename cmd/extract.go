package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/RyanBlaney/mfcc-extract/configs"
	"github.com/RyanBlaney/mfcc-extract/internal/extractor"
	"github.com/RyanBlaney/mfcc-extract/pkg/logging"
	"github.com/RyanBlaney/mfcc-extract/pkg/sink"
	"github.com/RyanBlaney/mfcc-extract/pkg/source"
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract [flags] <wav-files...>",
	Short: "Extract MFCC features from WAV files",
	Long: `Extract MFCC feature matrices from uncompressed PCM WAV files and
write them to a feature archive, one record per file, keyed by the file
base name.

Source sample rates must be integer multiples of the target rate;
multi-channel audio is averaged to mono before extraction.

Examples:
  # Extract with defaults into features.mpk
  mfcc-extract extract recordings/*.wav

  # 8 kHz features with 23 mel filters, standardized per utterance
  mfcc-extract extract --sample-rate 8000 --num-mel-filters 23 --standardize *.wav

  # Skip unreadable files and anything under half a second
  mfcc-extract extract --permissive --min-duration 500ms --out feats.mpk *.wav

  # JSON lines output for debugging
  mfcc-extract extract --format json --out feats.jsonl utt1.wav utt2.wav`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	flags := extractCmd.Flags()

	// Output flags
	flags.StringP("out", "o", "features.mpk", "output archive path")
	flags.String("format", "msgpack", "output format (msgpack, json)")

	// Batch flags
	flags.Duration("min-duration", 0, "skip utterances shorter than this duration")
	flags.Bool("permissive", false, "skip failed utterances instead of aborting")
	flags.Int("workers", 0, "parallel workers (0 = number of CPUs)")
	flags.Bool("standardize", false, "zero-mean/unit-variance normalization per utterance")

	// Feature flags
	flags.Int("sample-rate", 16000, "target sample rate in Hz (integer decimation only)")
	flags.Float64("frame-length", 25.0, "frame length in milliseconds")
	flags.Float64("frame-shift", 10.0, "frame shift in milliseconds")
	flags.String("window", "povey", "window function (hamming, hann, povey, blackman, rectangular)")
	flags.Float64("pre-emphasis", 0.97, "pre-emphasis coefficient")
	flags.Float64("dither", 0, "dither amount added before pre-emphasis")
	flags.Int("num-mel-filters", 23, "number of triangular mel filters")
	flags.Float64("low-freq", 20, "filter bank low frequency cutoff in Hz")
	flags.Float64("high-freq", 0, "filter bank high frequency cutoff in Hz (0 = Nyquist)")
	flags.Int("num-ceps", 13, "number of cepstral coefficients")
	flags.Float64("cepstral-lifter", 22, "liftering coefficient (0 disables)")
	flags.Bool("use-energy", false, "replace c0 with frame log-energy")
	flags.Bool("pad-tail", false, "zero-pad the trailing partial frame instead of dropping it")

	viper.BindPFlag("output.path", flags.Lookup("out"))
	viper.BindPFlag("output.format", flags.Lookup("format"))
	viper.BindPFlag("batch.min_duration", flags.Lookup("min-duration"))
	viper.BindPFlag("batch.permissive", flags.Lookup("permissive"))
	viper.BindPFlag("batch.workers", flags.Lookup("workers"))
	viper.BindPFlag("batch.standardize", flags.Lookup("standardize"))
	viper.BindPFlag("feature.sample_rate", flags.Lookup("sample-rate"))
	viper.BindPFlag("feature.frame_length_ms", flags.Lookup("frame-length"))
	viper.BindPFlag("feature.frame_shift_ms", flags.Lookup("frame-shift"))
	viper.BindPFlag("feature.window", flags.Lookup("window"))
	viper.BindPFlag("feature.pre_emphasis", flags.Lookup("pre-emphasis"))
	viper.BindPFlag("feature.dither", flags.Lookup("dither"))
	viper.BindPFlag("feature.num_mel_filters", flags.Lookup("num-mel-filters"))
	viper.BindPFlag("feature.low_freq", flags.Lookup("low-freq"))
	viper.BindPFlag("feature.high_freq", flags.Lookup("high-freq"))
	viper.BindPFlag("feature.num_ceps", flags.Lookup("num-ceps"))
	viper.BindPFlag("feature.cepstral_lifter", flags.Lookup("cepstral-lifter"))
	viper.BindPFlag("feature.use_energy", flags.Lookup("use-energy"))
	viper.BindPFlag("feature.pad_tail", flags.Lookup("pad-tail"))
}

func runExtract(cmd *cobra.Command, args []string) error {
	config, err := configs.LoadConfig()
	if err != nil {
		return err
	}
	if err := configs.ValidateConfig(config); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := newLogger()
	logger.Info("starting extraction", logging.Fields{
		"files":       len(args),
		"sample_rate": config.Feature.SampleRate,
		"output":      config.Output.Path,
		"format":      config.Output.Format,
	})

	snk, err := openSink(config.Output)
	if err != nil {
		return err
	}
	defer snk.Close()

	runner, err := extractor.NewRunner(config.Feature, extractor.Options{
		MinDuration: config.Batch.MinDuration,
		Standardize: config.Batch.Standardize,
		Permissive:  config.Batch.Permissive,
		Workers:     config.Batch.Workers,
	}, logger)
	if err != nil {
		return err
	}

	start := time.Now()
	summary, err := runner.Run(context.Background(), source.NewFileSource(args), snk)
	if err != nil {
		return err
	}
	if err := snk.Close(); err != nil {
		return fmt.Errorf("closing feature archive: %w", err)
	}

	fmt.Printf("Processed: %d  Skipped (short): %d  Failed: %d  Frames: %d  (%.2fs)\n",
		summary.Processed, summary.SkippedShort, summary.Failed, summary.TotalFrames,
		time.Since(start).Seconds())

	if summary.Processed == 0 && summary.Failed > 0 {
		return fmt.Errorf("all %d utterances failed", summary.Failed)
	}
	return nil
}

// openSink creates the configured feature sink.
func openSink(cfg configs.OutputConfig) (sink.Sink, error) {
	switch cfg.Format {
	case "json":
		return sink.CreateJSONFile(cfg.Path)
	default:
		return sink.CreateArchiveFile(cfg.Path)
	}
}
