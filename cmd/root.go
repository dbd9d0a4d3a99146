package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/RyanBlaney/mfcc-extract/configs"
	"github.com/RyanBlaney/mfcc-extract/pkg/logging"
)

var (
	configFile string
	verbose    bool
	logLevel   string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mfcc-extract",
	Short: "MFCC feature extraction for speech audio",
	Long: `A batch MFCC feature extractor for uncompressed PCM audio.

The tool decodes WAV files, downsamples by integer decimation, mixes to
mono, and runs the standard MFCC pipeline: pre-emphasis, framing and
windowing, FFT power spectrum, triangular mel filter bank, log, and a
type-II DCT with optional liftering. Per-utterance feature matrices are
written to a msgpack archive or JSON lines, keyed by file name.

Key features:
- Configurable frame geometry, window, filter bank, and lifter
- Optional per-utterance zero-mean/unit-variance standardization
- Minimum-duration filtering and permissive batch mode
- Parallel extraction across utterances with ordered output`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd, viper.GetViper())
	},
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default is $HOME/.config/mfcc-extract/mfcc-extract.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"verbose output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"log level (debug, info, warn, error)")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			os.Exit(1)
		}

		viper.AddConfigPath(filepath.Join(home, ".config", "mfcc-extract"))
		viper.AddConfigPath("/etc/mfcc-extract")
		viper.AddConfigPath(".")
		viper.SetConfigName("mfcc-extract")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("MFCC_EXTRACT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
		}
	}

	// Fill in everything the config file left unset
	configs.SetDefaults(viper.GetViper())
}

// bindFlags binds each cobra flag to its associated viper configuration
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	var lastErr error

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		envVarSuffix := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))

		// Apply the viper config value to the flag when the flag is not set and viper has a value
		if !f.Changed && v.IsSet(f.Name) {
			val := v.Get(f.Name)
			if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)); err != nil {
				lastErr = err
			}
		}

		if err := v.BindEnv(f.Name, "MFCC_EXTRACT_"+envVarSuffix); err != nil {
			lastErr = err
		}
	})

	return lastErr
}

// newLogger builds the command logger from global flags.
func newLogger() logging.Logger {
	level := viper.GetString("log_level")
	if viper.GetBool("verbose") {
		level = "debug"
	}
	return logging.NewLogger(level)
}
