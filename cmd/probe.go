package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/mfcc-extract/pkg/audio/wavfile"
	"github.com/RyanBlaney/mfcc-extract/pkg/source"
)

// probeCmd represents the probe command
var probeCmd = &cobra.Command{
	Use:   "probe <wav-files...>",
	Short: "Show sample rate, channels, and duration of WAV files",
	Long: `Decode WAV headers and PCM data and print per-file audio properties.

Useful for checking which files a minimum-duration threshold would drop
and whether source rates decimate cleanly to the target rate.

Examples:
  mfcc-extract probe recordings/*.wav`,
	Args: cobra.MinimumNArgs(1),
	RunE: runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)
}

func runProbe(cmd *cobra.Command, args []string) error {
	fmt.Printf("%-30s %10s %9s %10s\n", "KEY", "RATE", "CHANNELS", "DURATION")

	failures := 0
	for _, path := range args {
		buf, err := wavfile.DecodeFile(path)
		if err != nil {
			failures++
			fmt.Printf("%-30s error: %v\n", source.KeyForPath(path), err)
			continue
		}
		fmt.Printf("%-30s %7d Hz %9d %9.2fs\n",
			source.KeyForPath(path), buf.SampleRate, buf.NumChannels(), buf.Duration().Seconds())
	}

	if failures == len(args) {
		return fmt.Errorf("no readable files among %d inputs", len(args))
	}
	return nil
}
