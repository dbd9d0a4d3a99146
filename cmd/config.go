package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/RyanBlaney/mfcc-extract/configs"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Load and display the effective configuration as YAML, after merging
defaults, the config file, environment variables, and flags.

Examples:
  # Show defaults
  mfcc-extract config

  # Verify a config file parses the way you expect
  mfcc-extract --config ./mfcc-extract.yaml config`,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	config, err := configs.LoadConfig()
	if err != nil {
		return err
	}
	if err := configs.ValidateConfig(config); err != nil {
		fmt.Fprintf(os.Stderr, "warning: configuration is invalid: %v\n", err)
	}

	out, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("encoding configuration: %w", err)
	}

	_, err = os.Stdout.Write(out)
	return err
}
