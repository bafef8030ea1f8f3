// Package cmd defines the tailship command-line surface.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/nroldan/tailship/internal/config"
	"github.com/nroldan/tailship/internal/flutter"
	"github.com/nroldan/tailship/internal/pipeline"
	"github.com/nroldan/tailship/internal/runner"
)

var (
	flagDebug   bool
	flagRelease bool
	flagDevice  string
	flagYes     bool
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "tailship",
	Short: "Build a Flutter APK and ship it to a Tailscale peer",
	Long: `Tailship builds a Flutter APK, stamps it with a timestamp, and sends it
to a named device on your tailnet with 'tailscale file cp'.

Run it from a Flutter project root. Exactly one of --debug or --release
is required.

Examples:
  tailship --debug                 # debug APK to the configured device
  tailship --release --device pixel
  tailship watch --debug           # rebuild and ship on source changes`,
	Version:       "1.0.0",
	SilenceErrors: true,
	RunE:          runShip,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	addVariantFlags(rootCmd)
	rootCmd.PersistentFlags().StringVarP(&flagDevice, "device", "d", "", "target Tailscale device (overrides TAILSHIP_DEVICE and config)")
	rootCmd.PersistentFlags().BoolVarP(&flagYes, "yes", "y", false, "skip confirmation prompts")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "stream toolchain output instead of a spinner")
}

// addVariantFlags registers the mutually exclusive, one-required build
// variant flags on a command.
func addVariantFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&flagDebug, "debug", false, "build a debug APK")
	cmd.Flags().BoolVar(&flagRelease, "release", false, "build a release APK")
	cmd.MarkFlagsOneRequired("debug", "release")
	cmd.MarkFlagsMutuallyExclusive("debug", "release")
}

func selectedVariant() flutter.Variant {
	if flagDebug {
		return flutter.Debug
	}
	return flutter.Release
}

// loadEnvironment reads the project config, honoring a .env file first.
func loadEnvironment(root string) (*config.Config, error) {
	_ = godotenv.Load() // optional .env, missing is fine

	cfg, err := config.Load(root)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func newPipeline(root string, cfg *config.Config) (*pipeline.Pipeline, error) {
	return pipeline.New(pipeline.Options{
		Root:      root,
		Variant:   selectedVariant(),
		Device:    config.ResolveDevice(flagDevice, cfg),
		Config:    cfg,
		Runner:    runner.New(root, flagVerbose),
		Verbose:   flagVerbose,
		AssumeYes: flagYes,
	})
}

func runShip(cmd *cobra.Command, args []string) error {
	root, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	cfg, err := loadEnvironment(root)
	if err != nil {
		return err
	}

	p, err := newPipeline(root, cfg)
	if err != nil {
		return err
	}

	return p.Run(context.Background())
}
