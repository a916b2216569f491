package cmd

import (
	"context"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vispy/rfbkit/internal/config"
	rfbotel "github.com/vispy/rfbkit/internal/otel"
)

// Version is injected at build time via -ldflags.
var Version = "dev"

var (
	// Global flags.
	flagQuality int
	flagVerbose bool
)

// cfg is the resolved configuration, loaded before any command runs.
var cfg *config.Config

// telemetry is non-nil once the root command has run its setup.
var telemetry *rfbotel.Telemetry

var rootCmd = &cobra.Command{
	Use:   "rfbkit",
	Short: "Frame encoding and notebook post-processing for the rfb widget",
	Long: `rfbkit is the offline companion to the remote-frame-buffer notebook widget.

It encodes pixel data with the same policy the widget uses for live
frames (JPEG-XL when available, else PNG for lossless, else JPEG with a
PNG fallback), renders static HTML snapshots, and strips redundant
widget-view outputs from notebook files so rendered documentation shows
the snapshot instead of a dead widget.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if !cmd.Flags().Changed("quality") {
			flagQuality = cfg.Quality
		}

		rfbotel.Version = Version
		telemetry, err = rfbotel.Init(cmd.Context(), rfbotel.OTELConfig{
			Endpoint: cfg.OTELEndpoint,
			Headers:  cfg.OTELHeaders,
		})
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if telemetry != nil {
			telemetry.Shutdown(context.Background())
		}
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = Version
	rootCmd.PersistentFlags().IntVar(&flagQuality, "quality", envIntOrDefault("RFBKIT_QUALITY", 90), "encoding quality 0-100; 100 is lossless")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "print per-file details")
}

func envIntOrDefault(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}
