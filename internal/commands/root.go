package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/wiztriage/wiztriage/internal/config"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var cfg = config.Load()

var rootCmd = &cobra.Command{
	Use:   "wiztriage",
	Short: "wiztriage splits vulnerability report exports by team ownership",
	Long: `wiztriage ingests a flat vulnerability report export, partitions the
findings into mutually exclusive ownership groups (Dev, SRE, DB, ...) using a
classification profile, and produces per-group tables plus a severity summary
matrix.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if cfg.Debug {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfg.Profile, "profile", "p", cfg.Profile, "Classification profile to apply")
	rootCmd.PersistentFlags().StringVar(&cfg.ProfilesDir, "profiles-dir", cfg.ProfilesDir, "Directory with custom YAML profiles")
	rootCmd.PersistentFlags().BoolVar(&cfg.Trace, "trace", cfg.Trace, "Emit OpenTelemetry spans for pipeline stages")
	rootCmd.PersistentFlags().BoolVar(&cfg.Debug, "debug", cfg.Debug, "Enable verbose debug logging")
}
