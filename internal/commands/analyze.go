package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/wiztriage/wiztriage/internal/adapters/reporting"
	"github.com/wiztriage/wiztriage/internal/adapters/storage"
	"github.com/wiztriage/wiztriage/internal/adapters/tabular"
	"github.com/wiztriage/wiztriage/internal/core/ports"
	"github.com/wiztriage/wiztriage/internal/core/services/analyze"
	"github.com/wiztriage/wiztriage/internal/profiles"
	"github.com/wiztriage/wiztriage/internal/telemetry"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <report.csv>",
	Short: "Classify a report export and print the severity summary",
	Long: `Loads a vulnerability report CSV, partitions its findings into ownership
groups using the selected profile, and prints the severity summary matrix.
Per-group CSVs, a SQLite workspace, and a PDF summary can be written as well.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return runAnalyze(cmd.Context(), args[0])
	},
}

func runAnalyze(ctx context.Context, input string) error {
	if cfg.Trace {
		shutdown, err := telemetry.InitTracer(Version)
		if err != nil {
			slog.Error("Failed to init tracer", "error", err)
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					slog.Error("Failed to shutdown tracer", "error", err)
				}
			}()
		}
	}

	registry := profiles.NewRegistry()
	if cfg.ProfilesDir != "" {
		if err := registry.LoadDir(cfg.ProfilesDir); err != nil {
			return err
		}
	}
	profile, err := registry.Get(cfg.Profile)
	if err != nil {
		return err
	}

	spinner := pterm.DefaultSpinner
	loading, _ := spinner.Start(fmt.Sprintf("Loading %s", input))
	table, err := tabular.NewCSVSource().Load(input)
	if err != nil {
		loading.Fail(err.Error())
		return err
	}
	loading.Success(fmt.Sprintf("Loaded %d records", table.Len()))

	period := tabular.Period(input)
	if period != "" {
		slog.Info("reporting period detected", "period", period)
	}

	analysis, err := analyze.NewAnalyzer().Run(ctx, table, profile, input, period)
	if err != nil {
		return err
	}

	if err := reporting.NewConsoleRenderer().Render(analysis); err != nil {
		return err
	}

	exporters := []ports.Exporter{}
	if writeGroups {
		exporters = append(exporters, tabular.NewCSVWriter(cfg.OutDir))
	}
	if cfg.PDFPath != "" {
		exporters = append(exporters, reporting.NewPDFExporter(cfg.PDFPath))
	}
	if cfg.DBPath != "" {
		store, err := storage.NewSQLiteStore(cfg.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()
		exporters = append(exporters, store)
	}

	for _, exporter := range exporters {
		if err := exporter.Export(ctx, analysis); err != nil {
			return err
		}
	}

	pterm.Success.Println("Analysis completed")
	return nil
}

var writeGroups bool

func init() {
	analyzeCmd.Flags().BoolVar(&writeGroups, "write-groups", false, "Write one CSV per group plus a summary CSV")
	analyzeCmd.Flags().StringVarP(&cfg.OutDir, "out-dir", "o", cfg.OutDir, "Directory for group/summary CSVs")
	analyzeCmd.Flags().StringVar(&cfg.PDFPath, "pdf", cfg.PDFPath, "Write a PDF summary report to this path")
	analyzeCmd.Flags().StringVar(&cfg.DBPath, "db", cfg.DBPath, "Persist the run to this SQLite workspace")

	rootCmd.AddCommand(analyzeCmd)
}
