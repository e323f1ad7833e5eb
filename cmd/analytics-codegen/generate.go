package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"analytics-codegen/internal/config"
	"analytics-codegen/internal/emit"
	"analytics-codegen/internal/generate"
	"analytics-codegen/internal/source"
	"analytics-codegen/internal/taxonomy"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate tracking functions into the output file",
	Long: `Reads the event table, validates it against the taxonomy and merges the
generated functions into the output file. The file is replaced atomically and
only when its content changes.

Example:
  analytics-codegen generate -i events.csv -t taxonomy.yaml -o tracking_gen.go`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd, false)
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the output file is up to date without writing it",
	Long: `Runs generation without writing. Exits non-zero when the table has errors
or when the output file would change. Intended for CI.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd, true)
	},
}

func runGenerate(cmd *cobra.Command, dryRun bool) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := generateOnce(ctx, cfg, logger, dryRun)
	if err != nil {
		return err
	}

	printReport(cmd.OutOrStdout(), report, cfg.Output)

	if report.Failed() {
		return errFailed
	}

	if dryRun && report.Changed {
		return fmt.Errorf("%w: %s is out of date", errFailed, cfg.Output)
	}

	return nil
}

// generateOnce prepares the pipeline from cfg and runs it. Setup failures
// are returned as errors; everything after setup is described by the report.
func generateOnce(ctx context.Context, cfg config.Config, logger *zap.Logger, dryRun bool) (*generate.Report, error) {
	registry, err := taxonomy.LoadFile(cfg.Taxonomy)
	if err != nil {
		return nil, fmt.Errorf("loading taxonomy: %w", err)
	}

	emitter, err := emit.Lookup(cfg.Language, cfg.EmitConfig())
	if err != nil {
		return nil, err
	}

	src, err := source.Parse(cfg.Input)
	if err != nil {
		return nil, err
	}

	loader := source.NewLoader(source.LoaderOptions{
		Ingest:   cfg.IngestOptions(),
		Timeout:  cfg.SheetTimeout,
		RetryMax: 3,
		Logger:   logger,
	})

	rows, err := loader.Load(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", src, err)
	}

	driver := &generate.Driver{
		Registry: registry,
		Emitter:  emitter,
		Options:  cfg.DriverOptions(),
		Logger:   logger,
	}

	return driver.Run(ctx, rows, cfg.Output, dryRun), nil
}
