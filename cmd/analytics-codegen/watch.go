package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"analytics-codegen/internal/source"
	"analytics-codegen/internal/watch"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate whenever the event table or taxonomy changes",
	Long: `Runs generate once, then again each time the local event table or the
taxonomy file is saved. Google Sheets inputs cannot be watched.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watch.DefaultDebounce, "quiet period before regenerating")
}

func runWatch(cmd *cobra.Command, args []string) error {
	src, err := source.Parse(cfg.Input)
	if err != nil {
		return err
	}

	if src.Kind != source.KindFile {
		return errors.New("watch needs a local input file")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := watch.NewWatcher(watchDebounce)
	if err != nil {
		return err
	}
	defer w.Close()

	for _, path := range []string{src.Path, cfg.Taxonomy} {
		if err := w.Watch(path); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()

	regenerate := func(ctx context.Context, paths []string) error {
		logger.Info("Regenerating", zap.Strings("changed", paths))

		report, err := generateOnce(ctx, cfg, logger, false)
		if err != nil {
			return err
		}

		printReport(out, report, cfg.Output)

		return nil
	}

	w.OnChange = regenerate
	w.OnError = func(path string, err error) {
		logger.Error("Watch error", zap.String("path", path), zap.Error(err))
	}

	if err := regenerate(ctx, nil); err != nil {
		logger.Error("Initial generation failed", zap.Error(err))
	}

	logger.Info("Watching for changes",
		zap.String("input", src.Path),
		zap.String("taxonomy", cfg.Taxonomy),
	)

	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return nil
}
