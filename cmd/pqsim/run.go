package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/davidvella/pq/config"
	"github.com/davidvella/pq/eventlog"
	"github.com/davidvella/pq/simulation"
	"github.com/davidvella/pq/storage/local"
)

// Generated run logs are named run-<uuid>.log. Version 7 ids sort by creation
// time, so lexical order is chronological.
const (
	runPrefix = "run-"
	runSuffix = ".log"
)

// run executes one simulation, writes its event log and prints the analysis to out.
func run(ctx context.Context, cfg *config.Config, out io.Writer, logger *zap.Logger) error {
	runID, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("failed to generate run id: %w", err)
	}
	logger = logger.With(zap.String("run", runID.String()))

	store, err := local.NewLocalStorage(cfg.EventDir)
	if err != nil {
		return err
	}

	name := cfg.EventFile
	if name == "" {
		name = runPrefix + runID.String() + runSuffix
	}

	res, err := simulate(ctx, cfg, store, name, logger)
	if err != nil {
		return err
	}
	logger.Info("event log written", zap.String("path", store.Path(name)))

	rc, err := store.Open(ctx, name)
	if err != nil {
		return err
	}
	defer rc.Close()

	report, err := eventlog.AnalyzeReader(rc)
	if err != nil {
		return fmt.Errorf("failed to analyze %s: %w", name, err)
	}

	if err := pruneRuns(ctx, store, cfg.KeepRuns, logger); err != nil {
		return err
	}

	printReport(out, runID.String(), store.Path(name), res, report, cfg.ReportTop)
	return nil
}

// pruneRuns deletes the oldest generated run logs until at most keep remain.
// Logs with a configured name are never touched.
func pruneRuns(ctx context.Context, store *local.Storage, keep int, logger *zap.Logger) error {
	if keep <= 0 {
		return nil
	}
	names, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list run logs: %w", err)
	}

	var runs []string
	for _, name := range names {
		if strings.HasPrefix(name, runPrefix) && strings.HasSuffix(name, runSuffix) {
			runs = append(runs, name)
		}
	}
	if len(runs) <= keep {
		return nil
	}
	for _, name := range runs[:len(runs)-keep] {
		if err := store.Delete(ctx, name); err != nil {
			return err
		}
		logger.Info("run log pruned", zap.String("name", name))
	}
	return nil
}

func simulate(ctx context.Context, cfg *config.Config, store *local.Storage, name string, logger *zap.Logger) (simulation.Result, error) {
	wc, err := store.Create(ctx, name)
	if err != nil {
		return simulation.Result{}, err
	}
	w := eventlog.NewWriter(wc)

	sim, err := simulation.New(cfg.Simulation, simulation.WithLogger(logger))
	if err != nil {
		_ = w.Close()
		return simulation.Result{}, err
	}

	res, err := sim.Run(ctx, w)
	if closeErr := w.Close(); err == nil {
		err = closeErr
	}
	return res, err
}

func printReport(out io.Writer, runID, path string, res simulation.Result, report *eventlog.Report, top int) {
	label := color.New(color.FgHiWhite)
	value := color.New(color.FgHiCyan)
	warn := color.New(color.FgHiYellow)

	fmt.Fprintf(out, "%s %s\n", label.Sprint("run:"), value.Sprint(runID))
	fmt.Fprintf(out, "%s %s\n", label.Sprint("event log:"), value.Sprint(path))
	fmt.Fprintf(out, "%s %s\n", label.Sprint("steps:"), value.Sprint(res.Steps))
	fmt.Fprintf(out, "%s %s %s %s\n",
		label.Sprint("added:"), value.Sprint(report.Added),
		label.Sprint("removed:"), value.Sprint(report.Removed))
	fmt.Fprintf(out, "%s %s\n", label.Sprint("mean wait:"), value.Sprintf("%.2f steps", report.MeanWait()))

	wait, ok := report.MaxWait()
	if !ok {
		fmt.Fprintln(out, warn.Sprint("no request was served"))
		return
	}
	fmt.Fprintf(out, "%s request %s, priority %s, added at step %d, removed at step %d, waited %s\n",
		label.Sprint("max wait:"),
		value.Sprint(wait.RequestID), value.Sprint(wait.Priority),
		wait.Added, wait.Removed,
		warn.Sprintf("%d steps", wait.Steps()))

	longest := report.Longest(top)
	if len(longest) == 0 {
		return
	}
	fmt.Fprintln(out, label.Sprint("longest waits:"))
	for i, w := range longest {
		fmt.Fprintf(out, "  %2d. request %-5d priority %d  %d -> %d  (%d steps)\n",
			i+1, w.RequestID, w.Priority, w.Added, w.Removed, w.Steps())
	}
}
