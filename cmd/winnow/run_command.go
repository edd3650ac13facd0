package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"winnow/internal/batch"
	"winnow/internal/job"
	"winnow/internal/ledger"
	"winnow/internal/logging"
	"winnow/internal/preflight"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Process the input tree and extract motion segments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, ctx)
		},
	}
}

func runBatch(cmd *cobra.Command, ctx *commandContext) error {
	signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := ctx.ensureConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	checks := preflight.Run(cfg)
	if !preflight.Passed(checks) {
		fmt.Fprintln(cmd.ErrOrStderr(), renderChecks(checks, isTerminal(cmd.OutOrStdout())))
		return fmt.Errorf("preflight checks failed; run `winnow doctor` for details")
	}

	release, err := batch.AcquireLock(cfg.LockPath())
	if err != nil {
		return err
	}
	defer release()

	// A broken ledger degrades the run to unrecorded, it never blocks it.
	var recorder batch.Recorder
	store, storeErr := ledger.Open(cfg.LedgerPath())
	if storeErr != nil {
		logger.Warn("run ledger unavailable", logging.Error(storeErr))
	} else {
		recorder = store
		defer store.Close()
	}

	pipeline := job.New(cfg, logger)
	runner := batch.NewRunner(cfg, logger, pipeline, recorder)
	summary, err := runner.Run(signalCtx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, batch.RenderSummary(summary, isTerminal(out)))
	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d files failed", summary.Failed, summary.Total)
	}
	return nil
}

func renderChecks(checks []preflight.Check, fancy bool) string {
	rows := make([][]string, 0, len(checks))
	for _, check := range checks {
		rows = append(rows, []string{check.Name, checkStatusLabel(check.OK, check.Warning), check.Detail})
	}
	return renderTable([]string{"Check", "Status", "Detail"}, rows, nil, fancy)
}
