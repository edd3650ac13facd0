package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"winnow/internal/batch"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Preview which recordings a run would pick up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			candidates, err := batch.Discover(cfg)
			if err != nil {
				return fmt.Errorf("discover candidates: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(candidates) == 0 {
				fmt.Fprintf(out, "No recordings found under %s\n", cfg.Paths.InputDir)
				return nil
			}

			rows := make([][]string, 0, len(candidates))
			for _, candidate := range candidates {
				rel, err := filepath.Rel(cfg.Paths.InputDir, candidate.Source)
				if err != nil {
					rel = candidate.Source
				}
				rows = append(rows, []string{rel, candidate.OutputDir})
			}
			fmt.Fprintln(out, renderTable([]string{"Recording", "Output Directory"}, rows, nil, isTerminal(out)))
			fmt.Fprintf(out, "%d recordings, %d workers\n", len(candidates), cfg.Workers())
			return nil
		},
	}
}
