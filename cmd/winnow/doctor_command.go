package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"winnow/internal/preflight"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check directories and external tools without running a batch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			checks := preflight.Run(cfg)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderChecks(checks, isTerminal(out)))
			if !preflight.Passed(checks) {
				return fmt.Errorf("environment is not ready")
			}
			return nil
		},
	}
}
