package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"winnow/internal/config"
	"winnow/internal/retime"
)

func newRetimeCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "retime [dir]",
		Short: "Restore file timestamps from camera-stamped filenames",
		Long: "Restore file timestamps from camera-stamped filenames.\n\n" +
			"Walks the given directory (default: the configured output folder) and sets\n" +
			"access and modification times to the Unix timestamp embedded in names like\n" +
			"20210811-104712-1628671632.mp4. Files without a parseable stamp are skipped.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			dir := cfg.Paths.OutputDir
			if len(args) == 1 {
				dir, err = config.ExpandPath(args[0])
				if err != nil {
					return fmt.Errorf("resolve directory: %w", err)
				}
			}

			summary, err := retime.Restore(dir, dryRun, logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			verb := "Restored"
			if dryRun {
				verb = "Would restore"
			}
			fmt.Fprintf(out, "%s timestamps on %d files, skipped %d\n", verb, summary.Updated, summary.Skipped)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would change without touching files")
	return cmd
}
