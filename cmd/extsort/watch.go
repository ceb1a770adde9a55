package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"extsort/internal/report"
	"extsort/internal/watch"

	"github.com/spf13/cobra"
)

func newWatchCmd(opts *options) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Keep a directory organized as new files arrive",
		Long: `Organize the target directory once, then keep watching it and sort new
files as they appear. Press Ctrl+C to stop.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sink, err := report.New(opts.output, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			dir, err := targetDir(opts)
			if err != nil {
				return err
			}
			engine, err := newEngine(opts, dir)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if opts.output != report.FormatJSON {
				fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s. Press Ctrl+C to stop.\n", dir)
			}
			runner := &watch.Runner{Organizer: engine, Dir: dir, Sink: sink, Debounce: debounce}
			return runner.Run(ctx)
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "Quiet period after the last new file before sorting")
	return cmd
}
