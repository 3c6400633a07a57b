package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/GoCodeAlone/femglue/model"
	"github.com/GoCodeAlone/femglue/watch"
)

// NewWatchCommand creates the watch command
func NewWatchCommand(opts *globalOptions) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch FILE",
		Short: "Re-validate a geometry document every time it changes",
		Long: `Watch a geometry document and print a fresh report after every change.
Invalid documents print the validation errors and watching continues.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			w, err := watch.New(args[0], func(m *model.Model, err error) {
				stamp := time.Now().Format(time.TimeOnly)
				if err != nil {
					fmt.Fprintf(out, "[%s] invalid geometry:\n%s\n", stamp, err)
					return
				}
				fmt.Fprintf(out, "[%s] geometry ok\n", stamp)
				if err := m.Report().WriteText(out); err != nil {
					fmt.Fprintf(out, "failed to write report: %s\n", err)
				}
			},
				watch.WithDebounce(debounce),
				watch.WithLogger(opts.logger.WithComponent("watch")),
				watch.WithPrepare(func(path string) error {
					return applyDocumentConfig(cmd, opts, path)
				}),
			)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "watching %s\n", w.Path())

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return w.Run(ctx)
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "quiet period before reloading")

	return cmd
}
