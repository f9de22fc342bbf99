package commands

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tableflip.dev/massadd/pkg/runner/watch"
)

func addWatch(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print a line whenever notes, categories or record types change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv()
			if err != nil {
				return output.HandleError(err)
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			w := watch.Watch{Service: e.svc, Out: cmd.OutOrStdout(), Logger: e.log}
			return output.HandleError(w.Do(ctx))
		},
	}

	topLevel.AddCommand(cmd)
}
