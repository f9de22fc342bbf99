package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/massadd/pkg/commands/options"
	"tableflip.dev/massadd/pkg/runner/report"
	"tableflip.dev/massadd/pkg/timeutil"
)

func addReport(topLevel *cobra.Command) {
	var last string
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Display recently added notes grouped by category",
		Long: `Report lists the notes added within the specified time window, grouped by
category, with a count of the tags they carry.

Examples:
  massadd report
  massadd report --last 3d
  massadd report --last 1w2d`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			window, err := timeutil.ParseWindow(last)
			if err != nil {
				return output.HandleError(err)
			}
			e, err := loadEnv()
			if err != nil {
				return output.HandleError(err)
			}
			r := report.Report{
				Service: e.svc,
				Window:  window,
				ShowID:  io.ShowID,
				JSON:    output.JSON,
				Out:     cmd.OutOrStdout(),
			}
			return output.HandleError(r.Do(cmd.Context()))
		},
	}

	cmd.Flags().StringVar(&last, "last", timeutil.DefaultWindow, "time window to include (for example 3d, 1w)")
	options.AddShowIDArgs(cmd, io)
	topLevel.AddCommand(cmd)
}
