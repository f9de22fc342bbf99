package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/massadd/pkg/commands/options"
	"tableflip.dev/massadd/pkg/recent"
	"tableflip.dev/massadd/pkg/runner/tags"
)

func addTags(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Work with tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addTagsRecent(cmd)

	topLevel.AddCommand(cmd)
}

func addTagsRecent(topLevel *cobra.Command) {
	ro := &options.RecentOptions{}

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List tags used on the newest notes",
		Example: `
massadd tags recent
massadd tags recent --limit 20 --depth 500
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv()
			if err != nil {
				return output.HandleError(err)
			}
			limit, depth := e.settings.RecentLimit, e.settings.RecentDepth
			if ro.Limit > 0 {
				limit = recent.Clamp(ro.Limit, recent.MinLimit, recent.MaxLimit)
			}
			if ro.Depth > 0 {
				depth = recent.Clamp(ro.Depth, recent.MinDepth, recent.MaxDepth)
			}
			r := tags.Recent{
				Service: e.svc,
				Limit:   limit,
				Depth:   depth,
				JSON:    output.JSON,
				Out:     cmd.OutOrStdout(),
			}
			return output.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddRecentArgs(cmd, ro)

	topLevel.AddCommand(cmd)
}
