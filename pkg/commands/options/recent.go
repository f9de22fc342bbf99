package options

import (
	"github.com/spf13/cobra"
)

// RecentOptions bound the recent tag scan. Zero means the configured value.
type RecentOptions struct {
	Limit int
	Depth int
}

func AddRecentArgs(cmd *cobra.Command, o *RecentOptions) {
	cmd.Flags().IntVar(&o.Limit, "limit", 0,
		"Number of tags to return (5-50).")
	cmd.Flags().IntVar(&o.Depth, "depth", 0,
		"Number of newest notes to search (50-1000).")
}
