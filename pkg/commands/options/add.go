package options

import (
	"github.com/spf13/cobra"
)

// AddOptions
type AddOptions struct {
	Marker          string
	Tags            string
	Pick            bool
	Recent          int
	Overflow        string
	ContinueOnError bool
	DryRun          bool
	Show            bool
}

func AddAddArgs(cmd *cobra.Command, o *AddOptions) {
	cmd.Flags().StringVarP(&o.Marker, "split", "s", "",
		"Break the text after every occurrence of this one character marker.")
	cmd.Flags().StringVar(&o.Tags, "tags", "",
		"Space separated tags for every note.")
	cmd.Flags().BoolVarP(&o.Pick, "pick", "p", false,
		"Pick recently used tags interactively.")
	cmd.Flags().IntVar(&o.Recent, "recent", 0,
		"Add the N most recently used tags without asking.")
	cmd.Flags().StringVar(&o.Overflow, "overflow", "",
		"Extra columns: drop, strict or merge. Overrides overflow.")
	cmd.Flags().BoolVar(&o.ContinueOnError, "continue-on-error", false,
		"Keep adding after a note fails.")
	cmd.Flags().BoolVarP(&o.DryRun, "dry-run", "n", false,
		"Show the notes that would be added without adding them.")
	cmd.Flags().BoolVar(&o.Show, "show", false,
		"Print the added notes. Defaults to show_added_notes.")
}
