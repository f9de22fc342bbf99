package options

import (
	"github.com/spf13/cobra"
)

// DestinationOptions pick where new notes go.
type DestinationOptions struct {
	Category string
	Type     string
}

// AddDestinationArgs wires --category and --type. Empty values fall back to
// default_category and default_type.
func AddDestinationArgs(cmd *cobra.Command, o *DestinationOptions) {
	cmd.Flags().StringVarP(&o.Category, "category", "c", "",
		"Category (deck) to add notes to.")
	cmd.Flags().StringVarP(&o.Type, "type", "t", "",
		"Record type whose fields the tab separated columns fill.")
}
