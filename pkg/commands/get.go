package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/massadd/pkg/commands/options"
	"tableflip.dev/massadd/pkg/runner/get"
)

func addGet(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	var category string

	cmd := &cobra.Command{
		Use:   "get [id...]",
		Short: "Print notes by id, by category, or all of them",
		Example: `
massadd get
massadd get --category Japanese
massadd get 0190a1b2c3d4e5f60718293a4b5c6d7e
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv()
			if err != nil {
				return output.HandleError(err)
			}
			g := get.Get{
				Service:  e.svc,
				IDs:      args,
				Category: category,
				ShowID:   io.ShowID,
				JSON:     output.JSON,
				Out:      cmd.OutOrStdout(),
			}
			return output.HandleError(g.Do(cmd.Context()))
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Only print this category.")
	_ = cmd.RegisterFlagCompletionFunc("category", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return categoryCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
	})
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
