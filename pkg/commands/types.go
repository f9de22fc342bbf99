package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/massadd/pkg/runner/types"
)

func addTypes(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "types",
		Aliases: []string{"type"},
		Short:   "List and edit record types",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addTypesList(cmd)
	addTypesAdd(cmd)
	addTypesRemove(cmd)

	topLevel.AddCommand(cmd)
}

func addTypesList(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List record types and their fields",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv()
			if err != nil {
				return output.HandleError(err)
			}
			l := types.List{Service: e.svc, JSON: output.JSON, Out: cmd.OutOrStdout()}
			return output.HandleError(l.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}

func addTypesAdd(topLevel *cobra.Command) {
	var name string

	cmd := &cobra.Command{
		Use:   "add <id> <field>...",
		Short: "Add or replace a record type",
		Example: `
massadd types add vocab Word Reading Meaning --name Vocabulary
`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv()
			if err != nil {
				return output.HandleError(err)
			}
			d := types.Define{
				Service: e.svc,
				ID:      args[0],
				Name:    strings.TrimSpace(name),
				Fields:  args[1:],
				Out:     cmd.OutOrStdout(),
			}
			return output.HandleError(d.Do(cmd.Context()))
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name of the record type.")

	topLevel.AddCommand(cmd)
}

func addTypesRemove(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove"},
		Short:   "Remove a record type; existing notes are kept",
		Args:    cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return typeCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv()
			if err != nil {
				return output.HandleError(err)
			}
			r := types.Remove{Service: e.svc, ID: args[0], Out: cmd.OutOrStdout()}
			return output.HandleError(r.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}
