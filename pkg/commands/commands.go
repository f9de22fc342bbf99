package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/massadd/pkg/commands/options"
)

var (
	output  = &options.OutputOptions{}
	globals = &options.GlobalOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "massadd",
		Short: base.Wrap80("Add many notes at once: one line of text becomes one note, tab separated columns fill its fields."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceErrors: true,
	}

	options.AddGlobalArgs(cmd, globals)
	options.AddOutputArg(cmd, output)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addAdd(topLevel)
	addSplit(topLevel)
	addTags(topLevel)
	addTypes(topLevel)
	addGet(topLevel)
	addInfo(topLevel)
	addWatch(topLevel)
	addReport(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}
