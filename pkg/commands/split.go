package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/massadd/pkg/commands/options"
	"tableflip.dev/massadd/pkg/runner/split"
)

func addSplit(topLevel *cobra.Command) {
	in := &options.InputOptions{}
	var marker string

	cmd := &cobra.Command{
		Use:   "split --marker X [text...]",
		Short: "Show how a marker breaks text into lines",
		Example: `
massadd split --marker ";" "犬;猫;鳥"
pbpaste | massadd split -m "|"
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			text, err := in.Read(args, cmd.InOrStdin())
			if err != nil {
				return output.HandleError(err)
			}
			s := split.Split{
				Text:   text,
				Marker: marker,
				JSON:   output.JSON,
				Out:    cmd.OutOrStdout(),
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	cmd.Flags().StringVarP(&marker, "marker", "m", "", "One character to break the text after.")
	_ = cmd.MarkFlagRequired("marker")
	options.AddInputArgs(cmd, in)

	topLevel.AddCommand(cmd)
}
