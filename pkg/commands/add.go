package commands

import (
	"context"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"tableflip.dev/massadd/pkg/commands/options"
	"tableflip.dev/massadd/pkg/ingest"
	"tableflip.dev/massadd/pkg/picker"
	"tableflip.dev/massadd/pkg/recent"
	"tableflip.dev/massadd/pkg/recordtype"
	"tableflip.dev/massadd/pkg/runner/add"
	"tableflip.dev/massadd/pkg/session"
)

func addAdd(topLevel *cobra.Command) {
	ao := &options.AddOptions{}
	do := &options.DestinationOptions{}
	in := &options.InputOptions{}

	cmd := &cobra.Command{
		Use:   "add [text...]",
		Short: "Add one note per line of text",
		Long: `Add one note per non-blank line. Tab separated columns fill the record
type's fields in order; missing columns stay empty and extra columns follow
--overflow. Text comes from the arguments, --file, or stdin.`,
		Example: `
massadd add --tags "jlpt n5" < words.tsv
massadd add --split ";" "犬;猫;鳥"
massadd add --category Japanese --type vocab --pick -f words.tsv
massadd add --dry-run --overflow strict -f words.tsv
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv()
			if err != nil {
				return output.HandleError(err)
			}
			text, err := in.Read(args, cmd.InOrStdin())
			if err != nil {
				return output.HandleError(err)
			}

			overflow, err := ingest.ParseOverflow(firstNonEmpty(ao.Overflow, e.settings.Overflow))
			if err != nil {
				return output.HandleError(err)
			}

			s := session.New(session.Carry{
				Tags:     ao.Tags,
				Category: firstNonEmpty(do.Category, e.settings.DefaultCategory),
				TypeID:   recordtype.NormalizeID(firstNonEmpty(do.Type, e.settings.DefaultType)),
			})
			s.Text = text

			a := add.Add{
				Service:         e.svc,
				Session:         s,
				Marker:          ao.Marker,
				Pick:            ao.Pick,
				Recent:          ao.Recent,
				RecentLimit:     e.settings.RecentLimit,
				RecentDepth:     e.settings.RecentDepth,
				Overflow:        overflow,
				ContinueOnError: ao.ContinueOnError || e.settings.ContinueOnError,
				DryRun:          ao.DryRun,
				Show:            ao.Show || e.settings.ShowAddedNotes,
				JSON:            output.JSON,
				Picker: func(ctx context.Context, tags []string) ([]string, error) {
					return picker.Run(ctx, tags, pickerInput(cmd.InOrStdin()), os.Stderr)
				},
				Out:    cmd.OutOrStdout(),
				Err:    cmd.ErrOrStderr(),
				Logger: e.log,
			}
			if a.Recent > 0 {
				a.Recent = recent.Clamp(a.Recent, 1, recent.MaxLimit)
			}
			return output.HandleError(a.Do(cmd.Context()))
		},
	}

	options.AddAddArgs(cmd, ao)
	options.AddDestinationArgs(cmd, do)
	options.AddInputArgs(cmd, in)
	_ = cmd.RegisterFlagCompletionFunc("category", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return categoryCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("type", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return typeCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("overflow", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		modes := []string{string(ingest.OverflowDrop), string(ingest.OverflowStrict), string(ingest.OverflowMerge)}
		return modes, cobra.ShellCompDirectiveNoFileComp
	})

	topLevel.AddCommand(cmd)
}

// pickerInput returns stdin when it is a terminal. Otherwise stdin may have
// carried the note text, and nil makes the picker open the terminal itself.
func pickerInput(stdin io.Reader) io.Reader {
	if f, ok := stdin.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return stdin
	}
	return nil
}
