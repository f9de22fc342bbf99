package commands

import (
	"context"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(massadd completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(massadd completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletionV2(os.Stdout, true)
		},
	}

	topLevel.AddCommand(cmd)
}

func categoryCompletions(toComplete string) []string {
	e, err := loadEnv()
	if err != nil {
		return nil
	}
	cs := e.svc.Persistence.Categories(context.Background(), toComplete)
	for i := range cs {
		if strings.ContainsAny(cs[i], " \t'\"") {
			cs[i] = strconv.Quote(cs[i])
		}
	}
	return cs
}

func typeCompletions(toComplete string) []string {
	e, err := loadEnv()
	if err != nil {
		return nil
	}
	all, err := e.svc.RecordTypes(context.Background())
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(all))
	for _, t := range all {
		if strings.HasPrefix(t.ID, toComplete) {
			ids = append(ids, t.ID)
		}
	}
	return ids
}
