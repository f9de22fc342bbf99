// Package options defines shared flag helpers for CLI commands.
package options

import (
	"github.com/spf13/cobra"
)

// GlobalOptions are flags shared by every command.
type GlobalOptions struct {
	ConfigFile string
	LogLevel   string
	Verbose    bool
}

// AddGlobalArgs registers the global flags as persistent flags on cmd.
func AddGlobalArgs(cmd *cobra.Command, o *GlobalOptions) {
	cmd.PersistentFlags().StringVar(&o.ConfigFile, "config", "",
		"Config file to read instead of searching for .massadd.yaml.")
	cmd.PersistentFlags().StringVar(&o.LogLevel, "log-level", "",
		"Log level: debug, info, warn or error. Overrides log_level.")
	cmd.PersistentFlags().BoolVarP(&o.Verbose, "verbose", "v", false,
		"Shorthand for --log-level=debug.")
}
