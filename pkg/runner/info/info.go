// Package info describes where massadd keeps its data.
package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"tableflip.dev/massadd/pkg/app"
	"tableflip.dev/massadd/pkg/config"
	"tableflip.dev/massadd/pkg/printers"
)

// Info configures `massadd info`.
type Info struct {
	Settings *config.Settings
	Service  *app.Service
	JSON     bool
	Out      io.Writer
}

// Do prints the effective settings and the known categories.
func (n *Info) Do(ctx context.Context) error {
	if n.Settings == nil {
		return fmt.Errorf("info: no settings loaded")
	}
	if n.Service == nil {
		return fmt.Errorf("info: failed to create persistence object")
	}
	categories, err := n.Service.Categories(ctx)
	if err != nil {
		return err
	}

	if n.JSON {
		return printers.JSON(n.Out, map[string]any{
			"settings":   n.Settings,
			"categories": categories,
		})
	}

	if override := os.Getenv(config.PathEnv); override != "" {
		fmt.Fprintln(n.Out, config.PathEnv, "found on env, using", override)
	} else {
		fmt.Fprintln(n.Out, config.PathEnv, "env var not set")
	}
	if n.Settings.File != "" {
		fmt.Fprintln(n.Out, "Config.file:", n.Settings.File)
	}
	fmt.Fprintln(n.Out, "Config.path:", n.Settings.BasePath())
	fmt.Fprintln(n.Out, "Defaults:", n.Settings.DefaultCategory, "/", n.Settings.DefaultType)

	fmt.Fprintln(n.Out, "Categories:")
	pp := printers.PrettyPrint{Out: n.Out}
	pp.Categories(categories)
	return nil
}
