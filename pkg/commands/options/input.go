package options

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// InputOptions choose where text is read from.
type InputOptions struct {
	File string
}

// AddInputArgs wires --file.
func AddInputArgs(cmd *cobra.Command, o *InputOptions) {
	cmd.Flags().StringVarP(&o.File, "file", "f", "",
		`Read text from a file, "-" for stdin.`)
}

// Read returns the text from args joined by spaces, --file, or stdin when
// stdin is not a terminal.
func (o *InputOptions) Read(args []string, stdin io.Reader) (string, error) {
	switch {
	case len(args) > 0 && o.File != "":
		return "", errors.New("give text as arguments or with --file, not both")
	case len(args) > 0:
		return strings.Join(args, " "), nil
	case o.File == "-":
		return readAll(stdin)
	case o.File != "":
		b, err := os.ReadFile(o.File)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", o.File, err)
		}
		return string(b), nil
	}
	if f, ok := stdin.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return "", errors.New("no text given: pass it as arguments, with --file, or on stdin")
	}
	return readAll(stdin)
}

func readAll(r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(b), nil
}
