// Package cli implements the codestepper command line.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	flags "github.com/jessevdk/go-flags"
	"golang.org/x/term"
)

// Version is the codestepper version. It is a var (not a const) so build tooling can override it (for example via `-ldflags "-X .../internal/cli.Version=1.2.3"`).
var Version = "0.1.0"

// In/Out/Err override standard I/O. If nil, defaults are used. Overriding is useful for testing.
type RunOptions struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Run runs the CLI with args (typically you'd use os.Args).
//
// It returns a recommended exit code (0, 1, or 2) and an error, if any:
//   - 0 -> err == nil
//   - 1 -> err != nil, but the structure of args is sound (flags are correct, etc).
//   - 2 -> err != nil, args parse error or misuse of flags, etc.
//
// Note that in cases of errors, Run has already displayed an error message to opts.Err || Stderr. Callers may use os.Exit with the exit code.
func Run(args []string, opts *RunOptions) (int, error) {
	argv := args
	if len(argv) > 0 {
		argv = argv[1:]
	}

	e := &env{in: os.Stdin, out: os.Stdout, err: os.Stderr}
	if opts != nil {
		if opts.In != nil {
			e.in = opts.In
		}
		if opts.Out != nil {
			e.out = opts.Out
		}
		if opts.Err != nil {
			e.err = opts.Err
		}
	}

	root := newRoot(e)
	parser := flags.NewParser(root, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = "codestepper"

	// Executed is set once parsing succeeded, so any later error is a runtime error rather than misuse.
	executed := false
	parser.CommandHandler = func(cmd flags.Commander, args []string) error {
		if cmd == nil {
			return nil
		}
		if err := e.setup(root.globalOptions); err != nil {
			return err
		}
		executed = true
		return cmd.Execute(args)
	}

	_, err := parser.ParseArgs(argv)
	if err == nil {
		return 0, nil
	}

	var ferr *flags.Error
	if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
		fmt.Fprintln(e.out, ferr.Message)
		return 0, nil
	}

	fmt.Fprintf(e.err, "codestepper: %v\n", err)
	if executed {
		return 1, err
	}
	if errors.As(err, &ferr) {
		return 2, err
	}
	// Setup errors (ex: a bad config file) are the user's inputs being wrong, not the command failing.
	return 2, err
}

// colorMode is the --color flag.
type colorMode string

const (
	colorAuto   colorMode = "auto"
	colorAlways colorMode = "always"
	colorNever  colorMode = "never"
)

// terminalWidth returns the width of w if it is a terminal, or 0.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// toURL turns a local path into a file:// URL. Strings that already carry a scheme are returned unchanged.
func toURL(p string, abs func(string) (string, error)) (string, error) {
	if strings.Contains(p, "://") {
		return p, nil
	}
	a, err := abs(p)
	if err != nil {
		return "", err
	}
	return "file://" + a, nil
}
