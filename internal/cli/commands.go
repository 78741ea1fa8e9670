package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path"
	"path/filepath"
	"strings"

	"github.com/codalotl/codestepper/internal/config"
	"github.com/codalotl/codestepper/internal/langtable"
	"github.com/codalotl/codestepper/internal/render"
	"github.com/codalotl/codestepper/internal/replay"
	"github.com/codalotl/codestepper/internal/revsource"
	"github.com/codalotl/codestepper/internal/simplelogger"
	"github.com/codalotl/codestepper/internal/watch"
	"github.com/viant/afs"
)

// env is the state shared by all commands of one Run.
type env struct {
	in  io.Reader
	out io.Writer
	err io.Writer

	cfg    *config.Config
	fs     afs.Service
	render render.Options
}

func (e *env) setup(g globalOptions) error {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return err
	}
	e.cfg = cfg
	e.fs = afs.New()

	switch colorMode(g.Color) {
	case colorAlways:
		e.render.Color = true
	case colorAuto:
		e.render.Color = isTerminal(e.out)
	}
	e.render.Width = g.Width
	if e.render.Width == 0 {
		e.render.Width = terminalWidth(e.out)
	}
	return nil
}

type globalOptions struct {
	Config string `short:"c" long:"config" description:"Path to codestepper.toml (default: ./codestepper.toml if present)"`
	Color  string `long:"color" choice:"auto" choice:"always" choice:"never" default:"auto" description:"Colorize output"`
	Width  int    `long:"width" description:"Cut lines to this many columns (default: terminal width, or unlimited)"`
}

type rootCommand struct {
	globalOptions

	Diff    diffCommand    `command:"diff" description:"Show how NEW reads as a step after OLD"`
	Replay  replayCommand  `command:"replay" description:"Replay a sequence of revisions frame by frame"`
	Lang    langCommand    `command:"lang" description:"Show the language tables entry for a file name"`
	Version versionCommand `command:"version" description:"Print the codestepper version"`
}

func newRoot(e *env) *rootCommand {
	r := &rootCommand{}
	r.Diff.env = e
	r.Replay.env = e
	r.Lang.env = e
	r.Version.env = e
	return r
}

type diffCommand struct {
	env *env

	Patch bool `short:"p" long:"patch" description:"Print word patches of modified lines instead of the frame"`
	Args  struct {
		Old string `positional-arg-name:"OLD" description:"Old revision (path or URL)"`
		New string `positional-arg-name:"NEW" description:"New revision (path or URL)"`
	} `positional-args:"yes" required:"yes"`
}

func (c *diffCommand) Execute(_ []string) error {
	ctx := context.Background()
	oldText, err := c.env.download(ctx, c.Args.Old)
	if err != nil {
		return err
	}
	newText, err := c.env.download(ctx, c.Args.New)
	if err != nil {
		return err
	}

	lines := replay.DiffWith(oldText, newText, c.env.cfg.Policy())
	if c.Patch {
		for _, ln := range lines {
			switch ln.State {
			case replay.StateModified:
				fmt.Fprintf(c.env.out, "~ %s\n", ln.Patch)
			case replay.StateAdded:
				fmt.Fprintf(c.env.out, "+ %s\n", ln.Value)
			default:
				fmt.Fprintf(c.env.out, "  %s\n", ln.Value)
			}
		}
		return nil
	}

	frame := replay.Annotate(path.Base(c.Args.New), lines, c.env.cfg.Tables())
	_, err = io.WriteString(c.env.out, render.Frame(frame, c.env.render))
	return err
}

type replayCommand struct {
	env *env

	Git   string `long:"git" value-name:"FILE" description:"Replay the git history of FILE in the repository at DIR instead of the files in DIR"`
	Watch bool   `short:"w" long:"watch" description:"Keep running and replay again when DIR changes"`
	Frame int    `short:"f" long:"frame" default:"-1" description:"Print only this frame, 0-based; -2 is the last frame (default prints all)"`
	Args  struct {
		Dir string `positional-arg-name:"DIR" description:"Directory of revisions (path or URL), or git repository with --git"`
	} `positional-args:"yes" required:"yes"`
}

func (c *replayCommand) Execute(_ []string) error {
	if c.Watch && c.Git != "" {
		return fmt.Errorf("--watch and --git cannot be combined")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	load, err := c.loader()
	if err != nil {
		return err
	}
	session := replay.NewSession(c.env.cfg.ReplayOptions())
	defer session.Close()

	if !c.Watch {
		revisions, err := load(ctx)
		if err != nil {
			return err
		}
		tl, err := session.Load(ctx, revisions)
		if err != nil {
			return err
		}
		return c.print(tl)
	}

	w, err := watch.New(c.Args.Dir, c.env.cfg.WatchDebounce, session, load)
	if err != nil {
		return err
	}
	defer w.Close()

	err = w.Run(ctx, func(tl *replay.Timeline, err error) {
		if err != nil {
			fmt.Fprintf(c.env.err, "codestepper: %v\n", err)
			return
		}
		if err := c.print(tl); err != nil {
			fmt.Fprintf(c.env.err, "codestepper: %v\n", err)
		}
	})
	if ctx.Err() != nil {
		return nil // interrupted
	}
	return err
}

func (c *replayCommand) loader() (watch.LoadFunc, error) {
	if c.Git != "" {
		return func(ctx context.Context) ([]replay.Revision, error) {
			return revsource.GitHistory(ctx, c.Args.Dir, filepath.ToSlash(c.Git))
		}, nil
	}

	dirURL, err := toURL(c.Args.Dir, filepath.Abs)
	if err != nil {
		return nil, err
	}
	opts := c.env.cfg.DirectoryOptions()
	return func(ctx context.Context) ([]replay.Revision, error) {
		return revsource.Directory(ctx, c.env.fs, dirURL, opts)
	}, nil
}

// print writes the selected frame, or every frame separated by blank lines.
func (c *replayCommand) print(tl *replay.Timeline) error {
	simplelogger.Log("cli: timeline %s: %d frames", tl.ID, tl.Len())
	if tl.Len() == 0 {
		fmt.Fprintln(c.env.out, "no revisions")
		return nil
	}

	if c.Frame != -1 {
		i := c.Frame
		if i < 0 {
			i += tl.Len() + 1
		}
		f, err := tl.Frame(i)
		if err != nil {
			return fmt.Errorf("frame %d of %d: %w", c.Frame, tl.Len(), err)
		}
		_, err = io.WriteString(c.env.out, render.Frame(f, c.env.render))
		return err
	}

	var b strings.Builder
	for i := 0; i < tl.Len(); i++ {
		f, err := tl.Frame(i)
		if err != nil {
			return err
		}
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(render.Frame(f, c.env.render))
	}
	_, err := io.WriteString(c.env.out, b.String())
	return err
}

type langCommand struct {
	env *env

	Args struct {
		File string `positional-arg-name:"FILE" description:"File name or path"`
	} `positional-args:"yes" required:"yes"`
}

func (c *langCommand) Execute(_ []string) error {
	tables := c.env.cfg.Tables()
	lang := langtable.ForFilename(c.Args.File)
	name := string(lang)
	if name == "" {
		name = "(unknown)"
	}
	fmt.Fprintf(c.env.out, "language:    %s\n", name)
	fmt.Fprintf(c.env.out, "comment:     %s\n", tables.CommentMarker(lang))
	fmt.Fprintf(c.env.out, "highlighter: %s\n", tables.Highlighter(lang))
	return nil
}

type versionCommand struct {
	env *env
}

func (c *versionCommand) Execute(_ []string) error {
	fmt.Fprintf(c.env.out, "codestepper %s\n", Version)
	return nil
}

// download fetches p (a path or URL) as text.
func (e *env) download(ctx context.Context, p string) (string, error) {
	u, err := toURL(p, filepath.Abs)
	if err != nil {
		return "", err
	}
	data, err := e.fs.DownloadWithURL(ctx, u)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", p, err)
	}
	return string(data), nil
}
