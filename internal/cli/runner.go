package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/idilsaglam/engnotes/internal/apperr"
	"github.com/idilsaglam/engnotes/internal/config"
	"github.com/idilsaglam/engnotes/internal/convert"
	"github.com/idilsaglam/engnotes/internal/store/jsonstore"
	"github.com/idilsaglam/engnotes/internal/tui"
	"github.com/idilsaglam/engnotes/internal/ui"
	pkgconfig "github.com/idilsaglam/engnotes/pkg/config"
)

// DefaultConfigFile is read when present; a missing file means defaults.
const DefaultConfigFile = "engnotes.yaml"

// usageError marks bad invocations (exit code 2).
type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	ui.SetOutput(stdout, stderr)
	cmd := NewCommand(stdout, stderr)
	return exitCode(cmd.Run(ctx, args))
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var uerr *usageError
	switch {
	case errors.As(err, &uerr):
		ui.Fail(err.Error())
		ui.Hint("Run `engnotes help` for usage")
		return 2
	case errors.Is(err, apperr.ErrIndexOutOfRange):
		ui.Fail(err.Error())
		ui.Hint("Hint: run `engnotes ls` to see valid indexes")
		return 2
	case errors.Is(err, apperr.ErrUnknownUnit),
		errors.Is(err, apperr.ErrInvalidValue),
		errors.Is(err, apperr.ErrValidation):
		ui.Fail(err.Error())
		return 2
	}
	ui.Fail(err.Error())
	return 1
}

// NewCommand builds the command tree.
func NewCommand(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "engnotes",
		Usage:     "Engineering unit converter and personal notes store",
		UsageText: "engnotes [global options] [command [arguments...]]",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (optional)",
				Value:   DefaultConfigFile,
				Sources: cli.EnvVars("ENGNOTES_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "notes",
				Usage:   "Path to the notes JSON file",
				Sources: cli.EnvVars("ENGNOTES_FILE"),
			},
			&cli.StringFlag{Name: "theme", Usage: "Output theme: classic, neon or mono"},
			&cli.StringFlag{Name: "color", Usage: "Color output: auto, always or never"},
			&cli.StringFlag{Name: "log-level", Usage: "Log level: DEBUG, INFO, WARN or ERROR"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() > 0 {
				return usagef("unknown subcommand: %s", cmd.Args().First())
			}
			return doInteractive(ctx, cmd)
		},
		Commands: []*cli.Command{
			{
				Name:   "ui",
				Usage:  "Open the interactive converter and notes view",
				Action: doInteractive,
			},
			{
				Name:      "convert",
				Usage:     "Convert a value between two units of a category",
				ArgsUsage: "<category> <value> <from> <to>",
				Description: "Categories: Length, Mass, Temperature, Pressure, Energy.\n" +
					"Temperature accepts C, F and K for °C, °F and K.\n" +
					"Negative temperatures are plain arguments: engnotes convert temperature -40 C F",
				// the value may be negative, so nothing after "convert" is a flag
				SkipFlagParsing: true,
				Action:          doConvert,
			},
			{
				Name:      "units",
				Usage:     "List categories and their units",
				ArgsUsage: "[category]",
				Action:    doUnits,
			},
			{
				Name:      "add",
				Usage:     "Save a new note",
				ArgsUsage: "<title> <content...>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "link", Aliases: []string{"l"}, Usage: "Optional reference URL"},
				},
				Action: doAdd,
			},
			{
				Name:   "ls",
				Usage:  "List saved notes",
				Action: doList,
			},
			{
				Name:      "rm",
				Usage:     "Remove the note at a 1-based index",
				ArgsUsage: "<index>",
				Action:    doRemove,
			},
			{
				Name:  "clear",
				Usage: "Remove every saved note",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "Confirm deleting all notes"},
				},
				Action: doClear,
			},
		},
	}
}

// env is the per-invocation state shared by the subcommands.
type env struct {
	cfg      *config.Config
	logger   *slog.Logger
	closeLog func()
}

func setup(cmd *cli.Command, interactive bool) (*env, error) {
	cfg := config.NewDefaultConfig()
	if err := pkgconfig.LoadOptional(cmd.String("config"), cfg); err != nil {
		return nil, err
	}
	if v := cmd.String("notes"); v != "" {
		cfg.Notes.Path = v
	}
	if v := cmd.String("theme"); v != "" {
		cfg.UI.Theme = v
	}
	if v := cmd.String("color"); v != "" {
		cfg.UI.Color = v
	}
	if v := cmd.String("log-level"); v != "" {
		if err := cfg.App.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return nil, usagef("log-level: %v", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, usagef("config: %v", err)
	}

	ui.SetTheme(cfg.UI.Theme)
	if cfg.UI.Theme != config.ThemeMono {
		ui.SetColorMode(cfg.UI.Color)
	}

	logger, closeLog, err := newLogger(cfg.App, cmd.Root().ErrWriter, interactive)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)
	logger.Debug("configuration loaded",
		slog.String("notes_path", cfg.Notes.Path),
		slog.String("theme", cfg.UI.Theme),
		slog.Int("precision", cfg.UI.Precision))

	return &env{cfg: cfg, logger: logger, closeLog: closeLog}, nil
}

// openStore loads the note store. A corrupt file is reported as a warning
// and the store starts empty; the returned string carries that warning.
func (e *env) openStore() (*jsonstore.Store, string, error) {
	s := jsonstore.New(e.cfg.Notes.Path, e.logger)
	if err := s.Load(); err != nil {
		var derr *apperr.DecodeError
		if !errors.As(err, &derr) {
			return nil, "", fmt.Errorf("load: %w", err)
		}
		return s, derr.Error(), nil
	}
	return s, "", nil
}

// -------------- subcommand impls ----------------

func doInteractive(ctx context.Context, cmd *cli.Command) error {
	e, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer e.closeLog()

	store, warning, err := e.openStore()
	if err != nil {
		return err
	}
	if err := tui.Run(ctx, store, tui.Options{
		Precision: e.cfg.UI.Precision,
		Warning:   warning,
		Logger:    e.logger,
	}); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

func doConvert(_ context.Context, cmd *cli.Command) error {
	a := cmd.Args().Slice()
	if len(a) > 0 && a[0] == "--" {
		a = a[1:]
	}
	if len(a) != 4 {
		return usagef("usage: engnotes convert <category> <value> <from> <to>")
	}
	e, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer e.closeLog()

	cat, err := convert.ParseCategory(a[0])
	if err != nil {
		return err
	}
	v, err := convert.ParseValue(a[1])
	if err != nil {
		return err
	}
	from, to := convert.NormalizeUnit(cat, a[2]), convert.NormalizeUnit(cat, a[3])
	out, err := convert.Convert(cat, from, to, v)
	if err != nil {
		return err
	}
	e.logger.Debug("converted",
		slog.String("category", cat.String()),
		slog.String("from", from), slog.String("to", to),
		slog.Float64("value", v), slog.Float64("result", out))
	ui.Println(convert.FormatResult(v, from, out, to, e.cfg.UI.Precision))
	return nil
}

func doUnits(_ context.Context, cmd *cli.Command) error {
	if cmd.NArg() > 1 {
		return usagef("usage: engnotes units [category]")
	}
	e, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer e.closeLog()

	cats := convert.Categories
	if cmd.NArg() == 1 {
		c, err := convert.ParseCategory(cmd.Args().First())
		if err != nil {
			return err
		}
		cats = []convert.Category{c}
	}
	ui.Panel(unitLines(cats))
	return nil
}

func doAdd(_ context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 2 {
		return usagef("usage: engnotes add [--link URL] <title> <content...>")
	}
	e, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer e.closeLog()

	store, warning, err := e.openStore()
	if err != nil {
		return err
	}
	if warning != "" {
		ui.Warn(warning)
	}
	a := cmd.Args().Slice()
	n, err := store.Add(a[0], strings.Join(a[1:], " "), cmd.String("link"))
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}
	ui.OK(fmt.Sprintf("saved %q", n.Title))
	return nil
}

func doList(_ context.Context, cmd *cli.Command) error {
	e, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer e.closeLog()

	store, warning, err := e.openStore()
	if err != nil {
		return err
	}
	if warning != "" {
		ui.Warn(warning)
	}
	ui.Panel(noteLines(store))
	return nil
}

func doRemove(_ context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 1 {
		return usagef("usage: engnotes rm <index>")
	}
	n, err := strconv.Atoi(cmd.Args().First())
	if err != nil {
		return usagef("rm: not a number: %s", cmd.Args().First())
	}
	e, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer e.closeLog()

	store, warning, err := e.openStore()
	if err != nil {
		return err
	}
	if warning != "" {
		ui.Warn(warning)
	}
	note, err := store.Get(n - 1)
	if err != nil {
		// indexes are 1-based on the command line
		return fmt.Errorf("rm: no note #%d of %d: %w", n, store.Len(), err)
	}
	if err := store.Delete(n - 1); err != nil {
		return fmt.Errorf("rm: %w", err)
	}
	ui.OK(fmt.Sprintf("removed %q", note.Title))
	return nil
}

func doClear(_ context.Context, cmd *cli.Command) error {
	if !cmd.Bool("yes") {
		return usagef("clear deletes every note; re-run with --yes to confirm")
	}
	e, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer e.closeLog()

	store, warning, err := e.openStore()
	if err != nil {
		return err
	}
	if warning != "" {
		ui.Warn(warning)
	}
	count := store.Len()
	if err := store.Clear(); err != nil {
		return fmt.Errorf("clear: %w", err)
	}
	ui.OK(fmt.Sprintf("removed %d notes", count))
	return nil
}

// newLogger writes to the configured file, else stderr. The TUI owns the
// terminal, so without a file its logs are dropped.
func newLogger(c config.ApplicationConfig, stderr io.Writer, interactive bool) (*slog.Logger, func(), error) {
	var w io.Writer = stderr
	closeFn := func() {}
	switch {
	case c.LogFile != "":
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = func() { _ = f.Close() }
	case interactive:
		w = io.Discard
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.LogLevel}))
	return logger, closeFn, nil
}
