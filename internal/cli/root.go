// Package cli is the tarefas shell: subcommands, the numbered menu and the
// interactive list. It owns every piece of user-facing text; the task store
// only returns values and errors.
package cli

import (
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/tarefas/internal/config"
	"github.com/idilsaglam/tarefas/internal/logging"
	"github.com/idilsaglam/tarefas/internal/store/jsonstore"
	"github.com/idilsaglam/tarefas/internal/ui"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	DataFile  string
	Naming    string
	Theme     string
	LogLevel  string
	LogFormat string
}

// app is what every subcommand runs against, filled in once flags and
// config are known.
type app struct {
	cfg   *config.Config
	store *jsonstore.Store
	theme ui.Theme
	log   *log.Logger
}

// Main runs the command line and returns the process exit code.
func Main(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	return run(config.DefaultPaths(), args, stdin, stdout, stderr)
}

func run(paths config.Paths, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{theme: ui.ThemeByName(config.DefaultTheme), log: logging.Discard()}
	cmd := newRootCommand(a, paths)
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err == nil {
		return ExitOK
	}
	a.log.Debug("command failed", "err", err)
	a.theme.Fail(stderr, err.Error())
	return GetExitCode(err)
}

// NewRootCommand creates the root command using the default config locations.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&app{theme: ui.ThemeByName(config.DefaultTheme), log: logging.Discard()}, config.DefaultPaths())
}

func newRootCommand(a *app, paths config.Paths) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "tarefas",
		Short:         "tarefas - a tiny task manager",
		Long:          "Create tasks, list them (all, done, pending) and mark them done.\nTasks live in a single JSON file. Run without a subcommand for the menu.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          usageArgs(cobra.NoArgs, "unknown subcommand; run `tarefas --help`"),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, opts, paths)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(cmd, a)
		},
	}
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return WrapExitError(ExitUsage, "flags", err)
	})

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.DataFile, "file", "f", config.DefaultDataFile, "path of the JSON data file")
	pf.StringVar(&opts.Naming, "naming", config.DefaultNaming, "keys written to the data file (en|pt)")
	pf.StringVar(&opts.Theme, "theme", config.DefaultTheme, "output theme (classic|neon|mono)")
	pf.StringVar(&opts.LogLevel, "log-level", config.DefaultLogLevel, "log level (debug|info|warn|error)")
	pf.StringVar(&opts.LogFormat, "log-format", config.DefaultLogFormat, "log format (text|json|logfmt)")

	cmd.AddCommand(NewAddCommand(a))
	cmd.AddCommand(NewListCommand(a))
	cmd.AddCommand(NewDoneCommand(a))
	cmd.AddCommand(NewMenuCommand(a))
	cmd.AddCommand(NewTUICommand(a))

	return cmd
}

// setup loads config, lets changed flags override it and builds the store.
func (a *app) setup(cmd *cobra.Command, opts *RootOptions, paths config.Paths) error {
	cfg, err := config.Load(paths)
	if err != nil {
		return WrapExitError(ExitUsage, "config", err)
	}

	flags := cmd.Flags()
	override := func(name string, dst *string, val string) {
		if flags.Changed(name) {
			*dst = val
		}
	}
	override("file", &cfg.DataFile, opts.DataFile)
	override("naming", &cfg.Naming, opts.Naming)
	override("theme", &cfg.Theme, opts.Theme)
	override("log-level", &cfg.LogLevel, opts.LogLevel)
	override("log-format", &cfg.LogFormat, opts.LogFormat)

	if err := cfg.Finalize(""); err != nil {
		return WrapExitError(ExitUsage, "config", err)
	}
	if err := cfg.Validate(); err != nil {
		return WrapExitError(ExitUsage, "config", err)
	}

	logger, _ := logging.WithSession(logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat))
	naming, err := jsonstore.ParseNaming(cfg.Naming)
	if err != nil {
		return WrapExitError(ExitUsage, "config", err)
	}
	store, err := jsonstore.New(cfg.DataFile, jsonstore.WithNaming(naming))
	if err != nil {
		return WrapExitError(ExitFailure, "store", err)
	}

	a.cfg = cfg
	a.store = store
	a.theme = ui.ThemeByName(cfg.Theme)
	a.log = logger
	a.log.Debug("ready", "command", cmd.Name(), "data_file", cfg.DataFile, "naming", cfg.Naming, "config_files", strings.Join(cfg.Files, ","))
	return nil
}

// describe turns a storage error into a short line for the user.
func describe(err error) string {
	var re *jsonstore.ReadError
	var we *jsonstore.WriteError
	switch {
	case errors.As(err, &re):
		return "could not read tasks: " + re.Err.Error()
	case errors.As(err, &we):
		return "could not save tasks: " + we.Err.Error()
	case errors.Is(err, jsonstore.ErrEmptyTitle):
		return "title cannot be empty"
	}
	return err.Error()
}
