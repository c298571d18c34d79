// Package cli provides the taskcal command line: the interactive TUI as the
// root command plus one-shot subcommands for scripting.
package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"taskcal/internal/app"
	"taskcal/internal/config"
	"taskcal/internal/logging"
	"taskcal/internal/storage"
	"taskcal/internal/ui"
)

// Version is set at build time via ldflags.
var Version = "dev"

type flags struct {
	config  string
	backend string
	color   string
	debug   bool
}

// env is what a command runs against. It lives for one invocation.
type env struct {
	flags    flags
	// now is the session clock. Nil means time.Now.
	now      func() time.Time
	cfg      config.Config
	log      *log.Logger
	store    storage.Store
	session  *app.Session
	closeLog func() error
}

func (e *env) setup() error {
	switch e.flags.color {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	case "", "auto":
	default:
		return fmt.Errorf("invalid --color %q (want auto, always or never)", e.flags.color)
	}

	path := e.flags.config
	if path == "" {
		path = config.ResolveConfigPath()
	}
	cfg, err := config.LoadOrCreate(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if e.flags.backend != "" {
		cfg.Backend = e.flags.backend
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	e.cfg = cfg

	logOpts := logging.Options{Level: cfg.LogLevel, Path: cfg.LogFile}
	if e.flags.debug {
		logOpts.Level = "debug"
		logOpts.Writer = os.Stderr
	}
	logger, closeLog, err := logging.New(logOpts)
	if err != nil {
		return err
	}
	e.log, e.closeLog = logger, closeLog

	store, err := storage.Open(cfg.StoreOptions())
	if err != nil {
		logger.Error("open storage failed", "backend", cfg.Backend, logging.KeyError, err)
		return fmt.Errorf("open storage: %w", err)
	}
	e.store = store

	weekStart, err := cfg.FirstWeekday()
	if err != nil {
		return err
	}
	session, err := app.New(store, app.Options{
		Filter:    cfg.Filter(),
		Priority:  cfg.Priority(),
		WeekStart: weekStart,
		Now:       e.now,
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}
	session.Subscribe(func(ev app.Event) {
		logger.Debug("session event", logging.KeyOp, string(ev.Kind), logging.KeyID, ev.TaskID)
	})
	e.session = session
	logger.Debug("started", "backend", cfg.Backend, "config", path)
	return nil
}

// close releases storage and the log file. It is safe to call more than once.
func (e *env) close() error {
	var errs []error
	if e.store != nil {
		errs = append(errs, e.store.Close())
		e.store = nil
	}
	if e.closeLog != nil {
		errs = append(errs, e.closeLog())
		e.closeLog = nil
	}
	e.session = nil
	return errors.Join(errs...)
}

func skipSetup(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return true
	}
	return false
}

func newRootCmd() (*cobra.Command, *env) {
	e := &env{}
	root := &cobra.Command{
		Use:   "taskcal",
		Short: "A task list with a month calendar",
		Long: `taskcal keeps a prioritised task list with optional due dates and shows it
as a list or as a month calendar.

Run without a subcommand for the interactive view.

Examples:
  taskcal add Buy milk
  taskcal add -p high -d tomorrow Call dentist
  taskcal list -s pending
  taskcal toggle 3f2a
  taskcal calendar`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if skipSetup(cmd) {
				return nil
			}
			return e.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return e.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				return ui.Run(e.session, e.cfg, e.log)
			}
			return printList(cmd.OutOrStdout(), e.session.Snapshot())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&e.flags.config, "config", "", "Config file (default $"+config.EnvConfig+" or the XDG config dir)")
	pf.StringVar(&e.flags.backend, "backend", "", "Storage backend override: sqlite, badger, memory")
	pf.StringVar(&e.flags.color, "color", "auto", "Color output: auto, always, never")
	pf.BoolVar(&e.flags.debug, "debug", false, "Log debug output to stderr")

	root.AddCommand(
		newAddCmd(e),
		newListCmd(e),
		newToggleCmd(e),
		newDeleteCmd(e),
		newStatsCmd(e),
		newCalendarCmd(e),
		newModeCmd(e),
		newVersionCmd(),
	)
	return root, e
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	cmd, _ := newRootCmd()
	return cmd
}

// Execute runs the command line and always releases resources, including
// when a command fails and cobra skips the post-run hook.
func Execute() error {
	cmd, e := newRootCmd()
	err := cmd.Execute()
	if cerr := e.close(); err == nil {
		err = cerr
	}
	return err
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("taskcal %s\n", Version)
		},
	}
}
