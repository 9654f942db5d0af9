// Package cli wires the claro command tree.
package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/clarolist/internal/config"
	"github.com/idilsaglam/clarolist/internal/logging"
	"github.com/idilsaglam/clarolist/internal/project"
	"github.com/idilsaglam/clarolist/internal/repo"
	"github.com/idilsaglam/clarolist/internal/store/jsonstore"
	"github.com/idilsaglam/clarolist/internal/ui"
)

// RootOptions holds global flags and the services built from them.
type RootOptions struct {
	ConfigPath string
	DataFile   string
	Backend    string
	RedisAddr  string
	LogLevel   string
	Theme      string
	NoColor    bool

	// Store is built from configuration unless set beforehand.
	Store   *jsonstore.Store
	Logger  *log.Logger
	Folders *repo.Folders
	Tasks   *repo.Tasks

	closers []func() error
}

// NewRootCommand creates the root command for the claro CLI.
func NewRootCommand(opts *RootOptions) *cobra.Command {
	if opts == nil {
		opts = &RootOptions{}
	}

	cmd := &cobra.Command{
		Use:           "claro",
		Short:         "claro - folders of tasks in your terminal",
		Long:          "Organize tasks into named folders. Everything is kept in a single local document.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return opts.Close()
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.ConfigPath, "config", "", "config file (TOML)")
	pf.StringVar(&opts.DataFile, "data", "", "document file path")
	pf.StringVar(&opts.Backend, "backend", "", "storage backend (file|redis)")
	pf.StringVar(&opts.RedisAddr, "redis-addr", "", "redis address for the redis backend")
	pf.StringVar(&opts.LogLevel, "log-level", "", "log level (debug|info|warn|error)")
	pf.StringVar(&opts.Theme, "theme", "", "output theme ("+strings.Join(ui.ThemeNames(), "|")+")")
	pf.BoolVar(&opts.NoColor, "no-color", false, "disable colored output")

	cmd.AddCommand(NewFoldersCommand(opts))
	cmd.AddCommand(NewFolderCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewDoneCommand(opts))
	cmd.AddCommand(NewRemoveCommand(opts))
	cmd.AddCommand(NewRenameCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewTUICommand(opts))
	cmd.AddCommand(NewAuthCommand())

	return cmd
}

func (o *RootOptions) setup(cmd *cobra.Command) error {
	if o.Store != nil {
		o.wire()
		return nil
	}
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.DataFile = o.DataFile
	}
	if flags.Changed("backend") {
		cfg.Backend = o.Backend
	}
	if flags.Changed("redis-addr") {
		cfg.Redis.Addr = o.RedisAddr
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.LogLevel
	}
	if flags.Changed("theme") {
		cfg.Theme = o.Theme
	}
	if flags.Changed("no-color") {
		cfg.NoColor = o.NoColor
	}
	if err := cfg.Validate(); err != nil {
		return &usageError{msg: err.Error()}
	}

	if err := ui.SetTheme(cfg.Theme); err != nil {
		return &usageError{msg: err.Error()}
	}
	if cfg.NoColor {
		ui.SetColorForcing(false, true)
	}
	if o.Logger == nil {
		o.Logger = logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	}

	var backend jsonstore.Backend
	switch cfg.Backend {
	case config.BackendRedis:
		if cfg.Redis.Password == "" {
			creds, err := config.LoadCredentials()
			if err != nil {
				return err
			}
			if creds != nil {
				cfg.Redis.Password = creds.RedisPassword
			}
		}
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		o.closers = append(o.closers, client.Close)
		backend = jsonstore.NewRedisBackend(client, cfg.Redis.Key, cfg.Redis.Addr)
	default:
		backend = jsonstore.NewFileBackend(cfg.DataFile)
	}
	o.Store = jsonstore.New(backend, jsonstore.WithLogger(o.Logger))
	o.Logger.Debug("store ready", "location", o.Store.Location())
	o.wire()
	return nil
}

func (o *RootOptions) wire() {
	if o.Folders == nil {
		o.Folders = repo.NewFolders(o.Store)
	}
	if o.Tasks == nil {
		o.Tasks = repo.NewTasks(o.Store)
	}
}

// AllTasks returns a fresh flattened view over the store.
func (o *RootOptions) AllTasks() *project.AllTasks {
	return project.NewAllTasks(o.Store, o.Tasks)
}

// Close releases backend connections.
func (o *RootOptions) Close() error {
	var errs []error
	for _, c := range o.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	o.closers = nil
	return errors.Join(errs...)
}

type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func usagef(format string, a ...any) error {
	return &usageError{msg: fmt.Sprintf(format, a...)}
}

// ExitCode maps a command error to a process exit code:
// 0 ok, 2 usage, validation or not-found, 1 anything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ue *usageError
	if errors.As(err, &ue) || errors.Is(err, repo.ErrValidation) || errors.Is(err, repo.ErrNotFound) {
		return 2
	}
	return 1
}

// minArgs and exactArgs report argument errors as usage errors.
func minArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < n {
			return usagef("usage: claro %s", usage)
		}
		return nil
	}
}

func exactArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usagef("usage: claro %s", usage)
		}
		return nil
	}
}
