// Package command implements the todo command line front end.
package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/rezkam/eisen/internal/config"
	"github.com/rezkam/eisen/internal/core"
	"github.com/rezkam/eisen/internal/service"
	"github.com/rezkam/eisen/internal/storage"
	"github.com/rezkam/eisen/pkg/observability"
	"github.com/urfave/cli/v2"
	"github.com/urfave/cli/v2/altsrc"
)

// Version is reported by --version. Overridden at build time with -ldflags.
var Version = "dev"

// ErrUsage marks invalid command line input.
var ErrUsage = errors.New("invalid arguments")

const (
	flagConfig   = "config"
	flagDB       = "db"
	flagStorage  = "storage"
	flagLogLevel = "log-level"
)

const shutdownTimeout = 5 * time.Second

// NewApp builds the todo application writing command output to stdout and
// diagnostics to stderr. Errors are reported on stderr and returned from Run;
// callers map them to a process status with ExitCode.
func NewApp(stdout, stderr io.Writer) *cli.App {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:    flagConfig,
			Aliases: []string{"c"},
			Usage:   "YAML configuration file providing db, storage and log-level",
		},
		altsrc.NewStringFlag(&cli.StringFlag{
			Name:  flagDB,
			Usage: "task list file or database path (overrides TODO_DB)",
		}),
		altsrc.NewStringFlag(&cli.StringFlag{
			Name:  flagStorage,
			Usage: "storage backend: fs, gcs, sqlite, postgres (overrides TODO_STORAGE_TYPE)",
		}),
		altsrc.NewStringFlag(&cli.StringFlag{
			Name:  flagLogLevel,
			Usage: "logging level: debug, info, warn, error (overrides TODO_LOG_LEVEL)",
		}),
	}

	app := &cli.App{
		Name:      "todo",
		Usage:     "Eisenhower matrix task list",
		Version:   Version,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags:     flags,
		Before:    altsrc.InitInputSourceWithContext(flags, yamlSourceFromFlag(flagConfig)),
		Commands: []*cli.Command{
			addCommand(),
			listCommand(),
			doneCommand(),
		},
		ExitErrHandler: func(c *cli.Context, err error) {
			if err == nil {
				return
			}
			if errors.Is(err, service.ErrLoad) {
				fmt.Fprintf(c.App.ErrWriter, "Error loading DB: %v\n", err)
				return
			}
			fmt.Fprintf(c.App.ErrWriter, "Error: %v\n", err)
		},
	}

	sort.Sort(cli.CommandsByName(app.Commands))

	return app
}

// ExitCode maps an error returned by the application to a process status:
// 0 on success, 2 for load failures, unknown ids and invalid input, 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var coder cli.ExitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}

	switch {
	case errors.Is(err, service.ErrLoad),
		errors.Is(err, core.ErrNotFound),
		errors.Is(err, core.ErrInvalidImportance),
		errors.Is(err, core.ErrInvalidUrgency),
		errors.Is(err, ErrUsage):
		return 2
	default:
		return 1
	}
}

func yamlSourceFromFlag(flag string) func(c *cli.Context) (altsrc.InputSourceContext, error) {
	return func(c *cli.Context) (altsrc.InputSourceContext, error) {
		if path := c.String(flag); path != "" {
			return altsrc.NewYamlSourceFromFile(path)
		}
		return altsrc.NewMapInputSource("", map[any]any{}), nil
	}
}

// loadConfig layers command line values over the TODO_* environment.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Parse()
	if err != nil {
		return nil, err
	}

	if c.IsSet(flagStorage) {
		cfg.Storage.Type = c.String(flagStorage)
	}
	if c.IsSet(flagDB) {
		cfg.Storage.Path = c.String(flagDB)
	}
	if c.IsSet(flagLogLevel) {
		cfg.LogLevel = c.String(flagLogLevel)
	}

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// withTracker wires configuration, telemetry and storage, runs fn and
// releases everything afterwards.
func withTracker(c *cli.Context, fn func(ctx context.Context, tracker *service.Tracker) error) (err error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}

	ctx := c.Context

	tel, err := observability.Init(ctx, observability.Config{
		Enabled:        cfg.Observability.OTelEnabled,
		ServiceName:    cfg.Observability.ServiceName,
		ServiceVersion: Version,
		LogLevel:       level,
		LogOutput:      c.App.ErrWriter,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if shutdownErr := tel.Shutdown(shutdownCtx); shutdownErr != nil {
			tel.Logger.Warn("failed to flush telemetry", "error", shutdownErr)
		}
	}()

	store, closeStore, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("%w: %w", service.ErrLoad, err)
	}
	defer func() {
		if closeErr := closeStore(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close storage: %w", closeErr)
		}
	}()

	tracker, err := service.NewTracker(store, tel.Logger)
	if err != nil {
		return err
	}

	return fn(ctx, tracker)
}
