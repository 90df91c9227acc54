package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/meworkbook/internal/config"
	"github.com/roach88/meworkbook/internal/persist"
	"github.com/roach88/meworkbook/internal/store"
	"github.com/roach88/meworkbook/internal/workbook"
)

// session is one command's view of the workbook: config, open database,
// gateway and controller.
type session struct {
	cfg     *config.Config
	store   *store.Store
	gateway *persist.Gateway
	ctl     *workbook.Controller
	logger  *slog.Logger
}

// newLogger builds the command logger. Warnings and errors go to w;
// --verbose adds info and debug records.
func newLogger(opts *RootOptions, w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadConfig resolves the config and applies the --db override.
func loadConfig(opts *RootOptions, logger *slog.Logger) (*config.Config, error) {
	cfg, err := config.Load(opts.Config, logger)
	if err != nil {
		code := ErrCodeConfig
		if errors.Is(err, os.ErrNotExist) {
			code = ErrCodeNotFound
		}
		return nil, codedError(ExitCommandError, code, "failed to load config", err)
	}
	if opts.Database != "" {
		cfg.Storage.Path = opts.Database
	}
	return cfg, nil
}

// openSession loads config, opens the database and ensures a workbook
// exists in it.
func openSession(ctx context.Context, opts *RootOptions, cmd *cobra.Command) (*session, error) {
	logger := newLogger(opts, cmd.ErrOrStderr())

	cfg, err := loadConfig(opts, logger)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Storage.Path), 0o755); err != nil {
		return nil, codedError(ExitCommandError, ErrCodeStorage, "failed to create data directory", err)
	}
	logger.Debug("opening database", "path", cfg.Storage.Path)
	st, err := store.Open(cfg.Storage.Path)
	if err != nil {
		return nil, codedError(ExitCommandError, ErrCodeStorage, "failed to open database", err)
	}

	gw := persist.New(st,
		persist.WithKey(cfg.Storage.Key),
		persist.WithExportLabels(cfg.Export.App, cfg.Export.Version),
		persist.WithLogger(logger),
	)
	ctl, err := workbook.Open(ctx, gw,
		workbook.WithDebounce(cfg.Autosave.Debounce),
		workbook.WithOwner(workbook.Owner{Name: cfg.Owner.Name, Title: cfg.Owner.Title}),
		workbook.WithLogger(logger),
	)
	if err != nil {
		st.Close()
		return nil, codedError(ExitFailure, ErrCodeStorage, "failed to load workbook", err)
	}

	return &session{cfg: cfg, store: st, gateway: gw, ctl: ctl, logger: logger}, nil
}

// Close flushes the pending save and closes the database.
func (s *session) Close() error {
	flushErr := s.ctl.Close()
	if err := s.store.Close(); err != nil {
		s.logger.Error("error closing database", "error", err)
	}
	if flushErr != nil {
		return codedError(ExitFailure, ErrCodeStorage, "failed to save workbook", flushErr)
	}
	return nil
}

// withSession runs fn against an open session and reports any error
// through the formatter. The session is closed, and its pending save
// flushed, before the result is returned.
func withSession(opts *RootOptions, cmd *cobra.Command, fn func(s *session, f *OutputFormatter) error) error {
	f := newFormatter(opts, cmd)
	s, err := openSession(cmd.Context(), opts, cmd)
	if err != nil {
		return f.Fail(err)
	}
	runErr := fn(s, f)
	closeErr := s.Close()
	if runErr != nil {
		return f.Fail(runErr)
	}
	if closeErr != nil {
		return f.Fail(closeErr)
	}
	return nil
}

func describeDB(s *session) string {
	return fmt.Sprintf("%s (key %s)", s.cfg.Storage.Path, s.gateway.Key())
}

// commit writes pending edits now, so success is only reported for saved
// data.
func (s *session) commit() error {
	if err := s.ctl.Flush(); err != nil {
		return codedError(ExitFailure, ErrCodeStorage, "failed to save workbook", err)
	}
	return nil
}
