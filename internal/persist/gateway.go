// Package persist loads and saves the workbook state as one record.
//
// The whole RootState is the unit of persistence: Save always writes a
// complete record and Load always returns a complete, migrated state.
// A missing or unreadable record is reported as "no state", never as an
// error; only failures of the backend itself are returned.
package persist

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/roach88/meworkbook/internal/migrate"
	"github.com/roach88/meworkbook/internal/model"
	"github.com/roach88/meworkbook/internal/store"
)

// DefaultKey is the storage key of the workbook record.
const DefaultKey = "meapp_single_2026_v1"

// Gateway reads and writes the workbook record through a store.Backend.
type Gateway struct {
	backend store.Backend
	key     string
	app     string
	version string
	logger  *slog.Logger
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithKey overrides the storage key. Empty keys are ignored.
func WithKey(key string) Option {
	return func(g *Gateway) {
		if key != "" {
			g.key = key
		}
	}
}

// WithExportLabels overrides the app and version written into exports.
// Empty values keep the defaults.
func WithExportLabels(app, version string) Option {
	return func(g *Gateway) {
		if app != "" {
			g.app = app
		}
		if version != "" {
			g.version = version
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *Gateway) { g.logger = l }
}

// New creates a Gateway over backend.
func New(backend store.Backend, opts ...Option) *Gateway {
	g := &Gateway{
		backend: backend,
		key:     DefaultKey,
		app:     model.ExportApp,
		version: model.ExportVersion,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Key returns the storage key.
func (g *Gateway) Key() string { return g.key }

// Load reads and migrates the stored record. ok is false when there is no
// record or the record cannot be parsed.
func (g *Gateway) Load(ctx context.Context) (s *model.RootState, ok bool, err error) {
	s, _, ok, err = g.load(ctx)
	return s, ok, err
}

// load returns the migrated state along with the raw stored bytes.
func (g *Gateway) load(ctx context.Context) (*model.RootState, []byte, bool, error) {
	data, found, err := g.backend.Get(ctx, g.key)
	if err != nil {
		return nil, nil, false, fmt.Errorf("load %q: %w", g.key, err)
	}
	if !found {
		g.logger.Debug("no stored workbook", "key", g.key)
		return nil, nil, false, nil
	}

	s, report, err := migrate.MigrateBytes(data)
	if err != nil {
		g.logger.Warn("discarding unreadable workbook record", "key", g.key, "error", err)
		return nil, nil, false, nil
	}
	if report.Changed() {
		g.logger.Debug("repaired stored workbook", "key", g.key, "filled", report.Filled)
	}
	for _, path := range report.Ignored {
		g.logger.Warn("ignoring unknown field in stored workbook", "key", g.key, "path", path)
	}
	return s, data, true, nil
}

// Save writes the complete state.
func (g *Gateway) Save(ctx context.Context, s *model.RootState) error {
	data, err := model.Marshal(s)
	if err != nil {
		return fmt.Errorf("save %q: encode: %w", g.key, err)
	}
	return g.put(ctx, data)
}

func (g *Gateway) put(ctx context.Context, data []byte) error {
	if err := g.backend.Put(ctx, g.key, data); err != nil {
		return fmt.Errorf("save %q: %w", g.key, err)
	}
	g.logger.Debug("saved workbook", "key", g.key, "bytes", len(data))
	return nil
}

// Ensure returns the stored state, creating and saving a fresh one when
// none exists. The migrated state is persisted whenever its encoding
// differs from the stored bytes, so repairs, clamped scores, reset cursors
// and dropped keys all reach storage.
func (g *Gateway) Ensure(ctx context.Context) (*model.RootState, error) {
	s, stored, ok, err := g.load(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		s = model.NewRootState()
		if err := g.Save(ctx, s); err != nil {
			return nil, err
		}
		g.logger.Info("created workbook", "key", g.key)
		return s, nil
	}
	data, err := model.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("save %q: encode: %w", g.key, err)
	}
	if !bytes.Equal(data, stored) {
		if err := g.put(ctx, data); err != nil {
			return nil, err
		}
		g.logger.Debug("normalized stored workbook", "key", g.key)
	}
	return s, nil
}

// Reset deletes the stored record and returns a freshly ensured state.
func (g *Gateway) Reset(ctx context.Context) (*model.RootState, error) {
	if err := g.backend.Delete(ctx, g.key); err != nil {
		return nil, fmt.Errorf("reset %q: %w", g.key, err)
	}
	g.logger.Info("reset workbook", "key", g.key)
	return g.Ensure(ctx)
}

// Export builds the export record for s stamped at now.
func (g *Gateway) Export(s *model.RootState, now time.Time) model.Export {
	return model.NewExport(s, now, g.app, g.version)
}

// Info returns metadata about the stored record.
func (g *Gateway) Info(ctx context.Context) (store.RecordInfo, bool, error) {
	info, ok, err := g.backend.Stat(ctx, g.key)
	if err != nil {
		return store.RecordInfo{}, false, fmt.Errorf("stat %q: %w", g.key, err)
	}
	return info, ok, nil
}
