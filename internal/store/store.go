package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 0 - Initial schema (key, value, updated_at)
// 1 - Added records.revision
const currentSchemaVersion = 1

const timeLayout = time.RFC3339Nano

// Store is the SQLite Backend.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

var _ Backend = (*Store)(nil)

// Open creates or opens a SQLite database at the given path.
// Applies required pragmas and migrations automatically.
//
// This function is idempotent - safe to call multiple times.
func Open(path string) (*Store, error) {
	// Open database (creates file if doesn't exist)
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Health describes the open database connection.
type Health struct {
	JournalMode   string `json:"journalMode"`
	SchemaVersion int    `json:"schemaVersion"`
}

// Health reads the journal mode and schema version of the database.
func (s *Store) Health(ctx context.Context) (Health, error) {
	var h Health
	if err := s.db.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&h.JournalMode); err != nil {
		return Health{}, fmt.Errorf("get journal_mode: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&h.SchemaVersion); err != nil {
		return Health{}, fmt.Errorf("get user_version: %w", err)
	}
	return h, nil
}

// Get returns the value stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM records WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get record %q: %w", key, err)
	}
	return []byte(value), true, nil
}

// Put replaces the value stored under key with a new revision.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	revision, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("put record %q: revision: %w", key, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO records (key, value, revision, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			revision = excluded.revision,
			updated_at = excluded.updated_at
	`,
		key,
		string(value),
		revision.String(),
		s.now().UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("put record %q: %w", key, err)
	}
	return nil
}

// Delete removes the record under key.
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM records WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete record %q: %w", key, err)
	}
	return nil
}

// Stat returns the revision, timestamp and size of the record under key.
func (s *Store) Stat(ctx context.Context, key string) (RecordInfo, bool, error) {
	var (
		info      = RecordInfo{Key: key}
		updatedAt string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT revision, updated_at, length(CAST(value AS BLOB)) FROM records WHERE key = ?
	`, key).Scan(&info.Revision, &updatedAt, &info.Size)
	if errors.Is(err, sql.ErrNoRows) {
		return RecordInfo{}, false, nil
	}
	if err != nil {
		return RecordInfo{}, false, fmt.Errorf("stat record %q: %w", key, err)
	}
	info.UpdatedAt, err = time.Parse(timeLayout, updatedAt)
	if err != nil {
		return RecordInfo{}, false, fmt.Errorf("stat record %q: parse updated_at: %w", key, err)
	}
	return info, true, nil
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// applySchema creates tables if they don't exist and runs migrations.
// This function is idempotent.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// runMigrations applies incremental schema migrations based on user_version.
func runMigrations(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}

	if version < 1 {
		if err := migrateToV1(db); err != nil {
			return err
		}
	}

	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}

	return nil
}

// migrateToV1 adds the revision column. Rows written before v1 get an
// empty revision until their next Put.
func migrateToV1(db *sql.DB) error {
	var exists int
	err := db.QueryRow(`SELECT COUNT(*) FROM pragma_table_info('records') WHERE name = 'revision'`).Scan(&exists)
	if err != nil {
		return fmt.Errorf("migrate to v1: inspect records: %w", err)
	}
	if exists > 0 {
		return nil
	}
	if _, err := db.Exec(`ALTER TABLE records ADD COLUMN revision TEXT NOT NULL DEFAULT ''`); err != nil {
		return fmt.Errorf("migrate to v1: %w", err)
	}
	return nil
}

// verifyPragma checks that a pragma is set to the expected value.
// Used for testing.
func (s *Store) verifyPragma(name, expected string) error {
	var value string
	query := fmt.Sprintf("PRAGMA %s", name)
	if err := s.db.QueryRow(query).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
