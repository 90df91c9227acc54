package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	// Verify file was created
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := s.Put(ctx, "k", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}
	s.Close()

	for i := 0; i < 3; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("Open() iteration %d failed: %v", i, err)
		}
		got, ok, err := s.Get(ctx, "k")
		if err != nil || !ok {
			t.Fatalf("iteration %d: Get() = ok %v, err %v", i, ok, err)
		}
		if string(got) != `{"a":1}` {
			t.Errorf("iteration %d: Get() = %s", i, got)
		}
		s.Close()
	}
}

func TestOpen_InvalidPath(t *testing.T) {
	// Try to open in non-existent directory
	path := "/nonexistent/dir/test.db"

	_, err := Open(path)
	if err == nil {
		t.Error("expected error for invalid path, got nil")
	}
}

func TestClose_NilDB(t *testing.T) {
	s := &Store{db: nil}
	err := s.Close()
	if err != nil {
		t.Errorf("Close() on nil db should not error: %v", err)
	}
}

func TestHealth_ReportsJournalModeAndVersion(t *testing.T) {
	s := openTestStore(t)

	h, err := s.Health(context.Background())
	if err != nil {
		t.Fatalf("Health() failed: %v", err)
	}
	if h.JournalMode != "wal" {
		t.Errorf("JournalMode = %q, want wal", h.JournalMode)
	}
	if h.SchemaVersion != currentSchemaVersion {
		t.Errorf("SchemaVersion = %d, want %d", h.SchemaVersion, currentSchemaVersion)
	}
}

// Pragma tests

func TestPragma_JournalMode(t *testing.T) {
	s := openTestStore(t)
	if err := s.verifyPragma("journal_mode", "wal"); err != nil {
		t.Error(err)
	}
}

func TestPragma_Synchronous(t *testing.T) {
	s := openTestStore(t)
	// NORMAL = 1
	if err := s.verifyPragma("synchronous", "1"); err != nil {
		t.Error(err)
	}
}

func TestPragma_BusyTimeout(t *testing.T) {
	s := openTestStore(t)
	if err := s.verifyPragma("busy_timeout", "5000"); err != nil {
		t.Error(err)
	}
}

// Schema tests

func TestSchema_RecordsTable(t *testing.T) {
	s := openTestStore(t)

	columns := getTableColumns(t, s.db, "records")
	for _, col := range []string{"key", "value", "revision", "updated_at"} {
		if !contains(columns, col) {
			t.Errorf("records table missing column %q, have %v", col, columns)
		}
	}
}

// Record tests

func TestGet_Missing(t *testing.T) {
	s := openTestStore(t)

	got, ok, err := s.Get(context.Background(), "absent")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if ok || got != nil {
		t.Errorf("Get() = %q, %v; want nil, false", got, ok)
	}
}

func TestPut_ReplacesValue(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Put(ctx, "k", []byte("first")); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}
	if err := s.Put(ctx, "k", []byte("second")); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}

	got, ok, err := s.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("Get() = ok %v, err %v", ok, err)
	}
	if string(got) != "second" {
		t.Errorf("Get() = %q, want %q", got, "second")
	}

	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM records").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("records count = %d, want 1", count)
	}
}

func TestPut_KeysAreIndependent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Put(ctx, "a", []byte("1")); err != nil {
		t.Fatal(err)
	}
	if err := s.Put(ctx, "b", []byte("2")); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, "a"); err != nil {
		t.Fatal(err)
	}

	if _, ok, _ := s.Get(ctx, "a"); ok {
		t.Error("deleted key still present")
	}
	if got, ok, _ := s.Get(ctx, "b"); !ok || string(got) != "2" {
		t.Errorf("Get(b) = %q, %v", got, ok)
	}
}

func TestDelete_MissingKey(t *testing.T) {
	s := openTestStore(t)
	if err := s.Delete(context.Background(), "absent"); err != nil {
		t.Errorf("Delete() of missing key failed: %v", err)
	}
}

func TestStat_RevisionAndTimestamp(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	if _, ok, err := s.Stat(ctx, "k"); err != nil || ok {
		t.Fatalf("Stat() before Put = ok %v, err %v", ok, err)
	}

	if err := s.Put(ctx, "k", []byte("héllo")); err != nil {
		t.Fatal(err)
	}
	first, ok, err := s.Stat(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("Stat() = ok %v, err %v", ok, err)
	}
	if first.Revision == "" {
		t.Error("Stat() revision is empty")
	}
	if !first.UpdatedAt.Equal(fixed) {
		t.Errorf("UpdatedAt = %v, want %v", first.UpdatedAt, fixed)
	}
	if first.Size != len("héllo") {
		t.Errorf("Size = %d, want %d", first.Size, len("héllo"))
	}

	// Identical content still gets a new revision.
	if err := s.Put(ctx, "k", []byte("héllo")); err != nil {
		t.Fatal(err)
	}
	second, _, err := s.Stat(ctx, "k")
	if err != nil {
		t.Fatal(err)
	}
	if second.Revision == first.Revision {
		t.Errorf("revision unchanged after Put: %s", second.Revision)
	}
}

// Migration tests

func TestMigration_SchemaVersion(t *testing.T) {
	s := openTestStore(t)

	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		t.Fatalf("failed to get user_version: %v", err)
	}
	if version != currentSchemaVersion {
		t.Errorf("user_version = %d, want %d", version, currentSchemaVersion)
	}
}

func TestMigration_UpgradeFromV0(t *testing.T) {
	// Simulate a pre-migration database (version 0)
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	// Apply schema but NOT migrations (simulates pre-migration state)
	if _, err := db.Exec(schemaSQL); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}
	if _, err := db.Exec(
		`INSERT INTO records (key, value, updated_at) VALUES ('k', 'legacy', '2025-01-01T00:00:00Z')`,
	); err != nil {
		t.Fatalf("failed to seed v0 row: %v", err)
	}
	db.Close()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		t.Fatalf("failed to get user_version: %v", err)
	}
	if version != currentSchemaVersion {
		t.Errorf("user_version = %d, want %d after migration", version, currentSchemaVersion)
	}

	info, ok, err := s.Stat(context.Background(), "k")
	if err != nil || !ok {
		t.Fatalf("Stat() = ok %v, err %v", ok, err)
	}
	if info.Revision != "" {
		t.Errorf("legacy row revision = %q, want empty", info.Revision)
	}
	got, _, _ := s.Get(context.Background(), "k")
	if string(got) != "legacy" {
		t.Errorf("legacy value = %q", got)
	}
}

// Helper functions

func getTableColumns(t *testing.T, db *sql.DB, table string) []string {
	t.Helper()

	rows, err := db.Query("PRAGMA table_info(" + table + ")")
	if err != nil {
		t.Fatalf("failed to get table info for %q: %v", table, err)
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull, pk int
		var dfltValue interface{}
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dfltValue, &pk); err != nil {
			t.Fatalf("failed to scan column info: %v", err)
		}
		columns = append(columns, name)
	}
	return columns
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
