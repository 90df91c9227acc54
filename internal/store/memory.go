package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Memory is an in-process Backend. It counts writes so tests can assert on
// write frequency.
type Memory struct {
	mu      sync.Mutex
	records map[string]memRecord
	writes  int
	now     func() time.Time
}

type memRecord struct {
	value    []byte
	revision string
	updated  time.Time
}

var _ Backend = (*Memory)(nil)

// NewMemory returns an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{records: make(map[string]memRecord), now: time.Now}
}

// Get returns a copy of the value under key.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), rec.value...), true, nil
}

// Put stores a copy of value under key.
func (m *Memory) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[key] = memRecord{
		value:    append([]byte(nil), value...),
		revision: uuid.Must(uuid.NewV7()).String(),
		updated:  m.now().UTC(),
	}
	m.writes++
	return nil
}

// Delete removes key.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, key)
	return nil
}

// Stat returns metadata for key.
func (m *Memory) Stat(_ context.Context, key string) (RecordInfo, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[key]
	if !ok {
		return RecordInfo{}, false, nil
	}
	return RecordInfo{Key: key, Revision: rec.revision, UpdatedAt: rec.updated, Size: len(rec.value)}, true, nil
}

// Writes returns the number of Put calls so far.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// Set writes value without counting it as a write, for seeding test state.
func (m *Memory) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[key] = memRecord{value: append([]byte(nil), value...), updated: m.now().UTC()}
}
