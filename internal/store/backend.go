package store

import (
	"context"
	"time"
)

// Backend is durable storage for whole records.
type Backend interface {
	// Get returns the value under key. ok is false when no record exists.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Put replaces the value under key.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes the record under key. Deleting a missing key is not an
	// error.
	Delete(ctx context.Context, key string) error

	// Stat returns metadata about the record under key.
	Stat(ctx context.Context, key string) (info RecordInfo, ok bool, err error)
}

// RecordInfo describes the last write of a record.
type RecordInfo struct {
	Key       string
	Revision  string
	UpdatedAt time.Time
	Size      int
}
