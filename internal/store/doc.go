// Package store provides durable key/value storage for workbook records.
//
// A workbook is persisted as one JSON record under one fixed key; the store
// knows nothing about its contents. Two backends implement Backend:
//   - Store: SQLite, the on-device durable backend
//   - Memory: an in-process map, used by tests and dry runs
//
// # Write semantics
//
//   - Put replaces the whole value under a key in a single statement. A
//     reader never observes a partially written record.
//   - Every Put stamps a fresh UUIDv7 revision and a UTC timestamp, exposed
//     through Stat, so two saves of identical content remain distinguishable.
//   - There is no cross-process coordination beyond SQLite's own locking.
//     Concurrent writers to the same key resolve last-writer-wins.
//
// # Database Configuration
//
//   - WAL mode: readers do not block the writer
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - schema versioned with PRAGMA user_version
package store
