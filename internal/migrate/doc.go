// Package migrate upgrades previously persisted workbook records to the
// current schema.
//
// No version number is stored with a record. Every revision of the schema is
// additive, so migration is inferred from structural absence: a field that is
// missing gets its default, a field that is present is left exactly as it
// is. The rules run in a fixed order and each one is idempotent, which makes
// the whole pass idempotent: repairing an already repaired document changes
// nothing.
//
// Decoding is lenient about legacy encodings (numbers stored as strings,
// floats where integers are expected) so that one odd field never turns a
// whole record into "corrupt" and loses the user's data.
package migrate
