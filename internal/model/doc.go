// Package model defines the workbook state types and their canonical defaults.
//
// The package is the foundation layer: every other internal package imports
// model, and model imports nothing internal.
//
// Key design constraints:
//   - Months, identity-wheel dimensions and week keys are closed enums; a
//     record exists for every member, indexed by the enum, never by free-form
//     strings
//   - JSON field names use lowerCamelCase and match the persisted record
//     exactly, so the schema can only grow additively
//   - Collections serialize in fixed (calendar / declaration) order so the
//     same state always encodes to the same bytes
//   - Builders are pure; they are used both for fresh state and as the fill
//     source during migration
package model
