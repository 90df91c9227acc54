// Package workbook implements the in-memory mutation API over the workbook
// state.
//
// A Controller owns one RootState. Every mutation follows the same two
// steps: apply the change under the controller's lock, then schedule a
// debounced save through the autosave scheduler. The save reads the state
// when it fires, so a burst of edits lands as one write carrying the last
// of them. Flush forces a pending save and Close flushes and stops
// scheduling.
//
// Invalid input is rejected with an *Error and leaves the state untouched.
// Out-of-range scores are clamped, not rejected.
package workbook
