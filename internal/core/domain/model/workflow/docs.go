// Package workflow implements the status workflow engine shared by the order
// and refund domains.
//
// An Engine is compiled once from a Definition: a closed, ordered list of
// statuses with their display metadata and their declared outgoing
// transitions. Compilation rejects definitions that break the table
// invariants:
//   - every transition target is a declared status
//   - terminal statuses have no outgoing transitions
//   - every other status has at least one, and the escape status among them
//   - no status transitions to itself
//
// After compilation the engine is read-only. Its queries never fail: an
// unrecognized code, such as a legacy value read from stored data, yields the
// "Unknown" fallback record and an empty transition list, so a dashboard can
// always render it.
//
// The engine only reports whether a transition is valid. Enforcement belongs
// to the backend service that owns the entity.
package workflow
