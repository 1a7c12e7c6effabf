// Package errs provides the typed errors shared across statusflow.
//
// Every error type follows the same shape:
//   - a sentinel (e.g. ErrValueIsRequired) usable with errors.Is
//   - a struct carrying the offending parameter and an optional cause
//   - constructors with and without a cause
//   - Unwrap returning the sentinel
//
// Values rendered into messages are flattened to a single line, since most of
// them arrive from backend payloads or query strings.
package errs
