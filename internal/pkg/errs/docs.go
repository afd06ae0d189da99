// Package errs provides the standardized error types used across the dispatch
// application.
//
// Each error type follows the same pattern:
//   - a sentinel error variable (e.g. ErrObjectNotFound) for errors.Is checks
//   - a struct type carrying the error details
//   - constructor functions with and without an underlying cause
//   - Error() for formatting and Unwrap() pointing at the sentinel
//
// Callers classify failures by sentinel, never by message text. The HTTP layer
// relies on this to translate not-found and validation failures into status
// codes without inspecting strings.
package errs
