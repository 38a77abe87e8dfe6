// Package errs provides the error taxonomy shared by the freight service.
//
// Caller-input problems are reported with ValueIsRequiredError,
// ValueIsInvalidError and ValueIsOutOfRangeError; a missing booking or
// loading sheet with ObjectNotFoundError; failed persistence calls with
// DataAccessError.
//
// Each type follows the same shape:
//   - a sentinel error variable (e.g. ErrValueIsInvalid) returned by Unwrap
//   - constructor functions with and without a cause
//   - an Error method that appends "(cause: ...)" when a cause is present
//
// The HTTP adapter relies on errors.Is against the sentinels to tell
// "your input was invalid" apart from "something went wrong, try again".
package errs
