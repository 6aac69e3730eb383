package domain

import "errors"

var (
	// ErrNotFound is returned when the requested resource does not exist
	// or is not owned by the caller. The two cases are deliberately
	// indistinguishable so resource existence cannot be probed.
	ErrNotFound = errors.New("resource not found")
	// ErrUnauthorized covers every credential failure: missing, malformed,
	// expired, or signature mismatch. Wrapped messages stay server-side;
	// the HTTP surface is always the same generic 401.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidInput marks caller-fixable request shape problems.
	ErrInvalidInput = errors.New("invalid input")
)
