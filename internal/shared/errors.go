package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentialFormat indicates a staff ID whose prefix does not
	// map to any role. Surfaced to the login form; the session is untouched.
	ErrInvalidCredentialFormat = errors.New("invalid credential format")
	// ErrCSRFTokenMissing occurs when a CSRF token is absent.
	ErrCSRFTokenMissing = errors.New("csrf token missing")
	// ErrCSRFTokenMismatch occurs when CSRF tokens do not match.
	ErrCSRFTokenMismatch = errors.New("csrf token mismatch")
)
