// Package errs defines the error taxonomy shared across services and
// handlers. No-match outcomes (needs_choice routing, absent extracted
// fields) are valid results, not errors, and never appear here.
package errs

import "fmt"

// ExternalServiceError reports a failed call to an upstream service (OCR,
// Zoho OAuth/Books). The upstream message is preserved verbatim so the
// caller can surface the real reason instead of a generic failure.
type ExternalServiceError struct {
	Service string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}

// UnsupportedInputError reports image bytes that could not be decoded for
// pre-processing. This path is best-effort: callers fall back to the
// unmodified input rather than failing the extraction.
type UnsupportedInputError struct {
	Reason string
}

func (e *UnsupportedInputError) Error() string {
	return "unsupported input: " + e.Reason
}

// ValidationError reports a malformed or missing field in a request.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
