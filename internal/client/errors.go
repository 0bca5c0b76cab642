package client

import "fmt"

// validationError signals bad caller input, detected before any engine call.
// Kind is either "count-mismatch" or "malformed-request".
type validationError struct {
	kind string
	msg  string
}

func (e validationError) Error() string { return e.kind + ": " + e.msg }

// ErrSamplingCountMismatch reports a per-request sampling list whose length
// does not match the request count.
func ErrSamplingCountMismatch(requests, params int) error {
	return validationError{
		kind: "count-mismatch",
		msg:  fmt.Sprintf("%d prompts but %d sampling configurations; counts must match exactly", requests, params),
	}
}

// ErrMalformedRequest reports input whose shape cannot be normalized.
func ErrMalformedRequest(format string, args ...any) error {
	return validationError{kind: "malformed-request", msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err indicates recoverable bad input.
func IsValidation(err error) bool {
	_, ok := err.(validationError)
	return ok
}

// IsCountMismatch reports whether err is a sampling count mismatch.
func IsCountMismatch(err error) bool {
	ve, ok := err.(validationError)
	return ok && ve.kind == "count-mismatch"
}
