package engine

import "fmt"

// initializationError signals a failed construction attempt. Any partially
// acquired resource is released before it propagates.
type initializationError struct{ msg string }

func (e initializationError) Error() string { return "engine init: " + e.msg }

// ErrInitialization constructs an initializationError.
func ErrInitialization(format string, args ...any) error {
	return initializationError{msg: fmt.Sprintf(format, args...)}
}

// IsInitialization reports whether err indicates a failed engine construction.
func IsInitialization(err error) bool {
	_, ok := err.(initializationError)
	return ok
}

// resourceConflictError signals that another handle already owns the
// exclusive engine resources in this process.
type resourceConflictError struct{ model string }

func (e resourceConflictError) Error() string {
	return "engine resources already held by an active handle (model " + e.model + ")"
}

// IsResourceConflict reports whether err indicates a second handle was
// created before the first was torn down.
func IsResourceConflict(err error) bool {
	_, ok := err.(resourceConflictError)
	return ok
}

// useAfterTeardownError signals an operation on a torn-down handle or on a
// weak handle whose target is gone.
type useAfterTeardownError struct{ what string }

func (e useAfterTeardownError) Error() string { return e.what + ": target released" }

// ErrUseAfterTeardown constructs a useAfterTeardownError for the named
// operation or handle.
func ErrUseAfterTeardown(what string) error { return useAfterTeardownError{what: what} }

// IsUseAfterTeardown reports whether err indicates use of released engine
// state.
func IsUseAfterTeardown(err error) bool {
	_, ok := err.(useAfterTeardownError)
	return ok
}

// engineError signals a failure inside the generate path. Kind is either
// "count-mismatch" (collaborator contract violation) or "internal".
type engineError struct {
	kind string
	msg  string
}

func (e engineError) Error() string { return "engine " + e.kind + ": " + e.msg }

// ErrCountMismatch constructs an engineError reporting that the engine
// returned a different number of results than requests submitted.
func ErrCountMismatch(want, got int) error {
	return engineError{kind: "count-mismatch", msg: fmt.Sprintf("submitted %d requests, got %d results", want, got)}
}

// ErrInternal constructs an internal engineError.
func ErrInternal(format string, args ...any) error {
	return engineError{kind: "internal", msg: fmt.Sprintf(format, args...)}
}

// IsEngine reports whether err originated in the engine generate path.
func IsEngine(err error) bool {
	_, ok := err.(engineError)
	return ok
}

// IsCountMismatch reports whether err is an engine count-mismatch.
func IsCountMismatch(err error) bool {
	ee, ok := err.(engineError)
	return ok && ee.kind == "count-mismatch"
}
