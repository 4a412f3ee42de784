package vis

import "errors"

// Sentinel errors returned by the public API facade. State-management
// errors are returned to the caller; transport errors are never
// surfaced here (see sendLocked in connection.go) — the API is
// fire-and-forget over the wire.
var (
	// ErrNotInitialized is returned by operations on an Engine that was
	// never started with Run.
	ErrNotInitialized = errors.New("vis: engine not initialized")

	// ErrWindowNotFound is returned when a window name is unknown.
	ErrWindowNotFound = errors.New("vis: window not found")

	// ErrKindMismatch is returned when a window exists under the given
	// name but with the other dimensionality.
	ErrKindMismatch = errors.New("vis: window kind mismatch")

	// ErrDuplicateName is returned by CreateWindow/RenameWindow when the
	// target name is already in use by another window.
	ErrDuplicateName = errors.New("vis: window name already in use")

	// ErrEmptyName is returned by CreateWindow/RenameWindow when the
	// target name is empty.
	ErrEmptyName = errors.New("vis: window name must not be empty")
)
