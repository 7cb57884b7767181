package hub

import "errors"

// Failure kinds surfaced by the registry, catalog, and router. Operations
// wrap these with fmt.Errorf("%w") so callers can classify failures with
// errors.Is while the underlying transport cause stays in the chain.
var (
	// ErrAlreadyConnected is returned by Connect when the backend name is
	// already registered.
	ErrAlreadyConnected = errors.New("backend already connected")

	// ErrNotConnected is returned when an operation names a backend that is
	// not registered.
	ErrNotConnected = errors.New("backend not connected")

	// ErrMissingCommand is returned when a process backend has no launch
	// command.
	ErrMissingCommand = errors.New("process backend requires a command")

	// ErrMissingURL is returned when a streamed backend has no URL.
	ErrMissingURL = errors.New("streamed backend requires a url")

	// ErrInvalidURL is returned when a streamed backend's URL does not parse
	// as an absolute URL.
	ErrInvalidURL = errors.New("invalid backend url")

	// ErrConnectionFailed wraps transport-level failures while opening a
	// session.
	ErrConnectionFailed = errors.New("backend connection failed")

	// ErrDisconnectFailed wraps close failures during disconnect. The
	// registry entry is removed even when this is returned.
	ErrDisconnectFailed = errors.New("backend disconnect failed")

	// ErrInvalidPattern is returned when a search pattern does not compile.
	// This is a caller error, surfaced before any backend is queried.
	ErrInvalidPattern = errors.New("invalid search pattern")

	// ErrCapabilityNotFound is returned when a backend's listing contains no
	// capability with the requested name.
	ErrCapabilityNotFound = errors.New("capability not found")

	// ErrInvocationFailed wraps transport or process failures during a
	// capability invocation.
	ErrInvocationFailed = errors.New("capability invocation failed")
)
