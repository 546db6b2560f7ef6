package agent

import "errors"

var (
	// ErrSessionNotFound is returned when an operation names a session that
	// was never ensured or has been reset.
	ErrSessionNotFound = errors.New("session not found")
	// ErrCapabilityFailure wraps any error from the language-model or
	// speech-to-text capability.
	ErrCapabilityFailure = errors.New("capability failure")
)
