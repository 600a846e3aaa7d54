package dto

import "errors"

// Domain errors surfaced across service boundaries. The error middleware maps
// them to HTTP statuses.
var (
	// ErrSessionNotFound means an operation referenced a session id absent
	// from the caller's catalog. A contract violation, never swallowed.
	ErrSessionNotFound = errors.New("chat session not found")

	// ErrTurnInFlight rejects a submit that arrives while another turn for
	// the same user is still awaiting its response. No queueing.
	ErrTurnInFlight = errors.New("a turn is already in flight for this user")

	// ErrEmptyTurnInput rejects a submit with no text, file or audio.
	ErrEmptyTurnInput = errors.New("turn input is empty")
)
