package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency.
// The scheduler never surfaces these to its caller: requesting a boost is
// fire-and-forget. They exist for the sink, storage, and API layers.

var (
	// Sink errors
	ErrSinkUnavailable = errors.New("hint sink unavailable")
	ErrSinkRejected    = errors.New("hint sink rejected the hint")

	// Storage errors
	ErrWindowNotFound = errors.New("hint window not found")

	// API errors
	ErrBadRequest = errors.New("malformed request body")
)
