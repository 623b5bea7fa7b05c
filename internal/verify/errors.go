package verify

import "errors"

var (
	// ErrPlayerNotFound means no enrollment exists for the player_id.
	// No audit row is written for this case.
	ErrPlayerNotFound = errors.New("player not found")

	// ErrNoFaceDetected means the sample template is empty because the
	// embedding extractor found no face. Terminal for this attempt,
	// no audit row, the client retries on the next interval.
	ErrNoFaceDetected = errors.New("no face detected")

	// ErrShapeMismatch means the sample and enrolled templates have
	// different dimensions. Indicates a data-integrity problem
	// upstream, not a routine mismatch.
	ErrShapeMismatch = errors.New("template dimension mismatch")

	// ErrStorageUnavailable means the audit log could not be written.
	// The verdict is never returned without a durable audit trail.
	ErrStorageUnavailable = errors.New("audit storage unavailable")
)
