package domain

import "errors"

// Sentinel errors shared across services. Services wrap lower-level failures with
// fmt.Errorf("...: %w", err); controllers map these with errors.Is.
var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoSpeakers         = errors.New("event has no speakers")
	ErrNotConnected       = errors.New("social account not connected")
	ErrAlreadyPublished   = errors.New("already published")
)
