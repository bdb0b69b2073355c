package deploy

import "errors"

var (
	ErrNoProjectSelected   = errors.New("no project selected")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInsufficientBalance = errors.New("insufficient treasury balance")
	ErrStepLocked          = errors.New("step cannot be changed from here")
	ErrSubmissionInFlight  = errors.New("a submission is already in flight")
	ErrSubmissionTimeout   = errors.New("submission timed out")
	ErrMissingProject      = errors.New("project id is required")
	ErrMissingAmount       = errors.New("amount is required")
)
