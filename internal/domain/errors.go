package domain

import "errors"

var (
	ErrUnknownLevel    = errors.New("unknown level")
	ErrLevelLocked     = errors.New("level is locked")
	ErrAttemptSpent    = errors.New("level attempt already completed")
	ErrUnknownSkin     = errors.New("unknown skin")
	ErrInvalidAmount   = errors.New("amount must not be negative")
	ErrProfileNotFound = errors.New("profile not found")
)
