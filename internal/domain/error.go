package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound            = errors.New("entity not found")
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrAlreadyExists       = errors.New("entity already exists")
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrDailyLimitReached   = errors.New("daily message limit reached")
	ErrEmptyMessage        = errors.New("message text is empty")
)
