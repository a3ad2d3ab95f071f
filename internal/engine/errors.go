package engine

import "errors"

// Rejection errors. These are expected outcomes of user actions (the worst
// case is a refused operation, never a crash) and are matched with errors.Is.
var (
	ErrInsufficientFunds = errors.New("not enough cash")
	ErrInsufficientStars = errors.New("not enough stars")
	ErrInvalidExchange   = errors.New("exchange amount must be a positive multiple of the rate")
	ErrInvalidAmount     = errors.New("amount must not be negative")
	ErrChildNotFound     = errors.New("child not found")
	ErrEmptyPool         = errors.New("reward pool is empty")
	ErrNoSuchCard        = errors.New("card not owned")
	ErrInvalidPIN        = errors.New("PIN must be exactly 4 digits")
	ErrWrongPIN          = errors.New("wrong PIN")
)
