package types

import (
	"cosmossdk.io/errors"
)

// Module error codes
var (
	ErrInvalidAmount       = errors.Register("assets", 1, "amount must be positive")
	ErrInsufficientBalance = errors.Register("assets", 2, "insufficient spendable balance")
	ErrInsufficientHold    = errors.Register("assets", 3, "insufficient held balance")
	ErrAccountNotFound     = errors.Register("assets", 4, "account not found")
)
