package types

import (
	"cosmossdk.io/errors"
)

// Module error codes
var (
	ErrAmountConvertFailed = errors.Register("loans", 1, "adjustment would take a balance below zero")
	ErrInvalidAmount       = errors.Register("loans", 2, "invalid amount")
)
