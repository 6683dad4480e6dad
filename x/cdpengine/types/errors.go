package types

import (
	"cosmossdk.io/errors"
)

// Module error codes
var (
	ErrInvalidCollateralType        = errors.Register("cdpengine", 1, "collateral params not set")
	ErrBelowRequiredCollateralRatio = errors.Register("cdpengine", 2, "collateral ratio below required ratio")
	ErrBelowLiquidationRatio        = errors.Register("cdpengine", 3, "collateral ratio below liquidation ratio")
	ErrRemainDebitValueTooSmall     = errors.Register("cdpengine", 4, "remaining debit value too small")
	ErrExceedDebitValueHardCap      = errors.Register("cdpengine", 5, "total debit value exceeds hard cap")
	ErrMustBeUnsafe                 = errors.Register("cdpengine", 6, "position must be unsafe")
	ErrMustBeSafe                   = errors.Register("cdpengine", 7, "position must be safe")
	ErrNoDebitValue                 = errors.Register("cdpengine", 8, "position has no debit")
	ErrMustAfterShutdown            = errors.Register("cdpengine", 9, "only callable after emergency shutdown")
	ErrAlreadyShutdown              = errors.Register("cdpengine", 10, "system is shut down")
	ErrUnauthorized                 = errors.Register("cdpengine", 11, "unauthorized")
	ErrInvalidAmount                = errors.Register("cdpengine", 12, "invalid amount")
)
