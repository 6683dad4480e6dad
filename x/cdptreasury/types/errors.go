package types

import (
	"cosmossdk.io/errors"
)

// Module error codes
var (
	ErrInvalidAmount       = errors.Register("cdptreasury", 1, "invalid amount")
	ErrCollateralNotEnough = errors.Register("cdptreasury", 2, "not enough free collateral at the treasury")
	ErrAlreadyShutdown     = errors.Register("cdptreasury", 3, "system is shut down")
	ErrUnauthorized        = errors.Register("cdptreasury", 4, "unauthorized")
)
