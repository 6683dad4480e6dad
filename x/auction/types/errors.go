package types

import (
	"cosmossdk.io/errors"
)

// Module error codes
var (
	ErrNoAvailableAuctionID = errors.Register("auction", 1, "no available auction id")
	ErrAuctionNotExist      = errors.Register("auction", 2, "auction does not exist")
	ErrAuctionNotStarted    = errors.Register("auction", 3, "auction has not started")
	ErrInvalidBidPrice      = errors.Register("auction", 4, "invalid bid price")
	ErrBidNotAccepted       = errors.Register("auction", 5, "bid not accepted by handler")
	ErrHandlerNotSet        = errors.Register("auction", 6, "auction handler not set")
)
