package types

import (
	"cosmossdk.io/errors"
)

// Module error codes
var (
	ErrAuctionNotFound   = errors.Register("auctionmanager", 1, "collateral auction not found")
	ErrInReverseStage    = errors.Register("auctionmanager", 2, "auction already in reverse stage")
	ErrMustAfterShutdown = errors.Register("auctionmanager", 3, "only callable after emergency shutdown")
	ErrInvalidAmount     = errors.Register("auctionmanager", 4, "invalid amount")
)
