package types

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Bid is the current top bid of an auction
type Bid struct {
	Bidder string   `json:"bidder"`
	Amount math.Int `json:"amount"`
}

// AuctionInfo is the generic auction record. End is nil for auctions without
// a deadline; while End is set, a matching entry exists in the by-end-block
// index.
type AuctionInfo struct {
	Bid   *Bid   `json:"bid,omitempty"`
	Start int64  `json:"start"`
	End   *int64 `json:"end,omitempty"`
}

// NewAuctionInfo creates an auction record with no bid
func NewAuctionInfo(start int64, end *int64) *AuctionInfo {
	return &AuctionInfo{
		Bid:   nil,
		Start: start,
		End:   end,
	}
}

// OnNewBidResult is the handler's verdict on a bid. When UpdateEnd is true the
// auction's end block is replaced with NewEnd (nil removes the deadline).
type OnNewBidResult struct {
	AcceptBid bool
	UpdateEnd bool
	NewEnd    *int64
}

// Handler supplies domain policy to the generic auction runtime. OnNewBid is
// invoked synchronously during bid processing, OnAuctionEnded during the
// end-of-block sweep for every auction whose end equals the current block.
type Handler interface {
	OnNewBid(ctx sdk.Context, now int64, auctionID uint64, newBid Bid, lastBid *Bid) OnNewBidResult
	OnAuctionEnded(ctx sdk.Context, auctionID uint64, winner *Bid)
}
