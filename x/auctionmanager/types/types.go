package types

import (
	"cosmossdk.io/math"
)

// HoldReasonCollateralAuction is the hold reason earmarking a bidder's stable
// currency while their bid is on top. At most one hold per bidder per auction.
const HoldReasonCollateralAuction = "collateral_auction"

// CollateralAuctionItem is the collateral-policy record attached to a generic
// auction. Target is the stable-currency amount the auction tries to raise;
// Target == 0 marks an always-forward auction with no reverse stage. Amount
// starts at InitialAmount and only shrinks, and only in the reverse stage.
type CollateralAuctionItem struct {
	RefundRecipient string   `json:"refund_recipient"`
	InitialAmount   math.Int `json:"initial_amount"`
	Amount          math.Int `json:"amount"`
	Target          math.Int `json:"target"`
	StartTime       int64    `json:"start_time"`
}

// NewCollateralAuctionItem creates an item with Amount = InitialAmount
func NewCollateralAuctionItem(refundRecipient string, amount, target math.Int, startTime int64) *CollateralAuctionItem {
	return &CollateralAuctionItem{
		RefundRecipient: refundRecipient,
		InitialAmount:   amount,
		Amount:          amount,
		Target:          target,
		StartTime:       startTime,
	}
}

// AlwaysForward reports whether the auction never enters the reverse stage
func (item *CollateralAuctionItem) AlwaysForward() bool {
	return item.Target.IsZero()
}

// InReverseStage reports whether a bid puts the auction in the reverse stage:
// the implied per-unit price meets or exceeds target/initial, which for a
// whole-lot bid reduces to bid >= target.
func (item *CollateralAuctionItem) InReverseStage(bid math.Int) bool {
	return !item.AlwaysForward() && bid.GTE(item.Target)
}

// BidPrice returns the per-unit price a bid implies. Always-forward auctions
// quote the bid itself as a per-unit price; otherwise the bid covers the whole
// initial lot.
func (item *CollateralAuctionItem) BidPrice(bid math.Int) math.LegacyDec {
	if item.AlwaysForward() {
		return math.LegacyNewDecFromInt(bid)
	}
	return math.LegacyNewDecFromInt(bid).QuoInt(item.InitialAmount)
}

// PaymentAmount returns the stable currency a bid obliges the bidder to pay.
// In the reverse stage payment is pinned at Target; in the forward stage the
// whole-lot bid is the payment (Amount still equals InitialAmount there, so
// price-per-unit times quantity is exactly the bid).
func (item *CollateralAuctionItem) PaymentAmount(bid math.Int) math.Int {
	if item.AlwaysForward() {
		return bid.Mul(item.Amount)
	}
	if item.InReverseStage(bid) {
		return item.Target
	}
	return bid
}
