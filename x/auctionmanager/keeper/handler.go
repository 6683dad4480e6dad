package keeper

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	auctiontypes "github.com/openalpha/honzon/x/auction/types"
	"github.com/openalpha/honzon/x/auctionmanager/types"
)

var _ auctiontypes.Handler = (*Keeper)(nil)

// OnNewBid applies the collateral policy to a bid. It runs inside the auction
// module's cache context: any state written here is discarded when the bid is
// rejected, so the hold, the surplus booking and the item update commit as one.
func (k *Keeper) OnNewBid(ctx sdk.Context, now int64, auctionID uint64, newBid auctiontypes.Bid, lastBid *auctiontypes.Bid) auctiontypes.OnNewBidResult {
	reject := auctiontypes.OnNewBidResult{AcceptBid: false}

	item := k.GetCollateralAuction(ctx, auctionID)
	if item == nil {
		return reject
	}
	config := k.GetAuctionConfig(ctx)

	// Acceptance floor. Always-forward auctions rely on the generic module's
	// strict monotonicity alone.
	if !item.AlwaysForward() {
		var minPrice math.LegacyDec
		if lastBid != nil {
			lastPrice := item.BidPrice(lastBid.Amount)
			if item.InReverseStage(lastBid.Amount) {
				minPrice = lastPrice
			} else {
				minPrice = lastPrice.Add(config.MinimumIncrementSize)
			}
		} else {
			// First bid must clear half the target price per unit
			minPrice = item.BidPrice(item.Target).QuoInt64(2)
		}
		if item.BidPrice(newBid.Amount).LT(minPrice) {
			return reject
		}
	}

	// Reverse stage: same fixed target buys less collateral
	if item.InReverseStage(newBid.Amount) {
		newAmount := math.LegacyNewDecFromInt(item.Target).
			QuoInt(newBid.Amount).
			MulInt(item.InitialAmount).
			TruncateInt()
		if newAmount.LT(item.Amount) {
			item.Amount = newAmount
		}
	}

	payment := item.PaymentAmount(newBid.Amount)
	if err := k.assetsKeeper.Hold(ctx, types.HoldReasonCollateralAuction, newBid.Bidder, k.stableDenom, payment); err != nil {
		return reject
	}
	if err := k.treasuryKeeper.PaySurplus(ctx, payment); err != nil {
		return reject
	}

	if lastBid != nil {
		lastPayment := item.PaymentAmount(lastBid.Amount)
		if _, err := k.assetsKeeper.Release(ctx, types.HoldReasonCollateralAuction, lastBid.Bidder, k.stableDenom, lastPayment, false); err != nil {
			return reject
		}
		if err := k.treasuryKeeper.RefundSurplus(ctx, lastPayment); err != nil {
			return reject
		}
	}

	k.SetCollateralAuction(ctx, auctionID, item)

	newEnd := now + config.GetAuctionTimeToClose(item.StartTime, now)
	return auctiontypes.OnNewBidResult{
		AcceptBid: true,
		UpdateEnd: true,
		NewEnd:    &newEnd,
	}
}

// OnAuctionEnded settles an expired collateral auction. Settlement never
// fails: transfer problems are logged and the record is removed regardless,
// leaving any imbalance for governance to repair.
func (k *Keeper) OnAuctionEnded(ctx sdk.Context, auctionID uint64, winner *auctiontypes.Bid) {
	item := k.GetCollateralAuction(ctx, auctionID)
	if item == nil {
		return
	}

	k.subFromAggregates(ctx, item.InitialAmount, item.Target)
	treasury := k.treasuryKeeper.GetTreasuryAccount()

	if winner != nil {
		payment := item.PaymentAmount(winner.Amount)

		// The winner's held stable currency settles the surplus minted when
		// the bid was booked: release it and burn it.
		released, err := k.assetsKeeper.Release(ctx, types.HoldReasonCollateralAuction, winner.Bidder, k.stableDenom, payment, true)
		if err == nil && released.IsPositive() {
			if err := k.assetsKeeper.Burn(ctx, winner.Bidder, k.stableDenom, released); err != nil {
				k.logger.Error("failed to burn winner payment", "auction_id", auctionID, "error", err)
			}
		}

		if err := k.assetsKeeper.Transfer(ctx, treasury, winner.Bidder, k.collateralDenom, item.Amount); err != nil {
			k.logger.Error("failed to deliver collateral to winner", "auction_id", auctionID, "error", err)
		}
		if refund := item.InitialAmount.Sub(item.Amount); refund.IsPositive() {
			if err := k.assetsKeeper.Transfer(ctx, treasury, item.RefundRecipient, k.collateralDenom, refund); err != nil {
				k.logger.Error("failed to refund reverse-stage collateral", "auction_id", auctionID, "error", err)
			}
		}

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				"collateral_auction_dealt",
				sdk.NewAttribute("auction_id", fmt.Sprintf("%d", auctionID)),
				sdk.NewAttribute("winner", winner.Bidder),
				sdk.NewAttribute("payment", payment.String()),
				sdk.NewAttribute("amount", item.Amount.String()),
			),
		)
	} else {
		if err := k.assetsKeeper.Transfer(ctx, treasury, item.RefundRecipient, k.collateralDenom, item.InitialAmount); err != nil {
			k.logger.Error("failed to return unsold collateral", "auction_id", auctionID, "error", err)
		}

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				"collateral_auction_aborted",
				sdk.NewAttribute("auction_id", fmt.Sprintf("%d", auctionID)),
				sdk.NewAttribute("refund_recipient", item.RefundRecipient),
				sdk.NewAttribute("amount", item.InitialAmount.String()),
			),
		)
	}

	k.RemoveCollateralAuction(ctx, auctionID)
}
