package keeper

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/honzon/x/auctionmanager/types"
)

// CancelAuction unwinds a collateral auction after emergency shutdown. Only
// forward-stage auctions can be cancelled: once a bid has entered the reverse
// stage the winner's claim on the shrunken lot stands.
func (k *Keeper) CancelAuction(ctx sdk.Context, id uint64) error {
	if k.shutdownKeeper == nil || !k.shutdownKeeper.IsShutdown(ctx) {
		return types.ErrMustAfterShutdown
	}
	item := k.GetCollateralAuction(ctx, id)
	if item == nil {
		return types.ErrAuctionNotFound
	}
	info := k.auctionKeeper.GetAuction(ctx, id)
	if info == nil {
		return types.ErrAuctionNotFound
	}

	if info.Bid != nil {
		if item.InReverseStage(info.Bid.Amount) {
			return types.ErrInReverseStage
		}
		payment := item.PaymentAmount(info.Bid.Amount)
		if _, err := k.assetsKeeper.Release(ctx, types.HoldReasonCollateralAuction, info.Bid.Bidder, k.stableDenom, payment, true); err != nil {
			return err
		}
		if err := k.treasuryKeeper.RefundSurplus(ctx, payment); err != nil {
			return err
		}
	}

	treasury := k.treasuryKeeper.GetTreasuryAccount()
	if err := k.assetsKeeper.Transfer(ctx, treasury, item.RefundRecipient, k.collateralDenom, item.InitialAmount); err != nil {
		return err
	}

	k.subFromAggregates(ctx, item.InitialAmount, item.Target)
	k.RemoveCollateralAuction(ctx, id)
	k.auctionKeeper.RemoveAuction(ctx, id)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"cancel_auction",
			sdk.NewAttribute("auction_id", fmt.Sprintf("%d", id)),
		),
	)

	k.logger.Info("collateral auction cancelled", "auction_id", id)
	return nil
}
