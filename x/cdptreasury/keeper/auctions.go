package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/honzon/x/cdptreasury/types"
)

// CreateCollateralAuctions puts amount of treasury collateral up for auction,
// aiming to raise target stable currency, and returns how many auctions were
// created. With split set and a nonzero ExpectedCollateralAuctionSize the
// amount is cut into lots of roughly that size; target is distributed in
// proportion so the lot targets sum to target exactly.
func (k *Keeper) CreateCollateralAuctions(ctx sdk.Context, amount, target math.Int, refundRecipient string, split bool) (int, error) {
	if amount.IsNil() || !amount.IsPositive() || target.IsNil() || target.IsNegative() {
		return 0, types.ErrInvalidAmount
	}
	if k.isShutdown(ctx) {
		return 0, types.ErrAlreadyShutdown
	}

	free := k.GetTotalCollaterals(ctx).Sub(k.auctionManagerKeeper.GetTotalCollateralInAuction(ctx))
	if amount.GT(free) {
		return 0, types.ErrCollateralNotEnough
	}

	lotSize := k.GetExpectedCollateralAuctionSize(ctx)
	if !split || lotSize.IsZero() {
		if _, err := k.auctionManagerKeeper.NewCollateralAuction(ctx, refundRecipient, amount, target); err != nil {
			return 0, err
		}
		return 1, nil
	}

	// ceil(amount / lotSize), rescaling the lot when the count would exceed
	// the per-call bound
	lots := amount.Add(lotSize).Sub(math.OneInt()).Quo(lotSize)
	if lots.GT(math.NewInt(types.MaxAuctionsCount)) {
		lots = math.NewInt(types.MaxAuctionsCount)
		lotSize = amount.Add(lots).Sub(math.OneInt()).Quo(lots)
	}

	created := 0
	remainingAmount := amount
	remainingTarget := target
	for remainingAmount.IsPositive() {
		lotAmount := math.MinInt(lotSize, remainingAmount)
		var lotTarget math.Int
		if lotAmount.Equal(remainingAmount) {
			// Last lot absorbs the target remainder
			lotTarget = remainingTarget
		} else {
			lotTarget = target.Mul(lotAmount).Quo(amount)
		}
		if _, err := k.auctionManagerKeeper.NewCollateralAuction(ctx, refundRecipient, lotAmount, lotTarget); err != nil {
			return created, err
		}
		created++
		remainingAmount = remainingAmount.Sub(lotAmount)
		remainingTarget = remainingTarget.Sub(lotTarget)
	}

	k.logger.Info("collateral auctions created",
		"count", created,
		"amount", amount.String(),
		"target", target.String())
	return created, nil
}
