package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/honzon/x/cdpengine/types"
)

// LiquidateUnsafeCDP seizes an unsafe position and puts its collateral up for
// auction, targeting the seized debit value. The confiscation and the auction
// creation commit together or not at all.
func (k *Keeper) LiquidateUnsafeCDP(ctx sdk.Context, who string) error {
	if k.IsShutdown(ctx) {
		return types.ErrAlreadyShutdown
	}
	if k.GetCDPStatus(ctx, who) != types.StatusUnsafe {
		return types.ErrMustBeUnsafe
	}

	position := k.loansKeeper.GetPosition(ctx, who)
	collateral := position.Collateral
	debit := position.Debit
	target := k.GetDebitValue(ctx, debit)

	cctx, write := ctx.CacheContext()
	if err := k.loansKeeper.ConfiscateCollateralAndDebit(cctx, who, collateral, debit); err != nil {
		return err
	}
	if collateral.IsPositive() {
		if _, err := k.treasuryKeeper.CreateCollateralAuctions(cctx, collateral, target, who, true); err != nil {
			return err
		}
	}
	write()

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"liquidate_unsafe_cdp",
			sdk.NewAttribute("owner", who),
			sdk.NewAttribute("collateral", collateral.String()),
			sdk.NewAttribute("debit", debit.String()),
		),
	)

	k.logger.Info("unsafe cdp liquidated",
		"owner", who,
		"collateral", collateral.String(),
		"target", target.String())
	return nil
}

// SettleCDPHasDebit settles a position after emergency shutdown: collateral
// worth the debit value (capped at what the position holds) is confiscated
// along with the full debit.
func (k *Keeper) SettleCDPHasDebit(ctx sdk.Context, who string) error {
	if !k.IsShutdown(ctx) {
		return types.ErrMustAfterShutdown
	}

	position := k.loansKeeper.GetPosition(ctx, who)
	if position.Debit.IsZero() {
		return types.ErrNoDebitValue
	}

	confiscateCollateral := math.MinInt(position.Collateral, k.GetDebitValue(ctx, position.Debit))
	if err := k.loansKeeper.ConfiscateCollateralAndDebit(ctx, who, confiscateCollateral, position.Debit); err != nil {
		return err
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"settle_cdp_in_debit",
			sdk.NewAttribute("owner", who),
			sdk.NewAttribute("collateral", confiscateCollateral.String()),
			sdk.NewAttribute("debit", position.Debit.String()),
		),
	)
	return nil
}

// EmergencyShutdown irreversibly halts new debit issuance and new collateral
// auctions while enabling post-shutdown settlement and cancellation
func (k *Keeper) EmergencyShutdown(ctx sdk.Context) error {
	if k.IsShutdown(ctx) {
		return types.ErrAlreadyShutdown
	}
	k.setShutdown(ctx)

	ctx.EventManager().EmitEvent(sdk.NewEvent("emergency_shutdown"))
	k.logger.Info("emergency shutdown triggered", "height", ctx.BlockHeight())
	return nil
}
