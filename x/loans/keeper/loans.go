package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/honzon/x/loans/types"
)

// applyAdjustment updates a position and the aggregate by the signed deltas,
// failing if any component would go negative. Callers persist the results.
func (k *Keeper) applyAdjustment(ctx sdk.Context, who string, collateralAdj, debitAdj math.Int) (*types.Position, *types.Position, error) {
	position := k.GetPosition(ctx, who)
	total := k.GetTotalPositions(ctx)

	position.Collateral = position.Collateral.Add(collateralAdj)
	position.Debit = position.Debit.Add(debitAdj)
	total.Collateral = total.Collateral.Add(collateralAdj)
	total.Debit = total.Debit.Add(debitAdj)

	if position.Collateral.IsNegative() || position.Debit.IsNegative() ||
		total.Collateral.IsNegative() || total.Debit.IsNegative() {
		return nil, nil, types.ErrAmountConvertFailed
	}
	return position, total, nil
}

// persistPosition writes a position and maintains the account's consumer
// reference across the live/empty boundary
func (k *Keeper) persistPosition(ctx sdk.Context, who string, wasLive bool, position *types.Position) {
	nowLive := !position.IsEmpty()
	if !wasLive && nowLive {
		k.incConsumerRefs(ctx, who)
	} else if wasLive && !nowLive {
		k.decConsumerRefs(ctx, who)
	}
	k.SetPosition(ctx, who, position)
}

// AdjustPosition applies signed collateral and debit adjustments to who's
// position. Collateral moves between who and the loans account; positive debit
// mints stable currency against the debit cap, negative debit burns it. The
// resulting position must pass the risk checks. All-or-nothing.
func (k *Keeper) AdjustPosition(ctx sdk.Context, who string, collateralAdj, debitAdj math.Int) error {
	if collateralAdj.IsNil() || debitAdj.IsNil() {
		return types.ErrInvalidAmount
	}

	cctx, write := ctx.CacheContext()

	wasLive := k.HasPosition(cctx, who)
	position, total, err := k.applyAdjustment(cctx, who, collateralAdj, debitAdj)
	if err != nil {
		return err
	}

	if collateralAdj.IsPositive() {
		if err := k.assetsKeeper.Transfer(cctx, who, types.LoansAccount, k.collateralDenom, collateralAdj); err != nil {
			return err
		}
	} else if collateralAdj.IsNegative() {
		if err := k.assetsKeeper.Transfer(cctx, types.LoansAccount, who, k.collateralDenom, collateralAdj.Neg()); err != nil {
			return err
		}
	}

	if debitAdj.IsPositive() {
		if err := k.riskManager.CheckDebitCap(cctx, total.Debit); err != nil {
			return err
		}
		debitValue := k.riskManager.GetDebitValue(cctx, debitAdj)
		if err := k.treasuryKeeper.IssueDebit(cctx, who, debitValue, true); err != nil {
			return err
		}
	} else if debitAdj.IsNegative() {
		debitValue := k.riskManager.GetDebitValue(cctx, debitAdj.Neg())
		if err := k.treasuryKeeper.BurnDebit(cctx, who, debitValue); err != nil {
			return err
		}
	}

	checkRequired := collateralAdj.IsNegative() || debitAdj.IsPositive()
	if err := k.riskManager.CheckPositionValid(cctx, position.Collateral, position.Debit, checkRequired); err != nil {
		return err
	}

	k.persistPosition(cctx, who, wasLive, position)
	k.SetTotalPositions(cctx, total)
	write()

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"position_updated",
			sdk.NewAttribute("owner", who),
			sdk.NewAttribute("collateral_adjustment", collateralAdj.String()),
			sdk.NewAttribute("debit_adjustment", debitAdj.String()),
		),
	)
	return nil
}

// ConfiscateCollateralAndDebit seizes collateral and debit from who during
// liquidation or settlement: collateral moves from the loans account into
// treasury custody and the debit value lands in the system debit pool.
func (k *Keeper) ConfiscateCollateralAndDebit(ctx sdk.Context, who string, collateralAmount, debitAmount math.Int) error {
	if collateralAmount.IsNil() || collateralAmount.IsNegative() ||
		debitAmount.IsNil() || debitAmount.IsNegative() {
		return types.ErrInvalidAmount
	}

	cctx, write := ctx.CacheContext()

	wasLive := k.HasPosition(cctx, who)
	position, total, err := k.applyAdjustment(cctx, who, collateralAmount.Neg(), debitAmount.Neg())
	if err != nil {
		return err
	}

	if err := k.treasuryKeeper.DepositCollateral(cctx, types.LoansAccount, collateralAmount); err != nil {
		return err
	}
	debitValue := k.riskManager.GetDebitValue(cctx, debitAmount)
	if err := k.treasuryKeeper.OnSystemDebit(cctx, debitValue); err != nil {
		return err
	}

	k.persistPosition(cctx, who, wasLive, position)
	k.SetTotalPositions(cctx, total)
	write()

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"confiscate_collateral_and_debit",
			sdk.NewAttribute("owner", who),
			sdk.NewAttribute("collateral", collateralAmount.String()),
			sdk.NewAttribute("debit", debitAmount.String()),
		),
	)
	return nil
}

// TransferLoan merges from's position into to's. The combined position must
// pass the full risk checks including the required ratio; from ends empty.
func (k *Keeper) TransferLoan(ctx sdk.Context, from, to string) error {
	if from == to {
		return nil
	}

	cctx, write := ctx.CacheContext()

	fromPosition := k.GetPosition(cctx, from)
	toWasLive := k.HasPosition(cctx, to)
	toPosition := k.GetPosition(cctx, to)

	toPosition.Collateral = toPosition.Collateral.Add(fromPosition.Collateral)
	toPosition.Debit = toPosition.Debit.Add(fromPosition.Debit)

	if err := k.riskManager.CheckPositionValid(cctx, toPosition.Collateral, toPosition.Debit, true); err != nil {
		return err
	}

	k.persistPosition(cctx, from, k.HasPosition(cctx, from), types.NewPosition())
	k.persistPosition(cctx, to, toWasLive, toPosition)
	write()

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"transfer_loan",
			sdk.NewAttribute("from", from),
			sdk.NewAttribute("to", to),
		),
	)
	return nil
}
