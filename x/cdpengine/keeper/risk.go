package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/honzon/x/cdpengine/types"
)

// GetDebitValue converts debit units to stable-currency value via the debit
// exchange rate
func (k *Keeper) GetDebitValue(ctx sdk.Context, debit math.Int) math.Int {
	return k.GetDebitExchangeRate(ctx).MulInt(debit).TruncateInt()
}

func (k *Keeper) relativePrice(ctx sdk.Context) math.LegacyDec {
	if k.priceOracle != nil {
		if price, ok := k.priceOracle.GetRelativePrice(ctx); ok {
			return price
		}
	}
	return math.LegacyOneDec()
}

// CalcCollateralRatio returns price-weighted collateral value over debit
// value. Zero-debit positions report the maximum ratio.
func (k *Keeper) CalcCollateralRatio(ctx sdk.Context, collateral, debit math.Int) math.LegacyDec {
	debitValue := k.GetDebitValue(ctx, debit)
	if !debitValue.IsPositive() {
		return types.MaxRatio()
	}
	return k.relativePrice(ctx).MulInt(collateral).QuoInt(debitValue)
}

// CheckDebitCap fails when the aggregate debit value would exceed the
// configured hard cap
func (k *Keeper) CheckDebitCap(ctx sdk.Context, totalDebit math.Int) error {
	params := k.GetCollateralParams(ctx)
	if params == nil {
		return types.ErrInvalidCollateralType
	}
	if k.GetDebitValue(ctx, totalDebit).GT(params.MaximumTotalDebitValue) {
		return types.ErrExceedDebitValueHardCap
	}
	return nil
}

// CheckPositionValid verifies a position against the risk parameters. A
// zero-debit position is valid unconditionally. The required collateral ratio
// is only enforced when checkRequiredRatio is set (withdrawals and new debit).
func (k *Keeper) CheckPositionValid(ctx sdk.Context, collateral, debit math.Int, checkRequiredRatio bool) error {
	if debit.IsZero() {
		return nil
	}
	params := k.GetCollateralParams(ctx)
	if params == nil {
		return types.ErrInvalidCollateralType
	}

	ratio := k.CalcCollateralRatio(ctx, collateral, debit)

	if checkRequiredRatio && params.RequiredCollateralRatio != nil && ratio.LT(*params.RequiredCollateralRatio) {
		return types.ErrBelowRequiredCollateralRatio
	}

	liquidationRatio := types.DefaultLiquidationRatio()
	if params.LiquidationRatio != nil {
		liquidationRatio = *params.LiquidationRatio
	}
	if ratio.LT(liquidationRatio) {
		return types.ErrBelowLiquidationRatio
	}

	if k.GetDebitValue(ctx, debit).LT(types.MinimumDebitValue()) {
		return types.ErrRemainDebitValueTooSmall
	}
	return nil
}

// GetCDPStatus classifies who's position against the liquidation ratio
func (k *Keeper) GetCDPStatus(ctx sdk.Context, who string) types.CDPStatus {
	position := k.loansKeeper.GetPosition(ctx, who)
	if position.Debit.IsZero() {
		return types.StatusSafe
	}
	params := k.GetCollateralParams(ctx)
	if params == nil {
		return types.StatusChecksFailed
	}

	liquidationRatio := types.DefaultLiquidationRatio()
	if params.LiquidationRatio != nil {
		liquidationRatio = *params.LiquidationRatio
	}
	if k.CalcCollateralRatio(ctx, position.Collateral, position.Debit).LT(liquidationRatio) {
		return types.StatusUnsafe
	}
	return types.StatusSafe
}
