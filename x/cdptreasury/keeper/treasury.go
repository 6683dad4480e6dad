package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/honzon/x/cdptreasury/types"
)

// OnSystemDebit records amt of system-absorbed debit in the debit pool
func (k *Keeper) OnSystemDebit(ctx sdk.Context, amount math.Int) error {
	if amount.IsNil() || amount.IsNegative() {
		return types.ErrInvalidAmount
	}
	if amount.IsZero() {
		return nil
	}
	k.SetDebitPool(ctx, k.GetDebitPool(ctx).Add(amount))
	return nil
}

// OnSystemSurplus mints amt of stable currency into the surplus pool
func (k *Keeper) OnSystemSurplus(ctx sdk.Context, amount math.Int) error {
	if amount.IsNil() || amount.IsNegative() {
		return types.ErrInvalidAmount
	}
	return k.assetsKeeper.Mint(ctx, types.TreasuryAccount, k.stableDenom, amount)
}

// IssueDebit mints amt of stable currency to who. Unbacked issuance is
// recorded in the debit pool; backed issuance is covered by a caller-side
// liability (a position's debit). Disabled after shutdown.
func (k *Keeper) IssueDebit(ctx sdk.Context, who string, amount math.Int, backed bool) error {
	if amount.IsNil() || amount.IsNegative() {
		return types.ErrInvalidAmount
	}
	if k.isShutdown(ctx) {
		return types.ErrAlreadyShutdown
	}
	if err := k.assetsKeeper.Mint(ctx, who, k.stableDenom, amount); err != nil {
		return err
	}
	if !backed {
		k.SetDebitPool(ctx, k.GetDebitPool(ctx).Add(amount))
	}
	return nil
}

// BurnDebit burns amt of stable currency from who
func (k *Keeper) BurnDebit(ctx sdk.Context, who string, amount math.Int) error {
	if amount.IsNil() || amount.IsNegative() {
		return types.ErrInvalidAmount
	}
	return k.assetsKeeper.Burn(ctx, who, k.stableDenom, amount)
}

// DepositSurplus transfers stable currency from a user into the treasury
func (k *Keeper) DepositSurplus(ctx sdk.Context, from string, amount math.Int) error {
	return k.assetsKeeper.Transfer(ctx, from, types.TreasuryAccount, k.stableDenom, amount)
}

// WithdrawSurplus transfers stable currency from the treasury to a user
func (k *Keeper) WithdrawSurplus(ctx sdk.Context, to string, amount math.Int) error {
	return k.assetsKeeper.Transfer(ctx, types.TreasuryAccount, to, k.stableDenom, amount)
}

// DepositCollateral transfers collateral from a user into the treasury
func (k *Keeper) DepositCollateral(ctx sdk.Context, from string, amount math.Int) error {
	return k.assetsKeeper.Transfer(ctx, from, types.TreasuryAccount, k.collateralDenom, amount)
}

// WithdrawCollateral transfers collateral from the treasury to a user
func (k *Keeper) WithdrawCollateral(ctx sdk.Context, to string, amount math.Int) error {
	return k.assetsKeeper.Transfer(ctx, types.TreasuryAccount, to, k.collateralDenom, amount)
}

// PaySurplus books auction bid revenue into the surplus pool
func (k *Keeper) PaySurplus(ctx sdk.Context, amount math.Int) error {
	return k.OnSystemSurplus(ctx, amount)
}

// RefundSurplus unwinds previously booked bid revenue by burning it from the
// treasury account
func (k *Keeper) RefundSurplus(ctx sdk.Context, amount math.Int) error {
	if amount.IsNil() || amount.IsNegative() {
		return types.ErrInvalidAmount
	}
	return k.assetsKeeper.Burn(ctx, types.TreasuryAccount, k.stableDenom, amount)
}

// ExtractSurplusToTreasury moves surplus stable currency from the treasury
// custody account to the reserve account
func (k *Keeper) ExtractSurplusToTreasury(ctx sdk.Context, amount math.Int) error {
	if amount.IsNil() || amount.IsNegative() {
		return types.ErrInvalidAmount
	}
	return k.assetsKeeper.Transfer(ctx, types.TreasuryAccount, types.ReserveAccount, k.stableDenom, amount)
}
