package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/openalpha/honzon/x/assets/types"
)

// Mint credits freshly issued units of denom to an account
func (k *Keeper) Mint(ctx sdk.Context, who, denom string, amount math.Int) error {
	if amount.IsNil() || amount.IsNegative() {
		return types.ErrInvalidAmount
	}
	if amount.IsZero() {
		return nil
	}
	account := k.GetOrCreateAccount(ctx, who)
	account.AddBalance(denom, amount)
	k.SetAccount(ctx, account)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"assets_mint",
			sdk.NewAttribute("who", who),
			sdk.NewAttribute("denom", denom),
			sdk.NewAttribute("amount", amount.String()),
		),
	)
	return nil
}

// Burn destroys units of denom from an account's spendable balance
func (k *Keeper) Burn(ctx sdk.Context, who, denom string, amount math.Int) error {
	if amount.IsNil() || amount.IsNegative() {
		return types.ErrInvalidAmount
	}
	if amount.IsZero() {
		return nil
	}
	account := k.GetAccount(ctx, who)
	if account == nil {
		return types.ErrInsufficientBalance
	}
	if !account.SubBalance(denom, amount) {
		return types.ErrInsufficientBalance
	}
	k.SetAccount(ctx, account)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"assets_burn",
			sdk.NewAttribute("who", who),
			sdk.NewAttribute("denom", denom),
			sdk.NewAttribute("amount", amount.String()),
		),
	)
	return nil
}

// Transfer moves units of denom between accounts; the sender's spendable
// balance must cover the amount. The move is atomic: either both accounts are
// updated or neither is.
func (k *Keeper) Transfer(ctx sdk.Context, from, to, denom string, amount math.Int) error {
	if amount.IsNil() || amount.IsNegative() {
		return types.ErrInvalidAmount
	}
	if amount.IsZero() || from == to {
		return nil
	}
	sender := k.GetAccount(ctx, from)
	if sender == nil {
		return types.ErrInsufficientBalance
	}
	if !sender.SubBalance(denom, amount) {
		return types.ErrInsufficientBalance
	}
	recipient := k.GetOrCreateAccount(ctx, to)
	recipient.AddBalance(denom, amount)
	k.SetAccount(ctx, sender)
	k.SetAccount(ctx, recipient)
	return nil
}

// Hold earmarks amount of denom on an account under reason. The held amount
// stays on the account but is excluded from its spendable balance.
func (k *Keeper) Hold(ctx sdk.Context, reason, who, denom string, amount math.Int) error {
	if amount.IsNil() || amount.IsNegative() {
		return types.ErrInvalidAmount
	}
	if amount.IsZero() {
		return nil
	}
	account := k.GetAccount(ctx, who)
	if account == nil {
		return types.ErrInsufficientBalance
	}
	if !account.AddHold(reason, denom, amount) {
		return types.ErrInsufficientBalance
	}
	k.SetAccount(ctx, account)
	return nil
}

// Release removes an earmark placed by Hold. With bestEffort the release is
// capped at the currently held amount; otherwise the full amount must be held.
// Returns the amount actually released.
func (k *Keeper) Release(ctx sdk.Context, reason, who, denom string, amount math.Int, bestEffort bool) (math.Int, error) {
	if amount.IsNil() || amount.IsNegative() {
		return math.ZeroInt(), types.ErrInvalidAmount
	}
	account := k.GetAccount(ctx, who)
	if account == nil {
		if bestEffort {
			return math.ZeroInt(), nil
		}
		return math.ZeroInt(), types.ErrInsufficientHold
	}
	released, ok := account.SubHold(reason, denom, amount, bestEffort)
	if !ok {
		return math.ZeroInt(), types.ErrInsufficientHold
	}
	k.SetAccount(ctx, account)
	return released, nil
}

// Balance returns the total balance of denom on an account
func (k *Keeper) Balance(ctx sdk.Context, who, denom string) math.Int {
	account := k.GetAccount(ctx, who)
	if account == nil {
		return math.ZeroInt()
	}
	return account.BalanceOf(denom)
}

// OnHold returns the amount held under reason for denom on an account
func (k *Keeper) OnHold(ctx sdk.Context, reason, who, denom string) math.Int {
	account := k.GetAccount(ctx, who)
	if account == nil {
		return math.ZeroInt()
	}
	return account.HoldOf(reason, denom)
}

// Spendable returns the balance of denom not covered by holds
func (k *Keeper) Spendable(ctx sdk.Context, who, denom string) math.Int {
	account := k.GetAccount(ctx, who)
	if account == nil {
		return math.ZeroInt()
	}
	return account.SpendableOf(denom)
}
