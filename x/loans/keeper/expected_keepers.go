package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// AssetsKeeper is the fungible assets interface Loans needs
type AssetsKeeper interface {
	Transfer(ctx sdk.Context, from, to, denom string, amount math.Int) error
}

// TreasuryKeeper issues and retires the stable currency against positions
type TreasuryKeeper interface {
	IssueDebit(ctx sdk.Context, who string, amount math.Int, backed bool) error
	BurnDebit(ctx sdk.Context, who string, amount math.Int) error
	DepositCollateral(ctx sdk.Context, from string, amount math.Int) error
	OnSystemDebit(ctx sdk.Context, amount math.Int) error
}

// RiskManager is the CDP engine's policy surface consumed by Loans
type RiskManager interface {
	GetDebitValue(ctx sdk.Context, debit math.Int) math.Int
	CheckDebitCap(ctx sdk.Context, totalDebit math.Int) error
	CheckPositionValid(ctx sdk.Context, collateral, debit math.Int, checkRequiredRatio bool) error
}
