package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	auctiontypes "github.com/openalpha/honzon/x/auction/types"
)

// AssetsKeeper is the fungible assets interface the collateral policy needs
type AssetsKeeper interface {
	Hold(ctx sdk.Context, reason, who, denom string, amount math.Int) error
	Release(ctx sdk.Context, reason, who, denom string, amount math.Int, bestEffort bool) (math.Int, error)
	Transfer(ctx sdk.Context, from, to, denom string, amount math.Int) error
	Burn(ctx sdk.Context, who, denom string, amount math.Int) error
}

// TreasuryKeeper is the surplus accounting bridge. PaySurplus books bid
// revenue into the surplus pool, RefundSurplus unwinds it when a bid is
// out-bid or cancelled.
type TreasuryKeeper interface {
	GetTreasuryAccount() string
	PaySurplus(ctx sdk.Context, amount math.Int) error
	RefundSurplus(ctx sdk.Context, amount math.Int) error
}

// AuctionKeeper is the generic auction runtime the policy drives
type AuctionKeeper interface {
	NewAuction(ctx sdk.Context, start int64, end *int64) (uint64, error)
	GetAuction(ctx sdk.Context, id uint64) *auctiontypes.AuctionInfo
	RemoveAuction(ctx sdk.Context, id uint64)
}

// ShutdownKeeper exposes the emergency shutdown flag
type ShutdownKeeper interface {
	IsShutdown(ctx sdk.Context) bool
}
