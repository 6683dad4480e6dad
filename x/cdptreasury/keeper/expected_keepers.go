package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// AssetsKeeper is the fungible assets interface the treasury needs
type AssetsKeeper interface {
	Mint(ctx sdk.Context, who, denom string, amount math.Int) error
	Burn(ctx sdk.Context, who, denom string, amount math.Int) error
	Transfer(ctx sdk.Context, from, to, denom string, amount math.Int) error
	Balance(ctx sdk.Context, who, denom string) math.Int
}

// AuctionManagerKeeper opens collateral auctions and reports locked collateral
type AuctionManagerKeeper interface {
	NewCollateralAuction(ctx sdk.Context, refundRecipient string, amount, target math.Int) (uint64, error)
	GetTotalCollateralInAuction(ctx sdk.Context) math.Int
}

// ShutdownKeeper exposes the emergency shutdown flag
type ShutdownKeeper interface {
	IsShutdown(ctx sdk.Context) bool
}
