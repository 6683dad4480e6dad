package keeper

import (
	"encoding/json"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/honzon/x/cdptreasury/types"
)

// Store key prefixes
var (
	DebitPoolKey                     = []byte{0x01}
	ExpectedCollateralAuctionSizeKey = []byte{0x02}
	DebitOffsetBufferKey             = []byte{0x03}
)

// Keeper manages the CDP treasury: the system's pooled collateral and surplus
// stable currency, the debit counter, and collateral auction creation.
// SurplusPool and TotalCollaterals are not stored; they are the treasury
// account's free balances in the respective denoms.
type Keeper struct {
	cdc      codec.BinaryCodec
	storeKey storetypes.StoreKey
	logger   log.Logger

	assetsKeeper         AssetsKeeper
	auctionManagerKeeper AuctionManagerKeeper
	shutdownKeeper       ShutdownKeeper

	authority       string
	stableDenom     string
	collateralDenom string
}

// NewKeeper creates a new cdptreasury keeper
func NewKeeper(
	cdc codec.BinaryCodec,
	storeKey storetypes.StoreKey,
	logger log.Logger,
	assetsKeeper AssetsKeeper,
	authority string,
	stableDenom string,
	collateralDenom string,
) *Keeper {
	return &Keeper{
		cdc:             cdc,
		storeKey:        storeKey,
		logger:          logger.With("module", "x/cdptreasury"),
		assetsKeeper:    assetsKeeper,
		authority:       authority,
		stableDenom:     stableDenom,
		collateralDenom: collateralDenom,
	}
}

// SetAuctionManagerKeeper wires the auction manager. Set after construction to
// break the keeper dependency cycle.
func (k *Keeper) SetAuctionManagerKeeper(auctionManagerKeeper AuctionManagerKeeper) {
	k.auctionManagerKeeper = auctionManagerKeeper
}

// SetShutdownKeeper wires the shutdown flag provider
func (k *Keeper) SetShutdownKeeper(shutdownKeeper ShutdownKeeper) {
	k.shutdownKeeper = shutdownKeeper
}

// Logger returns the module logger
func (k *Keeper) Logger() log.Logger {
	return k.logger
}

// GetAuthority returns the module's authority address
func (k *Keeper) GetAuthority() string {
	return k.authority
}

// GetTreasuryAccount returns the treasury custody account address
func (k *Keeper) GetTreasuryAccount() string {
	return types.TreasuryAccount
}

// GetStore returns the KVStore
func (k *Keeper) GetStore(ctx sdk.Context) storetypes.KVStore {
	return ctx.KVStore(k.storeKey)
}

func (k *Keeper) isShutdown(ctx sdk.Context) bool {
	return k.shutdownKeeper != nil && k.shutdownKeeper.IsShutdown(ctx)
}

// ============ Scalars ============

func (k *Keeper) getIntScalar(ctx sdk.Context, key []byte) math.Int {
	store := k.GetStore(ctx)
	bz := store.Get(key)
	if bz == nil {
		return math.ZeroInt()
	}
	var value math.Int
	if err := json.Unmarshal(bz, &value); err != nil {
		return math.ZeroInt()
	}
	return value
}

func (k *Keeper) setIntScalar(ctx sdk.Context, key []byte, value math.Int) {
	store := k.GetStore(ctx)
	bz, _ := json.Marshal(value)
	store.Set(key, bz)
}

// GetDebitPool returns the system debit counter
func (k *Keeper) GetDebitPool(ctx sdk.Context) math.Int {
	return k.getIntScalar(ctx, DebitPoolKey)
}

// SetDebitPool stores the system debit counter
func (k *Keeper) SetDebitPool(ctx sdk.Context, value math.Int) {
	k.setIntScalar(ctx, DebitPoolKey, value)
}

// GetExpectedCollateralAuctionSize returns the per-auction lot size tuning
func (k *Keeper) GetExpectedCollateralAuctionSize(ctx sdk.Context) math.Int {
	return k.getIntScalar(ctx, ExpectedCollateralAuctionSizeKey)
}

// SetExpectedCollateralAuctionSize stores the per-auction lot size tuning
func (k *Keeper) SetExpectedCollateralAuctionSize(ctx sdk.Context, value math.Int) {
	k.setIntScalar(ctx, ExpectedCollateralAuctionSizeKey, value)
	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"expected_collateral_auction_size_updated",
			sdk.NewAttribute("size", value.String()),
		),
	)
}

// GetDebitOffsetBuffer returns the chronic-debit guard of the offset sweep
func (k *Keeper) GetDebitOffsetBuffer(ctx sdk.Context) math.Int {
	return k.getIntScalar(ctx, DebitOffsetBufferKey)
}

// SetDebitOffsetBuffer stores the chronic-debit guard of the offset sweep
func (k *Keeper) SetDebitOffsetBuffer(ctx sdk.Context, value math.Int) {
	k.setIntScalar(ctx, DebitOffsetBufferKey, value)
	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"debit_offset_buffer_updated",
			sdk.NewAttribute("buffer", value.String()),
		),
	)
}

// ============ Derived pools ============

// GetSurplusPool returns the stable-currency free balance at the treasury
func (k *Keeper) GetSurplusPool(ctx sdk.Context) math.Int {
	return k.assetsKeeper.Balance(ctx, types.TreasuryAccount, k.stableDenom)
}

// GetTotalCollaterals returns the collateral free balance at the treasury
func (k *Keeper) GetTotalCollaterals(ctx sdk.Context) math.Int {
	return k.assetsKeeper.Balance(ctx, types.TreasuryAccount, k.collateralDenom)
}
