package keeper

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/honzon/x/auctionmanager/types"
)

// Store key prefixes
var (
	CollateralAuctionKeyPrefix  = []byte{0x01}
	TotalCollateralInAuctionKey = []byte{0x02}
	TotalTargetInAuctionKey     = []byte{0x03}
	AuctionConfigKey            = []byte{0x04}
)

// Keeper implements the collateral-auction policy: it owns the per-auction
// items and the two in-auction aggregates, and supplies the bid/settlement
// callbacks consumed by the generic auction runtime.
type Keeper struct {
	cdc      codec.BinaryCodec
	storeKey storetypes.StoreKey
	logger   log.Logger

	assetsKeeper   AssetsKeeper
	treasuryKeeper TreasuryKeeper
	auctionKeeper  AuctionKeeper
	shutdownKeeper ShutdownKeeper

	stableDenom     string
	collateralDenom string
}

// NewKeeper creates a new auctionmanager keeper
func NewKeeper(
	cdc codec.BinaryCodec,
	storeKey storetypes.StoreKey,
	logger log.Logger,
	assetsKeeper AssetsKeeper,
	treasuryKeeper TreasuryKeeper,
	auctionKeeper AuctionKeeper,
	stableDenom string,
	collateralDenom string,
) *Keeper {
	return &Keeper{
		cdc:             cdc,
		storeKey:        storeKey,
		logger:          logger.With("module", "x/auctionmanager"),
		assetsKeeper:    assetsKeeper,
		treasuryKeeper:  treasuryKeeper,
		auctionKeeper:   auctionKeeper,
		stableDenom:     stableDenom,
		collateralDenom: collateralDenom,
	}
}

// SetShutdownKeeper wires the shutdown flag provider. Set after construction
// to break the keeper dependency cycle.
func (k *Keeper) SetShutdownKeeper(shutdownKeeper ShutdownKeeper) {
	k.shutdownKeeper = shutdownKeeper
}

// Logger returns the module logger
func (k *Keeper) Logger() log.Logger {
	return k.logger
}

// GetStore returns the KVStore
func (k *Keeper) GetStore(ctx sdk.Context) storetypes.KVStore {
	return ctx.KVStore(k.storeKey)
}

// ============ Collateral auction items ============

func collateralAuctionKey(id uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, id)
	return append(CollateralAuctionKeyPrefix, bz...)
}

// SetCollateralAuction saves a collateral auction item
func (k *Keeper) SetCollateralAuction(ctx sdk.Context, id uint64, item *types.CollateralAuctionItem) {
	store := k.GetStore(ctx)
	bz, _ := json.Marshal(item)
	store.Set(collateralAuctionKey(id), bz)
}

// GetCollateralAuction retrieves a collateral auction item
func (k *Keeper) GetCollateralAuction(ctx sdk.Context, id uint64) *types.CollateralAuctionItem {
	store := k.GetStore(ctx)
	bz := store.Get(collateralAuctionKey(id))
	if bz == nil {
		return nil
	}
	var item types.CollateralAuctionItem
	if err := json.Unmarshal(bz, &item); err != nil {
		return nil
	}
	return &item
}

// RemoveCollateralAuction deletes a collateral auction item
func (k *Keeper) RemoveCollateralAuction(ctx sdk.Context, id uint64) {
	store := k.GetStore(ctx)
	store.Delete(collateralAuctionKey(id))
}

// GetAllCollateralAuctions returns every live item keyed by auction id
func (k *Keeper) GetAllCollateralAuctions(ctx sdk.Context) map[uint64]*types.CollateralAuctionItem {
	store := k.GetStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, CollateralAuctionKeyPrefix)
	defer iterator.Close()

	items := make(map[uint64]*types.CollateralAuctionItem)
	for ; iterator.Valid(); iterator.Next() {
		id := binary.BigEndian.Uint64(iterator.Key()[len(CollateralAuctionKeyPrefix):])
		var item types.CollateralAuctionItem
		if err := json.Unmarshal(iterator.Value(), &item); err != nil {
			continue
		}
		items[id] = &item
	}
	return items
}

// ============ Aggregates ============

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

// GetTotalCollateralInAuction returns the sum of initial_amount over live items
func (k *Keeper) GetTotalCollateralInAuction(ctx sdk.Context) math.Int {
	return k.getIntScalar(ctx, TotalCollateralInAuctionKey)
}

// GetTotalTargetInAuction returns the sum of target over live items
func (k *Keeper) GetTotalTargetInAuction(ctx sdk.Context) math.Int {
	return k.getIntScalar(ctx, TotalTargetInAuctionKey)
}

func (k *Keeper) addToAggregates(ctx sdk.Context, collateral, target math.Int) {
	k.setIntScalar(ctx, TotalCollateralInAuctionKey, k.GetTotalCollateralInAuction(ctx).Add(collateral))
	k.setIntScalar(ctx, TotalTargetInAuctionKey, k.GetTotalTargetInAuction(ctx).Add(target))
}

func (k *Keeper) subFromAggregates(ctx sdk.Context, collateral, target math.Int) {
	newCollateral := k.GetTotalCollateralInAuction(ctx).Sub(collateral)
	if newCollateral.IsNegative() {
		newCollateral = math.ZeroInt()
	}
	newTarget := k.GetTotalTargetInAuction(ctx).Sub(target)
	if newTarget.IsNegative() {
		newTarget = math.ZeroInt()
	}
	k.setIntScalar(ctx, TotalCollateralInAuctionKey, newCollateral)
	k.setIntScalar(ctx, TotalTargetInAuctionKey, newTarget)
}

// ============ Config ============

// GetAuctionConfig returns the stored tuning values, falling back to defaults
func (k *Keeper) GetAuctionConfig(ctx sdk.Context) *types.AuctionConfig {
	store := k.GetStore(ctx)
	bz := store.Get(AuctionConfigKey)
	if bz == nil {
		return types.DefaultAuctionConfig()
	}
	var config types.AuctionConfig
	if err := json.Unmarshal(bz, &config); err != nil {
		return types.DefaultAuctionConfig()
	}
	return &config
}

// SetAuctionConfig stores the tuning values
func (k *Keeper) SetAuctionConfig(ctx sdk.Context, config *types.AuctionConfig) {
	store := k.GetStore(ctx)
	bz, _ := json.Marshal(config)
	store.Set(AuctionConfigKey, bz)
}

// ============ Auction creation ============

// NewCollateralAuction opens a collateral auction for amount of collateral
// aiming to raise target stable currency. Collateral stays at the treasury
// account; the aggregates record it as locked.
func (k *Keeper) NewCollateralAuction(ctx sdk.Context, refundRecipient string, amount, target math.Int) (uint64, error) {
	if amount.IsNil() || !amount.IsPositive() || target.IsNil() || target.IsNegative() {
		return 0, types.ErrInvalidAmount
	}

	config := k.GetAuctionConfig(ctx)
	start := ctx.BlockHeight()
	end := start + config.AuctionTimeToClose

	id, err := k.auctionKeeper.NewAuction(ctx, start, &end)
	if err != nil {
		return 0, err
	}

	k.SetCollateralAuction(ctx, id, types.NewCollateralAuctionItem(refundRecipient, amount, target, start))
	k.addToAggregates(ctx, amount, target)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"new_collateral_auction",
			sdk.NewAttribute("auction_id", fmt.Sprintf("%d", id)),
			sdk.NewAttribute("amount", amount.String()),
			sdk.NewAttribute("target", target.String()),
			sdk.NewAttribute("refund_recipient", refundRecipient),
		),
	)

	k.logger.Info("collateral auction created",
		"auction_id", id,
		"amount", amount.String(),
		"target", target.String())
	return id, nil
}
