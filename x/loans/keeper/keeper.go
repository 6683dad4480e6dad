package keeper

import (
	"encoding/binary"
	"encoding/json"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/honzon/x/loans/types"
)

// Store key prefixes
var (
	PositionKeyPrefix    = []byte{0x01}
	TotalPositionsKey    = []byte{0x02}
	ConsumerRefKeyPrefix = []byte{0x03}
)

// Keeper owns Position storage and the TotalPositions aggregate. It is the
// only writer of both.
type Keeper struct {
	cdc      codec.BinaryCodec
	storeKey storetypes.StoreKey
	logger   log.Logger

	assetsKeeper   AssetsKeeper
	treasuryKeeper TreasuryKeeper
	riskManager    RiskManager

	collateralDenom string
}

// NewKeeper creates a new loans keeper
func NewKeeper(
	cdc codec.BinaryCodec,
	storeKey storetypes.StoreKey,
	logger log.Logger,
	assetsKeeper AssetsKeeper,
	treasuryKeeper TreasuryKeeper,
	collateralDenom string,
) *Keeper {
	return &Keeper{
		cdc:             cdc,
		storeKey:        storeKey,
		logger:          logger.With("module", "x/loans"),
		assetsKeeper:    assetsKeeper,
		treasuryKeeper:  treasuryKeeper,
		collateralDenom: collateralDenom,
	}
}

// SetRiskManager wires the CDP engine's policy surface. Set after construction
// to break the keeper dependency cycle.
func (k *Keeper) SetRiskManager(riskManager RiskManager) {
	k.riskManager = riskManager
}

// Logger returns the module logger
func (k *Keeper) Logger() log.Logger {
	return k.logger
}

// GetStore returns the KVStore
func (k *Keeper) GetStore(ctx sdk.Context) storetypes.KVStore {
	return ctx.KVStore(k.storeKey)
}

// ============ Position storage ============

func positionKey(who string) []byte {
	return append(PositionKeyPrefix, []byte(who)...)
}

// GetPosition returns who's position, or an empty one if no row exists
func (k *Keeper) GetPosition(ctx sdk.Context, who string) *types.Position {
	store := k.GetStore(ctx)
	bz := store.Get(positionKey(who))
	if bz == nil {
		return types.NewPosition()
	}
	var position types.Position
	if err := json.Unmarshal(bz, &position); err != nil {
		return types.NewPosition()
	}
	return &position
}

// HasPosition reports whether a storage row exists for who
func (k *Keeper) HasPosition(ctx sdk.Context, who string) bool {
	return k.GetStore(ctx).Has(positionKey(who))
}

// SetPosition saves who's position, removing the row when it empties
func (k *Keeper) SetPosition(ctx sdk.Context, who string, position *types.Position) {
	store := k.GetStore(ctx)
	if position.IsEmpty() {
		store.Delete(positionKey(who))
		return
	}
	bz, _ := json.Marshal(position)
	store.Set(positionKey(who), bz)
}

// GetAllPositions returns every live position keyed by account
func (k *Keeper) GetAllPositions(ctx sdk.Context) map[string]*types.Position {
	store := k.GetStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, PositionKeyPrefix)
	defer iterator.Close()

	positions := make(map[string]*types.Position)
	for ; iterator.Valid(); iterator.Next() {
		who := string(iterator.Key()[len(PositionKeyPrefix):])
		var position types.Position
		if err := json.Unmarshal(iterator.Value(), &position); err != nil {
			continue
		}
		positions[who] = &position
	}
	return positions
}

// ============ Aggregate ============

// GetTotalPositions returns the component-wise sum of all live positions
func (k *Keeper) GetTotalPositions(ctx sdk.Context) *types.Position {
	store := k.GetStore(ctx)
	bz := store.Get(TotalPositionsKey)
	if bz == nil {
		return types.NewPosition()
	}
	var total types.Position
	if err := json.Unmarshal(bz, &total); err != nil {
		return types.NewPosition()
	}
	return &total
}

// SetTotalPositions stores the aggregate
func (k *Keeper) SetTotalPositions(ctx sdk.Context, total *types.Position) {
	store := k.GetStore(ctx)
	bz, _ := json.Marshal(total)
	store.Set(TotalPositionsKey, bz)
}

// ============ Consumer references ============

func consumerRefKey(who string) []byte {
	return append(ConsumerRefKeyPrefix, []byte(who)...)
}

// GetConsumerRefs returns who's consumer reference count
func (k *Keeper) GetConsumerRefs(ctx sdk.Context, who string) uint64 {
	store := k.GetStore(ctx)
	bz := store.Get(consumerRefKey(who))
	if bz == nil {
		return 0
	}
	return binary.BigEndian.Uint64(bz)
}

func (k *Keeper) setConsumerRefs(ctx sdk.Context, who string, refs uint64) {
	store := k.GetStore(ctx)
	if refs == 0 {
		store.Delete(consumerRefKey(who))
		return
	}
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, refs)
	store.Set(consumerRefKey(who), bz)
}

func (k *Keeper) incConsumerRefs(ctx sdk.Context, who string) {
	k.setConsumerRefs(ctx, who, k.GetConsumerRefs(ctx, who)+1)
}

func (k *Keeper) decConsumerRefs(ctx sdk.Context, who string) {
	refs := k.GetConsumerRefs(ctx, who)
	if refs > 0 {
		k.setConsumerRefs(ctx, who, refs-1)
	}
}
