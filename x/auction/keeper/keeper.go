package keeper

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/openalpha/honzon/x/auction/types"
)

// Store key prefixes
var (
	AuctionKeyPrefix  = []byte{0x01}
	EndIndexKeyPrefix = []byte{0x02}
	AuctionCounterKey = []byte{0x03}
)

// Keeper runs the generic timed-auction machinery. It owns auction records and
// the by-end-block index; all economics (bid acceptance, payment, settlement)
// are delegated to the registered handler.
type Keeper struct {
	cdc      codec.BinaryCodec
	storeKey storetypes.StoreKey
	logger   log.Logger

	handler types.Handler
}

// NewKeeper creates a new auction keeper
func NewKeeper(
	cdc codec.BinaryCodec,
	storeKey storetypes.StoreKey,
	logger log.Logger,
) *Keeper {
	return &Keeper{
		cdc:      cdc,
		storeKey: storeKey,
		logger:   logger.With("module", "x/auction"),
	}
}

// SetHandler wires the domain policy. Must be called during app construction,
// before any bid or sweep runs.
func (k *Keeper) SetHandler(handler types.Handler) {
	k.handler = handler
}

// Logger returns the module logger
func (k *Keeper) Logger() log.Logger {
	return k.logger
}

// GetStore returns the KVStore
func (k *Keeper) GetStore(ctx sdk.Context) storetypes.KVStore {
	return ctx.KVStore(k.storeKey)
}

// ============ ID allocation ============

// NextAuctionID allocates the next auction identifier. IDs are sequential and
// never reused; allocation fails once the counter would wrap.
func (k *Keeper) NextAuctionID(ctx sdk.Context) (uint64, error) {
	store := k.GetStore(ctx)
	var id uint64
	bz := store.Get(AuctionCounterKey)
	if bz != nil {
		id = binary.BigEndian.Uint64(bz)
	}
	if id+1 < id {
		return 0, types.ErrNoAvailableAuctionID
	}
	next := make([]byte, 8)
	binary.BigEndian.PutUint64(next, id+1)
	store.Set(AuctionCounterKey, next)
	return id, nil
}

// ============ Auction storage ============

func auctionKey(id uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, id)
	return append(AuctionKeyPrefix, bz...)
}

func endIndexKey(end int64, id uint64) []byte {
	bz := make([]byte, 16)
	binary.BigEndian.PutUint64(bz[:8], uint64(end))
	binary.BigEndian.PutUint64(bz[8:], id)
	return append(EndIndexKeyPrefix, bz...)
}

// SetAuction saves an auction record and maintains the end index
func (k *Keeper) SetAuction(ctx sdk.Context, id uint64, info *types.AuctionInfo) {
	store := k.GetStore(ctx)
	prev := k.GetAuction(ctx, id)
	if prev != nil && prev.End != nil {
		store.Delete(endIndexKey(*prev.End, id))
	}
	bz, _ := json.Marshal(info)
	store.Set(auctionKey(id), bz)
	if info.End != nil {
		store.Set(endIndexKey(*info.End, id), []byte{1})
	}
}

// GetAuction retrieves an auction record
func (k *Keeper) GetAuction(ctx sdk.Context, id uint64) *types.AuctionInfo {
	store := k.GetStore(ctx)
	bz := store.Get(auctionKey(id))
	if bz == nil {
		return nil
	}
	var info types.AuctionInfo
	if err := json.Unmarshal(bz, &info); err != nil {
		return nil
	}
	return &info
}

// RemoveAuction deletes an auction record and its end-index entry
func (k *Keeper) RemoveAuction(ctx sdk.Context, id uint64) {
	store := k.GetStore(ctx)
	prev := k.GetAuction(ctx, id)
	if prev == nil {
		return
	}
	if prev.End != nil {
		store.Delete(endIndexKey(*prev.End, id))
	}
	store.Delete(auctionKey(id))
}

// GetAllAuctions returns every live auction keyed by id
func (k *Keeper) GetAllAuctions(ctx sdk.Context) map[uint64]*types.AuctionInfo {
	store := k.GetStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, AuctionKeyPrefix)
	defer iterator.Close()

	auctions := make(map[uint64]*types.AuctionInfo)
	for ; iterator.Valid(); iterator.Next() {
		id := binary.BigEndian.Uint64(iterator.Key()[len(AuctionKeyPrefix):])
		var info types.AuctionInfo
		if err := json.Unmarshal(iterator.Value(), &info); err != nil {
			continue
		}
		auctions[id] = &info
	}
	return auctions
}

// ============ Lifecycle ============

// NewAuction opens an auction starting at the given block, with an optional
// end block, and returns its id.
func (k *Keeper) NewAuction(ctx sdk.Context, start int64, end *int64) (uint64, error) {
	id, err := k.NextAuctionID(ctx)
	if err != nil {
		return 0, err
	}
	k.SetAuction(ctx, id, types.NewAuctionInfo(start, end))

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"auction_created",
			sdk.NewAttribute("auction_id", fmt.Sprintf("%d", id)),
		),
	)
	return id, nil
}

// Bid processes a bid on an auction. The handler decides acceptance and the
// new deadline; handler state changes and the record update commit together
// or not at all.
func (k *Keeper) Bid(ctx sdk.Context, id uint64, bid types.Bid) error {
	if k.handler == nil {
		return types.ErrHandlerNotSet
	}
	info := k.GetAuction(ctx, id)
	if info == nil {
		return types.ErrAuctionNotExist
	}
	now := ctx.BlockHeight()
	if now < info.Start {
		return types.ErrAuctionNotStarted
	}
	if bid.Amount.IsNil() || !bid.Amount.IsPositive() {
		return types.ErrInvalidBidPrice
	}
	// A new bid must strictly outbid the standing one
	if info.Bid != nil && !bid.Amount.GT(info.Bid.Amount) {
		return types.ErrInvalidBidPrice
	}

	cctx, write := ctx.CacheContext()
	result := k.handler.OnNewBid(cctx, now, id, bid, info.Bid)
	if !result.AcceptBid {
		return types.ErrBidNotAccepted
	}
	write()

	info.Bid = &bid
	if result.UpdateEnd {
		info.End = result.NewEnd
	}
	k.SetAuction(ctx, id, info)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"auction_bid",
			sdk.NewAttribute("auction_id", fmt.Sprintf("%d", id)),
			sdk.NewAttribute("bidder", bid.Bidder),
			sdk.NewAttribute("amount", bid.Amount.String()),
		),
	)
	return nil
}
