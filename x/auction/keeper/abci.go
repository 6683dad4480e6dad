package keeper

import (
	"encoding/binary"
	"fmt"
	"time"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// EndBlocker settles every auction whose deadline has arrived. The end index
// is ordered by end block, so the scan stops at the first entry past the
// current height.
func (k *Keeper) EndBlocker(ctx sdk.Context) {
	if k.handler == nil {
		return
	}
	startTime := time.Now()
	now := ctx.BlockHeight()

	store := k.GetStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, EndIndexKeyPrefix)

	var expired []uint64
	for ; iterator.Valid(); iterator.Next() {
		key := iterator.Key()[len(EndIndexKeyPrefix):]
		end := int64(binary.BigEndian.Uint64(key[:8]))
		if end > now {
			break
		}
		expired = append(expired, binary.BigEndian.Uint64(key[8:]))
	}
	iterator.Close()

	for _, id := range expired {
		info := k.GetAuction(ctx, id)
		if info == nil {
			continue
		}
		k.RemoveAuction(ctx, id)
		k.handler.OnAuctionEnded(ctx, id, info.Bid)

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				"auction_ended",
				sdk.NewAttribute("auction_id", fmt.Sprintf("%d", id)),
			),
		)
	}

	if len(expired) > 0 {
		k.logger.Debug("auction sweep",
			"settled", len(expired),
			"height", now,
			"duration", time.Since(startTime))
	}
}
