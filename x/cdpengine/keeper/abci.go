package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// BeginBlocker samples the block's unix time for interest accrual. Accrual
// itself is applied elsewhere; the stored value only has to be monotone.
func (k *Keeper) BeginBlocker(ctx sdk.Context) {
	k.SetLastAccumulationSecs(ctx, uint64(ctx.BlockTime().Unix()))
}
