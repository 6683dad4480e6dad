package keeper

import (
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/honzon/x/cdptreasury/types"
)

// EndBlocker offsets accumulated surplus against the debit pool, leaving up to
// DebitOffsetBuffer of chronic debit un-offset. Both pools stay non-negative.
func (k *Keeper) EndBlocker(ctx sdk.Context) {
	startTime := time.Now()

	debitPool := k.GetDebitPool(ctx)
	offsetTarget := debitPool.Sub(k.GetDebitOffsetBuffer(ctx))
	if !offsetTarget.IsPositive() {
		return
	}
	offset := math.MinInt(k.GetSurplusPool(ctx), offsetTarget)
	if !offset.IsPositive() {
		return
	}

	if err := k.assetsKeeper.Burn(ctx, types.TreasuryAccount, k.stableDenom, offset); err != nil {
		k.logger.Error("surplus/debit offset failed", "offset", offset.String(), "error", err)
		return
	}
	k.SetDebitPool(ctx, debitPool.Sub(offset))

	k.logger.Debug("surplus/debit offset",
		"offset", offset.String(),
		"remaining_debit", debitPool.Sub(offset).String(),
		"duration", time.Since(startTime))
}
