package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	loanstypes "github.com/openalpha/honzon/x/loans/types"
)

// LoansKeeper is the position store consumed by the engine
type LoansKeeper interface {
	GetPosition(ctx sdk.Context, who string) *loanstypes.Position
	AdjustPosition(ctx sdk.Context, who string, collateralAdj, debitAdj math.Int) error
	ConfiscateCollateralAndDebit(ctx sdk.Context, who string, collateralAmount, debitAmount math.Int) error
	TransferLoan(ctx sdk.Context, from, to string) error
}

// TreasuryKeeper turns confiscated collateral into auctions
type TreasuryKeeper interface {
	CreateCollateralAuctions(ctx sdk.Context, amount, target math.Int, refundRecipient string, split bool) (int, error)
}

// PriceOracle supplies the relative price of collateral vs. the stable
// currency. The engine falls back to parity when no oracle is wired or the
// feed has no value.
type PriceOracle interface {
	GetRelativePrice(ctx sdk.Context) (math.LegacyDec, bool)
}
