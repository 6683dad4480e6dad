package keeper

import (
	"encoding/binary"
	"encoding/json"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/honzon/x/cdpengine/types"
)

// Store key prefixes
var (
	CollateralParamsKey     = []byte{0x01}
	DebitExchangeRateKey    = []byte{0x02}
	ShutdownFlagKey         = []byte{0x03}
	LastAccumulationSecsKey = []byte{0x04}
)

// Keeper encodes the monetary policy of the collateral subsystem: risk
// parameters, position validity, liquidation and post-shutdown settlement,
// and the process-wide shutdown flag.
type Keeper struct {
	cdc      codec.BinaryCodec
	storeKey storetypes.StoreKey
	logger   log.Logger

	loansKeeper    LoansKeeper
	treasuryKeeper TreasuryKeeper
	priceOracle    PriceOracle

	authority string
}

// NewKeeper creates a new cdpengine keeper
func NewKeeper(
	cdc codec.BinaryCodec,
	storeKey storetypes.StoreKey,
	logger log.Logger,
	loansKeeper LoansKeeper,
	treasuryKeeper TreasuryKeeper,
	authority string,
) *Keeper {
	return &Keeper{
		cdc:            cdc,
		storeKey:       storeKey,
		logger:         logger.With("module", "x/cdpengine"),
		loansKeeper:    loansKeeper,
		treasuryKeeper: treasuryKeeper,
		authority:      authority,
	}
}

// SetPriceOracle wires an optional collateral price feed
func (k *Keeper) SetPriceOracle(priceOracle PriceOracle) {
	k.priceOracle = priceOracle
}

// Logger returns the module logger
func (k *Keeper) Logger() log.Logger {
	return k.logger
}

// GetAuthority returns the module's authority address
func (k *Keeper) GetAuthority() string {
	return k.authority
}

// GetStore returns the KVStore
func (k *Keeper) GetStore(ctx sdk.Context) storetypes.KVStore {
	return ctx.KVStore(k.storeKey)
}

// ============ Collateral params ============

// GetCollateralParams returns the stored params, or nil when never set
func (k *Keeper) GetCollateralParams(ctx sdk.Context) *types.CollateralParams {
	store := k.GetStore(ctx)
	bz := store.Get(CollateralParamsKey)
	if bz == nil {
		return nil
	}
	var params types.CollateralParams
	if err := json.Unmarshal(bz, &params); err != nil {
		return nil
	}
	return &params
}

// SetCollateralParams stores the params and emits one event per changed field
func (k *Keeper) SetCollateralParams(ctx sdk.Context, params *types.CollateralParams) {
	previous := k.GetCollateralParams(ctx)

	store := k.GetStore(ctx)
	bz, _ := json.Marshal(params)
	store.Set(CollateralParamsKey, bz)

	if previous == nil || !previous.MaximumTotalDebitValue.Equal(params.MaximumTotalDebitValue) {
		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				"maximum_total_debit_value_updated",
				sdk.NewAttribute("value", params.MaximumTotalDebitValue.String()),
			),
		)
	}
	if !equalDecPtr(previousLiquidationRatio(previous), params.LiquidationRatio) {
		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				"liquidation_ratio_updated",
				sdk.NewAttribute("value", decPtrString(params.LiquidationRatio)),
			),
		)
	}
	if !equalDecPtr(previousRequiredRatio(previous), params.RequiredCollateralRatio) {
		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				"required_collateral_ratio_updated",
				sdk.NewAttribute("value", decPtrString(params.RequiredCollateralRatio)),
			),
		)
	}
}

func previousLiquidationRatio(params *types.CollateralParams) *math.LegacyDec {
	if params == nil {
		return nil
	}
	return params.LiquidationRatio
}

func previousRequiredRatio(params *types.CollateralParams) *math.LegacyDec {
	if params == nil {
		return nil
	}
	return params.RequiredCollateralRatio
}

func equalDecPtr(a, b *math.LegacyDec) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

func decPtrString(d *math.LegacyDec) string {
	if d == nil {
		return "unset"
	}
	return d.String()
}

// ============ Debit exchange rate ============

// GetDebitExchangeRate returns the debit-unit to stable-value conversion rate
func (k *Keeper) GetDebitExchangeRate(ctx sdk.Context) math.LegacyDec {
	store := k.GetStore(ctx)
	bz := store.Get(DebitExchangeRateKey)
	if bz == nil {
		return types.DefaultDebitExchangeRate()
	}
	var rate math.LegacyDec
	if err := json.Unmarshal(bz, &rate); err != nil {
		return types.DefaultDebitExchangeRate()
	}
	return rate
}

// SetDebitExchangeRate stores the conversion rate
func (k *Keeper) SetDebitExchangeRate(ctx sdk.Context, rate math.LegacyDec) {
	store := k.GetStore(ctx)
	bz, _ := json.Marshal(rate)
	store.Set(DebitExchangeRateKey, bz)
}

// ============ Shutdown flag ============

// IsShutdown reports whether emergency shutdown has happened
func (k *Keeper) IsShutdown(ctx sdk.Context) bool {
	return k.GetStore(ctx).Has(ShutdownFlagKey)
}

func (k *Keeper) setShutdown(ctx sdk.Context) {
	k.GetStore(ctx).Set(ShutdownFlagKey, []byte{1})
}

// ============ Accrual timestamp ============

// GetLastAccumulationSecs returns the unix time sampled at the last block
// initialization. Reserved for interest accrual.
func (k *Keeper) GetLastAccumulationSecs(ctx sdk.Context) uint64 {
	store := k.GetStore(ctx)
	bz := store.Get(LastAccumulationSecsKey)
	if bz == nil {
		return 0
	}
	return binary.BigEndian.Uint64(bz)
}

// SetLastAccumulationSecs stores the accrual timestamp
func (k *Keeper) SetLastAccumulationSecs(ctx sdk.Context, secs uint64) {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, secs)
	k.GetStore(ctx).Set(LastAccumulationSecsKey, bz)
}
