package types

import (
	"cosmossdk.io/math"
)

// CollateralParams is the monetary policy over the single collateral type.
// Unset ratios fall back to the defaults below.
type CollateralParams struct {
	MaximumTotalDebitValue  math.Int        `json:"maximum_total_debit_value"`
	LiquidationRatio        *math.LegacyDec `json:"liquidation_ratio,omitempty"`
	RequiredCollateralRatio *math.LegacyDec `json:"required_collateral_ratio,omitempty"`
}

// CDPStatus classifies a position against the liquidation ratio
type CDPStatus int

const (
	// StatusSafe means the position is at or above the liquidation ratio, or
	// carries no debit
	StatusSafe CDPStatus = iota
	// StatusUnsafe means the position is below the liquidation ratio and may
	// be liquidated
	StatusUnsafe
	// StatusChecksFailed means the status could not be computed
	StatusChecksFailed
)

// String implements fmt.Stringer
func (s CDPStatus) String() string {
	switch s {
	case StatusSafe:
		return "safe"
	case StatusUnsafe:
		return "unsafe"
	default:
		return "checks_failed"
	}
}

// DefaultLiquidationRatio applies when CollateralParams leaves the ratio unset
func DefaultLiquidationRatio() math.LegacyDec {
	return math.LegacyMustNewDecFromStr("1.5")
}

// DefaultDebitExchangeRate converts debit units to stable-currency value
func DefaultDebitExchangeRate() math.LegacyDec {
	return math.LegacyOneDec()
}

// MinimumDebitValue is the smallest debit value a live position may carry,
// keeping dust positions out of the liquidation path
func MinimumDebitValue() math.Int {
	return math.NewInt(10)
}

// MaxRatio is the collateral ratio reported for zero-debit positions
func MaxRatio() math.LegacyDec {
	return math.LegacyMaxSortableDec
}
