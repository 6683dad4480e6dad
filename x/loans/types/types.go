package types

import (
	"cosmossdk.io/math"
)

// LoansAccount is the module account holding collateral deposited into
// positions
const LoansAccount = "honzon_loans"

// Position is a per-account collateralized debit position. A row exists only
// while at least one field is non-zero; Loans is the sole writer.
type Position struct {
	Collateral math.Int `json:"collateral"`
	Debit      math.Int `json:"debit"`
}

// NewPosition returns an empty position
func NewPosition() *Position {
	return &Position{
		Collateral: math.ZeroInt(),
		Debit:      math.ZeroInt(),
	}
}

// IsEmpty reports whether both fields are zero
func (p *Position) IsEmpty() bool {
	return p.Collateral.IsZero() && p.Debit.IsZero()
}
