package types

import (
	"strings"

	"cosmossdk.io/math"
)

// Default denominations for the two assets the collateral subsystem trades in.
const (
	DefaultStableDenom     = "ousd"
	DefaultCollateralDenom = "oalpha"
)

// Account is a per-address multi-asset ledger entry. Balances holds the free
// amounts per denom; Holds earmarks balance under a "reason/denom" key. Held
// amounts stay on the account but cannot be spent.
type Account struct {
	Address  string              `json:"address"`
	Balances map[string]math.Int `json:"balances"`
	Holds    map[string]math.Int `json:"holds,omitempty"`
}

// NewAccount creates an empty account for an address
func NewAccount(address string) *Account {
	return &Account{
		Address:  address,
		Balances: make(map[string]math.Int),
		Holds:    make(map[string]math.Int),
	}
}

func holdKey(reason, denom string) string {
	return reason + "/" + denom
}

// BalanceOf returns the total balance of a denom, held amounts included
func (a *Account) BalanceOf(denom string) math.Int {
	if a.Balances == nil {
		return math.ZeroInt()
	}
	amt, ok := a.Balances[denom]
	if !ok {
		return math.ZeroInt()
	}
	return amt
}

// HoldOf returns the amount held under a specific reason for a denom
func (a *Account) HoldOf(reason, denom string) math.Int {
	if a.Holds == nil {
		return math.ZeroInt()
	}
	amt, ok := a.Holds[holdKey(reason, denom)]
	if !ok {
		return math.ZeroInt()
	}
	return amt
}

// TotalHoldOf returns the amount held across all reasons for a denom
func (a *Account) TotalHoldOf(denom string) math.Int {
	total := math.ZeroInt()
	for key, amt := range a.Holds {
		if strings.HasSuffix(key, "/"+denom) {
			total = total.Add(amt)
		}
	}
	return total
}

// SpendableOf returns the balance of a denom not covered by holds
func (a *Account) SpendableOf(denom string) math.Int {
	spendable := a.BalanceOf(denom).Sub(a.TotalHoldOf(denom))
	if spendable.IsNegative() {
		return math.ZeroInt()
	}
	return spendable
}

func (a *Account) setBalance(denom string, amt math.Int) {
	if a.Balances == nil {
		a.Balances = make(map[string]math.Int)
	}
	if amt.IsZero() {
		delete(a.Balances, denom)
		return
	}
	a.Balances[denom] = amt
}

func (a *Account) setHold(reason, denom string, amt math.Int) {
	if a.Holds == nil {
		a.Holds = make(map[string]math.Int)
	}
	if amt.IsZero() {
		delete(a.Holds, holdKey(reason, denom))
		return
	}
	a.Holds[holdKey(reason, denom)] = amt
}

// AddBalance credits amt of denom to the account
func (a *Account) AddBalance(denom string, amt math.Int) {
	a.setBalance(denom, a.BalanceOf(denom).Add(amt))
}

// SubBalance debits amt of denom; returns false when the spendable balance is
// insufficient
func (a *Account) SubBalance(denom string, amt math.Int) bool {
	if a.SpendableOf(denom).LT(amt) {
		return false
	}
	a.setBalance(denom, a.BalanceOf(denom).Sub(amt))
	return true
}

// AddHold earmarks amt of denom under reason; returns false when the spendable
// balance is insufficient
func (a *Account) AddHold(reason, denom string, amt math.Int) bool {
	if a.SpendableOf(denom).LT(amt) {
		return false
	}
	a.setHold(reason, denom, a.HoldOf(reason, denom).Add(amt))
	return true
}

// SubHold releases amt of the hold under reason. With bestEffort the release
// is capped at the held amount; otherwise an exact release is required. The
// released amount is returned.
func (a *Account) SubHold(reason, denom string, amt math.Int, bestEffort bool) (math.Int, bool) {
	held := a.HoldOf(reason, denom)
	if held.LT(amt) {
		if !bestEffort {
			return math.ZeroInt(), false
		}
		amt = held
	}
	a.setHold(reason, denom, held.Sub(amt))
	return amt, true
}

// IsEmpty reports whether the account carries no balances and no holds
func (a *Account) IsEmpty() bool {
	return len(a.Balances) == 0 && len(a.Holds) == 0
}
