package api

import (
	"time"
)

// PositionInfo represents a collateralized debit position in API responses
type PositionInfo struct {
	Owner           string `json:"owner"`
	Collateral      string `json:"collateral"`
	Debit           string `json:"debit"`
	DebitValue      string `json:"debit_value"`
	CollateralRatio string `json:"collateral_ratio"`
	Status          string `json:"status"`
	UpdatedAt       int64  `json:"updated_at"`
}

// AuctionStatus represents a running collateral auction in API responses
type AuctionStatus struct {
	ID              uint64 `json:"id"`
	RefundRecipient string `json:"refund_recipient"`
	InitialAmount   string `json:"initial_amount"`
	Amount          string `json:"amount"`
	Target          string `json:"target"`
	StartTime       int64  `json:"start_time"`
	EndTime         int64  `json:"end_time,omitempty"`
	BidPrice        string `json:"bid_price,omitempty"`
	Bidder          string `json:"bidder,omitempty"`
	AlwaysForward   bool   `json:"always_forward"`
	InReverseStage  bool   `json:"in_reverse_stage"`
}

// TreasuryStatus represents the treasury pools in API responses
type TreasuryStatus struct {
	SurplusPool         string `json:"surplus_pool"`
	DebitPool           string `json:"debit_pool"`
	TotalCollaterals    string `json:"total_collaterals"`
	CollateralInAuction string `json:"collateral_in_auction"`
	TargetInAuction     string `json:"target_in_auction"`
	Shutdown            bool   `json:"shutdown"`
	UpdatedAt           int64  `json:"updated_at"`
}

// StateSource provides read access to the collateral subsystem state. The
// standalone server backs it with an in-process keeper graph; a node-attached
// deployment backs it with the running chain's keepers.
type StateSource interface {
	TreasuryStatus() *TreasuryStatus
	Positions() []*PositionInfo
	Position(owner string) *PositionInfo
	Auctions() []*AuctionStatus
}

// Helper function to get current timestamp in milliseconds
func NowMillis() int64 {
	return time.Now().UnixMilli()
}
