package types

import (
	"cosmossdk.io/math"
)

// AuctionConfig holds the collateral-auction tuning knobs
type AuctionConfig struct {
	// MinimumIncrementSize is the per-unit price step a forward-stage bid must
	// clear over the previous bid
	MinimumIncrementSize math.LegacyDec `json:"minimum_increment_size"`
	// AuctionTimeToClose is the number of blocks a bid keeps the auction open
	AuctionTimeToClose int64 `json:"auction_time_to_close"`
	// AuctionDurationSoftCap is the auction age beyond which each bid's
	// extension is halved
	AuctionDurationSoftCap int64 `json:"auction_duration_soft_cap"`
}

// DefaultAuctionConfig returns the default tuning values
func DefaultAuctionConfig() *AuctionConfig {
	return &AuctionConfig{
		MinimumIncrementSize:   math.LegacyMustNewDecFromStr("0.02"),
		AuctionTimeToClose:     100,
		AuctionDurationSoftCap: 2000,
	}
}

// GetAuctionTimeToClose returns how many blocks a bid at block now keeps an
// auction started at block start open. Past the soft cap the extension halves.
func (c *AuctionConfig) GetAuctionTimeToClose(start, now int64) int64 {
	if now < start+c.AuctionDurationSoftCap {
		return c.AuctionTimeToClose
	}
	return c.AuctionTimeToClose / 2
}
