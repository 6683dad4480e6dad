package types

// Module account addresses. The treasury account custodies pooled collateral
// and the surplus pool; the reserve account receives extracted surplus.
const (
	TreasuryAccount = "honzon_cdp_treasury"
	ReserveAccount  = "honzon_treasury_reserve"
)

// MaxAuctionsCount bounds how many collateral auctions one call may create.
// When an even split would exceed it, lot size is scaled up instead.
const MaxAuctionsCount = 100
