package types

import (
	"testing"

	"cosmossdk.io/math"
)

// TestAlwaysForward tests the always-forward classification
func TestAlwaysForward(t *testing.T) {
	item := NewCollateralAuctionItem("alice", math.NewInt(10), math.ZeroInt(), 1)
	if !item.AlwaysForward() {
		t.Error("zero target should be always-forward")
	}

	item = NewCollateralAuctionItem("alice", math.NewInt(10), math.NewInt(100), 1)
	if item.AlwaysForward() {
		t.Error("nonzero target should not be always-forward")
	}
}

// TestInReverseStage tests the reverse-stage threshold
func TestInReverseStage(t *testing.T) {
	item := NewCollateralAuctionItem("alice", math.NewInt(10), math.NewInt(100), 1)

	testCases := []struct {
		name    string
		bid     math.Int
		reverse bool
	}{
		{"below target", math.NewInt(99), false},
		{"at target", math.NewInt(100), true},
		{"above target", math.NewInt(200), true},
	}
	for _, tc := range testCases {
		if got := item.InReverseStage(tc.bid); got != tc.reverse {
			t.Errorf("%s: expected reverse=%v, got %v", tc.name, tc.reverse, got)
		}
	}

	// Always-forward auctions never enter the reverse stage
	forward := NewCollateralAuctionItem("alice", math.NewInt(10), math.ZeroInt(), 1)
	if forward.InReverseStage(math.NewInt(1000000)) {
		t.Error("always-forward auction must never be in reverse stage")
	}
}

// TestBidPrice tests the implied per-unit price
func TestBidPrice(t *testing.T) {
	// Whole-lot auction: price is bid over the initial lot
	item := NewCollateralAuctionItem("alice", math.NewInt(10), math.NewInt(100), 1)
	if got := item.BidPrice(math.NewInt(50)); !got.Equal(math.LegacyNewDec(5)) {
		t.Errorf("expected price 5, got %s", got.String())
	}

	// Always-forward auction: the bid is the per-unit price
	forward := NewCollateralAuctionItem("alice", math.NewInt(2), math.ZeroInt(), 1)
	if got := forward.BidPrice(math.NewInt(100)); !got.Equal(math.LegacyNewDec(100)) {
		t.Errorf("expected price 100, got %s", got.String())
	}
}

// TestPaymentAmount tests what a bid obliges the bidder to pay
func TestPaymentAmount(t *testing.T) {
	item := NewCollateralAuctionItem("alice", math.NewInt(10), math.NewInt(100), 1)

	// Forward stage: the raw bid is the payment
	if got := item.PaymentAmount(math.NewInt(50)); !got.Equal(math.NewInt(50)) {
		t.Errorf("forward payment: expected 50, got %s", got.String())
	}

	// Reverse stage: payment is pinned at the target
	if got := item.PaymentAmount(math.NewInt(200)); !got.Equal(math.NewInt(100)) {
		t.Errorf("reverse payment: expected 100, got %s", got.String())
	}
	if got := item.PaymentAmount(math.NewInt(100)); !got.Equal(math.NewInt(100)) {
		t.Errorf("at-target payment: expected 100, got %s", got.String())
	}

	// Always-forward: per-unit bid times the lot
	forward := NewCollateralAuctionItem("alice", math.NewInt(2), math.ZeroInt(), 1)
	if got := forward.PaymentAmount(math.NewInt(100)); !got.Equal(math.NewInt(200)) {
		t.Errorf("always-forward payment: expected 200, got %s", got.String())
	}
}

// TestGetAuctionTimeToClose tests the extension halving past the soft cap
func TestGetAuctionTimeToClose(t *testing.T) {
	config := DefaultAuctionConfig()

	testCases := []struct {
		name  string
		start int64
		now   int64
		want  int64
	}{
		{"fresh auction", 1, 1, 100},
		{"just under soft cap", 1, 2000, 100},
		{"at soft cap", 1, 2001, 50},
		{"well past soft cap", 1, 5000, 50},
	}
	for _, tc := range testCases {
		if got := config.GetAuctionTimeToClose(tc.start, tc.now); got != tc.want {
			t.Errorf("%s: expected %d, got %d", tc.name, tc.want, got)
		}
	}
}
