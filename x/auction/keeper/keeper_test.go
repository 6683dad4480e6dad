package keeper_test

import (
	"testing"

	"cosmossdk.io/math"

	testkeeper "github.com/openalpha/honzon/testutil/keeper"
	auctiontypes "github.com/openalpha/honzon/x/auction/types"
)

// TestNextAuctionID tests sequential id allocation
func TestNextAuctionID(t *testing.T) {
	k, ctx, _ := testkeeper.SetupKeepers(t)

	for want := uint64(0); want < 3; want++ {
		id, err := k.Auction.NextAuctionID(ctx)
		if err != nil {
			t.Fatalf("id allocation failed: %v", err)
		}
		if id != want {
			t.Errorf("expected id %d, got %d", want, id)
		}
	}
}

// TestBidValidation tests the generic bid gate: existence, start block,
// positivity and strict monotonicity.
func TestBidValidation(t *testing.T) {
	k, ctx, _ := testkeeper.SetupKeepers(t)

	// Unknown auction
	err := k.Auction.Bid(ctx, 99, auctiontypes.Bid{Bidder: "bob", Amount: math.NewInt(10)})
	if err != auctiontypes.ErrAuctionNotExist {
		t.Errorf("expected ErrAuctionNotExist, got %v", err)
	}

	// Auction that has not started yet
	futureStart := ctx.BlockHeight() + 10
	id, err := k.Auction.NewAuction(ctx, futureStart, nil)
	if err != nil {
		t.Fatalf("auction creation failed: %v", err)
	}
	err = k.Auction.Bid(ctx, id, auctiontypes.Bid{Bidder: "bob", Amount: math.NewInt(10)})
	if err != auctiontypes.ErrAuctionNotStarted {
		t.Errorf("expected ErrAuctionNotStarted, got %v", err)
	}

	// Collateral auction the handler will accept bids on
	if err := k.Assets.Mint(ctx, "honzon_cdp_treasury", "oalpha", math.NewInt(10)); err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	if err := k.Assets.Mint(ctx, "bob", "ousd", math.NewInt(500)); err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	liveID, err := k.AuctionManager.NewCollateralAuction(ctx, "alice", math.NewInt(10), math.NewInt(100))
	if err != nil {
		t.Fatalf("collateral auction creation failed: %v", err)
	}

	// Non-positive bids are rejected before the handler runs
	err = k.Auction.Bid(ctx, liveID, auctiontypes.Bid{Bidder: "bob", Amount: math.ZeroInt()})
	if err != auctiontypes.ErrInvalidBidPrice {
		t.Errorf("expected ErrInvalidBidPrice for zero bid, got %v", err)
	}

	if err := k.Auction.Bid(ctx, liveID, auctiontypes.Bid{Bidder: "bob", Amount: math.NewInt(60)}); err != nil {
		t.Fatalf("bid failed: %v", err)
	}

	// An equal bid does not outbid the standing one
	err = k.Auction.Bid(ctx, liveID, auctiontypes.Bid{Bidder: "bob", Amount: math.NewInt(60)})
	if err != auctiontypes.ErrInvalidBidPrice {
		t.Errorf("expected ErrInvalidBidPrice for equal bid, got %v", err)
	}
}

// TestBidRejectionLeavesNoTrace tests that a handler rejection discards every
// state change made while evaluating the bid.
func TestBidRejectionLeavesNoTrace(t *testing.T) {
	k, ctx, _ := testkeeper.SetupKeepers(t)

	if err := k.Assets.Mint(ctx, "honzon_cdp_treasury", "oalpha", math.NewInt(10)); err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	id, err := k.AuctionManager.NewCollateralAuction(ctx, "alice", math.NewInt(10), math.NewInt(100))
	if err != nil {
		t.Fatalf("collateral auction creation failed: %v", err)
	}

	// First-bid floor is half the target price per unit: price 4 < 5 rejected.
	// The bidder is funded, so only the floor can reject.
	if err := k.Assets.Mint(ctx, "bob", "ousd", math.NewInt(500)); err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	err = k.Auction.Bid(ctx, id, auctiontypes.Bid{Bidder: "bob", Amount: math.NewInt(40)})
	if err != auctiontypes.ErrBidNotAccepted {
		t.Fatalf("expected ErrBidNotAccepted, got %v", err)
	}

	if hold := k.Assets.OnHold(ctx, "collateral_auction", "bob", "ousd"); !hold.IsZero() {
		t.Errorf("expected no hold after rejected bid, got %s", hold.String())
	}
	if surplus := k.CDPTreasury.GetSurplusPool(ctx); !surplus.IsZero() {
		t.Errorf("expected empty surplus pool after rejected bid, got %s", surplus.String())
	}
	info := k.Auction.GetAuction(ctx, id)
	if info == nil || info.Bid != nil {
		t.Error("expected auction to record no bid")
	}
}

// TestEndBlockerSweep tests that only auctions whose deadline has arrived are
// settled, and that the end index entry goes with them.
func TestEndBlockerSweep(t *testing.T) {
	k, ctx, _ := testkeeper.SetupKeepers(t)

	if err := k.Assets.Mint(ctx, "honzon_cdp_treasury", "oalpha", math.NewInt(30)); err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	// Two auctions with the default 100-block deadline, opened at height 1
	firstID, err := k.AuctionManager.NewCollateralAuction(ctx, "alice", math.NewInt(10), math.NewInt(100))
	if err != nil {
		t.Fatalf("collateral auction creation failed: %v", err)
	}

	later := ctx.WithBlockHeight(50)
	secondID, err := k.AuctionManager.NewCollateralAuction(later, "alice", math.NewInt(20), math.NewInt(200))
	if err != nil {
		t.Fatalf("collateral auction creation failed: %v", err)
	}

	// At height 101 only the first deadline has arrived
	k.Auction.EndBlocker(ctx.WithBlockHeight(101))
	if k.Auction.GetAuction(ctx, firstID) != nil {
		t.Error("expected first auction to be settled")
	}
	if k.Auction.GetAuction(ctx, secondID) == nil {
		t.Error("expected second auction to still be live")
	}

	// No bids: collateral went back to the refund recipient
	if got := k.Assets.Balance(ctx, "alice", "oalpha"); !got.Equal(math.NewInt(10)) {
		t.Errorf("expected 10 collateral refunded, got %s", got.String())
	}

	k.Auction.EndBlocker(ctx.WithBlockHeight(150))
	if k.Auction.GetAuction(ctx, secondID) != nil {
		t.Error("expected second auction to be settled")
	}
	if got := k.Assets.Balance(ctx, "alice", "oalpha"); !got.Equal(math.NewInt(30)) {
		t.Errorf("expected 30 collateral refunded, got %s", got.String())
	}
}
