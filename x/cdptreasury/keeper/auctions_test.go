package keeper_test

import (
	"testing"

	"cosmossdk.io/math"

	testkeeper "github.com/openalpha/honzon/testutil/keeper"
	"github.com/openalpha/honzon/x/cdptreasury/types"
)

// TestCreateCollateralAuctionsSingle tests the unsplit path
func TestCreateCollateralAuctionsSingle(t *testing.T) {
	k, ctx, _ := testkeeper.SetupKeepers(t)

	if err := k.Assets.Mint(ctx, types.TreasuryAccount, "oalpha", math.NewInt(100)); err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	created, err := k.CDPTreasury.CreateCollateralAuctions(ctx, math.NewInt(100), math.NewInt(500), "alice", false)
	if err != nil {
		t.Fatalf("auction creation failed: %v", err)
	}
	if created != 1 {
		t.Errorf("expected 1 auction, got %d", created)
	}
	if got := k.AuctionManager.GetTotalCollateralInAuction(ctx); !got.Equal(math.NewInt(100)) {
		t.Errorf("expected 100 collateral in auction, got %s", got.String())
	}
	if got := k.AuctionManager.GetTotalTargetInAuction(ctx); !got.Equal(math.NewInt(500)) {
		t.Errorf("expected 500 target in auction, got %s", got.String())
	}
}

// TestCreateCollateralAuctionsSplit tests lot splitting: lot sizes bounded by
// the configured size and lot targets summing to the total target.
func TestCreateCollateralAuctionsSplit(t *testing.T) {
	k, ctx, _ := testkeeper.SetupKeepers(t)

	if err := k.Assets.Mint(ctx, types.TreasuryAccount, "oalpha", math.NewInt(250)); err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	k.CDPTreasury.SetExpectedCollateralAuctionSize(ctx, math.NewInt(100))

	created, err := k.CDPTreasury.CreateCollateralAuctions(ctx, math.NewInt(250), math.NewInt(500), "alice", true)
	if err != nil {
		t.Fatalf("auction creation failed: %v", err)
	}
	if created != 3 {
		t.Fatalf("expected 3 auctions, got %d", created)
	}

	items := k.AuctionManager.GetAllCollateralAuctions(ctx)
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}

	amountSum := math.ZeroInt()
	targetSum := math.ZeroInt()
	for _, item := range items {
		if item.InitialAmount.GT(math.NewInt(100)) {
			t.Errorf("lot %s exceeds expected size 100", item.InitialAmount.String())
		}
		amountSum = amountSum.Add(item.InitialAmount)
		targetSum = targetSum.Add(item.Target)
	}
	if !amountSum.Equal(math.NewInt(250)) {
		t.Errorf("expected lot amounts to sum to 250, got %s", amountSum.String())
	}
	if !targetSum.Equal(math.NewInt(500)) {
		t.Errorf("expected lot targets to sum to 500, got %s", targetSum.String())
	}
}

// TestCreateCollateralAuctionsFreeCollateral tests that collateral already in
// auction is not available for new auctions.
func TestCreateCollateralAuctionsFreeCollateral(t *testing.T) {
	k, ctx, _ := testkeeper.SetupKeepers(t)

	if err := k.Assets.Mint(ctx, types.TreasuryAccount, "oalpha", math.NewInt(100)); err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	if _, err := k.CDPTreasury.CreateCollateralAuctions(ctx, math.NewInt(60), math.NewInt(60), "alice", false); err != nil {
		t.Fatalf("auction creation failed: %v", err)
	}

	// Only 40 of the 100 remains free
	_, err := k.CDPTreasury.CreateCollateralAuctions(ctx, math.NewInt(41), math.NewInt(41), "alice", false)
	if err != types.ErrCollateralNotEnough {
		t.Errorf("expected ErrCollateralNotEnough, got %v", err)
	}
	if _, err := k.CDPTreasury.CreateCollateralAuctions(ctx, math.NewInt(40), math.NewInt(40), "alice", false); err != nil {
		t.Errorf("expected auction over free collateral to succeed: %v", err)
	}
}

// TestCreateCollateralAuctionsAfterShutdown tests the shutdown gate
func TestCreateCollateralAuctionsAfterShutdown(t *testing.T) {
	k, ctx, _ := testkeeper.SetupKeepers(t)

	if err := k.Assets.Mint(ctx, types.TreasuryAccount, "oalpha", math.NewInt(100)); err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	if err := k.CDPEngine.EmergencyShutdown(ctx); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}

	_, err := k.CDPTreasury.CreateCollateralAuctions(ctx, math.NewInt(10), math.NewInt(10), "alice", false)
	if err != types.ErrAlreadyShutdown {
		t.Errorf("expected ErrAlreadyShutdown, got %v", err)
	}
}
