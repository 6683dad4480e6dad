package keeper_test

import (
	"testing"

	"cosmossdk.io/math"

	testkeeper "github.com/openalpha/honzon/testutil/keeper"
	"github.com/openalpha/honzon/x/assets/types"
)

// TestMintAndBalance tests minting credits the account balance
func TestMintAndBalance(t *testing.T) {
	k, ctx, _ := testkeeper.SetupKeepers(t)

	if err := k.Assets.Mint(ctx, "alice", "ousd", math.NewInt(100)); err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	if got := k.Assets.Balance(ctx, "alice", "ousd"); !got.Equal(math.NewInt(100)) {
		t.Errorf("expected balance 100, got %s", got.String())
	}

	// Zero mint is a no-op
	if err := k.Assets.Mint(ctx, "alice", "ousd", math.ZeroInt()); err != nil {
		t.Errorf("zero mint should succeed: %v", err)
	}
	if got := k.Assets.Balance(ctx, "alice", "ousd"); !got.Equal(math.NewInt(100)) {
		t.Errorf("expected balance 100 after zero mint, got %s", got.String())
	}

	// Negative mint is rejected
	if err := k.Assets.Mint(ctx, "alice", "ousd", math.NewInt(-5)); err == nil {
		t.Error("expected error for negative mint")
	}
}

// TestBurn tests burning debits the spendable balance
func TestBurn(t *testing.T) {
	k, ctx, _ := testkeeper.SetupKeepers(t)

	if err := k.Assets.Mint(ctx, "alice", "ousd", math.NewInt(100)); err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	if err := k.Assets.Burn(ctx, "alice", "ousd", math.NewInt(40)); err != nil {
		t.Fatalf("burn failed: %v", err)
	}
	if got := k.Assets.Balance(ctx, "alice", "ousd"); !got.Equal(math.NewInt(60)) {
		t.Errorf("expected balance 60, got %s", got.String())
	}

	// Burning more than the balance fails and leaves state unchanged
	if err := k.Assets.Burn(ctx, "alice", "ousd", math.NewInt(61)); err != types.ErrInsufficientBalance {
		t.Errorf("expected ErrInsufficientBalance, got %v", err)
	}
	if got := k.Assets.Balance(ctx, "alice", "ousd"); !got.Equal(math.NewInt(60)) {
		t.Errorf("expected balance 60 after failed burn, got %s", got.String())
	}

	// Burning from an unknown account fails
	if err := k.Assets.Burn(ctx, "nobody", "ousd", math.NewInt(1)); err != types.ErrInsufficientBalance {
		t.Errorf("expected ErrInsufficientBalance for unknown account, got %v", err)
	}
}

// TestTransfer tests balance moves between accounts
func TestTransfer(t *testing.T) {
	k, ctx, _ := testkeeper.SetupKeepers(t)

	if err := k.Assets.Mint(ctx, "alice", "ousd", math.NewInt(100)); err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	if err := k.Assets.Transfer(ctx, "alice", "bob", "ousd", math.NewInt(30)); err != nil {
		t.Fatalf("transfer failed: %v", err)
	}
	if got := k.Assets.Balance(ctx, "alice", "ousd"); !got.Equal(math.NewInt(70)) {
		t.Errorf("expected alice balance 70, got %s", got.String())
	}
	if got := k.Assets.Balance(ctx, "bob", "ousd"); !got.Equal(math.NewInt(30)) {
		t.Errorf("expected bob balance 30, got %s", got.String())
	}

	// Self transfer is a no-op
	if err := k.Assets.Transfer(ctx, "alice", "alice", "ousd", math.NewInt(10)); err != nil {
		t.Errorf("self transfer should succeed: %v", err)
	}
	if got := k.Assets.Balance(ctx, "alice", "ousd"); !got.Equal(math.NewInt(70)) {
		t.Errorf("expected alice balance 70 after self transfer, got %s", got.String())
	}

	// Overdraw fails atomically
	if err := k.Assets.Transfer(ctx, "alice", "bob", "ousd", math.NewInt(71)); err != types.ErrInsufficientBalance {
		t.Errorf("expected ErrInsufficientBalance, got %v", err)
	}
	if got := k.Assets.Balance(ctx, "bob", "ousd"); !got.Equal(math.NewInt(30)) {
		t.Errorf("expected bob balance 30 after failed transfer, got %s", got.String())
	}
}

// TestHoldAndRelease tests earmarking and its effect on spendable balance
func TestHoldAndRelease(t *testing.T) {
	k, ctx, _ := testkeeper.SetupKeepers(t)

	if err := k.Assets.Mint(ctx, "alice", "ousd", math.NewInt(100)); err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	if err := k.Assets.Hold(ctx, "collateral_auction", "alice", "ousd", math.NewInt(60)); err != nil {
		t.Fatalf("hold failed: %v", err)
	}
	if got := k.Assets.OnHold(ctx, "collateral_auction", "alice", "ousd"); !got.Equal(math.NewInt(60)) {
		t.Errorf("expected hold 60, got %s", got.String())
	}
	if got := k.Assets.Spendable(ctx, "alice", "ousd"); !got.Equal(math.NewInt(40)) {
		t.Errorf("expected spendable 40, got %s", got.String())
	}
	// Total balance is unchanged by the hold
	if got := k.Assets.Balance(ctx, "alice", "ousd"); !got.Equal(math.NewInt(100)) {
		t.Errorf("expected balance 100, got %s", got.String())
	}

	// Held funds cannot be transferred away
	if err := k.Assets.Transfer(ctx, "alice", "bob", "ousd", math.NewInt(41)); err != types.ErrInsufficientBalance {
		t.Errorf("expected ErrInsufficientBalance over held funds, got %v", err)
	}

	// Holding beyond the spendable balance fails
	if err := k.Assets.Hold(ctx, "collateral_auction", "alice", "ousd", math.NewInt(41)); err != types.ErrInsufficientBalance {
		t.Errorf("expected ErrInsufficientBalance for oversized hold, got %v", err)
	}

	// Exact release restores the spendable balance
	released, err := k.Assets.Release(ctx, "collateral_auction", "alice", "ousd", math.NewInt(60), false)
	if err != nil {
		t.Fatalf("release failed: %v", err)
	}
	if !released.Equal(math.NewInt(60)) {
		t.Errorf("expected released 60, got %s", released.String())
	}
	if got := k.Assets.Spendable(ctx, "alice", "ousd"); !got.Equal(math.NewInt(100)) {
		t.Errorf("expected spendable 100 after release, got %s", got.String())
	}
}

// TestReleaseBestEffort tests best-effort release caps at the held amount
func TestReleaseBestEffort(t *testing.T) {
	k, ctx, _ := testkeeper.SetupKeepers(t)

	if err := k.Assets.Mint(ctx, "alice", "ousd", math.NewInt(50)); err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	if err := k.Assets.Hold(ctx, "collateral_auction", "alice", "ousd", math.NewInt(50)); err != nil {
		t.Fatalf("hold failed: %v", err)
	}

	// Strict release of more than held fails
	if _, err := k.Assets.Release(ctx, "collateral_auction", "alice", "ousd", math.NewInt(80), false); err != types.ErrInsufficientHold {
		t.Errorf("expected ErrInsufficientHold, got %v", err)
	}

	// Best-effort release returns what was held
	released, err := k.Assets.Release(ctx, "collateral_auction", "alice", "ousd", math.NewInt(80), true)
	if err != nil {
		t.Fatalf("best-effort release failed: %v", err)
	}
	if !released.Equal(math.NewInt(50)) {
		t.Errorf("expected released 50, got %s", released.String())
	}

	// Best-effort release on an unknown account releases nothing
	released, err = k.Assets.Release(ctx, "collateral_auction", "nobody", "ousd", math.NewInt(10), true)
	if err != nil {
		t.Fatalf("best-effort release on unknown account failed: %v", err)
	}
	if !released.IsZero() {
		t.Errorf("expected released 0, got %s", released.String())
	}
}
