package keeper_test

import (
	"testing"

	"cosmossdk.io/math"

	testkeeper "github.com/openalpha/honzon/testutil/keeper"
	"github.com/openalpha/honzon/x/cdptreasury/types"
)

// TestDebitAndSurplusPools tests the pool bookkeeping primitives
func TestDebitAndSurplusPools(t *testing.T) {
	k, ctx, _ := testkeeper.SetupKeepers(t)

	if err := k.CDPTreasury.OnSystemDebit(ctx, math.NewInt(100)); err != nil {
		t.Fatalf("OnSystemDebit failed: %v", err)
	}
	if got := k.CDPTreasury.GetDebitPool(ctx); !got.Equal(math.NewInt(100)) {
		t.Errorf("expected debit pool 100, got %s", got.String())
	}

	if err := k.CDPTreasury.OnSystemSurplus(ctx, math.NewInt(30)); err != nil {
		t.Fatalf("OnSystemSurplus failed: %v", err)
	}
	if got := k.CDPTreasury.GetSurplusPool(ctx); !got.Equal(math.NewInt(30)) {
		t.Errorf("expected surplus pool 30, got %s", got.String())
	}

	// Surplus is real stable currency at the treasury account
	if got := k.Assets.Balance(ctx, types.TreasuryAccount, "ousd"); !got.Equal(math.NewInt(30)) {
		t.Errorf("expected treasury stable balance 30, got %s", got.String())
	}
}

// TestOffsetSweep tests the end-of-block surplus/debit offset
func TestOffsetSweep(t *testing.T) {
	k, ctx, _ := testkeeper.SetupKeepers(t)

	if err := k.CDPTreasury.OnSystemDebit(ctx, math.NewInt(100)); err != nil {
		t.Fatalf("OnSystemDebit failed: %v", err)
	}
	if err := k.CDPTreasury.OnSystemSurplus(ctx, math.NewInt(30)); err != nil {
		t.Fatalf("OnSystemSurplus failed: %v", err)
	}

	k.CDPTreasury.EndBlocker(ctx)

	// Offset is bounded by the surplus: 30 burned, 70 debit remains
	if got := k.CDPTreasury.GetDebitPool(ctx); !got.Equal(math.NewInt(70)) {
		t.Errorf("expected debit pool 70, got %s", got.String())
	}
	if got := k.CDPTreasury.GetSurplusPool(ctx); !got.IsZero() {
		t.Errorf("expected surplus pool 0, got %s", got.String())
	}

	// With no surplus the sweep is a no-op
	k.CDPTreasury.EndBlocker(ctx)
	if got := k.CDPTreasury.GetDebitPool(ctx); !got.Equal(math.NewInt(70)) {
		t.Errorf("expected debit pool unchanged at 70, got %s", got.String())
	}
}

// TestOffsetSweepRespectsBuffer tests that chronic debit up to the buffer is
// left un-offset.
func TestOffsetSweepRespectsBuffer(t *testing.T) {
	k, ctx, _ := testkeeper.SetupKeepers(t)

	k.CDPTreasury.SetDebitOffsetBuffer(ctx, math.NewInt(50))
	if err := k.CDPTreasury.OnSystemDebit(ctx, math.NewInt(100)); err != nil {
		t.Fatalf("OnSystemDebit failed: %v", err)
	}
	if err := k.CDPTreasury.OnSystemSurplus(ctx, math.NewInt(80)); err != nil {
		t.Fatalf("OnSystemSurplus failed: %v", err)
	}

	k.CDPTreasury.EndBlocker(ctx)

	// Only debit above the buffer is offset: min(80, 100-50) = 50
	if got := k.CDPTreasury.GetDebitPool(ctx); !got.Equal(math.NewInt(50)) {
		t.Errorf("expected debit pool 50, got %s", got.String())
	}
	if got := k.CDPTreasury.GetSurplusPool(ctx); !got.Equal(math.NewInt(30)) {
		t.Errorf("expected surplus pool 30, got %s", got.String())
	}
}

// TestIssueDebit tests backed and unbacked issuance and the shutdown gate
func TestIssueDebit(t *testing.T) {
	k, ctx, _ := testkeeper.SetupKeepers(t)

	// Backed issuance leaves the debit pool alone
	if err := k.CDPTreasury.IssueDebit(ctx, "alice", math.NewInt(40), true); err != nil {
		t.Fatalf("backed issuance failed: %v", err)
	}
	if got := k.CDPTreasury.GetDebitPool(ctx); !got.IsZero() {
		t.Errorf("expected debit pool 0 after backed issuance, got %s", got.String())
	}

	// Unbacked issuance is recorded as system debit
	if err := k.CDPTreasury.IssueDebit(ctx, "alice", math.NewInt(60), false); err != nil {
		t.Fatalf("unbacked issuance failed: %v", err)
	}
	if got := k.CDPTreasury.GetDebitPool(ctx); !got.Equal(math.NewInt(60)) {
		t.Errorf("expected debit pool 60, got %s", got.String())
	}
	if got := k.Assets.Balance(ctx, "alice", "ousd"); !got.Equal(math.NewInt(100)) {
		t.Errorf("expected alice's balance 100, got %s", got.String())
	}

	// Issuance halts after shutdown
	if err := k.CDPEngine.EmergencyShutdown(ctx); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}
	if err := k.CDPTreasury.IssueDebit(ctx, "alice", math.NewInt(1), true); err != types.ErrAlreadyShutdown {
		t.Errorf("expected ErrAlreadyShutdown, got %v", err)
	}
}

// TestExtractSurplusToTreasury tests moving surplus to the reserve account
func TestExtractSurplusToTreasury(t *testing.T) {
	k, ctx, _ := testkeeper.SetupKeepers(t)

	if err := k.CDPTreasury.OnSystemSurplus(ctx, math.NewInt(100)); err != nil {
		t.Fatalf("OnSystemSurplus failed: %v", err)
	}
	if err := k.CDPTreasury.ExtractSurplusToTreasury(ctx, math.NewInt(40)); err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if got := k.CDPTreasury.GetSurplusPool(ctx); !got.Equal(math.NewInt(60)) {
		t.Errorf("expected surplus pool 60, got %s", got.String())
	}
	if got := k.Assets.Balance(ctx, types.ReserveAccount, "ousd"); !got.Equal(math.NewInt(40)) {
		t.Errorf("expected reserve balance 40, got %s", got.String())
	}
}
