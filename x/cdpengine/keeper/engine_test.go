package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	testkeeper "github.com/openalpha/honzon/testutil/keeper"
	"github.com/openalpha/honzon/x/cdpengine/types"
)

// openPosition funds who and opens a collateral/debit position
func openPosition(t *testing.T, k *testkeeper.Keepers, ctx sdk.Context, who string, collateral, debit int64) {
	t.Helper()
	if err := k.Assets.Mint(ctx, who, "oalpha", math.NewInt(collateral)); err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	if err := k.Loans.AdjustPosition(ctx, who, math.NewInt(collateral), math.NewInt(debit)); err != nil {
		t.Fatalf("failed to open position for %s: %v", who, err)
	}
}

func setParams(k *testkeeper.Keepers, ctx sdk.Context) {
	k.CDPEngine.SetCollateralParams(ctx, &types.CollateralParams{
		MaximumTotalDebitValue: math.NewInt(100000),
	})
}

// TestGetCDPStatus tests the safe/unsafe classification as the price moves
func TestGetCDPStatus(t *testing.T) {
	k, ctx, setPrice := testkeeper.SetupKeepers(t)
	setParams(k, ctx)

	// No debit is always safe, even without params
	if got := k.CDPEngine.GetCDPStatus(ctx, "nobody"); got != types.StatusSafe {
		t.Errorf("expected safe for empty position, got %s", got)
	}

	openPosition(t, k, ctx, "alice", 210, 100)

	// Ratio 2.1 at price 1
	if got := k.CDPEngine.GetCDPStatus(ctx, "alice"); got != types.StatusSafe {
		t.Errorf("expected safe at price 1, got %s", got)
	}

	// Ratio 1.05 at price 0.5
	setPrice(math.LegacyMustNewDecFromStr("0.5"))
	if got := k.CDPEngine.GetCDPStatus(ctx, "alice"); got != types.StatusUnsafe {
		t.Errorf("expected unsafe at price 0.5, got %s", got)
	}
}

// TestLiquidateUnsafeCDP tests seizure and auction creation for an unsafe
// position.
func TestLiquidateUnsafeCDP(t *testing.T) {
	k, ctx, setPrice := testkeeper.SetupKeepers(t)
	setParams(k, ctx)
	openPosition(t, k, ctx, "alice", 210, 100)

	// Safe positions cannot be liquidated
	if err := k.CDPEngine.LiquidateUnsafeCDP(ctx, "alice"); err != types.ErrMustBeUnsafe {
		t.Errorf("expected ErrMustBeUnsafe, got %v", err)
	}

	setPrice(math.LegacyMustNewDecFromStr("0.5"))
	if err := k.CDPEngine.LiquidateUnsafeCDP(ctx, "alice"); err != nil {
		t.Fatalf("liquidation failed: %v", err)
	}

	if k.Loans.HasPosition(ctx, "alice") {
		t.Error("expected position removed by liquidation")
	}
	if got := k.CDPTreasury.GetTotalCollaterals(ctx); !got.Equal(math.NewInt(210)) {
		t.Errorf("expected treasury collateral 210, got %s", got.String())
	}
	if got := k.CDPTreasury.GetDebitPool(ctx); !got.Equal(math.NewInt(100)) {
		t.Errorf("expected debit pool 100, got %s", got.String())
	}
	// The seized collateral is up for auction targeting the debit value
	if got := k.AuctionManager.GetTotalCollateralInAuction(ctx); !got.Equal(math.NewInt(210)) {
		t.Errorf("expected 210 collateral in auction, got %s", got.String())
	}
	if got := k.AuctionManager.GetTotalTargetInAuction(ctx); !got.Equal(math.NewInt(100)) {
		t.Errorf("expected target 100 in auction, got %s", got.String())
	}
	// Alice keeps the stable currency issued against the position
	if got := k.Assets.Balance(ctx, "alice", "ousd"); !got.Equal(math.NewInt(100)) {
		t.Errorf("expected alice's stable balance 100, got %s", got.String())
	}
}

// TestEmergencyShutdown tests the one-way shutdown switch and its gates
func TestEmergencyShutdown(t *testing.T) {
	k, ctx, _ := testkeeper.SetupKeepers(t)
	setParams(k, ctx)

	if k.CDPEngine.IsShutdown(ctx) {
		t.Fatal("expected system live before shutdown")
	}
	if err := k.CDPEngine.EmergencyShutdown(ctx); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}
	if !k.CDPEngine.IsShutdown(ctx) {
		t.Error("expected shutdown flag set")
	}
	if err := k.CDPEngine.EmergencyShutdown(ctx); err != types.ErrAlreadyShutdown {
		t.Errorf("expected ErrAlreadyShutdown on repeat, got %v", err)
	}
	if err := k.CDPEngine.LiquidateUnsafeCDP(ctx, "alice"); err != types.ErrAlreadyShutdown {
		t.Errorf("expected liquidation blocked after shutdown, got %v", err)
	}
}

// TestSettleCDPHasDebit tests post-shutdown settlement
func TestSettleCDPHasDebit(t *testing.T) {
	k, ctx, _ := testkeeper.SetupKeepers(t)
	setParams(k, ctx)
	openPosition(t, k, ctx, "alice", 210, 100)
	openPosition(t, k, ctx, "bob", 300, 150)

	// Settlement requires shutdown
	if err := k.CDPEngine.SettleCDPHasDebit(ctx, "alice"); err != types.ErrMustAfterShutdown {
		t.Errorf("expected ErrMustAfterShutdown, got %v", err)
	}

	if err := k.CDPEngine.EmergencyShutdown(ctx); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}

	if err := k.CDPEngine.SettleCDPHasDebit(ctx, "alice"); err != nil {
		t.Fatalf("settlement failed: %v", err)
	}

	// Collateral worth the debit value is seized; the rest stays with the owner
	position := k.Loans.GetPosition(ctx, "alice")
	if !position.Collateral.Equal(math.NewInt(110)) || !position.Debit.IsZero() {
		t.Errorf("expected residual position 110/0, got %s/%s", position.Collateral.String(), position.Debit.String())
	}
	if got := k.CDPTreasury.GetTotalCollaterals(ctx); !got.Equal(math.NewInt(100)) {
		t.Errorf("expected treasury collateral 100, got %s", got.String())
	}
	if got := k.CDPTreasury.GetDebitPool(ctx); !got.Equal(math.NewInt(100)) {
		t.Errorf("expected debit pool 100, got %s", got.String())
	}

	// A settled position cannot be settled again
	if err := k.CDPEngine.SettleCDPHasDebit(ctx, "alice"); err != types.ErrNoDebitValue {
		t.Errorf("expected ErrNoDebitValue on repeat, got %v", err)
	}

	if err := k.CDPEngine.SettleCDPHasDebit(ctx, "bob"); err != nil {
		t.Fatalf("settlement failed: %v", err)
	}
	if got := k.CDPTreasury.GetDebitPool(ctx); !got.Equal(math.NewInt(250)) {
		t.Errorf("expected debit pool 250, got %s", got.String())
	}
}

// TestCheckPositionValid tests the validity ladder ordering
func TestCheckPositionValid(t *testing.T) {
	k, ctx, _ := testkeeper.SetupKeepers(t)

	// Zero debit passes with no params at all
	if err := k.CDPEngine.CheckPositionValid(ctx, math.NewInt(100), math.ZeroInt(), true); err != nil {
		t.Errorf("zero debit should always be valid: %v", err)
	}

	required := math.LegacyMustNewDecFromStr("2.0")
	liquidation := math.LegacyMustNewDecFromStr("1.2")
	k.CDPEngine.SetCollateralParams(ctx, &types.CollateralParams{
		MaximumTotalDebitValue:  math.NewInt(100000),
		LiquidationRatio:        &liquidation,
		RequiredCollateralRatio: &required,
	})

	testCases := []struct {
		name          string
		collateral    int64
		debit         int64
		checkRequired bool
		wantErr       error
	}{
		{"below required, checked", 150, 100, true, types.ErrBelowRequiredCollateralRatio},
		{"below required, unchecked", 150, 100, false, nil},
		{"below liquidation", 110, 100, false, types.ErrBelowLiquidationRatio},
		{"dust debit", 100, 5, false, types.ErrRemainDebitValueTooSmall},
		{"valid", 250, 100, true, nil},
	}
	for _, tc := range testCases {
		err := k.CDPEngine.CheckPositionValid(ctx, math.NewInt(tc.collateral), math.NewInt(tc.debit), tc.checkRequired)
		if err != tc.wantErr {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.wantErr, err)
		}
	}
}

// TestCalcCollateralRatio tests the price-weighted ratio
func TestCalcCollateralRatio(t *testing.T) {
	k, ctx, setPrice := testkeeper.SetupKeepers(t)

	if got := k.CDPEngine.CalcCollateralRatio(ctx, math.NewInt(100), math.ZeroInt()); !got.Equal(types.MaxRatio()) {
		t.Errorf("expected max ratio for zero debit, got %s", got.String())
	}

	if got := k.CDPEngine.CalcCollateralRatio(ctx, math.NewInt(200), math.NewInt(100)); !got.Equal(math.LegacyNewDec(2)) {
		t.Errorf("expected ratio 2, got %s", got.String())
	}

	setPrice(math.LegacyMustNewDecFromStr("0.5"))
	if got := k.CDPEngine.CalcCollateralRatio(ctx, math.NewInt(200), math.NewInt(100)); !got.Equal(math.LegacyOneDec()) {
		t.Errorf("expected ratio 1 at price 0.5, got %s", got.String())
	}
}
