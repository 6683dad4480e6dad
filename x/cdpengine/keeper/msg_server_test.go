package keeper_test

import (
	"testing"

	"cosmossdk.io/math"

	testkeeper "github.com/openalpha/honzon/testutil/keeper"
	"github.com/openalpha/honzon/x/cdpengine/keeper"
	"github.com/openalpha/honzon/x/cdpengine/types"
)

// TestMsgSetCollateralParams tests authority gating and ratio parsing
func TestMsgSetCollateralParams(t *testing.T) {
	k, ctx, _ := testkeeper.SetupKeepers(t)
	server := keeper.NewMsgServerImpl(k.CDPEngine)

	_, err := server.SetCollateralParams(ctx, &types.MsgSetCollateralParams{
		Authority:              "mallory",
		MaximumTotalDebitValue: "1000",
	})
	if err != types.ErrUnauthorized {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}

	_, err = server.SetCollateralParams(ctx, &types.MsgSetCollateralParams{
		Authority:              testkeeper.TestAuthority,
		MaximumTotalDebitValue: "1000",
		LiquidationRatio:       "1.4",
	})
	if err != nil {
		t.Fatalf("SetCollateralParams failed: %v", err)
	}

	params := k.CDPEngine.GetCollateralParams(ctx)
	if params == nil {
		t.Fatal("expected params stored")
	}
	if !params.MaximumTotalDebitValue.Equal(math.NewInt(1000)) {
		t.Errorf("expected cap 1000, got %s", params.MaximumTotalDebitValue.String())
	}
	if params.LiquidationRatio == nil || !params.LiquidationRatio.Equal(math.LegacyMustNewDecFromStr("1.4")) {
		t.Error("expected liquidation ratio 1.4")
	}
	if params.RequiredCollateralRatio != nil {
		t.Error("expected required ratio unset")
	}

	// Malformed amounts are rejected
	_, err = server.SetCollateralParams(ctx, &types.MsgSetCollateralParams{
		Authority:              testkeeper.TestAuthority,
		MaximumTotalDebitValue: "not-a-number",
	})
	if err != types.ErrInvalidAmount {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}
}

// TestMsgEmergencyShutdown tests the privileged shutdown message
func TestMsgEmergencyShutdown(t *testing.T) {
	k, ctx, _ := testkeeper.SetupKeepers(t)
	server := keeper.NewMsgServerImpl(k.CDPEngine)

	_, err := server.EmergencyShutdown(ctx, &types.MsgEmergencyShutdown{Authority: "mallory"})
	if err != types.ErrUnauthorized {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
	if k.CDPEngine.IsShutdown(ctx) {
		t.Error("unauthorized shutdown must not set the flag")
	}

	_, err = server.EmergencyShutdown(ctx, &types.MsgEmergencyShutdown{Authority: testkeeper.TestAuthority})
	if err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}
	if !k.CDPEngine.IsShutdown(ctx) {
		t.Error("expected shutdown flag set")
	}
}
