package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/honzon/x/cdpengine/types"
)

type msgServer struct {
	Keeper *Keeper
}

// NewMsgServerImpl returns an implementation of the cdpengine MsgServer interface
func NewMsgServerImpl(keeper *Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

var _ types.MsgServer = msgServer{}

// AdjustPosition handles MsgAdjustPosition
func (m msgServer) AdjustPosition(goCtx context.Context, msg *types.MsgAdjustPosition) (*types.MsgAdjustPositionResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	collateralAdj, okC := math.NewIntFromString(msg.CollateralAdjustment)
	debitAdj, okD := math.NewIntFromString(msg.DebitAdjustment)
	if !okC || !okD {
		return nil, types.ErrInvalidAmount
	}
	if err := m.Keeper.loansKeeper.AdjustPosition(ctx, msg.Owner, collateralAdj, debitAdj); err != nil {
		return nil, err
	}
	return &types.MsgAdjustPositionResponse{}, nil
}

// TransferLoan handles MsgTransferLoan
func (m msgServer) TransferLoan(goCtx context.Context, msg *types.MsgTransferLoan) (*types.MsgTransferLoanResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := m.Keeper.loansKeeper.TransferLoan(ctx, msg.From, msg.To); err != nil {
		return nil, err
	}
	return &types.MsgTransferLoanResponse{}, nil
}

// SetCollateralParams handles MsgSetCollateralParams
func (m msgServer) SetCollateralParams(goCtx context.Context, msg *types.MsgSetCollateralParams) (*types.MsgSetCollateralParamsResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if msg.Authority != m.Keeper.GetAuthority() {
		return nil, types.ErrUnauthorized
	}

	maxDebitValue, ok := math.NewIntFromString(msg.MaximumTotalDebitValue)
	if !ok || maxDebitValue.IsNegative() {
		return nil, types.ErrInvalidAmount
	}
	params := &types.CollateralParams{MaximumTotalDebitValue: maxDebitValue}

	if msg.LiquidationRatio != "" {
		ratio, err := math.LegacyNewDecFromStr(msg.LiquidationRatio)
		if err != nil {
			return nil, types.ErrInvalidAmount
		}
		params.LiquidationRatio = &ratio
	}
	if msg.RequiredCollateralRatio != "" {
		ratio, err := math.LegacyNewDecFromStr(msg.RequiredCollateralRatio)
		if err != nil {
			return nil, types.ErrInvalidAmount
		}
		params.RequiredCollateralRatio = &ratio
	}

	m.Keeper.SetCollateralParams(ctx, params)
	return &types.MsgSetCollateralParamsResponse{}, nil
}

// Liquidate handles MsgLiquidate
func (m msgServer) Liquidate(goCtx context.Context, msg *types.MsgLiquidate) (*types.MsgLiquidateResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := m.Keeper.LiquidateUnsafeCDP(ctx, msg.Owner); err != nil {
		return nil, err
	}
	return &types.MsgLiquidateResponse{}, nil
}

// Settle handles MsgSettle
func (m msgServer) Settle(goCtx context.Context, msg *types.MsgSettle) (*types.MsgSettleResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := m.Keeper.SettleCDPHasDebit(ctx, msg.Owner); err != nil {
		return nil, err
	}
	return &types.MsgSettleResponse{}, nil
}

// EmergencyShutdown handles MsgEmergencyShutdown
func (m msgServer) EmergencyShutdown(goCtx context.Context, msg *types.MsgEmergencyShutdown) (*types.MsgEmergencyShutdownResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if msg.Authority != m.Keeper.GetAuthority() {
		return nil, types.ErrUnauthorized
	}
	if err := m.Keeper.EmergencyShutdown(ctx); err != nil {
		return nil, err
	}
	return &types.MsgEmergencyShutdownResponse{}, nil
}
