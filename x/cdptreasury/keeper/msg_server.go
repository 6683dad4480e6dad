package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/honzon/x/cdptreasury/types"
)

type msgServer struct {
	Keeper *Keeper
}

// NewMsgServerImpl returns an implementation of the cdptreasury MsgServer interface
func NewMsgServerImpl(keeper *Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

var _ types.MsgServer = msgServer{}

func (m msgServer) checkAuthority(authority string) error {
	if authority != m.Keeper.GetAuthority() {
		return types.ErrUnauthorized
	}
	return nil
}

// SetExpectedCollateralAuctionSize handles MsgSetExpectedCollateralAuctionSize
func (m msgServer) SetExpectedCollateralAuctionSize(goCtx context.Context, msg *types.MsgSetExpectedCollateralAuctionSize) (*types.MsgSetExpectedCollateralAuctionSizeResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := m.checkAuthority(msg.Authority); err != nil {
		return nil, err
	}
	size, ok := math.NewIntFromString(msg.Size)
	if !ok || size.IsNegative() {
		return nil, types.ErrInvalidAmount
	}
	m.Keeper.SetExpectedCollateralAuctionSize(ctx, size)
	return &types.MsgSetExpectedCollateralAuctionSizeResponse{}, nil
}

// SetDebitOffsetBuffer handles MsgSetDebitOffsetBuffer
func (m msgServer) SetDebitOffsetBuffer(goCtx context.Context, msg *types.MsgSetDebitOffsetBuffer) (*types.MsgSetDebitOffsetBufferResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := m.checkAuthority(msg.Authority); err != nil {
		return nil, err
	}
	buffer, ok := math.NewIntFromString(msg.Buffer)
	if !ok || buffer.IsNegative() {
		return nil, types.ErrInvalidAmount
	}
	m.Keeper.SetDebitOffsetBuffer(ctx, buffer)
	return &types.MsgSetDebitOffsetBufferResponse{}, nil
}

// ExtractSurplusToTreasury handles MsgExtractSurplusToTreasury
func (m msgServer) ExtractSurplusToTreasury(goCtx context.Context, msg *types.MsgExtractSurplusToTreasury) (*types.MsgExtractSurplusToTreasuryResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := m.checkAuthority(msg.Authority); err != nil {
		return nil, err
	}
	amount, ok := math.NewIntFromString(msg.Amount)
	if !ok {
		return nil, types.ErrInvalidAmount
	}
	if err := m.Keeper.ExtractSurplusToTreasury(ctx, amount); err != nil {
		return nil, err
	}
	return &types.MsgExtractSurplusToTreasuryResponse{}, nil
}

// AuctionCollateral handles MsgAuctionCollateral
func (m msgServer) AuctionCollateral(goCtx context.Context, msg *types.MsgAuctionCollateral) (*types.MsgAuctionCollateralResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := m.checkAuthority(msg.Authority); err != nil {
		return nil, err
	}
	amount, okA := math.NewIntFromString(msg.Amount)
	target, okT := math.NewIntFromString(msg.Target)
	if !okA || !okT {
		return nil, types.ErrInvalidAmount
	}
	created, err := m.Keeper.CreateCollateralAuctions(ctx, amount, target, types.TreasuryAccount, msg.Split)
	if err != nil {
		return nil, err
	}
	return &types.MsgAuctionCollateralResponse{Created: uint32(created)}, nil
}
