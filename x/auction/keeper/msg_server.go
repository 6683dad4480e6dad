package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/openalpha/honzon/x/auction/types"
)

type msgServer struct {
	Keeper *Keeper
}

// NewMsgServerImpl returns an implementation of the auction MsgServer interface
func NewMsgServerImpl(keeper *Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

var _ types.MsgServer = msgServer{}

// Bid handles MsgBid
func (m msgServer) Bid(goCtx context.Context, msg *types.MsgBid) (*types.MsgBidResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	amount, ok := math.NewIntFromString(msg.Amount)
	if !ok {
		return nil, types.ErrInvalidBidPrice
	}
	if err := m.Keeper.Bid(ctx, msg.AuctionID, types.Bid{Bidder: msg.Bidder, Amount: amount}); err != nil {
		return nil, err
	}

	resp := &types.MsgBidResponse{}
	if info := m.Keeper.GetAuction(ctx, msg.AuctionID); info != nil && info.End != nil {
		resp.NewEnd = math.NewInt(*info.End).String()
	}
	return resp, nil
}
