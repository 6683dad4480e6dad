package types

import (
	"context"

	cdctypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// RegisterInterfaces registers the module's interface types
func RegisterInterfaces(registry cdctypes.InterfaceRegistry) {
	registry.RegisterImplementations((*sdk.Msg)(nil),
		&MsgBid{},
	)
}

// Message types for auction module
const (
	TypeMsgBid = "bid"
)

// MsgServer defines the auction module's gRPC message service
type MsgServer interface {
	Bid(context.Context, *MsgBid) (*MsgBidResponse, error)
}

// RegisterMsgServer registers the MsgServer to the configurator's MsgServer
func RegisterMsgServer(s interface{}, srv MsgServer) {
	// This is a placeholder - in production, this would use gRPC registration
	// For now, the messages are handled through the module's handler
}

// MsgBid places a bid on a running auction
type MsgBid struct {
	Bidder    string `json:"bidder"`
	AuctionID uint64 `json:"auction_id"`
	Amount    string `json:"amount"`
}

// Proto interface implementations for MsgBid
func (msg *MsgBid) Reset()         { *msg = MsgBid{} }
func (msg *MsgBid) String() string { return msg.Bidder }
func (msg *MsgBid) ProtoMessage()  {}

// XXX_MessageName returns the message type URL for MsgBid
func (msg *MsgBid) XXX_MessageName() string {
	return "honzon.auction.v1.MsgBid"
}

// ValidateBasic for MsgBid
func (msg *MsgBid) ValidateBasic() error {
	if msg.Bidder == "" {
		return ErrInvalidBidPrice
	}
	return nil
}

// GetSigners returns the signer addresses for MsgBid
func (msg *MsgBid) GetSigners() []sdk.AccAddress {
	bidder, _ := sdk.AccAddressFromBech32(msg.Bidder)
	return []sdk.AccAddress{bidder}
}

// MsgBidResponse is the response for MsgBid
type MsgBidResponse struct {
	NewEnd string `json:"new_end,omitempty"`
}

// Proto interface implementations for MsgBidResponse
func (msg *MsgBidResponse) Reset()         { *msg = MsgBidResponse{} }
func (msg *MsgBidResponse) String() string { return msg.NewEnd }
func (msg *MsgBidResponse) ProtoMessage()  {}
