package types

import (
	"context"

	cdctypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// RegisterInterfaces registers the module's interface types
func RegisterInterfaces(registry cdctypes.InterfaceRegistry) {
	registry.RegisterImplementations((*sdk.Msg)(nil),
		&MsgCancelAuction{},
	)
}

// Message types for auctionmanager module
const (
	TypeMsgCancelAuction = "cancel_auction"
)

// MsgServer defines the auctionmanager module's gRPC message service
type MsgServer interface {
	CancelAuction(context.Context, *MsgCancelAuction) (*MsgCancelAuctionResponse, error)
}

// RegisterMsgServer registers the MsgServer to the configurator's MsgServer
func RegisterMsgServer(s interface{}, srv MsgServer) {
	// This is a placeholder - in production, this would use gRPC registration
	// For now, the messages are handled through the module's handler
}

// MsgCancelAuction cancels a collateral auction after emergency shutdown
type MsgCancelAuction struct {
	Sender    string `json:"sender"`
	AuctionID uint64 `json:"auction_id"`
}

// Proto interface implementations for MsgCancelAuction
func (msg *MsgCancelAuction) Reset()         { *msg = MsgCancelAuction{} }
func (msg *MsgCancelAuction) String() string { return msg.Sender }
func (msg *MsgCancelAuction) ProtoMessage()  {}

// XXX_MessageName returns the message type URL for MsgCancelAuction
func (msg *MsgCancelAuction) XXX_MessageName() string {
	return "honzon.auctionmanager.v1.MsgCancelAuction"
}

// ValidateBasic for MsgCancelAuction
func (msg *MsgCancelAuction) ValidateBasic() error {
	if msg.Sender == "" {
		return ErrInvalidAmount
	}
	return nil
}

// GetSigners returns the signer addresses for MsgCancelAuction
func (msg *MsgCancelAuction) GetSigners() []sdk.AccAddress {
	sender, _ := sdk.AccAddressFromBech32(msg.Sender)
	return []sdk.AccAddress{sender}
}

// MsgCancelAuctionResponse is the response for MsgCancelAuction
type MsgCancelAuctionResponse struct{}

// Proto interface implementations for MsgCancelAuctionResponse
func (msg *MsgCancelAuctionResponse) Reset()         { *msg = MsgCancelAuctionResponse{} }
func (msg *MsgCancelAuctionResponse) String() string { return "" }
func (msg *MsgCancelAuctionResponse) ProtoMessage()  {}
