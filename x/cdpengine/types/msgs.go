package types

import (
	"context"

	cdctypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// RegisterInterfaces registers the module's interface types
func RegisterInterfaces(registry cdctypes.InterfaceRegistry) {
	registry.RegisterImplementations((*sdk.Msg)(nil),
		&MsgAdjustPosition{},
		&MsgTransferLoan{},
		&MsgSetCollateralParams{},
		&MsgLiquidate{},
		&MsgSettle{},
		&MsgEmergencyShutdown{},
	)
}

// Message types for cdpengine module
const (
	TypeMsgAdjustPosition      = "adjust_position"
	TypeMsgTransferLoan        = "transfer_loan"
	TypeMsgSetCollateralParams = "set_collateral_params"
	TypeMsgLiquidate           = "liquidate"
	TypeMsgSettle              = "settle"
	TypeMsgEmergencyShutdown   = "emergency_shutdown"
)

// MsgServer defines the cdpengine module's gRPC message service
type MsgServer interface {
	AdjustPosition(context.Context, *MsgAdjustPosition) (*MsgAdjustPositionResponse, error)
	TransferLoan(context.Context, *MsgTransferLoan) (*MsgTransferLoanResponse, error)
	SetCollateralParams(context.Context, *MsgSetCollateralParams) (*MsgSetCollateralParamsResponse, error)
	Liquidate(context.Context, *MsgLiquidate) (*MsgLiquidateResponse, error)
	Settle(context.Context, *MsgSettle) (*MsgSettleResponse, error)
	EmergencyShutdown(context.Context, *MsgEmergencyShutdown) (*MsgEmergencyShutdownResponse, error)
}

// RegisterMsgServer registers the MsgServer to the configurator's MsgServer
func RegisterMsgServer(s interface{}, srv MsgServer) {
	// This is a placeholder - in production, this would use gRPC registration
	// For now, the messages are handled through the module's handler
}

// MsgAdjustPosition adjusts the sender's collateral and debit
type MsgAdjustPosition struct {
	Owner                string `json:"owner"`
	CollateralAdjustment string `json:"collateral_adjustment"`
	DebitAdjustment      string `json:"debit_adjustment"`
}

// Proto interface implementations for MsgAdjustPosition
func (msg *MsgAdjustPosition) Reset()         { *msg = MsgAdjustPosition{} }
func (msg *MsgAdjustPosition) String() string { return msg.Owner }
func (msg *MsgAdjustPosition) ProtoMessage()  {}

// XXX_MessageName returns the message type URL
func (msg *MsgAdjustPosition) XXX_MessageName() string {
	return "honzon.cdpengine.v1.MsgAdjustPosition"
}

// ValidateBasic for MsgAdjustPosition
func (msg *MsgAdjustPosition) ValidateBasic() error {
	if msg.Owner == "" {
		return ErrUnauthorized
	}
	return nil
}

// GetSigners returns the signer addresses
func (msg *MsgAdjustPosition) GetSigners() []sdk.AccAddress {
	owner, _ := sdk.AccAddressFromBech32(msg.Owner)
	return []sdk.AccAddress{owner}
}

// MsgAdjustPositionResponse is the response
type MsgAdjustPositionResponse struct{}

func (msg *MsgAdjustPositionResponse) Reset()         { *msg = MsgAdjustPositionResponse{} }
func (msg *MsgAdjustPositionResponse) String() string { return "" }
func (msg *MsgAdjustPositionResponse) ProtoMessage()  {}

// MsgTransferLoan merges the sender's position into another account's
type MsgTransferLoan struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Proto interface implementations for MsgTransferLoan
func (msg *MsgTransferLoan) Reset()         { *msg = MsgTransferLoan{} }
func (msg *MsgTransferLoan) String() string { return msg.From }
func (msg *MsgTransferLoan) ProtoMessage()  {}

// XXX_MessageName returns the message type URL
func (msg *MsgTransferLoan) XXX_MessageName() string {
	return "honzon.cdpengine.v1.MsgTransferLoan"
}

// ValidateBasic for MsgTransferLoan
func (msg *MsgTransferLoan) ValidateBasic() error {
	if msg.From == "" || msg.To == "" {
		return ErrUnauthorized
	}
	return nil
}

// GetSigners returns the signer addresses
func (msg *MsgTransferLoan) GetSigners() []sdk.AccAddress {
	from, _ := sdk.AccAddressFromBech32(msg.From)
	return []sdk.AccAddress{from}
}

// MsgTransferLoanResponse is the response
type MsgTransferLoanResponse struct{}

func (msg *MsgTransferLoanResponse) Reset()         { *msg = MsgTransferLoanResponse{} }
func (msg *MsgTransferLoanResponse) String() string { return "" }
func (msg *MsgTransferLoanResponse) ProtoMessage()  {}

// MsgSetCollateralParams updates the collateral monetary policy
type MsgSetCollateralParams struct {
	Authority               string `json:"authority"`
	MaximumTotalDebitValue  string `json:"maximum_total_debit_value"`
	LiquidationRatio        string `json:"liquidation_ratio,omitempty"`
	RequiredCollateralRatio string `json:"required_collateral_ratio,omitempty"`
}

// Proto interface implementations for MsgSetCollateralParams
func (msg *MsgSetCollateralParams) Reset()         { *msg = MsgSetCollateralParams{} }
func (msg *MsgSetCollateralParams) String() string { return msg.Authority }
func (msg *MsgSetCollateralParams) ProtoMessage()  {}

// XXX_MessageName returns the message type URL
func (msg *MsgSetCollateralParams) XXX_MessageName() string {
	return "honzon.cdpengine.v1.MsgSetCollateralParams"
}

// ValidateBasic for MsgSetCollateralParams
func (msg *MsgSetCollateralParams) ValidateBasic() error {
	if msg.Authority == "" {
		return ErrUnauthorized
	}
	return nil
}

// GetSigners returns the signer addresses
func (msg *MsgSetCollateralParams) GetSigners() []sdk.AccAddress {
	authority, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{authority}
}

// MsgSetCollateralParamsResponse is the response
type MsgSetCollateralParamsResponse struct{}

func (msg *MsgSetCollateralParamsResponse) Reset()         { *msg = MsgSetCollateralParamsResponse{} }
func (msg *MsgSetCollateralParamsResponse) String() string { return "" }
func (msg *MsgSetCollateralParamsResponse) ProtoMessage()  {}

// MsgLiquidate liquidates an unsafe position
type MsgLiquidate struct {
	Sender string `json:"sender"`
	Owner  string `json:"owner"`
}

// Proto interface implementations for MsgLiquidate
func (msg *MsgLiquidate) Reset()         { *msg = MsgLiquidate{} }
func (msg *MsgLiquidate) String() string { return msg.Owner }
func (msg *MsgLiquidate) ProtoMessage()  {}

// XXX_MessageName returns the message type URL
func (msg *MsgLiquidate) XXX_MessageName() string {
	return "honzon.cdpengine.v1.MsgLiquidate"
}

// ValidateBasic for MsgLiquidate
func (msg *MsgLiquidate) ValidateBasic() error {
	if msg.Sender == "" || msg.Owner == "" {
		return ErrUnauthorized
	}
	return nil
}

// GetSigners returns the signer addresses
func (msg *MsgLiquidate) GetSigners() []sdk.AccAddress {
	sender, _ := sdk.AccAddressFromBech32(msg.Sender)
	return []sdk.AccAddress{sender}
}

// MsgLiquidateResponse is the response
type MsgLiquidateResponse struct{}

func (msg *MsgLiquidateResponse) Reset()         { *msg = MsgLiquidateResponse{} }
func (msg *MsgLiquidateResponse) String() string { return "" }
func (msg *MsgLiquidateResponse) ProtoMessage()  {}

// MsgSettle settles a position with debit after emergency shutdown
type MsgSettle struct {
	Sender string `json:"sender"`
	Owner  string `json:"owner"`
}

// Proto interface implementations for MsgSettle
func (msg *MsgSettle) Reset()         { *msg = MsgSettle{} }
func (msg *MsgSettle) String() string { return msg.Owner }
func (msg *MsgSettle) ProtoMessage()  {}

// XXX_MessageName returns the message type URL
func (msg *MsgSettle) XXX_MessageName() string {
	return "honzon.cdpengine.v1.MsgSettle"
}

// ValidateBasic for MsgSettle
func (msg *MsgSettle) ValidateBasic() error {
	if msg.Sender == "" || msg.Owner == "" {
		return ErrUnauthorized
	}
	return nil
}

// GetSigners returns the signer addresses
func (msg *MsgSettle) GetSigners() []sdk.AccAddress {
	sender, _ := sdk.AccAddressFromBech32(msg.Sender)
	return []sdk.AccAddress{sender}
}

// MsgSettleResponse is the response
type MsgSettleResponse struct{}

func (msg *MsgSettleResponse) Reset()         { *msg = MsgSettleResponse{} }
func (msg *MsgSettleResponse) String() string { return "" }
func (msg *MsgSettleResponse) ProtoMessage()  {}

// MsgEmergencyShutdown irreversibly halts the collateral subsystem
type MsgEmergencyShutdown struct {
	Authority string `json:"authority"`
}

// Proto interface implementations for MsgEmergencyShutdown
func (msg *MsgEmergencyShutdown) Reset()         { *msg = MsgEmergencyShutdown{} }
func (msg *MsgEmergencyShutdown) String() string { return msg.Authority }
func (msg *MsgEmergencyShutdown) ProtoMessage()  {}

// XXX_MessageName returns the message type URL
func (msg *MsgEmergencyShutdown) XXX_MessageName() string {
	return "honzon.cdpengine.v1.MsgEmergencyShutdown"
}

// ValidateBasic for MsgEmergencyShutdown
func (msg *MsgEmergencyShutdown) ValidateBasic() error {
	if msg.Authority == "" {
		return ErrUnauthorized
	}
	return nil
}

// GetSigners returns the signer addresses
func (msg *MsgEmergencyShutdown) GetSigners() []sdk.AccAddress {
	authority, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{authority}
}

// MsgEmergencyShutdownResponse is the response
type MsgEmergencyShutdownResponse struct{}

func (msg *MsgEmergencyShutdownResponse) Reset()         { *msg = MsgEmergencyShutdownResponse{} }
func (msg *MsgEmergencyShutdownResponse) String() string { return "" }
func (msg *MsgEmergencyShutdownResponse) ProtoMessage()  {}
