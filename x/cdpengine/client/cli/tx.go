package cli

import (
	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/client/tx"

	"github.com/openalpha/honzon/x/cdpengine/types"
)

// GetTxCmd returns the transaction commands for the cdpengine module
func GetTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "cdpengine",
		Short:                      "CDP engine transaction commands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdAdjustPosition(),
		CmdTransferLoan(),
		CmdLiquidate(),
		CmdSettle(),
	)

	return cmd
}

// CmdAdjustPosition returns the command to adjust the sender's position
func CmdAdjustPosition() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "adjust-position [collateral-adjustment] [debit-adjustment]",
		Short: "Adjust collateral and debit of your position (signed integers)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgAdjustPosition{
				Owner:                clientCtx.GetFromAddress().String(),
				CollateralAdjustment: args[0],
				DebitAdjustment:      args[1],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdTransferLoan returns the command to merge your position into another account's
func CmdTransferLoan() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transfer-loan [to]",
		Short: "Merge your position into another account's position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgTransferLoan{
				From: clientCtx.GetFromAddress().String(),
				To:   args[0],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdLiquidate returns the command to liquidate an unsafe position
func CmdLiquidate() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "liquidate [owner]",
		Short: "Liquidate an unsafe position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgLiquidate{
				Sender: clientCtx.GetFromAddress().String(),
				Owner:  args[0],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdSettle returns the command to settle a position after shutdown
func CmdSettle() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settle [owner]",
		Short: "Settle a position with debit after emergency shutdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgSettle{
				Sender: clientCtx.GetFromAddress().String(),
				Owner:  args[0],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}
