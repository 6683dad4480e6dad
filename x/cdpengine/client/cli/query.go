package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
)

// GetQueryCmd returns the cli query commands for the cdpengine module
func GetQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "cdpengine",
		Short:                      "Querying commands for the cdpengine module",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdQueryPosition(),
		CmdQueryParams(),
	)

	return cmd
}

// CmdQueryPosition returns the command to query a position and its status
func CmdQueryPosition() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "position [owner]",
		Short: "Query an account's collateral position and safety status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Position queries go through the node's REST surface
			fmt.Println("Position query requires running node connection")
			fmt.Printf("Use REST API: GET /honzon/cdpengine/v1/position/%s\n", args[0])
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryParams returns the command to query the collateral params
func CmdQueryParams() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "params",
		Short: "Query the collateral risk parameters",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Params query requires running node connection")
			fmt.Println("Use REST API: GET /honzon/cdpengine/v1/params")
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}
