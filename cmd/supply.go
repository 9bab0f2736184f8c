package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/w3mint/internal/ui"
)

var supplyCmd = &cobra.Command{
	Use:   "supply",
	Short: "Show how many tokens have been minted",
	Long:  `Read totalSupply() from the contract through the configured node. No wallet is needed.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := newFactory()
		if err != nil {
			return err
		}
		ctx, cancel := withTimeout(cmd.Context(), cfg.RPCTimeout)
		defer cancel()

		spin := ui.NewSpinner("reading supply from " + cfg.RPCURL)
		spin.Start()
		nft, err := f.ReadOnly(ctx)
		if err != nil {
			spin.Stop()
			return err
		}
		defer nft.Close()
		n, err := nft.TotalSupply(ctx)
		spin.Stop()
		if err != nil {
			return fmt.Errorf("reading supply: %w", err)
		}
		fmt.Printf("%s %s\n", ui.Val(fmt.Sprintf("%s/%d", n, cfg.MaxSupplyDisplay)), ui.Meta("minted"))
		return nil
	},
}
