package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/w3mint/internal/ui"
)

var mintYes bool

var mintCmd = &cobra.Command{
	Use:   "mint",
	Short: "Connect and mint one token",
	Long: `Connect the local wallet (prompting unless --yes) and call mintPublic()
once, as the MINT button does. Minting is refused off the expected chain.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := newHeadless(ctxOf(cmd), terminalApprover(mintYes))
		if err != nil {
			return err
		}
		defer h.stop()

		if h.ctrl.State().Account == "" {
			if err := connectSession(h); err != nil {
				return err
			}
		}
		if !h.ctrl.State().Gating().ShowMint {
			return errors.New("minting is not available; run `w3mint status`")
		}

		spin := ui.NewSpinner("minting on " + networkLabel())
		spin.Start()
		err = h.check(h.ctrl.Mint(h.ctx))
		spin.Stop()

		st := h.ctrl.State()
		if err != nil {
			if st.ErrorMessage != "" {
				return errors.New(st.ErrorMessage)
			}
			return err
		}
		fmt.Println(ui.Success("Minted " + ui.Addr(st.LastTx)))
		fmt.Println(ui.Meta(fmt.Sprintf("%s minted", st.Gating().SupplyLabel)))
		return nil
	},
}

func init() {
	mintCmd.Flags().BoolVarP(&mintYes, "yes", "y", false, "approve account access without prompting")
}
