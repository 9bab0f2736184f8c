package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/w3mint/internal/connect"
	"github.com/Mohsinsiddi/w3mint/internal/provider"
	"github.com/Mohsinsiddi/w3mint/internal/ui"
)

var connectYes bool

var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Share a wallet account with w3mint",
	Long: `Ask the local wallet for account access, as the CONNECT WALLET button does.
You are prompted on the terminal unless --yes is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := newHeadless(ctxOf(cmd), terminalApprover(connectYes))
		if err != nil {
			return err
		}
		defer h.stop()

		if err := connectSession(h); err != nil {
			return err
		}
		fmt.Println(sessionBlock(h.ctrl.State()))
		return nil
	},
}

// connectSession runs the connect intent and fails unless an account was
// adopted on the expected chain.
func connectSession(h *headless) error {
	err := h.ctrl.ConnectWallet(h.ctx)
	if err := h.check(err); errors.Is(err, errChainSwitched) {
		return err
	}
	st := h.ctrl.State()
	switch {
	case errors.Is(err, connect.ErrWalletAbsent):
		return errors.New(connect.MsgWalletAbsent)
	case errors.Is(err, provider.ErrUserRejected):
		return errors.New("request rejected")
	case err != nil:
		return err
	case st.ErrorMessage != "":
		return errors.New(st.ErrorMessage)
	case st.Account == "":
		return errors.New("the wallet shared no account")
	}
	fmt.Println(ui.Success("Connected " + ui.Addr(st.Account)))
	return nil
}

func init() {
	connectCmd.Flags().BoolVarP(&connectYes, "yes", "y", false, "approve account access without prompting")
}
