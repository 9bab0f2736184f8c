package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/w3mint/internal/connect"
	"github.com/Mohsinsiddi/w3mint/internal/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show wallet, network and supply as the mint screen sees them",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := newHeadless(ctxOf(cmd), nil)
		if err != nil {
			return err
		}
		defer h.stop()
		fmt.Println(sessionBlock(h.ctrl.State()))
		return h.check(nil)
	},
}

// sessionPairs lists what the mint screen would show for s.
func sessionPairs(s connect.State) [][2]string {
	g := s.Gating()
	wallet := "not installed"
	if s.WalletPresent {
		wallet = "installed"
	}
	account := g.AccountLabel
	if account == "" {
		account = "not connected"
	}
	chainID := s.ChainID.String()
	if chainID == "" {
		chainID = "unknown"
	}
	pairs := [][2]string{
		{"Wallet", wallet},
		{"Network", s.Network},
		{"Chain", fmt.Sprintf("%s (%s)", chainID, s.ChainMatch)},
		{"Account", account},
		{"Minted", g.SupplyLabel},
		{"Button", g.Button},
	}
	if s.IsAdmin {
		pairs = append(pairs, [2]string{"Role", "admin"})
	}
	if s.LastTx != "" {
		pairs = append(pairs, [2]string{"Last tx", s.LastTx})
	}
	if s.ErrorMessage != "" {
		pairs = append(pairs, [2]string{"Error", s.ErrorMessage})
	}
	return pairs
}

func sessionBlock(s connect.State) string {
	return ui.KeyValueBlock("w3mint", sessionPairs(s))
}

func ctxOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, d)
}
