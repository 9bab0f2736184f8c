package cmd

import (
	"context"

	"go.uber.org/zap"

	"github.com/Mohsinsiddi/w3mint/internal/connect"
	"github.com/Mohsinsiddi/w3mint/internal/ui"
)

// runTUI runs the mint screen. The wallet outlives reloads; only the
// controller is rebuilt.
func runTUI(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	bridge := ui.NewBridge()
	p, err := startProvider(ctx, bridge)
	if err != nil {
		return err
	}
	if p != nil {
		defer p.Close()
	}

	opts := ui.MintOptions{
		Title:  "W3MINT",
		Bridge: bridge,
		Build: func(onReload func()) (*connect.Controller, error) {
			return newController(p, onReload)
		},
	}
	if p != nil {
		opts.Revoke = p.Revoke
	}
	log.Info("mint screen started", zap.String("rpc", cfg.RPCURL), zap.Stringer("chain_id", cfg.ChainID()))
	return ui.RunMint(opts)
}
