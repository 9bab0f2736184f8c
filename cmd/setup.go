package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Mohsinsiddi/w3mint/internal/chain"
	"github.com/Mohsinsiddi/w3mint/internal/connect"
	"github.com/Mohsinsiddi/w3mint/internal/contract"
	"github.com/Mohsinsiddi/w3mint/internal/provider"
	"github.com/Mohsinsiddi/w3mint/internal/ui"
	"github.com/Mohsinsiddi/w3mint/internal/wallet"
)

// errChainSwitched aborts a headless command after a chain switch.
var errChainSwitched = errors.New("the wallet switched networks; rerun the command")

func errLine(err error) string { return ui.Err(err.Error()) }

// newWalletManager creates a Manager over wallets.json and the OS keychain.
func newWalletManager() *wallet.Manager {
	return wallet.NewManager(
		wallet.WithStore(wallet.NewJSONStore(cfg.WalletsPath())),
		wallet.WithKeystore(wallet.DefaultKeystore(cfg.Dir())),
	)
}

// networkLabel is the configured override or the registry name.
func networkLabel() string {
	if cfg.NetworkLabel != "" {
		return cfg.NetworkLabel
	}
	return chain.NewRegistry().Label(cfg.ChainID())
}

// startProvider starts the local wallet. It returns nil when there is no
// signing wallet, which the controller treats as no wallet installed.
func startProvider(ctx context.Context, approver provider.Approver) (*provider.Local, error) {
	mgr := newWalletManager()
	if len(mgr.Signing()) == 0 {
		log.Info("no signing wallet configured")
		return nil, nil
	}
	p := provider.NewLocal(provider.LocalOptions{
		Name:         provider.DefaultName,
		URL:          cfg.RPCURL,
		Wallets:      mgr,
		Approver:     approver,
		PollInterval: cfg.PollInterval,
		CallTimeout:  cfg.RPCTimeout,
		Logger:       log,
	})
	if err := p.Start(ctx); err != nil {
		return nil, fmt.Errorf("starting wallet: %w", err)
	}
	return p, nil
}

func newFactory() (*contract.Factory, error) {
	f, err := contract.NewFactory(cfg.ContractAddress, cfg.RPCURL, cfg.WaitMined)
	if err != nil {
		return nil, fmt.Errorf("contract: %w", err)
	}
	return f, nil
}

// newController wires a controller to p, which may be nil.
func newController(p *provider.Local, onReload func()) (*connect.Controller, error) {
	f, err := newFactory()
	if err != nil {
		return nil, err
	}
	opts := connect.Options{
		WalletName:      cfg.WalletTag,
		ExpectedChainID: cfg.ChainID(),
		Network:         networkLabel(),
		SupplyCap:       cfg.MaxSupplyDisplay,
		Admins:          cfg.AdminAddresses,
		RPCTimeout:      cfg.RPCTimeout,
		ConnectTimeout:  cfg.ConnectTimeout,
		MintTimeout:     cfg.MintTimeout,
		Logger:          log,
		Metrics:         rec,
		OnReload:        onReload,
	}
	// A typed nil would count as an installed wallet.
	if p != nil {
		opts.Provider = p
		opts.Contracts = connect.NewContracts(f, p)
	} else {
		opts.Contracts = connect.NewContracts(f, nil)
	}
	return connect.New(opts), nil
}

// headless is a controller session for one-shot commands.
type headless struct {
	ctx      context.Context
	provider *provider.Local
	ctrl     *connect.Controller
	stop     func()
}

// newHeadless starts the wallet and an initialised controller. A chain
// switch cancels ctx and makes run return errChainSwitched.
func newHeadless(parent context.Context, approver provider.Approver) (*headless, error) {
	ctx, cancel := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	ctx, cause := context.WithCancelCause(ctx)

	p, err := startProvider(ctx, approver)
	if err != nil {
		cancel()
		return nil, err
	}
	c, err := newController(p, func() { cause(errChainSwitched) })
	if err != nil {
		if p != nil {
			p.Close()
		}
		cancel()
		return nil, err
	}
	h := &headless{ctx: ctx, provider: p, ctrl: c}
	h.stop = func() {
		c.Close()
		if p != nil {
			p.Close()
		}
		cause(nil)
		cancel()
	}

	if err := c.Init(ctx); err != nil {
		log.Warn("wallet probe failed", zap.Error(err))
	}
	return h, nil
}

// check maps a cancelled session to errChainSwitched.
func (h *headless) check(err error) error {
	if c := context.Cause(h.ctx); errors.Is(c, errChainSwitched) {
		return errChainSwitched
	}
	return err
}

// terminalApprover asks on the terminal unless yes is set.
func terminalApprover(yes bool) provider.Approver {
	return provider.ApproverFunc(func(ctx context.Context, req provider.ApprovalRequest) (bool, error) {
		if yes {
			return true, nil
		}
		fmt.Fprintln(os.Stderr, ui.Info(fmt.Sprintf("Wallet %q wants to share %d account(s) on %s.",
			req.Wallet, len(req.Accounts), req.ChainID)))
		return ui.ConfirmFrom(os.Stdin, os.Stderr, "Allow?"), nil
	})
}
