// Package connect owns the wallet connection state of the mint client: it
// follows provider notifications, serialises user intents and derives which
// action the view may offer.
package connect

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Mohsinsiddi/w3mint/internal/chain"
	"github.com/Mohsinsiddi/w3mint/internal/contract"
	"github.com/Mohsinsiddi/w3mint/internal/metrics"
	"github.com/Mohsinsiddi/w3mint/internal/provider"
)

// Minter is a handle on the mint contract.
type Minter interface {
	TotalSupply(ctx context.Context) (*big.Int, error)
	MintPublic(ctx context.Context) (*types.Transaction, error)
	Close()
}

// Contracts builds Minter handles.
type Contracts interface {
	// ReadOnly returns a handle on the default node, independent of any wallet.
	ReadOnly(ctx context.Context) (Minter, error)
	// WithSigner returns a handle that signs as account.
	WithSigner(ctx context.Context, account string) (Minter, error)
}

// Options configures a Controller.
type Options struct {
	Provider        provider.Provider // nil when no wallet is installed
	WalletName      string            // name the provider must identify as
	ExpectedChainID chain.ID
	Network         string
	SupplyCap       int
	Contracts       Contracts
	Admins          []string

	RPCTimeout     time.Duration
	ConnectTimeout time.Duration
	MintTimeout    time.Duration

	Logger  *zap.Logger
	Metrics *metrics.Recorder
	// OnReload is called once when a chain switch invalidates the session.
	OnReload func()
}

// Controller owns State.
type Controller struct {
	opts    Options
	log     *zap.Logger
	present bool

	ctx    context.Context
	cancel context.CancelFunc
	reload sync.Once

	mu     sync.Mutex
	state  State
	minter Minter
	subs   []*provider.Subscription
	views  map[uint64]func(State)
	nextID uint64
	closed bool
	inited bool
	// accountsGen counts accountsChanged transitions; an adoption that
	// raced a newer one is discarded.
	accountsGen uint64

	notifyMu sync.Mutex
}

// New creates a controller. Wallet presence is decided here, once.
func New(opts Options) *Controller {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.RPCTimeout <= 0 {
		opts.RPCTimeout = 15 * time.Second
	}
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = 2 * time.Minute
	}
	if opts.MintTimeout <= 0 {
		opts.MintTimeout = 3 * time.Minute
	}
	if opts.Network == "" {
		opts.Network = opts.ExpectedChainID.String()
	}

	ctx, cancel := context.WithCancel(context.Background())
	present := provider.Detect(opts.Provider, opts.WalletName)
	c := &Controller{
		opts:    opts,
		log:     opts.Logger.Named("connect").With(zap.String("session", uuid.NewString())),
		present: present,
		ctx:     ctx,
		cancel:  cancel,
		views:   make(map[uint64]func(State)),
		state: State{
			WalletPresent: present,
			SupplyCap:     opts.SupplyCap,
			Network:       opts.Network,
		},
	}
	return c
}

// State returns a snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe registers fn to receive a snapshot after every transition. fn
// runs synchronously and must not invoke intents. The returned func removes it.
func (c *Controller) Subscribe(fn func(State)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	id := c.nextID
	c.views[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.views, id)
	}
}

// update applies fn atomically and then notifies views.
func (c *Controller) update(fn func(s *State)) {
	c.mu.Lock()
	fn(&c.state)
	c.mu.Unlock()
	c.notify()
}

// notify delivers the current snapshot. Deliveries are serialised so views
// never see an older snapshot after a newer one.
func (c *Controller) notify() {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	c.mu.Lock()
	snap := c.state
	views := make([]func(State), 0, len(c.views))
	for _, fn := range c.views {
		views = append(views, fn)
	}
	c.mu.Unlock()

	for _, fn := range views {
		fn(snap)
	}
}

// callCtx bounds a provider or contract call by timeout and by the
// controller's lifetime.
func (c *Controller) callCtx(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	stop := context.AfterFunc(c.ctx, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

// ---------------------------------------------------------------------------
// Initialisation
// ---------------------------------------------------------------------------

// Init subscribes to the provider, reads the supply and probes an already
// connected wallet. The supply read is best effort; a failing probe is
// returned but leaves the controller usable.
func (c *Controller) Init(ctx context.Context) error {
	c.mu.Lock()
	switch {
	case c.closed:
		c.mu.Unlock()
		return ErrClosed
	case c.inited:
		c.mu.Unlock()
		return ErrInitialised
	}
	c.inited = true
	c.mu.Unlock()

	if c.present {
		p := c.opts.Provider
		subs := []*provider.Subscription{
			p.On(provider.EventConnect, c.onConnect),
			p.On(provider.EventAccountsChanged, c.onAccountsChanged),
			p.On(provider.EventChainChanged, c.onChainChanged),
			p.On(provider.EventDisconnect, c.onDisconnect),
		}
		c.mu.Lock()
		c.subs = append(c.subs, subs...)
		c.mu.Unlock()
	}

	var g errgroup.Group
	g.Go(func() error {
		c.loadSupply(ctx)
		return nil
	})
	g.Go(func() error {
		return c.probe(ctx)
	})
	err := g.Wait()
	c.notify()
	return err
}

func (c *Controller) loadSupply(ctx context.Context) {
	if c.opts.Contracts == nil {
		return
	}
	cctx, cancel := c.callCtx(ctx, c.opts.RPCTimeout)
	defer cancel()

	m, err := c.opts.Contracts.ReadOnly(cctx)
	if err != nil {
		c.log.Warn("read-only contract unavailable", zap.Error(err))
		return
	}
	defer m.Close()

	supply, err := m.TotalSupply(cctx)
	if err != nil {
		c.log.Warn("totalSupply failed", zap.Error(err))
		return
	}
	c.update(func(s *State) {
		s.MintedSupply = supply.Uint64()
		s.SupplyKnown = true
	})
}

func (c *Controller) probe(ctx context.Context) error {
	if !c.present || !c.opts.Provider.IsConnected() {
		return nil
	}
	cctx, cancel := c.callCtx(ctx, c.opts.RPCTimeout)
	id, err := provider.ChainID(cctx, c.opts.Provider)
	cancel()
	if err != nil {
		c.log.Warn("chain id probe failed", zap.Error(err))
		return fmt.Errorf("probing chain id: %w", err)
	}
	if c.checkChain(id) {
		c.restoreSession(ctx)
	}
	return nil
}

// checkChain records an observed chain id. It reports whether the chain
// has just become the expected one.
func (c *Controller) checkChain(id chain.ID) bool {
	var became bool
	c.update(func(s *State) {
		was := s.ChainMatch
		s.ChainID = id
		if id == c.opts.ExpectedChainID {
			s.ChainMatch = ChainMatched
			if s.ErrorKind == ErrorWrongNetwork {
				s.clearError()
			}
		} else {
			s.ChainMatch = ChainMismatched
		}
		became = s.ChainMatch == ChainMatched && was != ChainMatched
	})
	c.log.Debug("chain check", zap.Stringer("chain_id", id), zap.Bool("matched", id == c.opts.ExpectedChainID))
	return became
}

// restoreSession adopts accounts the wallet already permitted, through the
// same transition an accountsChanged notification takes.
func (c *Controller) restoreSession(ctx context.Context) {
	cctx, cancel := c.callCtx(ctx, c.opts.RPCTimeout)
	defer cancel()
	accounts, err := provider.Accounts(cctx, c.opts.Provider)
	if err != nil {
		c.log.Warn("eth_accounts failed", zap.Error(err))
		return
	}
	if len(accounts) > 0 {
		c.applyAccounts(accounts)
	}
}

// ---------------------------------------------------------------------------
// Notifications
// ---------------------------------------------------------------------------

func (c *Controller) onConnect(n provider.Notification) {
	c.opts.Metrics.Notification(string(provider.EventConnect))
	if c.checkChain(n.ChainID) {
		c.restoreSession(c.ctx)
	}
}

func (c *Controller) onAccountsChanged(n provider.Notification) {
	c.opts.Metrics.Notification(string(provider.EventAccountsChanged))
	c.applyAccounts(n.Accounts)
}

func (c *Controller) applyAccounts(accounts []string) {
	c.mu.Lock()
	c.accountsGen++
	gen := c.accountsGen
	c.mu.Unlock()

	if len(accounts) == 0 {
		c.mu.Lock()
		old := c.minter
		c.minter = nil
		// Busy is left alone: it belongs to the running intent, which clears it.
		c.state.ProviderBound = false
		c.state.Account = ""
		c.state.IsAdmin = false
		c.state.clearError()
		c.mu.Unlock()
		c.notify()
		if old != nil {
			old.Close()
		}
		c.log.Info("wallet disconnected")
		return
	}

	if c.State().ChainMatch == ChainMismatched {
		c.update(func(s *State) { s.setError(ErrorWrongNetwork, MsgWrongNetwork) })
		return
	}

	account, err := ChecksumAddress(accounts[0])
	if err != nil {
		c.log.Warn("ignoring malformed account", zap.String("account", accounts[0]))
		return
	}

	var m Minter
	if c.opts.Contracts != nil {
		m, err = c.opts.Contracts.WithSigner(c.ctx, account)
		if err != nil {
			c.log.Error("binding signer failed", zap.String("account", account), zap.Error(err))
			m = nil
		}
	}
	admin := c.isAdmin(account)

	// A newer accountsChanged may have arrived while the signer was bound.
	c.mu.Lock()
	switch {
	case gen != c.accountsGen || c.closed:
		c.mu.Unlock()
		if m != nil {
			m.Close()
		}
		c.log.Debug("dropping superseded account", zap.String("account", account))
		return
	case c.state.ChainMatch == ChainMismatched:
		c.state.setError(ErrorWrongNetwork, MsgWrongNetwork)
		c.mu.Unlock()
		c.notify()
		if m != nil {
			m.Close()
		}
		return
	}
	old := c.minter
	c.minter = m
	c.state.ProviderBound = true
	c.state.Account = account
	c.state.IsAdmin = admin
	c.state.clearError()
	c.mu.Unlock()
	c.notify()

	if old != nil && old != m {
		old.Close()
	}
	c.log.Info("account adopted", zap.String("account", account), zap.Bool("admin", admin))
}

func (c *Controller) isAdmin(account string) bool {
	for _, a := range c.opts.Admins {
		if strings.EqualFold(a, account) {
			return true
		}
	}
	return false
}

// onChainChanged invalidates the whole session: in-flight calls are aborted
// and the host is asked to rebuild.
func (c *Controller) onChainChanged(n provider.Notification) {
	c.opts.Metrics.Notification(string(provider.EventChainChanged))
	c.log.Info("chain changed, reloading", zap.Stringer("chain_id", n.ChainID))
	c.update(func(s *State) { s.Reloading = true })
	c.cancel()
	c.reload.Do(func() {
		if c.opts.OnReload != nil {
			c.opts.OnReload()
		}
	})
}

func (c *Controller) onDisconnect(n provider.Notification) {
	c.opts.Metrics.Notification(string(provider.EventDisconnect))
	c.log.Error("disconnected from network", zap.Error(n.Err))
	c.update(func(s *State) { s.setError(ErrorDisconnected, MsgDisconnected) })
}

// ---------------------------------------------------------------------------
// Intents
// ---------------------------------------------------------------------------

// begin claims the busy flag. A refused intent leaves state untouched.
func (c *Controller) begin(intent string) error {
	c.mu.Lock()
	var err error
	switch {
	case c.closed:
		err = ErrClosed
	case c.state.Reloading:
		err = ErrReloading
	case c.state.Busy:
		err = ErrBusy
	default:
		c.state.Busy = true
	}
	c.mu.Unlock()

	if err != nil {
		c.opts.Metrics.Intent(intent, outcome(err))
		return err
	}
	c.notify()
	return nil
}

// end releases the busy flag on every exit path, converting a panic in the
// intent body into an error. It must be deferred directly.
func (c *Controller) end(intent string, errp *error) {
	if r := recover(); r != nil {
		c.log.Error("intent panicked", zap.String("intent", intent), zap.Any("panic", r), zap.Stack("stack"))
		*errp = fmt.Errorf("%w: %v", ErrPanic, r)
		c.opts.Metrics.Intent(intent, metrics.OutcomePanic)
	} else {
		c.opts.Metrics.Intent(intent, outcome(*errp))
	}
	c.update(func(s *State) { s.Busy = false })
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, ErrWalletAbsent):
		return metrics.OutcomeAbsent
	case errors.Is(err, ErrBusy):
		return metrics.OutcomeBusy
	default:
		return metrics.OutcomeError
	}
}

// ConnectWallet asks the wallet for account access. The account itself is
// only ever adopted from the accountsChanged notification the wallet emits.
func (c *Controller) ConnectWallet(ctx context.Context) (err error) {
	if err := c.begin("connect"); err != nil {
		return err
	}
	defer c.end("connect", &err)

	if !c.present {
		c.update(func(s *State) { s.setError(ErrorWalletAbsent, MsgWalletAbsent) })
		return ErrWalletAbsent
	}

	cctx, cancel := c.callCtx(ctx, c.opts.ConnectTimeout)
	defer cancel()
	accounts, err := provider.RequestAccounts(cctx, c.opts.Provider)
	if err != nil {
		c.log.Warn("account request failed", zap.Error(err))
		return fmt.Errorf("requesting accounts: %w", err)
	}

	// Covers wallets that answer before (or without) emitting accountsChanged.
	if len(accounts) > 0 {
		c.update(func(s *State) {
			if s.ChainMatch == ChainMismatched {
				s.setError(ErrorWrongNetwork, MsgWrongNetwork)
			}
		})
	}
	return nil
}

// Mint mints one token with the signer-bound contract.
func (c *Controller) Mint(ctx context.Context) (err error) {
	if err := c.begin("mint"); err != nil {
		return err
	}
	defer c.end("mint", &err)

	c.mu.Lock()
	m := c.minter
	c.mu.Unlock()
	if m == nil {
		c.log.Error("mint requested without a signer")
		return ErrNoSigner
	}

	cctx, cancel := c.callCtx(ctx, c.opts.MintTimeout)
	defer cancel()
	tx, err := m.MintPublic(cctx)
	if err != nil {
		r := contract.Classify(err)
		c.opts.Metrics.MintRevert(r.Reason)
		if msg, ok := friendlyReverts[r.Reason]; ok {
			c.update(func(s *State) { s.setError(ErrorMintRejected, msg) })
		}
		c.log.Warn("mint failed",
			zap.String("reason", r.Reason),
			zap.Int("code", r.Code),
			zap.String("message", r.Message),
			zap.Error(err))
		return fmt.Errorf("minting: %w", err)
	}

	c.update(func(s *State) {
		if s.SupplyKnown {
			s.MintedSupply++
		}
		if tx != nil {
			s.LastTx = tx.Hash().Hex()
		}
	})
	c.log.Info("minted", zap.String("tx", c.State().LastTx))
	return nil
}

// DismissError clears the banner.
func (c *Controller) DismissError() {
	c.update(func(s *State) { s.clearError() })
}

// Close removes every subscription, aborts in-flight calls and releases the
// signer-bound contract. It is safe to call more than once.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	subs := c.subs
	c.subs = nil
	m := c.minter
	c.minter = nil
	c.views = make(map[uint64]func(State))
	c.mu.Unlock()

	for _, s := range subs {
		s.Unsubscribe()
	}
	c.cancel()
	if m != nil {
		m.Close()
	}
	c.log.Debug("controller closed")
}
