package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/ethclient"
	gethrpc "github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"

	"github.com/Mohsinsiddi/w3mint/internal/chain"
	"github.com/Mohsinsiddi/w3mint/internal/wallet"
)

// DefaultName is how the local wallet identifies itself.
const DefaultName = "w3cli"

// ApprovalRequest describes an account-access prompt.
type ApprovalRequest struct {
	Wallet   string
	Accounts []string
	ChainID  chain.ID
}

// Approver decides account-access requests on behalf of the user. It may
// block until the user answers or ctx ends.
type Approver interface {
	Approve(ctx context.Context, req ApprovalRequest) (bool, error)
}

// ApproverFunc adapts a function to Approver.
type ApproverFunc func(ctx context.Context, req ApprovalRequest) (bool, error)

func (f ApproverFunc) Approve(ctx context.Context, req ApprovalRequest) (bool, error) {
	return f(ctx, req)
}

// LocalOptions configures a Local provider.
type LocalOptions struct {
	Name         string
	URL          string
	Wallets      *wallet.Manager
	Approver     Approver
	PollInterval time.Duration
	CallTimeout  time.Duration
	Logger       *zap.Logger
}

// Local is a wallet provider backed by the keychain wallets and a JSON-RPC node.
type Local struct {
	opts    LocalOptions
	emitter Emitter
	log     *zap.Logger

	mu        sync.Mutex
	rpc       *gethrpc.Client
	eth       *ethclient.Client
	connected bool
	chainID   chain.ID
	permitted []string
	cancel    context.CancelFunc
	closed    bool

	wg sync.WaitGroup
}

var _ Provider = (*Local)(nil)

// NewLocal creates a Local provider. Call Start before use.
func NewLocal(opts LocalOptions) *Local {
	if opts.Name == "" {
		opts.Name = DefaultName
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = 2 * time.Second
	}
	if opts.CallTimeout <= 0 {
		opts.CallTimeout = 10 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Local{opts: opts, log: opts.Logger.Named("provider")}
}

// Start dials the node, reads the chain id and begins watching for chain
// switches and outages. A node that is down at start is not an error: the
// provider stays disconnected and emits connect once the node answers.
func (l *Local) Start(ctx context.Context) error {
	client, err := gethrpc.DialContext(ctx, l.opts.URL)
	if err != nil {
		return fmt.Errorf("dialing %s: %w", l.opts.URL, err)
	}

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		client.Close()
		return fmt.Errorf("provider closed")
	}
	l.rpc = client
	l.eth = ethclient.NewClient(client)
	monCtx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel
	l.mu.Unlock()

	l.poll(ctx)

	l.wg.Add(1)
	go l.monitor(monCtx)
	return nil
}

func (l *Local) monitor(ctx context.Context) {
	defer l.wg.Done()
	t := time.NewTicker(l.opts.PollInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			l.poll(ctx)
		}
	}
}

// poll reads the node's chain id and emits whatever changed since last time.
func (l *Local) poll(ctx context.Context) {
	cctx, cancel := context.WithTimeout(ctx, l.opts.CallTimeout)
	id, err := l.nodeChainID(cctx)
	cancel()
	if ctx.Err() != nil {
		return
	}

	l.mu.Lock()
	was, prev := l.connected, l.chainID
	if err != nil {
		l.connected = false
		l.mu.Unlock()
		if was {
			l.log.Warn("node unreachable", zap.Error(err))
			l.emitter.Emit(EventDisconnect, Notification{Err: newRequestError(CodeDisconnected, "%v", err)})
		}
		return
	}
	l.connected, l.chainID = true, id
	l.mu.Unlock()

	if !was {
		l.log.Debug("connected", zap.Stringer("chain_id", id))
		l.emitter.Emit(EventConnect, Notification{ChainID: id})
	}
	if prev != "" && prev != id {
		l.log.Info("chain changed", zap.Stringer("from", prev), zap.Stringer("to", id))
		l.emitter.Emit(EventChainChanged, Notification{ChainID: id})
	}
}

func (l *Local) nodeChainID(ctx context.Context) (chain.ID, error) {
	client := l.client()
	if client == nil {
		return "", ErrDisconnected
	}
	var raw json.RawMessage
	if err := client.CallContext(ctx, &raw, "eth_chainId"); err != nil {
		return "", err
	}
	return DecodeChainID(raw)
}

func (l *Local) client() *gethrpc.Client {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rpc
}

// Info implements Provider.
func (l *Local) Info() Info {
	return Info{Name: l.opts.Name, Version: "1"}
}

// IsConnected implements Provider.
func (l *Local) IsConnected() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.connected
}

// On implements Provider.
func (l *Local) On(event Event, h Handler) *Subscription {
	return l.emitter.On(event, h)
}

// Request implements Provider. Wallet methods are answered locally; anything
// else goes to the node unchanged.
func (l *Local) Request(ctx context.Context, method string, params ...any) (json.RawMessage, error) {
	l.log.Debug("request", zap.String("method", method))
	switch method {
	case "eth_chainId":
		id, err := l.nodeChainID(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(id.String())
	case "eth_accounts":
		return json.Marshal(l.Permitted())
	case "eth_requestAccounts":
		accounts, err := l.requestAccounts(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(accounts)
	case "wallet_revokePermissions":
		l.Revoke()
		return json.RawMessage("null"), nil
	case "eth_sendTransaction", "eth_sign", "personal_sign", "eth_signTypedData_v4":
		return nil, newRequestError(CodeUnsupported, "%s is not supported, use a contract transactor", method)
	}

	client := l.client()
	if client == nil {
		return nil, ErrDisconnected
	}
	var raw json.RawMessage
	if err := client.CallContext(ctx, &raw, method, params...); err != nil {
		return nil, err
	}
	return raw, nil
}

// Permitted returns the accounts the user has granted access to.
func (l *Local) Permitted() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.permitted))
	copy(out, l.permitted)
	return out
}

func (l *Local) requestAccounts(ctx context.Context) ([]string, error) {
	if granted := l.Permitted(); len(granted) > 0 {
		return granted, nil
	}
	if l.opts.Wallets == nil {
		return nil, newRequestError(CodeUnauthorized, "no wallet store")
	}

	signing := l.opts.Wallets.Signing()
	if len(signing) == 0 {
		return nil, newRequestError(CodeUnauthorized, "no signing wallet, add one with `w3mint wallet add`")
	}
	accounts := make([]string, len(signing))
	for i, w := range signing {
		accounts[i] = strings.ToLower(w.Address)
	}

	if l.opts.Approver == nil {
		return nil, ErrUserRejected
	}
	l.mu.Lock()
	id := l.chainID
	l.mu.Unlock()
	ok, err := l.opts.Approver.Approve(ctx, ApprovalRequest{
		Wallet:   signing[0].Name,
		Accounts: accounts,
		ChainID:  id,
	})
	if err != nil {
		return nil, fmt.Errorf("approval: %w", err)
	}
	if !ok {
		return nil, ErrUserRejected
	}

	l.mu.Lock()
	l.permitted = accounts
	l.mu.Unlock()
	l.log.Info("accounts permitted", zap.Strings("accounts", accounts))
	l.emitter.Emit(EventAccountsChanged, Notification{Accounts: append([]string(nil), accounts...)})
	return accounts, nil
}

// Revoke withdraws account access. Listeners see an empty accountsChanged.
func (l *Local) Revoke() {
	l.mu.Lock()
	had := len(l.permitted) > 0
	l.permitted = nil
	l.mu.Unlock()
	if had {
		l.log.Info("accounts revoked")
		l.emitter.Emit(EventAccountsChanged, Notification{Accounts: []string{}})
	}
}

// Backend returns the node connection for contract calls, or nil before Start.
func (l *Local) Backend() bind.ContractBackend {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.eth == nil {
		return nil
	}
	return l.eth
}

// Transactor returns signing options for a permitted account on the current chain.
func (l *Local) Transactor(ctx context.Context, account string) (*bind.TransactOpts, error) {
	l.mu.Lock()
	permitted := false
	for _, a := range l.permitted {
		if strings.EqualFold(a, account) {
			permitted = true
			break
		}
	}
	id := l.chainID
	l.mu.Unlock()

	if !permitted {
		return nil, newRequestError(CodeUnauthorized, "account %s not permitted", account)
	}
	if id == "" {
		return nil, ErrDisconnected
	}

	for _, w := range l.opts.Wallets.Signing() {
		if !strings.EqualFold(w.Address, account) {
			continue
		}
		s, err := l.opts.Wallets.SignerFor(w)
		if err != nil {
			return nil, err
		}
		opts, err := s.Transactor(id.Big())
		if err != nil {
			return nil, err
		}
		opts.Context = ctx
		return opts, nil
	}
	return nil, fmt.Errorf("%w: %s", wallet.ErrWalletNotFound, account)
}

// Close stops the monitor and closes the node connection.
func (l *Local) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	cancel := l.cancel
	l.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	l.wg.Wait()

	l.mu.Lock()
	if l.rpc != nil {
		l.rpc.Close()
	}
	l.connected = false
	l.mu.Unlock()
}
