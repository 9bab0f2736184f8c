package connect_test

import (
	"context"
	"encoding/json"
	"math/big"
	"sync"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/Mohsinsiddi/w3mint/internal/connect"
	"github.com/Mohsinsiddi/w3mint/internal/provider"
)

// fakeWallet is a scriptable provider.
type fakeWallet struct {
	provider.Emitter

	name      string
	connected bool

	mu            sync.Mutex
	chainID       string
	permitted     []string
	grant         []string
	requestErr    error
	emitOnRequest bool
	block         chan struct{}
	calls         []string
}

func newFakeWallet(chainID string) *fakeWallet {
	return &fakeWallet{name: "w3cli", connected: true, chainID: chainID, emitOnRequest: true}
}

func (w *fakeWallet) Info() provider.Info { return provider.Info{Name: w.name} }
func (w *fakeWallet) IsConnected() bool   { return w.connected }

func (w *fakeWallet) Request(ctx context.Context, method string, _ ...any) (json.RawMessage, error) {
	w.mu.Lock()
	w.calls = append(w.calls, method)
	chainID, permitted, block := w.chainID, w.permitted, w.block
	w.mu.Unlock()

	switch method {
	case "eth_chainId":
		return json.Marshal(chainID)
	case "eth_accounts":
		return json.Marshal(append([]string{}, permitted...))
	case "eth_requestAccounts":
		if block != nil {
			select {
			case <-block:
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
		if w.requestErr != nil {
			return nil, w.requestErr
		}
		w.mu.Lock()
		w.permitted = w.grant
		w.mu.Unlock()
		if w.emitOnRequest {
			w.Emit(provider.EventAccountsChanged, provider.Notification{Accounts: w.grant})
		}
		return json.Marshal(w.grant)
	}
	return nil, provider.ErrUnsupported
}

func (w *fakeWallet) methods() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.calls...)
}

func (w *fakeWallet) listeners() int {
	n := 0
	for _, ev := range provider.Events {
		n += w.ListenerCount(ev)
	}
	return n
}

// fakeMinter is a scriptable contract handle.
type fakeMinter struct {
	supply    int64
	supplyErr error
	mint      func(ctx context.Context) (*types.Transaction, error)
	closed    atomic.Int32
}

func (m *fakeMinter) TotalSupply(context.Context) (*big.Int, error) {
	if m.supplyErr != nil {
		return nil, m.supplyErr
	}
	return big.NewInt(m.supply), nil
}

func (m *fakeMinter) MintPublic(ctx context.Context) (*types.Transaction, error) {
	if m.mint == nil {
		return mintedTx(), nil
	}
	return m.mint(ctx)
}

func (m *fakeMinter) Close() { m.closed.Add(1) }

func mintedTx() *types.Transaction {
	return types.NewTransaction(1, common.HexToAddress(nftAddress), big.NewInt(0), 100000, big.NewInt(1), nil)
}

type fakeContracts struct {
	readOnly    *fakeMinter
	readOnlyErr error
	signer      *fakeMinter
	signerErr   error
	// When hold is set, WithSigner reports on bound and waits for hold
	// to close, returning a fresh minter per call.
	hold  chan struct{}
	bound chan string

	mu     sync.Mutex
	signed []string
	minted []*fakeMinter
}

func (f *fakeContracts) ReadOnly(context.Context) (connect.Minter, error) {
	if f.readOnlyErr != nil {
		return nil, f.readOnlyErr
	}
	if f.readOnly == nil {
		return &fakeMinter{}, nil
	}
	return f.readOnly, nil
}

func (f *fakeContracts) WithSigner(_ context.Context, account string) (connect.Minter, error) {
	f.mu.Lock()
	f.signed = append(f.signed, account)
	f.mu.Unlock()
	if f.hold != nil {
		f.bound <- account
		<-f.hold
		m := &fakeMinter{}
		f.mu.Lock()
		f.minted = append(f.minted, m)
		f.mu.Unlock()
		return m, nil
	}
	if f.signerErr != nil {
		return nil, f.signerErr
	}
	if f.signer == nil {
		f.signer = &fakeMinter{}
	}
	return f.signer, nil
}

// jsonErr mimics a JSON-RPC error response.
type jsonErr struct {
	code int
	msg  string
	data interface{}
}

func (e jsonErr) Error() string          { return e.msg }
func (e jsonErr) ErrorCode() int         { return e.code }
func (e jsonErr) ErrorData() interface{} { return e.data }
