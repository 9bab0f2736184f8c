// Package provider models the wallet provider the mint client talks to: a
// capability probe, a generic request call and four change notifications.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/Mohsinsiddi/w3mint/internal/chain"
)

// Event names a provider notification.
type Event string

const (
	EventConnect         Event = "connect"
	EventAccountsChanged Event = "accountsChanged"
	EventChainChanged    Event = "chainChanged"
	EventDisconnect      Event = "disconnect"
)

// Events lists every notification a provider can emit.
var Events = []Event{EventConnect, EventAccountsChanged, EventChainChanged, EventDisconnect}

// Notification is the payload of an event. Only the fields relevant to the
// event are set: ChainID for connect/chainChanged, Accounts for
// accountsChanged, Err for disconnect.
type Notification struct {
	ChainID  chain.ID
	Accounts []string
	Err      error
}

// Handler receives notifications.
type Handler func(Notification)

// Info is what a provider says about itself.
type Info struct {
	Name    string
	Version string
}

// Provider is a wallet provider.
type Provider interface {
	Info() Info
	IsConnected() bool
	Request(ctx context.Context, method string, params ...any) (json.RawMessage, error)
	On(event Event, h Handler) *Subscription
}

// Detect reports whether p exists and identifies itself as name.
func Detect(p Provider, name string) bool {
	return p != nil && p.Info().Name == name
}

// ChainID asks p for its active chain id.
func ChainID(ctx context.Context, p Provider) (chain.ID, error) {
	raw, err := p.Request(ctx, "eth_chainId")
	if err != nil {
		return "", err
	}
	return DecodeChainID(raw)
}

// Accounts returns the accounts p has already permitted, without prompting.
func Accounts(ctx context.Context, p Provider) ([]string, error) {
	return requestAddrs(ctx, p, "eth_accounts")
}

// RequestAccounts asks p for account access.
func RequestAccounts(ctx context.Context, p Provider) ([]string, error) {
	return requestAddrs(ctx, p, "eth_requestAccounts")
}

func requestAddrs(ctx context.Context, p Provider, method string) ([]string, error) {
	raw, err := p.Request(ctx, method)
	if err != nil {
		return nil, err
	}
	var accounts []string
	if err := json.Unmarshal(raw, &accounts); err != nil {
		return nil, fmt.Errorf("decoding %s result: %w", method, err)
	}
	return accounts, nil
}

// DecodeChainID decodes a chain id result, which wallets deliver either as a
// hex string or as a JSON number.
func DecodeChainID(raw json.RawMessage) (chain.ID, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return "", fmt.Errorf("decoding chain id: %w", err)
	}
	return chain.ParseID(v)
}

// ---------------------------------------------------------------------------
// Subscriptions
// ---------------------------------------------------------------------------

// Subscription is a registered listener. Unsubscribe removes exactly that
// listener and may be called any number of times.
type Subscription struct {
	once   sync.Once
	remove func()
}

// Unsubscribe removes the listener.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.remove == nil {
		return
	}
	s.once.Do(s.remove)
}

type listener struct {
	id uint64
	h  Handler
}

// Emitter keeps listeners per event. The zero value is ready to use.
type Emitter struct {
	mu        sync.Mutex
	nextID    uint64
	listeners map[Event][]listener
}

// On registers h for event.
func (e *Emitter) On(event Event, h Handler) *Subscription {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.listeners == nil {
		e.listeners = make(map[Event][]listener)
	}
	e.nextID++
	id := e.nextID
	e.listeners[event] = append(e.listeners[event], listener{id: id, h: h})
	return &Subscription{remove: func() { e.off(event, id) }}
}

func (e *Emitter) off(event Event, id uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	ls := e.listeners[event]
	for i, l := range ls {
		if l.id == id {
			e.listeners[event] = append(ls[:i:i], ls[i+1:]...)
			return
		}
	}
}

// Emit calls the listeners of event in registration order on the calling
// goroutine. Listeners added or removed during delivery take effect on the
// next Emit.
func (e *Emitter) Emit(event Event, n Notification) {
	e.mu.Lock()
	snapshot := append([]listener(nil), e.listeners[event]...)
	e.mu.Unlock()
	for _, l := range snapshot {
		l.h(n)
	}
}

// ListenerCount returns the number of listeners registered for event.
func (e *Emitter) ListenerCount(event Event) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.listeners[event])
}
