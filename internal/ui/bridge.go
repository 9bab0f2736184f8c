package ui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Mohsinsiddi/w3mint/internal/connect"
	"github.com/Mohsinsiddi/w3mint/internal/provider"
)

// StateMsg carries the latest controller snapshot.
type StateMsg struct{ State connect.State }

// ReloadMsg asks the model to rebuild its controller.
type ReloadMsg struct{}

// ApprovalMsg is a pending account-access request.
type ApprovalMsg struct {
	Req   provider.ApprovalRequest
	reply chan bool
}

// Answer replies to the request. Only the first answer counts.
func (a ApprovalMsg) Answer(ok bool) {
	select {
	case a.reply <- ok:
	default:
	}
}

type nudge struct{}

// Bridge moves events from controller and provider goroutines into the Bubble
// Tea loop. State snapshots are coalesced so a slow view only ever sees the
// newest one.
type Bridge struct {
	ch   chan tea.Msg
	done chan struct{}
	once sync.Once

	mu     sync.Mutex
	latest connect.State
	fresh  bool
}

// NewBridge creates a bridge.
func NewBridge() *Bridge {
	return &Bridge{
		ch:   make(chan tea.Msg, 16),
		done: make(chan struct{}),
	}
}

// PublishState records s; it never blocks.
func (b *Bridge) PublishState(s connect.State) {
	b.mu.Lock()
	b.latest = s
	b.fresh = true
	b.mu.Unlock()
	select {
	case b.ch <- nudge{}:
	default:
	}
}

// RequestReload queues a reload.
func (b *Bridge) RequestReload() {
	select {
	case b.ch <- ReloadMsg{}:
	case <-b.done:
	}
}

// Approve implements provider.Approver. It blocks until the user answers,
// ctx ends or the bridge is closed.
func (b *Bridge) Approve(ctx context.Context, req provider.ApprovalRequest) (bool, error) {
	msg := ApprovalMsg{Req: req, reply: make(chan bool, 1)}
	select {
	case b.ch <- msg:
	case <-ctx.Done():
		return false, ctx.Err()
	case <-b.done:
		return false, nil
	}
	select {
	case ok := <-msg.reply:
		return ok, nil
	case <-ctx.Done():
		return false, ctx.Err()
	case <-b.done:
		return false, nil
	}
}

// Wait returns a command that delivers the next bridged message. The model
// re-arms it after each one.
func (b *Bridge) Wait() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case msg := <-b.ch:
				if _, ok := msg.(nudge); !ok {
					return msg
				}
				b.mu.Lock()
				s, fresh := b.latest, b.fresh
				b.fresh = false
				b.mu.Unlock()
				if fresh {
					return StateMsg{State: s}
				}
			case <-b.done:
				return nil
			}
		}
	}
}

// Close releases anything blocked on the bridge.
func (b *Bridge) Close() {
	b.once.Do(func() { close(b.done) })
}

var _ provider.Approver = (*Bridge)(nil)
