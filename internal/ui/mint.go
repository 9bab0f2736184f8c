package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Mohsinsiddi/w3mint/internal/connect"
	"github.com/Mohsinsiddi/w3mint/internal/provider"
)

// MintOptions configures the mint screen.
type MintOptions struct {
	Title  string
	Bridge *Bridge
	// Build creates a fresh controller. onReload must be passed through to
	// connect.Options.OnReload.
	Build func(onReload func()) (*connect.Controller, error)
	// Revoke withdraws the wallet's account permission; nil hides the key.
	Revoke func()
}

type controllerMsg struct {
	ctrl *connect.Controller
	err  error
}

type initDoneMsg struct {
	gen int
	err error
}

type intentDoneMsg struct {
	gen    int
	intent string
	err    error
}

// MintModel is the single-screen mint page.
type MintModel struct {
	opts  MintOptions
	ctx   context.Context
	spin  spinner.Model
	ctrl  *connect.Controller
	unsub func()
	gen   int

	state    connect.State
	approval *ApprovalMsg
	note     string
	fatal    error
	quitting bool
}

// NewMintModel creates the model. The controller is built by Init.
func NewMintModel(opts MintOptions) MintModel {
	if opts.Title == "" {
		opts.Title = "W3MINT"
	}
	if opts.Bridge == nil {
		opts.Bridge = NewBridge()
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = StyleChain
	return MintModel{opts: opts, ctx: context.Background(), spin: sp}
}

func (m MintModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.opts.Bridge.Wait(), m.build())
}

func (m MintModel) build() tea.Cmd {
	build, reload := m.opts.Build, m.opts.Bridge.RequestReload
	return func() tea.Msg {
		c, err := build(reload)
		return controllerMsg{ctrl: c, err: err}
	}
}

func (m MintModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.key(msg.String())

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case controllerMsg:
		if msg.err != nil {
			m.fatal = msg.err
			return m, nil
		}
		m.adopt(msg.ctrl)
		c, gen, ctx := m.ctrl, m.gen, m.ctx
		return m, func() tea.Msg { return initDoneMsg{gen: gen, err: c.Init(ctx)} }

	case initDoneMsg:
		if msg.gen == m.gen && msg.err != nil {
			m.note = "wallet not reachable: " + msg.err.Error()
		}
		return m, nil

	case intentDoneMsg:
		if msg.gen == m.gen {
			m.note = intentNote(msg.intent, msg.err)
		}
		return m, nil

	case StateMsg:
		if m.ctrl != nil {
			m.state = msg.State
		}
		return m, m.opts.Bridge.Wait()

	case ReloadMsg:
		m.release()
		m.note = "network changed, reloading"
		return m, tea.Batch(m.opts.Bridge.Wait(), m.build())

	case ApprovalMsg:
		if m.approval != nil {
			m.approval.Answer(false)
		}
		m.approval = &msg
		return m, m.opts.Bridge.Wait()
	}
	return m, nil
}

func (m *MintModel) adopt(c *connect.Controller) {
	m.gen++
	m.ctrl = c
	m.unsub = c.Subscribe(m.opts.Bridge.PublishState)
	m.state = c.State()
	m.note = ""
}

// release closes the current controller and forgets its state.
func (m *MintModel) release() {
	if m.unsub != nil {
		m.unsub()
		m.unsub = nil
	}
	if m.ctrl != nil {
		m.ctrl.Close()
		m.ctrl = nil
	}
	m.state = connect.State{}
}

func (m MintModel) key(k string) (tea.Model, tea.Cmd) {
	if m.approval != nil {
		switch k {
		case "y", "Y":
			m.approval.Answer(true)
			m.approval = nil
		case "n", "N", "esc":
			m.approval.Answer(false)
			m.approval = nil
		case "q", "ctrl+c":
			m.approval.Answer(false)
			m.approval = nil
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	switch k {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "enter", " ":
		return m, m.press()
	case "d":
		if m.ctrl != nil {
			m.ctrl.DismissError()
		}
	case "x":
		if m.opts.Revoke != nil {
			m.opts.Revoke()
		}
	}
	return m, nil
}

// press runs the primary button's intent.
func (m MintModel) press() tea.Cmd {
	if m.ctrl == nil || m.state.Reloading {
		return nil
	}
	g := m.state.Gating()
	if g.Disabled {
		return nil
	}
	c, gen, ctx := m.ctrl, m.gen, m.ctx
	if g.ShowMint {
		return func() tea.Msg { return intentDoneMsg{gen: gen, intent: "mint", err: c.Mint(ctx)} }
	}
	return func() tea.Msg { return intentDoneMsg{gen: gen, intent: "connect", err: c.ConnectWallet(ctx)} }
}

func intentNote(intent string, err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, connect.ErrBusy), errors.Is(err, connect.ErrReloading):
		return ""
	case errors.Is(err, provider.ErrUserRejected):
		return "request rejected"
	case errors.Is(err, context.DeadlineExceeded):
		return intent + " timed out"
	}
	return intent + " failed"
}

func (m MintModel) View() string {
	if m.quitting {
		return ""
	}
	if m.fatal != nil {
		return Err(m.fatal.Error()) + "\n" + Hint("press q to quit") + "\n"
	}

	g := m.state.Gating()
	var sb strings.Builder

	var pills []string
	if g.NetworkLabel != "" {
		pills = append(pills, StylePill.Render(ChainName(g.NetworkLabel)))
	}
	if g.AccountLabel != "" {
		pills = append(pills, StylePill.Render(Addr(g.AccountLabel)))
	}
	if m.state.IsAdmin {
		pills = append(pills, StyleWarning.Render(" admin"))
	}
	if len(pills) > 0 {
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, pills...) + "\n")
	}

	sb.WriteString("\n" + StyleTitle.Render(m.opts.Title) + "\n")

	label := g.Button
	if m.state.Busy {
		label = m.spin.View() + " " + label
	}
	if g.Disabled || m.ctrl == nil || m.state.Reloading {
		sb.WriteString(StyleButtonDisabled.Render(label))
	} else {
		sb.WriteString(StyleButton.Render(label))
	}
	sb.WriteString("\n\n" + Val(g.SupplyLabel) + Meta(" minted") + "\n")

	if m.state.ErrorMessage != "" {
		sb.WriteString("\n" + StyleBanner.Render(m.state.ErrorMessage) + "\n")
	}
	if m.state.LastTx != "" {
		sb.WriteString(Meta("last tx ") + Addr(m.state.LastTx) + "\n")
	}
	if m.note != "" {
		sb.WriteString(Meta(m.note) + "\n")
	}

	if a := m.approval; a != nil {
		body := fmt.Sprintf("Wallet %q asks to share %s\non %s with this app.\n\n%s",
			a.Req.Wallet, Addr(strings.Join(a.Req.Accounts, ", ")), ChainName(a.Req.ChainID.String()),
			Val("y")+Meta(" allow   ")+Val("n")+Meta(" deny"))
		sb.WriteString("\n" + StyleBorder.Render(body) + "\n")
		return sb.String()
	}

	help := "enter press   d dismiss   q quit"
	if m.opts.Revoke != nil {
		help = "enter press   d dismiss   x revoke   q quit"
	}
	sb.WriteString("\n" + Meta(help) + "\n")
	return sb.String()
}

// Close releases the controller and unblocks pending prompts.
func (m MintModel) Close() {
	m.opts.Bridge.Close()
	m.release()
}

// RunMint runs the mint screen until the user quits.
func RunMint(opts MintOptions) error {
	final, err := tea.NewProgram(NewMintModel(opts), tea.WithAltScreen()).Run()
	if fm, ok := final.(MintModel); ok {
		fm.Close()
	}
	if err != nil {
		return fmt.Errorf("mint screen: %w", err)
	}
	return nil
}
