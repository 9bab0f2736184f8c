package connect

import (
	"fmt"

	"github.com/Mohsinsiddi/w3mint/internal/chain"
)

// ChainMatch is the outcome of the last chain check.
type ChainMatch int

const (
	ChainUnknown ChainMatch = iota // no chain id observed yet
	ChainMatched
	ChainMismatched
)

func (m ChainMatch) String() string {
	switch m {
	case ChainMatched:
		return "matched"
	case ChainMismatched:
		return "mismatched"
	default:
		return "unknown"
	}
}

// ErrorKind classifies the banner currently shown.
type ErrorKind int

const (
	ErrorNone ErrorKind = iota
	ErrorWalletAbsent
	ErrorWrongNetwork
	ErrorDisconnected
	ErrorMintRejected
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorWalletAbsent:
		return "wallet_absent"
	case ErrorWrongNetwork:
		return "wrong_network"
	case ErrorDisconnected:
		return "disconnected"
	case ErrorMintRejected:
		return "mint_rejected"
	default:
		return "none"
	}
}

// State is a snapshot of the connection. The controller is its only writer.
type State struct {
	WalletPresent bool
	ProviderBound bool
	Account       string // EIP-55 checksummed, "" when disconnected
	IsAdmin       bool
	ChainID       chain.ID // last observed chain id
	ChainMatch    ChainMatch
	Busy          bool
	ErrorKind     ErrorKind
	ErrorMessage  string
	MintedSupply  uint64
	SupplyKnown   bool
	SupplyCap     int    // display denominator
	Network       string // label of the expected network
	LastTx        string // hash of the last accepted mint
	Reloading     bool   // a chain switch invalidated this session
}

func (s *State) setError(kind ErrorKind, msg string) {
	s.ErrorKind = kind
	s.ErrorMessage = msg
}

func (s *State) clearError() {
	s.ErrorKind = ErrorNone
	s.ErrorMessage = ""
}

// Gating is what the view may show and press.
type Gating struct {
	ShowMint     bool // mint affordance instead of connect
	Disabled     bool
	NetworkLabel string
	AccountLabel string
	SupplyLabel  string
	Button       string
}

// Gating derives the view flags from s.
func (s State) Gating() Gating {
	g := Gating{
		ShowMint: s.WalletPresent && s.ChainMatch == ChainMatched && s.Account != "",
		Disabled: s.Busy || s.ErrorMessage != "",
		Button:   "CONNECT WALLET",
	}
	if g.ShowMint {
		g.NetworkLabel = s.Network
		g.Button = "MINT"
	}
	if s.Account != "" {
		g.AccountLabel = DisplayAccount(s.Account)
	}
	supply := "?"
	if s.SupplyKnown {
		supply = fmt.Sprint(s.MintedSupply)
	}
	g.SupplyLabel = fmt.Sprintf("%s/%d", supply, s.SupplyCap)
	return g
}
