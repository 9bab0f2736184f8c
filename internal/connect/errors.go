package connect

import (
	"errors"

	"github.com/Mohsinsiddi/w3mint/internal/contract"
)

var (
	// ErrBusy is returned when an intent arrives while another is in flight.
	// The request is dropped, not queued.
	ErrBusy         = errors.New("another action is in progress")
	ErrClosed       = errors.New("controller closed")
	ErrWalletAbsent = errors.New("no wallet available")
	ErrNoSigner     = errors.New("no signer-bound contract; connect a wallet first")
	ErrPanic        = errors.New("intent panicked")
	ErrReloading    = errors.New("chain changed, session must be rebuilt")
	ErrInitialised  = errors.New("controller already initialised")
)

// User-facing banners.
const (
	MsgWalletAbsent  = "Please add a wallet with `w3mint wallet add`, then restart!"
	MsgWrongNetwork  = "Please connect to the correct network!"
	MsgDisconnected  = "You are disconnected from the network! Please check your node, then retry."
	MsgMintLimit     = "You have reached your minting limit!"
	MsgSoldOut       = "All public tokens have been minted!"
	MsgNoPublicMints = "There are currently no more public tokens to mint!"
)

// friendlyReverts maps the public-mint revert reasons to banners. Other
// reasons are only logged.
var friendlyReverts = map[string]string{
	contract.AddressReachedPublicMintingLimit: MsgMintLimit,
	contract.MaxNumberPublicTokensMinted:      MsgSoldOut,
	contract.PublicTokensExceedsTmpMax:        MsgNoPublicMints,
}
