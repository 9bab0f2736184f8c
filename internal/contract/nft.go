// Package contract binds the mint contract through go-ethereum's abi/bind.
package contract

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
)

var (
	// ErrReadOnly is returned by state-changing calls on a handle without a signer.
	ErrReadOnly = errors.New("contract handle has no signer")
	// ErrTxReverted is returned when a mined transaction has a failed receipt.
	ErrTxReverted = errors.New("transaction reverted")
	// ErrInvalidAddress is returned for a malformed contract address.
	ErrInvalidAddress = errors.New("invalid contract address")
)

// NFT is a handle on the deployed mint contract.
type NFT struct {
	address   common.Address
	abi       abi.ABI
	backend   bind.ContractBackend
	bound     *bind.BoundContract
	opts      *bind.TransactOpts
	waitMined bool
	closer    func()
}

// NewNFT binds the mint contract at address. opts may be nil for a read-only
// handle. With waitMined, MintPublic waits for the receipt.
func NewNFT(address common.Address, backend bind.ContractBackend, opts *bind.TransactOpts, waitMined bool) *NFT {
	b, _ := GetBuiltin(MyNFTID)
	return &NFT{
		address:   address,
		abi:       b.ABI,
		backend:   backend,
		bound:     bind.NewBoundContract(address, b.ABI, backend, backend, backend),
		opts:      opts,
		waitMined: waitMined,
	}
}

// Address returns the contract address.
func (n *NFT) Address() common.Address { return n.address }

// ReadOnly reports whether the handle lacks a signer.
func (n *NFT) ReadOnly() bool { return n.opts == nil }

// From returns the signing account, or the zero address when read-only.
func (n *NFT) From() common.Address {
	if n.opts == nil {
		return common.Address{}
	}
	return n.opts.From
}

// TotalSupply returns the number of minted tokens.
func (n *NFT) TotalSupply(ctx context.Context) (*big.Int, error) {
	var out []interface{}
	if err := n.bound.Call(&bind.CallOpts{Context: ctx}, &out, "totalSupply"); err != nil {
		return nil, fmt.Errorf("totalSupply: %w", err)
	}
	if len(out) != 1 {
		return nil, fmt.Errorf("totalSupply: unexpected %d outputs", len(out))
	}
	supply, ok := out[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("totalSupply: unexpected output type %T", out[0])
	}
	return supply, nil
}

// MintPublic mints one token to the signing account. Gas is estimated
// up front so a revert surfaces with its JSON-RPC error data intact.
func (n *NFT) MintPublic(ctx context.Context) (*types.Transaction, error) {
	if n.opts == nil {
		return nil, ErrReadOnly
	}
	input, err := n.abi.Pack("mintPublic")
	if err != nil {
		return nil, fmt.Errorf("packing mintPublic: %w", err)
	}

	opts := *n.opts
	opts.Context = ctx
	if opts.GasLimit == 0 {
		gas, err := n.backend.EstimateGas(ctx, ethereum.CallMsg{
			From:  opts.From,
			To:    &n.address,
			Value: opts.Value,
			Data:  input,
		})
		if err != nil {
			return nil, fmt.Errorf("mintPublic: %w", err)
		}
		opts.GasLimit = gas
	}

	tx, err := n.bound.RawTransact(&opts, input)
	if err != nil {
		return nil, fmt.Errorf("mintPublic: %w", err)
	}
	if !n.waitMined {
		return tx, nil
	}

	db, ok := n.backend.(bind.DeployBackend)
	if !ok {
		return tx, nil
	}
	receipt, err := bind.WaitMined(ctx, db, tx)
	if err != nil {
		return tx, fmt.Errorf("waiting for %s: %w", tx.Hash().Hex(), err)
	}
	if receipt.Status == types.ReceiptStatusFailed {
		return tx, fmt.Errorf("%w: %s", ErrTxReverted, tx.Hash().Hex())
	}
	return tx, nil
}

// Close releases a connection the handle owns. Handles bound to a shared
// backend own nothing.
func (n *NFT) Close() {
	if n.closer != nil {
		n.closer()
		n.closer = nil
	}
}

// SignerSource yields a node connection and signing options for an account.
type SignerSource interface {
	Backend() bind.ContractBackend
	Transactor(ctx context.Context, account string) (*bind.TransactOpts, error)
}

// Factory builds NFT handles for the fixed contract address.
type Factory struct {
	address   common.Address
	rpcURL    string
	waitMined bool
}

// NewFactory validates the address and returns a Factory. rpcURL is the
// default node used for read-only handles.
func NewFactory(address, rpcURL string, waitMined bool) (*Factory, error) {
	if !common.IsHexAddress(address) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAddress, address)
	}
	return &Factory{address: common.HexToAddress(address), rpcURL: rpcURL, waitMined: waitMined}, nil
}

// Address returns the contract address.
func (f *Factory) Address() common.Address { return f.address }

// ReadOnly dials the default node and returns a handle without a signer.
// The caller must Close it.
func (f *Factory) ReadOnly(ctx context.Context) (*NFT, error) {
	client, err := ethclient.DialContext(ctx, f.rpcURL)
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", f.rpcURL, err)
	}
	n := NewNFT(f.address, client, nil, false)
	n.closer = client.Close
	return n, nil
}

// WithSigner returns a handle that signs as account through src.
func (f *Factory) WithSigner(ctx context.Context, src SignerSource, account string) (*NFT, error) {
	backend := src.Backend()
	if backend == nil {
		return nil, fmt.Errorf("signer source has no node connection")
	}
	opts, err := src.Transactor(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("transactor for %s: %w", account, err)
	}
	return NewNFT(f.address, backend, opts, f.waitMined), nil
}
