package chain

import (
	"errors"
	"strings"
)

// ErrChainNotFound is returned when a chain is not in the registry.
var ErrChainNotFound = errors.New("chain not found")

// Chain holds display metadata for a single EVM network.
type Chain struct {
	Name           string `json:"name"`
	DisplayName    string `json:"display_name"`
	ChainID        uint64 `json:"chain_id"`
	NativeCurrency string `json:"native_currency"`
	Testnet        bool   `json:"testnet"`
	Local          bool   `json:"local"` // dev node on the user's machine
}

// ID returns the canonical chain id.
func (c *Chain) ID() ID { return FromUint64(c.ChainID) }

// Registry is the registry of known networks.
type Registry struct {
	chains []Chain
	byName map[string]*Chain
	byID   map[ID]*Chain
}

// NewRegistry creates and returns the registry of known networks.
func NewRegistry() *Registry {
	chains := allChains()
	r := &Registry{
		chains: chains,
		byName: make(map[string]*Chain, len(chains)),
		byID:   make(map[ID]*Chain, len(chains)),
	}
	for i := range r.chains {
		c := &r.chains[i]
		r.byName[c.Name] = c
		r.byID[c.ID()] = c
	}
	return r
}

// All returns every chain in the registry.
func (r *Registry) All() []Chain {
	return r.chains
}

// GetByName finds a chain by its slug name (e.g. "localhost", "sepolia").
func (r *Registry) GetByName(name string) (*Chain, error) {
	c, ok := r.byName[strings.ToLower(name)]
	if !ok {
		return nil, ErrChainNotFound
	}
	return c, nil
}

// GetByID finds a chain by its canonical id.
func (r *Registry) GetByID(id ID) (*Chain, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, ErrChainNotFound
	}
	return c, nil
}

// Label returns the display name for id, falling back to the id itself.
func (r *Registry) Label(id ID) string {
	if c, err := r.GetByID(id); err == nil {
		return c.DisplayName
	}
	return id.String()
}

// --- chain data ---

func allChains() []Chain {
	return []Chain{
		{Name: "localhost", DisplayName: "Localhost 8545", ChainID: 1337, NativeCurrency: "ETH", Testnet: true, Local: true},
		{Name: "hardhat", DisplayName: "Hardhat", ChainID: 31337, NativeCurrency: "ETH", Testnet: true, Local: true},
		{Name: "ethereum", DisplayName: "Ethereum", ChainID: 1, NativeCurrency: "ETH"},
		{Name: "sepolia", DisplayName: "Sepolia", ChainID: 11155111, NativeCurrency: "ETH", Testnet: true},
		{Name: "holesky", DisplayName: "Holesky", ChainID: 17000, NativeCurrency: "ETH", Testnet: true},
		{Name: "base", DisplayName: "Base", ChainID: 8453, NativeCurrency: "ETH"},
		{Name: "base-sepolia", DisplayName: "Base Sepolia", ChainID: 84532, NativeCurrency: "ETH", Testnet: true},
		{Name: "polygon", DisplayName: "Polygon", ChainID: 137, NativeCurrency: "POL"},
		{Name: "polygon-amoy", DisplayName: "Polygon Amoy", ChainID: 80002, NativeCurrency: "POL", Testnet: true},
		{Name: "arbitrum", DisplayName: "Arbitrum One", ChainID: 42161, NativeCurrency: "ETH"},
		{Name: "optimism", DisplayName: "OP Mainnet", ChainID: 10, NativeCurrency: "ETH"},
	}
}
