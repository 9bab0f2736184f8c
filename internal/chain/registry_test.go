package chain_test

import (
	"testing"

	"github.com/Mohsinsiddi/w3mint/internal/chain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryGetByName(t *testing.T) {
	registry := chain.NewRegistry()

	tests := []struct {
		name    string
		chainID uint64
	}{
		{"localhost", 1337},
		{"hardhat", 31337},
		{"ethereum", 1},
		{"sepolia", 11155111},
		{"base", 8453},
		{"polygon", 137},
		{"arbitrum", 42161},
		{"optimism", 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := registry.GetByName(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.name, c.Name)
			assert.Equal(t, tt.chainID, c.ChainID)
		})
	}
}

func TestRegistryGetByNameCaseInsensitive(t *testing.T) {
	c, err := chain.NewRegistry().GetByName("LocalHost")
	require.NoError(t, err)
	assert.Equal(t, "localhost", c.Name)
}

func TestRegistryGetUnknownChain(t *testing.T) {
	registry := chain.NewRegistry()
	_, err := registry.GetByName("unknownchain")
	assert.ErrorIs(t, err, chain.ErrChainNotFound)
}

func TestRegistryGetByID(t *testing.T) {
	c, err := chain.NewRegistry().GetByID(chain.ID("0x539"))
	require.NoError(t, err)
	assert.Equal(t, "Localhost 8545", c.DisplayName)
}

func TestRegistryLabelFallsBackToID(t *testing.T) {
	registry := chain.NewRegistry()
	assert.Equal(t, "Localhost 8545", registry.Label("0x539"))
	assert.Equal(t, "0xdead", registry.Label("0xdead"))
}

func TestRegistryIDsAreUnique(t *testing.T) {
	seen := map[chain.ID]string{}
	for _, c := range chain.NewRegistry().All() {
		if prev, dup := seen[c.ID()]; dup {
			t.Fatalf("chain id %s used by both %s and %s", c.ID(), prev, c.Name)
		}
		seen[c.ID()] = c.Name
	}
}
