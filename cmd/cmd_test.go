package cmd

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Mohsinsiddi/w3mint/internal/chain"
	"github.com/Mohsinsiddi/w3mint/internal/config"
	"github.com/Mohsinsiddi/w3mint/internal/connect"
	"github.com/Mohsinsiddi/w3mint/internal/provider"
	"github.com/Mohsinsiddi/w3mint/internal/wallet"
)

// useTempConfig points the package globals at a fresh config dir.
func useTempConfig(t *testing.T) {
	t.Helper()
	c, err := config.Load(t.TempDir())
	require.NoError(t, err)
	prevCfg, prevLog := cfg, log
	cfg, log = c, zap.NewNop()
	t.Cleanup(func() { cfg, log = prevCfg, prevLog })
}

func pairMap(pairs [][2]string) map[string]string {
	m := make(map[string]string, len(pairs))
	for _, p := range pairs {
		m[p[0]] = p[1]
	}
	return m
}

func TestSessionPairsDisconnected(t *testing.T) {
	got := pairMap(sessionPairs(connect.State{SupplyCap: 50, Network: "Localhost"}))
	assert.Equal(t, "not installed", got["Wallet"])
	assert.Equal(t, "not connected", got["Account"])
	assert.Equal(t, "unknown (unknown)", got["Chain"])
	assert.Equal(t, "?/50", got["Minted"])
	assert.Equal(t, "CONNECT WALLET", got["Button"])
	assert.NotContains(t, got, "Error")
	assert.NotContains(t, got, "Role")
}

func TestSessionPairsMintable(t *testing.T) {
	s := connect.State{
		WalletPresent: true,
		Account:       "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
		ChainID:       "0x539",
		ChainMatch:    connect.ChainMatched,
		MintedSupply:  7,
		SupplyKnown:   true,
		SupplyCap:     50,
		Network:       "Localhost",
		IsAdmin:       true,
		LastTx:        "0xabc",
		ErrorMessage:  connect.MsgMintLimit,
	}
	got := pairMap(sessionPairs(s))
	assert.Equal(t, "installed", got["Wallet"])
	assert.Equal(t, "0xf39F...2266", got["Account"])
	assert.Equal(t, "0x539 (matched)", got["Chain"])
	assert.Equal(t, "7/50", got["Minted"])
	assert.Equal(t, "MINT", got["Button"])
	assert.Equal(t, "admin", got["Role"])
	assert.Equal(t, "0xabc", got["Last tx"])
	assert.Equal(t, connect.MsgMintLimit, got["Error"])
}

func TestWalletTableMarksDefault(t *testing.T) {
	tbl := walletTable([]*wallet.Wallet{
		{Name: "main", Address: "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", Type: wallet.TypeSigning, IsDefault: true},
		{Name: "watch", Address: "0x70997970C51812dc3A010C7d01b50e0d17dc79C8", Type: wallet.TypeWatchOnly},
	})
	assert.Equal(t, 0, tbl.Marked)
	out := tbl.Render()
	assert.Contains(t, out, "signing")
	assert.Contains(t, out, wallet.TypeWatchOnly)
	assert.NotContains(t, out, "No wallets yet")

	assert.Contains(t, walletTable(nil).Render(), "No wallets yet")
}

func TestWalletItems(t *testing.T) {
	items := walletItems([]*wallet.Wallet{{Name: "main", Address: "0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266"}})
	require.Len(t, items, 1)
	assert.Equal(t, "main", items[0].Value)
	assert.Equal(t, "0xf39F...2266", items[0].SubLabel)
}

func TestNetworkTableMarksExpected(t *testing.T) {
	reg := chain.NewRegistry()
	tbl := networkTable(reg, "0x539")
	require.GreaterOrEqual(t, tbl.Marked, 0)
	assert.Equal(t, "0x539", tbl.Rows[tbl.Marked][3])

	assert.Equal(t, -1, networkTable(reg, "0xdeadbeef").Marked)
}

func TestConfigPairsCoverEveryKey(t *testing.T) {
	useTempConfig(t)
	pairs, err := configPairs(cfg)
	require.NoError(t, err)
	require.Len(t, pairs, len(config.Keys))
	got := pairMap(pairs)
	assert.Equal(t, config.DefaultRPCURL, got["rpc_url"])
	assert.Equal(t, "-", got["network_label"])
}

func TestNetworkLabel(t *testing.T) {
	useTempConfig(t)
	assert.Equal(t, chain.NewRegistry().Label(cfg.ChainID()), networkLabel())
	cfg.NetworkLabel = "Dev node"
	assert.Equal(t, "Dev node", networkLabel())
}

func TestNewControllerWithoutWallet(t *testing.T) {
	useTempConfig(t)
	c, err := newController(nil, nil)
	require.NoError(t, err)
	defer c.Close()
	s := c.State()
	assert.False(t, s.WalletPresent)
	assert.Equal(t, cfg.MaxSupplyDisplay, s.SupplyCap)
	assert.ErrorIs(t, c.ConnectWallet(context.Background()), connect.ErrWalletAbsent)
	assert.Equal(t, connect.MsgWalletAbsent, c.State().ErrorMessage)
}

func TestNewControllerBadContract(t *testing.T) {
	useTempConfig(t)
	cfg.ContractAddress = "not-an-address"
	_, err := newController(nil, nil)
	assert.Error(t, err)
}

func TestStartProviderWithoutSigningWallet(t *testing.T) {
	useTempConfig(t)
	p, err := startProvider(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestHeadlessCheck(t *testing.T) {
	ctx, cause := context.WithCancelCause(context.Background())
	h := &headless{ctx: ctx}
	assert.NoError(t, h.check(nil))
	assert.ErrorIs(t, h.check(context.Canceled), context.Canceled)
	cause(errChainSwitched)
	assert.ErrorIs(t, h.check(nil), errChainSwitched)
	assert.ErrorIs(t, h.check(context.Canceled), errChainSwitched)
}

func TestTerminalApproverYes(t *testing.T) {
	ok, err := terminalApprover(true).Approve(context.Background(), provider.ApprovalRequest{Wallet: "main"})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRootRegistersCommands(t *testing.T) {
	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	joined := strings.Join(names, " ")
	for _, want := range []string{"supply", "status", "connect", "mint", "wallet", "network", "config"} {
		assert.Contains(t, joined, want)
	}
	for _, f := range []string{"config", "verbose", "rpc", "metrics-file"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(f), f)
	}
}
