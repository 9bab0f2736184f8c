package wallet

import (
	"math/big"
	"testing"

	"github.com/99designs/keyring"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Well-known Hardhat/Anvil test account #0. Never fund on mainnet.
const (
	testPrivKeyHex = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	testSignerAddr = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
)

// testKeystore returns a file-backed Keystore isolated to a temp directory.
// Using the FileBackend avoids OS keychain prompts in CI.
func testKeystore(t *testing.T) *Keystore {
	t.Helper()
	ring, err := keyring.Open(keyring.Config{
		ServiceName:      "w3mint-test",
		AllowedBackends:  []keyring.BackendType{keyring.FileBackend},
		FileDir:          t.TempDir(),
		FilePasswordFunc: func(string) (string, error) { return "testpass", nil },
	})
	require.NoError(t, err)
	return NewKeystore(ring)
}

// nullKeystore has ring=nil, so Retrieve always fails with "keystore not available".
func nullKeystore() *Keystore { return &Keystore{ring: nil} }

func storedSigner(t *testing.T) *Signer {
	t.Helper()
	ks := NewInMemoryKeystore()
	ref, err := ks.Store("testwal", testPrivKeyHex)
	require.NoError(t, err)
	w := &Wallet{Name: "testwal", Address: testSignerAddr, Type: TypeSigning, KeyRef: ref}
	return NewSigner(w, ks)
}

func legacyTx() *types.Transaction {
	return types.NewTransaction(0, common.Address{1}, big.NewInt(0), 21000, big.NewInt(1e9), nil)
}

// ---------------------------------------------------------------------------
// Signer.Address
// ---------------------------------------------------------------------------

func TestSignerAddress(t *testing.T) {
	w := &Wallet{Name: "w", Address: testSignerAddr, Type: TypeSigning}
	s := NewSigner(w, nullKeystore())
	assert.Equal(t, common.HexToAddress(testSignerAddr), s.Address())
}

// ---------------------------------------------------------------------------
// Signer.SignTx
// ---------------------------------------------------------------------------

func TestSignTxWatchOnlyError(t *testing.T) {
	w := &Wallet{Name: "watcher", Address: testSignerAddr, Type: TypeWatchOnly}
	_, err := NewSigner(w, nullKeystore()).SignTx(legacyTx(), big.NewInt(1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "watch-only")
}

func TestSignTxKeystoreNotAvailable(t *testing.T) {
	w := &Wallet{Name: "w", Address: testSignerAddr, Type: TypeSigning, KeyRef: "w3mint.w"}
	_, err := NewSigner(w, nullKeystore()).SignTx(legacyTx(), big.NewInt(1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "retrieving key")
}

func TestSignTxKeyNotFound(t *testing.T) {
	w := &Wallet{Name: "missing", Address: testSignerAddr, Type: TypeSigning, KeyRef: "w3mint.doesnotexist"}
	_, err := NewSigner(w, testKeystore(t)).SignTx(legacyTx(), big.NewInt(1))
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestSignTxRecoversSender(t *testing.T) {
	s := storedSigner(t)
	chainID := big.NewInt(1337)

	signed, err := s.SignTx(legacyTx(), chainID)
	require.NoError(t, err)

	from, err := types.Sender(types.LatestSignerForChainID(chainID), signed)
	require.NoError(t, err)
	assert.Equal(t, s.Address(), from)
}

func TestSignTxDifferentChainIDs(t *testing.T) {
	s := storedSigner(t)

	local, err := s.SignTx(legacyTx(), big.NewInt(1337))
	require.NoError(t, err)
	base, err := s.SignTx(legacyTx(), big.NewInt(8453))
	require.NoError(t, err)

	assert.NotEqual(t, local.Hash(), base.Hash(), "same tx signed on different chains must differ")
}

// ---------------------------------------------------------------------------
// Signer.Transactor
// ---------------------------------------------------------------------------

func TestTransactorSigns(t *testing.T) {
	s := storedSigner(t)

	opts, err := s.Transactor(big.NewInt(1337))
	require.NoError(t, err)
	assert.Equal(t, s.Address(), opts.From)

	signed, err := opts.Signer(opts.From, legacyTx())
	require.NoError(t, err)
	v, _, _ := signed.RawSignatureValues()
	assert.NotZero(t, v.Sign())
}

func TestTransactorRejectsOtherAddress(t *testing.T) {
	opts, err := storedSigner(t).Transactor(big.NewInt(1337))
	require.NoError(t, err)

	_, err = opts.Signer(common.Address{9}, legacyTx())
	assert.Error(t, err)
}

func TestTransactorErrors(t *testing.T) {
	_, err := storedSigner(t).Transactor(nil)
	assert.Error(t, err)

	w := &Wallet{Name: "watcher", Address: testSignerAddr, Type: TypeWatchOnly}
	_, err = NewSigner(w, nullKeystore()).Transactor(big.NewInt(1))
	assert.Error(t, err)
}
