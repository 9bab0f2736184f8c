package connect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayAccount(t *testing.T) {
	assert.Equal(t, "0xf39F...2266", DisplayAccount("0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266"))
	assert.Equal(t, "0x7099...79C8", DisplayAccount("0x70997970C51812DC3A010C7D01B50E0D17DC79C8"))
	assert.Equal(t, "nope", DisplayAccount("nope"))
}

func TestChecksumAddress(t *testing.T) {
	sum, err := ChecksumAddress("0x3c44cdddb6a900fa2b585dd299e03d12fa4293bc")
	assert.NoError(t, err)
	assert.Equal(t, "0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC", sum)

	_, err = ChecksumAddress("0x123")
	assert.Error(t, err)
	_, err = ChecksumAddress("0xzz44cdddb6a900fa2b585dd299e03d12fa4293bc")
	assert.Error(t, err)

	// Correct mixed case and a single case both pass; wrong mixed case fails.
	sum, err = ChecksumAddress("0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC")
	assert.NoError(t, err)
	assert.Equal(t, "0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC", sum)
	sum, err = ChecksumAddress("0X3C44CDDDB6A900FA2B585DD299E03D12FA4293BC")
	assert.NoError(t, err)
	assert.Equal(t, "0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC", sum)
	_, err = ChecksumAddress("0x3c44CdDdB6a900fa2b585dd299e03d12FA4293BC")
	assert.ErrorIs(t, err, ErrChecksumMismatch)
}

// The mint affordance is shown iff the wallet is present, the chain matches
// and an account is set, for every combination of the other fields.
func TestGatingAllStates(t *testing.T) {
	matches := []ChainMatch{ChainUnknown, ChainMatched, ChainMismatched}
	for _, present := range []bool{false, true} {
		for _, m := range matches {
			for _, account := range []string{"", "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"} {
				for _, busy := range []bool{false, true} {
					for _, msg := range []string{"", MsgWrongNetwork} {
						s := State{
							WalletPresent: present,
							ChainMatch:    m,
							Account:       account,
							Busy:          busy,
							ErrorMessage:  msg,
							Network:       "Localhost 8545",
							SupplyCap:     50,
						}
						g := s.Gating()
						wantMint := present && m == ChainMatched && account != ""
						assert.Equal(t, wantMint, g.ShowMint, "%+v", s)
						assert.Equal(t, busy || msg != "", g.Disabled, "%+v", s)
						if wantMint {
							assert.Equal(t, "MINT", g.Button)
							assert.Equal(t, "Localhost 8545", g.NetworkLabel)
						} else {
							assert.Equal(t, "CONNECT WALLET", g.Button)
							assert.Empty(t, g.NetworkLabel)
						}
						assert.Equal(t, account != "", g.AccountLabel != "")
					}
				}
			}
		}
	}
}

func TestSupplyLabel(t *testing.T) {
	assert.Equal(t, "?/50", State{SupplyCap: 50}.Gating().SupplyLabel)
	assert.Equal(t, "12/50", State{SupplyCap: 50, SupplyKnown: true, MintedSupply: 12}.Gating().SupplyLabel)
}

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "unknown", ChainUnknown.String())
	assert.Equal(t, "matched", ChainMatched.String())
	assert.Equal(t, "mismatched", ChainMismatched.String())
	assert.Equal(t, "none", ErrorNone.String())
	assert.Equal(t, "wrong_network", ErrorWrongNetwork.String())
	assert.Equal(t, "disconnected", ErrorDisconnected.String())
}
