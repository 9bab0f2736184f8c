package connect

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/sha3"
)

// ErrChecksumMismatch is returned for a mixed-case address whose casing does
// not match its EIP-55 checksum.
var ErrChecksumMismatch = errors.New("address checksum mismatch")

// ChecksumAddress returns the EIP-55 form of a hex address. Input in a single
// case is accepted as is; mixed case must already be a valid checksum.
func ChecksumAddress(addr string) (string, error) {
	clean := strings.TrimPrefix(strings.TrimPrefix(addr, "0x"), "0X")
	if len(clean) != 40 {
		return "", fmt.Errorf("invalid address %q", addr)
	}
	if _, err := hex.DecodeString(clean); err != nil {
		return "", fmt.Errorf("invalid address %q", addr)
	}
	sum := eip55(clean)
	if mixedCase(clean) && sum[2:] != clean {
		return "", fmt.Errorf("%w: %s", ErrChecksumMismatch, addr)
	}
	return sum, nil
}

// eip55 upper-cases every letter whose keccak nibble is 8 or more.
func eip55(clean string) string {
	lower := strings.ToLower(clean)
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(lower))
	hash := hex.EncodeToString(h.Sum(nil))

	out := []byte("0x" + lower)
	for i := 0; i < len(lower); i++ {
		if c := lower[i]; c >= 'a' && c <= 'f' && hash[i] >= '8' {
			out[i+2] = c - 'a' + 'A'
		}
	}
	return string(out)
}

func mixedCase(s string) bool {
	return strings.ToLower(s) != s && strings.ToUpper(s) != s
}

// DisplayAccount shortens an address to its checksummed first six and last
// four characters, e.g. "0xf39F...2266". Invalid input is returned unchanged.
func DisplayAccount(addr string) string {
	sum, err := ChecksumAddress(addr)
	if err != nil {
		return addr
	}
	return sum[:6] + "..." + sum[len(sum)-4:]
}
