package chain

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// ErrInvalidChainID is returned when a value cannot be read as a chain id.
var ErrInvalidChainID = errors.New("invalid chain id")

// ID is a chain id in canonical form: lower-case 0x-prefixed hex without
// leading zeros, e.g. "0x539" for 1337. Two IDs are the same chain iff they
// are equal strings.
type ID string

// ParseID normalises a chain id delivered in any of the encodings seen on the
// wallet boundary: "0x539", "0X0539", "1337", json.Number, float64 (decoded
// JSON), Go integers and *big.Int.
func ParseID(v any) (ID, error) {
	switch x := v.(type) {
	case ID:
		return ParseID(string(x))
	case string:
		return parseIDString(x)
	case json.Number:
		return parseIDString(x.String())
	case *big.Int:
		if x == nil {
			return "", ErrInvalidChainID
		}
		return FromBig(x)
	case float64:
		if x < 0 || x != float64(uint64(x)) {
			return "", fmt.Errorf("%w: %v", ErrInvalidChainID, x)
		}
		return FromUint64(uint64(x)), nil
	case int:
		return fromInt64(int64(x))
	case int64:
		return fromInt64(x)
	case int32:
		return fromInt64(int64(x))
	case uint:
		return FromUint64(uint64(x)), nil
	case uint32:
		return FromUint64(uint64(x)), nil
	case uint64:
		return FromUint64(x), nil
	case nil:
		return "", ErrInvalidChainID
	default:
		return "", fmt.Errorf("%w: unsupported type %T", ErrInvalidChainID, v)
	}
}

// MustParseID is ParseID for constants; it panics on error.
func MustParseID(v any) ID {
	id, err := ParseID(v)
	if err != nil {
		panic(err)
	}
	return id
}

// FromUint64 returns the canonical ID of a numeric chain id.
func FromUint64(n uint64) ID {
	return ID(fmt.Sprintf("0x%x", n))
}

// FromBig returns the canonical ID of a big-int chain id.
func FromBig(n *big.Int) (ID, error) {
	if n.Sign() < 0 {
		return "", fmt.Errorf("%w: negative", ErrInvalidChainID)
	}
	return ID("0x" + n.Text(16)), nil
}

// Big returns the numeric value of the ID, or nil if it is malformed.
func (id ID) Big() *big.Int {
	n, ok := new(big.Int).SetString(strings.TrimPrefix(string(id), "0x"), 16)
	if !ok {
		return nil
	}
	return n
}

// Uint64 returns the numeric value of the ID (0 when malformed or too large).
func (id ID) Uint64() uint64 {
	n := id.Big()
	if n == nil || !n.IsUint64() {
		return 0
	}
	return n.Uint64()
}

func (id ID) String() string { return string(id) }

func fromInt64(n int64) (ID, error) {
	if n < 0 {
		return "", fmt.Errorf("%w: %d", ErrInvalidChainID, n)
	}
	return FromUint64(uint64(n)), nil
}

func parseIDString(s string) (ID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrInvalidChainID
	}
	n := new(big.Int)
	var ok bool
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		digits := s[2:]
		if digits == "" {
			return "", fmt.Errorf("%w: %q", ErrInvalidChainID, s)
		}
		_, ok = n.SetString(digits, 16)
	} else {
		_, ok = n.SetString(s, 10)
	}
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidChainID, s)
	}
	return FromBig(n)
}
