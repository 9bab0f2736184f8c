package contract

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// BuiltinKind describes a contract interface whose ABI is embedded in the
// binary. Built-ins register themselves via init() in their own
// <name>_abi.go file by calling RegisterBuiltin or MustRegisterBuiltin.
type BuiltinKind struct {
	ID          string  // machine key, e.g. "mynft", "erc721"
	Name        string  // human label
	Description string  // one-line summary
	JSON        string  // raw ABI JSON
	ABI         abi.ABI // parsed form of JSON
}

var builtinRegistry = map[string]BuiltinKind{}

// RegisterBuiltin parses b.JSON and adds b to the registry.
func RegisterBuiltin(b BuiltinKind) error {
	if b.JSON != "" {
		parsed, err := abi.JSON(strings.NewReader(b.JSON))
		if err != nil {
			return fmt.Errorf("builtin %s: %w", b.ID, err)
		}
		b.ABI = parsed
	}
	builtinRegistry[b.ID] = b
	return nil
}

// MustRegisterBuiltin is RegisterBuiltin for init(); it panics on a bad ABI.
func MustRegisterBuiltin(b BuiltinKind) {
	if err := RegisterBuiltin(b); err != nil {
		panic(err)
	}
}

// GetBuiltin returns a built-in by ID. ok is false if not found.
func GetBuiltin(id string) (BuiltinKind, bool) {
	b, ok := builtinRegistry[id]
	return b, ok
}

// AllBuiltins returns all registered built-ins sorted by ID.
func AllBuiltins() []BuiltinKind {
	out := make([]BuiltinKind, 0, len(builtinRegistry))
	for _, b := range builtinRegistry {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// HasMethods reports whether the ABI declares every named method.
func (b BuiltinKind) HasMethods(names ...string) bool {
	for _, n := range names {
		if _, ok := b.ABI.Methods[n]; !ok {
			return false
		}
	}
	return true
}
