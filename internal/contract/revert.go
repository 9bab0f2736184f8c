package contract

import (
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	gethrpc "github.com/ethereum/go-ethereum/rpc"
)

// Revert reason keys.
const (
	NumReservedTokensCannotBeZero    = "NumReservedTokensCannotBeZero"
	NumReservedTokensExceedsMax      = "NumReservedTokensExceedsMax"
	AddressReachedPublicMintingLimit = "AddressReachedPublicMintingLimit"
	MaxNumberPublicTokensMinted      = "MaxNumberPublicTokensMinted"
	PublicTokensExceedsTmpMax        = "PublicTokensExceedsTmpMax"
	NewTmpMaxExceedsMaxPublic        = "NewTmpMaxExceedsMaxPublic"
)

// RevertMessages maps reason keys to the revert strings the contract emits.
var RevertMessages = map[string]string{
	NumReservedTokensCannotBeZero:    "numReservedTokens cannot be zero",
	NumReservedTokensExceedsMax:      "number of tokens requested exceeds max reserved",
	AddressReachedPublicMintingLimit: "this address has reached its minting limit",
	MaxNumberPublicTokensMinted:      "maximum number of public tokens have been minted",
	PublicTokensExceedsTmpMax:        "there are currently no more public tokens to mint",
	NewTmpMaxExceedsMaxPublic:        "cannot change temporary public value to exceed max value",
}

var revertKeys = []string{
	NumReservedTokensCannotBeZero,
	NumReservedTokensExceedsMax,
	AddressReachedPublicMintingLimit,
	MaxNumberPublicTokensMinted,
	PublicTokensExceedsTmpMax,
	NewTmpMaxExceedsMaxPublic,
}

// CodeInternal is the JSON-RPC code nodes use for execution reverts.
const CodeInternal = -32603

// Revert is what could be read out of a failed contract call.
type Revert struct {
	Reason  string // key into RevertMessages, "" if unrecognised
	Message string // best human-readable message found
	Code    int    // JSON-RPC error code, 0 if none
}

// Known reports whether the reason matched the table.
func (r Revert) Known() bool { return r.Reason != "" }

// Classify extracts the revert message from err and matches it against
// RevertMessages. The JSON-RPC data payload is preferred over the error
// text; either may carry the reason depending on the node.
func Classify(err error) Revert {
	if err == nil {
		return Revert{}
	}
	var r Revert

	var rerr gethrpc.Error
	if errors.As(err, &rerr) {
		r.Code = rerr.ErrorCode()
	}
	var derr gethrpc.DataError
	if errors.As(err, &derr) {
		r.Message = dataMessage(derr.ErrorData())
	}

	text := err.Error()
	for _, candidate := range []string{r.Message, text} {
		if candidate == "" {
			continue
		}
		if key := matchRevert(candidate); key != "" {
			r.Reason = key
			r.Message = candidate
			return r
		}
	}
	if r.Message == "" {
		r.Message = text
	}
	return r
}

func matchRevert(msg string) string {
	for _, key := range revertKeys {
		if strings.Contains(msg, RevertMessages[key]) {
			return key
		}
	}
	return ""
}

// dataMessage reads a message out of a JSON-RPC error data field: ABI-encoded
// Error(string) bytes, a {"message": ...} object, or a plain string.
func dataMessage(data interface{}) string {
	switch d := data.(type) {
	case string:
		if !strings.HasPrefix(d, "0x") {
			return d
		}
		b, err := hexutil.Decode(d)
		if err != nil {
			return ""
		}
		reason, err := abi.UnpackRevert(b)
		if err != nil {
			return ""
		}
		return reason
	case map[string]interface{}:
		if m, ok := d["message"].(string); ok && m != "" {
			return m
		}
		if inner, ok := d["data"]; ok {
			return dataMessage(inner)
		}
	}
	return ""
}
