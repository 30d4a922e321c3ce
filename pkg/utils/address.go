package utils

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// ZeroAddress is the canonical zero address in checksum-free form.
const ZeroAddress = "0x0000000000000000000000000000000000000000"

// IsHexAddress reports whether s is a well-formed 20-byte hex address.
func IsHexAddress(s string) bool {
	return common.IsHexAddress(s)
}

// NormalizeAddress lower-cases a hex address so it can be used as a stable
// lookup key. Returns the input unchanged if it is not a valid address.
func NormalizeAddress(s string) string {
	if !common.IsHexAddress(s) {
		return s
	}
	return strings.ToLower(common.HexToAddress(s).Hex())
}

// IsZeroAddress reports whether s is absent or the zero address.
func IsZeroAddress(s string) bool {
	if s == "" || s == "0x" {
		return true
	}
	return common.IsHexAddress(s) && common.HexToAddress(s) == (common.Address{})
}

// NormalizeBytes32 lower-cases a 0x-prefixed 32-byte hex identity.
func NormalizeBytes32(s string) string {
	return strings.ToLower(common.HexToHash(s).Hex())
}
