// Package ergo validates Ergo mainnet Pay-to-Public-Key (P2PK) addresses
// as published by contributors in their profile repositories.
package ergo

import (
	"strings"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/blake2b"
)

const (
	// AddressLength is the length of a base58-encoded mainnet P2PK address.
	AddressLength = 51

	// MainnetPrefix is the leading character of every mainnet P2PK address.
	MainnetPrefix = '9'
)

// ValidateP2PK checks a raw wallet-address claim against the mainnet P2PK
// format: exactly 51 characters, leading '9', base58 alphabet only.
// Surrounding whitespace is trimmed. It returns the normalized address.
func ValidateP2PK(raw string) (string, error) {
	addr := strings.TrimSpace(raw)

	if addr == "" {
		return "", &InvalidAddressError{Address: addr, Reason: "empty address"}
	}
	if len(addr) != AddressLength {
		return "", &InvalidAddressError{Address: addr, Reason: "expected 51 characters"}
	}
	if addr[0] != MainnetPrefix {
		return "", &InvalidAddressError{Address: addr, Reason: "expected leading '9' (mainnet P2PK)"}
	}
	if _, err := base58.Decode(addr); err != nil {
		return "", &InvalidAddressError{Address: addr, Reason: "not a base58 string"}
	}

	return addr, nil
}

// IsValidP2PK reports whether raw passes ValidateP2PK.
func IsValidP2PK(raw string) bool {
	_, err := ValidateP2PK(raw)
	return err == nil
}

// ChecksumOK verifies the blake2b-256 checksum embedded in an already
// format-valid address. The decoded payload is 38 bytes: a 0x01 network
// prefix, a 33-byte SEC-compressed public key starting 0x02 or 0x03, and
// a 4-byte checksum over the first 34 bytes.
//
// Checksum failures indicate a mistyped or corrupted address. Callers use
// this as an advisory signal on top of ValidateP2PK, which defines the
// accepted format.
func ChecksumOK(addr string) bool {
	decoded, err := base58.Decode(strings.TrimSpace(addr))
	if err != nil || len(decoded) != 38 {
		return false
	}

	if decoded[0] != 0x01 {
		return false
	}
	if decoded[1] != 0x02 && decoded[1] != 0x03 {
		return false
	}

	sum := blake2b.Sum256(decoded[0:34])
	checksum := decoded[34:38]

	for i := 0; i < 4; i++ {
		if checksum[i] != sum[i] {
			return false
		}
	}
	return true
}

// InvalidAddressError reports why a wallet-address claim was rejected.
type InvalidAddressError struct {
	Address string
	Reason  string
}

func (e *InvalidAddressError) Error() string {
	return "invalid wallet address '" + e.Address + "': " + e.Reason
}
