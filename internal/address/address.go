// Package address converts chain account addresses between their bech32 form
// (init1...) and the 0x-prefixed 32-byte hex form used by Move.
package address

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"

	"github.com/rocketscienceinc/tictactoe-dashboard/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-dashboard/internal/bcs"
)

const (
	// Prefix is the bech32 human-readable part of account addresses on the chain.
	Prefix = "init"

	hexPrefix   = "0x"
	hexBodyLen  = bcs.AddressLength * 2
	truncateMin = 16

	fromBits = byte(8)
	toBits   = byte(5)
)

// EncodeForWire - encodes an address as a base64 BCS argument for view and entry functions.
func EncodeForWire(addr string) (string, error) {
	raw, err := Bytes(addr)
	if err != nil {
		return "", err
	}

	return bcs.ToBase64(bcs.Address(raw)), nil
}

// Bytes - strictly decodes a hex or bech32 address into 32 bytes, left padded with zeros.
func Bytes(addr string) ([bcs.AddressLength]byte, error) {
	var out [bcs.AddressLength]byte

	body := ""
	if hasHexPrefix(addr) {
		body = addr[len(hexPrefix):]
	} else {
		decoded, err := decodeBech32(addr)
		if err != nil {
			return out, fmt.Errorf("%w: %w", apperror.ErrDecode, err)
		}
		body = hex.EncodeToString(decoded)
	}

	if len(body) > hexBodyLen {
		return out, fmt.Errorf("%w: address is longer than %d bytes", apperror.ErrDecode, bcs.AddressLength)
	}

	decoded, err := hex.DecodeString(leftPad(body))
	if err != nil {
		return out, fmt.Errorf("%w: %w", apperror.ErrDecode, err)
	}

	copy(out[:], decoded)

	return out, nil
}

// Canonicalize - returns the lowercase, 0x-prefixed, 64 digit form used to compare addresses.
// Empty input stays empty. Malformed bech32 input comes back lowercased instead of failing.
func Canonicalize(addr string) string {
	if addr == "" {
		return ""
	}

	if hasBech32Prefix(addr) {
		decoded, err := decodeBech32(addr)
		if err != nil {
			return strings.ToLower(addr)
		}

		return hexPrefix + leftPad(hex.EncodeToString(decoded))
	}

	body := strings.TrimPrefix(strings.ToLower(addr), hexPrefix)

	return hexPrefix + leftPad(body)
}

// Equal reports whether both addresses denote the same non-empty account.
func Equal(a, b string) bool {
	canonical := Canonicalize(a)

	return canonical != "" && canonical == Canonicalize(b)
}

// IsValidInput - checks that user input looks like an address before anything is sent to the chain.
func IsValidInput(addr string) bool {
	addr = strings.TrimSpace(addr)

	return hasBech32Prefix(addr) || hasHexPrefix(addr)
}

// Truncate - shortens an address for display, keeping the first 10 and the last 6 characters.
func Truncate(addr string) string {
	if len(addr) <= truncateMin {
		return addr
	}

	return addr[:10] + "..." + addr[len(addr)-6:]
}

// prefixes are matched case-insensitively, bech32 allows an all-uppercase form
func hasBech32Prefix(addr string) bool {
	return strings.HasPrefix(strings.ToLower(addr), Prefix+"1")
}

func hasHexPrefix(addr string) bool {
	return strings.HasPrefix(strings.ToLower(addr), hexPrefix)
}

func decodeBech32(addr string) ([]byte, error) {
	_, data, err := bech32.Decode(addr)
	if err != nil {
		return nil, fmt.Errorf("invalid bech32 address: %w", err)
	}

	// mind the order: the payload goes back from 5-bit groups to bytes
	decoded, err := bech32.ConvertBits(data, toBits, fromBits, false)
	if err != nil {
		return nil, fmt.Errorf("failed to convert bech32 payload: %w", err)
	}

	return decoded, nil
}

func leftPad(body string) string {
	if len(body) >= hexBodyLen {
		return body
	}

	return strings.Repeat("0", hexBodyLen-len(body)) + body
}
