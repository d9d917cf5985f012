// Package bcs implements the handful of Binary Canonical Serialization encodings
// the tictactoe module takes as view and entry function arguments.
package bcs

import "encoding/base64"

// AddressLength is the width of a Move address in bytes.
const AddressLength = 32

// Address - serializes a Move address. Addresses are fixed length, so no length prefix is written.
func Address(addr [AddressLength]byte) []byte {
	out := make([]byte, AddressLength)
	copy(out, addr[:])

	return out
}

// U8 - serializes a single unsigned byte.
func U8(v uint8) []byte {
	return []byte{v}
}

// ToBase64 - encodes serialized bytes the way the REST and tx endpoints expect arguments.
func ToBase64(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}
