// Package dssecrypto holds the keyed-hash primitive (C2) and the
// authenticated update-record codec (C6) shared by the ZN and Libertas
// layers.
package dssecrypto

import (
	"crypto/hmac"
	"crypto/sha256"
	"math/big"
	"strconv"
)

// KeyedHash is HMAC-SHA-256, as specified for C2. Integers are serialized
// as decimal ASCII, strings as UTF-8, exactly as the original Z&N
// implementation's hash_string/hash_int do.
func KeyedHash(key, data []byte) []byte {
	h := hmac.New(sha256.New, key)
	h.Write(data)
	return h.Sum(nil)
}

// HashString hashes a UTF-8 string under key k.
func HashString(k []byte, s string) []byte {
	return KeyedHash(k, []byte(s))
}

// HashInt hashes the decimal representation of n under key k.
func HashInt(k []byte, n int) []byte {
	return HashString(k, strconv.Itoa(n))
}

// HashStringToInt projects HashString's digest onto an unbounded
// non-negative integer, for modular reduction against a Bloom filter
// size.
func HashStringToInt(k []byte, s string) *big.Int {
	return new(big.Int).SetBytes(HashString(k, s))
}

// LSB returns the low bit of the first byte of digest, the mask bit used
// throughout C3/C4/C5.
func LSB(digest []byte) byte {
	if len(digest) == 0 {
		return 0
	}
	return digest[0] & 1
}
