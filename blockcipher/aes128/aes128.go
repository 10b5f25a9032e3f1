// Package aes128 adapts the standard library's AES-128 implementation
// (crypto/aes) to the blockcipher.Backend contract. This is the backend the
// Manx package tests run on (with the NIST key
// 2b7e151628aed2a6abf7158809cf4f3c).
//
// crypto/aes is used here rather than a third-party AES package for the
// same reason the teacher reaches for it in ccm.go: Go's standard AES is
// constant-time on every platform it runs on, and every AES-based AEAD in
// the retrieved example pack bottoms out on it.
package aes128

import (
	"crypto/aes"

	"github.com/aadomn/manx/blockcipher"
)

// roundKeys wraps the stdlib cipher.Block produced by aes.NewCipher. It has
// no exported secret state to scrub directly (crypto/aes keeps its
// expanded schedule private), so it does not implement a Zero method.
type roundKeys struct {
	block interface {
		Encrypt(dst, src []byte)
		Decrypt(dst, src []byte)
	}
}

// Backend returns the AES-128 blockcipher.Backend. Each call returns a
// fresh value; the closures it carries have no shared mutable state, so
// keeping one around and reusing it across many Manx calls is fine. The
// Manx engines still run KeyExpand (the AES key schedule) on every Seal and
// Open.
func Backend() *blockcipher.Backend {
	return &blockcipher.Backend{
		Name:      "AES-128",
		BlockSize: 16,
		KeyExpand: func(key []byte) blockcipher.RoundKeys {
			block, err := aes.NewCipher(key)
			if err != nil {
				// Only non-16-byte keys can get here; Manx always expands
				// a 16-byte key, so this would indicate a programming
				// error in the caller, not a runtime condition to recover
				// from.
				panic("aes128: " + err.Error())
			}
			return roundKeys{block: block}
		},
		Encrypt: func(dst, src []byte, rk blockcipher.RoundKeys) {
			rk.(roundKeys).block.Encrypt(dst, src)
		},
		Decrypt: func(dst, src []byte, rk blockcipher.RoundKeys) {
			rk.(roundKeys).block.Decrypt(dst, src)
		},
	}
}
