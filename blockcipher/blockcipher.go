// Package blockcipher defines the narrow plug-in contract the Manx engines
// use to reach an external 128-bit block cipher: an optional key-expansion
// step, a block encryption function, and (where supported) a block
// decryption function.
//
// This mirrors the manx.h typedefs (kexp_func, enc_func, dec_func) from the
// reference implementation: kexpand may be nil for Even-Mansour
// constructions, in which case the raw key is carried through in place of
// an expanded round-key object.
package blockcipher

// RoundKeys is an opaque, backend-owned value produced by a Backend's
// KeyExpand and consumed by its Encrypt/Decrypt. Backends that need no key
// schedule (Even-Mansour ciphers) never see one: Expand wraps the raw key
// bytes instead.
type RoundKeys any

// rawKey carries a key that bypasses key expansion, for Even-Mansour
// backends where KeyExpand is nil.
type rawKey []byte

// RawKey returns the key bytes unchanged. It implements RawKeyProvider so an
// Even-Mansour backend's Encrypt/Decrypt closures can recover the raw key
// from the RoundKeys value Expand gave them, without this package exposing
// the rawKey type itself.
func (r rawKey) RawKey() []byte { return r }

// RawKeyProvider is implemented by the RoundKeys value Expand produces for a
// backend with a nil KeyExpand. Even-Mansour backends (KeyExpand == nil)
// type-assert their RoundKeys argument to this interface to recover the raw
// key bytes.
type RawKeyProvider interface {
	RawKey() []byte
}

// Backend bundles a 128-bit block cipher's (kexpand, encrypt, decrypt)
// triple. BlockSize must be 16 (128 bits); Manx has no use for any other
// width.
type Backend struct {
	Name      string
	BlockSize int

	// KeyExpand precomputes round keys from a raw key. Nil for
	// Even-Mansour backends, in which case Encrypt/Decrypt receive the raw
	// key bytes as their RoundKeys argument.
	KeyExpand func(key []byte) RoundKeys

	// Encrypt and Decrypt transform exactly one BlockSize-byte block.
	// Decrypt is nil for encrypt-only backends.
	Encrypt func(dst, src []byte, rk RoundKeys)
	Decrypt func(dst, src []byte, rk RoundKeys)
}

// Expand produces the RoundKeys value to pass to Encrypt/Decrypt for this
// key, running KeyExpand if the backend has one or wrapping the raw key
// bytes otherwise.
func (b *Backend) Expand(key []byte) RoundKeys {
	if b.KeyExpand == nil {
		rk := make(rawKey, len(key))
		copy(rk, key)
		return rk
	}
	return b.KeyExpand(key)
}

// CanDecrypt reports whether this backend supports block decryption. Manx1
// and Manx2 both need it only for Open; Seal uses Encrypt alone.
func (b *Backend) CanDecrypt() bool {
	return b.Decrypt != nil
}

// zeroable is implemented by RoundKeys values that hold secret-dependent
// memory worth scrubbing once an AEAD call is done with them.
type zeroable interface {
	Zero()
}

// ZeroRoundKeys overwrites rk's secret material if it knows how, and is a
// no-op otherwise (e.g. stdlib cipher.Block-backed schedules that don't
// expose their internal state at all).
func ZeroRoundKeys(rk RoundKeys) {
	switch v := rk.(type) {
	case rawKey:
		for i := range v {
			v[i] = 0
		}
	case zeroable:
		v.Zero()
	}
}
