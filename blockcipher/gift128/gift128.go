// Package gift128 implements the GIFT-128 block cipher's forward direction
// only. The reference implementation's header
// (manx-gift128/*/gift128.h) declares nothing but
// giftb128_encrypt_block — there is no giftb128_decrypt_block anywhere in
// the reference tree, and block_cipher.h's roundkeys_t for this cipher is
// an empty struct (round keys are precomputed out of band for their
// benchmarks). This backend follows that shape: KeyExpand loads the
// 128-bit key register (each round's key bits are derived from it during
// encryption), and Decrypt is left nil, so
// blockcipher.Backend.CanDecrypt reports false for it the same way the
// reference build never links a decrypt entry point for this cipher.
package gift128

import "github.com/aadomn/manx/blockcipher"

const rounds = 40

// sbox is GIFT's 4-bit substitution table.
var sbox = [16]byte{0x1, 0xa, 0x4, 0xc, 0x6, 0xf, 0x3, 0x9, 0x2, 0xd, 0xb, 0x7, 0x5, 0x0, 0x8, 0xe}

// roundConstants holds the 40 round constants, generated from the 6-bit
// affine LFSR the GIFT round-constant schedule uses (seeded at 0b000001,
// feedback into the low bit from bits 5 and 4, output taken as bits 5..0
// each step before the shift).
var roundConstants = func() [rounds]byte {
	var rc [rounds]byte
	c := byte(0x01)
	for i := 0; i < rounds; i++ {
		rc[i] = c & 0x3f
		fb := ((c >> 5) ^ (c >> 4) ^ 1) & 1
		c = ((c << 1) | fb) & 0x3f
	}
	return rc
}()

// nibbles unpacks a 16-byte block into 32 4-bit nibbles, most significant
// nibble of byte 0 first.
func nibbles(block []byte) [32]byte {
	var n [32]byte
	for i := 0; i < 16; i++ {
		n[2*i] = block[i] >> 4
		n[2*i+1] = block[i] & 0x0f
	}
	return n
}

func packNibbles(n [32]byte, block []byte) {
	for i := 0; i < 16; i++ {
		block[i] = n[2*i]<<4 | n[2*i+1]
	}
}

// permBits is GIFT-128's bit permutation, applied to the 128 bits of state
// (bit 0 = MSB of nibble 0). permBits[i] gives the destination bit index
// of source bit i.
var permBits = func() [128]int {
	var p [128]int
	for src := 0; src < 128; src++ {
		// GIFT-128 numbers state bits from the least significant end
		// (j = 127 - src) and sends bit j to
		// 4*(j/16) + 32*((3*((j%16)/4) + j%4) % 4) + j%4: each bit keeps its
		// position within a nibble, and the four bits of every nibble land
		// in four different nibbles.
		j := 127 - src
		dst := 4*(j/16) + 32*((3*((j%16)/4)+j%4)%4) + j%4
		p[src] = 127 - dst
	}
	return p
}()

func permuteState(n [32]byte) [32]byte {
	var bits [128]byte
	for i, nb := range n {
		for b := 0; b < 4; b++ {
			bits[i*4+b] = (nb >> uint(3-b)) & 1
		}
	}
	var out [128]byte
	for i, v := range bits {
		out[permBits[i]] = v
	}
	var result [32]byte
	for i := 0; i < 32; i++ {
		var v byte
		for b := 0; b < 4; b++ {
			v = v<<1 | out[i*4+b]
		}
		result[i] = v
	}
	return result
}

// keyState is GIFT-128's 128-bit key register, held as eight 16-bit words.
type keyState [8]uint16

func loadKeyState(key []byte) keyState {
	var ks keyState
	for i := 0; i < 8; i++ {
		ks[i] = uint16(key[2*i])<<8 | uint16(key[2*i+1])
	}
	return ks
}

// roundKey extracts this round's 32 key bits from words 2 and 3 of the key
// state, XORs them into the nibbles carrying sbox output bit-classes 1 and
// 2, then rotates the key state for the next round: words 6 and 7 are
// themselves rotated right (by 2 and 12 bits) and move to slots 0 and 1,
// while words 0 to 5 move up two slots to 2 to 7.
func (ks *keyState) roundKey(n *[32]byte) {
	u := ks[2]
	v := ks[3]
	for i := 0; i < 16; i++ {
		n[2*i] ^= byte((v>>uint(15-i))&1) << 2
		n[2*i] ^= byte((u>>uint(15-i))&1) << 1
	}

	w6 := ks[6]>>2 | ks[6]<<14
	w7 := ks[7]>>12 | ks[7]<<4
	*ks = keyState{w6, w7, ks[0], ks[1], ks[2], ks[3], ks[4], ks[5]}
}

// addConstant XORs a fixed '1' into the high bit of the last nibble (n[31])
// and the round constant's six bits, lowest first, into the low bit of
// nibbles 3, 7, 11, 15, 19 and 23.
func addConstant(n *[32]byte, rc byte) {
	n[31] ^= 0x8
	n[3] ^= rc & 1
	n[7] ^= (rc >> 1) & 1
	n[11] ^= (rc >> 2) & 1
	n[15] ^= (rc >> 3) & 1
	n[19] ^= (rc >> 4) & 1
	n[23] ^= (rc >> 5) & 1
}

func encryptBlock(dst, src []byte, ks keyState) {
	n := nibbles(src)
	for r := 0; r < rounds; r++ {
		for i := range n {
			n[i] = sbox[n[i]]
		}
		n = permuteState(n)
		addConstant(&n, roundConstants[r])
		ks.roundKey(&n)
	}
	packNibbles(n, dst)
}

// roundKeys wraps the GIFT-128 key state loaded from the key.
type roundKeys struct {
	ks keyState
}

func (r *roundKeys) Zero() {
	for i := range r.ks {
		r.ks[i] = 0
	}
}

// Backend returns the GIFT-128 blockcipher.Backend. Decrypt is nil.
func Backend() *blockcipher.Backend {
	return &blockcipher.Backend{
		Name:      "GIFT-128",
		BlockSize: 16,
		KeyExpand: func(key []byte) blockcipher.RoundKeys {
			return &roundKeys{ks: loadKeyState(key)}
		},
		Encrypt: func(dst, src []byte, rk blockcipher.RoundKeys) {
			encryptBlock(dst, src, rk.(*roundKeys).ks)
		},
		Decrypt: nil,
	}
}
