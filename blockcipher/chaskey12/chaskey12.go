// Package chaskey12 implements Chaskey's ARX permutation run for 12 rounds,
// wrapped in an Even-Mansour construction to stand in as a 128-bit block
// cipher: C = pi(P xor K) xor K, P = pi^-1(C xor K) xor K.
//
// Chaskey has no separate key schedule; the raw 128-bit key is used
// directly on both sides of the permutation, so this backend leaves
// KeyExpand nil and lets blockcipher.Backend.Expand carry the raw key
// through, matching the empty roundkeys_t the reference implementation
// declares for this cipher.
package chaskey12

import (
	"encoding/binary"

	"github.com/aadomn/manx/blockcipher"
)

const rounds = 12

func rotl(x uint32, n uint) uint32 { return x<<n | x>>(32-n) }
func rotr(x uint32, n uint) uint32 { return x>>n | x<<(32-n) }

func load(b []byte) [4]uint32 {
	var v [4]uint32
	for i := range v {
		v[i] = binary.LittleEndian.Uint32(b[i*4 : i*4+4])
	}
	return v
}

func store(b []byte, v [4]uint32) {
	for i := range v {
		binary.LittleEndian.PutUint32(b[i*4:i*4+4], v[i])
	}
}

// permute runs the Chaskey round function forward 12 times.
func permute(v [4]uint32) [4]uint32 {
	for r := 0; r < rounds; r++ {
		v[0] += v[1]
		v[1] = rotl(v[1], 5)
		v[1] ^= v[0]
		v[0] = rotl(v[0], 16)

		v[2] += v[3]
		v[3] = rotl(v[3], 8)
		v[3] ^= v[2]

		v[0] += v[3]
		v[3] = rotl(v[3], 13)
		v[3] ^= v[0]

		v[2] += v[1]
		v[1] = rotl(v[1], 7)
		v[1] ^= v[2]
		v[2] = rotl(v[2], 16)
	}
	return v
}

// permuteInverse undoes permute step for step, round for round.
func permuteInverse(v [4]uint32) [4]uint32 {
	for r := 0; r < rounds; r++ {
		c2 := rotr(v[2], 16)
		b3 := v[1] ^ c2
		b2 := rotr(b3, 7)
		c1 := c2 - b2

		d3 := v[3] ^ v[0]
		d2 := rotr(d3, 13)
		a2 := v[0] - d2
		d1 := d2 ^ c1
		d := rotr(d1, 8)
		c := c1 - d

		a1 := rotr(a2, 16)
		b1 := b2 ^ a1
		b := rotr(b1, 5)
		a := a1 - b

		v[0], v[1], v[2], v[3] = a, b, c, d
	}
	return v
}

func xorWords(v, k [4]uint32) [4]uint32 {
	return [4]uint32{v[0] ^ k[0], v[1] ^ k[1], v[2] ^ k[2], v[3] ^ k[3]}
}

// Backend returns the Chaskey-EM-12 blockcipher.Backend.
func Backend() *blockcipher.Backend {
	return &blockcipher.Backend{
		Name:      "Chaskey-EM-12",
		BlockSize: 16,
		KeyExpand: nil,
		Encrypt: func(dst, src []byte, rk blockcipher.RoundKeys) {
			k := load(rk.(blockcipher.RawKeyProvider).RawKey())
			v := xorWords(load(src), k)
			v = permute(v)
			v = xorWords(v, k)
			store(dst, v)
		},
		Decrypt: func(dst, src []byte, rk blockcipher.RoundKeys) {
			k := load(rk.(blockcipher.RawKeyProvider).RawKey())
			v := xorWords(load(src), k)
			v = permuteInverse(v)
			v = xorWords(v, k)
			store(dst, v)
		},
	}
}
