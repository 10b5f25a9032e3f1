package manx

import (
	"github.com/aadomn/manx/blockcipher"
	"github.com/aadomn/manx/internal/bitbuf"
	"github.com/aadomn/manx/internal/gf128"
)

// Manx1 is the single-block Manx AEAD scheme: Seal always produces
// exactly one ciphertext block; Open verifies it and recovers a plaintext
// of fewer than BlockBits-Tau bits.
type Manx1 struct {
	Backend *blockcipher.Backend
}

// manx1S computes the admissible combined nonce/AD-remainder field width
// s = max(BlockBits - nlen + Tau, Manx1AlphaMax).
func manx1S(nlen int) int {
	s := BlockBits - nlen + Tau
	if Manx1AlphaMax > s {
		s = Manx1AlphaMax
	}
	return s
}

func xorBlock(dst, a, b []byte) {
	for i := range dst {
		dst[i] = a[i] ^ b[i]
	}
}

// manx1Vencode builds V = V[1] || V[2] (2*BlockBytes, zero-initialised) by
// bit-concatenating nonce and associated data at cursor (0,0), one-zero
// padding the AD out to width s when Manx1VariableADLen is set. It does
// not touch the message region; callers append the message themselves so
// that Seal can also stamp the trailing padding bit.
func manx1Vencode(v, nonce []byte, nlen int, ad []byte, alen, s int) bitbuf.Cursor {
	cur := bitbuf.Cursor{}
	cur = cur.Append(v, nonce, nlen)
	cur = cur.Append(v, ad, alen)
	if Manx1VariableADLen {
		cur = cur.PadOneZero(v, s-alen)
	}
	return cur
}

// Seal encrypts and authenticates msg (mlen bits) under key, nonce (nlen
// bits), and associated data ad (alen bits), returning one ciphertext
// block.
func (m *Manx1) Seal(key, nonce []byte, nlen int, msg []byte, mlen int, ad []byte, alen int) ([]byte, error) {
	const op = "manx1.Seal"
	s := manx1S(nlen)
	v2len := s - (BlockBits - nlen)

	if mlen >= BlockBits-Tau {
		return nil, errManx1MsgTooLong.withOp(op)
	}
	if alen > Manx1AlphaMax {
		return nil, errManx1ADTooLong.withOp(op)
	}
	if mlen >= BlockBits-v2len {
		return nil, errManx1V2Overflow.withOp(op)
	}

	rk := m.Backend.Expand(key)
	defer blockcipher.ZeroRoundKeys(rk)

	v := make([]byte, 2*BlockBytes)
	defer bitbuf.Zero(v)
	v1 := v[:BlockBytes]
	v2 := v[BlockBytes:]

	cur := manx1Vencode(v, nonce, nlen, ad, alen, s)
	cur = cur.Append(v, msg, mlen)
	cur.SetBit(v)

	m.Backend.Encrypt(v1, v1, rk)
	gf128.Double((*[16]byte)(v1))

	xorBlock(v2, v2, v1)

	c := make([]byte, BlockBytes)
	m.Backend.Encrypt(c, v2, rk)
	xorBlock(c, c, v1)

	return c, nil
}

// Open verifies and decrypts a one-block Manx1 ciphertext, returning the
// recovered plaintext and its bit length.
func (m *Manx1) Open(key, nonce []byte, nlen int, ciphertext []byte, clen int, ad []byte, alen int) ([]byte, int, error) {
	const op = "manx1.Open"
	if clen != BlockBits {
		return nil, 0, errManx1CiphertextShape.withOp(op)
	}
	if alen > Manx1AlphaMax {
		return nil, 0, errManx1ADTooLongDec.withOp(op)
	}

	s := manx1S(nlen)
	v2len := s - (BlockBits - nlen)

	rk := m.Backend.Expand(key)
	defer blockcipher.ZeroRoundKeys(rk)

	v := make([]byte, 2*BlockBytes)
	defer bitbuf.Zero(v)
	v1 := v[:BlockBytes]
	v2 := v[BlockBytes:]
	manx1Vencode(v, nonce, nlen, ad, alen, s)

	m.Backend.Encrypt(v1, v1, rk)
	gf128.Double((*[16]byte)(v1))

	v2Tilde := make([]byte, BlockBytes)
	defer bitbuf.Zero(v2Tilde)
	xorBlock(v2Tilde, v1, ciphertext)
	m.Backend.Decrypt(v2Tilde, v2Tilde, rk)
	xorBlock(v2Tilde, v2Tilde, v1)

	if bitbuf.SecMemcmpBits(v2, v2Tilde, v2len) != 0 {
		return nil, 0, errManx1AuthFailed.withOp(op)
	}

	plenTotal := bitbuf.Depad10(v2Tilde, v2Tilde)
	plen := plenTotal - v2len

	p := make([]byte, BlockBytes)
	bitbuf.LShift(p, v2Tilde[v2len/8:], plen, v2len%8)

	return p[:(plen + 7) / 8], plen, nil
}
