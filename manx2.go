package manx

import (
	"github.com/aadomn/manx/blockcipher"
	"github.com/aadomn/manx/internal/bitbuf"
)

// Manx2 is the one-or-two-block Manx AEAD scheme: short messages (at or
// below the domain's "tiny" threshold r) produce a single ciphertext
// block; longer messages spill into a second block, whose decryption can
// recover the nonce from the ciphertext itself rather than requiring the
// caller to supply it.
type Manx2 struct {
	Backend *blockcipher.Backend
}

// manx2R computes r = BlockBits - (nlen + Manx2AlphaStar + 2), the tiny-
// message threshold: messages of at most r bits fit in a single block
// alongside the nonce, domain separator, and associated-data field.
func manx2R(nlen int) int {
	return BlockBits - (nlen + Manx2AlphaStar + 2)
}

func getBit(buf []byte, pos int) byte {
	return (buf[pos/8] >> uint(7-pos%8)) & 1
}

func setBit(buf []byte, pos int) {
	buf[pos/8] |= 1 << uint(7-pos%8)
}

func clearBit(buf []byte, pos int) {
	buf[pos/8] &^= 1 << uint(7-pos%8)
}

func chgBit(buf []byte, pos int, val byte) {
	if val != 0 {
		setBit(buf, pos)
	} else {
		clearBit(buf, pos)
	}
}

// setSeparationDomain writes the two-bit domain separator (10 when mlen < r,
// 11 when mlen == r, 00 when mlen > r) at the cursor position and advances
// it by exactly 2 bits.
func setSeparationDomain(cur bitbuf.Cursor, out []byte, mlen, r int) bitbuf.Cursor {
	switch {
	case mlen < r:
		cur = cur.SetBit(out)
		cur = cur.Advance(1)
	case mlen == r:
		cur = cur.SetBit(out)
		cur = cur.SetBit(out)
	default:
		cur = cur.Advance(2)
	}
	return cur
}

// initTinyMsg builds the single input block N || xx || Abar || pad_r(M)
// into b (BlockBytes long, zeroed first). Passing mlen == 0 with a nil m
// builds the block used to re-derive the expected domain-separator-10
// shape during decryption.
func initTinyMsg(b, n []byte, nlen int, a []byte, alen int, m []byte, mlen int) {
	r := manx2R(nlen)
	bitbuf.Zero(b)
	cur := bitbuf.Cursor{}
	cur = cur.Append(b, n, nlen)
	cur = setSeparationDomain(cur, b, mlen, r)
	cur = cur.Append(b, a, alen)
	if Manx2VariableADLen {
		cur = cur.PadOneZero(b, Manx2AlphaStar-alen)
	}
	cur = cur.Append(b, m, mlen)
	if mlen < r {
		// With mlen == r the message fills the block; separator 11 marks
		// that no padding bit follows.
		cur.SetBit(b)
	}
}

// initShortMsg builds the two input blocks for the short-message path.
// M is appended once into a 2*BlockBytes scratch buffer starting right
// after N || 00 || Abar; because that header is BlockBits-r bits long (the
// definition of r), the portion of that append that spills past the first
// block starts exactly at the second block's first byte, on M[2]'s own
// bits, so copying it out and re-appending it
// after T[2]'s N || 01 header reproduces the split exactly — the same
// mechanism the reference implementation's init_short_msg relies on.
func initShortMsg(t1, t2, n []byte, nlen int, a []byte, alen int, m []byte, mlen int) {
	r := manx2R(nlen)

	scratch := make([]byte, 2*BlockBytes)
	defer bitbuf.Zero(scratch)

	cur := bitbuf.Cursor{}
	cur = cur.Append(scratch, n, nlen)
	cur = cur.Advance(2)
	cur = cur.Append(scratch, a, alen)
	if Manx2VariableADLen {
		cur = cur.PadOneZero(scratch, Manx2AlphaStar-alen)
	}
	cur = cur.Append(scratch, m, mlen)
	copy(t1, scratch[:BlockBytes])

	m2len := mlen - r
	x := make([]byte, (m2len+7)/8)
	defer bitbuf.Zero(x)
	copy(x, scratch[BlockBytes:BlockBytes+len(x)])

	bitbuf.Zero(t2)
	cur2 := bitbuf.Cursor{}
	cur2 = cur2.Append(t2, n, nlen)
	cur2 = cur2.Advance(1)
	cur2 = cur2.SetBit(t2)
	cur2 = cur2.Append(t2, x, m2len)
	cur2.SetBit(t2)
}

// Seal encrypts and authenticates msg (mlen bits) under key, nonce (nlen
// bits), and associated data ad (alen bits), returning one ciphertext
// block for tiny messages or two for short ones.
func (m *Manx2) Seal(key, nonce []byte, nlen int, msg []byte, mlen int, ad []byte, alen int) ([]byte, error) {
	const op = "manx2.Seal"
	r := manx2R(nlen)

	if nlen < Tau {
		return nil, errManx2NonceTooShort.withOp(op)
	}
	if mlen >= BlockBits-nlen-2+r {
		return nil, errManx2MsgTooLong.withOp(op)
	}
	if !Manx2VariableADLen {
		if alen != Manx2AlphaStar {
			return nil, errManx2ADLengthFixed.withOp(op)
		}
	} else if alen > Manx2AlphaMax {
		return nil, errManx2ADTooLong.withOp(op)
	}

	rk := m.Backend.Expand(key)
	defer blockcipher.ZeroRoundKeys(rk)

	if mlen <= r {
		t := make([]byte, BlockBytes)
		defer bitbuf.Zero(t)
		initTinyMsg(t, nonce, nlen, ad, alen, msg, mlen)

		c := make([]byte, BlockBytes)
		m.Backend.Encrypt(c, t, rk)
		return c, nil
	}

	t1 := make([]byte, BlockBytes)
	t2 := make([]byte, BlockBytes)
	defer bitbuf.Zero(t1)
	defer bitbuf.Zero(t2)
	initShortMsg(t1, t2, nonce, nlen, ad, alen, msg, mlen)

	c := make([]byte, 2*BlockBytes)
	m.Backend.Encrypt(c[:BlockBytes], t1, rk)
	m.Backend.Encrypt(c[BlockBytes:], t2, rk)
	return c, nil
}

// Open verifies and decrypts a one- or two-block Manx2 ciphertext. For
// two-block ciphertexts the nonce argument is ignored: the nonce is
// recovered from the ciphertext itself.
func (m *Manx2) Open(key, nonce []byte, nlen int, ciphertext []byte, clen int, ad []byte, alen int) ([]byte, int, error) {
	const op = "manx2.Open"
	if clen != BlockBits && clen != 2*BlockBits {
		return nil, 0, errManx2CiphertextShape.withOp(op)
	}
	if !Manx2VariableADLen {
		if alen != Manx2AlphaStar {
			return nil, 0, errManx2ADLengthFixedDec.withOp(op)
		}
	} else if alen > Manx2AlphaMax {
		return nil, 0, errManx2ADTooLongDec.withOp(op)
	}

	rk := m.Backend.Expand(key)
	defer blockcipher.ZeroRoundKeys(rk)

	if clen == BlockBits {
		return m.openTiny(rk, nonce, nlen, ciphertext, ad, alen, op)
	}
	return m.openShort(rk, nlen, ciphertext, ad, alen, op)
}

func (m *Manx2) openTiny(rk blockcipher.RoundKeys, nonce []byte, nlen int, ciphertext, ad []byte, alen int, op string) ([]byte, int, error) {
	headerLen := nlen + 2 + Manx2AlphaStar

	s1 := make([]byte, BlockBytes)
	defer bitbuf.Zero(s1)
	m.Backend.Decrypt(s1, ciphertext, rk)

	t := make([]byte, BlockBytes)
	defer bitbuf.Zero(t)
	initTinyMsg(t, nonce, nlen, ad, alen, nil, 0)

	ds := getBit(s1, nlen+1)
	chgBit(t, nlen+1, ds)

	if bitbuf.SecMemcmpBits(s1, t, headerLen) != 0 {
		return nil, 0, errManx2TinyAuthFailed.withOp(op)
	}

	var plen int
	if ds != 0 {
		plen = BlockBits
	} else {
		plen = bitbuf.Depad10(s1, s1)
	}
	plen -= headerLen

	p := make([]byte, BlockBytes)
	bitbuf.LShift(p, s1[headerLen/8:], plen, headerLen%8)

	return p[:(plen + 7) / 8], plen, nil
}

func (m *Manx2) openShort(rk blockcipher.RoundKeys, nlen int, ciphertext, ad []byte, alen int, op string) ([]byte, int, error) {
	headerLen := nlen + 2 + Manx2AlphaStar
	r := manx2R(nlen)

	s1 := make([]byte, BlockBytes)
	s2 := make([]byte, BlockBytes)
	defer bitbuf.Zero(s1)
	defer bitbuf.Zero(s2)
	m.Backend.Decrypt(s1, ciphertext[:BlockBytes], rk)
	m.Backend.Decrypt(s2, ciphertext[BlockBytes:], rk)

	t := make([]byte, BlockBytes)
	defer bitbuf.Zero(t)
	initTinyMsg(t, s2, nlen, ad, alen, nil, 0)
	clearBit(t, nlen+1)
	clearBit(t, nlen)

	if bitbuf.SecMemcmpBits(s1, t, headerLen) != 0 {
		return nil, 0, errManx2ShortAuthFailed.withOp(op)
	}
	if getBit(s2, nlen) != 0 || getBit(s2, nlen+1) != 1 {
		return nil, 0, errManx2DomainMismatch.withOp(op)
	}

	p := make([]byte, 2*BlockBytes)
	bitbuf.LShift(p, s1[headerLen/8:], r, headerLen%8)

	m2TotalLen := bitbuf.Depad10(s2, s2)
	m2len := m2TotalLen - (nlen + 2)
	bitbuf.LShift(s2, s2[(nlen+2)/8:], m2len, (nlen+2)%8)

	cur := bitbuf.Cursor{Oct: r / 8, Bit: r % 8}
	cur.Append(p, s2, m2len)

	plen := r + m2len
	return p[:(plen + 7) / 8], plen, nil
}
