// Package gf128 implements doubling (multiplication by x) over GF(2^128)
// under the reduction polynomial x^128 + x^7 + x^2 + x + 1, the single
// field operation the Manx1 engine needs.
package gf128

import "encoding/binary"

// Double computes poly <- poly * x mod (x^128 + x^7 + x^2 + x + 1) in
// place. poly is a 16-byte little-endian polynomial representation, laid
// out as four 32-bit little-endian words. The operation is constant-time
// with respect to the polynomial's top bit: the conditional reduction term
// is derived as a byte mask and XORed in unconditionally rather than
// branched on.
//
// Unlike a naive transcription of the reference C, the lowest word's
// carry-in is hardwired to 0 (a left shift never carries into the lowest
// word) rather than duplicated from the 3rd word.
func Double(poly *[16]byte) {
	cond := byte(0) - (poly[15] >> 7)

	val := binary.LittleEndian.Uint32(poly[12:16])
	val <<= 1
	val |= uint32(poly[11]>>7) & 1
	binary.LittleEndian.PutUint32(poly[12:16], val)

	val = binary.LittleEndian.Uint32(poly[8:12])
	val <<= 1
	val |= uint32(poly[7]>>7) & 1
	binary.LittleEndian.PutUint32(poly[8:12], val)

	val = binary.LittleEndian.Uint32(poly[4:8])
	val <<= 1
	val |= uint32(poly[3]>>7) & 1
	binary.LittleEndian.PutUint32(poly[4:8], val)

	val = binary.LittleEndian.Uint32(poly[0:4])
	val <<= 1
	// No carry-in here: this is the lowest word, so its incoming bit is 0.
	binary.LittleEndian.PutUint32(poly[0:4], val)

	poly[0] ^= 0x87 & cond
}
