// Package manx implements the Manx1 and Manx2 authenticated-encryption
// schemes: nonce-based AEAD constructions for sub-block messages, built on
// top of an arbitrary 128-bit block cipher supplied through the
// blockcipher package.
package manx

const (
	// BlockBits and BlockBytes are the block-cipher width both schemes are
	// built over; Manx has no use for any other width.
	BlockBits  = 128
	BlockBytes = 16

	// Tau is the target authenticity level in bits.
	Tau = BlockBits / 2

	// Manx1AlphaMax bounds associated-data length for Manx1.
	// Manx1VariableADLen selects whether Manx1 one-zero-pads AD out to the
	// admissible remainder s (true); when false, AD is written unpadded and
	// its length is checked only against Manx1AlphaMax.
	Manx1AlphaMax      = 64
	Manx1VariableADLen = true

	// Manx2AlphaMax bounds associated-data length for Manx2.
	// Manx2VariableADLen selects whether Manx2 one-zero-pads AD out to
	// Manx2AlphaStar bits (true) or requires AD of exactly Manx2AlphaStar
	// bits (false).
	// Manx2AlphaStar is the fixed width Manx2 reserves for the AD field in
	// its block layout.
	Manx2AlphaMax      = 16
	Manx2VariableADLen = false
	Manx2AlphaStar     = Manx2AlphaMax
)
