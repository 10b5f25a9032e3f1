package manx

import "fmt"

// Error is the sentinel error type every Manx1/Manx2 rejection returns.
// Code mirrors the small per-function integer the reference algorithm
// description assigns to each rejection reason; it is only unique within
// a single engine operation, not across the package, the same way the
// reference C reuses small integers per call site.
type Error struct {
	Code int
	Op   string
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("manx: %s: %s (code %d)", e.Op, e.Msg, e.Code)
}

// withOp returns a copy of a sentinel Error carrying the calling
// operation's name, so callers can tell manx1.Seal's code 1 apart from
// manx2.Open's code 1 without the package exposing two different Go
// error values for the same rejection shape.
func (e *Error) withOp(op string) *Error {
	return &Error{Code: e.Code, Op: op, Msg: e.Msg}
}

var (
	// Manx1 encryption-side rejections.
	errManx1MsgTooLong = &Error{Code: 1, Msg: "message too long for nonce/tau budget"}
	errManx1ADTooLong  = &Error{Code: 2, Msg: "associated data exceeds Manx1AlphaMax"}
	errManx1V2Overflow = &Error{Code: 3, Msg: "message too long for encoded nonce/AD remainder"}

	// Manx1 decryption-side rejections.
	errManx1CiphertextShape = &Error{Code: 1, Msg: "ciphertext is not exactly one block"}
	errManx1ADTooLongDec    = &Error{Code: 2, Msg: "associated data exceeds Manx1AlphaMax"}
	errManx1AuthFailed      = &Error{Code: 3, Msg: "authentication failed"}

	// Manx2 encryption-side rejections.
	errManx2NonceTooShort  = &Error{Code: 1, Msg: "nonce shorter than Tau"}
	errManx2MsgTooLong     = &Error{Code: 2, Msg: "message too long for block layout"}
	errManx2ADTooLong      = &Error{Code: 3, Msg: "associated data exceeds Manx2AlphaMax"}
	errManx2ADLengthFixed  = &Error{Code: 4, Msg: "associated data must be exactly Manx2AlphaStar bits when AD length is fixed"}

	// Manx2 decryption-side rejections.
	errManx2CiphertextShape  = &Error{Code: 1, Msg: "ciphertext is neither one nor two blocks"}
	errManx2ADTooLongDec     = &Error{Code: 5, Msg: "associated data exceeds Manx2AlphaMax"}
	errManx2ADLengthFixedDec = &Error{Code: 6, Msg: "associated data must be exactly Manx2AlphaStar bits when AD length is fixed"}
	errManx2TinyAuthFailed   = &Error{Code: 2, Msg: "authentication failed (tiny path)"}
	errManx2ShortAuthFailed  = &Error{Code: 3, Msg: "authentication failed (short path)"}
	errManx2DomainMismatch   = &Error{Code: 4, Msg: "domain separator malformed"}
)
