package chaskey12

import (
	"bytes"
	"testing"

	"github.com/pschlump/godebug"
)

func TestPermuteRoundTrip(t *testing.T) {
	inputs := [][4]uint32{
		{0, 0, 0, 0},
		{1, 2, 3, 4},
		{0xffffffff, 0x12345678, 0x9abcdef0, 0xdeadbeef},
	}
	for i, in := range inputs {
		got := permuteInverse(permute(in))
		if got != in {
			t.Errorf("case %d: permuteInverse(permute(%v)) = %v, %s", i, in, got, godebug.LF())
		}
	}
}

func TestBackendEncryptDecryptRoundTrip(t *testing.T) {
	backend := Backend()
	key := make([]byte, 16)
	for i := range key {
		key[i] = byte(i)
	}
	rk := backend.Expand(key)

	plain := []byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88, 0x99, 0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff}
	ct := make([]byte, 16)
	backend.Encrypt(ct, plain, rk)
	if bytes.Equal(ct, plain) {
		t.Fatalf("ciphertext equals plaintext, %s", godebug.LF())
	}

	pt2 := make([]byte, 16)
	backend.Decrypt(pt2, ct, rk)
	if !bytes.Equal(pt2, plain) {
		t.Fatalf("round trip mismatch: got %x want %x, %s", pt2, plain, godebug.LF())
	}
}
