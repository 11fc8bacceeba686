package archive

import (
	"bytes"
	"testing"
)

// Pins the literal end-to-end wire scenarios: a byte-order or framing
// regression anywhere in dispatch, output, or internal/wire should
// flip one of these fixed expectations.

func TestWireFormat_ScalarPair(t *testing.T) {
	a := NewOutputArchive()
	x, y := int32(1337), int32(1338)
	if err := a.Value(&x); err != nil {
		t.Fatal(err)
	}
	if err := a.Value(&y); err != nil {
		t.Fatal(err)
	}
	want := []byte{0x39, 0x05, 0x00, 0x00, 0x3A, 0x05, 0x00, 0x00}
	if !bytes.Equal(a.Bytes(), want) {
		t.Fatalf("scalar pair wire bytes = % x, want % x", a.Bytes(), want)
	}
}

func TestWireFormat_String(t *testing.T) {
	s := "hello"
	out, err := Save(&s)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0x05, 0x00, 0x00, 0x00, 0x68, 0x65, 0x6C, 0x6C, 0x6F}
	if !bytes.Equal(out, want) {
		t.Fatalf("string wire bytes = % x, want % x", out, want)
	}
}
