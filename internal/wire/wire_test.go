package wire

import (
	"bytes"
	"reflect"
	"testing"
)

func TestPutScalar_Int32LittleEndian(t *testing.T) {
	var v int32 = 1337
	got := PutScalar(nil, reflect.ValueOf(v))
	want := []byte{0x39, 0x05, 0x00, 0x00}
	if !bytes.Equal(got, want) {
		t.Fatalf("PutScalar(1337) = % x, want % x", got, want)
	}
}

func TestPutScalar_ScalarPairStream(t *testing.T) {
	var dst []byte
	dst = PutScalar(dst, reflect.ValueOf(int32(1337)))
	dst = PutScalar(dst, reflect.ValueOf(int32(1338)))
	want := []byte{0x39, 0x05, 0x00, 0x00, 0x3A, 0x05, 0x00, 0x00}
	if !bytes.Equal(dst, want) {
		t.Fatalf("scalar pair stream = % x, want % x", dst, want)
	}
}

func TestPutSize_FiveElementCount(t *testing.T) {
	got := PutSize(nil, 5)
	want := []byte{0x05, 0x00, 0x00, 0x00}
	if !bytes.Equal(got, want) {
		t.Fatalf("PutSize(5) = % x, want % x", got, want)
	}
}

func TestGetScalar_Int32LittleEndian(t *testing.T) {
	src := []byte{0x39, 0x05, 0x00, 0x00}
	var got int32
	if err := GetScalar(src, reflect.ValueOf(&got).Elem()); err != nil {
		t.Fatal(err)
	}
	if got != 1337 {
		t.Fatalf("GetScalar = %d, want 1337", got)
	}
}

func TestGetSize_RoundTripsPutSize(t *testing.T) {
	buf := PutSize(nil, 5)
	n, rest, err := GetSize(buf)
	if err != nil {
		t.Fatal(err)
	}
	if n != 5 {
		t.Fatalf("GetSize = %d, want 5", n)
	}
	if len(rest) != 0 {
		t.Fatalf("GetSize left %d trailing bytes, want 0", len(rest))
	}
}
