// Package wire holds the byte codec primitives shared by the output and
// input archives: raw byte-range copies and fixed-width scalar
// read/write in little-endian byte order.
//
// Every primitive here moves a cursor by exactly the scalar's byte
// footprint. No allocation happens beyond what append needs to grow a
// destination slice; readers never copy the source, they return
// subslices of it.
package wire

import (
	"encoding/binary"
	"math"
	"reflect"
)

// order is the byte order used for every scalar and for the 4-byte size
// prefix. Fixed to little-endian regardless of host platform, so a
// payload written on a big-endian machine loads correctly elsewhere.
var order = binary.LittleEndian

// SizePrefixLen is the width in bytes of the count prefixed ahead of
// every variable-length container payload.
const SizePrefixLen = 4

// PutSize appends the 4-byte count prefix to dst.
func PutSize(dst []byte, n uint32) []byte {
	var b [SizePrefixLen]byte
	order.PutUint32(b[:], n)
	return append(dst, b[:]...)
}

// GetSize reads the 4-byte count prefix from the head of src, returning
// the count and the remaining bytes after it.
func GetSize(src []byte) (uint32, []byte, error) {
	chunk, rest, err := ReadRaw(src, SizePrefixLen)
	if err != nil {
		return 0, src, err
	}
	return order.Uint32(chunk), rest, nil
}

// WriteRaw appends all of src to dst unchanged.
func WriteRaw(dst, src []byte) []byte {
	return append(dst, src...)
}

// ReadRaw splits the first n bytes off src, returning them as a window
// into src (no copy) along with the remainder. It fails with the
// package-local out-of-range sentinel when fewer than n bytes remain.
func ReadRaw(src []byte, n int) (chunk, rest []byte, err error) {
	if len(src) < n {
		return nil, src, errOutOfRange
	}
	return src[:n], src[n:], nil
}

// errOutOfRange is a package-local sentinel. The archive package never
// receives it: its archives check the remaining length themselves and
// raise their own ErrOutOfRange before handing bytes to this package.
var errOutOfRange = outOfRangeError{}

type outOfRangeError struct{}

func (outOfRangeError) Error() string { return "wire: out of range" }

// IsOutOfRange reports whether err is the sentinel raised by ReadRaw.
func IsOutOfRange(err error) bool {
	_, ok := err.(outOfRangeError)
	return ok
}

// FixedKind reports whether k is a fundamental scalar kind with a fixed
// wire footprint (integers, floats, bool, and byte, which is Uint8).
func FixedKind(k reflect.Kind) bool {
	switch k {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// FixedSize returns the wire footprint, in bytes, of a fixed scalar
// kind. Int and Uint are treated as 64-bit, matching Go's platform-
// independent int size guarantee for archive purposes.
func FixedSize(k reflect.Kind) int {
	switch k {
	case reflect.Bool, reflect.Int8, reflect.Uint8:
		return 1
	case reflect.Int16, reflect.Uint16:
		return 2
	case reflect.Int32, reflect.Uint32, reflect.Float32:
		return 4
	case reflect.Int64, reflect.Uint64, reflect.Float64, reflect.Int, reflect.Uint:
		return 8
	default:
		return -1
	}
}

// PutScalar appends the raw bytes of rv, a fixed-kind reflect.Value, to
// dst.
func PutScalar(dst []byte, rv reflect.Value) []byte {
	var b [8]byte
	switch k := rv.Kind(); k {
	case reflect.Bool:
		if rv.Bool() {
			return append(dst, 1)
		}
		return append(dst, 0)
	case reflect.Int8:
		return append(dst, byte(rv.Int()))
	case reflect.Uint8:
		return append(dst, byte(rv.Uint()))
	case reflect.Int16:
		order.PutUint16(b[:2], uint16(rv.Int()))
		return append(dst, b[:2]...)
	case reflect.Uint16:
		order.PutUint16(b[:2], uint16(rv.Uint()))
		return append(dst, b[:2]...)
	case reflect.Int32:
		order.PutUint32(b[:4], uint32(rv.Int()))
		return append(dst, b[:4]...)
	case reflect.Uint32:
		order.PutUint32(b[:4], uint32(rv.Uint()))
		return append(dst, b[:4]...)
	case reflect.Int64, reflect.Int:
		order.PutUint64(b[:8], uint64(rv.Int()))
		return append(dst, b[:8]...)
	case reflect.Uint64, reflect.Uint:
		order.PutUint64(b[:8], rv.Uint())
		return append(dst, b[:8]...)
	case reflect.Float32:
		order.PutUint32(b[:4], math.Float32bits(float32(rv.Float())))
		return append(dst, b[:4]...)
	case reflect.Float64:
		order.PutUint64(b[:8], math.Float64bits(rv.Float()))
		return append(dst, b[:8]...)
	default:
		panic("wire: not a fixed scalar kind")
	}
}

// GetScalar reads FixedSize(rv.Kind()) bytes from src and sets rv,
// which must be addressable and settable.
func GetScalar(src []byte, rv reflect.Value) error {
	k := rv.Kind()
	n := FixedSize(k)
	if n < 0 {
		panic("wire: not a fixed scalar kind")
	}
	chunk, _, err := ReadRaw(src, n)
	if err != nil {
		return err
	}
	switch k {
	case reflect.Bool:
		rv.SetBool(chunk[0] != 0)
	case reflect.Int8:
		rv.SetInt(int64(int8(chunk[0])))
	case reflect.Uint8:
		rv.SetUint(uint64(chunk[0]))
	case reflect.Int16:
		rv.SetInt(int64(int16(order.Uint16(chunk))))
	case reflect.Uint16:
		rv.SetUint(uint64(order.Uint16(chunk)))
	case reflect.Int32:
		rv.SetInt(int64(int32(order.Uint32(chunk))))
	case reflect.Uint32:
		rv.SetUint(uint64(order.Uint32(chunk)))
	case reflect.Int64, reflect.Int:
		rv.SetInt(int64(order.Uint64(chunk)))
	case reflect.Uint64, reflect.Uint:
		rv.SetUint(order.Uint64(chunk))
	case reflect.Float32:
		rv.SetFloat(float64(math.Float32frombits(order.Uint32(chunk))))
	case reflect.Float64:
		rv.SetFloat(math.Float64frombits(order.Uint64(chunk)))
	}
	return nil
}
