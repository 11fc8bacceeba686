package archive

import "unsafe"

// scalar is the set of element types Binary may alias without copying:
// every fixed-footprint primitive kind the dispatch layer already knows
// how to read and write one at a time.
type scalar interface {
	~bool |
		~int8 | ~int16 | ~int32 | ~int64 | ~int |
		~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint |
		~float32 | ~float64
}

// Binary is the raw-binary wrapper: an opaque pointer+count pair over a
// trivially copyable element type. Saving or loading a Binary performs
// a single write_raw/read_raw of len(Data)*sizeof(T) bytes, bypassing
// per-element dispatch entirely.
//
// Binary carries reference semantics the moment it is constructed: its
// Data field already points at caller-owned memory, so it is passed to
// Save/Load by value, unlike every other container, which is passed by
// pointer. Loading into a Binary never resizes Data; the caller must
// size it to the expected element count before calling Load, exactly as
// the original's pointer+count pair requires.
type Binary[T scalar] struct {
	Data []T
}

// AsBinary constructs the raw-binary wrapper over data.
func AsBinary[T scalar](data []T) Binary[T] {
	return Binary[T]{Data: data}
}

func (b Binary[T]) byteLen() int {
	var zero T
	return len(b.Data) * int(unsafe.Sizeof(zero))
}

func (b Binary[T]) bytesView() []byte {
	if len(b.Data) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&b.Data[0])), b.byteLen())
}

func (b Binary[T]) loadBytes(src []byte) error {
	need := b.byteLen()
	if len(src) < need {
		return ErrOutOfRange
	}
	if need == 0 {
		return nil
	}
	copy(b.bytesView(), src[:need])
	return nil
}

// rawBinary is the unexported capability dispatch checks for before
// doing anything else that would require a pointer argument, second
// in priority right after raw-pointer rejection.
type rawBinary interface {
	byteLen() int
	bytesView() []byte
	loadBytes(src []byte) error
}

var _ rawBinary = Binary[byte]{}
