package archive

import (
	"fmt"
	"math"
	"reflect"
	"unsafe"

	pkgerrors "github.com/pkg/errors"

	"github.com/rawbytedev/archive/internal/wire"
)

// byteSink and byteSource are the capabilities a concrete archive must
// provide for dispatch to move raw bytes. They are unexported so only
// this module's archive types (or types embedding them) can implement
// Archive fully — the Go analogue of the registration facility's
// "explicit list of additional archive directions" being limited to
// archives built from the primitives this package exports.
type byteSink interface {
	Archive
	writeRaw(p []byte) error
}

type byteSource interface {
	Archive
	readRaw(n int) ([]byte, error)
}

const maxCount = math.MaxUint32

// dispatch is the single generic entry point: it routes v to exactly
// one handler, checked in a fixed priority order (raw binary wrapper,
// explicit polymorphic wrapper, pointer, Serialize hook, scalar,
// container, owning pointer, polymorphic interface, then rejection).
func dispatch(a Archive, v any) error {
	if v == nil {
		return newError(KindUnsupportedType, "archive: nil value")
	}

	// Priority 2: raw-binary wrapper, checked ahead of the pointer
	// requirement below because it already carries reference semantics
	// (a Binary is a view over caller-owned memory, not itself a
	// target to overwrite).
	if bw, ok := v.(rawBinary); ok {
		return dispatchRawBinary(a, bw)
	}

	// Explicit polymorphic wrapper, same reasoning — it wraps an
	// interface value, already a reference.
	if pw, ok := v.(polymorphicWrapper); ok {
		return pw.serializePoly(a)
	}

	// Priority 1 is really "anything that isn't one of the two
	// reference-carrying wrappers above must be an owning pointer";
	// Go's single pointer type collapses raw/owning into one case, so
	// there is nothing further to reject here.
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return newError(KindUnsupportedType, fmt.Sprintf("archive: %T must be passed by pointer", v))
	}

	return dispatchPointer(a, rv)
}

func dispatchPointer(a Archive, rv reflect.Value) error {
	// Priority 3: user Serialize hook. Checked before any built-in
	// container handler so a type can always override default
	// container behavior by implementing its own.
	if s, ok := rv.Interface().(Serializable); ok {
		return s.Serialize(a)
	}

	elem := rv.Elem()

	switch elem.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		// Priorities 4 and 5: primitive scalars and enumerations share
		// one code path in Go, since a named integer type reports the
		// same Kind as its underlying type.
		return dispatchScalar(a, elem)
	case reflect.String:
		return dispatchString(a, elem)
	case reflect.Slice:
		return dispatchSlice(a, elem)
	case reflect.Array:
		return dispatchArray(a, elem)
	case reflect.Map:
		return dispatchMap(a, elem)
	case reflect.Pointer:
		return dispatchOwningPointer(a, elem)
	case reflect.Interface:
		return dispatchPolymorphicField(a, elem)
	default:
		// Priority 6: fallback, static rejection. A struct with no
		// Serialize hook lands here deliberately — auto-deriving one
		// via reflection is available only as the opt-in AutoStruct
		// wrapper (auto.go), never as a silent fallback.
		return newError(KindUnsupportedType, fmt.Sprintf("archive: %s has no Serialize method and is not a built-in container", elem.Type()))
	}
}

func dispatchRawBinary(a Archive, bw rawBinary) error {
	switch a.Direction() {
	case Saving:
		sink, ok := a.(byteSink)
		if !ok {
			return errNotRawCapable(a)
		}
		return sink.writeRaw(bw.bytesView())
	default:
		src, ok := a.(byteSource)
		if !ok {
			return errNotRawCapable(a)
		}
		chunk, err := src.readRaw(bw.byteLen())
		if err != nil {
			return err
		}
		return bw.loadBytes(chunk)
	}
}

func dispatchScalar(a Archive, elem reflect.Value) error {
	switch a.Direction() {
	case Saving:
		sink, ok := a.(byteSink)
		if !ok {
			return errNotRawCapable(a)
		}
		return sink.writeRaw(wire.PutScalar(nil, elem))
	default:
		src, ok := a.(byteSource)
		if !ok {
			return errNotRawCapable(a)
		}
		chunk, err := src.readRaw(wire.FixedSize(elem.Kind()))
		if err != nil {
			return err
		}
		return wire.GetScalar(chunk, elem)
	}
}

func dispatchString(a Archive, elem reflect.Value) error {
	switch a.Direction() {
	case Saving:
		sink, ok := a.(byteSink)
		if !ok {
			return errNotRawCapable(a)
		}
		s := elem.String()
		if len(s) > maxCount {
			return ErrContainerTooLarge
		}
		if err := sink.writeRaw(wire.PutSize(nil, uint32(len(s)))); err != nil {
			return err
		}
		return sink.writeRaw([]byte(s))
	default:
		src, ok := a.(byteSource)
		if !ok {
			return errNotRawCapable(a)
		}
		n, err := readSize(src)
		if err != nil {
			return err
		}
		chunk, err := src.readRaw(int(n))
		if err != nil {
			return err
		}
		elem.SetString(string(chunk))
		return nil
	}
}

func dispatchSlice(a Archive, elem reflect.Value) error {
	elemType := elem.Type().Elem()
	fastPath := wire.FixedKind(elemType.Kind())

	switch a.Direction() {
	case Saving:
		sink, ok := a.(byteSink)
		if !ok {
			return errNotRawCapable(a)
		}
		n := elem.Len()
		if n > maxCount {
			return ErrContainerTooLarge
		}
		if err := sink.writeRaw(wire.PutSize(nil, uint32(n))); err != nil {
			return err
		}
		if fastPath {
			return sink.writeRaw(rawBytesOf(elem))
		}
		for i := 0; i < n; i++ {
			if err := a.Value(elem.Index(i).Addr().Interface()); err != nil {
				return err
			}
		}
		return nil
	default:
		src, ok := a.(byteSource)
		if !ok {
			return errNotRawCapable(a)
		}
		n, err := readSize(src)
		if err != nil {
			return err
		}
		out := reflect.MakeSlice(elem.Type(), int(n), int(n))
		if fastPath {
			chunk, err := src.readRaw(int(n) * wire.FixedSize(elemType.Kind()))
			if err != nil {
				return err
			}
			copy(rawBytesOf(out), chunk)
		} else {
			for i := 0; i < int(n); i++ {
				if err := a.Value(out.Index(i).Addr().Interface()); err != nil {
					return err
				}
			}
		}
		elem.Set(out)
		return nil
	}
}

func dispatchArray(a Archive, elem reflect.Value) error {
	elemType := elem.Type().Elem()
	fastPath := wire.FixedKind(elemType.Kind())
	n := elem.Len()

	switch a.Direction() {
	case Saving:
		sink, ok := a.(byteSink)
		if !ok {
			return errNotRawCapable(a)
		}
		if fastPath {
			return sink.writeRaw(rawBytesOf(elem))
		}
		for i := 0; i < n; i++ {
			if err := a.Value(elem.Index(i).Addr().Interface()); err != nil {
				return err
			}
		}
		return nil
	default:
		src, ok := a.(byteSource)
		if !ok {
			return errNotRawCapable(a)
		}
		if fastPath {
			chunk, err := src.readRaw(n * wire.FixedSize(elemType.Kind()))
			if err != nil {
				return err
			}
			copy(rawBytesOf(elem), chunk)
			return nil
		}
		for i := 0; i < n; i++ {
			if err := a.Value(elem.Index(i).Addr().Interface()); err != nil {
				return err
			}
		}
		return nil
	}
}

func dispatchMap(a Archive, elem reflect.Value) error {
	t := elem.Type()
	keyType, valType := t.Key(), t.Elem()

	switch a.Direction() {
	case Saving:
		sink, ok := a.(byteSink)
		if !ok {
			return errNotRawCapable(a)
		}
		n := elem.Len()
		if n > maxCount {
			return ErrContainerTooLarge
		}
		if err := sink.writeRaw(wire.PutSize(nil, uint32(n))); err != nil {
			return err
		}
		iter := elem.MapRange()
		for iter.Next() {
			kCopy := reflect.New(keyType).Elem()
			kCopy.Set(iter.Key())
			vCopy := reflect.New(valType).Elem()
			vCopy.Set(iter.Value())
			if err := a.Value(kCopy.Addr().Interface()); err != nil {
				return err
			}
			if err := a.Value(vCopy.Addr().Interface()); err != nil {
				return err
			}
		}
		return nil
	default:
		src, ok := a.(byteSource)
		if !ok {
			return errNotRawCapable(a)
		}
		n, err := readSize(src)
		if err != nil {
			return err
		}
		out := reflect.MakeMapWithSize(t, int(n))
		for i := 0; i < int(n); i++ {
			kTmp := reflect.New(keyType).Elem()
			vTmp := reflect.New(valType).Elem()
			if err := a.Value(kTmp.Addr().Interface()); err != nil {
				return err
			}
			if err := a.Value(vTmp.Addr().Interface()); err != nil {
				return err
			}
			// A duplicate key keeps the value loaded first; the later
			// entry is still read, then discarded.
			if out.MapIndex(kTmp).IsValid() {
				continue
			}
			out.SetMapIndex(kTmp, vTmp)
		}
		elem.Set(out)
		return nil
	}
}

func dispatchOwningPointer(a Archive, elem reflect.Value) error {
	switch a.Direction() {
	case Saving:
		if elem.IsNil() {
			return ErrAttemptToSerializeNull
		}
		return a.Value(elem.Interface())
	default:
		elem.Set(reflect.New(elem.Type().Elem()))
		return a.Value(elem.Interface())
	}
}

func dispatchPolymorphicField(a Archive, elem reflect.Value) error {
	switch a.Direction() {
	case Saving:
		if elem.IsNil() {
			return ErrAttemptToSerializeNull
		}
		pb, ok := elem.Interface().(PolymorphicBase)
		if !ok {
			return newError(KindUnsupportedType, fmt.Sprintf("archive: %s does not implement PolymorphicBase", elem.Type()))
		}
		if polymorphicSave == nil {
			return wrapUnwired()
		}
		return polymorphicSave(a, pb)
	default:
		if polymorphicLoad == nil {
			return wrapUnwired()
		}
		pb, err := polymorphicLoad(a)
		if err != nil {
			return err
		}
		pv := reflect.ValueOf(pb)
		if !pv.Type().AssignableTo(elem.Type()) {
			return ErrPolymorphicTypeMismatch
		}
		elem.Set(pv)
		return nil
	}
}

func readSize(src byteSource) (uint32, error) {
	chunk, err := src.readRaw(wire.SizePrefixLen)
	if err != nil {
		return 0, err
	}
	n, _, err := wire.GetSize(chunk)
	return n, err
}

// rawBytesOf reinterprets the backing storage of an addressable slice
// or array of fixed-kind elements as a byte slice, without copying,
// using unsafe.Slice aliasing over either container kind.
func rawBytesOf(v reflect.Value) []byte {
	n := v.Len()
	if n == 0 {
		return nil
	}
	elemSize := wire.FixedSize(v.Type().Elem().Kind())
	ptr := v.Index(0).Addr().UnsafePointer()
	return unsafe.Slice((*byte)(ptr), n*elemSize)
}

func errNotRawCapable(a Archive) error {
	return pkgerrors.Wrapf(ErrUnsupportedType, "archive: %T does not support raw byte access", a)
}
