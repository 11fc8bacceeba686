package registry

import (
	"reflect"

	"github.com/rawbytedev/archive"
	"github.com/rawbytedev/archive/internal/logging"
)

// Register declares T as a concrete polymorphic type under name. Call
// it from an init function in the package that defines T, the same
// place database/sql drivers call sql.Register.
//
// T must satisfy archive.PolymorphicBase (normally by embedding
// archive.Polymorphic) and *T must satisfy archive.Serializable. A
// type missing either is a programming error caught at registration
// time: the failure is logged and swallowed rather than panicking, so
// a missing declaration surfaces as an ordinary error at first use
// (undeclared polymorphic type) rather than crashing the registering
// package's init.
func Register[T any](name string) {
	var zero T
	if _, ok := any(&zero).(archive.PolymorphicBase); !ok {
		logging.L.WithField("type", name).Warn("registry: type does not implement PolymorphicBase, skipped")
		return
	}
	if _, ok := any(&zero).(archive.Serializable); !ok {
		logging.L.WithField("type", name).Warn("registry: *T does not implement Serializable, skipped")
		return
	}

	t := reflect.TypeOf(zero)

	save := func(a archive.Archive, v archive.PolymorphicBase) error {
		s, ok := v.(archive.Serializable)
		if !ok {
			return archive.ErrPolymorphicTypeMismatch
		}
		return s.Serialize(a)
	}
	load := func(a archive.Archive) (archive.PolymorphicBase, error) {
		instance := reflect.New(t)
		s, ok := instance.Interface().(archive.Serializable)
		if !ok {
			return nil, archive.ErrPolymorphicTypeMismatch
		}
		if err := s.Serialize(a); err != nil {
			return nil, err
		}
		pb, ok := instance.Interface().(archive.PolymorphicBase)
		if !ok {
			return nil, archive.ErrPolymorphicTypeMismatch
		}
		return pb, nil
	}

	Singleton().Add(name, t, save, load)
}
