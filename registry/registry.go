// Package registry is the polymorphic type registry: the mapping
// between a concrete type's stable 64-bit id and the functions that
// know how to save or load it behind an archive.Archive interface.
//
// archive cannot import this package directly without a cycle (this
// package needs Archive, Serializable and PolymorphicBase from there),
// so wiring happens in the other direction: this package's init
// installs its save/load entry points into archive via
// archive.SetPolymorphicHooks, the same self-registration shape
// database/sql drivers and image codecs use via blank import.
package registry

import (
	"reflect"
	"sync"

	pkgerrors "github.com/pkg/errors"

	"github.com/rawbytedev/archive"
	"github.com/rawbytedev/archive/internal/logging"
	"github.com/rawbytedev/archive/typeid"
)

// SaveHandler writes the concrete value behind v to a.
type SaveHandler func(a archive.Archive, v archive.PolymorphicBase) error

// LoadHandler allocates a concrete value, loads it from a, and returns
// it boxed back in the interface.
type LoadHandler func(a archive.Archive) (archive.PolymorphicBase, error)

// Registry is the id/handler table for one direction pair. Lookups are
// read-mostly after startup; the mutex only ever serializes against
// concurrent Add calls, typically all made from package init functions
// before any archive is in use.
type Registry struct {
	mu       sync.RWMutex
	idToSave map[uint64]SaveHandler
	idToLoad map[uint64]LoadHandler
	typeToID map[reflect.Type]uint64
}

func newRegistry() *Registry {
	return &Registry{
		idToSave: make(map[uint64]SaveHandler),
		idToLoad: make(map[uint64]LoadHandler),
		typeToID: make(map[reflect.Type]uint64),
	}
}

// Add associates name's hash with save and load handlers for the
// concrete type t. A second Add for the same id or the same type
// replaces the previous entry; there is no rejection of a
// re-registration.
func (r *Registry) Add(name string, t reflect.Type, save SaveHandler, load LoadHandler) {
	id := typeid.MakeID(name)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.idToSave[id] = save
	r.idToLoad[id] = load
	r.typeToID[t] = id
	logging.L.WithFields(map[string]any{"type": t.String(), "id": id}).Debug("registry: registered")
}

// SerializeSave writes v's registry id followed by its body to a. The
// lock is released before the handler runs, so a handler that itself
// triggers nested polymorphic saves never reenters this Registry while
// holding it.
func (r *Registry) SerializeSave(a archive.Archive, v archive.PolymorphicBase) error {
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	r.mu.RLock()
	id, ok := r.typeToID[t]
	var handler SaveHandler
	if ok {
		handler = r.idToSave[id]
	}
	r.mu.RUnlock()
	if !ok {
		return archive.ErrUndeclaredPolymorphicType
	}
	if err := a.Value(&id); err != nil {
		return pkgerrors.Wrap(err, "registry: writing type id")
	}
	return handler(a, v)
}

// SerializeLoad reads a registry id from a, looks up its load handler,
// and runs it.
func (r *Registry) SerializeLoad(a archive.Archive) (archive.PolymorphicBase, error) {
	var id uint64
	if err := a.Value(&id); err != nil {
		return nil, pkgerrors.Wrap(err, "registry: reading type id")
	}
	r.mu.RLock()
	handler, ok := r.idToLoad[id]
	r.mu.RUnlock()
	if !ok {
		logging.L.WithField("id", id).Warn("registry: load miss, undeclared type id")
		return nil, archive.ErrUndeclaredPolymorphicType
	}
	return handler(a)
}
