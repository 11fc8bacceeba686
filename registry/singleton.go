package registry

import (
	"sync"

	"github.com/rawbytedev/archive"
)

// Singleton returns the process-wide registry every Register[T] call
// populates, created on first use via sync.OnceValue. Saving and
// loading archives share one table, since a save-side id must resolve
// to the same concrete type a load-side id resolves to or round-
// tripping breaks.
var Singleton = sync.OnceValue(newRegistry)

func init() {
	r := Singleton()
	archive.SetPolymorphicHooks(r.SerializeSave, r.SerializeLoad)
}
