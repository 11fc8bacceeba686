package archive

// PolymorphicBase is the capability marker every concrete type intended
// for runtime-polymorphic serialization declares. A Go interface plays
// the role of the abstract base: a field declared with a
// PolymorphicBase-embedding interface type can hold any concrete type
// registered against it.
//
// Embed Polymorphic in a concrete type to satisfy this interface.
type PolymorphicBase interface {
	polymorphic()
}

// Polymorphic is embedded by value in concrete types to satisfy
// PolymorphicBase without boilerplate.
type Polymorphic struct{}

func (Polymorphic) polymorphic() {}

// The registry package owns the actual id/handler maps; archive cannot
// import it without a cycle (registry needs Archive, Serializable and
// PolymorphicBase from here). These two hooks are wired by registry's
// init, the same blank-import-registers-itself pattern database/sql
// drivers and image codecs use. Dispatch calls them through this
// indirection; if nothing ever imported the registry package they are
// nil and polymorphic dispatch fails with a clear, named error instead
// of a panic.
var (
	polymorphicSave func(a Archive, v PolymorphicBase) error
	polymorphicLoad func(a Archive) (PolymorphicBase, error)
)

// SetPolymorphicHooks wires the registry package's save/load entry
// points into dispatch. Not for direct use outside this module; the
// registry package calls it from its own init.
func SetPolymorphicHooks(save func(a Archive, v PolymorphicBase) error, load func(a Archive) (PolymorphicBase, error)) {
	polymorphicSave = save
	polymorphicLoad = load
}

// polymorphicWrapper is the explicit marker that a concrete value
// should be saved with a leading id even though the caller holds it by
// concrete type rather than through an owning pointer.
type polymorphicWrapper struct {
	value PolymorphicBase
}

// AsPolymorphic wraps v so that saving it writes the 8-byte registry id
// ahead of v's ordinary body, the same prefix an owning pointer to a
// polymorphic base would get.
func AsPolymorphic(v PolymorphicBase) polymorphicWrapper {
	return polymorphicWrapper{value: v}
}

func (w polymorphicWrapper) serializePoly(a Archive) error {
	switch a.Direction() {
	case Saving:
		if polymorphicSave == nil {
			return wrapUnwired()
		}
		return polymorphicSave(a, w.value)
	default:
		return newError(KindUnsupportedType, "archive: AsPolymorphic used on a loading archive; load through a pointer-to-interface field instead")
	}
}

func wrapUnwired() error {
	return newError(KindUndeclaredPolymorphicType, "archive: no polymorphic registry imported (blank-import the registry package)")
}
