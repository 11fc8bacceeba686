package archive

import "github.com/pkg/errors"

// ErrorKind identifies one of the error taxonomy entries from the
// design. Callers that need to branch on kind rather than sentinel
// identity can use Kind(err) instead of errors.Is chains.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindOutOfRange
	KindUndeclaredPolymorphicType
	KindAttemptToSerializeNull
	KindPolymorphicTypeMismatch
	KindUnsupportedType
)

type taggedError struct {
	kind ErrorKind
	msg  string
}

func (e *taggedError) Error() string { return e.msg }

// Is reports two taggedErrors equal by kind, not by message or
// identity, so a dynamically-built error (e.g. one carrying the
// offending type's name) still satisfies errors.Is against the
// matching package-level sentinel.
func (e *taggedError) Is(target error) bool {
	te, ok := target.(*taggedError)
	return ok && te.kind == e.kind
}

func newError(kind ErrorKind, msg string) error {
	return &taggedError{kind: kind, msg: msg}
}

// Kind extracts the ErrorKind carried by err, unwrapping any
// github.com/pkg/errors wrapping applied along the way. It returns
// KindNone for errors not raised by this package.
func Kind(err error) ErrorKind {
	for err != nil {
		if te, ok := err.(*taggedError); ok {
			return te.kind
		}
		err = errors.Unwrap(err)
	}
	return KindNone
}

var (
	// ErrOutOfRange is raised when an input archive cannot satisfy a
	// read because fewer bytes remain than the value requires.
	ErrOutOfRange = newError(KindOutOfRange, "archive: out of range")

	// ErrUndeclaredPolymorphicType is raised when the registry misses a
	// lookup, either by the concrete type on save or by id on load.
	ErrUndeclaredPolymorphicType = newError(KindUndeclaredPolymorphicType, "archive: undeclared polymorphic type")

	// ErrAttemptToSerializeNull is raised when an owning pointer is nil
	// at save time.
	ErrAttemptToSerializeNull = newError(KindAttemptToSerializeNull, "archive: attempt to serialize null pointer")

	// ErrPolymorphicTypeMismatch is raised when a loaded concrete type
	// is not assignable to the declared static interface type.
	ErrPolymorphicTypeMismatch = newError(KindPolymorphicTypeMismatch, "archive: polymorphic type mismatch")

	// ErrUnsupportedType is raised for any value that resolves to none
	// of the handlers in the dispatch priority chain.
	ErrUnsupportedType = newError(KindUnsupportedType, "archive: unsupported type")

	// ErrContainerTooLarge is raised when a container's element count
	// would not fit the 4-byte size prefix: more than 2^32-1 elements
	// cannot be serialized.
	ErrContainerTooLarge = newError(KindUnsupportedType, "archive: container exceeds 2^32-1 elements")
)
