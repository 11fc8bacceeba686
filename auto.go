package archive

import (
	"fmt"
	"reflect"
	"sync"
)

// AutoStruct adapts a struct without a hand-written Serialize method to
// the dispatch chain, by walking its exported fields in declaration
// order and running each one through Value. It is opt-in: dispatch's
// static-rejection fallback (dispatch.go, priority 6) never reaches
// for this automatically, since doing so would silently bypass a
// type's own Serialize method by construction instead of by omission.
//
// Wrap the struct pointer once per call site:
//
//	var p Point
//	err := a.Value(AutoStruct(&p))
//
// The field walk is cached per reflect.Type the first time a given
// struct shape is seen, amortizing the cost of StructField lookups
// across repeated calls. The cache only remembers which field indexes
// to visit, leaving the actual per-field encoding to the ordinary
// dispatch chain rather than duplicating it.
type autoStruct struct {
	ptr any
}

func AutoStruct(structPtr any) Serializable {
	return &autoStruct{ptr: structPtr}
}

var autoPlans sync.Map // reflect.Type -> []int (field indexes)

func fieldPlan(t reflect.Type) []int {
	if cached, ok := autoPlans.Load(t); ok {
		return cached.([]int)
	}
	idx := make([]int, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.PkgPath != "" {
			continue
		}
		idx = append(idx, i)
	}
	autoPlans.Store(t, idx)
	return idx
}

func (w autoStruct) Serialize(a Archive) error {
	rv := reflect.ValueOf(w.ptr)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return newError(KindUnsupportedType, fmt.Sprintf("archive: AutoStruct requires a struct pointer, got %T", w.ptr))
	}
	elem := rv.Elem()
	for _, i := range fieldPlan(elem.Type()) {
		fv := elem.Field(i)
		if err := a.Value(fv.Addr().Interface()); err != nil {
			return err
		}
	}
	return nil
}
