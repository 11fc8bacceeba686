package archive

// Pair and Tuple3 stand in for std::pair/std::tuple: fixed-size,
// no count prefix, items written in declared order. Go has no
// variadic tuple type, so these are ordinary generic structs; from the
// dispatch layer's point of view they need no special handling at all,
// because implementing Serialize already routes them through the
// highest-priority branch of the chain.
type Pair[A, B any] struct {
	First  A
	Second B
}

func (p *Pair[A, B]) Serialize(a Archive) error {
	if err := a.Value(&p.First); err != nil {
		return err
	}
	return a.Value(&p.Second)
}

type Tuple3[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

func (t *Tuple3[A, B, C]) Serialize(a Archive) error {
	if err := a.Value(&t.First); err != nil {
		return err
	}
	if err := a.Value(&t.Second); err != nil {
		return err
	}
	return a.Value(&t.Third)
}
