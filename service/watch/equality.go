package watch

// Equality decides whether two observed values represent the same state.
// Watched value types without meaningful structural equality (foreign types,
// partially populated views) must supply their own implementation; the table
// refuses to guess.
type Equality[V any] interface {
	Equal(previous, current V) bool
}

// EqualityFunc adapts an ordinary function to the Equality interface.
type EqualityFunc[V any] func(previous, current V) bool

// Equal delegates to the wrapped function.
func (f EqualityFunc[V]) Equal(previous, current V) bool {
	return f(previous, current)
}

// Comparable returns an Equality for types supporting built-in comparison.
func Comparable[V comparable]() Equality[V] {
	return EqualityFunc[V](func(previous, current V) bool {
		return previous == current
	})
}
