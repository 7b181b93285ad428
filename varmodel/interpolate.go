package varmodel

import "fmt"

// Value is the arithmetic contract interpolatable data must fulfill.
// All operations return new values; implementations never mutate their
// receiver or their arguments. Add and Sub fail when the two operands
// are structurally incompatible (e.g. glyph outlines with differing
// point counts).
type Value[T any] interface {
	Add(other T) (T, error)
	Sub(other T) (T, error)
	Scale(factor float64) T
	Copy() T
}

// Deltas converts master values (given in the order the model was
// constructed with) into per-master deltas relative to the default
// master. It fails if any pair of masters that need to be combined is
// incompatible.
func Deltas[T Value[T]](m *Model, masters []T) ([]T, error) {
	if len(masters) != len(m.locations) {
		return nil, fmt.Errorf("variation model has %d masters, got %d values",
			len(m.locations), len(masters))
	}
	deltas := make([]T, len(masters))
	for i := range m.locations {
		delta := masters[m.reverse[i]].Copy()
		for _, w := range m.weights[i] {
			scaled := deltas[w.index].Scale(w.scalar)
			d, err := delta.Sub(scaled)
			if err != nil {
				return nil, err
			}
			delta = d
		}
		deltas[i] = delta
	}
	return deltas, nil
}

// InterpolateDeltas combines precomputed deltas at a normalized location.
func InterpolateDeltas[T Value[T]](m *Model, loc Location, deltas []T) (T, error) {
	var out T
	if len(deltas) != len(m.locations) {
		return out, fmt.Errorf("variation model has %d masters, got %d deltas",
			len(m.locations), len(deltas))
	}
	scalars := m.Scalars(loc)
	have := false
	for i, scalar := range scalars {
		if scalar == 0 {
			continue
		}
		term := deltas[i].Scale(scalar)
		if !have {
			out = term
			have = true
			continue
		}
		sum, err := out.Add(term)
		if err != nil {
			return out, err
		}
		out = sum
	}
	if !have {
		// Cannot happen for well-formed models: the base master's
		// support is empty and always contributes scalar 1.
		return out, fmt.Errorf("no master contributes at location %s", loc)
	}
	return out, nil
}

// Interpolate runs master values through the model at one normalized
// location: deltas are computed on the fly and combined. Master values
// are given in construction order.
func Interpolate[T Value[T]](m *Model, loc Location, masters []T) (T, error) {
	deltas, err := Deltas(m, masters)
	if err != nil {
		var zero T
		return zero, err
	}
	return InterpolateDeltas(m, loc, deltas)
}
