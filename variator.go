package instancer

import (
	"sync"

	"github.com/npillmayer/instancer/varmodel"
)

// Master pairs a normalized location with the master data found there.
type Master[T varmodel.Value[T]] struct {
	Location varmodel.Location
	Data     T
}

// Variator owns the masters of one interpolatable quantity (one glyph's
// geometry, the kerning table, or the font info record) together with a
// variation model over their locations, and answers "give me the data
// at location L".
//
// A Variator is immutable after construction; InstanceAt is safe for
// concurrent use.
type Variator[T varmodel.Value[T]] struct {
	masters    []T
	byLocation map[string]T
	model      *varmodel.Model

	// Deltas are computed on first actual interpolation, not at
	// construction: masters are allowed to be mutually incompatible as
	// long as every requested location coincides with one of them.
	deltasOnce sync.Once
	deltas     []T
	deltasErr  error
}

// NewVariator builds a Variator from (normalized location, data) pairs.
// It fails when the variation model cannot be built over the master
// locations: duplicates, or no master at the default location.
func NewVariator[T varmodel.Value[T]](items []Master[T], axisOrder []string) (*Variator[T], error) {
	v := &Variator[T]{
		masters:    make([]T, 0, len(items)),
		byLocation: make(map[string]T, len(items)),
	}
	locations := make([]varmodel.Location, 0, len(items))
	for _, item := range items {
		locations = append(locations, item.Location)
		v.masters = append(v.masters, item.Data)
		v.byLocation[item.Location.Key()] = item.Data
	}
	model, err := varmodel.New(locations, axisOrder)
	if err != nil {
		return nil, err
	}
	v.model = model
	return v, nil
}

// InstanceAt returns the quantity's data at a normalized location.
//
// A location structurally equal to a master's location returns a copy
// of that master's data verbatim, bypassing interpolation. This is both
// an optimization and a feature: instances placed exactly on a master
// reproduce that master even when the full master set is not mutually
// compatible, so a document may carry incompatible bare masters as long
// as nothing actually interpolates across them.
func (v *Variator[T]) InstanceAt(normalized varmodel.Location) (T, error) {
	if master, ok := v.byLocation[normalized.Key()]; ok {
		return master.Copy(), nil
	}
	v.deltasOnce.Do(func() {
		v.deltas, v.deltasErr = varmodel.Deltas(v.model, v.masters)
	})
	if v.deltasErr != nil {
		var zero T
		return zero, v.deltasErr
	}
	return varmodel.InterpolateDeltas(v.model, normalized, v.deltas)
}

// MasterCount returns the number of masters backing the Variator.
func (v *Variator[T]) MasterCount() int {
	return len(v.masters)
}
