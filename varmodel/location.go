package varmodel

import (
	"sort"
	"strconv"
	"strings"
)

// Location is a point in design space or normalized space, mapping axis
// names to coordinates. Axes absent from a location are at their default.
type Location map[string]float64

// Bounds holds the minimum, default and maximum of one axis, in design
// space coordinates.
type Bounds struct {
	Min     float64
	Default float64
	Max     float64
}

// AxisBounds maps axis names to their design space bounds.
type AxisBounds map[string]Bounds

// Copy returns an independent copy of a location.
func (loc Location) Copy() Location {
	out := make(Location, len(loc))
	for k, v := range loc {
		out[k] = v
	}
	return out
}

// Key renders a location as a canonical string, usable as a map key.
// Axes are sorted by name; the numeric format is the shortest one that
// round-trips, so structurally equal locations produce equal keys.
func (loc Location) Key() string {
	axes := make([]string, 0, len(loc))
	for a := range loc {
		axes = append(axes, a)
	}
	sort.Strings(axes)
	var sb strings.Builder
	for i, a := range axes {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(a)
		sb.WriteByte('=')
		sb.WriteString(strconv.FormatFloat(loc[a], 'g', -1, 64))
	}
	return sb.String()
}

// String implements fmt.Stringer.
func (loc Location) String() string {
	return "{" + loc.Key() + "}"
}

// prune drops axes sitting at the normalized default. The variation model
// treats a location only by its non-default axes.
func (loc Location) prune() Location {
	out := make(Location)
	for k, v := range loc {
		if v != 0 {
			out[k] = v
		}
	}
	return out
}

// NormalizeValue scales v into the canonical [-1,1] range of an axis:
// values below the default map linearly into [-1,0], values above into
// [0,1], the default itself to 0. v is clamped to the axis range first.
func NormalizeValue(v float64, b Bounds) float64 {
	if v > b.Max {
		v = b.Max
	}
	if v < b.Min {
		v = b.Min
	}
	switch {
	case v == b.Default:
		return 0
	case v < b.Default:
		return (v - b.Default) / (b.Default - b.Min)
	default:
		return (v - b.Default) / (b.Max - b.Default)
	}
}

// NormalizeLocation normalizes a design space location against axis
// bounds. The result contains exactly the axes listed in bounds; axes
// missing from the location are taken at their default (i.e. 0).
func NormalizeLocation(loc Location, bounds AxisBounds) Location {
	out := make(Location, len(bounds))
	for axis, b := range bounds {
		v, ok := loc[axis]
		if !ok {
			v = b.Default
		}
		out[axis] = NormalizeValue(v, b)
	}
	return out
}

// PiecewiseLinearMap maps v through a set of (input, output) control
// points, interpolating linearly between neighboring points. Outside the
// mapped range the mapping continues with slope 1. An empty mapping is
// the identity.
func PiecewiseLinearMap(v float64, mapping map[float64]float64) float64 {
	if len(mapping) == 0 {
		return v
	}
	if out, ok := mapping[v]; ok {
		return out
	}
	keys := make([]float64, 0, len(mapping))
	for k := range mapping {
		keys = append(keys, k)
	}
	sort.Float64s(keys)
	if v < keys[0] {
		return v + mapping[keys[0]] - keys[0]
	}
	if v > keys[len(keys)-1] {
		k := keys[len(keys)-1]
		return v + mapping[k] - k
	}
	i := sort.SearchFloat64s(keys, v)
	a, b := keys[i-1], keys[i]
	va, vb := mapping[a], mapping[b]
	return va + (vb-va)*(v-a)/(b-a)
}
