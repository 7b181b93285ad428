package varmodel

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Errors reported during model construction.
var (
	// ErrNoBaseMaster means no master sits at the all-default location.
	ErrNoBaseMaster = errors.New("base master not found at default location")
	// ErrDuplicateLocation means two masters share a location.
	ErrDuplicateLocation = errors.New("master locations must be unique")
)

// Tent is the support of one master along one axis: influence ramps up
// from Start to full effect at Peak and back down to zero at End.
type Tent struct {
	Start float64
	Peak  float64
	End   float64
}

// Support is a master's region of influence, one tent per axis it moves
// on. Axes absent from a support do not constrain the master.
type Support map[string]Tent

// Model is a piecewise-linear variation model over a set of master
// locations in normalized space. A model is immutable after construction
// and safe for concurrent use.
type Model struct {
	axisOrder []string
	locations []Location // pruned, in sorted (master) order
	mapping   []int      // original index -> sorted index
	reverse   []int      // sorted index -> original index
	supports  []Support  // per sorted master
	weights   [][]deltaWeight
}

// deltaWeight is the influence of an earlier master on a later one.
type deltaWeight struct {
	index  int // sorted master index
	scalar float64
}

// New builds a variation model from master locations in normalized space.
// axisOrder fixes the relative importance of axes when ordering masters;
// axes not listed rank behind all listed ones.
//
// Construction fails if the locations are degenerate: duplicates, or no
// master at the all-zero default location.
func New(locations []Location, axisOrder []string) (*Model, error) {
	pruned := make([]Location, len(locations))
	seen := make(map[string]bool, len(locations))
	hasBase := false
	for i, loc := range locations {
		p := loc.prune()
		key := p.Key()
		if seen[key] {
			return nil, fmt.Errorf("%w: %s occurs twice", ErrDuplicateLocation, p)
		}
		seen[key] = true
		if len(p) == 0 {
			hasBase = true
		}
		pruned[i] = p
	}
	if !hasBase {
		return nil, ErrNoBaseMaster
	}

	m := &Model{axisOrder: axisOrder}
	m.sortMasters(pruned)
	m.computeSupports()
	m.computeDeltaWeights()
	tracer().Debugf("variation model over %d masters, %d axes", len(pruned), len(axisOrder))
	return m, nil
}

// Len returns the number of masters in the model.
func (m *Model) Len() int {
	return len(m.locations)
}

// sortMasters orders the pruned locations into canonical master order and
// records the original-index mapping. Order: increasing rank (number of
// moved axes), decreasing count of on-point axes, axis-order indices,
// axis names, value signs, absolute values.
func (m *Model) sortMasters(pruned []Location) {
	// Axis points are the values at which some rank-1 master sits; a
	// multi-axis master whose coordinates all hit axis points sorts
	// earlier than a free-floating one.
	axisPoints := make(map[string]map[float64]bool)
	for _, loc := range pruned {
		if len(loc) != 1 {
			continue
		}
		for axis, v := range loc {
			if axisPoints[axis] == nil {
				axisPoints[axis] = map[float64]bool{0: true}
			}
			axisPoints[axis][v] = true
		}
	}

	axisIndex := make(map[string]int, len(m.axisOrder))
	for i, a := range m.axisOrder {
		axisIndex[a] = i
	}

	type sortKey struct {
		rank     int
		onPoint  int // negated count
		axisIdx  []int
		axes     []string
		signs    []int
		absVals  []float64
	}
	keys := make([]sortKey, len(pruned))
	for i, loc := range pruned {
		var k sortKey
		k.rank = len(loc)
		ordered := orderedAxes(loc, m.axisOrder)
		for _, axis := range ordered {
			v := loc[axis]
			if pts, ok := axisPoints[axis]; ok && pts[v] {
				k.onPoint--
			}
			if idx, ok := axisIndex[axis]; ok {
				k.axisIdx = append(k.axisIdx, idx)
			} else {
				k.axisIdx = append(k.axisIdx, 0x10000)
			}
			k.axes = append(k.axes, axis)
			switch {
			case v < 0:
				k.signs = append(k.signs, -1)
			case v > 0:
				k.signs = append(k.signs, 1)
			default:
				k.signs = append(k.signs, 0)
			}
			k.absVals = append(k.absVals, math.Abs(v))
		}
		keys[i] = k
	}

	order := make([]int, len(pruned))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ka, kb := keys[order[a]], keys[order[b]]
		if ka.rank != kb.rank {
			return ka.rank < kb.rank
		}
		if ka.onPoint != kb.onPoint {
			return ka.onPoint < kb.onPoint
		}
		for i := range ka.axisIdx {
			if ka.axisIdx[i] != kb.axisIdx[i] {
				return ka.axisIdx[i] < kb.axisIdx[i]
			}
		}
		for i := range ka.axes {
			if ka.axes[i] != kb.axes[i] {
				return ka.axes[i] < kb.axes[i]
			}
		}
		for i := range ka.signs {
			if ka.signs[i] != kb.signs[i] {
				return ka.signs[i] < kb.signs[i]
			}
		}
		for i := range ka.absVals {
			if ka.absVals[i] != kb.absVals[i] {
				return ka.absVals[i] < kb.absVals[i]
			}
		}
		return false
	})

	m.locations = make([]Location, len(pruned))
	m.mapping = make([]int, len(pruned))
	m.reverse = make([]int, len(pruned))
	for sortedIdx, origIdx := range order {
		m.locations[sortedIdx] = pruned[origIdx]
		m.mapping[origIdx] = sortedIdx
		m.reverse[sortedIdx] = origIdx
	}
}

// orderedAxes lists a location's axes: those in axisOrder first (in that
// order), remaining ones sorted by name.
func orderedAxes(loc Location, axisOrder []string) []string {
	out := make([]string, 0, len(loc))
	for _, axis := range axisOrder {
		if _, ok := loc[axis]; ok {
			out = append(out, axis)
		}
	}
	rest := make([]string, 0, len(loc))
	for axis := range loc {
		listed := false
		for _, a := range axisOrder {
			if a == axis {
				listed = true
				break
			}
		}
		if !listed {
			rest = append(rest, axis)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

// computeSupports derives each master's support region. The initial
// region per axis spans from 0 (or the axis minimum for negative peaks)
// to the extreme value any master reaches on that axis; it is then shrunk
// against every earlier master falling inside it, splitting along the
// axis that loses the least relative volume.
func (m *Model) computeSupports() {
	minV := make(map[string]float64)
	maxV := make(map[string]float64)
	for _, loc := range m.locations {
		for axis, v := range loc {
			if cur, ok := minV[axis]; !ok || v < cur {
				minV[axis] = v
			}
			if cur, ok := maxV[axis]; !ok || v > cur {
				maxV[axis] = v
			}
		}
	}

	regions := make([]Support, len(m.locations))
	for i, loc := range m.locations {
		region := make(Support, len(loc))
		for axis, v := range loc {
			if v > 0 {
				region[axis] = Tent{0, v, maxV[axis]}
			} else {
				region[axis] = Tent{minV[axis], v, 0}
			}
		}
		regions[i] = region
	}

	m.supports = make([]Support, len(regions))
	for i, region := range regions {
		for j := 0; j < i; j++ {
			prev := regions[j]
			if !sameAxes(prev, region) {
				continue
			}
			// Masters outside the current box do not constrain it.
			relevant := true
			for axis, t := range region {
				pp := prev[axis].Peak
				if !(pp == t.Peak || (t.Start < pp && pp < t.End)) {
					relevant = false
					break
				}
			}
			if !relevant {
				continue
			}
			// Split the box along whatever direction minimizes relative
			// volume loss; on ties, all best directions are split.
			best := make(map[string]Tent)
			bestRatio := -1.0
			for _, axis := range sortedAxes(prev) {
				val := prev[axis].Peak
				t := region[axis]
				newTent := t
				var ratio float64
				switch {
				case val < t.Peak:
					newTent.Start = val
					ratio = (val - t.Peak) / (t.Start - t.Peak)
				case t.Peak < val:
					newTent.End = val
					ratio = (val - t.Peak) / (t.End - t.Peak)
				default:
					continue // same peak, cannot split here
				}
				if ratio > bestRatio {
					best = make(map[string]Tent)
					bestRatio = ratio
				}
				if ratio == bestRatio {
					best[axis] = newTent
				}
			}
			for axis, t := range best {
				region[axis] = t
			}
		}
		m.supports[i] = region
	}
}

func sameAxes(a, b Support) bool {
	if len(a) != len(b) {
		return false
	}
	for axis := range a {
		if _, ok := b[axis]; !ok {
			return false
		}
	}
	return true
}

func sortedAxes(s Support) []string {
	axes := make([]string, 0, len(s))
	for a := range s {
		axes = append(axes, a)
	}
	sort.Strings(axes)
	return axes
}

// computeDeltaWeights records, per master, the influence every earlier
// master has at its location. These weights express each master value as
// a delta on top of the interpolation of all earlier masters.
func (m *Model) computeDeltaWeights() {
	m.weights = make([][]deltaWeight, len(m.locations))
	for i, loc := range m.locations {
		var ws []deltaWeight
		for j := 0; j < i; j++ {
			if scalar := SupportScalar(loc, m.supports[j]); scalar != 0 {
				ws = append(ws, deltaWeight{index: j, scalar: scalar})
			}
		}
		m.weights[i] = ws
	}
}

// SupportScalar computes the weight a support contributes at a location:
// the product of the per-axis tent factors. Missing axes count as 0.
func SupportScalar(loc Location, support Support) float64 {
	scalar := 1.0
	for axis, t := range support {
		if t.Peak == 0 {
			continue
		}
		if t.Start > t.Peak || t.Peak > t.End {
			continue
		}
		if t.Start < 0 && t.End > 0 {
			// Tents spanning the default are invalid in OpenType terms.
			continue
		}
		v := loc[axis]
		if v == t.Peak {
			continue
		}
		if v <= t.Start || t.End <= v {
			return 0
		}
		if v < t.Peak {
			scalar *= (v - t.Start) / (t.Peak - t.Start)
		} else {
			scalar *= (v - t.End) / (t.Peak - t.End)
		}
	}
	return scalar
}

// Scalars returns the interpolation weight of every master (in sorted
// model order) at the given normalized location.
func (m *Model) Scalars(loc Location) []float64 {
	out := make([]float64, len(m.supports))
	for i, support := range m.supports {
		out[i] = SupportScalar(loc, support)
	}
	return out
}

// Supports exposes the computed support regions in sorted master order.
// The returned slice is shared; callers must not modify it.
func (m *Model) Supports() []Support {
	return m.supports
}

// SortedLocations exposes the pruned master locations in sorted model
// order. The returned slice is shared; callers must not modify it.
func (m *Model) SortedLocations() []Location {
	return m.locations
}
