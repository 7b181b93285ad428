package ds

import "github.com/npillmayer/instancer/varmodel"

// AxisMap is one control point of an axis's user-space to design-space
// mapping.
type AxisMap struct {
	Input  float64 // user space
	Output float64 // design space
}

// Axis describes one interpolation axis. Minimum, Default and Maximum
// are user-space values; the Map translates between user space and
// design space (identity when empty).
type Axis struct {
	Name       string
	Tag        string
	Minimum    float64
	Default    float64
	Maximum    float64
	Hidden     bool
	Map        []AxisMap
	Values     []float64         // set on discrete (non-interpolating) axes
	LabelNames map[string]string // BCP-47 tag -> display name
}

// IsDiscrete reports whether the axis is a discrete axis, which does
// not interpolate: documents carrying one must be split into continuous
// sub-documents before instance generation.
func (a *Axis) IsDiscrete() bool {
	return len(a.Values) > 0
}

// HasMap reports whether the axis carries a non-identity mapping.
func (a *Axis) HasMap() bool {
	return len(a.Map) > 0
}

// MapForward maps a user-space value to design space.
func (a *Axis) MapForward(v float64) float64 {
	if len(a.Map) == 0 {
		return v
	}
	mapping := make(map[float64]float64, len(a.Map))
	for _, m := range a.Map {
		mapping[m.Input] = m.Output
	}
	return varmodel.PiecewiseLinearMap(v, mapping)
}

// MapBackward maps a design-space value back to user space.
func (a *Axis) MapBackward(v float64) float64 {
	if len(a.Map) == 0 {
		return v
	}
	mapping := make(map[float64]float64, len(a.Map))
	for _, m := range a.Map {
		mapping[m.Output] = m.Input
	}
	return varmodel.PiecewiseLinearMap(v, mapping)
}

// DesignBounds returns the axis extent in design space coordinates.
func (a *Axis) DesignBounds() varmodel.Bounds {
	return varmodel.Bounds{
		Min:     a.MapForward(a.Minimum),
		Default: a.MapForward(a.Default),
		Max:     a.MapForward(a.Maximum),
	}
}
