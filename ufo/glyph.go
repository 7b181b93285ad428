package ufo

// PointType classifies a contour point, following the UFO glif model.
type PointType string

// Point types as they appear in glif files. An off-curve point has no
// type attribute, hence the empty string.
const (
	Move     PointType = "move"
	Line     PointType = "line"
	OffCurve PointType = ""
	Curve    PointType = "curve"
	QCurve   PointType = "qcurve"
)

// Point is a single contour point.
type Point struct {
	X, Y   float64
	Type   PointType
	Smooth bool
	Name   string
}

// Contour is an ordered sequence of points.
type Contour struct {
	Points []Point
}

// Copy returns an independent copy of the contour.
func (c Contour) Copy() Contour {
	points := make([]Point, len(c.Points))
	copy(points, c.Points)
	return Contour{Points: points}
}

// Transform is a 2x3 affine transformation, with the field naming used
// by UFO component elements.
type Transform struct {
	XScale  float64
	XYScale float64
	YXScale float64
	YScale  float64
	XOffset float64
	YOffset float64
}

// Identity is the neutral transform.
var Identity = Transform{XScale: 1, YScale: 1}

// Component is a reference to another glyph, placed with a transform.
type Component struct {
	BaseGlyph string
	Transform Transform
}

// Anchor is a named attachment position.
type Anchor struct {
	Name string
	X, Y float64
}

// Glyph is one glyph: an ordered sequence of contours plus an ordered
// sequence of component references, with metrics and identity data.
type Glyph struct {
	Name       string
	Width      float64
	Height     float64
	Unicodes   []rune
	Contours   []Contour
	Components []Component
	Anchors    []Anchor
	Lib        Lib
}

// IsEmpty reports whether the glyph has neither contours nor components.
// Empty glyphs get special treatment during master collection: a glyph
// empty in a non-default source usually means "not defined here", not
// "deliberately blank".
func (g *Glyph) IsEmpty() bool {
	return len(g.Contours) == 0 && len(g.Components) == 0
}

// ClearOutline removes all contours and components, leaving metrics,
// unicodes and anchors untouched.
func (g *Glyph) ClearOutline() {
	g.Contours = nil
	g.Components = nil
}

// Copy returns a deep copy of the glyph.
func (g *Glyph) Copy() *Glyph {
	out := &Glyph{
		Name:   g.Name,
		Width:  g.Width,
		Height: g.Height,
	}
	if g.Unicodes != nil {
		out.Unicodes = make([]rune, len(g.Unicodes))
		copy(out.Unicodes, g.Unicodes)
	}
	if g.Contours != nil {
		out.Contours = make([]Contour, len(g.Contours))
		for i, c := range g.Contours {
			out.Contours[i] = c.Copy()
		}
	}
	if g.Components != nil {
		out.Components = make([]Component, len(g.Components))
		copy(out.Components, g.Components)
	}
	if g.Anchors != nil {
		out.Anchors = make([]Anchor, len(g.Anchors))
		copy(out.Anchors, g.Anchors)
	}
	if g.Lib != nil {
		out.Lib = g.Lib.Copy()
	}
	return out
}
