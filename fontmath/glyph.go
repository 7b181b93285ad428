package fontmath

import (
	"fmt"

	"github.com/npillmayer/instancer/ufo"
)

// MathGlyph wraps the geometry of one glyph for interpolation: contours,
// components, anchors and advance metrics. Identity data (name,
// unicodes, lib) is deliberately not carried; it comes from the default
// source when an instance is assembled.
type MathGlyph struct {
	Width      float64
	Height     float64
	Contours   []ufo.Contour
	Components []ufo.Component
	Anchors    []ufo.Anchor
}

// NewMathGlyph copies a glyph's geometry into a math shell.
func NewMathGlyph(g *ufo.Glyph) *MathGlyph {
	m := &MathGlyph{Width: g.Width, Height: g.Height}
	if g.Contours != nil {
		m.Contours = make([]ufo.Contour, len(g.Contours))
		for i, c := range g.Contours {
			m.Contours[i] = c.Copy()
		}
	}
	if g.Components != nil {
		m.Components = make([]ufo.Component, len(g.Components))
		copy(m.Components, g.Components)
	}
	if g.Anchors != nil {
		m.Anchors = make([]ufo.Anchor, len(g.Anchors))
		copy(m.Anchors, g.Anchors)
	}
	return m
}

// IsEmpty reports whether the shell holds neither contours nor
// components.
func (m *MathGlyph) IsEmpty() bool {
	return len(m.Contours) == 0 && len(m.Components) == 0
}

// Copy returns an independent copy.
func (m *MathGlyph) Copy() *MathGlyph {
	out := &MathGlyph{Width: m.Width, Height: m.Height}
	if m.Contours != nil {
		out.Contours = make([]ufo.Contour, len(m.Contours))
		for i, c := range m.Contours {
			out.Contours[i] = c.Copy()
		}
	}
	if m.Components != nil {
		out.Components = make([]ufo.Component, len(m.Components))
		copy(out.Components, m.Components)
	}
	if m.Anchors != nil {
		out.Anchors = make([]ufo.Anchor, len(m.Anchors))
		copy(out.Anchors, m.Anchors)
	}
	return out
}

// checkCompatible verifies that two shells can be combined pointwise.
// The error message names the first structural difference, since this is
// the most common integration failure of the whole interpolation
// pipeline.
func (m *MathGlyph) checkCompatible(other *MathGlyph) error {
	if len(m.Contours) != len(other.Contours) {
		return fmt.Errorf("incompatible masters: %d contours vs %d",
			len(m.Contours), len(other.Contours))
	}
	for i := range m.Contours {
		if len(m.Contours[i].Points) != len(other.Contours[i].Points) {
			return fmt.Errorf("incompatible masters: contour %d has %d points vs %d",
				i, len(m.Contours[i].Points), len(other.Contours[i].Points))
		}
	}
	if len(m.Components) != len(other.Components) {
		return fmt.Errorf("incompatible masters: %d components vs %d",
			len(m.Components), len(other.Components))
	}
	return nil
}

// combine applies op pairwise over two compatible shells. Point types,
// smoothness and component base names are taken from the receiver.
// Anchors are paired by name; anchors missing on either side are
// dropped.
func (m *MathGlyph) combine(other *MathGlyph, op func(a, b float64) float64) (*MathGlyph, error) {
	if err := m.checkCompatible(other); err != nil {
		return nil, err
	}
	out := &MathGlyph{
		Width:  op(m.Width, other.Width),
		Height: op(m.Height, other.Height),
	}
	if m.Contours != nil {
		out.Contours = make([]ufo.Contour, len(m.Contours))
		for i, c := range m.Contours {
			points := make([]ufo.Point, len(c.Points))
			for j, p := range c.Points {
				q := other.Contours[i].Points[j]
				points[j] = ufo.Point{
					X:      op(p.X, q.X),
					Y:      op(p.Y, q.Y),
					Type:   p.Type,
					Smooth: p.Smooth,
					Name:   p.Name,
				}
			}
			out.Contours[i] = ufo.Contour{Points: points}
		}
	}
	if m.Components != nil {
		out.Components = make([]ufo.Component, len(m.Components))
		for i, c := range m.Components {
			o := other.Components[i].Transform
			t := c.Transform
			out.Components[i] = ufo.Component{
				BaseGlyph: c.BaseGlyph,
				Transform: ufo.Transform{
					XScale:  op(t.XScale, o.XScale),
					XYScale: op(t.XYScale, o.XYScale),
					YXScale: op(t.YXScale, o.YXScale),
					YScale:  op(t.YScale, o.YScale),
					XOffset: op(t.XOffset, o.XOffset),
					YOffset: op(t.YOffset, o.YOffset),
				},
			}
		}
	}
	if m.Anchors != nil {
		byName := make(map[string]ufo.Anchor, len(other.Anchors))
		for _, a := range other.Anchors {
			byName[a.Name] = a
		}
		for _, a := range m.Anchors {
			b, ok := byName[a.Name]
			if !ok {
				continue
			}
			out.Anchors = append(out.Anchors, ufo.Anchor{
				Name: a.Name,
				X:    op(a.X, b.X),
				Y:    op(a.Y, b.Y),
			})
		}
	}
	return out, nil
}

// Add returns m + other.
func (m *MathGlyph) Add(other *MathGlyph) (*MathGlyph, error) {
	return m.combine(other, func(a, b float64) float64 { return a + b })
}

// Sub returns m - other.
func (m *MathGlyph) Sub(other *MathGlyph) (*MathGlyph, error) {
	return m.combine(other, func(a, b float64) float64 { return a - b })
}

// Scale returns m with all coordinates, metrics and transforms scaled.
func (m *MathGlyph) Scale(factor float64) *MathGlyph {
	out := m.Copy()
	out.Width *= factor
	out.Height *= factor
	for i := range out.Contours {
		points := out.Contours[i].Points
		for j := range points {
			points[j].X *= factor
			points[j].Y *= factor
		}
	}
	for i := range out.Components {
		t := &out.Components[i].Transform
		t.XScale *= factor
		t.XYScale *= factor
		t.YXScale *= factor
		t.YScale *= factor
		t.XOffset *= factor
		t.YOffset *= factor
	}
	for i := range out.Anchors {
		out.Anchors[i].X *= factor
		out.Anchors[i].Y *= factor
	}
	return out
}

// Round returns m with point coordinates, metrics, anchor positions and
// component offsets rounded to integers. Component scale factors are
// left untouched.
func (m *MathGlyph) Round() *MathGlyph {
	out := m.Copy()
	out.Width = OTRound(out.Width)
	out.Height = OTRound(out.Height)
	for i := range out.Contours {
		points := out.Contours[i].Points
		for j := range points {
			points[j].X = OTRound(points[j].X)
			points[j].Y = OTRound(points[j].Y)
		}
	}
	for i := range out.Components {
		t := &out.Components[i].Transform
		t.XOffset = OTRound(t.XOffset)
		t.YOffset = OTRound(t.YOffset)
	}
	for i := range out.Anchors {
		out.Anchors[i].X = OTRound(out.Anchors[i].X)
		out.Anchors[i].Y = OTRound(out.Anchors[i].Y)
	}
	return out
}

// ExtractInto writes the shell's geometry into a glyph, replacing any
// outline already there. Name, unicodes and lib are left alone.
func (m *MathGlyph) ExtractInto(g *ufo.Glyph) {
	g.Width = m.Width
	g.Height = m.Height
	g.Contours = nil
	g.Components = nil
	g.Anchors = nil
	if m.Contours != nil {
		g.Contours = make([]ufo.Contour, len(m.Contours))
		for i, c := range m.Contours {
			g.Contours[i] = c.Copy()
		}
	}
	if m.Components != nil {
		g.Components = make([]ufo.Component, len(m.Components))
		copy(g.Components, m.Components)
	}
	if m.Anchors != nil {
		g.Anchors = make([]ufo.Anchor, len(m.Anchors))
		copy(g.Anchors, m.Anchors)
	}
}
