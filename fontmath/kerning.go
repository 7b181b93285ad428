package fontmath

import (
	"strings"

	"github.com/npillmayer/instancer/ufo"
)

// MathKerning wraps a kerning table for interpolation, scoped to a fixed
// set of groups. The groups are used for value lookup only (pair
// fallback) and are never interpolated; by convention they are always
// those of the default source.
type MathKerning struct {
	Pairs  ufo.Kerning
	Groups ufo.Groups

	side1 map[string]string // member glyph -> public.kern1 group
	side2 map[string]string // member glyph -> public.kern2 group
}

// NewMathKerning copies a kerning table and its groups into a math
// shell.
func NewMathKerning(kerning ufo.Kerning, groups ufo.Groups) *MathKerning {
	m := &MathKerning{
		Pairs:  kerning.Copy(),
		Groups: groups.Copy(),
	}
	if m.Pairs == nil {
		m.Pairs = make(ufo.Kerning)
	}
	m.indexGroups()
	return m
}

func (m *MathKerning) indexGroups() {
	m.side1 = make(map[string]string)
	m.side2 = make(map[string]string)
	for name, members := range m.Groups {
		switch {
		case strings.HasPrefix(name, ufo.KernGroupSide1Prefix):
			for _, g := range members {
				m.side1[g] = name
			}
		case strings.HasPrefix(name, ufo.KernGroupSide2Prefix):
			for _, g := range members {
				m.side2[g] = name
			}
		}
	}
}

// Lookup resolves the kerning value for a pair, falling back through
// group membership: (first,second), (first,group2), (group1,second),
// (group1,group2). Unresolvable pairs kern by 0.
func (m *MathKerning) Lookup(pair ufo.KerningPair) float64 {
	if v, ok := m.Pairs[pair]; ok {
		return v
	}
	g1, has1 := m.side1[pair.First]
	g2, has2 := m.side2[pair.Second]
	if has2 {
		if v, ok := m.Pairs[ufo.KerningPair{First: pair.First, Second: g2}]; ok {
			return v
		}
	}
	if has1 {
		if v, ok := m.Pairs[ufo.KerningPair{First: g1, Second: pair.Second}]; ok {
			return v
		}
	}
	if has1 && has2 {
		if v, ok := m.Pairs[ufo.KerningPair{First: g1, Second: g2}]; ok {
			return v
		}
	}
	return 0
}

// Copy returns an independent copy.
func (m *MathKerning) Copy() *MathKerning {
	return NewMathKerning(m.Pairs, m.Groups)
}

// combine merges two kerning tables over the union of their pairs,
// resolving values missing on one side through group fallback. Groups
// are taken from the receiver.
func (m *MathKerning) combine(other *MathKerning, op func(a, b float64) float64) *MathKerning {
	out := &MathKerning{
		Pairs:  make(ufo.Kerning, len(m.Pairs)),
		Groups: m.Groups.Copy(),
	}
	for pair, v := range m.Pairs {
		out.Pairs[pair] = op(v, other.Lookup(pair))
	}
	for pair := range other.Pairs {
		if _, done := out.Pairs[pair]; done {
			continue
		}
		out.Pairs[pair] = op(m.Lookup(pair), other.Pairs[pair])
	}
	out.indexGroups()
	return out
}

// Add returns m + other.
func (m *MathKerning) Add(other *MathKerning) (*MathKerning, error) {
	return m.combine(other, func(a, b float64) float64 { return a + b }), nil
}

// Sub returns m - other.
func (m *MathKerning) Sub(other *MathKerning) (*MathKerning, error) {
	return m.combine(other, func(a, b float64) float64 { return a - b }), nil
}

// Scale returns m with all values scaled.
func (m *MathKerning) Scale(factor float64) *MathKerning {
	out := m.Copy()
	for pair, v := range out.Pairs {
		out.Pairs[pair] = v * factor
	}
	return out
}

// Round returns m with all values rounded to integers.
func (m *MathKerning) Round() *MathKerning {
	out := m.Copy()
	for pair, v := range out.Pairs {
		out.Pairs[pair] = OTRound(v)
	}
	return out
}

// ExtractInto writes the kerning table and its kerning groups into a
// font. Non-kerning groups on the font are not touched.
func (m *MathKerning) ExtractInto(f *ufo.Font) {
	f.Kerning = m.Pairs.Copy()
	if f.Groups == nil {
		f.Groups = make(ufo.Groups)
	}
	for name, members := range m.Groups {
		if !ufo.IsKernGroup(name) {
			continue
		}
		mm := make([]string, len(members))
		copy(mm, members)
		f.Groups[name] = mm
	}
}
