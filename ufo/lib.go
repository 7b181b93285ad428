package ufo

// Keys with fixed meaning in libs and groups, from the UFO standard and
// the designspace conventions.
const (
	// DefaultLayerName is the name of a font's default glyph layer.
	DefaultLayerName = "public.default"
	// SkipExportGlyphsKey lists glyphs to exclude from compiled output.
	SkipExportGlyphsKey = "public.skipExportGlyphs"
	// DesignLocationKey records the design space location an instance
	// was generated at, as an ordered list of (axis, value) pairs.
	DesignLocationKey = "designspace.location"
	// GlyphOrderKey holds the font's preferred glyph ordering.
	GlyphOrderKey = "public.glyphOrder"
	// KernGroupSide1Prefix and KernGroupSide2Prefix mark kerning groups.
	KernGroupSide1Prefix = "public.kern1."
	KernGroupSide2Prefix = "public.kern2."
)

// Lib is a UFO lib dictionary: string keys, property-list values
// (strings, numbers, booleans, lists, nested dictionaries).
type Lib map[string]any

// Copy returns a deep copy of the lib.
func (l Lib) Copy() Lib {
	if l == nil {
		return nil
	}
	out := make(Lib, len(l))
	for k, v := range l {
		out[k] = copyValue(v)
	}
	return out
}

// copyValue deep-copies a property-list value. Scalars are immutable and
// returned as-is.
func copyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = copyValue(item)
		}
		return out
	case Lib:
		return val.Copy()
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = copyValue(item)
		}
		return out
	case []string:
		out := make([]string, len(val))
		copy(out, val)
		return out
	default:
		return v
	}
}

// Groups maps group names to ordered member glyph lists.
type Groups map[string][]string

// Copy returns a deep copy of the groups.
func (g Groups) Copy() Groups {
	if g == nil {
		return nil
	}
	out := make(Groups, len(g))
	for name, members := range g {
		m := make([]string, len(members))
		copy(m, members)
		out[name] = m
	}
	return out
}

// IsKernGroup reports whether a group name is a kerning group.
func IsKernGroup(name string) bool {
	return len(name) >= len(KernGroupSide1Prefix) &&
		(name[:len(KernGroupSide1Prefix)] == KernGroupSide1Prefix ||
			name[:len(KernGroupSide2Prefix)] == KernGroupSide2Prefix)
}

// KerningPair is the (left, right) key of a kerning entry. Either side
// may be a glyph name or a kerning group name.
type KerningPair struct {
	First  string
	Second string
}

// Kerning maps pairs to adjustment values.
type Kerning map[KerningPair]float64

// Copy returns a copy of the kerning table.
func (k Kerning) Copy() Kerning {
	if k == nil {
		return nil
	}
	out := make(Kerning, len(k))
	for pair, v := range k {
		out[pair] = v
	}
	return out
}
