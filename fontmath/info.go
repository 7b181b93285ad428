package fontmath

import "github.com/npillmayer/instancer/ufo"

// infoField binds an interpolatable scalar of ufo.Info to a key in the
// math shell. The two class fields live in the same table but map to
// integers on extraction.
type infoField struct {
	key     string
	noRound bool // keep fractional on Round (blueScale)
	get     func(*ufo.Info) *float64
	set     func(*ufo.Info, float64)
}

var scalarFields = []infoField{
	{key: "unitsPerEm", get: func(i *ufo.Info) *float64 { return i.UnitsPerEm },
		set: func(i *ufo.Info, v float64) { i.UnitsPerEm = &v }},
	{key: "ascender", get: func(i *ufo.Info) *float64 { return i.Ascender },
		set: func(i *ufo.Info, v float64) { i.Ascender = &v }},
	{key: "descender", get: func(i *ufo.Info) *float64 { return i.Descender },
		set: func(i *ufo.Info, v float64) { i.Descender = &v }},
	{key: "xHeight", get: func(i *ufo.Info) *float64 { return i.XHeight },
		set: func(i *ufo.Info, v float64) { i.XHeight = &v }},
	{key: "capHeight", get: func(i *ufo.Info) *float64 { return i.CapHeight },
		set: func(i *ufo.Info, v float64) { i.CapHeight = &v }},
	{key: "italicAngle", get: func(i *ufo.Info) *float64 { return i.ItalicAngle },
		set: func(i *ufo.Info, v float64) { i.ItalicAngle = &v }},
	{key: "openTypeHeadLowestRecPPEM", get: func(i *ufo.Info) *float64 { return i.OpenTypeHeadLowestRecPPEM },
		set: func(i *ufo.Info, v float64) { i.OpenTypeHeadLowestRecPPEM = &v }},
	{key: "openTypeHheaAscender", get: func(i *ufo.Info) *float64 { return i.OpenTypeHheaAscender },
		set: func(i *ufo.Info, v float64) { i.OpenTypeHheaAscender = &v }},
	{key: "openTypeHheaDescender", get: func(i *ufo.Info) *float64 { return i.OpenTypeHheaDescender },
		set: func(i *ufo.Info, v float64) { i.OpenTypeHheaDescender = &v }},
	{key: "openTypeHheaLineGap", get: func(i *ufo.Info) *float64 { return i.OpenTypeHheaLineGap },
		set: func(i *ufo.Info, v float64) { i.OpenTypeHheaLineGap = &v }},
	{key: "openTypeHheaCaretSlopeRise", get: func(i *ufo.Info) *float64 { return i.OpenTypeHheaCaretSlopeRise },
		set: func(i *ufo.Info, v float64) { i.OpenTypeHheaCaretSlopeRise = &v }},
	{key: "openTypeHheaCaretSlopeRun", get: func(i *ufo.Info) *float64 { return i.OpenTypeHheaCaretSlopeRun },
		set: func(i *ufo.Info, v float64) { i.OpenTypeHheaCaretSlopeRun = &v }},
	{key: "openTypeHheaCaretOffset", get: func(i *ufo.Info) *float64 { return i.OpenTypeHheaCaretOffset },
		set: func(i *ufo.Info, v float64) { i.OpenTypeHheaCaretOffset = &v }},
	{key: "openTypeOS2TypoAscender", get: func(i *ufo.Info) *float64 { return i.OpenTypeOS2TypoAscender },
		set: func(i *ufo.Info, v float64) { i.OpenTypeOS2TypoAscender = &v }},
	{key: "openTypeOS2TypoDescender", get: func(i *ufo.Info) *float64 { return i.OpenTypeOS2TypoDescender },
		set: func(i *ufo.Info, v float64) { i.OpenTypeOS2TypoDescender = &v }},
	{key: "openTypeOS2TypoLineGap", get: func(i *ufo.Info) *float64 { return i.OpenTypeOS2TypoLineGap },
		set: func(i *ufo.Info, v float64) { i.OpenTypeOS2TypoLineGap = &v }},
	{key: "openTypeOS2WinAscent", get: func(i *ufo.Info) *float64 { return i.OpenTypeOS2WinAscent },
		set: func(i *ufo.Info, v float64) { i.OpenTypeOS2WinAscent = &v }},
	{key: "openTypeOS2WinDescent", get: func(i *ufo.Info) *float64 { return i.OpenTypeOS2WinDescent },
		set: func(i *ufo.Info, v float64) { i.OpenTypeOS2WinDescent = &v }},
	{key: "openTypeOS2SubscriptXSize", get: func(i *ufo.Info) *float64 { return i.OpenTypeOS2SubscriptXSize },
		set: func(i *ufo.Info, v float64) { i.OpenTypeOS2SubscriptXSize = &v }},
	{key: "openTypeOS2SubscriptYSize", get: func(i *ufo.Info) *float64 { return i.OpenTypeOS2SubscriptYSize },
		set: func(i *ufo.Info, v float64) { i.OpenTypeOS2SubscriptYSize = &v }},
	{key: "openTypeOS2SubscriptXOffset", get: func(i *ufo.Info) *float64 { return i.OpenTypeOS2SubscriptXOffset },
		set: func(i *ufo.Info, v float64) { i.OpenTypeOS2SubscriptXOffset = &v }},
	{key: "openTypeOS2SubscriptYOffset", get: func(i *ufo.Info) *float64 { return i.OpenTypeOS2SubscriptYOffset },
		set: func(i *ufo.Info, v float64) { i.OpenTypeOS2SubscriptYOffset = &v }},
	{key: "openTypeOS2SuperscriptXSize", get: func(i *ufo.Info) *float64 { return i.OpenTypeOS2SuperscriptXSize },
		set: func(i *ufo.Info, v float64) { i.OpenTypeOS2SuperscriptXSize = &v }},
	{key: "openTypeOS2SuperscriptYSize", get: func(i *ufo.Info) *float64 { return i.OpenTypeOS2SuperscriptYSize },
		set: func(i *ufo.Info, v float64) { i.OpenTypeOS2SuperscriptYSize = &v }},
	{key: "openTypeOS2SuperscriptXOffset", get: func(i *ufo.Info) *float64 { return i.OpenTypeOS2SuperscriptXOffset },
		set: func(i *ufo.Info, v float64) { i.OpenTypeOS2SuperscriptXOffset = &v }},
	{key: "openTypeOS2SuperscriptYOffset", get: func(i *ufo.Info) *float64 { return i.OpenTypeOS2SuperscriptYOffset },
		set: func(i *ufo.Info, v float64) { i.OpenTypeOS2SuperscriptYOffset = &v }},
	{key: "openTypeOS2StrikeoutSize", get: func(i *ufo.Info) *float64 { return i.OpenTypeOS2StrikeoutSize },
		set: func(i *ufo.Info, v float64) { i.OpenTypeOS2StrikeoutSize = &v }},
	{key: "openTypeOS2StrikeoutPosition", get: func(i *ufo.Info) *float64 { return i.OpenTypeOS2StrikeoutPosition },
		set: func(i *ufo.Info, v float64) { i.OpenTypeOS2StrikeoutPosition = &v }},
	{key: "postscriptSlantAngle", get: func(i *ufo.Info) *float64 { return i.PostscriptSlantAngle },
		set: func(i *ufo.Info, v float64) { i.PostscriptSlantAngle = &v }},
	{key: "postscriptUnderlineThickness", get: func(i *ufo.Info) *float64 { return i.PostscriptUnderlineThickness },
		set: func(i *ufo.Info, v float64) { i.PostscriptUnderlineThickness = &v }},
	{key: "postscriptUnderlinePosition", get: func(i *ufo.Info) *float64 { return i.PostscriptUnderlinePosition },
		set: func(i *ufo.Info, v float64) { i.PostscriptUnderlinePosition = &v }},
	{key: "postscriptBlueFuzz", get: func(i *ufo.Info) *float64 { return i.PostscriptBlueFuzz },
		set: func(i *ufo.Info, v float64) { i.PostscriptBlueFuzz = &v }},
	{key: "postscriptBlueShift", get: func(i *ufo.Info) *float64 { return i.PostscriptBlueShift },
		set: func(i *ufo.Info, v float64) { i.PostscriptBlueShift = &v }},
	{key: "postscriptBlueScale", noRound: true, get: func(i *ufo.Info) *float64 { return i.PostscriptBlueScale },
		set: func(i *ufo.Info, v float64) { i.PostscriptBlueScale = &v }},
	{key: "postscriptDefaultWidthX", get: func(i *ufo.Info) *float64 { return i.PostscriptDefaultWidthX },
		set: func(i *ufo.Info, v float64) { i.PostscriptDefaultWidthX = &v }},
	{key: "postscriptNominalWidthX", get: func(i *ufo.Info) *float64 { return i.PostscriptNominalWidthX },
		set: func(i *ufo.Info, v float64) { i.PostscriptNominalWidthX = &v }},
}

// listField binds an interpolatable value list of ufo.Info.
type listField struct {
	key string
	get func(*ufo.Info) []float64
	set func(*ufo.Info, []float64)
}

var listFields = []listField{
	{key: "postscriptBlueValues", get: func(i *ufo.Info) []float64 { return i.PostscriptBlueValues },
		set: func(i *ufo.Info, v []float64) { i.PostscriptBlueValues = v }},
	{key: "postscriptOtherBlues", get: func(i *ufo.Info) []float64 { return i.PostscriptOtherBlues },
		set: func(i *ufo.Info, v []float64) { i.PostscriptOtherBlues = v }},
	{key: "postscriptFamilyBlues", get: func(i *ufo.Info) []float64 { return i.PostscriptFamilyBlues },
		set: func(i *ufo.Info, v []float64) { i.PostscriptFamilyBlues = v }},
	{key: "postscriptFamilyOtherBlues", get: func(i *ufo.Info) []float64 { return i.PostscriptFamilyOtherBlues },
		set: func(i *ufo.Info, v []float64) { i.PostscriptFamilyOtherBlues = v }},
	{key: "postscriptStemSnapH", get: func(i *ufo.Info) []float64 { return i.PostscriptStemSnapH },
		set: func(i *ufo.Info, v []float64) { i.PostscriptStemSnapH = v }},
	{key: "postscriptStemSnapV", get: func(i *ufo.Info) []float64 { return i.PostscriptStemSnapV },
		set: func(i *ufo.Info, v []float64) { i.PostscriptStemSnapV = v }},
}

// Shell keys of the two OS/2 class fields, stored as floats during math
// and mapped back to integers on extraction.
const (
	keyWeightClass = "openTypeOS2WeightClass"
	keyWidthClass  = "openTypeOS2WidthClass"
)

// MathInfo wraps the interpolatable subset of a font info record.
// Fields unset on the source record stay unset through all arithmetic:
// an operation only yields a field when both operands carry it.
type MathInfo struct {
	values map[string]float64
	lists  map[string][]float64
}

// NewMathInfo copies the interpolatable fields of an info record into a
// math shell.
func NewMathInfo(info *ufo.Info) *MathInfo {
	m := &MathInfo{
		values: make(map[string]float64),
		lists:  make(map[string][]float64),
	}
	for _, f := range scalarFields {
		if p := f.get(info); p != nil {
			m.values[f.key] = *p
		}
	}
	if info.OpenTypeOS2WeightClass != nil {
		m.values[keyWeightClass] = float64(*info.OpenTypeOS2WeightClass)
	}
	if info.OpenTypeOS2WidthClass != nil {
		m.values[keyWidthClass] = float64(*info.OpenTypeOS2WidthClass)
	}
	for _, f := range listFields {
		if l := f.get(info); l != nil {
			ll := make([]float64, len(l))
			copy(ll, l)
			m.lists[f.key] = ll
		}
	}
	return m
}

// Has reports whether a field took part in interpolation. Used by the
// OS/2 class inference: inference only fires for fields no master set.
func (m *MathInfo) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// HasWeightClass reports whether any master carried an OS/2 weight class.
func (m *MathInfo) HasWeightClass() bool { return m.Has(keyWeightClass) }

// HasWidthClass reports whether any master carried an OS/2 width class.
func (m *MathInfo) HasWidthClass() bool { return m.Has(keyWidthClass) }

// HasItalicAngle reports whether any master carried an italic angle.
func (m *MathInfo) HasItalicAngle() bool { return m.Has("italicAngle") }

// Copy returns an independent copy.
func (m *MathInfo) Copy() *MathInfo {
	out := &MathInfo{
		values: make(map[string]float64, len(m.values)),
		lists:  make(map[string][]float64, len(m.lists)),
	}
	for k, v := range m.values {
		out.values[k] = v
	}
	for k, l := range m.lists {
		ll := make([]float64, len(l))
		copy(ll, l)
		out.lists[k] = ll
	}
	return out
}

func (m *MathInfo) combine(other *MathInfo, op func(a, b float64) float64) *MathInfo {
	out := &MathInfo{
		values: make(map[string]float64),
		lists:  make(map[string][]float64),
	}
	for k, a := range m.values {
		if b, ok := other.values[k]; ok {
			out.values[k] = op(a, b)
		}
	}
	for k, la := range m.lists {
		lb, ok := other.lists[k]
		if !ok || len(la) != len(lb) {
			continue
		}
		l := make([]float64, len(la))
		for i := range la {
			l[i] = op(la[i], lb[i])
		}
		out.lists[k] = l
	}
	return out
}

// Add returns m + other.
func (m *MathInfo) Add(other *MathInfo) (*MathInfo, error) {
	return m.combine(other, func(a, b float64) float64 { return a + b }), nil
}

// Sub returns m - other.
func (m *MathInfo) Sub(other *MathInfo) (*MathInfo, error) {
	return m.combine(other, func(a, b float64) float64 { return a - b }), nil
}

// Scale returns m with all values scaled.
func (m *MathInfo) Scale(factor float64) *MathInfo {
	out := m.Copy()
	for k, v := range out.values {
		out.values[k] = v * factor
	}
	for _, l := range out.lists {
		for i := range l {
			l[i] *= factor
		}
	}
	return out
}

// Round returns m with all values rounded to integers, except for fields
// that are fractional by nature (postscriptBlueScale).
func (m *MathInfo) Round() *MathInfo {
	out := m.Copy()
	for _, f := range scalarFields {
		if f.noRound {
			continue
		}
		if v, ok := out.values[f.key]; ok {
			out.values[f.key] = OTRound(v)
		}
	}
	for _, k := range []string{keyWeightClass, keyWidthClass} {
		if v, ok := out.values[k]; ok {
			out.values[k] = OTRound(v)
		}
	}
	for _, l := range out.lists {
		for i := range l {
			l[i] = OTRound(l[i])
		}
	}
	return out
}

// ExtractInto writes the shell's fields into an info record. Fields the
// shell does not carry are left alone. The OS/2 class fields are always
// rounded to integers, their UFO type.
func (m *MathInfo) ExtractInto(info *ufo.Info) {
	for _, f := range scalarFields {
		if v, ok := m.values[f.key]; ok {
			f.set(info, v)
		}
	}
	if v, ok := m.values[keyWeightClass]; ok {
		info.OpenTypeOS2WeightClass = ufo.Int(OTRoundInt(v))
	}
	if v, ok := m.values[keyWidthClass]; ok {
		info.OpenTypeOS2WidthClass = ufo.Int(OTRoundInt(v))
	}
	for _, f := range listFields {
		if l, ok := m.lists[f.key]; ok {
			ll := make([]float64, len(l))
			copy(ll, l)
			f.set(info, ll)
		}
	}
}
