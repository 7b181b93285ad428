package instancer

import (
	"github.com/npillmayer/instancer/ds"
	"github.com/npillmayer/instancer/fontmath"
	"github.com/npillmayer/instancer/ufo"
	"github.com/npillmayer/instancer/varmodel"
)

// collectInfoMasters gathers font info masters: every whole-font source
// contributes its info record at its normalized location. Sparse layer
// sources carry no font info.
func collectInfoMasters(doc *ds.Document, bounds varmodel.AxisBounds) []Master[*fontmath.MathInfo] {
	var items []Master[*fontmath.MathInfo]
	for _, src := range doc.Sources {
		if src.IsSparseLayer() {
			continue
		}
		items = append(items, Master[*fontmath.MathInfo]{
			Location: varmodel.NormalizeLocation(src.Location, bounds),
			Data:     fontmath.NewMathInfo(src.Font.Info),
		})
	}
	return items
}

// collectKerningMasters gathers kerning masters. Group membership is
// not interpolated: all masters are scoped to the default source's
// groups. Sources defining different groups get a warning, nothing
// more; their values are still read through the default groups.
func collectKerningMasters(doc *ds.Document, defaultSource *ds.SourceDescriptor,
	bounds varmodel.AxisBounds) []Master[*fontmath.MathKerning] {

	groups := defaultSource.Font.Groups
	var items []Master[*fontmath.MathKerning]
	for _, src := range doc.Sources {
		if src.IsSparseLayer() {
			continue
		}
		if len(src.Font.Groups) > 0 && !groupsEqual(src.Font.Groups, groups) {
			tracer().Infof("source %s contains different groups than the default source; "+
				"the default source's groups will be used for the instances",
				src.DisplayName())
		}
		items = append(items, Master[*fontmath.MathKerning]{
			Location: varmodel.NormalizeLocation(src.Location, bounds),
			Data:     fontmath.NewMathKerning(src.Font.Kerning, groups),
		})
	}
	return items
}

func groupsEqual(a, b ufo.Groups) bool {
	if len(a) != len(b) {
		return false
	}
	for name, membersA := range a {
		membersB, ok := b[name]
		if !ok || len(membersA) != len(membersB) {
			return false
		}
		for i := range membersA {
			if membersA[i] != membersB[i] {
				return false
			}
		}
	}
	return true
}

// collectGlyphMasters gathers the masters of one glyph from every
// source (or source layer) that contains it.
//
// A glyph that is empty in a non-default source while the default
// source's copy is non-empty is dropped from the master set: the source
// simply does not define the glyph, and keeping it would poison the
// interpolation with a spurious zero outline. If the default copy is
// itself empty, the glyph is genuinely meant to be blank and all
// masters are kept.
func collectGlyphMasters(doc *ds.Document, defaultSource *ds.SourceDescriptor,
	glyphName string, bounds varmodel.AxisBounds) []Master[*fontmath.MathGlyph] {

	var items []Master[*fontmath.MathGlyph]
	defaultGlyphEmpty := false
	otherGlyphEmpty := false

	for _, src := range doc.Sources {
		layer, ok := src.Font.Layer(src.LayerName)
		if !ok {
			tracer().Infof("source %s names missing layer %q, skipped",
				src.DisplayName(), src.LayerName)
			continue
		}
		glyph, ok := layer.Glyph(glyphName)
		if !ok {
			continue // sparse fonts and layers need not contain every glyph
		}
		if glyph.IsEmpty() {
			if src == defaultSource {
				defaultGlyphEmpty = true
			} else {
				otherGlyphEmpty = true
			}
		}
		items = append(items, Master[*fontmath.MathGlyph]{
			Location: varmodel.NormalizeLocation(src.Location, bounds),
			Data:     fontmath.NewMathGlyph(glyph),
		})
	}

	if !defaultGlyphEmpty && otherGlyphEmpty {
		kept := items[:0]
		for _, item := range items {
			if !item.Data.IsEmpty() {
				kept = append(kept, item)
			}
		}
		items = kept
	}
	return items
}
