package ds

import (
	"fmt"
	"path/filepath"

	"github.com/npillmayer/instancer/ufo"
	"github.com/npillmayer/instancer/varmodel"
)

// Coord is one instance-location coordinate. MutatorMath-style
// anisotropic values carry a separate vertical coordinate; these are
// representable here but rejected by the instantiation pipeline.
type Coord struct {
	X    float64
	Y    float64
	HasY bool
}

// InstanceLocation maps axis names to (possibly anisotropic) coordinates.
type InstanceLocation map[string]Coord

// IsAnisotropic reports whether any coordinate carries a split
// x/y value.
func (loc InstanceLocation) IsAnisotropic() bool {
	for _, c := range loc {
		if c.HasY {
			return true
		}
	}
	return false
}

// Isotropic flattens the location to plain per-axis values, dropping
// any vertical components.
func (loc InstanceLocation) Isotropic() varmodel.Location {
	out := make(varmodel.Location, len(loc))
	for axis, c := range loc {
		out[axis] = c.X
	}
	return out
}

// SourceDescriptor places one master source in the design space. A
// source either contributes a whole font (LayerName empty) or a single
// glyph layer of a font (a sparse source, contributing outlines only).
type SourceDescriptor struct {
	Name       string
	Filename   string
	FamilyName string
	StyleName  string
	LayerName  string
	Location   varmodel.Location // design space
	Font       *ufo.Font
}

// IsSparseLayer reports whether the source contributes only a glyph
// layer, not a whole font (no info, no kerning).
func (s *SourceDescriptor) IsSparseLayer() bool {
	return s.LayerName != ""
}

// DisplayName is a human-readable identification of the source for
// warnings and error messages.
func (s *SourceDescriptor) DisplayName() string {
	switch {
	case s.Name != "":
		return fmt.Sprintf("%s (%s)", s.Name, s.Filename)
	case s.Filename != "":
		return s.Filename
	default:
		return fmt.Sprintf("source at %s", s.Location)
	}
}

// InstanceDescriptor declares one static instance to generate.
type InstanceDescriptor struct {
	Name               string
	Filename           string
	FamilyName         string
	StyleName          string
	PostScriptFontName string
	StyleMapFamilyName string
	StyleMapStyleName  string
	Location           InstanceLocation
	Lib                ufo.Lib

	// Localized names keyed by canonical BCP-47 tags, for callers
	// building name tables. Not interpolated, not copied into fonts.
	LocalisedFamilyNames map[string]string
	LocalisedStyleNames  map[string]string
}

// DisplayName identifies the instance in messages.
func (inst *InstanceDescriptor) DisplayName() string {
	if inst.FamilyName == "" && inst.StyleName == "" {
		return fmt.Sprintf("instance at %s", inst.Location.Isotropic())
	}
	return inst.FamilyName + "-" + inst.StyleName
}

// Document is a loaded designspace document.
type Document struct {
	Path      string // file the document was read from, if any
	Axes      []Axis
	Sources   []*SourceDescriptor
	Instances []*InstanceDescriptor
	Rules     []Rule
	Lib       ufo.Lib
}

// Axis returns the axis with the given name, if present.
func (d *Document) Axis(name string) (*Axis, bool) {
	for i := range d.Axes {
		if d.Axes[i].Name == name {
			return &d.Axes[i], true
		}
	}
	return nil, false
}

// AxisOrder returns the axis names in document order.
func (d *Document) AxisOrder() []string {
	out := make([]string, len(d.Axes))
	for i := range d.Axes {
		out[i] = d.Axes[i].Name
	}
	return out
}

// AxisBounds computes the per-axis design space bounds.
func (d *Document) AxisBounds() varmodel.AxisBounds {
	out := make(varmodel.AxisBounds, len(d.Axes))
	for i := range d.Axes {
		out[d.Axes[i].Name] = d.Axes[i].DesignBounds()
	}
	return out
}

// HasDiscreteAxes reports whether any axis is discrete.
func (d *Document) HasDiscreteAxes() bool {
	for i := range d.Axes {
		if d.Axes[i].IsDiscrete() {
			return true
		}
	}
	return false
}

// DefaultDesignLocation is the document's default location in design
// space: every axis at its (mapped) default.
func (d *Document) DefaultDesignLocation() varmodel.Location {
	loc := make(varmodel.Location, len(d.Axes))
	for i := range d.Axes {
		loc[d.Axes[i].Name] = d.Axes[i].DesignBounds().Default
	}
	return loc
}

// FindDefault returns the default source: a non-layer source whose
// location equals the default design location on every axis. Returns
// nil when no source qualifies.
func (d *Document) FindDefault() *SourceDescriptor {
	want := d.DefaultDesignLocation()
	for _, src := range d.Sources {
		if src.IsSparseLayer() {
			continue
		}
		if locationsEqual(src.Location, want, d.AxisOrder()) {
			return src
		}
	}
	return nil
}

func locationsEqual(loc, want varmodel.Location, axes []string) bool {
	for _, axis := range axes {
		v, ok := loc[axis]
		if !ok {
			v = want[axis] // absent axes sit at the default
		}
		if v != want[axis] {
			return false
		}
	}
	return true
}

// SkipExportGlyphs returns the document-level list of glyphs excluded
// from compiled output.
func (d *Document) SkipExportGlyphs() []string {
	v, ok := d.Lib[ufo.SkipExportGlyphsKey]
	if !ok {
		return nil
	}
	switch list := v.(type) {
	case []string:
		out := make([]string, len(list))
		copy(out, list)
		return out
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// FontLoader reads a source font from a path.
type FontLoader func(path string) (*ufo.Font, error)

// LoadSourceFonts attaches fonts to all sources that have none yet,
// using the given loader. Sources sharing a filename share the loaded
// font object. Paths are resolved relative to the document's directory.
func (d *Document) LoadSourceFonts(load FontLoader) error {
	cache := make(map[string]*ufo.Font)
	dir := filepath.Dir(d.Path)
	for _, src := range d.Sources {
		if src.Font != nil {
			continue
		}
		if src.Filename == "" {
			return fmt.Errorf("source %s has neither a font nor a filename", src.DisplayName())
		}
		path := src.Filename
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		font, ok := cache[path]
		if !ok {
			f, err := load(path)
			if err != nil {
				return fmt.Errorf("cannot load source %s: %w", src.DisplayName(), err)
			}
			cache[path] = f
			font = f
			tracer().Debugf("loaded source font %s", src.DisplayName())
		}
		src.Font = font
	}
	return nil
}
