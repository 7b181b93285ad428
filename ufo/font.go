package ufo

import "fmt"

// Layer is an ordered glyph collection keyed by glyph name.
type Layer struct {
	Name   string
	glyphs map[string]*Glyph
	order  []string
}

// NewLayer creates an empty layer.
func NewLayer(name string) *Layer {
	return &Layer{
		Name:   name,
		glyphs: make(map[string]*Glyph),
	}
}

// Len returns the number of glyphs in the layer.
func (l *Layer) Len() int {
	return len(l.order)
}

// Glyph returns the glyph with the given name, if present.
func (l *Layer) Glyph(name string) (*Glyph, bool) {
	g, ok := l.glyphs[name]
	return g, ok
}

// Has reports whether the layer contains a glyph of the given name.
func (l *Layer) Has(name string) bool {
	_, ok := l.glyphs[name]
	return ok
}

// Names returns the glyph names in insertion order. The returned slice
// is a copy.
func (l *Layer) Names() []string {
	out := make([]string, len(l.order))
	copy(out, l.order)
	return out
}

// Set inserts or replaces a glyph, keyed by its Name field.
func (l *Layer) Set(g *Glyph) {
	if _, ok := l.glyphs[g.Name]; !ok {
		l.order = append(l.order, g.Name)
	}
	l.glyphs[g.Name] = g
}

// NewGlyph creates an empty glyph with the given name and inserts it.
func (l *Layer) NewGlyph(name string) *Glyph {
	g := &Glyph{Name: name}
	l.Set(g)
	return g
}

// Copy returns a deep copy of the layer.
func (l *Layer) Copy() *Layer {
	out := NewLayer(l.Name)
	for _, name := range l.order {
		out.Set(l.glyphs[name].Copy())
	}
	return out
}

// Font is an in-memory font: a default glyph layer, optional extra
// layers, kerning, groups, font info, a lib dictionary and raw feature
// text.
type Font struct {
	Info     *Info
	Kerning  Kerning
	Groups   Groups
	Lib      Lib
	Features string
	layers   []*Layer // layers[0] is the default layer
}

// NewFont creates an empty font with a default layer.
func NewFont() *Font {
	return &Font{
		Info:    &Info{},
		Kerning: make(Kerning),
		Groups:  make(Groups),
		Lib:     make(Lib),
		layers:  []*Layer{NewLayer(DefaultLayerName)},
	}
}

// DefaultLayer returns the font's default glyph layer.
func (f *Font) DefaultLayer() *Layer {
	return f.layers[0]
}

// Layer returns the named layer, if present. The default layer is
// addressable both by its name and by the empty string.
func (f *Font) Layer(name string) (*Layer, bool) {
	if name == "" {
		return f.layers[0], true
	}
	for _, l := range f.layers {
		if l.Name == name {
			return l, true
		}
	}
	return nil, false
}

// NewLayer adds an empty layer with the given name. Adding a layer with
// an existing name is an error.
func (f *Font) NewLayer(name string) (*Layer, error) {
	if _, ok := f.Layer(name); ok {
		return nil, fmt.Errorf("font already has a layer named %q", name)
	}
	l := NewLayer(name)
	f.layers = append(f.layers, l)
	return l, nil
}

// Layers returns all layers, default layer first.
func (f *Font) Layers() []*Layer {
	out := make([]*Layer, len(f.layers))
	copy(out, f.layers)
	return out
}

// Glyph returns a glyph from the default layer.
func (f *Font) Glyph(name string) (*Glyph, bool) {
	return f.layers[0].Glyph(name)
}

// HasGlyph reports whether the default layer contains a glyph.
func (f *Font) HasGlyph(name string) bool {
	return f.layers[0].Has(name)
}

// GlyphNames returns the default layer's glyph names in order.
func (f *Font) GlyphNames() []string {
	return f.layers[0].Names()
}

// NewGlyph creates an empty glyph in the default layer.
func (f *Font) NewGlyph(name string) *Glyph {
	return f.layers[0].NewGlyph(name)
}

// Copy returns a deep copy of the font.
func (f *Font) Copy() *Font {
	out := &Font{
		Info:     f.Info.Copy(),
		Kerning:  f.Kerning.Copy(),
		Groups:   f.Groups.Copy(),
		Lib:      f.Lib.Copy(),
		Features: f.Features,
	}
	out.layers = make([]*Layer, len(f.layers))
	for i, l := range f.layers {
		out.layers[i] = l.Copy()
	}
	return out
}
