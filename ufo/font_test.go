package ufo

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestLayerKeepsInsertionOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "instancer")
	defer teardown()
	//
	layer := NewLayer(DefaultLayerName)
	for _, name := range []string{"b", "a", "c"} {
		layer.NewGlyph(name)
	}
	names := layer.Names()
	want := []string{"b", "a", "c"}
	for i, n := range want {
		if names[i] != n {
			t.Fatalf("glyph order = %v, want %v", names, want)
		}
	}
	// replacing a glyph must not change its position
	layer.Set(&Glyph{Name: "a", Width: 100})
	if names := layer.Names(); names[1] != "a" {
		t.Errorf("replaced glyph moved: %v", names)
	}
}

func TestFontCopyIsIndependent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "instancer")
	defer teardown()
	//
	font := NewFont()
	g := font.NewGlyph("a")
	g.Width = 500
	g.Contours = []Contour{{Points: []Point{{X: 1, Y: 2, Type: Line}}}}
	font.Kerning[KerningPair{First: "a", Second: "v"}] = -30
	font.Groups["public.kern1.a"] = []string{"a"}
	font.Lib["key"] = []any{"x", 1}

	dup := font.Copy()
	dg, _ := dup.Glyph("a")
	dg.Contours[0].Points[0].X = 99
	dup.Kerning[KerningPair{First: "a", Second: "v"}] = 0
	dup.Groups["public.kern1.a"][0] = "z"
	dup.Lib["key"].([]any)[0] = "mutated"

	if g.Contours[0].Points[0].X != 1 {
		t.Error("glyph outline shared between font and copy")
	}
	if font.Kerning[KerningPair{First: "a", Second: "v"}] != -30 {
		t.Error("kerning shared between font and copy")
	}
	if font.Groups["public.kern1.a"][0] != "a" {
		t.Error("groups shared between font and copy")
	}
	if font.Lib["key"].([]any)[0] != "x" {
		t.Error("lib shared between font and copy")
	}
}

func TestGlyphIsEmpty(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "instancer")
	defer teardown()
	//
	g := &Glyph{Name: "space", Width: 250}
	if !g.IsEmpty() {
		t.Error("glyph without outline should be empty")
	}
	g.Components = []Component{{BaseGlyph: "a", Transform: Identity}}
	if g.IsEmpty() {
		t.Error("glyph with a component is not empty")
	}
}

func TestIsKernGroup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "instancer")
	defer teardown()
	//
	cases := []struct {
		name string
		want bool
	}{
		{"public.kern1.O", true},
		{"public.kern2.E", true},
		{"public.kerning", false},
		{"myGroup", false},
	}
	for _, c := range cases {
		if got := IsKernGroup(c.name); got != c.want {
			t.Errorf("IsKernGroup(%q) = %v, want %v", c.name, got, c.want)
		}
	}
}
