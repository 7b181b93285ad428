package fontmath

import (
	"testing"

	"github.com/npillmayer/instancer/ufo"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func testGroups() ufo.Groups {
	return ufo.Groups{
		"public.kern1.O": {"O", "D", "Q"},
		"public.kern2.E": {"E", "F"},
	}
}

func TestKerningLookupFallback(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "instancer")
	defer teardown()
	//
	kerning := ufo.Kerning{
		{First: "public.kern1.O", Second: "public.kern2.E"}: -20,
		{First: "D", Second: "public.kern2.E"}:              -30,
		{First: "public.kern1.O", Second: "F"}:              -40,
		{First: "Q", Second: "F"}:                           -50,
	}
	m := NewMathKerning(kerning, testGroups())
	cases := []struct {
		first, second string
		want          float64
	}{
		{"Q", "F", -50},             // exact pair wins
		{"O", "F", -40},             // (group1, glyph)
		{"D", "E", -30},             // (glyph, group2)
		{"O", "E", -20},             // (group1, group2)
		{"X", "Y", 0},               // unknown pair
		{"public.kern1.O", "E", -20}, // group name used directly
	}
	for _, c := range cases {
		got := m.Lookup(ufo.KerningPair{First: c.first, Second: c.second})
		if got != c.want {
			t.Errorf("Lookup(%s, %s) = %g, want %g", c.first, c.second, got, c.want)
		}
	}
}

func TestKerningArithmeticUnion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "instancer")
	defer teardown()
	//
	a := NewMathKerning(ufo.Kerning{
		{First: "A", Second: "V"}: -80,
		{First: "T", Second: "o"}: -60,
	}, nil)
	b := NewMathKerning(ufo.Kerning{
		{First: "A", Second: "V"}: -100,
		{First: "P", Second: "o"}: -40,
	}, nil)
	diff, err := b.Sub(a)
	if err != nil {
		t.Fatal(err)
	}
	if got := diff.Pairs[ufo.KerningPair{First: "A", Second: "V"}]; got != -20 {
		t.Errorf("A/V delta = %g, want -20", got)
	}
	// pairs missing on one side fall back to 0
	if got := diff.Pairs[ufo.KerningPair{First: "T", Second: "o"}]; got != 60 {
		t.Errorf("T/o delta = %g, want 60", got)
	}
	if got := diff.Pairs[ufo.KerningPair{First: "P", Second: "o"}]; got != -40 {
		t.Errorf("P/o delta = %g, want -40", got)
	}
}

func TestKerningGroupFallbackDuringArithmetic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "instancer")
	defer teardown()
	//
	a := NewMathKerning(ufo.Kerning{
		{First: "public.kern1.O", Second: "T"}: -10,
	}, testGroups())
	b := NewMathKerning(ufo.Kerning{
		{First: "D", Second: "T"}: -50,
	}, testGroups())
	sum, err := a.Add(b)
	if err != nil {
		t.Fatal(err)
	}
	// the exception pair of b resolves against a's group value
	if got := sum.Pairs[ufo.KerningPair{First: "D", Second: "T"}]; got != -60 {
		t.Errorf("D/T = %g, want -60", got)
	}
	if got := sum.Pairs[ufo.KerningPair{First: "public.kern1.O", Second: "T"}]; got != -10 {
		t.Errorf("group pair = %g, want -10", got)
	}
}

func TestKerningScaleAndRound(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "instancer")
	defer teardown()
	//
	m := NewMathKerning(ufo.Kerning{
		{First: "A", Second: "V"}: -81,
	}, nil)
	scaled := m.Scale(0.5)
	if got := scaled.Pairs[ufo.KerningPair{First: "A", Second: "V"}]; got != -40.5 {
		t.Errorf("scaled value = %g, want -40.5", got)
	}
	rounded := scaled.Round()
	if got := rounded.Pairs[ufo.KerningPair{First: "A", Second: "V"}]; got != -40 {
		t.Errorf("rounded value = %g, want -40", got)
	}
}

func TestKerningExtractKeepsNonKernGroups(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "instancer")
	defer teardown()
	//
	m := NewMathKerning(ufo.Kerning{
		{First: "public.kern1.O", Second: "E"}: -15,
	}, testGroups())
	font := ufo.NewFont()
	font.Groups["myFeatureGroup"] = []string{"a", "b"}
	m.ExtractInto(font)
	if got := font.Kerning[ufo.KerningPair{First: "public.kern1.O", Second: "E"}]; got != -15 {
		t.Errorf("kerning not extracted, got %g", got)
	}
	if _, ok := font.Groups["public.kern1.O"]; !ok {
		t.Error("kern group missing after extraction")
	}
	if _, ok := font.Groups["myFeatureGroup"]; !ok {
		t.Error("non-kern group was clobbered by extraction")
	}
}
