package compat

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/instancer/ds"
	"github.com/npillmayer/instancer/ufo"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func testFont(family, style string, pointCount int) *ufo.Font {
	font := ufo.NewFont()
	font.Info = &ufo.Info{FamilyName: family, StyleName: style}
	g := font.NewGlyph("a")
	points := make([]ufo.Point, pointCount)
	for i := range points {
		points[i] = ufo.Point{X: float64(i), Y: float64(i), Type: ufo.Line}
	}
	g.Contours = []ufo.Contour{{Points: points}}
	g.Anchors = []ufo.Anchor{{Name: "top", X: 10, Y: 100}}
	return font
}

func testDocument(fonts ...*ufo.Font) *ds.Document {
	doc := &ds.Document{
		Axes: []ds.Axis{{Name: "Weight", Tag: "wght", Minimum: 0, Default: 0, Maximum: 1000}},
	}
	for i, font := range fonts {
		doc.Sources = append(doc.Sources, &ds.SourceDescriptor{
			Name: font.Info.StyleName,
			Font: font,
			Location: map[string]float64{
				"Weight": float64(i) * 1000 / float64(len(fonts)),
			},
		})
	}
	return doc
}

func TestCompatibleSources(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "instancer")
	defer teardown()
	//
	doc := testDocument(testFont("My", "Light", 4), testFont("My", "Bold", 4))
	checker, err := New(doc)
	if err != nil {
		t.Fatal(err)
	}
	if problems := checker.Check(); len(problems) != 0 {
		t.Errorf("expected no problems, got %v", problems)
	}
	if !checker.Ok() {
		t.Error("Ok() should report success")
	}
}

func TestDifferingPointCounts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "instancer")
	defer teardown()
	//
	doc := testDocument(testFont("My", "Light", 4), testFont("My", "Bold", 5))
	checker, err := New(doc)
	if err != nil {
		t.Fatal(err)
	}
	problems := checker.Check()
	if len(problems) != 1 {
		t.Fatalf("expected 1 problem, got %d: %v", len(problems), problems)
	}
	want := Problem{
		Context: "glyph a, contour 0",
		What:    "number of points",
		Values: []ValueSources{
			{Value: "4", Sources: []string{"My Light"}},
			{Value: "5", Sources: []string{"My Bold"}},
		},
	}
	if diff := cmp.Diff(want, problems[0]); diff != "" {
		t.Errorf("problem mismatch (-want +got):\n%s", diff)
	}
	report := problems[0].String()
	if !strings.Contains(report, "number of points") ||
		!strings.Contains(report, "glyph a, contour 0") {
		t.Errorf("report misses context: %s", report)
	}
}

func TestDifferingPointTypes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "instancer")
	defer teardown()
	//
	light := testFont("My", "Light", 4)
	bold := testFont("My", "Bold", 4)
	g, _ := bold.Glyph("a")
	g.Contours[0].Points[2].Type = ufo.Curve
	doc := testDocument(light, bold)
	checker, err := New(doc)
	if err != nil {
		t.Fatal(err)
	}
	problems := checker.Check()
	if len(problems) != 1 {
		t.Fatalf("expected 1 problem, got %d: %v", len(problems), problems)
	}
	if problems[0].Context != "glyph a, contour 0, point 2" ||
		problems[0].What != "point type" {
		t.Errorf("unexpected problem: %+v", problems[0])
	}
}

func TestDifferingAnchorsAndComponents(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "instancer")
	defer teardown()
	//
	light := testFont("My", "Light", 4)
	bold := testFont("My", "Bold", 4)
	g, _ := bold.Glyph("a")
	g.Anchors = append(g.Anchors, ufo.Anchor{Name: "bottom"})
	g.Components = []ufo.Component{{BaseGlyph: "b", Transform: ufo.Identity}}
	doc := testDocument(light, bold)
	checker, err := New(doc)
	if err != nil {
		t.Fatal(err)
	}
	problems := checker.Check()
	if len(problems) != 2 {
		t.Fatalf("expected 2 problems, got %d: %v", len(problems), problems)
	}
	whats := []string{problems[0].What, problems[1].What}
	if whats[0] != "anchors" || whats[1] != "number of components" {
		t.Errorf("unexpected problems: %v", whats)
	}
}

func TestSkipExportGlyphsNotChecked(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "instancer")
	defer teardown()
	//
	doc := testDocument(testFont("My", "Light", 4), testFont("My", "Bold", 5))
	doc.Lib = ufo.Lib{ufo.SkipExportGlyphsKey: []any{"a"}}
	checker, err := New(doc)
	if err != nil {
		t.Fatal(err)
	}
	if problems := checker.Check(); len(problems) != 0 {
		t.Errorf("skipped glyphs must not be checked: %v", problems)
	}
}

func TestGlyphMissingFromSomeSources(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "instancer")
	defer teardown()
	//
	light := testFont("My", "Light", 4)
	bold := testFont("My", "Bold", 4)
	b := light.NewGlyph("b")
	b.Contours = []ufo.Contour{{Points: []ufo.Point{
		{X: 0, Y: 0, Type: ufo.Line}, {X: 1, Y: 1, Type: ufo.Line},
	}}}
	doc := testDocument(light, bold)
	checker, err := New(doc)
	if err != nil {
		t.Fatal(err)
	}
	// "b" only exists in one source, nothing to compare
	if problems := checker.Check(); len(problems) != 0 {
		t.Errorf("sparse glyphs are fine: %v", problems)
	}
}

func TestNewRequiresAttachedFonts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "instancer")
	defer teardown()
	//
	doc := testDocument(testFont("My", "Light", 4))
	doc.Sources[0].Font = nil
	if _, err := New(doc); err == nil {
		t.Error("expected an error for a source without a font")
	}
}
