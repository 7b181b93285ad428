package instancer

import (
	"errors"
	"testing"

	"github.com/npillmayer/instancer/ds"
	"github.com/npillmayer/instancer/ufo"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Preparation ------------------------------------------------

type InstantiatorTestEnviron struct {
	suite.Suite
	doc *ds.Document
}

// listen for 'go test' command --> run test methods
func TestInstantiator(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "instancer")
	defer teardown()
	suite.Run(t, new(InstantiatorTestEnviron))
}

// run before each test method: a fresh two-master document
func (env *InstantiatorTestEnviron) SetupTest() {
	env.doc = testDocument()
}

// testMaster builds one whole-font master. Glyph "a" is a triangle
// whose geometry scales with the weight, "b" is a composite on top of
// "a", and "_part" never ships in compiled output.
func testMaster(style string, weight float64) *ufo.Font {
	font := ufo.NewFont()
	font.Info = &ufo.Info{
		FamilyName: "Test",
		StyleName:  style,
		UnitsPerEm: ufo.Float(1000),
		Ascender:   ufo.Float(700 + weight/10),
		Descender:  ufo.Float(-200),
	}
	font.Groups = ufo.Groups{"public.kern1.a": {"a", "b"}}
	font.Kerning = ufo.Kerning{
		{First: "public.kern1.a", Second: "a.alt"}: -weight / 10,
	}
	font.Features = "feature kern {\n} kern;\n"
	font.Lib = ufo.Lib{"com.example.master": style}

	a := font.NewGlyph("a")
	a.Width = 200 + weight
	a.Unicodes = []rune{'a'}
	a.Contours = []ufo.Contour{{Points: []ufo.Point{
		{X: 0, Y: 0, Type: ufo.Line},
		{X: 100 + weight, Y: 0, Type: ufo.Line},
		{X: 50, Y: 100 + weight, Type: ufo.Line},
	}}}
	a.Anchors = []ufo.Anchor{{Name: "top", X: 50, Y: 120 + weight}}

	alt := font.NewGlyph("a.alt")
	alt.Width = 300 + weight
	alt.Contours = []ufo.Contour{{Points: []ufo.Point{
		{X: 0, Y: 0, Type: ufo.Line},
		{X: 10, Y: 0, Type: ufo.Line},
		{X: 10, Y: 10, Type: ufo.Line},
		{X: 0, Y: 10, Type: ufo.Line},
	}}}

	b := font.NewGlyph("b")
	b.Width = 200 + weight
	b.Components = []ufo.Component{{BaseGlyph: "a", Transform: ufo.Identity}}

	part := font.NewGlyph("_part")
	part.Contours = []ufo.Contour{{Points: []ufo.Point{
		{X: 0, Y: 0, Type: ufo.Line},
		{X: 1, Y: 1, Type: ufo.Line},
	}}}
	return font
}

// testDocument builds a designspace over one weight axis with design
// coordinates 100..900 and a user-space map 300..700.
func testDocument() *ds.Document {
	doc := &ds.Document{
		Axes: []ds.Axis{{
			Name: "Weight", Tag: "wght",
			Minimum: 300, Default: 300, Maximum: 700,
			Map: []ds.AxisMap{{Input: 300, Output: 100}, {Input: 700, Output: 900}},
		}},
		Sources: []*ds.SourceDescriptor{
			{
				Name: "Light", StyleName: "Light",
				Location: map[string]float64{"Weight": 100},
				Font:     testMaster("Light", 100),
			},
			{
				Name: "Bold", StyleName: "Bold",
				Location: map[string]float64{"Weight": 900},
				Font:     testMaster("Bold", 900),
			},
		},
		Lib: ufo.Lib{ufo.SkipExportGlyphsKey: []any{"_part"}},
	}
	return doc
}

func instanceAt(style string, weight float64) *ds.InstanceDescriptor {
	return &ds.InstanceDescriptor{
		Name:      "instance_" + style,
		StyleName: style,
		Location:  ds.InstanceLocation{"Weight": {X: weight}},
	}
}

// --- Tests -----------------------------------------------------------------

func (env *InstantiatorTestEnviron) TestMidpointInterpolation() {
	inst, err := NewInstantiator(env.doc, nil)
	env.Require().NoError(err)
	font, err := inst.GenerateInstance(instanceAt("Medium", 500))
	env.Require().NoError(err)

	a, ok := font.Glyph("a")
	env.Require().True(ok, "glyph a missing from instance")
	env.Equal(700.0, a.Width, "advance width should interpolate to the midpoint")
	env.Equal(600.0, a.Contours[0].Points[1].X)
	env.Equal(600.0, a.Contours[0].Points[2].Y)
	env.Equal(620.0, a.Anchors[0].Y, "anchors should interpolate")
	env.Equal([]rune{'a'}, a.Unicodes, "codepoints come from the default source")

	env.Require().NotNil(font.Info.Ascender)
	env.Equal(750.0, *font.Info.Ascender, "font info metrics should interpolate")
	env.Equal("Test", font.Info.FamilyName)
	env.Equal("Medium", font.Info.StyleName)
}

func (env *InstantiatorTestEnviron) TestKerningAndGroups() {
	inst, err := NewInstantiator(env.doc, nil)
	env.Require().NoError(err)
	font, err := inst.GenerateInstance(instanceAt("Medium", 500))
	env.Require().NoError(err)

	env.Equal([]string{"a", "b"}, font.Groups["public.kern1.a"])
	got := font.Kerning[ufo.KerningPair{First: "public.kern1.a", Second: "a.alt"}]
	env.Equal(-50.0, got, "kerning should interpolate to the midpoint")
}

func (env *InstantiatorTestEnviron) TestExactMasterMatch() {
	// give the Bold master an incompatible outline for "a"
	bold, _ := env.doc.Sources[1].Font.Glyph("a")
	bold.Contours[0].Points = append(bold.Contours[0].Points,
		ufo.Point{X: 0, Y: 50, Type: ufo.Line})

	inst, err := NewInstantiator(env.doc, nil)
	env.Require().NoError(err, "incompatible masters are fine at construction time")

	// on top of the Bold master no interpolation happens
	font, err := inst.GenerateInstance(instanceAt("Bold", 900))
	env.Require().NoError(err)
	a, _ := font.Glyph("a")
	env.Equal(4, len(a.Contours[0].Points), "master outline should be copied verbatim")
	env.Equal(1100.0, a.Width)

	// between the masters it cannot work
	_, err = inst.GenerateInstance(instanceAt("Medium", 500))
	env.Require().Error(err)
	var e *Error
	env.Require().True(errors.As(err, &e))
	env.Equal(KindInterpolation, e.Kind)
	env.Equal("a", e.Glyph)
}

func (env *InstantiatorTestEnviron) TestRoundGeometry() {
	inst, err := NewInstantiator(env.doc, &Options{RoundGeometry: true})
	env.Require().NoError(err)
	font, err := inst.GenerateInstance(instanceAt("Book", 340))
	env.Require().NoError(err)
	a, _ := font.Glyph("a")
	// normalized 0.3: width 300+0.3*800=540, point x 200+0.3*800=440
	env.Equal(540.0, a.Width)
	env.Equal(440.0, a.Contours[0].Points[1].X)

	// a location producing fractional values
	font, err = inst.GenerateInstance(instanceAt("Odd", 345))
	env.Require().NoError(err)
	a, _ = font.Glyph("a")
	env.Equal(545.0, a.Width)
	env.Equal(a.Width, float64(int(a.Width)), "rounded output must be integral")
	kern := font.Kerning[ufo.KerningPair{First: "public.kern1.a", Second: "a.alt"}]
	env.Equal(kern, float64(int(kern)), "kerning must be rounded too")
}

func (env *InstantiatorTestEnviron) TestClassInference() {
	inst, err := NewInstantiator(env.doc, nil)
	env.Require().NoError(err)
	// design 500 maps back to user space 500 on the 300..700 -> 100..900 map
	font, err := inst.GenerateInstance(instanceAt("Medium", 500))
	env.Require().NoError(err)
	env.Require().NotNil(font.Info.OpenTypeOS2WeightClass)
	env.Equal(500, *font.Info.OpenTypeOS2WeightClass,
		"weight class is inferred from the user-space axis value")
}

func (env *InstantiatorTestEnviron) TestClassInferenceYieldsToSources() {
	for _, src := range env.doc.Sources {
		src.Font.Info.OpenTypeOS2WeightClass = ufo.Int(444)
	}
	inst, err := NewInstantiator(env.doc, nil)
	env.Require().NoError(err)
	font, err := inst.GenerateInstance(instanceAt("Medium", 500))
	env.Require().NoError(err)
	env.Require().NotNil(font.Info.OpenTypeOS2WeightClass)
	env.Equal(444, *font.Info.OpenTypeOS2WeightClass,
		"interpolated class fields win over axis inference")
}

func (env *InstantiatorTestEnviron) TestInstanceLib() {
	inst, err := NewInstantiator(env.doc, nil)
	env.Require().NoError(err)
	font, err := inst.GenerateInstance(instanceAt("Medium", 500))
	env.Require().NoError(err)

	env.Equal("Light", font.Lib["com.example.master"], "default source lib is carried over")
	env.Equal([]string{"_part"}, font.Lib[ufo.SkipExportGlyphsKey])
	loc, ok := font.Lib[ufo.DesignLocationKey].([]any)
	env.Require().True(ok, "design location must be recorded in the lib")
	env.Require().Len(loc, 1)
	env.Equal([]any{"Weight", 500.0}, loc[0])
}

func (env *InstantiatorTestEnviron) TestSkipExportGlyphMayFail() {
	part, _ := env.doc.Sources[1].Font.Glyph("_part")
	part.Contours[0].Points = append(part.Contours[0].Points,
		ufo.Point{X: 2, Y: 2, Type: ufo.Line})

	inst, err := NewInstantiator(env.doc, nil)
	env.Require().NoError(err)
	font, err := inst.GenerateInstance(instanceAt("Medium", 500))
	env.Require().NoError(err, "non-exported glyphs may fail to interpolate")
	part2, ok := font.Glyph("_part")
	env.Require().True(ok, "the glyph still exists, just empty")
	env.True(part2.IsEmpty())
}

func (env *InstantiatorTestEnviron) TestSubstitutionRules() {
	min := 600.0
	env.doc.Rules = []ds.Rule{{
		Name:          "bold.alternates",
		ConditionSets: [][]ds.Condition{{{Name: "Weight", Minimum: &min}}},
		Subs:          []ds.Substitution{{Name: "a", With: "a.alt"}},
	}}
	inst, err := NewInstantiator(env.doc, nil)
	env.Require().NoError(err)

	// below the threshold nothing happens
	font, err := inst.GenerateInstance(instanceAt("Medium", 500))
	env.Require().NoError(err)
	a, _ := font.Glyph("a")
	env.Equal(700.0, a.Width)

	// above it, "a" carries the alternate's content
	font, err = inst.GenerateInstance(instanceAt("Heavy", 800))
	env.Require().NoError(err)
	a, _ = font.Glyph("a")
	env.Equal(4, len(a.Contours[0].Points), "swapped outline expected")
	env.Equal([]rune{'a'}, a.Unicodes, "codepoints stay with the name")
	b, _ := font.Glyph("b")
	env.Equal("a.alt", b.Components[0].BaseGlyph, "component references follow the swap")
}

func (env *InstantiatorTestEnviron) TestChainedSubstitutionRules() {
	// two rules firing at the same location: a <-> a.alt, then b <-> a
	min := 600.0
	env.doc.Rules = []ds.Rule{
		{
			Name:          "first",
			ConditionSets: [][]ds.Condition{{{Name: "Weight", Minimum: &min}}},
			Subs:          []ds.Substitution{{Name: "a", With: "a.alt"}},
		},
		{
			Name:          "second",
			ConditionSets: [][]ds.Condition{{{Name: "Weight", Minimum: &min}}},
			Subs:          []ds.Substitution{{Name: "b", With: "a"}},
		},
	}
	inst, err := NewInstantiator(env.doc, nil)
	env.Require().NoError(err)
	font, err := inst.GenerateInstance(instanceAt("Heavy", 800))
	env.Require().NoError(err)

	// after rule one, "a" holds the alternate square. Rule two then
	// moves that square on to "b".
	b, _ := font.Glyph("b")
	env.Require().Equal(1, len(b.Contours), "b should end up with the swapped outline")
	env.Equal(4, len(b.Contours[0].Points))
	a, _ := font.Glyph("a")
	env.Equal(1, len(a.Components), "a should hold b's old composite content")
	for _, name := range font.GlyphNames() {
		g, _ := font.Glyph(name)
		for _, comp := range g.Components {
			env.NotEqual("___TEMPORARY_SWAP_GLYPH___", comp.BaseGlyph)
		}
	}
}

func (env *InstantiatorTestEnviron) TestOutputIndependence() {
	inst, err := NewInstantiator(env.doc, nil)
	env.Require().NoError(err)
	font, err := inst.GenerateInstance(instanceAt("Medium", 500))
	env.Require().NoError(err)

	a, _ := font.Glyph("a")
	a.Contours[0].Points[0].X = 9999
	font.Groups["public.kern1.a"][0] = "mutated"
	font.Lib["com.example.master"] = "mutated"

	second, err := inst.GenerateInstance(instanceAt("Medium", 500))
	env.Require().NoError(err)
	a2, _ := second.Glyph("a")
	env.Equal(0.0, a2.Contours[0].Points[0].X, "instances must not share state")
	env.Equal("a", second.Groups["public.kern1.a"][0])
	env.Equal("Light", second.Lib["com.example.master"])
}

func (env *InstantiatorTestEnviron) TestMissingDefaultSource() {
	env.doc.Sources[0].Location["Weight"] = 150
	_, err := NewInstantiator(env.doc, nil)
	env.Require().Error(err)
	var e *Error
	env.Require().True(errors.As(err, &e))
	env.Equal(KindConfig, e.Kind)
	// the Weight axis carries a map, so the message points at the
	// user-space vs design-space pitfall
	env.Contains(err.Error(), "axis mapping")
}

func (env *InstantiatorTestEnviron) TestMissingDefaultSourceWithoutAxisMap() {
	env.doc.Axes[0].Map = nil
	env.doc.Axes[0].Default = 100
	env.doc.Axes[0].Minimum = 100
	env.doc.Axes[0].Maximum = 900
	env.doc.Sources[0].Location["Weight"] = 150
	_, err := NewInstantiator(env.doc, nil)
	env.Require().Error(err)
	env.NotContains(err.Error(), "axis mapping")
}

func (env *InstantiatorTestEnviron) TestDiscreteAxisRejected() {
	env.doc.Axes = append(env.doc.Axes, ds.Axis{
		Name: "Italic", Tag: "ital", Values: []float64{0, 1},
	})
	_, err := NewInstantiator(env.doc, nil)
	env.Require().Error(err)
	var e *Error
	env.Require().True(errors.As(err, &e))
	env.Equal(KindConfig, e.Kind)
}

func (env *InstantiatorTestEnviron) TestAnisotropicLocationRejected() {
	inst, err := NewInstantiator(env.doc, nil)
	env.Require().NoError(err)
	_, err = inst.GenerateInstance(&ds.InstanceDescriptor{
		StyleName: "Aniso",
		Location:  ds.InstanceLocation{"Weight": {X: 500, Y: 300, HasY: true}},
	})
	env.Require().Error(err)
	var e *Error
	env.Require().True(errors.As(err, &e))
	env.Equal(KindConfig, e.Kind)
}

func (env *InstantiatorTestEnviron) TestAnisotropicDeclaredInstanceRejected() {
	env.doc.Instances = append(env.doc.Instances, &ds.InstanceDescriptor{
		StyleName: "Aniso",
		Location:  ds.InstanceLocation{"Weight": {X: 500, Y: 300, HasY: true}},
	})
	_, err := NewInstantiator(env.doc, nil)
	env.Require().Error(err)
	var e *Error
	env.Require().True(errors.As(err, &e))
	env.Equal(KindConfig, e.Kind)
	env.Contains(err.Error(), "Aniso")
}

func (env *InstantiatorTestEnviron) TestFeatureTextOverride() {
	env.doc.Sources[0].Font.Features = "# original\n"
	inst, err := NewInstantiator(env.doc, nil)
	env.Require().NoError(err)
	font, err := inst.GenerateInstance(instanceAt("Medium", 500))
	env.Require().NoError(err)
	env.Equal("# original\n", font.Features)
	//
	expanded := "feature kern {\n} kern;\n"
	inst, err = NewInstantiator(env.doc, &Options{Features: &expanded})
	env.Require().NoError(err)
	font, err = inst.GenerateInstance(instanceAt("Medium", 500))
	env.Require().NoError(err)
	env.Equal(expanded, font.Features)
}

func (env *InstantiatorTestEnviron) TestStyleNameFallback() {
	inst, err := NewInstantiator(env.doc, nil)
	env.Require().NoError(err)
	font, err := inst.GenerateInstance(&ds.InstanceDescriptor{
		Location: ds.InstanceLocation{"Weight": {X: 500}},
	})
	env.Require().NoError(err)
	// no style name on the descriptor: the default source's name is kept
	env.Equal("Light", font.Info.StyleName)
}

func (env *InstantiatorTestEnviron) TestStyleMapAndPostScriptNames() {
	inst, err := NewInstantiator(env.doc, nil)
	env.Require().NoError(err)
	font, err := inst.GenerateInstance(&ds.InstanceDescriptor{
		StyleName:          "Semibold",
		FamilyName:         "Test Display",
		PostScriptFontName: "TestDisplay-Semibold",
		StyleMapFamilyName: "Test Display Semibold",
		StyleMapStyleName:  "regular",
		Location:           ds.InstanceLocation{"Weight": {X: 700}},
	})
	env.Require().NoError(err)
	env.Equal("Test Display", font.Info.FamilyName)
	env.Equal("TestDisplay-Semibold", font.Info.PostscriptFontName)
	env.Equal("Test Display Semibold", font.Info.StyleMapFamilyName)
	env.Equal("regular", font.Info.StyleMapStyleName)
}

func (env *InstantiatorTestEnviron) TestSparseLayerSource() {
	// a sparse layer redesigns "a" around the middle of the axis
	regular := env.doc.Sources[0].Font
	medium, err := regular.NewLayer("medium")
	env.Require().NoError(err)
	a := medium.NewGlyph("a")
	a.Width = 800 // heavier than linear interpolation would give
	a.Contours = []ufo.Contour{{Points: []ufo.Point{
		{X: 0, Y: 0, Type: ufo.Line},
		{X: 700, Y: 0, Type: ufo.Line},
		{X: 50, Y: 700, Type: ufo.Line},
	}}}
	env.doc.Sources = append(env.doc.Sources, &ds.SourceDescriptor{
		Name: "Medium", LayerName: "medium",
		Location: map[string]float64{"Weight": 500},
		Font:     regular,
	})

	inst, err := NewInstantiator(env.doc, nil)
	env.Require().NoError(err)
	font, err := inst.GenerateInstance(instanceAt("Medium", 500))
	env.Require().NoError(err)
	got, _ := font.Glyph("a")
	env.Equal(800.0, got.Width, "the intermediate master should pin the midpoint")

	// glyphs absent from the layer still interpolate from the outer masters
	alt, _ := font.Glyph("a.alt")
	env.Equal(800.0, alt.Width)
}

func (env *InstantiatorTestEnviron) TestEmptyGlyphDroppedFromModel() {
	// Bold defines "a.alt" as empty: treat it as "not defined here"
	alt, _ := env.doc.Sources[1].Font.Glyph("a.alt")
	alt.ClearOutline()

	inst, err := NewInstantiator(env.doc, nil)
	env.Require().NoError(err)
	font, err := inst.GenerateInstance(instanceAt("Medium", 500))
	env.Require().NoError(err)
	got, _ := font.Glyph("a.alt")
	env.False(got.IsEmpty(), "the Light outline should survive alone")
	env.Equal(4, len(got.Contours[0].Points))
}
