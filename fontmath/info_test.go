package fontmath

import (
	"testing"

	"github.com/npillmayer/instancer/ufo"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestInfoArithmetic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "instancer")
	defer teardown()
	//
	regular := NewMathInfo(&ufo.Info{
		Ascender:  ufo.Float(700),
		Descender: ufo.Float(-200),
		XHeight:   ufo.Float(480),
	})
	bold := NewMathInfo(&ufo.Info{
		Ascender:  ufo.Float(720),
		Descender: ufo.Float(-210),
		XHeight:   ufo.Float(500),
	})
	diff, err := bold.Sub(regular)
	if err != nil {
		t.Fatal(err)
	}
	mid, err := regular.Add(diff.Scale(0.5))
	if err != nil {
		t.Fatal(err)
	}
	out := &ufo.Info{}
	mid.ExtractInto(out)
	if out.Ascender == nil || *out.Ascender != 710 {
		t.Errorf("ascender = %v, want 710", out.Ascender)
	}
	if out.Descender == nil || *out.Descender != -205 {
		t.Errorf("descender = %v, want -205", out.Descender)
	}
	if out.XHeight == nil || *out.XHeight != 490 {
		t.Errorf("xHeight = %v, want 490", out.XHeight)
	}
}

func TestInfoFieldNeedsBothOperands(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "instancer")
	defer teardown()
	//
	a := NewMathInfo(&ufo.Info{Ascender: ufo.Float(700), CapHeight: ufo.Float(660)})
	b := NewMathInfo(&ufo.Info{Ascender: ufo.Float(720)})
	sum, err := a.Add(b)
	if err != nil {
		t.Fatal(err)
	}
	out := &ufo.Info{}
	sum.ExtractInto(out)
	if out.Ascender == nil {
		t.Error("ascender set on both operands should survive")
	}
	if out.CapHeight != nil {
		t.Error("capHeight set on only one operand must not survive arithmetic")
	}
}

func TestInfoBlueScaleNeverRounded(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "instancer")
	defer teardown()
	//
	m := NewMathInfo(&ufo.Info{
		PostscriptBlueScale: ufo.Float(0.039625),
		PostscriptBlueShift: ufo.Float(6.6),
	})
	r := m.Round()
	out := &ufo.Info{}
	r.ExtractInto(out)
	if *out.PostscriptBlueScale != 0.039625 {
		t.Errorf("blueScale must keep its fraction, got %g", *out.PostscriptBlueScale)
	}
	if *out.PostscriptBlueShift != 7 {
		t.Errorf("blueShift should round to 7, got %g", *out.PostscriptBlueShift)
	}
}

func TestInfoClassFieldsExtractAsIntegers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "instancer")
	defer teardown()
	//
	a := NewMathInfo(&ufo.Info{OpenTypeOS2WeightClass: ufo.Int(400)})
	b := NewMathInfo(&ufo.Info{OpenTypeOS2WeightClass: ufo.Int(700)})
	diff, _ := b.Sub(a)
	mid, _ := a.Add(diff.Scale(0.335))
	// 400 + 0.335*300 = 500.5, extraction rounds half up
	out := &ufo.Info{}
	mid.ExtractInto(out)
	if out.OpenTypeOS2WeightClass == nil || *out.OpenTypeOS2WeightClass != 501 {
		t.Errorf("weight class = %v, want 501", out.OpenTypeOS2WeightClass)
	}
	if !mid.HasWeightClass() {
		t.Error("HasWeightClass should report true after interpolation")
	}
	if mid.HasWidthClass() {
		t.Error("HasWidthClass should report false, no master set it")
	}
}

func TestInfoListInterpolation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "instancer")
	defer teardown()
	//
	a := NewMathInfo(&ufo.Info{PostscriptBlueValues: []float64{-10, 0, 480, 490}})
	b := NewMathInfo(&ufo.Info{PostscriptBlueValues: []float64{-10, 0, 500, 510}})
	diff, _ := b.Sub(a)
	mid, _ := a.Add(diff.Scale(0.5))
	out := &ufo.Info{}
	mid.ExtractInto(out)
	want := []float64{-10, 0, 490, 500}
	if len(out.PostscriptBlueValues) != len(want) {
		t.Fatalf("blueValues = %v, want %v", out.PostscriptBlueValues, want)
	}
	for i, v := range want {
		if out.PostscriptBlueValues[i] != v {
			t.Errorf("blueValues[%d] = %g, want %g", i, out.PostscriptBlueValues[i], v)
		}
	}
}
