package varmodel

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// num is a scalar test value for pushing through the model.
type num float64

func (n num) Add(other num) (num, error) { return n + other, nil }
func (n num) Sub(other num) (num, error) { return n - other, nil }
func (n num) Scale(factor float64) num   { return num(float64(n) * factor) }
func (n num) Copy() num                  { return n }

func TestInterpolateLinear(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "instancer")
	defer teardown()
	//
	m, err := New([]Location{{}, {"Weight": 1}}, []string{"Weight"})
	if err != nil {
		t.Fatal(err)
	}
	masters := []num{200, 240}
	cases := []struct {
		at   float64
		want num
	}{
		{0, 200},
		{1, 240},
		{0.5, 220},
		{0.25, 210},
	}
	for _, c := range cases {
		got, err := Interpolate(m, Location{"Weight": c.at}, masters)
		if err != nil {
			t.Fatal(err)
		}
		if got != c.want {
			t.Errorf("interpolation at %g = %g, want %g", c.at, got, c.want)
		}
	}
}

func TestInterpolateIntermediateMaster(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "instancer")
	defer teardown()
	//
	m, err := New([]Location{{}, {"Weight": 0.5}, {"Weight": 1}}, []string{"Weight"})
	if err != nil {
		t.Fatal(err)
	}
	// values in model input order, not sorted order
	masters := []num{0, 30, 20}
	got, err := Interpolate(m, Location{"Weight": 0.5}, masters)
	if err != nil {
		t.Fatal(err)
	}
	if got != 30 {
		t.Errorf("interpolation should hit the intermediate master exactly, got %g", got)
	}
	got, err = Interpolate(m, Location{"Weight": 0.75}, masters)
	if err != nil {
		t.Fatal(err)
	}
	if got != 25 {
		t.Errorf("interpolation at 0.75 = %g, want 25", got)
	}
}

func TestInterpolateNegativeAxis(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "instancer")
	defer teardown()
	//
	m, err := New([]Location{{}, {"Weight": -1}, {"Weight": 1}}, []string{"Weight"})
	if err != nil {
		t.Fatal(err)
	}
	masters := []num{100, 50, 200}
	got, err := Interpolate(m, Location{"Weight": -0.5}, masters)
	if err != nil {
		t.Fatal(err)
	}
	if got != 75 {
		t.Errorf("interpolation at -0.5 = %g, want 75", got)
	}
}
