package instancer

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestWeightClassFromWght(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "instancer")
	defer teardown()
	//
	cases := []struct {
		wght float64
		want int
	}{
		{400, 400},
		{500.6, 501},
		{500.5, 501},
		{0, 1},
		{-100, 1},
		{1200, 1000},
	}
	for _, c := range cases {
		if got := WeightClassFromWght(c.wght); got != c.want {
			t.Errorf("WeightClassFromWght(%g) = %d, want %d", c.wght, got, c.want)
		}
	}
}

func TestWidthClassFromWdth(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "instancer")
	defer teardown()
	//
	cases := []struct {
		wdth float64
		want int
	}{
		{100, 5},
		{50, 1},
		{200, 9},
		{25, 1},  // clamped
		{250, 9}, // clamped
		{62.5, 2},
		{112, 6},   // 5.96 rounds to 6
		{130, 7},   // 7.2 rounds to 7
		{137.5, 8}, // 7.5 rounds up
	}
	for _, c := range cases {
		if got := WidthClassFromWdth(c.wdth); got != c.want {
			t.Errorf("WidthClassFromWdth(%g) = %d, want %d", c.wdth, got, c.want)
		}
	}
}

func TestItalicAngleFromSlnt(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "instancer")
	defer teardown()
	//
	cases := []struct {
		slnt, want float64
	}{
		{0, 0},
		{-12.5, -12.5},
		{-100, -90},
		{100, 90},
	}
	for _, c := range cases {
		if got := ItalicAngleFromSlnt(c.slnt); got != c.want {
			t.Errorf("ItalicAngleFromSlnt(%g) = %g, want %g", c.slnt, got, c.want)
		}
	}
}
