package instancer

import "github.com/npillmayer/instancer/fontmath"

// WeightClassFromWght maps a user-space wght axis value to an OS/2
// usWeightClass. Values are clamped to the valid 1..1000 range and
// rounded.
func WeightClassFromWght(wght float64) int {
	if wght < 1 {
		wght = 1
	} else if wght > 1000 {
		wght = 1000
	}
	return fontmath.OTRoundInt(wght)
}

// wdthClassTable maps key points of the wdth axis (percent of normal
// width) to OS/2 usWidthClass values 1..9.
var wdthClassTable = []struct {
	wdth  float64
	class float64
}{
	{50, 1}, {62.5, 2}, {75, 3}, {87.5, 4}, {100, 5},
	{112.5, 6}, {125, 7}, {150, 8}, {200, 9},
}

// WidthClassFromWdth maps a user-space wdth axis value to an OS/2
// usWidthClass by piecewise linear interpolation between the class
// anchor points. Values outside 50..200 are clamped.
func WidthClassFromWdth(wdth float64) int {
	if wdth <= wdthClassTable[0].wdth {
		return int(wdthClassTable[0].class)
	}
	last := len(wdthClassTable) - 1
	if wdth >= wdthClassTable[last].wdth {
		return int(wdthClassTable[last].class)
	}
	i := 1
	for wdthClassTable[i].wdth < wdth {
		i++
	}
	lo, hi := wdthClassTable[i-1], wdthClassTable[i]
	t := (wdth - lo.wdth) / (hi.wdth - lo.wdth)
	return fontmath.OTRoundInt(lo.class + t*(hi.class-lo.class))
}

// ItalicAngleFromSlnt maps a user-space slnt axis value to an italic
// angle, clamped to the -90..90 degree range the axis is defined for.
func ItalicAngleFromSlnt(slnt float64) float64 {
	if slnt < -90 {
		return -90
	}
	if slnt > 90 {
		return 90
	}
	return slnt
}
