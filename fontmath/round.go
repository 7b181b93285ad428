package fontmath

import "math"

// OTRound rounds half up: floor(v + 0.5). This is the rounding used by
// the variable-font delta pipeline; static instances use the same
// convention so that both outputs agree on borderline coordinates.
func OTRound(v float64) float64 {
	return math.Floor(v + 0.5)
}

// OTRoundInt is OTRound converted to int.
func OTRoundInt(v float64) int {
	return int(OTRound(v))
}
