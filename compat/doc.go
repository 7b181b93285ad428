/*
Package compat checks the master sources of a design space for
interpolation compatibility.

Interpolating glyph outlines requires every master to draw a glyph with
the same structure: the same number of contours, points per contour,
point types, components and anchors. A mismatch surfaces late, as an
interpolation failure on one glyph of one instance. This package finds
all mismatches up front and reports each one with the glyph, contour and
point it occurred at and the sources that disagree.

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package compat

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'instancer'
func tracer() tracing.Trace {
	return tracing.Select("instancer")
}
