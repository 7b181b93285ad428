/*
Package varmodel implements the piecewise-linear variation model used for
multi-master interpolation.

A model is built from a set of master locations in normalized design space
(each axis scaled to [-1,1] with the default at 0). Every master gets a
support region: the per-axis interval over which it has influence, derived
from its neighboring masters. Intermediate masters therefore only act on
the region between their neighbors and never leak influence beyond it.
This is the same support-based scheme used for variable-font delta
computation, so static instances produced through this model agree with
their variable-font counterparts.

Interpolation is expressed in terms of deltas relative to the default
master (the master at the all-zero location, which every model requires).
The model itself is data-agnostic: any value type implementing the small
arithmetic contract in this package (glyph outlines, kerning tables, font
metrics) can be pushed through it.

# Status

Extrapolation and anisotropic (x/y split) locations are not supported.

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package varmodel

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'instancer'
func tracer() tracing.Trace {
	return tracing.Select("instancer")
}
