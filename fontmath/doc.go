/*
Package fontmath provides arithmetic shells for interpolatable font data.

MathGlyph, MathKerning and MathInfo wrap a glyph, a kerning table and a
font info record in value types supporting addition, subtraction, scalar
multiplication and rounding. They satisfy the arithmetic contract of the
varmodel package, so any of the three can be pushed through a variation
model. After interpolation, the shells extract their content back into
ufo objects.

Arithmetic requires structural compatibility: glyphs must agree in
contour count and per-contour point count, kerning values are paired
with group-membership fallback, and info fields only take part when set
on both operands.

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package fontmath
