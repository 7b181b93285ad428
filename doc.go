/*
Package instancer cuts static font instances out of an interpolation
design space.

A designspace document declares axes, master sources placed at design
space locations, named instances, and conditional glyph-substitution
rules. Package instancer digests such a document, together with the
loaded master fonts, into an Instantiator; each call to GenerateInstance
then produces one complete, self-contained static font: interpolated
glyph outlines and metrics, interpolated kerning, interpolated font
info with OS/2 classes inferred from the registered axes, copied groups,
features and lib data, and any rule-triggered glyph swaps applied.

Typical use:

	doc, err := ds.Load("MyFamily.designspace")
	…
	err = doc.LoadSourceFonts(ufoload.Load)
	…
	inst, err := instancer.NewInstantiator(doc, &instancer.Options{RoundGeometry: true})
	…
	for _, instance := range doc.Instances {
		font, err := inst.GenerateInstance(instance)
		…
	}

Masters do not have to be mutually point-compatible as long as every
generated instance sits exactly on a master location; interpolation
between incompatible masters fails with an interpolation error naming
the offending glyph. The compat package checks a document's sources for
such problems up front.

# Status

Anisotropic instance locations and documents with discrete axes are
rejected; split a discrete design space into per-value sub-spaces
before instantiating.

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package instancer

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'instancer'
func tracer() tracing.Trace {
	return tracing.Select("instancer")
}
