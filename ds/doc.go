/*
Package ds models designspace documents: the declaration of
interpolation axes, master sources placed at axis locations, instances
to generate, and conditional glyph-substitution rules.

The package covers the document itself plus the coordinate conventions
around it (user space vs. design space via per-axis mappings, sparse and
anisotropic instance locations). Source fonts are attached to the
document by a caller-supplied loader; the document model performs no
font I/O of its own.

Reading of .designspace XML files is included (Load/Parse), with the
embedded <lib> property list decoded through howett.net/plist.

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package ds

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'instancer'
func tracer() tracing.Trace {
	return tracing.Select("instancer")
}
