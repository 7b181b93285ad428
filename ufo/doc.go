/*
Package ufo holds in-memory font objects in the shape of UFO version 3
fonts: glyphs with contours, components and anchors, kerning, groups,
font info and a lib dictionary.

The package is a data shell only. It neither reads nor writes font files;
loaders (for UFO directories or any other source format) construct these
objects, and consumers (interpolation, compilation) operate on them. All
types support deep copying so that pipelines can hand out independent
instances without sharing mutable state.

# Status

Guidelines and per-layer lib data are not modeled.

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package ufo
