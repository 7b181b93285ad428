package instancer

import (
	"github.com/npillmayer/instancer/ufo"
)

// SwapGlyphNames exchanges the drawing-related content of two glyphs in
// place: outlines, advance metrics, anchors and components, plus every
// reference to them in other glyphs' components, in kerning pairs and
// in group membership. Unicode codepoints stay with their glyph name,
// so the cmap of a compiled font is unaffected.
func SwapGlyphNames(font *ufo.Font, nameA, nameB string) error {
	layer := font.DefaultLayer()
	glyphA, okA := layer.Glyph(nameA)
	glyphB, okB := layer.Glyph(nameB)
	if !okA || !okB {
		missing := nameA
		if okA {
			missing = nameB
		}
		return newError(KindRule, nil, "cannot swap glyphs %q and %q: %q is missing",
			nameA, nameB, missing)
	}

	swapGlyphContent(glyphA, glyphB)

	// Component references to either glyph now point at the wrong
	// content, so they are exchanged everywhere. A temporary third name
	// avoids remapping a reference twice.
	const holder = "___TEMPORARY_SWAP_GLYPH___"
	for _, name := range layer.Names() {
		g, _ := layer.Glyph(name)
		for i := range g.Components {
			switch g.Components[i].BaseGlyph {
			case nameA:
				g.Components[i].BaseGlyph = holder
			case nameB:
				g.Components[i].BaseGlyph = nameA
			}
		}
	}
	for _, name := range layer.Names() {
		g, _ := layer.Glyph(name)
		for i := range g.Components {
			if g.Components[i].BaseGlyph == holder {
				g.Components[i].BaseGlyph = nameB
			}
		}
	}

	swapKerningSides(font, nameA, nameB)
	swapGroupMembers(font, nameA, nameB)
	return nil
}

func swapGlyphContent(a, b *ufo.Glyph) {
	a.Contours, b.Contours = b.Contours, a.Contours
	a.Components, b.Components = b.Components, a.Components
	a.Anchors, b.Anchors = b.Anchors, a.Anchors
	a.Width, b.Width = b.Width, a.Width
	a.Height, b.Height = b.Height, a.Height
}

func swapKerningSides(font *ufo.Font, nameA, nameB string) {
	if len(font.Kerning) == 0 {
		return
	}
	swapped := make(ufo.Kerning, len(font.Kerning))
	for pair, value := range font.Kerning {
		first := swapName(pair.First, nameA, nameB)
		second := swapName(pair.Second, nameA, nameB)
		swapped[ufo.KerningPair{First: first, Second: second}] = value
	}
	font.Kerning = swapped
}

func swapGroupMembers(font *ufo.Font, nameA, nameB string) {
	for groupName, members := range font.Groups {
		changed := false
		for i, member := range members {
			if member == nameA || member == nameB {
				members[i] = swapName(member, nameA, nameB)
				changed = true
			}
		}
		if changed {
			font.Groups[groupName] = members
		}
	}
}

func swapName(name, a, b string) string {
	switch name {
	case a:
		return b
	case b:
		return a
	}
	return name
}
