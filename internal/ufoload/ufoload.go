// Package ufoload reads UFO version 3 font packages from disk into the
// in-memory model of package ufo. It covers the parts instantiation
// needs: font info, groups, kerning, lib, features and all glyph
// layers. Images, data files and glyph-level guidelines are ignored.
package ufoload

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/npillmayer/instancer/ufo"
	"howett.net/plist"
)

// Load reads a .ufo package directory.
func Load(path string) (*ufo.Font, error) {
	var meta struct {
		FormatVersion int `plist:"formatVersion"`
	}
	if err := readPlist(filepath.Join(path, "metainfo.plist"), &meta); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if meta.FormatVersion != 3 {
		return nil, fmt.Errorf("%s: unsupported UFO format version %d", path, meta.FormatVersion)
	}

	font := ufo.NewFont()
	var err error
	if font.Info, err = readFontInfo(filepath.Join(path, "fontinfo.plist")); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if font.Groups, err = readGroups(filepath.Join(path, "groups.plist")); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if font.Kerning, err = readKerning(filepath.Join(path, "kerning.plist")); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if font.Lib, err = readLib(filepath.Join(path, "lib.plist")); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if font.Lib == nil {
		font.Lib = make(ufo.Lib)
	}
	features, err := os.ReadFile(filepath.Join(path, "features.fea"))
	if err == nil {
		font.Features = string(features)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := readLayers(path, font, glyphOrder(font.Lib)); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return font, nil
}

// glyphOrder extracts the preferred glyph ordering from a lib, if any.
func glyphOrder(lib ufo.Lib) []string {
	list, ok := lib[ufo.GlyphOrderKey].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if name, ok := item.(string); ok {
			out = append(out, name)
		}
	}
	return out
}

// readPlist unmarshals a plist file into out. A missing file is not an
// error; out is left untouched.
func readPlist(path string, out any) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if _, err := plist.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return nil
}

func readGroups(path string) (ufo.Groups, error) {
	raw := make(map[string][]string)
	if err := readPlist(path, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return make(ufo.Groups), nil
	}
	return ufo.Groups(raw), nil
}

func readKerning(path string) (ufo.Kerning, error) {
	raw := make(map[string]map[string]float64)
	if err := readPlist(path, &raw); err != nil {
		return nil, err
	}
	kerning := make(ufo.Kerning)
	for first, seconds := range raw {
		for second, value := range seconds {
			kerning[ufo.KerningPair{First: first, Second: second}] = value
		}
	}
	return kerning, nil
}

func readLib(path string) (ufo.Lib, error) {
	raw := make(map[string]any)
	if err := readPlist(path, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	lib := make(ufo.Lib, len(raw))
	for k, v := range raw {
		lib[k] = normalizeValue(v)
	}
	return lib, nil
}

// normalizeValue maps plist decoding artifacts into the lib value
// space: unsigned and 64-bit integers become plain ints.
func normalizeValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, item := range val {
			m[k] = normalizeValue(item)
		}
		return m
	case []any:
		l := make([]any, len(val))
		for i, item := range val {
			l[i] = normalizeValue(item)
		}
		return l
	case uint64:
		return int(val)
	case int64:
		return int(val)
	}
	return v
}

// readLayers reads layercontents.plist and every glyph directory it
// names. The first entry is the default layer.
func readLayers(path string, font *ufo.Font, order []string) error {
	var contents [][]string
	if err := readPlist(filepath.Join(path, "layercontents.plist"), &contents); err != nil {
		return err
	}
	if len(contents) == 0 {
		contents = [][]string{{ufo.DefaultLayerName, "glyphs"}}
	}
	for i, entry := range contents {
		if len(entry) != 2 {
			return fmt.Errorf("layercontents.plist: malformed entry %v", entry)
		}
		layerName, dir := entry[0], entry[1]
		var layer *ufo.Layer
		if i == 0 {
			layer = font.DefaultLayer()
			layer.Name = layerName
		} else {
			var err error
			if layer, err = font.NewLayer(layerName); err != nil {
				return err
			}
		}
		if err := readGlyphDir(filepath.Join(path, dir), layer, order); err != nil {
			return err
		}
	}
	return nil
}

func readGlyphDir(dir string, layer *ufo.Layer, order []string) error {
	contents := make(map[string]string)
	if err := readPlist(filepath.Join(dir, "contents.plist"), &contents); err != nil {
		return err
	}
	names := orderedNames(contents, order)
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, contents[name]))
		if err != nil {
			return err
		}
		glyph, err := parseGlif(data)
		if err != nil {
			return fmt.Errorf("glyph %q: %w", name, err)
		}
		glyph.Name = name
		layer.Set(glyph)
	}
	return nil
}

// orderedNames sequences the glyphs of a contents.plist dict: first the
// lib's public.glyphOrder entries that are present, then the remainder
// alphabetically.
func orderedNames(contents map[string]string, order []string) []string {
	names := make([]string, 0, len(contents))
	seen := make(map[string]bool, len(contents))
	for _, name := range order {
		if _, ok := contents[name]; ok && !seen[name] {
			names = append(names, name)
			seen[name] = true
		}
	}
	rest := make([]string, 0, len(contents))
	for name := range contents {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}
