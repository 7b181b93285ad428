package main

import (
	"fmt"
	"strings"

	"github.com/npillmayer/instancer/compat"
	"github.com/npillmayer/instancer/ds"
	"github.com/npillmayer/instancer/fontmath"
	"github.com/npillmayer/instancer/ufo"
	"github.com/pterm/pterm"
)

func axesOp(intp *Intp, op *Op) (error, bool) {
	data := [][]string{
		{"Name", "Tag", "Min", "Default", "Max", "Map"},
	}
	for i := range intp.doc.Axes {
		axis := &intp.doc.Axes[i]
		mapped := "-"
		if axis.HasMap() {
			mapped = fmt.Sprintf("%d points", len(axis.Map))
		}
		data = append(data, []string{
			axis.Name,
			axis.Tag,
			fmt.Sprintf("%g", axis.Minimum),
			fmt.Sprintf("%g", axis.Default),
			fmt.Sprintf("%g", axis.Maximum),
			mapped,
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil, false
}

func sourcesOp(intp *Intp, op *Op) (error, bool) {
	order := intp.doc.AxisOrder()
	data := [][]string{
		{"Source", "Location", "Layer", "Glyphs", "Kerning"},
	}
	for _, src := range intp.doc.Sources {
		layer := "-"
		if src.IsSparseLayer() {
			layer = src.LayerName
		}
		glyphs, kerning := "-", "-"
		if src.Font != nil {
			if l, ok := src.Font.Layer(src.LayerName); ok {
				glyphs = fmt.Sprintf("%d", l.Len())
			}
			kerning = fmt.Sprintf("%d", len(src.Font.Kerning))
		}
		data = append(data, []string{
			src.DisplayName(),
			formatLocation(src.Location, order),
			layer,
			glyphs,
			kerning,
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil, false
}

func instancesOp(intp *Intp, op *Op) (error, bool) {
	order := intp.doc.AxisOrder()
	data := [][]string{
		{"Instance", "Family", "Location"},
	}
	for _, inst := range intp.doc.Instances {
		data = append(data, []string{
			inst.DisplayName(),
			inst.FamilyName,
			formatLocation(inst.Location.Isotropic(), order),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil, false
}

func rulesOp(intp *Intp, op *Op) (error, bool) {
	if len(intp.doc.Rules) == 0 {
		pterm.Println("document has no rules")
		return nil, false
	}
	for _, rule := range intp.doc.Rules {
		active := ""
		if rule.AppliesAt(intp.location) {
			active = "  [active at current location]"
		}
		swaps := make([]string, len(rule.Subs))
		for i, sub := range rule.Subs {
			swaps[i] = sub.Name + " <-> " + sub.With
		}
		pterm.Printf("%s: %s%s\n", rule.Name, strings.Join(swaps, ", "), active)
	}
	return nil, false
}

// glyphOp interpolates the current location and prints one glyph:
// "glyph:adieresis".
func glyphOp(intp *Intp, op *Op) (error, bool) {
	name, ok := op.hasArg()
	if !ok {
		return fmt.Errorf("glyph name missing (use glyph:<name>)"), false
	}
	font, err := intp.generateHere()
	if err != nil {
		return err, false
	}
	glyph, ok := font.Glyph(name)
	if !ok {
		return fmt.Errorf("no glyph %q in the interpolated font", name), false
	}
	pterm.Printf("glyph %s: width=%g height=%g contours=%d components=%d anchors=%d\n",
		glyph.Name, glyph.Width, glyph.Height,
		len(glyph.Contours), len(glyph.Components), len(glyph.Anchors))
	for i, contour := range glyph.Contours {
		pterm.Printf("  contour %d: %d points\n", i, len(contour.Points))
	}
	for _, comp := range glyph.Components {
		pterm.Printf("  component -> %s\n", comp.BaseGlyph)
	}
	for _, anchor := range glyph.Anchors {
		pterm.Printf("  anchor %s at (%g,%g)\n", anchor.Name, anchor.X, anchor.Y)
	}
	return nil, false
}

// kernOp looks up an interpolated kerning value with group fallback:
// "kern:T:o".
func kernOp(intp *Intp, op *Op) (error, bool) {
	if op.arg == "" || op.arg2 == "" {
		return fmt.Errorf("kern pair missing (use kern:<first>:<second>)"), false
	}
	font, err := intp.generateHere()
	if err != nil {
		return err, false
	}
	kerning := fontmath.NewMathKerning(font.Kerning, font.Groups)
	value := kerning.Lookup(ufo.KerningPair{First: op.arg, Second: op.arg2})
	pterm.Printf("kern(%s, %s) = %g\n", op.arg, op.arg2, value)
	return nil, false
}

func infoOp(intp *Intp, op *Op) (error, bool) {
	font, err := intp.generateHere()
	if err != nil {
		return err, false
	}
	info := font.Info
	pterm.Printf("family: %s  style: %s\n", info.FamilyName, info.StyleName)
	printMetric := func(label string, v *float64) {
		if v != nil {
			pterm.Printf("%s: %g\n", label, *v)
		}
	}
	printMetric("unitsPerEm", info.UnitsPerEm)
	printMetric("ascender", info.Ascender)
	printMetric("descender", info.Descender)
	printMetric("xHeight", info.XHeight)
	printMetric("capHeight", info.CapHeight)
	printMetric("italicAngle", info.ItalicAngle)
	if info.OpenTypeOS2WeightClass != nil {
		pterm.Printf("usWeightClass: %d\n", *info.OpenTypeOS2WeightClass)
	}
	if info.OpenTypeOS2WidthClass != nil {
		pterm.Printf("usWidthClass: %d\n", *info.OpenTypeOS2WidthClass)
	}
	return nil, false
}

func checkOp(intp *Intp, op *Op) (error, bool) {
	checker, err := compat.New(intp.doc)
	if err != nil {
		return err, false
	}
	problems := checker.Check()
	if len(problems) == 0 {
		pterm.Info.Println("all sources are interpolation compatible")
		return nil, false
	}
	for _, p := range problems {
		pterm.Error.Println(p.String())
	}
	return nil, false
}

// generateOp generates a declared instance by style name: "generate:Bold".
// Without an argument all instances are generated.
func generateOp(intp *Intp, op *Op) (error, bool) {
	selected := intp.doc.Instances
	if name, ok := op.hasArg(); ok {
		selected = nil
		for _, inst := range intp.doc.Instances {
			if inst.StyleName == name || inst.Name == name {
				selected = append(selected, inst)
			}
		}
		if len(selected) == 0 {
			return fmt.Errorf("no instance named %q", name), false
		}
	}
	order := intp.doc.AxisOrder()
	data := [][]string{
		{"Instance", "Location", "Glyphs", "Kerning"},
	}
	for _, descriptor := range selected {
		font, err := intp.inst.GenerateInstance(descriptor)
		if err != nil {
			pterm.Error.Printf("%s: %v\n", descriptor.DisplayName(), err)
			continue
		}
		data = append(data, []string{
			descriptor.DisplayName(),
			formatLocation(intp.inst.DesignLocation(descriptor), order),
			fmt.Sprintf("%d", font.DefaultLayer().Len()),
			fmt.Sprintf("%d", len(font.Kerning)),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil, false
}

// generateHere cuts an ad-hoc instance at the interpreter's current
// location.
func (intp *Intp) generateHere() (*ufo.Font, error) {
	descriptor := &ds.InstanceDescriptor{
		StyleName: "Adhoc",
		Location:  make(ds.InstanceLocation, len(intp.location)),
	}
	for axis, v := range intp.location {
		descriptor.Location[axis] = ds.Coord{X: v}
	}
	return intp.inst.GenerateInstance(descriptor)
}
