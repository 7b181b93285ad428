package main

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/instancer"
	"github.com/npillmayer/instancer/ds"
	"github.com/npillmayer/instancer/ufo"
	"github.com/thatisuday/commando"
	"golang.org/x/image/vector"
)

func runViewCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	doc := mustLoadDocument(args["designspace"].Value, true)
	glyphName := strings.TrimSpace(args["glyph"].Value)
	if glyphName == "" {
		fatalf("glyph name is required")
	}

	loc, err := parseLocation(doc, flags["location"], mustFlagBool(flags["user"], "user"))
	if err != nil {
		fatalf("%v", err)
	}
	outPath, err := flags["output"].GetString()
	if err != nil {
		fatalf("invalid --output flag: %v", err)
	}
	outPath = strings.TrimSpace(outPath)
	if outPath == "" {
		fatalf("output path is empty")
	}
	ppem := mustFlagInt(flags["ppem"], "ppem")
	width := mustFlagInt(flags["width"], "width")
	height := mustFlagInt(flags["height"], "height")
	showBBox := mustFlagBool(flags["show-bbox"], "show-bbox")
	if ppem <= 0 {
		fatalf("--ppem must be > 0")
	}
	if width <= 0 || height <= 0 {
		fatalf("--width and --height must be > 0")
	}

	inst, err := instancer.NewInstantiator(doc, nil)
	if err != nil {
		fatalf("%v", err)
	}
	descriptor := &ds.InstanceDescriptor{
		StyleName: "Preview",
		Location:  make(ds.InstanceLocation, len(loc)),
	}
	for axis, v := range loc {
		descriptor.Location[axis] = ds.Coord{X: v}
	}
	font, err := inst.GenerateInstance(descriptor)
	if err != nil {
		fatalf("%v", err)
	}
	glyph, ok := font.Glyph(glyphName)
	if !ok {
		fatalf("instance has no glyph %q", glyphName)
	}

	upm := 1000.0
	if font.Info != nil && font.Info.UnitsPerEm != nil && *font.Info.UnitsPerEm > 0 {
		upm = *font.Info.UnitsPerEm
	}
	if err := renderGlyphPNG(font, glyph, outPath, width, height, float64(ppem)/upm, showBBox); err != nil {
		fatalf("render failed: %v", err)
	}
	fmt.Printf("wrote %s (glyph=%s at %s)\n", outPath, glyphName,
		formatLocation(inst.DesignLocation(descriptor), doc.AxisOrder()))
}

// renderGlyphPNG rasterizes a glyph's outline, component references
// flattened, onto a white canvas and writes it as PNG. scale converts
// font units to pixels; the glyph is centered on its bounding box.
func renderGlyphPNG(font *ufo.Font, glyph *ufo.Glyph, outPath string,
	width, height int, scale float64, showBBox bool) error {

	contours := flattenGlyph(font, glyph, ufo.Identity, 0)
	if len(contours) == 0 {
		return errors.New("glyph has no outline")
	}

	// Font Y grows upward, image Y downward.
	minX, minY, maxX, maxY := outlineBounds(contours)
	glyphCenterX := float32(scale * (minX + maxX) / 2)
	glyphCenterY := float32(-scale * (minY + maxY) / 2)
	tx := float32(width)/2 - glyphCenterX
	ty := float32(height)/2 - glyphCenterY

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{255, 255, 255, 255}), image.Point{}, draw.Src)

	rast := vector.NewRasterizer(width, height)
	rast.DrawOp = draw.Over
	project := func(x, y float64) (float32, float32) {
		return tx + float32(scale*x), ty - float32(scale*y)
	}
	for _, contour := range contours {
		drawContour(rast, contour, project)
	}
	rast.Draw(img, img.Bounds(), image.Black, image.Point{})

	if showBBox {
		x0, y0 := project(minX, maxY)
		x1, y1 := project(maxX, minY)
		drawRectOutline(img, int(x0), int(y0), int(x1), int(y1), color.RGBA{255, 0, 0, 255})
	}

	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create output directory: %w", err)
		}
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("cannot create output file: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("cannot encode png: %w", err)
	}
	return nil
}

// flattenGlyph collects the glyph's own contours plus those of its
// components, transformed into the glyph's coordinate space.
func flattenGlyph(font *ufo.Font, glyph *ufo.Glyph, t ufo.Transform, depth int) []ufo.Contour {
	if depth > 8 { // cyclic component references
		return nil
	}
	var out []ufo.Contour
	for _, contour := range glyph.Contours {
		transformed := contour.Copy()
		for i := range transformed.Points {
			transformed.Points[i].X, transformed.Points[i].Y =
				applyTransform(t, transformed.Points[i].X, transformed.Points[i].Y)
		}
		out = append(out, transformed)
	}
	for _, comp := range glyph.Components {
		base, ok := font.Glyph(comp.BaseGlyph)
		if !ok {
			continue
		}
		out = append(out, flattenGlyph(font, base, composeTransforms(t, comp.Transform), depth+1)...)
	}
	return out
}

func applyTransform(t ufo.Transform, x, y float64) (float64, float64) {
	return t.XScale*x + t.YXScale*y + t.XOffset,
		t.XYScale*x + t.YScale*y + t.YOffset
}

func composeTransforms(outer, inner ufo.Transform) ufo.Transform {
	return ufo.Transform{
		XScale:  outer.XScale*inner.XScale + outer.YXScale*inner.XYScale,
		XYScale: outer.XYScale*inner.XScale + outer.YScale*inner.XYScale,
		YXScale: outer.XScale*inner.YXScale + outer.YXScale*inner.YScale,
		YScale:  outer.XYScale*inner.YXScale + outer.YScale*inner.YScale,
		XOffset: outer.XScale*inner.XOffset + outer.YXScale*inner.YOffset + outer.XOffset,
		YOffset: outer.XYScale*inner.XOffset + outer.YScale*inner.YOffset + outer.YOffset,
	}
}

func outlineBounds(contours []ufo.Contour) (minX, minY, maxX, maxY float64) {
	first := true
	for _, contour := range contours {
		for _, p := range contour.Points {
			if first {
				minX, maxX, minY, maxY = p.X, p.X, p.Y, p.Y
				first = false
				continue
			}
			if p.X < minX {
				minX = p.X
			}
			if p.X > maxX {
				maxX = p.X
			}
			if p.Y < minY {
				minY = p.Y
			}
			if p.Y > maxY {
				maxY = p.Y
			}
		}
	}
	return
}

// drawContour feeds one closed contour to the rasterizer. UFO contours
// carry cubic (PostScript) or quadratic (TrueType) segments; a segment
// consists of the off-curve points preceding its on-curve end point.
func drawContour(rast *vector.Rasterizer, contour ufo.Contour, project func(x, y float64) (float32, float32)) {
	points := contour.Points
	if len(points) == 0 {
		return
	}
	start := -1
	for i, p := range points {
		if p.Type != ufo.OffCurve {
			start = i
			break
		}
	}
	if start < 0 {
		return // all off-curve contours are not produced by interpolation sources
	}

	sx, sy := project(points[start].X, points[start].Y)
	rast.MoveTo(sx, sy)
	var offs []ufo.Point
	n := len(points)
	for k := 1; k <= n; k++ {
		p := points[(start+k)%n]
		if p.Type == ufo.OffCurve {
			offs = append(offs, p)
			continue
		}
		px, py := project(p.X, p.Y)
		switch {
		case len(offs) == 0:
			rast.LineTo(px, py)
		case len(offs) == 1:
			cx, cy := project(offs[0].X, offs[0].Y)
			rast.QuadTo(cx, cy, px, py)
		case p.Type == ufo.QCurve:
			// quadratic spline with implied on-curve midpoints
			for i := 0; i < len(offs)-1; i++ {
				cx, cy := project(offs[i].X, offs[i].Y)
				mx, my := project((offs[i].X+offs[i+1].X)/2, (offs[i].Y+offs[i+1].Y)/2)
				rast.QuadTo(cx, cy, mx, my)
			}
			cx, cy := project(offs[len(offs)-1].X, offs[len(offs)-1].Y)
			rast.QuadTo(cx, cy, px, py)
		default:
			c1x, c1y := project(offs[0].X, offs[0].Y)
			c2x, c2y := project(offs[1].X, offs[1].Y)
			rast.CubeTo(c1x, c1y, c2x, c2y, px, py)
		}
		offs = offs[:0]
	}
	rast.ClosePath()
}

func drawRectOutline(img *image.RGBA, minX int, minY int, maxX int, maxY int, c color.RGBA) {
	if maxX < minX {
		minX, maxX = maxX, minX
	}
	if maxY < minY {
		minY, maxY = maxY, minY
	}
	b := img.Bounds()
	if minX < b.Min.X {
		minX = b.Min.X
	}
	if minY < b.Min.Y {
		minY = b.Min.Y
	}
	if maxX > b.Max.X {
		maxX = b.Max.X
	}
	if maxY > b.Max.Y {
		maxY = b.Max.Y
	}
	if minX >= maxX || minY >= maxY {
		return
	}
	for x := minX; x < maxX; x++ {
		img.SetRGBA(x, minY, c)
		img.SetRGBA(x, maxY-1, c)
	}
	for y := minY; y < maxY; y++ {
		img.SetRGBA(minX, y, c)
		img.SetRGBA(maxX-1, y, c)
	}
}
