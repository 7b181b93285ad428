package ufoload

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/instancer/ufo"
	"howett.net/plist"
)

// Wire model of the .glif XML format, version 2.

type glifGlyph struct {
	Name     string        `xml:"name,attr"`
	Format   int           `xml:"format,attr"`
	Advance  *glifAdvance  `xml:"advance"`
	Unicodes []glifUnicode `xml:"unicode"`
	Anchors  []glifAnchor  `xml:"anchor"`
	Outline  *glifOutline  `xml:"outline"`
	Lib      *glifLib      `xml:"lib"`
}

type glifAdvance struct {
	Width  float64 `xml:"width,attr"`
	Height float64 `xml:"height,attr"`
}

type glifUnicode struct {
	Hex string `xml:"hex,attr"`
}

type glifAnchor struct {
	X    float64 `xml:"x,attr"`
	Y    float64 `xml:"y,attr"`
	Name string  `xml:"name,attr"`
}

type glifOutline struct {
	Contours   []glifContour   `xml:"contour"`
	Components []glifComponent `xml:"component"`
}

type glifContour struct {
	Points []glifPoint `xml:"point"`
}

type glifPoint struct {
	X      float64 `xml:"x,attr"`
	Y      float64 `xml:"y,attr"`
	Type   string  `xml:"type,attr"`
	Smooth string  `xml:"smooth,attr"`
	Name   string  `xml:"name,attr"`
}

type glifComponent struct {
	Base    string   `xml:"base,attr"`
	XScale  *float64 `xml:"xScale,attr"`
	XYScale float64  `xml:"xyScale,attr"`
	YXScale float64  `xml:"yxScale,attr"`
	YScale  *float64 `xml:"yScale,attr"`
	XOffset float64  `xml:"xOffset,attr"`
	YOffset float64  `xml:"yOffset,attr"`
}

type glifLib struct {
	Inner string `xml:",innerxml"`
}

func parseGlif(data []byte) (*ufo.Glyph, error) {
	var x glifGlyph
	if err := xml.Unmarshal(data, &x); err != nil {
		return nil, err
	}
	glyph := &ufo.Glyph{Name: x.Name}
	if x.Advance != nil {
		glyph.Width = x.Advance.Width
		glyph.Height = x.Advance.Height
	}
	for _, u := range x.Unicodes {
		cp, err := strconv.ParseUint(u.Hex, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("bad unicode value %q: %w", u.Hex, err)
		}
		glyph.Unicodes = append(glyph.Unicodes, rune(cp))
	}
	for _, a := range x.Anchors {
		glyph.Anchors = append(glyph.Anchors, ufo.Anchor{Name: a.Name, X: a.X, Y: a.Y})
	}
	if x.Outline != nil {
		for _, c := range x.Outline.Contours {
			contour := ufo.Contour{Points: make([]ufo.Point, len(c.Points))}
			for i, p := range c.Points {
				contour.Points[i] = ufo.Point{
					X:      p.X,
					Y:      p.Y,
					Type:   ufo.PointType(p.Type),
					Smooth: p.Smooth == "yes",
					Name:   p.Name,
				}
			}
			glyph.Contours = append(glyph.Contours, contour)
		}
		for _, comp := range x.Outline.Components {
			t := ufo.Identity
			if comp.XScale != nil {
				t.XScale = *comp.XScale
			}
			if comp.YScale != nil {
				t.YScale = *comp.YScale
			}
			t.XYScale = comp.XYScale
			t.YXScale = comp.YXScale
			t.XOffset = comp.XOffset
			t.YOffset = comp.YOffset
			glyph.Components = append(glyph.Components, ufo.Component{
				BaseGlyph: comp.Base,
				Transform: t,
			})
		}
	}
	if x.Lib != nil {
		lib, err := parseGlyphLib(x.Lib.Inner)
		if err != nil {
			return nil, fmt.Errorf("glyph lib: %w", err)
		}
		glyph.Lib = lib
	}
	return glyph, nil
}

func parseGlyphLib(inner string) (ufo.Lib, error) {
	inner = strings.TrimSpace(inner)
	if inner == "" {
		return nil, nil
	}
	wrapped := `<?xml version="1.0" encoding="UTF-8"?><plist version="1.0">` + inner + `</plist>`
	raw := make(map[string]any)
	if _, err := plist.Unmarshal([]byte(wrapped), &raw); err != nil {
		return nil, err
	}
	lib := make(ufo.Lib, len(raw))
	for k, v := range raw {
		lib[k] = normalizeValue(v)
	}
	return lib, nil
}
