package compat

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/npillmayer/instancer/ds"
	"github.com/npillmayer/instancer/ufo"
)

// Problem is one structural disagreement between sources. Context names
// the place it occurred ("glyph A, contour 0, point 3"), What the
// property that differs, and Values the distinct values found, each
// with the sources that had it.
type Problem struct {
	Context string
	What    string
	Values  []ValueSources
}

// ValueSources pairs one observed value with the sources it came from.
type ValueSources struct {
	Value   string
	Sources []string
}

// String formats the problem as a multi-line report.
func (p Problem) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "sources had differing %s in %s:\n", p.What, p.Context)
	for _, vs := range p.Values {
		fmt.Fprintf(&b, " * %s had: %s\n", strings.Join(vs.Sources, ", "), vs.Value)
	}
	return b.String()
}

// checkSource is one source's glyph layer plus a display name for
// reports.
type checkSource struct {
	name  string
	layer *ufo.Layer
}

// Checker walks the glyphs of a document's sources and collects
// structural incompatibilities.
type Checker struct {
	sources  []checkSource
	skip     map[string]bool
	problems []Problem
	context  []string
}

// New builds a Checker over a document whose source fonts are attached.
func New(doc *ds.Document) (*Checker, error) {
	c := &Checker{skip: make(map[string]bool)}
	for _, src := range doc.Sources {
		if src.Font == nil {
			return nil, fmt.Errorf("source %s has no font attached", src.DisplayName())
		}
		layer, ok := src.Font.Layer(src.LayerName)
		if !ok {
			return nil, fmt.Errorf("source %s names missing layer %q",
				src.DisplayName(), src.LayerName)
		}
		c.sources = append(c.sources, checkSource{
			name:  sourceName(src, layer),
			layer: layer,
		})
	}
	for _, name := range doc.SkipExportGlyphs() {
		c.skip[name] = true
	}
	return c, nil
}

func sourceName(src *ds.SourceDescriptor, layer *ufo.Layer) string {
	var parts []string
	if src.Font.Info != nil {
		if src.Font.Info.FamilyName != "" {
			parts = append(parts, src.Font.Info.FamilyName)
		}
		if src.Font.Info.StyleName != "" {
			parts = append(parts, src.Font.Info.StyleName)
		}
	}
	if layer.Name != ufo.DefaultLayerName && layer.Name != "" {
		parts = append(parts, layer.Name)
	}
	if len(parts) == 0 {
		return src.DisplayName()
	}
	return strings.Join(parts, " ")
}

// Check examines every glyph of the first source across all sources
// that contain it and returns the problems found. Glyphs excluded from
// export are not checked.
func (c *Checker) Check() []Problem {
	c.problems = nil
	if len(c.sources) == 0 {
		return nil
	}
	for _, glyphName := range c.sources[0].layer.Names() {
		if c.skip[glyphName] {
			continue
		}
		var present []checkSource
		var glyphs []*ufo.Glyph
		for _, src := range c.sources {
			if g, ok := src.layer.Glyph(glyphName); ok {
				present = append(present, src)
				glyphs = append(glyphs, g)
			}
		}
		c.inContext("glyph "+glyphName, func() {
			c.checkGlyph(present, glyphs)
		})
	}
	return c.problems
}

// Ok reports whether the last Check found no problems.
func (c *Checker) Ok() bool {
	return len(c.problems) == 0
}

func (c *Checker) checkGlyph(sources []checkSource, glyphs []*ufo.Glyph) {
	contourCounts := func(i int) string { return strconv.Itoa(len(glyphs[i].Contours)) }
	if c.ensureAllSame(sources, len(glyphs), contourCounts, "number of contours") {
		for ci := range glyphs[0].Contours {
			ci := ci
			c.inContext(fmt.Sprintf("contour %d", ci), func() {
				c.checkContour(sources, glyphs, ci)
			})
		}
	}

	c.ensureAllSame(sources, len(glyphs), func(i int) string {
		names := make([]string, len(glyphs[i].Anchors))
		for ai, a := range glyphs[i].Anchors {
			names[ai] = a.Name
		}
		sort.Strings(names)
		return `"` + strings.Join(names, ", ") + `"`
	}, "anchors")

	componentCounts := func(i int) string { return strconv.Itoa(len(glyphs[i].Components)) }
	if c.ensureAllSame(sources, len(glyphs), componentCounts, "number of components") {
		for compIx := range glyphs[0].Components {
			compIx := compIx
			c.inContext(fmt.Sprintf("component %d", compIx), func() {
				c.ensureAllSame(sources, len(glyphs), func(i int) string {
					return glyphs[i].Components[compIx].BaseGlyph
				}, "base glyph")
			})
		}
	}
}

func (c *Checker) checkContour(sources []checkSource, glyphs []*ufo.Glyph, ci int) {
	pointCounts := func(i int) string { return strconv.Itoa(len(glyphs[i].Contours[ci].Points)) }
	if !c.ensureAllSame(sources, len(glyphs), pointCounts, "number of points") {
		return
	}
	for pi := range glyphs[0].Contours[ci].Points {
		pi := pi
		c.inContext(fmt.Sprintf("point %d", pi), func() {
			c.ensureAllSame(sources, len(glyphs), func(i int) string {
				return string(glyphs[i].Contours[ci].Points[pi].Type)
			}, "point type")
		})
	}
}

// ensureAllSame evaluates value(i) for each of the n sources and
// records a problem when more than one distinct value occurs. It
// reports whether all values agreed, which callers use to skip
// dependent finer-grained checks.
func (c *Checker) ensureAllSame(sources []checkSource, n int,
	value func(i int) string, what string) bool {

	byValue := make(map[string][]string)
	var order []string
	for i := 0; i < n; i++ {
		v := value(i)
		if _, seen := byValue[v]; !seen {
			order = append(order, v)
		}
		byValue[v] = append(byValue[v], sources[i].name)
	}
	if len(byValue) < 2 {
		tracer().Debugf("all sources had same %s in %s", what, strings.Join(c.context, ", "))
		return true
	}
	problem := Problem{
		Context: strings.Join(c.context, ", "),
		What:    what,
	}
	for _, v := range order {
		problem.Values = append(problem.Values, ValueSources{Value: v, Sources: byValue[v]})
	}
	c.problems = append(c.problems, problem)
	tracer().Errorf("%s", problem)
	return false
}

func (c *Checker) inContext(ctx string, body func()) {
	c.context = append(c.context, ctx)
	body()
	c.context = c.context[:len(c.context)-1]
}
