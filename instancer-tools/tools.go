package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/npillmayer/instancer/ds"
	"github.com/npillmayer/instancer/internal/ufoload"
	"github.com/npillmayer/instancer/varmodel"
	"github.com/thatisuday/commando"
)

func main() {
	commando.
		SetExecutableName("instancer-tools").
		SetVersion("v0.0.1").
		SetDescription("CLI for cutting static instances out of a designspace and inspecting the result.")

	commando.
		Register(nil).
		AddFlag("verbose,V", "display additional output", commando.Bool, nil)

	commando.
		Register("info").
		SetDescription("Print the axes, sources, instances and rules of a designspace document.").
		SetShortDescription("designspace overview").
		AddArgument("designspace", "designspace document path", "").
		AddFlag("fonts,f", "load source fonts and include glyph statistics", commando.Bool, nil).
		SetAction(runInfoCommand)

	commando.
		Register("check").
		SetDescription("Check the master sources of a designspace for interpolation compatibility.").
		SetShortDescription("compatibility check").
		AddArgument("designspace", "designspace document path", "").
		SetAction(runCheckCommand)

	commando.
		Register("generate").
		SetDescription("Generate static instances from a designspace document and report on them.").
		SetShortDescription("generate instances").
		AddArgument("designspace", "designspace document path", "").
		AddArgument("instances...", "instance style names (all instances when omitted)", "").
		AddFlag("round,r", "round glyph geometry and kerning to integers", commando.Bool, nil).
		SetAction(runGenerateCommand)

	commando.
		Register("view").
		SetDescription("Render one glyph of an interpolated instance to a PNG image.").
		SetShortDescription("glyph preview").
		AddArgument("designspace", "designspace document path", "").
		AddArgument("glyph", "glyph name to render", "").
		AddFlag("location,l", "design space location (e.g. Weight=620,Width=75)", commando.String, "-").
		AddFlag("user,u", "interpret --location as user space coordinates", commando.Bool, nil).
		AddFlag("output,o", "output PNG file", commando.String, "instancer-view.png").
		AddFlag("show-bbox,B", "draw a red bounding-box outline around the glyph", commando.Bool, nil).
		AddFlag("ppem,p", "render scale in pixels-per-em", commando.Int, 96).
		AddFlag("width,W", "image width in pixels", commando.Int, 320).
		AddFlag("height,H", "image height in pixels", commando.Int, 240).
		SetAction(runViewCommand)

	commando.Parse(nil)
}

// mustLoadDocument reads a designspace document, with source fonts
// attached when withFonts is set.
func mustLoadDocument(path string, withFonts bool) *ds.Document {
	path = strings.TrimSpace(path)
	if path == "" {
		fatalf("designspace path is required")
	}
	doc, err := ds.Load(path)
	if err != nil {
		fatalf("cannot read designspace: %v", err)
	}
	if withFonts {
		if err := doc.LoadSourceFonts(ufoload.Load); err != nil {
			fatalf("cannot load source fonts: %v", err)
		}
	}
	return doc
}

// parseLocation parses "axis=value" pairs, comma or space separated.
// Axes may be named by name or by tag.
func parseLocation(doc *ds.Document, flag commando.FlagValue, userSpace bool) (varmodel.Location, error) {
	spec, err := flag.GetString()
	if err != nil {
		return nil, fmt.Errorf("invalid --location flag: %w", err)
	}
	spec = strings.TrimSpace(spec)
	if spec == "-" {
		spec = ""
	}
	loc := doc.DefaultDesignLocation()
	if spec == "" {
		return loc, nil
	}
	for _, part := range splitCSVSpace(spec) {
		eq := strings.IndexByte(part, '=')
		if eq < 0 {
			return nil, fmt.Errorf("malformed location entry %q (expected axis=value)", part)
		}
		name := strings.TrimSpace(part[:eq])
		axis := findAxis(doc, name)
		if axis == nil {
			return nil, fmt.Errorf("unknown axis %q", name)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(part[eq+1:]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value in %q: %w", part, err)
		}
		if userSpace {
			v = axis.MapForward(v)
		}
		loc[axis.Name] = v
	}
	return loc, nil
}

func findAxis(doc *ds.Document, name string) *ds.Axis {
	for i := range doc.Axes {
		if doc.Axes[i].Name == name || doc.Axes[i].Tag == name {
			return &doc.Axes[i]
		}
	}
	return nil
}

func splitCSVSpace(spec string) []string {
	return strings.FieldsFunc(spec, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}

func formatLocation(loc varmodel.Location, order []string) string {
	parts := make([]string, 0, len(loc))
	for _, axis := range order {
		if v, ok := loc[axis]; ok {
			parts = append(parts, fmt.Sprintf("%s=%g", axis, v))
		}
	}
	var rest []string
	for axis := range loc {
		known := false
		for _, o := range order {
			if o == axis {
				known = true
				break
			}
		}
		if !known {
			rest = append(rest, fmt.Sprintf("%s=%g", axis, loc[axis]))
		}
	}
	sort.Strings(rest)
	return strings.Join(append(parts, rest...), ",")
}

func mustFlagBool(flag commando.FlagValue, name string) bool {
	b, err := flag.GetBool()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return b
}

func mustFlagInt(flag commando.FlagValue, name string) int {
	n, err := flag.GetInt()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return n
}

func fatalf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(os.Stderr, "instancer-tools: "+format+"\n", args...)
	os.Exit(1)
}
