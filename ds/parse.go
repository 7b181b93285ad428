package ds

import (
	"encoding/xml"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/npillmayer/instancer/ufo"
	"github.com/npillmayer/instancer/varmodel"
	"golang.org/x/text/language"
	"howett.net/plist"
)

// Load reads a .designspace document from a file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("cannot parse designspace %s: %w", path, err)
	}
	doc.Path = path
	return doc, nil
}

// Parse reads a designspace document from XML.
func Parse(data []byte) (*Document, error) {
	var x xmlDesignspace
	if err := xml.Unmarshal(data, &x); err != nil {
		return nil, err
	}

	doc := &Document{}
	for i := range x.Axes {
		axis, err := x.Axes[i].toAxis()
		if err != nil {
			return nil, err
		}
		doc.Axes = append(doc.Axes, axis)
	}
	for i := range x.Rules.Rules {
		doc.Rules = append(doc.Rules, x.Rules.Rules[i].toRule())
	}
	for i := range x.Sources {
		src, err := x.Sources[i].toSource()
		if err != nil {
			return nil, err
		}
		doc.Sources = append(doc.Sources, src)
	}
	for i := range x.Instances {
		inst, err := x.Instances[i].toInstance()
		if err != nil {
			return nil, err
		}
		doc.Instances = append(doc.Instances, inst)
	}
	if x.Lib != nil {
		lib, err := decodeLib(x.Lib.Inner)
		if err != nil {
			return nil, fmt.Errorf("cannot decode designspace lib: %w", err)
		}
		doc.Lib = lib
	}
	tracer().Debugf("parsed designspace: %d axes, %d sources, %d instances, %d rules",
		len(doc.Axes), len(doc.Sources), len(doc.Instances), len(doc.Rules))
	return doc, nil
}

// --- XML shapes ------------------------------------------------------------

type xmlDesignspace struct {
	XMLName   xml.Name      `xml:"designspace"`
	Format    string        `xml:"format,attr"`
	Axes      []xmlAxis     `xml:"axes>axis"`
	Rules     xmlRules      `xml:"rules"`
	Sources   []xmlSource   `xml:"sources>source"`
	Instances []xmlInstance `xml:"instances>instance"`
	Lib       *xmlLib       `xml:"lib"`
}

type xmlAxis struct {
	Name       string         `xml:"name,attr"`
	Tag        string         `xml:"tag,attr"`
	Minimum    *float64       `xml:"minimum,attr"`
	Default    *float64       `xml:"default,attr"`
	Maximum    *float64       `xml:"maximum,attr"`
	Hidden     string         `xml:"hidden,attr"`
	Values     string         `xml:"values,attr"`
	Maps       []xmlAxisMap   `xml:"map"`
	LabelNames []xmlLocalized `xml:"labelname"`
}

type xmlAxisMap struct {
	Input  float64 `xml:"input,attr"`
	Output float64 `xml:"output,attr"`
}

type xmlLocalized struct {
	Lang  string `xml:"http://www.w3.org/XML/1998/namespace lang,attr"`
	Value string `xml:",chardata"`
}

type xmlRules struct {
	Processing string    `xml:"processing,attr"`
	Rules      []xmlRule `xml:"rule"`
}

type xmlRule struct {
	Name          string            `xml:"name,attr"`
	ConditionSets []xmlConditionSet `xml:"conditionset"`
	Conditions    []xmlCondition    `xml:"condition"` // pre-4.0 documents
	Subs          []xmlSub          `xml:"sub"`
}

type xmlConditionSet struct {
	Conditions []xmlCondition `xml:"condition"`
}

type xmlCondition struct {
	Name    string   `xml:"name,attr"`
	Minimum *float64 `xml:"minimum,attr"`
	Maximum *float64 `xml:"maximum,attr"`
}

type xmlSub struct {
	Name string `xml:"name,attr"`
	With string `xml:"with,attr"`
}

type xmlSource struct {
	Filename   string      `xml:"filename,attr"`
	Name       string      `xml:"name,attr"`
	FamilyName string      `xml:"familyname,attr"`
	StyleName  string      `xml:"stylename,attr"`
	Layer      string      `xml:"layer,attr"`
	Location   xmlLocation `xml:"location"`
}

type xmlInstance struct {
	Name               string         `xml:"name,attr"`
	Filename           string         `xml:"filename,attr"`
	FamilyName         string         `xml:"familyname,attr"`
	StyleName          string         `xml:"stylename,attr"`
	PostScriptFontName string         `xml:"postscriptfontname,attr"`
	StyleMapFamilyName string         `xml:"stylemapfamilyname,attr"`
	StyleMapStyleName  string         `xml:"stylemapstylename,attr"`
	Location           xmlLocation    `xml:"location"`
	FamilyNames        []xmlLocalized `xml:"familyname"`
	StyleNames         []xmlLocalized `xml:"stylename"`
	Lib                *xmlLib        `xml:"lib"`
}

type xmlLocation struct {
	Dimensions []xmlDimension `xml:"dimension"`
}

type xmlDimension struct {
	Name   string   `xml:"name,attr"`
	XValue *float64 `xml:"xvalue,attr"`
	YValue *float64 `xml:"yvalue,attr"`
}

type xmlLib struct {
	Inner string `xml:",innerxml"`
}

// --- Conversion ------------------------------------------------------------

func (x *xmlAxis) toAxis() (Axis, error) {
	axis := Axis{
		Name:   x.Name,
		Tag:    x.Tag,
		Hidden: x.Hidden == "1" || strings.EqualFold(x.Hidden, "true"),
	}
	if x.Default == nil {
		return axis, fmt.Errorf("axis %q has no default value", x.Name)
	}
	axis.Default = *x.Default
	if x.Values != "" {
		for _, field := range strings.Fields(x.Values) {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return axis, fmt.Errorf("axis %q has malformed values attribute: %w", x.Name, err)
			}
			axis.Values = append(axis.Values, v)
		}
		// Discrete axes span exactly their listed values.
		axis.Minimum, axis.Maximum = axis.Values[0], axis.Values[0]
		for _, v := range axis.Values {
			if v < axis.Minimum {
				axis.Minimum = v
			}
			if v > axis.Maximum {
				axis.Maximum = v
			}
		}
	} else {
		if x.Minimum == nil || x.Maximum == nil {
			return axis, fmt.Errorf("continuous axis %q needs minimum and maximum", x.Name)
		}
		axis.Minimum, axis.Maximum = *x.Minimum, *x.Maximum
	}
	for _, m := range x.Maps {
		axis.Map = append(axis.Map, AxisMap{Input: m.Input, Output: m.Output})
	}
	if len(x.LabelNames) > 0 {
		axis.LabelNames = localizedMap(x.LabelNames, "axis "+x.Name)
	}
	return axis, nil
}

func (x *xmlRule) toRule() Rule {
	rule := Rule{Name: x.Name}
	for _, cs := range x.ConditionSets {
		rule.ConditionSets = append(rule.ConditionSets, toConditions(cs.Conditions))
	}
	if len(x.Conditions) > 0 {
		// Old-style rules list conditions directly; they form a single set.
		rule.ConditionSets = append(rule.ConditionSets, toConditions(x.Conditions))
	}
	for _, s := range x.Subs {
		rule.Subs = append(rule.Subs, Substitution{Name: s.Name, With: s.With})
	}
	return rule
}

func toConditions(xs []xmlCondition) []Condition {
	out := make([]Condition, len(xs))
	for i, c := range xs {
		out[i] = Condition{Name: c.Name, Minimum: c.Minimum, Maximum: c.Maximum}
	}
	return out
}

func (x *xmlSource) toSource() (*SourceDescriptor, error) {
	loc, aniso := x.Location.toLocation()
	if aniso.IsAnisotropic() {
		return nil, fmt.Errorf("source %s has an anisotropic location", x.Name)
	}
	return &SourceDescriptor{
		Name:       x.Name,
		Filename:   x.Filename,
		FamilyName: x.FamilyName,
		StyleName:  x.StyleName,
		LayerName:  x.Layer,
		Location:   loc,
	}, nil
}

func (x *xmlInstance) toInstance() (*InstanceDescriptor, error) {
	_, aniso := x.Location.toLocation()
	inst := &InstanceDescriptor{
		Name:               x.Name,
		Filename:           x.Filename,
		FamilyName:         x.FamilyName,
		StyleName:          x.StyleName,
		PostScriptFontName: x.PostScriptFontName,
		StyleMapFamilyName: x.StyleMapFamilyName,
		StyleMapStyleName:  x.StyleMapStyleName,
		Location:           aniso,
	}
	if len(x.FamilyNames) > 0 {
		inst.LocalisedFamilyNames = localizedMap(x.FamilyNames, "instance "+x.Name)
	}
	if len(x.StyleNames) > 0 {
		inst.LocalisedStyleNames = localizedMap(x.StyleNames, "instance "+x.Name)
	}
	if x.Lib != nil {
		lib, err := decodeLib(x.Lib.Inner)
		if err != nil {
			return nil, fmt.Errorf("cannot decode lib of instance %s: %w", inst.DisplayName(), err)
		}
		inst.Lib = lib
	}
	return inst, nil
}

// toLocation converts a location element both to a plain design space
// location and to the anisotropy-capable form.
func (x *xmlLocation) toLocation() (varmodel.Location, InstanceLocation) {
	loc := make(varmodel.Location, len(x.Dimensions))
	aniso := make(InstanceLocation, len(x.Dimensions))
	for _, dim := range x.Dimensions {
		var c Coord
		if dim.XValue != nil {
			c.X = *dim.XValue
		}
		if dim.YValue != nil {
			c.Y = *dim.YValue
			c.HasY = true
		}
		loc[dim.Name] = c.X
		aniso[dim.Name] = c
	}
	return loc, aniso
}

// localizedMap validates xml:lang tags through BCP-47 parsing and keys
// the result by canonical tag. Entries without a parsable tag (or
// without a tag at all, which the designspace format treats as the
// default name) are skipped with a warning.
func localizedMap(entries []xmlLocalized, context string) map[string]string {
	out := make(map[string]string, len(entries))
	for _, e := range entries {
		value := strings.TrimSpace(e.Value)
		if value == "" {
			continue
		}
		tag, err := language.Parse(e.Lang)
		if err != nil {
			tracer().Infof("%s: dropping localized name with bad language tag %q", context, e.Lang)
			continue
		}
		out[tag.String()] = value
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// decodeLib parses the property-list dict embedded in a <lib> element.
func decodeLib(inner string) (ufo.Lib, error) {
	inner = strings.TrimSpace(inner)
	if inner == "" {
		return nil, nil
	}
	wrapped := `<?xml version="1.0" encoding="UTF-8"?><plist version="1.0">` + inner + `</plist>`
	var raw map[string]any
	if _, err := plist.Unmarshal([]byte(wrapped), &raw); err != nil {
		return nil, err
	}
	return toLib(raw), nil
}

// toLib normalizes plist decoding artifacts (unsigned ints, nested
// maps) into the lib value space.
func toLib(raw map[string]any) ufo.Lib {
	out := make(ufo.Lib, len(raw))
	for k, v := range raw {
		out[k] = normalizeLibValue(v)
	}
	return out
}

func normalizeLibValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, item := range val {
			m[k] = normalizeLibValue(item)
		}
		return m
	case []any:
		l := make([]any, len(val))
		for i, item := range val {
			l[i] = normalizeLibValue(item)
		}
		return l
	case uint64:
		return int(val)
	case int64:
		return int(val)
	default:
		return v
	}
}
