package instancer

import (
	"sort"

	"github.com/npillmayer/instancer/ds"
	"github.com/npillmayer/instancer/fontmath"
	"github.com/npillmayer/instancer/ufo"
	"github.com/npillmayer/instancer/varmodel"
)

// Options control how instances are generated.
type Options struct {
	// RoundGeometry rounds glyph coordinates, advances, anchors,
	// kerning values and font info metrics to integers. OS/2 class
	// fields are integral regardless.
	RoundGeometry bool
	// Features overrides the feature text of generated instances. When
	// nil, instances copy the default source's feature file verbatim;
	// callers that pre-expand includes or variable feature syntax set
	// the expanded text here.
	Features *string
}

// Registered axis tags with a fixed OpenType meaning. Instances on
// these axes get their OS/2 weight class, width class and italic angle
// inferred from the axis value, unless the sources interpolate those
// fields themselves.
const (
	tagWeight = "wght"
	tagWidth  = "wdth"
	tagSlant  = "slnt"
)

// Instantiator generates static font instances from the masters of a
// designspace document. It is built once per document; all masters are
// digested into variation models up front, so generating one instance
// does not touch the document or the source fonts again.
//
// An Instantiator is immutable after construction and safe for
// concurrent GenerateInstance calls.
type Instantiator struct {
	axisBounds      varmodel.AxisBounds
	axisOrder       []string
	specialAxes     map[string]*ds.Axis // by registered tag
	defaultLocation varmodel.Location   // design space

	info    *Variator[*fontmath.MathInfo]
	kerning *Variator[*fontmath.MathKerning]
	glyphs  map[string]*Variator[*fontmath.MathGlyph]

	copyInfo      *ufo.Info
	copyLib       ufo.Lib
	copyFeatures  string
	defaultGroups ufo.Groups

	glyphOrder    []string
	glyphUnicodes map[string][]rune
	skipExport    map[string]bool
	rules         []ds.Rule
	round         bool
}

// NewInstantiator digests a designspace document into an Instantiator.
// All source fonts must already be attached to the document, for
// example via Document.LoadSourceFonts.
//
// Documents with discrete axes cannot be interpolated as a whole and
// are rejected; split them into one document per discrete value first.
func NewInstantiator(doc *ds.Document, opts *Options) (*Instantiator, error) {
	if opts == nil {
		opts = &Options{}
	}
	if doc.HasDiscreteAxes() {
		return nil, newError(KindConfig, nil,
			"cannot interpolate across a discrete axis; split the document into "+
				"per-value sub-spaces first")
	}
	for _, instance := range doc.Instances {
		if instance.Location.IsAnisotropic() {
			return nil, newError(KindConfig, nil,
				"instance %s has an anisotropic location; only isotropic "+
					"locations can be instantiated", instance.DisplayName())
		}
	}
	for _, src := range doc.Sources {
		if src.Font == nil {
			return nil, newError(KindConfig, nil,
				"source %s has no font attached; load the source fonts before "+
					"building an instantiator", src.DisplayName())
		}
	}
	defaultSource := doc.FindDefault()
	if defaultSource == nil {
		hint := ""
		for i := range doc.Axes {
			if doc.Axes[i].HasMap() {
				hint = "; note that source locations are design space " +
					"coordinates, i.e. the \"output\" side of the axis mapping"
				break
			}
		}
		return nil, newError(KindConfig, nil,
			"no source found at the default location %v%s",
			doc.DefaultDesignLocation(), hint)
	}

	inst := &Instantiator{
		axisBounds:      doc.AxisBounds(),
		axisOrder:       doc.AxisOrder(),
		specialAxes:     make(map[string]*ds.Axis),
		defaultLocation: doc.DefaultDesignLocation(),
		glyphs:          make(map[string]*Variator[*fontmath.MathGlyph]),
		copyInfo:        copyInfoFields(defaultSource.Font.Info),
		copyLib:         defaultSource.Font.Lib.Copy(),
		copyFeatures:    defaultSource.Font.Features,
		defaultGroups:   defaultSource.Font.Groups.Copy(),
		glyphUnicodes:   make(map[string][]rune),
		skipExport:      make(map[string]bool),
		rules:           doc.Rules,
		round:           opts.RoundGeometry,
	}
	for i := range doc.Axes {
		axis := &doc.Axes[i]
		switch axis.Tag {
		case tagWeight, tagWidth, tagSlant:
			inst.specialAxes[axis.Tag] = axis
		}
	}
	if opts.Features != nil {
		inst.copyFeatures = *opts.Features
	}
	for _, name := range doc.SkipExportGlyphs() {
		inst.skipExport[name] = true
	}

	var err error
	infoMasters := collectInfoMasters(doc, inst.axisBounds)
	if inst.info, err = NewVariator(infoMasters, inst.axisOrder); err != nil {
		return nil, newError(KindModel, err, "cannot set up a model for the font info")
	}
	kerningMasters := collectKerningMasters(doc, defaultSource, inst.axisBounds)
	if inst.kerning, err = NewVariator(kerningMasters, inst.axisOrder); err != nil {
		return nil, newError(KindModel, err, "cannot set up a model for the kerning")
	}

	defaultLayer := defaultSource.Font.DefaultLayer()
	inst.glyphOrder = defaultLayer.Names()
	warnExtraGlyphs(doc, defaultLayer)
	for _, name := range inst.glyphOrder {
		glyph, _ := defaultLayer.Glyph(name)
		inst.glyphUnicodes[name] = append([]rune(nil), glyph.Unicodes...)
		masters := collectGlyphMasters(doc, defaultSource, name, inst.axisBounds)
		v, err := NewVariator(masters, inst.axisOrder)
		if err != nil {
			e := newError(KindModel, err, "cannot set up a model for glyph %q", name)
			e.Glyph = name
			return nil, e
		}
		inst.glyphs[name] = v
	}
	return inst, nil
}

// warnExtraGlyphs reports glyphs that exist in some source but not in
// the default source. They cannot be interpolated and are left out of
// every generated instance.
func warnExtraGlyphs(doc *ds.Document, defaultLayer *ufo.Layer) {
	extra := make(map[string]bool)
	for _, src := range doc.Sources {
		layer, ok := src.Font.Layer(src.LayerName)
		if !ok {
			continue
		}
		for _, name := range layer.Names() {
			if !defaultLayer.Has(name) {
				extra[name] = true
			}
		}
	}
	if len(extra) == 0 {
		return
	}
	names := make([]string, 0, len(extra))
	for name := range extra {
		names = append(names, name)
	}
	sort.Strings(names)
	tracer().Infof("glyphs %v are missing from the default source and will not "+
		"appear in generated instances", names)
}

// GlyphNames returns the names of the glyphs the Instantiator will
// generate, in the default source's order.
func (i *Instantiator) GlyphNames() []string {
	return append([]string(nil), i.glyphOrder...)
}

// DesignLocation returns the full design space location an instance
// descriptor denotes: the descriptor's axes merged over the document
// defaults.
func (i *Instantiator) DesignLocation(instance *ds.InstanceDescriptor) varmodel.Location {
	loc := i.defaultLocation.Copy()
	for axis, v := range instance.Location.Isotropic() {
		loc[axis] = v
	}
	return loc
}

// GenerateInstance interpolates a complete static font at the
// descriptor's location. The returned font shares no mutable state with
// the sources or the Instantiator.
func (i *Instantiator) GenerateInstance(instance *ds.InstanceDescriptor) (*ufo.Font, error) {
	if instance.Location.IsAnisotropic() {
		return nil, newError(KindConfig, nil,
			"instance %s has an anisotropic location; only isotropic locations "+
				"can be instantiated", instance.DisplayName())
	}
	designLocation := i.DesignLocation(instance)
	normalized := varmodel.NormalizeLocation(designLocation, i.axisBounds)
	tracer().Debugf("generating instance %s at %v", instance.DisplayName(), designLocation)

	font := ufo.NewFont()
	font.Groups = i.defaultGroups.Copy()

	kerning, err := i.kerning.InstanceAt(normalized)
	if err != nil {
		return nil, newError(KindInterpolation, err, "cannot interpolate the kerning of %s",
			instance.DisplayName())
	}
	if i.round {
		kerning = kerning.Round()
	}
	kerning.ExtractInto(font)

	if err := i.generateInfo(font, instance, normalized, designLocation); err != nil {
		return nil, err
	}

	font.Features = i.copyFeatures
	font.Lib = i.instanceLib(designLocation)

	if err := i.generateGlyphs(font, instance, normalized); err != nil {
		return nil, err
	}
	if err := i.applyRules(font, designLocation); err != nil {
		return nil, err
	}
	return font, nil
}

// copyInfoFields extracts the non-interpolated font info fields from
// the default source: identity, naming, licensing, and the bit-field
// style OpenType data. Interpolatable metrics are deliberately left
// unset; they come out of the info variation model instead.
func copyInfoFields(src *ufo.Info) *ufo.Info {
	full := src.Copy()
	return &ufo.Info{
		FamilyName:   full.FamilyName,
		StyleName:    full.StyleName,
		VersionMajor: full.VersionMajor,
		VersionMinor: full.VersionMinor,
		Copyright:    full.Copyright,
		Trademark:    full.Trademark,
		Note:         full.Note,

		OpenTypeHeadCreated: full.OpenTypeHeadCreated,
		OpenTypeHeadFlags:   full.OpenTypeHeadFlags,

		OpenTypeNameDescription:     full.OpenTypeNameDescription,
		OpenTypeNameDesigner:        full.OpenTypeNameDesigner,
		OpenTypeNameDesignerURL:     full.OpenTypeNameDesignerURL,
		OpenTypeNameLicense:         full.OpenTypeNameLicense,
		OpenTypeNameLicenseURL:      full.OpenTypeNameLicenseURL,
		OpenTypeNameManufacturer:    full.OpenTypeNameManufacturer,
		OpenTypeNameManufacturerURL: full.OpenTypeNameManufacturerURL,
		OpenTypeNameSampleText:      full.OpenTypeNameSampleText,
		OpenTypeNameVersion:         full.OpenTypeNameVersion,

		OpenTypeOS2VendorID:       full.OpenTypeOS2VendorID,
		OpenTypeOS2Panose:         full.OpenTypeOS2Panose,
		OpenTypeOS2FamilyClass:    full.OpenTypeOS2FamilyClass,
		OpenTypeOS2Type:           full.OpenTypeOS2Type,
		OpenTypeOS2Selection:      full.OpenTypeOS2Selection,
		OpenTypeOS2UnicodeRanges:  full.OpenTypeOS2UnicodeRanges,
		OpenTypeOS2CodePageRanges: full.OpenTypeOS2CodePageRanges,

		OpenTypeGaspRangeRecords: full.OpenTypeGaspRangeRecords,

		PostscriptForceBold:           full.PostscriptForceBold,
		PostscriptIsFixedPitch:        full.PostscriptIsFixedPitch,
		PostscriptDefaultCharacter:    full.PostscriptDefaultCharacter,
		PostscriptWindowsCharacterSet: full.PostscriptWindowsCharacterSet,
	}
}

func (i *Instantiator) generateInfo(font *ufo.Font, instance *ds.InstanceDescriptor,
	normalized, designLocation varmodel.Location) error {

	mathInfo, err := i.info.InstanceAt(normalized)
	if err != nil {
		return newError(KindInterpolation, err, "cannot interpolate the font info of %s",
			instance.DisplayName())
	}
	if i.round {
		mathInfo = mathInfo.Round()
	}

	font.Info = i.copyInfo.Copy()
	mathInfo.ExtractInto(font.Info)

	if instance.FamilyName != "" {
		font.Info.FamilyName = instance.FamilyName
	}
	if instance.StyleName != "" {
		font.Info.StyleName = instance.StyleName
	} else {
		tracer().Infof("instance %s has no style name; falling back to the "+
			"default source's %q", instance.DisplayName(), i.copyInfo.StyleName)
		font.Info.StyleName = i.copyInfo.StyleName
	}
	font.Info.PostscriptFontName = instance.PostScriptFontName
	font.Info.StyleMapFamilyName = instance.StyleMapFamilyName
	font.Info.StyleMapStyleName = instance.StyleMapStyleName

	i.inferClasses(font.Info, mathInfo, designLocation)
	return nil
}

// inferClasses fills OS/2 weight class, width class and italic angle
// from the registered wght, wdth and slnt axes, in user space. A field
// the sources interpolate themselves is left alone.
func (i *Instantiator) inferClasses(info *ufo.Info, mathInfo *fontmath.MathInfo,
	designLocation varmodel.Location) {

	if axis, ok := i.specialAxes[tagWeight]; ok && !mathInfo.HasWeightClass() {
		user := axis.MapBackward(designLocation[axis.Name])
		info.OpenTypeOS2WeightClass = ufo.Int(WeightClassFromWght(user))
	}
	if axis, ok := i.specialAxes[tagWidth]; ok && !mathInfo.HasWidthClass() {
		user := axis.MapBackward(designLocation[axis.Name])
		info.OpenTypeOS2WidthClass = ufo.Int(WidthClassFromWdth(user))
	}
	if axis, ok := i.specialAxes[tagSlant]; ok && !mathInfo.HasItalicAngle() {
		user := axis.MapBackward(designLocation[axis.Name])
		info.ItalicAngle = ufo.Float(ItalicAngleFromSlnt(user))
	}
}

// instanceLib assembles the instance's lib: the default source's lib,
// the skip-export list, and a record of the location the instance was
// cut at.
func (i *Instantiator) instanceLib(designLocation varmodel.Location) ufo.Lib {
	lib := i.copyLib.Copy()
	if lib == nil {
		lib = make(ufo.Lib)
	}
	skip := make([]string, 0, len(i.skipExport))
	for name := range i.skipExport {
		skip = append(skip, name)
	}
	sort.Strings(skip)
	lib[ufo.SkipExportGlyphsKey] = skip

	location := make([]any, 0, len(i.axisOrder))
	for _, axis := range i.axisOrder {
		location = append(location, []any{axis, designLocation[axis]})
	}
	lib[ufo.DesignLocationKey] = location
	return lib
}

func (i *Instantiator) generateGlyphs(font *ufo.Font, instance *ds.InstanceDescriptor,
	normalized varmodel.Location) error {

	layer := font.DefaultLayer()
	for _, name := range i.glyphOrder {
		glyph := layer.NewGlyph(name)
		glyph.Unicodes = append([]rune(nil), i.glyphUnicodes[name]...)

		mathGlyph, err := i.glyphs[name].InstanceAt(normalized)
		if err != nil {
			if i.skipExport[name] {
				tracer().Infof("glyph %q cannot be interpolated (%v) but is "+
					"excluded from export anyway; it is left empty", name, err)
				continue
			}
			e := newError(KindInterpolation, err,
				"cannot interpolate glyph %q for %s; check that its master "+
					"outlines are point compatible", name, instance.DisplayName())
			e.Glyph = name
			return e
		}
		if i.round {
			mathGlyph = mathGlyph.Round()
		}
		mathGlyph.ExtractInto(glyph)
	}
	return nil
}

// applyRules resolves the document's substitution rules at the design
// location and performs the resulting glyph swaps on the generated
// font.
func (i *Instantiator) applyRules(font *ufo.Font, designLocation varmodel.Location) error {
	if len(i.rules) == 0 {
		return nil
	}
	names := make(map[string]bool, len(i.glyphOrder))
	for _, name := range font.DefaultLayer().Names() {
		names[name] = true
	}
	for _, sub := range ds.ResolveSwaps(i.rules, designLocation, names) {
		tracer().Debugf("rule swap: %q <-> %q", sub.Name, sub.With)
		if err := SwapGlyphNames(font, sub.Name, sub.With); err != nil {
			return err
		}
	}
	return nil
}
