package ufoload

import (
	"github.com/npillmayer/instancer/ufo"
)

// readFontInfo reads fontinfo.plist. The file is decoded into a generic
// dict first: UFO info keys are optional, and "absent" has to map onto
// nil pointer fields rather than zero values.
func readFontInfo(path string) (*ufo.Info, error) {
	raw := make(map[string]any)
	if err := readPlist(path, &raw); err != nil {
		return nil, err
	}
	info := &ufo.Info{}
	if len(raw) == 0 {
		return info, nil
	}
	d := dict(raw)

	info.FamilyName = d.str("familyName")
	info.StyleName = d.str("styleName")
	info.StyleMapFamilyName = d.str("styleMapFamilyName")
	info.StyleMapStyleName = d.str("styleMapStyleName")
	info.VersionMajor = d.intPtr("versionMajor")
	info.VersionMinor = d.intPtr("versionMinor")
	info.Copyright = d.str("copyright")
	info.Trademark = d.str("trademark")
	info.Note = d.str("note")

	info.UnitsPerEm = d.floatPtr("unitsPerEm")
	info.Ascender = d.floatPtr("ascender")
	info.Descender = d.floatPtr("descender")
	info.XHeight = d.floatPtr("xHeight")
	info.CapHeight = d.floatPtr("capHeight")
	info.ItalicAngle = d.floatPtr("italicAngle")

	info.OpenTypeHeadCreated = d.str("openTypeHeadCreated")
	info.OpenTypeHeadFlags = d.ints("openTypeHeadFlags")
	info.OpenTypeHeadLowestRecPPEM = d.floatPtr("openTypeHeadLowestRecPPEM")

	info.OpenTypeHheaAscender = d.floatPtr("openTypeHheaAscender")
	info.OpenTypeHheaDescender = d.floatPtr("openTypeHheaDescender")
	info.OpenTypeHheaLineGap = d.floatPtr("openTypeHheaLineGap")
	info.OpenTypeHheaCaretSlopeRise = d.floatPtr("openTypeHheaCaretSlopeRise")
	info.OpenTypeHheaCaretSlopeRun = d.floatPtr("openTypeHheaCaretSlopeRun")
	info.OpenTypeHheaCaretOffset = d.floatPtr("openTypeHheaCaretOffset")

	info.OpenTypeNameDescription = d.str("openTypeNameDescription")
	info.OpenTypeNameDesigner = d.str("openTypeNameDesigner")
	info.OpenTypeNameDesignerURL = d.str("openTypeNameDesignerURL")
	info.OpenTypeNameLicense = d.str("openTypeNameLicense")
	info.OpenTypeNameLicenseURL = d.str("openTypeNameLicenseURL")
	info.OpenTypeNameManufacturer = d.str("openTypeNameManufacturer")
	info.OpenTypeNameManufacturerURL = d.str("openTypeNameManufacturerURL")
	info.OpenTypeNameSampleText = d.str("openTypeNameSampleText")
	info.OpenTypeNameVersion = d.str("openTypeNameVersion")

	info.OpenTypeOS2WeightClass = d.intPtr("openTypeOS2WeightClass")
	info.OpenTypeOS2WidthClass = d.intPtr("openTypeOS2WidthClass")
	info.OpenTypeOS2VendorID = d.str("openTypeOS2VendorID")
	info.OpenTypeOS2Panose = d.ints("openTypeOS2Panose")
	info.OpenTypeOS2FamilyClass = d.ints("openTypeOS2FamilyClass")
	info.OpenTypeOS2Type = d.ints("openTypeOS2Type")
	info.OpenTypeOS2Selection = d.ints("openTypeOS2Selection")
	info.OpenTypeOS2UnicodeRanges = d.ints("openTypeOS2UnicodeRanges")
	info.OpenTypeOS2CodePageRanges = d.ints("openTypeOS2CodePageRanges")
	info.OpenTypeOS2TypoAscender = d.floatPtr("openTypeOS2TypoAscender")
	info.OpenTypeOS2TypoDescender = d.floatPtr("openTypeOS2TypoDescender")
	info.OpenTypeOS2TypoLineGap = d.floatPtr("openTypeOS2TypoLineGap")
	info.OpenTypeOS2WinAscent = d.floatPtr("openTypeOS2WinAscent")
	info.OpenTypeOS2WinDescent = d.floatPtr("openTypeOS2WinDescent")
	info.OpenTypeOS2SubscriptXSize = d.floatPtr("openTypeOS2SubscriptXSize")
	info.OpenTypeOS2SubscriptYSize = d.floatPtr("openTypeOS2SubscriptYSize")
	info.OpenTypeOS2SubscriptXOffset = d.floatPtr("openTypeOS2SubscriptXOffset")
	info.OpenTypeOS2SubscriptYOffset = d.floatPtr("openTypeOS2SubscriptYOffset")
	info.OpenTypeOS2SuperscriptXSize = d.floatPtr("openTypeOS2SuperscriptXSize")
	info.OpenTypeOS2SuperscriptYSize = d.floatPtr("openTypeOS2SuperscriptYSize")
	info.OpenTypeOS2SuperscriptXOffset = d.floatPtr("openTypeOS2SuperscriptXOffset")
	info.OpenTypeOS2SuperscriptYOffset = d.floatPtr("openTypeOS2SuperscriptYOffset")
	info.OpenTypeOS2StrikeoutSize = d.floatPtr("openTypeOS2StrikeoutSize")
	info.OpenTypeOS2StrikeoutPosition = d.floatPtr("openTypeOS2StrikeoutPosition")

	info.OpenTypeGaspRangeRecords = gaspRecords(raw["openTypeGaspRangeRecords"])

	info.PostscriptFontName = d.str("postscriptFontName")
	info.PostscriptSlantAngle = d.floatPtr("postscriptSlantAngle")
	info.PostscriptUnderlineThickness = d.floatPtr("postscriptUnderlineThickness")
	info.PostscriptUnderlinePosition = d.floatPtr("postscriptUnderlinePosition")
	info.PostscriptBlueFuzz = d.floatPtr("postscriptBlueFuzz")
	info.PostscriptBlueShift = d.floatPtr("postscriptBlueShift")
	info.PostscriptBlueScale = d.floatPtr("postscriptBlueScale")
	info.PostscriptDefaultWidthX = d.floatPtr("postscriptDefaultWidthX")
	info.PostscriptNominalWidthX = d.floatPtr("postscriptNominalWidthX")
	info.PostscriptBlueValues = d.floats("postscriptBlueValues")
	info.PostscriptOtherBlues = d.floats("postscriptOtherBlues")
	info.PostscriptFamilyBlues = d.floats("postscriptFamilyBlues")
	info.PostscriptFamilyOtherBlues = d.floats("postscriptFamilyOtherBlues")
	info.PostscriptStemSnapH = d.floats("postscriptStemSnapH")
	info.PostscriptStemSnapV = d.floats("postscriptStemSnapV")
	info.PostscriptForceBold = d.boolPtr("postscriptForceBold")
	info.PostscriptIsFixedPitch = d.boolPtr("postscriptIsFixedPitch")
	info.PostscriptDefaultCharacter = d.str("postscriptDefaultCharacter")
	info.PostscriptWindowsCharacterSet = d.intPtr("postscriptWindowsCharacterSet")

	return info, nil
}

// dict wraps the decoded plist with typed, nil-preserving accessors.
type dict map[string]any

func (d dict) str(key string) string {
	if s, ok := d[key].(string); ok {
		return s
	}
	return ""
}

// asFloat widens the numeric types the plist decoder may produce.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}

func (d dict) floatPtr(key string) *float64 {
	if n, ok := asFloat(d[key]); ok {
		return ufo.Float(n)
	}
	return nil
}

func (d dict) intPtr(key string) *int {
	if n, ok := asFloat(d[key]); ok {
		return ufo.Int(int(n))
	}
	return nil
}

func (d dict) boolPtr(key string) *bool {
	if b, ok := d[key].(bool); ok {
		v := b
		return &v
	}
	return nil
}

func (d dict) ints(key string) []int {
	items, ok := d[key].([]any)
	if !ok {
		return nil
	}
	out := make([]int, 0, len(items))
	for _, item := range items {
		if n, ok := asFloat(item); ok {
			out = append(out, int(n))
		}
	}
	return out
}

func (d dict) floats(key string) []float64 {
	items, ok := d[key].([]any)
	if !ok {
		return nil
	}
	out := make([]float64, 0, len(items))
	for _, item := range items {
		if n, ok := asFloat(item); ok {
			out = append(out, n)
		}
	}
	return out
}

func gaspRecords(v any) []ufo.GaspRangeRecord {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]ufo.GaspRangeRecord, 0, len(items))
	for _, item := range items {
		rec, ok := item.(map[string]any)
		if !ok {
			continue
		}
		d := dict(rec)
		ppem := 0
		if n, ok := asFloat(rec["rangeMaxPPEM"]); ok {
			ppem = int(n)
		}
		out = append(out, ufo.GaspRangeRecord{
			RangeMaxPPEM:      ppem,
			RangeGaspBehavior: d.ints("rangeGaspBehavior"),
		})
	}
	return out
}
