package ufo

// GaspRangeRecord is one range of the OpenType gasp table.
type GaspRangeRecord struct {
	RangeMaxPPEM         int
	RangeGaspBehavior    []int
}

// Info is the font-wide metadata record, following the UFO 3 fontinfo
// field set. Optional numeric fields are pointers so that "not set" is
// distinguishable from zero; that distinction drives both interpolation
// (unset fields do not participate) and the OS/2 class inference on
// generated instances.
//
// Only the numeric metrics below take part in interpolation; identity
// and licensing data is copied verbatim from the default source.
type Info struct {
	// Identity and naming (copied, never interpolated).
	FamilyName         string
	StyleName          string
	StyleMapFamilyName string
	StyleMapStyleName  string
	VersionMajor       *int
	VersionMinor       *int
	Copyright          string
	Trademark          string
	Note               string

	// Dimensions and metrics (interpolated).
	UnitsPerEm  *float64
	Ascender    *float64
	Descender   *float64
	XHeight     *float64
	CapHeight   *float64
	ItalicAngle *float64

	// head table.
	OpenTypeHeadCreated       string
	OpenTypeHeadFlags         []int
	OpenTypeHeadLowestRecPPEM *float64

	// hhea table (interpolated).
	OpenTypeHheaAscender       *float64
	OpenTypeHheaDescender      *float64
	OpenTypeHheaLineGap        *float64
	OpenTypeHheaCaretSlopeRise *float64
	OpenTypeHheaCaretSlopeRun  *float64
	OpenTypeHheaCaretOffset    *float64

	// name table entries (copied).
	OpenTypeNameDescription     string
	OpenTypeNameDesigner        string
	OpenTypeNameDesignerURL     string
	OpenTypeNameLicense         string
	OpenTypeNameLicenseURL      string
	OpenTypeNameManufacturer    string
	OpenTypeNameManufacturerURL string
	OpenTypeNameSampleText      string
	OpenTypeNameVersion         string

	// OS/2 table.
	OpenTypeOS2WeightClass         *int // interpolated or inferred from wght
	OpenTypeOS2WidthClass          *int // interpolated or inferred from wdth
	OpenTypeOS2VendorID            string
	OpenTypeOS2Panose              []int
	OpenTypeOS2FamilyClass         []int
	OpenTypeOS2Type                []int
	OpenTypeOS2Selection           []int
	OpenTypeOS2UnicodeRanges       []int
	OpenTypeOS2CodePageRanges      []int
	OpenTypeOS2TypoAscender        *float64
	OpenTypeOS2TypoDescender       *float64
	OpenTypeOS2TypoLineGap         *float64
	OpenTypeOS2WinAscent           *float64
	OpenTypeOS2WinDescent          *float64
	OpenTypeOS2SubscriptXSize      *float64
	OpenTypeOS2SubscriptYSize      *float64
	OpenTypeOS2SubscriptXOffset    *float64
	OpenTypeOS2SubscriptYOffset    *float64
	OpenTypeOS2SuperscriptXSize    *float64
	OpenTypeOS2SuperscriptYSize    *float64
	OpenTypeOS2SuperscriptXOffset  *float64
	OpenTypeOS2SuperscriptYOffset  *float64
	OpenTypeOS2StrikeoutSize       *float64
	OpenTypeOS2StrikeoutPosition   *float64

	// gasp table (copied).
	OpenTypeGaspRangeRecords []GaspRangeRecord

	// PostScript-specific data.
	PostscriptFontName           string // copied from the instance descriptor
	PostscriptSlantAngle         *float64
	PostscriptUnderlineThickness *float64
	PostscriptUnderlinePosition  *float64
	PostscriptBlueFuzz           *float64
	PostscriptBlueShift          *float64
	PostscriptBlueScale          *float64
	PostscriptDefaultWidthX      *float64
	PostscriptNominalWidthX      *float64
	PostscriptBlueValues         []float64
	PostscriptOtherBlues         []float64
	PostscriptFamilyBlues        []float64
	PostscriptFamilyOtherBlues   []float64
	PostscriptStemSnapH          []float64
	PostscriptStemSnapV          []float64
	PostscriptForceBold          *bool
	PostscriptIsFixedPitch       *bool
	PostscriptDefaultCharacter   string
	PostscriptWindowsCharacterSet *int
}

// Copy returns a deep copy of the info record.
func (info *Info) Copy() *Info {
	out := *info
	out.VersionMajor = copyIntPtr(info.VersionMajor)
	out.VersionMinor = copyIntPtr(info.VersionMinor)
	out.UnitsPerEm = copyFloatPtr(info.UnitsPerEm)
	out.Ascender = copyFloatPtr(info.Ascender)
	out.Descender = copyFloatPtr(info.Descender)
	out.XHeight = copyFloatPtr(info.XHeight)
	out.CapHeight = copyFloatPtr(info.CapHeight)
	out.ItalicAngle = copyFloatPtr(info.ItalicAngle)
	out.OpenTypeHeadFlags = copyInts(info.OpenTypeHeadFlags)
	out.OpenTypeHeadLowestRecPPEM = copyFloatPtr(info.OpenTypeHeadLowestRecPPEM)
	out.OpenTypeHheaAscender = copyFloatPtr(info.OpenTypeHheaAscender)
	out.OpenTypeHheaDescender = copyFloatPtr(info.OpenTypeHheaDescender)
	out.OpenTypeHheaLineGap = copyFloatPtr(info.OpenTypeHheaLineGap)
	out.OpenTypeHheaCaretSlopeRise = copyFloatPtr(info.OpenTypeHheaCaretSlopeRise)
	out.OpenTypeHheaCaretSlopeRun = copyFloatPtr(info.OpenTypeHheaCaretSlopeRun)
	out.OpenTypeHheaCaretOffset = copyFloatPtr(info.OpenTypeHheaCaretOffset)
	out.OpenTypeOS2WeightClass = copyIntPtr(info.OpenTypeOS2WeightClass)
	out.OpenTypeOS2WidthClass = copyIntPtr(info.OpenTypeOS2WidthClass)
	out.OpenTypeOS2Panose = copyInts(info.OpenTypeOS2Panose)
	out.OpenTypeOS2FamilyClass = copyInts(info.OpenTypeOS2FamilyClass)
	out.OpenTypeOS2Type = copyInts(info.OpenTypeOS2Type)
	out.OpenTypeOS2Selection = copyInts(info.OpenTypeOS2Selection)
	out.OpenTypeOS2UnicodeRanges = copyInts(info.OpenTypeOS2UnicodeRanges)
	out.OpenTypeOS2CodePageRanges = copyInts(info.OpenTypeOS2CodePageRanges)
	out.OpenTypeOS2TypoAscender = copyFloatPtr(info.OpenTypeOS2TypoAscender)
	out.OpenTypeOS2TypoDescender = copyFloatPtr(info.OpenTypeOS2TypoDescender)
	out.OpenTypeOS2TypoLineGap = copyFloatPtr(info.OpenTypeOS2TypoLineGap)
	out.OpenTypeOS2WinAscent = copyFloatPtr(info.OpenTypeOS2WinAscent)
	out.OpenTypeOS2WinDescent = copyFloatPtr(info.OpenTypeOS2WinDescent)
	out.OpenTypeOS2SubscriptXSize = copyFloatPtr(info.OpenTypeOS2SubscriptXSize)
	out.OpenTypeOS2SubscriptYSize = copyFloatPtr(info.OpenTypeOS2SubscriptYSize)
	out.OpenTypeOS2SubscriptXOffset = copyFloatPtr(info.OpenTypeOS2SubscriptXOffset)
	out.OpenTypeOS2SubscriptYOffset = copyFloatPtr(info.OpenTypeOS2SubscriptYOffset)
	out.OpenTypeOS2SuperscriptXSize = copyFloatPtr(info.OpenTypeOS2SuperscriptXSize)
	out.OpenTypeOS2SuperscriptYSize = copyFloatPtr(info.OpenTypeOS2SuperscriptYSize)
	out.OpenTypeOS2SuperscriptXOffset = copyFloatPtr(info.OpenTypeOS2SuperscriptXOffset)
	out.OpenTypeOS2SuperscriptYOffset = copyFloatPtr(info.OpenTypeOS2SuperscriptYOffset)
	out.OpenTypeOS2StrikeoutSize = copyFloatPtr(info.OpenTypeOS2StrikeoutSize)
	out.OpenTypeOS2StrikeoutPosition = copyFloatPtr(info.OpenTypeOS2StrikeoutPosition)
	if info.OpenTypeGaspRangeRecords != nil {
		out.OpenTypeGaspRangeRecords = make([]GaspRangeRecord, len(info.OpenTypeGaspRangeRecords))
		for i, rec := range info.OpenTypeGaspRangeRecords {
			out.OpenTypeGaspRangeRecords[i] = GaspRangeRecord{
				RangeMaxPPEM:      rec.RangeMaxPPEM,
				RangeGaspBehavior: copyInts(rec.RangeGaspBehavior),
			}
		}
	}
	out.PostscriptSlantAngle = copyFloatPtr(info.PostscriptSlantAngle)
	out.PostscriptUnderlineThickness = copyFloatPtr(info.PostscriptUnderlineThickness)
	out.PostscriptUnderlinePosition = copyFloatPtr(info.PostscriptUnderlinePosition)
	out.PostscriptBlueFuzz = copyFloatPtr(info.PostscriptBlueFuzz)
	out.PostscriptBlueShift = copyFloatPtr(info.PostscriptBlueShift)
	out.PostscriptBlueScale = copyFloatPtr(info.PostscriptBlueScale)
	out.PostscriptDefaultWidthX = copyFloatPtr(info.PostscriptDefaultWidthX)
	out.PostscriptNominalWidthX = copyFloatPtr(info.PostscriptNominalWidthX)
	out.PostscriptBlueValues = copyFloats(info.PostscriptBlueValues)
	out.PostscriptOtherBlues = copyFloats(info.PostscriptOtherBlues)
	out.PostscriptFamilyBlues = copyFloats(info.PostscriptFamilyBlues)
	out.PostscriptFamilyOtherBlues = copyFloats(info.PostscriptFamilyOtherBlues)
	out.PostscriptStemSnapH = copyFloats(info.PostscriptStemSnapH)
	out.PostscriptStemSnapV = copyFloats(info.PostscriptStemSnapV)
	out.PostscriptForceBold = copyBoolPtr(info.PostscriptForceBold)
	out.PostscriptIsFixedPitch = copyBoolPtr(info.PostscriptIsFixedPitch)
	out.PostscriptWindowsCharacterSet = copyIntPtr(info.PostscriptWindowsCharacterSet)
	return &out
}

func copyFloatPtr(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyIntPtr(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyBoolPtr(p *bool) *bool {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyInts(s []int) []int {
	if s == nil {
		return nil
	}
	out := make([]int, len(s))
	copy(out, s)
	return out
}

func copyFloats(s []float64) []float64 {
	if s == nil {
		return nil
	}
	out := make([]float64, len(s))
	copy(out, s)
	return out
}

// Float returns a pointer to v, for building optional fields in place.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v, for building optional fields in place.
func Int(v int) *int { return &v }
