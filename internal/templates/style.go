package templates

import (
	"regexp"
	"strings"
)

// FontSize is a font preset name.
type FontSize string

// Font presets.
const (
	FontSmall  FontSize = "small"
	FontMedium FontSize = "medium"
	FontLarge  FontSize = "large"
)

// Spacing is a spacing preset name.
type Spacing string

// Spacing presets.
const (
	SpacingCompact Spacing = "compact"
	SpacingNormal  Spacing = "normal"
	SpacingLoose   Spacing = "loose"
)

// Customization adjusts the look of a template. The zero value means
// template defaults.
type Customization struct {
	TwoColumn    bool     `json:"two_column" yaml:"twoColumn"`
	BoldSections bool     `json:"bold_sections" yaml:"boldSections"`
	FontSize     FontSize `json:"font_size" yaml:"fontSize" validate:"omitempty,oneof=small medium large"`
	HeaderColor  string   `json:"header_color" yaml:"headerColor" validate:"max=64"`
	AccentColor  string   `json:"accent_color" yaml:"accentColor" validate:"max=64"`
	Spacing      Spacing  `json:"spacing" yaml:"spacing" validate:"omitempty,oneof=compact normal loose"`
	CustomCSS    string   `json:"custom_css" yaml:"customCSS" validate:"max=65536"`
}

// Fonts holds resolved font sizes.
type Fonts struct {
	Base    string
	Name    string
	Section string
}

// Gaps holds resolved page padding and vertical gaps.
type Gaps struct {
	Padding string
	Section string
	Item    string
}

// Style is a fully resolved set of values consumed by skin stylesheets.
type Style struct {
	Fonts         Fonts
	Spacing       Gaps
	Header        string
	Accent        string
	SectionWeight string
	TwoColumn     bool
	ColumnCSS     string
}

var fontPresets = map[FontSize]Fonts{
	FontSmall:  {Base: "9pt", Name: "20pt", Section: "10pt"},
	FontMedium: {Base: "10pt", Name: "22pt", Section: "11pt"},
	FontLarge:  {Base: "11pt", Name: "24pt", Section: "12pt"},
}

var spacingPresets = map[Spacing]Gaps{
	SpacingCompact: {Padding: "0.4in", Section: "12px", Item: "4px"},
	SpacingNormal:  {Padding: "0.5in", Section: "15px", Item: "6px"},
	SpacingLoose:   {Padding: "0.6in", Section: "20px", Item: "8px"},
}

// One-page values replace both presets.
var (
	onePageFonts = Fonts{Base: "9.5pt", Name: "20pt", Section: "10.5pt"}
	onePageGaps  = Gaps{Padding: "0.4in", Section: "10px", Item: "4px"}
)

const (
	boldWeight    = "700"
	regularWeight = "600"
	twoColumnCSS  = "display: grid; grid-template-columns: 2fr 1fr; gap: 20px;"
)

var (
	hexColor     = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	rgbColor     = regexp.MustCompile(`^rgba?\(\s*\d{1,3}%?\s*,\s*\d{1,3}%?\s*,\s*\d{1,3}%?\s*(?:,\s*(?:0|1|0?\.\d+)\s*)?\)$`)
	keywordColor = regexp.MustCompile(`^[a-zA-Z]{3,20}$`)
)

// ValidColor reports whether c is a hex, rgb()/rgba() or keyword color.
func ValidColor(c string) bool {
	return hexColor.MatchString(c) || rgbColor.MatchString(c) || keywordColor.MatchString(c)
}

// ResolveStyle computes the style for desc. A nil custom means defaults.
// onePage overrides font and spacing presets whatever custom selects.
func ResolveStyle(desc Descriptor, custom *Customization, onePage bool) Style {
	var c Customization
	if custom != nil {
		c = *custom
	}

	fonts, ok := fontPresets[FontSize(strings.ToLower(string(c.FontSize)))]
	if !ok {
		fonts = fontPresets[FontMedium]
	}
	gaps, ok := spacingPresets[Spacing(strings.ToLower(string(c.Spacing)))]
	if !ok {
		gaps = spacingPresets[SpacingNormal]
	}
	if onePage {
		fonts, gaps = onePageFonts, onePageGaps
	}

	s := Style{
		Fonts:         fonts,
		Spacing:       gaps,
		Header:        colorOr(c.HeaderColor, desc.Palette.Header),
		Accent:        colorOr(c.AccentColor, desc.Palette.Accent),
		SectionWeight: regularWeight,
		TwoColumn:     c.TwoColumn,
	}
	if c.BoldSections {
		s.SectionWeight = boldWeight
	}
	if c.TwoColumn {
		s.ColumnCSS = twoColumnCSS
	}
	return s
}

func colorOr(c, fallback string) string {
	c = strings.TrimSpace(c)
	if c == "" || !ValidColor(c) {
		return fallback
	}
	return c
}
