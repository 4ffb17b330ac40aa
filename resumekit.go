package resumekit

import (
	"github.com/alnah/go-resumekit/internal/assets"
	"github.com/alnah/go-resumekit/internal/ats"
	"github.com/alnah/go-resumekit/internal/contact"
	"github.com/alnah/go-resumekit/internal/sections"
	"github.com/alnah/go-resumekit/internal/templates"
)

// Public types. They alias the internal ones so values flow through the
// facade without copies.
type (
	// ScoreReport is the outcome of scoring one resume.
	ScoreReport = ats.Report
	// Grade is a letter grade derived from the score.
	Grade = ats.Grade
	// SectionSuggestion proposes an optional section the resume lacks.
	SectionSuggestion = ats.SectionSuggestion

	// Section is a titled group of blocks parsed from the resume.
	Section = sections.Section
	// Block is one line of section content.
	Block = sections.Block

	// ContactInfo holds contact details. Empty fields were not found.
	ContactInfo = contact.Info

	// Customization adjusts the look of a template.
	Customization = templates.Customization
	// TemplateDescriptor describes one catalogued template.
	TemplateDescriptor = templates.Descriptor
	// RenderOptions controls one rendering.
	RenderOptions = templates.Options
)

// Grades from best to worst.
const (
	GradeAPlus = ats.GradeAPlus
	GradeA     = ats.GradeA
	GradeB     = ats.GradeB
	GradeC     = ats.GradeC
	GradeD     = ats.GradeD
	GradeF     = ats.GradeF
)

// Customization presets.
const (
	FontSmall      = templates.FontSmall
	FontMedium     = templates.FontMedium
	FontLarge      = templates.FontLarge
	SpacingCompact = templates.SpacingCompact
	SpacingNormal  = templates.SpacingNormal
	SpacingLoose   = templates.SpacingLoose
)

// DefaultTemplateID is used for empty or unknown template ids.
const DefaultTemplateID = templates.DefaultTemplateID

// Score rates text against the ATS rubric. It never fails.
func Score(text string) ScoreReport {
	return ats.Score(text)
}

// ParseSections splits text into titled sections in document order.
// Text without "##" headings yields an empty slice.
func ParseSections(text string) []Section {
	return sections.Parse(text)
}

// ExtractContact scans text for contact details. A non-nil override is
// returned as is.
func ExtractContact(text string, override *ContactInfo) ContactInfo {
	return contact.Extract(text, override)
}

// Render produces a self-contained HTML document using the embedded skins.
// Unknown template ids fall back to DefaultTemplateID.
func Render(text string, opts RenderOptions) (string, error) {
	return templates.Render(text, opts)
}

// Templates lists the catalogue in a stable order.
func Templates() []TemplateDescriptor {
	return templates.Templates()
}

// LookupTemplate returns the descriptor for id and whether id is catalogued.
// Unknown ids return the default template's descriptor.
func LookupTemplate(id string) (TemplateDescriptor, bool) {
	return templates.Lookup(id), templates.Known(id)
}

// AssetLoader loads skin stylesheets and markup templates by name.
// Implementations may load from the filesystem, a database, etc.
type AssetLoader interface {
	// LoadStyle loads a stylesheet by name (without .css extension).
	LoadStyle(name string) (string, error)
	// LoadTemplate loads a markup template by name (without .html extension).
	LoadTemplate(name string) (string, error)
}

// Compile-time interface check.
var _ assets.AssetLoader = (AssetLoader)(nil)

// NewAssetLoader returns a loader reading skins from basePath, falling back
// to the embedded skins for anything basePath lacks. An empty basePath uses
// only the embedded skins.
//
// basePath should contain styles/{skin}.css and templates/{skin}.html for
// any of the skins "tech", "classic" and "minimalist".
func NewAssetLoader(basePath string) (AssetLoader, error) {
	return assets.NewAssetResolver(basePath)
}
