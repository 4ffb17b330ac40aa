package templates

// LayoutKind selects the skin and post-processing applied to a template.
type LayoutKind string

// Layouts.
const (
	LayoutTech       LayoutKind = "tech"
	LayoutClassic    LayoutKind = "classic"
	LayoutMinimalist LayoutKind = "minimalist"
)

// Template ids.
const (
	ProfessionalClassic   = "professional-classic"
	ModernExecutive       = "modern-executive"
	CreativeProfessional  = "creative-professional"
	MinimalistClean       = "minimalist-clean"
	ChronologicalStandard = "chronological-standard"
	FunctionalSkillBased  = "functional-skill-based"
	HybridBalanced        = "hybrid-balanced"
	TechFocused           = "tech-focused"
	AcademicResearch      = "academic-research"
	ExecutiveCV           = "executive-cv"

	// DefaultTemplateID is used for empty or unknown ids.
	DefaultTemplateID = MinimalistClean
)

// Palette holds the default header and accent colors of a template.
type Palette struct {
	Header string `json:"header" yaml:"header"`
	Accent string `json:"accent" yaml:"accent"`
}

// Descriptor identifies a template.
type Descriptor struct {
	ID          string     `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description" yaml:"description"`
	Category    string     `json:"category" yaml:"category"`
	Layout      LayoutKind `json:"layout" yaml:"layout"`
	Palette     Palette    `json:"palette" yaml:"palette"`
}

// catalog is read-only after init; order is the listing order.
var catalog = []Descriptor{
	{ProfessionalClassic, "Professional Classic", "Traditional layout perfect for corporate roles", "Corporate", LayoutClassic, Palette{"#2563eb", "#2563eb"}},
	{ModernExecutive, "Modern Executive", "Clean single-column design with strong typography", "Executive", LayoutMinimalist, Palette{"#047857", "#059669"}},
	{CreativeProfessional, "Creative Professional", "Bold design with accent colors for creative industries", "Creative", LayoutMinimalist, Palette{"#dc2626", "#dc2626"}},
	{MinimalistClean, "Minimalist Clean", "Simple and focused, perfect for ATS scanning", "Minimal", LayoutMinimalist, Palette{"#1e293b", "#475569"}},
	{ChronologicalStandard, "Chronological Standard", "Time-based layout highlighting career progression", "Traditional", LayoutMinimalist, Palette{"#6d28d9", "#7c3aed"}},
	{FunctionalSkillBased, "Functional Skill-Based", "Emphasizes skills and achievements over timeline", "Functional", LayoutMinimalist, Palette{"#ea580c", "#ea580c"}},
	{HybridBalanced, "Hybrid Balanced", "Combines chronological and functional approaches", "Hybrid", LayoutMinimalist, Palette{"#0891b2", "#0891b2"}},
	{TechFocused, "Tech Focused", "Dark monospace layout for technical roles and developers", "Technical", LayoutTech, Palette{"#10b981", "#10b981"}},
	{AcademicResearch, "Academic Research", "Ideal for researchers, academics, and PhD candidates", "Academic", LayoutMinimalist, Palette{"#be185d", "#be185d"}},
	{ExecutiveCV, "Executive CV", "Premium layout for senior executives and C-suite", "Executive", LayoutMinimalist, Palette{"#b45309", "#b45309"}},
}

var byID = func() map[string]Descriptor {
	m := make(map[string]Descriptor, len(catalog))
	for _, d := range catalog {
		m[d.ID] = d
	}
	return m
}()

// Lookup returns the descriptor for id, or the default template's
// descriptor when id is empty or unknown.
func Lookup(id string) Descriptor {
	if d, ok := byID[id]; ok {
		return d
	}
	return byID[DefaultTemplateID]
}

// Known reports whether id names a catalogued template.
func Known(id string) bool {
	_, ok := byID[id]
	return ok
}

// Templates returns a copy of the catalogue in listing order.
func Templates() []Descriptor {
	out := make([]Descriptor, len(catalog))
	copy(out, catalog)
	return out
}

// IDs returns the catalogued template ids in listing order.
func IDs() []string {
	ids := make([]string, len(catalog))
	for i, d := range catalog {
		ids[i] = d.ID
	}
	return ids
}
