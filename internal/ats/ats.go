// Package ats scores resume text for applicant tracking system compatibility.
//
// Scoring is a fixed rubric: every check deducts independently from a
// 100-point baseline and records issues, suggestions and strengths. The
// result is pure and deterministic.
package ats

import (
	"fmt"
	"regexp"
	"strings"
)

// Grade is a letter grade derived from the final score.
type Grade string

// Grades from best to worst.
const (
	GradeAPlus Grade = "A+"
	GradeA     Grade = "A"
	GradeB     Grade = "B"
	GradeC     Grade = "C"
	GradeD     Grade = "D"
	GradeF     Grade = "F"
)

// String implements fmt.Stringer.
func (g Grade) String() string { return string(g) }

// GradeFor maps a score to its grade.
func GradeFor(score int) Grade {
	switch {
	case score >= 90:
		return GradeAPlus
	case score >= 80:
		return GradeA
	case score >= 70:
		return GradeB
	case score >= 60:
		return GradeC
	case score >= 50:
		return GradeD
	default:
		return GradeF
	}
}

// SectionSuggestion proposes an optional section the resume lacks.
type SectionSuggestion struct {
	Section     string `json:"section"`
	Description string `json:"description"`
	Benefit     string `json:"benefit"`
}

// Report is the outcome of scoring one document.
type Report struct {
	Score              int                 `json:"score"`
	Grade              Grade               `json:"grade"`
	Issues             []string            `json:"issues"`
	Suggestions        []string            `json:"suggestions"`
	Strengths          []string            `json:"strengths"`
	MissingSections    []string            `json:"missing_sections"`
	SectionSuggestions []SectionSuggestion `json:"section_suggestions"`
	WordCount          int                 `json:"word_count"`
	HasEmail           bool                `json:"has_email"`
	HasPhone           bool                `json:"has_phone"`
	FoundKeywordsCount int                 `json:"found_keywords_count"`
	HasNumbers         bool                `json:"has_numbers"`
}

// Rubric constants.
const (
	baseScore       = 100
	minActionVerbs  = 5
	minHeaders      = 4
	minWords        = 200
	maxWords        = 1200
	sectionPenalty  = 10
	contactPenalty  = 5
	verbPenalty     = 5
	numbersPenalty  = 10
	skillsPenalty   = 10
	datesPenalty    = 5
	headersPenalty  = 5
	tooShortPenalty = 10
	tooLongPenalty  = 5
	glyphPenalty    = 5
	skillsFamily    = "skills"
)

// family is a canonical section and the keywords that reveal it.
type family struct {
	name     string
	keywords []string
}

// families are checked in this order; MissingSections keeps it.
var families = []family{
	{"contact", []string{"email", "phone", "address", "location"}},
	{"summary", []string{"summary", "objective", "profile"}},
	{"experience", []string{"experience", "work", "employment", "career"}},
	{"education", []string{"education", "degree", "university", "college"}},
	{skillsFamily, []string{"skills", "technical", "competencies"}},
}

var actionVerbs = []string{
	"achievement", "accomplish", "lead", "manage", "develop", "implement",
	"improve", "increase", "decrease", "create", "design", "analyze",
}

var problematicGlyphs = []string{"❌", "✅", "→", "←", "•", "○"}

var (
	emailPattern   = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)
	phonePattern   = regexp.MustCompile(`(\+?\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	numbersPattern = regexp.MustCompile(`\d+[%$]?|\b\d+\s*(years?|months?|%)`)
	datePattern    = regexp.MustCompile(`\b(19|20)\d{2}\b|\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\s+\d{4}`)
	headerPattern  = regexp.MustCompile(`(?m)^#+\s+[\p{L}\p{N}_]+`)
)

// optionalSection is suggested when none of its keywords appear.
type optionalSection struct {
	keywords   []string
	suggestion SectionSuggestion
}

var optionalSections = []optionalSection{
	{
		keywords: []string{"projects", "project"},
		suggestion: SectionSuggestion{
			Section:     "Projects",
			Description: "Showcase your work through project examples",
			Benefit:     "Demonstrates practical skills and experience",
		},
	},
	{
		keywords: []string{"certification", "certificate", "certifications"},
		suggestion: SectionSuggestion{
			Section:     "Certifications",
			Description: "Highlight professional certifications",
			Benefit:     "Shows commitment to professional development",
		},
	},
	{
		keywords: []string{"achievement", "award", "achievements"},
		suggestion: SectionSuggestion{
			Section:     "Achievements/Awards",
			Description: "List notable achievements and awards",
			Benefit:     "Differentiates you from other candidates",
		},
	},
	{
		keywords: []string{"language", "languages"},
		suggestion: SectionSuggestion{
			Section:     "Languages",
			Description: "List languages you speak",
			Benefit:     "Important for international or multilingual roles",
		},
	},
	{
		keywords: []string{"volunteer", "volunteering"},
		suggestion: SectionSuggestion{
			Section:     "Volunteer Experience",
			Description: "Include volunteer work or community involvement",
			Benefit:     "Shows well-rounded personality and leadership",
		},
	},
}

// evaluation is the working state shared by the checks of one Score call.
type evaluation struct {
	text   string
	lower  string
	score  int
	found  map[string]bool
	report Report
}

func (e *evaluation) deduct(points int, issue, suggestion string) {
	e.score -= points
	e.report.Issues = append(e.report.Issues, issue)
	e.report.Suggestions = append(e.report.Suggestions, suggestion)
}

func (e *evaluation) strength(s string) {
	e.report.Strengths = append(e.report.Strengths, s)
}

// check is one rubric item.
type check func(e *evaluation)

// rubric runs in order; the skills check reads what sectionCoverage found.
var rubric = []check{
	sectionCoverage,
	contactPresence,
	actionVerbDensity,
	quantifiableAchievements,
	skillsSection,
	datePresence,
	headerCount,
	documentLength,
	problematicCharacters,
}

// Score evaluates text against the rubric.
func Score(text string) Report {
	e := &evaluation{
		text:  text,
		lower: strings.ToLower(text),
		score: baseScore,
		found: make(map[string]bool, len(families)),
		report: Report{
			Issues:             []string{},
			Suggestions:        []string{},
			Strengths:          []string{},
			MissingSections:    []string{},
			SectionSuggestions: []SectionSuggestion{},
		},
	}

	for _, c := range rubric {
		c(e)
	}

	e.report.Score = max(0, min(100, e.score))
	e.report.Grade = GradeFor(e.report.Score)
	e.report.SectionSuggestions = suggestSections(e.lower)
	return e.report
}

func sectionCoverage(e *evaluation) {
	for _, f := range families {
		found := containsAny(e.lower, f.keywords)
		e.found[f.name] = found
		if !found {
			e.report.MissingSections = append(e.report.MissingSections, f.name)
			e.score -= sectionPenalty
		}
	}
}

func contactPresence(e *evaluation) {
	e.report.HasEmail = emailPattern.MatchString(e.text)
	e.report.HasPhone = phonePattern.MatchString(e.text)

	if !e.report.HasEmail {
		e.deduct(contactPenalty, "Missing email address", "Add your professional email address")
	}
	if !e.report.HasPhone {
		e.deduct(contactPenalty, "Missing phone number", "Add your contact phone number")
	}
}

func actionVerbDensity(e *evaluation) {
	count := 0
	for _, verb := range actionVerbs {
		if strings.Contains(e.lower, verb) {
			count++
		}
	}
	e.report.FoundKeywordsCount = count

	if count < minActionVerbs {
		e.deduct(verbPenalty,
			fmt.Sprintf("Limited use of action verbs (%d found)", count),
			"Use more action verbs (e.g., 'managed', 'developed', 'achieved')")
		return
	}
	e.strength(fmt.Sprintf("Strong use of action verbs (%d found)", count))
}

func quantifiableAchievements(e *evaluation) {
	e.report.HasNumbers = numbersPattern.MatchString(e.text)
	if !e.report.HasNumbers {
		e.deduct(numbersPenalty,
			"Missing quantifiable achievements",
			"Add specific numbers, percentages, or metrics to your achievements")
		return
	}
	e.strength("Includes quantifiable achievements")
}

// skillsSection penalizes a missing skills family a second time, on top of
// sectionCoverage. Kept for score compatibility.
func skillsSection(e *evaluation) {
	if e.found[skillsFamily] {
		return
	}
	e.deduct(skillsPenalty,
		"Missing dedicated skills section",
		"Add a skills section with relevant technical and soft skills")
}

func datePresence(e *evaluation) {
	if !datePattern.MatchString(e.lower) {
		e.deduct(datesPenalty,
			"Missing dates for experience/education",
			"Include dates for your work experience and education")
		return
	}
	e.strength("Includes employment/education dates")
}

func headerCount(e *evaluation) {
	n := len(headerPattern.FindAllStringIndex(e.text, -1))
	if n < minHeaders {
		e.deduct(headersPenalty,
			"Insufficient section headers",
			"Use clear section headers (##) for better organization")
		return
	}
	e.strength(fmt.Sprintf("Good structure with %d sections", n))
}

func documentLength(e *evaluation) {
	words := len(strings.Fields(e.text))
	e.report.WordCount = words

	switch {
	case words < minWords:
		e.deduct(tooShortPenalty,
			"Resume too short (less than 200 words)",
			"Expand your resume with more detail (aim for 400-800 words)")
	case words > maxWords:
		e.deduct(tooLongPenalty,
			"Resume too long (over 1200 words)",
			"Consider condensing your resume to 1-2 pages")
	default:
		e.strength(fmt.Sprintf("Appropriate length (%d words)", words))
	}
}

func problematicCharacters(e *evaluation) {
	if !containsAny(e.text, problematicGlyphs) {
		return
	}
	e.deduct(glyphPenalty,
		"Contains special characters that may confuse ATS",
		"Use standard characters and bullet points (• or -)")
}

// suggestSections lists optional sections with no keyword in lower.
func suggestSections(lower string) []SectionSuggestion {
	out := []SectionSuggestion{}
	for _, opt := range optionalSections {
		if !containsAny(lower, opt.keywords) {
			out = append(out, opt.suggestion)
		}
	}
	return out
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
