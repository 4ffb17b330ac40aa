package ats

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// strongResume satisfies every rubric check.
func strongResume(skillsHeading string) string {
	return "# Jane Doe\n" +
		"**Email:** jane@example.com\n" +
		"**Phone:** 555-123-4567\n" +
		"**Location:** Paris\n\n" +
		"## Summary\n" +
		"Engineer who likes to lead, manage, develop, implement and improve systems.\n\n" +
		"## Experience\n" +
		"### Acme Corp (Jan 2019 - 2023)\n" +
		"- Cut latency by 40% across 12 services\n\n" +
		"## Education\n" +
		"BSc, State University, 2018\n\n" +
		"## " + skillsHeading + "\n" +
		"Go, SQL, Kubernetes\n\n" +
		strings.Repeat("filler ", 220) + "\n"
}

// ---------------------------------------------------------------------------
// TestScore - rubric
// ---------------------------------------------------------------------------

func TestScore_Empty(t *testing.T) {
	t.Parallel()

	r := Score("")

	assert.Equal(t, 0, r.Score)
	assert.Equal(t, GradeF, r.Grade)
	assert.Equal(t, []string{"contact", "summary", "experience", "education", "skills"}, r.MissingSections)
	assert.False(t, r.HasEmail)
	assert.False(t, r.HasPhone)
	assert.False(t, r.HasNumbers)
	assert.Zero(t, r.WordCount)
	assert.Zero(t, r.FoundKeywordsCount)
	assert.Len(t, r.SectionSuggestions, 5)
	assert.NotNil(t, r.Strengths)
}

func TestScore_StrongResume(t *testing.T) {
	t.Parallel()

	r := Score(strongResume("Skills"))

	assert.Equal(t, 100, r.Score)
	assert.Equal(t, GradeAPlus, r.Grade)
	assert.Empty(t, r.Issues)
	assert.Empty(t, r.Suggestions)
	assert.Empty(t, r.MissingSections)
	assert.True(t, r.HasEmail)
	assert.True(t, r.HasPhone)
	assert.True(t, r.HasNumbers)
	assert.Equal(t, 5, r.FoundKeywordsCount)
	assert.Contains(t, r.Strengths, "Strong use of action verbs (5 found)")
	assert.Contains(t, r.Strengths, "Good structure with 6 sections")
	assert.Contains(t, r.Strengths, "Includes employment/education dates")
	// Optional sections are suggested even at a perfect score.
	assert.NotEmpty(t, r.SectionSuggestions)
}

func TestScore_SkillsDoublePenalty(t *testing.T) {
	t.Parallel()

	r := Score(strongResume("Tools"))

	assert.Equal(t, 80, r.Score)
	assert.Equal(t, GradeA, r.Grade)
	assert.Equal(t, []string{"skills"}, r.MissingSections)
	assert.Equal(t, []string{"Missing dedicated skills section"}, r.Issues)
}

func TestScore_Deductions(t *testing.T) {
	t.Parallel()

	base := strongResume("Skills")

	tests := []struct {
		name      string
		input     string
		wantScore int
		wantIssue string
	}{
		{
			name:      "problematic glyphs",
			input:     base + "\n✅ done",
			wantScore: 95,
			wantIssue: "Contains special characters that may confuse ATS",
		},
		{
			name:      "missing email",
			input:     strings.Replace(base, "jane@example.com", "jane at example", 1),
			wantScore: 95,
			wantIssue: "Missing email address",
		},
		{
			name:      "missing phone",
			input:     strings.Replace(base, "555-123-4567", "on request", 1),
			wantScore: 95,
			wantIssue: "Missing phone number",
		},
		{
			name:      "too long",
			input:     base + strings.Repeat("more ", 1100),
			wantScore: 95,
			wantIssue: "Resume too long (over 1200 words)",
		},
		{
			name:      "too short",
			input:     strings.Replace(base, strings.Repeat("filler ", 220), "", 1),
			wantScore: 90,
			wantIssue: "Resume too short (less than 200 words)",
		},
		{
			name:      "few action verbs",
			input:     strings.Replace(base, "lead, manage, develop, implement and improve", "write", 1),
			wantScore: 95,
			wantIssue: "Limited use of action verbs (0 found)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := Score(tt.input)
			assert.Equal(t, tt.wantScore, r.Score)
			assert.Contains(t, r.Issues, tt.wantIssue)
			assert.Len(t, r.Suggestions, len(r.Issues))
		})
	}
}

func TestScore_InsufficientHeaders(t *testing.T) {
	t.Parallel()

	text := "Email jane@example.com phone 555-123-4567 summary experience education skills " +
		"lead manage develop implement improve 2020 " + strings.Repeat("word ", 210)

	r := Score(text)

	assert.Equal(t, 95, r.Score)
	assert.Contains(t, r.Issues, "Insufficient section headers")
}

func TestScore_Bounds(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"•→←○❌✅",
		strings.Repeat("x ", 5000),
		strongResume("Skills"),
		"# a\n# b\n# c\n# d\n# e",
	}

	for _, in := range inputs {
		r := Score(in)
		assert.GreaterOrEqual(t, r.Score, 0)
		assert.LessOrEqual(t, r.Score, 100)
		assert.Equal(t, GradeFor(r.Score), r.Grade)
	}
}

func TestScore_Deterministic(t *testing.T) {
	t.Parallel()

	in := strongResume("Competencies")
	assert.Equal(t, Score(in), Score(in))
}

// ---------------------------------------------------------------------------
// TestGradeFor - thresholds
// ---------------------------------------------------------------------------

func TestGradeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score int
		want  Grade
	}{
		{100, GradeAPlus},
		{90, GradeAPlus},
		{89, GradeA},
		{80, GradeA},
		{79, GradeB},
		{70, GradeB},
		{69, GradeC},
		{60, GradeC},
		{59, GradeD},
		{50, GradeD},
		{49, GradeF},
		{0, GradeF},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, GradeFor(tt.score), "score %d", tt.score)
	}
}

func TestReport_JSONKeys(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(Score(""))
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	for _, key := range []string{
		"score", "grade", "issues", "suggestions", "strengths", "missing_sections",
		"section_suggestions", "word_count", "has_email", "has_phone",
		"found_keywords_count", "has_numbers",
	} {
		assert.Contains(t, m, key)
	}
	assert.Equal(t, "F", m["grade"])
}
