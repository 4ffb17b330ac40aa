package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveStyle_Presets(t *testing.T) {
	t.Parallel()

	desc := Lookup(MinimalistClean)

	tests := []struct {
		name      string
		custom    *Customization
		onePage   bool
		wantFonts Fonts
		wantGaps  Gaps
	}{
		{
			name:      "nil customization",
			custom:    nil,
			wantFonts: Fonts{"10pt", "22pt", "11pt"},
			wantGaps:  Gaps{"0.5in", "15px", "6px"},
		},
		{
			name:      "small compact",
			custom:    &Customization{FontSize: FontSmall, Spacing: SpacingCompact},
			wantFonts: Fonts{"9pt", "20pt", "10pt"},
			wantGaps:  Gaps{"0.4in", "12px", "4px"},
		},
		{
			name:      "large loose",
			custom:    &Customization{FontSize: FontLarge, Spacing: SpacingLoose},
			wantFonts: Fonts{"11pt", "24pt", "12pt"},
			wantGaps:  Gaps{"0.6in", "20px", "8px"},
		},
		{
			name:      "unknown values fall back",
			custom:    &Customization{FontSize: "huge", Spacing: "airy"},
			wantFonts: Fonts{"10pt", "22pt", "11pt"},
			wantGaps:  Gaps{"0.5in", "15px", "6px"},
		},
		{
			name:      "preset names are case-insensitive",
			custom:    &Customization{FontSize: "LARGE"},
			wantFonts: Fonts{"11pt", "24pt", "12pt"},
			wantGaps:  Gaps{"0.5in", "15px", "6px"},
		},
		{
			name:      "one page overrides loose",
			custom:    &Customization{FontSize: FontLarge, Spacing: SpacingLoose},
			onePage:   true,
			wantFonts: Fonts{"9.5pt", "20pt", "10.5pt"},
			wantGaps:  Gaps{"0.4in", "10px", "4px"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := ResolveStyle(desc, tt.custom, tt.onePage)
			assert.Equal(t, tt.wantFonts, s.Fonts)
			assert.Equal(t, tt.wantGaps, s.Spacing)
		})
	}
}

func TestResolveStyle_Colors(t *testing.T) {
	t.Parallel()

	desc := Lookup(ModernExecutive)

	tests := []struct {
		name       string
		header     string
		accent     string
		wantHeader string
		wantAccent string
	}{
		{"palette defaults", "", "", "#047857", "#059669"},
		{"hex override", "#123", "#abcdef", "#123", "#abcdef"},
		{"rgb override", "rgb(1, 2, 3)", "rgba(10,20,30,0.5)", "rgb(1, 2, 3)", "rgba(10,20,30,0.5)"},
		{"keyword override", "navy", "teal", "navy", "teal"},
		{"injection attempt rejected", "red;} body{display:none", "</style>", "#047857", "#059669"},
		{"bad hex rejected", "#12345", "#ggg", "#047857", "#059669"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := ResolveStyle(desc, &Customization{HeaderColor: tt.header, AccentColor: tt.accent}, false)
			assert.Equal(t, tt.wantHeader, s.Header)
			assert.Equal(t, tt.wantAccent, s.Accent)
		})
	}
}

func TestResolveStyle_Flags(t *testing.T) {
	t.Parallel()

	desc := Lookup(ProfessionalClassic)

	plain := ResolveStyle(desc, nil, false)
	assert.Equal(t, "600", plain.SectionWeight)
	assert.Empty(t, plain.ColumnCSS)
	assert.False(t, plain.TwoColumn)

	custom := ResolveStyle(desc, &Customization{BoldSections: true, TwoColumn: true}, false)
	assert.Equal(t, "700", custom.SectionWeight)
	assert.Contains(t, custom.ColumnCSS, "grid-template-columns: 2fr 1fr")
	assert.True(t, custom.TwoColumn)
}
