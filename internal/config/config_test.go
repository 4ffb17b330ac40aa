package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alnah/go-resumekit/internal/contact"
	"github.com/alnah/go-resumekit/internal/logger"
	"github.com/alnah/go-resumekit/internal/templates"
)

const fullConfig = `template: tech-focused
onePage: true
customization:
  twoColumn: true
  fontSize: small
  spacing: compact
  accentColor: "#ff6600"
contact:
  name: Jane Doe
  email: jane@example.com
export:
  outputDir: ./out
  timeout: 45s
  backends: [rod, plain-text]
  noSandbox: true
  debugHTML: true
  workers: 4
assets:
  basePath: ./skins
log:
  level: debug
  format: pretty
`

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// ---------------------------------------------------------------------------
// TestLoadConfig - File loading
// ---------------------------------------------------------------------------

func TestLoadConfig_Full(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, t.TempDir(), "resumekit.yaml", fullConfig)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, templates.TechFocused, cfg.Template)
	assert.True(t, cfg.OnePage)
	assert.Equal(t, templates.Customization{
		TwoColumn:   true,
		FontSize:    templates.FontSmall,
		Spacing:     templates.SpacingCompact,
		AccentColor: "#ff6600",
	}, cfg.Customization)
	assert.Equal(t, contact.Info{Name: "Jane Doe", Email: "jane@example.com"}, cfg.Contact)
	assert.Equal(t, ExportConfig{
		OutputDir: "./out",
		Timeout:   45 * time.Second,
		Backends:  []string{"rod", "plain-text"},
		NoSandbox: true,
		DebugHTML: true,
		Workers:   4,
	}, cfg.Export)
	assert.Equal(t, "./skins", cfg.Assets.BasePath)
	assert.Equal(t, logger.Config{Level: "debug", Format: logger.FormatPretty}, cfg.Log)
}

func TestLoadConfig_PartialKeepsDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, t.TempDir(), "partial.yaml", "onePage: true\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.True(t, cfg.OnePage)
	assert.Equal(t, templates.DefaultTemplateID, cfg.Template)
	assert.Equal(t, logger.FormatJSON, cfg.Log.Format)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		path    string
		wantErr error
	}{
		{name: "empty name", path: "", wantErr: ErrEmptyConfigName},
		{name: "missing file", path: filepath.Join(dir, "missing.yaml"), wantErr: ErrConfigNotFound},
		{name: "unknown field", content: "templte: tech-focused\n", wantErr: ErrConfigParse},
		{name: "empty file", content: "", wantErr: ErrConfigParse},
		{name: "bad font size", content: "customization:\n  fontSize: huge\n", wantErr: ErrInvalidConfig},
		{name: "bad backend", content: "export:\n  backends: [weasyprint]\n", wantErr: ErrInvalidConfig},
		{name: "bad log level", content: "log:\n  level: loud\n", wantErr: ErrInvalidConfig},
		{name: "too many workers", content: "export:\n  workers: 99\n", wantErr: ErrInvalidConfig},
		{name: "name too long", content: "contact:\n  name: " + strings.Repeat("x", MaxNameLength+1) + "\n", wantErr: ErrFieldTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := tt.path
			if path == "" && tt.wantErr != ErrEmptyConfigName {
				path = writeConfig(t, dir, strings.ReplaceAll(tt.name, " ", "-")+".yaml", tt.content)
			}

			_, err := LoadConfig(path)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// NOTE: changes the working directory and HOME; not parallel.
func TestLoadConfig_ByName(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("HOME", dir)

	writeConfig(t, dir, "local.yml", "template: executive-cv\n")
	cfg, err := LoadConfig("local")
	require.NoError(t, err)
	assert.Equal(t, templates.ExecutiveCV, cfg.Template)

	userDir, err := os.UserConfigDir()
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(userDir, appDir), 0o750))
	writeConfig(t, filepath.Join(userDir, appDir), "user.yaml", "template: academic-research\n")
	cfg, err = LoadConfig("user")
	require.NoError(t, err)
	assert.Equal(t, templates.AcademicResearch, cfg.Template)

	_, err = LoadConfig("nowhere")
	assert.ErrorIs(t, err, ErrConfigNotFound)
	assert.Contains(t, err.Error(), "nowhere.yaml, nowhere.yml")
}

// ---------------------------------------------------------------------------
// TestValidate / TestContactOverride
// ---------------------------------------------------------------------------

func TestValidate_DefaultConfig(t *testing.T) {
	t.Parallel()

	assert.NoError(t, DefaultConfig().Validate())
}

func TestValidate_UnknownTemplateIsAccepted(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Template = "no-such-template"

	assert.NoError(t, cfg.Validate(), "unknown ids fall back at render time")
}

func TestContactOverride(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	assert.Nil(t, cfg.ContactOverride())

	cfg.Contact.Phone = "+33 1 23 45 67 89"
	override := cfg.ContactOverride()
	require.NotNil(t, override)
	assert.Equal(t, "+33 1 23 45 67 89", override.Phone)

	override.Phone = "changed"
	assert.Equal(t, "+33 1 23 45 67 89", cfg.Contact.Phone, "override is a copy")
}

func TestSearchPaths(t *testing.T) {
	t.Parallel()

	paths := SearchPaths("resumekit")
	require.GreaterOrEqual(t, len(paths), 2)
	assert.Equal(t, []string{"resumekit.yaml", "resumekit.yml"}, paths[:2])
	for _, p := range paths[2:] {
		assert.Contains(t, p, filepath.Join(appDir, "resumekit"))
	}
}
