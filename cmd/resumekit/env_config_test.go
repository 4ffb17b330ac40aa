package main

// Notes:
// - loadEnvConfig: every variable, plus malformed numbers and durations
//   which are ignored rather than reported.
// - applyEnvConfig: env values override the file, unset ones leave it alone.
// - Tests use t.Setenv() which prevents t.Parallel().

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/alnah/go-resumekit/internal/config"
)

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - Environment variable loading
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Run("all variables", func(t *testing.T) {
		t.Setenv("RESUMEKIT_CONFIG", "/path/to/config.yaml")
		t.Setenv("RESUMEKIT_TEMPLATE", "tech-focused")
		t.Setenv("RESUMEKIT_TIMEOUT", "2m")
		t.Setenv("RESUMEKIT_OUTPUT_DIR", "/out")
		t.Setenv("RESUMEKIT_ASSET_PATH", "/skins")
		t.Setenv("RESUMEKIT_BACKENDS", "markup-basic, plain-text,")
		t.Setenv("RESUMEKIT_WORKERS", "4")
		t.Setenv("RESUMEKIT_LOG_LEVEL", "debug")
		t.Setenv("RESUMEKIT_LOG_FORMAT", "json")

		cfg := loadEnvConfig()

		assert.Equal(t, "/path/to/config.yaml", cfg.ConfigPath)
		assert.Equal(t, "tech-focused", cfg.Template)
		assert.Equal(t, 2*time.Minute, cfg.Timeout)
		assert.Equal(t, "/out", cfg.OutputDir)
		assert.Equal(t, "/skins", cfg.AssetPath)
		assert.Equal(t, []string{"markup-basic", "plain-text"}, cfg.Backends)
		assert.Equal(t, 4, cfg.Workers)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "json", cfg.LogFormat)
	})

	t.Run("malformed values are ignored", func(t *testing.T) {
		tests := []struct {
			name    string
			timeout string
			workers string
		}{
			{"garbage", "soon", "many"},
			{"negative", "-5s", "-2"},
			{"zero", "0s", "0"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Setenv("RESUMEKIT_TIMEOUT", tt.timeout)
				t.Setenv("RESUMEKIT_WORKERS", tt.workers)

				cfg := loadEnvConfig()

				assert.Zero(t, cfg.Timeout)
				assert.Zero(t, cfg.Workers)
			})
		}
	})
}

// ---------------------------------------------------------------------------
// TestWarnUnknownEnvVars - Typo detection
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Run("unknown variable warns", func(t *testing.T) {
		t.Setenv("RESUMEKIT_TEMPLTE", "modern-executive")

		var buf bytes.Buffer
		warnUnknownEnvVars(&buf)

		assert.Contains(t, buf.String(), "RESUMEKIT_TEMPLTE")
	})

	t.Run("known variables are silent", func(t *testing.T) {
		t.Setenv("RESUMEKIT_TEMPLATE", "modern-executive")
		t.Setenv("RESUMEKIT_NO_SANDBOX", "1")
		t.Setenv("RESUMEKIT_CONTAINER", "1")

		var buf bytes.Buffer
		warnUnknownEnvVars(&buf)

		assert.NotContains(t, buf.String(), "RESUMEKIT_TEMPLATE")
		assert.NotContains(t, buf.String(), "RESUMEKIT_NO_SANDBOX")
		assert.NotContains(t, buf.String(), "RESUMEKIT_CONTAINER")
	})
}

// ---------------------------------------------------------------------------
// TestApplyEnvConfig - Env over file precedence
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	t.Run("env overrides file values", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Template = "professional-classic"
		cfg.Export.Timeout = time.Minute

		applyEnvConfig(&envConfig{
			Template:  "creative-professional",
			Timeout:   5 * time.Second,
			Backends:  []string{"plain-text"},
			Workers:   3,
			LogFormat: "json",
		}, cfg)

		assert.Equal(t, "creative-professional", cfg.Template)
		assert.Equal(t, 5*time.Second, cfg.Export.Timeout)
		assert.Equal(t, []string{"plain-text"}, cfg.Export.Backends)
		assert.Equal(t, 3, cfg.Export.Workers)
		assert.Equal(t, "json", cfg.Log.Format)
	})

	t.Run("unset env keeps file values", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Template = "professional-classic"
		cfg.Export.OutputDir = "/resumes"
		cfg.Assets.BasePath = "/skins"

		applyEnvConfig(&envConfig{}, cfg)

		assert.Equal(t, "professional-classic", cfg.Template)
		assert.Equal(t, "/resumes", cfg.Export.OutputDir)
		assert.Equal(t, "/skins", cfg.Assets.BasePath)
	})
}

// ---------------------------------------------------------------------------
// TestLoadSettings_EnvTemplate - RESUMEKIT_TEMPLATE reaches the commands
// ---------------------------------------------------------------------------

func TestLoadSettings_EnvTemplate(t *testing.T) {
	t.Setenv("RESUMEKIT_TEMPLATE", "tech-focused")

	env, _, _ := testEnv()
	cfg, err := loadSettings(commonFlags{}, env)

	assert.NoError(t, err)
	assert.Equal(t, "tech-focused", cfg.Template)
	assert.NotEqual(t, "tech-focused", env.Config.Template, "env.Config must not be mutated")
}
