package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alnah/go-resumekit"
)

// ---------------------------------------------------------------------------
// TestRunTemplates - Catalogue listing
// ---------------------------------------------------------------------------

func TestRunTemplates(t *testing.T) {
	t.Parallel()

	t.Run("table", func(t *testing.T) {
		t.Parallel()

		env, stdout, _ := testEnv()
		require.NoError(t, runTemplates(nil, env))

		lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
		require.Len(t, lines, len(resumekit.Templates())+1)
		assert.Regexp(t, `^ID\s+NAME\s+CATEGORY\s+LAYOUT$`, lines[0])
		assert.Contains(t, stdout.String(), resumekit.DefaultTemplateID+" (default)")
		assert.Contains(t, stdout.String(), "Tech Focused")
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		env, stdout, _ := testEnv()
		require.NoError(t, runTemplates([]string{"--json"}, env))

		var got []resumekit.TemplateDescriptor
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
		assert.Equal(t, resumekit.Templates(), got)
	})

	t.Run("rejects arguments", func(t *testing.T) {
		t.Parallel()

		env, _, _ := testEnv()
		assert.ErrorIs(t, runTemplates([]string{"extra"}, env), ErrTooManyArgs)
	})
}
