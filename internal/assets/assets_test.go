package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSkin(t *testing.T) {
	t.Parallel()

	t.Run("embedded skin", func(t *testing.T) {
		t.Parallel()

		skin, err := LoadSkin(NewEmbeddedLoader(), SkinClassic)
		require.NoError(t, err)
		assert.Equal(t, SkinClassic, skin.Name)
		assert.Contains(t, skin.Style, "Georgia")
		assert.Contains(t, skin.Markup, "LinkedIn:")
	})

	t.Run("unknown skin", func(t *testing.T) {
		t.Parallel()

		_, err := LoadSkin(NewEmbeddedLoader(), "nope")
		assert.ErrorIs(t, err, ErrSkinNotFound)
	})

	t.Run("custom skin missing stylesheet", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeAsset(t, dir, "templates", "bespoke.html", "<html></html>")
		loader, err := NewFilesystemLoader(dir)
		require.NoError(t, err)

		_, err = LoadSkin(loader, "bespoke")
		assert.ErrorIs(t, err, ErrIncompleteSkin)
	})

	t.Run("invalid name", func(t *testing.T) {
		t.Parallel()

		_, err := LoadSkin(NewEmbeddedLoader(), "a/b")
		assert.ErrorIs(t, err, ErrInvalidAssetName)
	})
}

func TestMinimalistSkin(t *testing.T) {
	t.Parallel()

	skin, err := LoadSkin(NewEmbeddedLoader(), SkinMinimalist)
	require.NoError(t, err)
	assert.Contains(t, skin.Style, "letter-spacing: 3px")
	assert.Contains(t, skin.Markup, "section-divider")
}

func TestValidateAssetName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"simple name", "tech", nil},
		{"name with hyphen", "my-skin", nil},
		{"name with underscore", "my_skin", nil},
		{"mixed case with digits", "Skin2", nil},
		{"empty name", "", ErrInvalidAssetName},
		{"forward slash", "path/to/skin", ErrInvalidAssetName},
		{"backslash", `path\to\skin`, ErrInvalidAssetName},
		{"parent traversal", "../secret", ErrInvalidAssetName},
		{"extension", "tech.css", ErrInvalidAssetName},
		{"hidden file", ".env", ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateAssetName(tt.input)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateAssetName_ErrorMessageQuotesName(t *testing.T) {
	t.Parallel()

	err := ValidateAssetName("../evil")
	assert.ErrorContains(t, err, `"../evil"`)
}

func TestPart_Path(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "styles/tech.css", stylePart.path("tech"))
	assert.Equal(t, "templates/tech.html", markupPart.path("tech"))
}
