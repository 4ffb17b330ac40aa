// Package config loads and validates resumekit settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/alnah/go-resumekit/internal/contact"
	"github.com/alnah/go-resumekit/internal/fileutil"
	"github.com/alnah/go-resumekit/internal/logger"
	"github.com/alnah/go-resumekit/internal/templates"
	"github.com/alnah/go-resumekit/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidConfig   = errors.New("invalid config")
)

// Field length limits.
const (
	MaxNameLength     = 100  // Full name (generous)
	MaxEmailLength    = 254  // RFC 5321
	MaxPhoneLength    = 40   // "+1 (555) 123-4567 ext. 1234"
	MaxLocationLength = 200  // "San Francisco, California, United States"
	MaxURLLength      = 2048 // Browser limit
	MaxPathLength     = 4096 // PATH_MAX
)

// MaxWorkers bounds the batch export pool.
const MaxWorkers = 32

// appDir is the directory searched under the user config dir.
const appDir = "go-resumekit"

// Config holds everything the CLI needs to render and export resumes.
type Config struct {
	Template      string                  `yaml:"template" validate:"max=64"`
	OnePage       bool                    `yaml:"onePage"`
	Customization templates.Customization `yaml:"customization"`
	Contact       contact.Info            `yaml:"contact"`
	Export        ExportConfig            `yaml:"export"`
	Assets        AssetsConfig            `yaml:"assets"`
	Log           logger.Config           `yaml:"log"`
}

// ExportConfig defines the export chain and its browser.
type ExportConfig struct {
	OutputDir  string        `yaml:"outputDir"`                                                                             // Empty = next to the source
	Timeout    time.Duration `yaml:"timeout" validate:"gte=0"`                                                              // Per browser render (default: 30s)
	Backends   []string      `yaml:"backends" validate:"dive,oneof=rod chromedp markup-basic markup-basic-bytes plain-text"` // Empty = default chain
	BrowserBin string        `yaml:"browserBin"`                                                                            // Empty = RESUMEKIT_BROWSER_BIN or rod download
	NoSandbox  bool          `yaml:"noSandbox"`
	DebugHTML  bool          `yaml:"debugHTML"` // Keep the intermediate markup
	Workers    int           `yaml:"workers" validate:"gte=0"`
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded skins
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks enum values and field lengths. Called by LoadConfig, and
// available to callers building a Config by hand.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: %s fails %q (got %v)", ErrInvalidConfig, fe.Namespace(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"contact.name", c.Contact.Name, MaxNameLength},
		{"contact.email", c.Contact.Email, MaxEmailLength},
		{"contact.phone", c.Contact.Phone, MaxPhoneLength},
		{"contact.location", c.Contact.Location, MaxLocationLength},
		{"contact.linkedin", c.Contact.LinkedIn, MaxURLLength},
		{"contact.portfolio", c.Contact.Portfolio, MaxURLLength},
		{"export.outputDir", c.Export.OutputDir, MaxPathLength},
		{"export.browserBin", c.Export.BrowserBin, MaxPathLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if c.Export.Workers > MaxWorkers {
		return fmt.Errorf("%w: export.workers must be at most %d, got %d", ErrInvalidConfig, MaxWorkers, c.Export.Workers)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// ContactOverride returns the configured contact, or nil when none is set so
// extraction from the resume text applies.
func (c *Config) ContactOverride() *contact.Info {
	if c.Contact.IsZero() {
		return nil
	}
	info := c.Contact
	return &info
}

// DefaultConfig returns the default template, the default export chain and
// warn-level JSON logs.
func DefaultConfig() *Config {
	return &Config{
		Template: templates.DefaultTemplateID,
		Log:      logger.Config{Level: "warn", Format: logger.FormatJSON},
	}
}

// LoadConfig loads configuration from a file path or config name.
// A value containing a path separator is read as is; a bare name is searched
// in the current directory, then in the user config directory.
// Fields absent from the file keep their defaults.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	cfg := DefaultConfig()
	if err := yamlutil.DecodeFile(configPath, cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SearchPaths lists where a config name is looked up, in order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, appDir, name+ext))
		}
	}
	return paths
}

func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
