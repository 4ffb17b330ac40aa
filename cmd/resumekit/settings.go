package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/alnah/go-resumekit/internal/assets"
	"github.com/alnah/go-resumekit/internal/config"
	"github.com/alnah/go-resumekit/internal/fileutil"
	"github.com/alnah/go-resumekit/internal/hints"
	"github.com/alnah/go-resumekit/internal/logger"
	"github.com/alnah/go-resumekit/internal/templates"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrTooManyArgs        = errors.New("too many arguments")
	ErrReadInput          = errors.New("failed to read resume")
	ErrReadCSS            = errors.New("failed to read CSS file")
	ErrWriteOutput        = errors.New("failed to write output file")
	ErrInvalidExtension   = errors.New("resume must have a .md, .markdown or .txt extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrInvalidTimeout     = errors.New("invalid timeout")
	ErrInvalidFormat      = errors.New("invalid output format")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// stdinArg reads the resume from standard input.
const stdinArg = "-"

// inputExtensions are the resume file extensions accepted.
var inputExtensions = []string{".md", ".markdown", ".txt"}

// loadSettings resolves configuration in order: config file (flag, then
// RESUMEKIT_CONFIG, else env.Config), then RESUMEKIT_* overrides. Flags are
// merged by each command afterwards.
func loadSettings(common commonFlags, env *Environment) (*config.Config, error) {
	envCfg := loadEnvConfig()

	name := common.config
	if name == "" {
		name = envCfg.ConfigPath
	}

	var cfg *config.Config
	switch {
	case name != "":
		loaded, err := config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
				return nil, fmt.Errorf("%w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, err
		}
		cfg = loaded
	case env.Config != nil:
		copied := *env.Config
		cfg = &copied
	default:
		cfg = config.DefaultConfig()
	}

	applyEnvConfig(envCfg, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the command logger. --verbose forces debug level.
func newLogger(cfg logger.Config, verbose bool, w io.Writer) zerolog.Logger {
	if verbose {
		cfg.Level = zerolog.DebugLevel.String()
	}
	return logger.New(cfg, w)
}

// resolveAssetLoader returns env's loader, or a resolver over path when a
// custom skin directory is configured.
func resolveAssetLoader(path string, env *Environment) (assets.AssetLoader, error) {
	if path == "" {
		if env.AssetLoader != nil {
			return env.AssetLoader, nil
		}
		return assets.NewEmbeddedLoader(), nil
	}
	resolver, err := assets.NewAssetResolver(path)
	if err != nil {
		return nil, err
	}
	return resolver, nil
}

// mergeStyleFlags applies template and customization flags onto cfg.
// Only flags that were given override the config.
func mergeStyleFlags(f styleFlags, cfg *config.Config) error {
	if f.template != "" {
		cfg.Template = f.template
	}
	if f.onePage {
		cfg.OnePage = true
	}

	c := &cfg.Customization
	if f.twoColumn {
		c.TwoColumn = true
	}
	if f.boldSections {
		c.BoldSections = true
	}
	if f.fontSize != "" {
		c.FontSize = templates.FontSize(f.fontSize)
	}
	if f.spacing != "" {
		c.Spacing = templates.Spacing(f.spacing)
	}
	if f.headerColor != "" {
		c.HeaderColor = f.headerColor
	}
	if f.accentColor != "" {
		c.AccentColor = f.accentColor
	}
	if f.css != "" {
		css, err := os.ReadFile(f.css) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("%w: %v", ErrReadCSS, err)
		}
		c.CustomCSS = string(css)
	}
	return nil
}

// mergeContactFlags applies contact flags onto cfg's contact override.
func mergeContactFlags(f contactFlags, cfg *config.Config) {
	overrides := []struct {
		value string
		dest  *string
	}{
		{f.name, &cfg.Contact.Name},
		{f.email, &cfg.Contact.Email},
		{f.phone, &cfg.Contact.Phone},
		{f.location, &cfg.Contact.Location},
		{f.linkedin, &cfg.Contact.LinkedIn},
		{f.portfolio, &cfg.Contact.Portfolio},
	}
	for _, o := range overrides {
		if o.value != "" {
			*o.dest = o.value
		}
	}
}

// warnUnknownTemplate tells the user an unknown id falls back to the default.
func warnUnknownTemplate(id string, w io.Writer) {
	if id == "" || templates.Known(id) {
		return
	}
	fmt.Fprintf(w, "warning: unknown template %q, using %s%s\n",
		id, templates.DefaultTemplateID, hints.ForTemplateNotFound(templates.IDs()))
}

// customization returns the configured customization, nil when unset so the
// template defaults apply.
func customization(cfg *config.Config) *templates.Customization {
	if cfg.Customization == (templates.Customization{}) {
		return nil
	}
	c := cfg.Customization
	return &c
}

// readInput reads a resume from a path, or from stdin for "-".
func readInput(path string, env *Environment) (string, error) {
	if path == stdinArg {
		data, err := io.ReadAll(env.Stdin)
		if err != nil {
			return "", fmt.Errorf("%w: stdin: %v", ErrReadInput, err)
		}
		return string(data), nil
	}
	if err := validateInputExtension(path); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	return string(data), nil
}

// singleInput returns the only positional argument.
func singleInput(args []string) (string, error) {
	switch len(args) {
	case 0:
		return "", ErrNoInput
	case 1:
		return args[0], nil
	default:
		return "", fmt.Errorf("%w: expected one input, got %d", ErrTooManyArgs, len(args))
	}
}

// hasInputExtension reports whether path has a resume file extension.
func hasInputExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range inputExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// validateInputExtension checks that the file has a resume extension.
func validateInputExtension(path string) error {
	if !hasInputExtension(path) {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}

// resolveTimeout returns the flag value when given, else the configured
// value (which already includes RESUMEKIT_TIMEOUT), else zero for the
// library default.
func resolveTimeout(flagValue string, configured time.Duration) (time.Duration, error) {
	if flagValue == "" {
		return configured, nil
	}
	d, err := time.ParseDuration(flagValue)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidTimeout, flagValue, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %q must be positive", ErrInvalidTimeout, flagValue)
	}
	return d, nil
}
