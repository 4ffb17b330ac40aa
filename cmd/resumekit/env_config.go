package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-resumekit/internal/config"
	"github.com/alnah/go-resumekit/internal/hints"
)

// envPrefix marks the variables this CLI reads.
const envPrefix = "RESUMEKIT_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	// Tier 1 - Essential
	ConfigPath string        // RESUMEKIT_CONFIG: config file name or path
	Template   string        // RESUMEKIT_TEMPLATE: template id
	Timeout    time.Duration // RESUMEKIT_TIMEOUT: browser render timeout

	// Tier 2 - I/O
	OutputDir string   // RESUMEKIT_OUTPUT_DIR: default output directory
	AssetPath string   // RESUMEKIT_ASSET_PATH: custom skin directory
	Backends  []string // RESUMEKIT_BACKENDS: comma-separated PDF chain
	Workers   int      // RESUMEKIT_WORKERS: parallel exports

	// Tier 3 - Logging
	LogLevel  string // RESUMEKIT_LOG_LEVEL: trace, debug, info, warn, error
	LogFormat string // RESUMEKIT_LOG_FORMAT: json or pretty
}

// knownEnvVars lists valid RESUMEKIT_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	// Tier 1 - Essential
	"RESUMEKIT_CONFIG":   true,
	"RESUMEKIT_TEMPLATE": true,
	"RESUMEKIT_TIMEOUT":  true,
	// Tier 2 - I/O
	"RESUMEKIT_OUTPUT_DIR": true,
	"RESUMEKIT_ASSET_PATH": true,
	"RESUMEKIT_BACKENDS":   true,
	"RESUMEKIT_WORKERS":    true,
	// Tier 3 - Logging
	"RESUMEKIT_LOG_LEVEL":  true,
	"RESUMEKIT_LOG_FORMAT": true,
	// Read by the browser backends and doctor
	hints.EnvBrowserBin: true,
	hints.EnvNoSandbox:  true,
	envContainer:        true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numbers and durations are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("RESUMEKIT_CONFIG"),
		Template:   os.Getenv("RESUMEKIT_TEMPLATE"),
		OutputDir:  os.Getenv("RESUMEKIT_OUTPUT_DIR"),
		AssetPath:  os.Getenv("RESUMEKIT_ASSET_PATH"),
		LogLevel:   os.Getenv("RESUMEKIT_LOG_LEVEL"),
		LogFormat:  os.Getenv("RESUMEKIT_LOG_FORMAT"),
	}

	if timeout := os.Getenv("RESUMEKIT_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := os.Getenv("RESUMEKIT_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	if backends := os.Getenv("RESUMEKIT_BACKENDS"); backends != "" {
		for _, b := range strings.Split(backends, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.Backends = append(cfg.Backends, b)
			}
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized RESUMEKIT_* variables.
// Helps catch typos like RESUMEKIT_TEMPLTE.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig overrides config file values with the environment values
// that are set. CLI flags are merged afterwards, giving:
// flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Template != "" {
		cfg.Template = env.Template
	}
	if env.Timeout > 0 {
		cfg.Export.Timeout = env.Timeout
	}

	if env.OutputDir != "" {
		cfg.Export.OutputDir = env.OutputDir
	}
	if env.AssetPath != "" {
		cfg.Assets.BasePath = env.AssetPath
	}
	if len(env.Backends) > 0 {
		cfg.Export.Backends = env.Backends
	}
	if env.Workers > 0 {
		cfg.Export.Workers = env.Workers
	}

	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
	if env.LogFormat != "" {
		cfg.Log.Format = env.LogFormat
	}
}
