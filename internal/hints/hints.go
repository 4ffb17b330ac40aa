// Package hints appends short remedies to error messages. Every hint renders
// on its own indented line: "\n  hint: <text>".
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-resumekit/internal/fileutil"
)

// Browser settings a hint may point to.
const (
	EnvBrowserBin = "RESUMEKIT_BROWSER_BIN"
	EnvNoSandbox  = "RESUMEKIT_NO_SANDBOX"
)

const prefix = "\n  hint: "

// ciMarkers are set by common CI runners.
var ciMarkers = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}

// IsInContainer reports whether the process runs in a Docker container.
// Tests replace it.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// InCI reports whether a CI runner marker is set.
func InCI() bool {
	for _, name := range ciMarkers {
		if os.Getenv(name) != "" {
			return true
		}
	}
	return false
}

// ForBrowserConnect suggests disabling the sandbox where Chrome usually
// needs it off, and pointing at an installed Chrome when none is set.
func ForBrowserConnect() string {
	var tips []string
	if os.Getenv(EnvNoSandbox) != "1" && (InCI() || IsInContainer()) {
		tips = append(tips, "set "+EnvNoSandbox+"=1 for Docker/CI")
	}
	if os.Getenv(EnvBrowserBin) == "" {
		tips = append(tips, "set "+EnvBrowserBin+" to use an installed Chrome")
	}
	return join(tips)
}

func ForTimeout() string {
	return render("use --timeout to give the browser more time")
}

// ForConfigNotFound points at --config, and at the user config file when
// it was one of the places searched.
func ForConfigNotFound(searched []string) string {
	tip := "use --config /path/to/file.yaml"
	for _, p := range searched {
		if strings.Contains(p, ".config/go-resumekit") {
			return render(tip + " or create " + p)
		}
	}
	return render(tip)
}

func ForOutputDirectory() string {
	return render("check parent directory exists and is writable")
}

// ForTemplateNotFound lists the template ids that do exist.
func ForTemplateNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return render("available: " + strings.Join(available, ", "))
}

func render(tip string) string {
	if tip == "" {
		return ""
	}
	return prefix + tip
}

func join(tips []string) string {
	return render(strings.Join(tips, "; "))
}
