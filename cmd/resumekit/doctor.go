package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"slices"
	"strings"

	"github.com/go-rod/rod/lib/launcher"

	"github.com/alnah/go-resumekit"
	"github.com/alnah/go-resumekit/internal/hints"
)

// envContainer forces container detection.
const envContainer = "RESUMEKIT_CONTAINER"

const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult is the doctor report, also its --json shape.
type doctorResult struct {
	Status   string     `json:"status"`
	Chrome   chromeInfo `json:"chrome"`
	Export   exportInfo `json:"export"`
	Env      envInfo    `json:"environment"`
	System   systemInfo `json:"system"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

type chromeInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

// exportInfo is the PDF chain export would try. Fallback is set when some
// backend in it needs no browser.
type exportInfo struct {
	Backends []string `json:"backends"`
	Fallback bool     `json:"fallback"`
}

type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"no_sandbox"`
	BrowserBin    string `json:"browser_bin"`
}

type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

func (r *doctorResult) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *doctorResult) fail(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// browserBackends need Chrome; the rest of the chain is pure Go.
var browserBackends = []string{resumekit.BackendRod, resumekit.BackendChromedp}

// runDoctorCmd reports whether export can run here. It exits non-zero only
// when errors were found; warnings still count as ready.
func runDoctorCmd(args []string, env *Environment) int {
	result := runDoctor(doctorBackends(env))

	if slices.Contains(args, "--json") {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// doctorBackends resolves the chain the way export does, without flags.
func doctorBackends(env *Environment) []string {
	if b := loadEnvConfig().Backends; len(b) > 0 {
		return b
	}
	if env.Config != nil && len(env.Config.Export.Backends) > 0 {
		return env.Config.Export.Backends
	}
	return resumekit.DefaultBackends()
}

func runDoctor(backends []string) *doctorResult {
	r := &doctorResult{
		Export: exportInfo{
			Backends: backends,
			Fallback: slices.ContainsFunc(backends, func(b string) bool {
				return !slices.Contains(browserBackends, b)
			}),
		},
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  os.Getenv(hints.EnvNoSandbox),
			BrowserBin: os.Getenv(hints.EnvBrowserBin),
		},
	}

	for _, check := range []func(*doctorResult){checkChrome, checkEnvironment, checkSystem} {
		check(r)
	}

	switch {
	case len(r.Errors) > 0:
		r.Status = statusErrors
	case len(r.Warnings) > 0:
		r.Status = statusWarnings
	default:
		r.Status = statusReady
	}
	return r
}

// checkChrome looks for a browser. Not finding one only blocks export when
// nothing else in the chain can print.
func checkChrome(r *doctorResult) {
	path := r.Env.BrowserBin
	if path == "" {
		var ok bool
		if path, ok = launcher.LookPath(); !ok {
			chromeMissing(r, "Chrome/Chromium not found. Install Chrome or set "+hints.EnvBrowserBin)
			return
		}
	}
	if _, err := os.Stat(path); err != nil {
		chromeMissing(r, "Chrome not found at "+path)
		return
	}

	r.Chrome = chromeInfo{Found: true, Path: path, Sandbox: r.Env.NoSandbox != "1"}

	// #nosec G204 -- path comes from the user's environment or rod's lookup
	out, err := exec.Command(path, "--version").Output()
	if err != nil {
		r.warn("Could not get Chrome version: %v", err)
		return
	}
	r.Chrome.Version = strings.TrimSpace(string(out))
}

func chromeMissing(r *doctorResult, msg string) {
	if r.Export.Fallback {
		r.warn("%s; PDFs will use the built-in renderer", msg)
		return
	}
	r.fail("%s", msg)
}

// checkEnvironment flags containers and CI runners, where Chrome's sandbox
// usually cannot start.
func checkEnvironment(r *doctorResult) {
	r.Env.Container, r.Env.ContainerHint = isContainer()
	r.Env.CI = hints.InCI()

	if (r.Env.Container || r.Env.CI) && r.Env.NoSandbox != "1" {
		r.warn("Container/CI detected but %s not set. Set %s=1", hints.EnvNoSandbox, hints.EnvNoSandbox)
	}
}

// isContainer returns whether a container signal is present and which one.
// The explicit override is checked first.
func isContainer() (bool, string) {
	switch {
	case os.Getenv(envContainer) == "1":
		return true, envContainer + "=1"
	case hints.IsInContainer():
		return true, "/.dockerenv"
	case os.Getenv("container") != "":
		return true, "container=" + os.Getenv("container")
	case os.Getenv("KUBERNETES_SERVICE_HOST") != "":
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem makes sure exporters can stage files in the temp dir.
func checkSystem(r *doctorResult) {
	f, err := os.CreateTemp("", "resumekit-doctor-*")
	if err != nil {
		r.fail("Temp directory not writable: %s", os.TempDir())
		return
	}
	_ = f.Close()
	_ = os.Remove(f.Name())
	r.System.TempWritable = true
}

func printDoctorResult(w io.Writer, r *doctorResult) {
	section := func(title string, lines ...string) {
		fmt.Fprintln(w, title)
		for _, l := range lines {
			fmt.Fprintln(w, "  "+l)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "resumekit doctor")
	fmt.Fprintln(w)

	section("Chrome/Chromium", chromeLines(r)...)
	section("Export", "[OK] PDF chain: "+strings.Join(r.Export.Backends, " -> "))

	envLines := []string{fmt.Sprintf("[OK] Platform: %s/%s", r.Env.OS, r.Env.Arch)}
	if r.Env.Container {
		envLines = append(envLines, fmt.Sprintf("[OK] Container: detected (%s)", r.Env.ContainerHint))
	}
	if r.Env.CI {
		envLines = append(envLines, "[OK] CI: detected")
	}
	section("Environment", envLines...)

	if r.System.TempWritable {
		section("System", "[OK] Temp directory: writable")
	} else {
		section("System", "[ERROR] Temp directory: not writable")
	}

	if len(r.Warnings) > 0 {
		section("Warnings:", prefixed("[WARN] ", r.Warnings)...)
	}
	if len(r.Errors) > 0 {
		section("Errors:", prefixed("[ERROR] ", r.Errors)...)
	}

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready to export")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}

func chromeLines(r *doctorResult) []string {
	switch {
	case !r.Chrome.Found && r.Export.Fallback:
		return []string{"[WARN] Not found"}
	case !r.Chrome.Found:
		return []string{"[ERROR] Not found"}
	}

	lines := []string{"[OK] Found at " + r.Chrome.Path}
	if r.Chrome.Version != "" {
		lines = append(lines, "[OK] Version: "+r.Chrome.Version)
	}
	if r.Chrome.Sandbox {
		lines = append(lines, "[OK] Sandbox: enabled")
	} else {
		lines = append(lines, fmt.Sprintf("[OK] Sandbox: disabled (%s=1)", hints.EnvNoSandbox))
	}
	return lines
}

func prefixed(prefix string, msgs []string) []string {
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = prefix + m
	}
	return out
}
