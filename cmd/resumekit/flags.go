package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// styleFlags holds template selection and customization flags.
type styleFlags struct {
	template     string
	onePage      bool
	twoColumn    bool
	boldSections bool
	fontSize     string
	spacing      string
	headerColor  string
	accentColor  string
	css          string // path to a CSS file appended after the skin
}

// contactFlags override contact details found in the resume.
type contactFlags struct {
	name      string
	email     string
	phone     string
	location  string
	linkedin  string
	portfolio string
}

// scoreFlags holds flags for the score command.
type scoreFlags struct {
	json bool
	yaml bool
}

// renderFlags holds flags for the render command.
type renderFlags struct {
	common    commonFlags
	style     styleFlags
	contact   contactFlags
	output    string
	assetPath string
}

// exportFlags holds flags for the export command.
type exportFlags struct {
	common     commonFlags
	style      styleFlags
	contact    contactFlags
	output     string
	format     string
	workers    int
	timeout    string
	backends   []string
	browserBin string
	noSandbox  bool
	html       bool
	assetPath  string
}

// templatesFlags holds flags for the templates command.
type templatesFlags struct {
	json bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs and timing")
}

// addStyleFlags adds template and customization flags to a FlagSet.
func addStyleFlags(fs *flag.FlagSet, f *styleFlags) {
	fs.StringVarP(&f.template, "template", "t", "", "template id (see 'resumekit templates')")
	fs.BoolVar(&f.onePage, "one-page", false, "use the compact one-page preset")
	fs.BoolVar(&f.twoColumn, "two-column", false, "lay sections out in two columns")
	fs.BoolVar(&f.boldSections, "bold-sections", false, "bold section titles")
	fs.StringVar(&f.fontSize, "font-size", "", "font preset: small, medium, large")
	fs.StringVar(&f.spacing, "spacing", "", "spacing preset: compact, normal, loose")
	fs.StringVar(&f.headerColor, "header-color", "", "header color (#rgb, #rrggbb, rgb() or name)")
	fs.StringVar(&f.accentColor, "accent-color", "", "accent color (#rgb, #rrggbb, rgb() or name)")
	fs.StringVar(&f.css, "css", "", "CSS file applied after the template styles")
}

// addContactFlags adds contact override flags to a FlagSet.
func addContactFlags(fs *flag.FlagSet, f *contactFlags) {
	fs.StringVar(&f.name, "name", "", "full name")
	fs.StringVar(&f.email, "email", "", "email address")
	fs.StringVar(&f.phone, "phone", "", "phone number")
	fs.StringVar(&f.location, "location", "", "location")
	fs.StringVar(&f.linkedin, "linkedin", "", "LinkedIn URL")
	fs.StringVar(&f.portfolio, "portfolio", "", "portfolio URL")
}

// newFlagSet creates a FlagSet whose usage goes to w.
func newFlagSet(name string, w io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	fs.Usage = func() { usage(w) }
	return fs
}

// parseScoreFlags parses score command flags and returns positional args.
func parseScoreFlags(args []string, w io.Writer) (*scoreFlags, []string, error) {
	fs := newFlagSet("score", w, printScoreUsage)
	f := &scoreFlags{}

	fs.BoolVar(&f.json, "json", false, "print the report as JSON")
	fs.BoolVar(&f.yaml, "yaml", false, "print the report as YAML")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string, w io.Writer) (*renderFlags, []string, error) {
	fs := newFlagSet("render", w, printRenderUsage)
	f := &renderFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output HTML file (default: stdout)")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory overriding the built-in skins")
	addCommonFlags(fs, &f.common)
	addStyleFlags(fs, &f.style)
	addContactFlags(fs, &f.contact)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseExportFlags parses export command flags and returns positional args.
func parseExportFlags(args []string, w io.Writer) (*exportFlags, []string, error) {
	fs := newFlagSet("export", w, printExportUsage)
	f := &exportFlags{}

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.StringVarP(&f.format, "format", "f", formatPDF, "output format: pdf, docx")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel exports (0 = auto)")
	fs.StringVar(&f.timeout, "timeout", "", "browser render timeout (e.g., 30s, 2m)")
	fs.BoolVar(&f.html, "html", false, "keep the rendered HTML next to each PDF")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory overriding the built-in skins")

	// Browser flags
	fs.StringSliceVar(&f.backends, "backends", nil, "PDF chain, comma-separated")
	fs.StringVar(&f.browserBin, "browser-bin", "", "Chrome/Chromium binary")
	fs.BoolVar(&f.noSandbox, "no-sandbox", false, "disable the Chrome sandbox")

	addCommonFlags(fs, &f.common)
	addStyleFlags(fs, &f.style)
	addContactFlags(fs, &f.contact)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseTemplatesFlags parses templates command flags.
func parseTemplatesFlags(args []string, w io.Writer) (*templatesFlags, []string, error) {
	fs := newFlagSet("templates", w, printTemplatesUsage)
	f := &templatesFlags{}

	fs.BoolVar(&f.json, "json", false, "print the catalogue as JSON")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
