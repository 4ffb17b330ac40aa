package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: resumekit <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  score      Score a resume for ATS compatibility")
	fmt.Fprintln(w, "  render     Render a resume to HTML")
	fmt.Fprintln(w, "  export     Export resumes to PDF or DOCX")
	fmt.Fprintln(w, "  templates  List available templates")
	fmt.Fprintln(w, "  doctor     Check the PDF export environment")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'resumekit help <command>' for details on a specific command.")
}

// printScoreUsage prints usage for the score command.
func printScoreUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: resumekit score <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Score a markdown resume against the ATS rubric.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Resume file, or - for stdin")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --json                Print the report as JSON")
	fmt.Fprintln(w, "      --yaml                Print the report as YAML")
}

// printStyleUsage prints flags shared by render and export.
func printStyleUsage(w io.Writer) {
	fmt.Fprintln(w, "Template:")
	fmt.Fprintln(w, "  -t, --template <id>       Template id (default: minimalist-clean)")
	fmt.Fprintln(w, "      --one-page            Compact one-page preset")
	fmt.Fprintln(w, "      --two-column          Two-column section grid")
	fmt.Fprintln(w, "      --bold-sections       Bold section titles")
	fmt.Fprintln(w, "      --font-size <s>       Font preset: small, medium, large")
	fmt.Fprintln(w, "      --spacing <s>         Spacing preset: compact, normal, loose")
	fmt.Fprintln(w, "      --header-color <c>    Header color: #rgb, #rrggbb, rgb(), name")
	fmt.Fprintln(w, "      --accent-color <c>    Accent color: #rgb, #rrggbb, rgb(), name")
	fmt.Fprintln(w, "      --css <path>          CSS file applied after the template")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory overriding the built-in skins")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Contact (overrides what is found in the resume):")
	fmt.Fprintln(w, "      --name <s>            Full name")
	fmt.Fprintln(w, "      --email <s>           Email address")
	fmt.Fprintln(w, "      --phone <s>           Phone number")
	fmt.Fprintln(w, "      --location <s>        Location")
	fmt.Fprintln(w, "      --linkedin <url>      LinkedIn URL")
	fmt.Fprintln(w, "      --portfolio <url>     Portfolio URL")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs and timing")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: resumekit render <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render a markdown resume to a self-contained HTML document.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Resume file, or - for stdin")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output HTML file (default: stdout)")
	fmt.Fprintln(w)
	printStyleUsage(w)
}

// printExportUsage prints usage for the export command.
func printExportUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: resumekit export <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Export markdown resumes to PDF or DOCX.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Resume file or directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory")
	fmt.Fprintln(w, "  -f, --format <s>          Output format: pdf, docx (default: pdf)")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel exports (0 = auto)")
	fmt.Fprintln(w, "      --html                Keep the rendered HTML next to each PDF")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "PDF Backends:")
	fmt.Fprintln(w, "      --backends <list>     Chain, tried in order (default:")
	fmt.Fprintln(w, "                            rod,chromedp,markup-basic,markup-basic-bytes,plain-text)")
	fmt.Fprintln(w, "      --timeout <d>         Browser render timeout (default: 30s)")
	fmt.Fprintln(w, "      --browser-bin <path>  Chrome/Chromium binary")
	fmt.Fprintln(w, "      --no-sandbox          Disable the Chrome sandbox (containers)")
	fmt.Fprintln(w)
	printStyleUsage(w)
}

// printTemplatesUsage prints usage for the templates command.
func printTemplatesUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: resumekit templates [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List the template catalogue.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case cmdScore:
		printScoreUsage(env.Stdout)
	case cmdRender:
		printRenderUsage(env.Stdout)
	case cmdExport:
		printExportUsage(env.Stdout)
	case cmdTemplates:
		printTemplatesUsage(env.Stdout)
	case cmdDoctor:
		fmt.Fprintln(env.Stdout, "Usage: resumekit doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check which PDF backends can run on this machine.")
	case cmdVersion:
		fmt.Fprintln(env.Stdout, "Usage: resumekit version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case cmdHelp:
		fmt.Fprintln(env.Stdout, "Usage: resumekit help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
