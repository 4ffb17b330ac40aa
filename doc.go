// Package resumekit scores resumes for ATS compatibility and renders them
// through layout templates into HTML, PDF and DOCX.
//
// # Quick Start
//
// Scoring and rendering are pure functions of the resume text:
//
//	report := resumekit.Score(text)
//	fmt.Println(report.Score, report.Grade)
//
//	html, err := resumekit.Render(text, resumekit.RenderOptions{
//	    TemplateID: "tech-focused",
//	})
//
// Exports touch the filesystem and may start a headless browser, so they go
// through an Exporter that must be closed:
//
//	exp, err := resumekit.NewExporter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer exp.Close()
//
//	res, err := exp.ExportPDF(ctx, resumekit.ExportRequest{
//	    Text:  text,
//	    Title: "Jane Doe Resume",
//	})
//	// res.Path is a temp file owned by the caller.
//
// # Input Dialect
//
// Resumes are plain markdown: the first "#" heading is the name, "##" lines
// start sections, "###" lines are subheadings, "-" or "*" start bullets and
// "**Email:** value" style lines carry contact details.
//
// # PDF Fallback Chain
//
// ExportPDF tries its backends in order and keeps the first success:
//
//  1. rod: headless Chrome through go-rod
//  2. chromedp: headless Chrome through the DevTools protocol
//  3. markup-basic: the rendered markup reduced to basic HTML, laid out by fpdf
//  4. markup-basic-bytes: as above with lossy cp1252 transliteration, tried
//     only after an encoding failure
//  5. plain-text: the resume text laid out with fixed styles
//
// Use WithBackends to change or shorten the chain. When every backend fails,
// the error wraps ErrExportFailed and each backend's error.
//
// # Parallel Processing
//
// For batch exports, use ExporterPool to bound the number of browsers:
//
//	pool, err := resumekit.NewExporterPool(resumekit.ResolvePoolSize(0))
//	defer pool.Close()
//
//	exp, err := pool.Acquire()
//	defer pool.Release(exp)
//
// # Browser Requirements
//
// The browser backends need Chrome or Chromium. go-rod downloads a managed
// Chromium on first run. Set RESUMEKIT_BROWSER_BIN to use a specific binary
// and RESUMEKIT_NO_SANDBOX=1 in containers.
package resumekit
