package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-resumekit"
	"github.com/alnah/go-resumekit/internal/config"
	"github.com/alnah/go-resumekit/internal/hints"
)

// Output formats.
const (
	formatPDF  = "pdf"
	formatDOCX = "docx"
)

// ErrExportBatch reports that some files in a batch failed.
var ErrExportBatch = errors.New("export failed")

// fileToExport is one resume and where its export goes.
type fileToExport struct {
	InputPath  string
	OutputPath string
}

// exportResult holds the outcome of a single export.
type exportResult struct {
	InputPath  string
	OutputPath string
	Strategy   string
	Err        error
	Duration   time.Duration
}

// exportParams is the per-batch state shared by every file.
type exportParams struct {
	cfg    *config.Config
	format string
	html   bool
	now    func() time.Time
}

// runExport exports one resume or a directory of resumes.
func runExport(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseExportFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if err := validateFormat(flags.format); err != nil {
		return err
	}
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	input, err := singleInput(positional)
	if err != nil {
		return err
	}
	if input == stdinArg {
		return fmt.Errorf("%w: export needs a file or directory", ErrNoInput)
	}

	cfg, err := loadSettings(flags.common, env)
	if err != nil {
		return err
	}
	mergeExportFlags(flags, cfg)
	if err := applyFlags(flags.style, flags.contact, cfg); err != nil {
		return err
	}

	timeout, err := resolveTimeout(flags.timeout, cfg.Export.Timeout)
	if err != nil {
		return err
	}

	loader, err := resolveAssetLoader(cfg.Assets.BasePath, env)
	if err != nil {
		return err
	}

	outputDir := flags.output
	if outputDir == "" {
		outputDir = cfg.Export.OutputDir
	}
	files, err := discoverFiles(input, outputDir, flags.format)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no resumes found in %s", ErrNoInput, input)
	}

	warnUnknownTemplate(cfg.Template, env.Stderr)

	log := newLogger(cfg.Log, flags.common.verbose, env.Stderr)
	opts := []resumekit.Option{
		resumekit.WithBackends(cfg.Export.Backends...),
		resumekit.WithBrowser(resumekit.BrowserConfig{
			Bin:       cfg.Export.BrowserBin,
			NoSandbox: cfg.Export.NoSandbox,
			Timeout:   timeout,
		}),
		resumekit.WithLogger(log),
		resumekit.WithDebugHTML(flags.html || cfg.Export.DebugHTML),
		resumekit.WithAssetLoader(loader),
	}

	workers := flags.workers
	if workers == 0 {
		workers = cfg.Export.Workers
	}
	size := min(resumekit.ResolvePoolSize(workers), len(files))
	pool := resumekit.NewExporterPool(size, opts...)
	defer func() {
		if err := pool.Close(); err != nil {
			log.Warn().Err(err).Msg("closing exporters")
		}
	}()

	params := &exportParams{
		cfg:    cfg,
		format: flags.format,
		html:   flags.html || cfg.Export.DebugHTML,
		now:    env.Now,
	}
	results := exportBatch(ctx, pool, files, params)

	failed := printResults(results, flags.common.quiet, flags.common.verbose, env)
	if failed == 0 {
		return nil
	}
	for _, r := range results {
		if r.Err != nil {
			return fmt.Errorf("%w: %d of %d file(s): %w", ErrExportBatch, failed, len(results), r.Err)
		}
	}
	return nil
}

// mergeExportFlags applies browser and chain flags onto cfg.
func mergeExportFlags(f *exportFlags, cfg *config.Config) {
	if len(f.backends) > 0 {
		cfg.Export.Backends = f.backends
	}
	if f.browserBin != "" {
		cfg.Export.BrowserBin = f.browserBin
	}
	if f.noSandbox {
		cfg.Export.NoSandbox = true
	}
	if f.assetPath != "" {
		cfg.Assets.BasePath = f.assetPath
	}
}

// exportBatch exports files concurrently, one pooled exporter per task.
// Results keep the order of files.
func exportBatch(ctx context.Context, pool *resumekit.ExporterPool, files []fileToExport, params *exportParams) []exportResult {
	results := make([]exportResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(pool.Size())

	for i, f := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = exportResult{InputPath: f.InputPath, Err: err}
				return nil
			}
			exp, err := pool.Acquire()
			if err != nil {
				results[i] = exportResult{InputPath: f.InputPath, Err: err}
				return nil
			}
			defer pool.Release(exp)
			results[i] = exportFile(gctx, exp, f, params)
			return nil
		})
	}
	// Tasks record their errors in results and never fail the group.
	_ = g.Wait()
	return results
}

// exportFile exports a single resume and moves it to its output path.
func exportFile(ctx context.Context, exp *resumekit.Exporter, f fileToExport, params *exportParams) exportResult {
	start := params.now()
	result := exportResult{InputPath: f.InputPath, OutputPath: f.OutputPath}
	done := func(err error) exportResult {
		result.Err = err
		result.Duration = params.now().Sub(start)
		return result
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return done(fmt.Errorf("%w: %v", ErrReadInput, err))
	}
	text := string(content)

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		return done(fmt.Errorf("%w: %v%s", ErrWriteOutput, err, hints.ForOutputDirectory()))
	}

	req := resumekit.ExportRequest{
		Text:          text,
		Title:         resumekit.ExtractContact(text, params.cfg.ContactOverride()).Name,
		TemplateID:    params.cfg.Template,
		Contact:       params.cfg.ContactOverride(),
		Customization: customization(params.cfg),
	}

	var res *resumekit.ExportResult
	if params.format == formatDOCX {
		res, err = exp.ExportDOCX(ctx, req)
	} else {
		res, err = exp.ExportPDF(ctx, req)
	}
	if err != nil {
		return done(err)
	}
	result.Strategy = res.Strategy

	if res.DebugHTMLPath != "" {
		if params.html {
			if err := moveFile(res.DebugHTMLPath, htmlOutputPath(f.OutputPath)); err != nil {
				_ = os.Remove(res.Path)
				return done(err)
			}
		} else {
			_ = os.Remove(res.DebugHTMLPath)
		}
	}

	if err := moveFile(res.Path, f.OutputPath); err != nil {
		return done(err)
	}
	return done(nil)
}

// moveFile moves src to dst, copying when they sit on different devices.
// The result is readable by others, like files the CLI writes directly.
func moveFile(src, dst string) error {
	err := os.Rename(src, dst)
	if errors.Is(err, syscall.EXDEV) {
		err = copyFile(src, dst)
		if err == nil {
			_ = os.Remove(src)
		}
	}
	if err != nil {
		_ = os.Remove(src)
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	// #nosec G302 -- exported resumes are meant to be readable
	if err := os.Chmod(dst, filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

func copyFile(src, dst string) (err error) {
	in, err := os.Open(src) // #nosec G304 -- exporter-owned temp file
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermissions) // #nosec G304 -- resolved output path
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	_, err = io.Copy(out, in)
	return err
}

// discoverFiles finds the resumes to export under inputPath.
func discoverFiles(inputPath, outputDir, format string) ([]fileToExport, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if err := validateInputExtension(inputPath); err != nil {
			return nil, err
		}
		outPath := resolveOutputPath(inputPath, outputDir, "", format)
		return []fileToExport{{InputPath: inputPath, OutputPath: outPath}}, nil
	}

	var files []fileToExport
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !hasInputExtension(path) {
			return nil
		}
		outPath := resolveOutputPath(path, outputDir, inputPath, format)
		files = append(files, fileToExport{InputPath: path, OutputPath: outPath})
		return nil
	})

	return files, err
}

// resolveOutputPath determines the output path for a resume. An outputDir
// ending in the format extension names the file directly.
func resolveOutputPath(inputPath, outputDir, baseInputDir, format string) string {
	ext := filepath.Ext(inputPath)
	name := strings.TrimSuffix(filepath.Base(inputPath), ext) + "." + format

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), name)
	}

	if strings.HasSuffix(strings.ToLower(outputDir), "."+format) {
		return outputDir
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			return filepath.Join(outputDir, filepath.Dir(relPath), name)
		}
	}

	return filepath.Join(outputDir, name)
}

// htmlOutputPath returns the HTML path next to an exported file.
func htmlOutputPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".html"
}

// validateFormat checks the --format value.
func validateFormat(format string) error {
	switch format {
	case formatPDF, formatDOCX:
		return nil
	default:
		return fmt.Errorf("%w: %q (want %s or %s)", ErrInvalidFormat, format, formatPDF, formatDOCX)
	}
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > config.MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, config.MaxWorkers)
	}
	return nil
}

// printResults outputs export results and returns the number of failures.
func printResults(results []exportResult, quiet, verbose bool, env *Environment) int {
	var succeeded, failed int

	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}
		succeeded++

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s [%s] (%v)\n", r.InputPath, r.OutputPath, r.Strategy, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", succeeded, failed)
	}

	return failed
}
