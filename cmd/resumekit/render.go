package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alnah/go-resumekit/internal/config"
	"github.com/alnah/go-resumekit/internal/templates"
)

// runRender renders one resume to HTML, on stdout or into --output.
func runRender(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseRenderFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	input, err := singleInput(positional)
	if err != nil {
		return err
	}

	cfg, err := loadSettings(flags.common, env)
	if err != nil {
		return err
	}
	if err := applyFlags(flags.style, flags.contact, cfg); err != nil {
		return err
	}
	if flags.assetPath != "" {
		cfg.Assets.BasePath = flags.assetPath
	}
	log := newLogger(cfg.Log, flags.common.verbose, env.Stderr)

	loader, err := resolveAssetLoader(cfg.Assets.BasePath, env)
	if err != nil {
		return err
	}

	text, err := readInput(input, env)
	if err != nil {
		return err
	}

	warnUnknownTemplate(cfg.Template, env.Stderr)

	start := env.Now()
	renderer := templates.NewRenderer(templates.WithAssetLoader(loader))
	html, err := renderer.Render(ctx, text, templates.Options{
		TemplateID:    cfg.Template,
		Contact:       cfg.ContactOverride(),
		Customization: customization(cfg),
		OnePage:       cfg.OnePage,
	})
	if err != nil {
		return err
	}
	log.Debug().
		Str("template", templates.Lookup(cfg.Template).ID).
		Bool("one_page", cfg.OnePage).
		Dur("took", env.Now().Sub(start)).
		Msg("resume rendered")

	if flags.output == "" {
		_, err := fmt.Fprint(env.Stdout, html)
		return err
	}

	if dir := filepath.Dir(flags.output); dir != "." {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
	}
	// #nosec G306 -- rendered resumes are meant to be readable
	if err := os.WriteFile(flags.output, []byte(html), filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Created %s\n", flags.output)
	}
	return nil
}

// applyFlags merges style and contact flags onto cfg and validates the result.
func applyFlags(style styleFlags, c contactFlags, cfg *config.Config) error {
	if err := mergeStyleFlags(style, cfg); err != nil {
		return err
	}
	mergeContactFlags(c, cfg)
	return cfg.Validate()
}
