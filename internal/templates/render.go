package templates

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"strings"
	"sync"
	texttemplate "text/template"

	"github.com/alnah/go-resumekit/internal/assets"
	"github.com/alnah/go-resumekit/internal/contact"
	"github.com/alnah/go-resumekit/internal/pipeline"
	"github.com/alnah/go-resumekit/internal/sections"
)

// Sentinel errors.
var (
	ErrSkinLoad    = errors.New("failed to load skin")
	ErrSkinParse   = errors.New("failed to parse skin")
	ErrSkinExecute = errors.New("failed to execute skin")
)

// PlaceholderName is shown when no name could be found.
const PlaceholderName = "Your Name"

// Options controls one rendering.
type Options struct {
	TemplateID    string
	Contact       *contact.Info  // overrides extraction when non-nil
	Customization *Customization // nil means template defaults
	OnePage       bool
}

// Layout describes how parsed content maps onto a skin.
type Layout struct {
	Skin         string                 // asset name of the skin
	Bullets      pipeline.ListDecorator // optional list item decoration
	ShowLinkedIn bool                   // add a LinkedIn entry to the contact line
}

// layouts is read-only after init.
var layouts = map[LayoutKind]Layout{
	LayoutTech:       {Skin: assets.SkinTech, Bullets: pipeline.GlyphBullets{Glyph: "→"}},
	LayoutClassic:    {Skin: assets.SkinClassic, ShowLinkedIn: true},
	LayoutMinimalist: {Skin: assets.SkinMinimalist},
}

// LayoutFor returns the layout registered for kind, falling back to minimalist.
func LayoutFor(kind LayoutKind) Layout {
	if l, ok := layouts[kind]; ok {
		return l
	}
	return layouts[LayoutMinimalist]
}

// sectionView is one rendered section.
type sectionView struct {
	Title string
	Body  htmltemplate.HTML
}

// documentView is the data passed to a skin's document template.
type documentView struct {
	Title     string
	Style     htmltemplate.CSS
	Name      string
	Contact   []string
	LinkedIn  string
	TwoColumn bool
	Sections  []sectionView
}

// compiledSkin holds parsed templates for one skin.
type compiledSkin struct {
	style  *texttemplate.Template
	markup *htmltemplate.Template
}

var skinFuncs = htmltemplate.FuncMap{"upper": strings.ToUpper}

// Renderer turns resume text into HTML documents. It is safe for concurrent use.
type Renderer struct {
	loader       assets.AssetLoader
	preprocessor pipeline.Preprocessor
	converter    pipeline.Converter
	styler       pipeline.StyleInjector

	mu    sync.Mutex
	skins map[string]*compiledSkin
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithAssetLoader sets the loader skins are read from.
func WithAssetLoader(l assets.AssetLoader) RendererOption {
	return func(r *Renderer) {
		if l != nil {
			r.loader = l
		}
	}
}

// WithConverter replaces the markdown converter.
func WithConverter(c pipeline.Converter) RendererOption {
	return func(r *Renderer) {
		if c != nil {
			r.converter = c
		}
	}
}

// NewRenderer creates a Renderer using the embedded skins by default.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{
		loader:       assets.NewEmbeddedLoader(),
		preprocessor: &pipeline.ResumePreprocessor{},
		converter:    pipeline.NewConverter(),
		styler:       pipeline.StyleTag{},
		skins:        make(map[string]*compiledSkin),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var defaultRenderer = NewRenderer()

// Render renders text with the embedded skins.
func Render(text string, opts Options) (string, error) {
	return defaultRenderer.Render(context.Background(), text, opts)
}

// Render produces a complete HTML5 document for text.
// Sections appear in the order they were parsed.
func (r *Renderer) Render(ctx context.Context, text string, opts Options) (string, error) {
	desc := Lookup(opts.TemplateID)
	layout := LayoutFor(desc.Layout)
	style := ResolveStyle(desc, opts.Customization, opts.OnePage)
	info := contact.Extract(text, opts.Contact)

	skin, err := r.skin(layout.Skin)
	if err != nil {
		return "", err
	}

	var css bytes.Buffer
	if err := skin.style.Execute(&css, style); err != nil {
		return "", fmt.Errorf("%w: %s stylesheet: %v", ErrSkinExecute, layout.Skin, err)
	}

	body, err := r.renderSections(ctx, sections.Parse(text), layout)
	if err != nil {
		return "", err
	}

	name := info.DisplayName(PlaceholderName)
	view := documentView{
		Title:     name,
		Style:     htmltemplate.CSS(css.String()), // #nosec G203 -- produced from validated style values
		Name:      name,
		Contact:   info.Parts(),
		TwoColumn: style.TwoColumn,
		Sections:  body,
	}
	if layout.ShowLinkedIn {
		view.LinkedIn = stripScheme(info.LinkedIn)
	}

	var doc bytes.Buffer
	if err := skin.markup.Execute(&doc, view); err != nil {
		return "", fmt.Errorf("%w: %s document: %v", ErrSkinExecute, layout.Skin, err)
	}

	out := doc.String()
	if opts.Customization != nil && opts.Customization.CustomCSS != "" {
		out = r.styler.InjectStyle(ctx, out, opts.Customization.CustomCSS)
	}
	return out, ctx.Err()
}

func (r *Renderer) renderSections(ctx context.Context, secs []sections.Section, layout Layout) ([]sectionView, error) {
	views := make([]sectionView, 0, len(secs))
	for _, s := range secs {
		md := r.preprocessor.Preprocess(ctx, s.Markdown())
		fragment, err := r.converter.Fragment(ctx, md)
		if err != nil {
			return nil, fmt.Errorf("section %q: %w", s.Title, err)
		}
		if layout.Bullets != nil {
			fragment = layout.Bullets.DecorateListItems(fragment)
		}
		views = append(views, sectionView{
			Title: s.Title,
			Body:  htmltemplate.HTML(fragment), // #nosec G203 -- goldmark output without raw HTML
		})
	}
	return views, nil
}

// skin returns the compiled skin, loading and parsing it on first use.
func (r *Renderer) skin(name string) (*compiledSkin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.skins[name]; ok {
		return s, nil
	}

	raw, err := assets.LoadSkin(r.loader, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSkinLoad, err)
	}

	style, err := texttemplate.New(name + ".css").Option("missingkey=error").Parse(raw.Style)
	if err != nil {
		return nil, fmt.Errorf("%w: %s stylesheet: %v", ErrSkinParse, name, err)
	}
	markup, err := htmltemplate.New(name + ".html").Funcs(skinFuncs).Parse(raw.Markup)
	if err != nil {
		return nil, fmt.Errorf("%w: %s document: %v", ErrSkinParse, name, err)
	}

	s := &compiledSkin{style: style, markup: markup}
	r.skins[name] = s
	return s, nil
}

func stripScheme(url string) string {
	url = strings.TrimPrefix(url, "https://")
	return strings.TrimPrefix(url, "http://")
}
