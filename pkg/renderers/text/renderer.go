package text

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-onboarding/pkg/render"
	rendertemplate "github.com/goliatone/go-onboarding/pkg/render/template"
	"github.com/goliatone/go-onboarding/pkg/render/template/gotemplate"
	"github.com/goliatone/go-onboarding/pkg/steps"
)

const barWidth = 10

// Responder produces the result handed to the continuation once a step has
// been written.
type Responder func(step steps.Validated) any

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateDir      string
	templateRenderer rendertemplate.TemplateRenderer
	out              io.Writer
	responder        Responder
	translator       render.Translator
}

// WithTemplatesFS supplies an alternate template bundle.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from disk, falling back to the embedded
// bundle for any template the directory lacks.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		cfg.templateDir = strings.TrimSpace(path)
	}
}

// WithTemplateRenderer injects a custom template engine.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithOutput sets the destination of rendered steps. Defaults to stdout.
func WithOutput(out io.Writer) Option {
	return func(cfg *config) {
		if out != nil {
			cfg.out = out
		}
	}
}

// WithResponder overrides PreviewResult.
func WithResponder(fn Responder) Option {
	return func(cfg *config) {
		if fn != nil {
			cfg.responder = fn
		}
	}
}

// WithTranslator sets the translator behind the translate template helper
// for requests that carry none.
func WithTranslator(t render.Translator) Option {
	return func(cfg *config) {
		cfg.translator = t
	}
}

// Renderer writes steps as text.
type Renderer struct {
	templates  rendertemplate.TemplateRenderer
	out        io.Writer
	responder  Responder
	translator render.Translator
}

var _ render.Presenter = (*Renderer)(nil)

// New constructs the text renderer.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), out: os.Stdout, responder: PreviewResult}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	engine := cfg.templateRenderer
	if engine == nil {
		opts := []gotemplate.Option{gotemplate.WithFS(cfg.templateFS)}
		if cfg.templateDir != "" {
			opts = append(opts, gotemplate.WithBaseDir(cfg.templateDir))
		}
		built, err := gotemplate.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("text renderer: configure template renderer: %w", err)
		}
		engine = built
	}

	return &Renderer{
		templates:  engine,
		out:        cfg.out,
		responder:  cfg.responder,
		translator: cfg.translator,
	}, nil
}

// Renderers returns one StepRenderer per built-in step type.
func (r *Renderer) Renderers() []render.StepRenderer {
	types := steps.Types()
	out := make([]render.StepRenderer, 0, len(types))
	for _, typ := range types {
		out = append(out, render.StepRendererFunc(typ, r.render))
	}
	return out
}

// Register adds the text renderers to registry.
func (r *Renderer) Register(registry *render.Registry) error {
	for _, renderer := range r.Renderers() {
		if err := registry.Register(renderer); err != nil {
			return err
		}
	}
	return nil
}

// RenderStep returns the text for req without writing it.
func (r *Renderer) RenderStep(req render.Request) (string, error) {
	name, ok := templateNames[req.Step.Step.Type]
	if !ok {
		return "", fmt.Errorf("text renderer: no template for %s", req.Step.Step.Type)
	}
	out, err := r.templates.RenderTemplate(name, viewData(req, r.translator))
	if err != nil {
		return "", fmt.Errorf("text renderer: render %s: %w", name, err)
	}
	return compact(out), nil
}

func (r *Renderer) render(_ context.Context, req render.Request, next render.Continue) error {
	out, err := r.RenderStep(req)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(r.out, out); err != nil {
		return err
	}
	next(r.responder(req.Step))
	return nil
}

// ShowPlaceholder implements render.Presenter.
func (r *Renderer) ShowPlaceholder(_ context.Context, view render.PlaceholderView) error {
	return r.write("placeholder", map[string]any{
		"message":    view.Message,
		"suggestion": string(view.Suggestion),
		"type":       string(view.Type),
	})
}

// ShowPanel implements render.Presenter.
func (r *Renderer) ShowPanel(_ context.Context, panel render.Panel) error {
	return r.write("panel", map[string]any{
		"title": panel.Title,
		"type":  string(panel.Type),
		"lines": toAny(panel.Lines),
	})
}

func (r *Renderer) write(name string, data map[string]any) error {
	out, err := r.templates.RenderTemplate(name, data)
	if err != nil {
		return fmt.Errorf("text renderer: render %s: %w", name, err)
	}
	_, err = io.WriteString(r.out, compact(out))
	return err
}

// PreviewResult is the default Responder: the first answer of a question,
// an accepted rating or commitment, and no value otherwise.
func PreviewResult(step steps.Validated) any {
	switch step.Step.Type {
	case steps.TypeQuestion:
		q, _ := step.Question()
		if len(q.Answers) == 0 {
			return q.Result(nil)
		}
		return q.Result(q.Toggle(nil, q.Answers[0].Value))
	case steps.TypeRatings:
		return true
	case steps.TypeCommitment:
		c, _ := step.Commitment()
		if c.Variant == steps.CommitmentSimple {
			return true
		}
		return "preview"
	}
	return nil
}

// compact drops blank lines and trailing spaces left by template tags.
func compact(s string) string {
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, line := range lines {
		line = strings.TrimRight(line, " \t\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}
	if len(out) == 0 {
		return ""
	}
	return strings.Join(out, "\n") + "\n"
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
