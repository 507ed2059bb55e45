package render

import (
	"context"

	"github.com/goliatone/go-onboarding/pkg/progress"
	"github.com/goliatone/go-onboarding/pkg/steps"
	"github.com/goliatone/go-onboarding/pkg/theme"
)

// NotImplemented is the result passed to the continuation when a production
// flow skips a step type this build cannot render.
const NotImplemented = "onboarding_screen_not_implemented"

// Continue hands a step's result back to the flow. Renderers call it at most
// once; later calls are ignored.
type Continue func(result any)

// Request is everything a StepRenderer receives for one step.
type Request struct {
	Step       steps.Validated
	Theme      theme.Theme
	Components Components
	Progress   progress.Snapshot
	Locale     string
	Translator Translator
}

// T translates key for the request locale, returning fallback when no
// translation exists.
func (r Request) T(key, fallback string) string {
	return translate(r.Locale, key, fallback, r.Translator, nil)
}

// StepRenderer presents one step type.
type StepRenderer interface {
	Type() steps.Type
	Render(ctx context.Context, req Request, next Continue) error
}

// StepRendererFunc adapts a function into a StepRenderer for type t.
func StepRendererFunc(t steps.Type, fn func(ctx context.Context, req Request, next Continue) error) StepRenderer {
	return funcRenderer{typ: t, fn: fn}
}

type funcRenderer struct {
	typ steps.Type
	fn  func(ctx context.Context, req Request, next Continue) error
}

func (f funcRenderer) Type() steps.Type { return f.typ }

func (f funcRenderer) Render(ctx context.Context, req Request, next Continue) error {
	return f.fn(ctx, req, next)
}

// PlaceholderView describes a step whose type has no renderer in this build.
type PlaceholderView struct {
	StepID     string
	Type       steps.Type
	Message    string
	Suggestion steps.Type
}

// Presenter shows the dispatcher's own screens: placeholders and error
// panels.
type Presenter interface {
	ShowPlaceholder(ctx context.Context, view PlaceholderView) error
	ShowPanel(ctx context.Context, panel Panel) error
}

type discardPresenter struct{}

func (discardPresenter) ShowPlaceholder(context.Context, PlaceholderView) error { return nil }
func (discardPresenter) ShowPanel(context.Context, Panel) error                 { return nil }
