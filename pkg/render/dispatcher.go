package render

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/agnivade/levenshtein"
	"go.uber.org/zap"

	"github.com/goliatone/go-onboarding/pkg/progress"
	"github.com/goliatone/go-onboarding/pkg/steps"
	"github.com/goliatone/go-onboarding/pkg/theme"
)

// OutcomeKind classifies what Dispatch did with a step.
type OutcomeKind int

const (
	// OutcomeCompleted means the renderer finished and the continuation ran.
	OutcomeCompleted OutcomeKind = iota
	// OutcomePlaceholder means an unknown type was shown as a placeholder.
	OutcomePlaceholder
	// OutcomeSkipped means an unknown type was skipped with NotImplemented.
	OutcomeSkipped
	// OutcomeFailed means an error panel replaced the step.
	OutcomeFailed
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeCompleted:
		return "completed"
	case OutcomePlaceholder:
		return "placeholder"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(k))
	}
}

// Outcome reports the result of one Dispatch call.
type Outcome struct {
	Kind   OutcomeKind
	StepID string
	Type   steps.Type
	Result any
	Err    error
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithRegistry sets the step renderer registry.
func WithRegistry(registry *Registry) Option {
	return func(d *Dispatcher) {
		if registry != nil {
			d.registry = registry
		}
	}
}

// WithPresenter sets where placeholders and error panels are shown.
func WithPresenter(p Presenter) Option {
	return func(d *Dispatcher) {
		if p != nil {
			d.presenter = p
		}
	}
}

// WithThemeProvider supplies the theme handed to renderers.
func WithThemeProvider(p *theme.Provider) Option {
	return func(d *Dispatcher) {
		if p != nil {
			d.theme = p
		}
	}
}

// WithComponents installs caller overrides.
func WithComponents(c Components) Option {
	return func(d *Dispatcher) {
		d.components = c
	}
}

// WithProgress shares the session progress state with renderers.
func WithProgress(state *progress.State) Option {
	return func(d *Dispatcher) {
		if state != nil {
			d.progress = state
		}
	}
}

// WithSandbox shows placeholders for unknown step types instead of skipping
// them.
func WithSandbox(enabled bool) Option {
	return func(d *Dispatcher) {
		d.sandbox = enabled
	}
}

// WithTranslator localizes dispatcher screens and is passed to renderers.
func WithTranslator(t Translator, locale string) Option {
	return func(d *Dispatcher) {
		d.translator = t
		d.locale = locale
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// Dispatcher routes steps to their renderers.
type Dispatcher struct {
	registry   *Registry
	presenter  Presenter
	theme      *theme.Provider
	components Components
	progress   *progress.State
	sandbox    bool
	translator Translator
	locale     string
	logger     *zap.Logger
}

// NewDispatcher builds a dispatcher. Without options it has an empty registry,
// a presenter that discards output and the default light theme.
func NewDispatcher(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		registry:  NewRegistry(),
		presenter: discardPresenter{},
		theme:     theme.NewProvider(theme.Resolver{}, theme.Light),
		progress:  progress.New(),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// Registry exposes the renderer registry.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Sandbox reports whether unknown types render placeholders.
func (d *Dispatcher) Sandbox() bool {
	return d.sandbox
}

// Dispatch validates step and runs its renderer. onContinue is invoked once
// with the renderer's result on success, or with NotImplemented when a
// production flow skips an unknown type; it is never invoked for
// placeholders or failures. Dispatch never panics.
func (d *Dispatcher) Dispatch(ctx context.Context, step steps.Step, onContinue Continue) Outcome {
	if onContinue == nil {
		onContinue = func(any) {}
	}
	outcome := Outcome{StepID: step.ID, Type: step.Type}
	logger := d.logger.With(zap.String("step_id", step.ID), zap.String("step_type", string(step.Type)))

	if !steps.Known(step.Type) {
		if !d.sandbox {
			logger.Warn("skipping unknown step type")
			onContinue(NotImplemented)
			outcome.Kind = OutcomeSkipped
			outcome.Result = NotImplemented
			return outcome
		}
		view := PlaceholderView{
			StepID:     step.ID,
			Type:       step.Type,
			Message:    fmt.Sprintf(d.t(KeyNotImplemented, "Screen %s not implemented"), step.Type),
			Suggestion: Suggest(step.Type),
		}
		if err := guard(func() error { return d.presenter.ShowPlaceholder(ctx, view) }); err != nil {
			logger.Error("placeholder presentation failed", zap.Error(err))
		}
		outcome.Kind = OutcomePlaceholder
		return outcome
	}

	validated, err := steps.Validate(step)
	if err != nil {
		return d.fail(ctx, logger, step, outcome, err)
	}

	renderer, err := d.registry.Get(step.Type)
	if err != nil {
		return d.fail(ctx, logger, step, outcome, err)
	}

	req := Request{
		Step:       validated,
		Theme:      d.theme.Theme(),
		Components: d.components,
		Progress:   d.progress.Snapshot(),
		Locale:     d.locale,
		Translator: d.translator,
	}

	var (
		continued bool
		result    any
	)
	next := func(value any) {
		if continued {
			return
		}
		continued = true
		result = value
	}

	if err := guard(func() error { return renderer.Render(ctx, req, next) }); err != nil {
		return d.fail(ctx, logger, step, outcome, err)
	}

	onContinue(result)
	outcome.Kind = OutcomeCompleted
	outcome.Result = result
	return outcome
}

func (d *Dispatcher) fail(ctx context.Context, logger *zap.Logger, step steps.Step, outcome Outcome, err error) Outcome {
	panel := PanelFor(step, err, d.t)
	logger.Warn("step failed", zap.String("panel", panel.Title), zap.Error(err))
	if perr := guard(func() error { return d.presenter.ShowPanel(ctx, panel) }); perr != nil {
		logger.Error("error panel presentation failed", zap.Error(perr))
	}
	outcome.Kind = OutcomeFailed
	outcome.Err = err
	return outcome
}

func (d *Dispatcher) t(key, fallback string) string {
	return translate(d.locale, key, fallback, d.translator, nil)
}

// guard runs fn, converting a panic into a *PanicError.
func guard(fn func() error) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = &PanicError{Value: recovered, Stack: debug.Stack()}
		}
	}()
	return fn()
}

// Suggest returns the known step type closest to typ, or "" when none is
// close enough to be a plausible typo.
func Suggest(typ steps.Type) steps.Type {
	needle := strings.ToLower(strings.TrimSpace(string(typ)))
	if needle == "" {
		return ""
	}
	best := steps.Type("")
	bestDistance := len(needle)/2 + 1
	for _, candidate := range steps.Types() {
		distance := levenshtein.ComputeDistance(needle, strings.ToLower(string(candidate)))
		if distance < bestDistance {
			best = candidate
			bestDistance = distance
		}
	}
	return best
}
