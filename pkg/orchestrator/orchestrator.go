package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-onboarding/pkg/render"
	"github.com/goliatone/go-onboarding/pkg/renderers/text"
	"github.com/goliatone/go-onboarding/pkg/session"
	"github.com/goliatone/go-onboarding/pkg/steps"
)

const defaultFrontendName = "text"

// Frontend is a set of step renderers plus the screens the dispatcher shows
// on its own. Both built-in renderers satisfy it.
type Frontend interface {
	render.Presenter
	Register(registry *render.Registry) error
}

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithFrontend registers a frontend under name.
func WithFrontend(name string, frontend Frontend) Option {
	return func(o *Orchestrator) {
		if name == "" || frontend == nil {
			return
		}
		o.frontends[name] = frontend
	}
}

// WithDefaultFrontend selects the frontend used when a request names none.
func WithDefaultFrontend(name string) Option {
	return func(o *Orchestrator) {
		if name != "" {
			o.defaultFrontend = name
		}
	}
}

// WithSessionOptions applies opts to every session the orchestrator builds.
func WithSessionOptions(opts ...session.Option) Option {
	return func(o *Orchestrator) {
		o.sessionOpts = append(o.sessionOpts, opts...)
	}
}

// WithDispatcherOptions applies opts to every dispatcher, after the session
// defaults.
func WithDispatcherOptions(opts ...render.Option) Option {
	return func(o *Orchestrator) {
		o.dispatcherOpts = append(o.dispatcherOpts, opts...)
	}
}

// WithLogger sets the logger handed to sessions.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator runs flows against a named frontend. Without options it
// renders with the text frontend on stdout.
type Orchestrator struct {
	mu              sync.Mutex
	frontends       map[string]Frontend
	defaultFrontend string
	sessionOpts     []session.Option
	dispatcherOpts  []render.Option
	logger          *zap.Logger
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		frontends:       make(map[string]Frontend),
		defaultFrontend: defaultFrontendName,
		logger:          zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	return o
}

// Request describes one flow run.
type Request struct {
	// Fetcher supplies the flow, usually a *client.Client or a StaticFetcher.
	Fetcher session.Fetcher

	// Frontend names the frontend to render with. Empty selects the default.
	Frontend string
}

// Result summarises a completed run.
type Result struct {
	SessionID string
	Steps     int
	Answers   session.Answers
}

// Run loads the flow and dispatches every step through the frontend.
func (o *Orchestrator) Run(ctx context.Context, req Request) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("orchestrator: context is required")
	}
	if req.Fetcher == nil {
		return Result{}, errors.New("orchestrator: fetcher is required")
	}
	frontend, err := o.frontendFor(req.Frontend)
	if err != nil {
		return Result{}, err
	}

	registry := render.NewRegistry()
	if err := frontend.Register(registry); err != nil {
		return Result{}, fmt.Errorf("orchestrator: register renderers: %w", err)
	}

	sess, err := o.newSession(req.Fetcher)
	if err != nil {
		return Result{}, err
	}
	defer sess.Close()

	opts := append([]render.Option{render.WithRegistry(registry), render.WithPresenter(frontend)}, o.dispatcherOpts...)
	answers, err := sess.Run(ctx, sess.Dispatcher(opts...))
	result := Result{SessionID: sess.ID(), Answers: answers, Steps: sess.Progress().Snapshot().TotalSteps}
	if err != nil {
		return result, fmt.Errorf("orchestrator: run flow: %w", err)
	}
	return result, nil
}

// StepFailure is one step that did not validate.
type StepFailure struct {
	Number int
	Step   steps.Step
	Err    error
}

// Report is the outcome of Validate.
type Report struct {
	Flow     steps.Onboarding
	Failures []StepFailure
}

// OK reports whether every step validated.
func (r Report) OK() bool { return len(r.Failures) == 0 }

// Validate loads the flow from fetcher and validates every step without
// rendering. Unknown step types are reported as failures.
func (o *Orchestrator) Validate(ctx context.Context, fetcher session.Fetcher) (Report, error) {
	if fetcher == nil {
		return Report{}, errors.New("orchestrator: fetcher is required")
	}
	sess, err := o.newSession(fetcher)
	if err != nil {
		return Report{}, err
	}
	defer sess.Close()

	flow, err := sess.Load(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("orchestrator: load flow: %w", err)
	}
	report := Report{Flow: flow}
	for i, step := range flow.Steps {
		if _, err := steps.Validate(step); err != nil {
			report.Failures = append(report.Failures, StepFailure{Number: i + 1, Step: step, Err: err})
		}
	}
	return report, nil
}

// Frontends lists the registered frontend names in sorted order.
func (o *Orchestrator) Frontends() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	names := make([]string, 0, len(o.frontends))
	for name := range o.frontends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (o *Orchestrator) newSession(fetcher session.Fetcher) (*session.Session, error) {
	opts := append([]session.Option{session.WithLogger(o.logger)}, o.sessionOpts...)
	sess, err := session.New(fetcher, opts...)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: new session: %w", err)
	}
	return sess, nil
}

func (o *Orchestrator) frontendFor(name string) (Frontend, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	target := name
	if target == "" {
		target = o.defaultFrontend
	}
	if frontend, ok := o.frontends[target]; ok {
		return frontend, nil
	}
	if target == defaultFrontendName {
		frontend, err := text.New()
		if err != nil {
			return nil, fmt.Errorf("orchestrator: default frontend: %w", err)
		}
		o.frontends[target] = frontend
		return frontend, nil
	}
	return nil, fmt.Errorf("orchestrator: frontend %q not registered", target)
}
