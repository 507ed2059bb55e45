package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-onboarding/pkg/cache"
	"github.com/goliatone/go-onboarding/pkg/client"
	"github.com/goliatone/go-onboarding/pkg/progress"
	"github.com/goliatone/go-onboarding/pkg/render"
	"github.com/goliatone/go-onboarding/pkg/steps"
	"github.com/goliatone/go-onboarding/pkg/theme"
)

var (
	// ErrNoClient is returned when a session is built without a client.
	ErrNoClient = errors.New("session: client is required")
	// ErrStepOutOfRange is returned for step numbers outside 1..len(steps).
	ErrStepOutOfRange = errors.New("session: step number out of range")
)

// Fetcher is the part of client.Client a session uses.
type Fetcher interface {
	ProjectID() string
	Sandbox() bool
	GetSteps(ctx context.Context, opts client.Options, params map[string]string) (client.Response, error)
}

var _ Fetcher = (*client.Client)(nil)

// View is one step as seen from the flow.
type View struct {
	Number     int
	Step       steps.Step
	IsLastStep bool
	Total      int
	Metadata   steps.Metadata
}

// Answers maps step ids to the result each step continued with.
type Answers map[string]any

// Session is the context object shared by every step of one run.
type Session struct {
	id         string
	client     Fetcher
	cache      *cache.Cache
	locale     string
	params     map[string]string
	overrides  theme.Resolver
	scheme     theme.Scheme
	components render.Components
	logger     *zap.Logger

	theme    *theme.Provider
	progress *progress.State

	mu      sync.Mutex
	loaded  bool
	flow    steps.Onboarding
	headers client.Headers
}

// New builds a session around c.
func New(c Fetcher, opts ...Option) (*Session, error) {
	if c == nil {
		return nil, ErrNoClient
	}
	s := &Session{
		id:       uuid.NewString(),
		client:   c,
		locale:   DefaultLocale,
		params:   map[string]string{},
		scheme:   theme.Light,
		logger:   zap.NewNop(),
		progress: progress.New(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.theme = theme.NewProvider(s.overrides, s.scheme)
	s.logger = s.logger.With(zap.String("session_id", s.id), zap.String("project_id", c.ProjectID()))
	return s, nil
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Locale returns the requested content locale.
func (s *Session) Locale() string { return s.locale }

// Theme exposes the session theme provider.
func (s *Session) Theme() *theme.Provider { return s.theme }

// Progress exposes the session progress state.
func (s *Session) Progress() *progress.State { return s.progress }

// Components returns the custom component overrides.
func (s *Session) Components() render.Components { return s.components }

// CacheKey returns the cache key for this session's project, locale and
// audience params.
func (s *Session) CacheKey() string {
	return cache.Key(s.client.ProjectID(), s.locale, s.params)
}

// Load returns the flow, reading it at most once per session. Outside
// sandbox mode a cached flow is used when present and fetched flows are
// written back unless they came from the fallback. Sandbox sessions never
// touch the cache, so draft content cannot reach production sessions.
func (s *Session) Load(ctx context.Context) (steps.Onboarding, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return s.flow, nil
	}

	key := s.CacheKey()
	if s.cache != nil && !s.client.Sandbox() {
		if flow, ok := s.cache.Read(ctx, key); ok {
			s.logger.Debug("onboarding loaded from cache", zap.String("cache_key", key))
			s.setLoaded(flow)
			return flow, nil
		}
	}

	resp, err := s.client.GetSteps(ctx, client.Options{Locale: s.locale}, s.params)
	if err != nil {
		return steps.Onboarding{}, fmt.Errorf("session: load onboarding: %w", err)
	}
	s.headers = resp.Headers
	s.logger.Info("onboarding fetched",
		zap.Stringp("onboarding_id", resp.Headers.OnboardingID),
		zap.Stringp("onboarding_name", resp.Headers.OnboardingName),
		zap.Stringp("audience_id", resp.Headers.AudienceID),
		zap.Bool("fallback", resp.FromFallback),
		zap.Int("steps", resp.Onboarding.Len()),
	)
	if s.cache != nil && !resp.FromFallback && !s.client.Sandbox() {
		s.cache.Write(ctx, key, resp.Onboarding)
	}
	s.setLoaded(resp.Onboarding)
	return resp.Onboarding, nil
}

func (s *Session) setLoaded(flow steps.Onboarding) {
	s.flow = flow
	s.loaded = true
	s.progress.SetTotalSteps(flow.Len())
}

// Headers returns the response headers of the fetch that loaded the flow.
// They are empty when the flow came from the cache.
func (s *Session) Headers() client.Headers {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.headers
}

// Step returns the 1-based step number of the loaded flow.
func (s *Session) Step(ctx context.Context, number int) (View, error) {
	flow, err := s.Load(ctx)
	if err != nil {
		return View{}, err
	}
	step, ok := flow.StepAt(number)
	if !ok {
		return View{}, fmt.Errorf("%w: %d of %d", ErrStepOutOfRange, number, flow.Len())
	}
	return View{
		Number:     number,
		Step:       step,
		IsLastStep: number >= flow.Len(),
		Total:      flow.Len(),
		Metadata:   flow.Metadata,
	}, nil
}

// Focus marks number as the active step, the equivalent of a step screen
// gaining focus.
func (s *Session) Focus(ctx context.Context, number int) (View, error) {
	view, err := s.Step(ctx, number)
	if err != nil {
		return View{}, err
	}
	s.progress.SetActiveStep(progress.ActiveStep{
		Number:                number,
		DisplayProgressHeader: view.Step.ShowsProgressHeader(),
	})
	s.progress.SetTotalSteps(view.Total)
	return view, nil
}

// Dispatcher builds a dispatcher bound to this session's theme, progress,
// components and sandbox mode. opts are applied last.
func (s *Session) Dispatcher(opts ...render.Option) *render.Dispatcher {
	base := []render.Option{
		render.WithThemeProvider(s.theme),
		render.WithProgress(s.progress),
		render.WithComponents(s.components),
		render.WithSandbox(s.client.Sandbox()),
		render.WithLogger(s.logger),
	}
	return render.NewDispatcher(append(base, opts...)...)
}

// Run walks the flow in order, dispatching every step and collecting the
// results of completed and skipped steps. Failed steps and placeholders do
// not stop the run. Run returns early when ctx is cancelled.
func (s *Session) Run(ctx context.Context, d *render.Dispatcher) (Answers, error) {
	if d == nil {
		d = s.Dispatcher()
	}
	flow, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	answers := make(Answers, flow.Len())
	for number := 1; number <= flow.Len(); number++ {
		if err := ctx.Err(); err != nil {
			return answers, err
		}
		view, err := s.Focus(ctx, number)
		if err != nil {
			return answers, err
		}
		outcome := d.Dispatch(ctx, view.Step, func(result any) {
			answers[view.Step.ID] = result
		})
		if outcome.Err != nil && ctx.Err() != nil {
			return answers, ctx.Err()
		}
		s.logger.Debug("step dispatched",
			zap.Int("number", number),
			zap.String("step_id", view.Step.ID),
			zap.Stringer("outcome", outcome.Kind),
		)
	}
	return answers, nil
}

// Close releases the cache, if any.
func (s *Session) Close() error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Close()
}
