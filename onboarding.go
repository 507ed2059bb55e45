// Package onboarding is the entry point of the onboarding SDK. It re-exports
// the core types and offers constructors that wire the client, cache,
// session and renderers with their defaults.
package onboarding

import (
	"context"

	"github.com/goliatone/go-onboarding/pkg/cache"
	"github.com/goliatone/go-onboarding/pkg/client"
	"github.com/goliatone/go-onboarding/pkg/orchestrator"
	"github.com/goliatone/go-onboarding/pkg/render"
	"github.com/goliatone/go-onboarding/pkg/renderers/text"
	"github.com/goliatone/go-onboarding/pkg/renderers/tui"
	"github.com/goliatone/go-onboarding/pkg/session"
	"github.com/goliatone/go-onboarding/pkg/steps"
)

type (
	// Step is one screen of CMS-authored content.
	Step       = steps.Step
	// Onboarding is an ordered flow of steps plus metadata.
	Onboarding = steps.Onboarding
	// Metadata identifies the flow selected by the service.
	Metadata   = steps.Metadata
	// Answers maps step ids to step results.
	Answers    = session.Answers
	// Components are caller-supplied presentation overrides.
	Components = render.Components
)

// NotImplemented is the result recorded for skipped unknown step types.
const NotImplemented = render.NotImplemented

// NewClient constructs a fetch client for projectID.
func NewClient(projectID string, options ...client.Option) (*client.Client, error) {
	return client.New(projectID, options...)
}

// NewMemoryCache returns a cache backed by process memory.
func NewMemoryCache() *cache.Cache {
	return cache.New(cache.NewMemoryStore())
}

// NewSession builds a session for c.
func NewSession(c session.Fetcher, options ...session.Option) (*session.Session, error) {
	return session.New(c, options...)
}

// NewTerminalRenderer returns the interactive terminal frontend.
func NewTerminalRenderer(options ...tui.Option) *tui.Renderer {
	return tui.New(options...)
}

// NewTextRenderer returns the text preview frontend.
func NewTextRenderer(options ...text.Option) (*text.Renderer, error) {
	return text.New(options...)
}

// ValidateFlow validates every step of flow, joining the failures.
func ValidateFlow(flow Onboarding) ([]steps.Validated, error) {
	return steps.ValidateAll(flow)
}

// Run loads the flow from c and renders every step with frontend, returning
// the collected answers.
func Run(ctx context.Context, c session.Fetcher, frontend orchestrator.Frontend, options ...session.Option) (Answers, error) {
	o := orchestrator.New(
		orchestrator.WithFrontend("default", frontend),
		orchestrator.WithSessionOptions(options...),
	)
	result, err := o.Run(ctx, orchestrator.Request{Fetcher: c, Frontend: "default"})
	return result.Answers, err
}
