package tui

import (
	"context"
	"io"
	"time"

	"github.com/goliatone/go-onboarding/pkg/theme"
)

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutput sets where the default driver prints informational lines.
func WithOutput(out io.Writer) Option {
	return func(r *Renderer) {
		r.out = out
	}
}

// WithSleep replaces the wait used to pace loader steps.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(r *Renderer) {
		if fn != nil {
			r.sleep = fn
		}
	}
}

// WithPrefixes applies message prefixes.
func WithPrefixes(p Prefixes) Option {
	return func(r *Renderer) {
		r.prefixes = p
	}
}

// WithTheme sets the theme used for placeholders and error panels. Steps use
// the theme carried by their request.
func WithTheme(th theme.Theme) Option {
	return func(r *Renderer) {
		r.theme = th
	}
}

// Prefixes are prepended to informational and error lines.
type Prefixes struct {
	InfoPrefix  string
	ErrorPrefix string
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
