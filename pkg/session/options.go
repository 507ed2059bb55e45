package session

import (
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-onboarding/pkg/cache"
	"github.com/goliatone/go-onboarding/pkg/render"
	"github.com/goliatone/go-onboarding/pkg/theme"
)

// DefaultLocale is used when no locale is configured.
const DefaultLocale = "en"

// Option configures a Session.
type Option func(*Session)

// WithCache enables the local cache. Sessions without a cache always fetch.
func WithCache(c *cache.Cache) Option {
	return func(s *Session) {
		s.cache = c
	}
}

// WithLocale sets the requested content locale.
func WithLocale(locale string) Option {
	return func(s *Session) {
		if locale = strings.TrimSpace(locale); locale != "" {
			s.locale = locale
		}
	}
}

// WithAudienceParams sets the targeting params sent with every fetch.
func WithAudienceParams(params map[string]string) Option {
	return func(s *Session) {
		s.params = make(map[string]string, len(params))
		for k, v := range params {
			s.params[k] = v
		}
	}
}

// WithTheme sets the theme override layers.
func WithTheme(overrides theme.Resolver) Option {
	return func(s *Session) {
		s.overrides = overrides
	}
}

// WithColorScheme sets the initial color scheme.
func WithColorScheme(scheme theme.Scheme) Option {
	return func(s *Session) {
		s.scheme = scheme
	}
}

// WithComponents sets the custom component overrides.
func WithComponents(c render.Components) Option {
	return func(s *Session) {
		s.components = c
	}
}

// WithLogger sets the session logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}
