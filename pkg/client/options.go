package client

import (
	"net/http"
	"runtime"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-onboarding/pkg/steps"
)

// DefaultBaseURL is the hosted onboarding studio functions endpoint.
const DefaultBaseURL = "https://takbcvjljqialzqyksic.supabase.co/functions/v1"

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another deployment.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/"); trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// WithAppVersion sends appVersion with every request.
func WithAppVersion(version string) Option {
	return func(c *Client) {
		c.appVersion = strings.TrimSpace(version)
	}
}

// WithSandbox requests draft content.
func WithSandbox(enabled bool) Option {
	return func(c *Client) {
		c.sandbox = enabled
	}
}

// WithFallback returns flow instead of an error when a fetch fails.
func WithFallback(flow steps.Onboarding) Option {
	return func(c *Client) {
		f := flow
		c.fallback = &f
	}
}

// WithPlatform overrides the platform identifier (defaults to runtime.GOOS).
func WithPlatform(platform string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimSpace(platform); trimmed != "" {
			c.platform = trimmed
		}
	}
}

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.http = httpClient
		}
	}
}

// WithLogger sets the logger used for fallback diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func defaultPlatform() string {
	return runtime.GOOS
}
