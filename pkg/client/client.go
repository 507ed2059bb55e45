package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-onboarding/pkg/steps"
)

const stepsEndpoint = "/get-onboarding-steps"

// Response headers describing the flow the service selected.
const (
	HeaderOnboardingID   = "ONBS-Onboarding-Id"
	HeaderAudienceID     = "ONBS-Audience-Id"
	HeaderOnboardingName = "ONBS-Onboarding-Name"
)

// Options are per-call request settings.
type Options struct {
	Locale string
}

// Headers carries the informational response headers. Fields are nil when
// the service omits the header.
type Headers struct {
	OnboardingID   *string
	AudienceID     *string
	OnboardingName *string
}

// Response is the result of GetSteps.
type Response struct {
	Onboarding   steps.Onboarding
	Headers      Headers
	FromFallback bool
}

// Client fetches flows for a single project.
type Client struct {
	projectID  string
	baseURL    string
	appVersion string
	platform   string
	sandbox    bool
	fallback   *steps.Onboarding
	http       *http.Client
	logger     *zap.Logger
}

// New constructs a client for projectID.
func New(projectID string, opts ...Option) (*Client, error) {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return nil, errors.New("client: project id is required")
	}
	c := &Client{
		projectID: projectID,
		baseURL:   DefaultBaseURL,
		platform:  defaultPlatform(),
		http:      http.DefaultClient,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// ProjectID returns the project the client is bound to.
func (c *Client) ProjectID() string {
	return c.projectID
}

// Sandbox reports whether the client requests draft content.
func (c *Client) Sandbox() bool {
	return c.sandbox
}

// GetSteps fetches the flow matching params. Caller params are sent verbatim;
// projectId, platform, appVersion, draft and locale take precedence over
// params with the same name.
func (c *Client) GetSteps(ctx context.Context, opts Options, params map[string]string) (Response, error) {
	resp, err := c.fetch(ctx, opts, params)
	if err == nil {
		return resp, nil
	}
	if c.fallback == nil {
		return Response{}, err
	}
	c.logger.Warn("onboarding fetch failed, using fallback flow",
		zap.String("project_id", c.projectID),
		zap.Error(err),
	)
	return Response{Onboarding: *c.fallback, FromFallback: true}, nil
}

// RequestURL returns the URL GetSteps would request.
func (c *Client) RequestURL(opts Options, params map[string]string) string {
	query := url.Values{}
	for key, value := range params {
		query.Set(key, value)
	}
	query.Set("projectId", c.projectID)
	query.Set("platform", c.platform)
	if c.appVersion != "" {
		query.Set("appVersion", c.appVersion)
	}
	if c.sandbox {
		query.Set("draft", "true")
	}
	if locale := strings.TrimSpace(opts.Locale); locale != "" {
		query.Set("locale", locale)
	}
	return c.baseURL + stepsEndpoint + "?" + query.Encode()
}

func (c *Client) fetch(ctx context.Context, opts Options, params map[string]string) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.RequestURL(opts, params), nil)
	if err != nil {
		return Response{}, fmt.Errorf("client: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("client: request: %w", err)
	}
	defer func() {
		_ = res.Body.Close()
	}()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return Response{}, &FetchError{StatusCode: res.StatusCode, Status: statusText(res)}
	}

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return Response{}, fmt.Errorf("client: read body: %w", err)
	}
	var flow steps.Onboarding
	if err := json.Unmarshal(data, &flow); err != nil {
		return Response{}, fmt.Errorf("client: decode onboarding: %w", err)
	}

	return Response{
		Onboarding: flow,
		Headers: Headers{
			OnboardingID:   header(res.Header, HeaderOnboardingID),
			AudienceID:     header(res.Header, HeaderAudienceID),
			OnboardingName: header(res.Header, HeaderOnboardingName),
		},
	}, nil
}

// statusText strips the numeric prefix net/http puts on Status.
func statusText(res *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(res.Status, fmt.Sprint(res.StatusCode)))
	if text == "" {
		text = http.StatusText(res.StatusCode)
	}
	return text
}

func header(h http.Header, name string) *string {
	values := h.Values(name)
	if len(values) == 0 {
		return nil
	}
	v := values[0]
	return &v
}
