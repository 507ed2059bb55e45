package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-onboarding/internal/config"
	"github.com/goliatone/go-onboarding/internal/logging"
	"github.com/goliatone/go-onboarding/pkg/cache"
	"github.com/goliatone/go-onboarding/pkg/client"
	"github.com/goliatone/go-onboarding/pkg/orchestrator"
	"github.com/goliatone/go-onboarding/pkg/renderers/text"
	"github.com/goliatone/go-onboarding/pkg/renderers/tui"
	"github.com/goliatone/go-onboarding/pkg/session"
	"github.com/goliatone/go-onboarding/pkg/theme"
)

const usage = `usage: onboarding-cli <command> [flags]

commands:
  run       run the flow interactively in the terminal
  preview   print every step as text
  validate  validate every step payload
  tokens    print the resolved theme tokens

flags override these environment variables (also read from .env):
  %s
`

// paramsFlag collects repeatable -param key=value flags.
type paramsFlag map[string]string

func (p paramsFlag) String() string {
	pairs := make([]string, 0, len(p))
	for k, v := range p {
		pairs = append(pairs, k+"="+v)
	}
	sort.Strings(pairs)
	return strings.Join(pairs, ",")
}

func (p paramsFlag) Set(value string) error {
	key, val, ok := strings.Cut(value, "=")
	if !ok || strings.TrimSpace(key) == "" {
		return fmt.Errorf("param %q must be key=value", value)
	}
	p[strings.TrimSpace(key)] = val
	return nil
}

type options struct {
	cfg  config.Config
	flow string
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "help" {
		fmt.Fprintf(stderr, usage, strings.Join(config.Environ(), "\n  "))
		return 2
	}
	command, rest := args[0], args[1:]

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	opts, err := parseFlags(command, rest, cfg, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 2
		}
		fmt.Fprintln(stderr, err)
		return 2
	}

	logger := logging.New(opts.cfg.LogLevel, opts.cfg.LogFormat, stderr)
	defer func() { _ = logger.Sync() }()

	switch command {
	case "run":
		th, terr := resolveTheme(opts)
		if terr != nil {
			err = terr
			break
		}
		err = runFlow(ctx, opts, logger, stdout, "tui", tui.New(tui.WithOutput(stdout), tui.WithTheme(th)))
	case "preview":
		frontend, ferr := text.New(text.WithOutput(stdout))
		if ferr != nil {
			err = ferr
			break
		}
		err = runFlow(ctx, opts, logger, stdout, "text", frontend)
	case "validate":
		var ok bool
		ok, err = validateFlow(ctx, opts, logger, stdout)
		if err == nil && !ok {
			return 1
		}
	case "tokens":
		err = printTokens(opts, stdout)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", command)
		return 2
	}
	if err != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func parseFlags(command string, args []string, cfg config.Config, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	fs.SetOutput(stderr)

	params := paramsFlag{}
	for k, v := range cfg.Params {
		params[k] = v
	}

	opts := options{cfg: cfg}
	fs.StringVar(&opts.cfg.ProjectID, "project", cfg.ProjectID, "onboarding studio project id")
	fs.StringVar(&opts.cfg.BaseURL, "base-url", cfg.BaseURL, "onboarding studio base URL")
	fs.StringVar(&opts.cfg.Locale, "locale", cfg.Locale, "content locale")
	fs.BoolVar(&opts.cfg.Sandbox, "sandbox", cfg.Sandbox, "request draft content and show placeholders")
	fs.StringVar(&opts.cfg.AppVersion, "app-version", cfg.AppVersion, "app version sent with requests")
	fs.Var(params, "param", "audience param key=value (repeatable)")
	fs.StringVar(&opts.cfg.CacheURL, "cache", cfg.CacheURL, "cache location: bucket URL (mem://, file:///dir) or redis://")
	fs.StringVar(&opts.cfg.Scheme, "scheme", cfg.Scheme, "color scheme: light or dark")
	fs.StringVar(&opts.cfg.ThemeFile, "theme", cfg.ThemeFile, "theme overrides file (YAML or JSON)")
	fs.StringVar(&opts.flow, "flow", "", "run a local flow file instead of fetching")
	fs.StringVar(&opts.cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	opts.cfg.Params = params

	if opts.flow == "" && command != "tokens" {
		if err := opts.cfg.Validate(); err != nil {
			return options{}, err
		}
	}
	return opts, nil
}

func newFetcher(ctx context.Context, opts options, logger *zap.Logger) (session.Fetcher, error) {
	if opts.flow != "" {
		flow, err := orchestrator.LoadFlow(ctx, nil, orchestrator.SourceFromFile(opts.flow))
		if err != nil {
			return nil, err
		}
		return &orchestrator.StaticFetcher{Project: opts.cfg.ProjectID, Flow: flow, IsSandbox: opts.cfg.Sandbox}, nil
	}
	clientOpts := []client.Option{
		client.WithAppVersion(opts.cfg.AppVersion),
		client.WithSandbox(opts.cfg.Sandbox),
		client.WithLogger(logger),
	}
	if opts.cfg.BaseURL != "" {
		clientOpts = append(clientOpts, client.WithBaseURL(opts.cfg.BaseURL))
	}
	return client.New(opts.cfg.ProjectID, clientOpts...)
}

func openCache(ctx context.Context, rawURL string, logger *zap.Logger) (*cache.Cache, error) {
	if rawURL == "" {
		return nil, nil
	}
	var (
		store cache.Store
		err   error
	)
	if strings.HasPrefix(rawURL, "redis://") || strings.HasPrefix(rawURL, "rediss://") {
		store, err = cache.OpenRedisStore(ctx, rawURL, cache.KeyPrefix+":")
	} else {
		store, err = cache.NewBlobStore(ctx, rawURL, "onboarding/")
	}
	if err != nil {
		return nil, err
	}
	return cache.New(store, cache.WithLogger(logger)), nil
}

func loadTheme(path string) (theme.Resolver, error) {
	if path == "" {
		return theme.Resolver{}, nil
	}
	return theme.LoadOverrides(os.DirFS(filepath.Dir(path)), filepath.Base(path))
}

// resolveTheme resolves the configured overrides for the configured scheme.
func resolveTheme(opts options) (theme.Theme, error) {
	overrides, err := loadTheme(opts.cfg.ThemeFile)
	if err != nil {
		return theme.Theme{}, err
	}
	scheme, err := theme.ParseScheme(opts.cfg.Scheme)
	if err != nil {
		return theme.Theme{}, err
	}
	return overrides.Resolve(scheme), nil
}

func sessionOptions(ctx context.Context, opts options, logger *zap.Logger) ([]session.Option, error) {
	overrides, err := loadTheme(opts.cfg.ThemeFile)
	if err != nil {
		return nil, err
	}
	scheme, err := theme.ParseScheme(opts.cfg.Scheme)
	if err != nil {
		return nil, err
	}
	out := []session.Option{
		session.WithLocale(opts.cfg.Locale),
		session.WithAudienceParams(opts.cfg.Params),
		session.WithTheme(overrides),
		session.WithColorScheme(scheme),
		session.WithLogger(logger),
	}
	if opts.flow == "" {
		c, err := openCache(ctx, opts.cfg.CacheURL, logger)
		if err != nil {
			return nil, err
		}
		if c != nil {
			out = append(out, session.WithCache(c))
		}
	}
	return out, nil
}

func runFlow(ctx context.Context, opts options, logger *zap.Logger, stdout io.Writer, name string, frontend orchestrator.Frontend) error {
	fetcher, err := newFetcher(ctx, opts, logger)
	if err != nil {
		return err
	}
	sessOpts, err := sessionOptions(ctx, opts, logger)
	if err != nil {
		return err
	}
	o := orchestrator.New(
		orchestrator.WithFrontend(name, frontend),
		orchestrator.WithSessionOptions(sessOpts...),
		orchestrator.WithLogger(logger),
	)
	result, err := o.Run(ctx, orchestrator.Request{Fetcher: fetcher, Frontend: name})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{
		"session": result.SessionID,
		"steps":   result.Steps,
		"answers": result.Answers,
	})
}

func validateFlow(ctx context.Context, opts options, logger *zap.Logger, stdout io.Writer) (bool, error) {
	fetcher, err := newFetcher(ctx, opts, logger)
	if err != nil {
		return false, err
	}
	sessOpts, err := sessionOptions(ctx, opts, logger)
	if err != nil {
		return false, err
	}
	report, err := orchestrator.New(orchestrator.WithSessionOptions(sessOpts...)).Validate(ctx, fetcher)
	if err != nil {
		return false, err
	}
	for _, failure := range report.Failures {
		fmt.Fprintf(stdout, "step %d (%s, %s):\n", failure.Number, failure.Step.ID, failure.Step.Type)
		for _, line := range strings.Split(failure.Err.Error(), "\n") {
			fmt.Fprintf(stdout, "  %s\n", line)
		}
	}
	fmt.Fprintf(stdout, "%d steps, %d invalid\n", report.Flow.Len(), len(report.Failures))
	return report.OK(), nil
}

func printTokens(opts options, stdout io.Writer) error {
	overrides, err := loadTheme(opts.cfg.ThemeFile)
	if err != nil {
		return err
	}
	selector := theme.NewSelector()
	if err := selector.Register("onboarding", overrides); err != nil {
		return err
	}
	sel, err := selector.Select("", opts.cfg.Scheme)
	if err != nil {
		return err
	}
	cfg := theme.RendererConfig(sel)
	keys := make([]string, 0, len(cfg.CSSVars))
	for key := range cfg.CSSVars {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(stdout, "%s: %s;\n", key, cfg.CSSVars[key])
	}
	return nil
}
