// Package config reads the command line configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds the settings shared by every CLI command. Flags override the
// values read here.
type Config struct {
	ProjectID  string            `env:"ONBOARDING_PROJECT_ID"`
	BaseURL    string            `env:"ONBOARDING_BASE_URL"`
	AppVersion string            `env:"ONBOARDING_APP_VERSION"`
	Locale     string            `env:"ONBOARDING_LOCALE" envDefault:"en"`
	Sandbox    bool              `env:"ONBOARDING_SANDBOX" envDefault:"false"`
	Params     map[string]string `env:"ONBOARDING_PARAMS"`
	CacheURL   string            `env:"ONBOARDING_CACHE_URL"`
	Scheme     string            `env:"ONBOARDING_SCHEME" envDefault:"light"`
	ThemeFile  string            `env:"ONBOARDING_THEME_FILE"`

	LogLevel  string `env:"ONBOARDING_LOG_LEVEL" envDefault:"warn"`
	LogFormat string `env:"ONBOARDING_LOG_FORMAT" envDefault:"text"`
}

// Load reads .env files (missing files are ignored) and then the process
// environment. Variables already set in the environment win over .env.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: load %s: %w", file, err)
		}
	}
	return parse(env.Options{})
}

// FromMap parses cfg from environ instead of the process environment.
func FromMap(environ map[string]string) (Config, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("config: parse environment: %w", err)
	}
	cfg.ProjectID = strings.TrimSpace(cfg.ProjectID)
	return cfg, nil
}

// Validate reports settings that would prevent fetching a flow.
func (c Config) Validate() error {
	if c.ProjectID == "" {
		return errors.New("config: ONBOARDING_PROJECT_ID (or -project) is required")
	}
	switch strings.ToLower(c.Scheme) {
	case "light", "dark":
	default:
		return fmt.Errorf("config: unknown color scheme %q", c.Scheme)
	}
	return nil
}

// Environ lists the variable names Config reads, for help output.
func Environ() []string {
	return []string{
		"ONBOARDING_PROJECT_ID",
		"ONBOARDING_BASE_URL",
		"ONBOARDING_APP_VERSION",
		"ONBOARDING_LOCALE",
		"ONBOARDING_SANDBOX",
		"ONBOARDING_PARAMS",
		"ONBOARDING_CACHE_URL",
		"ONBOARDING_SCHEME",
		"ONBOARDING_THEME_FILE",
		"ONBOARDING_LOG_LEVEL",
		"ONBOARDING_LOG_FORMAT",
	}
}
