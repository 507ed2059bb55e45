package theme

import (
	"fmt"
	"strings"
	"sync"

	gotheme "github.com/goliatone/go-theme"
)

// Version is stamped on manifests built by Manifest.
const Version = "1.0.0"

// Manifest exposes the resolver as a go-theme manifest: light tokens form the
// base and the dark scheme is published as the "dark" variant, holding only
// the tokens that differ from light.
func (r Resolver) Manifest(name string) (*gotheme.Manifest, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("theme: manifest name is required")
	}
	light := r.Resolve(Light).Tokens()
	dark := r.Resolve(Dark).Tokens()

	diff := make(map[string]string)
	for key, value := range dark {
		if light[key] != value {
			diff[key] = value
		}
	}

	return &gotheme.Manifest{
		Name:    name,
		Version: Version,
		Tokens:  light,
		Variants: map[string]gotheme.Variant{
			string(Dark): {Tokens: diff},
		},
	}, nil
}

type manifestRegistry interface {
	gotheme.ThemeProvider
	Register(*gotheme.Manifest) error
}

// Selector resolves theme name/variant pairs against manifests built from
// Resolvers. It satisfies gotheme.ThemeSelector.
type Selector struct {
	mu           sync.RWMutex
	registry     manifestRegistry
	manifests    map[string]*gotheme.Manifest
	defaultTheme string
}

var _ gotheme.ThemeSelector = (*Selector)(nil)

// NewSelector returns an empty selector. The first registered theme becomes
// the default.
func NewSelector() *Selector {
	return &Selector{
		registry:  gotheme.NewRegistry(),
		manifests: make(map[string]*gotheme.Manifest),
	}
}

// Register publishes r under name.
func (s *Selector) Register(name string, r Resolver) error {
	manifest, err := r.Manifest(name)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.manifests[manifest.Name]; exists {
		return fmt.Errorf("theme: theme %q already registered", manifest.Name)
	}
	if err := s.registry.Register(manifest); err != nil {
		return fmt.Errorf("theme: register %q: %w", manifest.Name, err)
	}
	s.manifests[manifest.Name] = manifest
	if s.defaultTheme == "" {
		s.defaultTheme = manifest.Name
	}
	return nil
}

// Registry returns the underlying go-theme registry for hosts that consume a
// gotheme.ThemeProvider.
func (s *Selector) Registry() gotheme.ThemeProvider {
	return s.registry
}

// Select implements gotheme.ThemeSelector. An empty name picks the default
// theme; variants other than "dark" select the light base.
func (s *Selector) Select(name, variant string, _ ...gotheme.QueryOption) (*gotheme.Selection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if strings.TrimSpace(name) == "" {
		name = s.defaultTheme
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("theme: theme %q not found", name)
	}
	if variant != string(Dark) {
		variant = string(Light)
	}
	return &gotheme.Selection{
		Theme:    manifest.Name,
		Variant:  variant,
		Manifest: manifest,
	}, nil
}

// SelectionTokens returns the effective tokens of a selection: the manifest
// base overlaid with the selected variant.
func SelectionTokens(sel *gotheme.Selection) map[string]string {
	if sel == nil || sel.Manifest == nil {
		return nil
	}
	out := make(map[string]string, len(sel.Manifest.Tokens))
	for key, value := range sel.Manifest.Tokens {
		out[key] = value
	}
	if v, ok := sel.Manifest.Variants[sel.Variant]; ok {
		for key, value := range v.Tokens {
			out[key] = value
		}
	}
	return out
}

// RendererConfig converts a selection into the go-theme renderer
// configuration, exposing color tokens as CSS variables.
func RendererConfig(sel *gotheme.Selection) *gotheme.RendererConfig {
	if sel == nil {
		return nil
	}
	tokens := SelectionTokens(sel)
	vars := make(map[string]string)
	for key, value := range tokens {
		if rest, ok := strings.CutPrefix(key, "colors."); ok {
			vars["--"+strings.ReplaceAll(rest, ".", "-")] = value
		}
	}
	return &gotheme.RendererConfig{
		Theme:   sel.Theme,
		Variant: sel.Variant,
		Tokens:  tokens,
		CSSVars: vars,
	}
}
