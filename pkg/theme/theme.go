package theme

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Scheme is the active color scheme.
type Scheme string

const (
	Light Scheme = "light"
	Dark  Scheme = "dark"
)

// ParseScheme maps user input onto a Scheme. Empty input selects Light.
func ParseScheme(value string) (Scheme, error) {
	switch Scheme(strings.ToLower(strings.TrimSpace(value))) {
	case "", Light:
		return Light, nil
	case Dark:
		return Dark, nil
	default:
		return "", fmt.Errorf("theme: unknown color scheme %q", value)
	}
}

// Toggle returns the opposite scheme.
func (s Scheme) Toggle() Scheme {
	if s == Dark {
		return Light
	}
	return Dark
}

// Theme is a resolved set of design tokens.
type Theme struct {
	Scheme     Scheme
	Colors     Tree
	Typography Tree
}

// Layer is a partial theme used as an override.
type Layer struct {
	Colors     Tree `json:"colors,omitempty" yaml:"colors,omitempty"`
	Typography Tree `json:"typography,omitempty" yaml:"typography,omitempty"`
}

// Resolver holds the caller's override layers.
type Resolver struct {
	Global Layer `json:"global,omitempty" yaml:"global,omitempty"`
	Light  Layer `json:"light,omitempty" yaml:"light,omitempty"`
	Dark   Layer `json:"dark,omitempty" yaml:"dark,omitempty"`
}

// Resolve merges defaults, then the global layer, then the layer for scheme.
func (r Resolver) Resolve(scheme Scheme) Theme {
	if scheme != Dark {
		scheme = Light
	}
	specific := r.Light
	if scheme == Dark {
		specific = r.Dark
	}
	base := Defaults(scheme)
	return Theme{
		Scheme:     scheme,
		Colors:     Merge(base.Colors, r.Global.Colors, specific.Colors),
		Typography: Merge(base.Typography, r.Global.Typography, specific.Typography),
	}
}

// Color returns the color token at a dotted path such as "text.primary".
func (t Theme) Color(path string) (string, bool) {
	value, ok := lookup(t.Colors, path)
	if !ok {
		return "", false
	}
	s, ok := value.(string)
	return s, ok
}

// MustColor returns the color at path or an empty string.
func (t Theme) MustColor(path string) string {
	c, _ := t.Color(path)
	return c
}

// TextStyle is a semantic text style with its font family resolved and its
// line height converted from a multiplier into points.
type TextStyle struct {
	FontFamily string
	FontSize   float64
	FontWeight string
	LineHeight float64
}

// TextStyle resolves a named entry of typography.textStyles.
func (t Theme) TextStyle(name string) (TextStyle, bool) {
	raw, ok := lookup(t.Typography, "textStyles."+name)
	if !ok {
		return TextStyle{}, false
	}
	style, ok := asTree(raw)
	if !ok {
		return TextStyle{}, false
	}
	size := number(style["fontSize"])
	family := fmt.Sprint(style["fontFamily"])
	if resolved, ok := lookup(t.Typography, "fontFamily."+family); ok {
		family = fmt.Sprint(resolved)
	}
	return TextStyle{
		FontFamily: family,
		FontSize:   size,
		FontWeight: fmt.Sprint(style["fontWeight"]),
		LineHeight: size * number(style["lineHeight"]),
	}, true
}

// Tokens flattens the theme into dotted keys ("colors.primary",
// "typography.fontSize.md") with string values.
func (t Theme) Tokens() map[string]string {
	out := make(map[string]string)
	flatten("colors", t.Colors, out)
	flatten("typography", t.Typography, out)
	return out
}

// clone copies the token trees so callers never share the memoised maps.
func (t Theme) clone() Theme {
	out := Theme{Scheme: t.Scheme}
	if t.Colors != nil {
		out.Colors = cloneTree(t.Colors)
	}
	if t.Typography != nil {
		out.Typography = cloneTree(t.Typography)
	}
	return out
}

// Provider memoises resolution for the current scheme. It is safe for
// concurrent use.
type Provider struct {
	mu       sync.RWMutex
	resolver Resolver
	scheme   Scheme
	current  *Theme
}

// NewProvider returns a provider resolving with r, starting at scheme.
func NewProvider(r Resolver, scheme Scheme) *Provider {
	return &Provider{resolver: r, scheme: scheme}
}

// Theme returns the resolved theme, resolving it on first use.
func (p *Provider) Theme() Theme {
	p.mu.RLock()
	if p.current != nil {
		t := p.current.clone()
		p.mu.RUnlock()
		return t
	}
	p.mu.RUnlock()

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		t := p.resolver.Resolve(p.scheme)
		p.current = &t
	}
	return p.current.clone()
}

// Scheme returns the active scheme.
func (p *Provider) Scheme() Scheme {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.scheme
}

// SetScheme switches scheme, discarding the memoised theme when it changes.
func (p *Provider) SetScheme(scheme Scheme) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if scheme == p.scheme {
		return
	}
	p.scheme = scheme
	p.current = nil
}

// Toggle flips the scheme and returns the newly resolved theme.
func (p *Provider) Toggle() Theme {
	p.SetScheme(p.Scheme().Toggle())
	return p.Theme()
}

// SetOverrides replaces the override layers.
func (p *Provider) SetOverrides(r Resolver) {
	p.mu.Lock()
	p.resolver = r
	p.current = nil
	p.mu.Unlock()
}

func lookup(tree Tree, path string) (any, bool) {
	var current any = tree
	for _, segment := range strings.Split(path, ".") {
		node, ok := asTree(current)
		if !ok {
			return nil, false
		}
		current, ok = node[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func flatten(prefix string, tree Tree, out map[string]string) {
	keys := make([]string, 0, len(tree))
	for key := range tree {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		path := prefix + "." + key
		if child, ok := asTree(tree[key]); ok {
			flatten(path, child, out)
			continue
		}
		out[path] = fmt.Sprint(tree[key])
	}
}

func number(value any) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	default:
		return 0
	}
}
