package theme_test

import (
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-onboarding/pkg/theme"
)

func TestResolveDefaultsPerScheme(t *testing.T) {
	var r theme.Resolver

	light := r.Resolve(theme.Light)
	if got := light.MustColor("primary"); got != "#264653" {
		t.Fatalf("light primary = %q", got)
	}
	dark := r.Resolve(theme.Dark)
	if got := dark.MustColor("primary"); got != "#c8ff2f" {
		t.Fatalf("dark primary = %q", got)
	}
	if got := dark.MustColor("text.primary"); got != "#ffffff" {
		t.Fatalf("dark text.primary = %q", got)
	}
}

func TestResolveMergeOrderSchemeWins(t *testing.T) {
	r := theme.Resolver{
		Global: theme.Layer{Colors: theme.Tree{
			"primary": "#111111",
			"text":    theme.Tree{"primary": "#222222"},
		}},
		Dark: theme.Layer{Colors: theme.Tree{"primary": "#333333"}},
	}

	dark := r.Resolve(theme.Dark)
	if got := dark.MustColor("primary"); got != "#333333" {
		t.Fatalf("scheme override should win, got %q", got)
	}
	if got := dark.MustColor("text.primary"); got != "#222222" {
		t.Fatalf("global override should apply, got %q", got)
	}
	if got := dark.MustColor("text.secondary"); got != "#d1d1d1" {
		t.Fatalf("untouched sibling should keep default, got %q", got)
	}

	light := r.Resolve(theme.Light)
	if got := light.MustColor("primary"); got != "#111111" {
		t.Fatalf("light should only see the global override, got %q", got)
	}
}

func TestMergeReplacesArraysAndKeepsInputs(t *testing.T) {
	base := theme.Tree{
		"list":  []any{"a", "b"},
		"group": theme.Tree{"x": 1, "y": 2},
	}
	overlay := theme.Tree{
		"list":  []any{"c"},
		"group": theme.Tree{"y": 3},
	}

	merged := theme.Merge(base, overlay)

	want := theme.Tree{
		"list":  []any{"c"},
		"group": theme.Tree{"x": 1, "y": 3},
	}
	if diff := cmp.Diff(want, merged); diff != "" {
		t.Fatalf("merge mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(theme.Tree{"x": 1, "y": 2}, base["group"]); diff != "" {
		t.Fatalf("base mutated (-want +got):\n%s", diff)
	}
}

func TestResolveIsIdempotentAndIndependent(t *testing.T) {
	r := theme.Resolver{Global: theme.Layer{Colors: theme.Tree{"primary": "#abcdef"}}}

	first := r.Resolve(theme.Light)
	second := r.Resolve(theme.Light)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("resolution not idempotent (-want +got):\n%s", diff)
	}

	first.Colors["primary"] = "#000000"
	if got := second.MustColor("primary"); got != "#abcdef" {
		t.Fatalf("resolved themes share state, got %q", got)
	}
}

func TestTextStyleResolvesFamilyAndLineHeight(t *testing.T) {
	r := theme.Resolver{Global: theme.Layer{Typography: theme.Tree{
		"fontFamily": theme.Tree{"title": "Ubuntu"},
	}}}

	style, ok := r.Resolve(theme.Light).TextStyle("heading1")
	if !ok {
		t.Fatalf("heading1 missing")
	}
	want := theme.TextStyle{FontFamily: "Ubuntu", FontSize: 32, FontWeight: "600", LineHeight: 40}
	if diff := cmp.Diff(want, style); diff != "" {
		t.Fatalf("text style mismatch (-want +got):\n%s", diff)
	}
}

func TestProviderToggle(t *testing.T) {
	p := theme.NewProvider(theme.Resolver{}, theme.Light)
	before := p.Theme()

	after := p.Toggle()
	if after.Scheme != theme.Dark || p.Scheme() != theme.Dark {
		t.Fatalf("expected dark after toggle")
	}
	if before.MustColor("primary") != "#264653" {
		t.Fatalf("previous theme mutated by toggle")
	}
}

func TestProviderThemeIsolatesCallers(t *testing.T) {
	p := theme.NewProvider(theme.Resolver{}, theme.Light)

	first := p.Theme()
	first.Colors["primary"] = "#ff0000"
	if text, ok := first.Colors["text"].(map[string]any); ok {
		text["primary"] = "#00ff00"
	}
	first.Typography["fontFamily"] = nil

	second := p.Theme()
	if got := second.MustColor("primary"); got != "#264653" {
		t.Fatalf("memoised primary changed to %q", got)
	}
	if got := second.MustColor("text.primary"); got == "#00ff00" {
		t.Fatalf("memoised nested token changed to %q", got)
	}
	if second.Typography["fontFamily"] == nil {
		t.Fatal("memoised typography changed")
	}
}

func TestLoadOverridesYAML(t *testing.T) {
	fsys := fstest.MapFS{
		"theme.yaml": {Data: []byte(`
global:
  colors:
    primary: "#101010"
dark:
  typography:
    fontSize:
      md: 18
`)},
	}

	r, err := theme.LoadOverrides(fsys, "theme.yaml")
	if err != nil {
		t.Fatalf("LoadOverrides: %v", err)
	}
	dark := r.Resolve(theme.Dark)
	if got := dark.MustColor("primary"); got != "#101010" {
		t.Fatalf("primary = %q", got)
	}
	if got := dark.Tokens()["typography.fontSize.md"]; got != "18" {
		t.Fatalf("fontSize.md = %q", got)
	}
}

func TestSelectorPublishesDarkVariant(t *testing.T) {
	selector := theme.NewSelector()
	if err := selector.Register("studio", theme.Resolver{}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := selector.Register("studio", theme.Resolver{}); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}

	sel, err := selector.Select("", "dark")
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if sel.Theme != "studio" || sel.Variant != "dark" {
		t.Fatalf("unexpected selection %+v", sel)
	}
	tokens := theme.SelectionTokens(sel)
	if tokens["colors.primary"] != "#c8ff2f" {
		t.Fatalf("dark variant token = %q", tokens["colors.primary"])
	}
	cfg := theme.RendererConfig(sel)
	if cfg.CSSVars["--text-primary"] != "#ffffff" {
		t.Fatalf("css var = %q", cfg.CSSVars["--text-primary"])
	}

	if _, err := selector.Select("missing", ""); err == nil {
		t.Fatalf("expected unknown theme to fail")
	}
}

func TestParseScheme(t *testing.T) {
	for input, want := range map[string]theme.Scheme{"": theme.Light, "Dark": theme.Dark, "light": theme.Light} {
		got, err := theme.ParseScheme(input)
		if err != nil || got != want {
			t.Fatalf("ParseScheme(%q) = %q, %v", input, got, err)
		}
	}
	if _, err := theme.ParseScheme("sepia"); err == nil {
		t.Fatalf("expected error")
	}
}
