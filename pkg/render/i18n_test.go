package render_test

import (
	"testing"

	"github.com/goliatone/go-onboarding/pkg/render"
)

func TestTemplateI18nFuncsTranslate(t *testing.T) {
	translator := render.MapTranslator{
		"es": {"onboarding.continue": "Continuar", "steps.count": "%d pasos"},
	}
	funcs := render.TemplateI18nFuncs(translator, render.TemplateI18nConfig{})
	translate := funcs["translate"].(func(any, string, ...any) string)
	currentLocale := funcs["current_locale"].(func(any) string)

	cases := []struct {
		name   string
		locale any
		key    string
		params []any
		want   string
	}{
		{name: "string locale", locale: "es", key: "onboarding.continue", params: []any{"Continue"}, want: "Continuar"},
		{name: "regional locale", locale: "es-MX", key: "onboarding.continue", params: []any{"Continue"}, want: "Continuar"},
		{name: "map locale", locale: map[string]any{"locale": "es"}, key: "onboarding.continue", want: "Continuar"},
		{name: "format args", locale: "es", key: "steps.count", params: []any{"%d steps", 3}, want: "3 pasos"},
		{name: "missing key uses fallback", locale: "es", key: "picker.title", params: []any{"Age"}, want: "Age"},
		{name: "missing locale uses fallback", locale: "fr", key: "onboarding.continue", params: []any{"Continue"}, want: "Continue"},
		{name: "no fallback returns key", locale: "fr", key: "picker.title", want: "picker.title"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := translate(tc.locale, tc.key, tc.params...); got != tc.want {
				t.Fatalf("translate = %q, want %q", got, tc.want)
			}
		})
	}

	if got := currentLocale(map[string]string{"locale": "de"}); got != "de" {
		t.Fatalf("current_locale = %q", got)
	}
}

func TestTemplateI18nFuncsWithoutTranslator(t *testing.T) {
	var missed string
	funcs := render.TemplateI18nFuncs(nil, render.TemplateI18nConfig{
		FuncName: "tr",
		OnMissing: func(locale, key string, _ []any, _ error) string {
			missed = locale + "/" + key
			return "?"
		},
	})
	tr := funcs["tr"].(func(any, string, ...any) string)
	if got := tr("en", "onboarding.continue", "Continue"); got != "?" {
		t.Fatalf("tr = %q", got)
	}
	if missed != "en/onboarding.continue" {
		t.Fatalf("missing handler saw %q", missed)
	}
}
