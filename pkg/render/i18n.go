package render

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingTranslator is passed to MissingTranslationHandler when no
// Translator is configured.
var ErrMissingTranslator = errors.New("render: translator not configured")

// Translator resolves localized strings.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingTranslationHandler decides what to show when a key cannot be
// translated.
type MissingTranslationHandler func(locale, key string, args []any, err error) string

func missingTranslationDefault(_ string, key string, args []any, _ error) string {
	if fallback := fallbackFromArgs(args); fallback != "" {
		return fallback
	}
	return key
}

func fallbackFromArgs(args []any) string {
	for _, arg := range args {
		if m, ok := arg.(map[string]any); ok {
			if s, ok := m["default"].(string); ok && strings.TrimSpace(s) != "" {
				return s
			}
		}
	}
	return ""
}

func translate(locale, key, fallback string, t Translator, onMissing MissingTranslationHandler) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}

	if t == nil {
		return onMissing(locale, key, []any{map[string]any{"default": fallback}}, ErrMissingTranslator)
	}

	result, err := t.Translate(locale, key)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}
	return onMissing(locale, key, []any{map[string]any{"default": fallback}}, err)
}

// TemplateI18nConfig configures template-level translation helpers.
type TemplateI18nConfig struct {
	// LocaleKey selects the key used to infer locale from template data when
	// callers pass a map instead of a raw string.
	LocaleKey string
	// FuncName customizes the translator helper name (defaults to "translate").
	FuncName  string
	OnMissing MissingTranslationHandler
}

// TemplateI18nFuncs returns helpers for template engines:
//
//	translate(localeSrc, key, fallback, ...args) string
//	current_locale(localeSrc) string
//
// localeSrc can be a locale string or a map holding one under
// cfg.LocaleKey. A leading string argument is the fallback shown when the
// key has no translation; the rest are format arguments.
func TemplateI18nFuncs(t Translator, cfg TemplateI18nConfig) map[string]any {
	localeKey := strings.TrimSpace(cfg.LocaleKey)
	if localeKey == "" {
		localeKey = "locale"
	}

	translateName := strings.TrimSpace(cfg.FuncName)
	if translateName == "" {
		translateName = "translate"
	}

	onMissing := cfg.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}

	return map[string]any{
		translateName: func(localeSrc any, key string, params ...any) string {
			key = strings.TrimSpace(key)
			if key == "" {
				return ""
			}
			var fallback string
			if len(params) > 0 {
				if s, ok := params[0].(string); ok {
					fallback = s
					params = params[1:]
				}
			}
			missingArgs := append([]any{map[string]any{"default": fallback}}, params...)

			locale := resolveLocale(localeSrc, localeKey)
			if t == nil {
				return onMissing(locale, key, missingArgs, ErrMissingTranslator)
			}
			msg, err := t.Translate(locale, key, params...)
			if err != nil || strings.TrimSpace(msg) == "" {
				return onMissing(locale, key, missingArgs, err)
			}
			return msg
		},
		"current_locale": func(localeSrc any) string {
			return resolveLocale(localeSrc, localeKey)
		},
	}
}

// MapTranslator is a Translator backed by locale -> key -> message maps.
type MapTranslator map[string]map[string]string

func (m MapTranslator) Translate(locale, key string, args ...any) (string, error) {
	messages, ok := m[locale]
	if !ok {
		if base, _, found := strings.Cut(locale, "-"); found {
			messages, ok = m[base]
		}
	}
	if !ok {
		return "", fmt.Errorf("render: no messages for locale %q", locale)
	}
	msg, ok := messages[key]
	if !ok {
		return "", fmt.Errorf("render: missing translation %q for %q", key, locale)
	}
	if len(args) > 0 && strings.Contains(msg, "%") {
		return fmt.Sprintf(msg, args...), nil
	}
	return msg, nil
}

func resolveLocale(src any, key string) string {
	switch data := src.(type) {
	case string:
		return data
	case map[string]any:
		if v, ok := data[key].(string); ok {
			return v
		}
	case map[string]string:
		return data[key]
	}
	return ""
}
