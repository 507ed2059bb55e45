package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-onboarding/pkg/steps"
)

// Panel titles.
const (
	TitleInvalidPayload = "Invalid Step Payload"
	TitleFailure        = "Something went wrong"
)

// Translation keys used by the dispatcher's own screens.
const (
	KeyInvalidPayload = "onboarding.error.invalid_payload"
	KeyFailure        = "onboarding.error.failure"
	KeyNotImplemented = "onboarding.placeholder.not_implemented"
)

// Panel is the error screen shown in place of a step.
type Panel struct {
	Title  string
	StepID string
	Type   steps.Type
	Lines  []string
	Err    error
}

// String renders the panel as plain text.
func (p Panel) String() string {
	var b strings.Builder
	b.WriteString(p.Title)
	if p.Type != "" {
		fmt.Fprintf(&b, " (%s)", p.Type)
	}
	for _, line := range p.Lines {
		b.WriteString("\n")
		b.WriteString(line)
	}
	return b.String()
}

// PanelFor builds the panel for err. Validation errors list one line per
// issue; anything else is a generic failure.
func PanelFor(step steps.Step, err error, t func(key, fallback string) string) Panel {
	if t == nil {
		t = func(_, fallback string) string { return fallback }
	}

	panel := Panel{StepID: step.ID, Type: step.Type, Err: err}

	var verr *steps.ValidationError
	if errors.As(err, &verr) {
		panel.Title = t(KeyInvalidPayload, TitleInvalidPayload)
		lines := make([]string, 0, len(verr.Issues))
		for _, issue := range verr.Issues {
			lines = append(lines, "• "+issue.String())
		}
		panel.Lines = normalizeMessages(lines)
		return panel
	}

	panel.Title = t(KeyFailure, TitleFailure)
	if err != nil {
		panel.Lines = normalizeMessages([]string{err.Error()})
	}
	return panel
}

// PanicError wraps a value recovered from a renderer panic.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("render: renderer panicked: %v", e.Value)
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
