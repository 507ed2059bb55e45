package steps

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidPayload marks a step whose payload does not match its type's
	// schema. ValidationError unwraps to it.
	ErrInvalidPayload = errors.New("steps: invalid step payload")
	// ErrUnknownType is returned when a step type is outside the closed set.
	ErrUnknownType = errors.New("steps: unknown step type")
)

// Issue represents one violated constraint. Path uses dotted segments rooted
// at the step envelope (e.g. "payload.answers.1.value").
type Issue struct {
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	path := i.Path
	if path == "" {
		path = "root"
	}
	return path + ": " + i.Message
}

// ValidationError lists every issue found while validating a step.
type ValidationError struct {
	StepID string
	Type   Type
	Issues []Issue
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ErrInvalidPayload.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.String())
	}
	return fmt.Sprintf("steps: invalid %s step %q: %s", e.Type, e.StepID, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidPayload
}

// Paths returns the issue paths in report order.
func (e *ValidationError) Paths() []string {
	if e == nil {
		return nil
	}
	out := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		out = append(out, issue.Path)
	}
	return out
}
