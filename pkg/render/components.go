package render

import (
	"context"

	"github.com/goliatone/go-onboarding/pkg/steps"
	"github.com/goliatone/go-onboarding/pkg/theme"
)

// AnswerButtonProps describes one answer as it is about to be drawn.
type AnswerButtonProps struct {
	Answer   steps.Answer
	Index    int
	Selected bool
	Theme    theme.Theme
}

// AnswersListProps is handed to an AnswersList override.
type AnswersListProps struct {
	Question steps.QuestionPayload
	Theme    theme.Theme
}

// Components are caller-supplied overrides for built-in presentation.
// AnswersList replaces the whole answer interaction of a Question step and
// takes precedence over AnswerButton, which only changes how each answer is
// labelled.
type Components struct {
	AnswerButton func(props AnswerButtonProps) string
	AnswersList  func(ctx context.Context, props AnswersListProps) ([]string, error)
}

// AnswerLabel formats an answer, using the AnswerButton override when set.
func (c Components) AnswerLabel(props AnswerButtonProps) string {
	if c.AnswerButton != nil {
		return c.AnswerButton(props)
	}
	label := props.Answer.Label
	if props.Answer.Icon != nil && *props.Answer.Icon != "" {
		label = *props.Answer.Icon + " " + label
	}
	return label
}

// HasAnswersList reports whether the answer interaction is overridden.
func (c Components) HasAnswersList() bool {
	return c.AnswersList != nil
}
