package steps

import (
	"fmt"
	"slices"

	"github.com/getkin/kin-openapi/openapi3"
)

// NoneOfTheAbove is the answer value that excludes every other answer in a
// multiple-answer question.
const NoneOfTheAbove = "None of the above"

// Answer is one selectable option of a Question step.
type Answer struct {
	Label       string  `json:"label"`
	Value       string  `json:"value"`
	Icon        *string `json:"icon,omitempty"`
	Description *string `json:"description,omitempty"`
}

// QuestionPayload asks the user to pick one or more answers.
type QuestionPayload struct {
	Answers        []Answer `json:"answers"`
	Title          string   `json:"title"`
	Subtitle       *string  `json:"subtitle,omitempty"`
	MultipleAnswer bool     `json:"multipleAnswer"`
	InfoBox        *InfoBox `json:"infoBox,omitempty"`
}

var questionSchema = openapi3.NewObjectSchema().
	WithProperty("answers", openapi3.NewArraySchema().WithItems(
		openapi3.NewObjectSchema().
			WithProperty("label", openapi3.NewStringSchema()).
			WithProperty("value", openapi3.NewStringSchema()).
			WithProperty("icon", nullableString()).
			WithProperty("description", nullableString()).
			WithRequired([]string{"label", "value"}),
	)).
	WithProperty("title", openapi3.NewStringSchema()).
	WithProperty("subtitle", nullableString()).
	WithProperty("multipleAnswer", openapi3.NewBoolSchema()).
	WithProperty("infoBox", openapi3.NewObjectSchema().
		WithProperty("title", openapi3.NewStringSchema()).
		WithProperty("content", openapi3.NewStringSchema()).
		WithRequired([]string{"title", "content"}).
		WithNullable()).
	WithRequired([]string{"answers", "title", "multipleAnswer"})

func (p *QuestionPayload) normalize() []Issue {
	var issues []Issue
	seen := make(map[string]int, len(p.Answers))
	for idx, answer := range p.Answers {
		if first, exists := seen[answer.Value]; exists {
			issues = append(issues, Issue{
				Path:    joinPath(payloadPath, "answers", fmt.Sprint(idx), "value"),
				Message: fmt.Sprintf("duplicate answer value %q (first used by answer %d)", answer.Value, first),
			})
			continue
		}
		seen[answer.Value] = idx
	}
	return issues
}

// Answer returns the answer carrying value.
func (p QuestionPayload) Answer(value string) (Answer, bool) {
	for _, answer := range p.Answers {
		if answer.Value == value {
			return answer, true
		}
	}
	return Answer{}, false
}

// Toggle applies a tap on value to the current selection and returns the new
// selection. Single-answer questions replace the selection. Multiple-answer
// questions toggle membership, with NoneOfTheAbove clearing every other
// answer and any other answer clearing NoneOfTheAbove. Values that are not
// answers of the question leave the selection untouched.
func (p QuestionPayload) Toggle(selection []string, value string) []string {
	if _, ok := p.Answer(value); !ok {
		return slices.Clone(selection)
	}
	if !p.MultipleAnswer {
		return []string{value}
	}
	if slices.Contains(selection, value) {
		return slices.DeleteFunc(slices.Clone(selection), func(v string) bool {
			return v == value
		})
	}
	if value == NoneOfTheAbove {
		return []string{value}
	}
	next := slices.DeleteFunc(slices.Clone(selection), func(v string) bool {
		return v == NoneOfTheAbove
	})
	return append(next, value)
}

// Result converts a selection into the value handed to the continuation: the
// single value for single-answer questions, the slice otherwise.
func (p QuestionPayload) Result(selection []string) any {
	if !p.MultipleAnswer {
		if len(selection) == 0 {
			return ""
		}
		return selection[0]
	}
	return slices.Clone(selection)
}
