package steps_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-onboarding/pkg/steps"
)

func multiQuestion() steps.QuestionPayload {
	return steps.QuestionPayload{
		Title:          "Which sports do you play?",
		MultipleAnswer: true,
		Answers: []steps.Answer{
			{Label: "Running", Value: "running"},
			{Label: "Cycling", Value: "cycling"},
			{Label: "None", Value: steps.NoneOfTheAbove},
		},
	}
}

func TestToggleMultipleAnswer(t *testing.T) {
	q := multiQuestion()

	tests := []struct {
		name      string
		selection []string
		tap       string
		want      []string
	}{
		{name: "add first", selection: nil, tap: "running", want: []string{"running"}},
		{name: "add second", selection: []string{"running"}, tap: "cycling", want: []string{"running", "cycling"}},
		{name: "remove existing", selection: []string{"running", "cycling"}, tap: "running", want: []string{"cycling"}},
		{name: "none clears others", selection: []string{"running", "cycling"}, tap: steps.NoneOfTheAbove, want: []string{steps.NoneOfTheAbove}},
		{name: "other clears none", selection: []string{steps.NoneOfTheAbove}, tap: "cycling", want: []string{"cycling"}},
		{name: "none toggles off", selection: []string{steps.NoneOfTheAbove}, tap: steps.NoneOfTheAbove, want: []string{}},
		{name: "unknown ignored", selection: []string{"running"}, tap: "swimming", want: []string{"running"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := q.Toggle(tt.selection, tt.tap)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("toggle mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestToggleSingleAnswerReplaces(t *testing.T) {
	q := multiQuestion()
	q.MultipleAnswer = false

	got := q.Toggle([]string{"running"}, "cycling")
	if diff := cmp.Diff([]string{"cycling"}, got); diff != "" {
		t.Fatalf("toggle mismatch (-want +got):\n%s", diff)
	}
	if result := q.Result(got); result != "cycling" {
		t.Fatalf("Result = %v, want cycling", result)
	}
}

func TestToggleDoesNotMutateSelection(t *testing.T) {
	q := multiQuestion()
	selection := []string{"running", "cycling"}
	_ = q.Toggle(selection, "running")
	if diff := cmp.Diff([]string{"running", "cycling"}, selection); diff != "" {
		t.Fatalf("input selection mutated (-want +got):\n%s", diff)
	}
}

func TestValidateRejectsDuplicateAnswerValues(t *testing.T) {
	step := mustStep(t, `{
		"id": "q",
		"type": "Question",
		"payload": {
			"title": "t",
			"multipleAnswer": false,
			"answers": [{"label": "A", "value": "a"}, {"label": "B", "value": "a"}]
		}
	}`)
	_, err := steps.Validate(step)
	if err == nil {
		t.Fatalf("expected duplicate values to fail")
	}
}
