package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-onboarding/pkg/render"
	"github.com/goliatone/go-onboarding/pkg/steps"
	"github.com/goliatone/go-onboarding/pkg/theme"
)

type stubDriver struct {
	inputs   []string
	confirms []bool
	selects  []int
	infos    []string
	prompts  []string
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.prompts = append(s.prompts, cfg.Message)
	if len(s.inputs) == 0 {
		return "", errors.New("stub: no input scripted")
	}
	v := s.inputs[0]
	s.inputs = s.inputs[1:]
	return v, nil
}

func (s *stubDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	s.prompts = append(s.prompts, cfg.Message)
	if len(s.confirms) == 0 {
		return false, errors.New("stub: no confirm scripted")
	}
	v := s.confirms[0]
	s.confirms = s.confirms[1:]
	return v, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.prompts = append(s.prompts, strings.Join(cfg.Options, "|"))
	if len(s.selects) == 0 {
		return 0, errors.New("stub: no select scripted")
	}
	v := s.selects[0]
	s.selects = s.selects[1:]
	return v, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infos = append(s.infos, msg)
	return nil
}

func renderStep(t *testing.T, driver *stubDriver, raw string, components render.Components) any {
	t.Helper()
	var step steps.Step
	if err := json.Unmarshal([]byte(raw), &step); err != nil {
		t.Fatalf("unmarshal step: %v", err)
	}
	validated, err := steps.Validate(step)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}

	r := New(WithPromptDriver(driver), WithSleep(func(context.Context, time.Duration) error { return nil }))
	registry := render.NewRegistry()
	if err := r.Register(registry); err != nil {
		t.Fatalf("register: %v", err)
	}
	renderer, err := registry.Get(step.Type)
	if err != nil {
		t.Fatalf("get renderer: %v", err)
	}

	var got any
	calls := 0
	req := render.Request{
		Step:       validated,
		Theme:      theme.Defaults(theme.Light),
		Components: components,
	}
	if err := renderer.Render(context.Background(), req, func(result any) {
		calls++
		got = result
	}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected one continuation, got %d", calls)
	}
	return got
}

const multiQuestionStep = `{
	"id": "q1",
	"type": "Question",
	"payload": {
		"title": "What brings you here?",
		"multipleAnswer": true,
		"answers": [
			{"label": "Sleep", "value": "sleep"},
			{"label": "Focus", "value": "focus"},
			{"label": "None of the above", "value": "None of the above"}
		]
	}
}`

func TestRendererCoversEveryStepType(t *testing.T) {
	registry := render.NewRegistry()
	if err := New(WithPromptDriver(&stubDriver{})).Register(registry); err != nil {
		t.Fatalf("register: %v", err)
	}
	if missing := registry.Missing(); len(missing) != 0 {
		t.Fatalf("missing renderers: %v", missing)
	}
}

func TestQuestionSingleAnswer(t *testing.T) {
	driver := &stubDriver{selects: []int{1}}
	raw := `{"id":"q","type":"Question","payload":{"title":"Pick","multipleAnswer":false,"answers":[{"label":"A","value":"a"},{"label":"B","value":"b"}]}}`
	got := renderStep(t, driver, raw, render.Components{})
	if diff := cmp.Diff("b", got); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestQuestionMultipleAnswerToggles(t *testing.T) {
	// sleep, focus, none of the above (clears both), sleep, continue
	driver := &stubDriver{selects: []int{0, 1, 2, 0, 3}}
	got := renderStep(t, driver, multiQuestionStep, render.Components{})
	if diff := cmp.Diff([]string{"sleep"}, got); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
	last := driver.prompts[len(driver.prompts)-1]
	if !strings.HasPrefix(last, "[x] Sleep|[ ] Focus|[ ] None of the above") {
		t.Fatalf("unexpected final options %q", last)
	}
}

func TestQuestionMultipleAnswerRequiresSelection(t *testing.T) {
	driver := &stubDriver{selects: []int{3, 1, 3}}
	got := renderStep(t, driver, multiQuestionStep, render.Components{})
	if diff := cmp.Diff([]string{"focus"}, got); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
	if !contains(driver.infos, "Select at least one answer") {
		t.Fatalf("expected a selection warning, got %v", driver.infos)
	}
}

func TestQuestionWithoutAnswersContinues(t *testing.T) {
	cases := []struct {
		name     string
		multiple bool
		want     any
	}{
		{name: "multiple", multiple: true, want: []string(nil)},
		{name: "single", multiple: false, want: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			driver := &stubDriver{selects: []int{0}}
			raw := fmt.Sprintf(`{"id":"q","type":"Question","payload":{"title":"Anything?","multipleAnswer":%t,"answers":[]}}`, tc.multiple)
			got := renderStep(t, driver, raw, render.Components{})
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("result mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff([]string{"Continue"}, driver.prompts); diff != "" {
				t.Fatalf("prompts mismatch (-want +got):\n%s", diff)
			}
			if contains(driver.infos, "Select at least one answer") {
				t.Fatalf("unexpected selection warning: %v", driver.infos)
			}
		})
	}
}

func TestQuestionAnswersListOverride(t *testing.T) {
	driver := &stubDriver{}
	components := render.Components{
		AnswersList: func(_ context.Context, props render.AnswersListProps) ([]string, error) {
			return []string{props.Question.Answers[1].Value}, nil
		},
		AnswerButton: func(render.AnswerButtonProps) string {
			t.Fatal("answer button must not be used when the list is overridden")
			return ""
		},
	}
	got := renderStep(t, driver, multiQuestionStep, components)
	if diff := cmp.Diff([]string{"focus"}, got); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
	if len(driver.prompts) != 0 {
		t.Fatalf("expected no prompts, got %v", driver.prompts)
	}
}

func TestPickerNumericRepromptsOnInvalidInput(t *testing.T) {
	driver := &stubDriver{inputs: []string{"abc", "900", "72.5"}}
	raw := `{"id":"p","type":"Picker","payload":{"title":"Weight","pickerType":"weight"}}`
	got := renderStep(t, driver, raw, render.Components{})
	if diff := cmp.Diff(72.5, got); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
	if len(driver.prompts) != 3 {
		t.Fatalf("expected three prompts, got %d", len(driver.prompts))
	}
}

func TestPickerDateAndGender(t *testing.T) {
	driver := &stubDriver{inputs: []string{"1990/01/01", "1990-01-01"}}
	raw := `{"id":"p","type":"Picker","payload":{"title":"Birthday","pickerType":"date"}}`
	if diff := cmp.Diff("1990-01-01", renderStep(t, driver, raw, render.Components{})); diff != "" {
		t.Fatalf("date mismatch (-want +got):\n%s", diff)
	}

	driver = &stubDriver{selects: []int{1}}
	raw = `{"id":"g","type":"Picker","payload":{"title":"Gender","pickerType":"gender"}}`
	if diff := cmp.Diff("female", renderStep(t, driver, raw, render.Components{})); diff != "" {
		t.Fatalf("gender mismatch (-want +got):\n%s", diff)
	}
}

func TestRatingsConfirm(t *testing.T) {
	driver := &stubDriver{confirms: []bool{true}}
	raw := `{"id":"r","type":"Ratings","payload":{"title":"Loved","subtitle":"by many","socialProofs":[{"numberOfStar":4,"content":"Great","authorName":"Ana"}]}}`
	got := renderStep(t, driver, raw, render.Components{})
	if got != true {
		t.Fatalf("expected true, got %v", got)
	}
	if diff := cmp.Diff([]string{steps.DefaultRateTheAppButtonLabel}, driver.prompts); diff != "" {
		t.Fatalf("prompt mismatch (-want +got):\n%s", diff)
	}
}

func TestCarouselAndMediaContentAwaitContinue(t *testing.T) {
	driver := &stubDriver{selects: []int{0}}
	raw := `{"id":"c","type":"Carousel","continueButtonLabel":"Next","payload":{"screens":[{"mediaUrl":"https://x/1.png","title":"One"},{"mediaUrl":"https://x/2.png","title":"Two"}]}}`
	if got := renderStep(t, driver, raw, render.Components{}); got != nil {
		t.Fatalf("expected nil result, got %v", got)
	}
	if diff := cmp.Diff([]string{"Next"}, driver.prompts); diff != "" {
		t.Fatalf("prompt mismatch (-want +got):\n%s", diff)
	}

	driver = &stubDriver{selects: []int{0}}
	raw = `{"id":"m","type":"MediaContent","payload":{"title":"Watch","mediaSource":{"type":"image","localPathId":"hero"}}}`
	if got := renderStep(t, driver, raw, render.Components{}); got != nil {
		t.Fatalf("expected nil result, got %v", got)
	}
}

func TestLoaderPacesSteps(t *testing.T) {
	var waits []time.Duration
	driver := &stubDriver{}
	raw := `{"id":"l","type":"Loader","displayProgressHeader":false,"payload":{"title":"Preparing","duration":1000,"steps":[{"label":"a","completed":"A"},{"label":"b","completed":"B"}]}}`
	var step steps.Step
	if err := json.Unmarshal([]byte(raw), &step); err != nil {
		t.Fatal(err)
	}
	validated, err := steps.Validate(step)
	if err != nil {
		t.Fatal(err)
	}
	r := New(WithPromptDriver(driver), WithSleep(func(_ context.Context, d time.Duration) error {
		waits = append(waits, d)
		return nil
	}))
	err = r.renderLoader(context.Background(), render.Request{Step: validated, Theme: theme.Defaults(theme.Dark)}, func(any) {})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if diff := cmp.Diff([]time.Duration{500 * time.Millisecond, 500 * time.Millisecond}, waits); diff != "" {
		t.Fatalf("waits mismatch (-want +got):\n%s", diff)
	}
}

func TestLoaderStopsOnCancel(t *testing.T) {
	raw := `{"id":"l","type":"Loader","payload":{"title":"Preparing","steps":[{"label":"a","completed":"A"}]}}`
	var step steps.Step
	if err := json.Unmarshal([]byte(raw), &step); err != nil {
		t.Fatal(err)
	}
	validated, err := steps.Validate(step)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := New(WithPromptDriver(&stubDriver{}))
	called := false
	err = r.renderLoader(ctx, render.Request{Step: validated, Theme: theme.Defaults(theme.Light)}, func(any) { called = true })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if called {
		t.Fatal("continuation must not run after cancellation")
	}
}

func TestCommitmentVariants(t *testing.T) {
	driver := &stubDriver{inputs: []string{"  Ana  "}}
	raw := `{"id":"s","type":"Commitment","payload":{"title":"Commit","description":"I will"}}`
	if diff := cmp.Diff("Ana", renderStep(t, driver, raw, render.Components{})); diff != "" {
		t.Fatalf("signature mismatch (-want +got):\n%s", diff)
	}

	driver = &stubDriver{confirms: []bool{true}}
	raw = `{"id":"s","type":"Commitment","payload":{"title":"Commit","variant":"simple","commitments":[{"text":"Daily"}]}}`
	if got := renderStep(t, driver, raw, render.Components{}); got != true {
		t.Fatalf("expected true, got %v", got)
	}
}

func TestPresenterShowsPanelAndPlaceholder(t *testing.T) {
	driver := &stubDriver{}
	r := New(WithPromptDriver(driver), WithPrefixes(Prefixes{ErrorPrefix: "! "}), WithTheme(theme.Defaults(theme.Dark)))
	ctx := context.Background()

	if err := r.ShowPlaceholder(ctx, render.PlaceholderView{Message: "Screen Qestion not implemented", Suggestion: steps.TypeQuestion}); err != nil {
		t.Fatal(err)
	}
	if err := r.ShowPanel(ctx, render.Panel{Title: render.TitleInvalidPayload, Type: steps.TypePicker, Lines: []string{"• payload.title: is required"}}); err != nil {
		t.Fatal(err)
	}
	want := []string{
		"! Screen Qestion not implemented (did you mean Question?)",
		"! Invalid Step Payload [Picker]\n• payload.title: is required",
	}
	if diff := cmp.Diff(want, driver.infos); diff != "" {
		t.Fatalf("infos mismatch (-want +got):\n%s", diff)
	}
}
