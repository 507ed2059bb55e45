package render_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-onboarding/pkg/render"
	"github.com/goliatone/go-onboarding/pkg/steps"
)

type capturePresenter struct {
	placeholders []render.PlaceholderView
	panels       []render.Panel
}

func (c *capturePresenter) ShowPlaceholder(_ context.Context, view render.PlaceholderView) error {
	c.placeholders = append(c.placeholders, view)
	return nil
}

func (c *capturePresenter) ShowPanel(_ context.Context, panel render.Panel) error {
	c.panels = append(c.panels, panel)
	return nil
}

type continuations struct {
	calls []any
}

func (c *continuations) next(result any) {
	c.calls = append(c.calls, result)
}

func pickerStep(payload string) steps.Step {
	return steps.Step{ID: "p1", Type: steps.TypePicker, Payload: json.RawMessage(payload)}
}

func TestDispatchUnknownTypeProductionSkipsOnce(t *testing.T) {
	presenter := &capturePresenter{}
	d := render.NewDispatcher(render.WithPresenter(presenter))
	var cont continuations

	outcome := d.Dispatch(context.Background(), steps.Step{ID: "x", Type: "Paywall"}, cont.next)

	if outcome.Kind != render.OutcomeSkipped {
		t.Fatalf("kind = %s, want skipped", outcome.Kind)
	}
	if diff := cmp.Diff([]any{render.NotImplemented}, cont.calls); diff != "" {
		t.Fatalf("continuation mismatch (-want +got):\n%s", diff)
	}
	if len(presenter.placeholders) != 0 {
		t.Fatalf("production mode must not show placeholders")
	}
}

func TestDispatchUnknownTypeSandboxShowsPlaceholder(t *testing.T) {
	presenter := &capturePresenter{}
	d := render.NewDispatcher(render.WithPresenter(presenter), render.WithSandbox(true))
	var cont continuations

	outcome := d.Dispatch(context.Background(), steps.Step{ID: "x", Type: "Qestion"}, cont.next)

	if outcome.Kind != render.OutcomePlaceholder {
		t.Fatalf("kind = %s, want placeholder", outcome.Kind)
	}
	if len(cont.calls) != 0 {
		t.Fatalf("sandbox placeholder must not continue, got %v", cont.calls)
	}
	want := []render.PlaceholderView{{
		StepID:     "x",
		Type:       "Qestion",
		Message:    "Screen Qestion not implemented",
		Suggestion: steps.TypeQuestion,
	}}
	if diff := cmp.Diff(want, presenter.placeholders); diff != "" {
		t.Fatalf("placeholder mismatch (-want +got):\n%s", diff)
	}
}

func TestDispatchInvalidPayloadShowsPanel(t *testing.T) {
	presenter := &capturePresenter{}
	registry := render.NewRegistry()
	registry.MustRegister(render.StepRendererFunc(steps.TypePicker, func(context.Context, render.Request, render.Continue) error {
		t.Fatalf("renderer must not run for invalid payloads")
		return nil
	}))
	d := render.NewDispatcher(render.WithPresenter(presenter), render.WithRegistry(registry))
	var cont continuations

	outcome := d.Dispatch(context.Background(), pickerStep(`{"title": "Age"}`), cont.next)

	if outcome.Kind != render.OutcomeFailed || !errors.Is(outcome.Err, steps.ErrInvalidPayload) {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
	if len(cont.calls) != 0 {
		t.Fatalf("failed step must not continue")
	}
	if len(presenter.panels) != 1 {
		t.Fatalf("expected one panel, got %d", len(presenter.panels))
	}
	panel := presenter.panels[0]
	if panel.Title != render.TitleInvalidPayload || panel.Type != steps.TypePicker {
		t.Fatalf("unexpected panel %+v", panel)
	}
	if len(panel.Lines) == 0 || !strings.HasPrefix(panel.Lines[0], "• payload.pickerType") {
		t.Fatalf("expected pickerType issue line, got %v", panel.Lines)
	}
}

func TestDispatchRecoversRendererPanic(t *testing.T) {
	presenter := &capturePresenter{}
	registry := render.NewRegistry()
	registry.MustRegister(render.StepRendererFunc(steps.TypePicker, func(context.Context, render.Request, render.Continue) error {
		panic("boom")
	}))
	d := render.NewDispatcher(render.WithPresenter(presenter), render.WithRegistry(registry))
	var cont continuations

	outcome := d.Dispatch(context.Background(), pickerStep(`{"title": "Age", "pickerType": "age"}`), cont.next)

	var perr *render.PanicError
	if outcome.Kind != render.OutcomeFailed || !errors.As(outcome.Err, &perr) {
		t.Fatalf("expected panic failure, got %+v", outcome)
	}
	if len(presenter.panels) != 1 || presenter.panels[0].Title != render.TitleFailure {
		t.Fatalf("expected generic failure panel, got %+v", presenter.panels)
	}
	if len(cont.calls) != 0 {
		t.Fatalf("failed step must not continue")
	}
}

func TestDispatchMissingRendererFails(t *testing.T) {
	presenter := &capturePresenter{}
	d := render.NewDispatcher(render.WithPresenter(presenter))

	outcome := d.Dispatch(context.Background(), pickerStep(`{"title": "Age", "pickerType": "age"}`), nil)
	if outcome.Kind != render.OutcomeFailed {
		t.Fatalf("kind = %s, want failed", outcome.Kind)
	}
	if len(presenter.panels) != 1 {
		t.Fatalf("expected a panel")
	}
}

func TestDispatchCompletesWithFirstResult(t *testing.T) {
	registry := render.NewRegistry()
	registry.MustRegister(render.StepRendererFunc(steps.TypePicker, func(_ context.Context, req render.Request, next render.Continue) error {
		picker, ok := req.Step.Picker()
		if !ok || picker.PickerType != steps.PickerAge {
			return errors.New("unexpected payload")
		}
		if req.Theme.MustColor("primary") == "" {
			return errors.New("theme not resolved")
		}
		next(31)
		next(99)
		return nil
	}))
	d := render.NewDispatcher(render.WithRegistry(registry))
	var cont continuations

	outcome := d.Dispatch(context.Background(), pickerStep(`{"title": "Age", "pickerType": "age"}`), cont.next)

	if outcome.Kind != render.OutcomeCompleted || outcome.Result != 31 {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
	if diff := cmp.Diff([]any{31}, cont.calls); diff != "" {
		t.Fatalf("continuation mismatch (-want +got):\n%s", diff)
	}
}

func TestDispatchTranslatesPanelTitle(t *testing.T) {
	presenter := &capturePresenter{}
	translator := render.MapTranslator{"fr": {render.KeyInvalidPayload: "Contenu invalide"}}
	d := render.NewDispatcher(
		render.WithPresenter(presenter),
		render.WithTranslator(translator, "fr-FR"),
	)

	d.Dispatch(context.Background(), pickerStep(`{}`), nil)
	if len(presenter.panels) != 1 || presenter.panels[0].Title != "Contenu invalide" {
		t.Fatalf("expected translated title, got %+v", presenter.panels)
	}
}

func TestSuggest(t *testing.T) {
	tests := map[steps.Type]steps.Type{
		"question":    steps.TypeQuestion,
		"Carousell":   steps.TypeCarousel,
		"Paywall":     "",
		"":            "",
		"MediaContnt": steps.TypeMediaContent,
	}
	for input, want := range tests {
		if got := render.Suggest(input); got != want {
			t.Fatalf("Suggest(%q) = %q, want %q", input, got, want)
		}
	}
}
