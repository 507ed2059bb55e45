package progress_test

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-onboarding/pkg/progress"
)

func TestStateDefaults(t *testing.T) {
	var state progress.State

	want := progress.Snapshot{Active: progress.ActiveStep{DisplayProgressHeader: true}}
	if diff := cmp.Diff(want, state.Snapshot()); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
	if state.Fraction() != 0 || state.Percent() != 0 {
		t.Fatalf("expected zero progress, got %v / %d", state.Fraction(), state.Percent())
	}
}

func TestStatePercentRounds(t *testing.T) {
	state := progress.New()
	state.SetTotalSteps(3)
	state.SetActiveStep(progress.ActiveStep{Number: 2, DisplayProgressHeader: true})

	if got := state.Percent(); got != 67 {
		t.Fatalf("Percent = %d, want 67", got)
	}
	if got := state.Fraction(); got < 0.666 || got > 0.667 {
		t.Fatalf("Fraction = %v", got)
	}
}

func TestStateHeaderVisibilityFollowsActiveStep(t *testing.T) {
	state := progress.New()
	state.SetTotalSteps(4)
	state.SetActiveStep(progress.ActiveStep{Number: 1, DisplayProgressHeader: false})
	if state.ProgressBarVisible() {
		t.Fatalf("header should be hidden")
	}

	state.Reset()
	if !state.ProgressBarVisible() {
		t.Fatalf("header should be visible after reset")
	}
	if diff := cmp.Diff(progress.Snapshot{Active: progress.ActiveStep{DisplayProgressHeader: true}}, state.Snapshot()); diff != "" {
		t.Fatalf("reset snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestStateConcurrentAccess(t *testing.T) {
	state := progress.New()
	state.SetTotalSteps(100)

	var wg sync.WaitGroup
	for i := 1; i <= 100; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			state.SetActiveStep(progress.ActiveStep{Number: n, DisplayProgressHeader: true})
		}(i)
		go func() {
			defer wg.Done()
			if p := state.Percent(); p < 0 || p > 100 {
				t.Errorf("percent out of range: %d", p)
			}
		}()
	}
	wg.Wait()
}
