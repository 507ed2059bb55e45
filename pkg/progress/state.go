package progress

import (
	"math"
	"sync"
)

// ActiveStep identifies the focused step by its 1-based number and carries
// the step's progress header preference.
type ActiveStep struct {
	Number                int
	DisplayProgressHeader bool
}

// Snapshot is a point-in-time copy of the progress state.
type Snapshot struct {
	Active     ActiveStep
	TotalSteps int
}

// State holds the progress of one session. The zero value is ready to use
// and reports step 0 of 0 with the header visible.
type State struct {
	mu     sync.RWMutex
	active ActiveStep
	total  int
	dirty  bool
}

// New returns a State initialised to the beginning of a flow.
func New() *State {
	return &State{}
}

// SetActiveStep records the focused step.
func (s *State) SetActiveStep(step ActiveStep) {
	if step.Number < 0 {
		step.Number = 0
	}
	s.mu.Lock()
	s.active = step
	s.dirty = true
	s.mu.Unlock()
}

// SetTotalSteps records the number of steps in the flow.
func (s *State) SetTotalSteps(n int) {
	if n < 0 {
		n = 0
	}
	s.mu.Lock()
	s.total = n
	s.mu.Unlock()
}

// Reset returns to step 0 of 0.
func (s *State) Reset() {
	s.mu.Lock()
	s.active = ActiveStep{}
	s.total = 0
	s.dirty = false
	s.mu.Unlock()
}

// Snapshot returns a copy of the current state.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{Active: s.currentLocked(), TotalSteps: s.total}
}

// Fraction returns number/total, or 0 when the total is unknown.
func (s *State) Fraction() float64 {
	return s.Snapshot().Fraction()
}

// Percent returns the progress rounded to a whole percentage in [0, 100].
func (s *State) Percent() int {
	return s.Snapshot().Percent()
}

// ProgressBarVisible reports whether the active step wants the header.
func (s *State) ProgressBarVisible() bool {
	return s.Snapshot().Active.DisplayProgressHeader
}

func (s *State) currentLocked() ActiveStep {
	if !s.dirty {
		return ActiveStep{DisplayProgressHeader: true}
	}
	return s.active
}

// Fraction returns number/total, or 0 when the total is unknown.
func (s Snapshot) Fraction() float64 {
	if s.TotalSteps <= 0 {
		return 0
	}
	f := float64(s.Active.Number) / float64(s.TotalSteps)
	return math.Min(math.Max(f, 0), 1)
}

// Percent returns the progress rounded to a whole percentage in [0, 100].
func (s Snapshot) Percent() int {
	return int(math.Round(s.Fraction() * 100))
}
