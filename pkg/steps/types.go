package steps

import (
	"encoding/json"
	"strings"
)

// Type tags the payload shape carried by a Step.
type Type string

const (
	TypeQuestion     Type = "Question"
	TypeRatings      Type = "Ratings"
	TypePicker       Type = "Picker"
	TypeCarousel     Type = "Carousel"
	TypeLoader       Type = "Loader"
	TypeCommitment   Type = "Commitment"
	TypeMediaContent Type = "MediaContent"
)

// DefaultContinueButtonLabel is applied when a step omits continueButtonLabel.
const DefaultContinueButtonLabel = "Continue"

var knownTypes = []Type{
	TypeQuestion,
	TypeRatings,
	TypePicker,
	TypeCarousel,
	TypeLoader,
	TypeCommitment,
	TypeMediaContent,
}

// Types returns the closed set of step types in declaration order.
func Types() []Type {
	out := make([]Type, len(knownTypes))
	copy(out, knownTypes)
	return out
}

// Known reports whether t belongs to the closed set of step types.
func Known(t Type) bool {
	for _, candidate := range knownTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

func (t Type) String() string {
	return string(t)
}

// Step is one screen of CMS-authored onboarding content. Payload stays raw
// until Validate decodes it into the type-specific structure.
type Step struct {
	ID                    string          `json:"id"`
	Type                  Type            `json:"type"`
	Name                  string          `json:"name,omitempty"`
	DisplayProgressHeader *bool           `json:"displayProgressHeader,omitempty"`
	Payload               json.RawMessage `json:"payload,omitempty"`
	CustomPayload         map[string]any  `json:"customPayload,omitempty"`
	ContinueButtonLabel   string          `json:"continueButtonLabel,omitempty"`
	FigmaURL              *string         `json:"figmaUrl,omitempty"`
}

// ShowsProgressHeader reports whether the progress indicator should be
// visible while the step is active. Steps that omit the flag show it.
func (s Step) ShowsProgressHeader() bool {
	if s.DisplayProgressHeader == nil {
		return true
	}
	return *s.DisplayProgressHeader
}

// ContinueLabel returns the continue button label, falling back to the
// default when the step leaves it blank.
func (s Step) ContinueLabel() string {
	if label := strings.TrimSpace(s.ContinueButtonLabel); label != "" {
		return label
	}
	return DefaultContinueButtonLabel
}

// Metadata identifies the flow the service selected for the caller.
type Metadata struct {
	ID            string  `json:"id"`
	Name          *string `json:"name,omitempty"`
	AudienceID    *string `json:"audienceId,omitempty"`
	AudienceName  *string `json:"audienceName,omitempty"`
	AudienceOrder *int    `json:"audienceOrder,omitempty"`
	Locale        *string `json:"locale,omitempty"`
	Draft         *bool   `json:"draft,omitempty"`
}

// Onboarding is an ordered sequence of steps plus flow metadata. Step order
// is the array order returned by the service.
type Onboarding struct {
	Metadata      Metadata       `json:"metadata"`
	Steps         []Step         `json:"steps"`
	Configuration map[string]any `json:"configuration"`
}

// StepAt returns the step for a 1-based step number.
func (o Onboarding) StepAt(number int) (Step, bool) {
	if number < 1 || number > len(o.Steps) {
		return Step{}, false
	}
	return o.Steps[number-1], true
}

// Len reports the number of steps in the flow.
func (o Onboarding) Len() int {
	return len(o.Steps)
}
