package steps

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

const payloadPath = "payload"

// Validated is a step whose payload passed its schema. Payload holds one of
// the typed payload structs (QuestionPayload, RatingsPayload, ...).
type Validated struct {
	Step    Step
	Payload any
}

// Question returns the payload when the step is a Question.
func (v Validated) Question() (QuestionPayload, bool) {
	p, ok := v.Payload.(QuestionPayload)
	return p, ok
}

// Ratings returns the payload when the step is a Ratings step.
func (v Validated) Ratings() (RatingsPayload, bool) {
	p, ok := v.Payload.(RatingsPayload)
	return p, ok
}

// Picker returns the payload when the step is a Picker.
func (v Validated) Picker() (PickerPayload, bool) {
	p, ok := v.Payload.(PickerPayload)
	return p, ok
}

// Carousel returns the payload when the step is a Carousel.
func (v Validated) Carousel() (CarouselPayload, bool) {
	p, ok := v.Payload.(CarouselPayload)
	return p, ok
}

// Loader returns the payload when the step is a Loader.
func (v Validated) Loader() (LoaderPayload, bool) {
	p, ok := v.Payload.(LoaderPayload)
	return p, ok
}

// Commitment returns the payload when the step is a Commitment.
func (v Validated) Commitment() (CommitmentPayload, bool) {
	p, ok := v.Payload.(CommitmentPayload)
	return p, ok
}

// MediaContent returns the payload when the step is a MediaContent step.
func (v Validated) MediaContent() (MediaContentPayload, bool) {
	p, ok := v.Payload.(MediaContentPayload)
	return p, ok
}

type validator func(raw json.RawMessage) (any, []Issue)

var validators = map[Type]validator{
	TypeQuestion:     erase(decode[QuestionPayload], questionSchema),
	TypeRatings:      erase(decode[RatingsPayload], ratingsSchema),
	TypePicker:       erase(decode[PickerPayload], pickerSchema),
	TypeCarousel:     erase(decode[CarouselPayload], carouselSchema),
	TypeLoader:       erase(decode[LoaderPayload], loaderSchema),
	TypeCommitment:   erase(decode[CommitmentPayload], commitmentSchema),
	TypeMediaContent: erase(decode[MediaContentPayload], mediaContentSchema),
}

var envelopeSchema = openapi3.NewObjectSchema().
	WithProperty("id", openapi3.NewStringSchema().WithMinLength(1)).
	WithProperty("type", openapi3.NewStringSchema().WithMinLength(1)).
	WithProperty("name", openapi3.NewStringSchema().WithNullable()).
	WithProperty("displayProgressHeader", openapi3.NewBoolSchema().WithNullable()).
	WithProperty("customPayload", openapi3.NewObjectSchema().WithNullable()).
	WithProperty("continueButtonLabel", openapi3.NewStringSchema().WithNullable()).
	WithProperty("figmaUrl", openapi3.NewStringSchema().WithNullable()).
	WithRequired([]string{"id", "type"})

// Validate checks the step envelope and payload against the schema for its
// type and returns the typed payload with defaults applied. Unknown types
// return an error wrapping ErrUnknownType; schema violations return a
// *ValidationError.
func Validate(step Step) (Validated, error) {
	if !Known(step.Type) {
		return Validated{}, &UnknownTypeError{Type: step.Type}
	}

	issues := validateEnvelope(step)

	raw := step.Payload
	if isNullJSON(raw) {
		issues = append(issues, Issue{Path: payloadPath, Message: "payload is required"})
		return Validated{}, &ValidationError{StepID: step.ID, Type: step.Type, Issues: issues}
	}

	payload, payloadIssues := validators[step.Type](raw)
	issues = append(issues, payloadIssues...)
	if len(issues) > 0 {
		return Validated{}, &ValidationError{StepID: step.ID, Type: step.Type, Issues: issues}
	}

	out := step
	if strings.TrimSpace(out.ContinueButtonLabel) == "" {
		out.ContinueButtonLabel = DefaultContinueButtonLabel
	}
	if out.DisplayProgressHeader == nil {
		show := true
		out.DisplayProgressHeader = &show
	}
	return Validated{Step: out, Payload: payload}, nil
}

// ValidateAll validates every step in the flow, returning the validated steps
// that passed and a joined error for the ones that did not.
func ValidateAll(flow Onboarding) ([]Validated, error) {
	out := make([]Validated, 0, len(flow.Steps))
	var errs []error
	for _, step := range flow.Steps {
		validated, err := Validate(step)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, validated)
	}
	return out, errors.Join(errs...)
}

// UnknownTypeError reports a step type outside the closed set.
type UnknownTypeError struct {
	Type Type
}

func (e *UnknownTypeError) Error() string {
	return "steps: unknown step type " + strconv.Quote(string(e.Type))
}

func (e *UnknownTypeError) Unwrap() error {
	return ErrUnknownType
}

func validateEnvelope(step Step) []Issue {
	doc := map[string]any{
		"id":   step.ID,
		"type": string(step.Type),
	}
	if step.Name != "" {
		doc["name"] = step.Name
	}
	if step.DisplayProgressHeader != nil {
		doc["displayProgressHeader"] = *step.DisplayProgressHeader
	}
	if step.CustomPayload != nil {
		doc["customPayload"] = step.CustomPayload
	}
	if step.FigmaURL != nil {
		doc["figmaUrl"] = *step.FigmaURL
	}
	return visit(envelopeSchema, doc, "")
}

// payload is satisfied by pointers to typed payloads that can check the
// constraints schema keywords cannot express and fill in defaults.
type payload[T any] interface {
	*T
	normalize() []Issue
}

func decode[T any, P payload[T]](raw json.RawMessage, schema *openapi3.Schema) (T, []Issue) {
	var out T
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return out, []Issue{{Path: payloadPath, Message: "malformed JSON: " + err.Error()}}
	}
	if issues := visit(schema, doc, payloadPath); len(issues) > 0 {
		return out, issues
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, []Issue{{Path: payloadPath, Message: err.Error()}}
	}
	return out, P(&out).normalize()
}

func erase[T any](fn func(json.RawMessage, *openapi3.Schema) (T, []Issue), schema *openapi3.Schema) validator {
	return func(raw json.RawMessage) (any, []Issue) {
		value, issues := fn(raw, schema)
		if len(issues) > 0 {
			return nil, issues
		}
		return value, nil
	}
}

func visit(schema *openapi3.Schema, value any, root string) []Issue {
	err := schema.VisitJSON(value, openapi3.MultiErrors())
	if err == nil {
		return nil
	}
	var issues []Issue
	collectIssues(err, root, &issues)
	return issues
}

func collectIssues(err error, root string, dest *[]Issue) {
	if err == nil {
		return
	}
	switch e := err.(type) {
	case openapi3.MultiError:
		for _, inner := range e {
			collectIssues(inner, root, dest)
		}
	case *openapi3.SchemaError:
		*dest = append(*dest, Issue{
			Path:    joinPath(root, e.JSONPointer()...),
			Message: strings.TrimSpace(e.Reason),
		})
	default:
		*dest = append(*dest, Issue{Path: root, Message: strings.TrimSpace(err.Error())})
	}
}

func joinPath(root string, segments ...string) string {
	parts := make([]string, 0, len(segments)+1)
	if root != "" {
		parts = append(parts, root)
	}
	for _, segment := range segments {
		if segment = strings.TrimSpace(segment); segment != "" {
			parts = append(parts, segment)
		}
	}
	return strings.Join(parts, ".")
}

func isNullJSON(raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	return trimmed == "" || trimmed == "null"
}
