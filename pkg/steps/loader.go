package steps

import (
	"fmt"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
)

// DefaultLoaderDuration is the loader animation length in milliseconds.
const DefaultLoaderDuration = 2000

// LoaderVariant selects the loader presentation.
type LoaderVariant string

const (
	LoaderBars        LoaderVariant = "bars"
	LoaderCircle      LoaderVariant = "circle"
	LoaderTextsFading LoaderVariant = "texts_fading"
)

// LoaderStep is one line of the loader checklist. Completed is the label
// shown once the line finishes.
type LoaderStep struct {
	Label     string `json:"label"`
	Completed string `json:"completed"`
}

// LoaderPayload simulates work while showing progress lines.
type LoaderPayload struct {
	Title            string        `json:"title"`
	Steps            []LoaderStep  `json:"steps"`
	DidYouKnowImages []MediaSource `json:"didYouKnowImages,omitempty"`
	Duration         *int          `json:"duration,omitempty"`
	Variant          LoaderVariant `json:"variant,omitempty"`
}

var loaderSchema = openapi3.NewObjectSchema().
	WithProperty("title", openapi3.NewStringSchema()).
	WithProperty("steps", openapi3.NewArraySchema().WithItems(
		openapi3.NewObjectSchema().
			WithProperty("label", openapi3.NewStringSchema()).
			WithProperty("completed", openapi3.NewStringSchema()).
			WithRequired([]string{"label", "completed"}),
	)).
	WithProperty("didYouKnowImages", openapi3.NewArraySchema().WithItems(mediaSourceSchema()).WithNullable()).
	WithProperty("duration", openapi3.NewIntegerSchema().WithMin(0).WithNullable()).
	WithProperty("variant", openapi3.NewStringSchema().
		WithEnum(string(LoaderBars), string(LoaderCircle), string(LoaderTextsFading)).
		WithNullable()).
	WithRequired([]string{"title", "steps"})

func (p *LoaderPayload) normalize() []Issue {
	if p.Duration == nil {
		d := DefaultLoaderDuration
		p.Duration = &d
	}
	if p.Variant == "" {
		p.Variant = LoaderBars
	}
	var issues []Issue
	for idx, image := range p.DidYouKnowImages {
		issues = append(issues, mediaSourceIssues(joinPath(payloadPath, "didYouKnowImages", fmt.Sprint(idx)), image)...)
	}
	return issues
}

// Wait returns the loader duration.
func (p LoaderPayload) Wait() time.Duration {
	if p.Duration == nil {
		return DefaultLoaderDuration * time.Millisecond
	}
	return time.Duration(*p.Duration) * time.Millisecond
}
