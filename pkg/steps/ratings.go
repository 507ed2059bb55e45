package steps

import "github.com/getkin/kin-openapi/openapi3"

// DefaultRateTheAppButtonLabel is applied when rateTheAppButtonLabel is absent.
const DefaultRateTheAppButtonLabel = "Rate the app"

// RatingsPayload shows testimonials and invites the user to rate the app.
type RatingsPayload struct {
	Title                 string        `json:"title"`
	Subtitle              string        `json:"subtitle"`
	SocialProofs          []SocialProof `json:"socialProofs"`
	RateTheAppButtonLabel string        `json:"rateTheAppButtonLabel,omitempty"`
}

var ratingsSchema = openapi3.NewObjectSchema().
	WithProperty("title", openapi3.NewStringSchema()).
	WithProperty("subtitle", openapi3.NewStringSchema()).
	WithProperty("socialProofs", openapi3.NewArraySchema().WithItems(socialProofSchema()).WithMinItems(1)).
	WithProperty("rateTheAppButtonLabel", nullableString()).
	WithRequired([]string{"title", "subtitle", "socialProofs"})

func (p *RatingsPayload) normalize() []Issue {
	if p.RateTheAppButtonLabel == "" {
		p.RateTheAppButtonLabel = DefaultRateTheAppButtonLabel
	}
	return nil
}
