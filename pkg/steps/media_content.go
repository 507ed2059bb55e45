package steps

import "github.com/getkin/kin-openapi/openapi3"

// MediaContentPayload shows one media asset with a title and optional
// testimonial.
type MediaContentPayload struct {
	MediaSource MediaSource  `json:"mediaSource"`
	Title       string       `json:"title"`
	Description *string      `json:"description,omitempty"`
	SocialProof *SocialProof `json:"socialProof,omitempty"`
}

var mediaContentSchema = openapi3.NewObjectSchema().
	WithProperty("mediaSource", mediaSourceSchema()).
	WithProperty("title", openapi3.NewStringSchema()).
	WithProperty("description", nullableString()).
	WithProperty("socialProof", socialProofSchema().WithNullable()).
	WithRequired([]string{"mediaSource", "title"})

func (p *MediaContentPayload) normalize() []Issue {
	return mediaSourceIssues(joinPath(payloadPath, "mediaSource"), p.MediaSource)
}
