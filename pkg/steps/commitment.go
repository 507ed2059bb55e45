package steps

import "github.com/getkin/kin-openapi/openapi3"

// DefaultSignatureCaption is shown under the signature pad when the payload
// does not override it.
const DefaultSignatureCaption = "Your signature is not recorded"

// CommitmentVariant selects how the user confirms the commitment.
type CommitmentVariant string

const (
	CommitmentSignature CommitmentVariant = "signature"
	CommitmentSimple    CommitmentVariant = "simple"
)

// CommitmentItem is one bullet of the commitment list.
type CommitmentItem struct {
	Text string `json:"text"`
}

// CommitmentPayload asks the user to commit to a goal, either as free text
// (Description) or as a bullet list (Commitments).
type CommitmentPayload struct {
	Title            string            `json:"title"`
	Subtitle         *string           `json:"subtitle,omitempty"`
	Description      *string           `json:"description,omitempty"`
	Commitments      []CommitmentItem  `json:"commitments,omitempty"`
	SignatureCaption string            `json:"signatureCaption,omitempty"`
	Variant          CommitmentVariant `json:"variant,omitempty"`
}

var commitmentSchema = openapi3.NewObjectSchema().
	WithProperty("title", openapi3.NewStringSchema()).
	WithProperty("subtitle", nullableString()).
	WithProperty("description", nullableString()).
	WithProperty("commitments", openapi3.NewArraySchema().WithItems(
		openapi3.NewObjectSchema().
			WithProperty("text", openapi3.NewStringSchema()).
			WithRequired([]string{"text"}),
	).WithNullable()).
	WithProperty("signatureCaption", nullableString()).
	WithProperty("variant", openapi3.NewStringSchema().
		WithEnum(string(CommitmentSignature), string(CommitmentSimple)).
		WithNullable()).
	WithRequired([]string{"title"})

func (p *CommitmentPayload) normalize() []Issue {
	if p.Description == nil && len(p.Commitments) == 0 {
		return []Issue{{
			Path:    payloadPath,
			Message: "either description or commitments is required",
		}}
	}
	if p.SignatureCaption == "" {
		p.SignatureCaption = DefaultSignatureCaption
	}
	if p.Variant == "" {
		p.Variant = CommitmentSignature
	}
	return nil
}

// ListMode reports whether the commitment renders as a bullet list. The list
// takes precedence when both a description and commitments are present.
func (p CommitmentPayload) ListMode() bool {
	return len(p.Commitments) > 0
}
