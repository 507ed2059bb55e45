package steps

import (
	"github.com/getkin/kin-openapi/openapi3"
)

// MediaType identifies how a media asset is rendered.
type MediaType string

const (
	MediaImage  MediaType = "image"
	MediaLottie MediaType = "lottie"
	MediaRive   MediaType = "rive"
)

// MediaSource points at a remote URL or at an asset bundled with the host
// application (LocalPathID).
type MediaSource struct {
	Type        MediaType `json:"type"`
	URL         string    `json:"url,omitempty"`
	LocalPathID string    `json:"localPathId,omitempty"`
}

// Remote reports whether the media is fetched from a URL.
func (m MediaSource) Remote() bool {
	return m.URL != ""
}

// Location returns the URL or the local asset identifier.
func (m MediaSource) Location() string {
	if m.URL != "" {
		return m.URL
	}
	return m.LocalPathID
}

// SocialProof is a short testimonial with a star rating.
type SocialProof struct {
	NumberOfStar int    `json:"numberOfStar"`
	Content      string `json:"content"`
	AuthorName   string `json:"authorName"`
}

// InfoBox is an optional callout shown under a question.
type InfoBox struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func mediaTypeSchema() *openapi3.Schema {
	return openapi3.NewStringSchema().WithEnum(string(MediaImage), string(MediaLottie), string(MediaRive))
}

// mediaSourceSchema checks each field on its own so a bad type or an empty
// url names the offending field. The url/localPathId choice is checked by
// mediaSourceIssues.
func mediaSourceSchema() *openapi3.Schema {
	return openapi3.NewObjectSchema().
		WithProperty("type", mediaTypeSchema()).
		WithProperty("url", openapi3.NewStringSchema().WithMinLength(1)).
		WithProperty("localPathId", openapi3.NewStringSchema().WithMinLength(1)).
		WithRequired([]string{"type"})
}

func mediaSourceIssues(path string, m MediaSource) []Issue {
	if m.URL == "" && m.LocalPathID == "" {
		return []Issue{{Path: path, Message: "either url or localPathId is required"}}
	}
	return nil
}

func socialProofSchema() *openapi3.Schema {
	return openapi3.NewObjectSchema().
		WithProperty("numberOfStar", openapi3.NewIntegerSchema().WithMin(0).WithMax(5)).
		WithProperty("content", openapi3.NewStringSchema()).
		WithProperty("authorName", openapi3.NewStringSchema()).
		WithRequired([]string{"numberOfStar", "content", "authorName"})
}

func nullableString() *openapi3.Schema {
	return openapi3.NewStringSchema().WithNullable()
}
