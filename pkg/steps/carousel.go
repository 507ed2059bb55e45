package steps

import (
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

// CarouselScreen is one slide of a Carousel step. Either MediaURL or
// MediaSource identifies the artwork.
type CarouselScreen struct {
	MediaURL    string       `json:"mediaUrl,omitempty"`
	MediaSource *MediaSource `json:"mediaSource,omitempty"`
	Title       string       `json:"title"`
	Subtitle    *string      `json:"subtitle,omitempty"`
}

// Media returns the screen artwork, promoting a bare mediaUrl to an image
// source.
func (s CarouselScreen) Media() MediaSource {
	if s.MediaSource != nil {
		return *s.MediaSource
	}
	return MediaSource{Type: MediaImage, URL: s.MediaURL}
}

// CarouselPayload is an ordered, non-empty list of slides.
type CarouselPayload struct {
	Screens []CarouselScreen `json:"screens"`
}

var carouselSchema = openapi3.NewObjectSchema().
	WithProperty("screens", openapi3.NewArraySchema().WithItems(
		openapi3.NewObjectSchema().
			WithProperty("mediaUrl", openapi3.NewStringSchema()).
			WithProperty("mediaSource", mediaSourceSchema()).
			WithProperty("title", openapi3.NewStringSchema()).
			WithProperty("subtitle", nullableString()).
			WithRequired([]string{"title"}),
	).WithMinItems(1)).
	WithRequired([]string{"screens"})

func (p *CarouselPayload) normalize() []Issue {
	var issues []Issue
	for idx, screen := range p.Screens {
		if screen.MediaURL == "" && screen.MediaSource == nil {
			issues = append(issues, Issue{
				Path:    joinPath(payloadPath, "screens", fmt.Sprint(idx)),
				Message: "either mediaUrl or mediaSource is required",
			})
			continue
		}
		if screen.MediaSource != nil {
			path := joinPath(payloadPath, "screens", fmt.Sprint(idx), "mediaSource")
			issues = append(issues, mediaSourceIssues(path, *screen.MediaSource)...)
		}
	}
	return issues
}
