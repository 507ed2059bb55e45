package text

import (
	"strings"

	"github.com/goliatone/go-onboarding/pkg/render"
	"github.com/goliatone/go-onboarding/pkg/steps"
)

var templateNames = map[steps.Type]string{
	steps.TypeQuestion:     "question",
	steps.TypeRatings:      "ratings",
	steps.TypePicker:       "picker",
	steps.TypeCarousel:     "carousel",
	steps.TypeLoader:       "loader",
	steps.TypeCommitment:   "commitment",
	steps.TypeMediaContent: "media_content",
}

func viewData(req render.Request, fallback render.Translator) map[string]any {
	step := req.Step.Step
	translator := req.Translator
	if translator == nil {
		translator = fallback
	}
	data := map[string]any{
		"step": map[string]any{
			"id":   step.ID,
			"type": string(step.Type),
			"name": step.Name,
		},
		"payload":        req.Step.Payload,
		"continue_label": step.ContinueLabel(),
		"locale":         req.Locale,
		"scheme":         string(req.Theme.Scheme),
		"progress":       progressView(req, step),
	}
	for name, fn := range render.TemplateI18nFuncs(translator, render.TemplateI18nConfig{}) {
		data[name] = fn
	}

	switch step.Type {
	case steps.TypeQuestion:
		q, _ := req.Step.Question()
		labels := make([]any, len(q.Answers))
		for i, answer := range q.Answers {
			labels[i] = req.Components.AnswerLabel(render.AnswerButtonProps{Answer: answer, Index: i, Theme: req.Theme})
		}
		data["labels"] = labels
	case steps.TypeCarousel:
		c, _ := req.Step.Carousel()
		screens := make([]any, len(c.Screens))
		for i, screen := range c.Screens {
			view := map[string]any{
				"title": screen.Title,
				"media": mediaView(screen.Media()),
			}
			if screen.Subtitle != nil {
				view["subtitle"] = *screen.Subtitle
			}
			screens[i] = view
		}
		data["screens"] = screens
	case steps.TypeMediaContent:
		m, _ := req.Step.MediaContent()
		data["media"] = mediaView(m.MediaSource)
	}
	return data
}

func mediaView(src steps.MediaSource) map[string]any {
	return map[string]any{
		"type":     string(src.Type),
		"location": src.Location(),
		"remote":   src.Remote(),
	}
}

func progressView(req render.Request, step steps.Step) map[string]any {
	snap := req.Progress
	visible := step.ShowsProgressHeader() && snap.TotalSteps > 0
	filled := int(snap.Fraction()*barWidth + 0.5)
	if filled > barWidth {
		filled = barWidth
	}
	return map[string]any{
		"visible": visible,
		"number":  snap.Active.Number,
		"total":   snap.TotalSteps,
		"percent": snap.Percent(),
		"bar":     strings.Repeat("#", filled) + strings.Repeat("-", barWidth-filled),
	}
}
