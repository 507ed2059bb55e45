package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/goliatone/go-onboarding/pkg/render"
	"github.com/goliatone/go-onboarding/pkg/steps"
	"github.com/goliatone/go-onboarding/pkg/theme"
)

// Renderer renders every built-in step type in a terminal and implements
// render.Presenter for placeholders and error panels.
type Renderer struct {
	driver   PromptDriver
	out      io.Writer
	sleep    func(ctx context.Context, d time.Duration) error
	prefixes Prefixes
	theme    theme.Theme
}

var _ render.Presenter = (*Renderer)(nil)

// New constructs a TUI renderer backed by survey unless a driver is supplied.
func New(options ...Option) *Renderer {
	r := &Renderer{sleep: sleepContext, theme: theme.Defaults(theme.Light)}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = newSurveyDriver(r.out)
	}
	return r
}

// Renderers returns one StepRenderer per built-in step type.
func (r *Renderer) Renderers() []render.StepRenderer {
	return []render.StepRenderer{
		render.StepRendererFunc(steps.TypeQuestion, r.renderQuestion),
		render.StepRendererFunc(steps.TypeRatings, r.renderRatings),
		render.StepRendererFunc(steps.TypePicker, r.renderPicker),
		render.StepRendererFunc(steps.TypeCarousel, r.renderCarousel),
		render.StepRendererFunc(steps.TypeLoader, r.renderLoader),
		render.StepRendererFunc(steps.TypeCommitment, r.renderCommitment),
		render.StepRendererFunc(steps.TypeMediaContent, r.renderMediaContent),
	}
}

// Register adds the built-in renderers to registry.
func (r *Renderer) Register(registry *render.Registry) error {
	for _, renderer := range r.Renderers() {
		if err := registry.Register(renderer); err != nil {
			return err
		}
	}
	return nil
}

// ShowPlaceholder implements render.Presenter.
func (r *Renderer) ShowPlaceholder(ctx context.Context, view render.PlaceholderView) error {
	msg := r.prefixes.ErrorPrefix + view.Message
	if view.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %s?)", view.Suggestion)
	}
	return r.driver.Info(ctx, newStyles(r.theme).errText.Render(msg))
}

// ShowPanel implements render.Presenter. Only the title line is styled so
// issue lines keep their own width.
func (r *Renderer) ShowPanel(ctx context.Context, panel render.Panel) error {
	title := r.prefixes.ErrorPrefix + panel.Title
	if panel.Type != "" {
		title += " [" + string(panel.Type) + "]"
	}
	lines := append([]string{newStyles(r.theme).errText.Render(title)}, panel.Lines...)
	return r.driver.Info(ctx, strings.Join(lines, "\n"))
}

func (r *Renderer) header(ctx context.Context, req render.Request, s styles, title, subtitle string) error {
	if req.Step.Step.ShowsProgressHeader() && req.Progress.TotalSteps > 0 {
		if err := r.driver.Info(ctx, s.progressBar(req.Progress)); err != nil {
			return err
		}
	}
	if title != "" {
		if err := r.info(ctx, s.title.Render(title)); err != nil {
			return err
		}
	}
	if subtitle != "" {
		return r.info(ctx, s.body.Render(subtitle))
	}
	return nil
}

func (r *Renderer) info(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.prefixes.InfoPrefix+msg)
}

// awaitContinue shows a single continue action.
func (r *Renderer) awaitContinue(ctx context.Context, req render.Request) error {
	label := req.T("onboarding.continue", req.Step.Step.ContinueLabel())
	idx, err := r.driver.Select(ctx, SelectConfig{Message: label, Options: []string{label}})
	if err != nil {
		return err
	}
	if idx != 0 {
		return ErrInvalidSelection
	}
	return nil
}

func (r *Renderer) renderQuestion(ctx context.Context, req render.Request, next render.Continue) error {
	q, _ := req.Step.Question()
	s := newStyles(req.Theme)
	if err := r.header(ctx, req, s, q.Title, deref(q.Subtitle)); err != nil {
		return err
	}

	var (
		selection []string
		err       error
	)
	switch {
	case req.Components.HasAnswersList():
		selection, err = req.Components.AnswersList(ctx, render.AnswersListProps{Question: q, Theme: req.Theme})
	case len(q.Answers) == 0:
		err = r.awaitContinue(ctx, req)
	case q.MultipleAnswer:
		selection, err = r.promptMultiple(ctx, req, q)
	default:
		selection, err = r.promptSingle(ctx, req, q)
	}
	if err != nil {
		return err
	}

	if q.InfoBox != nil {
		if err := r.info(ctx, s.muted.Render(q.InfoBox.Title+": "+q.InfoBox.Content)); err != nil {
			return err
		}
	}
	next(q.Result(selection))
	return nil
}

func (r *Renderer) promptSingle(ctx context.Context, req render.Request, q steps.QuestionPayload) ([]string, error) {
	options := make([]string, len(q.Answers))
	for i, answer := range q.Answers {
		options[i] = req.Components.AnswerLabel(render.AnswerButtonProps{Answer: answer, Index: i, Theme: req.Theme})
	}
	for {
		idx, err := r.driver.Select(ctx, SelectConfig{Message: q.Title, Options: options, DefaultIndex: -1})
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(q.Answers) {
			_ = r.driver.Info(ctx, "Invalid selection")
			continue
		}
		return q.Toggle(nil, q.Answers[idx].Value), nil
	}
}

// promptMultiple toggles one answer per prompt until the user picks the
// continue entry with at least one answer selected.
func (r *Renderer) promptMultiple(ctx context.Context, req render.Request, q steps.QuestionPayload) ([]string, error) {
	continueLabel := req.T("onboarding.continue", req.Step.Step.ContinueLabel())
	var selection []string
	for {
		options := make([]string, 0, len(q.Answers)+1)
		for i, answer := range q.Answers {
			selected := contains(selection, answer.Value)
			mark := "[ ] "
			if selected {
				mark = "[x] "
			}
			options = append(options, mark+req.Components.AnswerLabel(render.AnswerButtonProps{
				Answer:   answer,
				Index:    i,
				Selected: selected,
				Theme:    req.Theme,
			}))
		}
		options = append(options, continueLabel)

		idx, err := r.driver.Select(ctx, SelectConfig{Message: q.Title, Options: options, DefaultIndex: -1})
		if err != nil {
			return nil, err
		}
		switch {
		case idx == len(q.Answers):
			if len(selection) == 0 {
				_ = r.driver.Info(ctx, "Select at least one answer")
				continue
			}
			return selection, nil
		case idx >= 0 && idx < len(q.Answers):
			selection = q.Toggle(selection, q.Answers[idx].Value)
		default:
			_ = r.driver.Info(ctx, "Invalid selection")
		}
	}
}

func (r *Renderer) renderRatings(ctx context.Context, req render.Request, next render.Continue) error {
	p, _ := req.Step.Ratings()
	s := newStyles(req.Theme)
	if err := r.header(ctx, req, s, p.Title, p.Subtitle); err != nil {
		return err
	}
	for _, proof := range p.SocialProofs {
		line := fmt.Sprintf("%s %s (%s)", s.accent.Render(stars(proof.NumberOfStar)), proof.Content, proof.AuthorName)
		if err := r.info(ctx, line); err != nil {
			return err
		}
	}
	rated, err := r.driver.Confirm(ctx, ConfirmConfig{Message: p.RateTheAppButtonLabel, Default: true})
	if err != nil {
		return err
	}
	next(rated)
	return nil
}

func (r *Renderer) renderCarousel(ctx context.Context, req render.Request, next render.Continue) error {
	p, _ := req.Step.Carousel()
	s := newStyles(req.Theme)
	if err := r.header(ctx, req, s, "", ""); err != nil {
		return err
	}
	for i, screen := range p.Screens {
		media := screen.Media()
		lines := []string{
			s.muted.Render(fmt.Sprintf("%d/%d", i+1, len(p.Screens))),
			s.title.Render(screen.Title),
		}
		if screen.Subtitle != nil {
			lines = append(lines, s.body.Render(*screen.Subtitle))
		}
		lines = append(lines, s.muted.Render(fmt.Sprintf("[%s] %s", media.Type, media.Location())))
		if err := r.info(ctx, strings.Join(lines, "\n")); err != nil {
			return err
		}
	}
	if err := r.awaitContinue(ctx, req); err != nil {
		return err
	}
	next(nil)
	return nil
}

func (r *Renderer) renderLoader(ctx context.Context, req render.Request, next render.Continue) error {
	p, _ := req.Step.Loader()
	s := newStyles(req.Theme)
	if err := r.header(ctx, req, s, p.Title, ""); err != nil {
		return err
	}
	per := p.Wait()
	if n := len(p.Steps); n > 0 {
		per /= time.Duration(n)
	}
	for _, item := range p.Steps {
		if err := r.info(ctx, s.muted.Render("… "+item.Label)); err != nil {
			return err
		}
		if err := r.sleep(ctx, per); err != nil {
			return err
		}
		if err := r.info(ctx, s.accent.Render("✓ "+item.Completed)); err != nil {
			return err
		}
	}
	next(nil)
	return nil
}

func (r *Renderer) renderCommitment(ctx context.Context, req render.Request, next render.Continue) error {
	p, _ := req.Step.Commitment()
	s := newStyles(req.Theme)
	if err := r.header(ctx, req, s, p.Title, deref(p.Subtitle)); err != nil {
		return err
	}
	if p.ListMode() {
		for _, item := range p.Commitments {
			if err := r.info(ctx, s.body.Render("• "+item.Text)); err != nil {
				return err
			}
		}
	} else if err := r.info(ctx, s.body.Render(deref(p.Description))); err != nil {
		return err
	}

	if p.Variant == steps.CommitmentSimple {
		agreed, err := r.driver.Confirm(ctx, ConfirmConfig{Message: req.Step.Step.ContinueLabel(), Default: true})
		if err != nil {
			return err
		}
		next(agreed)
		return nil
	}

	signature, err := r.driver.Input(ctx, InputConfig{
		Message: "Sign with your name",
		Help:    p.SignatureCaption,
		Validator: func(value string) error {
			if strings.TrimSpace(value) == "" {
				return errors.New("signature is required")
			}
			return nil
		},
	})
	if err != nil {
		return err
	}
	if err := r.info(ctx, s.muted.Render(p.SignatureCaption)); err != nil {
		return err
	}
	next(strings.TrimSpace(signature))
	return nil
}

func (r *Renderer) renderMediaContent(ctx context.Context, req render.Request, next render.Continue) error {
	p, _ := req.Step.MediaContent()
	s := newStyles(req.Theme)
	if err := r.header(ctx, req, s, p.Title, deref(p.Description)); err != nil {
		return err
	}
	if err := r.info(ctx, s.muted.Render(fmt.Sprintf("[%s] %s", p.MediaSource.Type, p.MediaSource.Location()))); err != nil {
		return err
	}
	if p.SocialProof != nil {
		line := fmt.Sprintf("%s %s (%s)", s.accent.Render(stars(p.SocialProof.NumberOfStar)), p.SocialProof.Content, p.SocialProof.AuthorName)
		if err := r.info(ctx, line); err != nil {
			return err
		}
	}
	if err := r.awaitContinue(ctx, req); err != nil {
		return err
	}
	next(nil)
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
