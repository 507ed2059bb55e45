package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-onboarding/pkg/progress"
	"github.com/goliatone/go-onboarding/pkg/theme"
)

const progressWidth = 20

type styles struct {
	title   lipgloss.Style
	body    lipgloss.Style
	muted   lipgloss.Style
	accent  lipgloss.Style
	errText lipgloss.Style
	track   lipgloss.Style
}

func newStyles(th theme.Theme) styles {
	color := func(path string) lipgloss.Color {
		return lipgloss.Color(th.MustColor(path))
	}
	return styles{
		title:   lipgloss.NewStyle().Bold(true).Foreground(color("text.primary")),
		body:    lipgloss.NewStyle().Foreground(color("text.secondary")),
		muted:   lipgloss.NewStyle().Foreground(color("text.tertiary")),
		accent:  lipgloss.NewStyle().Foreground(color("primary")),
		errText: lipgloss.NewStyle().Bold(true).Foreground(color("tertiary.tertiary2")),
		track:   lipgloss.NewStyle().Foreground(color("neutral.low")),
	}
}

// progressBar draws "▓▓▓░░ 3/5" using the theme accent for the filled part.
func (s styles) progressBar(snap progress.Snapshot) string {
	filled := int(snap.Fraction()*progressWidth + 0.5)
	bar := s.accent.Render(strings.Repeat("▓", filled)) +
		s.track.Render(strings.Repeat("░", progressWidth-filled))
	return fmt.Sprintf("%s %d/%d", bar, snap.Active.Number, snap.TotalSteps)
}

func stars(n int) string {
	if n < 0 {
		n = 0
	}
	if n > 5 {
		n = 5
	}
	return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
}
