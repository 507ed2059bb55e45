// Package tui renders onboarding steps as interactive terminal prompts.
//
// Prompts go through a PromptDriver (survey by default) so the renderers can
// be driven by scripted drivers in tests. Colors come from the resolved theme
// via lipgloss; on terminals without color support the output is plain text.
package tui
