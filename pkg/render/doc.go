// Package render selects and runs the renderer for each onboarding step.
//
// Renderers register per step type in a Registry. The Dispatcher validates a
// step, looks up its renderer and runs it inside a fault boundary so one
// malformed step never takes down the flow: schema violations and renderer
// failures become an error panel, unknown step types become a placeholder
// (sandbox) or are skipped with NotImplemented (production).
package render
