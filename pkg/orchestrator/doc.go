// Package orchestrator runs whole onboarding flows: it resolves where the
// flow comes from (the studio service or a local flow file), builds a
// session, registers a frontend's step renderers and walks every step.
package orchestrator
