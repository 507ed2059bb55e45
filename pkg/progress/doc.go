// Package progress tracks which onboarding step is active and how far the
// user is through the flow. State is safe for concurrent use so renderers
// can read it while the session advances.
package progress
