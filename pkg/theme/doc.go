// Package theme resolves the design tokens handed to step renderers.
//
// A Theme is two token trees (colors and typography). Resolution starts from
// the built-in defaults for the active color scheme, deep-merges the caller's
// global overrides, then the scheme-specific overrides. Resolved themes are
// never mutated; toggling the scheme produces a new tree.
//
// Manifest and Selector bridge resolved tokens into go-theme so hosts that
// already select themes through a go-theme registry can reuse them.
package theme
