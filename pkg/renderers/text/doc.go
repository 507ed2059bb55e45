// Package text renders onboarding steps as plain text through pongo2
// templates. It is non-interactive: each step is written to the output and
// resolved with the result produced by a Responder, which makes it suitable
// for previews, snapshots and CI checks of CMS content.
package text
