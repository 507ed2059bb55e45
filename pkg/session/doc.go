// Package session holds the state of one onboarding run: the loaded flow,
// progress, theme and custom components. Each Session is independent, so
// several can run side by side in one process.
package session
