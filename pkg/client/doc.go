// Package client fetches onboarding flows from the onboarding studio
// service.
//
// A Client is bound to one project. GetSteps issues a single GET per call
// with no retries; when a fallback flow is configured every fetch or decode
// failure is logged and answered with the fallback instead.
package client
