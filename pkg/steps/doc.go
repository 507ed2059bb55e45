// Package steps defines the onboarding data model (Step, Onboarding and the
// per-type payloads) and the schema layer that validates CMS-authored step
// payloads before they reach a renderer. Each step type declares its payload
// shape as an openapi3 schema; structural violations are reported as Issues
// with dotted paths rooted at the offending field (for example
// `payload.socialProofs.0.numberOfStar`). Unknown fields are ignored so older
// clients keep working when the CMS grows new attributes. Defaults for
// optional fields are applied after validation succeeds.
package steps
