// Package http exposes the workflow engines and use cases to the dashboard
// over echo.
//
// Routes under /api/v1 are validated against the embedded OpenAPI document
// before they reach a handler. Errors share one body, {code, reason, message},
// where reason tells apart a locally disallowed transition, a request already
// in flight, a rejection by the owning service and an unreachable service.
package http
