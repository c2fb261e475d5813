// Package http adapts the waitlist to HTTP in both directions.
//
// Client is the outbound ports.RegistrationClient posting to the registration
// endpoint. NewHandler serves a compatible endpoint backed by a roster, so the
// flow can run end to end without the hosted service.
//
// Routes and wire models are generated from api/openapi.yaml (see api.gen.go),
// and requests to documented routes are validated against it before they reach
// a handler. The document itself is served at /openapi.yaml.
package http
