// Package internal documents the hackctl internals.
//
// The internal tree is organized by responsibility:
// - client: typed calls against the hackathon API with the Response envelope
// - domain: entities, wire normalization, validation and filters
// - session: the persisted token, flags, overrides and drafts
// - mockapi: an in-memory HTTP implementation of the API for local use
// - auth, config, dates, metrics, output, sanitize, telemetry, validation:
//   shared infrastructure
//
// Code in internal/ is not meant for external import.
package internal
