// Package google provides shared infrastructure for the Google
// Workspace connectors: API service construction, token sourcing,
// rate limiting and error translation.
//
// The per-product adapters live in the subpackages gmail, calendar,
// drive, docs and sheets. Each implements a driven port from
// internal/core/ports/driven on top of the corresponding Google API
// client, sharing the token source and rate limiters defined here:
//
//	ts := google.NewTokenSource(ctx, tokenProvider)
//	svc, err := google.NewGmailService(ctx, ts)
package google
