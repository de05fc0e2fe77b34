// Package connectors holds the adapters that talk to external Google
// Workspace APIs. Each subpackage wraps one product behind a driven
// port so the core services never see API client types.
package connectors
