// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports). The core services depend on these
// interfaces; adapters under internal/adapters/driven and
// internal/connectors implement them.
package driven
