// Package driven defines interfaces for external services that the core
// calls out to: configuration storage, sample-sheet parsing, export and
// file watching. These are the "driven" ports in hexagonal architecture.
//
// Implementations live in internal/adapters/driven.
package driven
