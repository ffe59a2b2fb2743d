// Package mcp provides an MCP (Model Context Protocol) server adapter for poolcalc.
// It lets AI assistants compute molarities and pooling plans.
package mcp

import "errors"

// ErrMissingPoolingService is returned when the pooling service is not provided.
var ErrMissingPoolingService = errors.New("mcp: pooling service is required")
