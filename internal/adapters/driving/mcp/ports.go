package mcp

import (
	"github.com/custodia-labs/poolcalc/internal/core/domain"
	"github.com/custodia-labs/poolcalc/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Pooling computes molarities and pooling plans.
	Pooling driving.PoolingService

	// Settings supplies defaults for parameters a tool call omits.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Pooling == nil {
		return ErrMissingPoolingService
	}
	// Settings is optional; built-in defaults apply without it
	return nil
}

// settings returns the configured settings, or the defaults when no
// settings service is wired.
func (p *Ports) settings() (domain.Settings, error) {
	if p.Settings == nil {
		return domain.DefaultSettings(), nil
	}
	s, err := p.Settings.Get()
	if err != nil {
		return domain.Settings{}, err
	}
	return *s, nil
}
