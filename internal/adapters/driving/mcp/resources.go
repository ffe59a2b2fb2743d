package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/poolcalc/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for poolcalc resources.
	uriScheme = "poolcalc://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "settings",
		Name:        "settings",
		Description: "Pooling parameters applied when a tool call omits them",
		MIMEType:    "application/json",
	}, s.handleSettingsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "settings/defaults",
		Name:        "default-settings",
		Description: "Built-in pooling parameters",
		MIMEType:    "application/json",
	}, s.handleDefaultsResource)
}

// handleSettingsResource returns the settings tools fall back to.
func (s *Server) handleSettingsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	settings, err := s.ports.settings()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	return jsonResource(req.Params.URI, settings)
}

// handleDefaultsResource returns the built-in settings.
func (s *Server) handleDefaultsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	defaults := domain.DefaultSettings()
	if s.ports.Settings != nil {
		defaults = s.ports.Settings.GetDefaults()
	}
	return jsonResource(req.Params.URI, defaults)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling settings: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
