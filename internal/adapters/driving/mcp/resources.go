package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for Urbanista resources.
	uriScheme = "urbanista://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing regions.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "regions",
		Name:        "regions",
		Description: "List of all Italian regions",
		MIMEType:    "application/json",
	}, s.handleRegionsResource)

	// Template for the provinces of a region.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "regions/{region}/provinces",
		Name:        "region-provinces",
		Description: "Provinces of a specific region",
		MIMEType:    "application/json",
	}, s.handleProvincesResource)

	// Template for the comuni of a province.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "regions/{region}/provinces/{province}/comuni",
		Name:        "province-comuni",
		Description: "Comuni of a specific province",
		MIMEType:    "application/json",
	}, s.handleComuniResource)
}

// jsonResource wraps a payload as a single JSON resource content.
func jsonResource(uri string, payload any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleRegionsResource returns all region names.
func (s *Server) handleRegionsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if err := s.ports.Hierarchy.Load(ctx); err != nil {
		return nil, fmt.Errorf("loading territorial hierarchy: %w", err)
	}
	return jsonResource(req.Params.URI, s.ports.Hierarchy.Regions())
}

// handleProvincesResource returns the provinces of the region in the URI.
func (s *Server) handleProvincesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	region, _ := extractTerritoryPath(req.Params.URI)
	if region == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	if err := s.ports.Hierarchy.Load(ctx); err != nil {
		return nil, fmt.Errorf("loading territorial hierarchy: %w", err)
	}

	provinces := s.ports.Hierarchy.Provinces(region)
	if len(provinces) == 0 {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	return jsonResource(req.Params.URI, provinces)
}

// handleComuniResource returns the comuni of the (region, province) pair
// in the URI.
func (s *Server) handleComuniResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	region, province := extractTerritoryPath(req.Params.URI)
	if region == "" || province == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	if err := s.ports.Hierarchy.Load(ctx); err != nil {
		return nil, fmt.Errorf("loading territorial hierarchy: %w", err)
	}

	comuni := s.ports.Hierarchy.Municipalities(region, province)
	if len(comuni) == 0 {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	return jsonResource(req.Params.URI, comuni)
}

// extractTerritoryPath pulls the region and province segments out of a
// urbanista://regions/{region}/provinces/{province}/... URI. Missing
// segments come back empty.
func extractTerritoryPath(uri string) (region, province string) {
	path := strings.TrimPrefix(uri, uriScheme)
	parts := strings.Split(path, "/")

	// regions/{region}/provinces/{province}/comuni
	if len(parts) >= 2 && parts[0] == "regions" {
		region = parts[1]
	}
	if len(parts) >= 4 && parts[2] == "provinces" {
		province = parts[3]
	}
	return region, province
}
