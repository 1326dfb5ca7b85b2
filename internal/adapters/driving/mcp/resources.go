package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// uriScheme is the custom URI scheme for copilot resources.
const uriScheme = "copilot://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "schema",
		Name:        "schema",
		Description: "Schema of the retail database, as presented during SQL generation",
		MIMEType:    "text/plain",
	}, s.handleSchemaResource)
}

// handleSchemaResource returns the database schema description.
func (s *Server) handleSchemaResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Store == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "text/plain",
				Text:     "no database configured",
			}},
		}, nil
	}

	schema, err := s.ports.Store.SchemaDescription(ctx)
	if err != nil {
		return nil, fmt.Errorf("describing schema: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     schema,
		}},
	}, nil
}
