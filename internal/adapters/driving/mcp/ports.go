package mcp

import (
	"github.com/MARTINA-MOUSA/Retail-Analytics-Copilot/internal/core/ports/driven"
	"github.com/MARTINA-MOUSA/Retail-Analytics-Copilot/internal/core/ports/driving"
)

// Ports aggregates the interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Copilot answers questions.
	Copilot driving.CopilotService

	// Retriever exposes the lexical index for the retrieve tool.
	Retriever driven.Retriever

	// Store exposes the database schema resource.
	Store driven.DataStore
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Copilot == nil {
		return ErrMissingCopilotService
	}
	// Retriever and Store are optional; their tool and resource degrade.
	return nil
}
