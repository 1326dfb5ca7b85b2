// Package mcp provides an MCP (Model Context Protocol) server adapter
// for the copilot. It lets AI assistants ask analytics questions and
// inspect the retrieval index and database schema.
package mcp

import "errors"

// ErrMissingCopilotService is returned when the copilot service is not provided.
var ErrMissingCopilotService = errors.New("mcp: copilot service is required")
