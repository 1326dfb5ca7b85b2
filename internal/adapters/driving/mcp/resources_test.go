package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func schemaRequest() *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{URI: uriScheme + "schema"},
	}
}

func TestServer_handleSchemaResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the schema", func(t *testing.T) {
		store := &mockDataStore{schema: "Table orders:\n  OrderID (INTEGER, PRIMARY KEY)"}
		server, err := NewServer(&Ports{Copilot: &mockCopilotService{}, Store: store})
		require.NoError(t, err)

		result, err := server.handleSchemaResource(ctx, schemaRequest())

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "text/plain", result.Contents[0].MIMEType)
		assert.Contains(t, result.Contents[0].Text, "Table orders:")
	})

	t.Run("degrades without a store", func(t *testing.T) {
		server, err := NewServer(&Ports{Copilot: &mockCopilotService{}})
		require.NoError(t, err)

		result, err := server.handleSchemaResource(ctx, schemaRequest())

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "no database configured", result.Contents[0].Text)
	})

	t.Run("propagates store errors", func(t *testing.T) {
		store := &mockDataStore{err: errors.New("database locked")}
		server, err := NewServer(&Ports{Copilot: &mockCopilotService{}, Store: store})
		require.NoError(t, err)

		_, err = server.handleSchemaResource(ctx, schemaRequest())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "database locked")
	})
}
