package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("requires copilot service", func(t *testing.T) {
		server, err := NewServer(&Ports{})

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingCopilotService)
		assert.Nil(t, server)
	})

	t.Run("retriever and store are optional", func(t *testing.T) {
		server, err := NewServer(&Ports{Copilot: &mockCopilotService{}})

		require.NoError(t, err)
		assert.NotNil(t, server)
	})

	t.Run("creates server with all ports", func(t *testing.T) {
		ports := &Ports{
			Copilot:   &mockCopilotService{},
			Retriever: &mockRetriever{},
			Store:     &mockDataStore{},
		}

		server, err := NewServer(ports)

		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}
