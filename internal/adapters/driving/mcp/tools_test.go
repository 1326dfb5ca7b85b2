package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MARTINA-MOUSA/Retail-Analytics-Copilot/internal/core/domain"
)

func TestServer_handleAsk(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the run result", func(t *testing.T) {
		copilot := &mockCopilotService{
			result: domain.RunResult{
				Answer:      1996.5,
				Query:       "SELECT SUM(revenue) FROM orders",
				Confidence:  0.85,
				Explanation: "Summed order revenue.",
				Citations:   []string{"orders", "kpi::chunk0"},
			},
		}

		server, err := NewServer(&Ports{Copilot: copilot})
		require.NoError(t, err)

		_, output, err := server.handleAsk(ctx, nil, AskInput{Question: "total revenue?", FormatHint: "float"})

		require.NoError(t, err)
		assert.Equal(t, 1996.5, output.Answer)
		assert.Equal(t, "SELECT SUM(revenue) FROM orders", output.SQL)
		assert.Equal(t, 0.85, output.Confidence)
		assert.Equal(t, []string{"orders", "kpi::chunk0"}, output.Citations)
	})

	t.Run("nil citations become an empty list", func(t *testing.T) {
		server, err := NewServer(&Ports{Copilot: &mockCopilotService{}})
		require.NoError(t, err)

		_, output, err := server.handleAsk(ctx, nil, AskInput{Question: "anything"})

		require.NoError(t, err)
		assert.NotNil(t, output.Citations)
		assert.Empty(t, output.Citations)
	})

	t.Run("returns error on copilot failure", func(t *testing.T) {
		copilot := &mockCopilotService{err: errors.New("routing failed")}
		server, err := NewServer(&Ports{Copilot: copilot})
		require.NoError(t, err)

		_, _, err = server.handleAsk(ctx, nil, AskInput{Question: "anything"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "routing failed")
	})
}

func TestServer_handleRetrieve(t *testing.T) {
	ctx := context.Background()

	t.Run("returns passages", func(t *testing.T) {
		retriever := &mockRetriever{passages: []domain.Passage{
			{ID: "kpi::chunk0", Source: "kpi", Score: 0.9, Text: "AOV is revenue over orders."},
			{ID: "policy::chunk1", Source: "policy", Score: 0.4, Text: "Returns within 30 days."},
		}}

		server, err := NewServer(&Ports{Copilot: &mockCopilotService{}, Retriever: retriever})
		require.NoError(t, err)

		_, output, err := server.handleRetrieve(ctx, nil, RetrieveInput{Query: "average order value"})

		require.NoError(t, err)
		assert.Equal(t, 2, output.Count)
		assert.Equal(t, "kpi::chunk0", output.Passages[0].ID)
		assert.Equal(t, 0.9, output.Passages[0].Score)
	})

	t.Run("default top_k is 5", func(t *testing.T) {
		retriever := &mockRetriever{}
		server, err := NewServer(&Ports{Copilot: &mockCopilotService{}, Retriever: retriever})
		require.NoError(t, err)

		_, _, err = server.handleRetrieve(ctx, nil, RetrieveInput{Query: "anything"})

		require.NoError(t, err)
		assert.Equal(t, 5, retriever.lastTopK)
	})

	t.Run("errors without a retriever", func(t *testing.T) {
		server, err := NewServer(&Ports{Copilot: &mockCopilotService{}})
		require.NoError(t, err)

		_, _, err = server.handleRetrieve(ctx, nil, RetrieveInput{Query: "anything"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "retriever not configured")
	})
}
