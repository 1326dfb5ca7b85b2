package mcp

import (
	"context"

	"github.com/MARTINA-MOUSA/Retail-Analytics-Copilot/internal/core/domain"
	"github.com/MARTINA-MOUSA/Retail-Analytics-Copilot/internal/core/ports/driven"
)

// mockCopilotService returns a canned run result.
type mockCopilotService struct {
	result domain.RunResult
	err    error
}

func (m *mockCopilotService) Ask(_ context.Context, _, _ string) (domain.RunResult, error) {
	if m.err != nil {
		return domain.RunResult{}, m.err
	}
	return m.result, nil
}

// mockRetriever returns canned passages.
type mockRetriever struct {
	passages []domain.Passage
	lastTopK int
}

func (m *mockRetriever) Retrieve(_ string, topK int) []domain.Passage {
	m.lastTopK = topK
	if len(m.passages) > topK {
		return m.passages[:topK]
	}
	return m.passages
}

// mockDataStore serves a fixed schema.
type mockDataStore struct {
	schema string
	err    error
}

func (m *mockDataStore) SchemaDescription(_ context.Context) (string, error) {
	return m.schema, m.err
}

func (m *mockDataStore) TableNames(_ context.Context) ([]string, error) {
	return []string{"orders"}, nil
}

func (m *mockDataStore) Execute(_ context.Context, _ string) (driven.QueryResult, error) {
	return driven.QueryResult{}, nil
}

func (m *mockDataStore) Close() error { return nil }
