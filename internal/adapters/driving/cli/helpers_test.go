package cli

import (
	"context"

	"github.com/MARTINA-MOUSA/Retail-Analytics-Copilot/internal/core/domain"
	"github.com/MARTINA-MOUSA/Retail-Analytics-Copilot/internal/core/ports/driven"
)

// mockCopilot returns a canned result and records questions asked.
type mockCopilot struct {
	result domain.RunResult
	err    error
	asked  []string
}

func (m *mockCopilot) Ask(_ context.Context, question, _ string) (domain.RunResult, error) {
	m.asked = append(m.asked, question)
	if m.err != nil {
		return domain.RunResult{}, m.err
	}
	return m.result, nil
}

// mockDataStore serves a fixed schema.
type mockDataStore struct {
	schema string
}

func (m *mockDataStore) SchemaDescription(_ context.Context) (string, error) {
	return m.schema, nil
}

func (m *mockDataStore) TableNames(_ context.Context) ([]string, error) {
	return []string{"orders", "products"}, nil
}

func (m *mockDataStore) Execute(_ context.Context, _ string) (driven.QueryResult, error) {
	return driven.QueryResult{Rows: []map[string]any{}}, nil
}

func (m *mockDataStore) Close() error { return nil }

// setupTestServices installs mock services and returns a cleanup func.
func setupTestServices() func() {
	oldCopilot := copilotService
	oldStore := dataStore
	oldRetriever := retrieverSvc

	copilotService = &mockCopilot{result: domain.RunResult{
		Answer:      42,
		Query:       "SELECT COUNT(*) FROM orders",
		Confidence:  0.9,
		Explanation: "Counted the orders.",
		Citations:   []string{"orders"},
	}}
	dataStore = &mockDataStore{schema: "Table orders:\n  OrderID (INTEGER, PRIMARY KEY)"}
	retrieverSvc = nil

	return func() {
		copilotService = oldCopilot
		dataStore = oldStore
		retrieverSvc = oldRetriever
	}
}
