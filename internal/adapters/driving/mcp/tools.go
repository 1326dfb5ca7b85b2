package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question   string `json:"question" jsonschema:"the analytics question to answer"`
	FormatHint string `json:"format_hint,omitempty" jsonschema:"expected answer format: int, float, str, or a structure sketch"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer      any      `json:"answer"`
	SQL         string   `json:"sql,omitempty"`
	Confidence  float64  `json:"confidence"`
	Explanation string   `json:"explanation,omitempty"`
	Citations   []string `json:"citations"`
}

// RetrieveInput is the input schema for the retrieve tool.
type RetrieveInput struct {
	Query string `json:"query" jsonschema:"the text to match against indexed document chunks"`
	TopK  int    `json:"top_k,omitempty" jsonschema:"maximum number of passages to return (default 5)"`
}

// RetrieveOutput is the output schema for the retrieve tool.
type RetrieveOutput struct {
	Passages []PassageOutput `json:"passages"`
	Count    int             `json:"count"`
}

// PassageOutput represents a single retrieved passage.
type PassageOutput struct {
	ID     string  `json:"id"`
	Source string  `json:"source"`
	Score  float64 `json:"score"`
	Text   string  `json:"text"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a retail analytics question using documents and SQL",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "retrieve",
		Description: "Retrieve the most relevant document chunks for a query",
	}, s.handleRetrieve)
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	result, err := s.ports.Copilot.Ask(ctx, input.Question, input.FormatHint)
	if err != nil {
		return nil, AskOutput{}, err
	}

	citations := result.Citations
	if citations == nil {
		citations = []string{}
	}

	return nil, AskOutput{
		Answer:      result.Answer,
		SQL:         result.Query,
		Confidence:  result.Confidence,
		Explanation: result.Explanation,
		Citations:   citations,
	}, nil
}

// handleRetrieve handles the retrieve tool invocation.
func (s *Server) handleRetrieve(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input RetrieveInput,
) (*mcp.CallToolResult, RetrieveOutput, error) {
	if s.ports.Retriever == nil {
		return nil, RetrieveOutput{}, errors.New("retriever not configured")
	}

	topK := input.TopK
	if topK <= 0 {
		topK = 5
	}

	passages := s.ports.Retriever.Retrieve(input.Query, topK)

	output := RetrieveOutput{
		Passages: make([]PassageOutput, len(passages)),
		Count:    len(passages),
	}
	for i := range passages {
		output.Passages[i] = PassageOutput{
			ID:     passages[i].ID,
			Source: passages[i].Source,
			Score:  passages[i].Score,
			Text:   passages[i].Text,
		}
	}

	return nil, output, nil
}
