// Package openai provides a completion service adapter using the
// OpenAI chat completions API, including API-compatible gateways.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/MARTINA-MOUSA/Retail-Analytics-Copilot/internal/adapters/driven/llm"
	"github.com/MARTINA-MOUSA/Retail-Analytics-Copilot/internal/core/ports/driven"
)

// Ensure CompletionService implements the interfaces.
var (
	_ driven.CompletionService = (*CompletionService)(nil)
	_ driven.PromptStoreAware  = (*CompletionService)(nil)
)

// Default configuration values.
const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4o-mini"
	DefaultTimeout = 120 * time.Second
)

// Config holds configuration for the OpenAI completion service.
type Config struct {
	// APIKey is the OpenAI API key (required).
	APIKey string

	// BaseURL is the API base URL (default: https://api.openai.com/v1).
	// Can be changed for Azure OpenAI or compatible APIs.
	BaseURL string

	// Model is the model to use (default: gpt-4o-mini).
	Model string

	// Timeout is the request timeout (default: 120s).
	Timeout time.Duration
}

// CompletionService provides completions using the OpenAI API.
type CompletionService struct {
	client      *http.Client
	baseURL     string
	apiKey      string
	model       string
	promptStore driven.PromptStore
}

// chatCompletionRequest is the OpenAI /chat/completions request format.
type chatCompletionRequest struct {
	Model       string              `json:"model"`
	Messages    []chatCompletionMsg `json:"messages"`
	MaxTokens   int                 `json:"max_tokens,omitempty"`
	Temperature float64             `json:"temperature,omitempty"`
}

// chatCompletionMsg is the OpenAI chat message format.
type chatCompletionMsg struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatCompletionResponse is the OpenAI /chat/completions response format.
type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// NewCompletionService creates a new OpenAI completion service.
func NewCompletionService(cfg Config) (*CompletionService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &CompletionService{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
	}, nil
}

// chatCompletion runs a single-turn completion against /chat/completions.
func (s *CompletionService) chatCompletion(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	reqBody := chatCompletionRequest{
		Model: s.model,
		Messages: []chatCompletionMsg{
			{Role: "user", Content: prompt},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		s.baseURL+"/chat/completions",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var chatResp chatCompletionResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if chatResp.Error != nil {
		return "", fmt.Errorf("openai error: %s", chatResp.Error.Message)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openai error (status %d): %s", resp.StatusCode, string(body))
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("openai: no response choices returned")
	}

	return chatResp.Choices[0].Message.Content, nil
}

// ClassifyRoute labels a question with a raw route string.
func (s *CompletionService) ClassifyRoute(ctx context.Context, question string) (string, error) {
	template := llm.LoadPrompt(s.promptStore, driven.PromptRouteClassify)
	prompt := fmt.Sprintf(template, question)

	result, err := s.chatCompletion(ctx, prompt, 10, 0)
	if err != nil {
		return "", fmt.Errorf("classify route: %w", err)
	}

	return strings.TrimSpace(result), nil
}

// GenerateQuery produces SQL for the relational store.
func (s *CompletionService) GenerateQuery(ctx context.Context, question, schema, queryContext string) (string, error) {
	template := llm.LoadPrompt(s.promptStore, driven.PromptGenerateQuery)
	prompt := fmt.Sprintf(template, schema, llm.QueryContext(queryContext), question)

	result, err := s.chatCompletion(ctx, prompt, 400, 0)
	if err != nil {
		return "", fmt.Errorf("generate query: %w", err)
	}

	return strings.TrimSpace(result), nil
}

// Synthesize produces the final answer from query results and passages.
func (s *CompletionService) Synthesize(ctx context.Context, req driven.SynthesisRequest) (driven.SynthesisResult, error) {
	template := llm.LoadPrompt(s.promptStore, driven.PromptSynthesize)
	prompt := fmt.Sprintf(template, req.Question, req.Results, req.PassageContext, req.FormatHint)

	result, err := s.chatCompletion(ctx, prompt, 600, 0.2)
	if err != nil {
		return driven.SynthesisResult{}, fmt.Errorf("synthesize: %w", err)
	}

	return llm.ParseSynthesis(result), nil
}

// ModelName returns the name of the model being used.
func (s *CompletionService) ModelName() string {
	return s.model
}

// SetPromptStore sets the prompt store for loading customisable prompts.
// If not set, the service uses hardcoded default prompts.
func (s *CompletionService) SetPromptStore(store driven.PromptStore) {
	s.promptStore = store
}

// Ping validates the service is reachable by checking the /models endpoint.
// This is a lightweight check that validates the API key without running inference.
func (s *CompletionService) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/models", http.NoBody)
	if err != nil {
		return fmt.Errorf("openai: failed to create ping request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("openai: ping failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("openai: API returned status %d (failed to read body: %w)", resp.StatusCode, err)
		}
		return fmt.Errorf("openai: API returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// Close releases resources.
func (s *CompletionService) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}
