// Package ollama provides a completion service adapter using Ollama.
package ollama

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
	DefaultBaseURL = "http://localhost:11434"
	DefaultModel   = "llama3.2"
	DefaultTimeout = 120 * time.Second
)

// Config holds configuration for the Ollama completion service.
type Config struct {
	// BaseURL is the Ollama API base URL (default: http://localhost:11434).
	BaseURL string

	// Model is the model to use (default: llama3.2).
	Model string

	// Timeout is the request timeout (default: 120s).
	Timeout time.Duration
}

// CompletionService provides completions using Ollama.
type CompletionService struct {
	client      *http.Client
	baseURL     string
	model       string
	promptStore driven.PromptStore
}

// generateRequest is the Ollama /api/generate request format.
type generateRequest struct {
	Model   string   `json:"model"`
	Prompt  string   `json:"prompt"`
	Stream  bool     `json:"stream"`
	Options *options `json:"options,omitempty"`
}

// options holds generation parameters.
type options struct {
	NumPredict  int     `json:"num_predict,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
}

// generateResponse is the Ollama /api/generate response format.
type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// NewCompletionService creates a new Ollama completion service.
func NewCompletionService(cfg Config) *CompletionService {
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
		model:   cfg.Model,
	}
}

// generate produces a text completion from a prompt.
func (s *CompletionService) generate(ctx context.Context, prompt string, opts options) (string, error) {
	reqBody := generateRequest{
		Model:   s.model,
		Prompt:  prompt,
		Stream:  false,
		Options: &opts,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		s.baseURL+"/api/generate",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", fmt.Errorf("ollama error (status %d): failed to read response", resp.StatusCode)
		}
		return "", fmt.Errorf("ollama error (status %d): %s", resp.StatusCode, string(body))
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	return genResp.Response, nil
}

// ClassifyRoute labels a question with a raw route string.
func (s *CompletionService) ClassifyRoute(ctx context.Context, question string) (string, error) {
	template := llm.LoadPrompt(s.promptStore, driven.PromptRouteClassify)
	prompt := fmt.Sprintf(template, question)

	result, err := s.generate(ctx, prompt, options{NumPredict: 10})
	if err != nil {
		return "", fmt.Errorf("classify route: %w", err)
	}

	return strings.TrimSpace(result), nil
}

// GenerateQuery produces SQL for the relational store.
func (s *CompletionService) GenerateQuery(ctx context.Context, question, schema, queryContext string) (string, error) {
	template := llm.LoadPrompt(s.promptStore, driven.PromptGenerateQuery)
	prompt := fmt.Sprintf(template, schema, llm.QueryContext(queryContext), question)

	result, err := s.generate(ctx, prompt, options{NumPredict: 400})
	if err != nil {
		return "", fmt.Errorf("generate query: %w", err)
	}

	return strings.TrimSpace(result), nil
}

// Synthesize produces the final answer from query results and passages.
func (s *CompletionService) Synthesize(ctx context.Context, req driven.SynthesisRequest) (driven.SynthesisResult, error) {
	template := llm.LoadPrompt(s.promptStore, driven.PromptSynthesize)
	prompt := fmt.Sprintf(template, req.Question, req.Results, req.PassageContext, req.FormatHint)

	result, err := s.generate(ctx, prompt, options{NumPredict: 600, Temperature: 0.2})
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

// Ping validates the service is reachable by checking the /api/tags endpoint.
// This is a lightweight check that validates connectivity without running inference.
func (s *CompletionService) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/tags", http.NoBody)
	if err != nil {
		return fmt.Errorf("ollama: failed to create ping request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("ollama: ping failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("ollama: API returned status %d (failed to read body: %w)", resp.StatusCode, err)
		}
		return fmt.Errorf("ollama: API returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// Close releases resources.
func (s *CompletionService) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}
