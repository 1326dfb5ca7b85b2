// Package ai provides factory functions for creating completion-service adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/MARTINA-MOUSA/Retail-Analytics-Copilot/internal/adapters/driven/llm"
	ollamallm "github.com/MARTINA-MOUSA/Retail-Analytics-Copilot/internal/adapters/driven/llm/ollama"
	openaillm "github.com/MARTINA-MOUSA/Retail-Analytics-Copilot/internal/adapters/driven/llm/openai"
	"github.com/MARTINA-MOUSA/Retail-Analytics-Copilot/internal/core/domain"
	"github.com/MARTINA-MOUSA/Retail-Analytics-Copilot/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// CreateCompletionService creates the appropriate completion service
// based on settings, wrapped with rate limiting when configured.
// Returns an error if the settings do not identify a usable provider.
func CreateCompletionService(settings domain.CompletionSettings) (driven.CompletionService, error) {
	if !settings.IsConfigured() {
		return nil, fmt.Errorf("%w: no completion provider configured", domain.ErrCompletionUnavailable)
	}

	var (
		svc driven.CompletionService
		err error
	)

	switch settings.Provider {
	case domain.AIProviderOllama:
		svc = ollamallm.NewCompletionService(ollamallm.Config{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	case domain.AIProviderOpenAI:
		svc, err = openaillm.NewCompletionService(openaillm.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrCompletionUnavailable, err)
		}

	default:
		return nil, fmt.Errorf("%w: unknown provider %q", domain.ErrCompletionUnavailable, settings.Provider)
	}

	return llm.NewRateLimited(svc, settings.RequestsPerSecond), nil
}

// CreateAndValidateCompletionService creates a completion service and
// validates connectivity before handing it to the caller.
func CreateAndValidateCompletionService(settings domain.CompletionSettings) (driven.CompletionService, error) {
	svc, err := CreateCompletionService(settings)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w)", domain.ErrCompletionUnavailable, err)
	}

	return svc, nil
}
