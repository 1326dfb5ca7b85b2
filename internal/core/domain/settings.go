package domain

// AIProvider identifies a completion-service provider.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is the OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// CompletionSettings holds completion-service provider configuration.
type CompletionSettings struct {
	// Provider is the completion-service provider.
	Provider AIProvider

	// Model is the model name.
	Model string

	// BaseURL is the API endpoint (for Ollama or compatible gateways).
	BaseURL string

	// APIKey is the API key (for OpenAI).
	APIKey string

	// RequestsPerSecond caps the outbound request rate. Zero disables
	// rate limiting.
	RequestsPerSecond float64
}

// IsConfigured returns true if the settings identify a usable provider.
func (s CompletionSettings) IsConfigured() bool {
	if !s.Provider.IsValid() {
		return false
	}
	if s.Provider.RequiresAPIKey() && s.APIKey == "" {
		return false
	}
	return true
}
