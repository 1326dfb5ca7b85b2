package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/MARTINA-MOUSA/Retail-Analytics-Copilot/internal/core/domain"
)

// appDir is the directory under the user's home holding config and prompts.
const appDir = ".retail-copilot"

// Config is the on-disk application configuration, stored as TOML.
type Config struct {
	Database   DatabaseConfig   `toml:"database"`
	Documents  DocumentsConfig  `toml:"documents"`
	Completion CompletionConfig `toml:"completion"`
	Batch      BatchConfig      `toml:"batch"`
}

// DatabaseConfig locates the relational store.
type DatabaseConfig struct {
	// Path is the SQLite database file.
	Path string `toml:"path"`
}

// DocumentsConfig locates the document corpus.
type DocumentsConfig struct {
	// Dir is the directory of markdown documents to index.
	Dir string `toml:"dir"`
}

// CompletionConfig configures the language-model provider.
type CompletionConfig struct {
	// Provider is "ollama" or "openai".
	Provider string `toml:"provider"`

	// Model is the model name; empty uses the provider default.
	Model string `toml:"model"`

	// BaseURL overrides the provider endpoint.
	BaseURL string `toml:"base_url"`

	// APIKey authenticates cloud providers. The OPENAI_API_KEY
	// environment variable takes precedence when set.
	APIKey string `toml:"api_key"`

	// RequestsPerSecond caps outbound completion requests. Zero
	// disables rate limiting.
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

// BatchConfig configures batch question processing.
type BatchConfig struct {
	// Workers is the number of questions processed concurrently.
	Workers int `toml:"workers"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Database:  DatabaseConfig{Path: "northwind.sqlite"},
		Documents: DocumentsConfig{Dir: "docs"},
		Completion: CompletionConfig{
			Provider: string(domain.AIProviderOllama),
		},
		Batch: BatchConfig{Workers: 4},
	}
}

// DefaultConfigPath returns the default config file location,
// ~/.retail-copilot/config.toml.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, appDir, "config.toml"), nil
}

// LoadConfig reads the TOML config at path, filling unset fields with
// defaults. A missing file yields the defaults without error so the
// tool works out of the box.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.Batch.Workers <= 0 {
		cfg.Batch.Workers = DefaultConfig().Batch.Workers
	}
	return cfg, nil
}

// SaveConfig writes the configuration to path as TOML, creating the
// parent directory if needed.
func SaveConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	// Restricted permissions, the file may hold an API key.
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// CompletionSettings converts the completion section to domain
// settings, resolving the API key from the environment when present.
func (c Config) CompletionSettings() domain.CompletionSettings {
	apiKey := c.Completion.APIKey
	if env := os.Getenv("OPENAI_API_KEY"); env != "" {
		apiKey = env
	}

	return domain.CompletionSettings{
		Provider:          domain.AIProvider(c.Completion.Provider),
		Model:             c.Completion.Model,
		BaseURL:           c.Completion.BaseURL,
		APIKey:            apiKey,
		RequestsPerSecond: c.Completion.RequestsPerSecond,
	}
}
