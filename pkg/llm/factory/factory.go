package factory

import (
	"fmt"
	"time"

	"ai-workspace-be/pkg/llm"
	"ai-workspace-be/pkg/llm/gemini"
	"ai-workspace-be/pkg/llm/ollama"
	"ai-workspace-be/pkg/llm/openai"
)

const (
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"

	defaultTimeout = 120 * time.Second
)

type Config struct {
	Provider  string
	APIKey    string
	BaseURL   string
	FastModel string
	ProModel  string
	Timeout   time.Duration
}

func NewLLMProvider(cfg Config) (llm.LLMProvider, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	models := llm.Models{Fast: cfg.FastModel, Pro: cfg.ProModel}

	switch cfg.Provider {
	case ProviderGemini, "":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("gemini provider requires an API key")
		}
		if models.Fast == "" {
			models.Fast = "gemini-2.5-flash"
		}
		if models.Pro == "" {
			models.Pro = "gemini-2.5-pro"
		}
		return gemini.NewGeminiProvider(cfg.APIKey, cfg.BaseURL, models, timeout), nil
	case ProviderOllama:
		if models.Fast == "" {
			return nil, fmt.Errorf("ollama provider requires a model name")
		}
		return ollama.NewOllamaProvider(cfg.BaseURL, models, timeout), nil
	case ProviderOpenAI:
		if models.Fast == "" {
			models.Fast = "gpt-4o-mini"
		}
		if models.Pro == "" {
			models.Pro = "gpt-4o"
		}
		return openai.NewOpenAIProvider(cfg.APIKey, cfg.BaseURL, models, timeout), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
