package llm

import (
	"fmt"
	"strings"

	"smartlife/internal/config"
)

const (
	ProviderOpenAI = "openai"
	ProviderYandex = "yandex"
)

// Factory creates LLM clients with consistent logic
type Factory struct {
	OpenAIAPIKey      string
	OpenAIBaseURL     string
	OpenAIModel       string
	OpenAITemperature float32
	OpenAIMaxTokens   int
	YandexOAuthToken  string
	YandexFolderID    string
}

func NewFactory(cfg *config.Config) *Factory {
	return &Factory{
		OpenAIAPIKey:      cfg.OpenAIAPIKey,
		OpenAIBaseURL:     cfg.OpenAIBaseURL,
		OpenAIModel:       cfg.OpenAIModel,
		OpenAITemperature: cfg.OpenAITemperature,
		OpenAIMaxTokens:   cfg.OpenAIMaxTokens,
		YandexOAuthToken:  cfg.YandexOAuthToken,
		YandexFolderID:    cfg.YandexFolderID,
	}
}

// CreateClient builds the client for provider. Missing credentials are an error;
// callers decide whether to fall back to Unavailable.
func (f *Factory) CreateClient(provider string) (Client, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case ProviderOpenAI, "":
		if f.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("%w: OPENAI_API_KEY is not set", ErrNotConfigured)
		}
		return NewOpenAI(OpenAIOptions{
			APIKey:      f.OpenAIAPIKey,
			BaseURL:     f.OpenAIBaseURL,
			Model:       f.OpenAIModel,
			Temperature: f.OpenAITemperature,
			MaxTokens:   f.OpenAIMaxTokens,
		}), nil
	case ProviderYandex:
		if f.YandexOAuthToken == "" || f.YandexFolderID == "" {
			return nil, fmt.Errorf("%w: YANDEX_OAUTH_TOKEN and YANDEX_FOLDER_ID are required", ErrNotConfigured)
		}
		return NewYandex(f.YandexOAuthToken, f.YandexFolderID)
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", provider)
	}
}
