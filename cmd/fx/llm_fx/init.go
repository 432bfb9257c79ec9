package llm_fx

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"tripspark/internal/config"
	"tripspark/pkg/utils"
)

var Module = fx.Provide(
	ProvideCompletionClient)

// ProvideCompletionClient builds the configured provider's client behind the prompt cache.
func ProvideCompletionClient(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (utils.TextCompletionClient, error) {
	llm := cfg.LLM
	if llm.APIKey == "" {
		return nil, fmt.Errorf("llm.api_key is required for provider %s", llm.Provider)
	}

	logger.Info("initializing completion client",
		zap.String("provider", llm.Provider),
		zap.String("model", llm.Model))

	var client utils.TextCompletionClient
	switch strings.ToLower(llm.Provider) {
	case "groq":
		baseURL := llm.BaseURL
		if baseURL == "" {
			baseURL = utils.GroqBaseURL
		}
		client = utils.NewOpenAICompletionClient(llm.APIKey, baseURL, llm.Model, llm.Temperature)
	case "openai":
		client = utils.NewOpenAICompletionClient(llm.APIKey, llm.BaseURL, llm.Model, llm.Temperature)
	case "gemini":
		gemini, err := utils.NewGeminiCompletionClient(context.Background(), llm.APIKey, llm.Model, llm.Temperature)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return gemini.Close()
			},
		})
		client = gemini
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s. Use 'groq', 'openai' or 'gemini'", llm.Provider)
	}

	if llm.CacheSize <= 0 {
		return client, nil
	}
	return utils.NewCachedCompletionClient(client, llm.CacheSize, llm.CacheTTL, logger), nil
}
