package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/skillscribe/internal/ai"
	"github.com/spigell/skillscribe/internal/ai/gemini"
	aiopenai "github.com/spigell/skillscribe/internal/ai/openai"
	"github.com/spigell/skillscribe/internal/secrets"
)

const (
	providerGemini = "gemini"
	providerOpenAI = "openai"
)

// newGateway picks the AI gateway once at startup. Without a credential the
// fixture gateway is used.
func newGateway(ctx context.Context, config *Config, logger *zap.Logger) (ai.Gateway, error) {
	generator, err := newGenerator(ctx, config.AI)
	if err != nil {
		if errors.Is(err, secrets.ErrNotConfigured) {
			logger.Warn("no ai credential configured, using fixture responses",
				zap.String("provider", config.AI.Provider),
				zap.String("hint", "set GEMINI_API_KEY or OPENAI_API_KEY, or the ai section in the configuration file"),
			)
			return ai.NewFixture(), nil
		}
		return nil, err
	}

	logger.Info("using ai provider",
		zap.String("provider", generator.Provider()),
		zap.String("model", generator.Model()),
	)

	return ai.NewLive(generator, logger, config.MaxLogLength), nil
}

func newGenerator(ctx context.Context, cfg *AIConfig) (ai.Generator, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))

	switch provider {
	case "", providerGemini:
		gc := cfg.Gemini
		if strings.EqualFold(strings.TrimSpace(gc.Backend), gemini.BackendVertex) {
			// Vertex authenticates with application default credentials.
			return gemini.NewGenerator(ctx, gemini.Config{
				Model:    gc.Model,
				Backend:  gc.Backend,
				Project:  gc.Project,
				Location: gc.Location,
			})
		}

		apiKey, err := secrets.Load(secrets.Source{
			Name:  "gemini api key",
			Value: gc.APIKey,
			File:  gc.APIKeyFile,
		})
		if err != nil {
			return nil, err
		}
		return gemini.NewGenerator(ctx, gemini.Config{APIKey: apiKey, Model: gc.Model, Backend: gc.Backend})
	case providerOpenAI:
		apiKey, err := secrets.Load(secrets.Source{
			Name:  "openai api key",
			Value: cfg.OpenAI.APIKey,
			File:  cfg.OpenAI.APIKeyFile,
		})
		if err != nil {
			return nil, err
		}
		return aiopenai.NewGenerator(apiKey, cfg.OpenAI.Model)
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
}
