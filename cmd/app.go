package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/skillscribe/internal/ai"
	"github.com/spigell/skillscribe/internal/logger"
	"github.com/spigell/skillscribe/internal/pipeline"
)

// application is what every command works with.
type application struct {
	config  *Config
	logger  *zap.Logger
	store   *pipeline.Store
	gateway ai.Gateway
}

func newApplication() *application {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Debug("starting with config",
		zap.String("state_file", config.StateFile),
		zap.Bool("seed", config.Seed),
		zap.String("ai_provider", config.AI.Provider),
	)

	store, err := loadStore(config, logger)
	if err != nil {
		logger.Fatal("loading the pipeline", zap.Error(err))
	}

	return &application{config: config, logger: logger, store: store}
}

// connectAI builds the gateway for commands that call the model.
func (a *application) connectAI(ctx context.Context) {
	gateway, err := newGateway(ctx, a.config, a.logger)
	if err != nil {
		a.logger.Fatal("building the ai gateway", zap.Error(err))
	}
	a.gateway = gateway
}

// loadStore restores the state file when there is one and falls back to the
// demo data when seeding is enabled.
func loadStore(config *Config, logger *zap.Logger) (*pipeline.Store, error) {
	store := pipeline.NewStore(pipeline.WithLogger(logger))

	if config.StateFile != "" {
		found, err := store.LoadFile(config.StateFile)
		if err != nil {
			return nil, fmt.Errorf("load state file: %w", err)
		}
		if found {
			logger.Info("pipeline loaded",
				zap.String("filename", config.StateFile),
				zap.Int("jobs", len(store.Jobs())),
				zap.Int("candidates", len(store.Candidates())),
			)
			return store, nil
		}
	}

	if config.Seed {
		store.Seed()
		logger.Debug("pipeline seeded with demo data")
	}

	return store, nil
}

// save writes the state file when one is configured.
func (a *application) save() {
	if a.config.StateFile == "" {
		return
	}

	if err := a.store.SaveFile(a.config.StateFile); err != nil {
		a.logger.Error("saving the pipeline", zap.String("filename", a.config.StateFile), zap.Error(err))
		return
	}
	a.logger.Debug("pipeline saved", zap.String("filename", a.config.StateFile))
}
