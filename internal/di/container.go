package di

import (
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/email-persona/internal/adapters/gmail"
	"github.com/mikey/email-persona/internal/config"
	"github.com/mikey/email-persona/internal/core"
	"github.com/mikey/email-persona/internal/enrichment"
	"github.com/mikey/email-persona/internal/factory"
	"github.com/mikey/email-persona/internal/logging"
	"github.com/mikey/email-persona/internal/ratelimit"
	"github.com/mikey/email-persona/internal/server"
	"github.com/mikey/email-persona/internal/utils"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewLLMFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewStoreFactory); err != nil {
		return nil, err
	}

	// Register persistence
	if err := container.Provide(func(f *factory.StoreFactory) (factory.Store, error) {
		return f.CreateStore()
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(store factory.Store) core.TokenStore {
		return store
	}); err != nil {
		return nil, err
	}

	// Register OAuth manager
	if err := container.Provide(func(cfg *config.Config, tokens core.TokenStore, logger *zap.Logger) *gmail.OAuthManager {
		gmailCfg := cfg.GetGmail()
		return gmail.NewOAuthManager(gmailCfg.ClientID, gmailCfg.ClientSecret,
			gmailCfg.RedirectURL, tokens, logger)
	}); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(utils.NewTextProcessor); err != nil {
		return nil, err
	}

	// Register LLM rate limiter
	if err := container.Provide(func(cfg *config.Config) *ratelimit.Limiter {
		analysisCfg := cfg.GetAnalysis()
		return ratelimit.New(analysisCfg.RateLimitPerMinute, analysisCfg.RateLimitPerDay)
	}); err != nil {
		return nil, err
	}

	// Register style enricher. Nil when enrichment is disabled; the signal
	// service degrades gracefully.
	if err := container.Provide(func(
		cfg *config.Config,
		f *factory.LLMFactory,
		limiter *ratelimit.Limiter,
		processor *utils.TextProcessor,
		logger *zap.Logger,
	) (core.StyleEnricher, error) {
		analysisCfg := cfg.GetAnalysis()
		if !analysisCfg.EnableLLM {
			return nil, nil
		}
		client, err := f.CreateEnrichmentClient()
		if err != nil {
			return nil, err
		}
		pricingCfg := cfg.GetPricing()
		return enrichment.NewAnalyzer(client, limiter, processor, logger,
			analysisCfg.LLMMaxEmails, enrichment.Pricing{
				InputPerMTok:  pricingCfg.InputPerMTok,
				OutputPerMTok: pricingCfg.OutputPerMTok,
			}), nil
	}); err != nil {
		return nil, err
	}

	// Register signal service
	if err := container.Provide(func(
		cfg *config.Config,
		enricher core.StyleEnricher,
		logger *zap.Logger,
	) *core.SignalService {
		analysisCfg := cfg.GetAnalysis()
		return core.NewSignalService(enricher, logger,
			analysisCfg.EnableLLM, analysisCfg.LLMTimeout)
	}); err != nil {
		return nil, err
	}

	// Register HTTP server
	if err := container.Provide(server.New); err != nil {
		return nil, err
	}

	return container, nil
}
