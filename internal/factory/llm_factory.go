package factory

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"go.uber.org/zap"

	"github.com/mikey/email-persona/internal/adapters/bedrock"
	"github.com/mikey/email-persona/internal/adapters/gemini"
	"github.com/mikey/email-persona/internal/adapters/openai"
	"github.com/mikey/email-persona/internal/config"
	"github.com/mikey/email-persona/internal/core"
)

// LLMFactory creates enrichment clients
type LLMFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewLLMFactory creates a new LLM factory
func NewLLMFactory(cfg *config.Config, logger *zap.Logger) *LLMFactory {
	return &LLMFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateEnrichmentClient creates a new enrichment client based on the configuration
func (f *LLMFactory) CreateEnrichmentClient() (core.EnrichmentClient, error) {
	llmConfig := f.cfg.GetLLM()

	switch llmConfig.Provider {
	case "bedrock":
		brCfg := f.cfg.GetBedrock()
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(brCfg.Region))
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
		}
		client := bedrockruntime.NewFromConfig(awsCfg)
		return bedrock.NewBedrockClient(client, brCfg.ModelID, brCfg.MaxTokens,
			brCfg.Temperature, brCfg.TopP, f.logger), nil
	case "gemini":
		gmCfg := f.cfg.GetGemini()
		return gemini.NewGeminiClient(gmCfg.APIKey, gmCfg.ModelName, gmCfg.MaxTokens,
			gmCfg.Temperature, gmCfg.TopP, f.logger)
	case "openai":
		oaCfg := f.cfg.GetOpenAI()
		return openai.NewOpenAIClient(oaCfg.APIKey, oaCfg.ModelName, oaCfg.MaxTokens,
			oaCfg.Temperature, oaCfg.TopP, f.logger), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", llmConfig.Provider)
	}
}
