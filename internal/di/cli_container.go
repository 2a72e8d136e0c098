package di

import (
	"flag"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/email-persona/internal/config"
	"github.com/mikey/email-persona/internal/core"
	"github.com/mikey/email-persona/internal/enrichment"
	"github.com/mikey/email-persona/internal/factory"
	"github.com/mikey/email-persona/internal/logging"
	"github.com/mikey/email-persona/internal/ratelimit"
	"github.com/mikey/email-persona/internal/utils"
)

// CLIFlags contains all command line flags for the CLI application
type CLIFlags struct {
	// LLM provider flags
	Provider    string
	MaxTokens   int
	Temperature float64
	TopP        float64

	// Bedrock flags
	BedrockRegion  string
	BedrockModelID string

	// Gemini flags
	GeminiAPIKey    string
	GeminiModelName string

	// OpenAI flags
	OpenAIAPIKey    string
	OpenAIModelName string

	// Analysis flags
	UserEmail    string
	EnableLLM    bool
	LLMMaxEmails int
	LLMTimeout   string

	// Input flags
	EmailsFile string
	SentFile   string
	BodiesFile string
	Verbose    bool
	JSONLog    bool
	ConfigFile string
}

// ParseFlags parses command line flags and returns a CLIFlags struct
func ParseFlags() *CLIFlags {
	flags := &CLIFlags{}

	// LLM provider flags
	flag.StringVar(&flags.Provider, "provider", "gemini", "LLM provider (bedrock, gemini, openai)")
	flag.IntVar(&flags.MaxTokens, "max-tokens", 1000, "Maximum tokens for LLM response")
	flag.Float64Var(&flags.Temperature, "temperature", 0.3, "Temperature for LLM generation")
	flag.Float64Var(&flags.TopP, "top-p", 0.9, "Top-p for LLM generation")

	// Bedrock flags
	flag.StringVar(&flags.BedrockRegion, "bedrock-region", "us-east-1", "AWS region for Bedrock")
	flag.StringVar(&flags.BedrockModelID, "bedrock-model", "anthropic.claude-v2", "Bedrock model ID")

	// Gemini flags
	flag.StringVar(&flags.GeminiAPIKey, "gemini-api-key", "", "API key for Google Gemini")
	flag.StringVar(&flags.GeminiModelName, "gemini-model", "gemini-2.0-flash", "Gemini model name")

	// OpenAI flags
	flag.StringVar(&flags.OpenAIAPIKey, "openai-api-key", "", "API key for OpenAI")
	flag.StringVar(&flags.OpenAIModelName, "openai-model", "gpt-4o-mini", "OpenAI model name")

	// Analysis flags
	flag.StringVar(&flags.UserEmail, "user", "", "Mailbox owner address (required)")
	flag.BoolVar(&flags.EnableLLM, "enable-llm", false, "Enable LLM style enrichment")
	flag.IntVar(&flags.LLMMaxEmails, "llm-max-emails", 10, "Maximum sent bodies to send to the LLM")
	flag.StringVar(&flags.LLMTimeout, "llm-timeout", "60s", "Timeout for LLM enrichment")

	// Input flags
	flag.StringVar(&flags.EmailsFile, "file", "", "JSON file with the full email batch (use stdin if not specified)")
	flag.StringVar(&flags.SentFile, "sent-file", "", "JSON file with the sent-email subset")
	flag.StringVar(&flags.BodiesFile, "bodies-file", "", "JSON file with sent-email bodies for enrichment")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Enable verbose logging")
	flag.BoolVar(&flags.JSONLog, "json-log", false, "Output logs in JSON format")
	flag.StringVar(&flags.ConfigFile, "config", "", "Path to config file (overrides command line flags)")

	flag.Parse()
	return flags
}

// BuildCLIContainer creates and configures a dependency injection container for the CLI application
func BuildCLIContainer(flags *CLIFlags) (*dig.Container, error) {
	container := dig.New()

	// Register flags
	if err := container.Provide(func() *CLIFlags { return flags }); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(func(flags *CLIFlags) (*zap.Logger, error) {
		return logging.InitConsoleLogger(flags.Verbose, flags.JSONLog)
	}); err != nil {
		return nil, err
	}

	// Register configuration
	if err := container.Provide(func(flags *CLIFlags, logger *zap.Logger) (*config.Config, error) {
		if flags.ConfigFile != "" {
			cfg, err := config.New()
			if err != nil {
				return nil, err
			}
			logger.Info("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
			return cfg, nil
		}

		// Create config from command line flags
		return createConfigFromFlags(flags), nil
	}); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewLLMFactory); err != nil {
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

	// Register style enricher
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

	return container, nil
}

// createConfigFromFlags creates a configuration from command line flags
func createConfigFromFlags(flags *CLIFlags) *config.Config {
	v := config.NewEmptyViper()

	// Set LLM provider
	v.Set("llm.provider", flags.Provider)

	// Set provider-specific configuration
	switch flags.Provider {
	case "bedrock":
		v.Set("bedrock.region", flags.BedrockRegion)
		v.Set("bedrock.model_id", flags.BedrockModelID)
		v.Set("bedrock.max_tokens", flags.MaxTokens)
		v.Set("bedrock.temperature", flags.Temperature)
		v.Set("bedrock.top_p", flags.TopP)
	case "gemini":
		v.Set("gemini.api_key", flags.GeminiAPIKey)
		v.Set("gemini.model_name", flags.GeminiModelName)
		v.Set("gemini.max_tokens", flags.MaxTokens)
		v.Set("gemini.temperature", flags.Temperature)
		v.Set("gemini.top_p", flags.TopP)
	case "openai":
		v.Set("openai.api_key", flags.OpenAIAPIKey)
		v.Set("openai.model_name", flags.OpenAIModelName)
		v.Set("openai.max_tokens", flags.MaxTokens)
		v.Set("openai.temperature", flags.Temperature)
		v.Set("openai.top_p", flags.TopP)
	}

	// Set analysis configuration
	v.Set("analysis.enable_llm", flags.EnableLLM)
	v.Set("analysis.llm_max_emails", flags.LLMMaxEmails)
	v.Set("analysis.llm_timeout", flags.LLMTimeout)

	return config.NewFromViper(v)
}
