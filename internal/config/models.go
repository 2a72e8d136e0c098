package config

import "time"

// LLMConfig represents the configuration for the LLM provider
type LLMConfig struct {
	Provider string
}

// BedrockConfig represents the configuration for Amazon Bedrock
type BedrockConfig struct {
	Region      string
	ModelID     string
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// GeminiConfig represents the configuration for Google Gemini
type GeminiConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// OpenAIConfig represents the configuration for OpenAI
type OpenAIConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// GmailConfig represents the OAuth configuration for Gmail
type GmailConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// AnalysisConfig represents the signal analysis configuration
type AnalysisConfig struct {
	MaxEmails          int
	MaxSentEmails      int
	EnableLLM          bool
	LLMMaxEmails       int
	LLMTimeout         time.Duration
	RateLimitPerMinute int
	RateLimitPerDay    int
}

// PricingConfig represents per-million-token pricing for cost accounting
type PricingConfig struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// StorageConfig represents the persistence configuration
type StorageConfig struct {
	Type       string
	SQLitePath string
	MySQLDSN   string
}

// LoggingConfig represents the logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// ServerConfig represents the HTTP server configuration
type ServerConfig struct {
	ListenAddress string
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
}

// GetLLM returns the LLM configuration
func (c *Config) GetLLM() LLMConfig {
	return LLMConfig{
		Provider: c.GetString("llm.provider"),
	}
}

// GetBedrock returns the Bedrock configuration
func (c *Config) GetBedrock() BedrockConfig {
	return BedrockConfig{
		Region:      c.GetString("bedrock.region"),
		ModelID:     c.GetString("bedrock.model_id"),
		MaxTokens:   c.GetInt("bedrock.max_tokens"),
		Temperature: float32(c.GetFloat64("bedrock.temperature")),
		TopP:        float32(c.GetFloat64("bedrock.top_p")),
	}
}

// GetGemini returns the Gemini configuration
func (c *Config) GetGemini() GeminiConfig {
	return GeminiConfig{
		APIKey:      c.GetString("gemini.api_key"),
		ModelName:   c.GetString("gemini.model_name"),
		MaxTokens:   c.GetInt("gemini.max_tokens"),
		Temperature: float32(c.GetFloat64("gemini.temperature")),
		TopP:        float32(c.GetFloat64("gemini.top_p")),
	}
}

// GetOpenAI returns the OpenAI configuration
func (c *Config) GetOpenAI() OpenAIConfig {
	return OpenAIConfig{
		APIKey:      c.GetString("openai.api_key"),
		ModelName:   c.GetString("openai.model_name"),
		MaxTokens:   c.GetInt("openai.max_tokens"),
		Temperature: float32(c.GetFloat64("openai.temperature")),
		TopP:        float32(c.GetFloat64("openai.top_p")),
	}
}

// GetGmail returns the Gmail OAuth configuration
func (c *Config) GetGmail() GmailConfig {
	return GmailConfig{
		ClientID:     c.GetString("gmail.client_id"),
		ClientSecret: c.GetString("gmail.client_secret"),
		RedirectURL:  c.GetString("gmail.redirect_url"),
	}
}

// GetAnalysis returns the analysis configuration
func (c *Config) GetAnalysis() AnalysisConfig {
	llmTimeout, err := c.GetDuration("analysis.llm_timeout")
	if err != nil {
		llmTimeout = 60 * time.Second
	}
	return AnalysisConfig{
		MaxEmails:          c.GetInt("analysis.max_emails"),
		MaxSentEmails:      c.GetInt("analysis.max_sent_emails"),
		EnableLLM:          c.GetBool("analysis.enable_llm"),
		LLMMaxEmails:       c.GetInt("analysis.llm_max_emails"),
		LLMTimeout:         llmTimeout,
		RateLimitPerMinute: c.GetInt("analysis.rate_limit_per_minute"),
		RateLimitPerDay:    c.GetInt("analysis.rate_limit_per_day"),
	}
}

// GetPricing returns the token pricing configuration
func (c *Config) GetPricing() PricingConfig {
	return PricingConfig{
		InputPerMTok:  c.GetFloat64("pricing.input_per_mtok"),
		OutputPerMTok: c.GetFloat64("pricing.output_per_mtok"),
	}
}

// GetStorage returns the persistence configuration
func (c *Config) GetStorage() StorageConfig {
	return StorageConfig{
		Type:       c.GetString("storage.type"),
		SQLitePath: c.GetString("storage.sqlite_path"),
		MySQLDSN:   c.GetString("storage.mysql_dsn"),
	}
}

// GetLogging returns the logging configuration
func (c *Config) GetLogging() LoggingConfig {
	return LoggingConfig{
		Level:  c.GetString("logging.level"),
		Format: c.GetString("logging.format"),
	}
}

// GetServer returns the HTTP server configuration
func (c *Config) GetServer() ServerConfig {
	readTimeout, err := c.GetDuration("server.read_timeout")
	if err != nil {
		readTimeout = 30 * time.Second
	}
	writeTimeout, err := c.GetDuration("server.write_timeout")
	if err != nil {
		writeTimeout = 5 * time.Minute
	}
	return ServerConfig{
		ListenAddress: c.GetString("server.listen_address"),
		ReadTimeout:   readTimeout,
		WriteTimeout:  writeTimeout,
	}
}
