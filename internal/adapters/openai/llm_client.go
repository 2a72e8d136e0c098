package openai

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/mikey/email-persona/internal/adapters/llmjson"
	"github.com/mikey/email-persona/internal/core"
)

// OpenAIClient is an implementation of the EnrichmentClient interface using
// OpenAI chat completions.
type OpenAIClient struct {
	client      *openai.Client
	modelName   string
	maxTokens   int
	temperature float32
	topP        float32
	logger      *zap.Logger
}

// NewOpenAIClient creates a new OpenAI client.
func NewOpenAIClient(
	apiKey string,
	modelName string,
	maxTokens int,
	temperature float32,
	topP float32,
	logger *zap.Logger,
) *OpenAIClient {
	return &OpenAIClient{
		client:      openai.NewClient(apiKey),
		modelName:   modelName,
		maxTokens:   maxTokens,
		temperature: temperature,
		topP:        topP,
		logger:      logger,
	}
}

// AnalyzeStyle analyzes sent-email bodies for communication style insights.
func (c *OpenAIClient) AnalyzeStyle(ctx context.Context, bodies []string, maxEmails int) (*core.StyleInsights, core.TokenUsage, error) {
	prompt := llmjson.BuildPrompt(bodies, maxEmails)

	req := openai.ChatCompletionRequest{
		Model: c.modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: llmjson.SystemInstruction,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		TopP:        c.topP,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, core.TokenUsage{}, fmt.Errorf("failed to create chat completion with OpenAI: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, core.TokenUsage{}, fmt.Errorf("empty response from OpenAI")
	}

	insights, err := llmjson.ParseInsights(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, core.TokenUsage{}, err
	}

	usage := core.TokenUsage{
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
	}

	c.logger.Debug("OpenAI style analysis complete",
		zap.String("model", c.modelName),
		zap.String("processing_id", resp.ID),
		zap.Int("input_tokens", usage.InputTokens),
		zap.Int("output_tokens", usage.OutputTokens))

	return insights, usage, nil
}
