package bedrock

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"go.uber.org/zap"

	"github.com/mikey/email-persona/internal/adapters/llmjson"
	"github.com/mikey/email-persona/internal/core"
)

// BedrockClient is an implementation of the EnrichmentClient interface using
// Amazon Bedrock.
type BedrockClient struct {
	client      *bedrockruntime.Client
	modelID     string
	maxTokens   int
	temperature float32
	topP        float32
	logger      *zap.Logger
}

// NewBedrockClient creates a new Bedrock client.
func NewBedrockClient(
	client *bedrockruntime.Client,
	modelID string,
	maxTokens int,
	temperature float32,
	topP float32,
	logger *zap.Logger,
) *BedrockClient {
	return &BedrockClient{
		client:      client,
		modelID:     modelID,
		maxTokens:   maxTokens,
		temperature: temperature,
		topP:        topP,
		logger:      logger,
	}
}

func (c *BedrockClient) isAnthropicModel() bool {
	return strings.HasPrefix(c.modelID, "anthropic.")
}

func (c *BedrockClient) isAmazonTitanModel() bool {
	return strings.HasPrefix(c.modelID, "amazon.titan")
}

// AnalyzeStyle analyzes sent-email bodies for communication style insights.
func (c *BedrockClient) AnalyzeStyle(ctx context.Context, bodies []string, maxEmails int) (*core.StyleInsights, core.TokenUsage, error) {
	prompt := llmjson.SystemInstruction + "\n\n" + llmjson.BuildPrompt(bodies, maxEmails)

	var payload []byte
	var err error

	if c.isAnthropicModel() {
		payload, err = json.Marshal(map[string]interface{}{
			"prompt":               fmt.Sprintf("\n\nHuman: %s\n\nAssistant:", prompt),
			"max_tokens_to_sample": c.maxTokens,
			"temperature":          c.temperature,
			"top_p":                c.topP,
		})
	} else if c.isAmazonTitanModel() {
		payload, err = json.Marshal(map[string]interface{}{
			"inputText": prompt,
			"textGenerationConfig": map[string]interface{}{
				"maxTokenCount": c.maxTokens,
				"temperature":   c.temperature,
				"topP":          c.topP,
			},
		})
	} else {
		payload, err = json.Marshal(map[string]interface{}{
			"prompt":      prompt,
			"max_tokens":  c.maxTokens,
			"temperature": c.temperature,
			"top_p":       c.topP,
		})
	}
	if err != nil {
		return nil, core.TokenUsage{}, fmt.Errorf("failed to marshal request payload: %w", err)
	}

	resp, err := c.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     &c.modelID,
		Body:        payload,
		Accept:      aws.String("application/json"),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return nil, core.TokenUsage{}, fmt.Errorf("failed to invoke Bedrock model: %w", err)
	}

	var responseText string
	if c.isAnthropicModel() {
		var claudeResp struct {
			Completion string `json:"completion"`
		}
		if err := json.Unmarshal(resp.Body, &claudeResp); err != nil {
			return nil, core.TokenUsage{}, fmt.Errorf("failed to unmarshal Claude response: %w", err)
		}
		responseText = claudeResp.Completion
	} else if c.isAmazonTitanModel() {
		var titanResp struct {
			Results []struct {
				OutputText string `json:"outputText"`
			} `json:"results"`
		}
		if err := json.Unmarshal(resp.Body, &titanResp); err != nil {
			return nil, core.TokenUsage{}, fmt.Errorf("failed to unmarshal Titan response: %w", err)
		}
		if len(titanResp.Results) == 0 {
			return nil, core.TokenUsage{}, fmt.Errorf("empty response from Titan model")
		}
		responseText = titanResp.Results[0].OutputText
	} else {
		responseText = string(resp.Body)
	}

	insights, err := llmjson.ParseInsights(responseText)
	if err != nil {
		return nil, core.TokenUsage{}, err
	}

	// Bedrock text completions do not report usage; estimate for accounting.
	usage := core.TokenUsage{
		InputTokens:  llmjson.EstimateTokens(prompt),
		OutputTokens: llmjson.EstimateTokens(responseText),
	}

	c.logger.Debug("Bedrock style analysis complete",
		zap.String("model", c.modelID),
		zap.Int("estimated_input_tokens", usage.InputTokens),
		zap.Int("estimated_output_tokens", usage.OutputTokens))

	return insights, usage, nil
}
