// Package enrichment orchestrates the optional LLM style analysis: rate
// limiting, body preparation and cost accounting around an EnrichmentClient.
// Every failure is contained here; callers only ever see insights or nil.
package enrichment

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/mikey/email-persona/internal/core"
	"github.com/mikey/email-persona/internal/ratelimit"
	"github.com/mikey/email-persona/internal/utils"
)

// maxBodyBytes caps how much of each sent email feeds the prompt.
const maxBodyBytes = 500

// Pricing is the per-million-token cost used for usage accounting.
type Pricing struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// UsageStats is cumulative token and cost accounting across calls.
type UsageStats struct {
	InputTokens  int     `json:"input_tokens"`
	OutputTokens int     `json:"output_tokens"`
	TotalCostUSD float64 `json:"total_cost_usd"`
}

// Analyzer is the StyleEnricher implementation: it prepares bodies, waits on
// the rate limiter, invokes the LLM client and tracks spend.
type Analyzer struct {
	client    core.EnrichmentClient
	limiter   *ratelimit.Limiter
	processor *utils.TextProcessor
	logger    *zap.Logger
	maxEmails int
	pricing   Pricing

	mu    sync.Mutex
	usage UsageStats
}

// NewAnalyzer creates an enrichment analyzer. maxEmails bounds how many sent
// bodies are passed to the model per run.
func NewAnalyzer(
	client core.EnrichmentClient,
	limiter *ratelimit.Limiter,
	processor *utils.TextProcessor,
	logger *zap.Logger,
	maxEmails int,
	pricing Pricing,
) *Analyzer {
	return &Analyzer{
		client:    client,
		limiter:   limiter,
		processor: processor,
		logger:    logger,
		maxEmails: maxEmails,
		pricing:   pricing,
	}
}

// Enrich analyzes sent-email bodies and returns style insights, or nil when
// enrichment could not run. It never returns an error: rate limits, network
// failures and malformed responses are all advisory.
func (a *Analyzer) Enrich(ctx context.Context, bodies []string) *core.StyleInsights {
	if a.client == nil || len(bodies) == 0 {
		return nil
	}

	if err := a.limiter.Wait(ctx); err != nil {
		a.logger.Warn("Skipping LLM enrichment", zap.Error(err))
		return nil
	}

	prepared := make([]string, 0, min(len(bodies), a.maxEmails))
	for _, body := range bodies {
		if len(prepared) == a.maxEmails {
			break
		}
		if body == "" {
			continue
		}
		prepared = append(prepared, a.processor.PrepareBody(body, maxBodyBytes))
	}
	if len(prepared) == 0 {
		return nil
	}

	insights, usage, err := a.client.AnalyzeStyle(ctx, prepared, a.maxEmails)
	if err != nil {
		a.logger.Warn("LLM enrichment failed", zap.Error(err))
		return nil
	}
	if insights == nil || !validInsights(insights) {
		a.logger.Warn("LLM enrichment returned malformed insights")
		return nil
	}

	a.recordUsage(usage)
	return insights
}

// Usage returns cumulative token and cost statistics.
func (a *Analyzer) Usage() UsageStats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.usage
}

// RateLimitStatus exposes the limiter windows for diagnostics.
func (a *Analyzer) RateLimitStatus() ratelimit.Status {
	return a.limiter.GetStatus()
}

func (a *Analyzer) recordUsage(usage core.TokenUsage) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.usage.InputTokens += usage.InputTokens
	a.usage.OutputTokens += usage.OutputTokens
	a.usage.TotalCostUSD += float64(usage.InputTokens)/1e6*a.pricing.InputPerMTok +
		float64(usage.OutputTokens)/1e6*a.pricing.OutputPerMTok

	a.logger.Debug("LLM usage recorded",
		zap.Int("input_tokens", a.usage.InputTokens),
		zap.Int("output_tokens", a.usage.OutputTokens),
		zap.Float64("total_cost_usd", a.usage.TotalCostUSD))
}

// validInsights rejects responses that miss the schema entirely.
func validInsights(insights *core.StyleInsights) bool {
	if insights.ProfessionalismLevel < 0 || insights.ProfessionalismLevel > 10 {
		return false
	}
	return insights.Tone != "" || insights.WritingStyle != "" || len(insights.CommonTopics) > 0
}
