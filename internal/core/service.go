package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mikey/email-persona/internal/parser"
)

var (
	// ErrInvalidUserEmail is returned when the caller passes a subject
	// address that is not a plausible email address.
	ErrInvalidUserEmail = errors.New("user email is not a valid address")

	// ErrSentNotSubset is returned when the sent list contains records that
	// are not part of the full batch.
	ErrSentNotSubset = errors.New("sent emails must be a subset of the full batch")
)

// AnalysisInput is one analysis request: the full batch, the sent-only
// subset, and optionally the plain-text bodies of recent sent messages for
// LLM enrichment.
type AnalysisInput struct {
	UserEmail  string
	Emails     []EmailRecord
	SentEmails []EmailRecord
	SentBodies []string
}

// SignalService turns email-metadata batches into behavioral signal
// bundles. The four local analyzers are pure and deterministic; the optional
// enricher is the only collaborator that touches the network.
type SignalService struct {
	enricher          StyleEnricher
	logger            *zap.Logger
	enrichmentEnabled bool
	enrichmentTimeout time.Duration
}

// NewSignalService creates a new signal-extraction service. enricher may be
// nil when enrichment is disabled.
func NewSignalService(
	enricher StyleEnricher,
	logger *zap.Logger,
	enrichmentEnabled bool,
	enrichmentTimeout time.Duration,
) *SignalService {
	return &SignalService{
		enricher:          enricher,
		logger:            logger,
		enrichmentEnabled: enrichmentEnabled,
		enrichmentTimeout: enrichmentTimeout,
	}
}

// Analyze runs the four analyzers concurrently over the input batch and
// assembles the signal bundle. An empty batch is not an error: the result
// degrades to zero values with a quality score of 0. Only caller-contract
// violations fail.
func (s *SignalService) Analyze(ctx context.Context, input AnalysisInput) (*EmailSignals, error) {
	if err := validateInput(&input); err != nil {
		return nil, err
	}

	signals := &EmailSignals{
		UserEmail:           strings.ToLower(strings.TrimSpace(input.UserEmail)),
		AnalyzedAt:          time.Now().UTC(),
		TotalEmailsAnalyzed: len(input.Emails),
		SentEmailsAnalyzed:  len(input.SentEmails),
	}

	// Enrichment runs alongside the local analyzers so network latency
	// never blocks heuristic extraction.
	var insights *StyleInsights
	var enrichWg sync.WaitGroup
	if s.enrichmentEnabled && s.enricher != nil && len(input.SentBodies) > 0 {
		enrichWg.Add(1)
		go func() {
			defer enrichWg.Done()
			enrichCtx := ctx
			if s.enrichmentTimeout > 0 {
				var cancel context.CancelFunc
				enrichCtx, cancel = context.WithTimeout(ctx, s.enrichmentTimeout)
				defer cancel()
			}
			insights = s.enricher.Enrich(enrichCtx, input.SentBodies)
		}()
	}

	var wg sync.WaitGroup
	wg.Add(4)
	go func() {
		defer wg.Done()
		signals.NewsletterSignals = ExtractNewsletterSignals(input.Emails)
	}()
	go func() {
		defer wg.Done()
		signals.CommunicationStyle = ExtractCommunicationStyle(input.SentEmails)
	}()
	go func() {
		defer wg.Done()
		signals.ProfessionalContext = ExtractProfessionalContext(input.Emails)
	}()
	go func() {
		defer wg.Done()
		signals.ActivityPatterns = ExtractActivityPatterns(input.Emails)
	}()
	wg.Wait()
	enrichWg.Wait()

	if insights != nil {
		signals.CommunicationStyle.Enrichment = Enrichment{Available: true, Insights: insights}
	} else if s.enrichmentEnabled && s.enricher != nil && len(input.SentBodies) > 0 {
		s.logger.Warn("LLM enrichment unavailable for this run",
			zap.String("user", signals.UserEmail))
	}

	signals.AnalysisQualityScore = qualityScore(signals)

	s.logger.Info("Signal extraction complete",
		zap.String("user", signals.UserEmail),
		zap.Int("emails", signals.TotalEmailsAnalyzed),
		zap.Int("sent_emails", signals.SentEmailsAnalyzed),
		zap.Float64("quality_score", signals.AnalysisQualityScore),
		zap.Bool("enriched", signals.CommunicationStyle.Enrichment.Available))

	return signals, nil
}

// validateInput enforces the caller contract: a plausible subject address
// and a sent list that is a subset of the full batch.
func validateInput(input *AnalysisInput) error {
	if !strings.Contains(input.UserEmail, "@") {
		return fmt.Errorf("%w: %q", ErrInvalidUserEmail, input.UserEmail)
	}

	if len(input.SentEmails) > 0 {
		batchIDs := make(map[string]struct{}, len(input.Emails))
		for i := range input.Emails {
			if id := input.Emails[i].ID; id != "" {
				batchIDs[id] = struct{}{}
			}
		}
		for i := range input.SentEmails {
			id := input.SentEmails[i].ID
			if id == "" {
				continue
			}
			if _, ok := batchIDs[id]; !ok {
				return fmt.Errorf("%w: sent message %s missing from batch", ErrSentNotSubset, id)
			}
		}
	}
	return nil
}

// Saturation thresholds for the data-volume component of the quality score.
const (
	qualityEmailSaturation = 200
	qualitySentSaturation  = 50
)

// qualityScore is an advisory 0-1 measure of how much signal the input
// supported. It never gates whether output is returned.
func qualityScore(signals *EmailSignals) float64 {
	score := 0.0

	// Data volume, saturating (max 0.4)
	emailRatio := float64(signals.TotalEmailsAnalyzed) / qualityEmailSaturation
	if emailRatio > 1 {
		emailRatio = 1
	}
	sentRatio := float64(signals.SentEmailsAnalyzed) / qualitySentSaturation
	if sentRatio > 1 {
		sentRatio = 1
	}
	score += 0.2*emailRatio + 0.2*sentRatio

	// Newsletter coverage (max 0.2)
	if signals.NewsletterSignals.TotalNewsletters > 0 {
		score += 0.1
	}
	if len(signals.NewsletterSignals.NewsletterCategories) > 2 {
		score += 0.1
	}

	// Communication style coverage (max 0.2)
	if signals.CommunicationStyle.AvgEmailLength > 0 {
		score += 0.1
	}
	if len(signals.CommunicationStyle.CommonGreetings) > 0 ||
		len(signals.CommunicationStyle.CommonSignoffs) > 0 {
		score += 0.1
	}

	// Activity coverage (max 0.2)
	if signals.ActivityPatterns.DateRangeDays > 0 {
		score += 0.2
	}

	if score > 1 {
		score = 1
	}
	return parser.Round2(score)
}
