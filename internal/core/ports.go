package core

import (
	"context"
	"errors"
)

// ErrNotFound is returned by stores when the requested record does not exist.
var ErrNotFound = errors.New("record not found")

// EnrichmentClient defines the interface for LLM-backed style analysis.
type EnrichmentClient interface {
	// AnalyzeStyle analyzes up to maxEmails sent-email bodies and returns
	// structured style insights plus the token usage of the call.
	AnalyzeStyle(ctx context.Context, bodies []string, maxEmails int) (*StyleInsights, TokenUsage, error)
}

// StyleEnricher is the best-effort enrichment collaborator invoked by the
// signal service. Implementations must contain every failure (rate limit,
// network, malformed response) and return nil insights instead of an error
// that would abort the surrounding analysis.
type StyleEnricher interface {
	Enrich(ctx context.Context, bodies []string) *StyleInsights
}

// EmailSource defines the interface for the upstream mailbox fetcher.
type EmailSource interface {
	// UserEmail returns the authenticated mailbox owner's address.
	UserEmail(ctx context.Context) (string, error)

	// FetchRecent fetches up to max recent messages (inbox and sent).
	FetchRecent(ctx context.Context, max int) ([]EmailRecord, error)

	// FetchSent fetches up to max recent sent messages.
	FetchSent(ctx context.Context, max int) ([]EmailRecord, error)

	// FetchBodies fetches plain-text bodies for the given message IDs.
	FetchBodies(ctx context.Context, ids []string) ([]string, error)
}

// SignalStore defines the interface for persisting analysis results.
type SignalStore interface {
	// SaveSignals stores the signal bundle for its user, replacing any
	// previous run.
	SaveSignals(ctx context.Context, signals *EmailSignals) error

	// GetSignals retrieves the most recent signal bundle for a user.
	// Returns ErrNotFound when the user has no stored report.
	GetSignals(ctx context.Context, userEmail string) (*EmailSignals, error)

	// DeleteSignals removes a stored report.
	DeleteSignals(ctx context.Context, userEmail string) error
}

// TokenStore defines the interface for persisting OAuth tokens per service
// and account.
type TokenStore interface {
	// SaveToken stores serialized token data, replacing any previous token
	// for the same service and email.
	SaveToken(ctx context.Context, service, email string, tokenJSON []byte) error

	// LoadToken retrieves token data. An empty email returns the most
	// recently updated token for the service. Returns ErrNotFound when no
	// token is stored.
	LoadToken(ctx context.Context, service, email string) ([]byte, error)

	// DeleteToken removes a stored token.
	DeleteToken(ctx context.Context, service, email string) error
}
