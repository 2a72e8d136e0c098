// Package gmail provides the Gmail mailbox adapter: OAuth flow, token
// persistence and message fetching.
package gmail

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmailapi "google.golang.org/api/gmail/v1"

	"github.com/mikey/email-persona/internal/core"
)

// tokenService is the TokenStore key under which Gmail tokens are stored.
const tokenService = "gmail"

// OAuthManager drives the Gmail OAuth authorization-code flow and keeps the
// resulting tokens in a TokenStore so they survive restarts.
type OAuthManager struct {
	config *oauth2.Config
	store  core.TokenStore
	logger *zap.Logger
}

// NewOAuthManager creates a new OAuth manager for Gmail.
func NewOAuthManager(clientID, clientSecret, redirectURL string, store core.TokenStore, logger *zap.Logger) *OAuthManager {
	return &OAuthManager{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{gmailapi.GmailReadonlyScope},
			Endpoint:     google.Endpoint,
		},
		store:  store,
		logger: logger,
	}
}

// AuthURL returns the consent URL to which the user should be redirected.
func (m *OAuthManager) AuthURL(state string) string {
	return m.config.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// Exchange trades an authorization code for a token and persists it keyed by
// the authenticated mailbox address. It returns that address.
func (m *OAuthManager) Exchange(ctx context.Context, code string) (string, error) {
	token, err := m.config.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	// Resolve the mailbox owner before persisting so tokens are keyed by
	// address rather than by an opaque session.
	svc, err := gmailapi.NewService(ctx, gmailServiceOptions(m.config.Client(ctx, token))...)
	if err != nil {
		return "", fmt.Errorf("failed to create Gmail service: %w", err)
	}
	profile, err := svc.Users.GetProfile("me").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to get Gmail profile: %w", err)
	}

	if err := m.saveToken(ctx, profile.EmailAddress, token); err != nil {
		return "", err
	}

	m.logger.Info("Gmail authorization complete", zap.String("user_email", profile.EmailAddress))
	return profile.EmailAddress, nil
}

// TokenSource returns an auto-refreshing token source for the given mailbox.
// An empty email selects the most recently authorized mailbox. Refreshed
// tokens are written back to the store.
func (m *OAuthManager) TokenSource(ctx context.Context, email string) (oauth2.TokenSource, error) {
	data, err := m.store.LoadToken(ctx, tokenService, email)
	if err != nil {
		return nil, err
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stored token: %w", err)
	}

	return &persistingTokenSource{
		ctx:     ctx,
		base:    m.config.TokenSource(ctx, &token),
		last:    token.AccessToken,
		email:   email,
		manager: m,
	}, nil
}

// Revoke deletes the stored token for a mailbox.
func (m *OAuthManager) Revoke(ctx context.Context, email string) error {
	return m.store.DeleteToken(ctx, tokenService, email)
}

func (m *OAuthManager) saveToken(ctx context.Context, email string, token *oauth2.Token) error {
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}
	if err := m.store.SaveToken(ctx, tokenService, email, data); err != nil {
		return fmt.Errorf("failed to persist token: %w", err)
	}
	return nil
}

// persistingTokenSource wraps an oauth2.TokenSource and writes refreshed
// tokens back to the store so long-lived refresh tokens are never lost.
type persistingTokenSource struct {
	ctx     context.Context
	base    oauth2.TokenSource
	last    string
	email   string
	manager *OAuthManager
}

func (s *persistingTokenSource) Token() (*oauth2.Token, error) {
	token, err := s.base.Token()
	if err != nil {
		return nil, err
	}
	if token.AccessToken != s.last {
		s.last = token.AccessToken
		if err := s.manager.saveToken(s.ctx, s.email, token); err != nil {
			s.manager.logger.Warn("Failed to persist refreshed token",
				zap.String("user_email", s.email), zap.Error(err))
		}
	}
	return token, nil
}
