package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/mikey/email-persona/internal/core"
)

// SQLiteStore is a SQLite implementation of the SignalStore and TokenStore
// interfaces. Signal bundles are stored as a JSON payload keyed by user email.
type SQLiteStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteStore creates a new SQLite store.
func NewSQLiteStore(dbPath string, logger *zap.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS signal_reports (
			user_email TEXT PRIMARY KEY,
			payload TEXT NOT NULL,
			analyzed_at TIMESTAMP,
			updated_at TIMESTAMP
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create signal_reports table: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS oauth_tokens (
			service TEXT NOT NULL,
			email TEXT NOT NULL,
			token TEXT NOT NULL,
			updated_at TIMESTAMP,
			PRIMARY KEY (service, email)
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create oauth_tokens table: %w", err)
	}

	return &SQLiteStore{db: db, logger: logger}, nil
}

// SaveSignals stores the signal bundle for its user, replacing any previous run.
func (s *SQLiteStore) SaveSignals(ctx context.Context, signals *core.EmailSignals) error {
	payload, err := json.Marshal(signals)
	if err != nil {
		return fmt.Errorf("failed to marshal signals: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO signal_reports (user_email, payload, analyzed_at, updated_at)
		VALUES (?, ?, ?, ?)
	`, signals.UserEmail, string(payload), signals.AnalyzedAt.Format(time.RFC3339), time.Now().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save signals: %w", err)
	}

	s.logger.Debug("Saved signal report", zap.String("user_email", signals.UserEmail))
	return nil
}

// GetSignals retrieves the most recent signal bundle for a user.
func (s *SQLiteStore) GetSignals(ctx context.Context, userEmail string) (*core.EmailSignals, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `
		SELECT payload FROM signal_reports WHERE user_email = ?
	`, userEmail).Scan(&payload)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query signals: %w", err)
	}

	var signals core.EmailSignals
	if err := json.Unmarshal([]byte(payload), &signals); err != nil {
		return nil, fmt.Errorf("failed to unmarshal signals: %w", err)
	}
	return &signals, nil
}

// DeleteSignals removes a stored report.
func (s *SQLiteStore) DeleteSignals(ctx context.Context, userEmail string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM signal_reports WHERE user_email = ?
	`, userEmail)
	if err != nil {
		return fmt.Errorf("failed to delete signals: %w", err)
	}
	return nil
}

// SaveToken stores serialized token data for a service and account.
func (s *SQLiteStore) SaveToken(ctx context.Context, service, email string, tokenJSON []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO oauth_tokens (service, email, token, updated_at)
		VALUES (?, ?, ?, ?)
	`, service, email, string(tokenJSON), time.Now().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

// LoadToken retrieves token data. An empty email returns the most recently
// updated token for the service.
func (s *SQLiteStore) LoadToken(ctx context.Context, service, email string) ([]byte, error) {
	var token string
	var err error
	if email != "" {
		err = s.db.QueryRowContext(ctx, `
			SELECT token FROM oauth_tokens WHERE service = ? AND email = ?
		`, service, email).Scan(&token)
	} else {
		err = s.db.QueryRowContext(ctx, `
			SELECT token FROM oauth_tokens WHERE service = ?
			ORDER BY updated_at DESC LIMIT 1
		`, service).Scan(&token)
	}
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query token: %w", err)
	}
	return []byte(token), nil
}

// DeleteToken removes a stored token.
func (s *SQLiteStore) DeleteToken(ctx context.Context, service, email string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM oauth_tokens WHERE service = ? AND email = ?
	`, service, email)
	if err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
