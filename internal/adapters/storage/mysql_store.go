package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/mikey/email-persona/internal/core"
)

// MySQLStore is a MySQL implementation of the SignalStore and TokenStore
// interfaces.
type MySQLStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewMySQLStore creates a new MySQL store.
func NewMySQLStore(dsn string, logger *zap.Logger) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to MySQL database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS signal_reports (
			user_email VARCHAR(255) PRIMARY KEY,
			payload MEDIUMTEXT NOT NULL,
			analyzed_at TIMESTAMP NULL,
			updated_at TIMESTAMP NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create signal_reports table: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS oauth_tokens (
			service VARCHAR(64) NOT NULL,
			email VARCHAR(255) NOT NULL,
			token TEXT NOT NULL,
			updated_at TIMESTAMP NULL,
			PRIMARY KEY (service, email)
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create oauth_tokens table: %w", err)
	}

	return &MySQLStore{db: db, logger: logger}, nil
}

// SaveSignals stores the signal bundle for its user, replacing any previous run.
func (s *MySQLStore) SaveSignals(ctx context.Context, signals *core.EmailSignals) error {
	payload, err := json.Marshal(signals)
	if err != nil {
		return fmt.Errorf("failed to marshal signals: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO signal_reports (user_email, payload, analyzed_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE payload = VALUES(payload),
			analyzed_at = VALUES(analyzed_at), updated_at = VALUES(updated_at)
	`, signals.UserEmail, string(payload), signals.AnalyzedAt, time.Now())
	if err != nil {
		return fmt.Errorf("failed to save signals: %w", err)
	}

	s.logger.Debug("Saved signal report", zap.String("user_email", signals.UserEmail))
	return nil
}

// GetSignals retrieves the most recent signal bundle for a user.
func (s *MySQLStore) GetSignals(ctx context.Context, userEmail string) (*core.EmailSignals, error) {
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
func (s *MySQLStore) DeleteSignals(ctx context.Context, userEmail string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM signal_reports WHERE user_email = ?
	`, userEmail)
	if err != nil {
		return fmt.Errorf("failed to delete signals: %w", err)
	}
	return nil
}

// SaveToken stores serialized token data for a service and account.
func (s *MySQLStore) SaveToken(ctx context.Context, service, email string, tokenJSON []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO oauth_tokens (service, email, token, updated_at)
		VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE token = VALUES(token), updated_at = VALUES(updated_at)
	`, service, email, string(tokenJSON), time.Now())
	if err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

// LoadToken retrieves token data. An empty email returns the most recently
// updated token for the service.
func (s *MySQLStore) LoadToken(ctx context.Context, service, email string) ([]byte, error) {
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
func (s *MySQLStore) DeleteToken(ctx context.Context, service, email string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM oauth_tokens WHERE service = ? AND email = ?
	`, service, email)
	if err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *MySQLStore) Close() error {
	return s.db.Close()
}
