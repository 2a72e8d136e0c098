package factory

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/mikey/email-persona/internal/adapters/storage"
	"github.com/mikey/email-persona/internal/config"
	"github.com/mikey/email-persona/internal/core"
)

// Store bundles the persistence interfaces every backend implements.
type Store interface {
	core.SignalStore
	core.TokenStore
	Close() error
}

// StoreFactory creates persistence backends based on configuration
type StoreFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewStoreFactory creates a new store factory
func NewStoreFactory(cfg *config.Config, logger *zap.Logger) *StoreFactory {
	return &StoreFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateStore creates a persistence backend based on the configuration
func (f *StoreFactory) CreateStore() (Store, error) {
	storageCfg := f.cfg.GetStorage()

	switch storageCfg.Type {
	case "memory":
		return storage.NewMemoryStore(f.logger), nil
	case "sqlite":
		// Ensure directory exists
		if err := os.MkdirAll(filepath.Dir(storageCfg.SQLitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create SQLite directory: %w", err)
		}
		return storage.NewSQLiteStore(storageCfg.SQLitePath, f.logger)
	case "mysql":
		return storage.NewMySQLStore(storageCfg.MySQLDSN, f.logger)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", storageCfg.Type)
	}
}
