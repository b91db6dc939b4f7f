package factory

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mikey/llm-triage/internal/adapters/storage"
	"github.com/mikey/llm-triage/internal/config"
	"github.com/mikey/llm-triage/internal/core"
	"go.uber.org/zap"
)

// StorageFactory creates message repositories based on configuration
type StorageFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewStorageFactory creates a new storage factory
func NewStorageFactory(cfg *config.Config, logger *zap.Logger) *StorageFactory {
	return &StorageFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateMessageRepository creates a message repository based on the configuration
func (f *StorageFactory) CreateMessageRepository() (core.MessageRepository, error) {
	storageCfg := f.cfg.GetStorage()

	switch storageCfg.Type {
	case "memory":
		return storage.NewMemoryStore(f.logger, storageCfg.HistoryLimit), nil
	case "sqlite":
		// Ensure directory exists
		if err := os.MkdirAll(filepath.Dir(storageCfg.SQLitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create SQLite directory: %w", err)
		}
		return storage.NewSQLiteStore(storageCfg.SQLitePath, f.logger, storageCfg.HistoryLimit)
	case "mysql":
		return storage.NewMySQLStore(storageCfg.MySQLDSN, f.logger, storageCfg.HistoryLimit)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", storageCfg.Type)
	}
}
