package factory

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/mikey/mail-triage/internal/adapters/cache"
	"github.com/mikey/mail-triage/internal/config"
	"github.com/mikey/mail-triage/internal/core"
)

// CacheFactory creates draft caches based on configuration
type CacheFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewCacheFactory creates a new cache factory
func NewCacheFactory(cfg *config.Config, logger *zap.Logger) *CacheFactory {
	return &CacheFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateCacheRepository opens the configured cache backend
func (f *CacheFactory) CreateCacheRepository() (core.CacheRepository, error) {
	cc, err := f.cfg.GetCache()
	if err != nil {
		return nil, err
	}
	return f.open(cc)
}

func (f *CacheFactory) open(cc config.CacheConfig) (core.CacheRepository, error) {
	switch cc.Type {
	case "memory":
		return cache.NewMemoryCache(f.logger, cc.CleanupFrequency), nil
	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(cc.SQLitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create SQLite directory: %w", err)
		}
		return cache.NewSQLiteCache(cc.SQLitePath, f.logger, cc.CleanupFrequency)
	case "mysql":
		return cache.NewMySQLCache(cc.MySQLDSN, f.logger, cc.CleanupFrequency)
	default:
		return nil, fmt.Errorf("unsupported cache type: %s", cc.Type)
	}
}

// CreateAssistantService wires the analyzer, the optional polisher and the
// draft cache. Drafts are only cached when a polisher is configured.
func (f *CacheFactory) CreateAssistantService(
	analyzer *core.Analyzer,
	polisher core.ReplyPolisher,
	observer core.TriageObserver,
) (*core.AssistantService, error) {
	cc, err := f.cfg.GetCache()
	if err != nil {
		return nil, err
	}

	enabled := polisher != nil && cc.Enabled
	var repo core.CacheRepository
	if enabled {
		if repo, err = f.open(cc); err != nil {
			return nil, err
		}
		f.logger.Info("Draft cache enabled", zap.String("type", cc.Type), zap.Duration("ttl", cc.TTL))
	}

	return core.NewAssistantService(analyzer, polisher, repo, observer, f.logger, enabled, cc.TTL), nil
}
