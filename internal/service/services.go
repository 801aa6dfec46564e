package service

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/xolan/hours/internal/config"
	"github.com/xolan/hours/internal/remote"
	"github.com/xolan/hours/internal/storage"
)

// Services holds all service instances used by the application
type Services struct {
	Report *ReportService
	Config *ConfigService

	store storage.Store
}

// NewServices opens the configured cache backend and wires the services to it
// and to the configured remote source. The caller must Close the result.
func NewServices(cfg config.Config, configPath string, logger *slog.Logger) (*Services, error) {
	if logger == nil {
		logger = slog.Default()
	}

	cachePath, err := CachePath(cfg)
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(cfg.CacheBackend, cachePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s cache: %w", cfg.CacheBackend, err)
	}
	logger.Debug("cache opened", "backend", cfg.CacheBackend, "path", cachePath)

	return NewServicesWithStore(store, remote.NewHTTPFetcher(cfg.RemoteURL), configPath, cfg, logger), nil
}

// NewServicesWithStore creates a new Services instance around an open store
// and a fetcher (useful for testing)
func NewServicesWithStore(store storage.Store, fetcher remote.Fetcher, configPath string, cfg config.Config, logger *slog.Logger) *Services {
	return &Services{
		Report: NewReportService(store, fetcher, cfg.CacheKey, cfg.DefaultMonth, logger),
		Config: NewConfigService(configPath, cfg),
		store:  store,
	}
}

// Store returns the cache store the services write to
func (s *Services) Store() storage.Store {
	return s.store
}

// Close releases the cache store
func (s *Services) Close() error {
	return s.store.Close()
}

// CachePath returns the location of the cache for cfg: cache_path when set,
// otherwise the backend's default name inside the user cache directory.
// The memory backend has no location.
func CachePath(cfg config.Config) (string, error) {
	if cfg.CachePath != "" {
		return cfg.CachePath, nil
	}
	if cfg.CacheBackend == storage.BackendMemory {
		return "", nil
	}

	dir, err := config.GetCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve cache directory: %w", err)
	}
	return filepath.Join(dir, storage.DefaultName(cfg.CacheBackend)), nil
}
