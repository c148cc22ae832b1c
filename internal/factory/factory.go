package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/JMaramara/boardgame/internal/dependencies/clock"
	"github.com/JMaramara/boardgame/internal/services/account"
	"github.com/JMaramara/boardgame/internal/services/catalog"
	"github.com/JMaramara/boardgame/internal/services/collection"
	"github.com/JMaramara/boardgame/internal/storage"
	"github.com/JMaramara/boardgame/internal/storage/memory"
	redisstorage "github.com/JMaramara/boardgame/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock

	// Services
	AccountService    *account.Service
	CatalogService    *catalog.Service
	CollectionService *collection.Service
}

// Config holds configuration for the application factory
type Config struct {
	// AccountConfig holds configuration for the account service (optional)
	// If zero value, defaults to account.DefaultConfig()
	AccountConfig account.Config
	// CatalogConfig holds configuration for the catalog client (optional)
	// If zero value, defaults to catalog.DefaultConfig()
	CatalogConfig catalog.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	clk := clock.New()

	accountCfg := cfg.AccountConfig
	if accountCfg.SessionTTL == 0 {
		accountCfg = account.DefaultConfig()
	}

	return newWithDependencies(store, clk, accountCfg, cfg.CatalogConfig, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, accountCfg account.Config, catalogCfg catalog.Config, logger *slog.Logger) *App {
	// Create services
	accountService := account.New(store, clk, accountCfg)
	catalogService := catalog.New(catalogCfg, logger)
	collectionService := collection.New(store, catalogService, clk)

	return &App{
		Storage:           store,
		Clock:             clk,
		AccountService:    accountService,
		CatalogService:    catalogService,
		CollectionService: collectionService,
	}
}
