package cache

import (
	"fmt"
	"regexp"
	"sync"
	"time"

	"github.com/Swochhanda14/frontbooth/helpers"
	"github.com/dgraph-io/ristretto"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	ristrettoStore "github.com/eko/gocache/store/ristretto/v4"
	"go.uber.org/zap"
)

const (
	DefaultRistrettoMaxCost     = 10000
	DefaultRistrettoNumCounters = DefaultRistrettoMaxCost * 10
	DefaultRistrettoBufferItems = 64
	DefaultPatternTTL           = 30 * time.Minute
)

type PatternCacheConfig struct {

	// RistrettoMaxCost defines the maximum "cost" for the Ristretto cache.
	// Every compiled pattern costs 1, so this is the max number of patterns kept.
	// If 0, DefaultRistrettoMaxCost is used.
	RistrettoMaxCost int64

	// RistrettoNumCounters determines the number of counters for Ristretto's admission/eviction policy.
	// A common rule of thumb is 10 * MaxCost.
	// If 0, DefaultRistrettoNumCounters is used.
	RistrettoNumCounters int64

	// RistrettoBufferItems configures the number of items Ristretto buffers for better concurrency.
	// If 0, Ristretto's own default of 64 is used.
	RistrettoBufferItems int64

	// TTL is how long a compiled pattern stays cached. If 0, DefaultPatternTTL is used.
	TTL time.Duration
}

// PatternCacheManager lazily builds the gocache instance holding compiled patterns.
type PatternCacheManager struct {
	CacheConfig    PatternCacheConfig
	CacheInstance  cache.CacheInterface[*regexp.Regexp]
	CacheInitOnce  sync.Once
	CacheInitError error
}

func (m *PatternCacheManager) GetCache() (cache.CacheInterface[*regexp.Regexp], error) {
	m.CacheInitOnce.Do(func() {
		maxCost := helpers.DefaultInt64(m.CacheConfig.RistrettoMaxCost, DefaultRistrettoMaxCost)
		ristrettoClient, err := ristretto.NewCache(&ristretto.Config{
			NumCounters: helpers.DefaultInt64(m.CacheConfig.RistrettoNumCounters, maxCost*10),
			MaxCost:     maxCost,
			BufferItems: helpers.DefaultInt64(m.CacheConfig.RistrettoBufferItems, DefaultRistrettoBufferItems),
			Metrics:     false,
		})

		if err != nil {
			zap.L().Error("PatternCacheManager: Failed to create Ristretto cache client during initialization", zap.Error(err))
			m.CacheInitError = fmt.Errorf("ristretto client initialization failed: %w", err)
			return
		}

		ristrettoStoreAdapter := ristrettoStore.NewRistretto(
			ristrettoClient,
			store.WithExpiration(helpers.DefaultTimeDuration(m.CacheConfig.TTL, DefaultPatternTTL)),
			store.WithCost(1),
		)

		m.CacheInstance = cache.New[*regexp.Regexp](ristrettoStoreAdapter)
		zap.L().Debug("PatternCacheManager: Ristretto cache instance initialized")
	})

	if m.CacheInitError != nil {
		return nil, m.CacheInitError
	}

	if m.CacheInstance == nil {
		zap.L().Error("PatternCacheManager: Cache instance is nil after initialization attempt without a stored error.")
		return nil, fmt.Errorf("internal error: cache not initialized despite no explicit init error")
	}

	return m.CacheInstance, nil
}

// BuildPatternCacheManager applies defaults to config and returns an uninitialised manager.
func BuildPatternCacheManager(config *PatternCacheConfig) *PatternCacheManager {
	if config == nil {
		config = &PatternCacheConfig{}
	}

	maxCost := helpers.DefaultInt64(config.RistrettoMaxCost, DefaultRistrettoMaxCost)
	return &PatternCacheManager{
		CacheConfig: PatternCacheConfig{
			RistrettoMaxCost:     maxCost,
			RistrettoNumCounters: helpers.DefaultInt64(config.RistrettoNumCounters, maxCost*10),
			RistrettoBufferItems: helpers.DefaultInt64(config.RistrettoBufferItems, DefaultRistrettoBufferItems),
			TTL:                  helpers.DefaultTimeDuration(config.TTL, DefaultPatternTTL),
		},
	}
}
