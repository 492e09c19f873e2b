package cache

import (
	"context"
	"fmt"
	"regexp"

	"go.uber.org/zap"
)

// PatternCache memoises compiled regular expressions keyed by their source.
// It is safe for concurrent use; several form instances built from the same
// schema share compiled patterns.
type PatternCache struct {
	manager *PatternCacheManager
}

// NewPatternCache returns a PatternCache backed by a lazily created Ristretto store.
func NewPatternCache(config *PatternCacheConfig) *PatternCache {
	return &PatternCache{manager: BuildPatternCacheManager(config)}
}

// Compile returns the compiled form of expr, from the cache when possible.
// A broken cache never prevents compilation; it only costs a recompile.
func (c *PatternCache) Compile(ctx context.Context, expr string) (*regexp.Regexp, error) {
	if c == nil || c.manager == nil {
		return compile(expr)
	}

	instance, err := c.manager.GetCache()
	if err != nil {
		zap.L().Warn("PatternCache: cache unavailable, compiling directly", zap.Error(err))
		return compile(expr)
	}

	if cached, err := instance.Get(ctx, expr); err == nil && cached != nil {
		return cached, nil
	}

	compiled, err := compile(expr)
	if err != nil {
		return nil, err
	}

	if err := instance.Set(ctx, expr, compiled); err != nil {
		zap.L().Debug("PatternCache: failed to store compiled pattern", zap.String("pattern", expr), zap.Error(err))
	}

	return compiled, nil
}

// MustCompile is Compile for patterns known at build time. It panics on a bad pattern.
func (c *PatternCache) MustCompile(expr string) *regexp.Regexp {
	compiled, err := c.Compile(context.Background(), expr)
	if err != nil {
		panic(err)
	}
	return compiled
}

func compile(expr string) (*regexp.Regexp, error) {
	compiled, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("cache: invalid pattern %q: %w", expr, err)
	}
	return compiled, nil
}
