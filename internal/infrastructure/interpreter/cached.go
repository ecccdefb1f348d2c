package interpreter

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/Kullendorff/systembolaget/internal/domain"
	"go.uber.org/zap"
)

var cacheKeyRegex = regexp.MustCompile(`[^\p{L}\p{N}\s]`)

// Cached decorates an Interpreter with a TTL cache so repeated questions
// ("rött till lammstek") skip the round trip to the model. Cache failures
// fall through to the inner interpreter, never to the caller.
type Cached struct {
	inner  domain.Interpreter
	cache  domain.CacheRepository
	ttl    time.Duration
	logger *zap.Logger
}

// NewCached wraps inner with the given cache. A zero ttl defaults to an hour.
func NewCached(inner domain.Interpreter, cache domain.CacheRepository, ttl time.Duration, logger *zap.Logger) *Cached {
	if ttl <= 0 {
		ttl = time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cached{inner: inner, cache: cache, ttl: ttl, logger: logger}
}

// Interpret serves from cache when possible and stores fresh results.
func (c *Cached) Interpret(ctx context.Context, query string) (*domain.FilterParams, error) {
	key := cacheKey(query)

	if cached, err := c.cache.Get(ctx, key); err == nil && cached != nil {
		if params := decodeCached(cached); params != nil {
			c.logger.Debug("interpreter cache hit", zap.String("key", key))
			return params, nil
		}
	}

	params, err := c.inner.Interpret(ctx, query)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Set(ctx, key, params, c.ttl); err != nil {
		c.logger.Warn("interpreter cache store failed", zap.Error(err))
	}
	return params, nil
}

// cacheKey normalizes the question so trivial spelling variance shares an
// entry. Format: "interpret:{normalized query}".
func cacheKey(query string) string {
	normalized := strings.ToLower(strings.TrimSpace(query))
	normalized = cacheKeyRegex.ReplaceAllString(normalized, "")
	normalized = strings.Join(strings.Fields(normalized), " ")
	return "interpret:" + normalized
}

// decodeCached converts a cached value (a JSON round-tripped map) back into
// filter parameters.
func decodeCached(value interface{}) *domain.FilterParams {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil
	}
	var params domain.FilterParams
	if err := json.Unmarshal(raw, &params); err != nil {
		return nil
	}
	return &params
}
