package websearch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lucidquery/lucid/tools/websearch/models"
)

// CachedSearcher is a read-through redis cache in front of a Searcher.
// Cache errors never fail a search; they fall through to the inner client.
type CachedSearcher struct {
	inner  Searcher
	rdb    *redis.Client
	ttl    time.Duration
	logger *log.Logger
}

// NewCached wraps a Searcher with a redis envelope cache.
func NewCached(inner Searcher, rdb *redis.Client, ttl time.Duration, logger *log.Logger) *CachedSearcher {
	if logger == nil {
		logger = log.New(log.Writer(), "[SEARCH-CACHE] ", log.LstdFlags)
	}
	return &CachedSearcher{inner: inner, rdb: rdb, ttl: ttl, logger: logger}
}

func cacheKey(query string, maxResults int, depth string) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%d|%s", query, maxResults, depth)))
	return "websearch:" + hex.EncodeToString(sum[:])
}

// Search returns the cached envelope for an identical query when present,
// otherwise delegates and stores the result.
func (c *CachedSearcher) Search(ctx context.Context, query string, maxResults int, depth string) (models.Envelope, error) {
	key := cacheKey(query, maxResults, depth)

	if raw, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
		var envelope models.Envelope
		if err := json.Unmarshal(raw, &envelope); err == nil {
			return envelope, nil
		}
		c.logger.Printf("corrupt cache entry %s, refetching", key)
	} else if err != redis.Nil {
		c.logger.Printf("cache get failed: %v", err)
	}

	envelope, err := c.inner.Search(ctx, query, maxResults, depth)
	if err != nil {
		return models.Envelope{}, err
	}

	if raw, err := json.Marshal(envelope); err == nil {
		if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			c.logger.Printf("cache set failed: %v", err)
		}
	}
	return envelope, nil
}
