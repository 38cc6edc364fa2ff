package catalog

import (
	"context"
	"time"

	"github.com/suPer8Hu/job-assistant/internal/store/redisstore"
	"go.uber.org/zap"
)

// Searcher is the read side of the catalog.
type Searcher interface {
	Search(ctx context.Context, f Filter) ([]Job, error)
}

// CachedSearcher keeps recent search results in Redis. Redis failures are
// logged and the search falls through to the wrapped Searcher.
type CachedSearcher struct {
	next Searcher
	rds  *redisstore.Store
	ttl  time.Duration
	log  *zap.Logger
}

func NewCachedSearcher(next Searcher, rds *redisstore.Store, ttl time.Duration, log *zap.Logger) *CachedSearcher {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &CachedSearcher{next: next, rds: rds, ttl: ttl, log: log}
}

func (c *CachedSearcher) Search(ctx context.Context, f Filter) ([]Job, error) {
	key := f.cacheKey()

	var cached []Job
	hit, err := c.rds.GetJSON(ctx, key, &cached)
	switch {
	case err != nil:
		c.log.Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
	case hit:
		return cached, nil
	}

	jobs, err := c.next.Search(ctx, f)
	if err != nil {
		return nil, err
	}
	if err := c.rds.SetJSON(ctx, key, jobs, c.ttl); err != nil {
		c.log.Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
	return jobs, nil
}
