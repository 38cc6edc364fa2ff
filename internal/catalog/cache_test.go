package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/suPer8Hu/job-assistant/internal/store/redisstore"
)

type countingSearcher struct {
	calls int
	jobs  []Job
	err   error
}

func (s *countingSearcher) Search(ctx context.Context, f Filter) ([]Job, error) {
	_ = ctx
	_ = f
	s.calls++
	return s.jobs, s.err
}

// unreachableRedis points at a port nothing listens on.
func unreachableRedis(t *testing.T) *redisstore.Store {
	t.Helper()
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })
	return redisstore.NewFromClient(rdb)
}

func TestCachedSearcher_FallsThroughWhenRedisDown(t *testing.T) {
	next := &countingSearcher{jobs: []Job{{Title: "Backend Engineer"}}}
	c := NewCachedSearcher(next, unreachableRedis(t), time.Minute, nil)

	got, err := c.Search(context.Background(), Filter{Text: "backend"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Backend Engineer" || next.calls != 1 {
		t.Fatalf("unexpected result %+v after %d calls", got, next.calls)
	}
}

func TestCachedSearcher_PropagatesSearchErrors(t *testing.T) {
	boom := errors.New("db down")
	c := NewCachedSearcher(&countingSearcher{err: boom}, unreachableRedis(t), time.Minute, nil)

	if _, err := c.Search(context.Background(), Filter{}); !errors.Is(err, boom) {
		t.Fatalf("expected %v, got %v", boom, err)
	}
}

func TestFilterCacheKey(t *testing.T) {
	five := int64(500000)
	six := int64(600000)

	a := Filter{Text: " Pune ", MinSalary: &five}.cacheKey()
	b := Filter{Text: "pune", MinSalary: &five}.cacheKey()
	c := Filter{Text: "pune", MinSalary: &six}.cacheKey()

	if a != b {
		t.Fatalf("normalized filters should share a key: %s != %s", a, b)
	}
	if b == c {
		t.Fatalf("different bounds must not share a key")
	}
}
