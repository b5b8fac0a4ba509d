package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/teresa-solution/tourist-safety-service/internal/fault"
)

// RedisClient is the subset of the redis API the repository uses, kept as an
// interface so tests can inject a fake.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	SetEx(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Close() error
}

const (
	profileCacheTTL = 1 * time.Hour
	alertCacheTTL   = 5 * time.Minute
)

// Repository provides persistence for safety events and reference data over
// a relational store. Correctness under concurrent use relies on the
// database's constraints, not application locks.
type Repository struct {
	db    *sql.DB
	redis RedisClient
}

// NewRepository opens the database. redisClient may be nil, in which case
// read-through caching is disabled.
func NewRepository(dsn string, redisClient RedisClient) (*Repository, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	return &Repository{db: db, redis: redisClient}, nil
}

func (r *Repository) Close() error {
	if r.redis != nil {
		if err := r.redis.Close(); err != nil {
			return err
		}
	}
	return r.db.Close()
}

// Ready verifies database reachability for readiness probes.
func (r *Repository) Ready(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// cacheGet returns the cached payload for key, or false on miss or when
// caching is disabled.
func (r *Repository) cacheGet(ctx context.Context, key string) ([]byte, bool) {
	if r.redis == nil {
		return nil, false
	}
	cached, err := r.redis.Get(ctx, key).Result()
	if err != nil {
		return nil, false
	}
	return []byte(cached), true
}

func (r *Repository) cacheSet(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if r.redis == nil {
		return
	}
	r.redis.SetEx(ctx, key, data, ttl)
}

func (r *Repository) cacheDel(ctx context.Context, keys ...string) {
	if r.redis == nil {
		return
	}
	r.redis.Del(ctx, keys...)
}

// mapInsertErr translates a unique-constraint violation into fault.ErrConflict
// so callers can implement constraint-based resolve-or-create.
func mapInsertErr(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return fault.ErrConflict
	}
	return err
}
