package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pazorg/candidatetrack/internal/domain"
	"github.com/pazorg/candidatetrack/internal/reliability/circuitbreaker"
)

// CachedCandidateRepository layers a Redis read-through cache over another
// CandidateRepository. GetByID is the hot path (status checks and admin
// detail views); List and email lookups always hit the backing store.
//
// A circuit breaker guards the Redis calls: when Redis misbehaves the
// repository degrades to pass-through instead of adding latency per request.
type CachedCandidateRepository struct {
	inner   domain.CandidateRepository
	redis   *redis.Client
	breaker *circuitbreaker.CircuitBreaker
	ttl     time.Duration
	logger  *slog.Logger
}

// NewCachedCandidateRepository wraps inner with a Redis cache
func NewCachedCandidateRepository(inner domain.CandidateRepository, rdb *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedCandidateRepository {
	if logger == nil {
		logger = slog.Default()
	}

	breaker := circuitbreaker.New(5, 2, 30*time.Second)
	breaker.OnStateChange(func(from, to circuitbreaker.State) {
		logger.Warn("candidate cache circuit state changed",
			slog.Int("from", int(from)),
			slog.Int("to", int(to)),
		)
	})

	return &CachedCandidateRepository{
		inner:   inner,
		redis:   rdb,
		breaker: breaker,
		ttl:     ttl,
		logger:  logger,
	}
}

func candidateKey(id string) string {
	return fmt.Sprintf("candidate:%s", id)
}

// GetByID returns the cached candidate when available, falling back to the
// backing store and populating the cache on a miss.
func (r *CachedCandidateRepository) GetByID(ctx context.Context, id string) (*domain.Candidate, error) {
	if r.breaker.AllowRequest() {
		data, err := r.redis.Get(ctx, candidateKey(id)).Bytes()
		switch {
		case err == nil:
			r.breaker.RecordSuccess()
			c := &domain.Candidate{}
			if err := json.Unmarshal(data, c); err == nil {
				return c, nil
			}
			// corrupt entry: drop it and fall through to the store
			r.redis.Del(ctx, candidateKey(id))
		case errors.Is(err, redis.Nil):
			r.breaker.RecordSuccess()
		default:
			r.breaker.RecordFailure()
			r.logger.Warn("candidate cache read failed",
				slog.String("id", id),
				slog.String("error", err.Error()),
			)
		}
	}

	c, err := r.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	r.cacheSet(ctx, c)
	return c, nil
}

// GetByEmail always resolves through the backing store; the most-recent-row
// semantics make email results unsafe to cache.
func (r *CachedCandidateRepository) GetByEmail(ctx context.Context, email string) (*domain.Candidate, error) {
	return r.inner.GetByEmail(ctx, email)
}

// List always hits the backing store
func (r *CachedCandidateRepository) List(ctx context.Context) ([]*domain.Candidate, error) {
	return r.inner.List(ctx)
}

// Upsert writes through and refreshes the cached row
func (r *CachedCandidateRepository) Upsert(ctx context.Context, c *domain.Candidate) error {
	if err := r.inner.Upsert(ctx, c); err != nil {
		return err
	}
	r.cacheSet(ctx, c)
	return nil
}

// Delete removes the row and its cache entry
func (r *CachedCandidateRepository) Delete(ctx context.Context, id string) error {
	if err := r.inner.Delete(ctx, id); err != nil {
		return err
	}
	if r.breaker.AllowRequest() {
		if err := r.redis.Del(ctx, candidateKey(id)).Err(); err != nil {
			r.breaker.RecordFailure()
			r.logger.Warn("candidate cache invalidation failed",
				slog.String("id", id),
				slog.String("error", err.Error()),
			)
		} else {
			r.breaker.RecordSuccess()
		}
	}
	return nil
}

func (r *CachedCandidateRepository) cacheSet(ctx context.Context, c *domain.Candidate) {
	if !r.breaker.AllowRequest() {
		return
	}
	data, err := json.Marshal(c)
	if err != nil {
		return
	}
	if err := r.redis.Set(ctx, candidateKey(c.ID), data, r.ttl).Err(); err != nil {
		r.breaker.RecordFailure()
		r.logger.Warn("candidate cache write failed",
			slog.String("id", c.ID),
			slog.String("error", err.Error()),
		)
		return
	}
	r.breaker.RecordSuccess()
}
