// Package cache provides a Redis read-through cache for the country directory.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"statutory-engine/internal/metrics"
	"statutory-engine/internal/model"
	"statutory-engine/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultCountryTTL = 10 * time.Minute

// Cache lookup results for metrics
const (
	resultHit   = "hit"
	resultMiss  = "miss"
	resultError = "error"
)

// CountryCache decorates a CountryRepository with a Redis read-through cache on FindByID.
// Redis failures never fail a lookup; the database answers instead.
type CountryCache struct {
	repository.CountryRepository

	client  *redis.Client
	ttl     time.Duration
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// CountryCacheOption is a functional option for configuring the cache
type CountryCacheOption func(*CountryCache)

// WithTTL sets how long a country stays cached
func WithTTL(ttl time.Duration) CountryCacheOption {
	return func(c *CountryCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithLogger sets the logger for the cache
func WithLogger(logger *zap.Logger) CountryCacheOption {
	return func(c *CountryCache) {
		c.logger = logger
	}
}

// WithMetrics records hits, misses and errors
func WithMetrics(m *metrics.Metrics) CountryCacheOption {
	return func(c *CountryCache) {
		c.metrics = m
	}
}

// NewCountryCache wraps next. The caller retains ownership of client.
func NewCountryCache(next repository.CountryRepository, client *redis.Client, opts ...CountryCacheOption) *CountryCache {
	c := &CountryCache{
		CountryRepository: next,
		client:            client,
		ttl:               defaultCountryTTL,
		logger:            zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func countryKey(id uuid.UUID) string {
	return fmt.Sprintf("country:%s", id.String())
}

// FindByID serves from Redis when possible and fills the cache on a miss.
// Not-found results are not cached.
func (c *CountryCache) FindByID(ctx context.Context, id uuid.UUID) (*model.Country, error) {
	key := countryKey(id)

	data, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var country model.Country
		if jsonErr := json.Unmarshal(data, &country); jsonErr == nil {
			c.metrics.IncrementCacheLookup(resultHit)
			return &country, nil
		}
		c.logger.Warn("Dropping corrupted country cache entry", zap.String("key", key))
		_ = c.client.Del(ctx, key).Err()
		c.metrics.IncrementCacheLookup(resultError)
	case errors.Is(err, redis.Nil):
		c.metrics.IncrementCacheLookup(resultMiss)
	default:
		c.logger.Warn("Country cache unavailable, reading from database",
			zap.String("country_id", id.String()),
			zap.Error(err))
		c.metrics.IncrementCacheLookup(resultError)
	}

	country, err := c.CountryRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(country); err == nil {
		if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
			c.logger.Warn("Failed to cache country",
				zap.String("country_id", id.String()),
				zap.Error(err))
		}
	}
	return country, nil
}

// Create writes through to the repository and drops any stale entry for the new ID.
func (c *CountryCache) Create(ctx context.Context, country *model.Country) error {
	if err := c.CountryRepository.Create(ctx, country); err != nil {
		return err
	}
	c.invalidate(ctx, country.ID)
	return nil
}

func (c *CountryCache) invalidate(ctx context.Context, id uuid.UUID) {
	if err := c.client.Del(ctx, countryKey(id)).Err(); err != nil {
		c.logger.Warn("Failed to invalidate cached country",
			zap.String("country_id", id.String()),
			zap.Error(err))
	}
}
