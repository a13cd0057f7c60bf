package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/tennis-sim/internal/simulator"
)

// ErrCacheMiss is returned when no summary is stored under a key.
var ErrCacheMiss = fmt.Errorf("simulation result not found in cache")

// SimulationCacheService stores finished batch summaries in Redis so
// repeated requests for the same matchup and seed skip the simulation.
type SimulationCacheService struct {
	client *redis.Client
	logger *logrus.Logger
}

// NewSimulationCacheService creates a new simulation cache service.
func NewSimulationCacheService(client *redis.Client, logger *logrus.Logger) *SimulationCacheService {
	return &SimulationCacheService{
		client: client,
		logger: logger,
	}
}

// RequestKey derives the cache key for a batch request. Seedless
// requests are not cacheable and return an empty key.
func RequestKey(req simulator.BatchRequest) string {
	if req.Seed == 0 {
		return ""
	}
	return fmt.Sprintf("%s:%s:%s:%d:%d:%d",
		req.Player1, req.Player2, req.Surface, req.BestOf, req.Trials, req.Seed)
}

// SetBatchSummary stores a batch summary in cache.
func (c *SimulationCacheService) SetBatchSummary(ctx context.Context, key string, summary *simulator.BatchSummary, expiration time.Duration) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal batch summary: %w", err)
	}

	fullKey := fmt.Sprintf("simulation:%s", key)
	if err := c.client.Set(ctx, fullKey, data, expiration).Err(); err != nil {
		return fmt.Errorf("failed to set batch summary in cache: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"cache_key":  fullKey,
		"expiration": expiration,
		"trials":     summary.Completed,
	}).Debug("Cached batch summary")

	return nil
}

// GetBatchSummary retrieves a batch summary from cache.
func (c *SimulationCacheService) GetBatchSummary(ctx context.Context, key string) (*simulator.BatchSummary, error) {
	fullKey := fmt.Sprintf("simulation:%s", key)
	data, err := c.client.Get(ctx, fullKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get batch summary from cache: %w", err)
	}

	var summary simulator.BatchSummary
	if err := json.Unmarshal([]byte(data), &summary); err != nil {
		return nil, fmt.Errorf("failed to unmarshal batch summary: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"cache_key": fullKey,
		"trials":    summary.Completed,
	}).Debug("Retrieved batch summary from cache")

	return &summary, nil
}

// DeleteBatchSummary removes a batch summary from cache.
func (c *SimulationCacheService) DeleteBatchSummary(ctx context.Context, key string) error {
	fullKey := fmt.Sprintf("simulation:%s", key)
	if err := c.client.Del(ctx, fullKey).Err(); err != nil {
		return fmt.Errorf("failed to delete batch summary from cache: %w", err)
	}

	c.logger.WithField("cache_key", fullKey).Debug("Deleted batch summary from cache")
	return nil
}

// GetStatus returns cache statistics for the health endpoint.
func (c *SimulationCacheService) GetStatus(ctx context.Context) map[string]interface{} {
	status := map[string]interface{}{
		"service":   "simulation-cache",
		"timestamp": time.Now(),
		"connected": true,
	}

	if dbSize := c.client.DBSize(ctx); dbSize.Err() == nil {
		status["db_size"] = dbSize.Val()
	} else {
		status["connected"] = false
	}

	return status
}
