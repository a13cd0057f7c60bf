package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/tennis-sim/internal/database"
	"github.com/stitts-dev/tennis-sim/internal/stats"
)

// HealthHandler reports service and dependency health. The database
// and Redis client are optional and reported as "disabled" when nil.
type HealthHandler struct {
	db      *database.DB
	redis   *redis.Client
	source  stats.Source
	started time.Time
	logger  *logrus.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *database.DB, redisClient *redis.Client, source stats.Source, logger *logrus.Logger) *HealthHandler {
	return &HealthHandler{
		db:      db,
		redis:   redisClient,
		source:  source,
		started: time.Now(),
		logger:  logger,
	}
}

// GetHealth returns the liveness status
func (h *HealthHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"uptime":    time.Since(h.started).String(),
		"timestamp": time.Now(),
	})
}

// GetReady checks every configured dependency and returns 503 when one
// is unreachable.
func (h *HealthHandler) GetReady(c *gin.Context) {
	components := gin.H{}
	healthy := true

	if h.db != nil {
		if err := h.db.HealthCheck(); err != nil {
			h.logger.WithError(err).Warn("Database health check failed")
			components["database"] = "unhealthy"
			healthy = false
		} else {
			components["database"] = "healthy"
		}
	} else {
		components["database"] = "disabled"
	}

	if h.redis != nil {
		if err := h.redis.Ping(c.Request.Context()).Err(); err != nil {
			h.logger.WithError(err).Warn("Redis health check failed")
			components["redis"] = "unhealthy"
			healthy = false
		} else {
			components["redis"] = "healthy"
		}
	} else {
		components["redis"] = "disabled"
	}

	if h.source != nil {
		components["player_stats"] = "loaded"
	} else {
		components["player_stats"] = "missing"
		healthy = false
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{
		"ready":      healthy,
		"components": components,
		"timestamp":  time.Now(),
	})
}
