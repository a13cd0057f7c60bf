package handlers

import (
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/tennis-sim/internal/cache"
	"github.com/stitts-dev/tennis-sim/internal/config"
	"github.com/stitts-dev/tennis-sim/internal/simulator"
	"github.com/stitts-dev/tennis-sim/internal/stats"
	"github.com/stitts-dev/tennis-sim/internal/types"
	"github.com/stitts-dev/tennis-sim/internal/websocket"
)

// SimulationHandler handles simulation-related endpoints
type SimulationHandler struct {
	source stats.Source
	runner *simulator.Runner
	cache  *cache.SimulationCacheService
	wsHub  *websocket.Hub
	config *config.Config
	logger *logrus.Logger
}

// NewSimulationHandler creates a new simulation handler. The cache
// service may be nil when Redis is not configured.
func NewSimulationHandler(
	source stats.Source,
	runner *simulator.Runner,
	cacheService *cache.SimulationCacheService,
	wsHub *websocket.Hub,
	cfg *config.Config,
	logger *logrus.Logger,
) *SimulationHandler {
	return &SimulationHandler{
		source: source,
		runner: runner,
		cache:  cacheService,
		wsHub:  wsHub,
		config: cfg,
		logger: logger,
	}
}

// BatchSimulationRequest is the body of a batch simulation request.
// ClientID, when set, routes progress updates to the WebSocket clients
// subscribed under that ID.
type BatchSimulationRequest struct {
	Player1  string `json:"player1" binding:"required"`
	Player2  string `json:"player2" binding:"required"`
	Surface  string `json:"surface" binding:"required"`
	BestOf   int    `json:"best_of"`
	Trials   int    `json:"trials"`
	Seed     int64  `json:"seed,omitempty"`
	ClientID string `json:"client_id,omitempty"`
}

// SingleMatchRequest is the body of a single-match simulation request.
type SingleMatchRequest struct {
	Player1 string `json:"player1" binding:"required"`
	Player2 string `json:"player2" binding:"required"`
	Surface string `json:"surface" binding:"required"`
	BestOf  int    `json:"best_of"`
	Seed    int64  `json:"seed,omitempty"`
}

// RunBatchSimulation handles batch simulation requests
func (h *SimulationHandler) RunBatchSimulation(c *gin.Context) {
	var req BatchSimulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error: "Invalid request format",
			Code:  "INVALID_REQUEST",
			Details: map[string]string{
				"validation_error": err.Error(),
			},
		})
		return
	}

	if req.BestOf == 0 {
		req.BestOf = 3
	}
	if err := h.validateBatchRequest(req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error: "Invalid simulation parameters",
			Code:  "INVALID_SIMULATION",
			Details: map[string]string{
				"validation_error": err.Error(),
			},
		})
		return
	}

	batchReq := simulator.BatchRequest{
		Player1: req.Player1,
		Player2: req.Player2,
		Surface: req.Surface,
		BestOf:  req.BestOf,
		Trials:  req.Trials,
		Seed:    req.Seed,
	}

	// Seeded batches are deterministic, so a cached summary is exact.
	cacheKey := cache.RequestKey(batchReq)
	if h.cache != nil && cacheKey != "" {
		if summary, err := h.cache.GetBatchSummary(c.Request.Context(), cacheKey); err == nil {
			h.logger.WithField("cache_key", cacheKey).Info("Returning cached batch summary")
			c.JSON(http.StatusOK, summary)
			return
		}
	}

	// Create progress channel for WebSocket updates
	progressChan := make(chan types.ProgressUpdate, 100)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressChan {
			if req.ClientID != "" {
				h.wsHub.BroadcastToBatch(req.ClientID, update)
			}
		}
	}()

	startTime := time.Now()
	result, err := h.runner.Run(c.Request.Context(), batchReq, progressChan)
	close(progressChan)
	<-done

	if err != nil {
		status := http.StatusInternalServerError
		code := "SIMULATION_ERROR"
		if errors.Is(err, stats.ErrNotFound) {
			status = http.StatusNotFound
			code = "PLAYER_NOT_FOUND"
		}
		h.logger.WithError(err).Error("Batch simulation failed")
		c.JSON(status, types.ErrorResponse{
			Error: "Simulation failed",
			Code:  code,
			Details: map[string]string{
				"error": err.Error(),
			},
		})
		return
	}

	summary := result.Summarize(h.config.HistogramBins)

	if h.cache != nil {
		expiration := time.Duration(h.config.CacheExpiration) * time.Second
		if cacheKey != "" {
			if err := h.cache.SetBatchSummary(c.Request.Context(), cacheKey, summary, expiration); err != nil {
				h.logger.WithError(err).Warn("Failed to cache batch summary")
			}
		}
		if err := h.cache.SetBatchSummary(c.Request.Context(), summary.ID, summary, expiration); err != nil {
			h.logger.WithError(err).Warn("Failed to cache batch summary")
		}
	}

	h.logger.WithFields(logrus.Fields{
		"batch_id":       summary.ID,
		"trials":         req.Trials,
		"execution_time": time.Since(startTime),
	}).Info("Batch simulation completed successfully")

	c.JSON(http.StatusOK, summary)
}

// RunSingleMatch simulates one match and returns the full set-by-set
// result, mainly for debugging player stats.
func (h *SimulationHandler) RunSingleMatch(c *gin.Context) {
	var req SingleMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error: "Invalid request format",
			Code:  "INVALID_REQUEST",
			Details: map[string]string{
				"validation_error": err.Error(),
			},
		})
		return
	}

	if req.BestOf == 0 {
		req.BestOf = 3
	}
	if req.BestOf != 3 && req.BestOf != 5 {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error: "Invalid simulation parameters",
			Code:  "INVALID_SIMULATION",
			Details: map[string]string{
				"validation_error": fmt.Sprintf("best_of must be 3 or 5, got %d", req.BestOf),
			},
		})
		return
	}

	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	sink := simulator.NewLogSink(h.logger.WithFields(logrus.Fields{
		"player1": req.Player1,
		"player2": req.Player2,
		"surface": req.Surface,
	}))
	result, err := simulator.RunMatchSimulation(h.source, rng, sink,
		req.Player1, req.Player2, req.Surface, req.BestOf)
	if err != nil {
		status := http.StatusInternalServerError
		code := "SIMULATION_ERROR"
		if errors.Is(err, stats.ErrNotFound) {
			status = http.StatusNotFound
			code = "PLAYER_NOT_FOUND"
		}
		c.JSON(status, types.ErrorResponse{
			Error: "Simulation failed",
			Code:  code,
			Details: map[string]string{
				"error": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, types.SuccessResponse{
		Message: "Match simulated",
		Data: gin.H{
			"seed":   seed,
			"result": result,
		},
	})
}

// GetSimulationResults returns the cached summary of a completed batch
func (h *SimulationHandler) GetSimulationResults(c *gin.Context) {
	if h.cache == nil {
		c.JSON(http.StatusNotFound, types.ErrorResponse{
			Error: "Result caching is not enabled",
			Code:  "CACHE_DISABLED",
		})
		return
	}

	batchID := c.Param("id")
	summary, err := h.cache.GetBatchSummary(c.Request.Context(), batchID)
	if err != nil {
		c.JSON(http.StatusNotFound, types.ErrorResponse{
			Error: "Simulation results not found",
			Code:  "RESULTS_NOT_FOUND",
		})
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *SimulationHandler) validateBatchRequest(req BatchSimulationRequest) error {
	if req.Trials <= 0 {
		return fmt.Errorf("trials must be positive")
	}

	if req.Trials > h.config.MaxSimulations {
		return fmt.Errorf("trials exceed limit of %d", h.config.MaxSimulations)
	}

	if req.BestOf != 3 && req.BestOf != 5 {
		return fmt.Errorf("best_of must be 3 or 5, got %d", req.BestOf)
	}

	if req.Player1 == req.Player2 {
		return fmt.Errorf("player1 and player2 must differ")
	}

	return nil
}
