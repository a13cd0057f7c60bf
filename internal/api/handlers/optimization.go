package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/tennis-sim/internal/config"
	"github.com/stitts-dev/tennis-sim/internal/optimizer"
	"github.com/stitts-dev/tennis-sim/internal/types"
)

// OptimizationHandler handles lineup optimization endpoints
type OptimizationHandler struct {
	config *config.Config
	logger *logrus.Logger
}

// NewOptimizationHandler creates a new optimization handler
func NewOptimizationHandler(cfg *config.Config, logger *logrus.Logger) *OptimizationHandler {
	return &OptimizationHandler{
		config: cfg,
		logger: logger,
	}
}

// OptimizationRequest is the body of a lineup optimization request.
// SalaryCap and RosterSize fall back to the configured contest defaults
// when omitted.
type OptimizationRequest struct {
	Players    []optimizer.LineupPlayer `json:"players" binding:"required"`
	SalaryCap  int                      `json:"salary_cap,omitempty"`
	RosterSize int                      `json:"roster_size,omitempty"`
}

// OptimizeLineup handles optimization requests
func (h *OptimizationHandler) OptimizeLineup(c *gin.Context) {
	var req OptimizationRequest
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

	cfg := optimizer.Config{
		SalaryCap:  req.SalaryCap,
		RosterSize: req.RosterSize,
	}
	if cfg.SalaryCap == 0 {
		cfg.SalaryCap = h.config.SalaryCap
	}
	if cfg.RosterSize == 0 {
		cfg.RosterSize = h.config.RosterSize
	}

	if err := h.validateOptimizationRequest(req, cfg); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error: "Invalid optimization parameters",
			Code:  "INVALID_OPTIMIZATION",
			Details: map[string]string{
				"validation_error": err.Error(),
			},
		})
		return
	}

	startTime := time.Now()
	opt := optimizer.NewOptimizer(cfg, h.logger)
	lineup, err := opt.Optimize(req.Players)
	if err != nil {
		h.logger.WithError(err).Warn("Lineup optimization failed")
		c.JSON(http.StatusUnprocessableEntity, types.ErrorResponse{
			Error: "Optimization failed",
			Code:  "OPTIMIZATION_ERROR",
			Details: map[string]string{
				"error": err.Error(),
			},
		})
		return
	}

	h.logger.WithFields(logrus.Fields{
		"pool_size":        len(req.Players),
		"total_salary":     lineup.TotalSalary,
		"projected_points": lineup.ProjectedPoints,
		"execution_time":   time.Since(startTime),
	}).Info("Lineup optimization completed")

	c.JSON(http.StatusOK, lineup)
}

func (h *OptimizationHandler) validateOptimizationRequest(req OptimizationRequest, cfg optimizer.Config) error {
	if len(req.Players) == 0 {
		return fmt.Errorf("at least one player is required")
	}

	if cfg.SalaryCap <= 0 {
		return fmt.Errorf("salary cap must be positive")
	}

	if cfg.RosterSize <= 0 {
		return fmt.Errorf("roster size must be positive")
	}

	seen := make(map[string]bool, len(req.Players))
	for _, p := range req.Players {
		if p.Name == "" {
			return fmt.Errorf("player name must not be empty")
		}
		if seen[p.Name] {
			return fmt.Errorf("duplicate player %s in pool", p.Name)
		}
		seen[p.Name] = true
	}

	return nil
}
