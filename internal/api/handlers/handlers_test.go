package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/tennis-sim/internal/config"
	"github.com/stitts-dev/tennis-sim/internal/simulator"
	"github.com/stitts-dev/tennis-sim/internal/stats"
	"github.com/stitts-dev/tennis-sim/internal/websocket"
)

type fakeSource map[string]stats.PlayerRateStats

func (f fakeSource) Lookup(player, surface string) (stats.PlayerRateStats, error) {
	if s, ok := f[player]; ok {
		return s, nil
	}
	return stats.PlayerRateStats{}, stats.ErrNotFound
}

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	source := fakeSource{
		"Carlos Alcaraz": {
			Player: "Carlos Alcaraz", Surface: "Hard",
			FirstServePercentage: 0.64, AcePercentage: 0.08,
			FirstServeWonPercentage: 0.72, DoubleFaultPercentage: 0.04,
			SecondServeWonPercentage: 0.52,
		},
		"Jannik Sinner": {
			Player: "Jannik Sinner", Surface: "Hard",
			FirstServePercentage: 0.62, AcePercentage: 0.09,
			FirstServeWonPercentage: 0.7, DoubleFaultPercentage: 0.03,
			SecondServeWonPercentage: 0.53,
		},
	}

	cfg := &config.Config{
		MaxSimulations:  1000,
		HistogramBins:   10,
		CacheExpiration: 60,
		SalaryCap:       50000,
		RosterSize:      6,
	}

	runner := simulator.NewRunner(source, 2, logger)
	hub := websocket.NewHub(logger)

	simulationHandler := NewSimulationHandler(source, runner, nil, hub, cfg, logger)
	optimizationHandler := NewOptimizationHandler(cfg, logger)

	router := gin.New()
	router.POST("/api/v1/simulate", simulationHandler.RunBatchSimulation)
	router.POST("/api/v1/simulate/match", simulationHandler.RunSingleMatch)
	router.GET("/api/v1/simulate/:id/results", simulationHandler.GetSimulationResults)
	router.POST("/api/v1/optimize", optimizationHandler.OptimizeLineup)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRunBatchSimulationEndpoint(t *testing.T) {
	router := testRouter(t)

	w := postJSON(t, router, "/api/v1/simulate", gin.H{
		"player1": "Carlos Alcaraz",
		"player2": "Jannik Sinner",
		"surface": "Hard",
		"trials":  100,
		"seed":    42,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var summary simulator.BatchSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.NotEmpty(t, summary.ID)
	assert.Equal(t, 100, summary.Completed)
	assert.Equal(t, 100, summary.Player1.Trials)
	assert.GreaterOrEqual(t, summary.Player1WinProb, 0.0)
	assert.LessOrEqual(t, summary.Player1WinProb, 1.0)
	assert.Len(t, summary.Player1Histogram, 10)
}

func TestRunBatchSimulationValidation(t *testing.T) {
	router := testRouter(t)

	w := postJSON(t, router, "/api/v1/simulate", gin.H{
		"player1": "Carlos Alcaraz",
		"player2": "Jannik Sinner",
		"surface": "Hard",
		"trials":  5000,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, "trial count above the configured limit")

	w = postJSON(t, router, "/api/v1/simulate", gin.H{
		"player1": "Carlos Alcaraz",
		"player2": "Carlos Alcaraz",
		"surface": "Hard",
		"trials":  10,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, "a player cannot face themselves")

	w = postJSON(t, router, "/api/v1/simulate", gin.H{
		"player1": "Carlos Alcaraz",
		"player2": "Unknown Player",
		"surface": "Hard",
		"trials":  10,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRunSingleMatchEndpoint(t *testing.T) {
	router := testRouter(t)

	w := postJSON(t, router, "/api/v1/simulate/match", gin.H{
		"player1": "Carlos Alcaraz",
		"player2": "Jannik Sinner",
		"surface": "Hard",
		"best_of": 5,
		"seed":    7,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			Seed   int64           `json:"seed"`
			Result json.RawMessage `json:"result"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.Data.Seed)
	assert.NotEmpty(t, resp.Data.Result)

	w = postJSON(t, router, "/api/v1/simulate/match", gin.H{
		"player1": "Carlos Alcaraz",
		"player2": "Jannik Sinner",
		"surface": "Hard",
		"best_of": 4,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetSimulationResultsWithoutCache(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/simulate/some-id/results", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOptimizeLineupEndpoint(t *testing.T) {
	router := testRouter(t)

	w := postJSON(t, router, "/api/v1/optimize", gin.H{
		"players": []gin.H{
			{"name": "A", "salary": 9000, "projected_points": 70},
			{"name": "B", "salary": 8000, "projected_points": 60},
			{"name": "C", "salary": 7000, "projected_points": 55},
		},
		"salary_cap":  20000,
		"roster_size": 2,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var lineup struct {
		Players         []struct{ Name string } `json:"players"`
		TotalSalary     int                     `json:"total_salary"`
		ProjectedPoints float64                 `json:"projected_points"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &lineup))
	assert.Len(t, lineup.Players, 2)
	assert.LessOrEqual(t, lineup.TotalSalary, 20000)
}

func TestOptimizeLineupInfeasible(t *testing.T) {
	router := testRouter(t)

	w := postJSON(t, router, "/api/v1/optimize", gin.H{
		"players": []gin.H{
			{"name": "A", "salary": 9000, "projected_points": 70},
			{"name": "B", "salary": 8000, "projected_points": 60},
		},
		"salary_cap":  10000,
		"roster_size": 2,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestOptimizeLineupDuplicatePlayers(t *testing.T) {
	router := testRouter(t)

	w := postJSON(t, router, "/api/v1/optimize", gin.H{
		"players": []gin.H{
			{"name": "A", "salary": 9000, "projected_points": 70},
			{"name": "A", "salary": 8000, "projected_points": 60},
		},
		"roster_size": 2,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
