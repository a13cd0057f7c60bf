package simulator

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/tennis-sim/internal/stats"
	"github.com/stitts-dev/tennis-sim/internal/types"
)

// trialSeedStride spaces per-trial seeds so neighbouring trials do not
// share a random stream (Knuth multiplicative hash constant).
const trialSeedStride = 2654435761

// BatchRequest describes a batch of independent match simulations
// between the same two players.
type BatchRequest struct {
	Player1 string `json:"player1"`
	Player2 string `json:"player2"`
	Surface string `json:"surface"`
	BestOf  int    `json:"best_of"`
	Trials  int    `json:"trials"`
	// Seed is the base seed for the batch; 0 picks a time-based seed.
	// Trial i always draws from seed + i*stride, so a fixed seed
	// reproduces the batch exactly regardless of worker scheduling.
	Seed int64 `json:"seed,omitempty"`
}

// BatchResult carries the paired fantasy-point samples of a completed
// batch, ordered by trial index.
type BatchResult struct {
	ID            string        `json:"id"`
	Request       BatchRequest  `json:"request"`
	Seed          int64         `json:"seed"`
	Player1Points []float64     `json:"player1_points"`
	Player2Points []float64     `json:"player2_points"`
	Player1Wins   int           `json:"player1_wins"`
	Completed     int           `json:"completed"`
	Failed        int           `json:"failed"`
	ExecutionTime time.Duration `json:"execution_time"`
}

type trialOutcome struct {
	index  int
	result *types.MatchResult
	err    error
}

// Runner shards batches of match simulations across a worker pool. Each
// trial owns its own random source and stat counters, so trials run
// concurrently without shared mutable state.
type Runner struct {
	source  stats.Source
	workers int
	sink    EventSink
	logger  *logrus.Logger
}

// NewRunner creates a batch runner. A non-positive worker count falls
// back to the number of CPUs.
func NewRunner(source stats.Source, workers int, logger *logrus.Logger) *Runner {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Runner{
		source:  source,
		workers: workers,
		sink:    NopSink{},
		logger:  logger,
	}
}

// SetEventSink replaces the default no-op sink for per-match events.
func (r *Runner) SetEventSink(sink EventSink) {
	if sink != nil {
		r.sink = sink
	}
}

// Run executes the requested number of independent trials and collects
// both sides' fantasy-point samples. Stats lookup failures are
// permanent and fail the whole batch up front; a single failing trial
// is skipped and counted, not fatal. Cancellation is cooperative,
// checked between trials.
func (r *Runner) Run(ctx context.Context, req BatchRequest, progressChan chan<- types.ProgressUpdate) (*BatchResult, error) {
	if req.Trials <= 0 {
		return nil, fmt.Errorf("trial count must be positive, got %d", req.Trials)
	}
	if req.BestOf != 3 && req.BestOf != 5 {
		return nil, fmt.Errorf("invalid match format: best of %d (must be 3 or 5)", req.BestOf)
	}

	// Resolve both players once; a missing row fails every trial the
	// same way, so there is no point starting the batch.
	player1, err := r.source.Lookup(req.Player1, req.Surface)
	if err != nil {
		return nil, fmt.Errorf("stats for %s on %s: %w", req.Player1, req.Surface, err)
	}
	player2, err := r.source.Lookup(req.Player2, req.Surface)
	if err != nil {
		return nil, fmt.Errorf("stats for %s on %s: %w", req.Player2, req.Surface, err)
	}

	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	batchID := uuid.New().String()
	start := time.Now()

	if r.logger != nil {
		r.logger.WithFields(logrus.Fields{
			"batch_id": batchID,
			"player1":  player1.Player,
			"player2":  player2.Player,
			"surface":  req.Surface,
			"best_of":  req.BestOf,
			"trials":   req.Trials,
			"workers":  r.workers,
		}).Info("Starting batch simulation")
	}

	trialChan := make(chan int, req.Trials)
	outcomeChan := make(chan trialOutcome, req.Trials)

	var wg sync.WaitGroup
	for w := 0; w < r.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range trialChan {
				select {
				case <-ctx.Done():
					return
				default:
				}
				rng := rand.New(rand.NewSource(seed + int64(index)*trialSeedStride))
				result, err := r.simulateTrial(rng, &player1, &player2, req.BestOf)
				outcomeChan <- trialOutcome{index: index, result: result, err: err}
			}
		}()
	}

	for i := 0; i < req.Trials; i++ {
		trialChan <- i
	}
	close(trialChan)

	go func() {
		wg.Wait()
		close(outcomeChan)
	}()

	outcomes := make([]trialOutcome, req.Trials)
	collected := 0
	for outcome := range outcomeChan {
		outcomes[outcome.index] = outcome
		collected++
		sendProgress(progressChan, collected, req.Trials)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &BatchResult{
		ID:            batchID,
		Request:       req,
		Seed:          seed,
		Player1Points: make([]float64, 0, req.Trials),
		Player2Points: make([]float64, 0, req.Trials),
	}

	for _, outcome := range outcomes {
		if outcome.err != nil {
			result.Failed++
			if r.logger != nil {
				r.logger.WithFields(logrus.Fields{
					"batch_id": batchID,
					"trial":    outcome.index,
				}).WithError(outcome.err).Warn("Trial failed, skipping")
			}
			continue
		}
		result.Completed++
		result.Player1Points = append(result.Player1Points, outcome.result.Player1FantasyPoints)
		result.Player2Points = append(result.Player2Points, outcome.result.Player2FantasyPoints)
		if outcome.result.Winner == types.SidePlayer1 {
			result.Player1Wins++
		}
	}
	result.ExecutionTime = time.Since(start)

	if r.logger != nil {
		r.logger.WithFields(logrus.Fields{
			"batch_id":       batchID,
			"completed":      result.Completed,
			"failed":         result.Failed,
			"execution_time": result.ExecutionTime,
		}).Info("Batch simulation completed")
	}

	return result, nil
}

// simulateTrial runs a single match, converting any panic into an error
// so one pathological trial cannot abort the batch.
func (r *Runner) simulateTrial(rng *rand.Rand, player1, player2 *stats.PlayerRateStats, bestOf int) (result *types.MatchResult, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			result = nil
			err = fmt.Errorf("match simulation panicked: %v", rec)
		}
	}()

	cfg := DefaultMatchConfig()
	cfg.BestOf = bestOf
	return SimulateMatch(rng, r.sink, player1, player2, cfg)
}

func sendProgress(progressChan chan<- types.ProgressUpdate, completed, total int) {
	if progressChan == nil {
		return
	}
	update := types.ProgressUpdate{
		Type:        "simulation",
		Progress:    float64(completed) / float64(total),
		Message:     fmt.Sprintf("Simulated match %d/%d", completed, total),
		CurrentStep: "simulation",
		TotalSteps:  total,
		Timestamp:   time.Now(),
	}
	select {
	case progressChan <- update:
	default:
		// Don't block the collector if the consumer is slow.
	}
}
