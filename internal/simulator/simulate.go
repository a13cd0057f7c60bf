package simulator

import (
	"fmt"
	"math/rand"

	"github.com/stitts-dev/tennis-sim/internal/stats"
	"github.com/stitts-dev/tennis-sim/internal/types"
)

// RunMatchSimulation resolves both players' rate statistics from the
// source (with the "All" surface fallback), then simulates one match.
// Lookup and validation failures short-circuit the whole trial; any
// panic inside the engines is converted to an error so one bad trial
// cannot abort a batch of thousands.
func RunMatchSimulation(source stats.Source, rng *rand.Rand, sink EventSink,
	player1Name, player2Name, surface string, bestOf int) (result *types.MatchResult, err error) {

	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("match simulation panicked: %v", r)
		}
	}()

	player1, err := source.Lookup(player1Name, surface)
	if err != nil {
		return nil, fmt.Errorf("stats for %s on %s: %w", player1Name, surface, err)
	}
	player2, err := source.Lookup(player2Name, surface)
	if err != nil {
		return nil, fmt.Errorf("stats for %s on %s: %w", player2Name, surface, err)
	}

	cfg := DefaultMatchConfig()
	cfg.BestOf = bestOf
	return SimulateMatch(rng, sink, &player1, &player2, cfg)
}
