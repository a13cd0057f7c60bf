package simulator

import (
	"math/rand"

	"github.com/stitts-dev/tennis-sim/internal/stats"
	"github.com/stitts-dev/tennis-sim/internal/types"
)

// ResolvePoint resolves a single point between server and returner
// using the server's rate statistics. Exactly one draw path is taken:
// a landed first serve can produce an ace or a rally decided by the
// first-serve win rate; a faulted first serve can produce a double
// fault or a rally decided by the second-serve win rate.
func ResolvePoint(rng *rand.Rand, server, returner *stats.PlayerRateStats) types.PointOutcome {
	firstServeIn := rng.Float64() < server.FirstServePercentage

	if firstServeIn {
		if rng.Float64() < server.AcePercentage {
			return types.PointOutcome{Winner: types.ServerWins, Ace: true}
		}
		if rng.Float64() < server.FirstServeWonPercentage {
			return types.PointOutcome{Winner: types.ServerWins}
		}
		return types.PointOutcome{Winner: types.ReturnerWins}
	}

	// Second serve
	if rng.Float64() < server.DoubleFaultPercentage {
		return types.PointOutcome{Winner: types.ReturnerWins, DoubleFault: true}
	}
	if rng.Float64() < server.SecondServeWonPercentage {
		return types.PointOutcome{Winner: types.ServerWins}
	}
	return types.PointOutcome{Winner: types.ReturnerWins}
}
