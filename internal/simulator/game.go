package simulator

import (
	"math/rand"

	"github.com/stitts-dev/tennis-sim/internal/stats"
	"github.com/stitts-dev/tennis-sim/internal/types"
)

// PlayGame resolves one service game. The serving side is fixed for the
// whole game; points accumulate until one side has at least 4 points
// with a margin of at least 2, which subsumes deuce/advantage scoring.
func PlayGame(rng *rand.Rand, sink EventSink, serving types.Side, server, returner *stats.PlayerRateStats) types.GameResult {
	serverPoints := 0
	returnerPoints := 0

	aces := 0
	doubleFaults := 0
	breakPointConverted := false

	for {
		// The returner holds a break point whenever winning the next
		// point would win them the game.
		isBreakPoint := returnerPoints >= 3 && returnerPoints-serverPoints >= 1

		outcome := ResolvePoint(rng, server, returner)
		if outcome.Ace {
			aces++
		}
		if outcome.DoubleFault {
			doubleFaults++
		}

		if outcome.Winner == types.ServerWins {
			serverPoints++
		} else {
			returnerPoints++
			if isBreakPoint {
				breakPointConverted = true
			}
		}

		if serverPoints >= 4 && serverPoints-returnerPoints >= 2 {
			return gameResult(sink, serving, aces, doubleFaults, false)
		}
		if returnerPoints >= 4 && returnerPoints-serverPoints >= 2 {
			return gameResult(sink, serving.Opponent(), aces, doubleFaults, breakPointConverted)
		}
	}
}

func gameResult(sink EventSink, winner types.Side, aces, doubleFaults int, converted bool) types.GameResult {
	result := types.GameResult{
		Winner:              winner,
		Aces:                aces,
		DoubleFaults:        doubleFaults,
		BreakPointConverted: converted,
	}
	sink.Event("game_completed", map[string]interface{}{
		"winner":                winner,
		"aces":                  aces,
		"double_faults":         doubleFaults,
		"break_point_converted": converted,
	})
	return result
}
