package simulator

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/stitts-dev/tennis-sim/internal/stats"
	"github.com/stitts-dev/tennis-sim/internal/types"
)

// MatchConfig parametrizes a single match simulation.
type MatchConfig struct {
	// BestOf is the match format, 3 or 5 sets.
	BestOf int
	// StartServer serves the first game of every set; serve parity is
	// not carried across sets.
	StartServer types.Side
}

// DefaultMatchConfig returns the standard best-of-3 configuration with
// player 1 serving first.
func DefaultMatchConfig() MatchConfig {
	return MatchConfig{BestOf: 3, StartServer: types.SidePlayer1}
}

// SimulateMatch resolves a full match between two players, accumulating
// per-side counting statistics set by set and scoring both sides'
// fantasy points once a side reaches the required set count.
func SimulateMatch(rng *rand.Rand, sink EventSink, player1, player2 *stats.PlayerRateStats, cfg MatchConfig) (*types.MatchResult, error) {
	if cfg.BestOf != 3 && cfg.BestOf != 5 {
		return nil, fmt.Errorf("invalid match format: best of %d (must be 3 or 5)", cfg.BestOf)
	}
	if cfg.StartServer != types.SidePlayer1 && cfg.StartServer != types.SidePlayer2 {
		return nil, fmt.Errorf("invalid starting server: %q", cfg.StartServer)
	}

	player1Sets := 0
	player2Sets := 0
	sets := make([]types.SetResult, 0, cfg.BestOf)

	player1Counters := newMatchStatCounters()
	player2Counters := newMatchStatCounters()

	requiredSets := cfg.BestOf/2 + 1
	start := time.Now()

	for {
		set := PlaySet(rng, sink, cfg.StartServer, player1, player2)
		sets = append(sets, set)

		if set.Winner == types.SidePlayer1 {
			player1Sets++
			player1Counters.SetsWon++
			player2Counters.SetsLost++
		} else {
			player2Sets++
			player2Counters.SetsWon++
			player1Counters.SetsLost++
		}

		for _, gameWinner := range set.Games {
			if gameWinner == types.SidePlayer1 {
				player1Counters.GamesWon++
				player2Counters.GamesLost++
			} else {
				player2Counters.GamesWon++
				player1Counters.GamesLost++
			}
		}

		player1Counters.Breaks += set.Player1Breaks
		player2Counters.Breaks += set.Player2Breaks

		// Aces, double faults and converted break points are credited
		// to the set's winning side only.
		creditSetToWinner(&set, player1Counters, player2Counters)

		updateAceBonuses(player1Counters)
		updateAceBonuses(player2Counters)

		if set.CleanSet {
			if set.Winner == types.SidePlayer1 {
				player1Counters.CleanSet = true
			} else {
				player2Counters.CleanSet = true
			}
		}

		sink.Event("set_recorded", map[string]interface{}{
			"set_number":   len(sets),
			"winner":       set.Winner,
			"player1_sets": player1Sets,
			"player2_sets": player2Sets,
		})

		if player1Sets == requiredSets || player2Sets == requiredSets {
			winner := types.SidePlayer1
			if player2Sets > player1Sets {
				winner = types.SidePlayer2
			}

			straightSets := player1Sets == 0 || player2Sets == 0
			if straightSets {
				if winner == types.SidePlayer1 {
					player1Counters.StraightSets = true
				} else {
					player2Counters.StraightSets = true
				}
			}

			result := &types.MatchResult{
				Winner:               winner,
				Sets:                 sets,
				Player1Stats:         *player1Counters,
				Player2Stats:         *player2Counters,
				Player1FantasyPoints: ScoreFantasy(*player1Counters, winner == types.SidePlayer1, cfg.BestOf),
				Player2FantasyPoints: ScoreFantasy(*player2Counters, winner == types.SidePlayer2, cfg.BestOf),
				Duration:             time.Since(start),
			}

			sink.Event("match_completed", map[string]interface{}{
				"winner":                 winner,
				"sets_played":            len(sets),
				"player1_fantasy_points": result.Player1FantasyPoints,
				"player2_fantasy_points": result.Player2FantasyPoints,
			})
			return result, nil
		}
	}
}

func newMatchStatCounters() *types.MatchStatCounters {
	return &types.MatchStatCounters{
		MatchPlayed:   true,
		NoDoubleFault: true,
	}
}

func creditSetToWinner(set *types.SetResult, player1, player2 *types.MatchStatCounters) {
	credited := player1
	if set.Winner == types.SidePlayer2 {
		credited = player2
	}
	credited.Aces += set.Aces
	credited.DoubleFaults += set.DoubleFaults
	credited.BreakPointsConverted += set.BreakPointsConverted
	if set.DoubleFaults > 0 {
		credited.NoDoubleFault = false
	}
}

// updateAceBonuses latches the ace bonus flags from the cumulative ace
// count; reaching 15 supersedes the 10+ flag so the two stay mutually
// exclusive in the final record.
func updateAceBonuses(c *types.MatchStatCounters) {
	switch {
	case c.Aces >= 15:
		c.FifteenPlusAces = true
		c.TenPlusAces = false
	case c.Aces >= 10:
		c.TenPlusAces = true
	}
}
