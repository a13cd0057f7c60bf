package simulator

import (
	"math/rand"

	"github.com/stitts-dev/tennis-sim/internal/stats"
	"github.com/stitts-dev/tennis-sim/internal/types"
)

// PlaySet resolves one set. Service alternates by game starting with
// startServer; at 6-6 a tie-break decides the set and its winner is
// credited one additional game. The clean-set flag starts true and is
// cleared the moment side one drops a game; a tie-break set is never
// clean.
func PlaySet(rng *rand.Rand, sink EventSink, startServer types.Side, player1, player2 *stats.PlayerRateStats) types.SetResult {
	server := startServer
	player1Games := 0
	player2Games := 0
	games := make([]types.Side, 0, 12)
	cleanSet := true

	setAces := 0
	setDoubleFaults := 0
	setBreakPointsConverted := 0
	player1Breaks := 0
	player2Breaks := 0

	for {
		srv, ret := player1, player2
		if server == types.SidePlayer2 {
			srv, ret = player2, player1
		}

		game := PlayGame(rng, sink, server, srv, ret)

		setAces += game.Aces
		setDoubleFaults += game.DoubleFaults
		if game.BreakPointConverted {
			setBreakPointsConverted++
		}
		games = append(games, game.Winner)

		if game.Winner == types.SidePlayer1 {
			player1Games++
			if server != types.SidePlayer1 {
				player1Breaks++
			}
		} else {
			player2Games++
			if server != types.SidePlayer2 {
				player2Breaks++
			}
			cleanSet = false // side one dropped a game this set
		}

		if (player1Games >= 6 || player2Games >= 6) && abs(player1Games-player2Games) >= 2 {
			winner := types.SidePlayer1
			if player2Games > player1Games {
				winner = types.SidePlayer2
			}
			return setResult(sink, winner, games, cleanSet, setAces, setDoubleFaults,
				setBreakPointsConverted, player1Breaks, player2Breaks)
		}

		if player1Games == 6 && player2Games == 6 {
			tieBreakWinner := playTieBreak(rng, sink, server, player1, player2)
			games = append(games, tieBreakWinner)
			if tieBreakWinner == types.SidePlayer1 {
				player1Games++
			} else {
				player2Games++
			}
			winner := types.SidePlayer1
			if player2Games > player1Games {
				winner = types.SidePlayer2
			}
			// A set decided by a tie-break is never clean.
			return setResult(sink, winner, games, false, setAces, setDoubleFaults,
				setBreakPointsConverted, player1Breaks, player2Breaks)
		}

		server = server.Opponent()
	}
}

// playTieBreak resolves a tie-break as a single race to 7 with a margin
// of 2. The first two points are served by firstServer; thereafter the
// serve switches every two points. Game-level serve advantage does not apply
// inside the tie-break, each point is resolved independently.
func playTieBreak(rng *rand.Rand, sink EventSink, firstServer types.Side, player1, player2 *stats.PlayerRateStats) types.Side {
	player1Points := 0
	player2Points := 0
	pointsPlayed := 0

	for {
		pointsPlayed++
		server := tieBreakServer(firstServer, pointsPlayed)

		srv, ret := player1, player2
		if server == types.SidePlayer2 {
			srv, ret = player2, player1
		}

		outcome := ResolvePoint(rng, srv, ret)
		winner := server
		if outcome.Winner == types.ReturnerWins {
			winner = server.Opponent()
		}

		if winner == types.SidePlayer1 {
			player1Points++
		} else {
			player2Points++
		}

		if (player1Points >= 7 || player2Points >= 7) && abs(player1Points-player2Points) >= 2 {
			tieBreakWinner := types.SidePlayer1
			if player2Points > player1Points {
				tieBreakWinner = types.SidePlayer2
			}
			sink.Event("tie_break_completed", map[string]interface{}{
				"winner":         tieBreakWinner,
				"player1_points": player1Points,
				"player2_points": player2Points,
			})
			return tieBreakWinner
		}
	}
}

// tieBreakServer returns the serving side for a 1-based tie-break point
// index: points 1 and 2 belong to the side holding serve entering the
// tie-break, then the serve switches every two points.
func tieBreakServer(firstServer types.Side, point int) types.Side {
	if ((point-1)/2)%2 == 1 {
		return firstServer.Opponent()
	}
	return firstServer
}

func setResult(sink EventSink, winner types.Side, games []types.Side, cleanSet bool,
	aces, doubleFaults, breakPointsConverted, player1Breaks, player2Breaks int) types.SetResult {

	result := types.SetResult{
		Winner:               winner,
		Games:                games,
		CleanSet:             cleanSet,
		Aces:                 aces,
		DoubleFaults:         doubleFaults,
		BreakPointsConverted: breakPointsConverted,
		Player1Breaks:        player1Breaks,
		Player2Breaks:        player2Breaks,
	}
	sink.Event("set_completed", map[string]interface{}{
		"winner":    winner,
		"games":     len(games),
		"clean_set": cleanSet,
	})
	return result
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
