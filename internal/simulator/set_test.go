package simulator

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/tennis-sim/internal/types"
)

func TestPlaySetDominantPlayer1(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	player1 := serveProfile("one", 1.0, 0.0, 1.0, 0.0, 0.0)
	player2 := serveProfile("two", 1.0, 0.0, 0.0, 0.0, 0.0)

	set := PlaySet(rng, NopSink{}, types.SidePlayer1, player1, player2)

	assert.Equal(t, types.SidePlayer1, set.Winner)
	assert.Equal(t, []types.Side{
		types.SidePlayer1, types.SidePlayer1, types.SidePlayer1,
		types.SidePlayer1, types.SidePlayer1, types.SidePlayer1,
	}, set.Games)
	assert.True(t, set.CleanSet)
	assert.Equal(t, 3, set.Player1Breaks, "player 1 breaks every player 2 service game")
	assert.Equal(t, 0, set.Player2Breaks)
	assert.Equal(t, 3, set.BreakPointsConverted)
}

func TestPlaySetDominantPlayer2NotClean(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	player1 := serveProfile("one", 1.0, 0.0, 0.0, 0.0, 0.0)
	player2 := serveProfile("two", 1.0, 0.0, 1.0, 0.0, 0.0)

	set := PlaySet(rng, NopSink{}, types.SidePlayer1, player1, player2)

	assert.Equal(t, types.SidePlayer2, set.Winner)
	assert.Len(t, set.Games, 6)
	assert.False(t, set.CleanSet)
	assert.Equal(t, 3, set.Player2Breaks)
}

func TestPlaySetInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(2024))
	player1 := serveProfile("one", 0.62, 0.07, 0.7, 0.04, 0.5)
	player2 := serveProfile("two", 0.6, 0.05, 0.68, 0.05, 0.48)

	for i := 0; i < 500; i++ {
		set := PlaySet(rng, NopSink{}, types.SidePlayer1, player1, player2)

		player1Games := 0
		player2Games := 0
		for _, g := range set.Games {
			if g == types.SidePlayer1 {
				player1Games++
			} else {
				player2Games++
			}
		}

		winnerGames, loserGames := player1Games, player2Games
		if set.Winner == types.SidePlayer2 {
			winnerGames, loserGames = player2Games, player1Games
		}
		require.Greater(t, winnerGames, loserGames)

		switch winnerGames {
		case 6:
			assert.LessOrEqual(t, loserGames, 4)
		case 7:
			// Either a 7-5 set or a tie-break; a 7-6 set is never clean.
			assert.Contains(t, []int{5, 6}, loserGames)
			if loserGames == 6 {
				assert.False(t, set.CleanSet)
			}
		default:
			t.Fatalf("set winner ended with %d games", winnerGames)
		}

		if set.Winner == types.SidePlayer2 || player2Games > 0 {
			assert.False(t, set.CleanSet)
		}
	}
}

func TestTieBreakServerSchedule(t *testing.T) {
	expected := []types.Side{
		types.SidePlayer2, types.SidePlayer2,
		types.SidePlayer1, types.SidePlayer1,
		types.SidePlayer2, types.SidePlayer2,
		types.SidePlayer1, types.SidePlayer1,
		types.SidePlayer2, types.SidePlayer2,
		types.SidePlayer1, types.SidePlayer1,
	}
	for i, want := range expected {
		assert.Equal(t, want, tieBreakServer(types.SidePlayer2, i+1), "point %d", i+1)
	}
}

func TestPlayTieBreakDominantSide(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	player1 := serveProfile("one", 1.0, 0.0, 1.0, 0.0, 0.0)
	player2 := serveProfile("two", 1.0, 0.0, 0.0, 0.0, 0.0)

	// Player 1 wins every point on both serves, regardless of who
	// enters the tie-break serving.
	assert.Equal(t, types.SidePlayer1, playTieBreak(rng, NopSink{}, types.SidePlayer1, player1, player2))
	assert.Equal(t, types.SidePlayer1, playTieBreak(rng, NopSink{}, types.SidePlayer2, player1, player2))
}
