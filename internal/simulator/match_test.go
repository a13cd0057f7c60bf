package simulator

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/tennis-sim/internal/types"
)

func TestSimulateMatchDominantBestOfThree(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	player1 := serveProfile("one", 1.0, 0.0, 1.0, 0.0, 0.0)
	player2 := serveProfile("two", 1.0, 0.0, 0.0, 0.0, 0.0)

	result, err := SimulateMatch(rng, NopSink{}, player1, player2, DefaultMatchConfig())
	require.NoError(t, err)

	assert.Equal(t, types.SidePlayer1, result.Winner)
	assert.Len(t, result.Sets, 2)

	p1 := result.Player1Stats
	assert.Equal(t, 2, p1.SetsWon)
	assert.Equal(t, 12, p1.GamesWon)
	assert.Equal(t, 0, p1.GamesLost)
	assert.Equal(t, 6, p1.Breaks)
	assert.Equal(t, 6, p1.BreakPointsConverted)
	assert.True(t, p1.CleanSet)
	assert.True(t, p1.StraightSets)
	assert.True(t, p1.NoDoubleFault)

	p2 := result.Player2Stats
	assert.Equal(t, 2, p2.SetsLost)
	assert.Equal(t, 12, p2.GamesLost)
	assert.False(t, p2.StraightSets)
	assert.True(t, p2.NoDoubleFault)

	// 30 + 6 + 12*2.5 + 2*6 + 6*0.75 + 4 + 6 + 2.5
	assert.InDelta(t, 95.0, result.Player1FantasyPoints, 1e-9)
	// 30 - 12*2 - 2*3 + 2.5
	assert.InDelta(t, 2.5, result.Player2FantasyPoints, 1e-9)
}

func TestSimulateMatchDominantBestOfFive(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	player1 := serveProfile("one", 1.0, 0.0, 1.0, 0.0, 0.0)
	player2 := serveProfile("two", 1.0, 0.0, 0.0, 0.0, 0.0)

	cfg := DefaultMatchConfig()
	cfg.BestOf = 5
	result, err := SimulateMatch(rng, NopSink{}, player1, player2, cfg)
	require.NoError(t, err)

	assert.Equal(t, types.SidePlayer1, result.Winner)
	assert.Len(t, result.Sets, 3)
	assert.Equal(t, 18, result.Player1Stats.GamesWon)

	// 30 + 5 + 18*2 + 3*5 + 9*0.5 + 2.5 + 5 + 5
	assert.InDelta(t, 103.0, result.Player1FantasyPoints, 1e-9)
	// The dominated side goes negative under the best-of-5 table.
	assert.InDelta(t, -1.3, result.Player2FantasyPoints, 1e-9)
}

func TestSimulateMatchAceBonusLatching(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	player1 := serveProfile("one", 1.0, 1.0, 0.0, 0.0, 0.0)
	player2 := serveProfile("two", 1.0, 0.0, 0.0, 0.0, 0.0)

	result, err := SimulateMatch(rng, NopSink{}, player1, player2, DefaultMatchConfig())
	require.NoError(t, err)

	p1 := result.Player1Stats
	assert.Equal(t, 24, p1.Aces, "four aces per service game, three service games per set")
	assert.True(t, p1.FifteenPlusAces)
	assert.False(t, p1.TenPlusAces, "the 15+ flag supersedes 10+")
}

func TestSimulateMatchDeterministicForSeed(t *testing.T) {
	player1 := serveProfile("one", 0.62, 0.07, 0.7, 0.04, 0.5)
	player2 := serveProfile("two", 0.6, 0.05, 0.68, 0.05, 0.48)

	first, err := SimulateMatch(rand.New(rand.NewSource(77)), NopSink{}, player1, player2, DefaultMatchConfig())
	require.NoError(t, err)
	second, err := SimulateMatch(rand.New(rand.NewSource(77)), NopSink{}, player1, player2, DefaultMatchConfig())
	require.NoError(t, err)

	assert.Equal(t, first.Winner, second.Winner)
	assert.Equal(t, first.Sets, second.Sets)
	assert.Equal(t, first.Player1FantasyPoints, second.Player1FantasyPoints)
	assert.Equal(t, first.Player2FantasyPoints, second.Player2FantasyPoints)
}

func TestSimulateMatchRequiredSets(t *testing.T) {
	player1 := serveProfile("one", 0.62, 0.07, 0.7, 0.04, 0.5)
	player2 := serveProfile("two", 0.6, 0.05, 0.68, 0.05, 0.48)

	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 200; i++ {
		result, err := SimulateMatch(rng, NopSink{}, player1, player2, DefaultMatchConfig())
		require.NoError(t, err)

		won := result.Player1Stats.SetsWon
		lost := result.Player1Stats.SetsLost
		if result.Winner == types.SidePlayer1 {
			assert.Equal(t, 2, won)
			assert.Less(t, lost, 2)
		} else {
			assert.Equal(t, 2, lost)
			assert.Less(t, won, 2)
		}
		assert.Equal(t, len(result.Sets), won+lost)
	}
}

func TestSimulateMatchInvalidConfig(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	player1 := serveProfile("one", 0.6, 0.05, 0.7, 0.05, 0.5)
	player2 := serveProfile("two", 0.6, 0.05, 0.7, 0.05, 0.5)

	_, err := SimulateMatch(rng, NopSink{}, player1, player2, MatchConfig{BestOf: 4, StartServer: types.SidePlayer1})
	assert.Error(t, err)

	_, err = SimulateMatch(rng, NopSink{}, player1, player2, MatchConfig{BestOf: 3, StartServer: "nobody"})
	assert.Error(t, err)
}
