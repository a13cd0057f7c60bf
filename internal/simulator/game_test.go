package simulator

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stitts-dev/tennis-sim/internal/types"
)

func TestPlayGamePerfectServerWinsToLove(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	server := serveProfile("server", 1.0, 1.0, 0.0, 0.0, 0.0)
	returner := serveProfile("returner", 0.6, 0.1, 0.7, 0.05, 0.5)

	game := PlayGame(rng, NopSink{}, types.SidePlayer1, server, returner)

	assert.Equal(t, types.SidePlayer1, game.Winner)
	assert.Equal(t, 4, game.Aces)
	assert.Equal(t, 0, game.DoubleFaults)
	assert.False(t, game.BreakPointConverted)
}

func TestPlayGamePerfectReturnerBreaks(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	server := serveProfile("server", 1.0, 0.0, 0.0, 0.0, 0.0)
	returner := serveProfile("returner", 0.6, 0.1, 0.7, 0.05, 0.5)

	game := PlayGame(rng, NopSink{}, types.SidePlayer1, server, returner)

	assert.Equal(t, types.SidePlayer2, game.Winner)
	assert.Equal(t, 0, game.Aces)
	assert.True(t, game.BreakPointConverted, "a returner win is always a converted break point")
}

func TestPlayGameAllDoubleFaults(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	server := serveProfile("server", 0.0, 0.0, 0.0, 1.0, 0.0)
	returner := serveProfile("returner", 0.6, 0.1, 0.7, 0.05, 0.5)

	game := PlayGame(rng, NopSink{}, types.SidePlayer2, server, returner)

	assert.Equal(t, types.SidePlayer1, game.Winner)
	assert.Equal(t, 4, game.DoubleFaults)
	assert.True(t, game.BreakPointConverted)
}

func TestPlayGameTerminatesWithBalancedStats(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	server := serveProfile("server", 0.6, 0.05, 0.5, 0.05, 0.5)
	returner := serveProfile("returner", 0.6, 0.05, 0.5, 0.05, 0.5)

	for i := 0; i < 2000; i++ {
		game := PlayGame(rng, NopSink{}, types.SidePlayer1, server, returner)
		assert.Contains(t, []types.Side{types.SidePlayer1, types.SidePlayer2}, game.Winner)
		if game.Winner == types.SidePlayer2 {
			assert.True(t, game.BreakPointConverted)
		}
	}
}
