package simulator

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/tennis-sim/internal/stats"
	"github.com/stitts-dev/tennis-sim/internal/types"
)

func TestRunMatchSimulation(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	result, err := RunMatchSimulation(testSource(), rng, NopSink{},
		"Carlos Alcaraz", "Jannik Sinner", "Hard", 3)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Contains(t, []types.Side{types.SidePlayer1, types.SidePlayer2}, result.Winner)
	assert.NotEmpty(t, result.Sets)
	assert.True(t, result.Player1Stats.MatchPlayed)
	assert.True(t, result.Player2Stats.MatchPlayed)
}

func TestRunMatchSimulationUnknownPlayer(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	result, err := RunMatchSimulation(testSource(), rng, NopSink{},
		"Unknown Player", "Jannik Sinner", "Hard", 3)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, stats.ErrNotFound)
}

func TestRunMatchSimulationInvalidFormat(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	_, err := RunMatchSimulation(testSource(), rng, NopSink{},
		"Carlos Alcaraz", "Jannik Sinner", "Hard", 4)
	assert.Error(t, err)
}
