package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableLookupDirect(t *testing.T) {
	table, err := NewTable([]PlayerRateStats{
		validStats("Carlos Alcaraz", "Clay"),
		validStats("Carlos Alcaraz", "All"),
		validStats("Jannik Sinner", "Hard"),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, table.Len())

	s, err := table.Lookup("Carlos Alcaraz", "Clay")
	require.NoError(t, err)
	assert.Equal(t, "Clay", s.Surface)
}

func TestTableLookupCaseInsensitive(t *testing.T) {
	table, err := NewTable([]PlayerRateStats{validStats("Carlos Alcaraz", "Clay")})
	require.NoError(t, err)

	s, err := table.Lookup("carlos alcaraz", "CLAY")
	require.NoError(t, err)
	assert.Equal(t, "Carlos Alcaraz", s.Player)
}

func TestTableLookupAllFallback(t *testing.T) {
	table, err := NewTable([]PlayerRateStats{validStats("Jannik Sinner", "All")})
	require.NoError(t, err)

	s, err := table.Lookup("Jannik Sinner", "Grass")
	require.NoError(t, err)
	assert.Equal(t, SurfaceAll, s.Surface)
}

func TestTableLookupNotFound(t *testing.T) {
	table, err := NewTable([]PlayerRateStats{validStats("Jannik Sinner", "Hard")})
	require.NoError(t, err)

	_, err = table.Lookup("Jannik Sinner", "Grass")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = table.Lookup("Unknown Player", "Hard")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTableDuplicateRowReplaces(t *testing.T) {
	first := validStats("Carlos Alcaraz", "Clay")
	first.AcePercentage = 0.05
	second := validStats("Carlos Alcaraz", "Clay")
	second.AcePercentage = 0.11

	table, err := NewTable([]PlayerRateStats{first, second})
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())

	s, err := table.Lookup("Carlos Alcaraz", "Clay")
	require.NoError(t, err)
	assert.Equal(t, 0.11, s.AcePercentage)
}

func TestTableRejectsInvalidRow(t *testing.T) {
	bad := validStats("Carlos Alcaraz", "Clay")
	bad.FirstServePercentage = 2.0

	_, err := NewTable([]PlayerRateStats{validStats("Jannik Sinner", "Hard"), bad})
	require.Error(t, err)

	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestTablePlayersAndSurfaces(t *testing.T) {
	table, err := NewTable([]PlayerRateStats{
		validStats("Carlos Alcaraz", "Clay"),
		validStats("Carlos Alcaraz", "Hard"),
		validStats("Jannik Sinner", "Hard"),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Carlos Alcaraz", "Jannik Sinner"}, table.Players())
	assert.Equal(t, []string{"Clay", "Hard"}, table.Surfaces())
	assert.Len(t, table.Rows(), 3)
}
