package stats

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when no stats row exists for a player at the
// requested surface or at the "All" fallback.
var ErrNotFound = errors.New("player stats not found")

// Source resolves player rate statistics by name and surface. Lookups
// are case-insensitive and fall back to the "All" surface when no
// surface-specific row exists.
type Source interface {
	Lookup(player, surface string) (PlayerRateStats, error)
}

type tableKey struct {
	player  string
	surface string
}

// Table is an in-memory stats table keyed by (player, surface).
type Table struct {
	rows  []PlayerRateStats
	index map[tableKey]int
}

// NewTable builds a table from validated rows. Rows failing validation
// reject the whole table; a later duplicate (player, surface) row
// silently replaces an earlier one, matching first-row-wins source data
// that has been de-duplicated upstream.
func NewTable(rows []PlayerRateStats) (*Table, error) {
	t := &Table{
		rows:  make([]PlayerRateStats, 0, len(rows)),
		index: make(map[tableKey]int, len(rows)),
	}
	for _, row := range rows {
		validated, err := NewPlayerRateStats(row)
		if err != nil {
			return nil, err
		}
		key := tableKey{
			player:  strings.ToLower(validated.Player),
			surface: strings.ToLower(validated.Surface),
		}
		if i, ok := t.index[key]; ok {
			t.rows[i] = validated
			continue
		}
		t.index[key] = len(t.rows)
		t.rows = append(t.rows, validated)
	}
	return t, nil
}

// Lookup finds the stats row for a player at a surface, falling back to
// the "All" surface row. Returns ErrNotFound when neither exists.
func (t *Table) Lookup(player, surface string) (PlayerRateStats, error) {
	p := strings.ToLower(player)
	if i, ok := t.index[tableKey{player: p, surface: strings.ToLower(surface)}]; ok {
		return t.rows[i], nil
	}
	if i, ok := t.index[tableKey{player: p, surface: strings.ToLower(SurfaceAll)}]; ok {
		return t.rows[i], nil
	}
	return PlayerRateStats{}, ErrNotFound
}

// Rows returns a copy of the table rows in insertion order.
func (t *Table) Rows() []PlayerRateStats {
	return append([]PlayerRateStats(nil), t.rows...)
}

// Len returns the number of rows in the table.
func (t *Table) Len() int {
	return len(t.rows)
}

// Players returns the distinct player names in insertion order.
func (t *Table) Players() []string {
	seen := make(map[string]bool, len(t.rows))
	players := make([]string, 0, len(t.rows))
	for _, row := range t.rows {
		key := strings.ToLower(row.Player)
		if !seen[key] {
			seen[key] = true
			players = append(players, row.Player)
		}
	}
	return players
}

// Surfaces returns the distinct surfaces in insertion order.
func (t *Table) Surfaces() []string {
	seen := make(map[string]bool)
	surfaces := make([]string, 0, 4)
	for _, row := range t.rows {
		key := strings.ToLower(row.Surface)
		if !seen[key] {
			seen[key] = true
			surfaces = append(surfaces, row.Surface)
		}
	}
	return surfaces
}
