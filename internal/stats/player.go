package stats

import (
	"fmt"
	"strings"
)

// SurfaceAll is the sentinel surface used when no surface-specific row
// exists for a player.
const SurfaceAll = "All"

// PlayerRateStats holds a player's percentage-based serve/return
// statistics for one surface. It is validated once at construction and
// never mutated afterwards; the simulator only reads it to parametrize
// random draws.
type PlayerRateStats struct {
	Player  string `json:"player"`
	Surface string `json:"surface"`
	League  string `json:"league"`

	FirstServePercentage                 float64 `json:"first_serve_percentage"`
	AcePercentage                        float64 `json:"ace_percentage"`
	FirstServeWonPercentage              float64 `json:"first_serve_won_percentage"`
	SecondServeWonPercentage             float64 `json:"second_serve_won_percentage"`
	DoubleFaultPercentage                float64 `json:"double_fault_percentage"`
	ServiceGamesWonPercentage            float64 `json:"service_games_won_percentage"`
	ReturnGamesWonPercentage             float64 `json:"return_games_won_percentage"`
	PointsWonPercentage                  float64 `json:"points_won_percentage"`
	GamesWonPercentage                   float64 `json:"games_won_percentage"`
	SetsWonPercentage                    float64 `json:"sets_won_percentage"`
	TieBreaksWonPercentage               float64 `json:"tie_breaks_won_percentage"`
	BreakPointsSavedPercentage           float64 `json:"break_points_saved_percentage"`
	BreakPointsConvertedPercentage       float64 `json:"break_points_converted_percentage"`
	FirstServeReturnPointsWonPercentage  float64 `json:"first_serve_return_points_won_percentage"`
	SecondServeReturnPointsWonPercentage float64 `json:"second_serve_return_points_won_percentage"`
	ReturnPointsWonPercentage            float64 `json:"return_points_won_percentage"`
	ServicePointsWonPercentage           float64 `json:"service_points_won_percentage"`
	BreakPointsFacedPerServiceGame       float64 `json:"break_points_faced_per_service_game"`
	AceAgainstPercentage                 float64 `json:"ace_against_percentage"`
	AcesAgainstPerReturnGame             float64 `json:"aces_against_per_return_game"`
	BreakPointChancesPerReturnGame       float64 `json:"break_point_chances_per_return_game"`
}

// rateField pairs a rate-stat field name with an accessor, in the order
// the columns appear in the source data.
type rateField struct {
	name  string
	value func(*PlayerRateStats) float64
}

func rateFields() []rateField {
	return []rateField{
		{"FirstServePercentage", func(s *PlayerRateStats) float64 { return s.FirstServePercentage }},
		{"AcePercentage", func(s *PlayerRateStats) float64 { return s.AcePercentage }},
		{"FirstServeWonPercentage", func(s *PlayerRateStats) float64 { return s.FirstServeWonPercentage }},
		{"SecondServeWonPercentage", func(s *PlayerRateStats) float64 { return s.SecondServeWonPercentage }},
		{"DoubleFaultPercentage", func(s *PlayerRateStats) float64 { return s.DoubleFaultPercentage }},
		{"ServiceGamesWonPercentage", func(s *PlayerRateStats) float64 { return s.ServiceGamesWonPercentage }},
		{"ReturnGamesWonPercentage", func(s *PlayerRateStats) float64 { return s.ReturnGamesWonPercentage }},
		{"PointsWonPercentage", func(s *PlayerRateStats) float64 { return s.PointsWonPercentage }},
		{"GamesWonPercentage", func(s *PlayerRateStats) float64 { return s.GamesWonPercentage }},
		{"SetsWonPercentage", func(s *PlayerRateStats) float64 { return s.SetsWonPercentage }},
		{"TieBreaksWonPercentage", func(s *PlayerRateStats) float64 { return s.TieBreaksWonPercentage }},
		{"BreakPointsSavedPercentage", func(s *PlayerRateStats) float64 { return s.BreakPointsSavedPercentage }},
		{"BreakPointsConvertedPercentage", func(s *PlayerRateStats) float64 { return s.BreakPointsConvertedPercentage }},
		{"FirstServeReturnPointsWonPercentage", func(s *PlayerRateStats) float64 { return s.FirstServeReturnPointsWonPercentage }},
		{"SecondServeReturnPointsWonPercentage", func(s *PlayerRateStats) float64 { return s.SecondServeReturnPointsWonPercentage }},
		{"ReturnPointsWonPercentage", func(s *PlayerRateStats) float64 { return s.ReturnPointsWonPercentage }},
		{"ServicePointsWonPercentage", func(s *PlayerRateStats) float64 { return s.ServicePointsWonPercentage }},
		{"BreakPointsFacedPerServiceGame", func(s *PlayerRateStats) float64 { return s.BreakPointsFacedPerServiceGame }},
		{"AceAgainstPercentage", func(s *PlayerRateStats) float64 { return s.AceAgainstPercentage }},
		{"AcesAgainstPerReturnGame", func(s *PlayerRateStats) float64 { return s.AcesAgainstPerReturnGame }},
		{"BreakPointChancesPerReturnGame", func(s *PlayerRateStats) float64 { return s.BreakPointChancesPerReturnGame }},
	}
}

// FieldError describes a single rate-stat field that failed validation.
type FieldError struct {
	Field string  `json:"field"`
	Value float64 `json:"value"`
}

// ValidationError lists every offending field of a rejected stats record.
type ValidationError struct {
	Player string       `json:"player"`
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = fmt.Sprintf("%s=%g", f.Field, f.Value)
	}
	return fmt.Sprintf("invalid rate stats for player %q: %s (each value must be between 0 and 1)",
		e.Player, strings.Join(names, ", "))
}

// NewPlayerRateStats validates a stats record and returns an immutable
// copy. Every rate field must lie in [0,1]; a violation returns a
// ValidationError naming all offending fields, and no partially-valid
// record is ever produced.
func NewPlayerRateStats(s PlayerRateStats) (PlayerRateStats, error) {
	if err := s.Validate(); err != nil {
		return PlayerRateStats{}, err
	}
	return s, nil
}

// Validate checks the identity and rate-field invariants.
func (s *PlayerRateStats) Validate() error {
	if s.Player == "" {
		return fmt.Errorf("missing required field: Player")
	}
	if s.Surface == "" {
		return fmt.Errorf("missing required field: Surface for player %q", s.Player)
	}

	var bad []FieldError
	for _, f := range rateFields() {
		v := f.value(s)
		if v < 0.0 || v > 1.0 {
			bad = append(bad, FieldError{Field: f.name, Value: v})
		}
	}
	if len(bad) > 0 {
		return &ValidationError{Player: s.Player, Fields: bad}
	}
	return nil
}
