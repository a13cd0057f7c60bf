package stats

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// PlayerRateStatsRecord is the database row backing a stats table entry.
type PlayerRateStatsRecord struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Player  string `gorm:"not null;uniqueIndex:idx_player_surface" json:"player"`
	Surface string `gorm:"not null;uniqueIndex:idx_player_surface" json:"surface"`
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

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the default gorm table name.
func (PlayerRateStatsRecord) TableName() string {
	return "player_rate_stats"
}

// Store is a database-backed stats source.
type Store struct {
	db *gorm.DB
}

// NewStore migrates the stats schema and returns a store.
func NewStore(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&PlayerRateStatsRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate player stats schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Lookup implements Source. The surface-specific row wins; the "All"
// row is the fallback; anything else is ErrNotFound.
func (s *Store) Lookup(player, surface string) (PlayerRateStats, error) {
	for _, surf := range []string{surface, SurfaceAll} {
		var rec PlayerRateStatsRecord
		err := s.db.
			Where("LOWER(player) = LOWER(?) AND LOWER(surface) = LOWER(?)", player, surf).
			First(&rec).Error
		if err == nil {
			return NewPlayerRateStats(rec.toStats())
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return PlayerRateStats{}, fmt.Errorf("failed to query player stats: %w", err)
		}
	}
	return PlayerRateStats{}, ErrNotFound
}

// Import validates and upserts a batch of stats rows.
func (s *Store) Import(rows []PlayerRateStats) error {
	for _, row := range rows {
		validated, err := NewPlayerRateStats(row)
		if err != nil {
			return err
		}
		rec := recordFromStats(validated)
		err = s.db.
			Where("player = ? AND surface = ?", rec.Player, rec.Surface).
			Assign(rec).
			FirstOrCreate(&PlayerRateStatsRecord{}).Error
		if err != nil {
			return fmt.Errorf("failed to import stats for %s/%s: %w", rec.Player, rec.Surface, err)
		}
	}
	return nil
}

func (r PlayerRateStatsRecord) toStats() PlayerRateStats {
	return PlayerRateStats{
		Player:                               r.Player,
		Surface:                              r.Surface,
		League:                               r.League,
		FirstServePercentage:                 r.FirstServePercentage,
		AcePercentage:                        r.AcePercentage,
		FirstServeWonPercentage:              r.FirstServeWonPercentage,
		SecondServeWonPercentage:             r.SecondServeWonPercentage,
		DoubleFaultPercentage:                r.DoubleFaultPercentage,
		ServiceGamesWonPercentage:            r.ServiceGamesWonPercentage,
		ReturnGamesWonPercentage:             r.ReturnGamesWonPercentage,
		PointsWonPercentage:                  r.PointsWonPercentage,
		GamesWonPercentage:                   r.GamesWonPercentage,
		SetsWonPercentage:                    r.SetsWonPercentage,
		TieBreaksWonPercentage:               r.TieBreaksWonPercentage,
		BreakPointsSavedPercentage:           r.BreakPointsSavedPercentage,
		BreakPointsConvertedPercentage:       r.BreakPointsConvertedPercentage,
		FirstServeReturnPointsWonPercentage:  r.FirstServeReturnPointsWonPercentage,
		SecondServeReturnPointsWonPercentage: r.SecondServeReturnPointsWonPercentage,
		ReturnPointsWonPercentage:            r.ReturnPointsWonPercentage,
		ServicePointsWonPercentage:           r.ServicePointsWonPercentage,
		BreakPointsFacedPerServiceGame:       r.BreakPointsFacedPerServiceGame,
		AceAgainstPercentage:                 r.AceAgainstPercentage,
		AcesAgainstPerReturnGame:             r.AcesAgainstPerReturnGame,
		BreakPointChancesPerReturnGame:       r.BreakPointChancesPerReturnGame,
	}
}

func recordFromStats(s PlayerRateStats) PlayerRateStatsRecord {
	return PlayerRateStatsRecord{
		Player:                               s.Player,
		Surface:                              s.Surface,
		League:                               s.League,
		FirstServePercentage:                 s.FirstServePercentage,
		AcePercentage:                        s.AcePercentage,
		FirstServeWonPercentage:              s.FirstServeWonPercentage,
		SecondServeWonPercentage:             s.SecondServeWonPercentage,
		DoubleFaultPercentage:                s.DoubleFaultPercentage,
		ServiceGamesWonPercentage:            s.ServiceGamesWonPercentage,
		ReturnGamesWonPercentage:             s.ReturnGamesWonPercentage,
		PointsWonPercentage:                  s.PointsWonPercentage,
		GamesWonPercentage:                   s.GamesWonPercentage,
		SetsWonPercentage:                    s.SetsWonPercentage,
		TieBreaksWonPercentage:               s.TieBreaksWonPercentage,
		BreakPointsSavedPercentage:           s.BreakPointsSavedPercentage,
		BreakPointsConvertedPercentage:       s.BreakPointsConvertedPercentage,
		FirstServeReturnPointsWonPercentage:  s.FirstServeReturnPointsWonPercentage,
		SecondServeReturnPointsWonPercentage: s.SecondServeReturnPointsWonPercentage,
		ReturnPointsWonPercentage:            s.ReturnPointsWonPercentage,
		ServicePointsWonPercentage:           s.ServicePointsWonPercentage,
		BreakPointsFacedPerServiceGame:       s.BreakPointsFacedPerServiceGame,
		AceAgainstPercentage:                 s.AceAgainstPercentage,
		AcesAgainstPerReturnGame:             s.AcesAgainstPerReturnGame,
		BreakPointChancesPerReturnGame:       s.BreakPointChancesPerReturnGame,
	}
}
