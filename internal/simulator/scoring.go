package simulator

import "github.com/stitts-dev/tennis-sim/internal/types"

// Format-independent scoring values.
const (
	matchPlayedPoints      = 30.0
	walkoverAdvancePoints  = 30.0
	doubleFaultPenalty     = 1.0
	tenPlusAcesBonusPoints = 2.0
	fifteenPlusAcesBonus   = 2.0
)

// scoringTable holds the format-dependent rows of the fantasy scoring
// system.
type scoringTable struct {
	matchWon           float64
	gameWon            float64
	gameLost           float64
	setWon             float64
	setLost            float64
	ace                float64
	breakConverted     float64
	cleanSetBonus      float64
	straightSetsBonus  float64
	noDoubleFaultBonus float64
}

var bestOf3Scoring = scoringTable{
	matchWon:           6,
	gameWon:            2.5,
	gameLost:           2,
	setWon:             6,
	setLost:            3,
	ace:                0.4,
	breakConverted:     0.75,
	cleanSetBonus:      4,
	straightSetsBonus:  6,
	noDoubleFaultBonus: 2.5,
}

var bestOf5Scoring = scoringTable{
	matchWon:           5,
	gameWon:            2,
	gameLost:           1.6,
	setWon:             5,
	setLost:            2.5,
	ace:                0.25,
	breakConverted:     0.5,
	cleanSetBonus:      2.5,
	straightSetsBonus:  5,
	noDoubleFaultBonus: 5,
}

// ScoreFantasy maps one side's accumulated match statistics to fantasy
// points for the given format. It is a pure function: no randomness, no
// mutation, and no clamping, so a loser buried in double faults can go
// negative. The 10+ and 15+ ace bonuses are independent rows and both
// apply when both flags are set.
func ScoreFantasy(counters types.MatchStatCounters, matchWon bool, bestOf int) float64 {
	table := bestOf3Scoring
	if bestOf == 5 {
		table = bestOf5Scoring
	}

	points := 0.0

	if counters.MatchPlayed {
		points += matchPlayedPoints
	}
	if counters.AdvancedByWalkover {
		points += walkoverAdvancePoints
	}
	if matchWon {
		points += table.matchWon
	}

	points += float64(counters.GamesWon) * table.gameWon
	points -= float64(counters.GamesLost) * table.gameLost

	points += float64(counters.SetsWon) * table.setWon
	points -= float64(counters.SetsLost) * table.setLost

	points += float64(counters.Aces) * table.ace
	points -= float64(counters.DoubleFaults) * doubleFaultPenalty
	points += float64(counters.Breaks) * table.breakConverted

	if counters.CleanSet {
		points += table.cleanSetBonus
	}
	if counters.StraightSets {
		points += table.straightSetsBonus
	}
	if counters.NoDoubleFault {
		points += table.noDoubleFaultBonus
	}
	if counters.TenPlusAces {
		points += tenPlusAcesBonusPoints
	}
	if counters.FifteenPlusAces {
		points += fifteenPlusAcesBonus
	}

	return points
}
