package types

import "time"

// Side identifies one of the two players in a match.
type Side string

const (
	SidePlayer1 Side = "player1"
	SidePlayer2 Side = "player2"
)

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == SidePlayer1 {
		return SidePlayer2
	}
	return SidePlayer1
}

// PointWinner identifies the winner of a single point relative to serve.
type PointWinner string

const (
	ServerWins   PointWinner = "server"
	ReturnerWins PointWinner = "returner"
)

// PointOutcome is the transient result of one point. Aces and double
// faults are mutually exclusive: an ace only arises on a landed first
// serve, a double fault only on a faulted one.
type PointOutcome struct {
	Winner      PointWinner `json:"winner"`
	Ace         bool        `json:"ace"`
	DoubleFault bool        `json:"double_fault"`
}

// GameResult is the outcome of a single service game.
type GameResult struct {
	Winner              Side `json:"winner"`
	Aces                int  `json:"aces"`
	DoubleFaults        int  `json:"double_faults"`
	BreakPointConverted bool `json:"break_point_converted"`
}

// SetResult is the outcome of a completed set, including the ordered
// sequence of game winners and the set-level tallies fed into the
// match counters.
type SetResult struct {
	Winner               Side   `json:"winner"`
	Games                []Side `json:"games"`
	CleanSet             bool   `json:"clean_set"`
	Aces                 int    `json:"aces"`
	DoubleFaults         int    `json:"double_faults"`
	BreakPointsConverted int    `json:"break_points_converted"`
	Player1Breaks        int    `json:"player1_breaks"`
	Player2Breaks        int    `json:"player2_breaks"`
}

// MatchStatCounters accumulates one side's counting statistics across a
// match. It is updated set by set and snapshotted for fantasy scoring
// once the match ends.
type MatchStatCounters struct {
	MatchPlayed          bool `json:"match_played"`
	AdvancedByWalkover   bool `json:"advanced_by_walkover"`
	Aces                 int  `json:"aces"`
	DoubleFaults         int  `json:"double_faults"`
	GamesWon             int  `json:"games_won"`
	GamesLost            int  `json:"games_lost"`
	SetsWon              int  `json:"sets_won"`
	SetsLost             int  `json:"sets_lost"`
	Breaks               int  `json:"breaks"`
	BreakPointsConverted int  `json:"break_points_converted"`
	CleanSet             bool `json:"clean_set"`
	StraightSets         bool `json:"straight_sets"`
	NoDoubleFault        bool `json:"no_double_fault"`
	TenPlusAces          bool `json:"ten_plus_aces"`
	FifteenPlusAces      bool `json:"fifteen_plus_aces"`
}

// MatchResult is the terminal artifact of one simulated match.
type MatchResult struct {
	Winner               Side              `json:"winner"`
	Sets                 []SetResult       `json:"sets"`
	Player1Stats         MatchStatCounters `json:"player1_stats"`
	Player2Stats         MatchStatCounters `json:"player2_stats"`
	Player1FantasyPoints float64           `json:"player1_fantasy_points"`
	Player2FantasyPoints float64           `json:"player2_fantasy_points"`
	Duration             time.Duration     `json:"duration"`
}

// ProgressUpdate represents a progress update for a batch simulation
type ProgressUpdate struct {
	Type        string    `json:"type"`
	Progress    float64   `json:"progress"` // 0.0 to 1.0
	Message     string    `json:"message"`
	CurrentStep string    `json:"current_step"`
	TotalSteps  int       `json:"total_steps"`
	Timestamp   time.Time `json:"timestamp"`
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error   string            `json:"error"`
	Code    string            `json:"code,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// SuccessResponse represents a standard success response
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
