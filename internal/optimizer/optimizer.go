package optimizer

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
)

// LineupPlayer is one selectable entry in the player pool. Projected
// points typically come from the mean of a simulated batch.
type LineupPlayer struct {
	Name            string  `json:"name"`
	Salary          int     `json:"salary"`
	ProjectedPoints float64 `json:"projected_points"`
}

// Lineup is a valid roster under the contest constraints.
type Lineup struct {
	Players         []LineupPlayer `json:"players"`
	TotalSalary     int            `json:"total_salary"`
	ProjectedPoints float64        `json:"projected_points"`
}

// Config holds the contest constraints.
type Config struct {
	SalaryCap  int `json:"salary_cap"`
	RosterSize int `json:"roster_size"`
}

// DefaultConfig returns the standard contest constraints.
func DefaultConfig() Config {
	return Config{SalaryCap: 50000, RosterSize: 6}
}

// Optimizer finds the highest-projected lineup of exactly RosterSize
// players whose combined salary fits the cap. The search is exact
// branch-and-bound over the pool sorted by value, pruned by a running
// best-possible bound.
type Optimizer struct {
	cfg    Config
	logger *logrus.Logger
}

func NewOptimizer(cfg Config, logger *logrus.Logger) *Optimizer {
	if cfg.RosterSize <= 0 {
		cfg.RosterSize = DefaultConfig().RosterSize
	}
	if cfg.SalaryCap <= 0 {
		cfg.SalaryCap = DefaultConfig().SalaryCap
	}
	return &Optimizer{cfg: cfg, logger: logger}
}

// Optimize returns the best lineup buildable from the pool, or an
// error when no full roster fits under the cap.
func (o *Optimizer) Optimize(pool []LineupPlayer) (*Lineup, error) {
	if len(pool) < o.cfg.RosterSize {
		return nil, fmt.Errorf("player pool has %d players, need %d", len(pool), o.cfg.RosterSize)
	}
	for _, p := range pool {
		if p.Salary < 0 {
			return nil, fmt.Errorf("player %s has negative salary %d", p.Name, p.Salary)
		}
	}

	// Sorting by projected points makes the greedy upper bound tight,
	// which is what lets the search prune most of the tree.
	sorted := append([]LineupPlayer(nil), pool...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ProjectedPoints > sorted[j].ProjectedPoints
	})

	search := &lineupSearch{
		pool:       sorted,
		salaryCap:  o.cfg.SalaryCap,
		rosterSize: o.cfg.RosterSize,
		bestPoints: -1,
	}
	search.run(0, make([]int, 0, o.cfg.RosterSize), 0, 0)

	if search.best == nil {
		return nil, fmt.Errorf("no lineup of %d players fits under salary cap %d", o.cfg.RosterSize, o.cfg.SalaryCap)
	}

	lineup := &Lineup{Players: make([]LineupPlayer, 0, o.cfg.RosterSize)}
	for _, idx := range search.best {
		player := sorted[idx]
		lineup.Players = append(lineup.Players, player)
		lineup.TotalSalary += player.Salary
		lineup.ProjectedPoints += player.ProjectedPoints
	}

	if o.logger != nil {
		o.logger.WithFields(logrus.Fields{
			"pool_size":        len(pool),
			"total_salary":     lineup.TotalSalary,
			"projected_points": lineup.ProjectedPoints,
			"nodes_visited":    search.nodes,
		}).Debug("Lineup optimization completed")
	}
	return lineup, nil
}

type lineupSearch struct {
	pool       []LineupPlayer
	salaryCap  int
	rosterSize int

	best       []int
	bestPoints float64
	nodes      int
}

func (s *lineupSearch) run(start int, picked []int, salary int, points float64) {
	s.nodes++

	if len(picked) == s.rosterSize {
		if points > s.bestPoints {
			s.bestPoints = points
			s.best = append([]int(nil), picked...)
		}
		return
	}

	remaining := s.rosterSize - len(picked)
	if len(s.pool)-start < remaining {
		return
	}
	// Optimistic bound: fill the remaining slots with the next-best
	// players regardless of salary.
	bound := points
	for i := start; i < start+remaining; i++ {
		bound += s.pool[i].ProjectedPoints
	}
	if bound <= s.bestPoints {
		return
	}

	for i := start; i < len(s.pool); i++ {
		if salary+s.pool[i].Salary > s.salaryCap {
			continue
		}
		s.run(i+1, append(picked, i), salary+s.pool[i].Salary, points+s.pool[i].ProjectedPoints)
	}
}
