// Package statistics aggregates the results of repeated games.
package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/gridiron/internal/football"
)

// BlowoutMargin is the point margin at which a game counts as a blowout.
const BlowoutMargin = 21

// DriveEndCounts counts possessions by how they ended.
type DriveEndCounts [football.EndExpired + 1]int

// GameResult is the part of a finished game the aggregate needs.
type GameResult struct {
	Seed      int64                 // RNG seed for this game (for replay)
	Score     [2]int                // final score, team A first
	Stats     [2]football.TeamStats // per-team counters
	DriveEnds DriveEndCounts
}

// FromResult converts a finished game.
func FromResult(seed int64, r football.Result) GameResult {
	g := GameResult{Seed: seed, Score: r.Score, Stats: r.Stats}
	for _, d := range r.Drives {
		g.DriveEnds[d.End]++
	}
	return g
}

// Margin is team A's points minus team B's.
func (g GameResult) Margin() int {
	return g.Score[football.TeamA] - g.Score[football.TeamB]
}

// Statistics tracks the margin distribution and per-team totals over a batch
// of games. Margins are always from team A's point of view.
type Statistics struct {
	Games   int
	SumM    float64
	SumM2   float64   // Sum of squares for variance calculation
	Margins []float64 // Store all margins for median/percentile calculation

	Wins      [2]int
	Ties      int
	Points    [2]int
	Totals    [2]football.TeamStats
	DriveEnds DriveEndCounts
	Blowouts  int

	// Extremes, with the seed that produced them for replay
	MaxMargin     int
	MaxMarginSeed int64
	MinMargin     int
	MinMarginSeed int64
}

// Add incorporates a new game result into the statistics
func (s *Statistics) Add(g GameResult) {
	m := g.Margin()
	fm := float64(m)

	if s.Games == 0 || m > s.MaxMargin {
		s.MaxMargin, s.MaxMarginSeed = m, g.Seed
	}
	if s.Games == 0 || m < s.MinMargin {
		s.MinMargin, s.MinMarginSeed = m, g.Seed
	}

	s.Games++
	s.SumM += fm
	s.SumM2 += fm * fm
	s.Margins = append(s.Margins, fm)

	switch {
	case m > 0:
		s.Wins[football.TeamA]++
	case m < 0:
		s.Wins[football.TeamB]++
	default:
		s.Ties++
	}
	if m >= BlowoutMargin || -m >= BlowoutMargin {
		s.Blowouts++
	}

	for _, side := range []football.Side{football.TeamA, football.TeamB} {
		s.Points[side] += g.Score[side]
		addStats(&s.Totals[side], g.Stats[side])
	}
	for end, n := range g.DriveEnds {
		s.DriveEnds[end] += n
	}
}

func addStats(dst *football.TeamStats, src football.TeamStats) {
	dst.PassAttempts += src.PassAttempts
	dst.PassesComplete += src.PassesComplete
	dst.YardsPassing += src.YardsPassing
	dst.PassingTDs += src.PassingTDs
	dst.Interceptions += src.Interceptions
	dst.SacksTaken += src.SacksTaken
	dst.SackYards += src.SackYards
	dst.RunAttempts += src.RunAttempts
	dst.YardsRunning += src.YardsRunning
	dst.RunningTDs += src.RunningTDs
	dst.SacksGiven += src.SacksGiven
	dst.FieldGoalsAttempted += src.FieldGoalsAttempted
	dst.FieldGoalsMade += src.FieldGoalsMade
	dst.Punts += src.Punts
	dst.PuntYards += src.PuntYards
}

// Mean returns the mean margin per game
func (s *Statistics) Mean() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.SumM / float64(s.Games)
}

// Variance returns the sample variance of the margin
func (s *Statistics) Variance() float64 {
	if s.Games < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumM2 - float64(s.Games)*mean*mean) / float64(s.Games-1)
}

// StdDev returns the sample standard deviation of the margin
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(max(0, s.Variance()))
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Games))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median margin
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the margin at the given percentile (0.0 to 1.0), with
// linear interpolation between neighbouring games.
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Margins) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Margins))
	copy(sorted, s.Margins)
	sort.Float64s(sorted)

	index := min(max(p, 0), 1) * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// WinRate is the share of games side won.
func (s *Statistics) WinRate(side football.Side) float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Wins[side]) / float64(s.Games)
}

// MeanPoints is side's average score.
func (s *Statistics) MeanPoints(side football.Side) float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Points[side]) / float64(s.Games)
}

// MeanStat is side's per-game average for a named counter.
func (s *Statistics) MeanStat(side football.Side, name string) (float64, bool) {
	total, ok := s.Totals[side].Get(name)
	if !ok || s.Games == 0 {
		return 0, ok
	}
	return float64(total) / float64(s.Games), true
}

// DrivesPerGame is the average number of possessions per game.
func (s *Statistics) DrivesPerGame() float64 {
	if s.Games == 0 {
		return 0
	}
	total := 0
	for _, n := range s.DriveEnds {
		total += n
	}
	return float64(total) / float64(s.Games)
}

// Validate performs consistency checks over the aggregate
func (s *Statistics) Validate() error {
	if s.Games <= 0 {
		return fmt.Errorf("invalid games count: %d", s.Games)
	}
	if len(s.Margins) != s.Games {
		return fmt.Errorf("margins length (%d) does not match games count (%d)", len(s.Margins), s.Games)
	}
	if got := s.Wins[football.TeamA] + s.Wins[football.TeamB] + s.Ties; got != s.Games {
		return fmt.Errorf("wins and ties (%d) do not add up to games (%d)", got, s.Games)
	}
	if diff := float64(s.Points[football.TeamA] - s.Points[football.TeamB]); math.Abs(diff-s.SumM) > 1e-6 {
		return fmt.Errorf("margin ledger mismatch: points diff=%.0f, sum of margins=%.0f", diff, s.SumM)
	}
	for _, side := range []football.Side{football.TeamA, football.TeamB} {
		t := s.Totals[side]
		if t.PassesComplete > t.PassAttempts {
			return fmt.Errorf("team %s: completions (%d) exceed attempts (%d)", side, t.PassesComplete, t.PassAttempts)
		}
		if t.FieldGoalsMade > t.FieldGoalsAttempted {
			return fmt.Errorf("team %s: field goals made (%d) exceed attempts (%d)", side, t.FieldGoalsMade, t.FieldGoalsAttempted)
		}
		if t.SacksTaken != s.Totals[side.Opponent()].SacksGiven {
			return fmt.Errorf("team %s: sacks taken (%d) do not match opponent sacks given (%d)", side, t.SacksTaken, s.Totals[side.Opponent()].SacksGiven)
		}
	}
	return nil
}
