// Package simulator replays one matchup many times in parallel and aggregates
// the results.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/gridiron/internal/football"
	"github.com/lox/gridiron/internal/gameid"
	"github.com/lox/gridiron/internal/randutil"
	"github.com/lox/gridiron/internal/statistics"
)

// ErrTimeout is returned when a batch does not finish within Config.Timeout.
var ErrTimeout = errors.New("batch timed out")

// Team is one side of the matchup.
type Team struct {
	Name    string
	QBSkill float64
}

// Config holds configuration for running a batch
type Config struct {
	Games   int
	Seed    int64 // game i is played with Seed+i
	Workers int   // defaults to runtime.NumCPU()
	Timeout time.Duration
	Teams   [2]Team
	Logger  *log.Logger
	Clock   quartz.Clock

	// Progress is called after every finished game. Calls are serialised.
	Progress func(done, total int)
}

// Report is the outcome of a batch.
type Report struct {
	Games    int
	Seed     int64
	Teams    [2]Team
	Stats    *statistics.Statistics
	Duration time.Duration
}

// Simulator runs batches of games
type Simulator struct {
	config Config
	logger *log.Logger
	clock  quartz.Clock
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}
	logger := config.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	clock := config.Clock
	if clock == nil {
		clock = quartz.NewReal()
	}
	for side, team := range DefaultTeams() {
		if config.Teams[side].Name == "" {
			config.Teams[side].Name = team.Name
		}
	}
	return &Simulator{config: config, logger: logger.WithPrefix("batch"), clock: clock}
}

// Run plays every game and returns the aggregate. Games are independent, so
// they run on up to Workers goroutines; the aggregate is built in seed order
// and does not depend on scheduling.
func (s *Simulator) Run(ctx context.Context) (*Report, error) {
	cfg := s.config
	if cfg.Games < 1 {
		return nil, fmt.Errorf("games must be at least 1, got %d", cfg.Games)
	}

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	if cfg.Timeout > 0 {
		timer := s.clock.AfterFunc(cfg.Timeout, func() {
			cancel(ErrTimeout)
		}, "simulator", "timeout")
		defer timer.Stop()
	}

	start := s.clock.Now("simulator", "start")
	s.logger.Info("Starting batch", "games", cfg.Games, "workers", cfg.Workers, "seed", cfg.Seed)

	results := make([]statistics.GameResult, cfg.Games)
	var (
		mu   sync.Mutex
		done int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)

	for i := 0; i < cfg.Games; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			seed := cfg.Seed + int64(i)
			result, err := s.playGame(seed)
			if err != nil {
				return err
			}
			results[i] = statistics.FromResult(seed, result)

			mu.Lock()
			done++
			if cfg.Progress != nil {
				cfg.Progress(done, cfg.Games)
			}
			mu.Unlock()
			return nil
		})
	}

	err := g.Wait()
	if cause := context.Cause(ctx); cause != nil {
		err = cause
	}
	if err != nil {
		s.logger.Warn("Batch stopped", "done", done, "games", cfg.Games, "error", err)
		return nil, fmt.Errorf("batch stopped after %d of %d games: %w", done, cfg.Games, err)
	}

	stats := &statistics.Statistics{}
	for _, r := range results {
		stats.Add(r)
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	elapsed := s.clock.Since(start, "simulator", "elapsed")
	s.logger.Info("Batch complete",
		"games", cfg.Games,
		"duration", elapsed,
		"winsA", stats.Wins[football.TeamA],
		"winsB", stats.Wins[football.TeamB],
		"ties", stats.Ties)

	return &Report{
		Games:    cfg.Games,
		Seed:     cfg.Seed,
		Teams:    cfg.Teams,
		Stats:    stats,
		Duration: elapsed,
	}, nil
}

// playGame plays a single game. The game id is drawn from its own stream so
// it never disturbs the game's draws.
func (s *Simulator) playGame(seed int64) (football.Result, error) {
	id, err := gameid.FromReader(randutil.NewReader(randutil.New(^seed)))
	if err != nil {
		return football.Result{}, err
	}

	teams := s.config.Teams
	result := football.Simulate(randutil.New(seed),
		football.WithLogger(s.logger),
		football.WithGameID(id),
		football.WithTeamNames(teams[football.TeamA].Name, teams[football.TeamB].Name),
		football.WithQBSkill(football.TeamA, teams[football.TeamA].QBSkill),
		football.WithQBSkill(football.TeamB, teams[football.TeamB].QBSkill),
	)
	return result, nil
}

// DefaultTeams is the matchup used when no rosters are configured.
func DefaultTeams() [2]Team {
	return [2]Team{
		{Name: "Team A", QBSkill: football.DefaultQBSkill},
		{Name: "Team B", QBSkill: football.DefaultQBSkill},
	}
}
