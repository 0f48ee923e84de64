package simulator

import (
	"bytes"
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/gridiron/internal/football"
	"github.com/lox/gridiron/internal/randutil"
	"github.com/lox/gridiron/internal/statistics"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.WarnLevel})
}

func TestNew_Defaults(t *testing.T) {
	sim := New(Config{Games: 3})
	assert.Positive(t, sim.config.Workers)
	assert.NotNil(t, sim.clock)
	assert.Equal(t, "Team A", sim.config.Teams[football.TeamA].Name)
	assert.Equal(t, "Team B", sim.config.Teams[football.TeamB].Name)
}

func TestRun(t *testing.T) {
	mClock := quartz.NewMock(t)
	var calls []int
	sim := New(Config{
		Games:   20,
		Seed:    100,
		Workers: 4,
		Timeout: time.Minute,
		Teams:   DefaultTeams(),
		Logger:  quietLogger(),
		Clock:   mClock,
		Progress: func(done, total int) {
			assert.Equal(t, 20, total)
			calls = append(calls, done)
		},
	})

	report, err := sim.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 20, report.Games)
	assert.Equal(t, int64(100), report.Seed)
	assert.Equal(t, 20, report.Stats.Games)
	require.NoError(t, report.Stats.Validate())
	// the mock clock never moved
	assert.Zero(t, report.Duration)

	require.Len(t, calls, 20)
	for i, done := range calls {
		assert.Equal(t, i+1, done)
	}
}

func TestRun_MatchesSequentialGames(t *testing.T) {
	const games, seed = 12, int64(40)
	report, err := New(Config{Games: games, Seed: seed, Workers: 3, Teams: DefaultTeams(), Clock: quartz.NewMock(t)}).Run(context.Background())
	require.NoError(t, err)

	expected := &statistics.Statistics{}
	for i := int64(0); i < games; i++ {
		r := football.Simulate(randutil.New(seed + i))
		expected.Add(statistics.FromResult(seed+i, r))
	}
	assert.Equal(t, expected.Margins, report.Stats.Margins)
	assert.Equal(t, expected.Totals, report.Stats.Totals)
	assert.Equal(t, expected.DriveEnds, report.Stats.DriveEnds)
}

func TestRun_WorkerCountDoesNotChangeResult(t *testing.T) {
	run := func(workers int) *statistics.Statistics {
		report, err := New(Config{Games: 16, Seed: 9, Workers: workers, Clock: quartz.NewMock(t)}).Run(context.Background())
		require.NoError(t, err)
		return report.Stats
	}
	assert.Equal(t, run(1), run(8))
}

func TestRun_QBSkillIsApplied(t *testing.T) {
	teams := DefaultTeams()
	teams[football.TeamA].QBSkill = football.MaxQBSkill
	teams[football.TeamB].QBSkill = 0

	report, err := New(Config{Games: 6, Seed: 1, Teams: teams, Clock: quartz.NewMock(t)}).Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, report.Stats.Totals[football.TeamA].PassesComplete)
	assert.Zero(t, report.Stats.Totals[football.TeamB].Interceptions)
}

func TestRun_Timeout(t *testing.T) {
	mClock := quartz.NewMock(t)
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once

	var buf bytes.Buffer
	sim := New(Config{
		Games:   50,
		Seed:    1,
		Workers: 1,
		Timeout: 30 * time.Second,
		Clock:   mClock,
		Logger:  log.NewWithOptions(&buf, log.Options{Level: log.WarnLevel}),
		Progress: func(done, total int) {
			once.Do(func() {
				close(started)
				<-release
			})
		},
	})

	errCh := make(chan error, 1)
	go func() {
		_, err := sim.Run(context.Background())
		errCh <- err
	}()

	<-started
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	mClock.Advance(30 * time.Second).MustWait(ctx)
	close(release)

	select {
	case err := <-errCh:
		require.ErrorIs(t, err, ErrTimeout)
		assert.Contains(t, err.Error(), "of 50 games")
	case <-ctx.Done():
		t.Fatal("batch did not stop after timeout")
	}
	assert.Contains(t, buf.String(), "Batch stopped")
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(Config{Games: 5, Clock: quartz.NewMock(t)}).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_RequiresGames(t *testing.T) {
	_, err := New(Config{}).Run(context.Background())
	assert.ErrorContains(t, err, "games must be at least 1")
}
