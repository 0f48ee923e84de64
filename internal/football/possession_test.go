package football

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/gridiron/internal/randutil"
)

func TestHandoff(t *testing.T) {
	tests := []struct {
		name string
		end  DriveEnd
		ytd  int
		punt int
		want int
	}{
		{"interception mirrors field position", EndInterception, 30, 0, 70},
		{"touchdown kicks off", EndTouchdown, -4, 0, 100},
		{"touchdown from anywhere", EndTouchdown, 0, 0, 100},
		{"made or missed field goal", EndFieldGoal, 25, 0, 80},
		{"punt", EndPunt, 70, 40, 60},
		{"short field punt floors at 20", EndPunt, 70, 65, 35},
		{"long punt floors at 20", EndPunt, 90, 85, 20},
		{"turnover on downs", EndDowns, 38, 0, 62},
		{"time expired", EndExpired, 50, 0, 50},
		{"backed up past own goal clamps", EndInterception, 104, 0, 0},
		{"negative mirror clamps", EndDowns, -3, 0, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Handoff(tt.end, tt.ytd, tt.punt))
		})
	}
}

// collectGames plays a batch of seeded games and returns their recorders.
func collectGames(t *testing.T, n int) []*Recorder {
	t.Helper()
	recs := make([]*Recorder, n)
	for i := range recs {
		recs[i] = &Recorder{}
		NewGame(randutil.New(int64(1000+i)), WithSubscriber(recs[i])).Play()
	}
	return recs
}

func TestPossession_DownStaysInRange(t *testing.T) {
	for _, rec := range collectGames(t, 40) {
		for _, p := range rec.Plays() {
			require.GreaterOrEqual(t, p.Drive.Down, 1)
			require.LessOrEqual(t, p.Drive.Down, 4)
			require.Greater(t, p.Drive.YardsToTouchdown, 0)
			require.GreaterOrEqual(t, p.Clock, 0)
			require.LessOrEqual(t, p.Clock, QuarterSeconds)
			require.GreaterOrEqual(t, p.Quarter, 1)
			require.LessOrEqual(t, p.Quarter, Quarters)
		}
	}
}

func TestPossession_DownAndDistanceProgression(t *testing.T) {
	for _, rec := range collectGames(t, 20) {
		plays := rec.Plays()
		for i := 1; i < len(plays); i++ {
			prev, cur := plays[i-1], plays[i]
			if prev.Offense != cur.Offense || cur.Drive.YardsToTouchdown != prev.Drive.YardsToTouchdown-prev.Outcome.Yards {
				continue // new possession
			}
			togo := prev.Drive.YardsToFirstDown - prev.Outcome.Yards
			if togo <= 0 {
				assert.Equal(t, 1, cur.Drive.Down)
				assert.Equal(t, min(10, cur.Drive.YardsToTouchdown), cur.Drive.YardsToFirstDown)
			} else {
				assert.Equal(t, prev.Drive.Down+1, cur.Drive.Down)
				assert.Equal(t, togo, cur.Drive.YardsToFirstDown)
			}
		}
	}
}

func TestPossession_HandoffRules(t *testing.T) {
	seen := map[DriveEnd]int{}
	for _, rec := range collectGames(t, 60) {
		for _, e := range rec.Events {
			end, ok := e.(PossessionEndEvent)
			if !ok {
				continue
			}
			s := end.Summary
			seen[s.End]++
			require.GreaterOrEqual(t, s.NextYardsToTouchdown, 0)
			require.LessOrEqual(t, s.NextYardsToTouchdown, 100)

			switch s.End {
			case EndTouchdown:
				assert.Equal(t, 100, s.NextYardsToTouchdown)
				assert.LessOrEqual(t, s.EndYardsToTouchdown, 0)
			case EndFieldGoal:
				assert.Equal(t, 80, s.NextYardsToTouchdown)
			case EndPunt:
				assert.GreaterOrEqual(t, s.PuntDistance, 30)
				assert.LessOrEqual(t, s.PuntDistance, 65)
				assert.Equal(t, max(100-s.PuntDistance, 20), s.NextYardsToTouchdown)
			case EndInterception, EndDowns:
				assert.Equal(t, min(max(100-s.EndYardsToTouchdown, 0), 100), s.NextYardsToTouchdown)
			case EndExpired:
				assert.Greater(t, end.Quarter, Quarters, "expired with time left")
				assert.Equal(t, min(max(100-s.EndYardsToTouchdown, 0), 100), s.NextYardsToTouchdown)
			}
			if s.Plays == 0 && end.Quarter <= Quarters {
				assert.Equal(t, EndDowns, s.End, "drive with no snaps")
			}
		}
	}

	for _, end := range []DriveEnd{EndTouchdown, EndFieldGoal, EndPunt, EndInterception, EndDowns} {
		assert.Positive(t, seen[end], "no %s drives in sample", end)
	}
}

func TestPossession_OwnGoalLineStartRunsNoPlays(t *testing.T) {
	g := NewGame(randutil.New(3))
	state := NewGameState()
	state.YardsToTouchdown = 0
	state.Clock = 400

	next, summary := g.playPossession(state)
	assert.Equal(t, EndDowns, summary.End)
	assert.Zero(t, summary.Plays)
	assert.Equal(t, 100, summary.NextYardsToTouchdown)
	assert.Equal(t, TeamB, next.Possession)
	assert.Equal(t, 100, next.YardsToTouchdown)
	assert.Equal(t, 1, next.Quarter)
}

func TestPossession_ExpiresOnlyWhenRegulationIsOver(t *testing.T) {
	g := NewGame(randutil.New(3))
	state := NewGameState()
	state.Quarter = Quarters + 1
	state.Clock = QuarterSeconds
	state.YardsToTouchdown = 35

	_, summary := g.playPossession(state)
	assert.Equal(t, EndExpired, summary.End)
	assert.Zero(t, summary.Plays)
	assert.Equal(t, 65, summary.NextYardsToTouchdown)
}

func TestPossession_FourthDownDeepAlwaysPunts(t *testing.T) {
	for _, rec := range collectGames(t, 30) {
		for _, p := range rec.Plays() {
			if p.Drive.Down == 4 && p.Drive.YardsToTouchdown > 55 {
				assert.Equal(t, Punt, p.Action)
			}
			if p.Drive.Down < 4 {
				assert.Contains(t, []Action{Run, Pass}, p.Action)
			}
		}
	}
}

func TestPlayDuration(t *testing.T) {
	rng := randutil.New(12)
	state := NewGameState()

	for i := 0; i < 500; i++ {
		d := playDuration(rng, state, Pass, PlayOutcome{Result: ResultIncomplete})
		assert.GreaterOrEqual(t, d, 3)
		assert.LessOrEqual(t, d, 12)

		for _, kick := range []Action{Punt, FieldGoal} {
			d = playDuration(rng, state, kick, PlayOutcome{})
			assert.GreaterOrEqual(t, d, 3)
			assert.LessOrEqual(t, d, 7)
		}

		d = playDuration(rng, state, Run, PlayOutcome{Yards: 3, Result: ResultRun})
		assert.True(t, (d >= 3 && d <= 7) || (d >= 35 && d <= 50), "first quarter duration %d", d)
	}

	trailing := NewGameState()
	trailing.Quarter = 4
	trailing.Score = [2]int{0, 7}
	leading := trailing
	leading.Score = [2]int{7, 0}
	tied := trailing
	tied.Score = [2]int{7, 7}

	var trailingClockStops, leadingClockStops, tiedClockStops int
	const n = 4000
	for i := 0; i < n; i++ {
		d := playDuration(rng, trailing, Run, PlayOutcome{Yards: 2, Result: ResultRun})
		assert.True(t, (d >= 3 && d <= 7) || (d >= 20 && d <= 30), "hurry-up duration %d", d)
		if d <= 7 {
			trailingClockStops++
		}

		d = playDuration(rng, leading, Run, PlayOutcome{Yards: 2, Result: ResultRun})
		assert.True(t, (d >= 3 && d <= 7) || (d >= 20 && d <= 40), "leading duration %d", d)
		if d <= 7 {
			leadingClockStops++
		}

		d = playDuration(rng, tied, Run, PlayOutcome{Yards: 2, Result: ResultRun})
		assert.True(t, (d >= 3 && d <= 7) || (d >= 20 && d <= 40), "tied duration %d", d)
		if d <= 7 {
			tiedClockStops++
		}
	}
	assert.InDelta(t, 0.7, float64(trailingClockStops)/n, 0.03)
	assert.InDelta(t, 0.1, float64(leadingClockStops)/n, 0.03)
	assert.InDelta(t, 0.7, float64(tiedClockStops)/n, 0.03)
}
