package football

import (
	rand "math/rand/v2"

	"github.com/lox/gridiron/internal/randutil"
)

const (
	touchdownPoints   = 6
	extraPointChance  = 0.95
	fieldGoalPoints   = 3
	fieldGoalHandoff  = 80
	touchdownHandoff  = 100
	minPuntHandoff    = 20
	firstDownDistance = 10
)

// playPossession runs snaps for the team in possession until the drive ends.
// It takes the game state by value and returns the updated state along with
// a summary of the drive.
func (g *Game) playPossession(state GameState) (GameState, DriveSummary) {
	offense := state.Possession
	defense := offense.Opponent()
	drive := NewDrive(state.YardsToTouchdown)
	summary := DriveSummary{
		Offense:               offense,
		StartYardsToTouchdown: drive.YardsToTouchdown,
	}
	logger := g.logger.WithPrefix("possession").With("team", offense)

	for drive.Down <= 4 && drive.YardsToTouchdown > 0 && state.Running() {
		snap := PlayEvent{
			Offense: offense,
			Quarter: state.Quarter,
			Clock:   state.Clock,
			Drive:   drive,
		}

		action := ChooseAction(g.rng, drive.Down, drive.YardsToFirstDown, drive.YardsToTouchdown)
		outcome := ResolvePlay(g.rng, action, g.qbSkill[offense])
		recordPlay(&state.Stats[offense], &state.Stats[defense], action, outcome)

		drive.YardsToFirstDown -= outcome.Yards
		drive.YardsToTouchdown -= outcome.Yards

		elapsed := playDuration(g.rng, state, action, outcome)
		g.tick(&state, elapsed)
		g.rollover(&state)

		summary.Plays++
		summary.NetYards += outcome.Yards
		summary.Elapsed += elapsed

		snap.Action = action
		snap.Outcome = outcome
		snap.Elapsed = elapsed
		g.bus.Publish(snap)
		logger.Debug("Play", "down", snap.Drive.Down, "action", action, "result", outcome.Result, "yards", outcome.Yards)

		switch outcome.Result {
		case ResultInterception:
			return g.endPossession(state, summary, drive, EndInterception)
		case ResultFieldGoalAttempt:
			g.kickFieldGoal(&state, &summary, drive)
			return g.endPossession(state, summary, drive, EndFieldGoal)
		case ResultPuntAttempt:
			summary.PuntDistance = PuntDistance(g.rng)
			state.Stats[offense].PuntYards += summary.PuntDistance
			return g.endPossession(state, summary, drive, EndPunt)
		case ResultRun, ResultComplete, ResultIncomplete, ResultSack:
		}

		if drive.YardsToTouchdown <= 0 {
			g.scoreTouchdown(&state, &summary, action)
			return g.endPossession(state, summary, drive, EndTouchdown)
		}

		if drive.YardsToFirstDown <= 0 {
			drive.Down = 1
			drive.YardsToFirstDown = min(firstDownDistance, drive.YardsToTouchdown)
		} else {
			drive.Down++
		}
	}

	if drive.Down <= 4 && !state.Running() {
		return g.endPossession(state, summary, drive, EndExpired)
	}
	return g.endPossession(state, summary, drive, EndDowns)
}

func (g *Game) kickFieldGoal(state *GameState, summary *DriveSummary, drive Drive) {
	offense := state.Possession
	event := ScoreEvent{
		Offense:  offense,
		Kind:     FieldGoalMissed,
		Distance: 100 - drive.YardsToTouchdown,
	}
	if AttemptFieldGoal(g.rng, drive.YardsToTouchdown) {
		state.Score[offense] += fieldGoalPoints
		state.Stats[offense].FieldGoalsMade++
		summary.Points = fieldGoalPoints
		event.Kind = FieldGoalMade
		event.Points = fieldGoalPoints
	}
	event.Score = state.Score
	g.bus.Publish(event)
}

func (g *Game) scoreTouchdown(state *GameState, summary *DriveSummary, action Action) {
	offense := state.Possession
	points := touchdownPoints
	if action == Pass {
		state.Stats[offense].PassingTDs++
	} else {
		state.Stats[offense].RunningTDs++
	}
	extraPoint := randutil.Bernoulli(g.rng, extraPointChance)
	if extraPoint {
		points++
	}
	state.Score[offense] += points
	summary.Points = points
	g.bus.Publish(ScoreEvent{
		Offense:    offense,
		Kind:       Touchdown,
		Points:     points,
		ExtraPoint: extraPoint,
		Score:      state.Score,
	})
}

// endPossession hands the ball over and charges the change of possession to
// the clock.
func (g *Game) endPossession(state GameState, summary DriveSummary, drive Drive, end DriveEnd) (GameState, DriveSummary) {
	summary.End = end
	summary.EndYardsToTouchdown = drive.YardsToTouchdown
	summary.NextYardsToTouchdown = Handoff(end, drive.YardsToTouchdown, summary.PuntDistance)

	state.Possession = state.Possession.Opponent()
	state.YardsToTouchdown = summary.NextYardsToTouchdown

	elapsed := randutil.IntRange(g.rng, 5, 15)
	g.tick(&state, elapsed)
	summary.Elapsed += elapsed

	g.logger.Debug("Possession over",
		"team", summary.Offense,
		"end", end,
		"plays", summary.Plays,
		"yards", summary.NetYards,
		"next", summary.NextYardsToTouchdown)
	g.bus.Publish(PossessionEndEvent{Summary: summary, Quarter: state.Quarter, Clock: state.Clock})
	return state, summary
}

// Handoff is the field position the receiving team starts from, given how
// the previous possession ended. yardsToTouchdown is measured from the
// previous offense's point of view. The result is clamped to [0, 100].
func Handoff(end DriveEnd, yardsToTouchdown, puntDistance int) int {
	var next int
	switch end {
	case EndTouchdown:
		next = touchdownHandoff
	case EndFieldGoal:
		next = fieldGoalHandoff
	case EndPunt:
		next = max(100-puntDistance, minPuntHandoff)
	case EndInterception, EndDowns, EndExpired:
		next = 100 - yardsToTouchdown
	}
	return min(max(next, 0), 100)
}

// playDuration is how much game clock a snap burns.
func playDuration(rng *rand.Rand, state GameState, action Action, outcome PlayOutcome) int {
	if outcome.Result == ResultIncomplete {
		return randutil.IntRange(rng, 3, 12)
	}

	offense := state.Possession
	fourth := state.Quarter == Quarters

	outOfBoundsChance := 0.5
	if fourth {
		if state.Leading(offense) {
			outOfBoundsChance = 0.1
		} else {
			outOfBoundsChance = 0.7
		}
	}
	outOfBounds := randutil.Bernoulli(rng, outOfBoundsChance)

	if outOfBounds || action == FieldGoal || action == Punt || outcome.Result == ResultInterception {
		return randutil.IntRange(rng, 3, 7)
	}

	switch {
	case fourth && state.Trailing(offense):
		return randutil.IntRange(rng, 20, 30)
	case fourth:
		return randutil.IntRange(rng, 20, 40)
	default:
		return randutil.IntRange(rng, 35, 50)
	}
}
