package football

import "fmt"

// Side identifies one of the two teams in a game.
type Side int

const (
	TeamA Side = iota
	TeamB
)

func (s Side) String() string {
	return [...]string{"A", "B"}[s]
}

// Opponent returns the other side.
func (s Side) Opponent() Side {
	return 1 - s
}

// Action is the play call chosen by the decision policy.
type Action int

const (
	Run Action = iota
	Pass
	Punt
	FieldGoal
)

func (a Action) String() string {
	return [...]string{"run", "pass", "punt", "field_goal"}[a]
}

// ResultTag is the resolved outcome of a play.
type ResultTag int

const (
	ResultRun ResultTag = iota
	ResultComplete
	ResultIncomplete
	ResultSack
	ResultInterception
	ResultPuntAttempt
	ResultFieldGoalAttempt
)

func (r ResultTag) String() string {
	return [...]string{
		"run",
		"complete",
		"incomplete",
		"sack",
		"interception",
		"punt_attempt",
		"field_goal_attempt",
	}[r]
}

// PlayOutcome is what the outcome model returns for a single snap.
type PlayOutcome struct {
	Yards  int // signed; sacks are negative
	Result ResultTag
}

// DriveEnd is the terminal state a possession finished in.
type DriveEnd int

const (
	EndTouchdown DriveEnd = iota
	EndInterception
	EndFieldGoal
	EndPunt
	// EndDowns covers a failed fourth down and a drive handed over on its own
	// goal line, which cannot run a play.
	EndDowns
	// EndExpired means regulation ran out mid-drive. The ball is handed over
	// the same way as on downs.
	EndExpired
)

func (e DriveEnd) String() string {
	return [...]string{"touchdown", "interception", "field_goal", "punt", "downs", "expired"}[e]
}

// Drive tracks down and distance inside one possession.
type Drive struct {
	Down             int
	YardsToFirstDown int
	YardsToTouchdown int
}

// NewDrive starts a drive at first and ten.
func NewDrive(yardsToTouchdown int) Drive {
	return Drive{Down: 1, YardsToFirstDown: 10, YardsToTouchdown: yardsToTouchdown}
}

func (d Drive) String() string {
	return fmt.Sprintf("%s & %d, %d to go", ordinal(d.Down), d.YardsToFirstDown, d.YardsToTouchdown)
}

func ordinal(n int) string {
	switch n {
	case 1:
		return "1st"
	case 2:
		return "2nd"
	case 3:
		return "3rd"
	default:
		return fmt.Sprintf("%dth", n)
	}
}
