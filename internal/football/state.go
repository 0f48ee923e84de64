package football

// GameState is the single aggregate the game engine owns. The possession
// engine receives it by value and hands back the updated copy.
type GameState struct {
	Score            [2]int
	Possession       Side
	Clock            int
	Quarter          int
	YardsToTouchdown int
	Stats            [2]TeamStats
}

// NewGameState is the state at kickoff: team A receives at its own goal line.
func NewGameState() GameState {
	return GameState{
		Possession:       TeamA,
		Clock:            QuarterSeconds,
		Quarter:          1,
		YardsToTouchdown: 100,
	}
}

// Running reports whether regulation still has time left.
func (s GameState) Running() bool {
	return s.Clock > 0 && s.Quarter <= Quarters
}

// Leading reports whether side is strictly ahead.
func (s GameState) Leading(side Side) bool {
	return s.Score[side] > s.Score[side.Opponent()]
}

// Trailing reports whether side is strictly behind.
func (s GameState) Trailing(side Side) bool {
	return s.Score[side] < s.Score[side.Opponent()]
}

// DriveSummary describes a finished possession.
type DriveSummary struct {
	Offense               Side
	StartYardsToTouchdown int
	EndYardsToTouchdown   int
	Plays                 int
	NetYards              int
	Elapsed               int // seconds of game clock including the change of possession
	End                   DriveEnd
	PuntDistance          int // punts only
	Points                int
	// NextYardsToTouchdown is where the other team starts, always in [0, 100].
	NextYardsToTouchdown int
}

// Result is the outcome of a complete game.
type Result struct {
	GameID string
	Teams  [2]string
	Score  [2]int
	Stats  [2]TeamStats
	Drives []DriveSummary
}

// Winner returns the winning side, or false for a tie.
func (r Result) Winner() (Side, bool) {
	switch {
	case r.Score[TeamA] > r.Score[TeamB]:
		return TeamA, true
	case r.Score[TeamB] > r.Score[TeamA]:
		return TeamB, true
	default:
		return 0, false
	}
}

// Margin is team A's points minus team B's.
func (r Result) Margin() int {
	return r.Score[TeamA] - r.Score[TeamB]
}
