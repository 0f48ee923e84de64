package football

// TeamStats holds one team's counters for a game. Yardage totals are net, so
// a run for a loss lowers YardsRunning; every other counter only grows.
type TeamStats struct {
	PassAttempts        int `json:"pass_attempts" toml:"pass_attempts"`
	PassesComplete      int `json:"passes_complete" toml:"passes_complete"`
	YardsPassing        int `json:"y_passing" toml:"y_passing"`
	PassingTDs          int `json:"passing_tds" toml:"passing_tds"`
	Interceptions       int `json:"interceptions" toml:"interceptions"`
	SacksTaken          int `json:"sacks_taken" toml:"sacks_taken"`
	SackYards           int `json:"sack_yards" toml:"sack_yards"`
	RunAttempts         int `json:"run_attempts" toml:"run_attempts"`
	YardsRunning        int `json:"y_running" toml:"y_running"`
	RunningTDs          int `json:"running_tds" toml:"running_tds"`
	SacksGiven          int `json:"sacks_given" toml:"sacks_given"`
	FieldGoalsAttempted int `json:"field_goals_attempted" toml:"field_goals_attempted"`
	FieldGoalsMade      int `json:"field_goals_made" toml:"field_goals_made"`
	Punts               int `json:"punts" toml:"punts"`
	PuntYards           int `json:"punt_yards" toml:"punt_yards"`
}

// Counter is a named stat value.
type Counter struct {
	Name  string
	Value int
}

// Counters lists every stat in report order.
func (s TeamStats) Counters() []Counter {
	return []Counter{
		{"pass_attempts", s.PassAttempts},
		{"passes_complete", s.PassesComplete},
		{"y_passing", s.YardsPassing},
		{"passing_tds", s.PassingTDs},
		{"interceptions", s.Interceptions},
		{"sacks_taken", s.SacksTaken},
		{"sack_yards", s.SackYards},
		{"run_attempts", s.RunAttempts},
		{"y_running", s.YardsRunning},
		{"running_tds", s.RunningTDs},
		{"sacks_given", s.SacksGiven},
		{"field_goals_attempted", s.FieldGoalsAttempted},
		{"field_goals_made", s.FieldGoalsMade},
		{"punts", s.Punts},
		{"punt_yards", s.PuntYards},
	}
}

// Get returns a counter by name.
func (s TeamStats) Get(name string) (int, bool) {
	for _, c := range s.Counters() {
		if c.Name == name {
			return c.Value, true
		}
	}
	return 0, false
}

// Touchdowns is passing plus running touchdowns.
func (s TeamStats) Touchdowns() int {
	return s.PassingTDs + s.RunningTDs
}

// CompletionRate is completions over attempts, zero when nothing was thrown.
func (s TeamStats) CompletionRate() float64 {
	if s.PassAttempts == 0 {
		return 0
	}
	return float64(s.PassesComplete) / float64(s.PassAttempts)
}

// recordPlay applies a non-kicking play to the offense and, on a sack, to the
// defense.
func recordPlay(offense, defense *TeamStats, action Action, outcome PlayOutcome) {
	switch action {
	case Run:
		offense.RunAttempts++
		offense.YardsRunning += outcome.Yards
	case Pass:
		offense.PassAttempts++
		switch outcome.Result {
		case ResultComplete:
			offense.PassesComplete++
			offense.YardsPassing += outcome.Yards
		case ResultSack:
			offense.SacksTaken++
			offense.SackYards += max(0, -outcome.Yards)
			defense.SacksGiven++
		case ResultInterception:
			offense.Interceptions++
		case ResultIncomplete:
		}
	case FieldGoal:
		offense.FieldGoalsAttempted++
	case Punt:
		offense.Punts++
	}
}
