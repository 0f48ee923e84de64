// Package football simulates a single American-football game between two
// teams.
//
// The main type is Game, which owns a GameState and drives possessions until
// regulation runs out. Each possession asks ChooseAction for a play call,
// resolves it with ResolvePlay, updates both teams' TeamStats and runs the
// clock with Advance.
//
// # Basic Usage
//
//	rng := randutil.New(42)
//	var rec football.Recorder
//	g := football.NewGame(rng,
//	    football.WithTeamNames("Bears", "Lions"),
//	    football.WithSubscriber(&rec))
//	result := g.Play()
//
// # Deterministic Testing
//
// Every random draw comes from the *rand.Rand passed to NewGame. Two games
// built from the same seed publish identical event streams and finish with
// identical results.
//
// # Events
//
// The engines never print. They publish typed events (PlayEvent, ScoreEvent,
// PossessionEndEvent, ...) on an EventBus. WriterSubscriber renders a text
// play-by-play, LogSubscriber emits structured log records and Recorder keeps
// everything in memory.
package football
