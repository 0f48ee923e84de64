package football

import (
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
)

// Game drives possessions until regulation runs out.
type Game struct {
	rng     *rand.Rand
	logger  *log.Logger
	bus     EventBus
	qbSkill [2]float64
	teams   [2]string
	id      string

	state  GameState
	drives []DriveSummary
	played bool
}

// NewGame creates a game with a required RNG and optional configuration.
// The RNG is required so that every draw in the game comes from one
// explicit, seedable stream.
//
//	rng := randutil.New(42)
//	g := football.NewGame(rng,
//	    football.WithTeamNames("Bears", "Lions"),
//	    football.WithQBSkill(football.TeamB, 0.05),
//	    football.WithSubscriber(&recorder))
//	result := g.Play()
func NewGame(rng *rand.Rand, opts ...GameOption) *Game {
	if rng == nil {
		panic("rng is required for game creation")
	}

	cfg := &gameConfig{
		qbSkill: [2]float64{DefaultQBSkill, DefaultQBSkill},
		teams:   [2]string{"Team A", "Team B"},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard)
	}
	if cfg.bus == nil {
		cfg.bus = NewEventBus()
	}
	for _, sub := range cfg.subscribers {
		cfg.bus.Subscribe(sub)
	}

	return &Game{
		rng:     rng,
		logger:  cfg.logger.WithPrefix("game"),
		bus:     cfg.bus,
		qbSkill: cfg.qbSkill,
		teams:   cfg.teams,
		id:      cfg.gameID,
		state:   NewGameState(),
	}
}

// State returns a copy of the current game state.
func (g *Game) State() GameState {
	return g.state
}

// Teams returns the team names.
func (g *Game) Teams() [2]string {
	return g.teams
}

// Play runs the game to the end of regulation and returns the result.
// Calling Play again returns the same result without replaying.
func (g *Game) Play() Result {
	if g.played {
		return g.result()
	}

	g.logger.Debug("Starting game", "id", g.id, "teamA", g.teams[TeamA], "teamB", g.teams[TeamB])

	for g.state.Running() {
		g.bus.Publish(PossessionStartEvent{
			Offense:          g.state.Possession,
			Quarter:          g.state.Quarter,
			Clock:            g.state.Clock,
			YardsToTouchdown: g.state.YardsToTouchdown,
			Score:            g.state.Score,
		})

		var summary DriveSummary
		g.state, summary = g.playPossession(g.state)
		g.drives = append(g.drives, summary)

		g.rollover(&g.state)
	}

	g.played = true
	result := g.result()
	g.logger.Debug("Game over", "id", g.id, "scoreA", result.Score[TeamA], "scoreB", result.Score[TeamB], "drives", len(result.Drives))
	g.bus.Publish(GameEndEvent{Result: result})
	return result
}

func (g *Game) result() Result {
	drives := make([]DriveSummary, len(g.drives))
	copy(drives, g.drives)
	return Result{
		GameID: g.id,
		Teams:  g.teams,
		Score:  g.state.Score,
		Stats:  g.state.Stats,
		Drives: drives,
	}
}

// tick runs the clock and announces any quarter that ended.
func (g *Game) tick(state *GameState, elapsed int) {
	before := state.Quarter
	state.Clock, state.Quarter = Advance(state.Clock, state.Quarter, elapsed)
	g.announceQuarters(before, state)
}

// rollover starts the next quarter when the clock stopped exactly on zero.
func (g *Game) rollover(state *GameState) {
	if state.Clock == 0 && state.Quarter <= Quarters {
		before := state.Quarter
		state.Quarter++
		state.Clock = QuarterSeconds
		g.announceQuarters(before, state)
	}
}

func (g *Game) announceQuarters(before int, state *GameState) {
	for q := before; q < state.Quarter && q <= Quarters; q++ {
		g.bus.Publish(QuarterEndEvent{Quarter: q, Score: state.Score})
	}
}

// Simulate plays one game with the given options.
func Simulate(rng *rand.Rand, opts ...GameOption) Result {
	return NewGame(rng, opts...).Play()
}
