package football

import (
	"github.com/charmbracelet/log"
)

// GameOption configures a Game during creation.
type GameOption func(*gameConfig)

type gameConfig struct {
	logger      *log.Logger
	bus         EventBus
	subscribers []EventSubscriber
	qbSkill     [2]float64
	teams       [2]string
	gameID      string
}

// WithLogger sets the logger used for debug output. Default discards.
func WithLogger(logger *log.Logger) GameOption {
	return func(c *gameConfig) {
		c.logger = logger
	}
}

// WithEventBus publishes onto an existing bus instead of a private one.
func WithEventBus(bus EventBus) GameOption {
	return func(c *gameConfig) {
		c.bus = bus
	}
}

// WithSubscriber attaches an event sink. May be repeated.
func WithSubscriber(sub EventSubscriber) GameOption {
	return func(c *gameConfig) {
		c.subscribers = append(c.subscribers, sub)
	}
}

// WithQBSkill sets a team's quarterback rating. Values are clamped to
// [0, MaxQBSkill]. Default is DefaultQBSkill.
func WithQBSkill(side Side, qbSkill float64) GameOption {
	return func(c *gameConfig) {
		c.qbSkill[side] = ClampQBSkill(qbSkill)
	}
}

// WithTeamNames names both teams. Default "Team A" and "Team B".
func WithTeamNames(a, b string) GameOption {
	return func(c *gameConfig) {
		c.teams = [2]string{a, b}
	}
}

// WithGameID tags the result with an id.
func WithGameID(id string) GameOption {
	return func(c *gameConfig) {
		c.gameID = id
	}
}
