package roster

import (
	"errors"

	"github.com/charmbracelet/log"
)

// Profile is everything the simulator and the reports need from a roster.
type Profile struct {
	Team              string  `json:"team" toml:"team"`
	QBSkill           float64 `json:"qb_skill" toml:"qb_skill"`
	RushingAvg        float64 `json:"rushing_avg" toml:"rushing_avg"`
	PassingYards      int     `json:"passing_yards" toml:"passing_yards"`
	RushingYards      int     `json:"rushing_yards" toml:"rushing_yards"`
	Sacks             int     `json:"sacks" toml:"sacks"`
	Interceptions     int     `json:"interceptions" toml:"interceptions"`
	Players           int     `json:"players" toml:"players"`
	DefaultQBSkill    bool    `json:"default_qb_skill,omitempty" toml:"default_qb_skill,omitempty"`
	DefaultRushingAvg bool    `json:"default_rushing_avg,omitempty" toml:"default_rushing_avg,omitempty"`
}

// Profile summarises the roster. Missing positions fall back to the default
// ratings and are flagged on the profile; they are logged at warn level when
// logger is non-nil.
func (r *Roster) Profile(logger *log.Logger) Profile {
	p := Profile{Team: r.Team, Players: len(r.Players)}
	for _, pl := range r.Players {
		p.PassingYards += pl.PassingYards
		p.RushingYards += pl.RushingYards
		p.Sacks += pl.Sacks
		p.Interceptions += pl.Interceptions
	}

	var err error
	if p.QBSkill, err = r.QBSkill(); errors.Is(err, ErrNoPlayersAtPosition) {
		p.DefaultQBSkill = true
		if logger != nil {
			logger.Warn("No quarterbacks on roster, using default rating", "team", r.Team, "qb_skill", p.QBSkill)
		}
	}
	if p.RushingAvg, err = r.RushingAvg(); errors.Is(err, ErrNoPlayersAtPosition) {
		p.DefaultRushingAvg = true
		if logger != nil {
			logger.Warn("No running backs on roster, using default average", "team", r.Team, "rushing_avg", p.RushingAvg)
		}
	}
	return p
}

// DefaultProfile is the profile of a team with no roster at all.
func DefaultProfile(team string) Profile {
	return (&Roster{Team: team}).Profile(nil)
}
