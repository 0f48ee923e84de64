// Package history records a game's play-by-play and writes it as a TOML
// document.
package history

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/lox/gridiron/internal/fileutil"
	"github.com/lox/gridiron/internal/football"
)

// GameHistory is the complete record of one game.
type GameHistory struct {
	Game    string                        `toml:"game"`
	Seed    int64                         `toml:"seed"`
	Teams   []string                      `toml:"teams"`
	Score   []int                         `toml:"score"`
	Winner  string                        `toml:"winner"`
	Plays   []PlayRecord                  `toml:"plays"`
	Scoring []ScoreRecord                 `toml:"scoring,omitempty"`
	Drives  []DriveRecord                 `toml:"drives"`
	Stats   map[string]football.TeamStats `toml:"stats"`
	Meta    map[string]any                `toml:"metadata,omitempty"`
}

// PlayRecord is one snap, with the situation before it.
type PlayRecord struct {
	Offense          string `toml:"offense"`
	Quarter          int    `toml:"quarter"`
	Clock            string `toml:"clock"`
	Down             int    `toml:"down"`
	ToGo             int    `toml:"to_go"`
	YardsToTouchdown int    `toml:"ytd"`
	Action           string `toml:"action"`
	Result           string `toml:"result"`
	Yards            int    `toml:"yards"`
	Elapsed          int    `toml:"elapsed"`
}

// ScoreRecord is a touchdown or field goal attempt.
type ScoreRecord struct {
	Offense    string `toml:"offense"`
	Kind       string `toml:"kind"`
	Points     int    `toml:"points"`
	ExtraPoint bool   `toml:"extra_point,omitempty"`
	Distance   int    `toml:"distance,omitempty"`
	ScoreA     int    `toml:"score_a"`
	ScoreB     int    `toml:"score_b"`
}

// DriveRecord summarises one possession.
type DriveRecord struct {
	Offense      string `toml:"offense"`
	Start        int    `toml:"start_ytd"`
	End          int    `toml:"end_ytd"`
	Plays        int    `toml:"plays"`
	NetYards     int    `toml:"net_yards"`
	Elapsed      int    `toml:"elapsed"`
	Result       string `toml:"result"`
	PuntDistance int    `toml:"punt_distance,omitempty"`
	Points       int    `toml:"points"`
	Next         int    `toml:"next_ytd"`
}

// Recorder subscribes to a game's events and assembles its history.
type Recorder struct {
	history GameHistory
	done    bool
}

// NewRecorder creates a recorder for the game with the given id and seed.
func NewRecorder(gameID string, seed int64) *Recorder {
	return &Recorder{history: GameHistory{Game: gameID, Seed: seed}}
}

// OnEvent implements football.EventSubscriber.
func (r *Recorder) OnEvent(event football.GameEvent) {
	h := &r.history
	switch e := event.(type) {
	case football.PlayEvent:
		h.Plays = append(h.Plays, PlayRecord{
			Offense:          e.Offense.String(),
			Quarter:          e.Quarter,
			Clock:            football.FormatClock(e.Clock),
			Down:             e.Drive.Down,
			ToGo:             e.Drive.YardsToFirstDown,
			YardsToTouchdown: e.Drive.YardsToTouchdown,
			Action:           e.Action.String(),
			Result:           e.Outcome.Result.String(),
			Yards:            e.Outcome.Yards,
			Elapsed:          e.Elapsed,
		})
	case football.ScoreEvent:
		h.Scoring = append(h.Scoring, ScoreRecord{
			Offense:    e.Offense.String(),
			Kind:       e.Kind.String(),
			Points:     e.Points,
			ExtraPoint: e.ExtraPoint,
			Distance:   e.Distance,
			ScoreA:     e.Score[football.TeamA],
			ScoreB:     e.Score[football.TeamB],
		})
	case football.PossessionEndEvent:
		h.Drives = append(h.Drives, driveRecord(e.Summary))
	case football.GameEndEvent:
		res := e.Result
		if h.Game == "" {
			h.Game = res.GameID
		}
		h.Teams = res.Teams[:]
		h.Score = res.Score[:]
		h.Winner = "tie"
		if side, ok := res.Winner(); ok {
			h.Winner = side.String()
		}
		h.Stats = map[string]football.TeamStats{
			football.TeamA.String(): res.Stats[football.TeamA],
			football.TeamB.String(): res.Stats[football.TeamB],
		}
		r.done = true
	}
}

func driveRecord(s football.DriveSummary) DriveRecord {
	return DriveRecord{
		Offense:      s.Offense.String(),
		Start:        s.StartYardsToTouchdown,
		End:          s.EndYardsToTouchdown,
		Plays:        s.Plays,
		NetYards:     s.NetYards,
		Elapsed:      s.Elapsed,
		Result:       s.End.String(),
		PuntDistance: s.PuntDistance,
		Points:       s.Points,
		Next:         s.NextYardsToTouchdown,
	}
}

// SetMetadata attaches a free-form key to the history.
func (r *Recorder) SetMetadata(key string, value any) {
	if r.history.Meta == nil {
		r.history.Meta = make(map[string]any)
	}
	r.history.Meta[key] = value
}

// History returns the recorded game, or nil before the game has ended.
func (r *Recorder) History() *GameHistory {
	if !r.done {
		return nil
	}
	h := r.history
	return &h
}

// Encode writes the history as TOML.
func Encode(w io.Writer, h *GameHistory) error {
	if h == nil {
		return fmt.Errorf("history: game history is nil")
	}
	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(h)
}

// Decode reads a history written by Encode.
func Decode(r io.Reader) (*GameHistory, error) {
	var h GameHistory
	if _, err := toml.NewDecoder(r).Decode(&h); err != nil {
		return nil, fmt.Errorf("history: decode: %w", err)
	}
	return &h, nil
}

// WriteFile encodes the history to filename atomically.
func WriteFile(filename string, h *GameHistory) error {
	if h == nil {
		return fmt.Errorf("history: game history is nil")
	}
	err := fileutil.WriteAtomic(filename, 0o644, func(w io.Writer) error {
		return Encode(w, h)
	})
	if err != nil {
		return fmt.Errorf("write history %s: %w", filename, err)
	}
	return nil
}

// ReadFile decodes a history file.
func ReadFile(filename string) (*GameHistory, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Result rebuilds the game result a history was recorded from.
func (h *GameHistory) Result() (football.Result, error) {
	res := football.Result{GameID: h.Game}
	if len(h.Teams) != 2 || len(h.Score) != 2 {
		return res, fmt.Errorf("history: want two teams and two scores, got %d and %d", len(h.Teams), len(h.Score))
	}
	for _, side := range []football.Side{football.TeamA, football.TeamB} {
		res.Teams[side] = h.Teams[side]
		res.Score[side] = h.Score[side]
		res.Stats[side] = h.Stats[side.String()]
	}

	res.Drives = make([]football.DriveSummary, 0, len(h.Drives))
	for i, d := range h.Drives {
		s, err := d.summary()
		if err != nil {
			return res, fmt.Errorf("history: drive %d: %w", i+1, err)
		}
		res.Drives = append(res.Drives, s)
	}
	return res, nil
}

func (d DriveRecord) summary() (football.DriveSummary, error) {
	s := football.DriveSummary{
		StartYardsToTouchdown: d.Start,
		EndYardsToTouchdown:   d.End,
		Plays:                 d.Plays,
		NetYards:              d.NetYards,
		Elapsed:               d.Elapsed,
		PuntDistance:          d.PuntDistance,
		Points:                d.Points,
		NextYardsToTouchdown:  d.Next,
	}
	switch d.Offense {
	case football.TeamA.String():
		s.Offense = football.TeamA
	case football.TeamB.String():
		s.Offense = football.TeamB
	default:
		return s, fmt.Errorf("unknown offense %q", d.Offense)
	}
	for end := football.EndTouchdown; end <= football.EndExpired; end++ {
		if end.String() == d.Result {
			s.End = end
			return s, nil
		}
	}
	return s, fmt.Errorf("unknown drive result %q", d.Result)
}
