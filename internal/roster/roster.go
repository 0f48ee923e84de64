// Package roster loads player rosters and reduces them to the two ratings the
// game engine consumes: quarterback skill and rushing average.
package roster

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/lox/gridiron/internal/football"
)

// DefaultRushingAvg is returned when a roster has no running backs.
const DefaultRushingAvg = 4.0

// ErrNoPlayersAtPosition is returned, together with the default rating, when
// a roster query finds nobody at the position it aggregates.
var ErrNoPlayersAtPosition = errors.New("roster: no players at position")

// Position is a player's listed position. Only QB and RB feed the ratings.
type Position string

const (
	QB Position = "QB"
	RB Position = "RB"
)

// Player is one roster row.
type Player struct {
	Name            string
	Position        Position
	CompletionPct   float64
	PassingYards    int
	RushingYards    int
	RushingAttempts int
	Sacks           int
	Interceptions   int
}

// Roster is a named list of players.
type Roster struct {
	Team    string
	Players []Player
}

var requiredColumns = []string{
	"name",
	"position",
	"completion_pct",
	"passing_yards",
	"rushing_yards",
	"rushing_attempts",
	"sacks",
	"interceptions",
}

// LoadFile reads a roster CSV from disk.
func LoadFile(team, path string) (*Roster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open roster: %w", err)
	}
	defer f.Close()

	r, err := Parse(team, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// Parse reads a roster CSV. The header row names the columns, in any order;
// extra columns are ignored. Numeric cells may be empty, meaning zero.
func Parse(team string, r io.Reader) (*Roster, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("empty roster")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}

	roster := &Roster{Team: team}
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		line, _ := cr.FieldPos(0)

		p, err := parsePlayer(record, index)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		roster.Players = append(roster.Players, p)
	}
	return roster, nil
}

func parsePlayer(record []string, index map[string]int) (Player, error) {
	cell := func(col string) string {
		return strings.TrimSpace(record[index[col]])
	}

	p := Player{
		Name:     cell("name"),
		Position: Position(strings.ToUpper(cell("position"))),
	}

	pct, err := parseFloat(cell("completion_pct"))
	if err != nil {
		return Player{}, fmt.Errorf("completion_pct: %w", err)
	}
	p.CompletionPct = pct

	ints := []struct {
		col string
		dst *int
	}{
		{"passing_yards", &p.PassingYards},
		{"rushing_yards", &p.RushingYards},
		{"rushing_attempts", &p.RushingAttempts},
		{"sacks", &p.Sacks},
		{"interceptions", &p.Interceptions},
	}
	for _, f := range ints {
		v, err := parseInt(cell(f.col))
		if err != nil {
			return Player{}, fmt.Errorf("%s: %w", f.col, err)
		}
		*f.dst = v
	}
	return p, nil
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

// parseInt accepts whole numbers written as floats ("1234.0"), which is how
// spreadsheet exports often write them.
func parseInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// At returns the players listed at pos.
func (r *Roster) At(pos Position) []Player {
	var players []Player
	for _, p := range r.Players {
		if p.Position == pos {
			players = append(players, p)
		}
	}
	return players
}

// QBSkill is the mean completion percentage of the quarterbacks, divided by
// 100. With no quarterbacks it returns football.DefaultQBSkill and
// ErrNoPlayersAtPosition.
func (r *Roster) QBSkill() (float64, error) {
	qbs := r.At(QB)
	if len(qbs) == 0 {
		return football.DefaultQBSkill, fmt.Errorf("%w: %s", ErrNoPlayersAtPosition, QB)
	}
	sum := 0.0
	for _, p := range qbs {
		sum += p.CompletionPct
	}
	return sum / float64(len(qbs)) / 100, nil
}

// RushingAvg is the running backs' rushing yards per attempt. With no running
// backs it returns DefaultRushingAvg and ErrNoPlayersAtPosition.
func (r *Roster) RushingAvg() (float64, error) {
	rbs := r.At(RB)
	if len(rbs) == 0 {
		return DefaultRushingAvg, fmt.Errorf("%w: %s", ErrNoPlayersAtPosition, RB)
	}
	yards, attempts := 0, 0
	for _, p := range rbs {
		yards += p.RushingYards
		attempts += p.RushingAttempts
	}
	return float64(yards) / float64(max(attempts, 1)), nil
}
