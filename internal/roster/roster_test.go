package roster

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/gridiron/internal/football"
)

const sampleCSV = `name,position,completion_pct,passing_yards,rushing_yards,rushing_attempts,sacks,interceptions
Starter,QB,64.0,4100,210,40,0,11
Backup,qb,58.0,600,15,6,0,4
Lead Back,RB,,0,1100,250,0,0
Change Back,RB,,0,400,90,0,0
Edge,DE,,0,0,0,12,0
Corner,CB,,0,0,0,0,5
`

func TestParse(t *testing.T) {
	r, err := Parse("Bears", strings.NewReader(sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, "Bears", r.Team)
	require.Len(t, r.Players, 6)
	assert.Equal(t, Player{
		Name:            "Starter",
		Position:        QB,
		CompletionPct:   64,
		PassingYards:    4100,
		RushingYards:    210,
		RushingAttempts: 40,
		Interceptions:   11,
	}, r.Players[0])
	assert.Equal(t, QB, r.Players[1].Position, "positions are case-insensitive")
	assert.Len(t, r.At(RB), 2)
}

func TestParse_ColumnOrderAndExtras(t *testing.T) {
	csv := "interceptions,sacks,rushing_attempts,rushing_yards,passing_yards,completion_pct,position,name,jersey\n" +
		"1,2,3,30,100,55.5,QB,Someone,12\n"
	r, err := Parse("X", strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, r.Players, 1)
	assert.Equal(t, "Someone", r.Players[0].Name)
	assert.Equal(t, 55.5, r.Players[0].CompletionPct)
	assert.Equal(t, 30, r.Players[0].RushingYards)
}

func TestParse_FloatIntegers(t *testing.T) {
	csv := "name,position,completion_pct,passing_yards,rushing_yards,rushing_attempts,sacks,interceptions\n" +
		"A,RB,,0.0,812.0,170.0,0,0\n"
	r, err := Parse("X", strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 812, r.Players[0].RushingYards)
	assert.Equal(t, 170, r.Players[0].RushingAttempts)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		csv  string
		want string
	}{
		{"empty", "", "empty roster"},
		{"missing column", "name,position\nA,QB\n", `missing column "completion_pct"`},
		{
			"bad number",
			"name,position,completion_pct,passing_yards,rushing_yards,rushing_attempts,sacks,interceptions\nA,QB,lots,0,0,0,0,0\n",
			"line 2: completion_pct",
		},
		{
			"ragged row",
			"name,position,completion_pct,passing_yards,rushing_yards,rushing_attempts,sacks,interceptions\nA,QB\n",
			"read row",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("X", strings.NewReader(tt.csv))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestQBSkill(t *testing.T) {
	r, err := Parse("Bears", strings.NewReader(sampleCSV))
	require.NoError(t, err)

	skill, err := r.QBSkill()
	require.NoError(t, err)
	assert.InDelta(t, 0.61, skill, 1e-12)

	empty := &Roster{Team: "Empty"}
	skill, err = empty.QBSkill()
	assert.ErrorIs(t, err, ErrNoPlayersAtPosition)
	assert.Equal(t, football.DefaultQBSkill, skill)
}

func TestRushingAvg(t *testing.T) {
	r, err := Parse("Bears", strings.NewReader(sampleCSV))
	require.NoError(t, err)

	avg, err := r.RushingAvg()
	require.NoError(t, err)
	assert.InDelta(t, 1500.0/340.0, avg, 1e-12)

	// zero attempts divides by one
	noAttempts := &Roster{Players: []Player{{Position: RB, RushingYards: 7}}}
	avg, err = noAttempts.RushingAvg()
	require.NoError(t, err)
	assert.Equal(t, 7.0, avg)

	avg, err = (&Roster{}).RushingAvg()
	assert.ErrorIs(t, err, ErrNoPlayersAtPosition)
	assert.Equal(t, DefaultRushingAvg, avg)
}

func TestProfile(t *testing.T) {
	r, err := Parse("Bears", strings.NewReader(sampleCSV))
	require.NoError(t, err)

	p := r.Profile(nil)
	assert.Equal(t, "Bears", p.Team)
	assert.Equal(t, 6, p.Players)
	assert.Equal(t, 4700, p.PassingYards)
	assert.Equal(t, 1725, p.RushingYards)
	assert.Equal(t, 12, p.Sacks)
	assert.Equal(t, 20, p.Interceptions)
	assert.False(t, p.DefaultQBSkill)
	assert.False(t, p.DefaultRushingAvg)
}

func TestProfile_DefaultsAreLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)

	p := (&Roster{Team: "Nobody"}).Profile(logger)
	assert.True(t, p.DefaultQBSkill)
	assert.True(t, p.DefaultRushingAvg)
	assert.Equal(t, football.DefaultQBSkill, p.QBSkill)
	assert.Equal(t, DefaultRushingAvg, p.RushingAvg)
	assert.Contains(t, buf.String(), "No quarterbacks")
	assert.Contains(t, buf.String(), "No running backs")

	assert.Equal(t, p, DefaultProfile("Nobody"))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bears.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	r, err := LoadFile("Bears", path)
	require.NoError(t, err)
	assert.Len(t, r.Players, 6)

	_, err = LoadFile("Bears", filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
