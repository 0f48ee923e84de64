package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/gridiron/internal/football"
	"github.com/lox/gridiron/internal/randutil"
	"github.com/lox/gridiron/internal/roster"
	"github.com/lox/gridiron/internal/simulator"
	"github.com/lox/gridiron/internal/statistics"
)

func sampleReport(t *testing.T) *simulator.Report {
	t.Helper()
	teams := [2]simulator.Team{{Name: "Bears", QBSkill: 0.03}, {Name: "Lions", QBSkill: 0.05}}
	stats := &statistics.Statistics{}
	for seed := int64(0); seed < 10; seed++ {
		r := football.Simulate(randutil.New(seed), football.WithQBSkill(football.TeamB, 0.05))
		stats.Add(statistics.FromResult(seed, r))
	}
	return &simulator.Report{Games: 10, Seed: 0, Teams: teams, Stats: stats, Duration: 1500 * time.Millisecond}
}

func TestPrinter_Game(t *testing.T) {
	result := football.Simulate(randutil.New(4), football.WithTeamNames("Bears", "Lions"), football.WithGameID("g-4"))
	profiles := [2]roster.Profile{roster.DefaultProfile("Bears"), {Team: "Lions", QBSkill: 0.612, RushingAvg: 4.41}}

	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf, false).Game(result, profiles))
	out := buf.String()

	assert.NotContains(t, out, "\x1b[", "no escape codes without color")
	assert.Contains(t, out, "FINAL")
	assert.Contains(t, out, "game g-4")
	assert.Contains(t, out, "Bears")
	for _, c := range result.Stats[football.TeamA].Counters() {
		assert.Contains(t, out, c.Name)
	}
	assert.Contains(t, out, "touchdown")
	assert.Contains(t, out, "0.030 (default)")
	assert.Contains(t, out, "4.00 (default)")
	assert.Contains(t, out, "0.612")
	assert.Contains(t, out, "4.41")
}

func TestPrinter_Summary(t *testing.T) {
	result := football.Simulate(randutil.New(4), football.WithTeamNames("Bears", "Lions"))

	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf, false).Summary(result))
	out := buf.String()
	assert.Contains(t, out, "FINAL")
	assert.Contains(t, out, "punt")
	assert.NotContains(t, out, "game ", "no id line without an id")
	assert.NotContains(t, out, "qb_skill")
}

func TestPrinter_ScoreLine(t *testing.T) {
	p := NewPrinter(&bytes.Buffer{}, false)
	teams := [2]string{"Bears", "Lions"}
	assert.Equal(t, "Bears 7, Lions 7 (tie)", p.scoreLine(football.Result{Teams: teams, Score: [2]int{7, 7}}))
	assert.Equal(t, "Bears 10, Lions 3", p.scoreLine(football.Result{Teams: teams, Score: [2]int{10, 3}}))
}

func TestPrinter_Profile(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf, false).Profile(roster.DefaultProfile("Nobody")))
	out := buf.String()
	assert.Contains(t, out, "NOBODY")
	assert.Contains(t, out, "rushing_avg")
	assert.Contains(t, out, "no quarterbacks listed")
	assert.Contains(t, out, "no running backs listed")
}

func TestPrinter_Batch(t *testing.T) {
	rep := sampleReport(t)

	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf, false).Batch(rep))
	out := buf.String()

	assert.Contains(t, out, "Bears vs Lions")
	assert.Contains(t, out, "Games: 10 (seeds 0..9)")
	assert.Contains(t, out, "Duration: 1.5s")
	assert.Contains(t, out, "95% CI")
	assert.Contains(t, out, "per game")
	assert.Contains(t, out, "punt_yards")
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestPrinter_WriteError(t *testing.T) {
	assert.Error(t, NewPrinter(brokenWriter{}, false).Profile(roster.DefaultProfile("X")))
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, 20, false)

	line := p.Line(5, 10)
	assert.Contains(t, line, "5/10")
	assert.Contains(t, line, "50%")
	assert.Contains(t, line, "#")
	assert.Contains(t, line, "-")

	assert.Contains(t, p.Line(0, 0), "0/0")

	p.Update(1, 4)
	p.Update(4, 4)
	require.NoError(t, p.Finish())
	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "\r"))
	assert.True(t, strings.HasSuffix(out, "4/4\n"))
}

func TestProgress_StopsOnError(t *testing.T) {
	p := NewProgress(brokenWriter{}, 10, false)
	p.Update(1, 2)
	p.Update(2, 2)
	assert.Error(t, p.Finish())
}

func TestBatchJSON(t *testing.T) {
	rep := sampleReport(t)
	out := NewBatchJSON(rep)

	assert.Equal(t, 10, out.Games)
	assert.Equal(t, int64(1500), out.DurationMS)
	assert.Equal(t, "Bears", out.Teams[0].Name)
	assert.Equal(t, 0.05, out.Teams[1].QBSkill)
	assert.Equal(t, rep.Stats.Ties, out.Ties)
	assert.Equal(t, 10, out.Teams[0].Wins+out.Teams[1].Wins+out.Ties)
	assert.Len(t, out.DriveEnds, 6)
	assert.Contains(t, out.Margin.Percentiles, "p95")
	assert.LessOrEqual(t, out.Margin.CI95[0], out.Margin.Mean)
	assert.Len(t, out.Teams[0].PerGame, len(football.TeamStats{}.Counters()))
}

func TestWriteJSON(t *testing.T) {
	rep := sampleReport(t)
	path := filepath.Join(t.TempDir(), "out", "batch.json")
	require.NoError(t, WriteJSON(path, rep))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded BatchJSON
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, NewBatchJSON(rep).Teams, decoded.Teams)
	assert.Contains(t, string(data), `"y_passing"`)
}
