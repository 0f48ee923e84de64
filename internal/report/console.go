// Package report renders game and batch results for the console and as JSON.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/lox/gridiron/internal/football"
	"github.com/lox/gridiron/internal/roster"
	"github.com/lox/gridiron/internal/simulator"
	"github.com/lox/gridiron/internal/statistics"
)

// Printer writes styled reports to a writer.
type Printer struct {
	w      io.Writer
	styles Styles
}

// NewPrinter creates a printer. With color false the output is plain text.
func NewPrinter(w io.Writer, color bool) *Printer {
	return &Printer{w: w, styles: NewStyles(NewRenderer(w, color))}
}

func (p *Printer) grid(headers []string, rows [][]string) string {
	s := p.styles
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.Border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := s.Cell
			if row == table.HeaderRow {
				style = s.Heading
			}
			if col > 0 {
				style = style.Align(lipgloss.Right)
			}
			return style
		}).
		String()
}

func (p *Printer) field(label, value string) string {
	return p.styles.Label.Render(label+":") + " " + p.styles.Value.Render(value)
}

func (p *Printer) write(lines ...string) error {
	_, err := io.WriteString(p.w, strings.Join(lines, "\n")+"\n")
	return err
}

// Game prints the end-of-game report: final score, both stat sheets side by
// side, how the drives ended and the roster ratings each team played with.
func (p *Printer) Game(r football.Result, profiles [2]roster.Profile) error {
	lines := append(p.resultLines(r), "", p.ratings(profiles))
	return p.write(lines...)
}

// Summary prints the end-of-game report without ratings, for results read
// back from a game history.
func (p *Printer) Summary(r football.Result) error {
	return p.write(p.resultLines(r)...)
}

func (p *Printer) resultLines(r football.Result) []string {
	s := p.styles
	names := r.Teams

	lines := []string{
		s.Header.Render("FINAL"),
		"",
		p.scoreLine(r),
	}
	if r.GameID != "" {
		lines = append(lines, s.Muted.Render("game "+r.GameID))
	}

	rows := make([][]string, 0, 20)
	statsA, statsB := r.Stats[football.TeamA].Counters(), r.Stats[football.TeamB].Counters()
	for i := range statsA {
		rows = append(rows, []string{statsA[i].Name, strconv.Itoa(statsA[i].Value), strconv.Itoa(statsB[i].Value)})
	}
	lines = append(lines, "", p.grid([]string{"stat", names[football.TeamA], names[football.TeamB]}, rows))

	var ends [2][football.EndExpired + 1]int
	for _, d := range r.Drives {
		ends[d.Offense][d.End]++
	}
	driveRows := make([][]string, 0, len(ends[0]))
	for end := football.EndTouchdown; end <= football.EndExpired; end++ {
		driveRows = append(driveRows, []string{end.String(), strconv.Itoa(ends[football.TeamA][end]), strconv.Itoa(ends[football.TeamB][end])})
	}
	return append(lines, "", p.grid([]string{"drives", names[football.TeamA], names[football.TeamB]}, driveRows))
}

func (p *Printer) scoreLine(r football.Result) string {
	s := p.styles
	a := fmt.Sprintf("%s %d", r.Teams[football.TeamA], r.Score[football.TeamA])
	b := fmt.Sprintf("%s %d", r.Teams[football.TeamB], r.Score[football.TeamB])
	switch side, ok := r.Winner(); {
	case !ok:
		return s.Value.Render(a + ", " + b + " (tie)")
	case side == football.TeamA:
		return s.Win.Render(a) + ", " + s.Loss.Render(b)
	default:
		return s.Loss.Render(a) + ", " + s.Win.Render(b)
	}
}

func (p *Printer) ratings(profiles [2]roster.Profile) string {
	rows := make([][]string, 0, 2)
	for _, pr := range profiles {
		qb := fmt.Sprintf("%.3f", pr.QBSkill)
		if pr.DefaultQBSkill {
			qb += " (default)"
		}
		rush := fmt.Sprintf("%.2f", pr.RushingAvg)
		if pr.DefaultRushingAvg {
			rush += " (default)"
		}
		rows = append(rows, []string{pr.Team, qb, rush})
	}
	return p.grid([]string{"team", "qb_skill", "rushing_avg"}, rows)
}

// Profile prints a roster profile.
func (p *Printer) Profile(pr roster.Profile) error {
	s := p.styles
	rows := [][]string{
		{"players", strconv.Itoa(pr.Players)},
		{"qb_skill", fmt.Sprintf("%.3f", pr.QBSkill)},
		{"rushing_avg", fmt.Sprintf("%.2f", pr.RushingAvg)},
		{"passing_yards", strconv.Itoa(pr.PassingYards)},
		{"rushing_yards", strconv.Itoa(pr.RushingYards)},
		{"sacks", strconv.Itoa(pr.Sacks)},
		{"interceptions", strconv.Itoa(pr.Interceptions)},
	}
	lines := []string{s.Header.Render(strings.ToUpper(pr.Team)), "", p.grid([]string{"rating", "value"}, rows)}
	if pr.DefaultQBSkill {
		lines = append(lines, s.Muted.Render("no quarterbacks listed, qb_skill is the default"))
	}
	if pr.DefaultRushingAvg {
		lines = append(lines, s.Muted.Render("no running backs listed, rushing_avg is the default"))
	}
	return p.write(lines...)
}

// Batch prints the aggregate of a batch run. Margins are team A's points
// minus team B's.
func (p *Printer) Batch(rep *simulator.Report) error {
	s := p.styles
	st := rep.Stats
	nameA, nameB := rep.Teams[football.TeamA].Name, rep.Teams[football.TeamB].Name

	lo, hi := st.ConfidenceInterval95()
	lines := []string{
		s.Header.Render(fmt.Sprintf("%s vs %s", nameA, nameB)),
		"",
		p.field("Games", fmt.Sprintf("%d (seeds %d..%d)", rep.Games, rep.Seed, rep.Seed+int64(rep.Games)-1)),
		p.field("Duration", rep.Duration.Round(time.Millisecond).String()),
		p.field("Record", fmt.Sprintf("%s %d (%.1f%%), %s %d (%.1f%%), ties %d",
			nameA, st.Wins[football.TeamA], st.WinRate(football.TeamA)*100,
			nameB, st.Wins[football.TeamB], st.WinRate(football.TeamB)*100,
			st.Ties)),
		p.field("Mean margin", fmt.Sprintf("%+.2f ± %.2f", st.Mean(), st.StdError())),
		p.field("95% CI", fmt.Sprintf("[%+.2f, %+.2f]", lo, hi)),
		p.field("Median", fmt.Sprintf("%+.1f", st.Median())),
		p.field("Std dev", fmt.Sprintf("%.2f", st.StdDev())),
		p.field("Percentiles", fmt.Sprintf("P5=%+.1f P25=%+.1f P75=%+.1f P95=%+.1f",
			st.Percentile(0.05), st.Percentile(0.25), st.Percentile(0.75), st.Percentile(0.95))),
		p.field("Extremes", fmt.Sprintf("%+d (seed %d), %+d (seed %d)", st.MaxMargin, st.MaxMarginSeed, st.MinMargin, st.MinMarginSeed)),
		p.field("Blowouts", fmt.Sprintf("%d (margin >= %d)", st.Blowouts, statistics.BlowoutMargin)),
		p.field("Drives/game", fmt.Sprintf("%.1f", st.DrivesPerGame())),
	}

	rows := [][]string{{
		"points",
		fmt.Sprintf("%.1f", st.MeanPoints(football.TeamA)),
		fmt.Sprintf("%.1f", st.MeanPoints(football.TeamB)),
	}}
	for _, c := range st.Totals[football.TeamA].Counters() {
		a, _ := st.MeanStat(football.TeamA, c.Name)
		b, _ := st.MeanStat(football.TeamB, c.Name)
		rows = append(rows, []string{c.Name, fmt.Sprintf("%.1f", a), fmt.Sprintf("%.1f", b)})
	}
	lines = append(lines, "", p.grid([]string{"per game", nameA, nameB}, rows))
	return p.write(lines...)
}
