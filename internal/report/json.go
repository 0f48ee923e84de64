package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/lox/gridiron/internal/fileutil"
	"github.com/lox/gridiron/internal/football"
	"github.com/lox/gridiron/internal/simulator"
)

// BatchJSON is the machine-readable form of a batch report.
type BatchJSON struct {
	Games      int            `json:"games"`
	Seed       int64          `json:"seed"`
	DurationMS int64          `json:"duration_ms"`
	Teams      [2]TeamJSON    `json:"teams"`
	Ties       int            `json:"ties"`
	Margin     MarginJSON     `json:"margin"`
	DriveEnds  map[string]int `json:"drive_ends"`
}

// TeamJSON is one team's share of a batch.
type TeamJSON struct {
	Name       string             `json:"name"`
	QBSkill    float64            `json:"qb_skill"`
	Wins       int                `json:"wins"`
	WinRate    float64            `json:"win_rate"`
	MeanPoints float64            `json:"mean_points"`
	Totals     football.TeamStats `json:"totals"`
	PerGame    map[string]float64 `json:"per_game"`
}

// MarginJSON describes the distribution of team A's margin.
type MarginJSON struct {
	Mean        float64            `json:"mean"`
	StdDev      float64            `json:"std_dev"`
	StdError    float64            `json:"std_error"`
	CI95        [2]float64         `json:"ci95"`
	Median      float64            `json:"median"`
	Percentiles map[string]float64 `json:"percentiles"`
	Max         int                `json:"max"`
	MaxSeed     int64              `json:"max_seed"`
	Min         int                `json:"min"`
	MinSeed     int64              `json:"min_seed"`
	Blowouts    int                `json:"blowouts"`
}

// NewBatchJSON flattens a report.
func NewBatchJSON(rep *simulator.Report) BatchJSON {
	st := rep.Stats
	lo, hi := st.ConfidenceInterval95()

	out := BatchJSON{
		Games:      rep.Games,
		Seed:       rep.Seed,
		DurationMS: rep.Duration.Milliseconds(),
		Ties:       st.Ties,
		Margin: MarginJSON{
			Mean:     st.Mean(),
			StdDev:   st.StdDev(),
			StdError: st.StdError(),
			CI95:     [2]float64{lo, hi},
			Median:   st.Median(),
			Percentiles: map[string]float64{
				"p5":  st.Percentile(0.05),
				"p25": st.Percentile(0.25),
				"p75": st.Percentile(0.75),
				"p95": st.Percentile(0.95),
			},
			Max:      st.MaxMargin,
			MaxSeed:  st.MaxMarginSeed,
			Min:      st.MinMargin,
			MinSeed:  st.MinMarginSeed,
			Blowouts: st.Blowouts,
		},
		DriveEnds: make(map[string]int),
	}

	for end, n := range st.DriveEnds {
		out.DriveEnds[football.DriveEnd(end).String()] = n
	}

	for _, side := range []football.Side{football.TeamA, football.TeamB} {
		team := TeamJSON{
			Name:       rep.Teams[side].Name,
			QBSkill:    rep.Teams[side].QBSkill,
			Wins:       st.Wins[side],
			WinRate:    st.WinRate(side),
			MeanPoints: st.MeanPoints(side),
			Totals:     st.Totals[side],
			PerGame:    make(map[string]float64),
		}
		for _, c := range st.Totals[side].Counters() {
			team.PerGame[c.Name], _ = st.MeanStat(side, c.Name)
		}
		out.Teams[side] = team
	}
	return out
}

// EncodeJSON writes the report as indented JSON.
func EncodeJSON(w io.Writer, rep *simulator.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewBatchJSON(rep))
}

// WriteJSON writes the report to filename atomically.
func WriteJSON(filename string, rep *simulator.Report) error {
	err := fileutil.WriteAtomic(filename, 0o644, func(w io.Writer) error {
		return EncodeJSON(w, rep)
	})
	if err != nil {
		return fmt.Errorf("write report %s: %w", filename, err)
	}
	return nil
}
