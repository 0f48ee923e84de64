package football

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// FormattingOptions controls how events are rendered as text.
type FormattingOptions struct {
	Teams      [2]string // display names, defaults to "A" and "B"
	ShowDrives bool      // append a drive summary line to possession ends
}

// EventFormatter renders game events as play-by-play lines.
type EventFormatter struct {
	opts FormattingOptions
}

// NewEventFormatter creates a new event formatter with the given options
func NewEventFormatter(opts FormattingOptions) *EventFormatter {
	return &EventFormatter{opts: opts}
}

func (ef *EventFormatter) team(side Side) string {
	if name := ef.opts.Teams[side]; name != "" {
		return name
	}
	return side.String()
}

func (ef *EventFormatter) score(score [2]int) string {
	return fmt.Sprintf("%s %d, %s %d", ef.team(TeamA), score[TeamA], ef.team(TeamB), score[TeamB])
}

// Format renders any event. Unknown events render as an empty string.
func (ef *EventFormatter) Format(event GameEvent) string {
	switch e := event.(type) {
	case PossessionStartEvent:
		return ef.FormatPossessionStart(e)
	case PlayEvent:
		return ef.FormatPlay(e)
	case ScoreEvent:
		return ef.FormatScore(e)
	case PossessionEndEvent:
		return ef.FormatPossessionEnd(e)
	case QuarterEndEvent:
		return fmt.Sprintf("=== End of Q%d: %s ===", e.Quarter, ef.score(e.Score))
	case GameEndEvent:
		return ef.FormatGameEnd(e)
	default:
		return ""
	}
}

// FormatPossessionStart formats the header printed before a drive.
func (ef *EventFormatter) FormatPossessionStart(e PossessionStartEvent) string {
	return fmt.Sprintf("\nQ%d %s - %s ball, %d yards to go (%s)",
		e.Quarter, FormatClock(e.Clock), ef.team(e.Offense), e.YardsToTouchdown, ef.score(e.Score))
}

// FormatPlay formats a single snap.
func (ef *EventFormatter) FormatPlay(e PlayEvent) string {
	return fmt.Sprintf("Q%d %s | %s | %s: %s, %s (%ds)",
		e.Quarter, FormatClock(e.Clock), e.Drive, e.Action, describeOutcome(e.Outcome), yards(e.Outcome.Yards), e.Elapsed)
}

func describeOutcome(o PlayOutcome) string {
	switch o.Result {
	case ResultComplete:
		return "complete"
	case ResultIncomplete:
		return "incomplete"
	case ResultSack:
		return "sacked"
	case ResultInterception:
		return "INTERCEPTED"
	case ResultPuntAttempt:
		return "punt away"
	case ResultFieldGoalAttempt:
		return "kick is up"
	default:
		return o.Result.String()
	}
}

func yards(n int) string {
	switch {
	case n == 1 || n == -1:
		return fmt.Sprintf("%+d yard", n)
	default:
		return fmt.Sprintf("%+d yards", n)
	}
}

// FormatScore formats touchdowns and field goal attempts.
func (ef *EventFormatter) FormatScore(e ScoreEvent) string {
	team := ef.team(e.Offense)
	switch e.Kind {
	case Touchdown:
		pat := "extra point good"
		if !e.ExtraPoint {
			pat = "extra point missed"
		}
		return fmt.Sprintf("TOUCHDOWN %s! %s. %s", team, pat, ef.score(e.Score))
	case FieldGoalMade:
		return fmt.Sprintf("%s %d-yard field goal is GOOD. %s", team, e.Distance, ef.score(e.Score))
	default:
		return fmt.Sprintf("%s %d-yard field goal is no good.", team, e.Distance)
	}
}

// FormatPossessionEnd formats the change of possession.
func (ef *EventFormatter) FormatPossessionEnd(e PossessionEndEvent) string {
	s := e.Summary
	receiver := ef.team(s.Offense.Opponent())

	var line string
	switch s.End {
	case EndTouchdown, EndFieldGoal:
		line = fmt.Sprintf("Kickoff. %s takes over %d yards out.", receiver, s.NextYardsToTouchdown)
	case EndPunt:
		line = fmt.Sprintf("Punt of %d yards. %s takes over %d yards out.", s.PuntDistance, receiver, s.NextYardsToTouchdown)
	case EndInterception:
		line = fmt.Sprintf("Interception! %s takes over %d yards out.", receiver, s.NextYardsToTouchdown)
	case EndDowns:
		line = fmt.Sprintf("Turnover on downs. %s takes over %d yards out.", receiver, s.NextYardsToTouchdown)
	case EndExpired:
		line = "Time expires."
	}

	if ef.opts.ShowDrives {
		line += fmt.Sprintf("\n  drive: %s, %d plays, %s, %s", ef.team(s.Offense), s.Plays, yards(s.NetYards), FormatClock(s.Elapsed))
	}
	return line
}

// FormatGameEnd formats the final score line and both stat sheets.
func (ef *EventFormatter) FormatGameEnd(e GameEndEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\nFinal: %s\n", ef.score(e.Result.Score))
	for _, side := range []Side{TeamA, TeamB} {
		fmt.Fprintf(&b, "\n%s stats:\n", ef.team(side))
		for _, c := range e.Result.Stats[side].Counters() {
			fmt.Fprintf(&b, "  %s: %d\n", c.Name, c.Value)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// WriterSubscriber writes formatted events to an io.Writer, one per line.
type WriterSubscriber struct {
	w         io.Writer
	formatter *EventFormatter
	err       error
}

// NewWriterSubscriber creates a text sink.
func NewWriterSubscriber(w io.Writer, opts FormattingOptions) *WriterSubscriber {
	return &WriterSubscriber{w: w, formatter: NewEventFormatter(opts)}
}

// OnEvent writes the event. After the first write error every later event is
// dropped; see Err.
func (s *WriterSubscriber) OnEvent(event GameEvent) {
	if s.err != nil {
		return
	}
	text := s.formatter.Format(event)
	if text == "" {
		return
	}
	_, s.err = io.WriteString(s.w, text+"\n")
}

// Err returns the first write error, if any.
func (s *WriterSubscriber) Err() error {
	return s.err
}

// LogSubscriber emits events as structured log records.
type LogSubscriber struct {
	logger *log.Logger
	teams  [2]string
}

// NewLogSubscriber logs events at info level; plays log at debug.
func NewLogSubscriber(logger *log.Logger, teams [2]string) *LogSubscriber {
	return &LogSubscriber{logger: logger.WithPrefix("pbp"), teams: teams}
}

func (s *LogSubscriber) name(side Side) string {
	if s.teams[side] != "" {
		return s.teams[side]
	}
	return side.String()
}

// OnEvent logs the event.
func (s *LogSubscriber) OnEvent(event GameEvent) {
	switch e := event.(type) {
	case PossessionStartEvent:
		s.logger.Info("Possession", "team", s.name(e.Offense), "quarter", e.Quarter, "clock", FormatClock(e.Clock), "ytd", e.YardsToTouchdown)
	case PlayEvent:
		s.logger.Debug("Play",
			"team", s.name(e.Offense),
			"quarter", e.Quarter,
			"clock", FormatClock(e.Clock),
			"down", e.Drive.Down,
			"togo", e.Drive.YardsToFirstDown,
			"ytd", e.Drive.YardsToTouchdown,
			"action", e.Action,
			"result", e.Outcome.Result,
			"yards", e.Outcome.Yards,
			"elapsed", e.Elapsed)
	case ScoreEvent:
		s.logger.Info("Score", "team", s.name(e.Offense), "kind", e.Kind, "points", e.Points, "scoreA", e.Score[TeamA], "scoreB", e.Score[TeamB])
	case PossessionEndEvent:
		s.logger.Info("Drive", "team", s.name(e.Summary.Offense), "end", e.Summary.End, "plays", e.Summary.Plays, "yards", e.Summary.NetYards, "next", e.Summary.NextYardsToTouchdown)
	case QuarterEndEvent:
		s.logger.Info("Quarter over", "quarter", e.Quarter, "scoreA", e.Score[TeamA], "scoreB", e.Score[TeamB])
	case GameEndEvent:
		s.logger.Info("Final", "scoreA", e.Result.Score[TeamA], "scoreB", e.Result.Score[TeamB])
	}
}
