package football

// EventType identifies a game event.
type EventType string

const (
	EventTypePossessionStart EventType = "possession_start"
	EventTypePlay            EventType = "play"
	EventTypeScore           EventType = "score"
	EventTypePossessionEnd   EventType = "possession_end"
	EventTypeQuarterEnd      EventType = "quarter_end"
	EventTypeGameEnd         EventType = "game_end"
)

func (et EventType) String() string {
	return string(et)
}

// GameEvent is anything the engines publish while a game runs. Events carry
// game time, not wall time, so a replay with the same seed publishes an
// identical stream.
type GameEvent interface {
	EventType() EventType
}

// PossessionStartEvent is published before the first snap of a possession.
type PossessionStartEvent struct {
	Offense          Side
	Quarter          int
	Clock            int
	YardsToTouchdown int
	Score            [2]int
}

func (e PossessionStartEvent) EventType() EventType { return EventTypePossessionStart }

// PlayEvent describes one snap. Quarter, Clock and Drive are the situation
// before the snap.
type PlayEvent struct {
	Offense Side
	Quarter int
	Clock   int
	Drive   Drive
	Action  Action
	Outcome PlayOutcome
	Elapsed int
}

func (e PlayEvent) EventType() EventType { return EventTypePlay }

// ScoreKind is the kind of scoring attempt.
type ScoreKind int

const (
	Touchdown ScoreKind = iota
	FieldGoalMade
	FieldGoalMissed
)

func (k ScoreKind) String() string {
	return [...]string{"touchdown", "field_goal_made", "field_goal_missed"}[k]
}

// ScoreEvent is published for touchdowns and for every field goal attempt.
type ScoreEvent struct {
	Offense    Side
	Kind       ScoreKind
	Points     int
	ExtraPoint bool // touchdowns only
	Distance   int  // kick distance, field goals only
	Score      [2]int
}

func (e ScoreEvent) EventType() EventType { return EventTypeScore }

// PossessionEndEvent closes a possession.
type PossessionEndEvent struct {
	Summary DriveSummary
	Quarter int
	Clock   int
}

func (e PossessionEndEvent) EventType() EventType { return EventTypePossessionEnd }

// QuarterEndEvent is published whenever the clock rolls into a new quarter.
type QuarterEndEvent struct {
	Quarter int // the quarter that just ended
	Score   [2]int
}

func (e QuarterEndEvent) EventType() EventType { return EventTypeQuarterEnd }

// GameEndEvent is the final event of a game.
type GameEndEvent struct {
	Result Result
}

func (e GameEndEvent) EventType() EventType { return EventTypeGameEnd }

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// SubscriberFunc adapts a function to EventSubscriber.
type SubscriberFunc func(event GameEvent)

// OnEvent calls f.
func (f SubscriberFunc) OnEvent(event GameEvent) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus delivers events synchronously, in subscription order.
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}

// Recorder keeps every event it sees. Useful for tests and for building
// artefacts after the game finishes.
type Recorder struct {
	Events []GameEvent
}

// OnEvent appends event.
func (r *Recorder) OnEvent(event GameEvent) {
	r.Events = append(r.Events, event)
}

// Plays returns the recorded play events.
func (r *Recorder) Plays() []PlayEvent {
	var plays []PlayEvent
	for _, e := range r.Events {
		if p, ok := e.(PlayEvent); ok {
			plays = append(plays, p)
		}
	}
	return plays
}

// Count returns how many events of the given type were recorded.
func (r *Recorder) Count(et EventType) int {
	n := 0
	for _, e := range r.Events {
		if e.EventType() == et {
			n++
		}
	}
	return n
}
