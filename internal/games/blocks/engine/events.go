package engine

import "sync"

// Event is a change notification emitted by a Session.
// Events are values; receivers must not rely on sharing state with the session.
type Event interface {
	engineEvent()
}

// PhaseChanged is emitted on every phase transition.
type PhaseChanged struct {
	From Phase
	To   Phase
}

func (PhaseChanged) engineEvent() {}

// CellChange is the new state of one board cell.
type CellChange struct {
	Coord Coord
	Cell  Cell
}

// BoardChanged lists cells whose contents changed.
type BoardChanged struct {
	Cells []CellChange
}

func (BoardChanged) engineEvent() {}

// LinesCleared reports the rows and columns removed by a placement.
type LinesCleared struct {
	Rows []int
	Cols []int
}

func (LinesCleared) engineEvent() {}

// ScoreChanged carries the new total score.
type ScoreChanged struct {
	Score int
	Delta int
}

func (ScoreChanged) engineEvent() {}

// BatchGenerated carries a newly drawn batch.
type BatchGenerated struct {
	Shapes Batch
}

func (BatchGenerated) engineEvent() {}

// ShapeConsumed is emitted when a shape leaves the batch by being placed.
type ShapeConsumed struct {
	ID ShapeID
}

func (ShapeConsumed) engineEvent() {}

// GameOver is emitted once when the session enters PhaseGameOver.
type GameOver struct {
	FinalScore int
}

func (GameOver) engineEvent() {}

// AIChanged is emitted when the autoplay flag flips.
type AIChanged struct {
	Enabled bool
}

func (AIChanged) engineEvent() {}

// EventSink receives events synchronously, in emission order.
type EventSink interface {
	Emit(evt Event)
}

// SinkFunc adapts a function to EventSink.
type SinkFunc func(evt Event)

// Emit calls f(evt).
func (f SinkFunc) Emit(evt Event) {
	f(evt)
}

// MultiSink fans events out to several sinks in order.
type MultiSink []EventSink

// Emit forwards evt to every sink.
func (m MultiSink) Emit(evt Event) {
	for _, s := range m {
		if s != nil {
			s.Emit(evt)
		}
	}
}

type discardSink struct{}

func (discardSink) Emit(Event) {}

// Recorder keeps every event it receives. Useful in tests and replays.
type Recorder struct {
	Events []Event
}

// Emit appends evt.
func (r *Recorder) Emit(evt Event) {
	r.Events = append(r.Events, evt)
}

// Reset drops recorded events.
func (r *Recorder) Reset() {
	r.Events = r.Events[:0]
}

// ChannelSink bridges events to a consumer on another goroutine.
// Emit never blocks: when the buffer is full the oldest event is dropped.
type ChannelSink struct {
	events    chan Event
	done      chan struct{}
	closeOnce sync.Once
}

// NewChannelSink creates a sink with the given buffer size (default 64).
func NewChannelSink(bufferSize int) *ChannelSink {
	if bufferSize < 1 {
		bufferSize = 64
	}
	return &ChannelSink{
		events: make(chan Event, bufferSize),
		done:   make(chan struct{}),
	}
}

// Emit queues evt, dropping the oldest queued event if the buffer is full.
func (s *ChannelSink) Emit(evt Event) {
	select {
	case <-s.done:
		return
	default:
	}

	select {
	case s.events <- evt:
	default:
		select {
		case <-s.events:
		default:
		}
		select {
		case s.events <- evt:
		default:
		}
	}
}

// Events returns the receive side of the buffer.
func (s *ChannelSink) Events() <-chan Event {
	return s.events
}

// Done is closed by Close.
func (s *ChannelSink) Done() <-chan struct{} {
	return s.done
}

// Close stops accepting events. Safe to call more than once.
func (s *ChannelSink) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}
