package engine

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"
)

// Session owns one game: the board, the active batch, the score and the
// phase. Every mutation goes through a command method that validates the
// phase first; rejected commands change nothing and emit nothing.
//
// A Session is not safe for concurrent use. Drive it from one goroutine.
type Session struct {
	cfg    Config
	gen    *Generator
	sink   EventSink
	logger *log.Logger

	board         *Board
	batch         Batch
	score         int
	phase         Phase
	aiEnabled     bool
	aiBeforePause bool

	placements   int
	linesCleared int
	batches      int
}

// Option customizes a Session.
type Option func(*Session)

// WithSink routes events to sink.
func WithSink(sink EventSink) Option {
	return func(s *Session) {
		if sink != nil {
			s.sink = sink
		}
	}
}

// WithLogger sets the logger used for command and lifecycle messages.
func WithLogger(logger *log.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSession validates cfg and returns a session in PhaseStart.
func NewSession(cfg Config, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		cfg:    cfg,
		gen:    NewGenerator(cfg.Catalog, cfg.Palette, rand.New(rand.NewSource(cfg.Seed))),
		sink:   discardSink{},
		logger: log.New(io.Discard),
		board:  NewBoard(cfg.BoardSize),
		phase:  PhaseStart,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Config returns the session configuration.
func (s *Session) Config() Config {
	return s.cfg
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Score returns the current score.
func (s *Session) Score() int {
	return s.score
}

// AIEnabled reports whether autoplay is active.
func (s *Session) AIEnabled() bool {
	return s.aiEnabled
}

// Board returns a copy of the board.
func (s *Session) Board() *Board {
	return s.board.Clone()
}

// Batch returns a copy of the active batch.
func (s *Session) Batch() Batch {
	return s.batch.Clone()
}

// Shape returns the active shape with the given ID.
func (s *Session) Shape(id ShapeID) (ActiveShape, bool) {
	i := s.batch.Index(id)
	if i < 0 {
		return ActiveShape{}, false
	}
	return s.batch[i], true
}

// CanPlace reports whether the active shape id fits at (row, col).
// It is read-only and intended for placement previews.
func (s *Session) CanPlace(id ShapeID, row, col int) bool {
	shape, ok := s.Shape(id)
	if !ok {
		return false
	}
	return s.board.CanPlace(shape.Matrix, row, col)
}

// HasValidMoves reports whether any active shape fits anywhere.
func (s *Session) HasValidMoves() bool {
	return HasValidMoves(s.board, s.batch)
}

// Start begins a game: START → PLAYING with an empty board, zero score and
// a fresh batch.
func (s *Session) Start() error {
	if s.phase != PhaseStart {
		return s.reject("start", ErrInvalidPhase)
	}

	s.board.Clear()
	s.score = 0
	s.placements = 0
	s.linesCleared = 0
	s.batches = 0
	s.setPhase(PhasePlaying)
	s.emit(ScoreChanged{Score: 0})
	s.refillBatch()
	s.checkGameOver()
	return nil
}

// Pause freezes the game: PLAYING → PAUSED. Autoplay is suspended and
// restored by Resume.
func (s *Session) Pause() error {
	if s.phase != PhasePlaying {
		return s.reject("pause", ErrInvalidPhase)
	}

	s.aiBeforePause = s.aiEnabled
	s.setAI(false)
	s.setPhase(PhasePaused)
	return nil
}

// Resume continues a paused game: PAUSED → PLAYING, restoring autoplay.
func (s *Session) Resume() error {
	if s.phase != PhasePaused {
		return s.reject("resume", ErrInvalidPhase)
	}

	s.setPhase(PhasePlaying)
	s.setAI(s.aiBeforePause)
	s.aiBeforePause = false
	return nil
}

// Reset returns to START from any phase, clearing board, score, batch and
// the autoplay flag.
func (s *Session) Reset() error {
	var cleared []CellChange
	for _, c := range s.board.FilledCoords() {
		cleared = append(cleared, CellChange{Coord: c})
	}
	s.board.Clear()
	if len(cleared) > 0 {
		s.emit(BoardChanged{Cells: cleared})
	}

	if s.score != 0 {
		delta := -s.score
		s.score = 0
		s.emit(ScoreChanged{Score: 0, Delta: delta})
	}

	s.batch = nil
	s.aiBeforePause = false
	s.setAI(false)
	s.placements = 0
	s.linesCleared = 0
	s.batches = 0
	s.setPhase(PhaseStart)
	return nil
}

// SetAIEnabled turns autoplay on or off. Allowed in START and PLAYING; in
// PAUSED it changes the value restored on resume. Rejected in GAME_OVER.
func (s *Session) SetAIEnabled(enabled bool) error {
	switch s.phase {
	case PhaseStart, PhasePlaying:
		s.setAI(enabled)
	case PhasePaused:
		s.aiBeforePause = enabled
	default:
		return s.reject("set_ai", ErrInvalidPhase)
	}
	return nil
}

// Place puts the active shape id at (row, col). On success the shape is
// committed, full lines are cleared and scored, the shape leaves the batch,
// an empty batch is regenerated and the game-over condition is evaluated.
func (s *Session) Place(id ShapeID, row, col int) error {
	if s.phase != PhasePlaying {
		return s.reject("place", ErrInvalidPhase)
	}
	if len(s.batch) == 0 {
		return s.reject("place", ErrEmptyBatch)
	}
	idx := s.batch.Index(id)
	if idx < 0 {
		return s.reject("place", ErrUnknownShape)
	}
	shape := s.batch[idx]
	if !s.board.CanPlace(shape.Matrix, row, col) {
		return s.reject("place", ErrIllegalPlacement)
	}

	placed := s.board.Commit(shape.Matrix, row, col, shape.Color)
	changes := make([]CellChange, len(placed))
	for i, c := range placed {
		changes[i] = CellChange{Coord: c, Cell: Cell{Filled: true, Color: shape.Color}}
	}
	s.emit(BoardChanged{Cells: changes})
	s.placements++

	if res := ClearFullLines(s.board); res.Lines() > 0 {
		s.linesCleared += res.Lines()
		s.emit(LinesCleared{Rows: res.Rows, Cols: res.Cols})
		cleared := make([]CellChange, len(res.Cells))
		for i, c := range res.Cells {
			cleared[i] = CellChange{Coord: c}
		}
		s.emit(BoardChanged{Cells: cleared})
		s.score += res.Points
		s.emit(ScoreChanged{Score: s.score, Delta: res.Points})
		s.logger.Debug("lines cleared", "rows", res.Rows, "cols", res.Cols, "points", res.Points)
	}

	s.batch = s.batch.Remove(idx)
	s.emit(ShapeConsumed{ID: id})

	if len(s.batch) == 0 {
		s.refillBatch()
	}
	s.checkGameOver()
	return nil
}

// Regenerate discards the current batch and draws a new one. Used when the
// autoplayer finds no move. PLAYING only.
func (s *Session) Regenerate() error {
	if s.phase != PhasePlaying {
		return s.reject("regenerate", ErrInvalidPhase)
	}
	s.refillBatch()
	s.checkGameOver()
	return nil
}

// refillBatch replaces the batch with a fresh one from the generator.
func (s *Session) refillBatch() {
	s.batch = s.gen.Generate()
	s.batches++
	s.logger.Debug("batch generated", "batch", s.batches, "shapes", shapeNames(s.batch))
	s.emit(BatchGenerated{Shapes: s.batch.Clone()})
}

// checkGameOver ends the game if no active shape fits anywhere.
func (s *Session) checkGameOver() {
	if s.phase != PhasePlaying || len(s.batch) == 0 {
		return
	}
	if HasValidMoves(s.board, s.batch) {
		return
	}
	s.setPhase(PhaseGameOver)
	s.logger.Info("game over", "score", s.score, "placements", s.placements, "lines", s.linesCleared)
	s.emit(GameOver{FinalScore: s.score})
}

func (s *Session) setPhase(p Phase) {
	if s.phase == p {
		return
	}
	from := s.phase
	s.phase = p
	s.emit(PhaseChanged{From: from, To: p})
}

func (s *Session) setAI(enabled bool) {
	if s.aiEnabled == enabled {
		return
	}
	s.aiEnabled = enabled
	s.emit(AIChanged{Enabled: enabled})
}

func (s *Session) reject(command string, reason error) error {
	s.logger.Debug("command rejected", "command", command, "phase", s.phase, "reason", reason)
	return &CommandError{Command: command, Phase: s.phase, Err: reason}
}

func (s *Session) emit(evt Event) {
	s.sink.Emit(evt)
}

func shapeNames(b Batch) []string {
	names := make([]string, len(b))
	for i, sh := range b {
		names[i] = sh.Name
	}
	return names
}
