// Package blocks adapts the block puzzle engine to the arcade platform:
// it maps input actions to session commands, drives the autoplayer from the
// tick loop and renders the session into a core.Screen.
package blocks

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks/engine"
	"github.com/vovakirdan/tui-blocks/internal/registry"
)

// Mode selects who plays when a game starts.
type Mode int

const (
	ModeHuman Mode = iota // player places shapes, AI can be toggled on
	ModeAI                // AI starts enabled
)

const (
	flashTicks  = 8  // line-clear highlight duration
	statusTicks = 60 // status line lifetime
)

// configPath stores the custom config path set via CLI
var configPath string

// logger receives session and agent logs
var logger = log.New(io.Discard)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetLogger routes engine logs to l.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

func init() {
	registry.Register("blocks", func() registry.Game {
		return New()
	})
	registry.Register("blocks_ai", func() registry.Game {
		return NewAI()
	})
}

// Game implements registry.Game on top of an engine.Session.
type Game struct {
	mode Mode

	cfg     config.BlocksConfig
	colors  []core.Color
	session *engine.Session
	agent   *engine.Agent
	events  *engine.Recorder

	tickRate int
	tick     uint64

	// Cursor is the top-left cell of the selected shape's placement.
	cursorRow int
	cursorCol int
	selected  int // index into the batch

	flash      map[engine.Coord]bool
	flashLeft  int
	status     string
	statusLeft int

	screenW  int
	screenH  int
	tooSmall bool
}

// New creates a game played by a human.
func New() *Game {
	return &Game{mode: ModeHuman}
}

// NewAI creates a game that starts in autoplay.
func NewAI() *Game {
	return &Game{mode: ModeAI}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.mode == ModeAI {
		return "blocks_ai"
	}
	return "blocks"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == ModeAI {
		return "Blocks (AI)"
	}
	return "Blocks"
}

// Reset loads the configuration and starts a fresh session.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH
	g.tickRate = max(1, rc.TickRate)
	g.tick = 0
	g.flash = nil
	g.flashLeft = 0
	g.status = ""
	g.statusLeft = 0

	g.cfg = g.loadConfig()
	ec, err := g.cfg.EngineConfig(rc.Seed)
	if err == nil {
		g.colors, err = g.cfg.Colors()
	}
	if err != nil {
		logger.Warn("invalid config, using defaults", "err", err)
		g.setStatus("config error, using defaults")
		g.cfg = config.DefaultBlocksConfig()
		ec, _ = g.cfg.EngineConfig(rc.Seed)
		g.colors, _ = g.cfg.Colors()
	}

	g.events = &engine.Recorder{}
	g.session, err = engine.NewSession(ec, engine.WithSink(g.events), engine.WithLogger(logger))
	if err != nil {
		// the default config always validates
		panic(err)
	}
	g.agent = engine.NewAgent(g.session, engine.WithAgentLogger(logger))

	g.start()
	g.checkScreenSize()
}

// loadConfig reads the YAML config, falling back to defaults on error.
func (g *Game) loadConfig() config.BlocksConfig {
	cfg, err := config.LoadBlocks(configPath)
	if err != nil {
		logger.Warn("using default config", "err", err)
		g.setStatus("config error, using defaults")
		return config.DefaultBlocksConfig()
	}
	return cfg
}

// start moves the session from START to PLAYING in the game's mode.
func (g *Game) start() {
	g.agent.Cancel()
	if g.mode == ModeAI {
		_ = g.session.SetAIEnabled(true)
	}
	_ = g.session.Start()
	g.selected = 0
	g.cursorRow, g.cursorCol = 0, 0
	g.drainEvents()
	g.clampCursor()
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	minW, minH := g.minScreenSize()
	g.tooSmall = g.screenW < minW || g.screenH < minH
	if g.tooSmall {
		// the agent is not stepped while hidden; replan with a fresh delay
		g.agent.Cancel()
	}
}

// Resize updates the screen dimensions and keeps the session going.
func (g *Game) Resize(w, h int) {
	g.screenW, g.screenH = w, h
	g.checkScreenSize()
}

// Session exposes the underlying engine session.
func (g *Game) Session() *engine.Session {
	return g.session
}

// Elapsed converts ticks to the agent's clock.
func (g *Game) Elapsed() time.Duration {
	return time.Duration(g.tick) * time.Second / time.Duration(g.tickRate)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	g.handleInput(in)

	if _, err := g.agent.Step(g.Elapsed()); err != nil {
		logger.Error("autoplay move rejected", "reason", engine.Reason(err), "err", err)
	}
	g.drainEvents()

	if g.flashLeft > 0 {
		g.flashLeft--
		if g.flashLeft == 0 {
			g.flash = nil
		}
	}
	if g.statusLeft > 0 {
		g.statusLeft--
		if g.statusLeft == 0 {
			g.status = ""
		}
	}

	return core.StepResult{State: g.State(), Status: g.status}
}

// handleInput maps actions to session commands.
func (g *Game) handleInput(in core.InputFrame) {
	if in.Has(core.ActionRestart) {
		_ = g.session.Reset()
		g.flash = nil
		g.start()
		return
	}

	if in.Has(core.ActionPause) {
		switch g.session.Phase() {
		case engine.PhasePlaying:
			_ = g.session.Pause()
		case engine.PhasePaused:
			_ = g.session.Resume()
		}
	}

	if in.Has(core.ActionToggleAI) {
		if err := g.session.SetAIEnabled(!g.session.AIEnabled()); err != nil {
			g.reportRejection(err)
		}
	}

	// Manual play only while the AI is off.
	if g.session.Phase() != engine.PhasePlaying || g.session.AIEnabled() {
		return
	}

	for _, a := range []core.Action{core.ActionSelect1, core.ActionSelect2, core.ActionSelect3} {
		if in.Has(a) {
			g.selectShape(a.SelectIndex())
		}
	}
	if in.Has(core.ActionNextShape) {
		if n := len(g.session.Batch()); n > 0 {
			g.selectShape((g.selected + 1) % n)
		}
	}

	switch {
	case in.Has(core.ActionUp):
		g.cursorRow--
	case in.Has(core.ActionDown):
		g.cursorRow++
	}
	switch {
	case in.Has(core.ActionLeft):
		g.cursorCol--
	case in.Has(core.ActionRight):
		g.cursorCol++
	}
	g.clampCursor()

	if in.Has(core.ActionConfirm) {
		g.placeSelected()
	}
}

// selectShape makes batch slot i the current shape if it exists.
func (g *Game) selectShape(i int) {
	if i < 0 || i >= len(g.session.Batch()) {
		return
	}
	g.selected = i
	g.clampCursor()
}

// selectedShape returns the shape under the cursor, if any.
func (g *Game) selectedShape() (engine.ActiveShape, bool) {
	batch := g.session.Batch()
	if g.selected < 0 || g.selected >= len(batch) {
		return engine.ActiveShape{}, false
	}
	return batch[g.selected], true
}

// clampCursor keeps the selected shape inside the board.
func (g *Game) clampCursor() {
	n := g.cfg.Board.Size
	h, w := 1, 1
	if sh, ok := g.selectedShape(); ok {
		h, w = sh.Matrix.Height(), sh.Matrix.Width()
	}
	g.cursorRow = core.Clamp(g.cursorRow, 0, max(0, n-h))
	g.cursorCol = core.Clamp(g.cursorCol, 0, max(0, n-w))
}

// placeSelected issues a Place command for the selected shape at the cursor.
func (g *Game) placeSelected() {
	sh, ok := g.selectedShape()
	if !ok {
		return
	}
	if err := g.session.Place(sh.ID, g.cursorRow, g.cursorCol); err != nil {
		g.reportRejection(err)
	}
}

// reportRejection turns a command error into a status line.
func (g *Game) reportRejection(err error) {
	logger.Debug("command rejected", "reason", engine.Reason(err), "phase", g.session.Phase())
	switch {
	case errors.Is(err, engine.ErrIllegalPlacement):
		g.setStatus("Doesn't fit there")
	case errors.Is(err, engine.ErrInvalidPhase):
		g.setStatus(fmt.Sprintf("Not allowed while %s", g.session.Phase()))
	case errors.Is(err, engine.ErrUnknownShape), errors.Is(err, engine.ErrEmptyBatch):
		g.setStatus("No shape selected")
	default:
		g.setStatus(err.Error())
	}
}

// drainEvents applies queued engine events to the view state.
func (g *Game) drainEvents() {
	for _, evt := range g.events.Events {
		switch e := evt.(type) {
		case engine.LinesCleared:
			g.startFlash(e.Rows, e.Cols)
			g.setStatus(fmt.Sprintf("+%d", engine.LinePoints(len(e.Rows), len(e.Cols))))
		case engine.BatchGenerated:
			g.selected = 0
		case engine.ShapeConsumed:
			if n := len(g.session.Batch()); g.selected >= n {
				g.selected = max(0, n-1)
			}
		case engine.AIChanged:
			if e.Enabled {
				g.setStatus("Autoplay on")
			} else if g.session.Phase() != engine.PhasePaused {
				g.setStatus("Autoplay off")
			}
		case engine.GameOver:
			logger.Info("game finished", "id", g.ID(), "score", e.FinalScore)
		}
	}
	g.events.Reset()
	g.clampCursor()
}

// startFlash highlights the cleared lines for a few ticks.
func (g *Game) startFlash(rows, cols []int) {
	n := g.cfg.Board.Size
	g.flash = make(map[engine.Coord]bool)
	for _, r := range rows {
		for c := 0; c < n; c++ {
			g.flash[engine.At(r, c)] = true
		}
	}
	for _, c := range cols {
		for r := 0; r < n; r++ {
			g.flash[engine.At(r, c)] = true
		}
	}
	g.flashLeft = flashTicks
}

func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusLeft = statusTicks
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	phase := g.session.Phase()
	return core.GameState{
		Score:     g.session.Score(),
		GameOver:  phase == engine.PhaseGameOver,
		Paused:    phase == engine.PhasePaused || g.tooSmall,
		AIEnabled: g.session.AIEnabled(),
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD: Move | 1-3/Tab: Shape | Enter/Space: Place | I: AI | P: Pause | R: Restart | Q: Quit"
}
