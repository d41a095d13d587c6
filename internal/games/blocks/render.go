package blocks

import (
	"fmt"

	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks/engine"
)

// Each board cell is two characters wide so cells look square.
const cellW = 2

const (
	glyphFilled  = "██"
	glyphEmpty   = "· "
	glyphGhost   = "▒▒"
	glyphBlocked = "░░"
	glyphFlash   = "▓▓"
)

const hudHeight = 3

// layout holds the computed screen positions for one frame.
type layout struct {
	boardX, boardY     int
	previewX, previewY int
	slotW              int
	statusY            int
}

// maxShapeDim is the largest side of any catalog shape.
func (g *Game) maxShapeDim() int {
	d := 1
	for _, s := range g.session.Config().Catalog.Shapes() {
		d = max(d, s.Matrix.Height(), s.Matrix.Width())
	}
	return d
}

// minScreenSize returns the smallest screen the layout fits in.
func (g *Game) minScreenSize() (int, int) {
	n := g.cfg.Board.Size
	dim := g.maxShapeDim()
	boardW := n*cellW + 2
	previewW := engine.BatchSize * (dim*cellW + 2)
	w := max(boardW, previewW)
	h := hudHeight + n + 2 + 1 + 1 + dim + 1
	return w, h
}

func (g *Game) layout() layout {
	n := g.cfg.Board.Size
	dim := g.maxShapeDim()
	boardW := n*cellW + 2
	slotW := dim*cellW + 2
	previewW := engine.BatchSize * slotW
	totalW := max(boardW, previewW)
	left := (g.screenW - totalW) / 2

	l := layout{
		boardX:   left + (totalW-boardW)/2,
		boardY:   hudHeight,
		previewX: left + (totalW-previewW)/2,
		slotW:    slotW,
	}
	l.previewY = l.boardY + n + 2 + 1
	l.statusY = l.previewY + 1 + dim
	return l
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	l := g.layout()
	g.renderHUD(dst)
	g.renderBoard(dst, l)
	g.renderBatch(dst, l)
	if g.status != "" {
		dst.DrawTextCentered(l.statusY, g.status)
	}
	g.renderOverlays(dst, l)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	minW, minH := g.minScreenSize()
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", minW, minH))
}

func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawTextCentered(0, g.Title())

	score := fmt.Sprintf("Score: %d", g.session.Score())
	ai := "AI: off"
	aiColor := core.ColorGray
	if g.session.AIEnabled() {
		ai = "AI: on"
		aiColor = core.ColorBrightGreen
	}
	l := g.layout()
	right := l.boardX + g.cfg.Board.Size*cellW + 2
	dst.DrawText(l.boardX, 1, score)
	dst.DrawTextColored(right-len(ai), 1, ai, aiColor)
}

// cellColor maps an engine color to a screen color.
func (g *Game) cellColor(id engine.ColorID) core.Color {
	i := int(id) - 1
	if i < 0 || i >= len(g.colors) {
		return core.ColorWhite
	}
	return g.colors[i]
}

func (g *Game) renderBoard(dst *core.Screen, l layout) {
	n := g.cfg.Board.Size
	board := g.session.Board()

	dst.DrawBox(core.NewRect(l.boardX, l.boardY, n*cellW+2, n+2), core.ColorGray)

	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			x, y := g.cellPos(l, row, col)
			cell := board.Get(row, col)
			switch {
			case g.flash[engine.At(row, col)]:
				dst.DrawTextColored(x, y, glyphFlash, core.ColorBrightWhite)
			case cell.Filled:
				dst.DrawTextColored(x, y, glyphFilled, g.cellColor(cell.Color))
			default:
				dst.DrawTextColored(x, y, glyphEmpty, core.ColorGray)
			}
		}
	}

	g.renderGhost(dst, l, board)
}

// renderGhost previews where the current shape would land: the cursor
// for a human, the pending move for the AI.
func (g *Game) renderGhost(dst *core.Screen, l layout, board *engine.Board) {
	if g.session.Phase() != engine.PhasePlaying {
		return
	}

	var (
		shape    engine.ActiveShape
		row, col int
		ok       bool
	)
	if g.session.AIEnabled() {
		var m engine.Move
		if m, ok = g.agent.Pending(); ok {
			shape, ok = g.session.Shape(m.ShapeID)
			row, col = m.Row, m.Col
		}
	} else {
		shape, ok = g.selectedShape()
		row, col = g.cursorRow, g.cursorCol
	}
	if !ok {
		return
	}

	glyph, color := glyphGhost, g.cellColor(shape.Color)
	if !board.CanPlace(shape.Matrix, row, col) {
		glyph, color = glyphBlocked, core.ColorBrightRed
	}
	for _, off := range shape.Matrix.Offsets() {
		r, c := row+off.Row, col+off.Col
		if !board.InBounds(r, c) || (board.Filled(r, c) && glyph == glyphGhost) {
			continue
		}
		x, y := g.cellPos(l, r, c)
		dst.DrawTextColored(x, y, glyph, color)
	}
}

func (g *Game) cellPos(l layout, row, col int) (int, int) {
	return l.boardX + 1 + col*cellW, l.boardY + 1 + row
}

// renderBatch draws the active shapes side by side under the board.
func (g *Game) renderBatch(dst *core.Screen, l layout) {
	batch := g.session.Batch()
	for i := 0; i < engine.BatchSize; i++ {
		x := l.previewX + i*l.slotW
		label := fmt.Sprintf(" %d", i+1)
		labelColor := core.ColorGray
		if i == g.selected && !g.session.AIEnabled() && i < len(batch) {
			label = fmt.Sprintf(">%d", i+1)
			labelColor = core.ColorBrightYellow
		}
		dst.DrawTextColored(x, l.previewY, label, labelColor)

		if i >= len(batch) {
			continue
		}
		sh := batch[i]
		color := g.cellColor(sh.Color)
		for _, off := range sh.Matrix.Offsets() {
			dst.DrawTextColored(x+1+off.Col*cellW, l.previewY+1+off.Row, glyphFilled, color)
		}
	}
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, l layout) {
	n := g.cfg.Board.Size
	centerX := l.boardX + (n*cellW+2)/2
	centerY := l.boardY + (n+2)/2

	switch g.session.Phase() {
	case engine.PhasePaused:
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
	case engine.PhaseGameOver:
		g.drawOverlay(dst, centerX, centerY, "GAME OVER", fmt.Sprintf("Score: %d", g.session.Score()), "Press R to restart")
	}
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	boxX := centerX - boxW/2
	boxY := centerY - boxH/2

	// Clear area behind overlay
	for y := boxY; y < boxY+boxH; y++ {
		for x := boxX; x < boxX+boxW; x++ {
			dst.Set(x, y, ' ')
		}
	}

	dst.DrawBox(core.Rect{X: boxX, Y: boxY, W: boxW, H: boxH}, core.ColorBrightWhite)

	for i, line := range lines {
		x := centerX - len(line)/2
		dst.DrawText(x, boxY+1+i, line)
	}
}
