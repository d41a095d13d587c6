package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

// fakeGame records the frames it receives and reports a scripted state.
type fakeGame struct {
	state   core.GameState
	frames  []core.InputFrame
	resets  int
	resized [2]int
}

func (g *fakeGame) ID() string { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }
func (g *fakeGame) Reset(core.RuntimeConfig) { g.resets++ }
func (g *fakeGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "fake") }
func (g *fakeGame) State() core.GameState { return g.state }
func (g *fakeGame) Controls() string { return "Q: Quit" }
func (g *fakeGame) Resize(w, h int) { g.resized = [2]int{w, h} }
func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, in.Clone())
	return core.StepResult{State: g.state}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm
}

func TestModelForwardsActions(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, nil, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 30, Seed: 1})

	m = update(t, m, runeKey('i'))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, TickMsg{})
	m = update(t, m, TickMsg{})

	if len(g.frames) != 2 {
		t.Fatalf("Step called %d times, want 2", len(g.frames))
	}
	if !g.frames[0].Has(core.ActionToggleAI) || !g.frames[0].Has(core.ActionConfirm) {
		t.Errorf("first frame = %v", g.frames[0].Actions)
	}
	if !g.frames[1].Empty() {
		t.Errorf("input not cleared between ticks: %v", g.frames[1].Actions)
	}
}

func TestModelSavesScoreOncePerGameOver(t *testing.T) {
	store := openStore(t)
	g := &fakeGame{state: core.GameState{Score: 300, GameOver: true}}
	m := NewModel(g, store, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 30, Seed: 1})

	m = update(t, m, TickMsg{})
	m = update(t, m, TickMsg{})

	// restart, then a second game over
	g.state = core.GameState{}
	m = update(t, m, TickMsg{})
	g.state = core.GameState{Score: 500, GameOver: true}
	update(t, m, TickMsg{})

	scores, err := store.AllScores("fake")
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 2 {
		t.Fatalf("saved %d scores, want 2", len(scores))
	}
	if hs, _ := store.HighScore("fake"); hs != 500 {
		t.Errorf("HighScore() = %d, want 500", hs)
	}
}

func TestModelResizeKeepsGame(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, nil, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 30, Seed: 1})

	update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	if g.resets != 0 {
		t.Errorf("Reset called %d times on resize", g.resets)
	}
	// one line is kept for the controls hint
	if g.resized != [2]int{100, 29} {
		t.Errorf("Resize(%v), want [100 29]", g.resized)
	}
}

func TestModelViewShowsControls(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, nil, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 30, Seed: 1})

	view := m.View()
	if !strings.Contains(view, "fake") || !strings.Contains(view, "Q: Quit") {
		t.Errorf("View() = %q", view)
	}
	if lines := strings.Count(view, "\n") + 1; lines != 10 {
		t.Errorf("View() has %d lines, want 10", lines)
	}
}

func TestModelBackQuits(t *testing.T) {
	m := NewModel(&fakeGame{}, nil, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 30, Seed: 1})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc did not return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("esc did not quit")
	}
	if next.(Model).View() != "" {
		t.Error("quitting model still renders")
	}
}
