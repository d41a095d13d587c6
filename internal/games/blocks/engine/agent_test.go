package engine

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newAISession(t *testing.T, seed int64) *Session {
	t.Helper()
	s, _ := newTestSession(t, seed)
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	if err := s.SetAIEnabled(true); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestAgentStepWaitsForDelay(t *testing.T) {
	s := newAISession(t, 1)
	agent := NewAgent(s, WithDelay(100*time.Millisecond))

	steps := []struct {
		at     time.Duration
		placed bool
	}{
		{0, false},
		{50 * time.Millisecond, false},
		{100 * time.Millisecond, true},
	}
	for _, st := range steps {
		placed, err := agent.Step(st.at)
		if err != nil {
			t.Fatalf("Step(%s) failed: %v", st.at, err)
		}
		if placed != st.placed {
			t.Errorf("Step(%s) placed = %v, want %v", st.at, placed, st.placed)
		}
	}

	if got := s.Snapshot().Placements; got != 1 {
		t.Errorf("placements = %d, want 1", got)
	}
	if _, ok := agent.Pending(); ok {
		t.Error("move still pending after commit")
	}
}

func TestAgentCancelledDuringDelay(t *testing.T) {
	s := newAISession(t, 2)
	agent := NewAgent(s, WithDelay(time.Second))

	if _, err := agent.Step(0); err != nil {
		t.Fatal(err)
	}
	if _, ok := agent.Pending(); !ok {
		t.Fatal("no move planned")
	}

	if err := s.SetAIEnabled(false); err != nil {
		t.Fatal(err)
	}
	placed, err := agent.Step(2 * time.Second)
	if err != nil || placed {
		t.Errorf("Step after disabling AI = %v, %v; want no placement", placed, err)
	}
	if s.Snapshot().Placements != 0 {
		t.Error("agent placed a shape after autoplay was disabled")
	}
	if _, ok := agent.Pending(); ok {
		t.Error("pending move survived cancellation")
	}
}

func TestAgentIdleWhenPaused(t *testing.T) {
	s := newAISession(t, 3)
	agent := NewAgent(s, WithDelay(0))
	_ = s.Pause()

	if agent.Active() {
		t.Error("agent active while paused")
	}
	if placed, _ := agent.Step(time.Hour); placed {
		t.Error("agent placed while paused")
	}

	_ = s.Resume()
	if placed, err := agent.Step(time.Hour); err != nil || !placed {
		t.Errorf("Step after resume = %v, %v; want a placement", placed, err)
	}
}

func TestAgentPlanRegenerates(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Catalog = mustCatalog(t, "#")
	s, err := NewSession(cfg)
	if err != nil {
		t.Fatal(err)
	}
	_ = s.Start()
	s.board = checkerboard(8)
	s.batch = Batch{testShape("O", "##", "##")}
	before := s.Snapshot().Batches

	m, ok := NewAgent(s).Plan()
	if !ok {
		t.Fatal("Plan found nothing after regenerating")
	}
	if got := s.Snapshot().Batches; got != before+1 {
		t.Errorf("batches = %d, want %d", got, before+1)
	}
	if !s.CanPlace(m.ShapeID, m.Row, m.Col) {
		t.Errorf("planned move %+v is not legal", m)
	}
}

func TestAgentStepKeepsInvariants(t *testing.T) {
	s := newAISession(t, 8)
	agent := NewAgent(s, WithDelay(0))

	for i := 0; i < 200 && agent.Active(); i++ {
		if _, err := agent.Step(0); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}

		b := s.Board()
		rows, cols := DetectFullLines(b)
		if len(rows)+len(cols) > 0 {
			t.Fatalf("step %d: full lines left on board: rows %v cols %v", i, rows, cols)
		}
		for _, c := range b.FilledCoords() {
			if b.Get(c.Row, c.Col).Color == ColorNone {
				t.Fatalf("step %d: filled cell %v without color", i, c)
			}
		}
		if s.Score()%PointsPerLine != 0 {
			t.Fatalf("step %d: score %d not a multiple of %d", i, s.Score(), PointsPerLine)
		}
		if n := len(s.Batch()); n > BatchSize {
			t.Fatalf("step %d: batch has %d shapes", i, n)
		}
	}
}

func TestAgentRun(t *testing.T) {
	var s *Session
	consumed := 0
	sink := SinkFunc(func(evt Event) {
		if _, ok := evt.(ShapeConsumed); ok {
			consumed++
			if consumed == 5 {
				_ = s.SetAIEnabled(false)
			}
		}
	})

	cfg := DefaultConfig()
	cfg.Seed = 4
	s, err := NewSession(cfg, WithSink(sink))
	if err != nil {
		t.Fatal(err)
	}
	_ = s.Start()
	_ = s.SetAIEnabled(true)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := NewAgent(s, WithDelay(0)).Run(ctx); err != nil {
		t.Fatalf("Run() = %v, want nil after autoplay was disabled", err)
	}
	if consumed != 5 {
		t.Errorf("placed %d shapes, want 5", consumed)
	}
}

func TestAgentRunContext(t *testing.T) {
	t.Run("already cancelled", func(t *testing.T) {
		s := newAISession(t, 5)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if err := NewAgent(s).Run(ctx); !errors.Is(err, context.Canceled) {
			t.Errorf("Run() = %v, want context.Canceled", err)
		}
	})

	t.Run("deadline during delay", func(t *testing.T) {
		s := newAISession(t, 6)
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		if err := NewAgent(s, WithDelay(time.Hour)).Run(ctx); !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("Run() = %v, want context.DeadlineExceeded", err)
		}
		if s.Snapshot().Placements != 0 {
			t.Error("agent placed a shape before its delay elapsed")
		}
	})

	t.Run("not enabled", func(t *testing.T) {
		s, _ := newTestSession(t, 7)
		_ = s.Start()

		if err := NewAgent(s).Run(context.Background()); err != nil {
			t.Errorf("Run() = %v, want nil", err)
		}
	})
}

func TestChannelSinkDropsOldest(t *testing.T) {
	sink := NewChannelSink(2)
	sink.Emit(ScoreChanged{Score: 1})
	sink.Emit(ScoreChanged{Score: 2})
	sink.Emit(ScoreChanged{Score: 3})

	got := []Event{<-sink.Events(), <-sink.Events()}
	want := []Event{ScoreChanged{Score: 2}, ScoreChanged{Score: 3}}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %#v, want %#v", i, got[i], want[i])
		}
	}

	sink.Close()
	sink.Close()
	sink.Emit(ScoreChanged{Score: 4})
	select {
	case evt := <-sink.Events():
		t.Errorf("closed sink delivered %#v", evt)
	default:
	}
	select {
	case <-sink.Done():
	default:
		t.Error("Done not closed")
	}
}

func TestMultiSink(t *testing.T) {
	a, b := &Recorder{}, &Recorder{}
	MultiSink{a, nil, b}.Emit(AIChanged{Enabled: true})

	if len(a.Events) != 1 || len(b.Events) != 1 {
		t.Errorf("MultiSink delivered %d and %d events, want 1 each", len(a.Events), len(b.Events))
	}
}
