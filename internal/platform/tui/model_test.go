package tui

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

func newTestModel(t *testing.T, store *storage.Store) Model {
	t.Helper()
	cfg := config.DefaultSnakeConfig()
	cfg.Field.DefaultSize = 0
	cfg.Apple.Delay = 1000

	rc := core.RuntimeConfig{ScreenW: 80, ScreenH: 30, Seed: 7, Player: "tester"}
	round, err := snake.NewRound(cfg, rc)
	if err != nil {
		t.Fatalf("NewRound: %v", err)
	}
	return NewModel(round, store, log.New(io.Discard), rc)
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestModelStartAndTick(t *testing.T) {
	m := newTestModel(t, nil)

	m = send(t, m, TickMsg{})
	if m.Round().Snapshot().Tick != 0 {
		t.Error("Ticks should not move the snake before Enter")
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Round().Status() != snake.StatusAction {
		t.Fatalf("Expected action after Enter, got %v", m.Round().Status())
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m = send(t, m, TickMsg{})
	if m.Round().Snake().Head() != core.Pt(11, 9) {
		t.Errorf("Expected head at (11,9), got %v", m.Round().Snake().Head())
	}
}

func TestModelSavesScoreOnce(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	m := newTestModel(t, store)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if err := m.Round().Field().PlaceApple(core.Pt(12, 10)); err != nil {
		t.Fatalf("PlaceApple: %v", err)
	}

	for i := 0; i < 50 && m.Round().Status() == snake.StatusAction; i++ {
		m = send(t, m, TickMsg{})
	}
	if m.Round().Status() != snake.StatusOver {
		t.Fatalf("Expected over, got %v", m.Round().Status())
	}
	m = send(t, m, TickMsg{})
	m = send(t, m, TickMsg{})

	scores, err := store.TopScores(ctx, 20, 10)
	if err != nil {
		t.Fatalf("TopScores: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("Expected exactly one saved round, got %d", len(scores))
	}
	if scores[0].Apples != 1 || scores[0].Player != "tester" || scores[0].SpeedTier != 1 {
		t.Errorf("Unexpected saved round: %+v", scores[0])
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.Round().Status() != snake.StatusReady {
		t.Errorf("Expected ready after Esc, got %v", m.Round().Status())
	}
}

func TestModelLogsNewHighScore(t *testing.T) {
	ctx := context.Background()

	// Eats the apple at (12,10) and runs into the right border.
	play := func(store *storage.Store) string {
		var buf bytes.Buffer
		m := newTestModel(t, store)
		m.logger = log.New(&buf)

		m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
		if err := m.Round().Field().PlaceApple(core.Pt(12, 10)); err != nil {
			t.Fatalf("PlaceApple: %v", err)
		}
		for i := 0; i < 50 && m.Round().Status() == snake.StatusAction; i++ {
			m = send(t, m, TickMsg{})
		}
		return buf.String()
	}

	store := openStore(t)
	if out := play(store); !strings.Contains(out, "new high score") {
		t.Errorf("First round should set a high score, log:\n%s", out)
	}

	if _, err := store.SaveScore(ctx, storage.Score{BoardSize: 20, Apples: 5}); err != nil {
		t.Fatalf("SaveScore: %v", err)
	}
	if out := play(store); strings.Contains(out, "new high score") {
		t.Errorf("One apple should not beat 5, log:\n%s", out)
	}
}

func TestModelSkipsEmptyRounds(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	m := newTestModel(t, store)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	for i := 0; i < 50 && m.Round().Status() == snake.StatusAction; i++ {
		m = send(t, m, TickMsg{})
	}

	scores, err := store.TopScores(ctx, 0, 10)
	if err != nil {
		t.Fatalf("TopScores: %v", err)
	}
	if len(scores) != 0 {
		t.Errorf("Rounds without apples should not be saved, got %d", len(scores))
	}
}

func TestModelTooSmallHoldsTicks(t *testing.T) {
	m := newTestModel(t, nil)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = send(t, m, tea.WindowSizeMsg{Width: 30, Height: 12})

	m = send(t, m, TickMsg{})
	if m.Round().Snapshot().Tick != 0 {
		t.Error("Round should not advance while the window is too small")
	}
	if !strings.Contains(m.View(), "Window too small") {
		t.Error("Expected too-small message in view")
	}

	m = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 30})
	m = send(t, m, TickMsg{})
	if m.Round().Snapshot().Tick != 1 {
		t.Error("Round should resume once the window is large enough")
	}
}

func TestModelScoreboard(t *testing.T) {
	m := newTestModel(t, nil)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if !m.showScoreboard {
		t.Fatal("Expected scoreboard after Tab on the ready screen")
	}
	if !strings.Contains(m.View(), "HIGH SCORES") {
		t.Error("Expected scoreboard view")
	}
	if m.scoreboard.SelectedSize() != 20 {
		t.Errorf("Expected scoreboard on 20x20, got %d", m.scoreboard.SelectedSize())
	}

	// Enter goes to the scoreboard, not the round.
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Round().Status() != snake.StatusReady {
		t.Error("Keys should not reach the round while the scoreboard is open")
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.showScoreboard {
		t.Error("Expected Esc to close the scoreboard")
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.showScoreboard {
		t.Error("Scoreboard should only open on the ready screen")
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, nil)
	next, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("Expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected tea.QuitMsg")
	}
	if next.(Model).View() != "" {
		t.Error("Expected empty view after quitting")
	}
}

func TestModelViewHasHelp(t *testing.T) {
	m := newTestModel(t, nil)
	view := m.View()
	if !strings.Contains(view, "Field size: 20x20") {
		t.Error("Expected ready status line")
	}
	if !strings.Contains(view, "start") {
		t.Error("Expected help line")
	}
}
