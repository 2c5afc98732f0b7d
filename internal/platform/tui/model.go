package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// helpHeight is the number of rows below the game screen used by the help line.
const helpHeight = 1

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model for one snake session.
type Model struct {
	round  *snake.Round
	screen *core.Screen
	store  *storage.Store
	logger *log.Logger
	config core.RuntimeConfig
	keys   KeyMap
	help   help.Model

	scoreboard     ScoreboardModel
	showScoreboard bool

	quitting   bool
	scoreSaved bool // Whether the finished round has been recorded
}

// NewModel creates a model driving round. store and logger may be nil.
func NewModel(round *snake.Round, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) Model {
	if logger == nil {
		logger = log.New(os.Stderr)
	}

	m := Model{
		round:  round,
		screen: core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-helpHeight, 0)),
		store:  store,
		logger: logger,
		config: cfg,
		keys:   DefaultKeyMap(),
		help:   help.New(),
	}
	m.help.Width = cfg.ScreenW
	round.SetScreenSize(m.screen.Width(), m.screen.Height())
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.round.Interval())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.showScoreboard {
			return m.updateScoreboard(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey applies a key to the round immediately; the next tick moves the snake.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		if path, err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "error", err)
		} else {
			m.logger.Info("screenshot saved", "path", path)
		}
		return m, nil
	}

	switch action := m.keys.Action(msg); action {
	case core.ActionNone:
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionScoreboard:
		if m.round.Status() == snake.StatusReady {
			m.scoreboard = NewScoreboardModel(m.store, m.round.Sizes(), m.round.Size(), m.config.ScreenW, m.config.ScreenH)
			m.showScoreboard = true
		}
	default:
		m.round.Apply(action)
		if m.round.Status() != snake.StatusOver {
			m.scoreSaved = false
		}
	}
	return m, nil
}

// updateScoreboard forwards messages to the open scoreboard.
func (m Model) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scoreboard.Update(msg)
	if sb, ok := next.(ScoreboardModel); ok {
		m.scoreboard = sb
	}
	if m.scoreboard.IsQuitting() {
		m.quitting = true
	}
	if m.scoreboard.Closed() {
		m.showScoreboard = false
	}
	return m, cmd
}

// handleResize tracks the terminal size. The round keeps its state; a field
// that no longer fits is paused behind the too-small message.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-helpHeight, 0))
	m.round.SetScreenSize(m.screen.Width(), m.screen.Height())
	m.help.Width = msg.Width

	if m.showScoreboard {
		return m.updateScoreboard(msg)
	}
	return m, nil
}

// handleTick advances the round and re-arms the tick at the current speed.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if !m.round.TooSmall() {
		if m.round.Step() == snake.StatusOver && !m.scoreSaved {
			m.recordRound()
			m.scoreSaved = true
		}
	}
	return m, tickCmd(m.round.Interval())
}

// recordRound logs the finished round and saves it when at least one apple was eaten.
func (m Model) recordRound() {
	m.logger.Info("round over",
		"player", m.config.Player,
		"size", m.round.Size(),
		"apples", m.round.Apples(),
		"speed", m.round.SpeedTier()+1,
		"won", m.round.Won(),
	)

	if m.store == nil || m.round.Apples() == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	best, err := m.store.HighScore(ctx, m.round.Size())
	if err != nil {
		m.logger.Warn("could not read high score", "error", err)
	}

	_, err = m.store.SaveScore(ctx, storage.Score{
		BoardSize: m.round.Size(),
		Apples:    m.round.Apples(),
		SpeedTier: m.round.SpeedTier(),
		Player:    m.config.Player,
		Won:       m.round.Won(),
	})
	if err != nil {
		m.logger.Error("could not save score", "error", err)
		return
	}
	if m.round.Apples() > best {
		m.logger.Info("new high score", "size", m.round.Size(), "apples", m.round.Apples(), "previous", best)
	}
}

// saveScreenshot writes the current screen as plain text under ~/.snake/screenshots.
func (m Model) saveScreenshot() (string, error) {
	m.round.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot get home directory: %w", err)
	}
	dir := filepath.Join(home, ".snake", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("cannot create %s: %w", dir, err)
	}

	name := fmt.Sprintf("snake_%dx%d_%s.txt", m.round.Size(), m.round.Size(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("cannot write screenshot: %w", err)
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showScoreboard {
		return m.scoreboard.View()
	}

	m.round.Render(m.screen)
	keys := m.keys.HelpFor(m.round.Status(), m.round.Paused())
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(keys))
}

// Round returns the round driven by the model.
func (m Model) Round() *snake.Round {
	return m.round
}

// Run starts the Bubble Tea program for round in the current terminal.
func Run(round *snake.Round, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewModel(round, store, logger, cfg),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
