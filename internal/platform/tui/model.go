package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/bmkoscak/halloween-haunt/internal/core"
	"github.com/bmkoscak/halloween-haunt/internal/haunt"
	"github.com/bmkoscak/halloween-haunt/internal/storage"
)

// Model is the Bubble Tea model driving a Halloween Haunt run.
type Model struct {
	game       *haunt.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	keyMapper  *KeyMapper
	gameState  core.GameState

	// High score name entry shown once per finished run.
	naming     bool
	nameInput  textinput.Model
	scoreSaved bool

	altScreen bool
	quitting  bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game *haunt.Game, store *storage.Store, cfg core.RuntimeConfig, playerName string) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	ti := textinput.New()
	ti.Placeholder = playerName
	ti.CharLimit = 16
	ti.Width = 18

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		logger:     log.NewWithOptions(os.Stderr, log.Options{Prefix: "haunt"}),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		nameInput:  ti,
		altScreen:  true,
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.naming {
		return m.handleNameKey(msg)
	}

	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionFullscreen) {
		m.inputFrame.Clear()
		m.altScreen = !m.altScreen
		if m.altScreen {
			return m, tea.EnterAltScreen
		}
		return m, tea.ExitAltScreen
	}

	return m, nil
}

// handleNameKey feeds input into the high score name prompt.
func (m Model) handleNameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		name := m.nameInput.Value()
		if name == "" {
			name = m.nameInput.Placeholder
		}
		if m.store != nil {
			if _, err := m.store.SubmitHighScore(name, m.gameState.Score, m.gameState.Level); err != nil {
				m.logger.Warn("high score not saved", "error", err)
			}
		}
		m.naming = false
		m.scoreSaved = true
		return m, nil
	case "ctrl+c", "esc":
		// Skip the leaderboard entry, keep playing or quit from the overlay.
		m.naming = false
		m.scoreSaved = true
		return m, nil
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

// handleResize adjusts the draw buffer. The game world itself has a fixed
// size; rendering re-centers inside the new bounds.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick runs one simulation step.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.naming {
		// The run is frozen behind the prompt; keep the loop alive.
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	for _, w := range result.Warnings {
		m.logger.Warn(w)
	}

	// Offer a leaderboard entry once per finished run.
	if m.gameState.GameOver && !m.scoreSaved && m.gameState.Score > 0 && m.store != nil {
		m.naming = true
		m.nameInput.SetValue("")
		m.nameInput.Focus()
	}
	if !m.gameState.GameOver && m.scoreSaved {
		m.scoreSaved = false
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current frame to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".haunt", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	frame := RenderScreen(m.screen)

	if m.naming {
		promptStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
		prompt := promptStyle.Render(
			fmt.Sprintf("  Final score %d. Your name: %s  (ENTER save, ESC skip)",
				m.gameState.Score, m.nameInput.View()))
		return frame + "\n" + prompt
	}

	return frame
}

// Run starts the Bubble Tea program for a local terminal session.
func Run(game *haunt.Game, store *storage.Store, cfg core.RuntimeConfig, playerName string) error {
	model := NewModel(game, store, cfg, playerName)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
