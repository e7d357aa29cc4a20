package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// menuEntry identifies a row of the main menu.
type menuEntry int

const (
	entryClassic menuEntry = iota
	entryCampaign
	entrySelectLevel
	entryScores
)

// MenuItem is one selectable row of the main menu.
type MenuItem struct {
	entry  menuEntry
	GameID string
	Title  string
}

var menuItems = []MenuItem{
	{entry: entryClassic, GameID: t2048.IDClassic, Title: "Classic"},
	{entry: entryCampaign, GameID: t2048.IDCampaign, Title: fmt.Sprintf("Campaign (%d levels)", t2048.LevelCount())},
	{entry: entrySelectLevel, GameID: t2048.IDCampaign, Title: "Select Level..."},
	{entry: entryScores, Title: "High Scores"},
}

// bestScoresMsg carries the per-mode high scores loaded at startup.
type bestScoresMsg map[string]int

var titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))

// MenuModel is the Bubble Tea model for the mode picker.
type MenuModel struct {
	items         []MenuItem
	cursor        int
	levelCursor   int
	inLevelSelect bool
	best          map[string]int
	width         int
	height        int
	store         storage.ScoreStore
	config        core.RuntimeConfig
	keyMapper     *KeyMapper
	quitting      bool
	selected      *MenuItem
	level         int
	wantsScores   bool
}

// NewMenuModel creates a new menu model. store may be nil.
func NewMenuModel(store storage.ScoreStore, cfg core.RuntimeConfig) MenuModel {
	return MenuModel{
		items:     menuItems,
		best:      map[string]int{},
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		store:     store,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init loads the best scores shown next to each mode.
func (m MenuModel) Init() tea.Cmd {
	if m.store == nil {
		return nil
	}
	store := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()

		best := bestScoresMsg{}
		for _, id := range []string{t2048.IDClassic, t2048.IDCampaign} {
			if high, err := store.HighScore(ctx, id); err == nil {
				best[id] = high
			}
		}
		return best
	}
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		action := m.keyMapper.MapKeyToMenuAction(msg)
		if m.inLevelSelect {
			return m.handleLevelKey(action)
		}
		return m.handleKey(action)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil

	case bestScoresMsg:
		m.best = msg
		return m, nil
	}

	return m, nil
}

// handleKey processes input on the main list.
func (m MenuModel) handleKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		item := m.items[m.cursor]
		switch item.entry {
		case entrySelectLevel:
			m.inLevelSelect = true
			m.levelCursor = 0
			return m, nil
		case entryScores:
			m.wantsScores = true
			return m, tea.Quit
		}
		m.selected = &item
		return m, tea.Quit

	case MenuActionScoreboard:
		m.wantsScores = true
		return m, tea.Quit
	}

	return m, nil
}

// handleLevelKey processes input on the level list.
func (m MenuModel) handleLevelKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}

	case MenuActionDown:
		if m.levelCursor < t2048.LevelCount()-1 {
			m.levelCursor++
		}

	case MenuActionSelect:
		item := m.items[entryCampaign]
		m.selected = &item
		m.level = m.levelCursor + 1
		return m, tea.Quit

	case MenuActionBack:
		m.inLevelSelect = false
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	if m.inLevelSelect {
		return m.viewLevels()
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("2 0 4 8"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select game mode", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		line := cursor + item.Title
		if item.entry != entrySelectLevel {
			if best := m.best[item.GameID]; best > 0 {
				line += fmt.Sprintf("  (best %d)", best)
			}
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit", m.width))
	b.WriteString("\n")

	return b.String()
}

func (m MenuModel) viewLevels() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("SELECT LEVEL"), m.width))
	b.WriteString("\n\n")

	targets := t2048.LevelTargets()
	for i, name := range t2048.LevelNames() {
		cursor := "  "
		if i == m.levelCursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%2d. %s (Target: %d)", cursor, i+1, name, targets[i])
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// Level returns the chosen start level, 0 for the first.
func (m MenuModel) Level() int {
	return m.level
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.wantsScores
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// Result summarizes how the menu was left.
func (m MenuModel) Result() MenuResult {
	result := MenuResult{Config: m.config}

	switch {
	case m.wantsScores:
		result.WantsScoreboard = true
	case m.selected != nil:
		result.GameID = m.selected.GameID
		result.Level = m.level
	default:
		result.Quit = true
	}
	return result
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Level           int
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store storage.ScoreStore, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return m.Result(), nil
}
