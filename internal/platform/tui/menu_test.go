package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// memStore is an in-memory ScoreStore for UI tests.
type memStore struct {
	entries []storage.ScoreEntry
}

func (s *memStore) SaveScore(_ context.Context, e storage.ScoreEntry) (int64, error) {
	e.ID = int64(len(s.entries) + 1)
	s.entries = append(s.entries, e)
	return e.ID, nil
}

func (s *memStore) TopScores(_ context.Context, gameID string, limit int) ([]storage.ScoreEntry, error) {
	var out []storage.ScoreEntry
	for _, e := range s.entries {
		if e.GameID == gameID && len(out) < limit {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *memStore) HighScore(_ context.Context, gameID string) (int, error) {
	best := 0
	for _, e := range s.entries {
		if e.GameID == gameID {
			best = max(best, e.Score)
		}
	}
	return best, nil
}

func (s *memStore) ClearScores(_ context.Context, gameID string) error {
	kept := s.entries[:0]
	for _, e := range s.entries {
		if e.GameID != gameID {
			kept = append(kept, e)
		}
	}
	s.entries = kept
	return nil
}

func (s *memStore) Close() error { return nil }

func sendMenu(m MenuModel, msgs ...tea.Msg) (MenuModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(MenuModel)
	}
	return m, cmd
}

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func TestMenuSelectsClassic(t *testing.T) {
	m, cmd := sendMenu(NewMenuModel(nil, core.DefaultConfig()), keyEnter)

	if cmd == nil {
		t.Fatal("selecting a mode should end the menu program")
	}
	res := m.Result()
	if res.GameID != t2048.IDClassic || res.Level != 0 || res.Quit {
		t.Errorf("Result() = %+v, want classic at level 0", res)
	}
}

func TestMenuSelectsCampaign(t *testing.T) {
	m, _ := sendMenu(NewMenuModel(nil, core.DefaultConfig()), keyDown, keyEnter)

	if res := m.Result(); res.GameID != t2048.IDCampaign || res.Level != 0 {
		t.Errorf("Result() = %+v, want campaign at level 0", res)
	}
}

func TestMenuLevelSelect(t *testing.T) {
	m, cmd := sendMenu(NewMenuModel(nil, core.DefaultConfig()), keyDown, keyDown, keyEnter)
	if cmd != nil || m.Selected() != nil {
		t.Fatal("Select Level should open the level list, not start a game")
	}
	if !strings.Contains(m.View(), "SELECT LEVEL") {
		t.Error("level list should be shown")
	}

	m, _ = sendMenu(m, keyDown, keyDown, keyEnter)
	if res := m.Result(); res.GameID != t2048.IDCampaign || res.Level != 3 {
		t.Errorf("Result() = %+v, want campaign at level 3", res)
	}
}

func TestMenuLevelSelectBack(t *testing.T) {
	m, _ := sendMenu(NewMenuModel(nil, core.DefaultConfig()), keyDown, keyDown, keyEnter, keyEsc)

	if m.IsQuitting() {
		t.Fatal("Esc in the level list should return to the mode list")
	}
	if !strings.Contains(m.View(), "Select game mode") {
		t.Error("mode list should be shown again")
	}
}

func TestMenuLevelCursorIsClamped(t *testing.T) {
	m, _ := sendMenu(NewMenuModel(nil, core.DefaultConfig()), keyDown, keyDown, keyEnter)
	for range t2048.LevelCount() + 5 {
		m, _ = sendMenu(m, keyDown)
	}
	m, _ = sendMenu(m, keyEnter)

	if res := m.Result(); res.Level != t2048.LevelCount() {
		t.Errorf("Level = %d, want %d", res.Level, t2048.LevelCount())
	}
}

func TestMenuScoreboardAndQuit(t *testing.T) {
	m, _ := sendMenu(NewMenuModel(nil, core.DefaultConfig()), tea.KeyMsg{Type: tea.KeyTab})
	if !m.Result().WantsScoreboard {
		t.Error("Tab should open the scoreboard")
	}

	m, _ = sendMenu(NewMenuModel(nil, core.DefaultConfig()), keyDown, keyDown, keyDown, keyEnter)
	if !m.Result().WantsScoreboard {
		t.Error("High Scores entry should open the scoreboard")
	}

	m, _ = sendMenu(NewMenuModel(nil, core.DefaultConfig()), runeKey('q'))
	if !m.Result().Quit || m.View() != "" {
		t.Error("q should quit the menu")
	}
}

func TestMenuShowsBestScores(t *testing.T) {
	store := &memStore{}
	_, _ = store.SaveScore(context.Background(), storage.ScoreEntry{GameID: t2048.IDClassic, Score: 4242})

	m := NewMenuModel(store, core.DefaultConfig())
	cmd := m.Init()
	if cmd == nil {
		t.Fatal("Init() should load best scores when a store is set")
	}

	m, _ = sendMenu(m, cmd())
	if !strings.Contains(m.View(), "best 4242") {
		t.Errorf("menu should show the classic best score:\n%s", m.View())
	}
}

func TestCenterText(t *testing.T) {
	if got := centerText("ab", 6); got != "  ab" {
		t.Errorf("centerText() = %q, want %q", got, "  ab")
	}
	if got := centerText("abcdef", 4); got != "abcdef" {
		t.Errorf("centerText() should not truncate, got %q", got)
	}
}
