package tui

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/session"
)

func sendSession(m SessionModel, msgs ...tea.Msg) (SessionModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(SessionModel)
	}
	return m, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestSessionModelMenuToGameAndBack(t *testing.T) {
	reg := session.NewRegistry()
	id := session.ID("alice-1")
	reg.Add(session.Info{ID: id, User: "alice"})

	m := NewSessionModel(nil, core.DefaultConfig(), reg, id, nil)

	m, cmd := sendSession(m, keyEnter)
	require.Equal(t, viewGame, m.view)
	assert.False(t, isQuit(cmd), "starting a game must not end the session")

	info, ok := reg.Get(id)
	require.True(t, ok)
	assert.Equal(t, t2048.IDClassic, info.GameID)

	// Back pauses first, the second Back leaves
	m, _ = sendSession(m, keyEsc, TickMsg{Gen: m.gameModel.gen}, keyEsc)
	assert.Equal(t, viewMenu, m.view)
	assert.False(t, m.quitting)

	info, _ = reg.Get(id)
	assert.Empty(t, info.GameID)
	assert.Contains(t, m.View(), "Select game mode")
}

func TestSessionModelScoreboard(t *testing.T) {
	m := NewSessionModel(&memStore{}, core.DefaultConfig(), nil, "", nil)

	m, cmd := sendSession(m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, viewScores, m.view)
	assert.False(t, isQuit(cmd))
	assert.Contains(t, m.View(), "HIGH SCORES")

	m, _ = sendSession(m, keyEsc)
	assert.Equal(t, viewMenu, m.view)
	assert.False(t, m.quitting)
}

func TestSessionModelQuit(t *testing.T) {
	m := NewSessionModel(nil, core.DefaultConfig(), nil, "", nil)

	m, cmd := sendSession(m, keyEnter, runeKey('q'))
	assert.True(t, m.quitting)
	assert.True(t, isQuit(cmd))
	assert.Empty(t, m.View())
}

func TestSessionModelResize(t *testing.T) {
	m := NewSessionModel(nil, core.DefaultConfig(), nil, "", nil)

	m, _ = sendSession(m, tea.WindowSizeMsg{Width: 120, Height: 40}, keyEnter)
	assert.Equal(t, 120, m.config.ScreenW)
	assert.Equal(t, 40, m.gameModel.config.ScreenH)
}

func TestResolveHostKeyPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := resolveHostKeyPath("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".t2048", "host_key"), got)

	got, err = resolveHostKeyPath("~/keys/id")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "keys", "id"), got)

	got, err = resolveHostKeyPath(".ssh/t2048_ed25519")
	require.NoError(t, err)
	assert.Equal(t, ".ssh/t2048_ed25519", got)
}

func TestNewSSHServer(t *testing.T) {
	cfg := config.Default()
	cfg.SSH.Address = "127.0.0.1:0"
	cfg.SSH.HostKeyPath = filepath.Join(t.TempDir(), "keys", "host_key")

	srv, err := NewSSHServer(cfg, nil, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Shutdown() })

	assert.Equal(t, "127.0.0.1:0", srv.Addr())
	assert.Zero(t, srv.Sessions().Count())

	_, err = os.Stat(filepath.Dir(cfg.SSH.HostKeyPath))
	assert.NoError(t, err, "host key directory should be created")
}

func newTestServer(t *testing.T, buf *bytes.Buffer) *SSHServer {
	t.Helper()
	cfg := config.Default()
	cfg.SSH.Address = "127.0.0.1:0"
	cfg.SSH.HostKeyPath = filepath.Join(t.TempDir(), "host_key")

	srv, err := NewSSHServer(cfg, nil, log.New(buf))
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Shutdown() })
	return srv
}

func TestEndSessionLogsGame(t *testing.T) {
	var buf bytes.Buffer
	srv := newTestServer(t, &buf)

	srv.Sessions().Add(session.Info{ID: "bob-1", User: "bob"})
	srv.Sessions().SetGame("bob-1", t2048.IDCampaign)

	srv.endSession("bob-1")

	assert.Zero(t, srv.Sessions().Count())
	assert.Contains(t, buf.String(), "session ended")
	assert.Contains(t, buf.String(), "user=bob")
	assert.Contains(t, buf.String(), "game="+t2048.IDCampaign)
}

func TestLogOpenSessions(t *testing.T) {
	var buf bytes.Buffer
	srv := newTestServer(t, &buf)

	srv.Sessions().Add(session.Info{ID: "alice-1", User: "alice"})
	srv.Sessions().Add(session.Info{ID: "carol-2", User: "carol"})

	srv.logOpenSessions()

	out := buf.String()
	assert.Equal(t, 2, bytes.Count([]byte(out), []byte("closing session")))
	assert.Contains(t, out, "id=alice-1")
	assert.Contains(t, out, "id=carol-2")
}
