package t2048

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying      GameStateType = "playing"
	StateLevelCleared GameStateType = "level_cleared"
	StateGameOver     GameStateType = "game_over"
	StateWin          GameStateType = "win"
	StatePaused       GameStateType = "paused"
	StatePausedSmall  GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick    uint64        `yaml:"tick"`
	Mode    string        `yaml:"mode"`
	Level   int           `yaml:"level,omitempty"` // 1-indexed, 0 in classic mode
	Target  int           `yaml:"target,omitempty"`
	Score   int           `yaml:"score"`
	Moves   int           `yaml:"moves"`
	Board   [][]int       `yaml:"board,flow"`
	MaxTile int           `yaml:"max_tile"`
	State   GameStateType `yaml:"state"`
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.won:
		state = StateWin
	case g.gameOver:
		state = StateGameOver
	case g.levelCleared:
		state = StateLevelCleared
	case g.paused:
		state = StatePaused
	}

	level := 0
	if g.mode == ModeCampaign {
		level = g.levelIndex + 1
	}

	return Snapshot{
		Tick:    g.tick,
		Mode:    string(g.mode),
		Level:   level,
		Target:  g.currentTarget,
		Score:   g.score,
		Moves:   g.moves,
		Board:   g.board.Rows(),
		MaxTile: g.board.MaxTile(),
		State:   state,
	}
}
