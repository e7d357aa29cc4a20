package t2048

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeClassic  Mode = "classic"
	ModeCampaign Mode = "campaign"
)

// Registry identifiers for the modes.
const (
	IDClassic  = "2048"
	IDCampaign = "2048_campaign"
)

// ShareURL is appended to the share text.
const ShareURL = "https://github.com/vovakirdan/tui-2048"

// Game implements the 2048 puzzle game on top of the board engine.
type Game struct {
	mode    Mode
	rng     *rand.Rand
	spawner Spawner
	tick    uint64

	score         int
	moves         int
	board         Board
	lastSpawn     *Cell
	startLevel    int // 1-based level requested before Reset, 0 = first
	levelIndex    int // Current level (0-indexed)
	currentTarget int // Current tile target, 0 = none
	tickRate      int

	// Screen dimensions
	screenW int
	screenH int

	// Game state flags
	gameOver        bool
	levelCleared    bool
	won             bool
	paused          bool
	tooSmall        bool
	levelClearTicks int
}

// New creates a classic mode game.
func New() *Game {
	return &Game{mode: ModeClassic}
}

// NewCampaign creates a campaign mode game.
func NewCampaign() *Game {
	return &Game{mode: ModeCampaign}
}

func init() {
	registry.Register(IDClassic, func() registry.Game {
		return New()
	})
	registry.Register(IDCampaign, func() registry.Game {
		return NewCampaign()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeCampaign {
		return IDCampaign
	}
	return IDClassic
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeCampaign {
		return "2048 Campaign"
	}
	return "2048"
}

// Mode returns the game mode.
func (g *Game) Mode() Mode {
	return g.mode
}

// SetStartLevel selects the campaign level (1-based) used by the next Reset.
// Out-of-range values start from the first level.
func (g *Game) SetStartLevel(level int) {
	g.startLevel = level
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.score = 0
	g.moves = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = core.DefaultConfig().TickRate
	}
	g.gameOver = false
	g.levelCleared = false
	g.won = false
	g.paused = false
	g.levelClearTicks = 0
	g.lastSpawn = nil

	g.levelIndex = 0
	if g.mode == ModeCampaign && g.startLevel > 0 && g.startLevel <= LevelCount() {
		g.levelIndex = g.startLevel - 1
	}
	g.loadLevel()

	g.board = NewBoard(BoardSize)
	g.spawnTile()
	g.spawnTile()

	// Terminal check at start too; a stuck opening position ends the game.
	g.gameOver = IsGameOver(g.board)

	g.checkScreenSize()
}

// loadLevel sets up the current level parameters.
func (g *Game) loadLevel() {
	spawn4 := DefaultSpawn4Prob
	g.currentTarget = 0

	if g.mode == ModeCampaign {
		level := GetLevel(g.levelIndex)
		if level == nil {
			level = GetLevel(LevelCount() - 1)
		}
		g.currentTarget = level.Target
		spawn4 = level.Spawn4
	}

	g.spawner = Spawner{Source: g.rng, Spawn4Prob: spawn4}
}

// spawnTile spawns a new tile (2 or 4) in a random empty cell.
func (g *Game) spawnTile() {
	next, at, ok := g.spawner.Spawn(g.board)
	if !ok {
		return
	}
	g.board = next
	g.lastSpawn = &at
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	boardW, boardH := boardExtent(BoardSize)
	minW := boardW + 4
	minH := boardH + hudHeight + 2
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Resize updates the screen dimensions without touching the board.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	g.checkScreenSize()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.gameOver && !g.won {
		g.paused = !g.paused
	}

	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if g.levelCleared {
		g.levelClearTicks++
		// Auto-advance after 2 seconds
		if g.levelClearTicks >= 2*g.tickRate {
			g.advanceLevel()
		}
		return core.StepResult{State: g.State()}
	}

	// Game over is terminal; restarts are handled by the platform via Reset.
	if g.gameOver || g.won {
		return core.StepResult{State: g.State()}
	}

	dir, ok := directionFromInput(in)
	if !ok {
		return core.StepResult{State: g.State()}
	}

	moved := g.processMove(dir)
	return core.StepResult{State: g.State(), Moved: moved}
}

// directionFromInput picks the first directional action in the frame.
func directionFromInput(in core.InputFrame) (Direction, bool) {
	switch {
	case in.Has(core.ActionUp):
		return DirUp, true
	case in.Has(core.ActionDown):
		return DirDown, true
	case in.Has(core.ActionLeft):
		return DirLeft, true
	case in.Has(core.ActionRight):
		return DirRight, true
	}
	return 0, false
}

// processMove handles a move in the given direction.
// Returns false when the move left the board unchanged.
func (g *Game) processMove(dir Direction) bool {
	res := Move(g.board, dir)
	if !res.Changed {
		// Board didn't change - don't spawn new tile
		return false
	}

	g.board = res.Board
	g.score += res.ScoreDelta
	g.moves++

	g.spawnTile()

	if g.currentTarget > 0 && g.board.MaxTile() >= g.currentTarget {
		g.levelCleared = true
		g.levelClearTicks = 0
		return true
	}

	if IsGameOver(g.board) {
		g.gameOver = true
	}
	return true
}

// advanceLevel moves to the next level.
func (g *Game) advanceLevel() {
	g.levelCleared = false
	g.levelClearTicks = 0

	if g.levelIndex >= LevelCount()-1 {
		g.won = true
		return
	}

	g.levelIndex++
	g.loadLevel()
	// Keep current board and score - just update target

	if IsGameOver(g.board) {
		g.gameOver = true
	}
}

// Board returns the current board.
func (g *Game) Board() Board {
	return g.board
}

// Score returns the accumulated score.
func (g *Game) Score() int {
	return g.score
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		MaxTile:  g.board.MaxTile(),
		Moves:    g.moves,
		GameOver: g.gameOver || g.won,
		Paused:   g.paused || g.tooSmall || g.levelCleared,
	}
}

// ShareText returns the brag line offered when a game ends.
func (g *Game) ShareText() string {
	return fmt.Sprintf("I scored %d in 2048! %s", g.score, ShareURL)
}
