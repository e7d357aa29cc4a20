package t2048

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"gopkg.in/yaml.v3"
)

// Script is a deterministic sequence of moves, loaded from YAML:
//
//	seed: 42
//	spawn4: 0.1          # optional, defaults to 0.1
//	board:               # optional starting board, else two spawned tiles
//	  - [2, 2, 0, 0]
//	  - [0, 0, 0, 0]
//	  - [0, 0, 0, 0]
//	  - [0, 0, 0, 0]
//	moves: [left, up, right, down]
type Script struct {
	Seed   int64    `yaml:"seed"`
	Spawn4 *float64 `yaml:"spawn4,omitempty"`
	Board  [][]int  `yaml:"board,omitempty"`
	Moves  []string `yaml:"moves"`
}

// StepRecord describes one scripted move.
type StepRecord struct {
	Index      int    `yaml:"index"`
	Direction  string `yaml:"direction"`
	Changed    bool   `yaml:"changed"`
	ScoreDelta int    `yaml:"score_delta"`
	Spawned    *Cell  `yaml:"spawned,omitempty"`
	SpawnValue int    `yaml:"spawn_value,omitempty"`
	Score      int    `yaml:"score"`
}

// ReplayResult is the outcome of running a Script.
type ReplayResult struct {
	Initial  [][]int      `yaml:"initial,flow"`
	Steps    []StepRecord `yaml:"steps"`
	Final    [][]int      `yaml:"final,flow"`
	Score    int          `yaml:"score"`
	MaxTile  int          `yaml:"max_tile"`
	GameOver bool         `yaml:"game_over"`
	Skipped  int          `yaml:"skipped"` // Moves left unplayed after game over
}

// ParseScript decodes a YAML replay script and validates it.
func ParseScript(data []byte) (Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Script{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Script{}, err
	}
	return s, nil
}

// Validate checks moves, the spawn probability and the optional board.
func (s Script) Validate() error {
	if len(s.Moves) == 0 {
		return errors.New("script has no moves")
	}
	for i, m := range s.Moves {
		if _, err := ParseDirection(m); err != nil {
			return fmt.Errorf("move %d: %w", i, err)
		}
	}
	if s.Spawn4 != nil && (math.IsNaN(*s.Spawn4) || *s.Spawn4 < 0 || *s.Spawn4 > 1) {
		return fmt.Errorf("spawn4 %v out of range [0, 1]", *s.Spawn4)
	}
	if s.Board != nil {
		if _, err := BoardFromRows(s.Board); err != nil {
			return fmt.Errorf("board: %w", err)
		}
	}
	return nil
}

// Run plays the script move by move. Once the board is stuck the
// remaining moves are counted as skipped.
func (s Script) Run() (ReplayResult, error) {
	if err := s.Validate(); err != nil {
		return ReplayResult{}, err
	}

	spawner := NewSpawner(rand.New(rand.NewSource(s.Seed)))
	if s.Spawn4 != nil {
		spawner.Spawn4Prob = *s.Spawn4
	}

	var board Board
	if s.Board != nil {
		board = MustBoard(s.Board)
	} else {
		board = NewBoard(BoardSize)
		board, _, _ = spawner.Spawn(board)
		board, _, _ = spawner.Spawn(board)
	}

	result := ReplayResult{Initial: board.Rows()}
	score := 0
	over := IsGameOver(board)

	for i, m := range s.Moves {
		if over {
			result.Skipped = len(s.Moves) - i
			break
		}

		dir, _ := ParseDirection(m)
		res := Move(board, dir)
		rec := StepRecord{Index: i, Direction: dir.String(), Changed: res.Changed}

		if res.Changed {
			score += res.ScoreDelta
			rec.ScoreDelta = res.ScoreDelta

			next, at, ok := spawner.Spawn(res.Board)
			if ok {
				rec.Spawned = &at
				rec.SpawnValue = next.At(at.Row, at.Col)
			}
			board = next
			over = IsGameOver(board)
		}

		rec.Score = score
		result.Steps = append(result.Steps, rec)
	}

	result.Final = board.Rows()
	result.Score = score
	result.MaxTile = board.MaxTile()
	result.GameOver = over
	return result, nil
}

// MarshalYAML encodes a cell as a [row, col] pair.
func (c Cell) MarshalYAML() (any, error) {
	return []int{c.Row, c.Col}, nil
}
