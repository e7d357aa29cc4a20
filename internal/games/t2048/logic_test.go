package t2048

import (
	"errors"
	"math/rand"
	"slices"
	"testing"
)

func TestReduceRow(t *testing.T) {
	tests := []struct {
		name     string
		input    []int
		expected []int
		score    int
	}{
		{
			name:     "simple merge",
			input:    []int{2, 2, 0, 0},
			expected: []int{4, 0, 0, 0},
			score:    4,
		},
		{
			name:     "merge with trailing tile",
			input:    []int{2, 2, 2, 0},
			expected: []int{4, 2, 0, 0},
			score:    4,
		},
		{
			name:     "gap before pair",
			input:    []int{2, 0, 2, 2},
			expected: []int{4, 2, 0, 0},
			score:    4,
		},
		{
			name:     "double merge",
			input:    []int{2, 2, 2, 2},
			expected: []int{4, 4, 0, 0},
			score:    8,
		},
		{
			name:     "no merge possible",
			input:    []int{2, 4, 8, 16},
			expected: []int{2, 4, 8, 16},
			score:    0,
		},
		{
			name:     "slide with gap",
			input:    []int{0, 0, 2, 2},
			expected: []int{4, 0, 0, 0},
			score:    4,
		},
		{
			name:     "slide with multiple gaps",
			input:    []int{2, 0, 0, 2},
			expected: []int{4, 0, 0, 0},
			score:    4,
		},
		{
			name:     "no change needed",
			input:    []int{4, 2, 0, 0},
			expected: []int{4, 2, 0, 0},
			score:    0,
		},
		{
			name:     "empty row",
			input:    []int{0, 0, 0, 0},
			expected: []int{0, 0, 0, 0},
			score:    0,
		},
		{
			name:     "single tile",
			input:    []int{0, 4, 0, 0},
			expected: []int{4, 0, 0, 0},
			score:    0,
		},
		{
			name:     "merged tile is not merged again",
			input:    []int{4, 4, 8, 0},
			expected: []int{8, 8, 0, 0},
			score:    8,
		},
		{
			name:     "longer row",
			input:    []int{2, 2, 4, 0, 4, 8},
			expected: []int{4, 8, 8, 0, 0, 0},
			score:    12,
		},
		{
			name:     "single cell",
			input:    []int{2},
			expected: []int{2},
			score:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, score := ReduceRow(tt.input)
			if !slices.Equal(result, tt.expected) {
				t.Errorf("ReduceRow(%v) = %v, want %v", tt.input, result, tt.expected)
			}
			if score != tt.score {
				t.Errorf("ReduceRow(%v) score = %d, want %d", tt.input, score, tt.score)
			}
		})
	}
}

func TestOneMergePerTilePerMove(t *testing.T) {
	// [4, 4, 4, 4] becomes [8, 8, 0, 0], not [16, 0, 0, 0]
	row := []int{4, 4, 4, 4}
	result, score := ReduceRow(row)

	expected := []int{8, 8, 0, 0}
	if !slices.Equal(result, expected) {
		t.Errorf("ReduceRow(%v) = %v, want %v", row, result, expected)
	}
	if score != 16 {
		t.Errorf("ReduceRow(%v) score = %d, want 16", row, score)
	}
}

func TestReduceRowDoesNotModifyInput(t *testing.T) {
	row := []int{2, 2, 4, 4}
	ReduceRow(row)
	if !slices.Equal(row, []int{2, 2, 4, 4}) {
		t.Errorf("input row modified: %v", row)
	}
}

func TestReduceRowConservesSum(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	values := []int{0, 0, 2, 4, 8, 16}

	for range 500 {
		row := make([]int, 1+rng.Intn(6))
		for i := range row {
			row[i] = values[rng.Intn(len(values))]
		}

		out, score := ReduceRow(row)

		if sum(out) != sum(row) {
			t.Fatalf("ReduceRow(%v) = %v: sum %d, want %d", row, out, sum(out), sum(row))
		}
		if score%2 != 0 || score < 0 {
			t.Fatalf("ReduceRow(%v) score = %d, want non-negative even", row, score)
		}
		if count(out) > count(row) {
			t.Fatalf("ReduceRow(%v) = %v: tile count grew", row, out)
		}
		// Every merge removes exactly one tile
		if score == 0 && count(out) != count(row) {
			t.Fatalf("ReduceRow(%v) = %v: tiles lost without merging", row, out)
		}
	}
}

func sum(row []int) int {
	total := 0
	for _, v := range row {
		total += v
	}
	return total
}

func count(row []int) int {
	n := 0
	for _, v := range row {
		if v != 0 {
			n++
		}
	}
	return n
}

func TestMoveLeft(t *testing.T) {
	board := MustBoard([][]int{
		{2, 2, 0, 0},
		{4, 0, 4, 0},
		{2, 2, 2, 2},
		{0, 0, 0, 2},
	})

	expected := MustBoard([][]int{
		{4, 0, 0, 0},
		{8, 0, 0, 0},
		{4, 4, 0, 0},
		{2, 0, 0, 0},
	})

	res := Move(board, DirLeft)

	if !res.Board.Equal(expected) {
		t.Errorf("Move left: got\n%v\nwant\n%v", res.Board, expected)
	}
	if !res.Changed {
		t.Error("Move left should indicate board changed")
	}
	if res.ScoreDelta != 4+8+4+4 {
		t.Errorf("Move left score = %d, want 20", res.ScoreDelta)
	}
}

func TestMoveRight(t *testing.T) {
	board := MustBoard([][]int{
		{2, 2, 0, 0},
		{4, 0, 4, 0},
		{2, 2, 2, 2},
		{0, 0, 0, 2},
	})

	expected := MustBoard([][]int{
		{0, 0, 0, 4},
		{0, 0, 0, 8},
		{0, 0, 4, 4},
		{0, 0, 0, 2},
	})

	res := Move(board, DirRight)

	if !res.Board.Equal(expected) {
		t.Errorf("Move right: got\n%v\nwant\n%v", res.Board, expected)
	}
	if !res.Changed {
		t.Error("Move right should indicate board changed")
	}
}

func TestMoveRightMergesFromTheFarEdge(t *testing.T) {
	board := MustBoard([][]int{
		{2, 2, 2, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	res := Move(board, DirRight)

	if got := res.Board.Row(0); !slices.Equal(got, []int{0, 0, 2, 4}) {
		t.Errorf("Move right row 0 = %v, want [0 0 2 4]", got)
	}
}

func TestMoveUp(t *testing.T) {
	board := MustBoard([][]int{
		{2, 4, 2, 0},
		{2, 0, 2, 0},
		{0, 4, 2, 0},
		{0, 0, 2, 2},
	})

	expected := MustBoard([][]int{
		{4, 8, 4, 2},
		{0, 0, 4, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	res := Move(board, DirUp)

	if !res.Board.Equal(expected) {
		t.Errorf("Move up: got\n%v\nwant\n%v", res.Board, expected)
	}
	if !res.Changed {
		t.Error("Move up should indicate board changed")
	}
	if res.ScoreDelta != 4+8+4+4 {
		t.Errorf("Move up score = %d, want 20", res.ScoreDelta)
	}
}

func TestMoveDown(t *testing.T) {
	board := MustBoard([][]int{
		{2, 4, 2, 2},
		{2, 0, 2, 0},
		{0, 4, 2, 0},
		{0, 0, 2, 0},
	})

	expected := MustBoard([][]int{
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 4, 0},
		{4, 8, 4, 2},
	})

	res := Move(board, DirDown)

	if !res.Board.Equal(expected) {
		t.Errorf("Move down: got\n%v\nwant\n%v", res.Board, expected)
	}
	if !res.Changed {
		t.Error("Move down should indicate board changed")
	}
}

func TestMoveNoChange(t *testing.T) {
	board := MustBoard([][]int{
		{4, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	res := Move(board, DirLeft)

	if res.Changed {
		t.Error("Move left should not change already left-aligned tiles")
	}
	if res.ScoreDelta != 0 {
		t.Errorf("no-op move score = %d, want 0", res.ScoreDelta)
	}
	if !res.Board.Equal(board) {
		t.Errorf("no-op move changed board:\n%v", res.Board)
	}
}

func TestMoveDoesNotModifyInput(t *testing.T) {
	rows := [][]int{
		{2, 2, 0, 0},
		{0, 4, 4, 0},
		{8, 0, 0, 8},
		{0, 0, 2, 2},
	}
	board := MustBoard(rows)
	before := board.Rows()

	for _, dir := range Directions {
		Move(board, dir)
	}

	if !board.Equal(MustBoard(before)) {
		t.Errorf("Move modified its input:\n%v", board)
	}
}

func TestMoveSettles(t *testing.T) {
	rng := rand.New(rand.NewSource(99))

	for range 100 {
		board := randomBoard(rng, BoardSize)
		for _, dir := range Directions {
			cur := board
			settled := false
			// Each changing move either merges or shifts, so a fixed point
			// is reached well within n*n repeats.
			for range BoardSize*BoardSize + 1 {
				res := Move(cur, dir)
				if !res.Changed {
					if res.ScoreDelta != 0 || !res.Board.Equal(cur) {
						t.Fatalf("no-op %s move altered state:\n%v", dir, cur)
					}
					settled = true
					break
				}
				cur = res.Board
			}
			if !settled {
				t.Fatalf("repeated %s moves never settled from:\n%v", dir, board)
			}
		}
	}
}

func TestMoveConservesSum(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	for range 200 {
		board := randomBoard(rng, 2+rng.Intn(4))
		for _, dir := range Directions {
			res := Move(board, dir)
			if res.Board.Sum() != board.Sum() {
				t.Fatalf("Move %s changed tile sum from %d to %d:\n%v", dir, board.Sum(), res.Board.Sum(), board)
			}
			if res.Board.TileCount() > board.TileCount() {
				t.Fatalf("Move %s increased tile count:\n%v", dir, board)
			}
			if res.Changed == res.Board.Equal(board) {
				t.Fatalf("Move %s Changed=%v disagrees with board equality", dir, res.Changed)
			}
		}
	}
}

func TestRotateFourTimesIsIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	for n := 1; n <= 6; n++ {
		board := randomBoard(rng, n)
		if got := rotate(board, 4); !got.Equal(board) {
			t.Errorf("rotate(4) on %dx%d board:\n%v\nwant\n%v", n, n, got, board)
		}
		for k := range 4 {
			if got := rotate(rotate(board, k), 4-k); !got.Equal(board) {
				t.Errorf("rotate(%d) then rotate(%d) on %dx%d board is not identity", k, 4-k, n, n)
			}
		}
	}
}

func TestRotateClockwise(t *testing.T) {
	board := MustBoard([][]int{
		{2, 4},
		{8, 16},
	})

	expected := MustBoard([][]int{
		{8, 2},
		{16, 4},
	})

	if got := rotate(board, 1); !got.Equal(expected) {
		t.Errorf("rotate(1):\n%v\nwant\n%v", got, expected)
	}
}

func TestMoveOnOtherSizes(t *testing.T) {
	board := MustBoard([][]int{
		{2, 0, 2},
		{0, 4, 0},
		{4, 0, 4},
	})

	res := Move(board, DirDown)

	expected := MustBoard([][]int{
		{0, 0, 0},
		{2, 0, 2},
		{4, 4, 4},
	})
	if !res.Board.Equal(expected) {
		t.Errorf("Move down 3x3:\n%v\nwant\n%v", res.Board, expected)
	}

	single := MustBoard([][]int{{2}})
	for _, dir := range Directions {
		if Move(single, dir).Changed {
			t.Errorf("1x1 board changed on %s", dir)
		}
	}
}

func TestGameOver(t *testing.T) {
	// Board with no empty cells and no possible merges
	board := MustBoard([][]int{
		{2, 4, 8, 16},
		{32, 64, 128, 256},
		{512, 1024, 2048, 4096},
		{8192, 16384, 32768, 65536},
	})

	if !IsGameOver(board) {
		t.Error("Board with no moves should be game over")
	}
	for _, dir := range Directions {
		if Move(board, dir).Changed {
			t.Errorf("stuck board changed on %s", dir)
		}
	}

	// Board with no empty cells but a horizontal merge
	boardWithMerge := MustBoard([][]int{
		{2, 2, 8, 16},
		{32, 64, 128, 256},
		{512, 1024, 2048, 4096},
		{8192, 16384, 32768, 65536},
	})

	if IsGameOver(boardWithMerge) {
		t.Error("Board with possible merge should not be game over")
	}

	// Board with no empty cells but a vertical merge in the last column
	boardWithVertical := MustBoard([][]int{
		{2, 4, 8, 16},
		{32, 64, 128, 256},
		{512, 1024, 2048, 4096},
		{8192, 16384, 32768, 4096},
	})

	if IsGameOver(boardWithVertical) {
		t.Error("Board with vertical merge should not be game over")
	}

	// Board with empty cells
	boardWithEmpty := MustBoard([][]int{
		{2, 4, 8, 16},
		{32, 64, 128, 256},
		{512, 1024, 0, 4096},
		{8192, 16384, 32768, 65536},
	})

	if IsGameOver(boardWithEmpty) {
		t.Error("Board with empty cell should not be game over")
	}
}

func TestHasLegalMoveMatchesMove(t *testing.T) {
	rng := rand.New(rand.NewSource(5))

	for range 300 {
		board := randomFullBoard(rng, 2+rng.Intn(3))

		anyChanged := false
		for _, dir := range Directions {
			if Move(board, dir).Changed {
				anyChanged = true
				break
			}
		}

		if HasLegalMove(board) != anyChanged {
			t.Fatalf("HasLegalMove = %v, but some direction changed = %v:\n%v", HasLegalMove(board), anyChanged, board)
		}
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		input string
		want  Direction
	}{
		{"up", DirUp},
		{"U", DirUp},
		{"down", DirDown},
		{" Left ", DirLeft},
		{"r", DirRight},
	}

	for _, tt := range tests {
		got, err := ParseDirection(tt.input)
		if err != nil {
			t.Errorf("ParseDirection(%q) error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDirection(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}

	if _, err := ParseDirection("sideways"); !errors.Is(err, ErrUnknownDirection) {
		t.Errorf("ParseDirection(sideways) error = %v, want ErrUnknownDirection", err)
	}
}

func TestMoveInvalidDirectionPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Move with invalid direction should panic")
		}
	}()
	Move(NewBoard(BoardSize), Direction(42))
}

// randomBoard fills roughly half the cells with small tiles.
func randomBoard(rng *rand.Rand, n int) Board {
	values := []int{0, 0, 2, 2, 4, 8}
	b := NewBoard(n)
	for r := range n {
		for c := range n {
			b = b.With(r, c, values[rng.Intn(len(values))])
		}
	}
	return b
}

// randomFullBoard fills every cell, so only merges can make a move legal.
func randomFullBoard(rng *rand.Rand, n int) Board {
	values := []int{2, 4, 8, 16, 32}
	b := NewBoard(n)
	for r := range n {
		for c := range n {
			b = b.With(r, c, values[rng.Intn(len(values))])
		}
	}
	return b
}
