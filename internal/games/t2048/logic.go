package t2048

import (
	"errors"
	"fmt"
	"strings"
)

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// ErrUnknownDirection is returned by ParseDirection for unrecognized input.
var ErrUnknownDirection = errors.New("unknown direction")

// Directions lists all move directions.
var Directions = []Direction{DirUp, DirDown, DirLeft, DirRight}

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection accepts a direction name or its first letter.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "u":
		return DirUp, nil
	case "down", "d":
		return DirDown, nil
	case "left", "l":
		return DirLeft, nil
	case "right", "r":
		return DirRight, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}

// rotation holds the clockwise quarter turns applied before and after
// reducing rows. Pre-rotation brings the direction's forward edge to the
// left; pre+post is always a full turn.
type rotation struct {
	pre, post int
}

// One clockwise turn puts the bottom row's tiles at index 0 of each row,
// so Down needs one turn and Up needs three.
var rotations = [...]rotation{
	DirLeft:  {pre: 0, post: 0},
	DirUp:    {pre: 3, post: 1},
	DirRight: {pre: 2, post: 2},
	DirDown:  {pre: 1, post: 3},
}

func (d Direction) rotation() rotation {
	if d < 0 || int(d) >= len(rotations) {
		panic(fmt.Sprintf("t2048: invalid direction %d", int(d)))
	}
	return rotations[d]
}

// MoveResult is the outcome of sliding a board in one direction.
type MoveResult struct {
	Board      Board
	ScoreDelta int  // Sum of all tiles created by merges
	Changed    bool // False means the move was a no-op
}

// ReduceRow compresses a row toward index 0 and merges equal neighbours.
// A merged tile is not merged again in the same pass. Returns the new row
// (same length as the input) and the sum of the merged values.
func ReduceRow(row []int) ([]int, int) {
	result := make([]int, len(row))
	score := 0
	writePos := 0
	pending := 0 // last written tile still eligible for a merge

	for _, v := range row {
		if v == 0 {
			continue
		}

		if pending != 0 && pending == v {
			result[writePos-1] = v * 2
			score += v * 2
			pending = 0
			continue
		}

		result[writePos] = v
		writePos++
		pending = v
	}

	return result, score
}

// rotate turns the board clockwise by times quarter turns.
// One turn moves (r, c) to (c, n-1-r).
func rotate(b Board, times int) Board {
	times = ((times % 4) + 4) % 4
	n := b.size
	out := b
	for range times {
		next := NewBoard(n)
		for r := range n {
			for c := range n {
				next.cells[c*n+(n-1-r)] = out.cells[r*n+c]
			}
		}
		out = next
	}
	if times == 0 {
		out = b.clone()
	}
	return out
}

// Move slides all tiles in the given direction and merges.
// The input board is not modified. It panics on an invalid direction.
func Move(b Board, dir Direction) MoveResult {
	rot := dir.rotation()
	work := rotate(b, rot.pre)

	total := 0
	n := work.size
	for r := range n {
		reduced, score := ReduceRow(work.cells[r*n : (r+1)*n])
		copy(work.cells[r*n:(r+1)*n], reduced)
		total += score
	}

	out := rotate(work, rot.post)
	return MoveResult{
		Board:      out,
		ScoreDelta: total,
		Changed:    !out.Equal(b),
	}
}

// HasPossibleMerge returns true if any adjacent tiles can merge.
// Only right and bottom neighbours are checked; merges are symmetric.
func HasPossibleMerge(b Board) bool {
	n := b.size
	for r := range n {
		for c := range n {
			val := b.At(r, c)
			if val == 0 {
				continue
			}
			if c < n-1 && b.At(r, c+1) == val {
				return true
			}
			if r < n-1 && b.At(r+1, c) == val {
				return true
			}
		}
	}
	return false
}

// HasLegalMove returns true if some direction would change the board.
func HasLegalMove(b Board) bool {
	return b.HasEmptyCell() || HasPossibleMerge(b)
}

// IsGameOver returns true if no moves are possible.
func IsGameOver(b Board) bool {
	return !HasLegalMove(b)
}
