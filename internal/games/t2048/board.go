package t2048

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// BoardSize is the board dimension used by the game modes.
const BoardSize = 4

// Validation errors returned by BoardFromRows.
var (
	ErrEmptyBoard    = errors.New("board has no rows")
	ErrNotSquare     = errors.New("board is not square")
	ErrNegativeTile  = errors.New("tile value is negative")
	ErrNotPowerOfTwo = errors.New("tile value is not a power of two")
)

// Cell addresses a single board position.
type Cell struct {
	Row int
	Col int
}

// Board is an immutable N×N grid of tiles. Zero marks an empty cell.
// Every operation that changes tiles returns a new Board; the backing
// storage of one Board is never shared with another.
type Board struct {
	size  int
	cells []int // row-major, len = size*size
}

// NewBoard returns an empty n×n board.
// It panics if n is not positive.
func NewBoard(n int) Board {
	if n <= 0 {
		panic(fmt.Sprintf("t2048: invalid board size %d", n))
	}
	return Board{size: n, cells: make([]int, n*n)}
}

// BoardFromRows builds a board from a square grid of tile values.
func BoardFromRows(rows [][]int) (Board, error) {
	n := len(rows)
	if n == 0 {
		return Board{}, ErrEmptyBoard
	}

	b := NewBoard(n)
	for r, row := range rows {
		if len(row) != n {
			return Board{}, fmt.Errorf("%w: row %d has %d cells, want %d", ErrNotSquare, r, len(row), n)
		}
		for c, v := range row {
			if v < 0 {
				return Board{}, fmt.Errorf("%w: %d at (%d, %d)", ErrNegativeTile, v, r, c)
			}
			if v != 0 && !isTileValue(v) {
				return Board{}, fmt.Errorf("%w: %d at (%d, %d)", ErrNotPowerOfTwo, v, r, c)
			}
			b.cells[r*n+c] = v
		}
	}
	return b, nil
}

// MustBoard is like BoardFromRows but panics on invalid input.
func MustBoard(rows [][]int) Board {
	b, err := BoardFromRows(rows)
	if err != nil {
		panic(fmt.Sprintf("t2048: %v", err))
	}
	return b
}

// isTileValue reports whether v is a power of two no smaller than 2.
func isTileValue(v int) bool {
	return v >= 2 && v&(v-1) == 0
}

// Size returns the board dimension.
func (b Board) Size() int {
	return b.size
}

// At returns the value at (row, col).
func (b Board) At(row, col int) int {
	return b.cells[row*b.size+col]
}

// Row returns a copy of the given row.
func (b Board) Row(row int) []int {
	out := make([]int, b.size)
	copy(out, b.cells[row*b.size:(row+1)*b.size])
	return out
}

// Rows returns a deep copy of the grid.
func (b Board) Rows() [][]int {
	rows := make([][]int, b.size)
	for r := range b.size {
		rows[r] = b.Row(r)
	}
	return rows
}

// With returns a copy of the board with (row, col) set to value.
func (b Board) With(row, col, value int) Board {
	nb := b.clone()
	nb.cells[row*b.size+col] = value
	return nb
}

func (b Board) clone() Board {
	cells := make([]int, len(b.cells))
	copy(cells, b.cells)
	return Board{size: b.size, cells: cells}
}

// Equal reports whether both boards have the same size and tiles.
func (b Board) Equal(other Board) bool {
	if b.size != other.size {
		return false
	}
	for i, v := range b.cells {
		if other.cells[i] != v {
			return false
		}
	}
	return true
}

// EmptyCells returns the positions of all empty cells in row-major order.
func (b Board) EmptyCells() []Cell {
	var cells []Cell
	for i, v := range b.cells {
		if v == 0 {
			cells = append(cells, Cell{Row: i / b.size, Col: i % b.size})
		}
	}
	return cells
}

// HasEmptyCell returns true if there's at least one empty cell.
func (b Board) HasEmptyCell() bool {
	for _, v := range b.cells {
		if v == 0 {
			return true
		}
	}
	return false
}

// TileCount returns the number of non-empty cells.
func (b Board) TileCount() int {
	n := 0
	for _, v := range b.cells {
		if v != 0 {
			n++
		}
	}
	return n
}

// Sum returns the total of all tile values.
func (b Board) Sum() int {
	total := 0
	for _, v := range b.cells {
		total += v
	}
	return total
}

// MaxTile returns the maximum tile value on the board.
func (b Board) MaxTile() int {
	maxVal := 0
	for _, v := range b.cells {
		if v > maxVal {
			maxVal = v
		}
	}
	return maxVal
}

// String renders the board as right-aligned columns, one row per line.
func (b Board) String() string {
	width := len(strconv.Itoa(b.MaxTile()))
	var sb strings.Builder
	for r := range b.size {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := range b.size {
			if c > 0 {
				sb.WriteByte(' ')
			}
			v := b.At(r, c)
			if v == 0 {
				sb.WriteString(strings.Repeat(" ", width-1) + ".")
				continue
			}
			fmt.Fprintf(&sb, "%*d", width, v)
		}
	}
	return sb.String()
}
