package game

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

const (
	MinBoardSize = 3
	MaxBoardSize = 6
)

// ErrBoardSize is returned when a board is requested outside the supported range.
var ErrBoardSize = errors.New("board size must be between 3 and 6")

type Cell int

const (
	CellEmpty Cell = iota
	CellX
	CellO
)

func (c Cell) String() string {
	switch c {
	case CellX:
		return "X"
	case CellO:
		return "O"
	default:
		return " "
	}
}

type OutcomeKind int

const (
	OutcomeNone OutcomeKind = iota
	OutcomeWin
	OutcomeDraw
)

// Board is a square grid stored as a flat slice, row-major. winLines holds
// every index set that decides the game: all rows, all columns and the two
// full diagonals. The slice comes from a shared per-size cache and must never
// be mutated.
type Board struct {
	size     int
	cells    []Cell
	winLines [][]int
}

func NewBoard(size int) (Board, error) {
	if size < MinBoardSize || size > MaxBoardSize {
		return Board{}, fmt.Errorf("%w, got %d", ErrBoardSize, size)
	}
	return Board{
		size:     size,
		cells:    make([]Cell, size*size),
		winLines: winLinesForSize(size),
	}, nil
}

func (b Board) Size() int {
	return b.size
}

func (b Board) InBounds(index int) bool {
	return index >= 0 && index < len(b.cells)
}

func (b Board) At(index int) Cell {
	if !b.InBounds(index) {
		return CellEmpty
	}
	return b.cells[index]
}

func (b *Board) Set(index int, cell Cell) {
	if !b.InBounds(index) {
		return
	}
	b.cells[index] = cell
}

func (b *Board) Remove(index int) {
	if !b.InBounds(index) {
		return
	}
	b.cells[index] = CellEmpty
}

func (b Board) IsEmpty(index int) bool {
	return b.InBounds(index) && b.cells[index] == CellEmpty
}

func (b Board) IsFull() bool {
	for _, cell := range b.cells {
		if cell == CellEmpty {
			return false
		}
	}
	return true
}

func (b Board) CountEmpty() int {
	count := 0
	for _, cell := range b.cells {
		if cell == CellEmpty {
			count++
		}
	}
	return count
}

// EmptyCells returns the free indices in ascending order. Move generation
// relies on that order so equal-scoring moves resolve to the lowest index.
func (b Board) EmptyCells() []int {
	cells := make([]int, 0, len(b.cells))
	for i, cell := range b.cells {
		if cell == CellEmpty {
			cells = append(cells, i)
		}
	}
	return cells
}

// Outcome scans the win lines in build order and reports the first decided
// one. A full board with no winner is a draw; anything else is still open.
func (b Board) Outcome() (Cell, OutcomeKind) {
	for _, line := range b.winLines {
		first := b.cells[line[0]]
		if first == CellEmpty {
			continue
		}
		won := true
		for _, index := range line[1:] {
			if b.cells[index] != first {
				won = false
				break
			}
		}
		if won {
			return first, OutcomeWin
		}
	}
	if b.IsFull() {
		return CellEmpty, OutcomeDraw
	}
	return CellEmpty, OutcomeNone
}

// WinLines exposes the shared win line table. Callers must treat it as
// read-only.
func (b Board) WinLines() [][]int {
	return b.winLines
}

func (b Board) Clone() Board {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return Board{
		size:     b.size,
		cells:    cells,
		winLines: b.winLines,
	}
}

func (b Board) String() string {
	var sb strings.Builder
	for y := 0; y < b.size; y++ {
		for x := 0; x < b.size; x++ {
			cell := b.cells[y*b.size+x]
			if cell == CellEmpty {
				sb.WriteByte('.')
			} else {
				sb.WriteString(cell.String())
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

type lineCache struct {
	mu    sync.Mutex
	lines map[int][][]int
}

var cachedLines = &lineCache{lines: make(map[int][][]int)}

func winLinesForSize(size int) [][]int {
	cachedLines.mu.Lock()
	defer cachedLines.mu.Unlock()
	if lines, ok := cachedLines.lines[size]; ok {
		return lines
	}
	lines := buildWinLines(size)
	cachedLines.lines[size] = lines
	return lines
}

// buildWinLines produces the 2*size+2 decisive lines for a given size:
// rows first, then columns, then the two diagonals.
func buildWinLines(size int) [][]int {
	lines := make([][]int, 0, 2*size+2)

	// Rows.
	for y := 0; y < size; y++ {
		line := make([]int, 0, size)
		for x := 0; x < size; x++ {
			line = append(line, y*size+x)
		}
		lines = append(lines, line)
	}

	// Columns.
	for x := 0; x < size; x++ {
		line := make([]int, 0, size)
		for y := 0; y < size; y++ {
			line = append(line, y*size+x)
		}
		lines = append(lines, line)
	}

	// Main diagonal.
	diag := make([]int, 0, size)
	for i := 0; i < size; i++ {
		diag = append(diag, i*size+i)
	}
	lines = append(lines, diag)

	// Anti diagonal.
	anti := make([]int, 0, size)
	for i := 0; i < size; i++ {
		anti = append(anti, i*size+(size-1-i))
	}
	lines = append(lines, anti)

	return lines
}
