package game

import (
	"errors"
	"testing"
)

func mustBoard(t *testing.T, size int) Board {
	t.Helper()
	board, err := NewBoard(size)
	if err != nil {
		t.Fatalf("NewBoard(%d): %v", size, err)
	}
	return board
}

func TestNewBoardRejectsBadSizes(t *testing.T) {
	for _, size := range []int{-1, 0, 1, 2, 7, 10} {
		if _, err := NewBoard(size); !errors.Is(err, ErrBoardSize) {
			t.Fatalf("size %d: expected ErrBoardSize, got %v", size, err)
		}
	}
	for size := MinBoardSize; size <= MaxBoardSize; size++ {
		board, err := NewBoard(size)
		if err != nil {
			t.Fatalf("size %d: unexpected error %v", size, err)
		}
		if board.CountEmpty() != size*size {
			t.Fatalf("size %d: expected %d empty cells, got %d", size, size*size, board.CountEmpty())
		}
	}
}

func TestWinLineShape(t *testing.T) {
	for size := MinBoardSize; size <= MaxBoardSize; size++ {
		board := mustBoard(t, size)
		lines := board.WinLines()
		if len(lines) != 2*size+2 {
			t.Fatalf("size %d: expected %d win lines, got %d", size, 2*size+2, len(lines))
		}
		for i, line := range lines {
			if len(line) != size {
				t.Fatalf("size %d line %d: expected length %d, got %d", size, i, size, len(line))
			}
			for _, index := range line {
				if index < 0 || index >= size*size {
					t.Fatalf("size %d line %d: index %d out of range", size, i, index)
				}
			}
		}
	}
}

func TestWinLinesSharedPerSize(t *testing.T) {
	a := mustBoard(t, 4)
	b := mustBoard(t, 4)
	if &a.WinLines()[0][0] != &b.WinLines()[0][0] {
		t.Fatalf("expected boards of one size to share the cached line table")
	}
}

func TestOutcomeOpenPositions(t *testing.T) {
	board := mustBoard(t, 3)
	if winner, kind := board.Outcome(); kind != OutcomeNone || winner != CellEmpty {
		t.Fatalf("empty board: expected open outcome, got winner=%v kind=%v", winner, kind)
	}

	board.Set(0, CellX)
	board.Set(4, CellO)
	if _, kind := board.Outcome(); kind != OutcomeNone {
		t.Fatalf("mid-game board: expected open outcome, got %v", kind)
	}
}

func TestOutcomeRowWin(t *testing.T) {
	board := mustBoard(t, 3)
	for _, index := range []int{3, 4, 5} {
		board.Set(index, CellO)
	}
	winner, kind := board.Outcome()
	if kind != OutcomeWin || winner != CellO {
		t.Fatalf("expected O row win, got winner=%v kind=%v", winner, kind)
	}
}

func TestOutcomeColumnWin(t *testing.T) {
	board := mustBoard(t, 4)
	for _, index := range []int{2, 6, 10, 14} {
		board.Set(index, CellX)
	}
	winner, kind := board.Outcome()
	if kind != OutcomeWin || winner != CellX {
		t.Fatalf("expected X column win, got winner=%v kind=%v", winner, kind)
	}
}

func TestOutcomeDiagonalWins(t *testing.T) {
	board := mustBoard(t, 3)
	for _, index := range []int{0, 4, 8} {
		board.Set(index, CellX)
	}
	if winner, kind := board.Outcome(); kind != OutcomeWin || winner != CellX {
		t.Fatalf("main diagonal: expected X win, got winner=%v kind=%v", winner, kind)
	}

	board = mustBoard(t, 3)
	for _, index := range []int{2, 4, 6} {
		board.Set(index, CellO)
	}
	if winner, kind := board.Outcome(); kind != OutcomeWin || winner != CellO {
		t.Fatalf("anti diagonal: expected O win, got winner=%v kind=%v", winner, kind)
	}
}

func TestPartialDiagonalDoesNotWin(t *testing.T) {
	// A 4x4 board has no 4-in-a-row on the short diagonals, and three marks
	// on the main diagonal are not enough.
	board := mustBoard(t, 4)
	for _, index := range []int{0, 5, 10} {
		board.Set(index, CellX)
	}
	if _, kind := board.Outcome(); kind != OutcomeNone {
		t.Fatalf("expected open outcome, got %v", kind)
	}
}

func TestOutcomeDraw(t *testing.T) {
	// X O X
	// X O O
	// O X X
	board := mustBoard(t, 3)
	marks := []Cell{CellX, CellO, CellX, CellX, CellO, CellO, CellO, CellX, CellX}
	for i, cell := range marks {
		board.Set(i, cell)
	}
	winner, kind := board.Outcome()
	if kind != OutcomeDraw || winner != CellEmpty {
		t.Fatalf("expected draw, got winner=%v kind=%v", winner, kind)
	}
}

func TestOutcomeIsIdempotent(t *testing.T) {
	board := mustBoard(t, 3)
	for _, index := range []int{0, 1, 2} {
		board.Set(index, CellX)
	}
	w1, k1 := board.Outcome()
	w2, k2 := board.Outcome()
	if w1 != w2 || k1 != k2 {
		t.Fatalf("outcome changed between calls: (%v,%v) then (%v,%v)", w1, k1, w2, k2)
	}
}

func TestEmptyCellsAscending(t *testing.T) {
	board := mustBoard(t, 3)
	cells := board.EmptyCells()
	if len(cells) != 9 {
		t.Fatalf("expected 9 empty cells, got %d", len(cells))
	}
	for i, index := range cells {
		if index != i {
			t.Fatalf("expected ascending indices, got %v", cells)
		}
	}

	board.Set(0, CellX)
	board.Set(4, CellO)
	board.Set(8, CellX)
	cells = board.EmptyCells()
	want := []int{1, 2, 3, 5, 6, 7}
	if len(cells) != len(want) {
		t.Fatalf("expected %v, got %v", want, cells)
	}
	for i := range want {
		if cells[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, cells)
		}
	}
}

func TestSetAndRemove(t *testing.T) {
	board := mustBoard(t, 3)
	board.Set(4, CellX)
	if board.At(4) != CellX {
		t.Fatalf("expected X at 4, got %v", board.At(4))
	}
	if board.IsEmpty(4) {
		t.Fatalf("cell 4 should not be empty")
	}
	board.Remove(4)
	if !board.IsEmpty(4) {
		t.Fatalf("cell 4 should be empty after Remove")
	}

	// Out-of-range access must be inert.
	board.Set(99, CellO)
	if board.CountEmpty() != 9 {
		t.Fatalf("out-of-range Set must not change the board")
	}
	if board.IsEmpty(-1) || board.IsEmpty(9) {
		t.Fatalf("out-of-range cells are not empty")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	board := mustBoard(t, 3)
	board.Set(0, CellX)

	clone := board.Clone()
	clone.Set(1, CellO)

	if board.At(1) != CellEmpty {
		t.Fatalf("mutating the clone leaked into the original")
	}
	if clone.At(0) != CellX {
		t.Fatalf("clone lost the original marks")
	}
}
