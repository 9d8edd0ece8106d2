package game

import "fmt"

// Rules validates moves against a fixed board size and locates completed
// lines. All rule checks are pure reads.
type Rules struct {
	settings GameSettings
}

func NewRules(settings GameSettings) Rules {
	return Rules{settings: settings}
}

// IsLegal reports whether the move may be played on the current board, with
// a short reason when it may not.
func (r Rules) IsLegal(state GameState, move Move) (bool, string) {
	if !move.IsValid(r.settings.BoardSize) {
		return false, "out of bounds"
	}
	if !state.Board.IsEmpty(move.Index) {
		return false, "occupied"
	}
	return true, ""
}

func (r Rules) IsDraw(board *Board) bool {
	return board.CountEmpty() == 0
}

// FindWinningLine returns a copy of the first completed line, in win line
// build order, together with the mark holding it.
func (r Rules) FindWinningLine(board *Board) ([]int, Cell, bool) {
	for _, line := range board.WinLines() {
		first := board.At(line[0])
		if first == CellEmpty {
			continue
		}
		complete := true
		for _, index := range line[1:] {
			if board.At(index) != first {
				complete = false
				break
			}
		}
		if complete {
			return append([]int(nil), line...), first, true
		}
	}
	return nil, CellEmpty, false
}

func (r Rules) String() string {
	return fmt.Sprintf("Rules{size=%d}", r.settings.BoardSize)
}
