package game

type GameStatus int

const (
	StatusNotStarted GameStatus = iota
	StatusRunning
	StatusXWon
	StatusOWon
	StatusDraw
)

func (s GameStatus) Over() bool {
	return s == StatusXWon || s == StatusOWon || s == StatusDraw
}

// Winner returns the winning mark for the two won statuses and CellEmpty
// otherwise.
func (s GameStatus) Winner() Cell {
	switch s {
	case StatusXWon:
		return CellX
	case StatusOWon:
		return CellO
	default:
		return CellEmpty
	}
}

func statusForWinner(winner Cell) GameStatus {
	if winner == CellX {
		return StatusXWon
	}
	return StatusOWon
}

func otherCell(cell Cell) Cell {
	if cell == CellX {
		return CellO
	}
	return CellX
}

// GameState is the full observable position: the board, whose turn it is and
// how the game ended, if it did. WinningLine holds the indices of the first
// completed line once a side has won.
type GameState struct {
	Board       Board
	ToMove      Cell
	Status      GameStatus
	HasLastMove bool
	LastMove    Move
	LastMessage string
	WinningLine []int
}

func (s GameState) Clone() GameState {
	clone := s
	clone.Board = s.Board.Clone()
	if s.WinningLine != nil {
		clone.WinningLine = append([]int(nil), s.WinningLine...)
	}
	return clone
}
