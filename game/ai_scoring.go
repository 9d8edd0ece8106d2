package game

import (
	"math"
	"time"
)

const (
	WinScore  = 1000000
	LossScore = -1000000
)

// DepthUnlimited disables the depth cutoff so the search only stops at
// terminal positions. Any negative depth behaves the same way.
const DepthUnlimited = -1

// SearchStats collects counters for one BestMove call.
type SearchStats struct {
	Nodes     int64
	Evals     int64
	Cutoffs   int64
	BestScore int
	Depth     int
	Start     time.Time
	Elapsed   time.Duration
}

func (s SearchStats) NodesPerSecond() float64 {
	secs := s.Elapsed.Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(s.Nodes) / secs
}

// Engine is an immutable minimax searcher bound to one mark. It mutates the
// board it is handed during the walk and restores every cell before
// returning, so the caller sees the position unchanged.
type Engine struct {
	engine   Cell
	opponent Cell
	maxDepth int
}

func NewEngine(engineCell Cell, maxDepth int) Engine {
	return Engine{
		engine:   engineCell,
		opponent: otherCell(engineCell),
		maxDepth: maxDepth,
	}
}

func (e Engine) Cell() Cell {
	return e.engine
}

func (e Engine) MaxDepth() int {
	return e.maxDepth
}

// BestMove scores every free cell in ascending order and returns the index
// of the strongest one. Strict comparison keeps the lowest index on ties.
// Only a board with no free cell at all yields -1.
func (e Engine) BestMove(board *Board, stats *SearchStats) int {
	bestScore := math.MinInt
	bestMove := -1

	for _, index := range board.EmptyCells() {
		board.Set(index, e.engine)
		score := e.score(board, e.maxDepth, math.MinInt, math.MaxInt, false, stats)
		board.Remove(index)
		if score > bestScore {
			bestScore = score
			bestMove = index
		}
	}
	if stats != nil {
		stats.BestScore = bestScore
		stats.Depth = e.maxDepth
	}
	return bestMove
}

// score runs plain minimax with alpha-beta pruning. Terminal detection comes
// first so a decided position never falls through to the heuristic, then the
// depth cutoff, then the recursive walk over the free cells in ascending
// order. Each candidate is played directly on the board and erased after the
// child call returns.
func (e Engine) score(board *Board, depth, alpha, beta int, maximizing bool, stats *SearchStats) int {
	if stats != nil {
		stats.Nodes++
	}

	winner, kind := board.Outcome()
	switch kind {
	case OutcomeWin:
		if winner == e.engine {
			return WinScore
		}
		return LossScore
	case OutcomeDraw:
		return 0
	}

	if depth == 0 {
		if stats != nil {
			stats.Evals++
		}
		return EvaluateBoard(board, e.engine)
	}

	if maximizing {
		best := math.MinInt
		for _, index := range board.EmptyCells() {
			board.Set(index, e.engine)
			value := e.score(board, depth-1, alpha, beta, false, stats)
			board.Remove(index)
			if value > best {
				best = value
			}
			if value > alpha {
				alpha = value
			}
			if beta <= alpha {
				if stats != nil {
					stats.Cutoffs++
				}
				break
			}
		}
		return best
	}

	best := math.MaxInt
	for _, index := range board.EmptyCells() {
		board.Set(index, e.opponent)
		value := e.score(board, depth-1, alpha, beta, true, stats)
		board.Remove(index)
		if value < best {
			best = value
		}
		if value < beta {
			beta = value
		}
		if beta <= alpha {
			if stats != nil {
				stats.Cutoffs++
			}
			break
		}
	}
	return best
}
