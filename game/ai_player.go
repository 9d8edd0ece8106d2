package game

import (
	"log"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

// DepthForSize maps a board size to its search depth. 3x3 is small enough to
// search to the end; larger boards get a hand-tuned cutoff that keeps moves
// near-instant.
func DepthForSize(size int) int {
	switch size {
	case 3:
		return DepthUnlimited
	case 4:
		return 5
	case 5:
		return 4
	case 6:
		return 3
	default:
		return 4
	}
}

// AIPlayer wraps an Engine behind the IPlayer interface and adds an async
// mode for callers that poll: StartThinking runs the search on a goroutine
// and TakeMove hands over the result once it is ready.
type AIPlayer struct {
	cell   Cell
	engine Engine

	// Verbose logs per-search statistics after every ChooseMove.
	Verbose bool

	moveMutex  sync.Mutex
	readyMove  Move
	workerDone chan struct{}
	thinking   atomic.Bool
	moveReady  atomic.Bool

	statsMutex sync.Mutex
	lastStats  SearchStats
	hasStats   bool
}

func NewAIPlayer(cell Cell, boardSize int) *AIPlayer {
	return &AIPlayer{
		cell:   cell,
		engine: NewEngine(cell, DepthForSize(boardSize)),
	}
}

func (a *AIPlayer) IsHuman() bool {
	return false
}

func (a *AIPlayer) Cell() Cell {
	return a.cell
}

// ChooseMove runs a full search synchronously. The board inside state is
// mutated during the walk and restored before returning, so callers handing
// over a live state must not read it concurrently.
func (a *AIPlayer) ChooseMove(state GameState) Move {
	stats := SearchStats{Start: time.Now()}
	index := a.engine.BestMove(&state.Board, &stats)
	stats.Elapsed = time.Since(stats.Start)

	a.statsMutex.Lock()
	a.lastStats = stats
	a.hasStats = true
	a.statsMutex.Unlock()

	if a.Verbose {
		logSearchStats(a.cell, stats, index)
	}
	return Move{Index: index, Depth: a.engine.MaxDepth()}
}

// StartThinking kicks off an async search over the given state snapshot.
// Calling it while a previous search is still running is a no-op.
func (a *AIPlayer) StartThinking(state GameState) {
	if a.thinking.Load() {
		return
	}
	if a.workerDone != nil {
		<-a.workerDone
	}
	a.thinking.Store(true)
	a.moveReady.Store(false)

	done := make(chan struct{})
	a.workerDone = done

	go func() {
		defer close(done)
		move := a.ChooseMove(state)

		a.moveMutex.Lock()
		a.readyMove = move
		a.moveMutex.Unlock()

		a.moveReady.Store(true)
		a.thinking.Store(false)
	}()
}

func (a *AIPlayer) IsThinking() bool {
	return a.thinking.Load()
}

func (a *AIPlayer) HasMoveReady() bool {
	return a.moveReady.Load()
}

// TakeMove returns the move produced by the last StartThinking call and
// clears the ready flag.
func (a *AIPlayer) TakeMove() Move {
	a.moveMutex.Lock()
	defer a.moveMutex.Unlock()
	a.moveReady.Store(false)
	return a.readyMove
}

// LastStats reports the statistics of the most recent completed search.
func (a *AIPlayer) LastStats() (SearchStats, bool) {
	a.statsMutex.Lock()
	defer a.statsMutex.Unlock()
	return a.lastStats, a.hasStats
}

func logSearchStats(cell Cell, stats SearchStats, move int) {
	depth := "full"
	if stats.Depth >= 0 {
		depth = strconv.Itoa(stats.Depth)
	}
	log.Printf("[ai:%s] t=%dms depth=%s nodes=%d evals=%d cutoffs=%d nps=%.0f score=%d move=%d",
		cell, stats.Elapsed.Milliseconds(), depth,
		stats.Nodes, stats.Evals, stats.Cutoffs, stats.NodesPerSecond(),
		stats.BestScore, move)
}
