package game

import (
	"testing"
	"time"
)

func TestDepthForSize(t *testing.T) {
	cases := []struct {
		size  int
		depth int
	}{
		{3, DepthUnlimited},
		{4, 5},
		{5, 4},
		{6, 3},
		{2, 4},
		{7, 4},
		{0, 4},
	}
	for _, c := range cases {
		if depth := DepthForSize(c.size); depth != c.depth {
			t.Fatalf("DepthForSize(%d): expected %d, got %d", c.size, c.depth, depth)
		}
	}
}

func TestAIPlayerChoosesWinningMove(t *testing.T) {
	board := boardFromMarks(t, 3, map[int]Cell{
		0: CellX, 1: CellX,
		3: CellO, 4: CellO,
	})
	ai := NewAIPlayer(CellX, 3)
	state := GameState{Board: board, ToMove: CellX, Status: StatusRunning}

	move := ai.ChooseMove(state)
	if move.Index != 2 {
		t.Fatalf("expected move 2, got %d", move.Index)
	}
	if move.Depth != DepthUnlimited {
		t.Fatalf("expected the move to carry the search depth, got %d", move.Depth)
	}
}

func TestAIPlayerRecordsStats(t *testing.T) {
	board := mustBoard(t, 3)
	ai := NewAIPlayer(CellO, 3)

	if _, ok := ai.LastStats(); ok {
		t.Fatalf("no stats expected before the first search")
	}
	ai.ChooseMove(GameState{Board: board, ToMove: CellO, Status: StatusRunning})

	stats, ok := ai.LastStats()
	if !ok {
		t.Fatalf("expected stats after a search")
	}
	if stats.Nodes == 0 {
		t.Fatalf("expected a node count, got %+v", stats)
	}
	if stats.Elapsed < 0 {
		t.Fatalf("expected a non-negative duration, got %v", stats.Elapsed)
	}
}

func TestAIPlayerAsyncFlow(t *testing.T) {
	board := boardFromMarks(t, 3, map[int]Cell{
		0: CellX, 1: CellX,
		3: CellO, 4: CellO,
	})
	ai := NewAIPlayer(CellX, 3)
	if ai.HasMoveReady() {
		t.Fatalf("no move expected before thinking")
	}

	ai.StartThinking(GameState{Board: board.Clone(), ToMove: CellX, Status: StatusRunning})

	deadline := time.After(5 * time.Second)
	for !ai.HasMoveReady() {
		select {
		case <-deadline:
			t.Fatalf("search did not finish in time")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	move := ai.TakeMove()
	if move.Index != 2 {
		t.Fatalf("expected move 2 from the async search, got %d", move.Index)
	}
	if ai.HasMoveReady() {
		t.Fatalf("TakeMove must clear the ready flag")
	}
	if ai.IsThinking() {
		t.Fatalf("worker must be done once the move is ready")
	}
}
