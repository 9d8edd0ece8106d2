package game

import "testing"

func TestEvaluateEmptyBoardIsNeutral(t *testing.T) {
	board := mustBoard(t, 3)
	if score := EvaluateBoard(&board, CellX); score != 0 {
		t.Fatalf("empty board: expected 0, got %d", score)
	}
}

func TestEvaluateSingleMarkOn3x3(t *testing.T) {
	// A corner mark sits on three open lines, each one mark short of two on a
	// 3x3, so every line lands in the size-2 tier.
	board := mustBoard(t, 3)
	board.Set(0, CellX)
	if score := EvaluateBoard(&board, CellX); score != 3*ownBuildingScore {
		t.Fatalf("own corner: expected %d, got %d", 3*ownBuildingScore, score)
	}

	board = mustBoard(t, 3)
	board.Set(0, CellO)
	if score := EvaluateBoard(&board, CellX); score != -3*oppBuildingScore {
		t.Fatalf("opponent corner: expected %d, got %d", -3*oppBuildingScore, score)
	}
}

func TestEvaluateNearWin(t *testing.T) {
	// X at 0 and 1: the top row is one short of complete, and each mark still
	// holds an open column plus the diagonal through the corner.
	board := mustBoard(t, 3)
	board.Set(0, CellX)
	board.Set(1, CellX)
	want := ownNearWinScore + 3*ownBuildingScore
	if score := EvaluateBoard(&board, CellX); score != want {
		t.Fatalf("own near win: expected %d, got %d", want, score)
	}
}

func TestEvaluateOpponentNearWinWeighsHeavier(t *testing.T) {
	board := mustBoard(t, 3)
	board.Set(0, CellO)
	board.Set(1, CellO)
	want := -(oppNearWinScore + 3*oppBuildingScore)
	score := EvaluateBoard(&board, CellX)
	if score != want {
		t.Fatalf("opponent near win: expected %d, got %d", want, score)
	}

	board = mustBoard(t, 3)
	board.Set(0, CellX)
	board.Set(1, CellX)
	own := EvaluateBoard(&board, CellX)
	if -score <= own {
		t.Fatalf("opponent threat must outweigh the mirrored own threat: own=%d opp=%d", own, score)
	}
}

func TestEvaluateBlockedLineScoresNothing(t *testing.T) {
	// X0 O1: the top row is dead. X keeps its column and diagonal, O keeps
	// its column, and on a 3x3 those tiers cancel exactly.
	board := mustBoard(t, 3)
	board.Set(0, CellX)
	board.Set(1, CellO)
	if score := EvaluateBoard(&board, CellX); score != 0 {
		t.Fatalf("blocked row: expected 0, got %d", score)
	}
}

func TestEvaluatePairTierOnLargeBoard(t *testing.T) {
	// Two in an open row of five is far from a threat and only earns the
	// pair tier. The columns and diagonal hold one mark each, below every
	// tier on a 5x5.
	board := mustBoard(t, 5)
	board.Set(0, CellX)
	board.Set(1, CellX)
	if score := EvaluateBoard(&board, CellX); score != ownPairScore {
		t.Fatalf("own pair: expected %d, got %d", ownPairScore, score)
	}

	board = mustBoard(t, 5)
	board.Set(0, CellO)
	board.Set(1, CellO)
	if score := EvaluateBoard(&board, CellX); score != -oppPairScore {
		t.Fatalf("opponent pair: expected %d, got %d", -oppPairScore, score)
	}
}

func TestEvaluateLoneMarkOn4x4IsWorthless(t *testing.T) {
	// On a 4x4 a single mark is neither size-2 nor a pair, so it scores zero
	// on every line it touches.
	board := mustBoard(t, 4)
	board.Set(5, CellX)
	if score := EvaluateBoard(&board, CellX); score != 0 {
		t.Fatalf("lone mark on 4x4: expected 0, got %d", score)
	}
}

func TestEvaluateCompletedLine(t *testing.T) {
	board := mustBoard(t, 3)
	for _, index := range []int{0, 1, 2} {
		board.Set(index, CellX)
	}
	if score := EvaluateBoard(&board, CellX); score < WinScore {
		t.Fatalf("completed own line: expected at least %d, got %d", WinScore, score)
	}
	if score := EvaluateBoard(&board, CellO); score > LossScore {
		t.Fatalf("completed opponent line: expected at most %d, got %d", LossScore, score)
	}
}
