package game

import (
	"errors"
	"testing"
	"time"
)

func TestControllerRejectsSizeChangeWhileRunning(t *testing.T) {
	gc, err := NewGameController(humanVsHumanSettings(3))
	if err != nil {
		t.Fatalf("NewGameController: %v", err)
	}
	if err := gc.StartGame(humanVsHumanSettings(3)); err != nil {
		t.Fatalf("StartGame: %v", err)
	}
	if ok, _ := gc.ApplyHumanMove(NewMove(0)); !ok {
		t.Fatalf("move rejected")
	}

	update := humanVsHumanSettings(4)
	if err := gc.UpdateSettings(update); !errors.Is(err, ErrGameRunning) {
		t.Fatalf("expected ErrGameRunning, got %v", err)
	}
	if gc.State().Board.At(0) != CellX {
		t.Fatalf("rejected update must not touch the board")
	}

	gc.Stop()
	if err := gc.UpdateSettings(update); err != nil {
		t.Fatalf("UpdateSettings after stop: %v", err)
	}
	if gc.Settings().BoardSize != 4 {
		t.Fatalf("expected the new settings to stick")
	}
}

func TestControllerSwitchesSeatsMidGame(t *testing.T) {
	gc, err := NewGameController(humanVsHumanSettings(3))
	if err != nil {
		t.Fatalf("NewGameController: %v", err)
	}
	if err := gc.StartGame(humanVsHumanSettings(3)); err != nil {
		t.Fatalf("StartGame: %v", err)
	}
	if ok, _ := gc.ApplyHumanMove(NewMove(0)); !ok {
		t.Fatalf("first move rejected")
	}
	if ok, _ := gc.ApplyHumanMove(NewMove(4)); !ok {
		t.Fatalf("second move rejected")
	}

	update := GameSettings{
		BoardSize: 3,
		XType:     PlayerAI,
		OType:     PlayerAI,
		FirstMove: FirstMoveX,
	}
	if err := gc.UpdateSettings(update); err != nil {
		t.Fatalf("UpdateSettings mid-game: %v", err)
	}

	state := gc.State()
	if state.Board.At(0) != CellX || state.Board.At(4) != CellO {
		t.Fatalf("seat switch must keep the position, board:\n%s", state.Board.String())
	}
	if len(gc.History()) != 2 {
		t.Fatalf("seat switch must keep the move log, got %d entries", len(gc.History()))
	}
	if state.Status != StatusRunning {
		t.Fatalf("seat switch must keep the game running, got %v", state.Status)
	}

	deadline := time.Now().Add(5 * time.Second)
	for !gc.Tick() {
		if time.Now().After(deadline) {
			t.Fatalf("the engine never took over the turn")
		}
		time.Sleep(time.Millisecond)
	}
	if len(gc.History()) != 3 {
		t.Fatalf("expected the engine to extend the game, got %d entries", len(gc.History()))
	}
}

func TestControllerSnapshotsAreIsolated(t *testing.T) {
	gc, err := NewGameController(humanVsHumanSettings(3))
	if err != nil {
		t.Fatalf("NewGameController: %v", err)
	}
	state := gc.State()
	state.Board.Set(0, CellX)

	if gc.State().Board.At(0) != CellEmpty {
		t.Fatalf("mutating a snapshot leaked into the controller")
	}
}

func TestControllerRejectsMoveOnEngineTurn(t *testing.T) {
	settings := GameSettings{
		BoardSize: 3,
		XType:     PlayerAI,
		OType:     PlayerHuman,
		FirstMove: FirstMoveX,
	}
	gc, err := NewGameController(settings)
	if err != nil {
		t.Fatalf("NewGameController: %v", err)
	}
	if err := gc.StartGame(settings); err != nil {
		t.Fatalf("StartGame: %v", err)
	}

	if ok, reason := gc.ApplyHumanMove(NewMove(0)); ok || reason != "not human turn" {
		t.Fatalf("expected (false,\"not human turn\"), got (%v,%q)", ok, reason)
	}
}

func TestControllerDrivesFullExchange(t *testing.T) {
	settings := GameSettings{
		BoardSize: 3,
		XType:     PlayerAI,
		OType:     PlayerHuman,
		FirstMove: FirstMoveO,
	}
	gc, err := NewGameController(settings)
	if err != nil {
		t.Fatalf("NewGameController: %v", err)
	}
	if err := gc.StartGame(settings); err != nil {
		t.Fatalf("StartGame: %v", err)
	}

	if !gc.CurrentPlayerIsHuman() {
		t.Fatalf("the human holds O and opens")
	}
	if ok, reason := gc.ApplyHumanMove(NewMove(4)); !ok {
		t.Fatalf("human move rejected: %s", reason)
	}

	deadline := time.Now().Add(5 * time.Second)
	for !gc.Tick() {
		if time.Now().After(deadline) {
			t.Fatalf("the engine never replied")
		}
		time.Sleep(time.Millisecond)
	}

	state := gc.State()
	if state.Board.CountEmpty() != 7 {
		t.Fatalf("expected one human and one engine move, board:\n%s", state.Board.String())
	}
	if state.ToMove != CellO {
		t.Fatalf("expected the human to move again")
	}
	if len(gc.History()) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(gc.History()))
	}
}

func TestControllerStopReturnsToNotStarted(t *testing.T) {
	gc, err := NewGameController(humanVsHumanSettings(3))
	if err != nil {
		t.Fatalf("NewGameController: %v", err)
	}
	if err := gc.StartGame(humanVsHumanSettings(3)); err != nil {
		t.Fatalf("StartGame: %v", err)
	}
	if ok, _ := gc.ApplyHumanMove(NewMove(0)); !ok {
		t.Fatalf("move rejected")
	}

	gc.Stop()
	state := gc.State()
	if state.Status != StatusNotStarted {
		t.Fatalf("expected StatusNotStarted after Stop, got %v", state.Status)
	}
	if state.Board.CountEmpty() != 9 {
		t.Fatalf("expected a cleared board after Stop")
	}
}
