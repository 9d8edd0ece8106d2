package game

import (
	"fmt"
	"math/rand"
	"time"
)

// Game owns one match: the state, the rules, both seats and the move log.
// It is not safe for concurrent use; GameController adds the locking.
type Game struct {
	settings  GameSettings
	rules     Rules
	state     GameState
	history   MoveHistory
	xPlayer   IPlayer
	oPlayer   IPlayer
	turnStart time.Time
	logSearch bool
}

func NewGame(settings GameSettings) (*Game, error) {
	g := &Game{}
	if err := g.Reset(settings); err != nil {
		return nil, err
	}
	return g, nil
}

// Reset rebuilds the board and both seats from the given settings and leaves
// the game in StatusNotStarted. The opening mark is resolved here, so a
// random first-move policy is re-rolled on every reset.
func (g *Game) Reset(settings GameSettings) error {
	board, err := NewBoard(settings.BoardSize)
	if err != nil {
		return err
	}
	g.settings = settings
	g.rules = NewRules(settings)
	g.state = GameState{
		Board:    board,
		ToMove:   openingCell(settings),
		Status:   StatusNotStarted,
		LastMove: Move{Index: -1},
	}
	g.history.Clear()
	g.createPlayers()
	g.turnStart = time.Now()
	return nil
}

func (g *Game) Start() {
	if g.state.Status != StatusNotStarted {
		return
	}
	g.state.Status = StatusRunning
	g.turnStart = time.Now()
}

func openingCell(settings GameSettings) Cell {
	switch settings.FirstMove {
	case FirstMoveX:
		return CellX
	case FirstMoveO:
		return CellO
	default:
		if rand.Intn(2) == 0 {
			return CellX
		}
		return CellO
	}
}

func (g *Game) createPlayers() {
	if g.settings.XType == PlayerHuman {
		g.xPlayer = NewHumanPlayer()
	} else {
		ai := NewAIPlayer(CellX, g.settings.BoardSize)
		ai.Verbose = g.logSearch
		g.xPlayer = ai
	}
	if g.settings.OType == PlayerHuman {
		g.oPlayer = NewHumanPlayer()
	} else {
		ai := NewAIPlayer(CellO, g.settings.BoardSize)
		ai.Verbose = g.logSearch
		g.oPlayer = ai
	}
}

// SwitchPlayers applies new player types and first-move policy without
// touching the board or the move log, so seats can change hands mid-game.
// The board size must stay the same; use Reset for anything bigger.
func (g *Game) SwitchPlayers(settings GameSettings) error {
	if settings.BoardSize != g.settings.BoardSize {
		return fmt.Errorf("%w: board size is fixed until reset", ErrGameRunning)
	}
	g.settings = settings
	g.rules = NewRules(settings)
	g.createPlayers()
	return nil
}

// State returns an isolated snapshot of the position.
func (g *Game) State() GameState {
	return g.state.Clone()
}

func (g *Game) Settings() GameSettings {
	return g.settings
}

func (g *Game) Rules() Rules {
	return g.rules
}

func (g *Game) History() []HistoryEntry {
	return g.history.All()
}

func (g *Game) LastHistoryEntry() (HistoryEntry, bool) {
	return g.history.Last()
}

func (g *Game) TurnStartedAt() time.Time {
	return g.turnStart
}

// TryApplyMove plays a move for the side to move. It validates, writes the
// mark, logs the move and settles the outcome, flipping the turn only when
// the game goes on.
func (g *Game) TryApplyMove(move Move) (bool, string) {
	if g.state.Status != StatusRunning {
		return false, "game not running"
	}
	legal, reason := g.rules.IsLegal(g.state, move)
	if !legal {
		g.state.LastMessage = reason
		return false, reason
	}
	g.state.LastMessage = ""

	cell := g.state.ToMove
	player := g.currentPlayer()
	g.state.Board.Set(move.Index, cell)
	g.state.LastMove = move
	g.state.HasLastMove = true
	g.history.Push(HistoryEntry{
		Move:      move,
		Cell:      cell,
		IsAi:      player != nil && !player.IsHuman(),
		ElapsedMs: float64(time.Since(g.turnStart).Milliseconds()),
	})

	winner, kind := g.state.Board.Outcome()
	switch kind {
	case OutcomeWin:
		if line, _, ok := g.rules.FindWinningLine(&g.state.Board); ok {
			g.state.WinningLine = line
		}
		g.state.Status = statusForWinner(winner)
		return true, ""
	case OutcomeDraw:
		g.state.Status = StatusDraw
		return true, ""
	}

	g.state.ToMove = otherCell(cell)
	g.turnStart = time.Now()
	return true, ""
}

// SubmitHumanMove deposits a move for the human side to move. It is applied
// on the next Tick.
func (g *Game) SubmitHumanMove(move Move) bool {
	player := g.currentPlayer()
	human, ok := player.(*HumanPlayer)
	if !ok {
		return false
	}
	human.SetPendingMove(move)
	return true
}

// Tick advances the game by at most one move and reports whether one was
// applied. Human seats are drained from their pending mailbox; engine seats
// think on a goroutine, so the first tick starts the search and a later one
// collects the result.
func (g *Game) Tick() bool {
	if g.state.Status != StatusRunning {
		return false
	}
	player := g.currentPlayer()
	if player == nil {
		return false
	}

	if human, ok := player.(*HumanPlayer); ok {
		if !human.HasPendingMove() {
			return false
		}
		applied, _ := g.TryApplyMove(human.TakePendingMove())
		return applied
	}

	if ai, ok := player.(*AIPlayer); ok {
		if ai.HasMoveReady() {
			applied, _ := g.TryApplyMove(ai.TakeMove())
			return applied
		}
		if !ai.IsThinking() {
			ai.StartThinking(g.state.Clone())
		}
		return false
	}

	applied, _ := g.TryApplyMove(player.ChooseMove(g.state.Clone()))
	return applied
}

func (g *Game) CurrentPlayerIsHuman() bool {
	player := g.currentPlayer()
	return player != nil && player.IsHuman()
}

func (g *Game) AiThinking() bool {
	ai, ok := g.currentPlayer().(*AIPlayer)
	return ok && ai.IsThinking()
}

// LastSearchStats reports the statistics behind the most recent engine move.
func (g *Game) LastSearchStats() (Cell, SearchStats, bool) {
	entry, ok := g.history.Last()
	if !ok || !entry.IsAi {
		return CellEmpty, SearchStats{}, false
	}
	ai, ok := g.playerForCell(entry.Cell).(*AIPlayer)
	if !ok {
		return CellEmpty, SearchStats{}, false
	}
	stats, ok := ai.LastStats()
	if !ok {
		return CellEmpty, SearchStats{}, false
	}
	return entry.Cell, stats, true
}

// SetSearchLogging toggles per-move search statistics on every engine seat.
// The setting sticks across resets and seat switches.
func (g *Game) SetSearchLogging(enabled bool) {
	g.logSearch = enabled
	for _, player := range []IPlayer{g.xPlayer, g.oPlayer} {
		if ai, ok := player.(*AIPlayer); ok {
			ai.Verbose = enabled
		}
	}
}

func (g *Game) currentPlayer() IPlayer {
	return g.playerForCell(g.state.ToMove)
}

func (g *Game) playerForCell(cell Cell) IPlayer {
	if cell == CellX {
		return g.xPlayer
	}
	return g.oPlayer
}
