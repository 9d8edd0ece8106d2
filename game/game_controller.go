package game

import (
	"errors"
	"sync"
	"time"
)

// ErrGameRunning is returned when a change needs the current match stopped
// first, such as picking a new board size.
var ErrGameRunning = errors.New("game is running")

// GameController is the concurrency boundary around a single Game. Every
// entry point takes the lock, so transports and tick loops can share one
// instance freely.
type GameController struct {
	mu   sync.Mutex
	game *Game
}

func NewGameController(settings GameSettings) (*GameController, error) {
	g, err := NewGame(settings)
	if err != nil {
		return nil, err
	}
	return &GameController{game: g}, nil
}

// StartGame resets to the given settings and begins play.
func (gc *GameController) StartGame(settings GameSettings) error {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	if err := gc.game.Reset(settings); err != nil {
		return err
	}
	gc.game.Start()
	return nil
}

// Stop abandons the current match and returns to StatusNotStarted with the
// same settings.
func (gc *GameController) Stop() {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	_ = gc.game.Reset(gc.game.Settings())
}

// Reset rebuilds the match with the current settings without starting it.
func (gc *GameController) Reset() error {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.Reset(gc.game.Settings())
}

// UpdateSettings swaps in new settings. While a match is running only the
// seats and the first-move policy may change; the position and the move log
// are preserved. Anything touching the board size needs a reset first.
func (gc *GameController) UpdateSettings(settings GameSettings) error {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	if gc.game.state.Status == StatusRunning {
		return gc.game.SwitchPlayers(settings)
	}
	return gc.game.Reset(settings)
}

// ApplyHumanMove plays a move on behalf of the human side to move.
func (gc *GameController) ApplyHumanMove(move Move) (bool, string) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	if !gc.game.CurrentPlayerIsHuman() {
		return false, "not human turn"
	}
	return gc.game.TryApplyMove(move)
}

// Tick advances the game by at most one move.
func (gc *GameController) Tick() bool {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.Tick()
}

func (gc *GameController) State() GameState {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.State()
}

func (gc *GameController) Settings() GameSettings {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.Settings()
}

func (gc *GameController) History() []HistoryEntry {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.History()
}

func (gc *GameController) LastHistoryEntry() (HistoryEntry, bool) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.LastHistoryEntry()
}

func (gc *GameController) CurrentPlayerIsHuman() bool {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.CurrentPlayerIsHuman()
}

func (gc *GameController) AiThinking() bool {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.AiThinking()
}

func (gc *GameController) LastSearchStats() (Cell, SearchStats, bool) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.LastSearchStats()
}

func (gc *GameController) SetSearchLogging(enabled bool) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.game.SetSearchLogging(enabled)
}

func (gc *GameController) TurnStartedAtMs() int64 {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return time.Since(gc.game.TurnStartedAt()).Milliseconds()
}
