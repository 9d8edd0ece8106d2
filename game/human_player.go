package game

import "sync"

// HumanPlayer is a mailbox seat: the transport layer deposits a move with
// SetPendingMove and the game loop collects it on the next tick.
type HumanPlayer struct {
	mu          sync.Mutex
	pendingMove Move
	hasPending  bool
}

func NewHumanPlayer() *HumanPlayer {
	return &HumanPlayer{}
}

func (h *HumanPlayer) IsHuman() bool {
	return true
}

// ChooseMove never produces a move for a human seat.
func (h *HumanPlayer) ChooseMove(state GameState) Move {
	return Move{Index: -1}
}

func (h *HumanPlayer) SetPendingMove(move Move) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pendingMove = move
	h.hasPending = true
}

func (h *HumanPlayer) HasPendingMove() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.hasPending
}

func (h *HumanPlayer) TakePendingMove() Move {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hasPending = false
	return h.pendingMove
}
