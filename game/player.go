package game

// IPlayer is the seat at the table. Human seats report moves through their
// own pending-move channel instead of ChooseMove; only engine seats compute
// one on demand.
type IPlayer interface {
	IsHuman() bool
	ChooseMove(state GameState) Move
}
