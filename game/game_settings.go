package game

type PlayerType int

const (
	PlayerHuman PlayerType = iota
	PlayerAI
)

func (p PlayerType) String() string {
	if p == PlayerHuman {
		return "human"
	}
	return "ai"
}

// FirstMovePolicy decides which mark opens the game.
type FirstMovePolicy int

const (
	FirstMoveRandom FirstMovePolicy = iota
	FirstMoveX
	FirstMoveO
)

type GameSettings struct {
	BoardSize int             `json:"board_size"`
	XType     PlayerType      `json:"-"`
	OType     PlayerType      `json:"-"`
	FirstMove FirstMovePolicy `json:"-"`
}

// DefaultGameSettings is the classic setup: 3x3, the human plays O against
// the engine holding X, and a coin flip decides who opens.
func DefaultGameSettings() GameSettings {
	return GameSettings{
		BoardSize: 3,
		XType:     PlayerAI,
		OType:     PlayerHuman,
		FirstMove: FirstMoveRandom,
	}
}
