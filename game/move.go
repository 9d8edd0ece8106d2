package game

// Move addresses a single cell by its flat index. Depth records the search
// depth that produced the move; human moves leave it at zero.
type Move struct {
	Index int `json:"index"`
	Depth int `json:"depth,omitempty"`
}

func NewMove(index int) Move {
	return Move{Index: index}
}

func (m Move) Row(size int) int {
	return m.Index / size
}

func (m Move) Col(size int) int {
	return m.Index % size
}

func (m Move) IsValid(size int) bool {
	return m.Index >= 0 && m.Index < size*size
}

func (m Move) Equals(other Move) bool {
	return m.Index == other.Index
}
