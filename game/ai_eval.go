package game

// Line weights for positions that are not decided yet. The opponent tiers are
// deliberately heavier than the engine's own so an imminent loss outweighs an
// equally advanced attack. A line holding both marks is dead and scores
// nothing.
const (
	ownNearWinScore  = 50000
	ownBuildingScore = 1000
	ownPairScore     = 10

	oppNearWinScore  = 55000
	oppBuildingScore = 2000
	oppPairScore     = 20
)

// EvaluateBoard scores the position from the engine's point of view by
// walking every win line once and bucketing it by how many marks of a single
// side it holds. Completed lines score the terminal values, though the search
// detects those before ever evaluating.
func EvaluateBoard(board *Board, engine Cell) int {
	opponent := otherCell(engine)
	size := board.Size()
	score := 0

	for _, line := range board.WinLines() {
		mine := 0
		theirs := 0
		for _, index := range line {
			switch board.At(index) {
			case engine:
				mine++
			case opponent:
				theirs++
			}
		}
		if mine > 0 && theirs > 0 {
			continue
		}
		if mine > 0 {
			switch {
			case mine == size:
				score += WinScore
			case mine == size-1:
				score += ownNearWinScore
			case mine == size-2:
				score += ownBuildingScore
			case mine >= 2:
				score += ownPairScore
			}
		} else if theirs > 0 {
			switch {
			case theirs == size:
				score -= WinScore
			case theirs == size-1:
				score -= oppNearWinScore
			case theirs == size-2:
				score -= oppBuildingScore
			case theirs >= 2:
				score -= oppPairScore
			}
		}
	}
	return score
}
