package model

// isSafe reports whether no piece of color's opponent could move onto pos.
// An empty pos is probed as if it held one of color's pieces, so pawns are
// judged by their capture diagonals rather than their pushes.
func isSafe(b *BoardState, pos Position, color Color) bool {
	probe := b
	if b.IsEmpty(pos) {
		scratch := *b
		scratch.set(pos, Piece{Type: Pawn, Color: color})
		probe = &scratch
	}

	enemy := color.Opposite()
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			from := Position{Row: row, Col: col}
			if from == pos || probe.At(from).Color != enemy {
				continue
			}
			if shapeLegal(probe, from, pos, moveContext{}) {
				return false
			}
		}
	}
	return true
}

func inCheck(b *BoardState, color Color) bool {
	king, ok := b.KingPosition(color)
	if !ok {
		return false
	}
	return !isSafe(b, king, color)
}
