package model

type StatusKind string

const (
	InProgress StatusKind = "inProgress"
	Check      StatusKind = "check"
	Checkmate  StatusKind = "checkmate"
	Stalemate  StatusKind = "stalemate"
)

// Status is the terminal-condition report for the side to move. Color is the
// side in check for Check and the winner for Checkmate; it is empty otherwise.
type Status struct {
	Kind  StatusKind `json:"kind"`
	Color Color      `json:"color,omitempty"`
}

func (s Status) Terminal() bool {
	return s.Kind == Checkmate || s.Kind == Stalemate
}

// hasLegalMove tries every origin/destination pair for color. It stops at the
// first accepted move.
func hasLegalMove(b *BoardState, color Color, enPassant *Position) bool {
	for fromRow := 0; fromRow < 8; fromRow++ {
		for fromCol := 0; fromCol < 8; fromCol++ {
			from := Position{Row: fromRow, Col: fromCol}
			if b.At(from).Color != color {
				continue
			}
			if len(legalDestinations(b, from, color, enPassant, 1)) > 0 {
				return true
			}
		}
	}
	return false
}

// legalDestinations lists accepted destinations from from in row-major order,
// stopping after limit results when limit > 0.
func legalDestinations(b *BoardState, from Position, turn Color, enPassant *Position, limit int) []Position {
	var dests []Position
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			to := Position{Row: row, Col: col}
			if _, err := checkMove(b, from, to, turn, enPassant); err != nil {
				continue
			}
			dests = append(dests, to)
			if limit > 0 && len(dests) >= limit {
				return dests
			}
		}
	}
	return dests
}

func evaluateStatus(b *BoardState, toMove Color, enPassant *Position) Status {
	checked := inCheck(b, toMove)
	if !hasLegalMove(b, toMove, enPassant) {
		if checked {
			return Status{Kind: Checkmate, Color: toMove.Opposite()}
		}
		return Status{Kind: Stalemate}
	}
	if checked {
		return Status{Kind: Check, Color: toMove}
	}
	return Status{Kind: InProgress}
}
