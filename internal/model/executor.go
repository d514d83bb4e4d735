package model

// checkMove runs the move preconditions in order and, if they hold, plays the
// move on a copy of the board. The copy is returned only when the mover's
// king is safe on it, and it is then the committed board.
func checkMove(b *BoardState, from, to Position, turn Color, enPassant *Position) (BoardState, error) {
	piece := b.At(from)
	if piece.IsEmpty() {
		return BoardState{}, ErrNoPiece
	}
	if piece.Color != turn {
		return BoardState{}, ErrNotYourTurn
	}
	if dst := b.At(to); !dst.IsEmpty() && dst.Color == turn {
		return BoardState{}, ErrOwnPiece
	}
	if !shapeLegal(b, from, to, moveContext{enPassant: enPassant}) {
		return BoardState{}, ErrIllegalMove
	}

	next := *b
	shapeLegal(&next, from, to, moveContext{enPassant: enPassant, commit: true})
	next.relocate(from, to)
	next.markMoved(from)
	next.markMoved(to)

	if inCheck(&next, turn) {
		return BoardState{}, ErrKingInCheck
	}
	return next, nil
}

type execution struct {
	board     BoardState
	ply       Ply
	enPassant *Position
	promotes  bool
}

func executeMove(b *BoardState, from, to Position, turn Color, enPassant *Position) (execution, error) {
	next, err := checkMove(b, from, to, turn, enPassant)
	if err != nil {
		return execution{}, err
	}

	piece := b.At(from)
	ply := Ply{Piece: piece, From: from, To: to}
	if captured := b.At(to); !captured.IsEmpty() {
		ply.CapturedPiece = &captured
	} else if piece.Type == Pawn && from.Col != to.Col {
		// a diagonal pawn move onto an empty square only passes as en passant
		captured := b.At(*enPassant)
		ply.CapturedPiece = &captured
		ply.EnPassant = true
	}
	if piece.Type == King && abs(to.Col-from.Col) == 2 {
		rookFrom := Position{Row: from.Row, Col: 7}
		if to.Col < from.Col {
			rookFrom.Col = 0
		}
		ply.CastleRookMove = &CastleRookMove{
			From: rookFrom,
			To:   Position{Row: from.Row, Col: (from.Col + to.Col) / 2},
		}
	}

	ex := execution{board: next, ply: ply}
	if piece.Type == Pawn && abs(to.Row-from.Row) == 2 {
		marker := to
		ex.enPassant = &marker
	}
	ex.promotes = piece.Type == Pawn && to.Row == promotionRow(piece.Color)
	return ex, nil
}
