package model

type CastleRookMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

// Ply records one committed move.
type Ply struct {
	Piece          Piece           `json:"piece"`
	From           Position        `json:"from"`
	To             Position        `json:"to"`
	CapturedPiece  *Piece          `json:"capturedPiece"`
	EnPassant      bool            `json:"enPassant"`
	CastleRookMove *CastleRookMove `json:"castleRookMove"`
	Promotion      PieceType       `json:"promotion"`
}

type SimpleMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

type MoveOutcome string

const (
	Accepted         MoveOutcome = "accepted"
	Rejected         MoveOutcome = "rejected"
	PendingPromotion MoveOutcome = "pendingPromotion"
)

// MoveResult is what TryMove hands back. State is the input state when the
// move was rejected.
type MoveResult struct {
	Outcome MoveOutcome
	State   GameState
	Reason  error
}
