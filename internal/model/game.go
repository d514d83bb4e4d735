package model

import (
	"fmt"
	"slices"
)

type Phase string

const (
	PhaseAwaitingMove      Phase = "awaitingMove"
	PhaseAwaitingPromotion Phase = "awaitingPromotion"
	PhaseGameOver          Phase = "gameOver"
)

// GameState is treated as immutable: every operation returns a new value and
// leaves its receiver untouched. Pointer fields are never written through.
type GameState struct {
	Board           BoardState  `json:"boardState"`
	ToMove          Color       `json:"toMove"`
	Phase           Phase       `json:"phase"`
	EnPassantTarget *Position   `json:"enPassantTarget"`
	PromotionSquare *Position   `json:"promotionSquare"`
	Status          Status      `json:"status"`
	LastMove        *SimpleMove `json:"lastMove"`
	MoveHistory     []Ply       `json:"moveHistory"`
}

// NewGameState returns the standard initial position with White to move.
func NewGameState() GameState {
	return newGameState(newBoard(), White)
}

func newGameState(board BoardState, toMove Color) GameState {
	s := GameState{
		Board:       board,
		ToMove:      toMove,
		Phase:       PhaseAwaitingMove,
		MoveHistory: make([]Ply, 0),
	}
	s.Status = s.Evaluate()
	if s.Status.Terminal() {
		s.Phase = PhaseGameOver
	}
	return s
}

// Evaluate recomputes the status of the side to move from the board.
func (s GameState) Evaluate() Status {
	return evaluateStatus(&s.Board, s.ToMove, s.EnPassantTarget)
}

// TryMove submits a move for the side to move. Illegal moves are reported as
// Rejected with a Reason; only out-of-range squares produce an error.
func (s GameState) TryMove(from, to Position) (MoveResult, error) {
	if !from.Valid() || !to.Valid() {
		return MoveResult{}, fmt.Errorf("move %v -> %v: %w", from, to, ErrInvalidSquare)
	}

	switch s.Phase {
	case PhaseAwaitingPromotion:
		return reject(s, ErrAwaitingPromotion), nil
	case PhaseGameOver:
		return reject(s, ErrGameOver), nil
	}

	ex, err := executeMove(&s.Board, from, to, s.ToMove, s.EnPassantTarget)
	if err != nil {
		return reject(s, err), nil
	}

	next := s
	next.Board = ex.board
	next.EnPassantTarget = ex.enPassant
	next.LastMove = &SimpleMove{From: from, To: to}
	next.MoveHistory = append(slices.Clip(s.MoveHistory), ex.ply)

	if ex.promotes {
		square := to
		next.Phase = PhaseAwaitingPromotion
		next.PromotionSquare = &square
		// Status describes the side to move, which is still the mover here.
		// The opponent's check or mate is evaluated once the piece is chosen.
		next.Status = Status{Kind: InProgress}
		return MoveResult{Outcome: PendingPromotion, State: next}, nil
	}

	return MoveResult{Outcome: Accepted, State: next.finishTurn()}, nil
}

// ChoosePromotion completes a pending promotion and hands the turn over.
func (s GameState) ChoosePromotion(kind PieceType) (GameState, error) {
	if s.Phase != PhaseAwaitingPromotion || s.PromotionSquare == nil {
		return s, ErrNoPendingPromotion
	}
	switch kind {
	case Queen, Rook, Bishop, Knight:
	default:
		return s, fmt.Errorf("promote to %q: %w", kind, ErrInvalidPromotion)
	}

	next := s
	next.Board.set(*s.PromotionSquare, Piece{Type: kind, Color: s.ToMove})
	next.PromotionSquare = nil
	next.MoveHistory = slices.Clone(s.MoveHistory)
	if n := len(next.MoveHistory); n > 0 {
		next.MoveHistory[n-1].Promotion = kind
	}
	return next.finishTurn(), nil
}

// LegalDestinations lists where the piece on from may legally go right now.
// It is empty for empty squares, the opponent's pieces, and whenever the game
// is not waiting for a move.
func (s GameState) LegalDestinations(from Position) ([]Position, error) {
	if !from.Valid() {
		return nil, fmt.Errorf("destinations from %v: %w", from, ErrInvalidSquare)
	}
	if s.Phase != PhaseAwaitingMove || s.Board.At(from).Color != s.ToMove {
		return []Position{}, nil
	}
	dests := legalDestinations(&s.Board, from, s.ToMove, s.EnPassantTarget, 0)
	if dests == nil {
		dests = []Position{}
	}
	return dests, nil
}

func (s GameState) finishTurn() GameState {
	s.ToMove = s.ToMove.Opposite()
	s.Status = s.Evaluate()
	if s.Status.Terminal() {
		s.Phase = PhaseGameOver
	} else {
		s.Phase = PhaseAwaitingMove
	}
	return s
}

func reject(s GameState, reason error) MoveResult {
	return MoveResult{Outcome: Rejected, State: s, Reason: reason}
}
