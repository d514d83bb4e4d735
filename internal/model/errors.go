package model

import "errors"

// Reasons a move is rejected. These describe player mistakes and are
// reported in MoveResult.Reason, never returned as errors.
var (
	ErrNoPiece           = errors.New("no piece at from square")
	ErrNotYourTurn       = errors.New("not your turn")
	ErrOwnPiece          = errors.New("destination holds your own piece")
	ErrIllegalMove       = errors.New("piece cannot move there")
	ErrKingInCheck       = errors.New("move leaves king in check")
	ErrAwaitingPromotion = errors.New("promotion choice pending")
	ErrGameOver          = errors.New("game is over")
)

// Contract violations by the caller.
var (
	ErrInvalidSquare      = errors.New("square out of range")
	ErrNoPendingPromotion = errors.New("no promotion pending")
	ErrInvalidPromotion   = errors.New("invalid promotion piece")
)
