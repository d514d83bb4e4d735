package model

import "fmt"

type Color string

const (
	NoColor Color = ""
	White   Color = "white"
	Black   Color = "black"
)

func (c Color) Opposite() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	}
	return NoColor
}

type PieceType string

const (
	NoPiece PieceType = ""
	King    PieceType = "king"
	Queen   PieceType = "queen"
	Rook    PieceType = "rook"
	Bishop  PieceType = "bishop"
	Knight  PieceType = "knight"
	Pawn    PieceType = "pawn"
)

// ParsePieceType accepts the lower-case names used on the wire.
func ParsePieceType(s string) (PieceType, bool) {
	switch p := PieceType(s); p {
	case King, Queen, Rook, Bishop, Knight, Pawn:
		return p, true
	}
	return NoPiece, false
}

// Piece is a plain value. The zero Piece is an empty square.
type Piece struct {
	Type  PieceType `json:"type"`
	Color Color     `json:"color"`
}

func (p Piece) IsEmpty() bool {
	return p.Type == NoPiece
}

type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Position) Valid() bool {
	return p.Row >= 0 && p.Row < 8 && p.Col >= 0 && p.Col < 8
}

func (p Position) String() string {
	if !p.Valid() {
		return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
	}
	return fmt.Sprintf("%c%d", 'a'+p.Col, 8-p.Row)
}

// Square holds the occupant and whether any move ever started or ended here.
type Square struct {
	Piece Piece `json:"piece"`
	Moved bool  `json:"moved"`
}

// BoardState is a value; assigning it copies the whole board.
type BoardState struct {
	Squares [8][8]Square `json:"squares"`
}

func (b *BoardState) At(p Position) Piece {
	return b.Squares[p.Row][p.Col].Piece
}

func (b *BoardState) IsEmpty(p Position) bool {
	return b.Squares[p.Row][p.Col].Piece.IsEmpty()
}

func (b *BoardState) Moved(p Position) bool {
	return b.Squares[p.Row][p.Col].Moved
}

// KingPosition returns the square of the king of the given color.
func (b *BoardState) KingPosition(color Color) (Position, bool) {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			pc := b.Squares[row][col].Piece
			if pc.Type == King && pc.Color == color {
				return Position{Row: row, Col: col}, true
			}
		}
	}
	return Position{}, false
}

func (b *BoardState) set(p Position, pc Piece) {
	b.Squares[p.Row][p.Col].Piece = pc
}

func (b *BoardState) clear(p Position) {
	b.Squares[p.Row][p.Col].Piece = Piece{}
}

func (b *BoardState) markMoved(p Position) {
	b.Squares[p.Row][p.Col].Moved = true
}

// relocate copies the occupant of from onto to and empties from.
func (b *BoardState) relocate(from, to Position) {
	b.set(to, b.At(from))
	b.clear(from)
}

var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

func newBoard() BoardState {
	var board BoardState
	for col := 0; col < 8; col++ {
		board.Squares[0][col].Piece = Piece{Type: backRank[col], Color: Black}
		board.Squares[1][col].Piece = Piece{Type: Pawn, Color: Black}
		board.Squares[6][col].Piece = Piece{Type: Pawn, Color: White}
		board.Squares[7][col].Piece = Piece{Type: backRank[col], Color: White}
	}
	return board
}
