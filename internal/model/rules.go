package model

// moveContext is what a movement rule may consult besides the board.
// In commit mode the pawn and king rules also perform their side effects
// (en passant removal, castling rook relocation) on the board they are given.
type moveContext struct {
	enPassant *Position
	commit    bool
}

// shapeLegal reports whether the piece on from may move to to, ignoring
// whether that leaves its own king attacked. Same-color destinations are
// rejected by the caller.
func shapeLegal(b *BoardState, from, to Position, ctx moveContext) bool {
	switch b.At(from).Type {
	case Pawn:
		return pawnMovement(b, from, to, ctx)
	case Rook:
		return rookMovement(b, from, to)
	case Knight:
		return knightMovement(from, to)
	case Bishop:
		return bishopMovement(b, from, to)
	case Queen:
		return rookMovement(b, from, to) || bishopMovement(b, from, to)
	case King:
		return kingMovement(b, from, to, ctx)
	}
	return false
}

func pawnDirection(c Color) int {
	if c == White {
		return -1
	}
	return 1
}

func pawnStartRow(c Color) int {
	if c == White {
		return 6
	}
	return 1
}

func promotionRow(c Color) int {
	if c == White {
		return 0
	}
	return 7
}

func pawnMovement(b *BoardState, from, to Position, ctx moveContext) bool {
	pawn := b.At(from)
	dir := pawnDirection(pawn.Color)
	dr, dc := to.Row-from.Row, to.Col-from.Col

	if !b.IsEmpty(to) {
		return abs(dc) == 1 && dr == dir
	}

	if isEnPassant(b, pawn, from, to, ctx.enPassant) {
		if ctx.commit {
			b.clear(*ctx.enPassant)
		}
		return true
	}

	if dc != 0 {
		return false
	}
	if dr == dir {
		return true
	}
	return dr == 2*dir &&
		from.Row == pawnStartRow(pawn.Color) &&
		b.IsEmpty(Position{Row: from.Row + dir, Col: from.Col})
}

// isEnPassant expects to to be empty.
func isEnPassant(b *BoardState, pawn Piece, from, to Position, marker *Position) bool {
	if marker == nil {
		return false
	}
	if abs(to.Col-from.Col) != 1 || to.Row-from.Row != pawnDirection(pawn.Color) {
		return false
	}
	if marker.Col != to.Col || marker.Row != from.Row {
		return false
	}
	return b.At(*marker) == Piece{Type: Pawn, Color: pawn.Color.Opposite()}
}

func rookMovement(b *BoardState, from, to Position) bool {
	if from == to || (from.Row != to.Row && from.Col != to.Col) {
		return false
	}
	return pathClear(b, from, to)
}

func bishopMovement(b *BoardState, from, to Position) bool {
	dr, dc := to.Row-from.Row, to.Col-from.Col
	if dr == 0 || abs(dr) != abs(dc) {
		return false
	}
	return pathClear(b, from, to)
}

func knightMovement(from, to Position) bool {
	dr, dc := abs(to.Row-from.Row), abs(to.Col-from.Col)
	return dr != 0 && dc != 0 && dr+dc == 3
}

func kingMovement(b *BoardState, from, to Position, ctx moveContext) bool {
	dr, dc := to.Row-from.Row, to.Col-from.Col
	ds := dr*dr + dc*dc
	if ds == 1 || ds == 2 {
		return true
	}
	if ds != 4 || dr != 0 {
		return false
	}
	return castleMovement(b, from, to, ctx)
}

// castleMovement handles a two-square king move along its rank. The moved
// flag check comes first so that the oracle never recurses into an enemy
// king's castling rule.
func castleMovement(b *BoardState, from, to Position, ctx moveContext) bool {
	if b.Moved(from) {
		return false
	}
	king := b.At(from)
	if !isSafe(b, from, king.Color) {
		return false
	}

	through := Position{Row: from.Row, Col: (from.Col + to.Col) / 2}
	if !b.IsEmpty(through) || !b.IsEmpty(to) || !isSafe(b, through, king.Color) {
		return false
	}

	rookHome := Position{Row: from.Row, Col: 7}
	beside := Position{Row: from.Row, Col: 6}
	if to.Col < from.Col {
		rookHome = Position{Row: from.Row, Col: 0}
		beside = Position{Row: from.Row, Col: 1}
	}
	if !b.IsEmpty(beside) {
		return false
	}
	if b.At(rookHome) != (Piece{Type: Rook, Color: king.Color}) || b.Moved(rookHome) {
		return false
	}

	if ctx.commit {
		b.relocate(rookHome, through)
		b.markMoved(rookHome)
		b.markMoved(through)
	}
	return true
}

// pathClear checks the squares strictly between from and to, which must
// share a row, a column or a diagonal.
func pathClear(b *BoardState, from, to Position) bool {
	step := Position{Row: sign(to.Row - from.Row), Col: sign(to.Col - from.Col)}
	for p := (Position{Row: from.Row + step.Row, Col: from.Col + step.Col}); p != to; p = (Position{Row: p.Row + step.Row, Col: p.Col + step.Col}) {
		if !b.IsEmpty(p) {
			return false
		}
	}
	return true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
