package model

import (
	"errors"
	"testing"
)

var pieceLetters = map[byte]PieceType{
	'p': Pawn,
	'n': Knight,
	'b': Bishop,
	'r': Rook,
	'q': Queen,
	'k': King,
}

// boardFromRows builds a board from eight rows of eight characters, row 0
// (Black's back rank) first. Upper case is White, lower case Black, '.' empty.
func boardFromRows(t *testing.T, rows ...string) BoardState {
	t.Helper()
	if len(rows) != 8 {
		t.Fatalf("boardFromRows called with %d rows", len(rows))
	}
	var b BoardState
	for r, line := range rows {
		if len(line) != 8 {
			t.Fatalf("row %d has %d squares", r, len(line))
		}
		for c := 0; c < 8; c++ {
			ch := line[c]
			if ch == '.' {
				continue
			}
			color := Black
			if ch >= 'A' && ch <= 'Z' {
				color = White
				ch += 'a' - 'A'
			}
			kind, ok := pieceLetters[ch]
			if !ok {
				t.Fatalf("unknown piece %q at row %d col %d", line[c], r, c)
			}
			b.Squares[r][c].Piece = Piece{Type: kind, Color: color}
		}
	}
	return b
}

func pieceLetter(p Piece) byte {
	if p.IsEmpty() {
		return '.'
	}
	for ch, kind := range pieceLetters {
		if kind == p.Type {
			if p.Color == White {
				return ch - ('a' - 'A')
			}
			return ch
		}
	}
	return '?'
}

func rowsOf(b BoardState) []string {
	rows := make([]string, 8)
	for r := 0; r < 8; r++ {
		line := make([]byte, 8)
		for c := 0; c < 8; c++ {
			line[c] = pieceLetter(b.Squares[r][c].Piece)
		}
		rows[r] = string(line)
	}
	return rows
}

// sq converts a label such as "e2" into a board position.
func sq(t *testing.T, name string) Position {
	t.Helper()
	if len(name) != 2 || name[0] < 'a' || name[0] > 'h' || name[1] < '1' || name[1] > '8' {
		t.Fatalf("bad square %q", name)
	}
	return Position{Row: int('8' - name[1]), Col: int(name[0] - 'a')}
}

// play submits moves written as "e2e4", or "a7a8q" when a promotion choice
// follows, and fails the test on any rejection.
func play(t *testing.T, s GameState, moves ...string) GameState {
	t.Helper()
	for _, mv := range moves {
		res, err := s.TryMove(sq(t, mv[0:2]), sq(t, mv[2:4]))
		if err != nil {
			t.Fatalf("move %s: %v", mv, err)
		}
		switch res.Outcome {
		case Rejected:
			t.Fatalf("move %s rejected: %v", mv, res.Reason)
		case PendingPromotion:
			if len(mv) != 5 {
				t.Fatalf("move %s needs a promotion piece", mv)
			}
			next, err := res.State.ChoosePromotion(pieceLetters[mv[4]])
			if err != nil {
				t.Fatalf("promote %s: %v", mv, err)
			}
			s = next
			continue
		}
		s = res.State
	}
	return s
}

func mustReject(t *testing.T, s GameState, mv string, reason error) {
	t.Helper()
	res, err := s.TryMove(sq(t, mv[0:2]), sq(t, mv[2:4]))
	if err != nil {
		t.Fatalf("move %s: %v", mv, err)
	}
	if res.Outcome != Rejected {
		t.Fatalf("move %s: expected rejection, got %s", mv, res.Outcome)
	}
	if !errors.Is(res.Reason, reason) {
		t.Fatalf("move %s: expected reason %q, got %q", mv, reason, res.Reason)
	}
	if res.State.Board != s.Board || res.State.ToMove != s.ToMove {
		t.Fatalf("move %s: rejected move changed the state", mv)
	}
}
