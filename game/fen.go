package game

import (
	"strconv"
	"strings"

	"github.com/notnil/chess"
	"github.com/pkg/errors"
)

var fromNotnilKind = map[chess.PieceType]Kind{
	chess.Pawn:   Pawn,
	chess.Knight: Knight,
	chess.Bishop: Bishop,
	chess.Rook:   Rook,
	chess.Queen:  Queen,
	chess.King:   King,
}

// FromSquare converts a notnil/chess square.
func FromSquare(sq chess.Square) Position {
	return Pos(RowNum-1-int(sq.Rank()), int(sq.File()))
}

// ToSquare converts p to a notnil/chess square.
func ToSquare(p Position) chess.Square {
	return chess.Square((RowNum-1-p.Row)*ColNum + p.Col)
}

// FromFEN sets up a game from a FEN record. Move counters are derived: kings and rooks
// without castling rights count as moved, as do pawns off their starting rank.
func FromFEN(fen string) (*Game, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, errors.Wrapf(err, "parse FEN %q", fen)
	}
	pos := chess.NewGame(opt).Position()

	b := EmptyBoard()
	var kings [2]int
	for sq, p := range pos.Board().SquareMap() {
		kind, ok := fromNotnilKind[p.Type()]
		if !ok {
			continue
		}
		color := White
		if p.Color() == chess.Black {
			color = Black
		}
		if kind == King {
			kings[color]++
		}
		at := FromSquare(sq)
		moved := 0
		if kind == Pawn && at.Row != pawnRow(color) || kind == King || kind == Rook {
			moved = 1
		}
		b.Place(at, Piece{Kind: kind, Color: color}, moved)
	}
	if kings[White] != 1 || kings[Black] != 1 {
		return nil, errors.Errorf("FEN %q: each side needs exactly one king", fen)
	}

	rights := pos.CastleRights()
	for _, c := range [...]Color{White, Black} {
		nc := chess.White
		if c == Black {
			nc = chess.Black
		}
		home := Pos(homeRow(c), kingCol)
		q, k := rights.CanCastle(nc, chess.QueenSide), rights.CanCastle(nc, chess.KingSide)
		if (q || k) && b.At(home) == (Piece{Kind: King, Color: c}) {
			b.cells[home.Row][home.Col].moved = 0
		}
		if q {
			b.cells[home.Row][0].moved = 0
		}
		if k {
			b.cells[home.Row][ColNum-1].moved = 0
		}
	}

	turn := White
	if pos.Turn() == chess.Black {
		turn = Black
	}
	if ep, ok := enPassantTarget(pos); ok {
		// the pawn that just advanced stands one row past the skipped square
		pawn := ep.Add(forward(turn.Opponent()), 0)
		if b.At(pawn) == (Piece{Kind: Pawn, Color: turn.Opponent()}) {
			b.cells[pawn.Row][pawn.Col].moved = 1
			b.doubleStep = pawn
		}
	}

	g := Restore(b, turn.Opponent(), InProgress)
	g.outcome = b.CheckForWins(turn.Opponent())
	return g, nil
}

// enPassantTarget reads the en passant field of pos's FEN record.
func enPassantTarget(pos *chess.Position) (Position, bool) {
	fields := strings.Fields(pos.String())
	if len(fields) < 4 || fields[3] == "-" {
		return NoPosition, false
	}
	p, err := ParsePosition(fields[3])
	if err != nil {
		return NoPosition, false
	}
	return p, true
}

// FEN encodes b with turn to move. Castling rights come from the move counters, the
// halfmove clock from the passive counter. The fullmove number is always 1.
func (b *Board) FEN(turn Color) string {
	var sb strings.Builder
	for r := 0; r < RowNum; r++ {
		empty := 0
		for c := 0; c < ColNum; c++ {
			p := b.cells[r][c].piece
			if p.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(p.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if r < RowNum-1 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	sb.WriteString(turn.Letter())

	castling := ""
	for _, c := range [...]Color{White, Black} {
		home := Pos(homeRow(c), kingCol)
		if b.At(home) != (Piece{Kind: King, Color: c}) || b.MoveCount(home) != 0 {
			continue
		}
		rights := ""
		for i := len(castleSides) - 1; i >= 0; i-- {
			rook := Pos(home.Row, castleSides[i].rookCol)
			if b.At(rook) == (Piece{Kind: Rook, Color: c}) && b.MoveCount(rook) == 0 {
				rights += string("kq"[len(castleSides)-1-i])
			}
		}
		if c == White {
			rights = strings.ToUpper(rights)
		}
		castling += rights
	}
	if castling == "" {
		castling = "-"
	}
	sb.WriteByte(' ')
	sb.WriteString(castling)

	ep := "-"
	if p := b.doubleStep; p.OnBoard() {
		ep = p.Add(-forward(b.At(p).Color), 0).String()
	}
	sb.WriteByte(' ')
	sb.WriteString(ep)
	sb.WriteString(" " + strconv.Itoa(b.passive) + " 1")
	return sb.String()
}
