package game

import "strings"

// cell is one square: its occupant and how many times that occupant has moved.
type cell struct {
	piece Piece
	moved int
}

// Board is the 8x8 grid plus the bookkeeping needed by the rules.
//
// A Board is a plain value. Copying it (b2 := *b) yields an independent board, which is
// how hypothetical moves are explored without touching the original.
type Board struct {
	cells   [RowNum][ColNum]cell
	kings   [2]Position
	counts  [2]int
	passive int // consecutive plies without a capture, pawn move or castle

	// square of the pawn that made the last two-step advance, NoPosition otherwise
	doubleStep Position
}

var backRank = [ColNum]Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// EmptyBoard returns a board with no pieces.
func EmptyBoard() *Board {
	return &Board{
		kings:      [2]Position{NoPosition, NoPosition},
		doubleStep: NoPosition,
	}
}

// NewBoard returns the standard starting position.
func NewBoard() *Board {
	b := EmptyBoard()
	for c, k := range backRank {
		b.Place(Pos(0, c), Piece{Kind: k, Color: Black}, 0)
		b.Place(Pos(1, c), Piece{Kind: Pawn, Color: Black}, 0)
		b.Place(Pos(6, c), Piece{Kind: Pawn, Color: White}, 0)
		b.Place(Pos(7, c), Piece{Kind: k, Color: White}, 0)
	}
	return b
}

// Clone returns an independent copy of b.
func (b *Board) Clone() *Board {
	c := *b
	return &c
}

// At returns the piece on p, or NoPiece when p is empty or off the board.
func (b *Board) At(p Position) Piece {
	if !p.OnBoard() {
		return NoPiece
	}
	return b.cells[p.Row][p.Col].piece
}

// Occupant returns the piece on p and whether there is one.
func (b *Board) Occupant(p Position) (Piece, bool) {
	pc := b.At(p)
	return pc, !pc.IsEmpty()
}

// MoveCount returns how many times the piece on p has moved.
func (b *Board) MoveCount(p Position) int {
	if !p.OnBoard() {
		return 0
	}
	return b.cells[p.Row][p.Col].moved
}

// Place puts pc on p with the given move counter, replacing any occupant.
func (b *Board) Place(p Position, pc Piece, moved int) {
	b.Remove(p)
	if pc.IsEmpty() {
		return
	}
	b.cells[p.Row][p.Col] = cell{piece: pc, moved: moved}
	b.counts[pc.Color]++
	if pc.Kind == King {
		b.kings[pc.Color] = p
	}
}

// Remove clears p.
func (b *Board) Remove(p Position) {
	old := b.At(p)
	if old.IsEmpty() {
		return
	}
	b.counts[old.Color]--
	if old.Kind == King && b.kings[old.Color] == p {
		b.kings[old.Color] = NoPosition
	}
	b.cells[p.Row][p.Col] = cell{}
}

// King returns the square of c's king, NoPosition if it is not on the board.
func (b *Board) King(c Color) Position { return b.kings[c] }

// Count returns the number of pieces c has on the board.
func (b *Board) Count(c Color) int { return b.counts[c] }

// PieceCount returns the number of pieces on the board.
func (b *Board) PieceCount() int { return b.counts[White] + b.counts[Black] }

// Passive returns the number of consecutive plies without a capture, pawn move or castle.
func (b *Board) Passive() int { return b.passive }

// SamePlacement reports whether both boards hold the same pieces on the same squares.
func (b *Board) SamePlacement(o *Board) bool {
	for r := 0; r < RowNum; r++ {
		for c := 0; c < ColNum; c++ {
			if b.cells[r][c].piece != o.cells[r][c].piece {
				return false
			}
		}
	}
	return true
}

// Pieces returns the occupied squares of c in row-major order.
func (b *Board) Pieces(c Color) []Position {
	retVal := make([]Position, 0, b.counts[c])
	for r := 0; r < RowNum; r++ {
		for col := 0; col < ColNum; col++ {
			if pc := b.cells[r][col].piece; !pc.IsEmpty() && pc.Color == c {
				retVal = append(retVal, Pos(r, col))
			}
		}
	}
	return retVal
}

// InsufficientMaterial reports whether neither side can deliver mate: bare kings,
// a single minor piece, or two knights.
func (b *Board) InsufficientMaterial() bool {
	var knights, bishops int
	for r := 0; r < RowNum; r++ {
		for c := 0; c < ColNum; c++ {
			switch b.cells[r][c].piece.Kind {
			case NoKind, King:
			case Knight:
				knights++
			case Bishop:
				bishops++
			default:
				return false
			}
		}
	}
	switch b.PieceCount() {
	case 2:
		return true
	case 3:
		return knights+bishops == 1
	case 4:
		return knights == 2
	}
	return false
}

func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < RowNum; r++ {
		sb.WriteByte(byte('0' + RowNum - r))
		sb.WriteByte(' ')
		for c := 0; c < ColNum; c++ {
			sb.WriteString(b.cells[r][c].piece.String())
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  abcdefgh\n")
	return sb.String()
}
