package game

type offset struct{ dr, dc int }

var (
	knightOffsets = [...]offset{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingOffsets   = [...]offset{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	straightRays  = [...]offset{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	diagonalRays  = [...]offset{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
)

// forward is the row step of c's pawns.
func forward(c Color) int {
	if c == White {
		return -1
	}
	return 1
}

func pawnRow(c Color) int {
	if c == White {
		return RowNum - 2
	}
	return 1
}

func homeRow(c Color) int {
	if c == White {
		return RowNum - 1
	}
	return 0
}

// promotionRow is the far rank for c's pawns.
func promotionRow(c Color) int { return homeRow(c.Opponent()) }

// PseudoMoves returns the moves of the piece on from that follow its movement pattern and
// do not land on an allied piece. They may leave the mover's king in check, except for
// king moves which are already filtered. An empty square yields no moves.
func (b *Board) PseudoMoves(from Position) []Move {
	return b.appendPseudoMoves(nil, from)
}

func (b *Board) appendPseudoMoves(moves []Move, from Position) []Move {
	p := b.At(from)
	switch p.Kind {
	case Pawn:
		return b.pawnMoves(moves, from, p.Color)
	case Knight:
		return b.leaperMoves(moves, from, p.Color, knightOffsets[:])
	case Bishop:
		return b.slidingMoves(moves, from, p.Color, diagonalRays[:])
	case Rook:
		return b.slidingMoves(moves, from, p.Color, straightRays[:])
	case Queen:
		moves = b.slidingMoves(moves, from, p.Color, straightRays[:])
		return b.slidingMoves(moves, from, p.Color, diagonalRays[:])
	case King:
		return b.kingMoves(moves, from, p.Color)
	}
	return moves
}

// newMove builds a move and computes its ordering key against b.
func (b *Board) newMove(from, to Position, link Link) Move {
	src := b.At(from)
	m := Move{Source: from, Target: to, Link: link}
	if tgt := b.At(to); !tgt.IsEmpty() {
		m.key = src.Value() - tgt.Value()
	}
	ph := b.phase()
	m.key += positionScore(ph, src, from) - positionScore(ph, src, to)
	return m
}

// add appends from-to unless to is off the board or holds a piece of color c.
func (b *Board) add(moves []Move, from, to Position, c Color) []Move {
	if !to.OnBoard() {
		return moves
	}
	if tgt := b.At(to); !tgt.IsEmpty() && tgt.Color == c {
		return moves
	}
	return append(moves, b.newMove(from, to, Link{}))
}

func (b *Board) pawnMoves(moves []Move, from Position, c Color) []Move {
	dir := forward(c)
	one := from.Add(dir, 0)
	if one.OnBoard() && b.At(one).IsEmpty() {
		moves = append(moves, b.newMove(from, one, Link{}))
		two := one.Add(dir, 0)
		if from.Row == pawnRow(c) && b.At(two).IsEmpty() {
			moves = append(moves, b.newMove(from, two, Link{}))
		}
	}
	for _, dc := range [...]int{-1, 1} {
		diag := from.Add(dir, dc)
		if tgt := b.At(diag); !tgt.IsEmpty() {
			moves = b.add(moves, from, diag, c)
			continue
		}
		if m, ok := b.enPassant(from, c, dc); ok {
			moves = append(moves, m)
		}
	}
	return moves
}

// enPassant checks the pawn beside from on column offset dc. It may be taken only if it has
// moved exactly once and that move was the last two-step advance on the board.
func (b *Board) enPassant(from Position, c Color, dc int) (Move, bool) {
	side := from.Add(0, dc)
	victim := b.At(side)
	if victim.Kind != Pawn || victim.Color == c || side != b.doubleStep || b.MoveCount(side) != 1 {
		return Move{}, false
	}
	to := from.Add(forward(c), dc)
	if !to.OnBoard() || !b.At(to).IsEmpty() {
		return Move{}, false
	}
	return b.newMove(from, to, Link{Kind: Remove, Source: side, Target: NoPosition}), true
}

func (b *Board) leaperMoves(moves []Move, from Position, c Color, offsets []offset) []Move {
	for _, o := range offsets {
		moves = b.add(moves, from, from.Add(o.dr, o.dc), c)
	}
	return moves
}

func (b *Board) slidingMoves(moves []Move, from Position, c Color, rays []offset) []Move {
	for _, o := range rays {
		for to := from.Add(o.dr, o.dc); to.OnBoard(); to = to.Add(o.dr, o.dc) {
			tgt := b.At(to)
			if tgt.IsEmpty() {
				moves = append(moves, b.newMove(from, to, Link{}))
				continue
			}
			if tgt.Color != c {
				moves = append(moves, b.newMove(from, to, Link{}))
			}
			break
		}
	}
	return moves
}

// kingMoves generates the king steps that do not walk into check, plus castling.
func (b *Board) kingMoves(moves []Move, from Position, c Color) []Move {
	for _, o := range kingOffsets {
		to := from.Add(o.dr, o.dc)
		if !to.OnBoard() {
			continue
		}
		if tgt := b.At(to); !tgt.IsEmpty() && tgt.Color == c {
			continue
		}
		m := b.newMove(from, to, Link{})
		if b.leavesKingSafe(m, c) {
			moves = append(moves, m)
		}
	}
	return b.castleMoves(moves, from, c)
}
