package game

// Attacked reports whether any piece of color by attacks sq. Pawns attack diagonally only,
// whether or not sq is occupied.
func (b *Board) Attacked(sq Position, by Color) bool {
	pawn := Piece{Kind: Pawn, Color: by}
	for _, dc := range [...]int{-1, 1} {
		if b.At(sq.Add(-forward(by), dc)) == pawn {
			return true
		}
	}

	knight := Piece{Kind: Knight, Color: by}
	for _, o := range knightOffsets {
		if b.At(sq.Add(o.dr, o.dc)) == knight {
			return true
		}
	}

	king := Piece{Kind: King, Color: by}
	for _, o := range kingOffsets {
		if b.At(sq.Add(o.dr, o.dc)) == king {
			return true
		}
	}

	return b.rayAttack(sq, by, straightRays[:], Rook) || b.rayAttack(sq, by, diagonalRays[:], Bishop)
}

// rayAttack looks for the first piece along each ray and reports whether it is a slider of
// color by moving along that kind of ray (the given kind or a queen).
func (b *Board) rayAttack(sq Position, by Color, rays []offset, slider Kind) bool {
	for _, o := range rays {
		for p := sq.Add(o.dr, o.dc); p.OnBoard(); p = p.Add(o.dr, o.dc) {
			pc := b.At(p)
			if pc.IsEmpty() {
				continue
			}
			if pc.Color == by && (pc.Kind == slider || pc.Kind == Queen) {
				return true
			}
			break
		}
	}
	return false
}

// IsInCheck reports whether a king of color c standing on king would be attacked.
func (b *Board) IsInCheck(king Position, c Color) bool {
	if !king.OnBoard() {
		return false
	}
	return b.Attacked(king, c.Opponent())
}

// InCheck reports whether c's king is attacked.
func (b *Board) InCheck(c Color) bool { return b.IsInCheck(b.kings[c], c) }

// leavesKingSafe applies m to a copy and reports whether c's king is then out of check.
func (b *Board) leavesKingSafe(m Move, c Color) bool {
	n := *b
	n.Apply(m, DefaultUpgrades)
	return !n.InCheck(c)
}

// LegalMovesFrom returns the legal moves of the piece on from.
func (b *Board) LegalMovesFrom(from Position) []Move {
	p := b.At(from)
	if p.IsEmpty() {
		return nil
	}
	return b.filterLegal(b.PseudoMoves(from), p.Color)
}

// LegalMoves returns every legal move of c in row-major order of the source squares.
func (b *Board) LegalMoves(c Color) []Move {
	var moves []Move
	for _, from := range b.Pieces(c) {
		moves = b.appendPseudoMoves(moves, from)
	}
	return b.filterLegal(moves, c)
}

// Captures returns the legal moves of c that take a piece, en passant included.
func (b *Board) Captures(c Color) []Move {
	var moves []Move
	for _, from := range b.Pieces(c) {
		moves = b.appendPseudoMoves(moves, from)
	}
	n := 0
	for _, m := range moves {
		if !b.At(m.Target).IsEmpty() || m.IsEnPassant() {
			moves[n] = m
			n++
		}
	}
	return b.filterLegal(moves[:n], c)
}

// HasLegalMove reports whether c has at least one legal move.
func (b *Board) HasLegalMove(c Color) bool {
	for _, from := range b.Pieces(c) {
		for _, m := range b.PseudoMoves(from) {
			if b.leavesKingSafe(m, c) {
				return true
			}
		}
	}
	return false
}

// filterLegal keeps the moves after which c's king is safe. It filters in place.
func (b *Board) filterLegal(moves []Move, c Color) []Move {
	n := 0
	for _, m := range moves {
		if b.leavesKingSafe(m, c) {
			moves[n] = m
			n++
		}
	}
	return moves[:n]
}

// CheckForWins classifies the position after mover has moved: checkmate for mover,
// stalemate, or InProgress.
func (b *Board) CheckForWins(mover Color) Outcome {
	opp := mover.Opponent()
	if b.HasLegalMove(opp) {
		return InProgress
	}
	if b.InCheck(opp) {
		return winFor(mover)
	}
	return Stalemate
}
