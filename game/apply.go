package game

// Apply plays m on b in place. Pawns reaching the far rank become up.For(color).
//
// Apply does not check legality; callers explore hypothetical moves on a copy of the board.
func (b *Board) Apply(m Move, up Upgrades) {
	src := b.cells[m.Source.Row][m.Source.Col]
	if src.piece.IsEmpty() {
		return
	}
	mover := src.piece.Color
	kind := src.piece.Kind
	src.moved++

	reset := false
	switch kind {
	case King:
		b.kings[mover] = m.Target
	case Pawn:
		reset = true
		if m.Target.Row == promotionRow(mover) {
			src.piece.Kind = up.For(mover)
		}
	}

	if tgt := b.cells[m.Target.Row][m.Target.Col].piece; !tgt.IsEmpty() {
		b.counts[tgt.Color]--
		if tgt.Kind == King {
			b.kings[tgt.Color] = NoPosition
		}
		reset = true
	}

	b.cells[m.Target.Row][m.Target.Col] = src
	b.cells[m.Source.Row][m.Source.Col] = cell{}

	b.doubleStep = NoPosition
	if kind == Pawn && abs(m.Target.Row-m.Source.Row) == 2 {
		b.doubleStep = m.Target
	}

	switch m.Link.Kind {
	case Relocate:
		rook := b.cells[m.Link.Source.Row][m.Link.Source.Col]
		rook.moved++
		b.cells[m.Link.Source.Row][m.Link.Source.Col] = cell{}
		b.cells[m.Link.Target.Row][m.Link.Target.Col] = rook
		reset = true
	case Remove:
		b.Remove(m.Link.Source)
		reset = true
	}

	if reset {
		b.passive = 0
	} else {
		b.passive++
	}
}
