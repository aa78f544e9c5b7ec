package game

type castleSide struct {
	rookCol   int
	kingTo    int
	rookTo    int
	emptyCols []int
	safeCols  []int // squares the king crosses or lands on
}

var castleSides = [...]castleSide{
	{rookCol: 0, kingTo: 2, rookTo: 3, emptyCols: []int{1, 2, 3}, safeCols: []int{3, 2}},
	{rookCol: 7, kingTo: 6, rookTo: 5, emptyCols: []int{5, 6}, safeCols: []int{5, 6}},
}

const kingCol = 4

func (b *Board) castleMoves(moves []Move, from Position, c Color) []Move {
	if from != Pos(homeRow(c), kingCol) || b.MoveCount(from) != 0 || b.IsInCheck(from, c) {
		return moves
	}
	for _, side := range castleSides {
		if m, ok := b.castle(from, c, side); ok {
			moves = append(moves, m)
		}
	}
	return moves
}

func (b *Board) castle(from Position, c Color, side castleSide) (Move, bool) {
	rookAt := Pos(from.Row, side.rookCol)
	if b.At(rookAt) != (Piece{Kind: Rook, Color: c}) || b.MoveCount(rookAt) != 0 {
		return Move{}, false
	}
	for _, col := range side.emptyCols {
		if !b.At(Pos(from.Row, col)).IsEmpty() {
			return Move{}, false
		}
	}
	for _, col := range side.safeCols {
		if b.Attacked(Pos(from.Row, col), c.Opponent()) {
			return Move{}, false
		}
	}
	link := Link{Kind: Relocate, Source: rookAt, Target: Pos(from.Row, side.rookTo)}
	return b.newMove(from, Pos(from.Row, side.kingTo), link), true
}
