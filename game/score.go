package game

const (
	opening = iota
	middlegame
	endgame
	phaseCount
)

// KingLost is the score of a side whose king is not on the board.
const KingLost = -(1 << 30)

// Positional bonuses from white's point of view, indexed [phase][Kind.TableID()][row][col].
// Black reads the table with the row mirrored.
var positionTables = [phaseCount][6][RowNum][ColNum]int{
	opening: {
		// bishop
		{
			{3, 3, 3, 3, 3, 3, 3, 3},
			{3, 3, 3, 3, 3, 3, 3, 3},
			{7, 3, 3, 3, 3, 3, 3, 7},
			{7, 6, 3, 6, 3, 6, 7, 7},
			{7, 3, 7, 3, 3, 3, 3, 7},
			{1, 3, 3, 3, 3, 3, 3, 1},
			{1, 1, 1, 1, 1, 1, 1, 1},
			{3, 3, 3, 3, 3, 3, 3, 3},
		},
		// king
		{
			{0, 0, 0, 0, 0, 0, 0, 0},
			{10, 10, 10, 10, 10, 10, 10, 10},
			{0, 0, 0, 0, 0, 0, 0, 0},
			{0, 10, 10, 10, 10, 10, 10, 0},
			{0, 10, 10, 10, 10, 10, 10, 0},
			{0, 10, 10, 10, 10, 10, 10, 0},
			{10, 10, 10, 10, 10, 10, 10, 10},
			{60, 60, 60, 25, 30, 25, 60, 60},
		},
		// knight
		{
			{7, 7, 7, 7, 7, 7, 7, 7},
			{1, 1, 1, 1, 1, 1, 1, 1},
			{3, 3, 3, 3, 3, 3, 3, 3},
			{3, 4, 3, 4, 4, 3, 4, 4},
			{3, 4, 3, 4, 3, 4, 4, 3},
			{3, 3, 3, 3, 3, 3, 3, 3},
			{1, 1, 1, 1, 1, 1, 1, 1},
			{0, 0, 0, 0, 0, 0, 0, 0},
		},
		// pawn
		{
			{300, 300, 300, 300, 300, 300, 300, 300},
			{40, 40, 40, 40, 40, 40, 40, 40},
			{20, 10, 20, 10, 20, 10, 20, 10},
			{5, 4, 5, 4, 5, 4, 5, 4},
			{4, 4, 3, 4, 4, 4, 4, 4},
			{2, 2, 4, 2, 5, 2, 4, 2},
			{1, 2, 3, 3, 2, 3, 3, 1},
			{0, 0, 0, 0, 0, 0, 0, 0},
		},
		// queen
		{
			{6, 6, 6, 6, 6, 6, 6, 6},
			{3, 3, 3, 3, 3, 3, 3, 3},
			{3, 3, 3, 3, 3, 3, 3, 3},
			{3, 3, 3, 3, 3, 3, 3, 8},
			{6, 6, 6, 6, 6, 6, 6, 6},
			{6, 6, 6, 6, 6, 6, 6, 6},
			{6, 6, 6, 6, 6, 6, 6, 6},
			{0, 0, 0, 3, 3, 0, 0, 0},
		},
		// rook
		{
			{3, 3, 3, 3, 3, 3, 3, 3},
			{3, 1, 1, 1, 1, 1, 1, 3},
			{1, 3, 3, 3, 3, 3, 3, 1},
			{1, 3, 3, 3, 3, 3, 3, 1},
			{3, 3, 3, 3, 3, 3, 3, 3},
			{3, 3, 3, 3, 3, 3, 3, 3},
			{1, 3, 3, 3, 3, 3, 3, 1},
			{1, 0, 4, 4, 4, 4, 0, 1},
		},
	},
	middlegame: {
		// bishop
		{
			{3, 3, 3, 3, 3, 3, 3, 3},
			{3, 3, 3, 3, 3, 3, 3, 3},
			{7, 3, 3, 3, 3, 3, 3, 7},
			{7, 6, 3, 6, 3, 6, 7, 7},
			{7, 3, 7, 3, 3, 3, 3, 7},
			{1, 3, 3, 3, 3, 3, 3, 1},
			{1, 1, 1, 1, 1, 1, 1, 1},
			{3, 3, 3, 3, 3, 3, 3, 3},
		},
		// king
		{
			{0, 0, 0, 0, 0, 0, 0, 0},
			{10, 10, 10, 10, 10, 10, 10, 10},
			{0, 0, 0, 0, 0, 0, 0, 0},
			{0, 10, 10, 10, 10, 10, 10, 0},
			{0, 10, 10, 10, 10, 10, 10, 0},
			{0, 10, 10, 10, 10, 10, 10, 0},
			{10, 10, 10, 10, 10, 10, 10, 10},
			{60, 60, 60, 25, 30, 25, 60, 60},
		},
		// knight
		{
			{3, 3, 3, 3, 3, 3, 3, 3},
			{1, 1, 1, 1, 1, 1, 1, 1},
			{3, 3, 3, 3, 3, 3, 3, 3},
			{3, 4, 3, 4, 4, 3, 4, 4},
			{3, 4, 3, 4, 3, 4, 4, 3},
			{3, 3, 3, 3, 3, 3, 3, 3},
			{1, 1, 1, 1, 1, 1, 1, 1},
			{0, 0, 0, 0, 0, 0, 0, 0},
		},
		// pawn
		{
			{300, 300, 300, 300, 300, 300, 300, 300},
			{110, 110, 110, 110, 110, 110, 110, 110},
			{20, 10, 20, 10, 20, 10, 20, 10},
			{10, 20, 10, 20, 10, 20, 10, 20},
			{4, 4, 3, 4, 4, 4, 4, 4},
			{2, 2, 4, 2, 5, 2, 4, 2},
			{1, 2, 3, 3, 2, 3, 3, 1},
			{0, 0, 0, 0, 0, 0, 0, 0},
		},
		// queen
		{
			{6, 6, 6, 6, 6, 6, 6, 6},
			{3, 3, 3, 3, 3, 3, 3, 3},
			{3, 3, 3, 3, 3, 3, 3, 3},
			{3, 3, 3, 3, 3, 3, 3, 8},
			{6, 6, 6, 6, 6, 6, 6, 6},
			{6, 6, 6, 6, 6, 6, 6, 6},
			{6, 6, 6, 6, 6, 6, 6, 6},
			{0, 0, 0, 3, 3, 0, 0, 0},
		},
		// rook
		{
			{3, 3, 3, 3, 3, 3, 3, 3},
			{3, 1, 1, 1, 1, 1, 1, 3},
			{1, 3, 3, 3, 3, 3, 3, 1},
			{1, 3, 3, 3, 3, 3, 3, 1},
			{3, 3, 3, 3, 3, 3, 3, 3},
			{3, 3, 3, 3, 3, 3, 3, 3},
			{1, 3, 3, 3, 3, 3, 3, 1},
			{1, 0, 4, 4, 4, 4, 0, 1},
		},
	},
	endgame: {
		// bishop
		{
			{3, 3, 3, 3, 3, 3, 3, 3},
			{3, 3, 3, 3, 3, 3, 3, 3},
			{7, 3, 3, 3, 3, 3, 3, 7},
			{7, 6, 3, 6, 3, 6, 7, 7},
			{7, 3, 7, 3, 3, 3, 3, 7},
			{1, 3, 3, 3, 3, 3, 3, 1},
			{1, 1, 1, 1, 1, 1, 1, 1},
			{3, 3, 3, 3, 3, 3, 3, 3},
		},
		// king
		{
			{0, 5, 5, 5, 5, 5, 5, 0},
			{10, 10, 10, 10, 10, 10, 10, 10},
			{10, 10, 10, 10, 10, 10, 10, 10},
			{0, 12, 14, 14, 14, 14, 12, 0},
			{0, 12, 14, 14, 14, 14, 12, 0},
			{0, 12, 14, 14, 14, 14, 12, 0},
			{10, 10, 10, 10, 10, 10, 10, 10},
			{0, 5, 5, 5, 5, 5, 5, 0},
		},
		// knight
		{
			{2, 2, 2, 2, 2, 2, 2, 2},
			{1, 1, 1, 1, 1, 1, 1, 1},
			{3, 3, 3, 3, 3, 3, 3, 3},
			{3, 4, 3, 4, 4, 3, 4, 4},
			{3, 4, 3, 4, 3, 4, 4, 3},
			{3, 3, 3, 3, 3, 3, 3, 3},
			{1, 1, 1, 1, 1, 1, 1, 1},
			{2, 2, 2, 2, 2, 2, 2, 2},
		},
		// pawn
		{
			{400, 400, 400, 400, 400, 400, 400, 400},
			{300, 300, 300, 300, 300, 300, 300, 300},
			{160, 160, 160, 160, 160, 160, 160, 160},
			{80, 80, 80, 80, 80, 80, 80, 80},
			{40, 40, 40, 40, 40, 40, 40, 40},
			{20, 20, 20, 20, 20, 20, 20, 20},
			{10, 10, 10, 10, 10, 10, 10, 10},
			{0, 0, 0, 0, 0, 0, 0, 0},
		},
		// queen
		{
			{6, 6, 6, 6, 6, 6, 6, 6},
			{6, 20, 20, 20, 20, 20, 20, 6},
			{6, 20, 25, 25, 25, 25, 20, 6},
			{6, 20, 25, 30, 30, 25, 20, 6},
			{6, 20, 25, 30, 30, 25, 20, 6},
			{6, 20, 25, 25, 25, 25, 20, 6},
			{6, 20, 20, 20, 20, 20, 20, 6},
			{6, 6, 6, 6, 6, 6, 6, 6},
		},
		// rook
		{
			{3, 3, 3, 3, 3, 3, 3, 3},
			{3, 1, 1, 1, 1, 1, 1, 3},
			{1, 4, 4, 3, 3, 4, 4, 1},
			{1, 4, 4, 3, 3, 4, 4, 1},
			{3, 4, 4, 3, 3, 4, 4, 3},
			{3, 4, 4, 3, 3, 4, 4, 3},
			{1, 3, 3, 3, 3, 3, 3, 1},
			{1, 3, 3, 3, 3, 3, 3, 1},
		},
	},
}

// phase selects the positional table by the number of pieces left.
func (b *Board) phase() int {
	switch n := b.PieceCount(); {
	case n > 20:
		return opening
	case n > 16:
		return middlegame
	}
	return endgame
}

func positionScore(ph int, p Piece, at Position) int {
	id := p.Kind.TableID()
	if id < 0 || !at.OnBoard() {
		return 0
	}
	row := at.Row
	if p.Color == Black {
		row = RowNum - 1 - row
	}
	return positionTables[ph][id][row][at.Col]
}

// Score is the static evaluation of b from side's point of view: material and positional
// bonuses, plus a pull towards the enemy king once the board has thinned out.
func (b *Board) Score(side Color) int {
	own, enemy := b.kings[side], b.kings[side.Opponent()]
	if !own.OnBoard() {
		return KingLost
	}
	ph := b.phase()
	var weight int
	if n := b.PieceCount(); n <= 16 && enemy.OnBoard() {
		weight = (16 - n) * 10
	}

	var score, proximity int
	for r := 0; r < RowNum; r++ {
		for c := 0; c < ColNum; c++ {
			p := b.cells[r][c].piece
			if p.IsEmpty() {
				continue
			}
			at := Pos(r, c)
			v := p.Value() + positionScore(ph, p, at)
			if p.Color == side {
				score += v
				if weight > 0 {
					proximity -= distance(at, enemy)
				}
			} else {
				score -= v
				if weight > 0 {
					proximity += distance(at, own)
				}
			}
		}
	}
	return score + proximity*weight
}
