package game

const (
	RowNum = 8
	ColNum = 8
)

// Color is the side a piece belongs to.
type Color uint8

const (
	White Color = iota
	Black
)

// Opponent returns the other side.
func (c Color) Opponent() Color { return c ^ 1 }

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// Outcome is the state of a game as seen by the rules layer.
type Outcome uint8

const (
	InProgress Outcome = iota
	WhiteWins          // black is checkmated
	BlackWins          // white is checkmated
	Stalemate
	FiftyMoveDraw
	RepetitionDraw
	InsufficientMaterial
)

// Ended reports whether the outcome is terminal.
func (o Outcome) Ended() bool { return o != InProgress }

// Winner returns the side that delivered checkmate. ok is false for draws and unfinished games.
func (o Outcome) Winner() (c Color, ok bool) {
	switch o {
	case WhiteWins:
		return White, true
	case BlackWins:
		return Black, true
	}
	return White, false
}

// IsDraw reports whether the game ended without a winner.
func (o Outcome) IsDraw() bool {
	return o.Ended() && o != WhiteWins && o != BlackWins
}

func (o Outcome) String() string {
	switch o {
	case InProgress:
		return "in progress"
	case WhiteWins:
		return "white wins"
	case BlackWins:
		return "black wins"
	case Stalemate:
		return "stalemate"
	case FiftyMoveDraw:
		return "fifty-move draw"
	case RepetitionDraw:
		return "threefold repetition"
	case InsufficientMaterial:
		return "insufficient material"
	}
	return "unknown outcome"
}

func winFor(c Color) Outcome {
	if c == White {
		return WhiteWins
	}
	return BlackWins
}
