package game

import (
	"fmt"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

// Position is a square on the board. Row 0 is black's back rank, row 7 is white's.
type Position struct {
	Row, Col int
}

// NoPosition marks an absent square, e.g. a captured king.
var NoPosition = Position{Row: -1, Col: -1}

// Pos is shorthand for Position{row, col}.
func Pos(row, col int) Position { return Position{Row: row, Col: col} }

// OnBoard reports whether p lies inside the 8x8 grid.
func (p Position) OnBoard() bool {
	return p.Row >= 0 && p.Row < RowNum && p.Col >= 0 && p.Col < ColNum
}

// Add offsets the position.
func (p Position) Add(dr, dc int) Position { return Position{Row: p.Row + dr, Col: p.Col + dc} }

// String returns the algebraic name of the square ("e2").
func (p Position) String() string {
	if !p.OnBoard() {
		return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
	}
	return string([]byte{byte('a' + p.Col), byte('0' + RowNum - p.Row)})
}

// ParsePosition parses an algebraic square name.
func ParsePosition(s string) (Position, error) {
	if len(s) != 2 {
		return NoPosition, errors.Errorf("bad square %q", s)
	}
	p := Position{Row: RowNum - int(s[1]-'0'), Col: int(s[0] - 'a')}
	if s[0] < 'a' || s[1] < '1' || !p.OnBoard() {
		return NoPosition, errors.Errorf("bad square %q", s)
	}
	return p, nil
}

// MustParse is like ParsePosition but panics on malformed input. Meant for literals.
func MustParse(s string) Position {
	p, err := ParsePosition(s)
	if err != nil {
		panic(err)
	}
	return p
}

// distance is the Manhattan distance between two squares.
func distance(a, b Position) int {
	return abs(a.Row-b.Row) + abs(a.Col-b.Col)
}

func abs[T constraints.Signed](x T) T {
	if x < 0 {
		return -x
	}
	return x
}
