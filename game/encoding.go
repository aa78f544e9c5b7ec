package game

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// SaveHeader is the first line of a saved game.
const SaveHeader = "Knightingale v1.0 Saved Game"

// ErrCorrupt is returned for any saved game that cannot be decoded.
var ErrCorrupt = errors.New("corrupt saved game")

// Letter is the one letter code of c in saved games.
func (c Color) Letter() string {
	if c == White {
		return "w"
	}
	return "b"
}

// ParseColorLetter decodes "w" or "b".
func ParseColorLetter(s string) (Color, bool) {
	switch s {
	case "w":
		return White, true
	case "b":
		return Black, true
	}
	return White, false
}

var outcomeLetters = [...]string{
	InProgress:           "n",
	WhiteWins:            "w",
	BlackWins:            "b",
	Stalemate:            "s",
	FiftyMoveDraw:        "fd",
	RepetitionDraw:       "rd",
	InsufficientMaterial: "id",
}

// Letter is the code of o in saved games.
func (o Outcome) Letter() string {
	if int(o) < len(outcomeLetters) {
		return outcomeLetters[o]
	}
	return "n"
}

// ParseOutcomeLetter decodes an outcome code.
func ParseOutcomeLetter(s string) (Outcome, bool) {
	for o, l := range outcomeLetters {
		if l == s {
			return Outcome(o), true
		}
	}
	return InProgress, false
}

// WriteBoard writes the header line, one record per square in row-major order
// ("<id|-1> <moves> <w|b|n>") and the king line.
func WriteBoard(w io.Writer, b *Board) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, SaveHeader)
	for r := 0; r < RowNum; r++ {
		for c := 0; c < ColNum; c++ {
			cl := b.cells[r][c]
			if cl.piece.IsEmpty() {
				fmt.Fprintf(bw, "-1 %d n\n", cl.moved)
				continue
			}
			fmt.Fprintf(bw, "%d %d %s\n", cl.piece.Kind.TableID(), cl.moved, cl.piece.Color.Letter())
		}
	}
	wk, bk := b.kings[White], b.kings[Black]
	fmt.Fprintf(bw, "%d %d %d %d\n", wk.Row, wk.Col, bk.Row, bk.Col)
	return errors.WithStack(bw.Flush())
}

// RecordReader reads the line-oriented save format.
type RecordReader struct {
	sc   *bufio.Scanner
	line int
}

// NewRecordReader wraps r.
func NewRecordReader(r io.Reader) *RecordReader {
	return &RecordReader{sc: bufio.NewScanner(r)}
}

// Corrupt returns an ErrCorrupt annotated with the current line.
func (r *RecordReader) Corrupt(format string, args ...interface{}) error {
	return errors.Wrapf(ErrCorrupt, "line %d: %s", r.line, fmt.Sprintf(format, args...))
}

// Next returns the next line, which must have exactly n fields.
func (r *RecordReader) Next(n int) ([]string, error) {
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return nil, errors.WithStack(err)
		}
		r.line++
		return nil, r.Corrupt("unexpected end of file")
	}
	r.line++
	fields := strings.Fields(r.sc.Text())
	if len(fields) != n {
		return nil, r.Corrupt("expected %d fields, got %d", n, len(fields))
	}
	return fields, nil
}

// Int parses a field of the current line.
func (r *RecordReader) Int(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, r.Corrupt("bad number %q", s)
	}
	return v, nil
}

// ReadBoard reads what WriteBoard wrote.
func ReadBoard(r *RecordReader) (*Board, error) {
	if !r.sc.Scan() {
		r.line++
		return nil, r.Corrupt("missing header")
	}
	r.line++
	if strings.TrimSpace(r.sc.Text()) != SaveHeader {
		return nil, r.Corrupt("unknown header %q", r.sc.Text())
	}

	b := EmptyBoard()
	var kings [2]int
	for r0 := 0; r0 < RowNum; r0++ {
		for c := 0; c < ColNum; c++ {
			f, err := r.Next(3)
			if err != nil {
				return nil, err
			}
			id, err := r.Int(f[0])
			if err != nil {
				return nil, err
			}
			moved, err := r.Int(f[1])
			if err != nil {
				return nil, err
			}
			if moved < 0 {
				return nil, r.Corrupt("negative move count %d", moved)
			}
			if id == -1 {
				if f[2] != "n" {
					return nil, r.Corrupt("empty square with color %q", f[2])
				}
				continue
			}
			kind, ok := KindFromTableID(id)
			if !ok {
				return nil, r.Corrupt("unknown piece id %d", id)
			}
			color, ok := ParseColorLetter(f[2])
			if !ok {
				return nil, r.Corrupt("unknown color %q", f[2])
			}
			if kind == King {
				kings[color]++
			}
			b.Place(Pos(r0, c), Piece{Kind: kind, Color: color}, moved)
		}
	}
	if kings[White] != 1 || kings[Black] != 1 {
		return nil, r.Corrupt("each side needs exactly one king")
	}

	f, err := r.Next(4)
	if err != nil {
		return nil, err
	}
	var v [4]int
	for i := range f {
		if v[i], err = r.Int(f[i]); err != nil {
			return nil, err
		}
	}
	if b.kings[White] != Pos(v[0], v[1]) || b.kings[Black] != Pos(v[2], v[3]) {
		return nil, r.Corrupt("king line does not match the board")
	}
	return b, nil
}
