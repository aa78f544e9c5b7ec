package game

import "github.com/pkg/errors"

var (
	ErrWrongTurn     = errors.New("it is not this side's turn")
	ErrMoveIntoCheck = errors.New("move would leave the king in check")
	ErrIllegalMove   = errors.New("not a legal move")
	ErrGameOver      = errors.New("game is over")
	ErrCannotUndo    = errors.New("cannot undo")
)

// FiftyMoveLimit is the number of passive plies (fifty moves per side) that draws the game.
const FiftyMoveLimit = 100

type snapshot struct {
	board     Board
	lastMoved Color
}

// Game is the rules layer on top of a Board: turn order, move validation, outcome
// classification and undo.
type Game struct {
	board     Board
	lastMoved Color
	outcome   Outcome
	upgrades  Upgrades
	history   []snapshot
}

// NewGame starts a game from the standard position with white to move.
func NewGame() *Game {
	return Restore(NewBoard(), Black, InProgress)
}

// Restore builds a game around an existing board, e.g. a loaded save. The game has no history.
func Restore(b *Board, lastMoved Color, outcome Outcome) *Game {
	return &Game{
		board:     *b,
		lastMoved: lastMoved,
		outcome:   outcome,
		upgrades:  DefaultUpgrades,
	}
}

// Board returns a copy of the current board.
func (g *Game) Board() *Board { return g.board.Clone() }

// Occupant returns the piece on p.
func (g *Game) Occupant(p Position) (Piece, bool) { return g.board.Occupant(p) }

// Dimensions returns the number of rows and columns.
func (g *Game) Dimensions() (rows, cols int) { return RowNum, ColNum }

// Turn returns the color to move next.
func (g *Game) Turn() Color { return g.lastMoved.Opponent() }

// LastMoved returns the color that made the previous move.
func (g *Game) LastMoved() Color { return g.lastMoved }

// Outcome returns the current outcome.
func (g *Game) Outcome() Outcome { return g.outcome }

// Plies returns the number of moves that can be undone.
func (g *Game) Plies() int { return len(g.history) }

// Upgrades returns the promotion choice of both sides.
func (g *Game) Upgrades() Upgrades { return g.upgrades }

// SetUpgrade sets the kind c's pawns promote to.
func (g *Game) SetUpgrade(c Color, k Kind) error {
	if !canPromoteTo(k) {
		return errors.Errorf("cannot promote to %v", k)
	}
	g.upgrades[c] = k
	return nil
}

// LegalMoves returns the legal moves of the piece on p. It is empty once the game is over.
func (g *Game) LegalMoves(p Position) []Move {
	if g.outcome.Ended() {
		return nil
	}
	return g.board.LegalMovesFrom(p)
}

// Validate checks the move src-tgt and returns it decorated with any castling or en passant
// link. The error is one of ErrWrongTurn, ErrMoveIntoCheck, ErrIllegalMove or ErrGameOver.
func (g *Game) Validate(src, tgt Position) (Move, error) {
	if g.outcome.Ended() {
		return Move{}, ErrGameOver
	}
	p, ok := g.board.Occupant(src)
	if !ok {
		return Move{}, ErrIllegalMove
	}
	for _, m := range g.board.PseudoMoves(src) {
		if m.Target != tgt {
			continue
		}
		if p.Color != g.Turn() {
			return Move{}, ErrWrongTurn
		}
		if !g.board.leavesKingSafe(m, p.Color) {
			return Move{}, ErrMoveIntoCheck
		}
		return m, nil
	}
	// king steps into check are already pruned by the generator
	if p.Kind == King && isKingStep(src, tgt) {
		if t := g.board.At(tgt); t.IsEmpty() || t.Color != p.Color {
			if p.Color != g.Turn() {
				return Move{}, ErrWrongTurn
			}
			return Move{}, ErrMoveIntoCheck
		}
	}
	return Move{}, ErrIllegalMove
}

// Apply validates m and plays it. It returns the outcome after the move.
func (g *Game) Apply(m Move) (Outcome, error) {
	valid, err := g.Validate(m.Source, m.Target)
	if err != nil {
		return g.outcome, err
	}
	mover := g.Turn()
	g.history = append(g.history, snapshot{board: g.board, lastMoved: g.lastMoved})
	g.board.Apply(valid, g.upgrades)
	g.lastMoved = mover
	g.outcome = g.classify(mover)
	return g.outcome, nil
}

// Undo takes back the last move. It is refused once the game is over or when there is no history.
func (g *Game) Undo() error {
	if g.outcome.Ended() || len(g.history) == 0 {
		return ErrCannotUndo
	}
	last := g.history[len(g.history)-1]
	g.history = g.history[:len(g.history)-1]
	g.board = last.board
	g.lastMoved = last.lastMoved
	return nil
}

// ForgetHistory drops every snapshot, so moves played so far can no longer be undone.
func (g *Game) ForgetHistory() { g.history = nil }

func isKingStep(src, tgt Position) bool {
	return tgt.OnBoard() && src != tgt && abs(tgt.Row-src.Row) <= 1 && abs(tgt.Col-src.Col) <= 1
}

func (g *Game) classify(mover Color) Outcome {
	if o := g.board.CheckForWins(mover); o.Ended() {
		return o
	}
	switch {
	case g.board.passive >= FiftyMoveLimit:
		return FiftyMoveDraw
	case g.board.InsufficientMaterial():
		return InsufficientMaterial
	case g.Repetitions() >= 3:
		return RepetitionDraw
	}
	return InProgress
}

// Repetitions counts how many times the current position, with the same side to move, has
// occurred, the current one included. Positions before the last capture, pawn move or
// castle cannot repeat and are not scanned.
func (g *Game) Repetitions() int {
	n := 1
	stop := len(g.history) - g.board.passive
	for i := len(g.history) - 1; i >= 0 && i >= stop; i-- {
		s := &g.history[i]
		if s.lastMoved == g.lastMoved && s.board.SamePlacement(&g.board) {
			n++
		}
	}
	return n
}
