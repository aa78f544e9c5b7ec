package search

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knightingale/game"
)

func newEngine(t *testing.T, depth, quiescence, workers int) *Engine {
	t.Helper()
	conf := DefaultConfig()
	conf.Depth = depth
	conf.QuiescenceDepth = quiescence
	conf.Workers = workers
	e, err := New(conf)
	require.NoError(t, err)
	t.Cleanup(func() { e.Close() })
	return e
}

func board(t *testing.T, fen string) (*game.Board, game.Color) {
	t.Helper()
	g, err := game.FromFEN(fen)
	require.NoError(t, err)
	return g.Board(), g.Turn()
}

// fullWidth is negamax without pruning, with the same leaf and terminal rules as the engine.
func fullWidth(b *game.Board, depth, quiescence int, color game.Color) int {
	if depth <= 1 {
		return fullWidthCaptures(b, quiescence, color)
	}
	moves := b.LegalMoves(color)
	if len(moves) == 0 {
		if b.InCheck(color) {
			return -(Mate + depth)
		}
		return 0
	}
	best := -infinity
	for _, m := range moves {
		child := *b
		child.Apply(m, game.DefaultUpgrades)
		if v := -fullWidth(&child, depth-1, quiescence, color.Opponent()); v > best {
			best = v
		}
	}
	return best
}

func fullWidthCaptures(b *game.Board, depth int, color game.Color) int {
	moves := b.Captures(color)
	if depth <= 1 || len(moves) == 0 {
		return b.Score(color)
	}
	best := -infinity
	for _, m := range moves {
		child := *b
		child.Apply(m, game.DefaultUpgrades)
		if v := -fullWidthCaptures(&child, depth-1, color.Opponent()); v > best {
			best = v
		}
	}
	return best
}

func TestPartition(t *testing.T) {
	assert.Equal(t, []chunk{{0, 2}, {2, 4}, {4, 6}, {6, 10}}, partition(10, 4))
	assert.Equal(t, []chunk{{0, 3}}, partition(3, 8))
	assert.Equal(t, []chunk{{0, 20}}, partition(20, 1))
}

func TestDepthOneIsGreedy(t *testing.T) {
	e := newEngine(t, 1, 1, 4)
	b := game.NewBoard()
	res, err := e.SelectMove(context.Background(), b, game.White)
	require.NoError(t, err)
	require.Len(t, res.Moves, 20)

	for _, m := range res.Moves {
		child := *b
		child.Apply(m, game.DefaultUpgrades)
		assert.GreaterOrEqual(t, res.Score, child.Score(game.White), "%v", m)
	}
	chosen := *b
	chosen.Apply(res.Move, game.DefaultUpgrades)
	assert.Equal(t, res.Score, chosen.Score(game.White))
	assert.Equal(t, res.Move, res.Moves[res.Best])
}

func TestPruningMatchesFullWidth(t *testing.T) {
	for _, tc := range []struct {
		fen               string
		depth, quiescence int
	}{
		{"r3k2r/ppp2ppp/2n5/3qp3/3P4/2N2N2/PPP2PPP/R2QK2R w KQkq - 0 1", 2, 3},
		{"4k3/2p5/1p1r4/8/3N4/4B3/5PP1/6K1 b - - 0 1", 3, 2},
		{"6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1", 3, 1},
	} {
		b, side := board(t, tc.fen)
		e := newEngine(t, tc.depth, tc.quiescence, 3)
		res, err := e.SelectMove(context.Background(), b, side)
		require.NoError(t, err)

		want := make([]int, len(res.Moves))
		for i, m := range res.Moves {
			child := *b
			child.Apply(m, game.DefaultUpgrades)
			want[i] = -fullWidth(&child, tc.depth, tc.quiescence, side.Opponent())
		}
		assert.Equal(t, want, res.Scores, tc.fen)
		assert.Equal(t, argmax(want), res.Best, tc.fen)
	}
}

func TestFindsMateInOne(t *testing.T) {
	b, side := board(t, "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	e := newEngine(t, 2, 1, 2)
	res, err := e.SelectMove(context.Background(), b, side)
	require.NoError(t, err)
	assert.Equal(t, "a1a8", res.Move.String())
	assert.True(t, res.IsMate())
	assert.Equal(t, Mate+2, res.Score)
}

func TestWinsHangingQueen(t *testing.T) {
	b, side := board(t, "4k3/8/8/3q4/8/8/3R4/4K3 w - - 0 1")
	e := newEngine(t, 2, 2, 2)
	res, err := e.SelectMove(context.Background(), b, side)
	require.NoError(t, err)
	assert.Equal(t, "d2d5", res.Move.String())
	assert.Equal(t, "d2d5", res.Ranked()[0].String())
}

func TestSelectMoveLeavesBoardAlone(t *testing.T) {
	b := game.NewBoard()
	before := *b
	e := newEngine(t, 2, 2, 4)
	_, err := e.SelectMove(context.Background(), b, game.White)
	require.NoError(t, err)
	assert.Equal(t, before, *b)
}

func TestSelectMoveIsDeterministic(t *testing.T) {
	b, side := board(t, "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3")
	var first Result
	for _, workers := range []int{1, 3, 8} {
		e := newEngine(t, 2, 2, workers)
		res, err := e.SelectMove(context.Background(), b, side)
		require.NoError(t, err)
		if workers == 1 {
			first = res
			continue
		}
		assert.Equal(t, first.Scores, res.Scores)
		assert.Equal(t, first.Move, res.Move)
	}
}

func TestSelectMoveWithoutMoves(t *testing.T) {
	b, side := board(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	e := newEngine(t, 2, 1, 2)
	_, err := e.SelectMove(context.Background(), b, side)
	assert.ErrorIs(t, err, ErrNoMoves)
}

func TestEvaluatorFailureAbortsSearch(t *testing.T) {
	conf := DefaultConfig()
	conf.Depth = 2
	conf.Workers = 4
	conf.Evaluate = func(b *game.Board, side game.Color) int {
		if b.At(game.MustParse("e4")).Kind == game.Pawn {
			panic("evaluator exploded")
		}
		return b.Score(side)
	}
	e, err := New(conf)
	require.NoError(t, err)
	defer e.Close()

	_, err = e.SelectMove(context.Background(), game.NewBoard(), game.White)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "evaluator exploded")

	// the pool survives and serves the next search
	e.Evaluate = (*game.Board).Score
	_, err = e.SelectMove(context.Background(), game.NewBoard(), game.White)
	assert.NoError(t, err)
}

func TestCancelledSearch(t *testing.T) {
	e := newEngine(t, 3, 1, 2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := e.SelectMove(ctx, game.NewBoard(), game.White)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestInvalidConfig(t *testing.T) {
	conf := DefaultConfig()
	conf.Depth = 0
	_, err := New(conf)
	assert.Error(t, err)

	e := newEngine(t, 2, 1, 1)
	assert.Error(t, e.SetDepth(0, 1))
	require.NoError(t, e.SetDepth(5, 3))
	d, q := e.Depths()
	assert.Equal(t, 5, d)
	assert.Equal(t, 3, q)
}

func TestOrder(t *testing.T) {
	b, side := board(t, "4k3/8/8/3q4/4P3/8/8/Q3K3 w - - 0 1")
	moves := b.LegalMoves(side)
	Order(moves)
	assert.Equal(t, "e4d5", moves[0].String())
	for i := 1; i < len(moves); i++ {
		assert.LessOrEqual(t, moves[i-1].OrderKey(), moves[i].OrderKey())
	}
}

func TestWriteDOT(t *testing.T) {
	b, side := board(t, "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	e := newEngine(t, 2, 1, 2)
	res, err := e.SelectMove(context.Background(), b, side)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteDOT(&buf, res))
	out := buf.String()
	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "digraph search"))
	assert.Contains(t, out, "a1a8")
	assert.Equal(t, len(res.Moves), strings.Count(out, "->"))
	assert.Contains(t, res.String(), "best a1a8")
	assert.Greater(t, res.Stats.Nodes, int64(0))
	assert.Greater(t, res.Stats.Branching, float32(0))
}
