package search

import (
	"context"
	"math"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/knightingale/game"
)

/*
Negamax with alpha-beta pruning and a capture-only quiescence extension. Only the root ply is
parallel: the root moves are split into contiguous chunks, one pool job per chunk, and every job
works on its own copies of the board.
*/

const (
	// Mate is the base score of a checkmate. Mates found with more depth left score higher.
	Mate     = 1000000
	infinity = math.MaxInt32
)

// ErrNoMoves is returned when the side to move has no legal move.
var ErrNoMoves = errors.New("no legal moves")

// chunk is a half-open range of root move indices.
type chunk struct{ lo, hi int }

// partition splits n moves into workers contiguous chunks, the last one absorbing the
// remainder. Empty chunks are dropped.
func partition(n, workers int) []chunk {
	per := n / workers
	var retVal []chunk
	for i := 0; i < workers; i++ {
		c := chunk{lo: i * per, hi: (i + 1) * per}
		if i == workers-1 {
			c.hi = n
		}
		if c.hi > c.lo {
			retVal = append(retVal, c)
		}
	}
	return retVal
}

// searcher is the per-job state of a search. It is never shared between goroutines.
type searcher struct {
	ctx        context.Context
	evaluate   Evaluator
	upgrades   game.Upgrades
	quiescence int

	nodes, qnodes int64
}

// SelectMove searches every legal move of side on b and returns the best one. Ties go to
// the move generated first. b is not modified.
func (e *Engine) SelectMove(ctx context.Context, b *game.Board, side game.Color) (Result, error) {
	e.Lock()
	defer e.Unlock()

	start := time.Now()
	moves := b.LegalMoves(side)
	if len(moves) == 0 {
		return Result{}, ErrNoMoves
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	chunks := partition(len(moves), e.Workers)
	scores := make([]int, len(moves))
	searchers := make([]searcher, len(chunks))
	futures := make([]<-chan error, 0, len(chunks))

	var errs error
	for i, c := range chunks {
		s := &searchers[i]
		*s = searcher{ctx: ctx, evaluate: e.Evaluate, upgrades: e.Upgrades, quiescence: e.QuiescenceDepth}
		c := c
		fut, err := e.pool.Submit(ctx, func() error {
			for j := c.lo; j < c.hi; j++ {
				child := *b
				child.Apply(moves[j], s.upgrades)
				v, err := s.negamax(&child, e.Depth, side.Opponent(), -infinity, infinity)
				if err != nil {
					cancel()
					return errors.Wrapf(err, "searching %v", moves[j])
				}
				scores[j] = -v
			}
			return nil
		})
		if err != nil {
			errs = multierror.Append(errs, err)
			cancel()
			break
		}
		futures = append(futures, fut)
	}

	// wait for every job, including those that were cancelled
	for _, fut := range futures {
		if err := <-fut; err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	if errs != nil {
		e.log.Warn().Err(errs).Int("moves", len(moves)).Msg("search aborted")
		return Result{}, errors.WithMessage(errs, "search aborted")
	}

	best := argmax(scores)
	res := Result{
		Move:   moves[best],
		Score:  scores[best],
		Best:   best,
		Moves:  moves,
		Scores: scores,
	}
	for i := range searchers {
		res.Stats.Nodes += searchers[i].nodes
		res.Stats.QNodes += searchers[i].qnodes
	}
	res.Stats.Elapsed = time.Since(start)
	res.Stats.Branching = branching(res.Stats.Nodes+res.Stats.QNodes, e.Depth+1)

	e.log.Debug().
		Str("side", side.String()).
		Str("best", res.Move.String()).
		Int("score", res.Score).
		Int("moves", len(moves)).
		Int("chunks", len(chunks)).
		Int64("nodes", res.Stats.Nodes).
		Int64("qnodes", res.Stats.QNodes).
		Dur("elapsed", res.Stats.Elapsed).
		Msg("search complete")
	return res, nil
}

// negamax returns the value of b for color. Once depth reaches 1 it hands over to the
// quiescence search.
func (s *searcher) negamax(b *game.Board, depth int, color game.Color, lo, hi int) (int, error) {
	if depth <= 1 {
		return s.quiesce(b, s.quiescence, color, lo, hi), nil
	}
	if err := s.ctx.Err(); err != nil {
		return 0, err
	}
	s.nodes++

	moves := b.LegalMoves(color)
	if len(moves) == 0 {
		if b.InCheck(color) {
			return -(Mate + depth), nil
		}
		return 0, nil
	}
	Order(moves)

	best := -infinity
	for _, m := range moves {
		child := *b
		child.Apply(m, s.upgrades)
		v, err := s.negamax(&child, depth-1, color.Opponent(), -hi, -lo)
		if err != nil {
			return 0, err
		}
		if v = -v; v > best {
			best = v
		}
		if best > lo {
			lo = best
		}
		if lo >= hi {
			break
		}
	}
	return best, nil
}

// quiesce searches captures only, and returns the static evaluation once depth reaches 1
// or there is nothing left to take.
func (s *searcher) quiesce(b *game.Board, depth int, color game.Color, lo, hi int) int {
	s.qnodes++
	if depth <= 1 {
		return s.evaluate(b, color)
	}
	moves := b.Captures(color)
	if len(moves) == 0 {
		return s.evaluate(b, color)
	}
	Order(moves)

	best := -infinity
	for _, m := range moves {
		child := *b
		child.Apply(m, s.upgrades)
		if v := -s.quiesce(&child, depth-1, color.Opponent(), -hi, -lo); v > best {
			best = v
		}
		if best > lo {
			lo = best
		}
		if lo >= hi {
			break
		}
	}
	return best
}
