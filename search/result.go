package search

import (
	"fmt"
	"strings"
	"time"

	"github.com/chewxy/math32"

	"github.com/knightingale/game"
)

// Stats describes the work done by one search.
type Stats struct {
	Nodes     int64         `json:"nodes"`  // main search nodes
	QNodes    int64         `json:"qnodes"` // quiescence nodes
	Elapsed   time.Duration `json:"elapsed"`
	Branching float32       `json:"branching"` // effective branching factor
}

// branching is the effective branching factor of a tree of nodes nodes and depth plies.
func branching(nodes int64, depth int) float32 {
	if nodes <= 0 || depth <= 0 {
		return 0
	}
	return math32.Pow(float32(nodes), 1/float32(depth))
}

// Result is the outcome of a search. Moves and Scores are parallel and in generation order.
type Result struct {
	Move  game.Move
	Score int
	Best  int // index of Move in Moves

	Moves  []game.Move
	Scores []int
	Stats  Stats
}

// Ranked returns the root moves sorted best first. Equal scores keep generation order.
func (r Result) Ranked() []game.Move {
	ranked := rank(r.Moves, r.Scores)
	retVal := make([]game.Move, len(ranked))
	for i := range ranked {
		retVal[i] = ranked[i].Move
	}
	return retVal
}

// IsMate reports whether the score is a forced mate, for or against the searching side.
func (r Result) IsMate() bool {
	return r.Score >= Mate || r.Score <= -Mate
}

func (r Result) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "best %v (%d) nodes %d/%d in %v, ebf %.2f\n",
		r.Move, r.Score, r.Stats.Nodes, r.Stats.QNodes, r.Stats.Elapsed, r.Stats.Branching)
	for _, p := range rank(r.Moves, r.Scores) {
		fmt.Fprintf(&sb, "\t%v\t%d\n", p.Move, p.Score)
	}
	return sb.String()
}
