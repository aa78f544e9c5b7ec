package search

import (
	"sort"

	"golang.org/x/exp/slices"

	"github.com/knightingale/game"
)

// Order sorts moves best-first by their ordering key: cheap captures of valuable pieces and
// moves towards better squares come first. The sort is stable.
func Order(moves []game.Move) {
	slices.SortStableFunc(moves, func(a, b game.Move) int {
		return a.OrderKey() - b.OrderKey()
	})
}

// pair is a tuple of move and score
type pair struct {
	Move  game.Move
	Score int
}

// byScore is a sortable list of pairs It sorts the list with best score fist
type byScore []pair

func (l byScore) Len() int           { return len(l) }
func (l byScore) Less(i, j int) bool { return l[i].Score > l[j].Score }
func (l byScore) Swap(i, j int)      { l[i], l[j] = l[j], l[i] }

// argmax returns the index of the first maximum.
func argmax(a []int) int {
	var retVal int
	for i := range a {
		if a[i] > a[retVal] {
			retVal = i
		}
	}
	return retVal
}

func rank(moves []game.Move, scores []int) []pair {
	retVal := make([]pair, len(moves))
	for i := range moves {
		retVal[i] = pair{Move: moves[i], Score: scores[i]}
	}
	sort.Stable(byScore(retVal))
	return retVal
}
