package search

import (
	"fmt"
	"io"
	"strconv"

	"github.com/awalterschulze/gographviz"
	"github.com/pkg/errors"
)

const graphName = "search"

// WriteDOT writes the root of r and its scored moves as a Graphviz digraph. The chosen
// move is filled.
func WriteDOT(w io.Writer, r Result) error {
	g := gographviz.NewGraph()
	if err := g.SetName(graphName); err != nil {
		return errors.WithStack(err)
	}
	if err := g.SetDir(true); err != nil {
		return errors.WithStack(err)
	}

	root := map[string]string{
		"shape": "box",
		"label": strconv.Quote(fmt.Sprintf("%v (%d)", r.Move, r.Score)),
	}
	if err := g.AddNode(graphName, "root", root); err != nil {
		return errors.WithStack(err)
	}
	for i, m := range r.Moves {
		id := "m" + strconv.Itoa(i)
		attrs := map[string]string{
			"label": strconv.Quote(fmt.Sprintf("%v\n%d", m, r.Scores[i])),
		}
		if i == r.Best {
			attrs["style"] = "filled"
		}
		if err := g.AddNode(graphName, id, attrs); err != nil {
			return errors.WithStack(err)
		}
		if err := g.AddEdge("root", id, true, nil); err != nil {
			return errors.WithStack(err)
		}
	}
	_, err := io.WriteString(w, g.String())
	return errors.WithStack(err)
}
