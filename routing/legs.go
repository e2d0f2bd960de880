package routing

import (
	"fmt"

	"campus-nav-server/apperrors"
)

// Leg is one hop of a route.
type Leg struct {
	From     NodeID `json:"from"`
	To       NodeID `json:"to"`
	Distance int    `json:"distance"`
}

// Legs returns the edge weight of every consecutive pair in path. A path
// produced by ShortestPath always resolves; a missing edge means the path
// and the graph disagree and is reported as an internal error.
func Legs(g *Graph, path []NodeID) ([]Leg, error) {
	if len(path) < 2 {
		return []Leg{}, nil
	}
	legs := make([]Leg, 0, len(path)-1)
	for i := 0; i+1 < len(path); i++ {
		w, ok := g.Weight(path[i], path[i+1])
		if !ok {
			return nil, apperrors.NewInternal(apperrors.CodeBrokenPath,
				fmt.Sprintf("no edge between %s and %s", path[i], path[i+1]), ErrBrokenPath)
		}
		legs = append(legs, Leg{From: path[i], To: path[i+1], Distance: w})
	}
	return legs, nil
}

// Traverses reports whether the route walks the undirected edge a-b.
func (r PathResult) Traverses(a, b NodeID) bool {
	for i := 0; i+1 < len(r.Path); i++ {
		if (r.Path[i] == a && r.Path[i+1] == b) || (r.Path[i] == b && r.Path[i+1] == a) {
			return true
		}
	}
	return false
}
