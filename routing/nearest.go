package routing

import (
	"fmt"
	"math"

	"campus-nav-server/apperrors"
)

// Nearest returns the node closest to the map position (x, y) together with
// its distance in map percent units. Ties go to the node declared first.
func Nearest(g *Graph, x, y float64) (Node, float64, error) {
	if math.IsNaN(x) || math.IsNaN(y) || x < 0 || x > 100 || y < 0 || y > 100 {
		return Node{}, 0, apperrors.NewValidation(apperrors.CodeOutOfBounds,
			fmt.Sprintf("position (%.2f, %.2f) is outside the map", x, y), nil)
	}

	var nearest Node
	minDistance := math.Inf(1)
	for _, id := range g.order {
		n := g.nodes[id]
		d := math.Hypot(n.X-x, n.Y-y)
		if d < minDistance {
			minDistance = d
			nearest = n
		}
	}

	if math.IsInf(minDistance, 1) {
		return Node{}, 0, apperrors.NewNotFound(apperrors.CodeUnknownNode, "no nodes found in graph", ErrUnknownNode)
	}
	return nearest, minDistance, nil
}
