package routing

import (
	"container/heap"
	"fmt"

	"campus-nav-server/apperrors"
)

// Reach is a node within walking range together with its route distance.
type Reach struct {
	Node     NodeID `json:"node"`
	Distance int    `json:"distance"`
}

// WithinDistance lists every node whose shortest route from start is at most
// maxMeters long, start included, ordered by distance then table order.
func WithinDistance(g *Graph, start NodeID, maxMeters int) ([]Reach, error) {
	if !g.Has(start) {
		return nil, unknownNode(start)
	}
	if maxMeters < 0 {
		return nil, apperrors.NewValidation(apperrors.CodeInvalidRequest,
			fmt.Sprintf("range must not be negative, got %d", maxMeters), nil)
	}

	dist := map[NodeID]int{start: 0}
	done := make(map[NodeID]bool)
	pq := &frontier{}
	heap.Push(pq, &frontierItem{node: start, order: g.index[start], dist: 0})

	var out []Reach
	for pq.Len() > 0 {
		item := heap.Pop(pq).(*frontierItem)
		if done[item.node] {
			continue
		}
		if item.dist > maxMeters {
			break
		}
		done[item.node] = true
		out = append(out, Reach{Node: item.node, Distance: item.dist})

		for _, e := range g.edges[item.node] {
			if done[e.Node] {
				continue
			}
			alt := item.dist + e.Weight
			if known, ok := dist[e.Node]; !ok || alt < known {
				dist[e.Node] = alt
				heap.Push(pq, &frontierItem{node: e.Node, order: g.index[e.Node], dist: alt})
			}
		}
	}
	return out, nil
}
