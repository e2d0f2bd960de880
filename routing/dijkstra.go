package routing

import (
	"container/heap"
	"fmt"
)

// Unreachable is the Distance of a PathResult when no route exists.
const Unreachable = -1

// PathResult is a route from start to end, both included, with its total
// length in meters. An unreachable destination has a nil Path and an
// Unreachable distance.
type PathResult struct {
	Path     []NodeID `json:"path"`
	Distance int      `json:"distance"`
}

// Reachable reports whether the result holds a route.
func (r PathResult) Reachable() bool {
	return len(r.Path) > 0
}

// ShortestPath runs Dijkstra from start and returns the minimum weight route
// to end. Weights must be non-negative, which NewGraph guarantees.
//
// Nodes are finalized by (distance, table order), so among equally distant
// candidates the earlier declared node wins, and relaxation only adopts
// strictly shorter paths. Repeated queries therefore return identical
// routes.
//
// ShortestPath does not reject start == end; it returns the single node
// route of length 0.
func ShortestPath(g *Graph, start, end NodeID) (PathResult, error) {
	if !g.Has(start) {
		return PathResult{}, unknownNode(start)
	}
	if !g.Has(end) {
		return PathResult{}, unknownNode(end)
	}

	dist := make(map[NodeID]int, g.Len())
	prev := make(map[NodeID]NodeID, g.Len())
	done := make(map[NodeID]bool, g.Len())

	dist[start] = 0
	pq := &frontier{}
	heap.Push(pq, &frontierItem{node: start, order: g.index[start], dist: 0})

	for pq.Len() > 0 {
		item := heap.Pop(pq).(*frontierItem)
		current := item.node
		if done[current] {
			continue
		}
		done[current] = true

		if current == end {
			break
		}

		for _, e := range g.edges[current] {
			if done[e.Node] {
				continue
			}
			alt := item.dist + e.Weight
			if known, ok := dist[e.Node]; !ok || alt < known {
				dist[e.Node] = alt
				prev[e.Node] = current
				heap.Push(pq, &frontierItem{node: e.Node, order: g.index[e.Node], dist: alt})
			}
		}
	}

	if _, ok := prev[end]; !ok && end != start {
		return PathResult{Distance: Unreachable}, nil
	}

	return PathResult{Path: reconstructPath(prev, start, end), Distance: dist[end]}, nil
}

func reconstructPath(prev map[NodeID]NodeID, start, end NodeID) []NodeID {
	var path []NodeID
	for current := end; ; {
		path = append(path, current)
		if current == start {
			break
		}
		p, ok := prev[current]
		if !ok {
			panic(fmt.Sprintf("routing: predecessor chain broken at %s", current))
		}
		current = p
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

type frontierItem struct {
	node  NodeID
	order int
	dist  int
}

// frontier is a min-heap on (dist, order). Stale entries are skipped on pop.
type frontier []*frontierItem

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	if f[i].dist != f[j].dist {
		return f[i].dist < f[j].dist
	}
	return f[i].order < f[j].order
}

func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x interface{}) {
	*f = append(*f, x.(*frontierItem))
}

func (f *frontier) Pop() interface{} {
	old := *f
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*f = old[0 : n-1]
	return item
}
