package routing

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"campus-nav-server/apperrors"
)

var (
	ErrUnknownNode    = errors.New("unknown node")
	ErrMalformedGraph = errors.New("malformed graph")
	ErrBrokenPath     = errors.New("path does not follow graph edges")
)

// NodeID identifies a location on the campus map.
type NodeID string

// Node is a named location with its placement on the map surface.
// X and Y are percentages of the map width and height (0 is the top edge).
type Node struct {
	ID    NodeID  `json:"id"`
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// MaxEdgeWeight bounds a single edge so that route sums cannot overflow int.
// It must match the lte tag on Edge.Weight.
const MaxEdgeWeight = 1000000

// Edge is one directed adjacency entry. Weight is a walking distance in meters.
type Edge struct {
	Node   NodeID `json:"node" yaml:"node" validate:"required"`
	Weight int    `json:"weight" yaml:"weight" validate:"gt=0,lte=1000000"`
}

// Link is the undirected view of a symmetric pair of edges.
type Link struct {
	From   NodeID `json:"from"`
	To     NodeID `json:"to"`
	Weight int    `json:"weight"`
}

// NodeRecord declares one node and its adjacency list.
type NodeRecord struct {
	ID        NodeID  `json:"id" yaml:"id" validate:"required"`
	Label     string  `json:"label" yaml:"label" validate:"required"`
	X         float64 `json:"x" yaml:"x" validate:"gte=0,lte=100"`
	Y         float64 `json:"y" yaml:"y" validate:"gte=0,lte=100"`
	Neighbors []Edge  `json:"neighbors" yaml:"neighbors" validate:"dive"`
}

// Table is the declarative definition a Graph is built from. Node order is
// kept: it is the listing order and the tie-break order of path queries.
type Table struct {
	Name  string       `json:"name,omitempty" yaml:"name,omitempty"`
	Nodes []NodeRecord `json:"nodes" yaml:"nodes" validate:"required,min=1,dive"`
}

// Graph is an immutable weighted undirected graph stored as symmetric
// adjacency lists. It is safe for concurrent use.
type Graph struct {
	name  string
	order []NodeID
	index map[NodeID]int
	nodes map[NodeID]Node
	edges map[NodeID][]Edge
}

var tableValidator = validator.New()

// NewGraph validates the table and builds a Graph from it. Every structural
// problem (dangling references, asymmetric or duplicate edges, self loops,
// non-positive weights, out of range coordinates) is rejected here so that
// queries never meet malformed data.
func NewGraph(t Table) (*Graph, error) {
	if err := tableValidator.Struct(t); err != nil {
		return nil, malformed(describeValidation(err))
	}

	g := &Graph{
		name:  t.Name,
		order: make([]NodeID, 0, len(t.Nodes)),
		index: make(map[NodeID]int, len(t.Nodes)),
		nodes: make(map[NodeID]Node, len(t.Nodes)),
		edges: make(map[NodeID][]Edge, len(t.Nodes)),
	}

	for i, rec := range t.Nodes {
		if _, dup := g.index[rec.ID]; dup {
			return nil, malformed(fmt.Sprintf("duplicate node %s", rec.ID))
		}
		g.index[rec.ID] = i
		g.order = append(g.order, rec.ID)
		g.nodes[rec.ID] = Node{ID: rec.ID, Label: rec.Label, X: rec.X, Y: rec.Y}
	}

	for _, rec := range t.Nodes {
		seen := make(map[NodeID]bool, len(rec.Neighbors))
		adj := make([]Edge, 0, len(rec.Neighbors))
		for _, e := range rec.Neighbors {
			switch {
			case e.Node == rec.ID:
				return nil, malformed(fmt.Sprintf("self loop on %s", rec.ID))
			case seen[e.Node]:
				return nil, malformed(fmt.Sprintf("duplicate edge %s -> %s", rec.ID, e.Node))
			}
			if _, ok := g.index[e.Node]; !ok {
				return nil, malformed(fmt.Sprintf("edge %s -> %s references an unknown node", rec.ID, e.Node))
			}
			seen[e.Node] = true
			adj = append(adj, e)
		}
		g.edges[rec.ID] = adj
	}

	for _, from := range g.order {
		for _, e := range g.edges[from] {
			back, ok := g.Weight(e.Node, from)
			if !ok {
				return nil, malformed(fmt.Sprintf("edge %s -> %s has no reverse entry", from, e.Node))
			}
			if back != e.Weight {
				return nil, malformed(fmt.Sprintf("edge %s -> %s weighs %d but the reverse weighs %d", from, e.Node, e.Weight, back))
			}
		}
	}

	return g, nil
}

// MustNewGraph is like NewGraph but panics on a malformed table. It is meant
// for compiled-in tables only.
func MustNewGraph(t Table) *Graph {
	g, err := NewGraph(t)
	if err != nil {
		panic(err)
	}
	return g
}

// Name returns the table name the graph was built from.
func (g *Graph) Name() string { return g.name }

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.order) }

// Has reports whether id is a node of the graph.
func (g *Graph) Has(id NodeID) bool {
	_, ok := g.index[id]
	return ok
}

// Node returns the node data for id.
func (g *Graph) Node(id NodeID) (Node, error) {
	n, ok := g.nodes[id]
	if !ok {
		return Node{}, unknownNode(id)
	}
	return n, nil
}

// Neighbors returns the adjacency list of id in declaration order. A node
// without edges yields an empty slice.
func (g *Graph) Neighbors(id NodeID) ([]Edge, error) {
	adj, ok := g.edges[id]
	if !ok {
		return nil, unknownNode(id)
	}
	out := make([]Edge, len(adj))
	copy(out, adj)
	return out, nil
}

// Weight returns the weight of the edge from -> to.
func (g *Graph) Weight(from, to NodeID) (int, bool) {
	for _, e := range g.edges[from] {
		if e.Node == to {
			return e.Weight, true
		}
	}
	return 0, false
}

// Nodes lists every node in table order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id])
	}
	return out
}

// Links lists each undirected edge once, oriented from the node declared
// first in the table. A graph without edges yields an empty slice.
func (g *Graph) Links() []Link {
	out := make([]Link, 0)
	for _, from := range g.order {
		for _, e := range g.edges[from] {
			if g.index[from] < g.index[e.Node] {
				out = append(out, Link{From: from, To: e.Node, Weight: e.Weight})
			}
		}
	}
	return out
}

// Table returns a deep copy of the definition the graph was built from.
func (g *Graph) Table() Table {
	t := Table{Name: g.name, Nodes: make([]NodeRecord, 0, len(g.order))}
	for _, id := range g.order {
		n := g.nodes[id]
		adj := make([]Edge, len(g.edges[id]))
		copy(adj, g.edges[id])
		t.Nodes = append(t.Nodes, NodeRecord{ID: n.ID, Label: n.Label, X: n.X, Y: n.Y, Neighbors: adj})
	}
	return t
}

func unknownNode(id NodeID) error {
	return apperrors.NewNotFound(apperrors.CodeUnknownNode, fmt.Sprintf("unknown node %q", id), ErrUnknownNode)
}

func malformed(reason string) error {
	return apperrors.NewValidation(apperrors.CodeMalformedGraph, reason, ErrMalformedGraph)
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if fe.Param() != "" {
			return fmt.Sprintf("%s fails %s=%s (got %v)", fe.Namespace(), fe.Tag(), fe.Param(), fe.Value())
		}
		return fmt.Sprintf("%s fails %s", fe.Namespace(), fe.Tag())
	}
	return err.Error()
}
