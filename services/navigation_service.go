package services

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"campus-nav-server/apperrors"
	"campus-nav-server/observability"
	"campus-nav-server/routing"
)

// MapView is everything the map screen draws: pins and the roads between them.
type MapView struct {
	Name  string         `json:"name,omitempty"`
	Nodes []routing.Node `json:"nodes"`
	Links []routing.Link `json:"links"`
}

// NeighborView is an adjacency entry enriched with the neighbor's label.
type NeighborView struct {
	Node   routing.Node `json:"node"`
	Weight int          `json:"weight"`
}

// NearestView answers a "which pin is under this point" lookup.
type NearestView struct {
	Node     routing.Node `json:"node"`
	Distance float64      `json:"distance"`
}

type NavigationService struct {
	graph       *routing.Graph
	logger      *zap.Logger
	metrics     *observability.Collector
	walkSpeedMS float64
}

// NewNavigationService wires the service to a graph. metrics may be nil.
func NewNavigationService(graph *routing.Graph, logger *zap.Logger, metrics *observability.Collector, walkSpeedMS float64) *NavigationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if walkSpeedMS <= 0 {
		walkSpeedMS = routing.DefaultWalkSpeedMS
	}
	metrics.SetGraphSize(graph.Len(), len(graph.Links()))
	return &NavigationService{
		graph:       graph,
		logger:      logger,
		metrics:     metrics,
		walkSpeedMS: walkSpeedMS,
	}
}

func (s *NavigationService) Locations() []routing.Node {
	return s.graph.Nodes()
}

func (s *NavigationService) Location(id routing.NodeID) (routing.Node, error) {
	return s.graph.Node(id)
}

func (s *NavigationService) Neighbors(id routing.NodeID) ([]NeighborView, error) {
	adj, err := s.graph.Neighbors(id)
	if err != nil {
		return nil, err
	}
	out := make([]NeighborView, 0, len(adj))
	for _, e := range adj {
		n, err := s.graph.Node(e.Node)
		if err != nil {
			return nil, apperrors.Wrap(err, fmt.Sprintf("neighbor of %s", id))
		}
		out = append(out, NeighborView{Node: n, Weight: e.Weight})
	}
	return out, nil
}

// WithinRange lists the locations reachable from id by walking at most
// meters, closest first.
func (s *NavigationService) WithinRange(id routing.NodeID, meters int) ([]NeighborView, error) {
	reach, err := routing.WithinDistance(s.graph, id, meters)
	if err != nil {
		return nil, err
	}
	out := make([]NeighborView, 0, len(reach))
	for _, r := range reach {
		n, err := s.graph.Node(r.Node)
		if err != nil {
			return nil, apperrors.Wrap(err, fmt.Sprintf("reachable from %s", id))
		}
		out = append(out, NeighborView{Node: n, Weight: r.Distance})
	}
	return out, nil
}

func (s *NavigationService) Map() MapView {
	return MapView{
		Name:  s.graph.Name(),
		Nodes: s.graph.Nodes(),
		Links: s.graph.Links(),
	}
}

func (s *NavigationService) Nearest(x, y float64) (NearestView, error) {
	n, d, err := routing.Nearest(s.graph, x, y)
	if err != nil {
		return NearestView{}, err
	}
	return NearestView{Node: n, Distance: d}, nil
}

// Navigate computes the route between two distinct locations. Equal
// endpoints are rejected before the path engine runs. An unreachable
// destination is a normal response with Reachable set to false.
func (s *NavigationService) Navigate(start, end routing.NodeID) (routing.RouteResponse, error) {
	began := time.Now()

	if start == end {
		s.metrics.ObserveRoute(observability.OutcomeSameEndpoints, time.Since(began), 0)
		return routing.RouteResponse{}, apperrors.NewValidation(apperrors.CodeSameEndpoints,
			"start and destination cannot be the same", nil)
	}

	res, err := routing.ShortestPath(s.graph, start, end)
	if err != nil {
		outcome := observability.OutcomeError
		if errors.Is(err, routing.ErrUnknownNode) {
			outcome = observability.OutcomeUnknownNode
		}
		s.metrics.ObserveRoute(outcome, time.Since(began), 0)
		return routing.RouteResponse{}, err
	}

	if !res.Reachable() {
		s.metrics.ObserveRoute(observability.OutcomeUnreachable, time.Since(began), 0)
		s.logger.Info("destination unreachable",
			zap.String("start", string(start)),
			zap.String("end", string(end)))
		return routing.PrepareResponse(s.graph, start, end, res, nil, s.walkSpeedMS), nil
	}

	legs, err := routing.Legs(s.graph, res.Path)
	if err != nil {
		s.metrics.ObserveRoute(observability.OutcomeError, time.Since(began), 0)
		s.logger.Error("route does not match graph",
			zap.String("start", string(start)),
			zap.String("end", string(end)),
			zap.Error(err))
		return routing.RouteResponse{}, err
	}

	took := time.Since(began)
	s.metrics.ObserveRoute(observability.OutcomeFound, took, res.Distance)
	s.logger.Debug("route computed",
		zap.String("start", string(start)),
		zap.String("end", string(end)),
		zap.Int("hops", len(legs)),
		zap.Int("distance_m", res.Distance),
		zap.Duration("took", took))

	return routing.PrepareResponse(s.graph, start, end, res, legs, s.walkSpeedMS), nil
}
