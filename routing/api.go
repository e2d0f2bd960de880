package routing

// DefaultWalkSpeedMS is the walking speed used for time estimates.
const DefaultWalkSpeedMS = 1.4

// RouteStep is one stop of the route timeline. The distance and duration
// describe the walk to the next stop and are zero on the final stop.
type RouteStep struct {
	Node              Node    `json:"node"`
	DistanceToNextM   int     `json:"distanceToNextM"`
	DurationToNextSec float64 `json:"durationToNextSec"`
}

type RouteResponse struct {
	RequestID        string      `json:"requestId,omitempty"`
	Start            NodeID      `json:"start"`
	End              NodeID      `json:"end"`
	Reachable        bool        `json:"reachable"`
	Path             []NodeID    `json:"path"`
	Steps            []RouteStep `json:"steps"`
	Legs             []Leg       `json:"legs"`
	TotalDistanceM   *int        `json:"totalDistanceM"`
	TotalDurationSec float64     `json:"totalDurationSec"`
}

// PrepareResponse turns an engine result and its legs into the response
// consumed by the map screen. An unreachable result keeps a nil total
// distance and empty step lists.
func PrepareResponse(g *Graph, start, end NodeID, res PathResult, legs []Leg, walkSpeedMS float64) RouteResponse {
	if walkSpeedMS <= 0 {
		walkSpeedMS = DefaultWalkSpeedMS
	}

	resp := RouteResponse{
		Start:     start,
		End:       end,
		Reachable: res.Reachable(),
		Path:      []NodeID{},
		Steps:     []RouteStep{},
		Legs:      []Leg{},
	}
	if !resp.Reachable {
		return resp
	}

	resp.Path = append(resp.Path, res.Path...)
	resp.Legs = append(resp.Legs, legs...)
	total := res.Distance
	resp.TotalDistanceM = &total

	for i, id := range res.Path {
		step := RouteStep{Node: g.nodes[id]}
		if i < len(legs) {
			step.DistanceToNextM = legs[i].Distance
			step.DurationToNextSec = float64(legs[i].Distance) / walkSpeedMS
		}
		resp.TotalDurationSec += step.DurationToNextSec
		resp.Steps = append(resp.Steps, step)
	}

	return resp
}
