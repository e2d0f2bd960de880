package routing

import "sync"

// Locations of the Narhe technical campus.
const (
	MainGate      NodeID = "MAIN_GATE"
	AdminBuilding NodeID = "ADMIN_BUILDING"
	Library       NodeID = "LIBRARY"
	Canteen       NodeID = "CANTEEN"
	CompITDept    NodeID = "COMP_IT_DEPT"
	ENTCDept      NodeID = "ENTC_DEPT"
	MechCivilDept NodeID = "MECH_CIVIL_DEPT"
	Workshop      NodeID = "WORKSHOP"
	SportsGround  NodeID = "SPORTS_GROUND"
	Hostel        NodeID = "HOSTEL"
)

var (
	campusOnce  sync.Once
	campusGraph *Graph
)

// Campus returns the process-wide campus graph, built on first use.
func Campus() *Graph {
	campusOnce.Do(func() {
		campusGraph = MustNewGraph(CampusTable())
	})
	return campusGraph
}

// CampusTable returns a fresh copy of the compiled-in campus definition.
func CampusTable() Table {
	return Table{
		Name: "narhe-campus",
		Nodes: []NodeRecord{
			{ID: MainGate, Label: "Main Gate", X: 50, Y: 90, Neighbors: []Edge{
				{Node: AdminBuilding, Weight: 50},
				{Node: SportsGround, Weight: 100},
			}},
			{ID: AdminBuilding, Label: "Admin Bldg", X: 50, Y: 60, Neighbors: []Edge{
				{Node: MainGate, Weight: 50},
				{Node: Library, Weight: 30},
				{Node: Canteen, Weight: 30},
				{Node: CompITDept, Weight: 40},
				{Node: ENTCDept, Weight: 40},
				{Node: MechCivilDept, Weight: 60},
			}},
			{ID: Library, Label: "Library", X: 30, Y: 60, Neighbors: []Edge{
				{Node: AdminBuilding, Weight: 30},
				{Node: Canteen, Weight: 40},
				{Node: CompITDept, Weight: 20},
				{Node: Workshop, Weight: 30},
			}},
			{ID: Canteen, Label: "Canteen", X: 70, Y: 60, Neighbors: []Edge{
				{Node: AdminBuilding, Weight: 30},
				{Node: Library, Weight: 40},
				{Node: ENTCDept, Weight: 30},
				{Node: SportsGround, Weight: 50},
				{Node: Hostel, Weight: 40},
			}},
			{ID: CompITDept, Label: "Comp/IT Dept", X: 35, Y: 35, Neighbors: []Edge{
				{Node: AdminBuilding, Weight: 40},
				{Node: Library, Weight: 20},
				{Node: MechCivilDept, Weight: 30},
				{Node: ENTCDept, Weight: 30},
			}},
			{ID: ENTCDept, Label: "E&TC Dept", X: 65, Y: 35, Neighbors: []Edge{
				{Node: AdminBuilding, Weight: 40},
				{Node: CompITDept, Weight: 30},
				{Node: Canteen, Weight: 30},
				{Node: Hostel, Weight: 60},
			}},
			{ID: MechCivilDept, Label: "Mech/Civil", X: 50, Y: 25, Neighbors: []Edge{
				{Node: AdminBuilding, Weight: 60},
				{Node: CompITDept, Weight: 30},
				{Node: Workshop, Weight: 20},
			}},
			{ID: Workshop, Label: "Workshop", X: 20, Y: 25, Neighbors: []Edge{
				{Node: MechCivilDept, Weight: 20},
				{Node: Library, Weight: 30},
			}},
			{ID: SportsGround, Label: "Sports Ground", X: 80, Y: 80, Neighbors: []Edge{
				{Node: MainGate, Weight: 100},
				{Node: Canteen, Weight: 50},
			}},
			{ID: Hostel, Label: "Hostel", X: 90, Y: 20, Neighbors: []Edge{
				{Node: Canteen, Weight: 40},
				{Node: ENTCDept, Weight: 60},
			}},
		},
	}
}
