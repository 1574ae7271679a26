package navigation

import "github.com/duskfall/core/internal/geom"

// Pathfinder turns a coarse waypoint list into a traversable path.
type Pathfinder interface {
	Refine(waypoints []geom.Vec2) []geom.Vec2
}

// GridPathfinder runs A* between consecutive waypoints on a Grid and smooths
// the result by line of sight.
type GridPathfinder struct {
	grid     *Grid
	maxNodes int
}

func NewGridPathfinder(g *Grid, maxNodes int) *GridPathfinder {
	if maxNodes <= 0 {
		maxNodes = 2048
	}
	return &GridPathfinder{grid: g, maxNodes: maxNodes}
}

// Refine returns a path starting at the first waypoint and ending at the last.
// If any leg has no path, the input is returned unchanged so callers can fall
// back to direct steering.
func (f *GridPathfinder) Refine(waypoints []geom.Vec2) []geom.Vec2 {
	if len(waypoints) < 2 {
		return waypoints
	}
	nodes := []geom.Vec2{waypoints[0]}
	for i := 1; i < len(waypoints); i++ {
		from, to := waypoints[i-1], waypoints[i]
		if f.grid.LineClear(from, to) {
			nodes = append(nodes, to)
			continue
		}
		cells := f.grid.AStar(f.grid.CellOf(from), f.grid.CellOf(to), f.maxNodes)
		if cells == nil {
			return waypoints
		}
		// Interior cells only; the exact leg endpoints replace the first and last.
		if len(cells) > 2 {
			for _, c := range cells[1 : len(cells)-1] {
				nodes = append(nodes, f.grid.Center(c))
			}
		}
		nodes = append(nodes, to)
	}
	p := NewSmoothPath(nodes)
	Smooth(p, f.grid.LineClear)
	return p.Nodes()
}
