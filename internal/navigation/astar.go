package navigation

import "math"

var neighbours = [4]Cell{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// AStar finds a 4-way path from start to goal. maxNodes bounds the number of
// expanded nodes so a sealed-off goal cannot stall the tick. Returns nil when
// no path is found.
func (g *Grid) AStar(start, goal Cell, maxNodes int) []Cell {
	if g.BlockedCell(goal.X, goal.Y) {
		return nil
	}
	if start == goal {
		return []Cell{start}
	}

	idx := func(c Cell) int { return c.Y*g.Width + c.X }
	h := func(c Cell) float64 {
		return math.Abs(float64(c.X-goal.X)) + math.Abs(float64(c.Y-goal.Y))
	}

	open := []Cell{start}
	openSet := map[int]bool{idx(start): true}
	cameFrom := make(map[int]Cell, 64)
	gScore := map[int]float64{idx(start): 0}
	fScore := map[int]float64{idx(start): h(start)}

	for expanded := 0; len(open) > 0 && expanded < maxNodes; expanded++ {
		best := 0
		for i, c := range open {
			// Ties break on insertion order so results are stable.
			if fScore[idx(c)] < fScore[idx(open[best])] {
				best = i
			}
		}
		cur := open[best]
		open = append(open[:best], open[best+1:]...)
		delete(openSet, idx(cur))

		if cur == goal {
			return reconstruct(cameFrom, cur, idx)
		}

		for _, d := range neighbours {
			n := Cell{cur.X + d.X, cur.Y + d.Y}
			if g.BlockedCell(n.X, n.Y) {
				continue
			}
			tentative := gScore[idx(cur)] + 1
			if old, ok := gScore[idx(n)]; ok && tentative >= old {
				continue
			}
			cameFrom[idx(n)] = cur
			gScore[idx(n)] = tentative
			fScore[idx(n)] = tentative + h(n)
			if !openSet[idx(n)] {
				open = append(open, n)
				openSet[idx(n)] = true
			}
		}
	}
	return nil
}

func reconstruct(cameFrom map[int]Cell, cur Cell, idx func(Cell) int) []Cell {
	path := []Cell{cur}
	for {
		prev, ok := cameFrom[idx(cur)]
		if !ok {
			break
		}
		path = append(path, prev)
		cur = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
