package world

import (
	"math"

	"github.com/duskfall/core/internal/geom"
)

// Collectible is a moonlight patch the player gathers during stealth.
type Collectible struct {
	ID    int
	Pos   geom.Vec2
	Value int
}

// collectCellSize is chosen so a 3x3 cell neighbourhood covers any pickup radius
// up to one cell.
const collectCellSize = 4.0

type cellKey struct {
	cx int
	cy int
}

func toCell(p geom.Vec2) cellKey {
	return cellKey{
		cx: int(math.Floor(p.X / collectCellSize)),
		cy: int(math.Floor(p.Y / collectCellSize)),
	}
}

// CollectibleGrid buckets collectibles by cell for proximity pickup.
// Accessed only from the game loop goroutine, no locks.
type CollectibleGrid struct {
	items  map[int]*Collectible
	cells  map[cellKey]map[int]struct{}
	nextID int
}

func NewCollectibleGrid() *CollectibleGrid {
	return &CollectibleGrid{
		items: make(map[int]*Collectible),
		cells: make(map[cellKey]map[int]struct{}),
	}
}

// Add places a collectible and returns its ID.
func (g *CollectibleGrid) Add(pos geom.Vec2, value int) int {
	g.nextID++
	c := &Collectible{ID: g.nextID, Pos: pos, Value: value}
	g.items[c.ID] = c
	k := toCell(pos)
	cell := g.cells[k]
	if cell == nil {
		cell = make(map[int]struct{})
		g.cells[k] = cell
	}
	cell[c.ID] = struct{}{}
	return c.ID
}

// Remove takes a collectible out of the grid.
func (g *CollectibleGrid) Remove(id int) (*Collectible, bool) {
	c, ok := g.items[id]
	if !ok {
		return nil, false
	}
	delete(g.items, id)
	k := toCell(c.Pos)
	if cell := g.cells[k]; cell != nil {
		delete(cell, id)
		if len(cell) == 0 {
			delete(g.cells, k)
		}
	}
	return c, true
}

func (g *CollectibleGrid) Len() int { return len(g.items) }

// Nearby returns collectibles in the 3x3 cell neighbourhood of p.
// Caller does fine-grained distance filtering.
func (g *CollectibleGrid) Nearby(p geom.Vec2) []*Collectible {
	k := toCell(p)
	var out []*Collectible
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for id := range g.cells[cellKey{k.cx + dx, k.cy + dy}] {
				out = append(out, g.items[id])
			}
		}
	}
	return out
}

// Nearest returns the closest collectible to p. Ties go to the lower ID.
func (g *CollectibleGrid) Nearest(p geom.Vec2) (*Collectible, bool) {
	var best *Collectible
	bestDist := math.MaxFloat64
	for _, c := range g.items {
		d := c.Pos.Dist(p)
		if d < bestDist || (d == bestDist && best != nil && c.ID < best.ID) {
			best, bestDist = c, d
		}
	}
	return best, best != nil
}
