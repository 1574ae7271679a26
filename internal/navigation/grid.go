package navigation

import (
	"math"

	"github.com/duskfall/core/internal/geom"
)

// Cell is an integer grid coordinate.
type Cell struct {
	X int
	Y int
}

// Grid is a rectangular passability map. Positions are level units; one cell
// spans CellSize units. Cells outside the grid are blocked.
type Grid struct {
	Width    int
	Height   int
	CellSize float64
	blocked  []bool
}

func NewGrid(width, height int, cellSize float64) *Grid {
	if cellSize <= 0 {
		cellSize = 1
	}
	return &Grid{
		Width:    width,
		Height:   height,
		CellSize: cellSize,
		blocked:  make([]bool, width*height),
	}
}

// ParseRows builds a grid from text rows where '#' marks a blocked cell.
// Row 0 is y=0. Short rows are padded with open cells.
func ParseRows(rows []string, cellSize float64) *Grid {
	width := 0
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}
	g := NewGrid(width, len(rows), cellSize)
	for y, r := range rows {
		for x := 0; x < len(r); x++ {
			if r[x] == '#' {
				g.SetBlocked(x, y, true)
			}
		}
	}
	return g
}

func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.Width && y < g.Height
}

func (g *Grid) SetBlocked(x, y int, blocked bool) {
	if g.InBounds(x, y) {
		g.blocked[y*g.Width+x] = blocked
	}
}

func (g *Grid) BlockedCell(x, y int) bool {
	if !g.InBounds(x, y) {
		return true
	}
	return g.blocked[y*g.Width+x]
}

// CellOf maps a level position to its cell.
func (g *Grid) CellOf(p geom.Vec2) Cell {
	return Cell{
		X: int(math.Floor(p.X / g.CellSize)),
		Y: int(math.Floor(p.Y / g.CellSize)),
	}
}

// Center returns the level position of a cell's centre.
func (g *Grid) Center(c Cell) geom.Vec2 {
	return geom.V((float64(c.X)+0.5)*g.CellSize, (float64(c.Y)+0.5)*g.CellSize)
}

// Blocked reports whether the cell containing p is impassable.
func (g *Grid) Blocked(p geom.Vec2) bool {
	c := g.CellOf(p)
	return g.BlockedCell(c.X, c.Y)
}

// LineClear samples the segment a→b at quarter-cell steps and reports whether
// every sample is passable.
func (g *Grid) LineClear(a, b geom.Vec2) bool {
	d := b.Sub(a)
	steps := int(math.Ceil(d.Len()/(g.CellSize/4))) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		if g.Blocked(a.Add(d.Scale(t))) {
			return false
		}
	}
	return true
}
