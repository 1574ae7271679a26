package navigation

import "github.com/duskfall/core/internal/geom"

// SmoothPath is an ordered list of waypoints that a smoother may post-process
// in place through Swap and Truncate.
type SmoothPath struct {
	nodes []geom.Vec2
}

func NewSmoothPath(nodes []geom.Vec2) *SmoothPath {
	return &SmoothPath{nodes: nodes}
}

func (p *SmoothPath) Len() int { return len(p.nodes) }

// NodePosition returns the position of the node at index i.
func (p *SmoothPath) NodePosition(i int) geom.Vec2 { return p.nodes[i] }

func (p *SmoothPath) Swap(i, j int) {
	p.nodes[i], p.nodes[j] = p.nodes[j], p.nodes[i]
}

// Truncate drops every node at index n and beyond.
func (p *SmoothPath) Truncate(n int) {
	if n < len(p.nodes) {
		p.nodes = p.nodes[:n]
	}
}

func (p *SmoothPath) Nodes() []geom.Vec2 { return p.nodes }

// Smooth removes intermediate nodes that have a clear line of sight past them.
// Returns the resulting length.
func Smooth(p *SmoothPath, clear func(a, b geom.Vec2) bool) int {
	n := p.Len()
	if n <= 2 {
		return n
	}
	out := 1
	in := 2
	for in < n {
		if !clear(p.NodePosition(out-1), p.NodePosition(in)) {
			p.Swap(out, in-1)
			out++
		}
		in++
	}
	p.Swap(out, in-1)
	p.Truncate(out + 1)
	return p.Len()
}
