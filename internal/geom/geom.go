package geom

import "math"

// Vec2 is a position or direction in level space (1 unit = 1 grid cell).
type Vec2 struct {
	X float64 `yaml:"x" msgpack:"x"`
	Y float64 `yaml:"y" msgpack:"y"`
}

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(k float64) Vec2 { return Vec2{v.X * k, v.Y * k} }
func (v Vec2) Len() float64         { return math.Hypot(v.X, v.Y) }
func (v Vec2) Dist(o Vec2) float64  { return v.Sub(o).Len() }
func (v Vec2) IsZero() bool         { return v.X == 0 && v.Y == 0 }
func (v Vec2) Perp() Vec2           { return Vec2{-v.Y, v.X} }
func FromAngle(rad float64) Vec2    { return Vec2{math.Cos(rad), math.Sin(rad)} }

// Normalize returns the unit vector of v, or the zero vector when v has no length.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Centroid averages the given points. Empty input yields the zero vector.
func Centroid(points []Vec2) Vec2 {
	if len(points) == 0 {
		return Vec2{}
	}
	var sum Vec2
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Scale(1 / float64(len(points)))
}

// Color is a linear RGBA value with channels in [0, 1].
type Color struct {
	R float64 `yaml:"r" msgpack:"r"`
	G float64 `yaml:"g" msgpack:"g"`
	B float64 `yaml:"b" msgpack:"b"`
	A float64 `yaml:"a" msgpack:"a"`
}
