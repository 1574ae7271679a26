package match

import "github.com/duskfall/core/internal/geom"

// Fade is the smootherstep ease-in/ease-out curve t³(t(6t−15)+10).
func Fade(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return t * t * t * (t*(t*6-15) + 10)
}

// fadeLerp weights both ends so that t <= 0 yields from and t >= 1 yields
// to exactly.
func fadeLerp(from, to, t float64) float64 {
	f := Fade(t)
	return from*(1-f) + to*f
}

// FadeColor interpolates each channel independently along Fade.
func FadeColor(from, to geom.Color, t float64) geom.Color {
	return geom.Color{
		R: fadeLerp(from.R, to.R, t),
		G: fadeLerp(from.G, to.G, t),
		B: fadeLerp(from.B, to.B, t),
		A: fadeLerp(from.A, to.A, t),
	}
}
