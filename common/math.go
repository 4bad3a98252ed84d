package common

import "github.com/jakecoffman/cp"

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Vec builds a cp.Vector; world positions use chipmunk's vector type so the
// math helpers (Normalize, Distance, Lerp) are shared with the rest of cp.
func Vec(x, y float64) cp.Vector {
	return cp.Vector{X: x, Y: y}
}

// Direction normalizes an intent vector. The zero vector stays zero.
func Direction(x, y float64) cp.Vector {
	v := Vec(x, y)
	if v.LengthSq() == 0 {
		return cp.Vector{}
	}
	return v.Normalize()
}

// SmoothFactor converts a per-second smoothing rate into a lerp factor for one
// frame, clamped to [0, 1] so long frames snap instead of overshooting.
func SmoothFactor(smoothness, dt float64) float64 {
	return cp.Clamp01(smoothness * dt)
}

// ClampAxis clamps v to [lo, hi]; callers guarantee lo <= hi.
func ClampAxis(v, lo, hi float64) float64 {
	return cp.Clamp(v, lo, hi)
}

// Distance is the Euclidean distance between two points.
func Distance(ax, ay, bx, by float64) float64 {
	return Vec(ax, ay).Distance(Vec(bx, by))
}
