package common

import (
	"math"
	"testing"
)

func TestDirection(t *testing.T) {
	cases := []struct {
		name string
		x, y float64
		want float64
	}{
		{"zero", 0, 0, 0},
		{"axis", 1, 0, 1},
		{"diagonal", 1, 1, 1},
		{"unnormalized", 3, -4, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Direction(c.x, c.y).Length()
			if math.Abs(got-c.want) > 1e-9 {
				t.Fatalf("expected length %v, got %v", c.want, got)
			}
		})
	}
}

func TestSmoothFactor(t *testing.T) {
	cases := []struct {
		name       string
		smoothness float64
		dt         float64
		want       float64
	}{
		{"normal frame", 5, 0.1, 0.5},
		{"slow frame snaps", 5, 1, 1},
		{"negative clamps", -5, 0.1, 0},
		{"paused", 5, 0, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := SmoothFactor(c.smoothness, c.dt); math.Abs(got-c.want) > 1e-9 {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
		})
	}
}

func TestDistance(t *testing.T) {
	if got := Distance(0, 0, 3, 4); math.Abs(got-5) > 1e-9 {
		t.Fatalf("expected 5, got %v", got)
	}
}
