package solver

import (
	"math"
	"testing"
)

func TestVector_Normalize(t *testing.T) {
	v := Vector{}
	u := v.Normalize()
	if u.X != 0.0 || u.Y != 0.0 {
		t.Errorf("Expected zero vector, got %v", u)
	}

	v = Vector{3, 4}
	u = v.Normalize()
	if math.Abs(float64(u.Length()-1)) > 1e-6 {
		t.Errorf("Expected unit length, got %v", u.Length())
	}
}

func TestVector_Dot(t *testing.T) {
	a := Vector{1, 0}
	b := Vector{0, 1}
	if a.Dot(b) != 0 {
		t.Errorf("Expected perpendicular vectors to have zero dot product, got %v", a.Dot(b))
	}
}

func TestVector_Perp(t *testing.T) {
	v := Vector{1, 0}
	p := v.Perp()
	if p.X != 0 || p.Y != 1 {
		t.Errorf("Expected (0,1), got %v", p)
	}
	if v.Dot(p) != 0 {
		t.Errorf("Perp should be perpendicular to the original, got dot %v", v.Dot(p))
	}
}

func TestVector_Rotate(t *testing.T) {
	v := Vector{1, 0}
	a := ForAngle(float32(math.Pi / 2))
	r := v.Rotate(a)
	if math.Abs(float64(r.X)) > 1e-6 || math.Abs(float64(r.Y-1)) > 1e-6 {
		t.Errorf("Expected (0,1), got %v", r)
	}
}

func TestVector_Lerp(t *testing.T) {
	a := Vector{0, 0}
	b := Vector{10, 10}
	m := a.Lerp(b, 0.5)
	if m.X != 5 || m.Y != 5 {
		t.Errorf("Expected midpoint (5,5), got %v", m)
	}
}
