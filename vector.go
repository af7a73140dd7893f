package solver

import (
	"math"
)

// Vector is a 2D vector of float32 components. The solver core is built on
// float32 throughout (bodies, contacts, lanes) to match the width of a SIMD
// lane; callers building scenes (cmd/demo, cmd/bench) use it directly too.
type Vector struct {
	X, Y float32
}

func (v Vector) Add(other Vector) Vector {
	return Vector{v.X + other.X, v.Y + other.Y}
}

func (v Vector) Sub(other Vector) Vector {
	return Vector{v.X - other.X, v.Y - other.Y}
}

func (v Vector) Neg() Vector {
	return Vector{-v.X, -v.Y}
}

func (v Vector) Mult(s float32) Vector {
	return Vector{v.X * s, v.Y * s}
}

func (v Vector) Dot(other Vector) float32 {
	return v.X*other.X + v.Y*other.Y
}

// Cross returns the magnitude of the z component of the 3D cross product
// of the two vectors extended into the z=0 plane.
func (v Vector) Cross(other Vector) float32 {
	return v.X*other.Y - v.Y*other.X
}

func (v Vector) Perp() Vector {
	return Vector{-v.Y, v.X}
}

func (v Vector) ReversePerp() Vector {
	return Vector{v.Y, -v.X}
}

// ForAngle returns the unit length vector for the given angle (in radians).
func ForAngle(a float32) Vector {
	s, c := math.Sincos(float64(a))
	return Vector{float32(c), float32(s)}
}

func (v Vector) Rotate(other Vector) Vector {
	return Vector{v.X*other.X - v.Y*other.Y, v.X*other.Y + v.Y*other.X}
}

func (v Vector) LengthSq() float32 {
	return v.Dot(v)
}

func (v Vector) Length() float32 {
	return float32(math.Sqrt(float64(v.Dot(v))))
}

func (v Vector) Lerp(other Vector, t float32) Vector {
	return v.Mult(1.0 - t).Add(other.Mult(t))
}

func (v Vector) Normalize() Vector {
	l := v.Length()
	if l == 0 {
		return Vector{}
	}
	return v.Mult(1.0 / l)
}
