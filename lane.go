package solver

import "math"

// Vf is a fixed-width lane of float32 values. Width 1 is the scalar path;
// widths 4 and 8 stand in for 128-bit and 256-bit SIMD registers. The lane
// is backed by a plain slice rather than a fixed-size array so that one set
// of methods serves all three widths — the same shape go-highway's Vec[T]
// uses for its portable (non-assembly) build target.
type Vf struct {
	e []float32
}

// Vi is the integer counterpart of Vf, used for body/contact indices and
// for the bit-reinterpreted lastIteration counter.
type Vi struct {
	e []int32
}

// Vb is a lane of comparison results, produced by Vf/Vi comparisons and
// consumed by Select.
type Vb struct {
	e []bool
}

func newVf(width int) Vf { return Vf{e: make([]float32, width)} }
func newVi(width int) Vi { return Vi{e: make([]int32, width)} }
func newVb(width int) Vb { return Vb{e: make([]bool, width)} }

// SplatVf returns a width-wide lane with every element set to x.
func SplatVf(width int, x float32) Vf {
	v := newVf(width)
	for i := range v.e {
		v.e[i] = x
	}
	return v
}

// SplatVi returns a width-wide lane with every element set to x.
func SplatVi(width int, x int32) Vi {
	v := newVi(width)
	for i := range v.e {
		v.e[i] = x
	}
	return v
}

func (a Vf) Width() int { return len(a.e) }
func (a Vi) Width() int { return len(a.e) }
func (a Vb) Width() int { return len(a.e) }

func (a Vf) Get(i int) float32 { return a.e[i] }
func (a Vi) Get(i int) int32   { return a.e[i] }
func (a Vb) Get(i int) bool    { return a.e[i] }

func (a Vf) Set(i int, x float32) { a.e[i] = x }
func (a Vi) Set(i int, x int32)   { a.e[i] = x }

// load reads width contiguous elements starting at field[i] into a lane,
// the aligned-block load primitive every joint-table field is read through.
func load(field []float32, i, width int) Vf {
	v := newVf(width)
	copy(v.e, field[i:i+width])
	return v
}

// store is the inverse of load.
func store(v Vf, field []float32, i int) {
	copy(field[i:i+v.Width()], v.e)
}

func loadI(field []int32, i, width int) Vi {
	v := newVi(width)
	copy(v.e, field[i:i+width])
	return v
}

func storeI(v Vi, field []int32, i int) {
	copy(field[i:i+v.Width()], v.e)
}

func (a Vf) Add(b Vf) Vf {
	r := newVf(a.Width())
	for i := range r.e {
		r.e[i] = a.e[i] + b.e[i]
	}
	return r
}

func (a Vf) Sub(b Vf) Vf {
	r := newVf(a.Width())
	for i := range r.e {
		r.e[i] = a.e[i] - b.e[i]
	}
	return r
}

func (a Vf) Mul(b Vf) Vf {
	r := newVf(a.Width())
	for i := range r.e {
		r.e[i] = a.e[i] * b.e[i]
	}
	return r
}

func (a Vf) Div(b Vf) Vf {
	r := newVf(a.Width())
	for i := range r.e {
		r.e[i] = a.e[i] / b.e[i]
	}
	return r
}

func (a Vf) Neg() Vf {
	r := newVf(a.Width())
	for i := range r.e {
		r.e[i] = -a.e[i]
	}
	return r
}

func (a Vf) Abs() Vf {
	r := newVf(a.Width())
	for i := range r.e {
		r.e[i] = float32(math.Abs(float64(a.e[i])))
	}
	return r
}

func (a Vf) Max(b Vf) Vf {
	r := newVf(a.Width())
	for i := range r.e {
		if a.e[i] > b.e[i] {
			r.e[i] = a.e[i]
		} else {
			r.e[i] = b.e[i]
		}
	}
	return r
}

func (a Vf) Min(b Vf) Vf {
	r := newVf(a.Width())
	for i := range r.e {
		if a.e[i] < b.e[i] {
			r.e[i] = a.e[i]
		} else {
			r.e[i] = b.e[i]
		}
	}
	return r
}

// Recip returns 1/a lane-wise. The caller is responsible for avoiding
// division by zero where that matters (cInvMass handles it explicitly,
// see refresh.go).
func (a Vf) Recip() Vf {
	return SplatVf(a.Width(), 1).Div(a)
}

// FlipSign returns a with the sign bit of each lane copied from signFrom.
func (a Vf) FlipSign(signFrom Vf) Vf {
	r := newVf(a.Width())
	for i := range r.e {
		mag := float32(math.Abs(float64(a.e[i])))
		if signFrom.e[i] < 0 {
			r.e[i] = -mag
		} else {
			r.e[i] = mag
		}
	}
	return r
}

// AsInt bit-reinterprets the float lane as an integer lane without
// converting values. Used to carry the lastIteration counter inside a
// body record that is otherwise all floats.
func (a Vf) AsInt() Vi {
	r := newVi(a.Width())
	for i := range r.e {
		r.e[i] = int32(math.Float32bits(a.e[i]))
	}
	return r
}

// AsFloat is the inverse of AsInt.
func (a Vi) AsFloat() Vf {
	r := newVf(a.Width())
	for i := range r.e {
		r.e[i] = math.Float32frombits(uint32(a.e[i]))
	}
	return r
}

func (a Vi) Add(b Vi) Vi {
	r := newVi(a.Width())
	for i := range r.e {
		r.e[i] = a.e[i] + b.e[i]
	}
	return r
}

func (a Vi) Sub(b Vi) Vi {
	r := newVi(a.Width())
	for i := range r.e {
		r.e[i] = a.e[i] - b.e[i]
	}
	return r
}

func (a Vf) Gt(b Vf) Vb { return a.cmp(b, func(x, y float32) bool { return x > y }) }
func (a Vf) Ge(b Vf) Vb { return a.cmp(b, func(x, y float32) bool { return x >= y }) }
func (a Vf) Lt(b Vf) Vb { return a.cmp(b, func(x, y float32) bool { return x < y }) }
func (a Vf) Le(b Vf) Vb { return a.cmp(b, func(x, y float32) bool { return x <= y }) }

func (a Vf) cmp(b Vf, op func(x, y float32) bool) Vb {
	r := newVb(a.Width())
	for i := range r.e {
		r.e[i] = op(a.e[i], b.e[i])
	}
	return r
}

// Select picks a's lane where mask is true, b's lane otherwise.
func Select(a, b Vf, mask Vb) Vf {
	r := newVf(a.Width())
	for i := range r.e {
		if mask.e[i] {
			r.e[i] = a.e[i]
		} else {
			r.e[i] = b.e[i]
		}
	}
	return r
}

// Or is the lane-wise boolean OR of two masks.
func (a Vb) Or(b Vb) Vb {
	r := newVb(a.Width())
	for i := range r.e {
		r.e[i] = a.e[i] || b.e[i]
	}
	return r
}

// None reports whether every lane of the mask is false.
func None(m Vb) bool {
	for _, b := range m.e {
		if b {
			return false
		}
	}
	return true
}

// Any reports whether at least one lane of the mask is true.
func Any(m Vb) bool {
	for _, b := range m.e {
		if b {
			return true
		}
	}
	return false
}

// loadIndexed4 gathers width records of 4 floats each (stride floats apart,
// base-relative) and deinterleaves them into 4 lane vectors — the body
// gather primitive used by refresh/impulse/displacement to pull
// (v.X, v.Y, w, lastIterationBits) for a block of bodies addressed by
// indices.
func loadIndexed4(base []float32, indices Vi, stride int) (f0, f1, f2, f3 Vf) {
	width := indices.Width()
	f0, f1, f2, f3 = newVf(width), newVf(width), newVf(width), newVf(width)
	for i := 0; i < width; i++ {
		off := int(indices.e[i]) * stride
		f0.e[i] = base[off+0]
		f1.e[i] = base[off+1]
		f2.e[i] = base[off+2]
		f3.e[i] = base[off+3]
	}
	return
}

// storeIndexed4 is the inverse of loadIndexed4, scattering lanes back to
// per-body records. Safe to call on a lane block because grouping (group.go)
// guarantees the indices within one block are pairwise disjoint for the
// grouped prefix; the scalar tail has width 1 so there's nothing to race.
func storeIndexed4(base []float32, indices Vi, f0, f1, f2, f3 Vf, stride int) {
	width := indices.Width()
	for i := 0; i < width; i++ {
		off := int(indices.e[i]) * stride
		base[off+0] = f0.e[i]
		base[off+1] = f1.e[i]
		base[off+2] = f2.e[i]
		base[off+3] = f3.e[i]
	}
}

// loadIndexed8 gathers width records of 8 floats each — used to pull a
// body's params record (mInv, iInv, pos.x, pos.y, xv.x, xv.y, yv.x, yv.y)
// in a single gather per body.
func loadIndexed8(base []float32, indices Vi, stride int) (f0, f1, f2, f3, f4, f5, f6, f7 Vf) {
	width := indices.Width()
	lanes := [8]Vf{}
	for k := range lanes {
		lanes[k] = newVf(width)
	}
	for i := 0; i < width; i++ {
		off := int(indices.e[i]) * stride
		for k := 0; k < 8; k++ {
			lanes[k].e[i] = base[off+k]
		}
	}
	return lanes[0], lanes[1], lanes[2], lanes[3], lanes[4], lanes[5], lanes[6], lanes[7]
}
