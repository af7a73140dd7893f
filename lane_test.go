package solver

import "testing"

func TestLane_ArithmeticAcrossWidths(t *testing.T) {
	for _, width := range []int{1, 4, 8} {
		a := newVf(width)
		b := newVf(width)
		for i := 0; i < width; i++ {
			a.e[i] = float32(i + 1)
			b.e[i] = float32(2 * (i + 1))
		}

		sum := a.Add(b)
		for i := 0; i < width; i++ {
			want := float32(3 * (i + 1))
			if sum.Get(i) != want {
				t.Errorf("width %d: Add[%d] = %v, want %v", width, i, sum.Get(i), want)
			}
		}

		diff := b.Sub(a)
		for i := 0; i < width; i++ {
			if diff.Get(i) != a.Get(i) {
				t.Errorf("width %d: Sub[%d] = %v, want %v", width, i, diff.Get(i), a.Get(i))
			}
		}
	}
}

func TestLane_SelectUsesMaskCorrectly(t *testing.T) {
	width := 4
	a := SplatVf(width, 1)
	b := SplatVf(width, 2)
	mask := newVb(width)
	mask.e[0], mask.e[2] = true, true

	r := Select(a, b, mask)
	want := []float32{1, 2, 1, 2}
	for i, w := range want {
		if r.Get(i) != w {
			t.Errorf("Select[%d] = %v, want %v", i, r.Get(i), w)
		}
	}
}

func TestLane_AnyNone(t *testing.T) {
	width := 4
	allFalse := newVb(width)
	if Any(allFalse) {
		t.Error("Any() on all-false mask should be false")
	}
	if !None(allFalse) {
		t.Error("None() on all-false mask should be true")
	}

	mixed := newVb(width)
	mixed.e[1] = true
	if !Any(mixed) {
		t.Error("Any() on a mixed mask should be true")
	}
	if None(mixed) {
		t.Error("None() on a mixed mask should be false")
	}
}

func TestLane_BitReinterpretRoundTrips(t *testing.T) {
	width := 4
	v := newVi(width)
	for i := 0; i < width; i++ {
		v.e[i] = int32(i*7 - 3)
	}
	back := v.AsFloat().AsInt()
	for i := 0; i < width; i++ {
		if back.Get(i) != v.Get(i) {
			t.Errorf("bit round trip[%d] = %v, want %v", i, back.Get(i), v.Get(i))
		}
	}
}

func TestLane_IndexedGatherScatterRoundTrips(t *testing.T) {
	bodyCount := 6
	data := make([]float32, bodyCount*solveBodyStride)
	for i := 0; i < bodyCount; i++ {
		base := i * solveBodyStride
		data[base+0] = float32(i)
		data[base+1] = float32(i) * 10
		data[base+2] = float32(i) * 100
		data[base+3] = float32(i) * 1000
	}

	idx := SplatVi(4, 0)
	idx.e[0], idx.e[1], idx.e[2], idx.e[3] = 5, 0, 3, 1

	x, y, z, w := loadIndexed4(data, idx, solveBodyStride)
	for lane := 0; lane < 4; lane++ {
		body := int(idx.Get(lane))
		if x.Get(lane) != float32(body) || y.Get(lane) != float32(body)*10 ||
			z.Get(lane) != float32(body)*100 || w.Get(lane) != float32(body)*1000 {
			t.Errorf("loadIndexed4 lane %d did not gather body %d correctly", lane, body)
		}
	}

	storeIndexed4(data, idx, SplatVf(4, -1), SplatVf(4, -2), SplatVf(4, -3), SplatVf(4, -4), solveBodyStride)
	for lane := 0; lane < 4; lane++ {
		body := int(idx.Get(lane))
		base := body * solveBodyStride
		if data[base+0] != -1 || data[base+1] != -2 || data[base+2] != -3 || data[base+3] != -4 {
			t.Errorf("storeIndexed4 did not scatter to body %d correctly", body)
		}
	}
}
