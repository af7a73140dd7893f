package solver

import "testing"

func TestGroup_ScalarWidthIsIdentity(t *testing.T) {
	joints := make([]ContactJoint, 5)
	for i := range joints {
		joints[i] = ContactJoint{Body1Index: i, Body2Index: i + 1}
	}
	jointIndex := make([]int32, len(joints))
	offset := group(joints, 6, 1, jointIndex)
	if offset != len(joints) {
		t.Fatalf("groupOffset = %d, want %d", offset, len(joints))
	}
	for i, idx := range jointIndex {
		if int(idx) != i {
			t.Errorf("jointIndex[%d] = %d, want %d for width-1 grouping", i, idx, i)
		}
	}
}

func TestGroup_BlocksTouchDisjointBodies(t *testing.T) {
	width := 4
	bodyCount := 40
	jointCount := 50
	joints := make([]ContactJoint, jointCount)
	for i := range joints {
		joints[i] = ContactJoint{Body1Index: (2 * i) % bodyCount, Body2Index: (2*i + 1) % bodyCount}
	}

	jointIndex := make([]int32, jointCount)
	offset := group(joints, bodyCount, width, jointIndex)

	if offset%width != 0 {
		t.Fatalf("groupOffset %d is not a multiple of width %d", offset, width)
	}

	for start := 0; start < offset; start += width {
		seen := map[int]bool{}
		for k := 0; k < width; k++ {
			j := joints[jointIndex[start+k]]
			if seen[j.Body1Index] || seen[j.Body2Index] {
				t.Fatalf("block at %d touches body %d or %d more than once", start, j.Body1Index, j.Body2Index)
			}
			seen[j.Body1Index] = true
			seen[j.Body2Index] = true
		}
	}
}

func TestGroup_IsAPermutation(t *testing.T) {
	width := 4
	bodyCount := 20
	jointCount := 17
	joints := make([]ContactJoint, jointCount)
	for i := range joints {
		joints[i] = ContactJoint{Body1Index: i % bodyCount, Body2Index: (i + 7) % bodyCount}
	}

	jointIndex := make([]int32, jointCount)
	group(joints, bodyCount, width, jointIndex)

	seen := make([]bool, jointCount)
	for _, idx := range jointIndex {
		if seen[idx] {
			t.Fatalf("jointIndex is not a permutation: %d appears twice", idx)
		}
		seen[idx] = true
	}
	for i, s := range seen {
		if !s {
			t.Errorf("jointIndex never places original joint %d", i)
		}
	}
}
