package solver

// group builds jointIndex, a permutation of [0, jointCount) such that every
// consecutive width-wide window in [0, groupOffset) touches pairwise
// disjoint bodies. It returns groupOffset, a multiple of width.
//
// The algorithm is a single-threaded graph-coloring-lite pass: repeatedly
// scan the remaining joints left-to-right, greedily picking up to `width`
// of them whose bodies haven't been touched yet this round, swap-pop the
// picked ones out of the remaining set, and start a new round. The result
// is deterministic for a given input order, which callers rely on for
// reproducible solves.
func group(joints []ContactJoint, bodyCount, width int, jointIndex []int32) int {
	jointCount := len(joints)

	if width == 1 {
		for i := 0; i < jointCount; i++ {
			jointIndex[i] = int32(i)
		}
		return jointCount
	}

	touched := make([]int, bodyCount)
	remaining := make([]int32, jointCount)
	for i := range remaining {
		remaining[i] = int32(i)
	}

	tag := 0
	groupOffset := 0

	for len(remaining) >= width {
		tag++
		size := 0

		i := 0
		for i < len(remaining) && size < width {
			j := remaining[i]
			joint := joints[j]

			if touched[joint.Body1Index] < tag && touched[joint.Body2Index] < tag {
				touched[joint.Body1Index] = tag
				touched[joint.Body2Index] = tag

				jointIndex[groupOffset+size] = j
				size++

				last := len(remaining) - 1
				remaining[i] = remaining[last]
				remaining = remaining[:last]
			} else {
				i++
			}
		}

		groupOffset += size

		if size < width {
			break
		}
	}

	for k, j := range remaining {
		jointIndex[groupOffset+k] = j
	}

	return (groupOffset / width) * width
}
