package solver

// finish copies solved velocities back into the caller's bodies, scatters
// the three accumulated impulses back onto their ContactJoints, and
// computes a diagnostic average-iteration-count metric.
func finish(ctx *solveContext, bodies []Body, joints []ContactJoint) float32 {
	for i := range bodies {
		vx, vy, w, _ := ctx.impulse.get(i)
		vdx, vdy, wd, _ := ctx.displacement.get(i)
		bodies[i].V = Vector{vx, vy}
		bodies[i].W = w
		bodies[i].Vd = Vector{vdx, vdy}
		bodies[i].Wd = wd
	}

	jt := ctx.joints
	for i, srcIdx := range ctx.jointIndex {
		joints[srcIdx].Normal.Accumulated = jt.normal.accumulated[i]
		joints[srcIdx].Normal.AccumulatedDisplacing = jt.accumulatedDisplacing[i]
		joints[srcIdx].Friction.Accumulated = jt.friction.accumulated[i]
	}

	if len(joints) == 0 {
		return 0
	}

	var sum float32
	for _, j := range joints {
		_, _, _, li1 := ctx.impulse.get(j.Body1Index)
		_, _, _, li2 := ctx.impulse.get(j.Body2Index)
		sum += float32(maxI32(li1, li2)) + 2

		_, _, _, ld1 := ctx.displacement.get(j.Body1Index)
		_, _, _, ld2 := ctx.displacement.get(j.Body2Index)
		sum += float32(maxI32(ld1, ld2)) + 2
	}

	return sum / float32(len(joints))
}

func maxI32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}
