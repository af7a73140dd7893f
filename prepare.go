package solver

// solveContext holds every transient table for one Solve* call: the
// velocity and displacement accumulators, per-body mass/inertia/position
// parameters, the grouped joint table, and the permutation back to the
// caller's original joint order.
type solveContext struct {
	width int

	bodyCount  int
	jointCount int

	impulse      solveBodyTable
	displacement solveBodyTable
	params       solveBodyParamsTable

	jointIndex []int32
	joints     *jointTable

	groupOffset int
}

func prepare(bodies []Body, joints []ContactJoint, width int) *solveContext {
	ctx := &solveContext{
		width:      width,
		bodyCount:  len(bodies),
		jointCount: len(joints),

		impulse:      newSolveBodyTable(len(bodies)),
		displacement: newSolveBodyTable(len(bodies)),
		params:       newSolveBodyParamsTable(len(bodies)),

		jointIndex: make([]int32, len(joints)),
		joints:     newJointTable(len(joints)),
	}

	for i, b := range bodies {
		ctx.impulse.set(i, b.V.X, b.V.Y, b.W, -1)
		ctx.displacement.set(i, b.Vd.X, b.Vd.Y, b.Wd, -1)
		ctx.params.set(i, b.MInv, b.IInv, b.Pos, b.Xv, b.Yv)
	}

	ctx.groupOffset = group(joints, len(bodies), width, ctx.jointIndex)

	jt := ctx.joints
	for i, srcIdx := range ctx.jointIndex {
		j := joints[srcIdx]
		jt.body1Index[i] = int32(j.Body1Index)
		jt.body2Index[i] = int32(j.Body2Index)
		jt.contactPointIndex[i] = int32(j.ContactPointIndex)
		jt.normal.accumulated[i] = j.Normal.Accumulated
		jt.accumulatedDisplacing[i] = j.Normal.AccumulatedDisplacing
		jt.friction.accumulated[i] = j.Friction.Accumulated
	}

	return ctx
}
