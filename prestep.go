package solver

// preStep applies each joint's already-accumulated normal and friction
// impulses back onto body velocities. This is the warm-start pass, run
// once before the impulse iteration loop.
func preStep(jt *jointTable, impulse solveBodyTable, groupOffset, width int) {
	i := 0
	for ; i < groupOffset; i += width {
		preStepBlock(jt, impulse, i, width)
	}
	for ; i < jt.jointCount; i++ {
		preStepBlock(jt, impulse, i, 1)
	}
}

func preStepBlock(jt *jointTable, impulse solveBodyTable, start, width int) {
	idx1 := loadI(jt.body1Index, start, width)
	idx2 := loadI(jt.body2Index, start, width)

	v1X, v1Y, w1, lastIter1 := loadIndexed4(impulse.data, idx1, solveBodyStride)
	v2X, v2Y, w2, lastIter2 := loadIndexed4(impulse.data, idx2, solveBodyStride)

	nAcc := load(jt.normal.accumulated, start, width)
	fAcc := load(jt.friction.accumulated, start, width)

	v1X, v1Y, w1 = applyAccumulated(v1X, v1Y, w1,
		load(jt.normal.cMass1X, start, width), load(jt.normal.cMass1Y, start, width), load(jt.normal.cMass1Ang, start, width), nAcc)
	v1X, v1Y, w1 = applyAccumulated(v1X, v1Y, w1,
		load(jt.friction.cMass1X, start, width), load(jt.friction.cMass1Y, start, width), load(jt.friction.cMass1Ang, start, width), fAcc)

	v2X, v2Y, w2 = applyAccumulated(v2X, v2Y, w2,
		load(jt.normal.cMass2X, start, width), load(jt.normal.cMass2Y, start, width), load(jt.normal.cMass2Ang, start, width), nAcc)
	v2X, v2Y, w2 = applyAccumulated(v2X, v2Y, w2,
		load(jt.friction.cMass2X, start, width), load(jt.friction.cMass2Y, start, width), load(jt.friction.cMass2Ang, start, width), fAcc)

	storeIndexed4(impulse.data, idx1, v1X, v1Y, w1, lastIter1, solveBodyStride)
	storeIndexed4(impulse.data, idx2, v2X, v2Y, w2, lastIter2, solveBodyStride)
}

// applyAccumulated adds lambda * (cMassX, cMassY, cMassAng) onto (vx, vy, w).
func applyAccumulated(vx, vy, w, cMassX, cMassY, cMassAng, lambda Vf) (Vf, Vf, Vf) {
	return vx.Add(cMassX.Mul(lambda)), vy.Add(cMassY.Mul(lambda)), w.Add(cMassAng.Mul(lambda))
}
