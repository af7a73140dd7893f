package solver

// solveDisplacements runs one displacement-iteration pass: same shape as
// solveImpulses but against (vd, wd) and the normal limiter's displacing
// target, with no friction term.
func solveDisplacements(jt *jointTable, displacement solveBodyTable, groupOffset, width, iterationIndex int) bool {
	productive := false

	i := 0
	for ; i < groupOffset; i += width {
		if solveDisplacementBlock(jt, displacement, i, width, iterationIndex) {
			productive = true
		}
	}
	for ; i < jt.jointCount; i++ {
		if solveDisplacementBlock(jt, displacement, i, 1, iterationIndex) {
			productive = true
		}
	}
	return productive
}

func solveDisplacementBlock(jt *jointTable, displacement solveBodyTable, start, width, iterationIndex int) bool {
	idx1 := loadI(jt.body1Index, start, width)
	idx2 := loadI(jt.body2Index, start, width)

	v1X, v1Y, w1, lastIter1F := loadIndexed4(displacement.data, idx1, solveBodyStride)
	v2X, v2Y, w2, lastIter2F := loadIndexed4(displacement.data, idx2, solveBodyStride)

	lastIter1, lastIter2 := lastIter1F.AsInt(), lastIter2F.AsInt()

	cutoff := SplatVi(width, int32(iterationIndex-2))
	active := gtI(lastIter1, cutoff).Or(gtI(lastIter2, cutoff))

	if None(active) {
		return false
	}

	nProj1X, nProj1Y := load(jt.normal.nProj1X, start, width), load(jt.normal.nProj1Y, start, width)
	nProj2X, nProj2Y := load(jt.normal.nProj2X, start, width), load(jt.normal.nProj2Y, start, width)
	nAProj1, nAProj2 := load(jt.normal.aProj1, start, width), load(jt.normal.aProj2, start, width)
	nCInvMass := load(jt.normal.cInvMass, start, width)
	dstDisplacingVelocity := load(jt.dstDisplacingVelocity, start, width)
	acc := load(jt.accumulatedDisplacing, start, width)

	dv := dstDisplacingVelocity.
		Sub(nProj1X.Mul(v1X)).Sub(nProj1Y.Mul(v1Y)).Sub(nAProj1.Mul(w1)).
		Sub(nProj2X.Mul(v2X)).Sub(nProj2Y.Mul(v2Y)).Sub(nAProj2.Mul(w2))

	delta := dv.Mul(nCInvMass)
	delta = delta.Max(acc.Neg())
	accNew := acc.Add(delta)

	v1X, v1Y, w1 = applyAccumulated(v1X, v1Y, w1,
		load(jt.normal.cMass1X, start, width), load(jt.normal.cMass1Y, start, width), load(jt.normal.cMass1Ang, start, width), delta)
	v2X, v2Y, w2 = applyAccumulated(v2X, v2Y, w2,
		load(jt.normal.cMass2X, start, width), load(jt.normal.cMass2Y, start, width), load(jt.normal.cMass2Ang, start, width), delta)

	store(accNew, jt.accumulatedDisplacing, start)

	productiveMask := delta.Abs().Gt(SplatVf(width, productiveImpulse))

	iterVal := SplatVi(width, int32(iterationIndex)).AsFloat()
	lastIter1F = Select(iterVal, lastIter1F, productiveMask)
	lastIter2F = Select(iterVal, lastIter2F, productiveMask)

	storeIndexed4(displacement.data, idx1, v1X, v1Y, w1, lastIter1F, solveBodyStride)
	storeIndexed4(displacement.data, idx2, v2X, v2Y, w2, lastIter2F, solveBodyStride)

	return Any(productiveMask)
}
