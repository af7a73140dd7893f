package solver

// solveImpulses runs one impulse-iteration pass over the grouped prefix in
// width-wide blocks and the tail one joint at a time. It returns whether
// any block produced a useful impulse.
func solveImpulses(jt *jointTable, impulse solveBodyTable, groupOffset, width, iterationIndex int) bool {
	productive := false

	i := 0
	for ; i < groupOffset; i += width {
		if solveImpulseBlock(jt, impulse, i, width, iterationIndex) {
			productive = true
		}
	}
	for ; i < jt.jointCount; i++ {
		if solveImpulseBlock(jt, impulse, i, 1, iterationIndex) {
			productive = true
		}
	}
	return productive
}

func solveImpulseBlock(jt *jointTable, impulse solveBodyTable, start, width, iterationIndex int) bool {
	idx1 := loadI(jt.body1Index, start, width)
	idx2 := loadI(jt.body2Index, start, width)

	v1X, v1Y, w1, lastIter1F := loadIndexed4(impulse.data, idx1, solveBodyStride)
	v2X, v2Y, w2, lastIter2F := loadIndexed4(impulse.data, idx2, solveBodyStride)

	lastIter1, lastIter2 := lastIter1F.AsInt(), lastIter2F.AsInt()

	cutoff := SplatVi(width, int32(iterationIndex-2))
	active1 := gtI(lastIter1, cutoff)
	active2 := gtI(lastIter2, cutoff)
	active := active1.Or(active2)

	if None(active) {
		return false
	}

	nProj1X, nProj1Y := load(jt.normal.nProj1X, start, width), load(jt.normal.nProj1Y, start, width)
	nProj2X, nProj2Y := load(jt.normal.nProj2X, start, width), load(jt.normal.nProj2Y, start, width)
	nAProj1, nAProj2 := load(jt.normal.aProj1, start, width), load(jt.normal.aProj2, start, width)
	nCInvMass := load(jt.normal.cInvMass, start, width)
	dstVelocity := load(jt.dstVelocity, start, width)
	nAcc := load(jt.normal.accumulated, start, width)

	nDV := dstVelocity.
		Sub(nProj1X.Mul(v1X)).Sub(nProj1Y.Mul(v1Y)).Sub(nAProj1.Mul(w1)).
		Sub(nProj2X.Mul(v2X)).Sub(nProj2Y.Mul(v2Y)).Sub(nAProj2.Mul(w2))

	deltaN := nDV.Mul(nCInvMass)
	deltaN = deltaN.Max(nAcc.Neg())
	nAccNew := nAcc.Add(deltaN)

	v1X, v1Y, w1 = applyAccumulated(v1X, v1Y, w1,
		load(jt.normal.cMass1X, start, width), load(jt.normal.cMass1Y, start, width), load(jt.normal.cMass1Ang, start, width), deltaN)
	v2X, v2Y, w2 = applyAccumulated(v2X, v2Y, w2,
		load(jt.normal.cMass2X, start, width), load(jt.normal.cMass2Y, start, width), load(jt.normal.cMass2Ang, start, width), deltaN)

	fProj1X, fProj1Y := load(jt.friction.nProj1X, start, width), load(jt.friction.nProj1Y, start, width)
	fProj2X, fProj2Y := load(jt.friction.nProj2X, start, width), load(jt.friction.nProj2Y, start, width)
	fAProj1, fAProj2 := load(jt.friction.aProj1, start, width), load(jt.friction.aProj2, start, width)
	fCInvMass := load(jt.friction.cInvMass, start, width)
	fAcc := load(jt.friction.accumulated, start, width)

	fDV := fProj1X.Mul(v1X).Add(fProj1Y.Mul(v1Y)).Add(fAProj1.Mul(w1)).
		Add(fProj2X.Mul(v2X)).Add(fProj2Y.Mul(v2Y)).Add(fAProj2.Mul(w2)).Neg()

	deltaF := fDV.Mul(fCInvMass)
	fAccCandidate := fAcc.Add(deltaF)
	bound := SplatVf(width, frictionCoefficient).Mul(nAccNew)

	overBound := fAccCandidate.Abs().Gt(bound)
	fAccClamped := bound.FlipSign(fAccCandidate)
	fAccNew := Select(fAccClamped, fAccCandidate, overBound)
	deltaF = fAccNew.Sub(fAcc)

	v1X, v1Y, w1 = applyAccumulated(v1X, v1Y, w1,
		load(jt.friction.cMass1X, start, width), load(jt.friction.cMass1Y, start, width), load(jt.friction.cMass1Ang, start, width), deltaF)
	v2X, v2Y, w2 = applyAccumulated(v2X, v2Y, w2,
		load(jt.friction.cMass2X, start, width), load(jt.friction.cMass2Y, start, width), load(jt.friction.cMass2Ang, start, width), deltaF)

	store(nAccNew, jt.normal.accumulated, start)
	store(fAccNew, jt.friction.accumulated, start)

	productiveMask := deltaN.Abs().Max(deltaF.Abs()).Gt(SplatVf(width, productiveImpulse))

	iterVal := SplatVi(width, int32(iterationIndex)).AsFloat()
	lastIter1F = Select(iterVal, lastIter1F, productiveMask)
	lastIter2F = Select(iterVal, lastIter2F, productiveMask)

	storeIndexed4(impulse.data, idx1, v1X, v1Y, w1, lastIter1F, solveBodyStride)
	storeIndexed4(impulse.data, idx2, v2X, v2Y, w2, lastIter2F, solveBodyStride)

	return Any(productiveMask)
}

func gtI(a, b Vi) Vb {
	r := newVb(a.Width())
	for i := range r.e {
		r.e[i] = a.e[i] > b.e[i]
	}
	return r
}
