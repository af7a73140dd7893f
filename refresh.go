package solver

// Tuning constants.
const (
	frictionCoefficient    = 0.3
	productiveImpulse      = 1e-4
	bounce                 = 0
	deltaVelocity          = 1.0
	maxPenetrationVelocity = 0.1
	deltaDepth             = 1.0
	errorReduction         = 0.1
)

// refresh recomputes both limiters (normal + friction) for every joint in
// [0, jointCount), running the grouped prefix [0, groupOffset) in
// width-wide blocks and the tail one joint at a time. It reads body params
// and contact points, and writes projectors, composite masses, and normal
// target velocities into the joint table.
func refresh(jt *jointTable, params solveBodyParamsTable, impulse solveBodyTable, contactPoints []ContactPoint, groupOffset, width int) {
	i := 0
	for ; i < groupOffset; i += width {
		refreshBlock(jt, params, impulse, contactPoints, i, width)
	}
	for ; i < jt.jointCount; i++ {
		refreshBlock(jt, params, impulse, contactPoints, i, 1)
	}
}

func refreshBlock(jt *jointTable, params solveBodyParamsTable, impulse solveBodyTable, contactPoints []ContactPoint, start, width int) {
	idx1 := loadI(jt.body1Index, start, width)
	idx2 := loadI(jt.body2Index, start, width)

	mInv1, iInv1, pos1X, pos1Y, _, _, _, _ := loadIndexed8(params.data, idx1, solveBodyParamsStride)
	mInv2, iInv2, pos2X, pos2Y, _, _, _, _ := loadIndexed8(params.data, idx2, solveBodyParamsStride)

	v1X, v1Y, w1vel, _ := loadIndexed4(impulse.data, idx1, solveBodyStride)
	v2X, v2Y, w2vel, _ := loadIndexed4(impulse.data, idx2, solveBodyStride)

	// Gather the per-joint contact data; contact points aren't laid out
	// SoA (they come straight from narrowphase), so this is a plain
	// scatter/gather loop rather than an indexed-load primitive.
	delta1X, delta1Y := newVf(width), newVf(width)
	delta2X, delta2Y := newVf(width), newVf(width)
	normalX, normalY := newVf(width), newVf(width)

	for k := 0; k < width; k++ {
		cp := contactPoints[jt.contactPointIndex[start+k]]
		delta1X.e[k], delta1Y.e[k] = cp.Delta1.X, cp.Delta1.Y
		delta2X.e[k], delta2Y.e[k] = cp.Delta2.X, cp.Delta2.Y
		normalX.e[k], normalY.e[k] = cp.Normal.X, cp.Normal.Y
	}

	// point1 = body1.pos + delta1; w1 = delta1.
	point1X := pos1X.Add(delta1X)
	point1Y := pos1Y.Add(delta1Y)
	w1X, w1Y := delta1X, delta1Y

	// w2 = point1 - body2.pos. The anchor is body1's; the reaction is
	// applied at that same world point on body2, an asymmetric arm kept
	// intentionally rather than replaced with the geometrically symmetric
	// (delta1, delta2) pair.
	w2X := point1X.Sub(pos2X)
	w2Y := point1Y.Sub(pos2Y)

	tangentX := normalY.Neg()
	tangentY := normalX

	nProj1X, nProj1Y, nProj2X, nProj2Y,
		nAProj1, nAProj2,
		nCMass1X, nCMass1Y, nCMass1Ang,
		nCMass2X, nCMass2Y, nCMass2Ang,
		nCInvMass := computeLimiter(normalX, normalY, normalX.Neg(), normalY.Neg(), w1X, w1Y, w2X, w2Y, mInv1, iInv1, mInv2, iInv2)

	store(nProj1X, jt.normal.nProj1X, start)
	store(nProj1Y, jt.normal.nProj1Y, start)
	store(nProj2X, jt.normal.nProj2X, start)
	store(nProj2Y, jt.normal.nProj2Y, start)
	store(nAProj1, jt.normal.aProj1, start)
	store(nAProj2, jt.normal.aProj2, start)
	store(nCMass1X, jt.normal.cMass1X, start)
	store(nCMass1Y, jt.normal.cMass1Y, start)
	store(nCMass1Ang, jt.normal.cMass1Ang, start)
	store(nCMass2X, jt.normal.cMass2X, start)
	store(nCMass2Y, jt.normal.cMass2Y, start)
	store(nCMass2Ang, jt.normal.cMass2Ang, start)
	store(nCInvMass, jt.normal.cInvMass, start)

	fProj1X, fProj1Y, fProj2X, fProj2Y,
		fAProj1, fAProj2,
		fCMass1X, fCMass1Y, fCMass1Ang,
		fCMass2X, fCMass2Y, fCMass2Ang,
		fCInvMass := computeLimiter(tangentX, tangentY, tangentX.Neg(), tangentY.Neg(), w1X, w1Y, w2X, w2Y, mInv1, iInv1, mInv2, iInv2)

	store(fProj1X, jt.friction.nProj1X, start)
	store(fProj1Y, jt.friction.nProj1Y, start)
	store(fProj2X, jt.friction.nProj2X, start)
	store(fProj2Y, jt.friction.nProj2Y, start)
	store(fAProj1, jt.friction.aProj1, start)
	store(fAProj2, jt.friction.aProj2, start)
	store(fCMass1X, jt.friction.cMass1X, start)
	store(fCMass1Y, jt.friction.cMass1Y, start)
	store(fCMass1Ang, jt.friction.cMass1Ang, start)
	store(fCMass2X, jt.friction.cMass2X, start)
	store(fCMass2Y, jt.friction.cMass2Y, start)
	store(fCMass2Ang, jt.friction.cMass2Ang, start)
	store(fCInvMass, jt.friction.cInvMass, start)

	// Normal target velocities: relative point-velocity, depth, and the
	// two target velocities derived from them.
	point2X := pos2X.Add(delta2X)
	point2Y := pos2Y.Add(delta2Y)

	relV1X, relV1Y := pointVel(v1X, v1Y, w1vel, pos1X, pos1Y, point1X, point1Y)
	relV2X, relV2Y := pointVel(v2X, v2Y, w2vel, pos2X, pos2Y, point2X, point2Y)
	relVX := relV1X.Sub(relV2X)
	relVY := relV1Y.Sub(relV2Y)

	dv := relVX.Mul(normalX).Add(relVY.Mul(normalY)).Mul(SplatVf(width, -bounce))

	depthX := point2X.Sub(point1X)
	depthY := point2Y.Sub(point1Y)
	depth := depthX.Mul(normalX).Add(depthY.Mul(normalY))

	dstVelRaw := dv.Sub(SplatVf(width, deltaVelocity)).Max(SplatVf(width, 0))
	shallow := depth.Lt(SplatVf(width, deltaDepth))
	dstVel := Select(dstVelRaw.Sub(SplatVf(width, maxPenetrationVelocity)), dstVelRaw, shallow)
	store(dstVel, jt.dstVelocity, start)

	dstDisp := SplatVf(width, errorReduction).Mul(depth.Sub(SplatVf(width, 2*deltaDepth)).Max(SplatVf(width, 0)))
	store(dstDisp, jt.dstDisplacingVelocity, start)

	// accumulatedDisplacing resets every frame; accumulated normal/friction
	// impulses are warm-start state and are never reset here.
	store(SplatVf(width, 0), jt.accumulatedDisplacing, start)
}

// pointVel returns b.v + (b.pos.y-p.y, p.x-b.pos.x)*b.w, the velocity of
// the material point p rigidly attached to a body with velocity (vx, vy)
// and angular velocity w centered at (posX, posY).
func pointVel(vx, vy, w, posX, posY, px, py Vf) (outX, outY Vf) {
	rx := posY.Sub(py)
	ry := px.Sub(posX)
	outX = vx.Add(rx.Mul(w))
	outY = vy.Add(ry.Mul(w))
	return
}

// computeLimiter implements the shared projector/composite-mass math for a
// direction pair (n1, n2) applied through arms (w1, w2).
func computeLimiter(n1X, n1Y, n2X, n2Y, w1X, w1Y, w2X, w2Y, mInv1, iInv1, mInv2, iInv2 Vf) (
	proj1X, proj1Y, proj2X, proj2Y,
	aProj1, aProj2,
	cMass1X, cMass1Y, cMass1Ang,
	cMass2X, cMass2Y, cMass2Ang,
	cInvMass Vf,
) {
	proj1X, proj1Y = n1X, n1Y
	proj2X, proj2Y = n2X, n2Y

	aProj1 = n1X.Mul(w1Y).Sub(n1Y.Mul(w1X))
	aProj2 = n2X.Mul(w2Y).Sub(n2Y.Mul(w2X))

	cMass1X = proj1X.Mul(mInv1)
	cMass1Y = proj1Y.Mul(mInv1)
	cMass1Ang = aProj1.Mul(iInv1)

	cMass2X = proj2X.Mul(mInv2)
	cMass2Y = proj2Y.Mul(mInv2)
	cMass2Ang = aProj2.Mul(iInv2)

	k := proj1X.Mul(cMass1X).Add(proj1Y.Mul(cMass1Y)).Add(aProj1.Mul(cMass1Ang))
	k = k.Add(proj2X.Mul(cMass2X)).Add(proj2Y.Mul(cMass2Y)).Add(aProj2.Mul(cMass2Ang))

	width := k.Width()
	nonzero := k.Abs().Gt(SplatVf(width, 0))
	cInvMass = Select(SplatVf(width, 1).Div(k), SplatVf(width, 0), nonzero)
	return
}
