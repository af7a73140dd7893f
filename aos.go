package solver

import "math"

// SolveAoS is a scalar array-of-structs solver carrying the exact same
// formulas as the SoA lane pipeline, implemented directly against Body and
// ContactJoint without any gather/scatter or lane type. It exists as an
// independent oracle for testing SolveScalar/SolveSIMD4/SolveSIMD8 against,
// not as a performance path.
func SolveAoS(bodies []Body, contactPoints []ContactPoint, joints []ContactJoint, contactIters, posIters int) float32 {
	type aosLimiter struct {
		proj1, proj2   Vector
		aProj1, aProj2 float32
		cMass1         Vector
		cMass1Ang      float32
		cMass2         Vector
		cMass2Ang      float32
		cInvMass       float32
	}

	n := len(joints)
	normal := make([]aosLimiter, n)
	friction := make([]aosLimiter, n)
	dstVelocity := make([]float32, n)
	dstDisplacingVelocity := make([]float32, n)
	accumulatedDisplacing := make([]float32, n)
	lastIteration := make([]int32, len(bodies))
	lastDisplacementIteration := make([]int32, len(bodies))
	for i := range lastIteration {
		lastIteration[i] = -1
		lastDisplacementIteration[i] = -1
	}

	computeLimiterAoS := func(n1, n2, w1, w2 Vector, mInv1, iInv1, mInv2, iInv2 float32) aosLimiter {
		l := aosLimiter{proj1: n1, proj2: n2}
		l.aProj1 = n1.X*w1.Y - n1.Y*w1.X
		l.aProj2 = n2.X*w2.Y - n2.Y*w2.X
		l.cMass1 = l.proj1.Mult(mInv1)
		l.cMass1Ang = l.aProj1 * iInv1
		l.cMass2 = l.proj2.Mult(mInv2)
		l.cMass2Ang = l.aProj2 * iInv2
		k := l.proj1.Dot(l.cMass1) + l.aProj1*l.cMass1Ang
		k += l.proj2.Dot(l.cMass2) + l.aProj2*l.cMass2Ang
		if math.Abs(float64(k)) > 0 {
			l.cInvMass = 1 / k
		}
		return l
	}

	pointVelAoS := func(b Body, p Vector) Vector {
		return b.V.Add(Vector{b.Pos.Y - p.Y, p.X - b.Pos.X}.Mult(b.W))
	}

	applyAccumulatedAoS := func(b *Body, l aosLimiter, isFirst bool, lambda float32) {
		if isFirst {
			b.V = b.V.Add(l.cMass1.Mult(lambda))
			b.W += l.cMass1Ang * lambda
		} else {
			b.V = b.V.Add(l.cMass2.Mult(lambda))
			b.W += l.cMass2Ang * lambda
		}
	}

	refreshAoS := func() {
		for i, j := range joints {
			b1, b2 := bodies[j.Body1Index], bodies[j.Body2Index]
			cp := contactPoints[j.ContactPointIndex]

			point1 := b1.Pos.Add(cp.Delta1)
			point2 := b2.Pos.Add(cp.Delta2)
			w1 := cp.Delta1
			w2 := point1.Sub(b2.Pos)

			normalDir := cp.Normal
			tangent := Vector{-normalDir.Y, normalDir.X}

			normal[i] = computeLimiterAoS(normalDir, normalDir.Neg(), w1, w2, b1.MInv, b1.IInv, b2.MInv, b2.IInv)
			friction[i] = computeLimiterAoS(tangent, tangent.Neg(), w1, w2, b1.MInv, b1.IInv, b2.MInv, b2.IInv)

			relV := pointVelAoS(b1, point1).Sub(pointVelAoS(b2, point2))
			dv := relV.Dot(normalDir) * -bounce
			depth := point2.Sub(point1).Dot(normalDir)

			dstVel := dv - deltaVelocity
			if dstVel < 0 {
				dstVel = 0
			}
			if depth < deltaDepth {
				dstVel -= maxPenetrationVelocity
			}
			dstVelocity[i] = dstVel

			dispTarget := depth - 2*deltaDepth
			if dispTarget < 0 {
				dispTarget = 0
			}
			dstDisplacingVelocity[i] = errorReduction * dispTarget

			accumulatedDisplacing[i] = 0
		}
	}

	preStepAoS := func() {
		for i, j := range joints {
			b1, b2 := &bodies[j.Body1Index], &bodies[j.Body2Index]
			applyAccumulatedAoS(b1, normal[i], true, j.Normal.Accumulated)
			applyAccumulatedAoS(b1, friction[i], true, j.Friction.Accumulated)
			applyAccumulatedAoS(b2, normal[i], false, j.Normal.Accumulated)
			applyAccumulatedAoS(b2, friction[i], false, j.Friction.Accumulated)
		}
	}

	impulseIterationAoS := func(iterationIndex int) bool {
		productive := false
		for i := range joints {
			j := &joints[i]
			b1, b2 := &bodies[j.Body1Index], &bodies[j.Body2Index]

			if lastIteration[j.Body1Index] <= int32(iterationIndex-2) && lastIteration[j.Body2Index] <= int32(iterationIndex-2) {
				continue
			}

			nl := normal[i]
			nDV := dstVelocity[i] - nl.proj1.Dot(b1.V) - nl.aProj1*b1.W - nl.proj2.Dot(b2.V) - nl.aProj2*b2.W
			deltaN := nDV * nl.cInvMass
			if deltaN < -j.Normal.Accumulated {
				deltaN = -j.Normal.Accumulated
			}
			j.Normal.Accumulated += deltaN
			applyAccumulatedAoS(b1, nl, true, deltaN)
			applyAccumulatedAoS(b2, nl, false, deltaN)

			fl := friction[i]
			fDV := -(fl.proj1.Dot(b1.V) + fl.aProj1*b1.W + fl.proj2.Dot(b2.V) + fl.aProj2*b2.W)
			deltaF := fDV * fl.cInvMass
			candidate := j.Friction.Accumulated + deltaF
			bound := frictionCoefficient * j.Normal.Accumulated
			if candidate > bound {
				candidate = bound
			} else if candidate < -bound {
				candidate = -bound
			}
			deltaF = candidate - j.Friction.Accumulated
			j.Friction.Accumulated = candidate
			applyAccumulatedAoS(b1, fl, true, deltaF)
			applyAccumulatedAoS(b2, fl, false, deltaF)

			absN, absF := deltaN, deltaF
			if absN < 0 {
				absN = -absN
			}
			if absF < 0 {
				absF = -absF
			}
			if absN > productiveImpulse || absF > productiveImpulse {
				lastIteration[j.Body1Index] = int32(iterationIndex)
				lastIteration[j.Body2Index] = int32(iterationIndex)
				productive = true
			}
		}
		return productive
	}

	displacementIterationAoS := func(iterationIndex int) bool {
		productive := false
		for i := range joints {
			j := &joints[i]
			b1, b2 := &bodies[j.Body1Index], &bodies[j.Body2Index]

			if lastDisplacementIteration[j.Body1Index] <= int32(iterationIndex-2) && lastDisplacementIteration[j.Body2Index] <= int32(iterationIndex-2) {
				continue
			}

			nl := normal[i]
			dv := dstDisplacingVelocity[i] - nl.proj1.Dot(b1.Vd) - nl.aProj1*b1.Wd - nl.proj2.Dot(b2.Vd) - nl.aProj2*b2.Wd
			delta := dv * nl.cInvMass
			if delta < -accumulatedDisplacing[i] {
				delta = -accumulatedDisplacing[i]
			}
			accumulatedDisplacing[i] += delta

			b1.Vd = b1.Vd.Add(nl.cMass1.Mult(delta))
			b1.Wd += nl.cMass1Ang * delta
			b2.Vd = b2.Vd.Add(nl.cMass2.Mult(delta))
			b2.Wd += nl.cMass2Ang * delta

			abs := delta
			if abs < 0 {
				abs = -abs
			}
			if abs > productiveImpulse {
				lastDisplacementIteration[j.Body1Index] = int32(iterationIndex)
				lastDisplacementIteration[j.Body2Index] = int32(iterationIndex)
				productive = true
			}
		}
		return productive
	}

	refreshAoS()
	preStepAoS()

	for i := 0; i < contactIters; i++ {
		if !impulseIterationAoS(i) {
			break
		}
	}
	for i := 0; i < posIters; i++ {
		if !displacementIterationAoS(i) {
			break
		}
	}

	for i := range joints {
		joints[i].Normal.AccumulatedDisplacing = accumulatedDisplacing[i]
	}

	if len(joints) == 0 {
		return 0
	}

	var sum float32
	for _, j := range joints {
		li := lastIteration[j.Body1Index]
		if lastIteration[j.Body2Index] > li {
			li = lastIteration[j.Body2Index]
		}
		sum += float32(li) + 2

		ld := lastDisplacementIteration[j.Body1Index]
		if lastDisplacementIteration[j.Body2Index] > ld {
			ld = lastDisplacementIteration[j.Body2Index]
		}
		sum += float32(ld) + 2
	}
	return sum / float32(len(joints))
}
