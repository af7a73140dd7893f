package solver

import (
	"math"
	"testing"
)

func headOnScene() ([]Body, []ContactPoint, []ContactJoint) {
	bodies := []Body{
		{MInv: 1, IInv: 0, Pos: Vector{-1, 0}, V: Vector{1, 0}},
		{MInv: 1, IInv: 0, Pos: Vector{1, 0}, V: Vector{-1, 0}},
	}
	contactPoints := []ContactPoint{
		{Delta1: Vector{1, 0}, Delta2: Vector{-1, 0}, Normal: Vector{1, 0}},
	}
	joints := []ContactJoint{
		{Body1Index: 0, Body2Index: 1, ContactPointIndex: 0},
	}
	return bodies, contactPoints, joints
}

func restingStackScene(n int) ([]Body, []ContactPoint, []ContactJoint) {
	bodies := make([]Body, n)
	for i := range bodies {
		bodies[i] = Body{MInv: 1, IInv: 1, Pos: Vector{0, float32(i) * 2}}
	}
	bodies[0].MInv = 0
	bodies[0].IInv = 0

	contactPoints := make([]ContactPoint, n-1)
	joints := make([]ContactJoint, n-1)
	for i := 0; i < n-1; i++ {
		contactPoints[i] = ContactPoint{Delta1: Vector{0, 1}, Delta2: Vector{0, -1}, Normal: Vector{0, 1}}
		joints[i] = ContactJoint{Body1Index: i, Body2Index: i + 1, ContactPointIndex: i}
	}
	return bodies, contactPoints, joints
}

func disjointPairsScene(pairs int) ([]Body, []ContactPoint, []ContactJoint) {
	bodies := make([]Body, pairs*2)
	contactPoints := make([]ContactPoint, pairs)
	joints := make([]ContactJoint, pairs)
	for i := 0; i < pairs; i++ {
		b1, b2 := 2*i, 2*i+1
		bodies[b1] = Body{MInv: 1, IInv: 1, Pos: Vector{-1, float32(i)}, V: Vector{1, 0}}
		bodies[b2] = Body{MInv: 1, IInv: 1, Pos: Vector{1, float32(i)}, V: Vector{-1, 0}}
		contactPoints[i] = ContactPoint{Delta1: Vector{1, 0}, Delta2: Vector{-1, 0}, Normal: Vector{1, 0}}
		joints[i] = ContactJoint{Body1Index: b1, Body2Index: b2, ContactPointIndex: i}
	}
	return bodies, contactPoints, joints
}

func TestSolve_FrictionConeAndNonTensile(t *testing.T) {
	const mu = frictionCoefficient
	const delta = 1e-5

	bodies, contactPoints, joints := restingStackScene(6)
	SolveScalar(bodies, contactPoints, joints, 20, 10)

	for _, j := range joints {
		if j.Normal.Accumulated < 0 {
			t.Errorf("normal.Accumulated = %v, must be non-negative", j.Normal.Accumulated)
		}
		bound := mu*j.Normal.Accumulated + delta
		if math.Abs(float64(j.Friction.Accumulated)) > float64(bound) {
			t.Errorf("friction.Accumulated = %v exceeds cone bound %v", j.Friction.Accumulated, bound)
		}
	}
}

func TestSolve_SlidingContactRespectsFrictionCone(t *testing.T) {
	const mu = frictionCoefficient
	const delta = 1e-5

	bodies := []Body{
		{MInv: 0, IInv: 0, Pos: Vector{0, -1}},
		{MInv: 1, IInv: 1, Pos: Vector{0, 0}, V: Vector{5, 0}},
	}
	contactPoints := []ContactPoint{
		{Delta1: Vector{0, 1}, Delta2: Vector{0, -1}, Normal: Vector{0, 1}},
	}
	joints := []ContactJoint{{
		Body1Index: 0, Body2Index: 1, ContactPointIndex: 0,
		Normal: NormalImpulse{Accumulated: 5},
	}}

	SolveScalar(bodies, contactPoints, joints, 20, 10)

	bound := mu*joints[0].Normal.Accumulated + delta
	if math.Abs(float64(joints[0].Friction.Accumulated)) > float64(bound) {
		t.Errorf("friction.Accumulated = %v exceeds cone bound %v for a sliding contact", joints[0].Friction.Accumulated, bound)
	}
}

func TestSolve_EmptyJointListMetricIsZero(t *testing.T) {
	bodies := []Body{{MInv: 1}}
	metric := SolveScalar(bodies, nil, nil, 10, 10)
	if metric != 0 {
		t.Errorf("metric for empty joint list = %v, want 0", metric)
	}
}

func TestSolve_WarmStartMonotoneConvergence(t *testing.T) {
	bodies, contactPoints, joints := restingStackScene(8)
	first := SolveScalar(bodies, contactPoints, joints, 20, 10)

	for i := range bodies {
		bodies[i].V = Vector{}
		bodies[i].W = 0
	}
	second := SolveScalar(bodies, contactPoints, joints, 20, 10)

	if second > first {
		t.Errorf("second solve's iteration metric %v exceeds the first's %v", second, first)
	}
}

func TestSolve_LaneWidthsAgreeWithAoSOracle(t *testing.T) {
	scenes := map[string]func() ([]Body, []ContactPoint, []ContactJoint){
		"headOn":   headOnScene,
		"stack":    func() ([]Body, []ContactPoint, []ContactJoint) { return restingStackScene(9) },
		"disjoint": func() ([]Body, []ContactPoint, []ContactJoint) { return disjointPairsScene(11) },
	}

	for name, build := range scenes {
		bodiesRef, contactPoints, joints := build()
		jointsRef := append([]ContactJoint(nil), joints...)
		SolveAoS(bodiesRef, contactPoints, jointsRef, 10, 10)

		for _, width := range []int{1, 4, 8} {
			bodies, _, jointsCopy := build()
			jointsCopy = append([]ContactJoint(nil), jointsCopy...)

			var metric float32
			switch width {
			case 1:
				metric = SolveScalar(bodies, contactPoints, jointsCopy, 10, 10)
			case 4:
				metric = SolveSIMD4(bodies, contactPoints, jointsCopy, 10, 10)
			case 8:
				metric = SolveSIMD8(bodies, contactPoints, jointsCopy, 10, 10)
			}
			_ = metric

			for i := range bodies {
				if math.Abs(float64(bodies[i].V.X-bodiesRef[i].V.X)) > 1e-3 ||
					math.Abs(float64(bodies[i].V.Y-bodiesRef[i].V.Y)) > 1e-3 {
					t.Errorf("%s width %d: body %d velocity %v diverges from AoS oracle %v", name, width, i, bodies[i].V, bodiesRef[i].V)
				}
			}
		}
	}
}

func TestSolve_PenetrationCorrectionStaysFiniteAndNonTensile(t *testing.T) {
	bodies := []Body{
		{MInv: 1, IInv: 0, Pos: Vector{0, 0}},
		{MInv: 1, IInv: 0, Pos: Vector{0, 1.5}},
	}
	contactPoints := []ContactPoint{
		{Delta1: Vector{0, 1}, Delta2: Vector{0, -0.7}, Normal: Vector{0, 1}},
	}
	joints := []ContactJoint{{Body1Index: 0, Body2Index: 1, ContactPointIndex: 0}}

	SolveScalar(bodies, contactPoints, joints, 10, 10)

	if bodies[1].Wd != 0 {
		t.Errorf("expected zero angular displacement velocity with IInv=0, got %v", bodies[1].Wd)
	}
	if joints[0].Normal.AccumulatedDisplacing < 0 {
		t.Errorf("accumulatedDisplacing = %v, must be non-negative", joints[0].Normal.AccumulatedDisplacing)
	}
	if math.IsNaN(float64(bodies[1].Vd.Y)) || math.IsInf(float64(bodies[1].Vd.Y), 0) {
		t.Errorf("displacement velocity is not finite: %v", bodies[1].Vd.Y)
	}
}

func TestSolve_LargeDisjointSetGroupsInOnePass(t *testing.T) {
	bodies, _, joints := disjointPairsScene(10000)
	jointIndex := make([]int32, len(joints))
	offset := group(joints, len(bodies), 8, jointIndex)
	if offset != len(joints) {
		t.Errorf("groupOffset = %d, want %d (every joint disjoint, should all land in the grouped prefix)", offset, len(joints))
	}
}

func TestSolve_FinishIsIdempotentOnAlreadySolvedState(t *testing.T) {
	bodies, contactPoints, joints := restingStackScene(5)
	SolveScalar(bodies, contactPoints, joints, 20, 10)

	snapshot := append([]ContactJoint(nil), joints...)
	velocityBeforeRewarm := make([]Vector, len(bodies))
	for i := range bodies {
		velocityBeforeRewarm[i] = bodies[i].V
	}

	// Zero iterations: PreStep still re-applies the warm-start impulses,
	// but with no impulse/displacement iteration to adjust them, the
	// accumulators themselves must come back exactly as they went in.
	SolveScalar(bodies, contactPoints, joints, 0, 0)
	for i := range joints {
		if joints[i].Normal.Accumulated != snapshot[i].Normal.Accumulated {
			t.Errorf("joint %d normal.Accumulated changed on a zero-iteration re-solve: %v -> %v", i, snapshot[i].Normal.Accumulated, joints[i].Normal.Accumulated)
		}
		if joints[i].Friction.Accumulated != snapshot[i].Friction.Accumulated {
			t.Errorf("joint %d friction.Accumulated changed on a zero-iteration re-solve: %v -> %v", i, snapshot[i].Friction.Accumulated, joints[i].Friction.Accumulated)
		}
	}

	// PreStep's velocity delta is a linear function of the accumulated
	// impulses it's handed; negating them and re-running PreStep must
	// cancel that delta exactly, landing back on the velocity from
	// before this re-warm-start.
	for i := range joints {
		joints[i].Normal.Accumulated = -joints[i].Normal.Accumulated
		joints[i].Friction.Accumulated = -joints[i].Friction.Accumulated
	}
	SolveScalar(bodies, contactPoints, joints, 0, 0)
	for i := range bodies {
		if math.Abs(float64(bodies[i].V.X-velocityBeforeRewarm[i].X)) > 1e-3 ||
			math.Abs(float64(bodies[i].V.Y-velocityBeforeRewarm[i].Y)) > 1e-3 {
			t.Errorf("body %d velocity %v did not reverse back to %v after negating the accumulated impulses and re-running PreStep", i, bodies[i].V, velocityBeforeRewarm[i])
		}
	}
}
