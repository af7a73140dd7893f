package solver

import "math"

func float32fromBits(i int32) float32 {
	return math.Float32frombits(uint32(i))
}

func int32bitsFromFloat(f float32) int32 {
	return int32(math.Float32bits(f))
}

// solveBodyStride is the number of float32 slots per body record in the
// impulse and displacement solveBodyTables: (v.X, v.Y, w, lastIteration-as-bits).
const solveBodyStride = 4

// solveBodyParamsStride is the number of float32 slots per body in
// solveBodyParamsTable: mInv, iInv, pos.x, pos.y, xv.x, xv.y, yv.x, yv.y.
const solveBodyParamsStride = 8

// solveBodyTable is a flat array-of-4-floats per body, the shared shape for
// the impulse and displacement tables. The fourth float is a velocity/
// angular-velocity pair's "lastIteration" counter stored as a bit pattern so
// the whole record can go through one indexed gather/scatter.
type solveBodyTable struct {
	data []float32
}

func newSolveBodyTable(bodyCount int) solveBodyTable {
	return solveBodyTable{data: make([]float32, bodyCount*solveBodyStride)}
}

func (t solveBodyTable) set(i int, vx, vy, w float32, lastIteration int32) {
	base := i * solveBodyStride
	t.data[base+0] = vx
	t.data[base+1] = vy
	t.data[base+2] = w
	t.data[base+3] = float32fromBits(lastIteration)
}

func (t solveBodyTable) get(i int) (vx, vy, w float32, lastIteration int32) {
	base := i * solveBodyStride
	return t.data[base+0], t.data[base+1], t.data[base+2], int32bitsFromFloat(t.data[base+3])
}

// solveBodyParamsTable is the read-only per-body record gathered in Refresh.
type solveBodyParamsTable struct {
	data []float32
}

func newSolveBodyParamsTable(bodyCount int) solveBodyParamsTable {
	return solveBodyParamsTable{data: make([]float32, bodyCount*solveBodyParamsStride)}
}

func (t solveBodyParamsTable) set(i int, mInv, iInv float32, pos, xv, yv Vector) {
	base := i * solveBodyParamsStride
	t.data[base+0] = mInv
	t.data[base+1] = iInv
	t.data[base+2] = pos.X
	t.data[base+3] = pos.Y
	t.data[base+4] = xv.X
	t.data[base+5] = xv.Y
	t.data[base+6] = yv.X
	t.data[base+7] = yv.Y
}

// limiterTable is the packed SoA representation of one limiter (normal or
// friction) across a joint table: every field is a flat length-jointCount
// array. A lane block is a contiguous [i, i+width) window into these
// arrays, which is also how the scalar tail reuses the exact same storage
// with width 1.
type limiterTable struct {
	nProj1X, nProj1Y []float32
	nProj2X, nProj2Y []float32
	aProj1, aProj2   []float32

	cMass1X, cMass1Y, cMass1Ang []float32
	cMass2X, cMass2Y, cMass2Ang []float32

	cInvMass    []float32
	accumulated []float32
}

func newLimiterTable(n int) limiterTable {
	mk := func() []float32 { return make([]float32, n) }
	return limiterTable{
		nProj1X: mk(), nProj1Y: mk(),
		nProj2X: mk(), nProj2Y: mk(),
		aProj1: mk(), aProj2: mk(),
		cMass1X: mk(), cMass1Y: mk(), cMass1Ang: mk(),
		cMass2X: mk(), cMass2Y: mk(), cMass2Ang: mk(),
		cInvMass:    mk(),
		accumulated: mk(),
	}
}

// jointTable holds one joint per slot across flat SoA arrays of length
// jointCount rather than an array of N-wide structs: a lane block is simply
// a slice window, so the grouped prefix (width N) and the scalar tail
// (width 1) address the very same backing arrays.
type jointTable struct {
	jointCount int

	body1Index        []int32
	body2Index        []int32
	contactPointIndex []int32

	normal   limiterTable
	friction limiterTable

	// Normal-only extra fields.
	dstVelocity           []float32
	dstDisplacingVelocity []float32
	accumulatedDisplacing []float32
}

func newJointTable(jointCount int) *jointTable {
	return &jointTable{
		jointCount:        jointCount,
		body1Index:        make([]int32, jointCount),
		body2Index:        make([]int32, jointCount),
		contactPointIndex: make([]int32, jointCount),
		normal:            newLimiterTable(jointCount),
		friction:          newLimiterTable(jointCount),

		dstVelocity:           make([]float32, jointCount),
		dstDisplacingVelocity: make([]float32, jointCount),
		accumulatedDisplacing: make([]float32, jointCount),
	}
}
