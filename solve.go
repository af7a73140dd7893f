package solver

// SolveOptions controls optional behavior of a solve call beyond the
// tuning constants. The zero value runs every Refresh block on the
// calling goroutine.
type SolveOptions struct {
	// ParallelRefresh runs the grouped-prefix portion of Refresh across a
	// worker pool sized by GOMAXPROCS instead of on the calling goroutine.
	// Prepare, PreStep, the impulse loop, and the displacement loop stay
	// single-threaded: Gauss-Seidel is inherently sequential along the
	// joint order, but Refresh's per-joint work has no cross-joint
	// dependency and can be farmed out safely.
	ParallelRefresh bool
}

// Solver runs repeated solve calls at a fixed lane width. It keeps the
// most recent solveContext around for inspection after Solve returns, but
// each call to Solve builds its tables fresh from the caller's current
// bodies and joints.
type Solver struct {
	width int
	ctx   *solveContext
}

// NewSolver returns a Solver that will solve with the given lane width (1,
// 4, or 8).
func NewSolver(width int) *Solver {
	assert(width == 1 || width == 4 || width == 8, "solver: unsupported lane width ", width)
	return &Solver{width: width}
}

// Solve runs one full prepare/group/refresh/prestep/iterate/finish pass and
// returns the diagnostic iteration-count metric.
func (s *Solver) Solve(bodies []Body, contactPoints []ContactPoint, joints []ContactJoint, contactIters, posIters int, opts SolveOptions) float32 {
	ctx := prepare(bodies, joints, s.width)
	s.ctx = ctx

	if opts.ParallelRefresh {
		refreshParallel(ctx.joints, ctx.params, ctx.impulse, contactPoints, ctx.groupOffset, ctx.width)
	} else {
		refresh(ctx.joints, ctx.params, ctx.impulse, contactPoints, ctx.groupOffset, ctx.width)
	}

	preStep(ctx.joints, ctx.impulse, ctx.groupOffset, ctx.width)

	for i := 0; i < contactIters; i++ {
		if !solveImpulses(ctx.joints, ctx.impulse, ctx.groupOffset, ctx.width, i) {
			break
		}
	}

	for i := 0; i < posIters; i++ {
		if !solveDisplacements(ctx.joints, ctx.displacement, ctx.groupOffset, ctx.width, i) {
			break
		}
	}

	return finish(ctx, bodies, joints)
}

// SolveScalar runs the width-1 solver: every joint processed one at a time,
// no SIMD grouping. Semantically identical to SolveSIMD4/SolveSIMD8 modulo
// floating-point reassociation.
func SolveScalar(bodies []Body, contactPoints []ContactPoint, joints []ContactJoint, contactIters, posIters int) float32 {
	return NewSolver(1).Solve(bodies, contactPoints, joints, contactIters, posIters, SolveOptions{})
}

// SolveSIMD4 runs the width-4 solver: joints are grouped into 4-wide
// disjoint-body blocks before iterating.
func SolveSIMD4(bodies []Body, contactPoints []ContactPoint, joints []ContactJoint, contactIters, posIters int) float32 {
	return NewSolver(4).Solve(bodies, contactPoints, joints, contactIters, posIters, SolveOptions{})
}

// SolveSIMD8 runs the width-8 solver: joints are grouped into 8-wide
// disjoint-body blocks before iterating.
func SolveSIMD8(bodies []Body, contactPoints []ContactPoint, joints []ContactJoint, contactIters, posIters int) float32 {
	return NewSolver(8).Solve(bodies, contactPoints, joints, contactIters, posIters, SolveOptions{})
}
