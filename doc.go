// Package solver implements a sequential-impulses Gauss-Seidel contact
// solver for 2D rigid bodies: preparation and finalization of
// structure-of-arrays body and joint tables, joint-to-lane grouping,
// per-joint limiter refresh, warm-start pre-step, velocity impulse
// iteration, and penetration displacement iteration.
//
// The package does not do broadphase or narrowphase collision detection,
// does not integrate body positions, and does not render anything; those
// are the caller's job. SolveScalar, SolveSIMD4, and SolveSIMD8 are the
// three entry points, differing only in how many joints are processed per
// lane block.
package solver
