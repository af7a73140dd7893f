package solver

// Body is the external, integrator-owned rigid body record consumed and
// produced by Solve*. The solver reads mass/inertia/transform/velocity in
// Prepare and writes velocity and displacing-velocity back in Finish; it
// never touches Pos, Xv or Yv.
//
// Xv, Yv are the body's world-space basis vectors (the columns of its
// rotation matrix); the solver only reads them, it never advances
// orientation; that is the integrator's job and stays outside this package.
type Body struct {
	MInv float32
	IInv float32

	Pos Vector
	Xv  Vector
	Yv  Vector

	V Vector
	W float32

	Vd Vector
	Wd float32
}

// ContactPoint is produced by narrowphase collision (out of scope) and
// consumed read-only by the solver.
type ContactPoint struct {
	// Delta1, Delta2 are offsets from each body's center of mass to the
	// contact point, in world space.
	Delta1 Vector
	Delta2 Vector

	// Normal is unit world-space, pointing from body2 into body1.
	Normal Vector

	// IsNewlyCreated is supplied by the collision pipeline; the solver
	// never reads it.
	IsNewlyCreated bool
}

// NormalImpulse holds the accumulated impulse for a contact's non-penetration
// limiter, persisted across frames on the owning ContactJoint for warm
// starting.
type NormalImpulse struct {
	Accumulated           float32
	AccumulatedDisplacing float32
}

// FrictionImpulse holds the accumulated impulse for a contact's tangent
// friction limiter.
type FrictionImpulse struct {
	Accumulated float32
}

// ContactJoint is the persistent per-contact-point record the caller owns
// across frames. Body1Index/Body2Index/ContactPointIndex are indices into
// the caller's bodies/contactPoints slices passed to Solve*; there are no
// back-pointers, since the integer form is what the wide gather/scatter
// primitives in lane.go need.
type ContactJoint struct {
	Body1Index        int
	Body2Index        int
	ContactPointIndex int

	Normal   NormalImpulse
	Friction FrictionImpulse
}
