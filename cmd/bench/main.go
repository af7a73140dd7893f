package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	solver "github.com/kelmire/solver2d"
)

var (
	pairs        = flag.Int("pairs", 10000, "number of independent, disjoint contact pairs to generate")
	contactIters = flag.Int("contact-iters", 10, "velocity impulse iterations per solve")
	posIters     = flag.Int("pos-iters", 10, "displacement iterations per solve")
	frames       = flag.Int("frames", 200, "number of solve() calls to time")
	parallel     = flag.Bool("parallel-refresh", false, "run Refresh across a worker pool")
)

func randUnitCircle() solver.Vector {
	v := solver.Vector{X: rand.Float32()*2 - 1, Y: rand.Float32()*2 - 1}
	if v.LengthSq() < 1 {
		return v
	}
	return randUnitCircle()
}

// disjointPairs builds a scene of independent, never-touching-a-common-body
// contact pairs, the worst case for grouping work and the best case for
// wide SIMD lanes: every block in the grouped prefix is full.
func disjointPairs(n int) ([]solver.Body, []solver.ContactPoint, []solver.ContactJoint) {
	bodies := make([]solver.Body, n*2)
	contactPoints := make([]solver.ContactPoint, n)
	joints := make([]solver.ContactJoint, n)

	for i := 0; i < n; i++ {
		center := randUnitCircle().Mult(500)
		b1, b2 := 2*i, 2*i+1
		bodies[b1] = solver.Body{MInv: 1, IInv: 1, Pos: center.Add(solver.Vector{X: -1})}
		bodies[b2] = solver.Body{MInv: 1, IInv: 1, Pos: center.Add(solver.Vector{X: 1})}
		contactPoints[i] = solver.ContactPoint{
			Delta1: solver.Vector{X: 1}, Delta2: solver.Vector{X: -1}, Normal: solver.Vector{X: 1},
		}
		joints[i] = solver.ContactJoint{Body1Index: b1, Body2Index: b2, ContactPointIndex: i}
	}
	return bodies, contactPoints, joints
}

func run(name string, solve func([]solver.Body, []solver.ContactPoint, []solver.ContactJoint, int, int) float32) {
	bodies, contactPoints, joints := disjointPairs(*pairs)

	start := time.Now()
	var metric float32
	for f := 0; f < *frames; f++ {
		metric = solve(bodies, contactPoints, joints, *contactIters, *posIters)
	}
	elapsed := time.Since(start)

	fmt.Printf("%-12s pairs=%-7d frames=%-5d total=%-10s per-frame=%-10s iterationMetric=%.3f\n",
		name, *pairs, *frames, elapsed, elapsed/time.Duration(*frames), metric)
}

func main() {
	flag.Parse()

	if *parallel {
		log.Println("parallel refresh enabled, timing SIMD8 through Solver.Solve directly")
		bodies, contactPoints, joints := disjointPairs(*pairs)
		s := solver.NewSolver(8)
		start := time.Now()
		var metric float32
		for f := 0; f < *frames; f++ {
			metric = s.Solve(bodies, contactPoints, joints, *contactIters, *posIters, solver.SolveOptions{ParallelRefresh: true})
		}
		elapsed := time.Since(start)
		fmt.Printf("%-12s pairs=%-7d frames=%-5d total=%-10s per-frame=%-10s iterationMetric=%.3f\n",
			"simd8+par", *pairs, *frames, elapsed, elapsed/time.Duration(*frames), metric)
		return
	}

	run("scalar", solver.SolveScalar)
	run("simd4", solver.SolveSIMD4)
	run("simd8", solver.SolveSIMD8)
}
