package main

import (
	"log"
	"runtime"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	solver "github.com/kelmire/solver2d"
)

const (
	width  = 640
	height = 480

	gravity      = -200
	dt           = 1.0 / 60
	contactIters = 10
	posIters     = 10

	groundY      = -200
	circleRadius = 14
)

func init() {
	runtime.LockOSThread()
}

// scene is the demo's tiny stand-in for the broadphase/narrowphase the core
// solver treats as an external collaborator: every frame it rebuilds the
// contact list from scratch by checking the stacked circles against each
// other and against the ground line.
type scene struct {
	bodies        []solver.Body
	contactPoints []solver.ContactPoint
	joints        []solver.ContactJoint

	groundBody int
}

func newPyramidScene(rows int) *scene {
	s := &scene{groundBody: 0}
	s.bodies = append(s.bodies, solver.Body{Pos: solver.Vector{X: 0, Y: groundY}})

	for row := 0; row < rows; row++ {
		for col := 0; col <= row; col++ {
			x := float32(col)*circleRadius*2.2 - float32(row)*circleRadius*1.1
			y := groundY + circleRadius + float32(rows-row)*circleRadius*2.2
			mass := circleRadius * circleRadius / 200
			moment := 0.5 * mass * circleRadius * circleRadius
			s.bodies = append(s.bodies, solver.Body{
				MInv: 1 / mass,
				IInv: 1 / moment,
				Pos:  solver.Vector{X: x, Y: y},
			})
		}
	}
	return s
}

// refreshContacts rebuilds contactPoints/joints for this frame. A circle
// pair becomes a contact whenever their centers are closer than the sum of
// their radii (with some slop); the ground is treated as an infinite-mass
// circle-like segment contacted from above.
func (s *scene) refreshContacts() {
	s.contactPoints = s.contactPoints[:0]
	s.joints = s.joints[:0]

	const slop = 2.0

	for i := 1; i < len(s.bodies); i++ {
		bi := s.bodies[i]
		if bi.Pos.Y-circleRadius < groundY+slop {
			// Normal points from body2 (the circle) into body1 (the ground).
			normal := solver.Vector{X: 0, Y: -1}
			s.contactPoints = append(s.contactPoints, solver.ContactPoint{
				Delta1: solver.Vector{X: bi.Pos.X - s.bodies[s.groundBody].Pos.X},
				Delta2: normal.Mult(circleRadius),
				Normal: normal,
			})
			s.joints = append(s.joints, solver.ContactJoint{
				Body1Index: s.groundBody, Body2Index: i, ContactPointIndex: len(s.contactPoints) - 1,
			})
		}

		for j := i + 1; j < len(s.bodies); j++ {
			bj := s.bodies[j]
			delta := bj.Pos.Sub(bi.Pos)
			dist := delta.Length()
			if dist >= 2*circleRadius+slop || dist == 0 {
				continue
			}
			// Normal points from body2 (circle j) into body1 (circle i).
			normal := delta.Mult(-1 / dist)
			s.contactPoints = append(s.contactPoints, solver.ContactPoint{
				Delta1: normal.Mult(-circleRadius),
				Delta2: normal.Mult(circleRadius),
				Normal: normal,
			})
			s.joints = append(s.joints, solver.ContactJoint{
				Body1Index: i, Body2Index: j, ContactPointIndex: len(s.contactPoints) - 1,
			})
		}
	}
}

func (s *scene) step() {
	for i := 1; i < len(s.bodies); i++ {
		s.bodies[i].V.Y += gravity * dt
		s.bodies[i].Vd = solver.Vector{}
		s.bodies[i].Wd = 0
	}

	s.refreshContacts()
	solver.SolveScalar(s.bodies, s.contactPoints, s.joints, contactIters, posIters)

	for i := 1; i < len(s.bodies); i++ {
		b := &s.bodies[i]
		b.Pos = b.Pos.Add(b.V.Add(b.Vd).Mult(dt))
	}
}

func main() {
	if err := glfw.Init(); err != nil {
		log.Fatal(err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	window, err := glfw.CreateWindow(width, height, "solver2d pyramid stack", nil, nil)
	if err != nil {
		log.Fatal(err)
	}
	defer window.Destroy()
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		log.Fatal(err)
	}

	drawInit()

	gl.ClearColor(52.0/255, 62.0/255, 72.0/255, 1)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.ONE, gl.ONE_MINUS_SRC_ALPHA)

	wi, hi := window.GetFramebufferSize()
	gl.Viewport(0, 0, int32(wi), int32(hi))
	proj := mgl32.Ortho2D(-width/2, width/2, -height/2, height/2)
	gl.MatrixMode(gl.PROJECTION)
	gl.LoadMatrixf(&proj[0])

	window.SetCharCallback(func(w *glfw.Window, char rune) {
		if char == 'q' {
			w.SetShouldClose(true)
		}
	})

	s := newPyramidScene(10)

	for !window.ShouldClose() {
		s.step()

		gl.Clear(gl.COLOR_BUFFER_BIT)
		gl.MatrixMode(gl.MODELVIEW)
		gl.LoadIdentity()

		clearRenderer()
		drawSegment(solver.Vector{X: -width / 2, Y: groundY}, solver.Vector{X: width / 2, Y: groundY}, fColor{R: 1, G: 1, B: 1, A: 1})
		for i := 1; i < len(s.bodies); i++ {
			drawCircle(s.bodies[i].Pos, circleRadius, fColor{R: 0.9, G: 0.6, B: 0.2, A: 1})
		}
		flushRenderer()

		window.SwapBuffers()
		glfw.PollEvents()
	}
}
