package main

import (
	"unsafe"

	"github.com/go-gl/gl/v2.1/gl"

	solver "github.com/kelmire/solver2d"
)

const drawPointLineScale = 1

type fColor struct {
	R, G, B, A float32
}

type v2f struct{ x, y float32 }

func toV2f(v solver.Vector) v2f { return v2f{v.X, v.Y} }

// vertex mirrors the 32-byte interleaved layout the vertex shader expects:
// position, an antialiasing coordinate in [-1,1]^2, and a fill color.
type vertex struct {
	pos, aaCoord v2f
	fill         fColor
}

type triangle struct{ a, b, c vertex }

var (
	program       uint32
	vao, vbo      uint32
	triangleStack []triangle
)

func drawInit() {
	vshader := compileShader(gl.VERTEX_SHADER, `
		attribute vec2 vertex;
		attribute vec2 aa_coord;
		attribute vec4 fill_color;

		varying vec2 v_aa_coord;
		varying vec4 v_fill_color;

		void main(void) {
			gl_Position = gl_ModelViewProjectionMatrix * vec4(vertex, 0.0, 1.0);
			v_aa_coord = aa_coord;
			v_fill_color = fill_color;
		}
	`)

	fshader := compileShader(gl.FRAGMENT_SHADER, `
		varying vec2 v_aa_coord;
		varying vec4 v_fill_color;

		void main(void) {
			float l = length(v_aa_coord);
			float fw = length(fwidth(v_aa_coord));
			float alpha = 1.0 - smoothstep(1.0 - fw, 1.0, l);
			gl_FragColor = v_fill_color * alpha;
		}
	`)

	program = linkProgram(vshader, fshader)
	checkGLErrors()

	gl.GenVertexArraysAPPLE(1, &vao)
	gl.BindVertexArrayAPPLE(vao)
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)

	var v vertex
	stride := int32(unsafe.Sizeof(v))
	setAttribute(program, "vertex", 2, stride, 0)
	setAttribute(program, "aa_coord", 2, stride, 8)
	setAttribute(program, "fill_color", 4, stride, 16)

	gl.BindVertexArrayAPPLE(0)
	checkGLErrors()
}

func setAttribute(program uint32, name string, size int32, stride int32, offset int) {
	index := uint32(gl.GetAttribLocation(program, gl.Str(name+"\x00")))
	gl.EnableVertexAttribArray(index)
	gl.VertexAttribPointer(index, size, gl.FLOAT, false, stride, gl.PtrOffset(offset))
}

func drawCircle(pos solver.Vector, radius float32, fill fColor) {
	r := radius + 1/drawPointLineScale
	a := vertex{v2f{pos.X - r, pos.Y - r}, v2f{-1, -1}, fill}
	b := vertex{v2f{pos.X - r, pos.Y + r}, v2f{-1, 1}, fill}
	c := vertex{v2f{pos.X + r, pos.Y + r}, v2f{1, 1}, fill}
	d := vertex{v2f{pos.X + r, pos.Y - r}, v2f{1, -1}, fill}

	triangleStack = append(triangleStack, triangle{a, b, c}, triangle{a, c, d})
}

func drawSegment(a, b solver.Vector, fill fColor) {
	// a flat quad along the segment, no end caps; good enough for a ground line.
	n := solver.Vector{X: -(b.Y - a.Y), Y: b.X - a.X}.Normalize().Mult(1 / drawPointLineScale)
	v0 := toV2f(a.Sub(n))
	v1 := toV2f(a.Add(n))
	v2 := toV2f(b.Add(n))
	v3 := toV2f(b.Sub(n))

	triangleStack = append(triangleStack,
		triangle{vertex{v0, v2f{}, fill}, vertex{v1, v2f{}, fill}, vertex{v2, v2f{}, fill}},
		triangle{vertex{v0, v2f{}, fill}, vertex{v2, v2f{}, fill}, vertex{v3, v2f{}, fill}},
	)
}

func flushRenderer() {
	checkGLErrors()
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	size := len(triangleStack) * int(unsafe.Sizeof(triangle{}))
	gl.BufferData(gl.ARRAY_BUFFER, size, gl.Ptr(triangleStack), gl.STREAM_DRAW)

	gl.UseProgram(program)
	gl.BindVertexArrayAPPLE(vao)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(triangleStack)*3))
}

func clearRenderer() {
	triangleStack = triangleStack[:0]
}
