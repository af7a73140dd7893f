package main

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v2.1/gl"
)

func checkGLErrors() {
	for err := gl.GetError(); err != 0; err = gl.GetError() {
		panic(fmt.Sprint("gl error ", err))
	}
}

func compileShader(typ uint32, source string) uint32 {
	shader := gl.CreateShader(typ)
	csource := gl.Str(source + "\x00")
	gl.ShaderSource(shader, 1, &csource, nil)
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		panic("shader compile error: " + log)
	}
	return shader
}

func linkProgram(vshader, fshader uint32) uint32 {
	program := gl.CreateProgram()
	gl.AttachShader(program, vshader)
	gl.AttachShader(program, fshader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		panic("shader link error")
	}
	return program
}
