package render

import (
	"strings"
	"sync"

	"github.com/go-gl/gl/v3.3-core/gl"
)

var initOnce sync.Once
var initErr error

// initGL loads the OpenGL function pointers. Must run after the window (and
// with it the GL context) exists, so it is deferred to the first pipeline
// constructor instead of an init function.
func initGL() error {
	initOnce.Do(func() {
		initErr = gl.Init()
	})
	return initErr
}

func compileShader(kind uint32, source, name string) (uint32, error) {
	shader := gl.CreateShader(kind)
	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, &PassError{Pass: name, Detail: strings.TrimRight(log, "\x00"), Wrapped: ErrShaderCompile}
	}
	return shader, nil
}

func createProgram(fragmentSource, name string) (uint32, error) {
	vShader, err := compileShader(gl.VERTEX_SHADER, quadVertexShader, name)
	if err != nil {
		return 0, err
	}
	fShader, err := compileShader(gl.FRAGMENT_SHADER, fragmentSource, name)
	if err != nil {
		gl.DeleteShader(vShader)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vShader)
	gl.AttachShader(program, fShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		gl.DeleteShader(vShader)
		gl.DeleteShader(fShader)
		return 0, &PassError{Pass: name, Detail: strings.TrimRight(log, "\x00"), Wrapped: ErrProgramLink}
	}

	gl.DeleteShader(vShader)
	gl.DeleteShader(fShader)
	return program, nil
}
