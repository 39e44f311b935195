package render

import "errors"

// Pipeline errors.
var (
	// ErrFloatTextureUnsupported indicates the driver cannot render into a
	// 32-bit float texture. The pipeline cannot run without it.
	ErrFloatTextureUnsupported = errors.New("render: float texture rendering not supported by this driver")

	// ErrShaderCompile indicates a shader failed to compile.
	ErrShaderCompile = errors.New("render: shader compilation failed")

	// ErrProgramLink indicates a shader program failed to link.
	ErrProgramLink = errors.New("render: program link failed")

	// ErrFramebufferIncomplete indicates a framebuffer attachment was
	// rejected by the driver.
	ErrFramebufferIncomplete = errors.New("render: framebuffer incomplete")
)

// PassError wraps a pipeline error with the pass that produced it.
type PassError struct {
	Pass    string
	Detail  string
	Wrapped error
}

func (e *PassError) Error() string {
	if e.Detail == "" {
		return e.Pass + ": " + e.Wrapped.Error()
	}
	return e.Pass + ": " + e.Wrapped.Error() + ": " + e.Detail
}

func (e *PassError) Unwrap() error {
	return e.Wrapped
}
