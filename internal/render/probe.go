package render

import (
	"github.com/go-gl/gl/v3.3-core/gl"
)

// ProbeFloatTextures checks whether the driver can render into an R32F
// texture by attaching a small one to a framebuffer and asking for
// completeness. Drivers that silently fall back to fixed point for float
// attachments report incomplete here, which is exactly the case the
// pipeline cannot survive.
//
// Requires a current GL context; returns ErrFloatTextureUnsupported on
// failure.
func ProbeFloatTextures() error {
	if err := initGL(); err != nil {
		return &PassError{Pass: "probe", Detail: err.Error(), Wrapped: ErrFloatTextureUnsupported}
	}

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.R32F, 4, 4, 0, gl.RED, gl.FLOAT, nil)

	var fbo uint32
	gl.GenFramebuffers(1, &fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, tex, 0)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.DeleteFramebuffers(1, &fbo)
	gl.DeleteTextures(1, &tex)

	if status != gl.FRAMEBUFFER_COMPLETE {
		return ErrFloatTextureUnsupported
	}
	return nil
}
