package render

import (
	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/san-kum/fieldlab/internal/field"
	"github.com/san-kum/fieldlab/internal/ramp"
)

// clearPass zeroes a potential texture by drawing constant zero into its
// framebuffer.
type clearPass struct {
	program uint32
}

func newClearPass() (*clearPass, error) {
	program, err := createProgram(clearFragmentShader, "clear pass")
	if err != nil {
		return nil, err
	}
	return &clearPass{program: program}, nil
}

// run clears the full texture allocation, padding included, so stale texels
// outside the canvas rectangle cannot leak into later samples.
func (p *clearPass) run(q *quad, fbo uint32, texW, texH int) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)
	gl.Viewport(0, 0, int32(texW), int32(texH))
	gl.UseProgram(p.program)
	q.draw()
}

func (p *clearPass) release() {
	gl.DeleteProgram(p.program)
}

// computePass applies one diff: it reads every texel's previous value and
// writes previous plus the diff's contribution into the target.
type computePass struct {
	program uint32
}

func newComputePass() (*computePass, error) {
	program, err := createProgram(computeFragmentShader, "compute pass")
	if err != nil {
		return nil, err
	}
	return &computePass{program: program}, nil
}

func (p *computePass) run(q *quad, pair *TexturePair, d field.Diff, tr *field.Transform) {
	canvasW, canvasH := pair.CanvasSize()
	texW, texH := pair.TextureSize()

	gl.BindFramebuffer(gl.FRAMEBUFFER, pair.TargetFBO())
	// Only the canvas rectangle is touched; the padding stays zero from the
	// clear pass.
	gl.Viewport(0, 0, int32(canvasW), int32(canvasH))
	gl.UseProgram(p.program)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, pair.Previous())
	gl.Uniform1i(gl.GetUniformLocation(p.program, gl.Str("uPrevious\x00")), 0)

	inv := tr.InverseMat3()
	gl.UniformMatrix3fv(gl.GetUniformLocation(p.program, gl.Str("uInverseMatrix\x00")), 1, false, &inv[0])

	gl.Uniform2f(gl.GetUniformLocation(p.program, gl.Str("uCanvasSize\x00")), float32(canvasW), float32(canvasH))
	gl.Uniform2f(gl.GetUniformLocation(p.program, gl.Str("uTextureSize\x00")), float32(texW), float32(texH))
	gl.Uniform1f(gl.GetUniformLocation(p.program, gl.Str("uCharge\x00")), float32(d.Charge))
	gl.Uniform2f(gl.GetUniformLocation(p.program, gl.Str("uOldPosition\x00")), float32(d.From.X), float32(d.From.Y))
	gl.Uniform2f(gl.GetUniformLocation(p.program, gl.Str("uNewPosition\x00")), float32(d.To.X), float32(d.To.Y))
	gl.Uniform1f(gl.GetUniformLocation(p.program, gl.Str("uHasOld\x00")), boolUniform(d.HasOld()))
	gl.Uniform1f(gl.GetUniformLocation(p.program, gl.Str("uHasNew\x00")), boolUniform(d.HasNew()))

	q.draw()
}

func (p *computePass) release() {
	gl.DeleteProgram(p.program)
}

// displayPass maps the accumulated potential through the color ramp into the
// RGBA display target.
type displayPass struct {
	program uint32
}

func newDisplayPass() (*displayPass, error) {
	program, err := createProgram(displayFragmentShader, "display pass")
	if err != nil {
		return nil, err
	}
	return &displayPass{program: program}, nil
}

func (p *displayPass) run(q *quad, pair *TexturePair, target *displayTarget, r ramp.Ramp) {
	canvasW, canvasH := pair.CanvasSize()
	texW, texH := pair.TextureSize()

	gl.BindFramebuffer(gl.FRAMEBUFFER, target.fbo)
	gl.Viewport(0, 0, int32(canvasW), int32(canvasH))
	gl.UseProgram(p.program)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, pair.Previous())
	gl.Uniform1i(gl.GetUniformLocation(p.program, gl.Str("uField\x00")), 0)
	gl.Uniform2f(gl.GetUniformLocation(p.program, gl.Str("uTextureSize\x00")), float32(texW), float32(texH))

	zr, zg, zb := r.Zero.Uniform()
	gl.Uniform3f(gl.GetUniformLocation(p.program, gl.Str("uZeroColor\x00")), zr, zg, zb)
	pr, pg, pb := r.Positive.Uniform()
	gl.Uniform3f(gl.GetUniformLocation(p.program, gl.Str("uPositiveColor\x00")), pr, pg, pb)
	nr, ng, nb := r.Negative.Uniform()
	gl.Uniform3f(gl.GetUniformLocation(p.program, gl.Str("uNegativeColor\x00")), nr, ng, nb)
	gl.Uniform1f(gl.GetUniformLocation(p.program, gl.Str("uPositiveScale\x00")), float32(r.PositiveScale))
	gl.Uniform1f(gl.GetUniformLocation(p.program, gl.Str("uNegativeScale\x00")), float32(r.NegativeScale))

	q.draw()
}

func (p *displayPass) release() {
	gl.DeleteProgram(p.program)
}

func boolUniform(b bool) float32 {
	if b {
		return 1
	}
	return 0
}

// displayTarget is the RGBA8 texture the display pass renders into. It is
// sized to the canvas exactly and handed to the windowing layer for the
// final blit, keeping raw GL draws out of the UI layer's batched state.
type displayTarget struct {
	texture uint32
	fbo     uint32
	w, h    int
}

func newDisplayTarget(w, h int) (*displayTarget, error) {
	t := &displayTarget{}
	if err := t.allocate(w, h); err != nil {
		t.release()
		return nil, err
	}
	return t, nil
}

func (t *displayTarget) allocate(w, h int) error {
	t.w = w
	t.h = h
	if t.texture == 0 {
		gl.GenTextures(1, &t.texture)
	}
	gl.BindTexture(gl.TEXTURE_2D, t.texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)

	if t.fbo == 0 {
		gl.GenFramebuffers(1, &t.fbo)
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, t.texture, 0)
	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		return &PassError{Pass: "display target", Wrapped: ErrFramebufferIncomplete}
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return nil
}

func (t *displayTarget) release() {
	if t.fbo != 0 {
		gl.DeleteFramebuffers(1, &t.fbo)
		t.fbo = 0
	}
	if t.texture != 0 {
		gl.DeleteTextures(1, &t.texture)
		t.texture = 0
	}
}
