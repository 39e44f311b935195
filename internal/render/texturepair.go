package render

import (
	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/san-kum/fieldlab/internal/field"
)

// TexturePair is the double buffer holding the accumulated potential: two
// R32F textures with a framebuffer each. One is the previous (authoritative)
// field, the other is the write target; Swap flips the roles by toggling an
// index, never by copying texels.
//
// The textures are allocated at the next power of two covering the canvas,
// with the canvas occupying the lower-left sub-rectangle.
type TexturePair struct {
	textures [2]uint32
	fbos     [2]uint32
	target   int

	canvasW, canvasH int
	texW, texH       int
}

// NewTexturePair allocates both textures and framebuffers for the canvas.
func NewTexturePair(canvasW, canvasH int) (*TexturePair, error) {
	if canvasW <= 0 || canvasH <= 0 {
		return nil, field.ErrCanvasBounds
	}
	p := &TexturePair{}
	if err := p.Allocate(canvasW, canvasH); err != nil {
		p.Release()
		return nil, err
	}
	return p, nil
}

// Allocate sizes both textures for the canvas, creating GL objects on first
// use and reallocating storage afterwards. Texel contents are undefined
// until a clear pass runs.
func (p *TexturePair) Allocate(canvasW, canvasH int) error {
	if canvasW <= 0 || canvasH <= 0 {
		return field.ErrCanvasBounds
	}
	p.canvasW = canvasW
	p.canvasH = canvasH
	p.texW = field.NextPowerOfTwo(canvasW)
	p.texH = field.NextPowerOfTwo(canvasH)

	for i := 0; i < 2; i++ {
		if p.textures[i] == 0 {
			gl.GenTextures(1, &p.textures[i])
		}
		gl.BindTexture(gl.TEXTURE_2D, p.textures[i])
		// Nearest filtering: texels are data, not an image to smooth.
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.R32F, int32(p.texW), int32(p.texH), 0, gl.RED, gl.FLOAT, nil)

		if p.fbos[i] == 0 {
			gl.GenFramebuffers(1, &p.fbos[i])
		}
		gl.BindFramebuffer(gl.FRAMEBUFFER, p.fbos[i])
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, p.textures[i], 0)
		if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
			gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
			return &PassError{Pass: "texture pair", Wrapped: ErrFramebufferIncomplete}
		}
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return nil
}

// NeedsResize reports whether the canvas has outgrown or shrunk from the
// allocation.
func (p *TexturePair) NeedsResize(canvasW, canvasH int) bool {
	return canvasW != p.canvasW || canvasH != p.canvasH
}

// Previous returns the texture holding the authoritative accumulated field.
func (p *TexturePair) Previous() uint32 {
	return p.textures[1-p.target]
}

// PreviousFBO returns the framebuffer attached to the previous texture.
func (p *TexturePair) PreviousFBO() uint32 {
	return p.fbos[1-p.target]
}

// Target returns the texture the next pass writes into.
func (p *TexturePair) Target() uint32 {
	return p.textures[p.target]
}

// TargetFBO returns the framebuffer attached to the write target.
func (p *TexturePair) TargetFBO() uint32 {
	return p.fbos[p.target]
}

// Swap promotes the write target to previous. Index toggle only.
func (p *TexturePair) Swap() {
	p.target = 1 - p.target
}

func (p *TexturePair) CanvasSize() (int, int)  { return p.canvasW, p.canvasH }
func (p *TexturePair) TextureSize() (int, int) { return p.texW, p.texH }

// Release deletes the GL objects.
func (p *TexturePair) Release() {
	for i := 0; i < 2; i++ {
		if p.fbos[i] != 0 {
			gl.DeleteFramebuffers(1, &p.fbos[i])
			p.fbos[i] = 0
		}
		if p.textures[i] != 0 {
			gl.DeleteTextures(1, &p.textures[i])
			p.textures[i] = 0
		}
	}
}
