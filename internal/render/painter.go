package render

import (
	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/san-kum/fieldlab/internal/field"
	"github.com/san-kum/fieldlab/internal/ramp"
)

// Frame carries everything one paint needs. The transform must match the
// camera and canvas the frame is drawn with; the painter never keeps one
// between frames.
type Frame struct {
	Visible          bool
	CanvasW, CanvasH int
	Transform        *field.Transform
	Ramp             ramp.Ramp
}

// Painter is the single synchronization point of the pipeline. It owns the
// texture pair, the three passes, and the display target, and drains the
// tracker's diff queue exactly once per painted frame.
//
// All methods must run on the GL thread.
type Painter struct {
	tracker *field.Tracker
	pair    *TexturePair
	target  *displayTarget
	quad    *quad

	clear   *clearPass
	compute *computePass
	display *displayPass

	// DiffsApplied counts compute passes since creation.
	DiffsApplied int
}

// NewPainter probes driver support, compiles the passes, allocates the
// textures, and seeds the field from the tracker's current charges. Any
// pending diffs are discarded: the rebuild already reflects them, so
// draining them on the first frame would double-count.
func NewPainter(tracker *field.Tracker, canvasW, canvasH int, tr *field.Transform) (*Painter, error) {
	if err := ProbeFloatTextures(); err != nil {
		return nil, err
	}

	p := &Painter{tracker: tracker}

	var err error
	if p.clear, err = newClearPass(); err != nil {
		return nil, err
	}
	if p.compute, err = newComputePass(); err != nil {
		p.Dispose()
		return nil, err
	}
	if p.display, err = newDisplayPass(); err != nil {
		p.Dispose()
		return nil, err
	}
	p.quad = newQuad()

	if p.pair, err = NewTexturePair(canvasW, canvasH); err != nil {
		p.Dispose()
		return nil, err
	}
	if p.target, err = newDisplayTarget(canvasW, canvasH); err != nil {
		p.Dispose()
		return nil, err
	}

	p.tracker.Clear()
	p.rebuild(tr)
	p.restoreState(canvasW, canvasH)
	return p, nil
}

// Paint runs the per-frame pipeline: drain the queue, one compute pass per
// diff with a swap after each, then the display pass. It reports whether it
// drew. An invisible frame skips all GPU work and leaves the queue intact,
// so mutations keep accumulating until the field is shown again.
func (p *Painter) Paint(frame Frame) (bool, error) {
	if !frame.Visible {
		return false, nil
	}
	if frame.CanvasW <= 0 || frame.CanvasH <= 0 {
		return false, field.ErrCanvasBounds
	}

	if p.pair.NeedsResize(frame.CanvasW, frame.CanvasH) {
		if err := p.resize(frame.CanvasW, frame.CanvasH, frame.Transform); err != nil {
			return false, err
		}
	} else {
		p.applyDiffs(p.tracker.Drain(), frame.Transform)
	}

	p.display.run(p.quad, p.pair, p.target, frame.Ramp)
	p.restoreState(frame.CanvasW, frame.CanvasH)
	return true, nil
}

// resize reallocates both the pair and the display target, zeroes the
// field, and replays one synthetic add per live charge. Pending diffs are
// discarded first: the rebuild already reflects the tracker's final state,
// so replaying them as well would double-count.
func (p *Painter) resize(canvasW, canvasH int, tr *field.Transform) error {
	if err := p.pair.Allocate(canvasW, canvasH); err != nil {
		return err
	}
	if err := p.target.allocate(canvasW, canvasH); err != nil {
		return err
	}
	p.tracker.Clear()
	p.rebuild(tr)
	return nil
}

// rebuild zeroes both textures and replays the tracker's rebuild diffs.
func (p *Painter) rebuild(tr *field.Transform) {
	texW, texH := p.pair.TextureSize()
	p.clear.run(p.quad, p.pair.PreviousFBO(), texW, texH)
	p.clear.run(p.quad, p.pair.TargetFBO(), texW, texH)
	p.applyDiffs(p.tracker.RebuildDiffs(), tr)
}

func (p *Painter) applyDiffs(diffs []field.Diff, tr *field.Transform) {
	for _, d := range diffs {
		p.compute.run(p.quad, p.pair, d, tr)
		p.pair.Swap()
		p.DiffsApplied++
	}
}

// restoreState rebinds the defaults so the windowing layer's own batched
// drawing is not left pointing at our framebuffers.
func (p *Painter) restoreState(canvasW, canvasH int) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.UseProgram(0)
	gl.BindVertexArray(0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.Viewport(0, 0, int32(canvasW), int32(canvasH))
}

// DisplayTexture returns the GL texture id holding the false-color output,
// for the windowing layer to blit.
func (p *Painter) DisplayTexture() uint32 {
	return p.target.texture
}

// CanvasSize returns the current canvas dimensions.
func (p *Painter) CanvasSize() (int, int) {
	return p.pair.CanvasSize()
}

// ReadDisplay reads back the display target as tightly packed RGBA bytes,
// bottom row first. Used for snapshots.
func (p *Painter) ReadDisplay() ([]byte, int, int) {
	w, h := p.target.w, p.target.h
	pixels := make([]byte, w*h*4)
	gl.BindFramebuffer(gl.FRAMEBUFFER, p.target.fbo)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return pixels, w, h
}

// ReadField reads back the canvas rectangle of the accumulated potential,
// bottom row first. Used by the bench command to compare GPU and CPU
// accumulation.
func (p *Painter) ReadField() ([]float32, int, int) {
	w, h := p.pair.CanvasSize()
	texels := make([]float32, w*h)
	gl.BindFramebuffer(gl.FRAMEBUFFER, p.pair.PreviousFBO())
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RED, gl.FLOAT, gl.Ptr(texels))
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return texels, w, h
}

// Dispose releases every GL object the painter owns.
func (p *Painter) Dispose() {
	if p.pair != nil {
		p.pair.Release()
		p.pair = nil
	}
	if p.target != nil {
		p.target.release()
		p.target = nil
	}
	if p.quad != nil {
		p.quad.release()
		p.quad = nil
	}
	if p.clear != nil {
		p.clear.release()
		p.clear = nil
	}
	if p.compute != nil {
		p.compute.release()
		p.compute = nil
	}
	if p.display != nil {
		p.display.release()
		p.display = nil
	}
}
