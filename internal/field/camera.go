package field

import (
	"gonum.org/v1/gonum/mat"
)

// Camera describes the viewer: a model-space center and a zoom in canvas
// pixels per model unit.
type Camera struct {
	Center Vec2
	Zoom   float64
}

func NewCamera() Camera {
	return Camera{Zoom: 80}
}

// View builds the model-to-canvas matrix: model units scaled by zoom and
// recentered on the middle of the canvas. Canvas coordinates run left to
// right, bottom to top, matching gl_FragCoord.
func (c Camera) View(canvasW, canvasH int) *mat.Dense {
	w := float64(canvasW)
	h := float64(canvasH)
	return mat.NewDense(3, 3, []float64{
		c.Zoom, 0, w/2 - c.Zoom*c.Center.X,
		0, c.Zoom, h/2 - c.Zoom*c.Center.Y,
		0, 0, 1,
	})
}

// Projection builds the canvas-to-NDC matrix for the given canvas size.
func Projection(canvasW, canvasH int) *mat.Dense {
	w := float64(canvasW)
	h := float64(canvasH)
	return mat.NewDense(3, 3, []float64{
		2 / w, 0, -1,
		0, 2 / h, -1,
		0, 0, 1,
	})
}

// Transform composes the full model-to-NDC transform for this camera and
// canvas. Recomputed every frame; composition is cheap at 3x3.
func (c Camera) Transform(canvasW, canvasH int) (*Transform, error) {
	if canvasW <= 0 || canvasH <= 0 {
		return nil, ErrCanvasBounds
	}
	return Compose(c.View(canvasW, canvasH), Projection(canvasW, canvasH))
}

// ScreenFromModel converts a model point to window coordinates (origin
// top-left, y down), for drawing overlays above the field.
func (c Camera) ScreenFromModel(p Vec2, canvasW, canvasH int) (float64, float64, error) {
	tr, err := c.Transform(canvasW, canvasH)
	if err != nil {
		return 0, 0, err
	}
	ndcX, ndcY := tr.NDCFromModel(p)
	sx := (ndcX + 1) / 2 * float64(canvasW)
	sy := (1 - ndcY) / 2 * float64(canvasH)
	return sx, sy, nil
}

// ModelFromScreen converts window coordinates (origin top-left, y down) to a
// model point. Mouse input arrives in this space.
func (c Camera) ModelFromScreen(sx, sy float64, canvasW, canvasH int) (Vec2, error) {
	tr, err := c.Transform(canvasW, canvasH)
	if err != nil {
		return Vec2{}, err
	}
	ndcX := 2*sx/float64(canvasW) - 1
	ndcY := 1 - 2*sy/float64(canvasH)
	return tr.ModelFromNDC(ndcX, ndcY), nil
}
