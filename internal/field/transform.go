package field

import (
	"gonum.org/v1/gonum/mat"
)

// Transform holds the composed view-projection matrix mapping model space to
// normalized device coordinates, together with its inverse. Both are 3x3
// projective matrices; points are homogeneous column vectors (x, y, 1).
type Transform struct {
	forward *mat.Dense
	inverse *mat.Dense
}

// Compose multiplies projection by view and inverts the product. A singular
// product (zoom of zero, degenerate projection) is rejected.
func Compose(view, projection *mat.Dense) (*Transform, error) {
	var fwd mat.Dense
	fwd.Mul(projection, view)

	var inv mat.Dense
	if err := inv.Inverse(&fwd); err != nil {
		return nil, ErrSingularTransform
	}
	return &Transform{forward: &fwd, inverse: &inv}, nil
}

// NDCFromModel projects a model point into normalized device coordinates.
func (t *Transform) NDCFromModel(p Vec2) (float64, float64) {
	return apply(t.forward, p.X, p.Y)
}

// ModelFromNDC maps normalized device coordinates back to model space. This
// is the per-texel mapping the fragment shaders perform with the uploaded
// inverse matrix.
func (t *Transform) ModelFromNDC(x, y float64) Vec2 {
	mx, my := apply(t.inverse, x, y)
	return Vec2{mx, my}
}

// InverseMat3 returns the inverse matrix in column-major float32 layout,
// ready for a mat3 uniform upload.
func (t *Transform) InverseMat3() [9]float32 {
	var out [9]float32
	for col := 0; col < 3; col++ {
		for row := 0; row < 3; row++ {
			out[col*3+row] = float32(t.inverse.At(row, col))
		}
	}
	return out
}

func apply(m *mat.Dense, x, y float64) (float64, float64) {
	hx := m.At(0, 0)*x + m.At(0, 1)*y + m.At(0, 2)
	hy := m.At(1, 0)*x + m.At(1, 1)*y + m.At(1, 2)
	hw := m.At(2, 0)*x + m.At(2, 1)*y + m.At(2, 2)
	return hx / hw, hy / hw
}
