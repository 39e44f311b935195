package field

// Grid is a CPU accumulator over the same texel layout as the GPU texture
// pair: a power-of-two allocation with the canvas occupying the lower-left
// sub-rectangle. It reproduces the fragment shader arithmetic texel for
// texel, which makes it the reference for tests and the backend for the
// terminal preview.
//
// Unlike the GPU path, a texel's update only reads that texel's previous
// value, so the grid updates in place and needs no second buffer.
type Grid struct {
	canvasW, canvasH int
	texW, texH       int
	data             []float32
}

// NewGrid allocates a grid whose texture dimensions are the next powers of
// two covering the canvas.
func NewGrid(canvasW, canvasH int) (*Grid, error) {
	if canvasW <= 0 || canvasH <= 0 {
		return nil, ErrCanvasBounds
	}
	texW := NextPowerOfTwo(canvasW)
	texH := NextPowerOfTwo(canvasH)
	return &Grid{
		canvasW: canvasW,
		canvasH: canvasH,
		texW:    texW,
		texH:    texH,
		data:    make([]float32, texW*texH),
	}, nil
}

func (g *Grid) CanvasSize() (int, int) { return g.canvasW, g.canvasH }
func (g *Grid) TextureSize() (int, int) { return g.texW, g.texH }

// Resize reallocates for a new canvas size and zeroes all texels. The caller
// is expected to replay rebuild diffs afterwards.
func (g *Grid) Resize(canvasW, canvasH int) error {
	if canvasW <= 0 || canvasH <= 0 {
		return ErrCanvasBounds
	}
	g.canvasW = canvasW
	g.canvasH = canvasH
	g.texW = NextPowerOfTwo(canvasW)
	g.texH = NextPowerOfTwo(canvasH)
	g.data = make([]float32, g.texW*g.texH)
	return nil
}

// ZeroAll clears every texel.
func (g *Grid) ZeroAll() {
	for i := range g.data {
		g.data[i] = 0
	}
}

// Apply accumulates one diff over the canvas sub-rectangle. Each texel is
// mapped through the inverse transform at its center, matching
// gl_FragCoord's half-texel offset.
func (g *Grid) Apply(d Diff, tr *Transform) {
	for ty := 0; ty < g.canvasH; ty++ {
		ndcY := (float64(ty)+0.5)/float64(g.canvasH)*2 - 1
		for tx := 0; tx < g.canvasW; tx++ {
			ndcX := (float64(tx)+0.5)/float64(g.canvasW)*2 - 1
			model := tr.ModelFromNDC(ndcX, ndcY)
			g.data[ty*g.texW+tx] += float32(d.Contribution(model))
		}
	}
}

// ApplyAll accumulates a batch of diffs in order.
func (g *Grid) ApplyAll(diffs []Diff, tr *Transform) {
	for _, d := range diffs {
		g.Apply(d, tr)
	}
}

// At returns the accumulated potential at a texel.
func (g *Grid) At(tx, ty int) float32 {
	return g.data[ty*g.texW+tx]
}

// NextPowerOfTwo returns the smallest power of two >= n. n must be positive.
func NextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
