package gui

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"time"
)

// snapshot saves the current display texture as a PNG next to the binary.
func (a *App) snapshot() {
	name := fmt.Sprintf("fieldlab_%s.png", time.Now().Format("20060102_150405"))
	if err := a.SavePNG(name); err != nil {
		fmt.Fprintf(os.Stderr, "snapshot: %v\n", err)
		return
	}
	fmt.Printf("saved %s\n", name)
}

// SavePNG reads back the display target and writes it as a PNG. The readback
// is bottom-up, so rows are flipped while copying.
func (a *App) SavePNG(path string) error {
	pixels, w, h := a.Painter.ReadDisplay()
	return WritePNG(path, pixels, w, h)
}

// WritePNG encodes bottom-up RGBA pixels into a top-down PNG file.
func WritePNG(path string, pixels []byte, w, h int) error {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		src := (h - 1 - y) * w * 4
		dst := y * img.Stride
		copy(img.Pix[dst:dst+w*4], pixels[src:src+w*4])
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
