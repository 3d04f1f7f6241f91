package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/go-gl/mathgl/mgl64"
)

// FrameBuffer holds gamma-corrected colors in row-major order, row 0 at the top
type FrameBuffer struct {
	Width  int
	Height int
	Pixels [][]core.Vec3
}

// NewFrameBuffer allocates a black frame
func NewFrameBuffer(width, height int) *FrameBuffer {
	pixels := make([][]core.Vec3, height)
	for y := range pixels {
		pixels[y] = make([]core.Vec3, width)
	}
	return &FrameBuffer{Width: width, Height: height, Pixels: pixels}
}

// SetRows copies a block of rendered rows starting at startRow
func (fb *FrameBuffer) SetRows(startRow int, rows [][]core.Vec3) {
	for i, row := range rows {
		copy(fb.Pixels[startRow+i], row)
	}
}

// At returns the color at (x, y)
func (fb *FrameBuffer) At(x, y int) core.Vec3 {
	return fb.Pixels[y][x]
}

// ToImage quantizes the whole frame
func (fb *FrameBuffer) ToImage() *image.RGBA {
	return RowsImage(fb.Pixels, fb.Width)
}

// RowsImage quantizes a block of rows into an image of the same shape
func RowsImage(rows [][]core.Vec3, width int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, len(rows)))
	for y, row := range rows {
		for x, c := range row {
			img.SetRGBA(x, y, color.RGBA{
				R: QuantizeChannel(c.X),
				G: QuantizeChannel(c.Y),
				B: QuantizeChannel(c.Z),
				A: 255,
			})
		}
	}
	return img
}

// QuantizeChannel maps a [0,1] channel to 0..255 as int(255.99*c), clamping out-of-range values
func QuantizeChannel(c float64) uint8 {
	if math.IsNaN(c) {
		return 0
	}
	return uint8(255.99 * mgl64.Clamp(c, 0, 1))
}
