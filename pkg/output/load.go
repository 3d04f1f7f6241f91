package output

import (
	"image"
	"image/color"
	_ "image/png" // PNG decoder
	"os"

	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/tiff" // TIFF decoder
)

// LoadImage reads an image in any supported format
func LoadImage(filename string) (image.Image, error) {
	format, err := FormatFromPath(filename)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open image file")
	}
	defer file.Close()

	if format == FormatPPM {
		return ReadPPM(file)
	}

	// Decode image (auto-detects the format from the file header)
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode image")
	}
	return img, nil
}

// MaxChannelDifference returns the largest absolute 8-bit channel difference between two images of the same size
func MaxChannelDifference(a, b image.Image) (int, error) {
	if a.Bounds().Dx() != b.Bounds().Dx() || a.Bounds().Dy() != b.Bounds().Dy() {
		return 0, errors.Errorf("image sizes differ: %v vs %v", a.Bounds().Size(), b.Bounds().Size())
	}

	maxDiff := 0
	for y := 0; y < a.Bounds().Dy(); y++ {
		for x := 0; x < a.Bounds().Dx(); x++ {
			ca := color.RGBAModel.Convert(a.At(a.Bounds().Min.X+x, a.Bounds().Min.Y+y)).(color.RGBA)
			cb := color.RGBAModel.Convert(b.At(b.Bounds().Min.X+x, b.Bounds().Min.Y+y)).(color.RGBA)
			for _, d := range []int{
				int(ca.R) - int(cb.R),
				int(ca.G) - int(cb.G),
				int(ca.B) - int(cb.B),
			} {
				maxDiff = max(maxDiff, d, -d)
			}
		}
	}
	return maxDiff, nil
}
