package output

import (
	"bufio"
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// WritePPM writes img as a plain-text (P3) PPM: a header, then one "r g b" line per pixel, top row first
func WritePPM(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", bounds.Dx(), bounds.Dy()); err != nil {
		return errors.Wrap(err, "writing PPM header")
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", c.R, c.G, c.B); err != nil {
				return errors.Wrap(err, "writing PPM pixel")
			}
		}
	}

	return errors.Wrap(bw.Flush(), "flushing PPM")
}

// ReadPPM decodes a plain-text (P3) PPM with a maximum value of 255
func ReadPPM(r io.Reader) (*image.RGBA, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading PPM")
	}

	// Drop comments before splitting into tokens
	var cleaned bytes.Buffer
	for _, line := range bytes.Split(data, []byte("\n")) {
		if i := bytes.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		cleaned.Write(line)
		cleaned.WriteByte('\n')
	}
	tokens := bytes.Fields(cleaned.Bytes())

	if len(tokens) < 4 || string(tokens[0]) != "P3" {
		return nil, errors.New("not a P3 PPM")
	}

	header := make([]int, 3)
	for i := range header {
		if header[i], err = strconv.Atoi(string(tokens[i+1])); err != nil {
			return nil, errors.Wrapf(err, "parsing PPM header field %d", i)
		}
	}
	width, height, maxValue := header[0], header[1], header[2]
	if width <= 0 || height <= 0 || maxValue != 255 {
		return nil, errors.Errorf("unsupported PPM header %dx%d max %d", width, height, maxValue)
	}

	samples := tokens[4:]
	if len(samples) != width*height*3 {
		return nil, errors.Errorf("PPM has %d samples, expected %d", len(samples), width*height*3)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < width*height; i++ {
		var rgb [3]uint8
		for channel := range rgb {
			value, err := strconv.Atoi(string(samples[i*3+channel]))
			if err != nil || value < 0 || value > 255 {
				return nil, errors.Errorf("invalid PPM sample %q at pixel %d", samples[i*3+channel], i)
			}
			rgb[channel] = uint8(value)
		}
		img.SetRGBA(i%width, i/width, color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255})
	}

	return img, nil
}
