package output

import (
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Format names an image file format
type Format string

const (
	FormatPPM  Format = "ppm"
	FormatPNG  Format = "png"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
)

// ErrUnknownFormat is returned for unsupported format names and file extensions
var ErrUnknownFormat = errors.New("unknown image format")

var encoders = map[Format]func(io.Writer, image.Image) error{
	FormatPPM: WritePPM,
	FormatPNG: png.Encode,
	FormatBMP: bmp.Encode,
	FormatTIFF: func(w io.Writer, img image.Image) error {
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	},
}

// Formats lists the supported format names, sorted
func Formats() []string {
	names := lo.Map(lo.Keys(encoders), func(f Format, _ int) string { return string(f) })
	sort.Strings(names)
	return names
}

// ParseFormat validates a format name
func ParseFormat(name string) (Format, error) {
	format := Format(strings.ToLower(name))
	if format == "tif" {
		format = FormatTIFF
	}
	if _, ok := encoders[format]; !ok {
		return "", errors.Wrapf(ErrUnknownFormat, "%q (supported: %s)", name, strings.Join(Formats(), ", "))
	}
	return format, nil
}

// FormatFromPath picks the format from a file extension
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", errors.Wrapf(ErrUnknownFormat, "%q has no extension", path)
	}
	return ParseFormat(ext)
}

// Write encodes img in the given format
func Write(format Format, w io.Writer, img image.Image) error {
	encode, ok := encoders[format]
	if !ok {
		return errors.Wrapf(ErrUnknownFormat, "%q", format)
	}
	return errors.Wrapf(encode(w, img), "encoding %s", format)
}

// WriteFile creates path, including missing directories, and encodes img into it
func WriteFile(path string, format Format, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, "creating directory %s", dir)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}

	if err := Write(format, file, img); err != nil {
		file.Close()
		return err
	}
	return errors.Wrapf(file.Close(), "closing %s", path)
}
