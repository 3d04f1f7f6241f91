package output

import (
	"bytes"
	"image"
	"image/color"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.SetRGBA(0, 0, color.RGBA{R: 255, G: 0, B: 0, A: 255})
	img.SetRGBA(1, 0, color.RGBA{R: 0, G: 255, B: 0, A: 255})
	img.SetRGBA(2, 0, color.RGBA{R: 0, G: 0, B: 255, A: 255})
	img.SetRGBA(0, 1, color.RGBA{R: 12, G: 34, B: 56, A: 255})
	img.SetRGBA(1, 1, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	img.SetRGBA(2, 1, color.RGBA{A: 255})
	return img
}

func TestWritePPM(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePPM(&buf, testImage()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := "P3\n3 2\n255\n" +
		"255 0 0\n0 255 0\n0 0 255\n" +
		"12 34 56\n255 255 255\n0 0 0\n"
	if buf.String() != expected {
		t.Errorf("Unexpected PPM output:\n%s\nwant:\n%s", buf.String(), expected)
	}
}

func TestReadPPM(t *testing.T) {
	input := "P3\n# written by hand\n2 1\n255\n10 20 30   40 50 60 # trailing comment\n"
	img, err := ReadPPM(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 1 {
		t.Fatalf("Expected 2x1 image, got %v", img.Bounds())
	}
	if c := img.RGBAAt(1, 0); c != (color.RGBA{R: 40, G: 50, B: 60, A: 255}) {
		t.Errorf("Expected (40,50,60), got %v", c)
	}
}

func TestReadPPM_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"binary magic", "P6\n1 1\n255\n"},
		{"missing samples", "P3\n2 2\n255\n1 2 3\n"},
		{"bad max value", "P3\n1 1\n65535\n1 2 3\n"},
		{"sample out of range", "P3\n1 1\n255\n1 2 300\n"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadPPM(strings.NewReader(tt.input)); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path     string
		expected Format
		wantErr  bool
	}{
		{"out.ppm", FormatPPM, false},
		{"renders/out.PNG", FormatPNG, false},
		{"out.bmp", FormatBMP, false},
		{"out.tif", FormatTIFF, false},
		{"out.tiff", FormatTIFF, false},
		{"out.jpg", "", true},
		{"out", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			format, err := FormatFromPath(tt.path)
			if tt.wantErr {
				if errors.Cause(err) != ErrUnknownFormat {
					t.Errorf("Expected ErrUnknownFormat, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if format != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, format)
			}
		})
	}
}

func TestFormats(t *testing.T) {
	expected := []string{"bmp", "png", "ppm", "tiff"}
	formats := Formats()
	if strings.Join(formats, ",") != strings.Join(expected, ",") {
		t.Errorf("Expected %v, got %v", expected, formats)
	}
}

func TestWriteFile_LoadImage(t *testing.T) {
	dir := t.TempDir()
	original := testImage()

	for _, name := range Formats() {
		t.Run(name, func(t *testing.T) {
			format := Format(name)
			path := filepath.Join(dir, "nested", "render."+name)

			if err := WriteFile(path, format, original); err != nil {
				t.Fatalf("Unexpected write error: %v", err)
			}

			loaded, err := LoadImage(path)
			if err != nil {
				t.Fatalf("Unexpected load error: %v", err)
			}

			diff, err := MaxChannelDifference(original, loaded)
			if err != nil {
				t.Fatalf("Unexpected compare error: %v", err)
			}
			if diff != 0 {
				t.Errorf("Lossless format %s changed pixels by up to %d", name, diff)
			}
		})
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Write(Format("jpeg"), &buf, testImage())
	if errors.Cause(err) != ErrUnknownFormat {
		t.Errorf("Expected ErrUnknownFormat, got %v", err)
	}
}

func TestMaxChannelDifference(t *testing.T) {
	a := testImage()
	b := testImage()
	b.SetRGBA(0, 1, color.RGBA{R: 12, G: 40, B: 50, A: 255})

	diff, err := MaxChannelDifference(a, b)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if diff != 6 {
		t.Errorf("Expected difference 6, got %d", diff)
	}

	if _, err := MaxChannelDifference(a, image.NewRGBA(image.Rect(0, 0, 1, 1))); err == nil {
		t.Error("Expected an error for mismatched sizes")
	}
}
