package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels     int           // Total number of pixels rendered
	TotalSamples    int           // Total number of camera rays traced
	SamplesPerPixel int           // Camera rays per pixel
	Tasks           int           // Number of row tasks scheduled
	Workers         int           // Number of workers used
	Duration        time.Duration // Wall time of the render
}

// addRows records a finished block of rows
func (s *RenderStats) addRows(rows, width int) {
	s.TotalPixels += rows * width
	s.TotalSamples += rows * width * s.SamplesPerPixel
}
