package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/output"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
	"github.com/urfave/cli"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

// newApp declares the render command and its flags
func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "sphere-raytracer"
	app.Usage = "render sphere scenes with a stochastic path tracer"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "scene",
			Value: "random",
			Usage: "scene to render (see --list)",
		},
		cli.IntFlag{
			Name:  "scale",
			Value: scene.DefaultScale,
			Usage: fmt.Sprintf("image width as a multiple of %d pixels", scene.BaseWidth),
		},
		cli.IntFlag{
			Name:  "width",
			Usage: "image width in pixels, overrides --scale",
		},
		cli.IntFlag{
			Name:  "samples",
			Usage: "rays per pixel (default: the scene's recommendation)",
		},
		cli.IntFlag{
			Name:  "depth",
			Usage: "maximum bounces per ray (default: the scene's recommendation)",
		},
		cli.BoolFlag{
			Name:  "no-antialias",
			Usage: "trace a single ray through each pixel center",
		},
		cli.BoolFlag{
			Name:  "sequential",
			Usage: "render on a single goroutine",
		},
		cli.IntFlag{
			Name:  "workers",
			Usage: "parallel workers (0 = one per CPU)",
		},
		cli.Int64Flag{
			Name:  "seed",
			Value: renderer.DefaultRenderConfig().Seed,
			Usage: "base random seed",
		},
		cli.BoolFlag{
			Name:  "bvh",
			Usage: "use a bounding volume hierarchy instead of a linear scan",
		},
		cli.StringFlag{
			Name:  "output",
			Value: "output.ppm",
			Usage: "output file, or - for stdout",
		},
		cli.StringFlag{
			Name:  "format",
			Usage: "output format: " + strings.Join(output.Formats(), ", ") + " (default: from the output extension)",
		},
		cli.StringFlag{
			Name:  "compare",
			Usage: "reference image to compare the render against",
		},
		cli.BoolFlag{
			Name:  "list",
			Usage: "list the available scenes and exit",
		},
	}
	app.Action = run
	return app
}

// run renders the selected scene and writes the image
func run(c *cli.Context) error {
	logger := renderer.NewDefaultLogger()

	if c.Bool("list") {
		for _, info := range scene.ListScenes() {
			fmt.Printf("  %-12s %-12s %s\n", info.ID, info.DisplayName, info.Description)
		}
		return nil
	}

	s, err := scene.Create(c.String("scene"))
	if err != nil {
		return err
	}
	applyRenderFlags(c, s)

	outputPath := c.String("output")
	format, err := resolveFormat(outputPath, c.String("format"))
	if err != nil {
		return err
	}

	logger.Printf("Using %s scene (%d shapes)...\n", s.Name, s.World.Len())
	frame, err := renderScene(s, logger)
	if err != nil {
		return err
	}
	img := frame.ToImage()

	if outputPath == "-" {
		if err := output.Write(format, os.Stdout, img); err != nil {
			return err
		}
	} else {
		if err := output.WriteFile(outputPath, format, img); err != nil {
			return err
		}
		logger.Printf("Render saved as %s\n", outputPath)
	}

	if reference := c.String("compare"); reference != "" {
		return compareWith(reference, frame, logger)
	}
	return nil
}

// flagSource is the subset of *cli.Context used to read render flags
type flagSource interface {
	IsSet(name string) bool
	Int(name string) int
	Int64(name string) int64
	Bool(name string) bool
}

// applyRenderFlags overrides the scene's recommended render config with explicitly set flags
func applyRenderFlags(flags flagSource, s *scene.Scene) {
	switch {
	case flags.IsSet("width"):
		s.SetResolution(flags.Int("width"))
	case flags.IsSet("scale"):
		s.SetScale(flags.Int("scale"))
	}

	config := &s.RenderConfig
	if flags.IsSet("samples") {
		config.SamplesPerPixel = flags.Int("samples")
	}
	if flags.IsSet("depth") {
		config.MaxDepth = flags.Int("depth")
	}
	if flags.IsSet("workers") {
		config.NumWorkers = flags.Int("workers")
	}
	if flags.IsSet("seed") {
		config.Seed = flags.Int64("seed")
	}
	if flags.Bool("no-antialias") {
		config.Antialias = false
	}
	if flags.Bool("sequential") {
		config.Parallel = false
	}
	if flags.Bool("bvh") {
		config.UseBVH = true
	}
}

// resolveFormat prefers an explicit format, then the output extension; stdout defaults to PPM
func resolveFormat(outputPath, format string) (output.Format, error) {
	if format != "" {
		return output.ParseFormat(format)
	}
	if outputPath == "-" {
		return output.FormatPPM, nil
	}
	return output.FormatFromPath(outputPath)
}

// renderScene renders s with its render config
func renderScene(s *scene.Scene, logger core.Logger) (*renderer.FrameBuffer, error) {
	rt, err := renderer.NewRaytracer(s, s.RenderConfig, logger)
	if err != nil {
		return nil, err
	}

	frame, stats, err := rt.Render()
	if err != nil {
		return nil, err
	}

	logger.Printf("Rendered %d pixels with %d samples in %v (%d tasks on %d workers)\n",
		stats.TotalPixels, stats.TotalSamples, stats.Duration, stats.Tasks, stats.Workers)
	return frame, nil
}

// compareWith reports how far the render is from a reference image
func compareWith(reference string, frame *renderer.FrameBuffer, logger core.Logger) error {
	expected, err := output.LoadImage(reference)
	if err != nil {
		return err
	}

	diff, err := output.MaxChannelDifference(expected, frame.ToImage())
	if err != nil {
		return err
	}

	logger.Printf("Max channel difference vs %s: %d\n", reference, diff)
	return nil
}
